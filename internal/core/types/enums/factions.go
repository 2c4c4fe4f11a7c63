package enums

import (
	"fmt"
	"strings"
)

// Faction decides which hurtboxes a hitbox may strike.
type Faction uint8

const (
	FactionPlayer Faction = iota
	FactionEnemy
	FactionNPC
	FactionEnvironment
)

var factionToString = map[Faction]string{
	FactionPlayer:      "PLAYER",
	FactionEnemy:       "ENEMY",
	FactionNPC:         "NPC",
	FactionEnvironment: "ENVIRONMENT",
}

var factionStringToType = map[string]Faction{
	"PLAYER":      FactionPlayer,
	"ENEMY":       FactionEnemy,
	"NPC":         FactionNPC,
	"ENVIRONMENT": FactionEnvironment,
}

func (f Faction) String() string {
	if val, ok := factionToString[f]; ok {
		return val
	}
	return "UNKNOWN"
}

// ParseFaction accepts any letter case.
func ParseFaction(s string) (Faction, error) {
	if val, ok := factionStringToType[strings.ToUpper(s)]; ok {
		return val, nil
	}
	return 0, fmt.Errorf("unknown faction %q", s)
}

func (f Faction) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

func (f *Faction) UnmarshalText(b []byte) error {
	v, err := ParseFaction(string(b))
	if err != nil {
		return err
	}
	*f = v
	return nil
}
