package enums

import (
	"fmt"
	"strings"
)

// TileKind values are part of the exported tile layout; do not reorder.
type TileKind uint8

const (
	TileWood TileKind = iota
	TileGround
	TileGrass
	TileWall
	TileWater
	TileCobblestone
	TileDeadZone
)

var tileKindToString = map[TileKind]string{
	TileWood:        "WOOD",
	TileGround:      "GROUND",
	TileGrass:       "GRASS",
	TileWall:        "WALL",
	TileWater:       "WATER",
	TileCobblestone: "COBBLESTONE",
	TileDeadZone:    "DEAD_ZONE",
}

var tileKindStringToType = map[string]TileKind{
	"WOOD":        TileWood,
	"GROUND":      TileGround,
	"GRASS":       TileGrass,
	"WALL":        TileWall,
	"WATER":       TileWater,
	"COBBLESTONE": TileCobblestone,
	"DEAD_ZONE":   TileDeadZone,
}

func (t TileKind) String() string {
	if val, ok := tileKindToString[t]; ok {
		return val
	}
	return "UNKNOWN"
}

func ParseTileKind(s string) (TileKind, error) {
	if val, ok := tileKindStringToType[strings.ToUpper(s)]; ok {
		return val, nil
	}
	return 0, fmt.Errorf("unknown tile kind %q", s)
}

// Walkable reports whether actors may stand on the tile.
func (t TileKind) Walkable() bool {
	switch t {
	case TileWall, TileWater, TileDeadZone:
		return false
	}
	return true
}

func (t TileKind) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *TileKind) UnmarshalText(b []byte) error {
	v, err := ParseTileKind(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// MarkerKind tags spawn positions produced by the zone generator.
type MarkerKind uint8

const (
	MarkerEnemySpawn MarkerKind = iota
	MarkerChestSpawn
	MarkerNPCSpawn
	MarkerPlayerSpawn
	MarkerLevelExit

	MarkerKindCount = 5
)

var markerKindToString = map[MarkerKind]string{
	MarkerEnemySpawn:  "ENEMY_SPAWN",
	MarkerChestSpawn:  "CHEST_SPAWN",
	MarkerNPCSpawn:    "NPC_SPAWN",
	MarkerPlayerSpawn: "PLAYER_SPAWN",
	MarkerLevelExit:   "LEVEL_EXIT",
}

var markerKindStringToType = map[string]MarkerKind{
	"ENEMY_SPAWN":  MarkerEnemySpawn,
	"CHEST_SPAWN":  MarkerChestSpawn,
	"NPC_SPAWN":    MarkerNPCSpawn,
	"PLAYER_SPAWN": MarkerPlayerSpawn,
	"LEVEL_EXIT":   MarkerLevelExit,
}

func (m MarkerKind) String() string {
	if val, ok := markerKindToString[m]; ok {
		return val
	}
	return "UNKNOWN"
}

func ParseMarkerKind(s string) (MarkerKind, error) {
	if val, ok := markerKindStringToType[strings.ToUpper(s)]; ok {
		return val, nil
	}
	return 0, fmt.Errorf("unknown marker kind %q", s)
}

func (m MarkerKind) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *MarkerKind) UnmarshalText(b []byte) error {
	v, err := ParseMarkerKind(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}
