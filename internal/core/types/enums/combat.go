package enums

import (
	"fmt"
	"strings"
)

// AttackType selects the melee swing animation.
type AttackType uint8

const (
	AttackStab AttackType = iota
	AttackSlash
)

func (a AttackType) String() string {
	switch a {
	case AttackStab:
		return "STAB"
	case AttackSlash:
		return "SLASH"
	}
	return "UNKNOWN"
}

func ParseAttackType(s string) (AttackType, error) {
	switch strings.ToUpper(s) {
	case "STAB":
		return AttackStab, nil
	case "SLASH":
		return AttackSlash, nil
	}
	return 0, fmt.Errorf("unknown attack type %q", s)
}

func (a AttackType) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *AttackType) UnmarshalText(b []byte) error {
	v, err := ParseAttackType(string(b))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// UseFailReason explains why an equipment use request did nothing.
type UseFailReason uint8

const (
	UseFailNoneEquipped UseFailReason = iota
	UseFailOnCooldown
	UseFailOutOfMana
)

var useFailToString = map[UseFailReason]string{
	UseFailNoneEquipped: "NONE_EQUIPPED",
	UseFailOnCooldown:   "ON_COOLDOWN",
	UseFailOutOfMana:    "OUT_OF_MANA",
}

func (r UseFailReason) String() string {
	if val, ok := useFailToString[r]; ok {
		return val
	}
	return "UNKNOWN"
}

func (r UseFailReason) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// Facing is the four-way sprite direction derived from motion.
type Facing uint8

const (
	FacingDown Facing = iota
	FacingUp
	FacingLeft
	FacingRight
)

var facingToString = map[Facing]string{
	FacingDown:  "DOWN",
	FacingUp:    "UP",
	FacingLeft:  "LEFT",
	FacingRight: "RIGHT",
}

var facingStringToType = map[string]Facing{
	"DOWN":  FacingDown,
	"UP":    FacingUp,
	"LEFT":  FacingLeft,
	"RIGHT": FacingRight,
}

func (f Facing) String() string {
	if val, ok := facingToString[f]; ok {
		return val
	}
	return "UNKNOWN"
}

func ParseFacing(s string) (Facing, error) {
	if val, ok := facingStringToType[strings.ToUpper(s)]; ok {
		return val, nil
	}
	return 0, fmt.Errorf("unknown facing %q", s)
}

func (f Facing) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}
