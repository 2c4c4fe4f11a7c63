package enums

import (
	"fmt"
	"strings"
)

// StatusKind is the closed set of timed status effects.
type StatusKind uint8

const (
	StatusBurning StatusKind = iota
	StatusSlowed
	StatusStunned
	StatusFrozen
)

var statusKindToString = map[StatusKind]string{
	StatusBurning: "BURNING",
	StatusSlowed:  "SLOWED",
	StatusStunned: "STUNNED",
	StatusFrozen:  "FROZEN",
}

var statusKindStringToType = map[string]StatusKind{
	"BURNING": StatusBurning,
	"SLOWED":  StatusSlowed,
	"STUNNED": StatusStunned,
	"FROZEN":  StatusFrozen,
}

func (k StatusKind) String() string {
	if val, ok := statusKindToString[k]; ok {
		return val
	}
	return "UNKNOWN"
}

func ParseStatusKind(s string) (StatusKind, error) {
	if val, ok := statusKindStringToType[strings.ToUpper(s)]; ok {
		return val, nil
	}
	return 0, fmt.Errorf("unknown status %q", s)
}

// Immobilizing statuses take the whole debuff slot.
func (k StatusKind) Immobilizing() bool {
	return k == StatusStunned || k == StatusFrozen
}

func (k StatusKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *StatusKind) UnmarshalText(b []byte) error {
	v, err := ParseStatusKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}
