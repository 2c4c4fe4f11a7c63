package types

import (
	"fmt"
	"strconv"
)

// EntityID is a 64-bit arena handle.
//
// Bit layout (high to low):
//
//	[ Kind (8) | Generation (24) | Index (32) ]
//
//   - Kind is the enums.EntityKind of the entity (actor, item, projectile, ...)
//   - Generation is bumped every time the slot is reused, so a stale handle
//     held by a projectile or a status never resolves to the new occupant
//   - Index is the slot in the world arena
//
// Generations start at 1, so a live handle is never NilEntityID.
type EntityID uint64

// NilEntityID is the "no entity" handle.
const NilEntityID EntityID = 0

const (
	bitsIndex = 32
	bitsGen   = 24
	bitsKind  = 8

	shiftGen  = bitsIndex
	shiftKind = bitsIndex + bitsGen

	maskIndex = (1 << bitsIndex) - 1
	maskGen   = (1 << bitsGen) - 1
	maskKind  = (1 << bitsKind) - 1
)

// MaxGeneration is the largest generation a slot can carry before wrapping.
const MaxGeneration = maskGen

// PackEntityID builds a handle. Values wider than their field are truncated.
func PackEntityID(kind uint8, gen uint32, index uint32) EntityID {
	return EntityID(
		(uint64(kind) << shiftKind) |
			(uint64(gen&maskGen) << shiftGen) |
			uint64(index),
	)
}

// Index returns the arena slot.
func (id EntityID) Index() uint32 {
	return uint32(id & maskIndex)
}

// Generation returns the slot generation.
func (id EntityID) Generation() uint32 {
	return uint32((id >> shiftGen) & maskGen)
}

// Kind returns the raw entity kind.
func (id EntityID) Kind() uint8 {
	return uint8((id >> shiftKind) & maskKind)
}

// IsNil reports whether the handle is empty.
func (id EntityID) IsNil() bool {
	return id == NilEntityID
}

// String is meant for logs.
func (id EntityID) String() string {
	if id.IsNil() {
		return "<nil>"
	}
	return fmt.Sprintf("%d:%dv%d", id.Kind(), id.Index(), id.Generation())
}

// Wire is the decimal form accepted by ParseEntityID. Nil is "".
func (id EntityID) Wire() string {
	if id.IsNil() {
		return ""
	}
	return strconv.FormatUint(uint64(id), 10)
}

// MarshalJSON writes the handle as a decimal string so JavaScript
// clients do not lose precision on uint64.
func (id EntityID) MarshalJSON() ([]byte, error) {
	return []byte(`"` + strconv.FormatUint(uint64(id), 10) + `"`), nil
}

// UnmarshalJSON accepts both the string and the bare number form.
func (id *EntityID) UnmarshalJSON(data []byte) error {
	s := string(data)

	if len(s) > 1 && s[0] == '"' {
		s = s[1 : len(s)-1]
	}

	if s == "" || s == "null" {
		*id = NilEntityID
		return nil
	}

	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return err
	}

	*id = EntityID(v)
	return nil
}

// ParseEntityID parses the decimal form used on the wire.
func ParseEntityID(s string) (EntityID, error) {
	if s == "" {
		return NilEntityID, nil
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return NilEntityID, fmt.Errorf("parse entity id %q: %w", s, err)
	}
	return EntityID(v), nil
}
