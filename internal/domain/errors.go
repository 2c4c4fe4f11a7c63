package domain

import (
	"errors"
	"fmt"
)

// Expected game-logic failures. Never fatal.
var (
	ErrInventoryFull  = errors.New("inventory full")
	ErrNotFound       = errors.New("item not found")
	ErrNotEnoughCoins = errors.New("not enough coins")
	ErrNotEquippable  = errors.New("item cannot be equipped in that slot")
	ErrItemOwned      = errors.New("item belongs to another actor")
	ErrNoSuchEntity   = errors.New("no such entity")
)

// Programmer errors and broken invariants.
var (
	// ErrPreconditionViolation aborts the current tick.
	ErrPreconditionViolation = errors.New("precondition violation")
	// ErrInvariantBreach is returned in strict mode; otherwise the value is clamped.
	ErrInvariantBreach = errors.New("invariant breach")
	// ErrDispatchDepth means an event cycle was not bounded.
	ErrDispatchDepth = fmt.Errorf("event dispatch depth exceeded: %w", ErrPreconditionViolation)
	// ErrGenerationFailed is logged per prefab; the zone still completes.
	ErrGenerationFailed = errors.New("generation failed")
)

// Precondition wraps ErrPreconditionViolation with context.
func Precondition(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrPreconditionViolation)
}

// Breach wraps ErrInvariantBreach with context.
func Breach(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrInvariantBreach)
}
