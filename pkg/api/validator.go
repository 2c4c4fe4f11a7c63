package api

import (
	"errors"
	"fmt"
	"math"

	"babayaga/internal/core/types/enums"
)

// Validator is implemented by payloads that can check themselves.
type Validator interface {
	Validate() error
}

func finite(vs ...float32) bool {
	for _, v := range vs {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}

func validSlot(s string) error {
	if _, err := enums.ParseSlot(s); err != nil {
		return err
	}
	return nil
}

func (p SpawnActorPayload) Validate() error {
	if p.Template == "" {
		return errors.New("template is required")
	}
	if p.Faction != "" {
		if _, err := enums.ParseFaction(p.Faction); err != nil {
			return err
		}
	}
	if p.Pos != nil && !finite(p.Pos.X, p.Pos.Y) {
		return errors.New("position must be finite")
	}
	for i, e := range p.Inventory {
		if e.Item == "" {
			return fmt.Errorf("inventory[%d]: item is required", i)
		}
		if e.Slot != "" {
			if err := validSlot(e.Slot); err != nil {
				return fmt.Errorf("inventory[%d]: %w", i, err)
			}
		}
	}
	if p.Coins != nil && *p.Coins < 0 {
		return errors.New("coins cannot be negative")
	}
	return nil
}

func (p UseEquipmentPayload) Validate() error {
	if err := validSlot(p.Slot); err != nil {
		return err
	}
	if p.Aim != nil && !finite(p.Aim.X, p.Aim.Y) {
		return errors.New("aim must be finite")
	}
	return nil
}

func (p ItemPayload) Validate() error {
	if p.ItemID == "" {
		return errors.New("itemId is required")
	}
	return nil
}

func (p DirectionPayload) Validate() error {
	if !finite(p.Dx, p.Dy) {
		return errors.New("direction must be finite")
	}
	if p.Dx == 0 && p.Dy == 0 {
		return errors.New("movement vector cannot be zero")
	}
	return nil
}

func (p EffectPayload) Validate() error {
	if _, err := enums.ParseStatusKind(p.Kind); err != nil {
		return err
	}
	if !finite(p.Duration, p.DamagePerTick, p.TickInterval, p.SlowFrac) {
		return errors.New("effect values must be finite")
	}
	if p.Duration <= 0 {
		return errors.New("duration must be positive")
	}
	if p.SlowFrac < 0 || p.SlowFrac > 1 {
		return errors.New("slowFrac must be within [0, 1]")
	}
	return nil
}

func (p ApplyEffectPayload) Validate() error {
	if p.TargetID == "" {
		return errors.New("targetId is required")
	}
	if len(p.Effects) == 0 {
		return errors.New("at least one effect is required")
	}
	for i, e := range p.Effects {
		if err := e.Validate(); err != nil {
			return fmt.Errorf("effects[%d]: %w", i, err)
		}
	}
	return nil
}

func (p EquipPayload) Validate() error {
	if p.ItemID == "" {
		return errors.New("itemId is required")
	}
	return validSlot(p.Slot)
}

func (p SlotPayload) Validate() error {
	return validSlot(p.Slot)
}

func (p GenerateZonePayload) Validate() error {
	return p.Descriptor.Validate()
}
