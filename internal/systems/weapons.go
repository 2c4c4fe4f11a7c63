package systems

import (
	"babayaga/internal/core/types"
	"babayaga/internal/core/types/enums"
	"babayaga/internal/domain"

	"github.com/sirupsen/logrus"
)

func registerWeapons(c *Context) {
	domain.Observe(c.Bus, func(holder types.EntityID, p domain.UseRequest) error {
		UseEquipment(c, holder, p.Slot, p.Aim)
		return nil
	})
	domain.Observe(c.Bus, func(item types.EntityID, p domain.UseEquipment) error {
		return activate(c, item, p)
	})
}

// AimOf returns the normalised aim, falling back to the holder's facing.
func AimOf(holder *domain.Entity, aim domain.Vec2) domain.Vec2 {
	if d := aim.Normalize(); !d.IsZero() {
		return d
	}
	if holder.Motion != nil {
		return domain.FacingVector(holder.Motion.Facing)
	}
	return domain.FacingVector(enums.FacingDown)
}

// UseEquipment runs the activation pipeline for the item in slot:
// equipped, off cooldown and not mid-swing, affordable. Failures are
// UseFailed events.
// It reports whether the item was used.
func UseEquipment(c *Context, holderID types.EntityID, slot enums.Slot, aim domain.Vec2) bool {
	log := c.log("weapons").WithFields(logrus.Fields{"holder": holderID, "slot": slot})

	holder, ok := c.World.Get(holderID)
	if !ok || !c.World.Alive(holderID) {
		log.Debug("use request from a missing holder")
		return false
	}
	if holder.IsDefeated() {
		log.Debug("defeated holders cannot start new attacks")
		return false
	}

	fail := func(reason enums.UseFailReason) bool {
		log.WithField("reason", reason).Debug("use failed")
		c.Bus.Emit(holderID, domain.UseFailed{Holder: holderID, Slot: slot, Reason: reason})
		return false
	}

	if holder.Inventory == nil {
		return fail(enums.UseFailNoneEquipped)
	}
	itemID, ok := holder.Inventory.InSlot(slot)
	if !ok {
		return fail(enums.UseFailNoneEquipped)
	}
	item, ok := c.World.Get(itemID)
	if !ok || item.Equippable == nil || item.Equipped == nil {
		return fail(enums.UseFailNoneEquipped)
	}
	if !item.Equippable.Cooldown.Finished() {
		return fail(enums.UseFailOnCooldown)
	}
	// A swing in progress keeps the weapon busy even when the use rate is
	// shorter than the swing.
	if item.Attack != nil && !item.Attack.Done {
		return fail(enums.UseFailOnCooldown)
	}
	if item.ManaCost != nil {
		if holder.Mana == nil || !holder.Mana.TryConsume(item.ManaCost.Cost) {
			return fail(enums.UseFailOutOfMana)
		}
	}

	item.Equippable.Cooldown.Reset()
	c.Bus.Emit(itemID, domain.UseEquipment{Holder: holderID, Aim: AimOf(holder, aim)})
	return true
}

func activate(c *Context, itemID types.EntityID, p domain.UseEquipment) error {
	item, ok := c.World.Get(itemID)
	if !ok {
		return nil
	}
	holder, ok := c.World.Get(p.Holder)
	if !ok {
		return nil
	}
	switch {
	case item.Melee != nil:
		StartSwing(c, item, holder, p.Aim)
	case item.Projectile != nil:
		FireProjectile(c, item, holder, p.Aim)
	}
	return nil
}

// AdvanceCooldowns ticks use timers of equipped items. The dead make no
// cooldown progress. A caster returns to idle once the cooldown is over.
func AdvanceCooldowns(c *Context, dt float32) {
	c.World.Each(func(item *domain.Entity) {
		if item.Equippable == nil || item.Equipped == nil {
			return
		}
		holder, ok := c.World.Get(item.Equipped.Holder)
		if !ok || holder.IsDefeated() {
			return
		}
		cd := &item.Equippable.Cooldown
		if cd.Finished() {
			return
		}
		cd.Tick(dt)
		if cd.Finished() && item.Projectile != nil && holder.Action != nil && holder.Action.Is(enums.ActionCasting) {
			holder.Action.Fire(domain.TransitionFinish)
		}
	})
}

// CarryEquipment keeps resting weapons and shields in front of their holder.
func CarryEquipment(c *Context) {
	c.World.Each(func(item *domain.Entity) {
		if item.Equipped == nil || item.Attack != nil {
			return
		}
		holder, ok := c.World.Get(item.Equipped.Holder)
		if !ok {
			return
		}
		facing := domain.FacingVector(enums.FacingDown)
		if holder.Motion != nil {
			facing = domain.FacingVector(holder.Motion.Facing)
		}
		var hold float32
		switch {
		case item.Reflector != nil:
			hold = item.Reflector.Hold
		case item.Melee != nil:
			hold = item.Melee.HoldDistance
		}
		item.Pos = holder.Pos.Add(facing.Scale(hold))
		item.Rotation = facing.Angle()
	})
}
