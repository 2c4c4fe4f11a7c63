package domain

import (
	"babayaga/internal/core/types"
	"babayaga/internal/core/types/enums"
)

// FactionMask is a set of factions, one bit per enums.Faction.
type FactionMask uint8

func MaskOf(fs ...enums.Faction) FactionMask {
	var m FactionMask
	for _, f := range fs {
		m |= 1 << f
	}
	return m
}

func (m FactionMask) Has(f enums.Faction) bool {
	return m&(1<<f) != 0
}

// Hurtbox is where an entity can be struck. Owner receives the damage;
// a nil Owner means the entity itself.
type Hurtbox struct {
	Half    Vec2           `json:"half"`
	Faction enums.Faction  `json:"faction"`
	Owner   types.EntityID `json:"owner"`
}

// Hitbox deals damage to hurtboxes whose faction is in Filter.
type Hitbox struct {
	Half    Vec2          `json:"half"`
	Faction enums.Faction `json:"faction"`
	Filter  FactionMask   `json:"filter"`
}

// Reflector turns projectiles around instead of absorbing them. Hold is how
// far in front of the holder the shield sits.
type Reflector struct {
	Hold float32 `json:"hold"`
}

// ActiveMeleeAttack lives on a weapon for the duration of one swing.
type ActiveMeleeAttack struct {
	Angle  float32          `json:"angle"`
	Timer  Timer            `json:"timer"`
	HitSet []types.EntityID `json:"hitSet"`
	Done   bool             `json:"done"`
}

func (a *ActiveMeleeAttack) AlreadyHit(id types.EntityID) bool {
	for _, h := range a.HitSet {
		if h == id {
			return true
		}
	}
	return false
}

// MarkHit records id and reports whether it was new.
func (a *ActiveMeleeAttack) MarkHit(id types.EntityID) bool {
	if a.AlreadyHit(id) {
		return false
	}
	a.HitSet = append(a.HitSet, id)
	return true
}

type Velocity struct {
	V Vec2 `json:"v"`
}

type Lifetime struct {
	Timer Timer `json:"timer"`
}

// SourceFaction is recorded when a projectile spawns. Source is weak: it may
// be dead by the time the projectile lands.
type SourceFaction struct {
	Faction enums.Faction  `json:"faction"`
	Source  types.EntityID `json:"source"`
}

func (*Hurtbox) ComponentKind() ComponentKind           { return CompHurtbox }
func (*Hitbox) ComponentKind() ComponentKind            { return CompHitbox }
func (*Reflector) ComponentKind() ComponentKind         { return CompReflector }
func (*ActiveMeleeAttack) ComponentKind() ComponentKind { return CompActiveAttack }
func (*Velocity) ComponentKind() ComponentKind          { return CompVelocity }
func (*Lifetime) ComponentKind() ComponentKind          { return CompLifetime }
func (*SourceFaction) ComponentKind() ComponentKind     { return CompSourceFaction }
