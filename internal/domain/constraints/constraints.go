package constraints

import (
	"babayaga/internal/core/types/enums"
	"babayaga/internal/domain"
)

// Constraint is an entity predicate used by world queries.
type Constraint interface {
	Match(e *domain.Entity, w *domain.World) bool
}

// All matches when every constraint matches.
type All []Constraint

func (a All) Match(e *domain.Entity, w *domain.World) bool {
	for _, c := range a {
		if !c.Match(e, w) {
			return false
		}
	}
	return true
}

// IsChest is an interactable with unclaimed or claimed loot.
type IsChest struct{}

func (IsChest) Match(e *domain.Entity, _ *domain.World) bool {
	return e.Kind == enums.EntityKindInteractable && e.Loot != nil
}

type IsPortal struct{}

func (IsPortal) Match(e *domain.Entity, _ *domain.World) bool {
	return e.Kind == enums.EntityKindInteractable && e.Portal != nil
}

// IsZoneObject matches everything a zone load creates and a zone cleanup removes.
type IsZoneObject struct{}

func (IsZoneObject) Match(e *domain.Entity, w *domain.World) bool {
	return IsChest{}.Match(e, w) || IsPortal{}.Match(e, w)
}

// IsAliveActor has health left and is not in the Defeated state.
type IsAliveActor struct{}

func (IsAliveActor) Match(e *domain.Entity, _ *domain.World) bool {
	return e.IsActor() && !e.IsDefeated()
}

// InFaction matches actors of the given faction.
type InFaction struct {
	Faction enums.Faction
}

func (c InFaction) Match(e *domain.Entity, _ *domain.World) bool {
	return e.IsActor() && e.Faction == c.Faction
}

// StrikeableBy matches living actors whose hurtbox faction is in Mask.
type StrikeableBy struct {
	Mask domain.FactionMask
}

func (c StrikeableBy) Match(e *domain.Entity, w *domain.World) bool {
	return IsAliveActor{}.Match(e, w) && e.Hurtbox != nil && c.Mask.Has(e.Hurtbox.Faction)
}

// Select returns live entities matching c, in slot order.
func Select(w *domain.World, c Constraint) []*domain.Entity {
	var out []*domain.Entity
	w.Each(func(e *domain.Entity) {
		if c.Match(e, w) {
			out = append(out, e)
		}
	})
	return out
}
