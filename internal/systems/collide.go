package systems

import (
	"babayaga/internal/core/types"
	"babayaga/internal/domain"
)

// Pair is one hitbox overlapping one hurtbox this tick.
type Pair struct {
	Hitbox  *domain.Entity
	Hurtbox *domain.Entity
}

// collidable hurtboxes belong to living actors or to items a living actor
// holds.
func collidable(c *Context, e *domain.Entity) bool {
	if e.Hurtbox == nil {
		return false
	}
	if e.IsActor() {
		return !e.IsDefeated()
	}
	if e.Equipped != nil {
		holder, ok := c.World.Get(e.Equipped.Holder)
		return ok && !holder.IsDefeated()
	}
	return false
}

// wielder is the actor a hitbox acts for; a hitbox never strikes it.
func wielder(e *domain.Entity) types.EntityID {
	switch {
	case e.Equipped != nil:
		return e.Equipped.Holder
	case e.Source != nil:
		return e.Source.Source
	}
	return e.ID
}

// striking reports whether a hitbox is live this tick. Melee hitboxes only
// count during an unfinished swing.
func striking(e *domain.Entity) bool {
	if e.Hitbox == nil {
		return false
	}
	if e.Melee != nil {
		return e.Attack != nil && !e.Attack.Done
	}
	return true
}

// DetectCollisions rebuilds the grid from hurtboxes and returns every
// overlapping pair whose factions allow a strike. Pairs are grouped by
// hitbox in slot order.
func DetectCollisions(c *Context, g *Grid) []Pair {
	g.Clear()
	c.World.Each(func(e *domain.Entity) {
		if collidable(c, e) {
			g.Insert(e.ID, e.Box(e.Hurtbox.Half))
		}
	})

	var pairs []Pair
	c.World.Each(func(hit *domain.Entity) {
		if !striking(hit) {
			return
		}
		hb := hit.Hitbox
		box := hit.Box(hb.Half)
		self := wielder(hit)

		for _, id := range g.Query(box) {
			if !c.World.Live(id) {
				continue
			}
			hurt, _ := c.World.Get(id)
			if !hb.Filter.Has(hurt.Hurtbox.Faction) {
				continue
			}
			owner := hurt.ID
			if !hurt.Hurtbox.Owner.IsNil() {
				owner = hurt.Hurtbox.Owner
			}
			if owner == self {
				continue
			}
			if !box.Overlaps(hurt.Box(hurt.Hurtbox.Half)) {
				continue
			}
			pairs = append(pairs, Pair{Hitbox: hit, Hurtbox: hurt})
		}
	})
	return pairs
}

// DispatchHits hands each hitbox's overlaps to its weapon kind.
func DispatchHits(c *Context, pairs []Pair) {
	for i := 0; i < len(pairs); {
		hit := pairs[i].Hitbox
		j := i
		var hurt []*domain.Entity
		for j < len(pairs) && pairs[j].Hitbox == hit {
			hurt = append(hurt, pairs[j].Hurtbox)
			j++
		}
		switch {
		case hit.Attack != nil:
			meleeHits(c, hit, hurt)
		case hit.Velocity != nil && hit.Source != nil:
			projectileHits(c, hit, hurt)
		}
		i = j
	}
}
