package systems

import (
	"babayaga/internal/core/types"
	"babayaga/internal/domain"

	"github.com/sirupsen/logrus"
)

func registerInteraction(c *Context) {
	domain.Observe(c.Bus, func(owner types.EntityID, p domain.Interaction) error {
		return onInteraction(c, owner, p.Actor)
	})
}

type claim struct {
	actor types.EntityID
	dist  float32
}

// ResolveInteractions handles this tick's interact requests. Each actor
// picks its closest zone in range; each zone accepts only its closest
// actor. Interaction events go out in zone slot order.
func ResolveInteractions(c *Context, requests []types.EntityID) {
	if len(requests) == 0 {
		return
	}

	var zones []*domain.Entity
	c.World.Each(func(e *domain.Entity) {
		if e.Interaction != nil {
			zones = append(zones, e)
		}
	})

	claims := make(map[types.EntityID]claim)
	seen := make(map[types.EntityID]bool)
	for _, actorID := range requests {
		if seen[actorID] {
			continue
		}
		seen[actorID] = true

		a, ok := c.World.Get(actorID)
		if !ok || !c.World.Live(actorID) || a.IsDefeated() {
			continue
		}

		var best *domain.Entity
		var bestD float32
		for _, z := range zones {
			d, in := z.Interaction.Contains(z.Pos, a.Pos)
			if !in {
				continue
			}
			// Large zones are still capped by the actor's reach.
			if reach := c.Rules.InteractRadius; reach > 0 && d > reach {
				continue
			}
			if best == nil || d < bestD {
				best, bestD = z, d
			}
		}
		if best == nil {
			continue
		}
		if prev, ok := claims[best.ID]; !ok || bestD < prev.dist {
			claims[best.ID] = claim{actor: actorID, dist: bestD}
		}
	}

	for _, z := range zones {
		if cl, ok := claims[z.ID]; ok {
			c.Bus.Emit(z.ID, domain.Interaction{Actor: cl.actor})
		}
	}
}

// onInteraction pays out chest loot once. Portals are left to the host.
func onInteraction(c *Context, ownerID, actorID types.EntityID) error {
	log := c.log("interaction").WithFields(logrus.Fields{"owner": ownerID, "actor": actorID})

	owner, ok := c.World.Get(ownerID)
	if !ok {
		return nil
	}
	switch {
	case owner.Loot != nil:
		if owner.Loot.Claimed {
			return nil
		}
		a, ok := c.World.Get(actorID)
		if !ok || a.Inventory == nil {
			return nil
		}
		a.Inventory.AddCoins(owner.Loot.Coins)
		owner.Loot.Claimed = true
		c.World.Remove(ownerID, domain.CompInteraction)
		log.WithField("coins", owner.Loot.Coins).Info("chest opened")
	case owner.Portal != nil:
		log.WithField("exit", owner.Portal.Index).Info("portal reached")
	}
	return nil
}
