package systems

import (
	"babayaga/internal/core/types"
	"babayaga/internal/core/types/enums"
	"babayaga/internal/domain"
	"babayaga/pkg/zone"

	"github.com/sirupsen/logrus"
)

// FireProjectile spawns a projectile in front of the holder. The faction is
// recorded now; the holder may be dead by the time it lands.
func FireProjectile(c *Context, item, holder *domain.Entity, aim domain.Vec2) *domain.Entity {
	spec := *item.Projectile
	faction := item.Faction

	p := c.World.Spawn(enums.EntityKindProjectile, types.NilEntityID)
	p.Name = item.Name
	p.Faction = faction
	p.Pos = holder.Pos.Add(aim.Scale(spec.SpawnOffset))
	p.Rotation = aim.Angle()
	p.Projectile = &spec
	p.Velocity = &domain.Velocity{V: aim.Scale(spec.Speed)}
	p.Lifetime = &domain.Lifetime{Timer: domain.NewTimer(spec.Lifetime)}
	p.Effects = item.Effects.Clone()
	p.Hitbox = &domain.Hitbox{Half: spec.HitboxHalf, Faction: faction, Filter: StrikeMask(faction)}
	p.Source = &domain.SourceFaction{Faction: faction, Source: holder.ID}

	if holder.Motion != nil {
		holder.Motion.SetDirection(aim)
	}
	if holder.Action != nil {
		holder.Action.Fire(domain.TransitionCast)
	}

	c.log("projectile").WithFields(logrus.Fields{
		"projectile": p.ID,
		"holder":     holder.ID,
		"faction":    faction,
	}).Debug("projectile fired")
	return p
}

// AdvanceProjectiles integrates positions and then lifetimes. Expired or
// wall-struck projectiles are despawned before collide sees them.
func AdvanceProjectiles(c *Context, dt float32) {
	c.World.Each(func(p *domain.Entity) {
		if p.Velocity == nil || p.Lifetime == nil {
			return
		}
		p.Pos = p.Pos.Add(p.Velocity.V.Scale(dt))
		p.Lifetime.Timer.Tick(dt)

		if p.Lifetime.Timer.Finished() {
			c.World.Despawn(p.ID)
			return
		}
		if c.Terrain != nil && c.Terrain.Opaque(zone.TileOf(p.Pos.X), zone.TileOf(p.Pos.Y)) {
			c.World.Despawn(p.ID)
		}
	})
}

// projectileHits is the collide step for one projectile. A reflector wins
// over anything else it touches this tick.
func projectileHits(c *Context, p *domain.Entity, hurtboxes []*domain.Entity) {
	if len(hurtboxes) == 0 {
		return
	}
	log := c.log("projectile").WithField("projectile", p.ID)

	for _, hb := range hurtboxes {
		if hb.Reflector == nil {
			continue
		}
		reflectProjectile(p, hb)
		log.WithField("faction", p.Source.Faction).Debug("projectile reflected")
		return
	}

	target := closest(p.Pos, hurtboxes)
	c.Bus.Emit(target.ID, domain.AttemptDamage{
		Amount: p.Projectile.Damage,
		Source: p.ID,
	})
	c.World.Despawn(p.ID)
	log.WithField("target", target.ID).Debug("projectile hit")
}

// reflectProjectile hands the projectile to the reflector's owner, so it
// can now strike whoever fired it.
func reflectProjectile(p, reflector *domain.Entity) {
	faction := reflector.Hurtbox.Faction
	p.Velocity.V = p.Velocity.V.Neg()
	p.Rotation = p.Velocity.V.Angle()
	p.Faction = faction
	p.Source.Faction = faction
	if !reflector.Hurtbox.Owner.IsNil() {
		p.Source.Source = reflector.Hurtbox.Owner
	}
	p.Hitbox.Faction = faction
	p.Hitbox.Filter = StrikeMask(faction)
}

func closest(from domain.Vec2, es []*domain.Entity) *domain.Entity {
	best := es[0]
	bestD := from.Sub(best.Pos).LenSq()
	for _, e := range es[1:] {
		if d := from.Sub(e.Pos).LenSq(); d < bestD {
			best, bestD = e, d
		}
	}
	return best
}
