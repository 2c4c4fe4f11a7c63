package systems

import (
	"babayaga/internal/core/types"
	"babayaga/internal/domain"
	"babayaga/pkg/utils"

	"github.com/sirupsen/logrus"
)

func registerDamage(c *Context) {
	domain.Observe(c.Bus, func(target types.EntityID, p domain.AttemptDamage) error {
		return ResolveDamage(c, target, p)
	})
	domain.Observe(c.Bus, func(target types.EntityID, _ domain.Defeated) error {
		return handleDefeat(c, target)
	})
	domain.Observe(c.Bus, func(target types.EntityID, p domain.ApplyEffect) error {
		for _, t := range p.Effects {
			c.Bus.Emit(target, domain.ApplyStatus{Template: t})
		}
		return nil
	})
}

// resolveHurtbox follows a hurtbox to the actor that owns it.
func resolveHurtbox(c *Context, id types.EntityID) (*domain.Entity, bool) {
	e, ok := c.World.Get(id)
	if !ok {
		return nil, false
	}
	if e.Hurtbox != nil && !e.Hurtbox.Owner.IsNil() && e.Hurtbox.Owner != e.ID {
		return c.World.Get(e.Hurtbox.Owner)
	}
	return e, true
}

// Invulnerable includes an i-frame insert still waiting for Commit, so a
// second strike in the same tick is blocked too.
func Invulnerable(c *Context, e *domain.Entity) bool {
	return e.Invulnerable != nil || c.World.PendingInsert(e.ID, domain.CompInvulnerable)
}

// ResolveDamage turns one AttemptDamage into at most one health mutation.
func ResolveDamage(c *Context, target types.EntityID, p domain.AttemptDamage) error {
	log := c.log("damage").WithFields(logrus.Fields{"target": target, "source": p.Source})

	e, ok := resolveHurtbox(c, target)
	if !ok || e.Health == nil {
		log.Debug("damage target gone or has no health")
		return nil
	}
	if e.Health.IsDead() {
		return nil
	}
	if !p.IgnoreInvuln && Invulnerable(c, e) {
		log.Debug("strike absorbed by invulnerability")
		return nil
	}

	amount := utils.UniformFloat32(c.Rng, p.Amount.Min, p.Amount.Max)
	delta := e.Health.TakeDamage(amount)
	if delta > 0 {
		c.Bus.Emit(e.ID, domain.DamageDealt{Delta: delta, Source: p.Source})
	}
	log.WithFields(logrus.Fields{"delta": delta, "hp": e.Health.Current}).Debug("damage applied")

	if e.Health.IsDead() {
		c.Bus.Emit(e.ID, domain.Defeated{})
		return nil
	}

	src, hasSrc := c.World.Get(p.Source)
	if hasSrc {
		if src.Effects != nil && len(src.Effects.Effects) > 0 {
			c.Bus.Emit(e.ID, domain.ApplyEffect{Effects: src.Effects.Clone().Effects})
		}
		applyKnockback(c, e, src)
	}

	if e.IFrames != nil && !p.IgnoreInvuln {
		c.World.Insert(e.ID, domain.NewInvulnerable(e.IFrames.Duration, e.IFrames.FlashPeriod))
	}
	return nil
}

// applyKnockback pushes the target away from the strike origin.
func applyKnockback(c *Context, target, src *domain.Entity) {
	if target.Motion == nil {
		return
	}
	var force float32
	origin := src.Pos
	switch {
	case src.Melee != nil:
		force = src.Melee.Knockback
		if src.Equipped != nil {
			if holder, ok := c.World.Get(src.Equipped.Holder); ok {
				origin = holder.Pos
			}
		}
	case src.Projectile != nil:
		force = src.Projectile.Knockback
		if src.Velocity != nil && !src.Velocity.V.IsZero() {
			target.Motion.Push(src.Velocity.V.Normalize().Scale(force))
			return
		}
	}
	if force <= 0 {
		return
	}
	dir := target.Pos.Sub(origin).Normalize()
	if dir.IsZero() {
		return
	}
	target.Motion.Push(dir.Scale(force))
}

// handleDefeat runs the death sequence once per death.
func handleDefeat(c *Context, target types.EntityID) error {
	e, ok := c.World.Get(target)
	if !ok {
		return nil
	}
	log := c.log("damage").WithField("target", target)

	if e.Action != nil {
		if !e.Action.Fire(domain.TransitionDefeat) {
			return c.Breach(domain.Breach("duplicate Defeated for %s", target))
		}
	}
	if e.Motion != nil {
		e.Motion.Halt()
		e.Motion.Direction = domain.Vec2{}
		e.Motion.ClearDebuff()
	}
	if e.Brain != nil {
		e.Brain.Forget()
	}

	c.World.Insert(e.ID, domain.NewInvulnerable(c.Rules.DeathInvulnerability, 0))
	if c.Scheduler != nil {
		c.Scheduler.ScheduleDespawn(e.ID, c.Rules.CorpseLifetime)
	} else {
		c.World.Despawn(e.ID)
	}

	log.Info("actor defeated")
	return nil
}
