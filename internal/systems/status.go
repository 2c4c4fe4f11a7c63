package systems

import (
	"babayaga/internal/core/types"
	"babayaga/internal/core/types/enums"
	"babayaga/internal/domain"

	"github.com/sirupsen/logrus"
)

func registerStatuses(c *Context) {
	domain.Observe(c.Bus, func(target types.EntityID, p domain.ApplyStatus) error {
		return ApplyStatus(c, target, p.Template)
	})
	c.World.OnInsert(domain.CompStatus, func(e *domain.Entity) error {
		return onStatusInsert(c, e)
	})
	c.World.OnRemove(domain.CompStatus, func(e *domain.Entity) error {
		return onStatusRemove(c, e)
	})
}

// findStatus returns the parent's pending or live status of kind k.
func findStatus(c *Context, parent types.EntityID, k enums.StatusKind) (*domain.Entity, bool) {
	for _, id := range c.World.Children(parent) {
		if !c.World.Alive(id) {
			continue
		}
		ch, ok := c.World.Get(id)
		if ok && ch.Status != nil && ch.Status.Kind == k && !ch.Status.Expired() {
			return ch, true
		}
	}
	return nil, false
}

// ApplyStatus attaches a status child to target, or extends an existing one
// of the same kind to the greater remaining duration.
func ApplyStatus(c *Context, target types.EntityID, t domain.StatusTemplate) error {
	log := c.log("status").WithFields(logrus.Fields{"target": target, "status": t.Kind})

	parent, ok := c.World.Get(target)
	if !ok || !c.World.Alive(target) || !parent.IsActor() {
		log.Debug("status target gone")
		return nil
	}
	if parent.IsDefeated() || parent.Health.IsDead() {
		log.Debug("statuses are not applied to the dead")
		return nil
	}
	if t.Duration <= 0 {
		return nil
	}
	if t.SlowFrac < 0 || t.SlowFrac > 1 {
		if err := c.Breach(domain.Breach("slow fraction %v outside [0, 1]", t.SlowFrac)); err != nil {
			return err
		}
		t.SlowFrac = max(0, min(1, t.SlowFrac))
	}

	if existing, ok := findStatus(c, target, t.Kind); ok {
		existing.Status.Duration.Extend(t.Duration)
		if t.Kind == enums.StatusFrozen {
			c.Bus.Emit(target, domain.ApplyStatus{Template: domain.Stunned(existing.Status.Duration.Remaining())})
		}
		log.WithField("remaining", existing.Status.Duration.Remaining()).Debug("status refreshed")
		return nil
	}

	st := c.World.Spawn(enums.EntityKindStatus, target)
	st.Name = t.Kind.String()
	st.Pos = parent.Pos
	st.Status = domain.NewStatus(t)
	log.WithField("duration", t.Duration).Debug("status attached")
	return nil
}

// RecomputeDebuff sets the parent's motion debuff from its live statuses.
// Immobilizing statuses dominate; otherwise the strongest slow applies.
func RecomputeDebuff(c *Context, parent types.EntityID) {
	p, ok := c.World.Get(parent)
	if !ok || p.Motion == nil {
		return
	}

	stunned := false
	var slow float32
	for _, id := range c.World.Children(parent) {
		if c.World.Despawning(id) {
			continue
		}
		ch, ok := c.World.Get(id)
		if !ok || ch.Status == nil || ch.Status.Expired() {
			continue
		}
		switch {
		case ch.Status.Kind.Immobilizing():
			stunned = true
		case ch.Status.Kind == enums.StatusSlowed:
			slow = max(slow, ch.Status.SlowFrac)
		}
	}

	switch {
	case stunned:
		p.Motion.Stun()
	case slow > 0:
		p.Motion.Slow(slow)
	default:
		p.Motion.ClearDebuff()
	}
}

func onStatusInsert(c *Context, e *domain.Entity) error {
	RecomputeDebuff(c, e.Parent)
	if e.Status.Kind == enums.StatusFrozen {
		// The stun mirrors the freeze so it ends no earlier.
		c.Bus.Emit(e.Parent, domain.ApplyStatus{Template: domain.Stunned(e.Status.Duration.Remaining())})
	}
	return nil
}

func onStatusRemove(c *Context, e *domain.Entity) error {
	RecomputeDebuff(c, e.Parent)
	if e.Status.Kind == enums.StatusStunned && c.World.Alive(e.Parent) {
		c.Bus.Emit(e.Parent, domain.ApplyStatus{
			Template: domain.Slowed(domain.StunAftermathSlow, domain.StunAftermathDuration),
		})
	}
	return nil
}

// AdvanceStatuses ticks every status. Burning rolls its damage accumulator
// before the duration so the last interval still deals damage.
func AdvanceStatuses(c *Context, dt float32) {
	c.World.Each(func(e *domain.Entity) {
		st := e.Status
		if st == nil {
			return
		}
		if !c.World.Alive(e.Parent) {
			c.World.Despawn(e.ID)
			return
		}

		if st.Kind == enums.StatusBurning && st.DamagePerTick > 0 {
			for n := st.Tick.Tick(dt); n > 0; n-- {
				c.Bus.Emit(e.Parent, domain.AttemptDamage{
					Amount:       domain.Fixed(st.DamagePerTick),
					IgnoreInvuln: true,
				})
			}
		}

		st.Duration.Tick(dt)
		if st.Expired() {
			c.World.Despawn(e.ID)
		}
	})
}

// Statuses lists the parent's live status kinds, for queries.
func Statuses(c *Context, parent types.EntityID) []enums.StatusKind {
	var out []enums.StatusKind
	for _, id := range c.World.Children(parent) {
		if !c.World.Alive(id) {
			continue
		}
		if ch, ok := c.World.Get(id); ok && ch.Status != nil {
			out = append(out, ch.Status.Kind)
		}
	}
	return out
}
