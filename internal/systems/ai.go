package systems

import (
	"math"

	"babayaga/internal/core/types"
	"babayaga/internal/core/types/enums"
	"babayaga/internal/domain"
	"babayaga/internal/domain/constraints"
)

// IntentKind is what an AI-driven actor wants this tick.
type IntentKind uint8

const (
	IntentNone IntentKind = iota
	IntentMove
	IntentStop
	IntentAttack
)

// Intent is an AI decision. Bots route it through the facade; brains apply
// it directly.
type Intent struct {
	Kind   IntentKind
	Dir    domain.Vec2
	Target types.EntityID
}

// nearestTarget finds the closest living actor e may strike, within radius
// and line of sight.
func nearestTarget(c *Context, e *domain.Entity, radius float32) (*domain.Entity, float32) {
	var best *domain.Entity
	var bestD float32
	pred := constraints.StrikeableBy{Mask: StrikeMask(e.Faction)}
	c.World.Each(func(o *domain.Entity) {
		if o.ID == e.ID || !pred.Match(o, c.World) {
			return
		}
		d := e.Pos.DistanceTo(o.Pos)
		if d > radius {
			return
		}
		if best != nil && d >= bestD {
			return
		}
		if !HasLineOfSight(c.Terrain, e.Pos, o.Pos) {
			return
		}
		best, bestD = o, d
	})
	return best, bestD
}

// mainhandReady reports whether the mainhand item could be used right now.
func mainhandReady(c *Context, e *domain.Entity) bool {
	if e.Inventory == nil {
		return false
	}
	id, ok := e.Inventory.InSlot(enums.SlotMainhand)
	if !ok {
		return false
	}
	it, ok := c.World.Get(id)
	if !ok || it.Equippable == nil || !it.Equippable.Cooldown.Finished() {
		return false
	}
	if it.ManaCost != nil && (e.Mana == nil || e.Mana.Current < it.ManaCost.Cost) {
		return false
	}
	return true
}

// Decide is "chase if in range, else wander". Wandering re-rolls once per
// interval using the simulation RNG.
func Decide(c *Context, e *domain.Entity, b *domain.Brain, dt float32) Intent {
	if target, dist := nearestTarget(c, e, b.AggroRadius); target != nil {
		b.Target = target.ID
		dir := target.Pos.Sub(e.Pos)
		if dist <= b.AttackRange {
			if mainhandReady(c, e) {
				return Intent{Kind: IntentAttack, Dir: dir, Target: target.ID}
			}
			return Intent{Kind: IntentStop, Dir: dir, Target: target.ID}
		}
		return Intent{Kind: IntentMove, Dir: dir, Target: target.ID}
	}

	if b.HasTarget() {
		b.Forget()
		return Intent{Kind: IntentStop}
	}
	if b.Wander.Tick(dt) == 0 {
		return Intent{}
	}
	if c.Rng.Float32() >= b.WanderChance {
		return Intent{Kind: IntentStop}
	}
	angle := float32(c.Rng.Intn(8)) * math.Pi / 4
	return Intent{Kind: IntentMove, Dir: domain.FromAngle(angle)}
}

// ThinkAI applies brain decisions. Attacks go through the normal use
// pipeline as UseRequest events.
func ThinkAI(c *Context, dt float32) {
	c.World.Each(func(e *domain.Entity) {
		b := e.Brain
		if b == nil || e.Motion == nil || e.IsDefeated() {
			return
		}
		in := Decide(c, e, b, dt)
		switch in.Kind {
		case IntentMove:
			StartMoving(e, in.Dir)
		case IntentStop:
			StopMoving(e)
			e.Motion.SetDirection(in.Dir)
		case IntentAttack:
			StopMoving(e)
			c.Bus.Emit(e.ID, domain.UseRequest{Slot: enums.SlotMainhand, Aim: in.Dir})
		}
	})
}
