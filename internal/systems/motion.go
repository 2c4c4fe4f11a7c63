package systems

import (
	"babayaga/internal/domain"
	"babayaga/pkg/zone"
)

// StartMoving points the actor along dir at full speed.
func StartMoving(e *domain.Entity, dir domain.Vec2) {
	if e.Motion == nil || e.IsDefeated() {
		return
	}
	e.Motion.Go(dir)
	if e.Action != nil && e.Motion.CurrentSpeed > 0 {
		e.Action.Fire(domain.TransitionMove)
	}
}

// StopMoving halts voluntary movement. Knockback keeps decaying.
func StopMoving(e *domain.Entity) {
	if e.Motion == nil {
		return
	}
	e.Motion.CurrentSpeed = 0
	if e.Action != nil {
		e.Action.Fire(domain.TransitionStop)
	}
}

// ApplyMotion integrates actor positions. Loaded terrain blocks per axis, so
// actors slide along walls. The dead do not move.
func ApplyMotion(c *Context, dt float32) {
	c.World.Each(func(e *domain.Entity) {
		m := e.Motion
		if m == nil || e.IsDefeated() {
			return
		}
		v := m.Velocity()
		m.Decay(dt)
		if v.IsZero() {
			return
		}

		half := domain.Vec2{X: domain.ActorHalfExtent, Y: domain.ActorHalfExtent}
		if e.Hurtbox != nil {
			half = e.Hurtbox.Half
		}

		step := v.Scale(dt)
		next := domain.Vec2{X: e.Pos.X + step.X, Y: e.Pos.Y}
		if !blocked(c.Terrain, next, half) {
			e.Pos.X = next.X
		}
		next = domain.Vec2{X: e.Pos.X, Y: e.Pos.Y + step.Y}
		if !blocked(c.Terrain, next, half) {
			e.Pos.Y = next.Y
		}
	})
}

// blocked checks the tiles under each corner of the box.
func blocked(t Terrain, center, half domain.Vec2) bool {
	if t == nil {
		return false
	}
	// Shrink a hair so a box flush with a tile edge does not touch the next tile.
	const inset = 0.01
	min := center.Sub(half)
	max := center.Add(half)
	xs := [2]float32{min.X + inset, max.X - inset}
	ys := [2]float32{min.Y + inset, max.Y - inset}
	for _, x := range xs {
		for _, y := range ys {
			if t.Blocked(zone.TileOf(x), zone.TileOf(y)) {
				return true
			}
		}
	}
	return false
}
