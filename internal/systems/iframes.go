package systems

import "babayaga/internal/domain"

// AdvanceIFrames counts invulnerability down, toggles the flash flag and
// queues removal when the window closes.
func AdvanceIFrames(c *Context, dt float32) {
	c.World.Each(func(e *domain.Entity) {
		inv := e.Invulnerable
		if inv == nil {
			return
		}
		if flips := inv.Flash.Tick(dt); flips%2 == 1 {
			inv.Dimmed = !inv.Dimmed
		}
		inv.Timer.Tick(dt)
		if inv.Timer.Finished() {
			inv.Dimmed = false
			c.World.Remove(e.ID, domain.CompInvulnerable)
		}
	})
}
