package systems

import "babayaga/internal/domain"

// RegenerateMana runs every tick for living actors. There is no delay
// after spending.
func RegenerateMana(c *Context, dt float32) {
	c.World.Each(func(e *domain.Entity) {
		if e.Mana == nil || e.IsDefeated() {
			return
		}
		e.Mana.Regenerate(dt)
	})
}

// CheckBounds enforces 0 <= hp <= max and 0 <= mana <= max on every actor.
// Out-of-range values are breaches; they are clamped unless strict.
func CheckBounds(c *Context) error {
	var err error
	c.World.Each(func(e *domain.Entity) {
		if err != nil {
			return
		}
		if h := e.Health; h != nil && (h.Current < 0 || h.Current > h.Max) {
			if err = c.Breach(domain.Breach("%s hp %v outside [0, %v]", e.ID, h.Current, h.Max)); err == nil {
				h.Current = max(0, min(h.Current, h.Max))
			}
		}
		if m := e.Mana; err == nil && m != nil && (m.Current < 0 || m.Current > m.Max) {
			if err = c.Breach(domain.Breach("%s mana %v outside [0, %v]", e.ID, m.Current, m.Max)); err == nil {
				m.Current = max(0, min(m.Current, m.Max))
			}
		}
	})
	return err
}

// Heal restores hp and emits Healed when anything was added.
func Heal(c *Context, e *domain.Entity, amount float32) float32 {
	if e.Health == nil || e.IsDefeated() {
		return 0
	}
	delta := e.Health.Heal(amount)
	if delta > 0 {
		c.Bus.Emit(e.ID, domain.Healed{Delta: delta})
	}
	return delta
}
