package domain

// Health is clamped to [0, Max] after every mutation.
type Health struct {
	Current float32 `json:"current" msgpack:"current"`
	Max     float32 `json:"max" msgpack:"max"`
}

func NewHealth(max float32) *Health {
	return &Health{Current: max, Max: max}
}

// TakeDamage returns the amount actually removed. A dead actor takes nothing.
func (h *Health) TakeDamage(amount float32) float32 {
	if amount <= 0 || h.Current <= 0 {
		return 0
	}
	delta := min(amount, h.Current)
	h.Current -= delta
	h.clamp()
	return delta
}

// Heal returns the amount actually added.
func (h *Health) Heal(amount float32) float32 {
	if amount <= 0 || h.Current >= h.Max {
		return 0
	}
	delta := min(amount, h.Max-h.Current)
	h.Current += delta
	h.clamp()
	return delta
}

func (h *Health) IsDead() bool {
	return h.Current <= 0
}

func (h *Health) clamp() {
	h.Current = max(0, min(h.Current, h.Max))
}

// Mana regenerates continuously; there is no delay after spending.
type Mana struct {
	Current float32 `json:"current" msgpack:"current"`
	Max     float32 `json:"max" msgpack:"max"`
	Regen   float32 `json:"regen" msgpack:"regen"`
}

func NewMana(max, regen float32) *Mana {
	return &Mana{Current: max, Max: max, Regen: regen}
}

// TryConsume deducts cost only when enough mana is available.
func (m *Mana) TryConsume(cost float32) bool {
	if cost <= 0 {
		return true
	}
	if m.Current < cost {
		return false
	}
	m.Current -= cost
	return true
}

func (m *Mana) Regenerate(dt float32) {
	if m.Regen <= 0 || dt <= 0 {
		return
	}
	m.Current = min(m.Max, m.Current+m.Regen*dt)
}

// Restore adds mana from a consumable and returns the added amount.
func (m *Mana) Restore(amount float32) float32 {
	if amount <= 0 || m.Current >= m.Max {
		return 0
	}
	delta := min(amount, m.Max-m.Current)
	m.Current += delta
	return delta
}

// IFrameConfig opts an actor into post-hit invulnerability.
type IFrameConfig struct {
	Duration    float32 `json:"duration" msgpack:"duration"`
	FlashPeriod float32 `json:"flashPeriod" msgpack:"flashPeriod"`
}

// Invulnerable blocks strikes (not DOTs) until Timer finishes.
// Dimmed toggles every flash period for the renderer.
type Invulnerable struct {
	Timer  Timer     `json:"timer"`
	Flash  Repeating `json:"flash"`
	Dimmed bool      `json:"dimmed"`
}

func NewInvulnerable(duration, flashPeriod float32) *Invulnerable {
	return &Invulnerable{
		Timer: NewTimer(duration),
		Flash: Repeating{Interval: flashPeriod},
	}
}

func (*Health) ComponentKind() ComponentKind       { return CompHealth }
func (*Mana) ComponentKind() ComponentKind         { return CompMana }
func (*IFrameConfig) ComponentKind() ComponentKind { return CompIFrames }
func (*Invulnerable) ComponentKind() ComponentKind { return CompInvulnerable }
