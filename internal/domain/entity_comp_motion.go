package domain

import "babayaga/internal/core/types/enums"

// impulseDecay is the fraction of a knockback impulse kept per second.
const impulseDecay = 0.001

// Motion drives actor movement. Debuff is the single slow/stun slot:
// 0 is unhindered, 1 is stunned.
type Motion struct {
	Direction    Vec2         `json:"direction"`
	MaxSpeed     float32      `json:"maxSpeed"`
	CurrentSpeed float32      `json:"currentSpeed"`
	Debuff       float32      `json:"debuff"`
	Impulse      Vec2         `json:"impulse"`
	Facing       enums.Facing `json:"facing"`
}

func NewMotion(maxSpeed float32) *Motion {
	return &Motion{MaxSpeed: maxSpeed}
}

// SetDirection normalises dir and updates Facing from its dominant axis.
// A zero direction keeps the old facing.
func (m *Motion) SetDirection(dir Vec2) {
	m.Direction = dir.Normalize()
	if !m.Direction.IsZero() {
		m.Facing = FacingOf(m.Direction)
	}
}

// Go starts moving along dir at full speed.
func (m *Motion) Go(dir Vec2) {
	m.SetDirection(dir)
	if m.Direction.IsZero() {
		m.CurrentSpeed = 0
		return
	}
	m.CurrentSpeed = m.MaxSpeed
}

func (m *Motion) Halt() {
	m.CurrentSpeed = 0
	m.Impulse = Vec2{}
}

func (m *Motion) Stun()          { m.Debuff = 1 }
func (m *Motion) Slow(f float32) { m.Debuff = f }
func (m *Motion) ClearDebuff()   { m.Debuff = 0 }

func (m *Motion) Stunned() bool { return m.Debuff >= 1 }

func (m *Motion) IsMoving() bool {
	return m.CurrentSpeed > 0 && m.Debuff < 1
}

// Velocity is the effective velocity for this tick, impulse included.
func (m *Motion) Velocity() Vec2 {
	k := 1 - m.Debuff
	if k <= 0 {
		return Vec2{}
	}
	v := m.Direction.Scale(m.CurrentSpeed * k).ClampLen(m.MaxSpeed)
	return v.Add(m.Impulse.Scale(k))
}

// Push adds a knockback impulse.
func (m *Motion) Push(impulse Vec2) {
	m.Impulse = m.Impulse.Add(impulse)
}

// Decay shrinks the impulse; tiny leftovers are dropped.
func (m *Motion) Decay(dt float32) {
	if m.Impulse.IsZero() {
		return
	}
	m.Impulse = m.Impulse.Scale(pow32(impulseDecay, dt))
	if m.Impulse.LenSq() < 1 {
		m.Impulse = Vec2{}
	}
}

// FacingOf maps a direction to the four-way facing. Horizontal wins ties;
// +Y is down the screen.
func FacingOf(dir Vec2) enums.Facing {
	ax, ay := dir.X, dir.Y
	if ax < 0 {
		ax = -ax
	}
	if ay < 0 {
		ay = -ay
	}
	if ax >= ay {
		if dir.X < 0 {
			return enums.FacingLeft
		}
		return enums.FacingRight
	}
	if dir.Y > 0 {
		return enums.FacingDown
	}
	return enums.FacingUp
}

// FacingVector is the unit vector for a facing.
func FacingVector(f enums.Facing) Vec2 {
	switch f {
	case enums.FacingUp:
		return Vec2{0, -1}
	case enums.FacingLeft:
		return Vec2{-1, 0}
	case enums.FacingRight:
		return Vec2{1, 0}
	}
	return Vec2{0, 1}
}

func (*Motion) ComponentKind() ComponentKind { return CompMotion }
