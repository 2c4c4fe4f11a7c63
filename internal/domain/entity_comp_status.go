package domain

import "babayaga/internal/core/types/enums"

// StatusTemplate describes a status to apply. Weapons carry a list of these
// (EffectsList) and imprint them on every hit.
type StatusTemplate struct {
	Kind          enums.StatusKind `json:"kind" msgpack:"kind"`
	Duration      float32          `json:"duration" msgpack:"duration"`
	DamagePerTick float32          `json:"damagePerTick,omitempty" msgpack:"damagePerTick,omitempty"`
	TickInterval  float32          `json:"tickInterval,omitempty" msgpack:"tickInterval,omitempty"`
	SlowFrac      float32          `json:"slowFrac,omitempty" msgpack:"slowFrac,omitempty"`
}

func Burning(damagePerTick, interval, duration float32) StatusTemplate {
	return StatusTemplate{Kind: enums.StatusBurning, Duration: duration, DamagePerTick: damagePerTick, TickInterval: interval}
}

func Slowed(frac, duration float32) StatusTemplate {
	return StatusTemplate{Kind: enums.StatusSlowed, Duration: duration, SlowFrac: frac}
}

func Stunned(duration float32) StatusTemplate {
	return StatusTemplate{Kind: enums.StatusStunned, Duration: duration}
}

func Frozen(duration float32) StatusTemplate {
	return StatusTemplate{Kind: enums.StatusFrozen, Duration: duration}
}

// Status lives on a child entity of the afflicted actor.
type Status struct {
	Kind     enums.StatusKind `json:"kind"`
	Duration Timer            `json:"duration"`

	// Burning
	DamagePerTick float32   `json:"damagePerTick,omitempty"`
	Tick          Repeating `json:"tick"`

	// Slowed
	SlowFrac float32 `json:"slowFrac,omitempty"`
}

func NewStatus(t StatusTemplate) *Status {
	return &Status{
		Kind:          t.Kind,
		Duration:      NewTimer(t.Duration),
		DamagePerTick: t.DamagePerTick,
		Tick:          Repeating{Interval: t.TickInterval},
		SlowFrac:      t.SlowFrac,
	}
}

// Expired statuses are despawned by the status system.
func (s *Status) Expired() bool {
	return s.Duration.Finished()
}

func (*Status) ComponentKind() ComponentKind { return CompStatus }
