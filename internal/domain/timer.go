package domain

// timerEpsilon absorbs float32 drift from summing 1/60 steps, so a 0.3 s
// cooldown finishes after exactly 18 ticks.
const timerEpsilon = 1e-4

// Timer counts elapsed seconds up to Duration. It never runs backwards.
type Timer struct {
	Duration float32 `json:"duration" msgpack:"duration"`
	Elapsed  float32 `json:"elapsed" msgpack:"elapsed"`
}

func NewTimer(duration float32) Timer {
	return Timer{Duration: duration}
}

// NewFinishedTimer is used for cooldowns, which start ready.
func NewFinishedTimer(duration float32) Timer {
	return Timer{Duration: duration, Elapsed: duration}
}

// Tick advances the timer, saturating at Duration.
func (t *Timer) Tick(dt float32) {
	if dt <= 0 {
		return
	}
	t.Elapsed += dt
	if t.Elapsed > t.Duration {
		t.Elapsed = t.Duration
	}
}

func (t *Timer) Finished() bool {
	return t.Elapsed+timerEpsilon >= t.Duration
}

func (t *Timer) Remaining() float32 {
	if t.Finished() {
		return 0
	}
	return t.Duration - t.Elapsed
}

// Fraction is progress in [0, 1]. A zero-length timer is complete.
func (t *Timer) Fraction() float32 {
	if t.Duration <= 0 || t.Finished() {
		return 1
	}
	return t.Elapsed / t.Duration
}

func (t *Timer) Reset() {
	t.Elapsed = 0
}

// Extend grows the timer so that at least remaining seconds are left.
// It never shortens the timer.
func (t *Timer) Extend(remaining float32) {
	if remaining <= t.Remaining() {
		return
	}
	t.Duration = t.Elapsed + remaining
}

// Repeating fires once per Interval and keeps the overshoot.
type Repeating struct {
	Interval float32 `json:"interval" msgpack:"interval"`
	Acc      float32 `json:"acc" msgpack:"acc"`
}

// Tick returns how many times the interval rolled over.
func (r *Repeating) Tick(dt float32) int {
	if r.Interval <= 0 || dt <= 0 {
		return 0
	}
	r.Acc += dt
	n := 0
	for r.Acc+timerEpsilon >= r.Interval {
		r.Acc -= r.Interval
		if r.Acc < 0 {
			r.Acc = 0
		}
		n++
	}
	return n
}
