package domain

import (
	"fmt"

	"babayaga/internal/core/types"
)

// Event is one queued message. Depth counts how many dispatches deep the
// emitter was; input events have depth 0.
type Event struct {
	Seq     uint64         `json:"seq"`
	Tick    uint64         `json:"tick"`
	Type    EventType      `json:"type"`
	Target  types.EntityID `json:"target,omitempty"`
	Payload Payload        `json:"payload"`
	Depth   int            `json:"-"`
}

// Observer handles one event. A returned error aborts the tick.
type Observer func(ev Event) error

// Bus is a tick-local FIFO multicast. Observers of a type run in
// registration order; events they emit are queued behind the current ones.
type Bus struct {
	observers map[EventType][]Observer
	taps      []func(Event)
	queue     []Event
	maxDepth  int
	depth     int
	seq       uint64
	tick      uint64
}

func NewBus(maxDepth int) *Bus {
	return &Bus{
		observers: make(map[EventType][]Observer),
		maxDepth:  maxDepth,
	}
}

// On registers fn for t.
func (b *Bus) On(t EventType, fn Observer) {
	b.observers[t] = append(b.observers[t], fn)
}

// Observe registers a typed observer for P.
func Observe[P Payload](b *Bus, fn func(target types.EntityID, p P) error) {
	var zero P
	b.On(zero.EventType(), func(ev Event) error {
		p, ok := ev.Payload.(P)
		if !ok {
			return Precondition("event %s carries %T", ev.Type, ev.Payload)
		}
		return fn(ev.Target, p)
	})
}

// Tap registers a sink that sees every dispatched event after its observers.
func (b *Bus) Tap(fn func(Event)) {
	b.taps = append(b.taps, fn)
}

// SetTick stamps subsequently emitted events.
func (b *Bus) SetTick(t uint64) {
	b.tick = t
}

// Emit queues p for target.
func (b *Bus) Emit(target types.EntityID, p Payload) {
	b.seq++
	b.queue = append(b.queue, Event{
		Seq:     b.seq,
		Tick:    b.tick,
		Type:    p.EventType(),
		Target:  target,
		Payload: p,
		Depth:   b.depth,
	})
}

// Pending is the number of queued events.
func (b *Bus) Pending() int {
	return len(b.queue)
}

// Dispatch drains the queue. An event deeper than the bound means an
// unbounded cycle: the queue is dropped and ErrDispatchDepth returned.
func (b *Bus) Dispatch() error {
	defer func() { b.depth = 0 }()

	for len(b.queue) > 0 {
		ev := b.queue[0]
		b.queue = b.queue[1:]

		if ev.Depth > b.maxDepth {
			b.queue = nil
			return fmt.Errorf("%s on %s at depth %d: %w", ev.Type, ev.Target, ev.Depth, ErrDispatchDepth)
		}

		b.depth = ev.Depth + 1
		for _, obs := range b.observers[ev.Type] {
			if err := obs(ev); err != nil {
				b.queue = nil
				return fmt.Errorf("dispatch %s on %s: %w", ev.Type, ev.Target, err)
			}
		}
		for _, tap := range b.taps {
			tap(ev)
		}
	}
	b.queue = nil
	return nil
}

// Clear drops queued events without dispatching them.
func (b *Bus) Clear() {
	b.queue = nil
	b.depth = 0
}
