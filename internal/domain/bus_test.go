package domain

import (
	"errors"
	"testing"

	"babayaga/internal/core/types"
)

func TestBus_FIFOAndNestedOrdering(t *testing.T) {
	b := NewBus(8)
	var order []string
	target := types.PackEntityID(1, 1, 1)

	Observe(b, func(_ types.EntityID, p AttemptDamage) error {
		order = append(order, "attempt")
		b.Emit(target, DamageDealt{Delta: 1})
		return nil
	})
	Observe(b, func(_ types.EntityID, p DamageDealt) error {
		order = append(order, "dealt")
		return nil
	})
	Observe(b, func(_ types.EntityID, p Healed) error {
		order = append(order, "healed")
		return nil
	})

	b.Emit(target, AttemptDamage{Amount: Fixed(1)})
	b.Emit(target, Healed{Delta: 1})

	if err := b.Dispatch(); err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}

	want := []string{"attempt", "healed", "dealt"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestBus_ObserversRunInRegistrationOrder(t *testing.T) {
	b := NewBus(8)
	var order []int
	for i := 0; i < 3; i++ {
		i := i
		b.On(EventDefeated, func(Event) error {
			order = append(order, i)
			return nil
		})
	}
	b.Emit(types.NilEntityID, Defeated{})
	_ = b.Dispatch()

	for i, v := range order {
		if v != i {
			t.Fatalf("order = %v", order)
		}
	}
}

func TestBus_UnboundedCycleFails(t *testing.T) {
	b := NewBus(4)
	Observe(b, func(target types.EntityID, p ApplyStatus) error {
		b.Emit(target, p)
		return nil
	})
	b.Emit(types.NilEntityID, ApplyStatus{Template: Stunned(1)})

	err := b.Dispatch()
	if !errors.Is(err, ErrDispatchDepth) {
		t.Fatalf("Dispatch() error = %v, want ErrDispatchDepth", err)
	}
	if !errors.Is(err, ErrPreconditionViolation) {
		t.Error("depth errors must be precondition violations")
	}
	if b.Pending() != 0 {
		t.Error("queue not dropped after a fatal dispatch")
	}
}

func TestBus_TapSeesEveryEvent(t *testing.T) {
	b := NewBus(8)
	b.SetTick(7)
	var seen []Event
	b.Tap(func(ev Event) { seen = append(seen, ev) })

	b.Emit(types.NilEntityID, Healed{Delta: 2})
	b.Emit(types.NilEntityID, Defeated{})
	_ = b.Dispatch()

	if len(seen) != 2 {
		t.Fatalf("tap saw %d events, want 2", len(seen))
	}
	if seen[0].Tick != 7 || seen[0].Type != EventHealed {
		t.Errorf("first event = %+v", seen[0])
	}
	if seen[1].Seq <= seen[0].Seq {
		t.Error("sequence numbers must increase")
	}
}

func TestBus_ObserverErrorAborts(t *testing.T) {
	b := NewBus(8)
	boom := errors.New("boom")
	b.On(EventHealed, func(Event) error { return boom })
	b.Emit(types.NilEntityID, Healed{})
	b.Emit(types.NilEntityID, Healed{})

	if err := b.Dispatch(); !errors.Is(err, boom) {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if b.Pending() != 0 {
		t.Error("remaining events must be dropped")
	}
}
