package systems

import (
	"errors"
	"math"
	"testing"

	"babayaga/internal/core/types/enums"
	"babayaga/internal/domain"
	"babayaga/pkg/catalog"
)

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-3
}

func (h *harness) apply(t *testing.T, target *domain.Entity, st domain.StatusTemplate) {
	t.Helper()
	h.c.Bus.Emit(target.ID, domain.ApplyStatus{Template: st})
	h.settle(t)
}

func TestBurning_DamagesEveryInterval(t *testing.T) {
	h := newHarness(t)
	hero := h.hero(t, domain.V(64, 64))
	h.apply(t, hero, domain.Burning(2, 0.5, 2))

	h.run(t, 119)
	if hero.Health.Current != 94 {
		t.Fatalf("hp after 119 ticks = %v, want 94", hero.Health.Current)
	}
	if !hasStatus(h.c, hero.ID, enums.StatusBurning) {
		t.Fatal("burn ended early")
	}

	h.step(t)
	if hero.Health.Current != 92 {
		t.Fatalf("hp after 120 ticks = %v, want 92 (last interval still burns)", hero.Health.Current)
	}
	if hasStatus(h.c, hero.ID, enums.StatusBurning) {
		t.Error("burn still attached after its duration")
	}

	h.run(t, 60)
	if hero.Health.Current != 92 {
		t.Errorf("hp = %v, want 92 once the burn is gone", hero.Health.Current)
	}
}

func TestBurning_IgnoresIFrames(t *testing.T) {
	h := newHarness(t)
	hero := h.hero(t, domain.V(64, 64))
	hero.Invulnerable = domain.NewInvulnerable(10, 0)
	h.apply(t, hero, domain.Burning(2, 0.5, 1))

	h.run(t, 60)
	if hero.Health.Current != 96 {
		t.Errorf("hp = %v, want 96", hero.Health.Current)
	}
}

func TestApplyStatus_RefreshKeepsOneChild(t *testing.T) {
	h := newHarness(t)
	hero := h.hero(t, domain.V(64, 64))

	h.apply(t, hero, domain.Burning(2, 0.5, 2))
	h.run(t, 60)
	h.apply(t, hero, domain.Burning(2, 0.5, 2))

	var burns []*domain.Entity
	for _, id := range h.c.World.Children(hero.ID) {
		if ch, ok := h.c.World.Get(id); ok && ch.Status != nil {
			burns = append(burns, ch)
		}
	}
	if len(burns) != 1 {
		t.Fatalf("status children = %d, want 1", len(burns))
	}
	if r := burns[0].Status.Duration.Remaining(); !near(r, 2) {
		t.Errorf("remaining = %v, want 2", r)
	}
}

func TestApplyStatus_Ignored(t *testing.T) {
	h := newHarness(t)
	hero := h.hero(t, domain.V(64, 64))
	corpse := h.dummy(t, enums.FactionEnemy, domain.V(0, 0))
	corpse.Health.Current = 0
	sword := h.carried(t, hero, catalog.IronSword.ID)

	h.apply(t, hero, domain.Stunned(0))
	h.apply(t, corpse, domain.Stunned(1))
	h.apply(t, sword, domain.Stunned(1))

	for _, e := range []*domain.Entity{hero, corpse, sword} {
		if got := Statuses(h.c, e.ID); len(got) != 0 {
			t.Errorf("%s statuses = %v, want none", e.Name, got)
		}
	}
}

func TestApplyStatus_SlowFraction(t *testing.T) {
	t.Run("clamped", func(t *testing.T) {
		h := newHarness(t)
		hero := h.hero(t, domain.V(64, 64))
		h.apply(t, hero, domain.Slowed(1.5, 1))

		if hero.Motion.Debuff != 1 {
			t.Errorf("debuff = %v, want 1", hero.Motion.Debuff)
		}
	})
	t.Run("strict", func(t *testing.T) {
		h := newHarness(t)
		h.c.Rules.Strict = true
		hero := h.hero(t, domain.V(64, 64))
		h.c.Bus.Emit(hero.ID, domain.ApplyStatus{Template: domain.Slowed(-0.2, 1)})

		if err := h.c.Bus.Dispatch(); !errors.Is(err, domain.ErrInvariantBreach) {
			t.Errorf("Dispatch() error = %v, want invariant breach", err)
		}
	})
}

func TestSlowed_ScalesVelocity(t *testing.T) {
	h := newHarness(t)
	hero := h.hero(t, domain.V(64, 64))
	StartMoving(hero, domain.V(1, 0))

	h.apply(t, hero, domain.Slowed(0.3, 1))
	if v := hero.Motion.Velocity(); !near(v.X, 112) || v.Y != 0 {
		t.Errorf("velocity = %+v, want (112, 0)", v)
	}

	h.run(t, 61)
	if hero.Motion.Debuff != 0 {
		t.Errorf("debuff = %v after the slow expired, want 0", hero.Motion.Debuff)
	}
}

func TestStunned_ThenAftermathSlow(t *testing.T) {
	h := newHarness(t)
	hero := h.hero(t, domain.V(64, 64))
	StartMoving(hero, domain.V(0, 1))

	h.apply(t, hero, domain.Stunned(0.5))
	if !hero.Motion.Stunned() || !hero.Motion.Velocity().IsZero() {
		t.Fatal("stunned actor can still move")
	}

	start := hero.Pos
	h.run(t, 10)
	if hero.Pos != start {
		t.Errorf("stunned actor moved from %+v to %+v", start, hero.Pos)
	}

	h.run(t, 25)
	if hasStatus(h.c, hero.ID, enums.StatusStunned) {
		t.Fatal("stun outlived its duration")
	}
	if !hasStatus(h.c, hero.ID, enums.StatusSlowed) {
		t.Fatal("no slow after the stun wore off")
	}
	if hero.Motion.Debuff != domain.StunAftermathSlow {
		t.Errorf("debuff = %v, want %v", hero.Motion.Debuff, domain.StunAftermathSlow)
	}
}

func TestStunned_DominatesSlow(t *testing.T) {
	h := newHarness(t)
	hero := h.hero(t, domain.V(64, 64))

	h.apply(t, hero, domain.Slowed(0.3, 5))
	h.apply(t, hero, domain.Stunned(0.5))
	if hero.Motion.Debuff != 1 {
		t.Fatalf("debuff = %v, want 1 while stunned", hero.Motion.Debuff)
	}

	// The aftermath refreshes the existing slow rather than adding another.
	h.run(t, 35)
	if !near(hero.Motion.Debuff, 0.3) {
		t.Errorf("debuff = %v, want 0.3", hero.Motion.Debuff)
	}
	if got := Statuses(h.c, hero.ID); len(got) != 1 {
		t.Errorf("statuses = %v, want a single slow", got)
	}
}

func TestFrozen_ImpliesStun(t *testing.T) {
	h := newHarness(t)
	hero := h.hero(t, domain.V(64, 64))

	h.apply(t, hero, domain.Frozen(2))
	if !hero.Motion.Stunned() {
		t.Fatal("frozen actor not immobilised")
	}

	// The stun is emitted by the insert hook and lands on the next dispatch.
	h.settle(t)
	if !hasStatus(h.c, hero.ID, enums.StatusStunned) {
		t.Fatal("frozen actor carries no stun")
	}
	for _, id := range h.c.World.Children(hero.ID) {
		ch, _ := h.c.World.Get(id)
		if ch.Status != nil && ch.Status.Kind == enums.StatusStunned {
			if r := ch.Status.Duration.Remaining(); !near(r, 2) {
				t.Errorf("stun remaining = %v, want 2", r)
			}
		}
	}
}

func TestFrozen_StunTrailsByOneTick(t *testing.T) {
	h := newHarness(t)
	hero := h.hero(t, domain.V(64, 64))
	h.apply(t, hero, domain.Frozen(2))

	var frozenEnd, stunEnd uint64
	for i := 0; i < 180 && stunEnd == 0; i++ {
		h.step(t)
		if frozenEnd == 0 && !hasStatus(h.c, hero.ID, enums.StatusFrozen) {
			frozenEnd = h.c.Tick
		}
		if !hasStatus(h.c, hero.ID, enums.StatusStunned) {
			stunEnd = h.c.Tick
		}
		if stunEnd == 0 && !hero.Motion.Stunned() {
			t.Fatalf("tick %d: stunned actor can move", h.c.Tick)
		}
	}
	if frozenEnd == 0 || stunEnd == 0 {
		t.Fatalf("statuses never ended: frozen %d, stun %d", frozenEnd, stunEnd)
	}
	if stunEnd != frozenEnd+1 {
		t.Errorf("freeze ended on tick %d, stun on %d; want the stun one tick later", frozenEnd, stunEnd)
	}
}

func TestStatuses_GoWithParent(t *testing.T) {
	h := newHarness(t)
	d := h.dummy(t, enums.FactionEnemy, domain.V(0, 0))
	h.apply(t, d, domain.Burning(1, 0.5, 5))

	kids := h.c.World.Children(d.ID)
	if len(kids) != 1 {
		t.Fatalf("children = %d, want 1", len(kids))
	}
	h.c.World.Despawn(d.ID)
	h.step(t)

	if _, ok := h.c.World.Get(kids[0]); ok {
		t.Error("status outlived its parent")
	}
}
