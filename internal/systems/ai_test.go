package systems

import (
	"testing"

	"babayaga/internal/core/types/enums"
	"babayaga/internal/domain"
	"babayaga/pkg/catalog"
)

func TestDecide(t *testing.T) {
	tests := []struct {
		name     string
		heroAt   domain.Vec2
		cooling  bool
		terrain  Terrain
		wantKind IntentKind
	}{
		{"chase in aggro range", domain.V(150, 100), false, nil, IntentMove},
		{"attack in reach", domain.V(120, 100), false, nil, IntentAttack},
		{"hold while cooling down", domain.V(120, 100), true, nil, IntentStop},
		{"out of aggro range", domain.V(400, 100), false, nil, IntentNone},
		{"no line of sight", domain.V(250, 100), false, opaqueTiles{{5, 3}: true}, IntentNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.c.Terrain = tt.terrain
			gob := h.spawn(t, catalog.Goblin.Spec(domain.V(100, 100)))
			hero := h.hero(t, tt.heroAt)
			if tt.cooling {
				h.carried(t, gob, catalog.GoblinClub.ID).Equippable.Cooldown.Reset()
			}

			in := Decide(h.c, gob, gob.Brain, dt)
			if in.Kind != tt.wantKind {
				t.Fatalf("Decide() kind = %v, want %v", in.Kind, tt.wantKind)
			}
			if tt.wantKind == IntentNone {
				if gob.Brain.HasTarget() {
					t.Error("brain picked a target it cannot see")
				}
				return
			}
			if in.Target != hero.ID || gob.Brain.Target != hero.ID {
				t.Errorf("target = %s, want the hero", in.Target)
			}
			if in.Dir.X <= 0 {
				t.Errorf("dir = %+v, want towards the hero", in.Dir)
			}
		})
	}
}

func TestDecide_LosingTargetStops(t *testing.T) {
	h := newHarness(t)
	gob := h.spawn(t, catalog.Goblin.Spec(domain.V(100, 100)))
	hero := h.hero(t, domain.V(150, 100))

	if in := Decide(h.c, gob, gob.Brain, dt); in.Kind != IntentMove {
		t.Fatalf("kind = %v, want move", in.Kind)
	}
	hero.Pos = domain.V(2000, 100)
	if in := Decide(h.c, gob, gob.Brain, dt); in.Kind != IntentStop {
		t.Errorf("kind = %v, want stop once the target is lost", in.Kind)
	}
	if gob.Brain.HasTarget() {
		t.Error("brain kept a lost target")
	}
}

func TestDecide_WanderRolls(t *testing.T) {
	h := newHarness(t)
	gob := h.spawn(t, catalog.Goblin.Spec(domain.V(100, 100)))

	moves := 0
	for i := 0; i < 40; i++ {
		in := Decide(h.c, gob, gob.Brain, gob.Brain.Wander.Interval)
		switch in.Kind {
		case IntentMove:
			moves++
			if l := in.Dir.Len(); !near(l, 1) {
				t.Fatalf("wander dir length = %v, want 1", l)
			}
		case IntentStop:
		default:
			t.Fatalf("roll %d: kind = %v, want move or stop", i, in.Kind)
		}
	}
	if moves == 0 || moves == 40 {
		t.Errorf("moves = %d of 40, want a mix", moves)
	}
}

func TestThinkAI_AttacksThroughPipeline(t *testing.T) {
	h := newHarness(t)
	gob := h.spawn(t, catalog.Goblin.Spec(domain.V(100, 100)))
	hero := h.hero(t, domain.V(120, 100))

	h.run(t, 20)
	if hero.Health.Current >= 100 {
		t.Fatalf("hero hp = %v, goblin never connected", hero.Health.Current)
	}
	if got := h.count(domain.EventUseEquipment, h.carried(t, gob, catalog.GoblinClub.ID).ID); got != 1 {
		t.Errorf("club uses = %d, want 1 inside the cooldown", got)
	}
}

func TestThinkAI_DefeatedBrainForgets(t *testing.T) {
	h := newHarness(t)
	gob := h.spawn(t, catalog.Goblin.Spec(domain.V(100, 100)))
	h.hero(t, domain.V(150, 100))

	h.step(t)
	if !gob.Brain.HasTarget() {
		t.Fatal("goblin did not notice the hero")
	}

	h.c.Bus.Emit(gob.ID, domain.AttemptDamage{Amount: domain.Fixed(100)})
	h.settle(t)
	if gob.Brain.HasTarget() {
		t.Error("defeated goblin still hunting")
	}

	start := gob.Pos
	h.run(t, 10)
	if gob.Pos != start {
		t.Error("defeated goblin moved")
	}
	if !gob.Action.Is(enums.ActionDefeated) {
		t.Errorf("action = %v, want defeated", gob.Action.Current())
	}
}
