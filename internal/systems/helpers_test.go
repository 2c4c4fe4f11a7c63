package systems

import (
	"math/rand"
	"testing"

	"babayaga/internal/core/types"
	"babayaga/internal/core/types/enums"
	"babayaga/internal/domain"
	"babayaga/pkg/catalog"
)

const dt = float32(1) / 60

type scheduled struct {
	id    types.EntityID
	after float32
}

type fakeScheduler struct {
	calls []scheduled
}

func (s *fakeScheduler) ScheduleDespawn(id types.EntityID, after float32) {
	s.calls = append(s.calls, scheduled{id: id, after: after})
}

// opaqueTiles blocks movement and sight on the listed tiles.
type opaqueTiles map[[2]int]bool

func (o opaqueTiles) Blocked(tx, ty int) bool { return o[[2]int{tx, ty}] }
func (o opaqueTiles) Opaque(tx, ty int) bool  { return o[[2]int{tx, ty}] }

type harness struct {
	c      *Context
	grid   *Grid
	sched  *fakeScheduler
	events []domain.Event
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{grid: NewGrid(32), sched: &fakeScheduler{}}
	h.c = &Context{
		World:     domain.NewWorld(),
		Bus:       domain.NewBus(32),
		Rng:       rand.New(rand.NewSource(1)),
		Scheduler: h.sched,
		Rules: Rules{
			CorpseLifetime:       2,
			DeathInvulnerability: 3600,
			InteractRadius:       48,
		},
	}
	Register(h.c)
	h.c.Bus.Tap(func(ev domain.Event) { h.events = append(h.events, ev) })
	return h
}

// settle dispatches queued events and commits, as the tail of a tick does.
func (h *harness) settle(t *testing.T) {
	t.Helper()
	if err := h.c.Bus.Dispatch(); err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if err := h.c.World.Commit(); err != nil {
		t.Fatalf("Commit() error = %v", err)
	}
}

// step runs one full tick in phase order. interacts are this tick's
// interact requests.
func (h *harness) step(t *testing.T, interacts ...types.EntityID) {
	t.Helper()
	c := h.c
	c.Tick++
	c.Bus.SetTick(c.Tick)

	if err := c.World.FlushDespawns(); err != nil {
		t.Fatalf("tick %d: FlushDespawns() error = %v", c.Tick, err)
	}
	ResolveInteractions(c, interacts)

	ThinkAI(c, dt)
	RegenerateMana(c, dt)
	AdvanceCooldowns(c, dt)
	AdvanceStatuses(c, dt)
	AdvanceIFrames(c, dt)
	ApplyMotion(c, dt)
	AdvanceMelee(c, dt)
	AdvanceProjectiles(c, dt)
	CarryEquipment(c)
	if err := CheckBounds(c); err != nil {
		t.Fatalf("tick %d: CheckBounds() error = %v", c.Tick, err)
	}

	DispatchHits(c, DetectCollisions(c, h.grid))
	h.settle(t)
}

func (h *harness) run(t *testing.T, ticks int) {
	t.Helper()
	for i := 0; i < ticks; i++ {
		h.step(t)
	}
}

// spawn builds an actor from spec and makes it live.
func (h *harness) spawn(t *testing.T, spec catalog.ActorSpec) *domain.Entity {
	t.Helper()
	a, err := catalog.BuildActor(h.c.World, spec)
	if err != nil {
		t.Fatalf("BuildActor(%s) error = %v", spec.Name, err)
	}
	if err := h.c.World.Commit(); err != nil {
		t.Fatalf("Commit() error = %v", err)
	}
	return a
}

func (h *harness) hero(t *testing.T, pos domain.Vec2) *domain.Entity {
	t.Helper()
	return h.spawn(t, catalog.Hero.Spec(pos))
}

// dummy is a brainless, motionless actor.
func (h *harness) dummy(t *testing.T, f enums.Faction, pos domain.Vec2, loadout ...catalog.LoadoutEntry) *domain.Entity {
	t.Helper()
	return h.spawn(t, catalog.ActorSpec{
		Name:      "dummy",
		Faction:   f,
		Stats:     catalog.Stats{MaxHP: 100, MaxMana: 24, ManaRegen: 4},
		Pos:       pos,
		Inventory: loadout,
	})
}

// carried finds the first inventory item built from template.
func (h *harness) carried(t *testing.T, actor *domain.Entity, template string) *domain.Entity {
	t.Helper()
	for _, id := range actor.Inventory.Items {
		if it, ok := h.c.World.Get(id); ok && it.Item != nil && it.Item.TemplateID == template {
			return it
		}
	}
	t.Fatalf("%s carries no %s", actor.Name, template)
	return nil
}

// count returns the number of recorded events of type et on target.
func (h *harness) count(et domain.EventType, target types.EntityID) int {
	n := 0
	for _, ev := range h.events {
		if ev.Type == et && ev.Target == target {
			n++
		}
	}
	return n
}

func hasStatus(c *Context, id types.EntityID, k enums.StatusKind) bool {
	for _, s := range Statuses(c, id) {
		if s == k {
			return true
		}
	}
	return false
}
