package engine

import (
	"fmt"
	"math/rand"

	"babayaga/internal/core/types"
	"babayaga/internal/core/types/enums"
	"babayaga/internal/domain"
	"babayaga/internal/systems"
	"babayaga/pkg/logger"

	"github.com/sirupsen/logrus"
)

type inputKind uint8

const (
	inputMove inputKind = iota
	inputStop
	inputUse
	inputInteract
	inputEffect
)

// input is a facade request waiting for the next Input phase.
type input struct {
	kind    inputKind
	actor   types.EntityID
	dir     domain.Vec2
	slot    enums.Slot
	effects []domain.StatusTemplate
}

// Simulation owns the world, the bus and the systems and advances them one
// fixed step at a time:
//
//	Despawn -> Input -> Simulate -> Collide -> Resolve -> Commit
//
// It is not safe for concurrent use; Service serialises access.
type Simulation struct {
	cfg   Config
	ctx   *systems.Context
	grid  *systems.Grid
	sched *Scheduler

	inputs []input
	tick   uint64

	log *logrus.Entry
}

func NewSimulation(cfg Config) *Simulation {
	sched := NewScheduler(cfg.Dt())
	ctx := &systems.Context{
		World:     domain.NewWorld(),
		Bus:       domain.NewBus(cfg.MaxDispatchDepth),
		Rng:       rand.New(rand.NewSource(cfg.Seed)),
		Scheduler: sched,
		Rules: systems.Rules{
			Strict:               cfg.Strict,
			CorpseLifetime:       cfg.CorpseLifetime,
			DeathInvulnerability: cfg.DeathInvulnerability,
			InteractRadius:       cfg.InteractRadius,
		},
	}
	systems.Register(ctx)

	return &Simulation{
		cfg:   cfg,
		ctx:   ctx,
		grid:  systems.NewGrid(cfg.GridCellSize),
		sched: sched,
		log:   logger.For("simulation"),
	}
}

func (s *Simulation) World() *domain.World         { return s.ctx.World }
func (s *Simulation) Bus() *domain.Bus             { return s.ctx.Bus }
func (s *Simulation) Context() *systems.Context    { return s.ctx }
func (s *Simulation) Scheduler() *Scheduler        { return s.sched }
func (s *Simulation) CurrentTick() uint64          { return s.tick }
func (s *Simulation) SetTerrain(t systems.Terrain) { s.ctx.Terrain = t }

func (s *Simulation) queue(in input) {
	s.inputs = append(s.inputs, in)
}

// Tick advances the simulation by dt seconds. An error means the tick was
// aborted; whatever the completed phases did stays applied.
func (s *Simulation) Tick(dt float32) error {
	s.tick++
	s.ctx.Tick = s.tick
	s.ctx.Bus.SetTick(s.tick)
	s.sched.SetTick(s.tick)

	w := s.ctx.World

	// Despawn
	for _, id := range s.sched.Due(s.tick) {
		w.Despawn(id)
	}
	if err := w.FlushDespawns(); err != nil {
		return fmt.Errorf("tick %d despawn: %w", s.tick, err)
	}

	// Input
	s.applyInputs()

	// Simulate
	systems.ThinkAI(s.ctx, dt)
	systems.RegenerateMana(s.ctx, dt)
	systems.AdvanceCooldowns(s.ctx, dt)
	systems.AdvanceStatuses(s.ctx, dt)
	systems.AdvanceIFrames(s.ctx, dt)
	systems.ApplyMotion(s.ctx, dt)
	systems.AdvanceMelee(s.ctx, dt)
	systems.AdvanceProjectiles(s.ctx, dt)
	systems.CarryEquipment(s.ctx)
	if err := systems.CheckBounds(s.ctx); err != nil {
		return fmt.Errorf("tick %d simulate: %w", s.tick, err)
	}

	// Collide
	systems.DispatchHits(s.ctx, systems.DetectCollisions(s.ctx, s.grid))

	// Resolve
	if err := s.ctx.Bus.Dispatch(); err != nil {
		return fmt.Errorf("tick %d resolve: %w", s.tick, err)
	}

	// Commit
	if err := w.Commit(); err != nil {
		return fmt.Errorf("tick %d commit: %w", s.tick, err)
	}
	return nil
}

func (s *Simulation) applyInputs() {
	if len(s.inputs) == 0 {
		return
	}
	w := s.ctx.World
	var interacts []types.EntityID

	for _, in := range s.inputs {
		switch in.kind {
		case inputMove, inputStop:
			e, ok := w.Get(in.actor)
			if !ok || !w.Live(in.actor) {
				s.log.WithField("actor", in.actor).Debug("motion request for a missing actor")
				continue
			}
			if in.kind == inputMove {
				systems.StartMoving(e, in.dir)
			} else {
				systems.StopMoving(e)
			}
		case inputUse:
			s.ctx.Bus.Emit(in.actor, domain.UseRequest{Slot: in.slot, Aim: in.dir})
		case inputEffect:
			s.ctx.Bus.Emit(in.actor, domain.ApplyEffect{Effects: in.effects})
		case inputInteract:
			interacts = append(interacts, in.actor)
		}
	}
	s.inputs = s.inputs[:0]

	systems.ResolveInteractions(s.ctx, interacts)
}

// Reset drops every entity, queued event and request. Observers and hooks
// stay registered. The tick counter and the RNG restart from the arguments.
func (s *Simulation) Reset(tick uint64, seed int64) {
	s.ctx.World.Reset()
	s.ctx.Bus.Clear()
	s.sched.Reset()
	s.inputs = nil
	s.tick = tick
	s.ctx.Tick = tick
	s.ctx.Bus.SetTick(tick)
	s.sched.SetTick(tick)
	s.ctx.Rng = rand.New(rand.NewSource(seed))
}
