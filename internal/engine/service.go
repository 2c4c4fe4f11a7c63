package engine

import (
	"fmt"
	"sync"

	"babayaga/internal/core/types"
	"babayaga/internal/core/types/enums"
	"babayaga/internal/domain"
	"babayaga/internal/systems"
	"babayaga/pkg/catalog"
	"babayaga/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Service is the command/query facade over one Simulation. All methods are
// safe for concurrent use; they serialise on a single mutex.
//
// Motion, use, interact and effect requests are queued and take effect in the
// Input phase of the next Tick. Inventory operations apply immediately, their
// deferred component changes land at the next Commit.
type Service struct {
	mu  sync.Mutex
	cfg Config
	sim *Simulation

	zone *loadedZone

	outbox []domain.Event
	log    *logrus.Entry
}

func NewService(cfg Config) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Service{
		cfg: cfg,
		sim: NewSimulation(cfg),
		log: logger.For("service"),
	}
	s.sim.Bus().Tap(func(ev domain.Event) {
		if ev.Type.Outbound() {
			s.outbox = append(s.outbox, ev)
		}
	})

	s.log.WithFields(logrus.Fields{
		"seed":      cfg.Seed,
		"tick_rate": cfg.TickRate,
		"strict":    cfg.Strict,
	}).Info("simulation ready")
	return s, nil
}

func (s *Service) Config() Config { return s.cfg }

// --- commands ---

// Tick advances the simulation. A non-positive dt uses the configured step.
func (s *Service) Tick(dt float32) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if dt <= 0 {
		dt = s.cfg.Dt()
	}
	if err := s.sim.Tick(dt); err != nil {
		s.log.WithError(err).Error("tick aborted")
		return err
	}
	return nil
}

// SpawnActor builds and commits an actor. It is visible to systems from the
// next Tick.
func (s *Service) SpawnActor(spec catalog.ActorSpec) (types.EntityID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.spawnActor(spec)
	if err != nil {
		return types.NilEntityID, err
	}
	if err := s.sim.World().Commit(); err != nil {
		return types.NilEntityID, err
	}
	return id, nil
}

func (s *Service) spawnActor(spec catalog.ActorSpec) (types.EntityID, error) {
	a, err := catalog.BuildActor(s.sim.World(), spec)
	if err != nil {
		return types.NilEntityID, err
	}
	s.log.WithFields(logrus.Fields{
		"actor":   a.ID,
		"name":    a.Name,
		"faction": a.Faction,
		"pos":     a.Pos,
	}).Debug("actor spawned")
	return a.ID, nil
}

// SpawnItem creates a loose item from a catalog template.
func (s *Service) SpawnItem(templateID string) (types.EntityID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	it, err := catalog.SpawnItem(s.sim.World(), templateID, types.NilEntityID)
	if err != nil {
		return types.NilEntityID, err
	}
	if err := s.sim.World().Commit(); err != nil {
		return types.NilEntityID, err
	}
	return it.ID, nil
}

// actor resolves a live actor; the caller holds the lock.
func (s *Service) actor(id types.EntityID) (*domain.Entity, error) {
	e, ok := s.sim.World().Get(id)
	if !ok || !s.sim.World().Alive(id) || !e.IsActor() {
		return nil, fmt.Errorf("actor %s: %w", id, domain.ErrNoSuchEntity)
	}
	return e, nil
}

func (s *Service) enqueue(actor types.EntityID, in input) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.actor(actor); err != nil {
		return err
	}
	in.actor = actor
	s.sim.queue(in)
	return nil
}

// RequestUseEquipment activates the item in slot. A zero aim uses facing.
func (s *Service) RequestUseEquipment(actor types.EntityID, slot enums.Slot, aim domain.Vec2) error {
	if !slot.Valid() {
		return domain.Precondition("slot %d out of range", slot)
	}
	return s.enqueue(actor, input{kind: inputUse, slot: slot, dir: aim})
}

func (s *Service) RequestMove(actor types.EntityID, dir domain.Vec2) error {
	return s.enqueue(actor, input{kind: inputMove, dir: dir})
}

func (s *Service) RequestStop(actor types.EntityID) error {
	return s.enqueue(actor, input{kind: inputStop})
}

func (s *Service) RequestInteract(actor types.EntityID) error {
	return s.enqueue(actor, input{kind: inputInteract})
}

// ApplyEffect imprints statuses on target as if it had been struck.
func (s *Service) ApplyEffect(target types.EntityID, effects []domain.StatusTemplate) error {
	if len(effects) == 0 {
		return nil
	}
	return s.enqueue(target, input{kind: inputEffect, effects: append([]domain.StatusTemplate(nil), effects...)})
}

// RequestUseItem drinks a consumable now.
func (s *Service) RequestUseItem(actor, item types.EntityID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return systems.UseItem(s.sim.Context(), actor, item)
}

func (s *Service) RequestEquip(actor, item types.EntityID, slot enums.Slot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return systems.EquipItem(s.sim.Context(), actor, item, slot)
}

func (s *Service) RequestUnequip(actor types.EntityID, slot enums.Slot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return systems.UnequipSlot(s.sim.Context(), actor, slot)
}

func (s *Service) AddItem(actor, item types.EntityID) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return systems.AddItem(s.sim.Context(), actor, item)
}

func (s *Service) RemoveItem(actor, item types.EntityID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return systems.RemoveItem(s.sim.Context(), actor, item)
}

func (s *Service) AddCoins(actor types.EntityID, n int) error {
	if n < 0 {
		return domain.Precondition("negative coin amount %d", n)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return systems.AddCoins(s.sim.Context(), actor, n)
}

func (s *Service) SpendCoins(actor types.EntityID, n int) error {
	if n < 0 {
		return domain.Precondition("negative coin amount %d", n)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return systems.SpendCoins(s.sim.Context(), actor, n)
}

// --- queries ---

func (s *Service) GetHealth(actor types.EntityID) (current, max float32, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.actor(actor)
	if err != nil {
		return 0, 0, err
	}
	return e.Health.Current, e.Health.Max, nil
}

// GetMana reports zeros for actors without a mana pool.
func (s *Service) GetMana(actor types.EntityID) (current, max float32, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.actor(actor)
	if err != nil {
		return 0, 0, err
	}
	if e.Mana == nil {
		return 0, 0, nil
	}
	return e.Mana.Current, e.Mana.Max, nil
}

// InventoryState is a copy of an actor's inventory.
type InventoryState struct {
	Items    []types.EntityID
	Slots    map[enums.Slot]types.EntityID
	Capacity int
	Coins    int
}

func (s *Service) GetInventory(actor types.EntityID) (InventoryState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.actor(actor)
	if err != nil {
		return InventoryState{}, err
	}
	if e.Inventory == nil {
		return InventoryState{}, domain.Precondition("actor %s has no inventory", actor)
	}
	inv := e.Inventory
	out := InventoryState{
		Items:    append([]types.EntityID(nil), inv.Items...),
		Slots:    make(map[enums.Slot]types.EntityID),
		Capacity: inv.Capacity,
		Coins:    inv.Coins,
	}
	for i := range inv.Slots {
		if id, ok := inv.InSlot(enums.Slot(i)); ok {
			out.Slots[enums.Slot(i)] = id
		}
	}
	return out, nil
}

func (s *Service) GetAction(actor types.EntityID) (enums.ActionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.actor(actor)
	if err != nil {
		return enums.ActionIdle, err
	}
	if e.Action == nil {
		if e.IsDefeated() {
			return enums.ActionDefeated, nil
		}
		return enums.ActionIdle, nil
	}
	return e.Action.Current(), nil
}

func (s *Service) GetFacing(actor types.EntityID) (enums.Facing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.actor(actor)
	if err != nil {
		return enums.FacingDown, err
	}
	if e.Motion == nil {
		return enums.FacingDown, nil
	}
	return e.Motion.Facing, nil
}

func (s *Service) GetPosition(id types.EntityID) (domain.Vec2, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sim.World().Get(id)
	if !ok {
		return domain.Vec2{}, fmt.Errorf("entity %s: %w", id, domain.ErrNoSuchEntity)
	}
	return e.Pos, nil
}

// Statuses lists the active status kinds on actor.
func (s *Service) Statuses(actor types.EntityID) []enums.StatusKind {
	s.mu.Lock()
	defer s.mu.Unlock()
	return systems.Statuses(s.sim.Context(), actor)
}

// FindByController returns the live actor driven by session.
func (s *Service) FindByController(session string) (types.EntityID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if session == "" {
		return types.NilEntityID, false
	}
	var found types.EntityID
	s.sim.World().Each(func(e *domain.Entity) {
		if found.IsNil() && e.ControllerID == session && e.IsActor() {
			found = e.ID
		}
	})
	return found, !found.IsNil()
}

// DrainEvents returns the outbound events dispatched since the last call,
// in dispatch order.
func (s *Service) DrainEvents() []domain.Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := s.outbox
	s.outbox = nil
	return out
}

func (s *Service) CurrentTick() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sim.CurrentTick()
}

// PendingDespawns is the scheduler state, for debug routes.
func (s *Service) PendingDespawns() []map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sim.Scheduler().Dump()
}

// View runs fn with the world locked. fn must not keep references.
func (s *Service) View(fn func(c *systems.Context)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.sim.Context())
}
