package domain

import (
	"errors"

	"babayaga/internal/core/types"
	"babayaga/internal/core/types/enums"
	"babayaga/pkg/logger"

	"github.com/sirupsen/logrus"
)

// maxCommitCommands bounds hook chains that keep queueing commands.
const maxCommitCommands = 1 << 16

type slotState uint8

const (
	slotFree slotState = iota
	slotStaged
	slotLive
	slotDespawning
)

type slot struct {
	gen       uint32
	state     slotState
	activated bool
	entity    *Entity
}

type commandKind uint8

const (
	cmdActivate commandKind = iota
	cmdInsert
	cmdRemove
)

type command struct {
	kind commandKind
	id   types.EntityID
	comp Component
	ck   ComponentKind
}

// Hook runs when a component is attached (after) or detached (before) at
// Commit, or when its entity is destroyed.
type Hook func(e *Entity) error

// World is the entity arena. Structural changes are deferred: Spawn stages,
// Insert/Remove queue, Commit applies. Despawn hides an entity at once and
// FlushDespawns destroys it at the start of the next tick.
type World struct {
	slots    []slot
	free     []uint32
	children map[types.EntityID][]types.EntityID
	pending  []command
	despawns []types.EntityID

	onInsert [componentKindCount][]Hook
	onRemove [componentKindCount][]Hook

	log *logrus.Entry
}

func NewWorld() *World {
	return &World{
		children: make(map[types.EntityID][]types.EntityID),
		log:      logger.For("world"),
	}
}

// OnInsert registers a hook for k. Hooks of one kind run in registration order.
func (w *World) OnInsert(k ComponentKind, h Hook) {
	w.onInsert[k] = append(w.onInsert[k], h)
}

func (w *World) OnRemove(k ComponentKind, h Hook) {
	w.onRemove[k] = append(w.onRemove[k], h)
}

// Spawn allocates a handle right away. The entity can be filled in and
// resolved with Get, but iteration skips it until the next Commit.
func (w *World) Spawn(kind enums.EntityKind, parent types.EntityID) *Entity {
	var idx uint32
	if n := len(w.free); n > 0 {
		idx = w.free[n-1]
		w.free = w.free[:n-1]
	} else {
		idx = uint32(len(w.slots))
		w.slots = append(w.slots, slot{gen: 1})
	}

	s := &w.slots[idx]
	id := types.PackEntityID(uint8(kind), s.gen, idx)
	e := &Entity{ID: id, Kind: kind, Parent: parent}
	s.state = slotStaged
	s.activated = false
	s.entity = e

	if !parent.IsNil() {
		w.children[parent] = append(w.children[parent], id)
	}
	w.pending = append(w.pending, command{kind: cmdActivate, id: id})
	return e
}

func (w *World) slotOf(id types.EntityID) (*slot, bool) {
	if id.IsNil() {
		return nil, false
	}
	idx := id.Index()
	if int(idx) >= len(w.slots) {
		return nil, false
	}
	s := &w.slots[idx]
	if s.state == slotFree || s.gen != id.Generation() {
		return nil, false
	}
	return s, true
}

// Get resolves a handle. Staged and despawning entities still resolve;
// a stale generation never does.
func (w *World) Get(id types.EntityID) (*Entity, bool) {
	s, ok := w.slotOf(id)
	if !ok {
		return nil, false
	}
	return s.entity, true
}

// Alive is true for staged and live entities that are not being despawned.
func (w *World) Alive(id types.EntityID) bool {
	s, ok := w.slotOf(id)
	return ok && (s.state == slotStaged || s.state == slotLive)
}

// Live is true only for committed entities that iteration visits.
func (w *World) Live(id types.EntityID) bool {
	s, ok := w.slotOf(id)
	return ok && s.state == slotLive
}

// Each visits live entities in slot order. Entities spawned or despawned
// during the walk do not disturb it.
func (w *World) Each(fn func(e *Entity)) {
	n := len(w.slots)
	for i := 0; i < n; i++ {
		s := &w.slots[i]
		if s.state == slotLive {
			fn(s.entity)
		}
	}
}

// Entities returns the live entities in slot order.
func (w *World) Entities() []*Entity {
	var out []*Entity
	w.Each(func(e *Entity) { out = append(out, e) })
	return out
}

// Len counts live entities.
func (w *World) Len() int {
	n := 0
	for i := range w.slots {
		if w.slots[i].state == slotLive {
			n++
		}
	}
	return n
}

// Children returns the child handles of parent in spawn order.
func (w *World) Children(parent types.EntityID) []types.EntityID {
	kids := w.children[parent]
	out := make([]types.EntityID, len(kids))
	copy(out, kids)
	return out
}

// Reparent moves id under parent (nil detaches it).
func (w *World) Reparent(id, parent types.EntityID) {
	e, ok := w.Get(id)
	if !ok || e.Parent == parent {
		return
	}
	if !e.Parent.IsNil() {
		w.unlinkChild(e.Parent, id)
	}
	e.Parent = parent
	if !parent.IsNil() {
		w.children[parent] = append(w.children[parent], id)
	}
}

func (w *World) unlinkChild(parent, id types.EntityID) {
	kids := w.children[parent]
	for i, k := range kids {
		if k == id {
			w.children[parent] = append(kids[:i], kids[i+1:]...)
			break
		}
	}
	if len(w.children[parent]) == 0 {
		delete(w.children, parent)
	}
}

// Insert queues c to be attached to id at the next Commit.
func (w *World) Insert(id types.EntityID, c Component) {
	w.pending = append(w.pending, command{kind: cmdInsert, id: id, comp: c, ck: c.ComponentKind()})
}

// Remove queues detaching k from id at the next Commit.
func (w *World) Remove(id types.EntityID, k ComponentKind) {
	w.pending = append(w.pending, command{kind: cmdRemove, id: id, ck: k})
}

// PendingInsert reports whether an insert of k on id is queued.
func (w *World) PendingInsert(id types.EntityID, k ComponentKind) bool {
	for _, c := range w.pending {
		if c.kind == cmdInsert && c.id == id && c.ck == k {
			return true
		}
	}
	return false
}

// Pending is the number of queued structural commands.
func (w *World) Pending() int {
	return len(w.pending)
}

// Commit applies queued commands in FIFO order. Commands queued by hooks
// are applied in the same pass.
func (w *World) Commit() error {
	var errs []error
	for i := 0; i < len(w.pending); i++ {
		if i >= maxCommitCommands {
			errs = append(errs, Precondition("commit did not converge after %d commands", i))
			break
		}
		if err := w.apply(w.pending[i]); err != nil {
			errs = append(errs, err)
		}
	}
	w.pending = w.pending[:0]
	return errors.Join(errs...)
}

func (w *World) apply(c command) error {
	s, ok := w.slotOf(c.id)
	if !ok {
		w.log.WithFields(logrus.Fields{"entity": c.id, "component": c.ck}).Debug("command for a destroyed entity dropped")
		return nil
	}

	switch c.kind {
	case cmdActivate:
		if s.state != slotStaged {
			return nil
		}
		s.state = slotLive
		s.activated = true
		for k := ComponentKind(0); k < componentKindCount; k++ {
			if len(w.onInsert[k]) > 0 && s.entity.Has(k) {
				if err := w.run(w.onInsert[k], s.entity); err != nil {
					return err
				}
			}
		}

	case cmdInsert:
		if s.state == slotDespawning {
			return nil
		}
		s.entity.attach(c.comp)
		if s.state == slotLive {
			return w.run(w.onInsert[c.ck], s.entity)
		}

	case cmdRemove:
		if !s.entity.Has(c.ck) {
			return nil
		}
		if s.activated {
			if err := w.run(w.onRemove[c.ck], s.entity); err != nil {
				s.entity.detach(c.ck)
				return err
			}
		}
		s.entity.detach(c.ck)
	}
	return nil
}

func (w *World) run(hooks []Hook, e *Entity) error {
	var errs []error
	for _, h := range hooks {
		if err := h(e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Despawn hides id from iteration now and destroys it, with its children,
// at the next FlushDespawns. The entity still resolves until then.
func (w *World) Despawn(id types.EntityID) {
	s, ok := w.slotOf(id)
	if !ok || s.state == slotDespawning {
		return
	}
	s.state = slotDespawning
	w.despawns = append(w.despawns, id)
}

// Despawning reports whether id is waiting to be destroyed.
func (w *World) Despawning(id types.EntityID) bool {
	s, ok := w.slotOf(id)
	return ok && s.state == slotDespawning
}

// FlushDespawns destroys everything queued by Despawn. Children go first;
// remove hooks fire for every hooked component the entity still carries.
func (w *World) FlushDespawns() error {
	var errs []error
	for len(w.despawns) > 0 {
		batch := w.despawns
		w.despawns = nil
		for _, id := range batch {
			if err := w.destroy(id); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

func (w *World) destroy(id types.EntityID) error {
	s, ok := w.slotOf(id)
	if !ok {
		return nil
	}
	s.state = slotDespawning

	var errs []error
	for _, kid := range w.Children(id) {
		if err := w.destroy(kid); err != nil {
			errs = append(errs, err)
		}
	}

	e := s.entity
	if s.activated {
		for k := ComponentKind(0); k < componentKindCount; k++ {
			if len(w.onRemove[k]) > 0 && e.Has(k) {
				if err := w.run(w.onRemove[k], e); err != nil {
					errs = append(errs, err)
				}
			}
		}
	}

	if !e.Parent.IsNil() {
		w.unlinkChild(e.Parent, id)
	}
	delete(w.children, id)

	s.gen++
	if s.gen > types.MaxGeneration {
		s.gen = 1
	}
	s.state = slotFree
	s.activated = false
	s.entity = nil
	w.free = append(w.free, id.Index())

	return errors.Join(errs...)
}

// Reset drops every entity and queued command. Hooks stay registered.
func (w *World) Reset() {
	w.slots = nil
	w.free = nil
	w.children = make(map[types.EntityID][]types.EntityID)
	w.pending = nil
	w.despawns = nil
}
