package engine

import (
	"container/heap"
	"math"

	"babayaga/internal/core/types"
	"babayaga/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Scheduler holds delayed despawns keyed by tick. It satisfies
// systems.Scheduler.
type Scheduler struct {
	queue despawnQueue
	items map[types.EntityID]*despawnItem
	dt    float32
	tick  uint64
	seq   uint64
}

func NewScheduler(dt float32) *Scheduler {
	return &Scheduler{
		queue: make(despawnQueue, 0),
		items: make(map[types.EntityID]*despawnItem),
		dt:    dt,
	}
}

// SetTick tells the scheduler which tick is running.
func (s *Scheduler) SetTick(t uint64) {
	s.tick = t
}

// ScheduleDespawn removes id after the given number of seconds, rounded up
// to whole ticks. Scheduling an already queued id keeps the earlier time.
func (s *Scheduler) ScheduleDespawn(id types.EntityID, after float32) {
	ticks := uint64(0)
	if after > 0 && s.dt > 0 {
		ticks = uint64(math.Ceil(float64(after/s.dt) - 1e-3))
	}
	due := s.tick + max(ticks, 1)

	if item, ok := s.items[id]; ok {
		if due < item.Due {
			item.Due = due
			heap.Fix(&s.queue, item.Index)
		}
		return
	}

	s.seq++
	item := &despawnItem{ID: id, Due: due, Seq: s.seq}
	heap.Push(&s.queue, item)
	s.items[id] = item

	logger.Log.WithFields(logrus.Fields{
		"component": "scheduler",
		"entity":    id,
		"due":       due,
	}).Debug("despawn scheduled")
}

// Due pops every entry whose tick has come, in schedule order.
func (s *Scheduler) Due(tick uint64) []types.EntityID {
	var out []types.EntityID
	for s.queue.Len() > 0 && s.queue[0].Due <= tick {
		item := heap.Pop(&s.queue).(*despawnItem)
		delete(s.items, item.ID)
		out = append(out, item.ID)
	}
	return out
}

// Cancel drops a scheduled despawn.
func (s *Scheduler) Cancel(id types.EntityID) {
	if item, ok := s.items[id]; ok {
		heap.Remove(&s.queue, item.Index)
		delete(s.items, id)
	}
}

// Reset drops everything.
func (s *Scheduler) Reset() {
	s.queue = make(despawnQueue, 0)
	s.items = make(map[types.EntityID]*despawnItem)
	s.seq = 0
}

func (s *Scheduler) Len() int {
	return s.queue.Len()
}

// Dump returns a snapshot of the queue for the debug routes.
func (s *Scheduler) Dump() []map[string]any {
	// An empty slice, not nil, so the JSON reads "[]" rather than "null".
	result := make([]map[string]any, 0, len(s.queue))
	for _, item := range s.queue {
		result = append(result, map[string]any{
			"id":    item.ID,
			"due":   item.Due,
			"index": item.Index,
		})
	}
	return result
}
