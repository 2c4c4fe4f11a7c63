package engine

import (
	"babayaga/internal/core/types"
)

// despawnItem is one scheduled removal in the queue.
type despawnItem struct {
	ID    types.EntityID
	Due   uint64 // tick at which the entity goes
	Seq   uint64 // insertion order, breaks ties
	Index int    // heap index (needed for Fix/Remove)
}

// despawnQueue implements heap.Interface; earliest Due first.
type despawnQueue []*despawnItem

func (pq despawnQueue) Len() int { return len(pq) }

func (pq despawnQueue) Less(i, j int) bool {
	if pq[i].Due != pq[j].Due {
		return pq[i].Due < pq[j].Due
	}
	return pq[i].Seq < pq[j].Seq
}

func (pq despawnQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].Index = i
	pq[j].Index = j
}

func (pq *despawnQueue) Push(x any) {
	item := x.(*despawnItem)
	item.Index = len(*pq)
	*pq = append(*pq, item)
}

func (pq *despawnQueue) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.Index = -1
	*pq = old[:n-1]
	return item
}
