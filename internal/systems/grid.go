package systems

import (
	"math"
	"slices"

	"babayaga/internal/core/types"
	"babayaga/internal/domain"
)

type cellKey struct {
	x, y int32
}

// Grid is a uniform broadphase. An entry goes into every cell its box touches.
type Grid struct {
	cell  float32
	cells map[cellKey][]types.EntityID
}

func NewGrid(cell float32) *Grid {
	if cell <= 0 {
		cell = 32
	}
	return &Grid{cell: cell, cells: make(map[cellKey][]types.EntityID)}
}

// Clear empties the grid but keeps allocated buckets.
func (g *Grid) Clear() {
	for k, v := range g.cells {
		g.cells[k] = v[:0]
	}
}

func (g *Grid) span(b domain.AABB) (x0, y0, x1, y1 int32) {
	min, max := b.Min(), b.Max()
	x0 = int32(math.Floor(float64(min.X / g.cell)))
	y0 = int32(math.Floor(float64(min.Y / g.cell)))
	x1 = int32(math.Floor(float64(max.X / g.cell)))
	y1 = int32(math.Floor(float64(max.Y / g.cell)))
	return
}

func (g *Grid) Insert(id types.EntityID, b domain.AABB) {
	x0, y0, x1, y1 := g.span(b)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			k := cellKey{x, y}
			g.cells[k] = append(g.cells[k], id)
		}
	}
}

// Query returns the candidates near b, each once, in slot order.
func (g *Grid) Query(b domain.AABB) []types.EntityID {
	x0, y0, x1, y1 := g.span(b)
	var out []types.EntityID
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			out = append(out, g.cells[cellKey{x, y}]...)
		}
	}
	slices.SortFunc(out, func(a, b types.EntityID) int {
		if a.Index() < b.Index() {
			return -1
		}
		if a.Index() > b.Index() {
			return 1
		}
		return 0
	})
	return slices.Compact(out)
}
