package zone

import "babayaga/internal/core/types/enums"

const (
	hubInnerW   = 16
	hubInnerH   = 10
	hubGapWidth = 3

	templeAttempts = 100
	templeMinW     = 8
	templeMaxW     = 12
	templeMinH     = 7
	templeMaxH     = 10

	squareAttempts = 50
	squareMinSide  = 3
	squareMaxSide  = 10
	squareBuffer   = 4
)

// placeHub centers a cobblestone yard walled on all sides, with a gap in
// the south wall and a corridor running down to the last row above the
// border.
func (b *Builder) placeHub() (*placement, bool) {
	w, h := b.desc.Width, b.desc.Height
	x0, y0 := (w-hubInnerW)/2, (h-hubInnerH)/2
	ring := Rect{X: x0 - 1, Y: y0 - 1, W: hubInnerW + 2, H: hubInnerH + 2}

	south := ring.Y + ring.H - 1
	gx := x0 + hubInnerW/2 - hubGapWidth/2

	corridor := Rect{X: gx, Y: south + 1, W: hubGapWidth, H: (h - 2) - south}
	if corridor.H < 0 {
		corridor.H = 0
	}
	bounds := ring
	if corridor.H > 0 {
		bounds = ring.Union(corridor)
	}

	// The corridor may cut loose walls but never another prefab.
	if !b.free(ring, 0) || b.overlapsPlaced(bounds) {
		return nil, false
	}

	b.layout.fill(ring, enums.TileWall)
	b.layout.fill(Rect{X: x0, Y: y0, W: hubInnerW, H: hubInnerH}, enums.TileCobblestone)
	b.layout.fill(Rect{X: gx, Y: south, W: hubGapWidth, H: 1}, enums.TileCobblestone)
	b.layout.fill(corridor, enums.TileCobblestone)

	// Walls laid earlier that cross the corridor are cut in two.
	if corridor.H > 0 {
		var kept []WallCollider
		for _, c := range b.colliders {
			kept = append(kept, splitAround(c, corridor)...)
		}
		b.colliders = kept
	}

	b.addRun(ring.X, ring.Y, true, ring.W)
	b.addRun(ring.X, south, true, gx-ring.X)
	b.addRun(gx+hubGapWidth, south, true, ring.X+ring.W-(gx+hubGapWidth))
	b.addRun(ring.X, y0, false, hubInnerH)
	b.addRun(ring.X+ring.W-1, y0, false, hubInnerH)

	cx, cy := x0+hubInnerW/2, y0+hubInnerH/2

	return &placement{
		bounds: bounds,
		markers: map[enums.MarkerKind][][2]int{
			enums.MarkerNPCSpawn: {{cx, cy}},
		},
	}, true
}

// splitAround removes the part of c that lies inside r.
func splitAround(c WallCollider, r Rect) []WallCollider {
	x, y, n := int(c.X), int(c.Y), int(c.Length)

	if c.Horizontal {
		if y < r.Y || y >= r.Y+r.H || x+n <= r.X || x >= r.X+r.W {
			return []WallCollider{c}
		}
		return runs(c, x, r.X, r.X+r.W, x+n)
	}

	if x < r.X || x >= r.X+r.W || y+n <= r.Y || y >= r.Y+r.H {
		return []WallCollider{c}
	}
	return runs(c, y, r.Y, r.Y+r.H, y+n)
}

// runs keeps [start, cutFrom) and [cutTo, end) along the axis of c.
func runs(c WallCollider, start, cutFrom, cutTo, end int) []WallCollider {
	var out []WallCollider
	if cutFrom > start {
		head := c
		head.Length = uint16(cutFrom - start)
		out = append(out, head)
	}
	if end > cutTo {
		tail := c
		if c.Horizontal {
			tail.X = uint16(cutTo)
		} else {
			tail.Y = uint16(cutTo)
		}
		tail.Length = uint16(end - cutTo)
		out = append(out, tail)
	}
	return out
}

// placeTemple drops a wooden hall near the center with a door in the
// south wall.
func (b *Builder) placeTemple() (*placement, bool) {
	w, h := b.desc.Width, b.desc.Height
	tw := b.randRange(templeMinW, templeMaxW)
	th := b.randRange(templeMinH, templeMaxH)

	for attempt := 0; attempt < templeAttempts; attempt++ {
		cx := w/2 + b.randRange(-w/4, w/4)
		cy := h/2 + b.randRange(-h/4, h/4)
		r := Rect{X: cx - tw/2, Y: cy - th/2, W: tw, H: th}

		if !b.free(r, 1) {
			continue
		}

		south := r.Y + r.H - 1
		door := r.X + r.W/2

		b.layout.fill(r, enums.TileWall)
		b.layout.fill(Rect{X: r.X + 1, Y: r.Y + 1, W: r.W - 2, H: r.H - 2}, enums.TileWood)
		b.layout.set(door, south, enums.TileWood)

		b.addRun(r.X, r.Y, true, r.W)
		b.addRun(r.X, south, true, door-r.X)
		b.addRun(door+1, south, true, r.X+r.W-door-1)
		b.addRun(r.X, r.Y+1, false, r.H-2)
		b.addRun(r.X+r.W-1, r.Y+1, false, r.H-2)

		return &placement{
			bounds: r,
			markers: map[enums.MarkerKind][][2]int{
				enums.MarkerChestSpawn: {{r.X + r.W/2, r.Y + 1}},
				enums.MarkerEnemySpawn: {{r.X + 1, r.Y + 1}, {r.X + r.W - 2, r.Y + 1}},
			},
		}, true
	}
	return nil, false
}

// placeEmptySquare carves a walled pit of dead zone tiles.
func (b *Builder) placeEmptySquare() (*placement, bool) {
	side := b.randRange(squareMinSide, squareMaxSide)
	total := side + 2
	a := b.area()

	maxX, maxY := a.X+a.W-total, a.Y+a.H-total
	if maxX < a.X || maxY < a.Y {
		return nil, false
	}

	for attempt := 0; attempt < squareAttempts; attempt++ {
		r := Rect{X: b.randRange(a.X, maxX), Y: b.randRange(a.Y, maxY), W: total, H: total}
		if !b.free(r, squareBuffer) {
			continue
		}

		b.layout.fill(r, enums.TileWall)
		b.layout.fill(Rect{X: r.X + 1, Y: r.Y + 1, W: side, H: side}, enums.TileDeadZone)

		b.addRun(r.X, r.Y, true, total)
		b.addRun(r.X, r.Y+total-1, true, total)
		b.addRun(r.X, r.Y+1, false, side)
		b.addRun(r.X+total-1, r.Y+1, false, side)

		return &placement{bounds: r}, true
	}
	return nil, false
}
