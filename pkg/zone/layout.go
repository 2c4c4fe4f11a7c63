package zone

import (
	"sort"

	"babayaga/internal/core/types/enums"
)

// WallCollider is one contiguous wall run.
type WallCollider struct {
	X          uint16 `json:"x" msgpack:"x"`
	Y          uint16 `json:"y" msgpack:"y"`
	Horizontal bool   `json:"horizontal" msgpack:"horizontal"`
	Length     uint16 `json:"length" msgpack:"length"`
}

// Covers reports whether tile (x, y) lies on the run.
func (c WallCollider) Covers(x, y int) bool {
	if c.Horizontal {
		return y == int(c.Y) && x >= int(c.X) && x < int(c.X)+int(c.Length)
	}
	return x == int(c.X) && y >= int(c.Y) && y < int(c.Y)+int(c.Length)
}

// Tiles lists the tiles on the run in order.
func (c WallCollider) Tiles() [][2]int {
	out := make([][2]int, 0, c.Length)
	for i := 0; i < int(c.Length); i++ {
		if c.Horizontal {
			out = append(out, [2]int{int(c.X) + i, int(c.Y)})
		} else {
			out = append(out, [2]int{int(c.X), int(c.Y) + i})
		}
	}
	return out
}

// Bounds returns the world-space AABB center and half extents of the run.
func (c WallCollider) Bounds() (cx, cy, hx, hy float32) {
	w, h := float32(1), float32(1)
	if c.Horizontal {
		w = float32(c.Length)
	} else {
		h = float32(c.Length)
	}
	hx, hy = w*TileSize/2, h*TileSize/2
	return float32(c.X)*TileSize + hx, float32(c.Y)*TileSize + hy, hx, hy
}

func sortColliders(cs []WallCollider) {
	sort.Slice(cs, func(i, j int) bool {
		a, b := cs[i], cs[j]
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		if a.X != b.X {
			return a.X < b.X
		}
		if a.Horizontal != b.Horizontal {
			return !a.Horizontal
		}
		return a.Length < b.Length
	})
}

// MarkerGroup holds every position of one marker kind.
type MarkerGroup struct {
	Kind      enums.MarkerKind `json:"kind" msgpack:"kind"`
	Positions []Position       `json:"positions" msgpack:"positions"`
}

// Placed records where a prefab ended up.
type Placed struct {
	Prefab Prefab `json:"prefab"`
	Bounds Rect   `json:"bounds"`
}

// Layout is the generator output: a row-major tile grid, the sorted wall
// colliders and the merged spawn markers.
type Layout struct {
	Width     int              `json:"width"`
	Height    int              `json:"height"`
	Tiles     []enums.TileKind `json:"tiles"`
	Colliders []WallCollider   `json:"wallColliders"`
	Markers   []MarkerGroup    `json:"markers"`
	Prefabs   []Placed         `json:"prefabs,omitempty"`
	Seed      int64            `json:"seed"`
}

func newLayout(w, h int, floor enums.TileKind) *Layout {
	tiles := make([]enums.TileKind, w*h)
	for i := range tiles {
		tiles[i] = floor
	}
	return &Layout{Width: w, Height: h, Tiles: tiles}
}

func (l *Layout) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < l.Width && y < l.Height
}

// At returns the tile kind; out of range reads as wall.
func (l *Layout) At(x, y int) enums.TileKind {
	if !l.InBounds(x, y) {
		return enums.TileWall
	}
	return l.Tiles[y*l.Width+x]
}

func (l *Layout) set(x, y int, k enums.TileKind) {
	if l.InBounds(x, y) {
		l.Tiles[y*l.Width+x] = k
	}
}

func (l *Layout) fill(r Rect, k enums.TileKind) {
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			l.set(x, y, k)
		}
	}
}

// Blocked implements the motion terrain query.
func (l *Layout) Blocked(x, y int) bool {
	return !l.At(x, y).Walkable()
}

// Opaque stops projectiles and line of sight. Water and dead zones are
// blocking but see-through.
func (l *Layout) Opaque(x, y int) bool {
	return l.At(x, y) == enums.TileWall
}

// MarkersOf returns the positions registered for kind.
func (l *Layout) MarkersOf(kind enums.MarkerKind) []Position {
	for _, g := range l.Markers {
		if g.Kind == kind {
			return g.Positions
		}
	}
	return nil
}

// Walkable lists every walkable tile in row-major order.
func (l *Layout) Walkable() [][2]int {
	var out [][2]int
	for y := 0; y < l.Height; y++ {
		for x := 0; x < l.Width; x++ {
			if l.At(x, y).Walkable() {
				out = append(out, [2]int{x, y})
			}
		}
	}
	return out
}

// Reachable floods walkable tiles 4-way from (sx, sy).
func (l *Layout) Reachable(sx, sy int) []bool {
	seen := make([]bool, len(l.Tiles))
	if !l.InBounds(sx, sy) || !l.At(sx, sy).Walkable() {
		return seen
	}

	queue := [][2]int{{sx, sy}}
	seen[sy*l.Width+sx] = true
	dirs := [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, d := range dirs {
			nx, ny := cur[0]+d[0], cur[1]+d[1]
			if !l.InBounds(nx, ny) || !l.At(nx, ny).Walkable() {
				continue
			}
			idx := ny*l.Width + nx
			if seen[idx] {
				continue
			}
			seen[idx] = true
			queue = append(queue, [2]int{nx, ny})
		}
	}
	return seen
}
