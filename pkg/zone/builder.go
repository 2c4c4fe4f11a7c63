package zone

import (
	"errors"
	"fmt"
	"math/rand"

	"babayaga/internal/core/types/enums"
	"babayaga/pkg/logger"
)

var (
	ErrInvalidDescriptor = errors.New("invalid zone descriptor")
	ErrPrefabSkipped     = errors.New("prefab could not be placed")
	ErrNoPlayerSpawn     = errors.New("no walkable tile for the player spawn")
)

// Generate builds the zone for desc. The same descriptor and seed always
// produce the same layout.
func Generate(desc Descriptor, seed int64) (*Layout, error) {
	if err := desc.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDescriptor, err)
	}

	b := NewBuilder(desc, rand.New(rand.NewSource(seed)))
	for _, p := range desc.Prefabs {
		b.WithPrefab(p)
	}
	if desc.ExteriorWalls {
		b.WithExteriorWalls()
	}

	l, err := b.WithMarkers().Build()
	if err != nil {
		return nil, err
	}
	l.Seed = seed
	return l, nil
}

// Builder assembles a zone step by step. Steps run in call order and all
// randomness comes from the one rng.
type Builder struct {
	desc      Descriptor
	rng       *rand.Rand
	layout    *Layout
	colliders []WallCollider
	placed    []Placed
	prefabMk  [enums.MarkerKindCount][]Position
	randomMk  [enums.MarkerKindCount][]Position
	used      map[[2]int]bool
}

func NewBuilder(desc Descriptor, rng *rand.Rand) *Builder {
	return &Builder{
		desc:   desc,
		rng:    rng,
		layout: newLayout(desc.Width, desc.Height, desc.Floor),
		used:   make(map[[2]int]bool),
	}
}

func (b *Builder) randRange(min, max int) int {
	if max < min {
		min, max = max, min
	}
	return b.rng.Intn(max-min+1) + min
}

// margin is the band reserved for exterior walls.
func (b *Builder) margin() int {
	if b.desc.ExteriorWalls {
		return 1
	}
	return 0
}

// area is the region prefabs may occupy.
func (b *Builder) area() Rect {
	m := b.margin()
	return Rect{X: m, Y: m, W: b.desc.Width - 2*m, H: b.desc.Height - 2*m}
}

// free reports whether r, grown by buffer, fits inside the area, touches no
// wall or dead zone and keeps clear of every prefab placed so far.
func (b *Builder) free(r Rect, buffer int) bool {
	grown := r.Expand(buffer)
	a := b.area()
	if grown.X < a.X || grown.Y < a.Y || grown.X+grown.W > a.X+a.W || grown.Y+grown.H > a.Y+a.H {
		return false
	}
	if b.overlapsPlaced(grown) {
		return false
	}
	for y := grown.Y; y < grown.Y+grown.H; y++ {
		for x := grown.X; x < grown.X+grown.W; x++ {
			switch b.layout.At(x, y) {
			case enums.TileWall, enums.TileDeadZone:
				return false
			}
		}
	}
	return true
}

func (b *Builder) overlapsPlaced(r Rect) bool {
	for _, p := range b.placed {
		if r.Intersects(p.Bounds) {
			return true
		}
	}
	return false
}

// placement is what a prefab reports back on success.
type placement struct {
	bounds  Rect
	markers map[enums.MarkerKind][][2]int
}

// WithPrefab places p. A prefab that gives up is logged and skipped.
func (b *Builder) WithPrefab(p Prefab) *Builder {
	var (
		pl *placement
		ok bool
	)
	switch p {
	case PrefabHub:
		pl, ok = b.placeHub()
	case PrefabTemple:
		pl, ok = b.placeTemple()
	case PrefabEmptySquare:
		pl, ok = b.placeEmptySquare()
	}

	if !ok {
		logger.For("zone").WithError(ErrPrefabSkipped).
			WithField("prefab", p.String()).
			Warn("Prefab skipped")
		return b
	}

	b.placed = append(b.placed, Placed{Prefab: p, Bounds: pl.bounds})
	for kind := enums.MarkerKind(0); kind < enums.MarkerKindCount; kind++ {
		for _, t := range pl.markers[kind] {
			b.used[t] = true
			b.prefabMk[kind] = append(b.prefabMk[kind], TileCenter(t[0], t[1]))
		}
	}
	return b
}

// WithExteriorWalls lays the four border runs, one collider each.
func (b *Builder) WithExteriorWalls() *Builder {
	w, h := b.desc.Width, b.desc.Height

	for x := 0; x < w; x++ {
		b.layout.set(x, 0, enums.TileWall)
		b.layout.set(x, h-1, enums.TileWall)
	}
	for y := 1; y < h-1; y++ {
		b.layout.set(0, y, enums.TileWall)
		b.layout.set(w-1, y, enums.TileWall)
	}

	b.addRun(0, 0, true, w)
	b.addRun(0, h-1, true, w)
	b.addRun(0, 1, false, h-2)
	b.addRun(w-1, 1, false, h-2)
	return b
}

func (b *Builder) addRun(x, y int, horizontal bool, length int) {
	if length <= 0 {
		return
	}
	b.colliders = append(b.colliders, WallCollider{
		X:          uint16(x),
		Y:          uint16(y),
		Horizontal: horizontal,
		Length:     uint16(length),
	})
}

// Build finalizes the layout. It fails only when no player spawn exists.
func (b *Builder) Build() (*Layout, error) {
	l := b.layout
	l.Colliders = append([]WallCollider(nil), b.colliders...)
	sortColliders(l.Colliders)
	l.Prefabs = append([]Placed(nil), b.placed...)

	l.Markers = make([]MarkerGroup, 0, enums.MarkerKindCount)
	for kind := enums.MarkerKind(0); kind < enums.MarkerKindCount; kind++ {
		pos := make([]Position, 0, len(b.prefabMk[kind])+len(b.randomMk[kind]))
		pos = append(pos, b.prefabMk[kind]...)
		pos = append(pos, b.randomMk[kind]...)
		l.Markers = append(l.Markers, MarkerGroup{Kind: kind, Positions: pos})
	}

	if len(l.MarkersOf(enums.MarkerPlayerSpawn)) == 0 {
		return nil, ErrNoPlayerSpawn
	}
	return l, nil
}
