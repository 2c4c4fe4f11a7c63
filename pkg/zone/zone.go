package zone

import (
	"fmt"
	"math"
	"strings"

	"babayaga/internal/core/types/enums"
)

// TileSize is the side of one tile in world units.
const TileSize = 32

// TileOf maps a world coordinate to its tile coordinate.
func TileOf(px float32) int {
	return int(math.Floor(float64(px) / TileSize))
}

// TileCenter returns the world position of the center of tile (x, y).
func TileCenter(x, y int) Position {
	return Position{
		X: (float32(x) + 0.5) * TileSize,
		Y: (float32(y) + 0.5) * TileSize,
	}
}

// Position is a world-space marker position.
type Position struct {
	X float32 `json:"x" msgpack:"x"`
	Y float32 `json:"y" msgpack:"y"`
}

// Rect is a tile rectangle.
type Rect struct {
	X, Y, W, H int
}

func (r Rect) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Intersects reports whether the two rectangles share at least one tile.
func (r Rect) Intersects(other Rect) bool {
	return r.X < other.X+other.W && r.X+r.W > other.X &&
		r.Y < other.Y+other.H && r.Y+r.H > other.Y
}

func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Expand grows the rectangle by n tiles on every side.
func (r Rect) Expand(n int) Rect {
	return Rect{X: r.X - n, Y: r.Y - n, W: r.W + 2*n, H: r.H + 2*n}
}

// Union is the smallest rectangle covering both.
func (r Rect) Union(other Rect) Rect {
	x0, y0 := min(r.X, other.X), min(r.Y, other.Y)
	x1, y1 := max(r.X+r.W, other.X+other.W), max(r.Y+r.H, other.Y+other.H)
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Prefab identifies a reusable structure placed during generation.
type Prefab uint8

const (
	PrefabHub Prefab = iota
	PrefabTemple
	PrefabEmptySquare
)

var prefabToString = map[Prefab]string{
	PrefabHub:         "HUB",
	PrefabTemple:      "TEMPLE",
	PrefabEmptySquare: "EMPTY_SQUARE",
}

var prefabStringToType = map[string]Prefab{
	"HUB":          PrefabHub,
	"NPC_HUB":      PrefabHub,
	"TEMPLE":       PrefabTemple,
	"EMPTY_SQUARE": PrefabEmptySquare,
}

func (p Prefab) String() string {
	if val, ok := prefabToString[p]; ok {
		return val
	}
	return "UNKNOWN"
}

func ParsePrefab(s string) (Prefab, error) {
	if val, ok := prefabStringToType[strings.ToUpper(s)]; ok {
		return val, nil
	}
	return 0, fmt.Errorf("unknown prefab %q", s)
}

func (p Prefab) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Prefab) UnmarshalText(b []byte) error {
	v, err := ParsePrefab(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// Descriptor is everything needed, together with a seed, to rebuild a zone.
type Descriptor struct {
	Width         int            `json:"width" msgpack:"width" jsonschema:"minimum=3,maximum=65535"`
	Height        int            `json:"height" msgpack:"height" jsonschema:"minimum=3,maximum=65535"`
	Floor         enums.TileKind `json:"floor" msgpack:"floor" jsonschema:"type=string,enum=WOOD,enum=GROUND,enum=GRASS,enum=COBBLESTONE"`
	Prefabs       []Prefab       `json:"prefabs,omitempty" msgpack:"prefabs"`
	NumEnemies    int            `json:"numEnemies,omitempty" msgpack:"num_enemies" jsonschema:"minimum=0"`
	NumChests     int            `json:"numChests,omitempty" msgpack:"num_chests" jsonschema:"minimum=0"`
	NumExits      int            `json:"numExits" msgpack:"num_exits" jsonschema:"minimum=0"`
	ExteriorWalls bool           `json:"exteriorWalls" msgpack:"exterior_walls"`
}

// Validate rejects descriptors no generator run could satisfy.
func (d Descriptor) Validate() error {
	if d.Width < 3 || d.Height < 3 {
		return fmt.Errorf("zone size %dx%d is below 3x3", d.Width, d.Height)
	}
	if d.Width > math.MaxUint16 || d.Height > math.MaxUint16 {
		return fmt.Errorf("zone size %dx%d does not fit u16 tile coordinates", d.Width, d.Height)
	}
	if !d.Floor.Walkable() {
		return fmt.Errorf("floor %s is not walkable", d.Floor)
	}
	if d.NumEnemies < 0 || d.NumChests < 0 || d.NumExits < 0 {
		return fmt.Errorf("negative marker count")
	}
	return nil
}

// Horizontal reports whether entrances go left and exits right
// (otherwise top and bottom).
func (d Descriptor) Horizontal() bool {
	return d.Width >= d.Height
}
