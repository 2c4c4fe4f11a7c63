package domain

import "math"

// Vec2 is a world-space vector in pixels. +Y points down the screen.
type Vec2 struct {
	X float32 `json:"x" msgpack:"x"`
	Y float32 `json:"y" msgpack:"y"`
}

func V(x, y float32) Vec2 { return Vec2{X: x, Y: y} }

func (v Vec2) Add(o Vec2) Vec2        { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2        { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(s float32) Vec2   { return Vec2{v.X * s, v.Y * s} }
func (v Vec2) Neg() Vec2              { return Vec2{-v.X, -v.Y} }
func (v Vec2) Dot(o Vec2) float32     { return v.X*o.X + v.Y*o.Y }
func (v Vec2) LenSq() float32         { return v.X*v.X + v.Y*v.Y }
func (v Vec2) IsZero() bool           { return v.X == 0 && v.Y == 0 }
func (v Vec2) DistanceTo(o Vec2) float32 { return v.Sub(o).Len() }

func (v Vec2) Len() float32 {
	return float32(math.Sqrt(float64(v.LenSq())))
}

// Normalize returns the unit vector; the zero vector stays zero.
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// ClampLen shortens v to at most max.
func (v Vec2) ClampLen(max float32) Vec2 {
	l := v.Len()
	if l <= max || l == 0 {
		return v
	}
	return v.Scale(max / l)
}

// Angle is atan2(y, x) in radians.
func (v Vec2) Angle() float32 {
	return float32(math.Atan2(float64(v.Y), float64(v.X)))
}

// FromAngle returns (cos θ, sin θ).
func FromAngle(theta float32) Vec2 {
	s, c := math.Sincos(float64(theta))
	return Vec2{float32(c), float32(s)}
}

// AABB is an axis-aligned box given by its centre and half extents.
type AABB struct {
	Center Vec2 `json:"center"`
	Half   Vec2 `json:"half"`
}

func (b AABB) Min() Vec2 { return b.Center.Sub(b.Half) }
func (b AABB) Max() Vec2 { return b.Center.Add(b.Half) }

// Overlaps is strict: boxes that only touch along an edge do not overlap.
func (b AABB) Overlaps(o AABB) bool {
	dx := b.Center.X - o.Center.X
	dy := b.Center.Y - o.Center.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx < b.Half.X+o.Half.X && dy < b.Half.Y+o.Half.Y
}

// Contains reports whether p lies inside the box (edges included).
func (b AABB) Contains(p Vec2) bool {
	min, max := b.Min(), b.Max()
	return p.X >= min.X && p.X <= max.X && p.Y >= min.Y && p.Y <= max.Y
}

func pow32(x, y float32) float32 {
	return float32(math.Pow(float64(x), float64(y)))
}
