package systems

import (
	"babayaga/internal/domain"
	"babayaga/pkg/zone"
)

// HasLineOfSight walks the tile line between two world points (Bresenham,
// integer steps only). The end tiles never block.
func HasLineOfSight(t Terrain, from, to domain.Vec2) bool {
	if t == nil {
		return true
	}
	x0, y0 := zone.TileOf(from.X), zone.TileOf(from.Y)
	x1, y1 := zone.TileOf(to.X), zone.TileOf(to.Y)
	sx, sy := x0, y0

	dx := abs(x1 - x0)
	dy := abs(y1 - y0)
	stepX, stepY := sign(x1-x0), sign(y1-y0)
	err := dx - dy

	for {
		isStart := x0 == sx && y0 == sy
		isEnd := x0 == x1 && y0 == y1
		if !isStart && !isEnd && t.Opaque(x0, y0) {
			return false
		}
		if isEnd {
			return true
		}
		e2 := err * 2
		if e2 > -dy {
			err -= dy
			x0 += stepX
		}
		if e2 < dx {
			err += dx
			y0 += stepY
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	if x > 0 {
		return 1
	}
	if x < 0 {
		return -1
	}
	return 0
}
