package zone

import (
	"babayaga/internal/core/types/enums"
	"babayaga/pkg/logger"
)

// enemyClearance keeps random enemies this many tiles away from the player spawn.
const enemyClearance = 4

// WithMarkers draws the random markers. The player spawn comes from the
// entrance band (left quarter, or top quarter on tall maps); every other
// marker is drawn from tiles reachable from it, exits biased to the far
// quarter.
func (b *Builder) WithMarkers() *Builder {
	l := b.layout

	var spawn [2]int
	if prefab := b.prefabMk[enums.MarkerPlayerSpawn]; len(prefab) > 0 {
		spawn = [2]int{TileOf(prefab[0].X), TileOf(prefab[0].Y)}
	} else {
		open := b.candidates(l.Walkable())
		pick, ok := b.draw(b.band(open, true))
		if !ok {
			pick, ok = b.draw(open)
		}
		if !ok {
			pick, ok = b.draw(l.Walkable())
		}
		if !ok {
			logger.For("zone").Error("No tile left for the player spawn")
			return b
		}
		spawn = pick
		b.randomMk[enums.MarkerPlayerSpawn] = append(b.randomMk[enums.MarkerPlayerSpawn], TileCenter(pick[0], pick[1]))
	}

	seen := l.Reachable(spawn[0], spawn[1])
	var reachable [][2]int
	for _, t := range l.Walkable() {
		if seen[t[1]*l.Width+t[0]] {
			reachable = append(reachable, t)
		}
	}
	pool := b.candidates(reachable)

	b.drawMany(enums.MarkerLevelExit, b.desc.NumExits, b.band(pool, false), pool)

	var away [][2]int
	for _, t := range pool {
		if abs(t[0]-spawn[0]) > enemyClearance || abs(t[1]-spawn[1]) > enemyClearance {
			away = append(away, t)
		}
	}
	b.drawMany(enums.MarkerEnemySpawn, b.desc.NumEnemies, away, pool)
	b.drawMany(enums.MarkerChestSpawn, b.desc.NumChests, pool, pool)

	return b
}

// candidates drops tiles inside placed prefabs.
func (b *Builder) candidates(tiles [][2]int) [][2]int {
	var out [][2]int
	for _, t := range tiles {
		inside := false
		for _, p := range b.placed {
			if p.Bounds.Contains(t[0], t[1]) {
				inside = true
				break
			}
		}
		if !inside {
			out = append(out, t)
		}
	}
	return out
}

// band keeps the entrance quarter (near) or the exit quarter (far).
func (b *Builder) band(tiles [][2]int, near bool) [][2]int {
	horizontal := b.desc.Horizontal()
	extent := b.desc.Height
	if horizontal {
		extent = b.desc.Width
	}
	quarter := max(1, extent/4)

	var out [][2]int
	for _, t := range tiles {
		c := t[1]
		if horizontal {
			c = t[0]
		}
		if (near && c < quarter) || (!near && c >= extent-quarter) {
			out = append(out, t)
		}
	}
	return out
}

// draw picks an unused tile from tiles and marks it used.
func (b *Builder) draw(tiles [][2]int) ([2]int, bool) {
	var free [][2]int
	for _, t := range tiles {
		if !b.used[t] {
			free = append(free, t)
		}
	}
	if len(free) == 0 {
		return [2]int{}, false
	}
	t := free[b.rng.Intn(len(free))]
	b.used[t] = true
	return t, true
}

// drawMany draws n markers from preferred, falling back to pool.
func (b *Builder) drawMany(kind enums.MarkerKind, n int, preferred, pool [][2]int) {
	for i := 0; i < n; i++ {
		t, ok := b.draw(preferred)
		if !ok {
			t, ok = b.draw(pool)
		}
		if !ok {
			logger.For("zone").WithField("marker", kind.String()).
				WithField("placed", i).
				WithField("wanted", n).
				Warn("Ran out of tiles for markers")
			return
		}
		b.randomMk[kind] = append(b.randomMk[kind], TileCenter(t[0], t[1]))
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
