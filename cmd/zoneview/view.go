package main

import (
	"fmt"
	"strings"

	"babayaga/internal/core/types"
	"babayaga/internal/core/types/enums"
	"babayaga/pkg/zone"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Every tile is two columns wide so wide marker glyphs line up.
const cellWidth = 2

var tileGlyphs = map[enums.TileKind]types.Glyph{
	enums.TileWood:        types.MakeGlyph(0x92400E, '='),
	enums.TileGround:      types.MakeGlyph(0x78716C, '.'),
	enums.TileGrass:       types.MakeGlyph(0x15803D, '"'),
	enums.TileWall:        types.MakeGlyph(0x9CA3AF, '#'),
	enums.TileWater:       types.MakeGlyph(0x2563EB, '~'),
	enums.TileCobblestone: types.MakeGlyph(0xA8A29E, ','),
	enums.TileDeadZone:    types.MakeGlyph(0x1C1917, ' '),
}

var markerGlyphs = map[enums.MarkerKind]string{
	enums.MarkerEnemySpawn:  "👹",
	enums.MarkerChestSpawn:  "💰",
	enums.MarkerNPCSpawn:    "🧙",
	enums.MarkerPlayerSpawn: "🦸",
	enums.MarkerLevelExit:   "🌀",
}

var colliderStyle = tcell.StyleDefault.Foreground(tcell.ColorRed).Background(tcell.ColorBlack)

type viewer struct {
	desc   zone.Descriptor
	seed   int64
	layout *zone.Layout
	err    error

	colliders bool
	offX      int
	offY      int
}

func (v *viewer) regenerate() error {
	l, err := zone.Generate(v.desc, v.seed)
	if err != nil {
		return fmt.Errorf("seed %d: %w", v.seed, err)
	}
	v.layout = l
	return nil
}

func (v *viewer) run(screen tcell.Screen) {
	for {
		v.draw(screen)
		switch ev := screen.PollEvent().(type) {
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			switch ev.Key() {
			case tcell.KeyEscape, tcell.KeyCtrlC:
				return
			case tcell.KeyLeft:
				v.offX = max(0, v.offX-1)
			case tcell.KeyRight:
				v.offX++
			case tcell.KeyUp:
				v.offY = max(0, v.offY-1)
			case tcell.KeyDown:
				v.offY++
			case tcell.KeyRune:
				switch ev.Rune() {
				case 'q':
					return
				case 'n':
					v.step(1)
				case 'p':
					v.step(-1)
				case 'c':
					v.colliders = !v.colliders
				}
			}
		}
	}
}

// step moves to a neighbouring seed, keeping the last good layout on error.
func (v *viewer) step(d int64) {
	v.seed += d
	v.err = v.regenerate()
}

func (v *viewer) draw(screen tcell.Screen) {
	screen.Clear()
	sw, sh := screen.Size()
	l := v.layout

	for y := 0; y < l.Height; y++ {
		sy := y - v.offY
		if sy < 0 || sy >= sh-1 {
			continue
		}
		for x := 0; x < l.Width; x++ {
			sx := (x - v.offX) * cellWidth
			if sx < 0 || sx >= sw {
				continue
			}
			g := tileGlyphs[l.At(x, y)]
			style := tcell.StyleDefault.Foreground(tcell.NewHexColor(int32(g.Color()))).Background(tcell.ColorBlack)
			screen.SetContent(sx, sy, g.Rune(), nil, style)
			screen.SetContent(sx+1, sy, ' ', nil, style)
		}
	}

	if v.colliders {
		for _, c := range l.Colliders {
			for _, t := range c.Tiles() {
				v.putCell(screen, t[0], t[1], "██", colliderStyle)
			}
		}
	}

	for _, g := range l.Markers {
		glyph := markerGlyphs[g.Kind]
		for _, p := range g.Positions {
			v.putCell(screen, zone.TileOf(p.X), zone.TileOf(p.Y), glyph, tcell.StyleDefault.Background(tcell.ColorBlack))
		}
	}

	v.status(screen, sw, sh)
	screen.Show()
}

// putCell draws a glyph of up to two columns on tile (x, y).
func (v *viewer) putCell(screen tcell.Screen, x, y int, glyph string, style tcell.Style) {
	sw, sh := screen.Size()
	sx, sy := (x-v.offX)*cellWidth, y-v.offY
	if sx < 0 || sy < 0 || sx >= sw || sy >= sh-1 {
		return
	}
	col := sx
	for _, r := range glyph {
		if col >= sx+cellWidth {
			break
		}
		screen.SetContent(col, sy, r, nil, style)
		if runewidth.RuneWidth(r) == 2 {
			// Fill the second column to avoid rendering artifacts.
			screen.SetContent(col+1, sy, ' ', nil, style)
		}
		col += max(1, runewidth.RuneWidth(r))
	}
}

func (v *viewer) status(screen tcell.Screen, sw, sh int) {
	counts := make([]string, 0, len(v.layout.Markers))
	for _, g := range v.layout.Markers {
		counts = append(counts, fmt.Sprintf("%s=%d", g.Kind, len(g.Positions)))
	}
	line := fmt.Sprintf(" seed %d  %dx%d  colliders %d  %s ",
		v.seed, v.layout.Width, v.layout.Height, len(v.layout.Colliders), strings.Join(counts, " "))
	if v.err != nil {
		line = " " + v.err.Error() + " "
	}
	line = runewidth.Truncate(line, sw, "…")

	style := tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver)
	x := 0
	for _, r := range line {
		screen.SetContent(x, sh-1, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
	for ; x < sw; x++ {
		screen.SetContent(x, sh-1, ' ', nil, style)
	}
}
