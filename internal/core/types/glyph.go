package types

import (
	"fmt"
	"unicode"
)

// Glyph is a coloured terminal cell packed into 64 bits:
//
//	[0:32]  rune
//	[32:56] RGB colour (0xRRGGBB)
//
// Zone viewers keep one Glyph per tile kind and per marker kind.
type Glyph uint64

const (
	bitsRune  = 32
	bitsColor = 24

	shiftColor = bitsRune

	maskRune  = (1 << bitsRune) - 1
	maskColor = (1 << bitsColor) - 1
)

// MakeGlyph packs a colour and a rune. Only the low 24 bits of colorRGB are kept.
func MakeGlyph(colorRGB uint32, r rune) Glyph {
	return Glyph(uint64(colorRGB&maskColor)<<shiftColor | uint64(uint32(r)&maskRune))
}

// Color returns the 0xRRGGBB colour.
func (g Glyph) Color() uint32 {
	return uint32(g>>shiftColor) & maskColor
}

// Rune returns the symbol.
func (g Glyph) Rune() rune {
	return rune(uint32(g & maskRune))
}

// RGB splits the colour into channels.
func (g Glyph) RGB() (r, gr, b int32) {
	c := g.Color()
	return int32(c >> 16 & 0xFF), int32(c >> 8 & 0xFF), int32(c & 0xFF)
}

// HexColor formats the colour as "#RRGGBB".
func (g Glyph) HexColor() string {
	return fmt.Sprintf("#%06X", g.Color())
}

// String implements fmt.Stringer, e.g. Glyph{'#', #808080}.
func (g Glyph) String() string {
	r := g.Rune()
	sym := string(r)
	if !unicode.IsPrint(r) {
		sym = fmt.Sprintf("\\u%04X", r)
	}
	return fmt.Sprintf("Glyph{'%s', %s}", sym, g.HexColor())
}
