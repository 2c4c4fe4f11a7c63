package types

import "testing"

func TestMakeGlyph(t *testing.T) {
	tests := []struct {
		name     string
		colorRGB uint32
		r        rune
		want     Glyph
	}{
		{"wall grey hash", 0x808080, '#', Glyph(0x0080808000000023)},
		{"black space", 0x000000, ' ', Glyph(0x20)},
		{"colour truncated to 24 bits", 0x12345678, 'x', Glyph(0x0034567800000078)},
		{"wide rune", 0xFFD700, '★', Glyph(0x00FFD70000002605)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MakeGlyph(tt.colorRGB, tt.r); got != tt.want {
				t.Errorf("MakeGlyph() = 0x%016X, want 0x%016X", uint64(got), uint64(tt.want))
			}
		})
	}
}

func TestGlyph_RoundTrip(t *testing.T) {
	tests := []struct {
		color uint32
		r     rune
	}{
		{0xFFA500, 'A'},
		{0x000000, 0},
		{0xFFFFFF, '~'},
		{0x22C55E, '♣'},
	}

	for _, tt := range tests {
		g := MakeGlyph(tt.color, tt.r)
		if g.Color() != tt.color {
			t.Errorf("Color() = 0x%06X, want 0x%06X", g.Color(), tt.color)
		}
		if g.Rune() != tt.r {
			t.Errorf("Rune() = %q, want %q", g.Rune(), tt.r)
		}
	}
}

func TestGlyph_RGB(t *testing.T) {
	r, g, b := MakeGlyph(0x123456, '.').RGB()
	if r != 0x12 || g != 0x34 || b != 0x56 {
		t.Errorf("RGB() = (%X, %X, %X), want (12, 34, 56)", r, g, b)
	}
}

func TestGlyph_String(t *testing.T) {
	tests := []struct {
		name string
		g    Glyph
		want string
	}{
		{"printable", MakeGlyph(0xFF0000, '!'), "Glyph{'!', #FF0000}"},
		{"control char", MakeGlyph(0x00FF00, '\n'), "Glyph{'\\u000A', #00FF00}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.g.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}
