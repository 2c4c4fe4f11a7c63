package zone

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"babayaga/internal/core/types/enums"
)

const (
	LayoutMagic   = `BYZN`
	LayoutVersion = uint16(1)
)

var ErrBadLayout = errors.New("malformed layout data")

// layoutHeader is written whole by binary.Write, so it holds only fixed-size fields.
type layoutHeader struct {
	Magic     [4]byte
	Version   uint16
	Width     uint16
	Height    uint16
	Tiles     uint32
	Colliders uint32
	Groups    uint8
	Seed      int64
}

type tileRecord struct {
	X, Y uint16
	Kind uint8
}

type colliderRecord struct {
	X, Y       uint16
	Horizontal uint8
	Length     uint16
}

type groupHeader struct {
	Kind  uint8
	Count uint32
}

// MarshalBinary exports the layout little endian: tiles as (u16 x, u16 y,
// u8 kind), colliders as (u16 x, u16 y, u8 horizontal, u16 length), then
// each marker group as (u8 kind, u32 n, n × (f32 x, f32 y)).
func (l *Layout) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer

	h := layoutHeader{
		Version:   LayoutVersion,
		Width:     uint16(l.Width),
		Height:    uint16(l.Height),
		Tiles:     uint32(len(l.Tiles)),
		Colliders: uint32(len(l.Colliders)),
		Groups:    uint8(len(l.Markers)),
		Seed:      l.Seed,
	}
	copy(h.Magic[:], LayoutMagic)

	if err := binary.Write(&buf, binary.LittleEndian, &h); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	for i, k := range l.Tiles {
		rec := tileRecord{X: uint16(i % l.Width), Y: uint16(i / l.Width), Kind: uint8(k)}
		if err := binary.Write(&buf, binary.LittleEndian, &rec); err != nil {
			return nil, err
		}
	}

	for _, c := range l.Colliders {
		rec := colliderRecord{X: c.X, Y: c.Y, Length: c.Length}
		if c.Horizontal {
			rec.Horizontal = 1
		}
		if err := binary.Write(&buf, binary.LittleEndian, &rec); err != nil {
			return nil, err
		}
	}

	for _, g := range l.Markers {
		gh := groupHeader{Kind: uint8(g.Kind), Count: uint32(len(g.Positions))}
		if err := binary.Write(&buf, binary.LittleEndian, &gh); err != nil {
			return nil, err
		}
		for _, p := range g.Positions {
			if err := binary.Write(&buf, binary.LittleEndian, [2]float32{p.X, p.Y}); err != nil {
				return nil, err
			}
		}
	}

	return buf.Bytes(), nil
}

// UnmarshalBinary reads what MarshalBinary wrote. Placed prefab bounds
// are not part of the export.
func (l *Layout) UnmarshalBinary(data []byte) error {
	r := bytes.NewReader(data)

	var h layoutHeader
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return fmt.Errorf("failed to read header: %w", err)
	}
	if string(h.Magic[:]) != LayoutMagic {
		return fmt.Errorf("%w: invalid magic", ErrBadLayout)
	}
	if h.Version != LayoutVersion {
		return fmt.Errorf("%w: unsupported version %d (expected %d)", ErrBadLayout, h.Version, LayoutVersion)
	}
	if int(h.Tiles) != int(h.Width)*int(h.Height) {
		return fmt.Errorf("%w: %d tiles for a %dx%d grid", ErrBadLayout, h.Tiles, h.Width, h.Height)
	}

	out := newLayout(int(h.Width), int(h.Height), enums.TileGrass)
	out.Seed = h.Seed

	for i := 0; i < int(h.Tiles); i++ {
		var rec tileRecord
		if err := binary.Read(r, binary.LittleEndian, &rec); err != nil {
			return fmt.Errorf("%w: tile %d: %v", ErrBadLayout, i, err)
		}
		if !out.InBounds(int(rec.X), int(rec.Y)) {
			return fmt.Errorf("%w: tile (%d,%d) out of bounds", ErrBadLayout, rec.X, rec.Y)
		}
		out.set(int(rec.X), int(rec.Y), enums.TileKind(rec.Kind))
	}

	out.Colliders = make([]WallCollider, 0, h.Colliders)
	for i := 0; i < int(h.Colliders); i++ {
		var rec colliderRecord
		if err := binary.Read(r, binary.LittleEndian, &rec); err != nil {
			return fmt.Errorf("%w: collider %d: %v", ErrBadLayout, i, err)
		}
		out.Colliders = append(out.Colliders, WallCollider{
			X:          rec.X,
			Y:          rec.Y,
			Horizontal: rec.Horizontal != 0,
			Length:     rec.Length,
		})
	}

	out.Markers = make([]MarkerGroup, 0, h.Groups)
	for i := 0; i < int(h.Groups); i++ {
		var gh groupHeader
		if err := binary.Read(r, binary.LittleEndian, &gh); err != nil {
			return fmt.Errorf("%w: marker group %d: %v", ErrBadLayout, i, err)
		}
		if int(gh.Count)*8 > r.Len() {
			return fmt.Errorf("%w: marker group %d truncated", ErrBadLayout, i)
		}
		g := MarkerGroup{Kind: enums.MarkerKind(gh.Kind), Positions: make([]Position, gh.Count)}
		for j := range g.Positions {
			var xy [2]float32
			if err := binary.Read(r, binary.LittleEndian, &xy); err != nil {
				return fmt.Errorf("%w: marker %d/%d: %v", ErrBadLayout, i, j, err)
			}
			g.Positions[j] = Position{X: xy[0], Y: xy[1]}
		}
		out.Markers = append(out.Markers, g)
	}

	if r.Len() != 0 {
		return fmt.Errorf("%w: %d trailing bytes", ErrBadLayout, r.Len())
	}

	*l = *out
	return nil
}

// ReadLayout decodes a layout export from r.
func ReadLayout(r io.Reader) (*Layout, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	l := &Layout{}
	if err := l.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return l, nil
}
