package types

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestEntityID_Fields(t *testing.T) {
	tests := []struct {
		name  string
		kind  uint8
		gen   uint32
		index uint32
	}{
		{"All zero", 0, 0, 0},
		{"Simple values", 1, 2, 3},
		{"Max values", maskKind, maskGen, maskIndex},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := PackEntityID(tt.kind, tt.gen, tt.index)

			if id.Kind() != tt.kind {
				t.Errorf("Kind() = %v, want %v", id.Kind(), tt.kind)
			}
			if id.Generation() != tt.gen {
				t.Errorf("Generation() = %v, want %v", id.Generation(), tt.gen)
			}
			if id.Index() != tt.index {
				t.Errorf("Index() = %v, want %v", id.Index(), tt.index)
			}
		})
	}
}

func TestPackEntityID_TruncatesGeneration(t *testing.T) {
	id := PackEntityID(3, maskGen+1, 7)

	if id.Generation() != 0 {
		t.Errorf("Generation() = %d, want wrap to 0", id.Generation())
	}
	if id.Kind() != 3 {
		t.Errorf("Kind() = %d, overflow leaked into kind bits", id.Kind())
	}
}

func TestEntityID_IsNil(t *testing.T) {
	tests := []struct {
		name string
		id   EntityID
		want bool
	}{
		{"Zero is Nil", 0, true},
		{"NilEntityID constant", NilEntityID, true},
		{"First live handle is not Nil", PackEntityID(0, 1, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.id.IsNil(); got != tt.want {
				t.Errorf("IsNil() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEntityID_MarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		id   EntityID
		want []byte
	}{
		{
			name: "Simple ID",
			id:   PackEntityID(1, 2, 3),
			want: []byte(`"72057602627862531"`),
		},
		{
			name: "Zero ID",
			id:   EntityID(0),
			want: []byte(`"0"`),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.id.MarshalJSON()
			if err != nil {
				t.Fatalf("MarshalJSON() error = %v", err)
			}
			if !bytes.Equal(got, tt.want) {
				t.Errorf("MarshalJSON() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestEntityID_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		want    EntityID
		wantErr bool
	}{
		{name: "String ID", data: []byte(`"123"`), want: EntityID(123)},
		{name: "Number ID", data: []byte(`456`), want: EntityID(456)},
		{name: "Empty string", data: []byte(`""`), want: NilEntityID},
		{name: "Null", data: []byte(`null`), want: NilEntityID},
		{name: "Invalid format", data: []byte(`"abc"`), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var id EntityID
			err := id.UnmarshalJSON(tt.data)
			if (err != nil) != tt.wantErr {
				t.Fatalf("UnmarshalJSON() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && id != tt.want {
				t.Errorf("UnmarshalJSON() = %v, want %v", id, tt.want)
			}
		})
	}
}

func TestEntityID_String(t *testing.T) {
	if got := NilEntityID.String(); got != "<nil>" {
		t.Errorf("String() = %q, want <nil>", got)
	}
	if got := PackEntityID(2, 5, 9).String(); got != "2:9v5" {
		t.Errorf("String() = %q, want 2:9v5", got)
	}
}

func TestParseEntityID(t *testing.T) {
	want := PackEntityID(4, 1, 12)

	got, err := ParseEntityID("288230380446679052")
	if err != nil {
		t.Fatalf("ParseEntityID() error = %v", err)
	}
	if got != want {
		t.Errorf("ParseEntityID() = %v, want %v", got, want)
	}

	if _, err := ParseEntityID("x"); err == nil {
		t.Error("expected error for non-numeric input")
	}
}

func FuzzPackEntityID(f *testing.F) {
	f.Add(uint8(0), uint32(0), uint32(0))
	f.Add(uint8(1), uint32(2), uint32(3))
	f.Add(uint8(255), uint32(maskGen), uint32(4294967295))

	f.Fuzz(func(t *testing.T, kind uint8, gen uint32, index uint32) {
		gen &= maskGen
		id := PackEntityID(kind, gen, index)

		if got := id.Kind(); got != kind {
			t.Fatalf("Kind mismatch: got %d, want %d", got, kind)
		}
		if got := id.Generation(); got != gen {
			t.Fatalf("Generation mismatch: got %d, want %d", got, gen)
		}
		if got := id.Index(); got != index {
			t.Fatalf("Index mismatch: got %d, want %d", got, index)
		}
	})
}

func FuzzEntityID_JSONRoundTrip(f *testing.F) {
	f.Add(uint64(0))
	f.Add(uint64(123456789))
	f.Add(^uint64(0))

	f.Fuzz(func(t *testing.T, raw uint64) {
		original := EntityID(raw)

		data, err := json.Marshal(original)
		if err != nil {
			t.Fatalf("Marshal failed: %v", err)
		}

		var decoded EntityID
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("Unmarshal failed: %v", err)
		}

		if decoded != original {
			t.Fatalf("JSON round-trip mismatch: got %d, want %d", decoded, original)
		}
	})
}

func TestEntityID_WireRoundTrip(t *testing.T) {
	if NilEntityID.Wire() != "" {
		t.Errorf("Nil.Wire() = %q, want empty", NilEntityID.Wire())
	}
	id := PackEntityID(2, 5, 40)
	got, err := ParseEntityID(id.Wire())
	if err != nil {
		t.Fatalf("ParseEntityID(%q) error = %v", id.Wire(), err)
	}
	if got != id {
		t.Errorf("round trip = %v, want %v", got, id)
	}
}
