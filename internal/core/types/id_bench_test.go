package types

import "testing"

var (
	sinkID  EntityID
	sinkU32 uint32
	sinkU8  uint8
)

//go:noinline
func packEntityIDNoInline(kind uint8, gen uint32, index uint32) EntityID {
	return PackEntityID(kind, gen, index)
}

func BenchmarkPackEntityID(b *testing.B) {
	var id EntityID
	for i := 0; i < b.N; i++ {
		id = packEntityIDNoInline(1, uint32(i), uint32(i))
	}
	sinkID = id
}

func BenchmarkEntityID_Getters(b *testing.B) {
	id := packEntityIDNoInline(1, 2, 3)

	b.Run("Kind", func(b *testing.B) {
		var v uint8
		for i := 0; i < b.N; i++ {
			v = id.Kind()
		}
		sinkU8 = v
	})

	b.Run("Generation", func(b *testing.B) {
		var v uint32
		for i := 0; i < b.N; i++ {
			v = id.Generation()
		}
		sinkU32 = v
	})

	b.Run("Index", func(b *testing.B) {
		var v uint32
		for i := 0; i < b.N; i++ {
			v = id.Index()
		}
		sinkU32 = v
	})
}

// Map lookups by handle are the hot path of World.Get callers that cache ids.
func BenchmarkEntityID_MapKey(b *testing.B) {
	m := make(map[EntityID]int, 1024)
	for i := 0; i < 1024; i++ {
		m[PackEntityID(1, 1, uint32(i))] = i
	}
	b.ResetTimer()

	var v int
	for i := 0; i < b.N; i++ {
		v = m[PackEntityID(1, 1, uint32(i&1023))]
	}
	sinkU32 = uint32(v)
}
