package utils

import (
	"hash/fnv"
	"math/rand"

	"github.com/oklog/ulid/v2"
)

// NewID returns a lexicographically sortable unique id (session, snapshot and replay names).
// ulid.Make panics only if the entropy source fails.
func NewID() string {
	return ulid.Make().String()
}

// StringToSeed derives a stable seed from a name so the same name always
// produces the same RNG stream.
func StringToSeed(s string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return int64(h.Sum64())
}

// DeriveSeed mixes a master seed with a salt (zone index, actor name, ...).
func DeriveSeed(master int64, salt string) int64 {
	return master ^ StringToSeed(salt)
}

// RandRange returns an int in [min, max]. A reversed range is swapped.
func RandRange(rng *rand.Rand, min, max int) int {
	if max < min {
		min, max = max, min
	}
	return rng.Intn(max-min+1) + min
}

// UniformFloat32 samples [min, max] uniformly. Equal bounds return min without
// touching the RNG so fixed-damage weapons do not shift the stream.
func UniformFloat32(rng *rand.Rand, min, max float32) float32 {
	if max < min {
		min, max = max, min
	}
	if max == min {
		return min
	}
	return min + rng.Float32()*(max-min)
}
