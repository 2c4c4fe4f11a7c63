package engine

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"babayaga/pkg/zone"
)

// Config holds the engine launch parameters.
type Config struct {
	// Seed is the master seed. Combat rolls, AI wandering and zone seeds
	// derived from it are all reproducible.
	Seed int64

	// TickRate is ticks per second; dt = 1/TickRate.
	TickRate int

	// MaxDispatchDepth bounds event chains within one tick.
	MaxDispatchDepth int

	// Strict turns invariant breaches into tick errors instead of clamps.
	Strict bool

	CorpseLifetime       float32
	DeathInvulnerability float32
	GridCellSize         float32
	InteractRadius       float32
}

// NewConfig returns the defaults (random seed).
func NewConfig() Config {
	return Config{
		Seed:                 time.Now().UnixNano(),
		TickRate:             60,
		MaxDispatchDepth:     32,
		Strict:               false,
		CorpseLifetime:       2,
		DeathInvulnerability: 3600,
		GridCellSize:         zone.TileSize,
		InteractRadius:       48,
	}
}

// FromEnv overrides fields from BY_SEED, BY_TICK_RATE and BY_STRICT.
func (c Config) FromEnv() (Config, error) {
	if v, ok := os.LookupEnv("BY_SEED"); ok {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return c, fmt.Errorf("BY_SEED: %w", err)
		}
		c.Seed = seed
	}
	if v, ok := os.LookupEnv("BY_TICK_RATE"); ok {
		rate, err := strconv.Atoi(v)
		if err != nil {
			return c, fmt.Errorf("BY_TICK_RATE: %w", err)
		}
		c.TickRate = rate
	}
	if v, ok := os.LookupEnv("BY_STRICT"); ok {
		strict, err := strconv.ParseBool(v)
		if err != nil {
			return c, fmt.Errorf("BY_STRICT: %w", err)
		}
		c.Strict = strict
	}
	return c, nil
}

func (c Config) Validate() error {
	if c.TickRate <= 0 {
		return errors.New("tick rate must be positive")
	}
	if c.MaxDispatchDepth <= 0 {
		return errors.New("max dispatch depth must be positive")
	}
	if c.CorpseLifetime < 0 || c.DeathInvulnerability < 0 || c.InteractRadius < 0 {
		return errors.New("durations and radii cannot be negative")
	}
	return nil
}

// Dt is the fixed step in seconds.
func (c Config) Dt() float32 {
	return 1 / float32(c.TickRate)
}

// TickInterval is the wall-clock period of one tick.
func (c Config) TickInterval() time.Duration {
	return time.Second / time.Duration(c.TickRate)
}
