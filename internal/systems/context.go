package systems

import (
	"math/rand"

	"babayaga/internal/core/types"
	"babayaga/internal/domain"
	"babayaga/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Terrain is the loaded tile grid as seen by simulation systems.
// Coordinates are tile indices.
type Terrain interface {
	// Blocked is true for tiles actors cannot enter (and out of bounds).
	Blocked(tx, ty int) bool
	// Opaque is true for tiles that block line of sight.
	Opaque(tx, ty int) bool
}

// Scheduler delays despawns, used for corpses.
type Scheduler interface {
	ScheduleDespawn(id types.EntityID, after float32)
}

// Rules are the tunables systems read from engine configuration.
type Rules struct {
	Strict               bool
	CorpseLifetime       float32
	DeathInvulnerability float32
	InteractRadius       float32
}

// Context is shared by every system for the life of a simulation.
type Context struct {
	World     *domain.World
	Bus       *domain.Bus
	Rng       *rand.Rand
	Terrain   Terrain
	Scheduler Scheduler
	Rules     Rules
	Tick      uint64
}

// Breach reports a broken invariant. Strict mode returns it so the tick
// aborts; otherwise the caller clamps and carries on.
func (c *Context) Breach(err error) error {
	if c.Rules.Strict {
		return err
	}
	logger.Log.WithFields(logrus.Fields{
		"component": "invariants",
		"tick":      c.Tick,
	}).WithError(err).Error("invariant breach clamped")
	return nil
}

func (c *Context) log(component string) *logrus.Entry {
	return logger.Log.WithFields(logrus.Fields{
		"component": component,
		"tick":      c.Tick,
	})
}

// Register wires every observer and lifecycle hook. Call it once.
func Register(c *Context) {
	registerDamage(c)
	registerStatuses(c)
	registerWeapons(c)
	registerInventory(c)
	registerInteraction(c)
}
