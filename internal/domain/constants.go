package domain

// Inventory
const (
	DefaultInventoryCapacity = 12
)

// Invulnerability
const (
	DefaultFlashPeriod = 0.1
)

// Aftermath of a stun: a short slow once the stun wears off.
const (
	StunAftermathSlow     = 0.5
	StunAftermathDuration = 3.0
)

// Zone objects
const (
	ChestRadius  = 24
	PortalRadius = 24
	ChestCoins   = 10
)

// Actor collision box half extent for a one-tile actor.
const ActorHalfExtent = 12
