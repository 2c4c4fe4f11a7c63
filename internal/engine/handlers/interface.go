package handlers

import (
	"encoding/json"

	"babayaga/internal/core/types"
	"babayaga/internal/core/types/enums"
	"babayaga/internal/domain"
	"babayaga/pkg/catalog"
	"babayaga/pkg/zone"
)

// Facade is the part of engine.Service that commands drive.
// engine.Service implements it.
type Facade interface {
	SpawnActor(spec catalog.ActorSpec) (types.EntityID, error)
	PlayerSpawn() (domain.Vec2, bool)

	RequestUseEquipment(actor types.EntityID, slot enums.Slot, aim domain.Vec2) error
	RequestUseItem(actor, item types.EntityID) error
	RequestMove(actor types.EntityID, dir domain.Vec2) error
	RequestStop(actor types.EntityID) error
	RequestInteract(actor types.EntityID) error
	ApplyEffect(target types.EntityID, effects []domain.StatusTemplate) error
	RequestEquip(actor, item types.EntityID, slot enums.Slot) error
	RequestUnequip(actor types.EntityID, slot enums.Slot) error

	GenerateZone(desc zone.Descriptor, seed int64) (*zone.Layout, error)
	PopulateZone() ([]types.EntityID, error)
}

// Context is what a handler sees: the facade and who is acting.
type Context struct {
	Game Facade

	// Actor is the command token. Nil for SPAWN_ACTOR and GENERATE_ZONE.
	Actor types.EntityID

	// Session is the observer the command came from; empty during playback.
	Session string
}

// Result is returned to the host. Handlers never publish on their own.
type Result struct {
	Msg     string // log line for observers
	MsgType string // INFO, COMBAT, ZONE

	// Spawned is the actor created by SPAWN_ACTOR.
	Spawned types.EntityID

	// Zone is set by GENERATE_ZONE so the host can broadcast it.
	Zone *zone.Layout
}

// HandlerFunc is the contract of every command (MOVE, USE_EQUIPMENT, ...).
type HandlerFunc func(ctx Context, payload json.RawMessage) (Result, error)

func EmptyResult() Result {
	return Result{}
}
