package api

import (
	"encoding/json"

	"babayaga/pkg/zone"
)

// --- SERVER -> CLIENT ---

// Message types sent to observers.
const (
	MsgEvents = "EVENTS"
	MsgState  = "STATE"
	MsgZone   = "ZONE"
	MsgError  = "ERROR"
)

// ServerMessage is the root object the server sends to a session.
type ServerMessage struct {
	// Type is one of MsgEvents, MsgState, MsgZone, MsgError.
	Type string `json:"type"`

	// Tick is the last completed simulation tick.
	Tick uint64 `json:"tick"`

	// MyEntityID is the actor this session controls, if any.
	MyEntityID string `json:"myEntityId,omitempty"`

	Events   []EventView  `json:"events,omitempty"`
	Entities []EntityView `json:"entities,omitempty"`
	Zone     *ZoneView    `json:"zone,omitempty"`
	Error    string       `json:"error,omitempty"`
}

// EventView is one outbound bus event.
type EventView struct {
	Seq     uint64 `json:"seq"`
	Tick    uint64 `json:"tick"`
	Type    string `json:"type"`
	Target  string `json:"target,omitempty"`
	Payload any    `json:"payload,omitempty"`
}

// Point is a world-space position in pixels.
type Point struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
}

// GaugeView is a bounded attribute (hp, mana).
type GaugeView struct {
	Current float32 `json:"current"`
	Max     float32 `json:"max"`
}

// EntityView is the debug/observer view of an entity.
type EntityView struct {
	ID       string  `json:"id"`
	Kind     string  `json:"kind"`
	Name     string  `json:"name"`
	Faction  string  `json:"faction,omitempty"`
	Parent   string  `json:"parent,omitempty"`
	Pos      Point   `json:"pos"`
	Rotation float32 `json:"rotation,omitempty"`
	Glyph    string  `json:"glyph,omitempty"`
	Color    string  `json:"color,omitempty"`

	Action       string     `json:"action,omitempty"`
	Facing       string     `json:"facing,omitempty"`
	Health       *GaugeView `json:"health,omitempty"`
	Mana         *GaugeView `json:"mana,omitempty"`
	Statuses     []string   `json:"statuses,omitempty"`
	Invulnerable bool       `json:"invulnerable,omitempty"`
	Dimmed       bool       `json:"dimmed,omitempty"`

	Inventory *InventoryView `json:"inventory,omitempty"`

	// Items only
	Visible *bool `json:"visible,omitempty"`
}

// ItemView is one inventory entry.
type ItemView struct {
	ID       string `json:"id"`
	Template string `json:"template"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Slot     string `json:"slot,omitempty"`
}

// InventoryView lists items in order; Slots maps slot names to item ids.
type InventoryView struct {
	Items    []ItemView        `json:"items"`
	Slots    map[string]string `json:"slots"`
	Capacity int               `json:"capacity"`
	Coins    int               `json:"coins"`
}

// ColliderView is a wall run in tile coordinates.
type ColliderView struct {
	X          uint16 `json:"x"`
	Y          uint16 `json:"y"`
	Horizontal bool   `json:"horizontal"`
	Length     uint16 `json:"length"`
}

// MarkerView is one marker group.
type MarkerView struct {
	Kind      string          `json:"kind"`
	Positions []zone.Position `json:"positions"`
}

// ZoneView carries a generated layout. Tiles are row-major tile kinds.
type ZoneView struct {
	Width     int            `json:"w"`
	Height    int            `json:"h"`
	Seed      int64          `json:"seed"`
	Tiles     []uint8        `json:"tiles"`
	Colliders []ColliderView `json:"colliders"`
	Markers   []MarkerView   `json:"markers"`
}

// NewZoneView flattens a layout for the wire.
func NewZoneView(l *zone.Layout) *ZoneView {
	v := &ZoneView{
		Width:     l.Width,
		Height:    l.Height,
		Seed:      l.Seed,
		Tiles:     make([]uint8, len(l.Tiles)),
		Colliders: make([]ColliderView, 0, len(l.Colliders)),
		Markers:   make([]MarkerView, 0, len(l.Markers)),
	}
	for i, t := range l.Tiles {
		v.Tiles[i] = uint8(t)
	}
	for _, c := range l.Colliders {
		v.Colliders = append(v.Colliders, ColliderView{X: c.X, Y: c.Y, Horizontal: c.Horizontal, Length: c.Length})
	}
	for _, g := range l.Markers {
		v.Markers = append(v.Markers, MarkerView{Kind: g.Kind.String(), Positions: g.Positions})
	}
	return v
}

// --- CLIENT -> SERVER ---

// ClientCommand is the root object for every message from a client.
type ClientCommand struct {
	// Token is the id of the acting entity. Empty for commands that do not
	// act through an actor (SPAWN_ACTOR, GENERATE_ZONE, SNAPSHOT).
	Token string `json:"token,omitempty"`

	// Action names the command, e.g. "MOVE".
	Action string `json:"action"`

	// Payload depends on Action.
	Payload json.RawMessage `json:"payload,omitempty"`
}

// --- Payloads ---

// StatsPayload overrides template stats. Nil pointers keep the template value.
type StatsPayload struct {
	MaxHP     *float32 `json:"maxHp,omitempty"`
	HP        *float32 `json:"hp,omitempty"`
	MaxMana   *float32 `json:"maxMana,omitempty"`
	Mana      *float32 `json:"mana,omitempty"`
	ManaRegen *float32 `json:"manaRegen,omitempty"`
	Speed     *float32 `json:"speed,omitempty"`
	IFrames   *float32 `json:"iframes,omitempty"`
}

// LoadoutPayload is one inventory entry of a spawned actor.
type LoadoutPayload struct {
	Item string `json:"item"`
	Slot string `json:"slot,omitempty"`
}

// SpawnActorPayload spawns an actor from a catalog template. A nil Pos uses
// the zone's player spawn.
type SpawnActorPayload struct {
	Template   string           `json:"template"`
	Name       string           `json:"name,omitempty"`
	Faction    string           `json:"faction,omitempty"`
	Pos        *Point           `json:"pos,omitempty"`
	Stats      *StatsPayload    `json:"stats,omitempty"`
	Inventory  []LoadoutPayload `json:"inventory,omitempty"`
	Coins      *int             `json:"coins,omitempty"`
	Controller string           `json:"controller,omitempty"`
}

// UseEquipmentPayload activates the item in Slot. A nil Aim uses facing.
type UseEquipmentPayload struct {
	Slot string `json:"slot"`
	Aim  *Point `json:"aim,omitempty"`
}

// ItemPayload names one item of the acting actor (USE_ITEM).
type ItemPayload struct {
	ItemID string `json:"itemId"`
}

// DirectionPayload is a movement direction. It is normalised server side.
type DirectionPayload struct {
	Dx float32 `json:"dx"`
	Dy float32 `json:"dy"`
}

// EffectPayload is one status template.
type EffectPayload struct {
	Kind          string  `json:"kind"`
	Duration      float32 `json:"duration"`
	DamagePerTick float32 `json:"damagePerTick,omitempty"`
	TickInterval  float32 `json:"tickInterval,omitempty"`
	SlowFrac      float32 `json:"slowFrac,omitempty"`
}

// ApplyEffectPayload applies statuses to TargetID (environment scripts).
type ApplyEffectPayload struct {
	TargetID string          `json:"targetId"`
	Effects  []EffectPayload `json:"effects"`
}

// EquipPayload puts ItemID into Slot.
type EquipPayload struct {
	ItemID string `json:"itemId"`
	Slot   string `json:"slot"`
}

// SlotPayload names a slot (UNEQUIP).
type SlotPayload struct {
	Slot string `json:"slot"`
}

// GenerateZonePayload replaces the current zone. Populate also spawns
// enemies and NPCs at their markers.
type GenerateZonePayload struct {
	Descriptor zone.Descriptor `json:"descriptor"`
	Seed       int64           `json:"seed"`
	Populate   bool            `json:"populate,omitempty"`
}
