package domain

import (
	"strings"

	"babayaga/internal/core/types"
	"babayaga/internal/core/types/enums"
)

// EventType is the numeric id used to route events to observers.
type EventType uint8

const (
	EventUnknown EventType = iota
	EventAttemptDamage
	EventDamageDealt
	EventHealed
	EventDefeated
	EventApplyEffect
	EventApplyStatus
	EventUseRequest
	EventUseEquipment
	EventUseFailed
	EventEquip
	EventUnequip
	EventInteraction
)

var eventStringToType = map[string]EventType{
	"ATTEMPT_DAMAGE": EventAttemptDamage,
	"DAMAGE_DEALT":   EventDamageDealt,
	"HEALED":         EventHealed,
	"DEFEATED":       EventDefeated,
	"APPLY_EFFECT":   EventApplyEffect,
	"APPLY_STATUS":   EventApplyStatus,
	"USE_REQUEST":    EventUseRequest,
	"EQUIPMENT_USED": EventUseEquipment,
	"USE_FAILED":     EventUseFailed,
	"EQUIP":          EventEquip,
	"UNEQUIP":        EventUnequip,
	"INTERACTION":    EventInteraction,
}

var eventTypeToString = map[EventType]string{
	EventAttemptDamage: "ATTEMPT_DAMAGE",
	EventDamageDealt:   "DAMAGE_DEALT",
	EventHealed:        "HEALED",
	EventDefeated:      "DEFEATED",
	EventApplyEffect:   "APPLY_EFFECT",
	EventApplyStatus:   "APPLY_STATUS",
	EventUseRequest:    "USE_REQUEST",
	EventUseEquipment:  "EQUIPMENT_USED",
	EventUseFailed:     "USE_FAILED",
	EventEquip:         "EQUIP",
	EventUnequip:       "UNEQUIP",
	EventInteraction:   "INTERACTION",
}

// ParseEvent is case-insensitive.
func ParseEvent(s string) EventType {
	if val, ok := eventStringToType[strings.ToUpper(s)]; ok {
		return val
	}
	return EventUnknown
}

func (t EventType) String() string {
	if val, ok := eventTypeToString[t]; ok {
		return val
	}
	return "UNKNOWN"
}

func (t EventType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Outbound reports whether the event belongs to the facade's event stream.
func (t EventType) Outbound() bool {
	switch t {
	case EventDamageDealt, EventHealed, EventDefeated, EventUseEquipment, EventUseFailed, EventInteraction:
		return true
	}
	return false
}

// Payload is the typed body of an event.
type Payload interface {
	EventType() EventType
}

// AttemptDamage asks the resolver to strike the target. Source is the
// weapon or projectile; nil for environmental damage.
type AttemptDamage struct {
	Amount       DamageRange    `json:"amount"`
	Source       types.EntityID `json:"source,omitempty"`
	IgnoreInvuln bool           `json:"ignoreInvuln,omitempty"`
}

type DamageDealt struct {
	Delta  float32        `json:"delta"`
	Source types.EntityID `json:"source,omitempty"`
}

type Healed struct {
	Delta float32 `json:"delta"`
}

type Defeated struct{}

// ApplyEffect decomposes into one ApplyStatus per template.
type ApplyEffect struct {
	Effects []StatusTemplate `json:"effects"`
}

type ApplyStatus struct {
	Template StatusTemplate `json:"template"`
}

// UseRequest targets the holder; it runs the activation pipeline.
type UseRequest struct {
	Slot enums.Slot `json:"slot"`
	Aim  Vec2       `json:"aim"`
}

// UseEquipment targets the item being used.
type UseEquipment struct {
	Holder types.EntityID `json:"holder"`
	Aim    Vec2           `json:"aim"`
}

type UseFailed struct {
	Holder types.EntityID      `json:"holder"`
	Slot   enums.Slot          `json:"slot"`
	Reason enums.UseFailReason `json:"reason"`
}

// Equip targets the holder.
type Equip struct {
	Item types.EntityID `json:"item"`
	Slot enums.Slot     `json:"slot"`
}

// Unequip targets the holder. It is also emitted for a displaced item.
type Unequip struct {
	Item types.EntityID `json:"item"`
	Slot enums.Slot     `json:"slot"`
}

// Interaction targets the zone owner.
type Interaction struct {
	Actor types.EntityID `json:"actor"`
}

func (AttemptDamage) EventType() EventType { return EventAttemptDamage }
func (DamageDealt) EventType() EventType   { return EventDamageDealt }
func (Healed) EventType() EventType        { return EventHealed }
func (Defeated) EventType() EventType      { return EventDefeated }
func (ApplyEffect) EventType() EventType   { return EventApplyEffect }
func (ApplyStatus) EventType() EventType   { return EventApplyStatus }
func (UseRequest) EventType() EventType    { return EventUseRequest }
func (UseEquipment) EventType() EventType  { return EventUseEquipment }
func (UseFailed) EventType() EventType     { return EventUseFailed }
func (Equip) EventType() EventType         { return EventEquip }
func (Unequip) EventType() EventType       { return EventUnequip }
func (Interaction) EventType() EventType   { return EventInteraction }
