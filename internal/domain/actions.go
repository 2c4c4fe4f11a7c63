package domain

import "strings"

// ActionType is the numeric id of an inbound facade command.
type ActionType uint8

const (
	ActionUnknown ActionType = iota
	ActionSpawnActor
	ActionUseEquipment
	ActionUseItem
	ActionMove
	ActionStop
	ActionInteract
	ActionApplyEffect
	ActionEquip
	ActionUnequip
	ActionGenerateZone
	ActionSnapshot
)

// JSON -> domain
var actionStringToCmd = map[string]ActionType{
	"SPAWN_ACTOR":   ActionSpawnActor,
	"USE_EQUIPMENT": ActionUseEquipment,
	"USE_ITEM":      ActionUseItem,
	"MOVE":          ActionMove,
	"STOP":          ActionStop,
	"INTERACT":      ActionInteract,
	"APPLY_EFFECT":  ActionApplyEffect,
	"EQUIP":         ActionEquip,
	"UNEQUIP":       ActionUnequip,
	"GENERATE_ZONE": ActionGenerateZone,
	"SNAPSHOT":      ActionSnapshot,
}

// domain -> logs
var actionCmdToString = map[ActionType]string{
	ActionSpawnActor:   "SPAWN_ACTOR",
	ActionUseEquipment: "USE_EQUIPMENT",
	ActionUseItem:      "USE_ITEM",
	ActionMove:         "MOVE",
	ActionStop:         "STOP",
	ActionInteract:     "INTERACT",
	ActionApplyEffect:  "APPLY_EFFECT",
	ActionEquip:        "EQUIP",
	ActionUnequip:      "UNEQUIP",
	ActionGenerateZone: "GENERATE_ZONE",
	ActionSnapshot:     "SNAPSHOT",
}

// ParseAction is case-insensitive.
func ParseAction(s string) ActionType {
	if val, ok := actionStringToCmd[strings.ToUpper(s)]; ok {
		return val
	}
	return ActionUnknown
}

func (a ActionType) String() string {
	if val, ok := actionCmdToString[a]; ok {
		return val
	}
	return "UNKNOWN"
}

// Recorded reports whether the command changes simulation state and so
// belongs in a replay log.
func (a ActionType) Recorded() bool {
	return a != ActionUnknown && a != ActionSnapshot
}
