package enums

import "strings"

// EntityKind is stored in the top byte of every EntityID.
type EntityKind uint8

const (
	EntityKindUnknown EntityKind = iota
	EntityKindActor
	EntityKindItem
	EntityKindProjectile
	EntityKindStatus
	EntityKindInteractable
)

var entityKindToString = map[EntityKind]string{
	EntityKindActor:        "ACTOR",
	EntityKindItem:         "ITEM",
	EntityKindProjectile:   "PROJECTILE",
	EntityKindStatus:       "STATUS",
	EntityKindInteractable: "INTERACTABLE",
}

var entityKindStringToType = map[string]EntityKind{
	"ACTOR":        EntityKindActor,
	"ITEM":         EntityKindItem,
	"PROJECTILE":   EntityKindProjectile,
	"STATUS":       EntityKindStatus,
	"INTERACTABLE": EntityKindInteractable,
}

// String is used by logs and debug views.
func (e EntityKind) String() string {
	if val, ok := entityKindToString[e]; ok {
		return val
	}
	return "UNKNOWN"
}

// ParseEntityKind is case-insensitive.
func ParseEntityKind(s string) EntityKind {
	if val, ok := entityKindStringToType[strings.ToUpper(s)]; ok {
		return val
	}
	return EntityKindUnknown
}
