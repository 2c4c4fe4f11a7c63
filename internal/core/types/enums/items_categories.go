package enums

import (
	"fmt"
	"strings"
)

type ItemCategory uint8

const (
	ItemCategoryUnknown    ItemCategory = iota // 0
	ItemCategoryWeapon                         // 1
	ItemCategoryShield                         // 2
	ItemCategoryConsumable                     // 3
	ItemCategoryMisc                           // 4
)

var itemCategoryToString = map[ItemCategory]string{
	ItemCategoryWeapon:     "WEAPON",
	ItemCategoryShield:     "SHIELD",
	ItemCategoryConsumable: "CONSUMABLE",
	ItemCategoryMisc:       "MISC",
}

var itemCategoryStringToType = map[string]ItemCategory{
	"WEAPON":     ItemCategoryWeapon,
	"SHIELD":     ItemCategoryShield,
	"CONSUMABLE": ItemCategoryConsumable,
	"MISC":       ItemCategoryMisc,
}

func (c ItemCategory) String() string {
	if val, ok := itemCategoryToString[c]; ok {
		return val
	}
	return "UNKNOWN"
}

func ParseItemCategory(s string) ItemCategory {
	upper := strings.ToUpper(s)
	if val, ok := itemCategoryStringToType[upper]; ok {
		return val
	}
	return ItemCategoryUnknown
}

// Slot is an equipment slot on an actor.
type Slot uint8

const (
	SlotMainhand Slot = iota
	SlotOffhand

	SlotCount = 2
)

var slotToString = map[Slot]string{
	SlotMainhand: "MAINHAND",
	SlotOffhand:  "OFFHAND",
}

var slotStringToType = map[string]Slot{
	"MAINHAND": SlotMainhand,
	"OFFHAND":  SlotOffhand,
}

func (s Slot) String() string {
	if val, ok := slotToString[s]; ok {
		return val
	}
	return "UNKNOWN"
}

// Valid reports whether s names a real slot.
func (s Slot) Valid() bool {
	return s < SlotCount
}

func ParseSlot(s string) (Slot, error) {
	if val, ok := slotStringToType[strings.ToUpper(s)]; ok {
		return val, nil
	}
	return 0, fmt.Errorf("unknown slot %q", s)
}

func (s Slot) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Slot) UnmarshalText(b []byte) error {
	v, err := ParseSlot(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
