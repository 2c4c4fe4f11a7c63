package domain

import (
	"fmt"

	"babayaga/internal/core/types"
	"babayaga/internal/core/types/enums"
)

// NoSlot marks an empty equipment slot.
const NoSlot = -1

// Inventory is an ordered list of item handles. Slots hold indices into Items.
type Inventory struct {
	Items    []types.EntityID     `json:"items"`
	Capacity int                  `json:"capacity"`
	Slots    [enums.SlotCount]int `json:"slots"`
	Coins    int                  `json:"coins"`
}

func NewInventory(capacity int) *Inventory {
	inv := &Inventory{Capacity: capacity}
	for i := range inv.Slots {
		inv.Slots[i] = NoSlot
	}
	return inv
}

func (inv *Inventory) Full() bool {
	return len(inv.Items) >= inv.Capacity
}

// IndexOf returns the position of id, or -1.
func (inv *Inventory) IndexOf(id types.EntityID) int {
	for i, it := range inv.Items {
		if it == id {
			return i
		}
	}
	return -1
}

// Append adds id at the end and returns its index.
func (inv *Inventory) Append(id types.EntityID) (int, error) {
	if inv.Full() {
		return -1, ErrInventoryFull
	}
	inv.Items = append(inv.Items, id)
	return len(inv.Items) - 1, nil
}

// Extract removes id, shifting higher slot indices down. It returns the
// slots that pointed at the removed item; they are now empty.
func (inv *Inventory) Extract(id types.EntityID) ([]enums.Slot, error) {
	i := inv.IndexOf(id)
	if i < 0 {
		return nil, fmt.Errorf("item %s: %w", id, ErrNotFound)
	}
	inv.Items = append(inv.Items[:i], inv.Items[i+1:]...)

	var cleared []enums.Slot
	for s, idx := range inv.Slots {
		switch {
		case idx == i:
			inv.Slots[s] = NoSlot
			cleared = append(cleared, enums.Slot(s))
		case idx > i:
			inv.Slots[s] = idx - 1
		}
	}
	return cleared, nil
}

// InSlot returns the item held in s.
func (inv *Inventory) InSlot(s enums.Slot) (types.EntityID, bool) {
	if !s.Valid() {
		return types.NilEntityID, false
	}
	idx := inv.Slots[s]
	if idx == NoSlot || idx >= len(inv.Items) {
		return types.NilEntityID, false
	}
	return inv.Items[idx], true
}

// SlotOf returns the slot currently holding id.
func (inv *Inventory) SlotOf(id types.EntityID) (enums.Slot, bool) {
	for s, idx := range inv.Slots {
		if idx != NoSlot && idx < len(inv.Items) && inv.Items[idx] == id {
			return enums.Slot(s), true
		}
	}
	return 0, false
}

func (inv *Inventory) AddCoins(n int) {
	if n > 0 {
		inv.Coins += n
	}
}

func (inv *Inventory) SpendCoins(n int) error {
	if n < 0 || inv.Coins < n {
		return fmt.Errorf("spend %d of %d: %w", n, inv.Coins, ErrNotEnoughCoins)
	}
	inv.Coins -= n
	return nil
}

func (*Inventory) ComponentKind() ComponentKind { return CompInventory }
