package systems

import (
	"fmt"

	"babayaga/internal/core/types"
	"babayaga/internal/core/types/enums"
	"babayaga/internal/domain"

	"github.com/sirupsen/logrus"
)

func registerInventory(c *Context) {
	c.World.OnInsert(domain.CompEquipped, func(item *domain.Entity) error {
		return onEquipped(c, item)
	})
	c.World.OnRemove(domain.CompEquipped, func(item *domain.Entity) error {
		return onUnequipped(c, item)
	})
}

func actorWithInventory(c *Context, id types.EntityID) (*domain.Entity, error) {
	a, ok := c.World.Get(id)
	if !ok || !c.World.Alive(id) {
		return nil, fmt.Errorf("actor %s: %w", id, domain.ErrNoSuchEntity)
	}
	if a.Inventory == nil {
		return nil, domain.Precondition("actor %s has no inventory", id)
	}
	return a, nil
}

func itemEntity(c *Context, id types.EntityID) (*domain.Entity, error) {
	it, ok := c.World.Get(id)
	if !ok || !c.World.Alive(id) {
		return nil, fmt.Errorf("item %s: %w", id, domain.ErrNoSuchEntity)
	}
	if it.Item == nil {
		return nil, domain.Precondition("entity %s is not an item", id)
	}
	return it, nil
}

// AddItem appends item to the actor's inventory and returns its index.
// An item already carried keeps its place.
func AddItem(c *Context, actorID, itemID types.EntityID) (int, error) {
	a, err := actorWithInventory(c, actorID)
	if err != nil {
		return -1, err
	}
	it, err := itemEntity(c, itemID)
	if err != nil {
		return -1, err
	}
	if !it.Parent.IsNil() && it.Parent != actorID {
		return -1, fmt.Errorf("item %s held by %s: %w", itemID, it.Parent, domain.ErrItemOwned)
	}
	if i := a.Inventory.IndexOf(itemID); i >= 0 {
		return i, nil
	}

	idx, err := a.Inventory.Append(itemID)
	if err != nil {
		return -1, fmt.Errorf("add %s to %s: %w", itemID, actorID, err)
	}
	c.World.Reparent(itemID, actorID)
	if it.Visibility != nil {
		it.Visibility.Visible = false
	}
	return idx, nil
}

// RemoveItem takes item out of the inventory. Slots pointing at it are
// cleared and higher slot indices shift down. The item stays in the world.
func RemoveItem(c *Context, actorID, itemID types.EntityID) error {
	a, err := actorWithInventory(c, actorID)
	if err != nil {
		return err
	}
	cleared, err := a.Inventory.Extract(itemID)
	if err != nil {
		return err
	}
	for _, s := range cleared {
		c.World.Remove(itemID, domain.CompEquipped)
		c.Bus.Emit(actorID, domain.Unequip{Item: itemID, Slot: s})
	}
	c.World.Reparent(itemID, types.NilEntityID)
	return nil
}

// EquipItem puts item into slot, adding it to the inventory first if needed.
// A displaced item gets Unequip.
func EquipItem(c *Context, actorID, itemID types.EntityID, slot enums.Slot) error {
	log := c.log("inventory").WithFields(logrus.Fields{"actor": actorID, "item": itemID, "slot": slot})

	a, err := actorWithInventory(c, actorID)
	if err != nil {
		return err
	}
	it, err := itemEntity(c, itemID)
	if err != nil {
		return err
	}
	if !slot.Valid() || it.Equippable == nil || it.Equippable.Slot != slot {
		return fmt.Errorf("equip %s in %s: %w", itemID, slot, domain.ErrNotEquippable)
	}
	if a.IsDefeated() {
		log.Debug("defeated actors keep their equipment as is")
		return nil
	}

	idx, err := AddItem(c, actorID, itemID)
	if err != nil {
		return err
	}

	if prev, ok := a.Inventory.InSlot(slot); ok {
		if prev == itemID {
			return nil
		}
		unequip(c, a, prev, slot)
	}

	a.Inventory.Slots[slot] = idx
	c.World.Insert(itemID, &domain.Equipped{Holder: actorID, Slot: slot})
	c.Bus.Emit(actorID, domain.Equip{Item: itemID, Slot: slot})
	log.Debug("item equipped")
	return nil
}

// UnequipItem clears slot if it holds item. A mismatch is a no-op, and so is
// unequipping from a defeated actor.
func UnequipItem(c *Context, actorID, itemID types.EntityID, slot enums.Slot) error {
	a, err := actorWithInventory(c, actorID)
	if err != nil {
		return err
	}
	if a.IsDefeated() {
		return nil
	}
	held, ok := a.Inventory.InSlot(slot)
	if !ok || held != itemID {
		return nil
	}
	unequip(c, a, itemID, slot)
	return nil
}

// UnequipSlot clears whatever slot holds.
func UnequipSlot(c *Context, actorID types.EntityID, slot enums.Slot) error {
	a, err := actorWithInventory(c, actorID)
	if err != nil {
		return err
	}
	held, ok := a.Inventory.InSlot(slot)
	if !ok {
		return nil
	}
	return UnequipItem(c, a.ID, held, slot)
}

func unequip(c *Context, a *domain.Entity, itemID types.EntityID, slot enums.Slot) {
	a.Inventory.Slots[slot] = domain.NoSlot
	c.World.Remove(itemID, domain.CompEquipped)
	c.Bus.Emit(a.ID, domain.Unequip{Item: itemID, Slot: slot})
}

func AddCoins(c *Context, actorID types.EntityID, n int) error {
	a, err := actorWithInventory(c, actorID)
	if err != nil {
		return err
	}
	a.Inventory.AddCoins(n)
	return nil
}

func SpendCoins(c *Context, actorID types.EntityID, n int) error {
	a, err := actorWithInventory(c, actorID)
	if err != nil {
		return err
	}
	return a.Inventory.SpendCoins(n)
}

// onEquipped shows the item and takes on the holder's faction for hitboxes
// and shield hurtboxes.
func onEquipped(c *Context, item *domain.Entity) error {
	holder, ok := c.World.Get(item.Equipped.Holder)
	if !ok {
		return domain.Precondition("item %s equipped to missing holder %s", item.ID, item.Equipped.Holder)
	}
	if item.Visibility == nil {
		item.Visibility = &domain.Visibility{}
	}
	item.Visibility.Visible = true
	item.Faction = holder.Faction
	if item.Hitbox != nil {
		item.Hitbox.Faction = holder.Faction
		item.Hitbox.Filter = StrikeMask(holder.Faction)
	}
	if item.Hurtbox != nil {
		item.Hurtbox.Faction = holder.Faction
		item.Hurtbox.Owner = holder.ID
	}
	return nil
}

// onUnequipped hides the item and cancels any swing in progress.
func onUnequipped(c *Context, item *domain.Entity) error {
	if item.Visibility != nil {
		item.Visibility.Visible = false
	}
	if item.Attack != nil {
		if holder, ok := c.World.Get(item.Equipped.Holder); ok && holder.Action != nil {
			holder.Action.Fire(domain.TransitionFinish)
		}
	}
	item.Hitbox = nil
	item.Attack = nil
	return nil
}
