package systems

import (
	"fmt"

	"babayaga/internal/core/types"
	"babayaga/internal/domain"

	"github.com/sirupsen/logrus"
)

// UseItem drinks a consumable from the actor's inventory. The item is
// removed and despawned.
func UseItem(c *Context, actorID, itemID types.EntityID) error {
	a, err := actorWithInventory(c, actorID)
	if err != nil {
		return err
	}
	if a.IsDefeated() {
		return nil
	}
	if a.Inventory.IndexOf(itemID) < 0 {
		return fmt.Errorf("use %s: %w", itemID, domain.ErrNotFound)
	}
	it, err := itemEntity(c, itemID)
	if err != nil {
		return err
	}
	if it.Consumable == nil {
		return domain.Precondition("item %s is not consumable", itemID)
	}

	healed := Heal(c, a, it.Consumable.Heal)
	var restored float32
	if a.Mana != nil {
		restored = a.Mana.Restore(it.Consumable.Mana)
	}

	if err := RemoveItem(c, actorID, itemID); err != nil {
		return err
	}
	c.World.Despawn(itemID)

	c.log("inventory").WithFields(logrus.Fields{
		"actor":  actorID,
		"item":   itemID,
		"healed": healed,
		"mana":   restored,
	}).Debug("consumable used")
	return nil
}
