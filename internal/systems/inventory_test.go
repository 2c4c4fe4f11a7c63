package systems

import (
	"errors"
	"testing"

	"babayaga/internal/core/types"
	"babayaga/internal/core/types/enums"
	"babayaga/internal/domain"
	"babayaga/pkg/catalog"
)

func TestEquipItem_SwapsMainhand(t *testing.T) {
	h := newHarness(t)
	hero := h.hero(t, domain.V(64, 64))
	sword := h.carried(t, hero, catalog.IronSword.ID)
	staff := h.carried(t, hero, catalog.FireStaff.ID)

	if sword.Visibility == nil || !sword.Visibility.Visible {
		t.Fatal("equipped sword should be visible after the spawn commit")
	}

	if err := EquipItem(h.c, hero.ID, staff.ID, enums.SlotMainhand); err != nil {
		t.Fatalf("EquipItem() error = %v", err)
	}
	h.settle(t)

	if id, _ := hero.Inventory.InSlot(enums.SlotMainhand); id != staff.ID {
		t.Fatalf("mainhand = %s, want the staff", id)
	}
	if got := h.count(domain.EventUnequip, hero.ID); got != 1 {
		t.Errorf("Unequip events = %d, want 1 for the displaced sword", got)
	}
	if got := h.count(domain.EventEquip, hero.ID); got != 1 {
		t.Errorf("Equip events = %d, want 1", got)
	}
	if sword.Equipped != nil || sword.Visibility.Visible {
		t.Error("displaced sword still equipped or visible")
	}
	if staff.Equipped == nil || !staff.Visibility.Visible {
		t.Fatal("staff not equipped")
	}
	if staff.Faction != enums.FactionPlayer {
		t.Errorf("staff faction = %v, want the holder's", staff.Faction)
	}
	if len(hero.Inventory.Items) != 4 {
		t.Errorf("inventory length = %d, want 4", len(hero.Inventory.Items))
	}
}

func TestEquipItem_Rejects(t *testing.T) {
	h := newHarness(t)
	hero := h.hero(t, domain.V(64, 64))
	other := h.hero(t, domain.V(128, 64))
	shield := h.carried(t, hero, catalog.RoundShield.ID)
	potion := h.carried(t, hero, catalog.HealthPotion.ID)
	foreign := h.carried(t, other, catalog.FireStaff.ID)

	tests := []struct {
		name string
		item types.EntityID
		slot enums.Slot
		want error
	}{
		{"wrong slot", shield.ID, enums.SlotMainhand, domain.ErrNotEquippable},
		{"not equippable", potion.ID, enums.SlotMainhand, domain.ErrNotEquippable},
		{"owned by someone else", foreign.ID, enums.SlotMainhand, domain.ErrItemOwned},
		{"missing", types.PackEntityID(uint8(enums.EntityKindItem), 7, 500), enums.SlotMainhand, domain.ErrNoSuchEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := EquipItem(h.c, hero.ID, tt.item, tt.slot)
			if !errors.Is(err, tt.want) {
				t.Errorf("EquipItem() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestUnequipItem(t *testing.T) {
	h := newHarness(t)
	hero := h.hero(t, domain.V(64, 64))
	sword := h.carried(t, hero, catalog.IronSword.ID)
	shield := h.carried(t, hero, catalog.RoundShield.ID)

	// Mismatch is a no-op.
	if err := UnequipItem(h.c, hero.ID, shield.ID, enums.SlotMainhand); err != nil {
		t.Fatalf("UnequipItem() error = %v", err)
	}
	h.settle(t)
	if sword.Equipped == nil {
		t.Fatal("mismatched unequip removed the sword")
	}

	if err := UnequipSlot(h.c, hero.ID, enums.SlotOffhand); err != nil {
		t.Fatalf("UnequipSlot() error = %v", err)
	}
	h.settle(t)
	if _, ok := hero.Inventory.InSlot(enums.SlotOffhand); ok {
		t.Error("offhand still filled")
	}
	if shield.Equipped != nil {
		t.Error("shield still equipped")
	}
	if hero.Inventory.IndexOf(shield.ID) < 0 {
		t.Error("unequipping dropped the shield from the inventory")
	}
}

func TestRemoveItem_ShiftsSlots(t *testing.T) {
	h := newHarness(t)
	hero := h.hero(t, domain.V(64, 64))
	sword := h.carried(t, hero, catalog.IronSword.ID)
	shield := h.carried(t, hero, catalog.RoundShield.ID)

	if err := RemoveItem(h.c, hero.ID, sword.ID); err != nil {
		t.Fatalf("RemoveItem() error = %v", err)
	}
	h.settle(t)

	if _, ok := hero.Inventory.InSlot(enums.SlotMainhand); ok {
		t.Error("mainhand still points at the removed sword")
	}
	if id, _ := hero.Inventory.InSlot(enums.SlotOffhand); id != shield.ID {
		t.Errorf("offhand = %s, want the shield after the shift", id)
	}
	if got := h.count(domain.EventUnequip, hero.ID); got != 1 {
		t.Errorf("Unequip events = %d, want 1", got)
	}
	if !sword.Parent.IsNil() || !h.c.World.Alive(sword.ID) {
		t.Error("removed item should stay in the world, detached")
	}

	if err := RemoveItem(h.c, hero.ID, sword.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("second RemoveItem() error = %v, want ErrNotFound", err)
	}

	// A loose item can be picked up again.
	if _, err := AddItem(h.c, hero.ID, sword.ID); err != nil {
		t.Fatalf("AddItem() error = %v", err)
	}
	if sword.Parent != hero.ID {
		t.Error("picked up item not reparented")
	}
}

func TestCoins(t *testing.T) {
	h := newHarness(t)
	hero := h.hero(t, domain.V(64, 64))

	if err := AddCoins(h.c, hero.ID, 10); err != nil {
		t.Fatal(err)
	}
	if err := SpendCoins(h.c, hero.ID, 100); !errors.Is(err, domain.ErrNotEnoughCoins) {
		t.Errorf("SpendCoins(100) error = %v, want ErrNotEnoughCoins", err)
	}
	if err := SpendCoins(h.c, hero.ID, 25); err != nil {
		t.Fatal(err)
	}
	if hero.Inventory.Coins != 35 {
		t.Errorf("coins = %d, want 35", hero.Inventory.Coins)
	}
}

func TestUseItem(t *testing.T) {
	h := newHarness(t)
	hero := h.hero(t, domain.V(64, 64))
	potion := h.carried(t, hero, catalog.HealthPotion.ID)
	sword := h.carried(t, hero, catalog.IronSword.ID)
	hero.Health.Current = 50

	if err := UseItem(h.c, hero.ID, sword.ID); !errors.Is(err, domain.ErrPreconditionViolation) {
		t.Errorf("UseItem(sword) error = %v, want a precondition violation", err)
	}

	if err := UseItem(h.c, hero.ID, potion.ID); err != nil {
		t.Fatalf("UseItem(potion) error = %v", err)
	}
	h.settle(t)

	if hero.Health.Current != 80 {
		t.Errorf("hp = %v, want 80", hero.Health.Current)
	}
	if got := h.count(domain.EventHealed, hero.ID); got != 1 {
		t.Errorf("Healed events = %d, want 1", got)
	}
	if hero.Inventory.IndexOf(potion.ID) >= 0 {
		t.Error("potion still in the inventory")
	}
	if h.c.World.Alive(potion.ID) {
		t.Error("potion not despawned")
	}

	if err := UseItem(h.c, hero.ID, potion.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("UseItem(used potion) error = %v, want ErrNotFound", err)
	}
}

func TestHeal_CapsAtMax(t *testing.T) {
	h := newHarness(t)
	hero := h.hero(t, domain.V(64, 64))
	hero.Health.Current = 90

	if got := Heal(h.c, hero, 30); got != 10 {
		t.Errorf("Heal() = %v, want 10", got)
	}
	if got := Heal(h.c, hero, 30); got != 0 {
		t.Errorf("Heal() at full = %v, want 0", got)
	}
}

func TestRegenerateMana(t *testing.T) {
	h := newHarness(t)
	hero := h.hero(t, domain.V(64, 64))
	hero.Mana.Current = 0

	h.run(t, 30)
	if !near(hero.Mana.Current, 5) {
		t.Errorf("mana = %v after 0.5 s, want 5", hero.Mana.Current)
	}
	h.run(t, 60)
	if hero.Mana.Current != hero.Mana.Max {
		t.Errorf("mana = %v, want capped at %v", hero.Mana.Current, hero.Mana.Max)
	}
}
