package catalog

import (
	"fmt"
	"math"
	"sort"

	"babayaga/internal/core/types"
	"babayaga/internal/core/types/enums"
	"babayaga/internal/domain"
)

// ItemTemplate describes an item. Build turns it into components; nothing is
// implied by category alone.
type ItemTemplate struct {
	ID       string
	Name     string
	Category enums.ItemCategory
	Glyph    types.Glyph

	Equippable bool
	Slot       enums.Slot
	UseRate    float32
	ManaCost   float32

	Melee      *domain.MeleeSpec
	Projectile *domain.ProjectileSpec
	Effects    []domain.StatusTemplate
	Consumable *domain.Consumable

	// Shields
	Reflector *domain.Reflector
	GuardHalf domain.Vec2
}

// Build fills e with the item components. e is normally a freshly spawned
// (staged) entity so hooks fire at Commit.
func (t ItemTemplate) Build(e *domain.Entity) {
	e.Name = t.Name
	e.Item = &domain.ItemInfo{TemplateID: t.ID, Name: t.Name, Category: t.Category}
	e.Visibility = &domain.Visibility{}

	if t.Equippable {
		e.Equippable = domain.NewEquippable(t.Slot, t.UseRate)
	}
	if t.ManaCost > 0 {
		e.ManaCost = &domain.ManaCost{Cost: t.ManaCost}
	}
	if t.Melee != nil {
		spec := *t.Melee
		e.Melee = &spec
	}
	if t.Projectile != nil {
		spec := *t.Projectile
		e.Projectile = &spec
	}
	if len(t.Effects) > 0 {
		e.Effects = (&domain.EffectsList{Effects: t.Effects}).Clone()
	}
	if t.Consumable != nil {
		c := *t.Consumable
		e.Consumable = &c
	}
	if t.Reflector != nil {
		r := *t.Reflector
		e.Reflector = &r
		e.Hurtbox = &domain.Hurtbox{Half: t.GuardHalf}
	}
}

// --- WEAPONS ---

var IronSword = ItemTemplate{
	ID:         "iron_sword",
	Name:       "Iron Sword",
	Category:   enums.ItemCategoryWeapon,
	Glyph:      types.MakeGlyph(0xC0C0C0, ')'),
	Equippable: true,
	Slot:       enums.SlotMainhand,
	UseRate:    0.4,
	Melee: &domain.MeleeSpec{
		Damage:       domain.DamageRange{Min: 4, Max: 8},
		HitboxHalf:   domain.V(8, 8),
		Attack:       enums.AttackStab,
		Reach:        24,
		AttackTime:   0.2,
		HoldDistance: 18,
		Knockback:    120,
	},
}

var BattleAxe = ItemTemplate{
	ID:         "battle_axe",
	Name:       "Battle Axe",
	Category:   enums.ItemCategoryWeapon,
	Glyph:      types.MakeGlyph(0x9CA3AF, 'P'),
	Equippable: true,
	Slot:       enums.SlotMainhand,
	UseRate:    0.5,
	Melee: &domain.MeleeSpec{
		Damage:       domain.DamageRange{Min: 2, Max: 12},
		HitboxHalf:   domain.V(10, 10),
		Attack:       enums.AttackSlash,
		Arc:          math.Pi,
		AttackTime:   0.3,
		HoldDistance: 28,
	},
}

var EmberBlade = ItemTemplate{
	ID:         "ember_blade",
	Name:       "Ember Blade",
	Category:   enums.ItemCategoryWeapon,
	Glyph:      types.MakeGlyph(0xF97316, ')'),
	Equippable: true,
	Slot:       enums.SlotMainhand,
	UseRate:    0.45,
	Melee: &domain.MeleeSpec{
		Damage:       domain.Fixed(10),
		HitboxHalf:   domain.V(8, 8),
		Attack:       enums.AttackSlash,
		Arc:          math.Pi / 2,
		AttackTime:   0.25,
		HoldDistance: 20,
	},
	Effects: []domain.StatusTemplate{domain.Burning(2, 0.5, 2)},
}

var GoblinClub = ItemTemplate{
	ID:         "goblin_club",
	Name:       "Goblin Club",
	Category:   enums.ItemCategoryWeapon,
	Glyph:      types.MakeGlyph(0x78350F, ')'),
	Equippable: true,
	Slot:       enums.SlotMainhand,
	UseRate:    0.8,
	Melee: &domain.MeleeSpec{
		Damage:       domain.DamageRange{Min: 3, Max: 5},
		HitboxHalf:   domain.V(8, 8),
		Attack:       enums.AttackStab,
		Reach:        12,
		AttackTime:   0.25,
		HoldDistance: 14,
		Knockback:    60,
	},
}

var FireStaff = ItemTemplate{
	ID:         "fire_staff",
	Name:       "Fire Staff",
	Category:   enums.ItemCategoryWeapon,
	Glyph:      types.MakeGlyph(0xDC2626, '/'),
	Equippable: true,
	Slot:       enums.SlotMainhand,
	UseRate:    0.3,
	ManaCost:   6,
	Projectile: &domain.ProjectileSpec{
		Damage:      domain.Fixed(10),
		Speed:       320,
		SpawnOffset: 16,
		Lifetime:    1.5,
		HitboxHalf:  domain.V(6, 6),
	},
	Effects: []domain.StatusTemplate{domain.Burning(2, 0.5, 2)},
}

var FrostWand = ItemTemplate{
	ID:         "frost_wand",
	Name:       "Frost Wand",
	Category:   enums.ItemCategoryWeapon,
	Glyph:      types.MakeGlyph(0x22D3EE, '/'),
	Equippable: true,
	Slot:       enums.SlotMainhand,
	UseRate:    0.8,
	ManaCost:   8,
	Projectile: &domain.ProjectileSpec{
		Damage:      domain.DamageRange{Min: 3, Max: 6},
		Speed:       260,
		SpawnOffset: 16,
		Lifetime:    1.2,
		HitboxHalf:  domain.V(6, 6),
	},
	Effects: []domain.StatusTemplate{domain.Frozen(2)},
}

// --- SHIELDS ---

var RoundShield = ItemTemplate{
	ID:         "round_shield",
	Name:       "Round Shield",
	Category:   enums.ItemCategoryShield,
	Glyph:      types.MakeGlyph(0x92400E, ']'),
	Equippable: true,
	Slot:       enums.SlotOffhand,
	Reflector:  &domain.Reflector{Hold: 14},
	GuardHalf:  domain.V(10, 14),
}

// --- POTIONS ---

var HealthPotion = ItemTemplate{
	ID:         "health_potion",
	Name:       "Health Potion",
	Category:   enums.ItemCategoryConsumable,
	Glyph:      types.MakeGlyph(0xDC2626, '!'),
	Consumable: &domain.Consumable{Heal: 30},
}

var ManaPotion = ItemTemplate{
	ID:         "mana_potion",
	Name:       "Mana Potion",
	Category:   enums.ItemCategoryConsumable,
	Glyph:      types.MakeGlyph(0x2563EB, '!'),
	Consumable: &domain.Consumable{Mana: 20},
}

// ItemTemplates holds every item by template id.
var ItemTemplates = map[string]ItemTemplate{
	IronSword.ID:    IronSword,
	BattleAxe.ID:    BattleAxe,
	EmberBlade.ID:   EmberBlade,
	GoblinClub.ID:   GoblinClub,
	FireStaff.ID:    FireStaff,
	FrostWand.ID:    FrostWand,
	RoundShield.ID:  RoundShield,
	HealthPotion.ID: HealthPotion,
	ManaPotion.ID:   ManaPotion,
}

// Item looks up a template.
func Item(id string) (ItemTemplate, error) {
	t, ok := ItemTemplates[id]
	if !ok {
		return ItemTemplate{}, fmt.Errorf("item template %q: %w", id, domain.ErrNotFound)
	}
	return t, nil
}

// ItemIDs lists template ids in sorted order.
func ItemIDs() []string {
	ids := make([]string, 0, len(ItemTemplates))
	for id := range ItemTemplates {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// SpawnItem stages an item from template id under parent.
func SpawnItem(w *domain.World, id string, parent types.EntityID) (*domain.Entity, error) {
	t, err := Item(id)
	if err != nil {
		return nil, err
	}
	e := w.Spawn(enums.EntityKindItem, parent)
	t.Build(e)
	return e, nil
}
