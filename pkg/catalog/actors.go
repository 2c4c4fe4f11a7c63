package catalog

import (
	"fmt"

	"babayaga/internal/core/types"
	"babayaga/internal/core/types/enums"
	"babayaga/internal/domain"
)

// Stats are the numeric attributes of an actor. HP and Mana are current
// values; nil means full.
type Stats struct {
	MaxHP     float32  `json:"maxHp" msgpack:"max_hp"`
	HP        *float32 `json:"hp,omitempty" msgpack:"hp"`
	MaxMana   float32  `json:"maxMana,omitempty" msgpack:"max_mana"`
	Mana      *float32 `json:"mana,omitempty" msgpack:"mana"`
	ManaRegen float32  `json:"manaRegen,omitempty" msgpack:"mana_regen"`
	Speed     float32  `json:"speed" msgpack:"speed"`
	IFrames   float32  `json:"iframes,omitempty" msgpack:"iframes"`
}

// BrainSpec turns an actor into an AI.
type BrainSpec struct {
	AggroRadius    float32 `json:"aggroRadius" msgpack:"aggro_radius"`
	AttackRange    float32 `json:"attackRange" msgpack:"attack_range"`
	WanderInterval float32 `json:"wanderInterval" msgpack:"wander_interval"`
}

// LoadoutEntry is one carried item, optionally equipped to Slot.
type LoadoutEntry struct {
	Item string      `json:"item" msgpack:"item"`
	Slot *enums.Slot `json:"slot,omitempty" msgpack:"slot"`
}

func Carry(item string) LoadoutEntry { return LoadoutEntry{Item: item} }

func Wield(item string, slot enums.Slot) LoadoutEntry {
	return LoadoutEntry{Item: item, Slot: &slot}
}

// ActorSpec is everything SpawnActor needs.
type ActorSpec struct {
	Template   string         `json:"template,omitempty" msgpack:"template"`
	Name       string         `json:"name" msgpack:"name"`
	Faction    enums.Faction  `json:"faction" msgpack:"faction"`
	Stats      Stats          `json:"stats" msgpack:"stats"`
	Pos        domain.Vec2    `json:"pos" msgpack:"pos"`
	Inventory  []LoadoutEntry `json:"inventory,omitempty" msgpack:"inventory"`
	Coins      int            `json:"coins,omitempty" msgpack:"coins"`
	Brain      *BrainSpec     `json:"brain,omitempty" msgpack:"brain"`
	Controller string         `json:"controller,omitempty" msgpack:"controller"`
}

// Validate rejects specs that would break the health or mana bounds.
func (s ActorSpec) Validate() error {
	st := s.Stats
	if st.MaxHP <= 0 {
		return domain.Precondition("actor %q: max hp %v must be positive", s.Name, st.MaxHP)
	}
	if st.HP != nil && (*st.HP < 0 || *st.HP > st.MaxHP) {
		return domain.Precondition("actor %q: hp %v outside [0, %v]", s.Name, *st.HP, st.MaxHP)
	}
	if st.MaxMana < 0 || st.ManaRegen < 0 || st.Speed < 0 || st.IFrames < 0 {
		return domain.Precondition("actor %q: negative stat", s.Name)
	}
	if st.Mana != nil && (*st.Mana < 0 || *st.Mana > st.MaxMana) {
		return domain.Precondition("actor %q: mana %v outside [0, %v]", s.Name, *st.Mana, st.MaxMana)
	}
	if len(s.Inventory) > domain.DefaultInventoryCapacity {
		return fmt.Errorf("actor %q carries %d items: %w", s.Name, len(s.Inventory), domain.ErrInventoryFull)
	}
	return nil
}

// BuildActor stages an actor and its loadout. Equipped items get their
// Equipped component directly, so the equip hook runs at Commit.
func BuildActor(w *domain.World, spec ActorSpec) (*domain.Entity, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	a := w.Spawn(enums.EntityKindActor, types.NilEntityID)
	a.Name = spec.Name
	a.Faction = spec.Faction
	a.Pos = spec.Pos
	a.ControllerID = spec.Controller

	st := spec.Stats
	a.Health = domain.NewHealth(st.MaxHP)
	if st.HP != nil {
		a.Health.Current = *st.HP
	}
	if st.MaxMana > 0 {
		a.Mana = domain.NewMana(st.MaxMana, st.ManaRegen)
		if st.Mana != nil {
			a.Mana.Current = *st.Mana
		}
	}
	a.Motion = domain.NewMotion(st.Speed)
	a.Action = domain.NewActionState()
	a.Inventory = domain.NewInventory(domain.DefaultInventoryCapacity)
	a.Inventory.Coins = spec.Coins
	if st.IFrames > 0 {
		a.IFrames = &domain.IFrameConfig{Duration: st.IFrames, FlashPeriod: domain.DefaultFlashPeriod}
	}
	a.Hurtbox = &domain.Hurtbox{
		Half:    domain.V(domain.ActorHalfExtent, domain.ActorHalfExtent),
		Faction: spec.Faction,
	}
	if b := spec.Brain; b != nil {
		a.Brain = domain.NewBrain(b.AggroRadius, b.AttackRange, b.WanderInterval)
	}

	for _, entry := range spec.Inventory {
		if err := stow(w, a, entry); err != nil {
			w.Despawn(a.ID)
			return nil, fmt.Errorf("build actor %q: %w", spec.Name, err)
		}
	}
	return a, nil
}

func stow(w *domain.World, a *domain.Entity, entry LoadoutEntry) error {
	it, err := SpawnItem(w, entry.Item, a.ID)
	if err != nil {
		return err
	}
	idx, err := a.Inventory.Append(it.ID)
	if err != nil {
		return err
	}
	if entry.Slot == nil {
		return nil
	}

	slot := *entry.Slot
	if it.Equippable == nil || it.Equippable.Slot != slot {
		return fmt.Errorf("%s in %s: %w", entry.Item, slot, domain.ErrNotEquippable)
	}
	if _, taken := a.Inventory.InSlot(slot); taken {
		return fmt.Errorf("%s: slot %s already filled: %w", entry.Item, slot, domain.ErrNotEquippable)
	}
	a.Inventory.Slots[slot] = idx
	it.Equipped = &domain.Equipped{Holder: a.ID, Slot: slot}
	return nil
}

// ActorTemplate is a named ActorSpec without a position.
type ActorTemplate struct {
	ID      string
	Name    string
	Faction enums.Faction
	Glyph   types.Glyph
	Stats   Stats
	Brain   *BrainSpec
	Loadout []LoadoutEntry
	Coins   int
}

// Spec places the template at pos.
func (t ActorTemplate) Spec(pos domain.Vec2) ActorSpec {
	var brain *BrainSpec
	if t.Brain != nil {
		b := *t.Brain
		brain = &b
	}
	return ActorSpec{
		Template:  t.ID,
		Name:      t.Name,
		Faction:   t.Faction,
		Stats:     t.Stats,
		Pos:       pos,
		Inventory: append([]LoadoutEntry(nil), t.Loadout...),
		Coins:     t.Coins,
		Brain:     brain,
	}
}

// --- PLAYERS ---

var Hero = ActorTemplate{
	ID:      "hero",
	Name:    "Hero",
	Faction: enums.FactionPlayer,
	Glyph:   types.MakeGlyph(0x22D3EE, '@'),
	Stats: Stats{
		MaxHP:     100,
		MaxMana:   10,
		ManaRegen: 10,
		Speed:     160,
		IFrames:   1,
	},
	Loadout: []LoadoutEntry{
		Wield(IronSword.ID, enums.SlotMainhand),
		Wield(RoundShield.ID, enums.SlotOffhand),
		Carry(FireStaff.ID),
		Carry(HealthPotion.ID),
	},
	Coins: 50,
}

// --- ENEMIES ---

var Goblin = ActorTemplate{
	ID:      "goblin",
	Name:    "Goblin",
	Faction: enums.FactionEnemy,
	Glyph:   types.MakeGlyph(0x22C55E, 'g'),
	Stats:   Stats{MaxHP: 20, Speed: 110},
	Brain:   &BrainSpec{AggroRadius: 200, AttackRange: 28, WanderInterval: 1.5},
	Loadout: []LoadoutEntry{Wield(GoblinClub.ID, enums.SlotMainhand)},
	Coins:   5,
}

var GoblinShaman = ActorTemplate{
	ID:      "goblin_shaman",
	Name:    "Goblin Shaman",
	Faction: enums.FactionEnemy,
	Glyph:   types.MakeGlyph(0xA855F7, 'G'),
	Stats:   Stats{MaxHP: 15, MaxMana: 24, ManaRegen: 4, Speed: 90},
	Brain:   &BrainSpec{AggroRadius: 260, AttackRange: 160, WanderInterval: 2},
	Loadout: []LoadoutEntry{Wield(FireStaff.ID, enums.SlotMainhand)},
	Coins:   10,
}

var Troll = ActorTemplate{
	ID:      "troll",
	Name:    "Stone Troll",
	Faction: enums.FactionEnemy,
	Glyph:   types.MakeGlyph(0x78716C, 'T'),
	Stats:   Stats{MaxHP: 60, Speed: 70, IFrames: 0.5},
	Brain:   &BrainSpec{AggroRadius: 180, AttackRange: 36, WanderInterval: 3},
	Loadout: []LoadoutEntry{Wield(BattleAxe.ID, enums.SlotMainhand)},
	Coins:   20,
}

// --- NPC ---

var Merchant = ActorTemplate{
	ID:      "merchant",
	Name:    "Merchant",
	Faction: enums.FactionNPC,
	Glyph:   types.MakeGlyph(0xFCD34D, 'M'),
	Stats:   Stats{MaxHP: 40, Speed: 60},
	Loadout: []LoadoutEntry{Carry(HealthPotion.ID), Carry(ManaPotion.ID)},
	Coins:   100,
}

// EnemyTemplates are drawn for EnemySpawn markers.
var EnemyTemplates = map[string]ActorTemplate{
	Goblin.ID:       Goblin,
	GoblinShaman.ID: GoblinShaman,
	Troll.ID:        Troll,
}

// NPCTemplates are drawn for NPCSpawn markers.
var NPCTemplates = map[string]ActorTemplate{
	Merchant.ID: Merchant,
}

// Actor looks up any actor template by id.
func Actor(id string) (ActorTemplate, error) {
	if id == Hero.ID {
		return Hero, nil
	}
	if t, ok := EnemyTemplates[id]; ok {
		return t, nil
	}
	if t, ok := NPCTemplates[id]; ok {
		return t, nil
	}
	return ActorTemplate{}, fmt.Errorf("actor template %q: %w", id, domain.ErrNotFound)
}

// EnemyOrder is the draw order for enemy spawns; map order is random.
var EnemyOrder = []string{Goblin.ID, Goblin.ID, GoblinShaman.ID, Troll.ID}
