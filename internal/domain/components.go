package domain

// ComponentKind names a component slot on Entity. Deferred Insert/Remove
// commands and lifecycle hooks are keyed by it.
type ComponentKind uint8

const (
	CompHealth ComponentKind = iota
	CompMana
	CompMotion
	CompAction
	CompInventory
	CompIFrames
	CompInvulnerable
	CompBrain
	CompItem
	CompEquippable
	CompManaCost
	CompMelee
	CompProjectileSpec
	CompEffects
	CompConsumable
	CompVisibility
	CompEquipped
	CompReflector
	CompHurtbox
	CompHitbox
	CompActiveAttack
	CompVelocity
	CompLifetime
	CompSourceFaction
	CompStatus
	CompInteraction
	CompLoot
	CompPortal

	componentKindCount
)

var componentKindToString = [componentKindCount]string{
	CompHealth:         "Health",
	CompMana:           "Mana",
	CompMotion:         "Motion",
	CompAction:         "ActionState",
	CompInventory:      "Inventory",
	CompIFrames:        "IFrameConfig",
	CompInvulnerable:   "Invulnerable",
	CompBrain:          "Brain",
	CompItem:           "ItemInfo",
	CompEquippable:     "Equippable",
	CompManaCost:       "ManaCost",
	CompMelee:          "MeleeSpec",
	CompProjectileSpec: "ProjectileSpec",
	CompEffects:        "EffectsList",
	CompConsumable:     "Consumable",
	CompVisibility:     "Visibility",
	CompEquipped:       "Equipped",
	CompReflector:      "Reflector",
	CompHurtbox:        "Hurtbox",
	CompHitbox:         "Hitbox",
	CompActiveAttack:   "ActiveMeleeAttack",
	CompVelocity:       "Velocity",
	CompLifetime:       "Lifetime",
	CompSourceFaction:  "SourceFaction",
	CompStatus:         "Status",
	CompInteraction:    "InteractionZone",
	CompLoot:           "Loot",
	CompPortal:         "Portal",
}

func (k ComponentKind) String() string {
	if k < componentKindCount {
		return componentKindToString[k]
	}
	return "Unknown"
}

// Component is anything that can be attached to an Entity.
type Component interface {
	ComponentKind() ComponentKind
}

// --- world objects ---

// Visibility is the render flag on items; equip shows, unequip hides.
type Visibility struct {
	Visible bool `json:"visible"`
}

// ZoneShape is the metric used by an InteractionZone.
type ZoneShape uint8

const (
	ZoneCircle ZoneShape = iota
	ZoneSquare
)

// InteractionZone lets actors standing within Radius interact with the owner.
type InteractionZone struct {
	Shape  ZoneShape `json:"shape"`
	Radius float32   `json:"radius"`
}

// Contains reports whether p is inside the zone centred at c, and how far it is.
func (z *InteractionZone) Contains(c, p Vec2) (float32, bool) {
	d := p.Sub(c)
	dist := d.Len()
	if z.Shape == ZoneSquare {
		ax, ay := d.X, d.Y
		if ax < 0 {
			ax = -ax
		}
		if ay < 0 {
			ay = -ay
		}
		return dist, ax <= z.Radius && ay <= z.Radius
	}
	return dist, dist <= z.Radius
}

// Loot is a chest payout, granted once.
type Loot struct {
	Coins   int  `json:"coins"`
	Claimed bool `json:"claimed"`
}

// Portal marks a level exit. Index is the marker ordinal within the zone.
type Portal struct {
	Index int `json:"index"`
}

func (*Visibility) ComponentKind() ComponentKind      { return CompVisibility }
func (*InteractionZone) ComponentKind() ComponentKind { return CompInteraction }
func (*Loot) ComponentKind() ComponentKind            { return CompLoot }
func (*Portal) ComponentKind() ComponentKind          { return CompPortal }
