package domain

import (
	"babayaga/internal/core/types"
	"babayaga/internal/core/types/enums"
)

// Entity is a bag of components. A nil component means the entity does not
// have it. Components that carry lifecycle hooks must be attached through
// World.Insert/World.Remove so the hooks fire at Commit.
type Entity struct {
	ID     types.EntityID   `json:"id"`
	Kind   enums.EntityKind `json:"kind"`
	Name   string           `json:"name"`
	Parent types.EntityID   `json:"parent,omitempty"`

	// ControllerID is the session driving this actor. Empty means AI or nobody.
	ControllerID string `json:"controllerId,omitempty"`

	Pos      Vec2          `json:"pos"`
	Rotation float32       `json:"rotation"`
	Faction  enums.Faction `json:"faction"`

	// Actors
	Health       *Health       `json:"health,omitempty"`
	Mana         *Mana         `json:"mana,omitempty"`
	Motion       *Motion       `json:"motion,omitempty"`
	Action       *ActionState  `json:"-"`
	Inventory    *Inventory    `json:"inventory,omitempty"`
	IFrames      *IFrameConfig `json:"iframes,omitempty"`
	Invulnerable *Invulnerable `json:"invulnerable,omitempty"`
	Brain        *Brain        `json:"brain,omitempty"`

	// Items
	Item       *ItemInfo       `json:"item,omitempty"`
	Equippable *Equippable     `json:"equippable,omitempty"`
	ManaCost   *ManaCost       `json:"manaCost,omitempty"`
	Melee      *MeleeSpec      `json:"melee,omitempty"`
	Projectile *ProjectileSpec `json:"projectile,omitempty"`
	Effects    *EffectsList    `json:"effects,omitempty"`
	Consumable *Consumable     `json:"consumable,omitempty"`
	Visibility *Visibility     `json:"visibility,omitempty"`
	Equipped   *Equipped       `json:"equipped,omitempty"`
	Reflector  *Reflector      `json:"reflector,omitempty"`

	// Collision
	Hurtbox *Hurtbox           `json:"hurtbox,omitempty"`
	Hitbox  *Hitbox            `json:"hitbox,omitempty"`
	Attack  *ActiveMeleeAttack `json:"attack,omitempty"`

	// Projectiles in flight
	Velocity *Velocity      `json:"velocity,omitempty"`
	Lifetime *Lifetime      `json:"lifetime,omitempty"`
	Source   *SourceFaction `json:"source,omitempty"`

	// Statuses
	Status *Status `json:"status,omitempty"`

	// Zone objects
	Interaction *InteractionZone `json:"interaction,omitempty"`
	Loot        *Loot            `json:"loot,omitempty"`
	Portal      *Portal          `json:"portal,omitempty"`
}

// Has reports whether the component is attached.
func (e *Entity) Has(k ComponentKind) bool {
	return e.Component(k) != nil
}

// Component returns the attached component of kind k, or nil.
func (e *Entity) Component(k ComponentKind) Component {
	// Typed nil pointers must not leak out as non-nil interfaces.
	switch k {
	case CompHealth:
		if e.Health != nil {
			return e.Health
		}
	case CompMana:
		if e.Mana != nil {
			return e.Mana
		}
	case CompMotion:
		if e.Motion != nil {
			return e.Motion
		}
	case CompAction:
		if e.Action != nil {
			return e.Action
		}
	case CompInventory:
		if e.Inventory != nil {
			return e.Inventory
		}
	case CompIFrames:
		if e.IFrames != nil {
			return e.IFrames
		}
	case CompInvulnerable:
		if e.Invulnerable != nil {
			return e.Invulnerable
		}
	case CompBrain:
		if e.Brain != nil {
			return e.Brain
		}
	case CompItem:
		if e.Item != nil {
			return e.Item
		}
	case CompEquippable:
		if e.Equippable != nil {
			return e.Equippable
		}
	case CompManaCost:
		if e.ManaCost != nil {
			return e.ManaCost
		}
	case CompMelee:
		if e.Melee != nil {
			return e.Melee
		}
	case CompProjectileSpec:
		if e.Projectile != nil {
			return e.Projectile
		}
	case CompEffects:
		if e.Effects != nil {
			return e.Effects
		}
	case CompConsumable:
		if e.Consumable != nil {
			return e.Consumable
		}
	case CompVisibility:
		if e.Visibility != nil {
			return e.Visibility
		}
	case CompEquipped:
		if e.Equipped != nil {
			return e.Equipped
		}
	case CompReflector:
		if e.Reflector != nil {
			return e.Reflector
		}
	case CompHurtbox:
		if e.Hurtbox != nil {
			return e.Hurtbox
		}
	case CompHitbox:
		if e.Hitbox != nil {
			return e.Hitbox
		}
	case CompActiveAttack:
		if e.Attack != nil {
			return e.Attack
		}
	case CompVelocity:
		if e.Velocity != nil {
			return e.Velocity
		}
	case CompLifetime:
		if e.Lifetime != nil {
			return e.Lifetime
		}
	case CompSourceFaction:
		if e.Source != nil {
			return e.Source
		}
	case CompStatus:
		if e.Status != nil {
			return e.Status
		}
	case CompInteraction:
		if e.Interaction != nil {
			return e.Interaction
		}
	case CompLoot:
		if e.Loot != nil {
			return e.Loot
		}
	case CompPortal:
		if e.Portal != nil {
			return e.Portal
		}
	}
	return nil
}

// attach sets the slot matching c's concrete type.
func (e *Entity) attach(c Component) {
	switch v := c.(type) {
	case *Health:
		e.Health = v
	case *Mana:
		e.Mana = v
	case *Motion:
		e.Motion = v
	case *ActionState:
		e.Action = v
	case *Inventory:
		e.Inventory = v
	case *IFrameConfig:
		e.IFrames = v
	case *Invulnerable:
		e.Invulnerable = v
	case *Brain:
		e.Brain = v
	case *ItemInfo:
		e.Item = v
	case *Equippable:
		e.Equippable = v
	case *ManaCost:
		e.ManaCost = v
	case *MeleeSpec:
		e.Melee = v
	case *ProjectileSpec:
		e.Projectile = v
	case *EffectsList:
		e.Effects = v
	case *Consumable:
		e.Consumable = v
	case *Visibility:
		e.Visibility = v
	case *Equipped:
		e.Equipped = v
	case *Reflector:
		e.Reflector = v
	case *Hurtbox:
		e.Hurtbox = v
	case *Hitbox:
		e.Hitbox = v
	case *ActiveMeleeAttack:
		e.Attack = v
	case *Velocity:
		e.Velocity = v
	case *Lifetime:
		e.Lifetime = v
	case *SourceFaction:
		e.Source = v
	case *Status:
		e.Status = v
	case *InteractionZone:
		e.Interaction = v
	case *Loot:
		e.Loot = v
	case *Portal:
		e.Portal = v
	}
}

// detach clears the slot for k.
func (e *Entity) detach(k ComponentKind) {
	switch k {
	case CompHealth:
		e.Health = nil
	case CompMana:
		e.Mana = nil
	case CompMotion:
		e.Motion = nil
	case CompAction:
		e.Action = nil
	case CompInventory:
		e.Inventory = nil
	case CompIFrames:
		e.IFrames = nil
	case CompInvulnerable:
		e.Invulnerable = nil
	case CompBrain:
		e.Brain = nil
	case CompItem:
		e.Item = nil
	case CompEquippable:
		e.Equippable = nil
	case CompManaCost:
		e.ManaCost = nil
	case CompMelee:
		e.Melee = nil
	case CompProjectileSpec:
		e.Projectile = nil
	case CompEffects:
		e.Effects = nil
	case CompConsumable:
		e.Consumable = nil
	case CompVisibility:
		e.Visibility = nil
	case CompEquipped:
		e.Equipped = nil
	case CompReflector:
		e.Reflector = nil
	case CompHurtbox:
		e.Hurtbox = nil
	case CompHitbox:
		e.Hitbox = nil
	case CompActiveAttack:
		e.Attack = nil
	case CompVelocity:
		e.Velocity = nil
	case CompLifetime:
		e.Lifetime = nil
	case CompSourceFaction:
		e.Source = nil
	case CompStatus:
		e.Status = nil
	case CompInteraction:
		e.Interaction = nil
	case CompLoot:
		e.Loot = nil
	case CompPortal:
		e.Portal = nil
	}
}

// IsActor is true for anything that can take damage.
func (e *Entity) IsActor() bool {
	return e.Health != nil
}

// IsDefeated reports whether the actor is in the terminal Defeated state.
func (e *Entity) IsDefeated() bool {
	if e.Action != nil {
		return e.Action.Is(enums.ActionDefeated)
	}
	return e.Health != nil && e.Health.IsDead()
}

// Box returns the world-space AABB for a given half extent.
func (e *Entity) Box(half Vec2) AABB {
	return AABB{Center: e.Pos, Half: half}
}
