package domain

import (
	"babayaga/internal/core/types"
	"babayaga/internal/core/types/enums"
)

// ItemInfo identifies an item. TemplateID points back into the catalog so
// snapshots can rebuild the item.
type ItemInfo struct {
	TemplateID string             `json:"templateId"`
	Name       string             `json:"name"`
	Category   enums.ItemCategory `json:"category"`
}

// Equippable items fit one slot and share a use cooldown.
type Equippable struct {
	Slot     enums.Slot `json:"slot"`
	Cooldown Timer      `json:"cooldown"`
}

func NewEquippable(slot enums.Slot, useRate float32) *Equippable {
	return &Equippable{Slot: slot, Cooldown: NewFinishedTimer(useRate)}
}

type ManaCost struct {
	Cost float32 `json:"cost"`
}

// DamageRange is sampled uniformly; Min == Max is a fixed amount.
type DamageRange struct {
	Min float32 `json:"min"`
	Max float32 `json:"max"`
}

func Fixed(v float32) DamageRange { return DamageRange{Min: v, Max: v} }

// MeleeSpec describes a swing. Reach applies to stabs, Arc to slashes.
type MeleeSpec struct {
	Damage       DamageRange      `json:"damage"`
	HitboxHalf   Vec2             `json:"hitboxHalf"`
	Attack       enums.AttackType `json:"attack"`
	Reach        float32          `json:"reach,omitempty"`
	Arc          float32          `json:"arc,omitempty"`
	AttackTime   float32          `json:"attackTime"`
	HoldDistance float32          `json:"holdDistance"`
	Knockback    float32          `json:"knockback,omitempty"`
}

// Offset is the weapon position relative to its holder at progress p.
// It also returns the weapon rotation.
func (m *MeleeSpec) Offset(theta, p float32) (Vec2, float32) {
	p = max(0, min(1, p))
	if m.Attack == enums.AttackSlash {
		angle := theta - m.Arc/2 + m.Arc*p
		return FromAngle(angle).Scale(m.HoldDistance), angle
	}
	return FromAngle(theta).Scale(m.HoldDistance + m.Reach*p), theta
}

// ProjectileSpec is carried by both the weapon and each projectile it fires.
type ProjectileSpec struct {
	Damage      DamageRange `json:"damage"`
	Speed       float32     `json:"speed"`
	SpawnOffset float32     `json:"spawnOffset"`
	Lifetime    float32     `json:"lifetime"`
	HitboxHalf  Vec2        `json:"hitboxHalf"`
	Knockback   float32     `json:"knockback,omitempty"`
}

// EffectsList is imprinted on the target of every successful hit.
type EffectsList struct {
	Effects []StatusTemplate `json:"effects"`
}

// Clone copies the list so a projectile does not share its weapon's slice.
func (l *EffectsList) Clone() *EffectsList {
	if l == nil {
		return nil
	}
	out := make([]StatusTemplate, len(l.Effects))
	copy(out, l.Effects)
	return &EffectsList{Effects: out}
}

// Consumable items are used up by RequestUseItem.
type Consumable struct {
	Heal float32 `json:"heal,omitempty"`
	Mana float32 `json:"mana,omitempty"`
}

// Equipped marks an item that occupies Slot on Holder.
type Equipped struct {
	Holder types.EntityID `json:"holder"`
	Slot   enums.Slot     `json:"slot"`
}

func (*ItemInfo) ComponentKind() ComponentKind       { return CompItem }
func (*Equippable) ComponentKind() ComponentKind     { return CompEquippable }
func (*ManaCost) ComponentKind() ComponentKind       { return CompManaCost }
func (*MeleeSpec) ComponentKind() ComponentKind      { return CompMelee }
func (*ProjectileSpec) ComponentKind() ComponentKind { return CompProjectileSpec }
func (*EffectsList) ComponentKind() ComponentKind    { return CompEffects }
func (*Consumable) ComponentKind() ComponentKind     { return CompConsumable }
func (*Equipped) ComponentKind() ComponentKind       { return CompEquipped }
