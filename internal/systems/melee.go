package systems

import (
	"babayaga/internal/domain"

	"github.com/sirupsen/logrus"
)

// StartSwing attaches a fresh attack and hitbox to a melee weapon. Both land
// at Commit, so the swing starts striking next tick.
func StartSwing(c *Context, item, holder *domain.Entity, aim domain.Vec2) {
	spec := item.Melee
	theta := aim.Angle()

	c.World.Insert(item.ID, &domain.ActiveMeleeAttack{
		Angle: theta,
		Timer: domain.NewTimer(spec.AttackTime),
	})
	c.World.Insert(item.ID, &domain.Hitbox{
		Half:    spec.HitboxHalf,
		Faction: item.Faction,
		Filter:  StrikeMask(item.Faction),
	})

	off, rot := spec.Offset(theta, 0)
	item.Pos = holder.Pos.Add(off)
	item.Rotation = rot

	if holder.Motion != nil {
		holder.Motion.SetDirection(aim)
	}
	if holder.Action != nil {
		holder.Action.Fire(domain.TransitionAttack)
	}

	c.log("melee").WithFields(logrus.Fields{
		"item":   item.ID,
		"holder": holder.ID,
		"attack": spec.Attack,
		"angle":  theta,
	}).Debug("swing started")
}

// AdvanceMelee moves every swinging weapon along its arc. A finished swing
// stops striking at once and its components go at Commit.
func AdvanceMelee(c *Context, dt float32) {
	c.World.Each(func(item *domain.Entity) {
		atk := item.Attack
		if atk == nil || atk.Done || item.Melee == nil {
			return
		}

		var holder *domain.Entity
		if item.Equipped != nil {
			holder, _ = c.World.Get(item.Equipped.Holder)
		}
		if holder == nil {
			atk.Done = true
			c.World.Remove(item.ID, domain.CompActiveAttack)
			c.World.Remove(item.ID, domain.CompHitbox)
			return
		}

		atk.Timer.Tick(dt)
		off, rot := item.Melee.Offset(atk.Angle, atk.Timer.Fraction())
		item.Pos = holder.Pos.Add(off)
		item.Rotation = rot

		if atk.Timer.Finished() {
			atk.Done = true
			c.World.Remove(item.ID, domain.CompActiveAttack)
			c.World.Remove(item.ID, domain.CompHitbox)
			if holder.Action != nil {
				holder.Action.Fire(domain.TransitionFinish)
			}
		}
	})
}

// meleeHits is the collide step for one swinging weapon.
func meleeHits(c *Context, item *domain.Entity, hurtboxes []*domain.Entity) {
	atk := item.Attack
	for _, hb := range hurtboxes {
		if hb.Reflector != nil {
			continue
		}
		owner, ok := resolveHurtbox(c, hb.ID)
		if !ok {
			continue
		}
		if !atk.MarkHit(owner.ID) {
			continue
		}
		c.Bus.Emit(hb.ID, domain.AttemptDamage{
			Amount: item.Melee.Damage,
			Source: item.ID,
		})
		c.log("melee").WithFields(logrus.Fields{"item": item.ID, "target": owner.ID}).Debug("swing connected")
	}
}
