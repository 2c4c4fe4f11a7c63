package domain

import "babayaga/internal/core/types"

// Brain drives enemy actors: chase in aggro range, otherwise wander.
type Brain struct {
	AggroRadius  float32        `json:"aggroRadius"`
	AttackRange  float32        `json:"attackRange"`
	Wander       Repeating      `json:"wander"`
	WanderChance float32        `json:"wanderChance"`
	Target       types.EntityID `json:"target"`
}

func NewBrain(aggro, attackRange, wanderInterval float32) *Brain {
	return &Brain{
		AggroRadius:  aggro,
		AttackRange:  attackRange,
		Wander:       Repeating{Interval: wanderInterval},
		WanderChance: 0.5,
	}
}

// HasTarget reports whether the brain is chasing someone.
func (b *Brain) HasTarget() bool {
	return !b.Target.IsNil()
}

// Forget drops the current target.
func (b *Brain) Forget() {
	b.Target = types.NilEntityID
}

func (*Brain) ComponentKind() ComponentKind { return CompBrain }
