package actions

import (
	"babayaga/internal/core/types/enums"
	"babayaga/internal/domain"
	"babayaga/internal/engine/handlers"
	"babayaga/pkg/api"
)

// HandleApplyEffect lets environment scripts afflict any actor.
func HandleApplyEffect(ctx handlers.Context, p api.ApplyEffectPayload) (handlers.Result, error) {
	target, err := parseID("targetId", p.TargetID)
	if err != nil {
		return handlers.EmptyResult(), err
	}

	effects := make([]domain.StatusTemplate, 0, len(p.Effects))
	for _, e := range p.Effects {
		kind, err := enums.ParseStatusKind(e.Kind)
		if err != nil {
			return handlers.EmptyResult(), err
		}
		effects = append(effects, domain.StatusTemplate{
			Kind:          kind,
			Duration:      e.Duration,
			DamagePerTick: e.DamagePerTick,
			TickInterval:  e.TickInterval,
			SlowFrac:      e.SlowFrac,
		})
	}

	if err := ctx.Game.ApplyEffect(target, effects); err != nil {
		return handlers.EmptyResult(), err
	}
	return handlers.EmptyResult(), nil
}
