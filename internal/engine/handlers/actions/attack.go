package actions

import (
	"babayaga/internal/core/types/enums"
	"babayaga/internal/domain"
	"babayaga/internal/engine/handlers"
	"babayaga/pkg/api"
)

// HandleUseEquipment queues the activation pipeline for a slot. The outcome
// (EQUIPMENT_USED or USE_FAILED) arrives with the next event batch.
func HandleUseEquipment(ctx handlers.Context, p api.UseEquipmentPayload) (handlers.Result, error) {
	slot, err := enums.ParseSlot(p.Slot)
	if err != nil {
		return handlers.EmptyResult(), err
	}

	var aim domain.Vec2
	if p.Aim != nil {
		aim = domain.V(p.Aim.X, p.Aim.Y)
	}
	if err := ctx.Game.RequestUseEquipment(ctx.Actor, slot, aim); err != nil {
		return handlers.EmptyResult(), err
	}
	return handlers.EmptyResult(), nil
}
