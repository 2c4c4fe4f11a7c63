package actions

import (
	"babayaga/internal/core/types/enums"
	"babayaga/internal/engine/handlers"
	"babayaga/pkg/api"
)

func HandleUnequip(ctx handlers.Context, p api.SlotPayload) (handlers.Result, error) {
	slot, err := enums.ParseSlot(p.Slot)
	if err != nil {
		return handlers.EmptyResult(), err
	}
	if err := ctx.Game.RequestUnequip(ctx.Actor, slot); err != nil {
		return handlers.EmptyResult(), err
	}
	return handlers.EmptyResult(), nil
}
