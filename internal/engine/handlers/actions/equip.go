package actions

import (
	"babayaga/internal/core/types/enums"
	"babayaga/internal/engine/handlers"
	"babayaga/pkg/api"
)

func HandleEquip(ctx handlers.Context, p api.EquipPayload) (handlers.Result, error) {
	item, err := parseID("itemId", p.ItemID)
	if err != nil {
		return handlers.EmptyResult(), err
	}
	slot, err := enums.ParseSlot(p.Slot)
	if err != nil {
		return handlers.EmptyResult(), err
	}
	if err := ctx.Game.RequestEquip(ctx.Actor, item, slot); err != nil {
		return handlers.EmptyResult(), err
	}
	return handlers.EmptyResult(), nil
}
