package actions

import (
	"fmt"

	"babayaga/internal/core/types"
	"babayaga/internal/engine/handlers"
	"babayaga/pkg/api"
)

func parseID(field, s string) (types.EntityID, error) {
	id, err := types.ParseEntityID(s)
	if err != nil {
		return types.NilEntityID, fmt.Errorf("%s: %w", field, err)
	}
	if id.IsNil() {
		return types.NilEntityID, fmt.Errorf("%s is required", field)
	}
	return id, nil
}

func HandleUseItem(ctx handlers.Context, p api.ItemPayload) (handlers.Result, error) {
	item, err := parseID("itemId", p.ItemID)
	if err != nil {
		return handlers.EmptyResult(), err
	}
	if err := ctx.Game.RequestUseItem(ctx.Actor, item); err != nil {
		return handlers.EmptyResult(), err
	}
	return handlers.Result{Msg: "consumable used", MsgType: "INFO"}, nil
}
