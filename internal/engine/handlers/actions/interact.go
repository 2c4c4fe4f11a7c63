package actions

import "babayaga/internal/engine/handlers"

// HandleInteract queues an interact request; the closest zone in reach wins.
func HandleInteract(ctx handlers.Context) (handlers.Result, error) {
	if err := ctx.Game.RequestInteract(ctx.Actor); err != nil {
		return handlers.EmptyResult(), err
	}
	return handlers.EmptyResult(), nil
}
