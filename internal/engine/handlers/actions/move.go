package actions

import (
	"babayaga/internal/domain"
	"babayaga/internal/engine/handlers"
	"babayaga/pkg/api"
)

func HandleMove(ctx handlers.Context, p api.DirectionPayload) (handlers.Result, error) {
	if err := ctx.Game.RequestMove(ctx.Actor, domain.V(p.Dx, p.Dy)); err != nil {
		return handlers.EmptyResult(), err
	}
	return handlers.EmptyResult(), nil
}

func HandleStop(ctx handlers.Context) (handlers.Result, error) {
	if err := ctx.Game.RequestStop(ctx.Actor); err != nil {
		return handlers.EmptyResult(), err
	}
	return handlers.EmptyResult(), nil
}
