package actions

import (
	"fmt"

	"babayaga/internal/engine/handlers"
	"babayaga/pkg/api"
)

func HandleGenerateZone(ctx handlers.Context, p api.GenerateZonePayload) (handlers.Result, error) {
	layout, err := ctx.Game.GenerateZone(p.Descriptor, p.Seed)
	if err != nil {
		return handlers.EmptyResult(), err
	}

	res := handlers.Result{
		Msg:     fmt.Sprintf("zone %dx%d generated (seed %d)", layout.Width, layout.Height, p.Seed),
		MsgType: "ZONE",
		Zone:    layout,
	}
	if !p.Populate {
		return res, nil
	}

	ids, err := ctx.Game.PopulateZone()
	if err != nil {
		return res, err
	}
	res.Msg = fmt.Sprintf("%s, %d actors", res.Msg, len(ids))
	return res, nil
}
