package actions

import (
	"fmt"

	"babayaga/internal/core/types/enums"
	"babayaga/internal/domain"
	"babayaga/internal/engine/handlers"
	"babayaga/pkg/api"
	"babayaga/pkg/catalog"
)

// HandleSpawnActor spawns an actor from a catalog template with optional
// overrides. Without a position it lands on the zone's player spawn.
func HandleSpawnActor(ctx handlers.Context, p api.SpawnActorPayload) (handlers.Result, error) {
	spec, err := SpecFromPayload(ctx, p)
	if err != nil {
		return handlers.EmptyResult(), err
	}

	id, err := ctx.Game.SpawnActor(spec)
	if err != nil {
		return handlers.EmptyResult(), err
	}
	return handlers.Result{
		Msg:     fmt.Sprintf("%s joined", spec.Name),
		MsgType: "INFO",
		Spawned: id,
	}, nil
}

// SpecFromPayload resolves the template and applies the overrides.
func SpecFromPayload(ctx handlers.Context, p api.SpawnActorPayload) (catalog.ActorSpec, error) {
	t, err := catalog.Actor(p.Template)
	if err != nil {
		return catalog.ActorSpec{}, err
	}

	var pos domain.Vec2
	if p.Pos != nil {
		pos = domain.V(p.Pos.X, p.Pos.Y)
	} else if sp, ok := ctx.Game.PlayerSpawn(); ok {
		pos = sp
	}
	spec := t.Spec(pos)

	if p.Name != "" {
		spec.Name = p.Name
	}
	if p.Faction != "" {
		if spec.Faction, err = enums.ParseFaction(p.Faction); err != nil {
			return catalog.ActorSpec{}, err
		}
	}
	if st := p.Stats; st != nil {
		override(&spec.Stats.MaxHP, st.MaxHP)
		override(&spec.Stats.MaxMana, st.MaxMana)
		override(&spec.Stats.ManaRegen, st.ManaRegen)
		override(&spec.Stats.Speed, st.Speed)
		override(&spec.Stats.IFrames, st.IFrames)
		if st.HP != nil {
			hp := *st.HP
			spec.Stats.HP = &hp
		}
		if st.Mana != nil {
			mana := *st.Mana
			spec.Stats.Mana = &mana
		}
	}
	if p.Inventory != nil {
		spec.Inventory = spec.Inventory[:0]
		for _, e := range p.Inventory {
			if e.Slot == "" {
				spec.Inventory = append(spec.Inventory, catalog.Carry(e.Item))
				continue
			}
			slot, err := enums.ParseSlot(e.Slot)
			if err != nil {
				return catalog.ActorSpec{}, err
			}
			spec.Inventory = append(spec.Inventory, catalog.Wield(e.Item, slot))
		}
	}
	if p.Coins != nil {
		spec.Coins = *p.Coins
	}

	spec.Controller = p.Controller
	if spec.Controller == "" {
		spec.Controller = ctx.Session
	}
	return spec, nil
}

func override(dst *float32, v *float32) {
	if v != nil {
		*dst = *v
	}
}
