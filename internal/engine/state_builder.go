package engine

import (
	"babayaga/internal/core/types"
	"babayaga/internal/core/types/enums"
	"babayaga/internal/domain"
	"babayaga/internal/systems"
	"babayaga/pkg/api"
	"babayaga/pkg/catalog"
)

// Fallback glyphs for entities without a catalog template.
var (
	factionGlyphs = map[enums.Faction]types.Glyph{
		enums.FactionPlayer: catalog.Hero.Glyph,
		enums.FactionEnemy:  catalog.Goblin.Glyph,
		enums.FactionNPC:    catalog.Merchant.Glyph,
	}
	chestGlyph      = types.MakeGlyph(0xFBBF24, '=')
	openChestGlyph  = types.MakeGlyph(0x78716C, '_')
	portalGlyph     = types.MakeGlyph(0x8B5CF6, '>')
	projectileGlyph = types.MakeGlyph(0xF97316, '*')
	unknownGlyph    = types.MakeGlyph(0xFFFFFF, '?')
)

// Entities returns a view of every live entity in slot order. Statuses are
// folded into their parent's view.
func (s *Service) Entities() []api.EntityView {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.sim.Context()
	views := make([]api.EntityView, 0, c.World.Len())
	c.World.Each(func(e *domain.Entity) {
		if e.Status != nil {
			return
		}
		views = append(views, entityView(c, e))
	})
	return views
}

func glyphOf(e *domain.Entity) types.Glyph {
	switch {
	case e.Item != nil:
		if t, err := catalog.Item(e.Item.TemplateID); err == nil {
			return t.Glyph
		}
	case e.Loot != nil:
		if e.Loot.Claimed {
			return openChestGlyph
		}
		return chestGlyph
	case e.Portal != nil:
		return portalGlyph
	case e.Kind == enums.EntityKindProjectile:
		return projectileGlyph
	case e.IsActor():
		if g, ok := factionGlyphs[e.Faction]; ok {
			return g
		}
	}
	return unknownGlyph
}

func idString(id types.EntityID) string { return id.Wire() }

func entityView(c *systems.Context, e *domain.Entity) api.EntityView {
	g := glyphOf(e)
	view := api.EntityView{
		ID:       idString(e.ID),
		Kind:     e.Kind.String(),
		Name:     e.Name,
		Faction:  e.Faction.String(),
		Parent:   idString(e.Parent),
		Pos:      api.Point{X: e.Pos.X, Y: e.Pos.Y},
		Rotation: e.Rotation,
		Glyph:    string(g.Rune()),
		Color:    g.HexColor(),
	}

	if e.Health != nil {
		view.Health = &api.GaugeView{Current: e.Health.Current, Max: e.Health.Max}
	}
	if e.Mana != nil {
		view.Mana = &api.GaugeView{Current: e.Mana.Current, Max: e.Mana.Max}
	}
	if e.Action != nil {
		view.Action = e.Action.Current().String()
	}
	if e.Motion != nil {
		view.Facing = e.Motion.Facing.String()
	}
	if e.Invulnerable != nil {
		view.Invulnerable = true
		view.Dimmed = e.Invulnerable.Dimmed
	}
	if e.IsActor() {
		for _, k := range systems.Statuses(c, e.ID) {
			view.Statuses = append(view.Statuses, k.String())
		}
	}
	if e.Inventory != nil {
		view.Inventory = inventoryView(c.World, e.Inventory)
	}
	if e.Visibility != nil {
		visible := e.Visibility.Visible
		view.Visible = &visible
	}
	return view
}

func inventoryView(w *domain.World, inv *domain.Inventory) *api.InventoryView {
	v := &api.InventoryView{
		Items:    make([]api.ItemView, 0, len(inv.Items)),
		Slots:    make(map[string]string),
		Capacity: inv.Capacity,
		Coins:    inv.Coins,
	}
	for _, id := range inv.Items {
		it, ok := w.Get(id)
		if !ok || it.Item == nil {
			continue
		}
		iv := api.ItemView{
			ID:       idString(id),
			Template: it.Item.TemplateID,
			Name:     it.Item.Name,
			Category: it.Item.Category.String(),
		}
		if slot, ok := inv.SlotOf(id); ok {
			iv.Slot = slot.String()
			v.Slots[slot.String()] = iv.ID
		}
		v.Items = append(v.Items, iv)
	}
	return v
}

// EventViews converts bus events for the wire.
func EventViews(evs []domain.Event) []api.EventView {
	out := make([]api.EventView, 0, len(evs))
	for _, ev := range evs {
		out = append(out, api.EventView{
			Seq:     ev.Seq,
			Tick:    ev.Tick,
			Type:    ev.Type.String(),
			Target:  idString(ev.Target),
			Payload: ev.Payload,
		})
	}
	return out
}
