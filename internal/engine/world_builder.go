package engine

import (
	"fmt"

	"babayaga/internal/core/types"
	"babayaga/internal/core/types/enums"
	"babayaga/internal/domain"
	"babayaga/internal/domain/constraints"
	"babayaga/pkg/catalog"
	"babayaga/pkg/zone"

	"github.com/sirupsen/logrus"
)

// loadedZone is the zone currently backing the simulation terrain.
type loadedZone struct {
	desc   zone.Descriptor
	seed   int64
	layout *zone.Layout

	// Ordered by marker position, so ordinals survive a snapshot.
	chests  []types.EntityID
	portals []types.EntityID
}

// GenerateZone builds a layout and loads it: previous zone objects are
// despawned, the tile grid becomes the terrain, chests and portals are
// spawned at their markers. Actors are left where they are.
func (s *Service) GenerateZone(desc zone.Descriptor, seed int64) (*zone.Layout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	z, err := s.loadZone(desc, seed, nil)
	if err != nil {
		return nil, err
	}
	if err := s.sim.World().Commit(); err != nil {
		return nil, err
	}
	return z.layout, nil
}

// loadZone stages the zone objects; the caller commits. Chest ordinals in
// claimed start out opened.
func (s *Service) loadZone(desc zone.Descriptor, seed int64, claimed []int) (*loadedZone, error) {
	layout, err := zone.Generate(desc, seed)
	if err != nil {
		return nil, fmt.Errorf("generate zone: %w", err)
	}

	w := s.sim.World()
	removed := 0
	for _, e := range constraints.Select(w, constraints.IsZoneObject{}) {
		w.Despawn(e.ID)
		removed++
	}

	opened := make(map[int]bool, len(claimed))
	for _, i := range claimed {
		opened[i] = true
	}

	z := &loadedZone{desc: desc, seed: seed, layout: layout}
	for i, p := range layout.MarkersOf(enums.MarkerChestSpawn) {
		e := w.Spawn(enums.EntityKindInteractable, types.NilEntityID)
		e.Name = "Chest"
		e.Faction = enums.FactionEnvironment
		e.Pos = domain.V(p.X, p.Y)
		e.Loot = &domain.Loot{Coins: domain.ChestCoins, Claimed: opened[i]}
		if !opened[i] {
			e.Interaction = &domain.InteractionZone{Shape: domain.ZoneCircle, Radius: domain.ChestRadius}
		}
		z.chests = append(z.chests, e.ID)
	}
	for i, p := range layout.MarkersOf(enums.MarkerLevelExit) {
		e := w.Spawn(enums.EntityKindInteractable, types.NilEntityID)
		e.Name = "Portal"
		e.Faction = enums.FactionEnvironment
		e.Pos = domain.V(p.X, p.Y)
		e.Portal = &domain.Portal{Index: i}
		e.Interaction = &domain.InteractionZone{Shape: domain.ZoneSquare, Radius: domain.PortalRadius}
		z.portals = append(z.portals, e.ID)
	}

	s.sim.SetTerrain(layout)
	s.zone = z

	s.log.WithFields(logrus.Fields{
		"seed":    seed,
		"size":    fmt.Sprintf("%dx%d", layout.Width, layout.Height),
		"chests":  len(z.chests),
		"portals": len(z.portals),
		"removed": removed,
	}).Info("zone loaded")
	return z, nil
}

// Layout returns the loaded zone, or nil.
func (s *Service) Layout() *zone.Layout {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.zone == nil {
		return nil
	}
	return s.zone.layout
}

// PlayerSpawn is the first PlayerSpawn marker of the loaded zone.
func (s *Service) PlayerSpawn() (domain.Vec2, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playerSpawn()
}

func (s *Service) playerSpawn() (domain.Vec2, bool) {
	if s.zone == nil {
		return domain.Vec2{}, false
	}
	ps := s.zone.layout.MarkersOf(enums.MarkerPlayerSpawn)
	if len(ps) == 0 {
		return domain.Vec2{}, false
	}
	return domain.V(ps[0].X, ps[0].Y), true
}

// PopulateZone spawns enemies at EnemySpawn markers, cycling through
// catalog.EnemyOrder, and merchants at NPCSpawn markers.
func (s *Service) PopulateZone() ([]types.EntityID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.zone == nil {
		return nil, domain.Precondition("no zone loaded")
	}

	var ids []types.EntityID
	spawn := func(t catalog.ActorTemplate, p zone.Position) error {
		id, err := s.spawnActor(t.Spec(domain.V(p.X, p.Y)))
		if err != nil {
			return err
		}
		ids = append(ids, id)
		return nil
	}

	for i, p := range s.zone.layout.MarkersOf(enums.MarkerEnemySpawn) {
		t := catalog.EnemyTemplates[catalog.EnemyOrder[i%len(catalog.EnemyOrder)]]
		if err := spawn(t, p); err != nil {
			return nil, err
		}
	}
	for _, p := range s.zone.layout.MarkersOf(enums.MarkerNPCSpawn) {
		if err := spawn(catalog.Merchant, p); err != nil {
			return nil, err
		}
	}

	if err := s.sim.World().Commit(); err != nil {
		return nil, err
	}
	s.log.WithField("actors", len(ids)).Info("zone populated")
	return ids, nil
}
