package engine

import (
	"fmt"
	"strconv"

	"babayaga/internal/domain"
	"babayaga/internal/domain/constraints"
	"babayaga/internal/infrastructure/storage"
	"babayaga/pkg/catalog"
	"babayaga/pkg/utils"

	"github.com/sirupsen/logrus"
)

// Snapshot captures living actors (attributes, inventory, coins) and the
// zone descriptor and seed. Statuses, projectiles, cooldowns and corpses
// are not kept.
func (s *Service) Snapshot() *storage.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	w := s.sim.World()
	snap := &storage.Snapshot{
		ID:   utils.NewID(),
		Tick: s.sim.CurrentTick(),
		Seed: s.cfg.Seed,
	}
	for _, a := range constraints.Select(w, constraints.IsAliveActor{}) {
		snap.Actors = append(snap.Actors, actorSpecOf(w, a))
	}

	if z := s.zone; z != nil {
		ref := &storage.ZoneRef{Descriptor: z.desc, Seed: z.seed}
		for i, id := range z.chests {
			if e, ok := w.Get(id); ok && e.Loot != nil && e.Loot.Claimed {
				ref.Claimed = append(ref.Claimed, i)
			}
		}
		snap.Zone = ref
	}

	s.log.WithFields(logrus.Fields{
		"snapshot": snap.ID,
		"tick":     snap.Tick,
		"actors":   len(snap.Actors),
	}).Info("snapshot taken")
	return snap
}

// actorSpecOf turns a live actor back into the spec that rebuilds it.
func actorSpecOf(w *domain.World, a *domain.Entity) catalog.ActorSpec {
	hp := a.Health.Current
	spec := catalog.ActorSpec{
		Name:       a.Name,
		Faction:    a.Faction,
		Pos:        a.Pos,
		Controller: a.ControllerID,
		Stats: catalog.Stats{
			MaxHP: a.Health.Max,
			HP:    &hp,
		},
	}
	if m := a.Mana; m != nil {
		mana := m.Current
		spec.Stats.MaxMana = m.Max
		spec.Stats.Mana = &mana
		spec.Stats.ManaRegen = m.Regen
	}
	if a.Motion != nil {
		spec.Stats.Speed = a.Motion.MaxSpeed
	}
	if a.IFrames != nil {
		spec.Stats.IFrames = a.IFrames.Duration
	}
	if b := a.Brain; b != nil {
		spec.Brain = &catalog.BrainSpec{
			AggroRadius:    b.AggroRadius,
			AttackRange:    b.AttackRange,
			WanderInterval: b.Wander.Interval,
		}
	}
	if inv := a.Inventory; inv != nil {
		spec.Coins = inv.Coins
		for _, id := range inv.Items {
			it, ok := w.Get(id)
			if !ok || it.Item == nil {
				continue
			}
			entry := catalog.Carry(it.Item.TemplateID)
			if slot, ok := inv.SlotOf(id); ok {
				entry = catalog.Wield(it.Item.TemplateID, slot)
			}
			spec.Inventory = append(spec.Inventory, entry)
		}
	}
	return spec
}

// Restore replaces the whole simulation with snap. The tick counter resumes
// from snap.Tick and the RNG is reseeded from the snapshot seed and tick.
func (s *Service) Restore(snap *storage.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sim.Reset(snap.Tick, utils.DeriveSeed(snap.Seed, strconv.FormatUint(snap.Tick, 10)))
	s.sim.SetTerrain(nil)
	s.zone = nil
	s.outbox = nil

	if ref := snap.Zone; ref != nil {
		if _, err := s.loadZone(ref.Descriptor, ref.Seed, ref.Claimed); err != nil {
			return fmt.Errorf("restore %s: %w", snap.ID, err)
		}
	}
	for _, spec := range snap.Actors {
		if _, err := s.spawnActor(spec); err != nil {
			return fmt.Errorf("restore %s: actor %q: %w", snap.ID, spec.Name, err)
		}
	}
	if err := s.sim.World().Commit(); err != nil {
		return fmt.Errorf("restore %s: %w", snap.ID, err)
	}

	s.log.WithFields(logrus.Fields{
		"snapshot": snap.ID,
		"tick":     snap.Tick,
		"actors":   len(snap.Actors),
	}).Info("snapshot restored")
	return nil
}
