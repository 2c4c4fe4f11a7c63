package systems

import (
	"testing"

	"babayaga/internal/core/types"
	"babayaga/internal/core/types/enums"
	"babayaga/internal/domain"
	"babayaga/pkg/catalog"
)

// lastFailure returns the reason of the most recent UseFailed on holder.
func (h *harness) lastFailure(holder types.EntityID) (enums.UseFailReason, bool) {
	for i := len(h.events) - 1; i >= 0; i-- {
		ev := h.events[i]
		if ev.Type == domain.EventUseFailed && ev.Target == holder {
			return ev.Payload.(domain.UseFailed).Reason, true
		}
	}
	return 0, false
}

func (h *harness) equip(t *testing.T, actor *domain.Entity, template string, slot enums.Slot) *domain.Entity {
	t.Helper()
	it := h.carried(t, actor, template)
	if err := EquipItem(h.c, actor.ID, it.ID, slot); err != nil {
		t.Fatalf("EquipItem(%s) error = %v", template, err)
	}
	h.settle(t)
	return it
}

func TestUseEquipment_Cooldown(t *testing.T) {
	h := newHarness(t)
	hero := h.hero(t, domain.V(64, 64))

	if !UseEquipment(h.c, hero.ID, enums.SlotMainhand, domain.V(1, 0)) {
		t.Fatal("first swing rejected")
	}
	h.settle(t)
	if UseEquipment(h.c, hero.ID, enums.SlotMainhand, domain.V(1, 0)) {
		t.Fatal("second swing accepted during cooldown")
	}
	h.settle(t)
	if r, _ := h.lastFailure(hero.ID); r != enums.UseFailOnCooldown {
		t.Errorf("failure = %v, want ON_COOLDOWN", r)
	}

	// IronSword cools down in 0.4 s.
	h.run(t, 23)
	if UseEquipment(h.c, hero.ID, enums.SlotMainhand, domain.V(1, 0)) {
		t.Fatal("swing accepted one tick early")
	}
	h.step(t)
	if !UseEquipment(h.c, hero.ID, enums.SlotMainhand, domain.V(1, 0)) {
		t.Error("swing rejected after the cooldown")
	}
}

func TestUseEquipment_ManaGate(t *testing.T) {
	h := newHarness(t)
	hero := h.hero(t, domain.V(64, 64))
	staff := h.equip(t, hero, catalog.FireStaff.ID, enums.SlotMainhand)

	if !UseEquipment(h.c, hero.ID, enums.SlotMainhand, domain.V(1, 0)) {
		t.Fatal("first cast rejected")
	}
	if hero.Mana.Current != 4 {
		t.Fatalf("mana = %v, want 4", hero.Mana.Current)
	}

	staff.Equippable.Cooldown = domain.NewFinishedTimer(staff.Equippable.Cooldown.Duration)
	if UseEquipment(h.c, hero.ID, enums.SlotMainhand, domain.V(1, 0)) {
		t.Fatal("cast accepted without mana")
	}
	h.settle(t)
	if r, _ := h.lastFailure(hero.ID); r != enums.UseFailOutOfMana {
		t.Errorf("failure = %v, want OUT_OF_MANA", r)
	}
	if hero.Mana.Current != 4 {
		t.Errorf("a failed cast spent mana: %v", hero.Mana.Current)
	}
	if !staff.Equippable.Cooldown.Finished() {
		t.Error("a failed cast restarted the cooldown")
	}
}

func TestUseEquipment_NothingEquipped(t *testing.T) {
	h := newHarness(t)
	d := h.dummy(t, enums.FactionEnemy, domain.V(0, 0), catalog.Carry(catalog.IronSword.ID))

	if UseEquipment(h.c, d.ID, enums.SlotMainhand, domain.Vec2{}) {
		t.Fatal("use accepted with an empty slot")
	}
	h.settle(t)
	if r, ok := h.lastFailure(d.ID); !ok || r != enums.UseFailNoneEquipped {
		t.Errorf("failure = %v (%v), want NONE_EQUIPPED", r, ok)
	}
}

func TestUseEquipment_DefeatedHolder(t *testing.T) {
	h := newHarness(t)
	hero := h.hero(t, domain.V(64, 64))
	h.c.Bus.Emit(hero.ID, domain.AttemptDamage{Amount: domain.Fixed(100)})
	h.settle(t)

	if UseEquipment(h.c, hero.ID, enums.SlotMainhand, domain.V(1, 0)) {
		t.Fatal("defeated hero swung")
	}
	h.settle(t)
	if _, ok := h.lastFailure(hero.ID); ok {
		t.Error("defeated holders are ignored, not failed")
	}
}

func TestAimOf_FallsBackToFacing(t *testing.T) {
	h := newHarness(t)
	hero := h.hero(t, domain.V(64, 64))
	hero.Motion.SetDirection(domain.V(-3, 1))

	if got := AimOf(hero, domain.Vec2{}); got != domain.V(-1, 0) {
		t.Errorf("AimOf(zero) = %+v, want facing left", got)
	}
	if got := AimOf(hero, domain.V(0, 5)); got != domain.V(0, 1) {
		t.Errorf("AimOf(0,5) = %+v, want (0, 1)", got)
	}
}

func TestMelee_HitsOncePerSwing(t *testing.T) {
	h := newHarness(t)
	hero := h.hero(t, domain.V(100, 100))
	d := h.dummy(t, enums.FactionEnemy, domain.V(130, 100))

	h.c.Bus.Emit(hero.ID, domain.UseRequest{Slot: enums.SlotMainhand, Aim: domain.V(1, 0)})
	h.step(t)
	if !hero.Action.Is(enums.ActionAttacking) {
		t.Fatalf("action = %v, want attacking", hero.Action.Current())
	}

	h.run(t, 20)
	if got := h.count(domain.EventDamageDealt, d.ID); got != 1 {
		t.Fatalf("hits in one swing = %d, want 1", got)
	}
	if d.Health.Current < 92 || d.Health.Current > 96 {
		t.Errorf("hp = %v, want within the 4-8 roll", d.Health.Current)
	}
	if d.Pos.X <= 130 {
		t.Errorf("target not knocked back: x = %v", d.Pos.X)
	}
	if hero.Action.Is(enums.ActionAttacking) {
		t.Error("swing never finished")
	}

	sword := h.carried(t, hero, catalog.IronSword.ID)
	if sword.Attack != nil || sword.Hitbox != nil {
		t.Error("swing components left behind")
	}

	h.run(t, 5)
	h.c.Bus.Emit(hero.ID, domain.UseRequest{Slot: enums.SlotMainhand, Aim: domain.V(1, 0)})
	h.run(t, 20)
	if got := h.count(domain.EventDamageDealt, d.ID); got != 2 {
		t.Errorf("hits after two swings = %d, want 2", got)
	}
}

func TestMelee_SparesAllies(t *testing.T) {
	h := newHarness(t)
	hero := h.hero(t, domain.V(100, 100))
	ally := h.dummy(t, enums.FactionPlayer, domain.V(130, 100))

	h.c.Bus.Emit(hero.ID, domain.UseRequest{Slot: enums.SlotMainhand, Aim: domain.V(1, 0)})
	h.run(t, 20)

	if ally.Health.Current != 100 {
		t.Errorf("ally hp = %v, want 100", ally.Health.Current)
	}
	if hero.Health.Current != 100 {
		t.Errorf("hero hp = %v, a weapon struck its wielder", hero.Health.Current)
	}
}

func TestProjectile_HitsAndImprintsEffects(t *testing.T) {
	h := newHarness(t)
	hero := h.hero(t, domain.V(100, 100))
	h.equip(t, hero, catalog.FireStaff.ID, enums.SlotMainhand)
	d := h.dummy(t, enums.FactionEnemy, domain.V(200, 100))

	h.c.Bus.Emit(hero.ID, domain.UseRequest{Slot: enums.SlotMainhand, Aim: domain.V(1, 0)})
	h.step(t)
	if !hero.Action.Is(enums.ActionCasting) {
		t.Fatalf("action = %v, want casting", hero.Action.Current())
	}

	h.run(t, 20)
	if d.Health.Current != 90 {
		t.Fatalf("hp = %v, want 90", d.Health.Current)
	}
	if !hasStatus(h.c, d.ID, enums.StatusBurning) {
		t.Error("projectile effects not imprinted")
	}
	if !hero.Action.Is(enums.ActionIdle) {
		t.Errorf("action = %v, want idle after the cooldown", hero.Action.Current())
	}

	n := 0
	h.c.World.Each(func(e *domain.Entity) {
		if e.Velocity != nil {
			n++
		}
	})
	if n != 0 {
		t.Errorf("%d projectiles still flying after the hit", n)
	}
}

func TestProjectile_Expires(t *testing.T) {
	h := newHarness(t)
	hero := h.hero(t, domain.V(100, 100))
	h.equip(t, hero, catalog.FireStaff.ID, enums.SlotMainhand)

	h.c.Bus.Emit(hero.ID, domain.UseRequest{Slot: enums.SlotMainhand, Aim: domain.V(0, 1)})
	h.step(t)

	var p *domain.Entity
	h.c.World.Each(func(e *domain.Entity) {
		if e.Velocity != nil {
			p = e
		}
	})
	if p == nil {
		t.Fatal("no projectile spawned")
	}
	if p.Source.Source != hero.ID || p.Source.Faction != enums.FactionPlayer {
		t.Errorf("source = %+v, want the hero's faction", p.Source)
	}

	h.run(t, 90)
	if h.c.World.Alive(p.ID) {
		t.Error("projectile outlived its lifetime")
	}
}

func TestProjectile_StoppedByWalls(t *testing.T) {
	h := newHarness(t)
	h.c.Terrain = opaqueTiles{{5, 3}: true}
	hero := h.hero(t, domain.V(100, 100))
	h.equip(t, hero, catalog.FireStaff.ID, enums.SlotMainhand)
	d := h.dummy(t, enums.FactionEnemy, domain.V(220, 100))

	h.c.Bus.Emit(hero.ID, domain.UseRequest{Slot: enums.SlotMainhand, Aim: domain.V(1, 0)})
	h.run(t, 30)

	if d.Health.Current != 100 {
		t.Errorf("hp = %v, the projectile passed through a wall", d.Health.Current)
	}
}

func TestProjectile_ReflectedByShield(t *testing.T) {
	h := newHarness(t)
	hero := h.hero(t, domain.V(100, 100))
	hero.Motion.SetDirection(domain.V(-1, 0))
	caster := h.dummy(t, enums.FactionEnemy, domain.V(0, 100), catalog.Wield(catalog.FireStaff.ID, enums.SlotMainhand))

	h.c.Bus.Emit(caster.ID, domain.UseRequest{Slot: enums.SlotMainhand, Aim: domain.V(1, 0)})
	h.step(t)

	var p *domain.Entity
	h.c.World.Each(func(e *domain.Entity) {
		if e.Velocity != nil {
			p = e
		}
	})
	if p == nil {
		t.Fatal("no projectile spawned")
	}
	if p.Source.Faction != enums.FactionEnemy {
		t.Fatalf("projectile faction = %v, want enemy", p.Source.Faction)
	}

	h.run(t, 15)
	if p.Source.Faction != enums.FactionPlayer || p.Source.Source != hero.ID {
		t.Fatalf("after the shield: source = %+v, want the hero", p.Source)
	}
	if p.Velocity.V.X >= 0 {
		t.Errorf("velocity = %+v, want heading back", p.Velocity.V)
	}
	if hero.Health.Current != 100 {
		t.Errorf("hero hp = %v, the shield let it through", hero.Health.Current)
	}

	h.run(t, 25)
	if caster.Health.Current != 90 {
		t.Errorf("caster hp = %v, want 90 from its own bolt", caster.Health.Current)
	}
}

// swings returns the ticks on which item started a use.
func (h *harness) swings(item types.EntityID) []uint64 {
	var out []uint64
	for _, ev := range h.events {
		if ev.Type == domain.EventUseEquipment && ev.Target == item {
			out = append(out, ev.Tick)
		}
	}
	return out
}

func TestMelee_UseRateShorterThanSwing(t *testing.T) {
	h := newHarness(t)
	hero := h.hero(t, domain.V(100, 100))
	d := h.dummy(t, enums.FactionEnemy, domain.V(130, 100))
	sword := h.carried(t, hero, catalog.IronSword.ID)

	// Ready again after 0.1 s, half way through the 0.2 s stab.
	sword.Equippable.Cooldown = domain.NewFinishedTimer(0.1)

	h.c.Bus.Emit(hero.ID, domain.UseRequest{Slot: enums.SlotMainhand, Aim: domain.V(1, 0)})
	h.run(t, 8)
	if sword.Attack == nil || sword.Attack.Done {
		t.Fatal("swing over before the second request")
	}
	angle := sword.Attack.Angle

	h.c.Bus.Emit(hero.ID, domain.UseRequest{Slot: enums.SlotMainhand, Aim: domain.V(0, 1)})
	h.step(t)
	if r, _ := h.lastFailure(hero.ID); r != enums.UseFailOnCooldown {
		t.Errorf("failure = %v, want ON_COOLDOWN mid-swing", r)
	}
	if sword.Attack == nil || sword.Attack.Angle != angle {
		t.Fatal("the running swing was replaced")
	}

	h.run(t, 20)
	if got := len(h.swings(sword.ID)); got != 1 {
		t.Errorf("swings started = %d, want 1", got)
	}
	if got := h.count(domain.EventDamageDealt, d.ID); got != 1 {
		t.Errorf("hits = %d, want 1", got)
	}
}

func TestMelee_SwingEndingAsNextStarts(t *testing.T) {
	h := newHarness(t)
	hero := h.hero(t, domain.V(100, 100))
	d := h.dummy(t, enums.FactionEnemy, domain.V(130, 100))
	sword := h.carried(t, hero, catalog.IronSword.ID)

	// Cooldown and swing end on the same tick.
	sword.Equippable.Cooldown = domain.NewFinishedTimer(sword.Melee.AttackTime)

	hitsAt := map[uint64]int{}
	for i := 0; i < 40; i++ {
		d.Pos = domain.V(130, 100)
		h.c.Bus.Emit(hero.ID, domain.UseRequest{Slot: enums.SlotMainhand, Aim: domain.V(1, 0)})
		before := h.count(domain.EventDamageDealt, d.ID)
		h.step(t)
		if n := h.count(domain.EventDamageDealt, d.ID) - before; n > 0 {
			hitsAt[h.c.Tick] += n
		}
	}

	started := h.swings(sword.ID)
	if len(started) < 2 {
		t.Fatalf("swings started = %v, want back-to-back swings", started)
	}
	for i := 1; i < len(started); i++ {
		if gap := started[i] - started[i-1]; gap < 2 {
			t.Errorf("swings on ticks %d and %d overlap", started[i-1], started[i])
		}
	}
	for tick, n := range hitsAt {
		if n > 1 {
			t.Errorf("tick %d: %d hits on one target", tick, n)
		}
	}
	if got := h.count(domain.EventDamageDealt, d.ID); got > len(started) {
		t.Errorf("hits = %d from %d swings", got, len(started))
	}
}

func TestProjectile_Lifetime(t *testing.T) {
	tests := []struct {
		name     string
		lifetime float32
		wantHP   float32
	}{
		{"zero lifetime never strikes", 0, 100},
		{"normal lifetime strikes at once", 1.5, 90},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			hero := h.hero(t, domain.V(100, 100))
			staff := h.equip(t, hero, catalog.FireStaff.ID, enums.SlotMainhand)
			staff.Projectile.Lifetime = tt.lifetime
			// Right where the bolt appears.
			d := h.dummy(t, enums.FactionEnemy, domain.V(120, 100))

			h.c.Bus.Emit(hero.ID, domain.UseRequest{Slot: enums.SlotMainhand, Aim: domain.V(1, 0)})
			h.step(t)
			var p *domain.Entity
			h.c.World.Each(func(e *domain.Entity) {
				if e.Velocity != nil {
					p = e
				}
			})
			if p == nil {
				t.Fatal("no projectile spawned")
			}

			h.run(t, 2)
			if d.Health.Current != tt.wantHP {
				t.Errorf("hp = %v, want %v", d.Health.Current, tt.wantHP)
			}
			if h.c.World.Alive(p.ID) {
				t.Error("projectile still in the world")
			}
		})
	}
}
