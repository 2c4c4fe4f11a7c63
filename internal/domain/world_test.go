package domain

import (
	"errors"
	"testing"

	"babayaga/internal/core/types"
	"babayaga/internal/core/types/enums"
)

func TestWorld_SpawnIsStagedUntilCommit(t *testing.T) {
	w := NewWorld()
	e := w.Spawn(enums.EntityKindActor, types.NilEntityID)
	e.Health = NewHealth(10)

	if _, ok := w.Get(e.ID); !ok {
		t.Fatal("staged entity must resolve with Get")
	}
	if w.Len() != 0 {
		t.Fatalf("Len() = %d before commit, want 0", w.Len())
	}
	if w.Live(e.ID) {
		t.Error("staged entity reported live")
	}

	if err := w.Commit(); err != nil {
		t.Fatalf("Commit() error = %v", err)
	}
	if w.Len() != 1 || !w.Live(e.ID) {
		t.Fatal("entity not live after commit")
	}
	if e.ID.Generation() != 1 {
		t.Errorf("first generation = %d, want 1", e.ID.Generation())
	}
	if enums.EntityKind(e.ID.Kind()) != enums.EntityKindActor {
		t.Errorf("handle kind = %d", e.ID.Kind())
	}
}

func TestWorld_InsertRemoveDeferredWithHooks(t *testing.T) {
	w := NewWorld()
	var log []string

	w.OnInsert(CompInvulnerable, func(e *Entity) error {
		if e.Invulnerable == nil {
			t.Error("insert hook ran before attach")
		}
		log = append(log, "insert")
		return nil
	})
	w.OnRemove(CompInvulnerable, func(e *Entity) error {
		if e.Invulnerable == nil {
			t.Error("remove hook ran after detach")
		}
		log = append(log, "remove")
		return nil
	})

	e := w.Spawn(enums.EntityKindActor, types.NilEntityID)
	_ = w.Commit()

	w.Insert(e.ID, NewInvulnerable(1, 0.1))
	if e.Invulnerable != nil {
		t.Fatal("insert applied before commit")
	}
	if !w.PendingInsert(e.ID, CompInvulnerable) {
		t.Fatal("PendingInsert() = false with a queued insert")
	}
	_ = w.Commit()
	if e.Invulnerable == nil {
		t.Fatal("insert not applied at commit")
	}
	if w.PendingInsert(e.ID, CompInvulnerable) {
		t.Error("PendingInsert() still true after commit")
	}

	w.Remove(e.ID, CompInvulnerable)
	_ = w.Commit()
	if e.Invulnerable != nil {
		t.Fatal("remove not applied at commit")
	}

	if len(log) != 2 || log[0] != "insert" || log[1] != "remove" {
		t.Errorf("hook log = %v", log)
	}
}

func TestWorld_StagedComponentsFireHooksAtCommit(t *testing.T) {
	w := NewWorld()
	fired := 0
	w.OnInsert(CompStatus, func(e *Entity) error {
		fired++
		return nil
	})

	parent := w.Spawn(enums.EntityKindActor, types.NilEntityID)
	st := w.Spawn(enums.EntityKindStatus, parent.ID)
	st.Status = NewStatus(Stunned(1))

	if fired != 0 {
		t.Fatal("hook fired at spawn")
	}
	_ = w.Commit()
	if fired != 1 {
		t.Errorf("hook fired %d times, want 1", fired)
	}
}

func TestWorld_CommitRunsCommandsQueuedByHooks(t *testing.T) {
	w := NewWorld()
	e := w.Spawn(enums.EntityKindActor, types.NilEntityID)
	_ = w.Commit()

	w.OnInsert(CompInvulnerable, func(e *Entity) error {
		w.Insert(e.ID, &Visibility{Visible: true})
		return nil
	})
	w.Insert(e.ID, NewInvulnerable(1, 0.1))
	_ = w.Commit()

	if e.Visibility == nil {
		t.Error("command queued by a hook was not applied in the same commit")
	}
}

func TestWorld_DespawnHidesThenDestroysWithChildren(t *testing.T) {
	w := NewWorld()
	removed := 0
	w.OnRemove(CompStatus, func(e *Entity) error {
		removed++
		return nil
	})

	parent := w.Spawn(enums.EntityKindActor, types.NilEntityID)
	s1 := w.Spawn(enums.EntityKindStatus, parent.ID)
	s1.Status = NewStatus(Stunned(1))
	s2 := w.Spawn(enums.EntityKindStatus, parent.ID)
	s2.Status = NewStatus(Slowed(0.5, 1))
	_ = w.Commit()

	if got := len(w.Children(parent.ID)); got != 2 {
		t.Fatalf("Children() = %d, want 2", got)
	}

	w.Despawn(parent.ID)
	if w.Alive(parent.ID) {
		t.Error("despawning entity reported alive")
	}
	if _, ok := w.Get(parent.ID); !ok {
		t.Error("despawning entity must still resolve until flush")
	}
	visited := 0
	w.Each(func(e *Entity) {
		if e.ID == parent.ID {
			visited++
		}
	})
	if visited != 0 {
		t.Error("despawning entity visited by Each")
	}

	if err := w.FlushDespawns(); err != nil {
		t.Fatalf("FlushDespawns() error = %v", err)
	}
	for _, id := range []types.EntityID{parent.ID, s1.ID, s2.ID} {
		if _, ok := w.Get(id); ok {
			t.Errorf("%s still resolves after flush", id)
		}
	}
	if removed != 2 {
		t.Errorf("status remove hooks fired %d times, want 2", removed)
	}
}

func TestWorld_StaleHandleNeverResolves(t *testing.T) {
	w := NewWorld()
	old := w.Spawn(enums.EntityKindProjectile, types.NilEntityID)
	_ = w.Commit()
	w.Despawn(old.ID)
	_ = w.FlushDespawns()

	fresh := w.Spawn(enums.EntityKindProjectile, types.NilEntityID)
	_ = w.Commit()

	if fresh.ID.Index() != old.ID.Index() {
		t.Fatalf("slot not reused: %d vs %d", fresh.ID.Index(), old.ID.Index())
	}
	if fresh.ID.Generation() != old.ID.Generation()+1 {
		t.Errorf("generation = %d, want %d", fresh.ID.Generation(), old.ID.Generation()+1)
	}
	if _, ok := w.Get(old.ID); ok {
		t.Error("stale handle resolved to the new occupant")
	}
}

func TestWorld_HookErrorsAreReturned(t *testing.T) {
	w := NewWorld()
	boom := errors.New("boom")
	w.OnInsert(CompLoot, func(e *Entity) error { return boom })

	e := w.Spawn(enums.EntityKindInteractable, types.NilEntityID)
	_ = w.Commit()
	w.Insert(e.ID, &Loot{Coins: 1})

	if err := w.Commit(); !errors.Is(err, boom) {
		t.Errorf("Commit() error = %v, want %v", err, boom)
	}
	if e.Loot == nil {
		t.Error("component must stay attached when its hook fails")
	}
}

func TestWorld_EachIsSlotOrdered(t *testing.T) {
	w := NewWorld()
	var want []types.EntityID
	for i := 0; i < 5; i++ {
		want = append(want, w.Spawn(enums.EntityKindActor, types.NilEntityID).ID)
	}
	_ = w.Commit()

	got := w.Entities()
	if len(got) != len(want) {
		t.Fatalf("Entities() = %d entries, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].ID != want[i] {
			t.Errorf("Entities()[%d] = %s, want %s", i, got[i].ID, want[i])
		}
	}
}

func TestWorld_Reparent(t *testing.T) {
	w := NewWorld()
	a := w.Spawn(enums.EntityKindActor, types.NilEntityID)
	b := w.Spawn(enums.EntityKindActor, types.NilEntityID)
	item := w.Spawn(enums.EntityKindItem, a.ID)
	_ = w.Commit()

	w.Reparent(item.ID, b.ID)
	if item.Parent != b.ID {
		t.Fatalf("Parent = %s, want %s", item.Parent, b.ID)
	}
	if len(w.Children(a.ID)) != 0 || len(w.Children(b.ID)) != 1 {
		t.Error("children table not updated")
	}
}
