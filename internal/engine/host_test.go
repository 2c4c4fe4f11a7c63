package engine

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"babayaga/internal/core/types"
	"babayaga/internal/domain"
	"babayaga/internal/infrastructure/storage"
	"babayaga/pkg/api"
	"babayaga/pkg/catalog"
)

func send(t *testing.T, h *Host, session, action string, token types.EntityID, payload string) {
	t.Helper()
	cmd := api.ClientCommand{Action: action, Token: token.Wire()}
	if payload != "" {
		cmd.Payload = json.RawMessage(payload)
	}
	if err := h.ProcessCommand(session, cmd); err != nil {
		t.Fatalf("ProcessCommand(%s) error = %v", action, err)
	}
}

func steps(t *testing.T, h *Host, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		if err := h.Step(); err != nil {
			t.Fatalf("Step() error = %v", err)
		}
	}
}

const heroAt = `{"template":"hero","pos":{"x":100,"y":100}}`

func TestHost_ProcessCommandRejects(t *testing.T) {
	h := NewHost(newService(t), nil, nil)

	if err := h.ProcessCommand("s1", api.ClientCommand{Action: "DANCE"}); err == nil {
		t.Error("unknown action accepted")
	}
	if err := h.ProcessCommand("s1", api.ClientCommand{Action: "MOVE", Token: "not-a-number"}); err == nil {
		t.Error("malformed token accepted")
	}
	if len(h.CommandChan) != 0 {
		t.Errorf("queued %d rejected commands", len(h.CommandChan))
	}
}

func TestHost_StepSpawnsAndRecords(t *testing.T) {
	h := NewHost(newService(t), nil, nil)

	send(t, h, "s1", "SPAWN_ACTOR", types.NilEntityID, heroAt)
	steps(t, h, 1)

	hero, ok := h.Service.FindByController("s1")
	if !ok {
		t.Fatal("SPAWN_ACTOR did not spawn a controlled hero")
	}

	send(t, h, "s1", "MOVE", hero, `{"dx":1,"dy":0}`)
	send(t, h, "s1", "MOVE", hero, `{"dx":0,"dy":0}`)
	send(t, h, "s1", "STOP", types.NilEntityID, "")
	steps(t, h, 10)

	n, resumed, ok := h.RecordingStats()
	if !ok || resumed || n != 2 {
		t.Errorf("RecordingStats() = %d, %v, %v; want 2 fresh actions", n, resumed, ok)
	}
	if h.Replay.Actions[0].Tick != 1 || h.Replay.Actions[1].Tick != 2 {
		t.Errorf("recorded ticks = %d, %d; want 1, 2", h.Replay.Actions[0].Tick, h.Replay.Actions[1].Tick)
	}
	if pos, _ := h.Service.GetPosition(hero); pos.X <= 100 {
		t.Errorf("x = %v, MOVE had no effect", pos.X)
	}
}

func TestHost_GenerateZoneValidatesPayload(t *testing.T) {
	h := NewHost(newService(t), nil, nil)

	send(t, h, "", "GENERATE_ZONE", types.NilEntityID, `{"descriptor":{"width":2,"height":2,"floor":"GRASS"},"seed":1}`)
	steps(t, h, 1)
	if h.Service.Layout() != nil {
		t.Fatal("an invalid descriptor produced a zone")
	}

	send(t, h, "", "GENERATE_ZONE", types.NilEntityID, `{"descriptor":{"width":30,"height":20,"floor":"GRASS","numExits":1,"exteriorWalls":true},"seed":3,"populate":true}`)
	steps(t, h, 1)
	if h.Service.Layout() == nil {
		t.Fatal("GENERATE_ZONE did not load a zone")
	}
	if n, _, _ := h.RecordingStats(); n != 1 {
		t.Errorf("recorded %d commands, want only the valid one", n)
	}
}

func TestHost_PlaybackReproducesState(t *testing.T) {
	live := NewHost(newService(t), nil, nil)
	send(t, live, "s1", "SPAWN_ACTOR", types.NilEntityID, heroAt)
	steps(t, live, 1)
	hero, _ := live.Service.FindByController("s1")

	send(t, live, "s1", "MOVE", hero, `{"dx":1,"dy":1}`)
	steps(t, live, 12)
	send(t, live, "s1", "STOP", hero, "")
	steps(t, live, 5)

	rec := live.Replay
	replay := NewHost(newService(t), nil, nil)
	n, err := replay.Playback(rec)
	if err != nil {
		t.Fatalf("Playback() error = %v", err)
	}
	if n != 3 {
		t.Errorf("Playback() = %d commands, want 3", n)
	}
	for replay.Service.CurrentTick() < live.Service.CurrentTick() {
		steps(t, replay, 1)
	}

	want, _ := live.Service.GetPosition(hero)
	got, err := replay.Service.GetPosition(hero)
	if err != nil {
		t.Fatalf("replayed hero missing: %v", err)
	}
	if got != want {
		t.Errorf("replayed position = %+v, want %+v", got, want)
	}
}

func TestHost_SnapshotCommand(t *testing.T) {
	h := NewHost(newService(t), nil, nil)
	send(t, h, "", "SNAPSHOT", types.NilEntityID, "")
	steps(t, h, 1)

	dir := t.TempDir()
	h = NewHost(newService(t), nil, storage.NewSnapshotStore(dir))
	send(t, h, "s1", "SPAWN_ACTOR", types.NilEntityID, heroAt)
	steps(t, h, 1)
	send(t, h, "", "SNAPSHOT", types.NilEntityID, "")
	steps(t, h, 1)

	files, err := filepath.Glob(filepath.Join(dir, "*.msgpack"))
	if err != nil || len(files) != 1 {
		t.Fatalf("snapshot files = %v, %v; want one", files, err)
	}
	if n, _, _ := h.RecordingStats(); n != 1 {
		t.Errorf("recorded %d commands, SNAPSHOT must not be recorded", n)
	}

	data, err := os.ReadFile(files[0])
	if err != nil {
		t.Fatal(err)
	}
	snap, err := storage.UnmarshalSnapshot(data)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(filepath.Base(files[0]), snap.ID) {
		t.Errorf("file %s does not carry the snapshot id %s", files[0], snap.ID)
	}
}

func TestHost_RestoreResumesRecording(t *testing.T) {
	src := newService(t)
	spec := catalog.Hero.Spec(domain.V(100, 100))
	spec.Controller = "s1"
	spawn(t, src, spec)
	ticks(t, src, 3)
	snap := src.Snapshot()

	h := NewHost(newService(t), nil, nil)
	if err := h.Restore(snap); err != nil {
		t.Fatalf("Restore() error = %v", err)
	}
	if _, resumed, _ := h.RecordingStats(); !resumed {
		t.Error("recording after Restore should start from the snapshot")
	}

	hero, _ := h.Service.FindByController("s1")
	send(t, h, "s1", "MOVE", hero, `{"dx":-1,"dy":0}`)
	steps(t, h, 4)

	replay := NewHost(newService(t), nil, nil)
	if _, err := replay.Playback(h.Replay); err != nil {
		t.Fatalf("Playback() error = %v", err)
	}
	for replay.Service.CurrentTick() < h.Service.CurrentTick() {
		steps(t, replay, 1)
	}
	want, _ := h.Service.GetPosition(hero)
	got, _ := replay.Service.GetPosition(hero)
	if got != want {
		t.Errorf("position after snapshot playback = %+v, want %+v", got, want)
	}
}
