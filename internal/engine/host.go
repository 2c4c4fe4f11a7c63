package engine

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"babayaga/internal/core/types"
	"babayaga/internal/domain"
	"babayaga/internal/engine/handlers"
	"babayaga/internal/engine/handlers/actions"
	"babayaga/internal/infrastructure/storage"
	"babayaga/internal/network"
	"babayaga/pkg/api"
	"babayaga/pkg/logger"

	"github.com/sirupsen/logrus"
)

// SessionCommand is a parsed command and the session it came from.
type SessionCommand struct {
	Session string
	Cmd     domain.InternalCommand
}

// Host drives a Service at the configured tick rate. Commands from
// observers and bots are queued, executed in arrival order right before the
// next tick, and recorded for replay.
type Host struct {
	Service     *Service
	CommandChan chan SessionCommand
	Hub         *network.Broadcaster
	Snapshots   *storage.SnapshotStore

	// Replay holds every accepted command since the recording started.
	// Read it directly only while the tick loop is stopped.
	Replay *domain.ReplaySession
	mu     sync.Mutex

	// StateEvery is the STATE broadcast period in ticks.
	StateEvery uint64

	handlers map[domain.ActionType]handlers.HandlerFunc
	log      *logrus.Entry
}

func NewHost(svc *Service, hub *network.Broadcaster, snapshots *storage.SnapshotStore) *Host {
	h := &Host{
		Service:     svc,
		CommandChan: make(chan SessionCommand, 256),
		Hub:         hub,
		Snapshots:   snapshots,
		StateEvery:  uint64(max(1, svc.Config().TickRate/10)),
		handlers:    make(map[domain.ActionType]handlers.HandlerFunc),
		log:         logger.For("host"),
	}
	h.Replay = h.newRecording(nil)
	h.registerHandlers()
	return h
}

func (h *Host) newRecording(snapshot []byte) *domain.ReplaySession {
	return &domain.ReplaySession{
		Seed:      h.Service.Config().Seed,
		Timestamp: time.Now().Unix(),
		Snapshot:  snapshot,
		Actions:   make([]domain.ReplayAction, 0),
	}
}

func (h *Host) registerHandlers() {
	actor := handlers.RequireActor

	h.handlers[domain.ActionSpawnActor] = handlers.WithPayload(actions.HandleSpawnActor)
	h.handlers[domain.ActionUseEquipment] = actor(handlers.WithPayload(actions.HandleUseEquipment))
	h.handlers[domain.ActionUseItem] = actor(handlers.WithPayload(actions.HandleUseItem))
	h.handlers[domain.ActionMove] = actor(handlers.WithPayload(actions.HandleMove))
	h.handlers[domain.ActionStop] = actor(handlers.WithEmptyPayload(actions.HandleStop))
	h.handlers[domain.ActionInteract] = actor(handlers.WithEmptyPayload(actions.HandleInteract))
	h.handlers[domain.ActionApplyEffect] = handlers.WithPayload(actions.HandleApplyEffect)
	h.handlers[domain.ActionEquip] = actor(handlers.WithPayload(actions.HandleEquip))
	h.handlers[domain.ActionUnequip] = actor(handlers.WithPayload(actions.HandleUnequip))
	h.handlers[domain.ActionGenerateZone] = handlers.WithPayload(actions.HandleGenerateZone)
	h.handlers[domain.ActionSnapshot] = handlers.WithEmptyPayload(h.handleSnapshot)
}

func (h *Host) handleSnapshot(_ handlers.Context) (handlers.Result, error) {
	if h.Snapshots == nil {
		return handlers.EmptyResult(), domain.Precondition("no snapshot store configured")
	}
	snap := h.Service.Snapshot()
	path, err := h.Snapshots.Save(snap)
	if err != nil {
		return handlers.EmptyResult(), err
	}
	return handlers.Result{Msg: fmt.Sprintf("snapshot %s saved to %s", snap.ID, path), MsgType: "INFO"}, nil
}

// ProcessCommand parses a client command and queues it for the next tick.
func (h *Host) ProcessCommand(session string, cmd api.ClientCommand) error {
	action := domain.ParseAction(cmd.Action)
	if action == domain.ActionUnknown {
		return fmt.Errorf("unknown action %q", cmd.Action)
	}
	token, err := types.ParseEntityID(cmd.Token)
	if err != nil {
		return err
	}

	h.CommandChan <- SessionCommand{
		Session: session,
		Cmd: domain.InternalCommand{
			Action:  action,
			Token:   token,
			Payload: cmd.Payload,
		},
	}
	return nil
}

// Step executes queued commands, advances one tick and publishes the
// outcome. A tick error is returned after publishing.
func (h *Host) Step() error {
	next := h.Service.CurrentTick() + 1

drain:
	for {
		select {
		case sc := <-h.CommandChan:
			h.execute(sc.Session, sc.Cmd, next)
		default:
			break drain
		}
	}

	return h.advance()
}

func (h *Host) advance() error {
	err := h.Service.Tick(0)
	h.publish()
	return err
}

// Run steps at the configured rate until ctx is done.
func (h *Host) Run(ctx context.Context) error {
	ticker := time.NewTicker(h.Service.Config().TickInterval())
	defer ticker.Stop()

	h.log.WithField("interval", h.Service.Config().TickInterval()).Info("tick loop started")
	for {
		select {
		case <-ctx.Done():
			h.log.WithField("tick", h.Service.CurrentTick()).Info("tick loop stopped")
			return ctx.Err()
		case <-ticker.C:
			if err := h.Step(); err != nil {
				h.log.WithError(err).Error("tick failed")
			}
		}
	}
}

// execute runs one command. Accepted commands are recorded at tick, the
// tick they take effect in.
func (h *Host) execute(session string, cmd domain.InternalCommand, tick uint64) {
	log := h.log.WithFields(logrus.Fields{
		"action":  cmd.Action,
		"token":   cmd.Token,
		"session": session,
	})

	handler, ok := h.handlers[cmd.Action]
	if !ok {
		log.Warn("no handler")
		return
	}

	ctx := handlers.Context{Game: h.Service, Actor: cmd.Token, Session: session}
	result, err := handler(ctx, cmd.Payload)
	if err != nil {
		log.WithError(err).Info("command rejected")
		if session != "" && h.Hub != nil {
			h.Hub.SendTo(session, api.ServerMessage{
				Type:  api.MsgError,
				Tick:  tick - 1,
				Error: fmt.Sprintf("%s: %v", cmd.Action, err),
			})
		}
		return
	}

	h.mu.Lock()
	if h.Replay != nil {
		h.Replay.Record(tick, cmd)
	}
	h.mu.Unlock()
	if result.Msg != "" {
		log.WithField("msg_type", result.MsgType).Info(result.Msg)
	}
	if h.Hub == nil {
		return
	}
	if result.Zone != nil {
		h.Hub.Broadcast(api.ServerMessage{
			Type: api.MsgZone,
			Tick: tick - 1,
			Zone: api.NewZoneView(result.Zone),
		}, nil)
	}
	if !result.Spawned.IsNil() && session != "" {
		h.Hub.SendTo(session, api.ServerMessage{
			Type:       api.MsgState,
			Tick:       tick - 1,
			MyEntityID: idString(result.Spawned),
			Entities:   h.Service.Entities(),
		})
	}
}

func (h *Host) publish() {
	evs := h.Service.DrainEvents()
	if h.Hub == nil {
		return
	}
	tick := h.Service.CurrentTick()

	if len(evs) > 0 {
		h.Hub.Broadcast(api.ServerMessage{
			Type:   api.MsgEvents,
			Tick:   tick,
			Events: EventViews(evs),
		}, nil)
	}

	if h.Hub.SubscriberCount() == 0 || tick%h.StateEvery != 0 {
		return
	}
	state := api.ServerMessage{
		Type:     api.MsgState,
		Tick:     tick,
		Entities: h.Service.Entities(),
	}
	h.Hub.Broadcast(state, func(session string, msg api.ServerMessage) api.ServerMessage {
		if id, ok := h.Service.FindByController(session); ok {
			msg.MyEntityID = idString(id)
		}
		return msg
	})
}

// Restore loads snap and restarts the recording from it.
func (h *Host) Restore(snap *storage.Snapshot) error {
	data, err := snap.Marshal()
	if err != nil {
		return err
	}
	if err := h.Service.Restore(snap); err != nil {
		return err
	}
	h.mu.Lock()
	h.Replay = h.newRecording(data)
	h.mu.Unlock()
	return nil
}

// RecordingStats reports the running recording: the number of commands so
// far and whether it starts from a snapshot. ok is false when not recording.
func (h *Host) RecordingStats() (actions int, resumed, ok bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.Replay == nil {
		return 0, false, false
	}
	return len(h.Replay.Actions), len(h.Replay.Snapshot) > 0, true
}

// Playback re-executes a recording headless. The Service must be fresh and
// configured with the recording's seed. It returns the number of commands
// replayed.
func (h *Host) Playback(rec *domain.ReplaySession) (int, error) {
	if len(rec.Snapshot) > 0 {
		snap, err := storage.UnmarshalSnapshot(rec.Snapshot)
		if err != nil {
			return 0, err
		}
		if err := h.Service.Restore(snap); err != nil {
			return 0, err
		}
	}

	acts := append([]domain.ReplayAction(nil), rec.Actions...)
	sort.SliceStable(acts, func(i, j int) bool { return acts[i].Tick < acts[j].Tick })

	h.mu.Lock()
	h.Replay = nil
	h.mu.Unlock()
	for i, a := range acts {
		for h.Service.CurrentTick()+1 < a.Tick {
			if err := h.advance(); err != nil {
				return i, err
			}
		}
		h.execute("", domain.InternalCommand{Action: a.Action, Token: a.Token, Payload: a.Payload}, a.Tick)
	}
	if len(acts) > 0 {
		if err := h.advance(); err != nil {
			return len(acts), err
		}
	}

	h.log.WithFields(logrus.Fields{
		"actions": len(acts),
		"tick":    h.Service.CurrentTick(),
	}).Info("playback finished")
	return len(acts), nil
}
