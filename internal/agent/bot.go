package agent

import (
	"context"
	"encoding/json"
	"math/rand"

	"babayaga/internal/core/types"
	"babayaga/internal/core/types/enums"
	"babayaga/internal/domain"
	"babayaga/internal/engine"
	"babayaga/internal/systems"
	"babayaga/pkg/api"
	"babayaga/pkg/catalog"
	"babayaga/pkg/logger"
	"babayaga/pkg/utils"

	"github.com/sirupsen/logrus"
)

// Bot is a headless player. It subscribes to the hub like a websocket
// observer, spawns a hero controlled by its own session and, on every STATE
// message, runs the same decision AI enemies use and sends the result back
// as ordinary commands. Everything it does goes through Host.ProcessCommand,
// so bot sessions are recorded and replayed like human ones.
//
// Its wander rolls use a private RNG; the simulation stream is untouched.
type Bot struct {
	Session string
	Host    *engine.Host
	Inbox   chan api.ServerMessage

	// Template is the catalog actor spawned on Run.
	Template string

	actor types.EntityID
	brain *domain.Brain
	rng   *rand.Rand
	last  systems.IntentKind
	log   *logrus.Entry
}

// Brain tuning for bots; heroes carry no brain of their own.
const (
	botAggroRadius    = 320
	botAttackRange    = 40
	botWanderInterval = 1.5
)

func NewBot(host *engine.Host) *Bot {
	session := "bot-" + utils.NewID()
	return &Bot{
		Session:  session,
		Host:     host,
		Inbox:    host.Hub.Register(session),
		Template: catalog.Hero.ID,
		brain:    domain.NewBrain(botAggroRadius, botAttackRange, botWanderInterval),
		rng:      rand.New(rand.NewSource(utils.StringToSeed(session))),
		log:      logger.For("bot").WithField("session", session),
	}
}

// Run spawns the bot's actor and plays until ctx ends, the actor is
// defeated or the hub closes the inbox.
func (b *Bot) Run(ctx context.Context) {
	defer b.Host.Hub.Unregister(b.Session)

	b.send(domain.ActionSpawnActor, api.SpawnActorPayload{
		Template:   b.Template,
		Controller: b.Session,
	})

	for {
		select {
		case <-ctx.Done():
			b.log.Info("bot stopped")
			return
		case msg, ok := <-b.Inbox:
			if !ok {
				return
			}
			if !b.handle(msg) {
				b.log.WithField("tick", msg.Tick).Info("bot actor gone, shutting down")
				return
			}
		}
	}
}

// handle reacts to one message; false ends the bot.
func (b *Bot) handle(msg api.ServerMessage) bool {
	switch msg.Type {
	case api.MsgError:
		b.log.WithField("error", msg.Error).Warn("command rejected")
		return true
	case api.MsgState:
	default:
		return true
	}

	if b.actor.IsNil() {
		if msg.MyEntityID == "" {
			return true
		}
		id, err := types.ParseEntityID(msg.MyEntityID)
		if err != nil {
			b.log.WithError(err).Error("bad entity id in STATE")
			return false
		}
		b.actor = id
		b.log.WithField("actor", id).Info("bot actor spawned")
	}

	dt := b.Host.Service.Config().Dt() * float32(b.Host.StateEvery)
	in, alive := b.think(dt)
	if !alive {
		return false
	}
	b.act(in)
	return true
}

// think runs the decision AI against the live world.
func (b *Bot) think(dt float32) (systems.Intent, bool) {
	var in systems.Intent
	alive := false
	b.Host.Service.View(func(c *systems.Context) {
		e, ok := c.World.Get(b.actor)
		if !ok || !c.World.Alive(b.actor) || e.IsDefeated() {
			return
		}
		alive = true
		local := *c
		local.Rng = b.rng
		in = systems.Decide(&local, e, b.brain, dt)
	})
	return in, alive
}

func (b *Bot) act(in systems.Intent) {
	switch in.Kind {
	case systems.IntentMove:
		b.send(domain.ActionMove, api.DirectionPayload{Dx: in.Dir.X, Dy: in.Dir.Y})
	case systems.IntentAttack:
		b.send(domain.ActionUseEquipment, api.UseEquipmentPayload{
			Slot: enums.SlotMainhand.String(),
			Aim:  &api.Point{X: in.Dir.X, Y: in.Dir.Y},
		})
	case systems.IntentStop:
		// Repeated stops carry no information.
		if b.last != systems.IntentStop {
			b.send(domain.ActionStop, nil)
		}
	}
	if in.Kind != systems.IntentNone {
		b.last = in.Kind
	}
}

func (b *Bot) send(action domain.ActionType, payload any) {
	cmd := api.ClientCommand{
		Action: action.String(),
		Token:  b.actor.Wire(),
	}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			b.log.WithError(err).Error("marshal payload")
			return
		}
		cmd.Payload = raw
	}
	if err := b.Host.ProcessCommand(b.Session, cmd); err != nil {
		b.log.WithError(err).WithField("action", action).Warn("command not queued")
	}
}
