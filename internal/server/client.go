package server

import (
	"net/http"
	"time"

	"babayaga/internal/engine"
	"babayaga/pkg/api"
	"babayaga/pkg/logger"
	"babayaga/pkg/utils"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Client connects one websocket observer to the Host. Each connection is a
// new session; an actor spawned from it is controlled by that session.
type Client struct {
	Host    *engine.Host
	Conn    *websocket.Conn
	Session string
	Send    chan api.ServerMessage

	log *logrus.Entry
}

func NewClient(host *engine.Host, conn *websocket.Conn) *Client {
	session := utils.NewID()
	return &Client{
		Host:    host,
		Conn:    conn,
		Session: session,
		Send:    host.Hub.Register(session),
		log:     logger.For("ws").WithField("session", session),
	}
}

// greet sends the current zone and world state so the first frame can draw.
func (c *Client) greet() {
	svc := c.Host.Service
	tick := svc.CurrentTick()
	if l := svc.Layout(); l != nil {
		c.Host.Hub.SendTo(c.Session, api.ServerMessage{
			Type: api.MsgZone,
			Tick: tick,
			Zone: api.NewZoneView(l),
		})
	}
	c.Host.Hub.SendTo(c.Session, api.ServerMessage{
		Type:     api.MsgState,
		Tick:     tick,
		Entities: svc.Entities(),
	})
}

// readPump forwards commands from the socket to the Host.
func (c *Client) readPump() {
	defer func() {
		c.Host.Hub.Unregister(c.Session)
		if err := c.Conn.Close(); err != nil {
			c.log.WithError(err).Warn("failed to close websocket connection")
		}
		c.log.Info("observer disconnected")
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.log.WithError(err).Warn("failed to set read deadline")
	}
	c.Conn.SetPongHandler(func(string) error {
		if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			c.log.WithError(err).Warn("failed to set pong read deadline")
		}
		return nil
	})

	c.log.Info("observer connected")
	c.greet()

	for {
		var cmd api.ClientCommand
		if err := c.Conn.ReadJSON(&cmd); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.log.WithError(err).Error("read failed")
			}
			return
		}

		// A missing token means "my actor".
		if cmd.Token == "" {
			if id, ok := c.Host.Service.FindByController(c.Session); ok {
				cmd.Token = id.Wire()
			}
		}
		if err := c.Host.ProcessCommand(c.Session, cmd); err != nil {
			c.Host.Hub.SendTo(c.Session, api.ServerMessage{
				Type:  api.MsgError,
				Tick:  c.Host.Service.CurrentTick(),
				Error: err.Error(),
			})
		}
	}
}

// writePump drains the session channel to the socket and keeps it alive.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		if err := c.Conn.Close(); err != nil {
			c.log.WithError(err).Debug("failed to close websocket connection in writePump")
		}
	}()

	for {
		select {
		case message, ok := <-c.Send:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.log.WithError(err).Warn("failed to set write deadline")
			}
			if !ok {
				if err := c.Conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
					c.log.WithError(err).Debug("write close message failed")
				}
				return
			}
			if err := c.Conn.WriteJSON(message); err != nil {
				c.log.WithError(err).Debug("write json message failed")
				return
			}

		case <-ticker.C:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.log.WithError(err).Warn("failed to set ping write deadline")
			}
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.log.WithError(err).Debug("ping failed")
				return
			}
		}
	}
}
