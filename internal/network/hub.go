package network

import (
	"sync"

	"babayaga/pkg/api"
	"babayaga/pkg/logger"
)

// Broadcaster fans outbound messages out to observer sessions. A slow
// session drops messages instead of stalling the tick loop.
type Broadcaster struct {
	mu sync.RWMutex
	// session id -> personal channel
	subscribers map[string]chan api.ServerMessage
}

const sessionBuffer = 256

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[string]chan api.ServerMessage),
	}
}

// Register opens a channel for session, closing any previous one.
func (b *Broadcaster) Register(session string) chan api.ServerMessage {
	b.mu.Lock()
	defer b.mu.Unlock()

	if old, ok := b.subscribers[session]; ok {
		close(old)
	}

	ch := make(chan api.ServerMessage, sessionBuffer)
	b.subscribers[session] = ch
	return ch
}

func (b *Broadcaster) Unregister(session string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ch, ok := b.subscribers[session]; ok {
		close(ch)
		delete(b.subscribers, session)
	}
}

// SendTo delivers msg to one session.
func (b *Broadcaster) SendTo(session string, msg api.ServerMessage) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if ch, ok := b.subscribers[session]; ok {
		select {
		case ch <- msg:
		default:
			logger.For("hub").WithField("session", session).Debug("channel full, message dropped")
		}
	}
}

// Broadcast delivers msg to every session. build may personalise it.
func (b *Broadcaster) Broadcast(msg api.ServerMessage, build func(session string, msg api.ServerMessage) api.ServerMessage) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for session, ch := range b.subscribers {
		out := msg
		if build != nil {
			out = build(session, msg)
		}
		select {
		case ch <- out:
		default:
		}
	}
}

func (b *Broadcaster) HasSubscriber(session string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.subscribers[session]
	return ok
}

func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}
