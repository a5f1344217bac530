package core

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

type opKind int

const (
	opRegister opKind = iota
	opUnregister
	opCommand
	opSnapshot
)

type op struct {
	kind   opKind
	client *Client
	cmd    Command
	reply  chan Snapshot
}

// Hub serializes every lobby mutation through a single goroutine.
// Connects, commands and disconnects are applied in the order they were
// submitted.
type Hub struct {
	lobby *Lobby
	ops   chan op
	done  chan struct{}
	log   *zerolog.Logger

	// mu keeps senders out of ops while the hub drains it on stop.
	mu     sync.RWMutex
	closed bool
}

// NewHub creates a new hub with an empty lobby.
func NewHub(opts ...Option) *Hub {
	lobby := NewLobby(opts...)
	return &Hub{
		lobby: lobby,
		ops:   make(chan op, 64),
		done:  make(chan struct{}),
		log:   lobby.log,
	}
}

// Run processes operations until ctx is cancelled. On exit every pair is
// ended and every client queue is closed, including clients whose
// registration was still queued.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.stop()
			return
		case o := <-h.ops:
			h.apply(o)
		}
	}
}

func (h *Hub) stop() {
	close(h.done)

	h.mu.Lock()
	h.closed = true
	h.mu.Unlock()

	dropped := 0
drain:
	for {
		select {
		case o := <-h.ops:
			if o.kind == opRegister {
				o.client.State = StateClosed
				close(o.client.Events)
			}
			dropped++
		default:
			break drain
		}
	}

	h.lobby.Shutdown()
	h.log.Info().Int("dropped_ops", dropped).Msg("hub stopped")
}

func (h *Hub) apply(o op) {
	switch o.kind {
	case opRegister:
		if err := h.lobby.Connect(o.client); err != nil {
			h.log.Warn().Err(err).Str("client_id", o.client.ID).Msg("register client")
		}
	case opUnregister:
		h.lobby.Disconnect(o.client.ID)
	case opCommand:
		h.lobby.Handle(o.client.ID, o.cmd)
	case opSnapshot:
		o.reply <- h.lobby.Snapshot()
	}
}

func (h *Hub) enqueue(o op) error {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.closed {
		return ErrHubStopped
	}
	select {
	case h.ops <- o:
		return nil
	case <-h.done:
		return ErrHubStopped
	}
}

// RegisterClient adds a freshly connected client.
func (h *Hub) RegisterClient(c *Client) error {
	return h.enqueue(op{kind: opRegister, client: c})
}

// UnregisterClient removes a client whose connection closed.
func (h *Hub) UnregisterClient(c *Client) error {
	return h.enqueue(op{kind: opUnregister, client: c})
}

// Submit queues a command from the client.
func (h *Hub) Submit(c *Client, cmd Command) error {
	return h.enqueue(op{kind: opCommand, client: c, cmd: cmd})
}

// Snapshot returns the lobby counters as seen by the hub goroutine.
func (h *Hub) Snapshot(ctx context.Context) (Snapshot, error) {
	if h.stopped() {
		return Snapshot{}, ErrHubStopped
	}
	reply := make(chan Snapshot, 1)
	select {
	case h.ops <- op{kind: opSnapshot, reply: reply}:
	case <-h.done:
		return Snapshot{}, ErrHubStopped
	case <-ctx.Done():
		return Snapshot{}, ctx.Err()
	}

	select {
	case s := <-reply:
		return s, nil
	case <-h.done:
		return Snapshot{}, ErrHubStopped
	case <-ctx.Done():
		return Snapshot{}, ctx.Err()
	}
}

func (h *Hub) stopped() bool {
	select {
	case <-h.done:
		return true
	default:
		return false
	}
}
