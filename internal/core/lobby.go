package core

import (
	"math/rand/v2"
	"time"

	"github.com/rs/zerolog"

	"github.com/vovakirdan/strangerchat-server/internal/utils"
)

// Snapshot is a point-in-time view of the lobby counters.
type Snapshot struct {
	Online  int
	Waiting int
	Pairs   int
}

// Lobby holds the registry, the waiting pool and the pair table and applies
// every transition between them. It is not safe for concurrent use; Hub
// serializes access to it.
type Lobby struct {
	registry *Registry
	waiting  *WaitingPool
	pairs    *PairTable

	rng      *rand.Rand
	now      func() time.Time
	newID    func() string
	recorder PairRecorder
	log      *zerolog.Logger
}

// Option configures a Lobby (and the Hub that owns it).
type Option func(*Lobby)

// WithLogger sets the logger used for lifecycle tracing.
func WithLogger(logger *zerolog.Logger) Option {
	return func(l *Lobby) {
		if logger != nil {
			l.log = logger
		}
	}
}

// WithRand sets the random source used to pick waiting partners.
func WithRand(rng *rand.Rand) Option {
	return func(l *Lobby) {
		if rng != nil {
			l.rng = rng
		}
	}
}

// WithRecorder attaches an observer for pair start and end.
func WithRecorder(rec PairRecorder) Option {
	return func(l *Lobby) {
		l.recorder = rec
	}
}

// WithClock overrides the time source for pair timestamps.
func WithClock(now func() time.Time) Option {
	return func(l *Lobby) {
		if now != nil {
			l.now = now
		}
	}
}

// NewLobby creates an empty lobby.
func NewLobby(opts ...Option) *Lobby {
	nop := zerolog.Nop()
	l := &Lobby{
		registry: NewRegistry(),
		waiting:  NewWaitingPool(),
		pairs:    NewPairTable(),
		rng:      rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		now:      time.Now,
		newID:    utils.NewID,
		log:      &nop,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Connect registers a new live client and broadcasts the new online count.
func (l *Lobby) Connect(c *Client) error {
	if err := l.registry.Add(c); err != nil {
		return err
	}
	c.State = StateUnnamed
	l.log.Debug().Str("client_id", c.ID).Int("online", l.registry.Len()).Msg("client connected")
	l.broadcastCount()
	return nil
}

// Handle applies a client command.
func (l *Lobby) Handle(id string, cmd Command) {
	switch cmd.Kind {
	case CommandSetName:
		if err := l.SetName(id, cmd.Name); err != nil {
			l.log.Debug().Err(err).Str("client_id", id).Msg("set name rejected")
		}
	case CommandChat:
		l.Relay(id, cmd.Text)
	case CommandLeaveChat:
		l.Leave(id)
	default:
		l.log.Warn().Str("client_id", id).Int("kind", int(cmd.Kind)).Msg("unknown command kind")
	}
}

// Client returns a live client by id.
func (l *Lobby) Client(id string) (*Client, bool) {
	return l.registry.Get(id)
}

// Snapshot returns the current counters.
func (l *Lobby) Snapshot() Snapshot {
	return Snapshot{
		Online:  l.registry.Len(),
		Waiting: l.waiting.Len(),
		Pairs:   l.pairs.Len(),
	}
}

// Shutdown ends every pair and closes every client queue without notices.
func (l *Lobby) Shutdown() {
	var active []*Pair
	l.pairs.Each(func(p *Pair) { active = append(active, p) })
	for _, p := range active {
		l.endPair(p, EndReasonShutdown)
	}
	l.registry.Each(func(c *Client) {
		c.State = StateClosed
		close(c.Events)
	})
	l.registry = NewRegistry()
	l.waiting = NewWaitingPool()
}

// send delivers an event without blocking. Closed clients and full queues
// are skipped.
func (l *Lobby) send(c *Client, ev *Event) {
	if c.State == StateClosed {
		return
	}
	select {
	case c.Events <- ev:
	default:
		l.log.Debug().Str("client_id", c.ID).Int("kind", int(ev.Kind)).Msg("client queue full, event dropped")
	}
}

func infoEvent(text string) *Event {
	return &Event{Kind: EventInfo, Text: text}
}

func errorEvent(code string, err error) *Event {
	return &Event{Kind: EventError, Error: coreError(code, err.Error())}
}
