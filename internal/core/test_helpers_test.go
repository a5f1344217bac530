package core

import (
	"math/rand/v2"
	"sync"
	"testing"
	"time"
)

func mustEvent(t *testing.T, ch <-chan *Event, kind EventKind) *Event {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		select {
		case ev := <-ch:
			if ev == nil {
				continue
			}
			if ev.Kind == kind {
				return ev
			}
		default:
			time.Sleep(10 * time.Millisecond)
		}
	}
	t.Fatalf("expected event kind %v not received", kind)
	return nil
}

func newTestLobby(seed uint64, opts ...Option) *Lobby {
	opts = append([]Option{WithRand(rand.New(rand.NewPCG(seed, seed+1)))}, opts...)
	return NewLobby(opts...)
}

func connect(t *testing.T, l *Lobby, id string) *Client {
	t.Helper()

	c := NewClient(id, 64)
	if err := l.Connect(c); err != nil {
		t.Fatalf("connect %s: %v", id, err)
	}
	return c
}

// drain returns every event queued for the client without blocking.
func drain(c *Client) []*Event {
	var out []*Event
	for {
		select {
		case ev, ok := <-c.Events:
			if !ok {
				return out
			}
			out = append(out, ev)
		default:
			return out
		}
	}
}

func ofKind(events []*Event, kind EventKind) []*Event {
	var out []*Event
	for _, ev := range events {
		if ev.Kind == kind {
			out = append(out, ev)
		}
	}
	return out
}

// checkInvariants asserts that registry, waiting pool and pair table agree.
func checkInvariants(t *testing.T, l *Lobby) {
	t.Helper()

	seenInPairs := 0
	l.registry.Each(func(c *Client) {
		waiting := l.waiting.Contains(c.ID)
		pair := l.pairs.Find(c.ID)

		if waiting && pair != nil {
			t.Fatalf("client %s is both waiting and paired", c.ID)
		}
		switch c.State {
		case StateUnnamed:
			if waiting || pair != nil {
				t.Fatalf("unnamed client %s is tracked (waiting=%v paired=%v)", c.ID, waiting, pair != nil)
			}
		case StateWaiting:
			if !waiting {
				t.Fatalf("client %s in state waiting but not in pool", c.ID)
			}
		case StatePaired:
			if pair == nil {
				t.Fatalf("client %s in state paired but has no pair", c.ID)
			}
		default:
			t.Fatalf("live client %s in state %v", c.ID, c.State)
		}
		if pair != nil {
			seenInPairs++
			other := pair.Other(c.ID)
			if other == nil || other.ID == c.ID {
				t.Fatalf("pair %s has bad members", pair.ID)
			}
			if live, ok := l.registry.Get(other.ID); !ok || live != other {
				t.Fatalf("pair %s references dead client %s", pair.ID, other.ID)
			}
			if l.pairs.Find(other.ID) != pair {
				t.Fatalf("pair %s not indexed for both members", pair.ID)
			}
		}
	})

	if seenInPairs != 2*l.pairs.Len() {
		t.Fatalf("pair table count %d does not match %d paired clients", l.pairs.Len(), seenInPairs)
	}
	for _, c := range l.waiting.items {
		if _, ok := l.registry.Get(c.ID); !ok {
			t.Fatalf("waiting pool references dead client %s", c.ID)
		}
	}
}

type fakeRecorder struct {
	mu      sync.Mutex
	started []PairRecord
	ended   []PairRecord
}

func (r *fakeRecorder) PairStarted(rec PairRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.started = append(r.started, rec)
}

func (r *fakeRecorder) PairEnded(rec PairRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ended = append(r.ended, rec)
}
