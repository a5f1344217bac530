package core

import "fmt"

const (
	waitingNotice             = "Waiting for a stranger to join..."
	partnerLeftNotice         = "Your partner left. Waiting for a new user..."
	partnerDisconnectedNotice = "Your partner disconnected. Waiting for a new user..."
	selfLeftNotice            = "You left the chat. Waiting for a new user..."
)

// SetName records the display name of an unnamed client and enters it into
// matchmaking. A client that is already waiting or paired keeps its place;
// the new name is stored and the request is answered with an error event.
func (l *Lobby) SetName(id, name string) error {
	c, ok := l.registry.Get(id)
	if !ok {
		return ErrUnknownClient
	}
	c.Name = name

	switch c.State {
	case StateWaiting:
		l.send(c, errorEvent(ErrCodeAlreadyWaiting, ErrAlreadyWaiting))
		return ErrAlreadyWaiting
	case StatePaired:
		l.send(c, errorEvent(ErrCodeAlreadyPaired, ErrAlreadyPaired))
		return ErrAlreadyPaired
	}

	l.log.Debug().Str("client_id", id).Str("name", name).Msg("client named")
	l.send(c, infoEvent(fmt.Sprintf("Welcome %s! Waiting for a partner...", name)))
	l.TryPair(c)
	return nil
}

// TryPair pairs c with a random waiting client, or parks it in the pool.
func (l *Lobby) TryPair(c *Client) {
	if !l.match(c) {
		l.send(c, infoEvent(waitingNotice))
	}
}

// requeue returns a client whose pair ended to the waiting pool. It is not
// matched here; the next named client may pick it.
func (l *Lobby) requeue(c *Client, notice string) {
	l.park(c)
	l.send(c, infoEvent(notice))
}

func (l *Lobby) park(c *Client) {
	l.waiting.Add(c)
	c.State = StateWaiting
	l.log.Debug().Str("client_id", c.ID).Int("waiting", l.waiting.Len()).Msg("client waiting")
}

// match pairs c with a uniformly random waiting client. With no candidate c
// enters the waiting pool. Reports whether a pair was formed.
func (l *Lobby) match(c *Client) bool {
	partner := l.waiting.PickRandom(l.rng, c.ID)
	if partner == nil {
		l.park(c)
		return false
	}

	pair := &Pair{
		ID:        l.newID(),
		First:     partner,
		Second:    c,
		StartedAt: l.now(),
	}
	if !l.pairs.Add(pair) {
		// partner came from the pool, so neither side can be paired already
		l.log.Error().Str("client_id", c.ID).Str("partner_id", partner.ID).Msg("pair rejected by table")
		l.park(c)
		return false
	}
	l.waiting.Remove(partner.ID)
	partner.State = StatePaired
	c.State = StatePaired

	l.log.Debug().
		Str("pair_id", pair.ID).
		Str("first_id", partner.ID).
		Str("second_id", c.ID).
		Msg("pair formed")

	l.send(c, &Event{Kind: EventPartner, Text: "Partner connected: " + partner.Name})
	l.send(partner, &Event{Kind: EventPartner, Text: "Partner connected: " + c.Name})

	if l.recorder != nil {
		l.recorder.PairStarted(recordOf(pair))
	}
	return true
}
