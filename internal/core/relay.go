package core

// Relay forwards text from the sender to its partner, tagged with the
// sender's current name. Without an active pair, or with a closed partner,
// the message is dropped silently.
func (l *Lobby) Relay(senderID, text string) {
	pair := l.pairs.Find(senderID)
	if pair == nil {
		l.log.Debug().Str("client_id", senderID).Msg("chat without partner dropped")
		return
	}
	partner := pair.Other(senderID)
	sender := pair.Other(partner.ID)
	if partner.State == StateClosed {
		return
	}
	l.send(partner, &Event{Kind: EventChat, From: sender.Name, Text: text})
}
