package core

// Leave ends the sender's current pair and puts both members back in the
// waiting pool, partner first. Without a pair this is a no-op.
func (l *Lobby) Leave(id string) {
	pair := l.pairs.Find(id)
	if pair == nil {
		l.log.Debug().Str("client_id", id).Msg("leave without partner ignored")
		return
	}
	partner := pair.Other(id)
	leaver := pair.Other(partner.ID)

	l.endPair(pair, EndReasonLeft)

	if partner.State != StateClosed {
		l.requeue(partner, partnerLeftNotice)
	}
	l.requeue(leaver, selfLeftNotice)
}

// Disconnect removes a closed connection from every collection. A surviving
// partner is put back in the waiting pool and notified. Unknown ids are ignored.
func (l *Lobby) Disconnect(id string) {
	c, ok := l.registry.Get(id)
	if !ok {
		return
	}

	c.State = StateClosed
	if pair := l.pairs.Find(id); pair != nil {
		l.endPair(pair, EndReasonDisconnected)
		if partner := pair.Other(id); partner.State != StateClosed {
			l.requeue(partner, partnerDisconnectedNotice)
		}
	}

	l.waiting.Remove(id)
	l.registry.Remove(id)
	close(c.Events)

	l.log.Debug().Str("client_id", id).Int("online", l.registry.Len()).Msg("client disconnected")
	l.broadcastCount()
}

func (l *Lobby) endPair(p *Pair, reason EndReason) {
	if !l.pairs.Remove(p) {
		return
	}
	l.log.Debug().Str("pair_id", p.ID).Str("reason", string(reason)).Msg("pair ended")
	if l.recorder != nil {
		rec := recordOf(p)
		rec.EndedAt = l.now()
		rec.Reason = reason
		l.recorder.PairEnded(rec)
	}
}
