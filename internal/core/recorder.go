package core

import "time"

// EndReason tells why a pair was torn down.
type EndReason string

const (
	EndReasonLeft         EndReason = "left"
	EndReasonDisconnected EndReason = "disconnected"
	EndReasonShutdown     EndReason = "shutdown"
)

// PairRecord describes one pair session for observers.
type PairRecord struct {
	PairID    string
	FirstID   string
	SecondID  string
	StartedAt time.Time
	EndedAt   time.Time // zero while the pair is active
	Reason    EndReason
}

// PairRecorder observes pair lifecycle. Implementations are called from the
// hub goroutine and must not block.
type PairRecorder interface {
	PairStarted(rec PairRecord)
	PairEnded(rec PairRecord)
}

func recordOf(p *Pair) PairRecord {
	return PairRecord{
		PairID:    p.ID,
		FirstID:   p.First.ID,
		SecondID:  p.Second.ID,
		StartedAt: p.StartedAt,
	}
}
