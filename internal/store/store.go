package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a session does not exist or is already closed.
var ErrNotFound = errors.New("not found")

// PairSession is the persisted metadata of one pairing. It never holds
// display names or message text.
type PairSession struct {
	ID             string
	FirstClientID  string
	SecondClientID string
	StartedAt      time.Time
	EndedAt        *time.Time // nil while active
	EndReason      *string
}

// SessionStats aggregates the ledger.
type SessionStats struct {
	Total       int64
	Active      int64
	Ended       int64
	AvgDuration time.Duration // over ended sessions
}

// SessionStore handles pair session persistence.
type SessionStore interface {
	// CreatePairSession inserts an active session.
	CreatePairSession(ctx context.Context, s *PairSession) error

	// EndPairSession marks an active session as ended.
	// Returns ErrNotFound if there is no active session with that id.
	EndPairSession(ctx context.Context, id string, endedAt time.Time, reason string) error

	// GetPairSession retrieves a session by id.
	GetPairSession(ctx context.Context, id string) (*PairSession, error)

	// CloseDanglingSessions ends every session still marked active, e.g. after a crash.
	CloseDanglingSessions(ctx context.Context, at time.Time, reason string) (int64, error)

	// SessionStats returns aggregate counters.
	SessionStats(ctx context.Context) (*SessionStats, error)
}

// Store aggregates all storage interfaces.
type Store interface {
	SessionStore

	// Close closes the underlying database connection.
	Close() error
}
