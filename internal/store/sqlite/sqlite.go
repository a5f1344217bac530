package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/vovakirdan/strangerchat-server/internal/store"
)

// Schema creates the pair session ledger. Timestamps are unix milliseconds.
const Schema = `
CREATE TABLE IF NOT EXISTS pair_sessions (
	id               TEXT PRIMARY KEY,
	first_client_id  TEXT NOT NULL,
	second_client_id TEXT NOT NULL,
	started_at       INTEGER NOT NULL,
	ended_at         INTEGER,
	end_reason       TEXT
);

CREATE INDEX IF NOT EXISTS idx_pair_sessions_ended ON pair_sessions(ended_at);
`

// SQLiteStore implements store.Store for SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New opens (or creates) the database at dbPath and applies the schema.
func New(dbPath string) (*SQLiteStore, error) {
	return NewWithSetup(dbPath, func(db *sql.DB) error {
		_, err := db.Exec(Schema)
		return err
	})
}

// NewWithSetup creates a new SQLite store and runs a setup function.
// Useful for tests to apply schema to an in-memory database.
func NewWithSetup(dbPath string, setup func(*sql.DB) error) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// SQLite works best with a single connection; it also keeps ":memory:" on one database.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if setup != nil {
		if err := setup(db); err != nil {
			db.Close()
			return nil, fmt.Errorf("setup: %w", err)
		}
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreatePairSession inserts an active session.
func (s *SQLiteStore) CreatePairSession(ctx context.Context, ps *store.PairSession) error {
	query := `
		INSERT INTO pair_sessions (id, first_client_id, second_client_id, started_at)
		VALUES (?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query, ps.ID, ps.FirstClientID, ps.SecondClientID, ps.StartedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("insert pair session: %w", err)
	}
	return nil
}

// EndPairSession marks an active session as ended.
func (s *SQLiteStore) EndPairSession(ctx context.Context, id string, endedAt time.Time, reason string) error {
	query := `
		UPDATE pair_sessions
		SET ended_at = ?, end_reason = ?
		WHERE id = ? AND ended_at IS NULL
	`
	result, err := s.db.ExecContext(ctx, query, endedAt.UnixMilli(), reason, id)
	if err != nil {
		return fmt.Errorf("end pair session: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("active pair session %s: %w", id, store.ErrNotFound)
	}
	return nil
}

// GetPairSession retrieves a session by id.
func (s *SQLiteStore) GetPairSession(ctx context.Context, id string) (*store.PairSession, error) {
	query := `
		SELECT id, first_client_id, second_client_id, started_at, ended_at, end_reason
		FROM pair_sessions
		WHERE id = ?
	`
	var (
		ps        store.PairSession
		startedAt int64
		endedAt   sql.NullInt64
		reason    sql.NullString
	)
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&ps.ID,
		&ps.FirstClientID,
		&ps.SecondClientID,
		&startedAt,
		&endedAt,
		&reason,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("pair session %s: %w", id, store.ErrNotFound)
		}
		return nil, fmt.Errorf("query pair session: %w", err)
	}

	ps.StartedAt = time.UnixMilli(startedAt)
	if endedAt.Valid {
		t := time.UnixMilli(endedAt.Int64)
		ps.EndedAt = &t
	}
	if reason.Valid {
		r := reason.String
		ps.EndReason = &r
	}
	return &ps, nil
}

// CloseDanglingSessions ends every session still marked active.
func (s *SQLiteStore) CloseDanglingSessions(ctx context.Context, at time.Time, reason string) (int64, error) {
	query := `
		UPDATE pair_sessions
		SET ended_at = ?, end_reason = ?
		WHERE ended_at IS NULL
	`
	result, err := s.db.ExecContext(ctx, query, at.UnixMilli(), reason)
	if err != nil {
		return 0, fmt.Errorf("close dangling sessions: %w", err)
	}
	return result.RowsAffected()
}

// SessionStats returns aggregate counters.
func (s *SQLiteStore) SessionStats(ctx context.Context) (*store.SessionStats, error) {
	query := `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN ended_at IS NULL THEN 1 ELSE 0 END), 0),
			COALESCE(AVG(ended_at - started_at), 0)
		FROM pair_sessions
	`
	var (
		stats   store.SessionStats
		avgMsec float64
	)
	if err := s.db.QueryRowContext(ctx, query).Scan(&stats.Total, &stats.Active, &avgMsec); err != nil {
		return nil, fmt.Errorf("query session stats: %w", err)
	}
	stats.Ended = stats.Total - stats.Active
	stats.AvgDuration = time.Duration(avgMsec * float64(time.Millisecond))
	return &stats, nil
}

var _ store.Store = (*SQLiteStore)(nil)
