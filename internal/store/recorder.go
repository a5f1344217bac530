package store

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/vovakirdan/strangerchat-server/internal/core"
)

const writeTimeout = 2 * time.Second

type recordOp struct {
	started bool
	rec     core.PairRecord
}

// Recorder writes pair lifecycle records to a SessionStore from its own
// goroutine. It implements core.PairRecorder: calls never block, and records
// that do not fit in the queue are dropped with a warning.
type Recorder struct {
	store SessionStore
	queue chan recordOp
	done  chan struct{}
	log   *zerolog.Logger
}

// NewRecorder creates a recorder with a queue of the given size.
func NewRecorder(st SessionStore, logger *zerolog.Logger, buffer int) *Recorder {
	if buffer <= 0 {
		buffer = 256
	}
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Recorder{
		store: st,
		queue: make(chan recordOp, buffer),
		done:  make(chan struct{}),
		log:   logger,
	}
}

// PairStarted queues a session insert.
func (r *Recorder) PairStarted(rec core.PairRecord) {
	r.push(recordOp{started: true, rec: rec})
}

// PairEnded queues a session close.
func (r *Recorder) PairEnded(rec core.PairRecord) {
	r.push(recordOp{rec: rec})
}

func (r *Recorder) push(op recordOp) {
	select {
	case r.queue <- op:
	default:
		r.log.Warn().Str("pair_id", op.rec.PairID).Bool("started", op.started).Msg("recorder queue full, record dropped")
	}
}

// Run writes queued records until ctx is cancelled, then flushes what is
// left in the queue and closes Done.
func (r *Recorder) Run(ctx context.Context) {
	defer close(r.done)

	for {
		select {
		case op := <-r.queue:
			r.write(op)
		case <-ctx.Done():
			for {
				select {
				case op := <-r.queue:
					r.write(op)
				default:
					return
				}
			}
		}
	}
}

// Done is closed once Run has returned.
func (r *Recorder) Done() <-chan struct{} {
	return r.done
}

func (r *Recorder) write(op recordOp) {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	var err error
	if op.started {
		err = r.store.CreatePairSession(ctx, &PairSession{
			ID:             op.rec.PairID,
			FirstClientID:  op.rec.FirstID,
			SecondClientID: op.rec.SecondID,
			StartedAt:      op.rec.StartedAt,
		})
	} else {
		err = r.store.EndPairSession(ctx, op.rec.PairID, op.rec.EndedAt, string(op.rec.Reason))
	}
	if err != nil {
		r.log.Warn().Err(err).Str("pair_id", op.rec.PairID).Bool("started", op.started).Msg("record pair session")
	}
}

var _ core.PairRecorder = (*Recorder)(nil)
