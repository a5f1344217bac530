package app

import (
	"context"
	"fmt"
	stdhttp "net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/vovakirdan/strangerchat-server/internal/config"
	"github.com/vovakirdan/strangerchat-server/internal/core"
	applog "github.com/vovakirdan/strangerchat-server/internal/log"
	"github.com/vovakirdan/strangerchat-server/internal/store"
	"github.com/vovakirdan/strangerchat-server/internal/store/sqlite"
	transporthttp "github.com/vovakirdan/strangerchat-server/internal/transport/http"
)

// App wires together core and transport layers.
type App struct {
	server          *stdhttp.Server
	shutdownTimeout time.Duration
	hub             *core.Hub
	store           store.Store // nil when the ledger is disabled
	recorder        *store.Recorder
	log             *zerolog.Logger
}

// New constructs the application with provided configuration.
func New(cfg *config.Config, logger *zerolog.Logger) (*App, error) {
	a := &App{
		shutdownTimeout: cfg.ShutdownTimeout,
		log:             logger,
	}

	opts := []core.Option{core.WithLogger(applog.Component(logger, "hub"))}
	var sessions store.SessionStore

	if cfg.DatabasePath != "" {
		st, err := sqlite.New(cfg.DatabasePath)
		if err != nil {
			return nil, fmt.Errorf("init store: %w", err)
		}
		closed, err := st.CloseDanglingSessions(context.Background(), time.Now(), "restart")
		if err != nil {
			_ = st.Close()
			return nil, fmt.Errorf("close dangling sessions: %w", err)
		}
		logger.Info().Str("db_path", cfg.DatabasePath).Int64("closed_sessions", closed).Msg("session ledger initialized")

		a.store = st
		a.recorder = store.NewRecorder(st, applog.Component(logger, "recorder"), 0)
		sessions = st
		opts = append(opts, core.WithRecorder(a.recorder))
	}

	a.hub = core.NewHub(opts...)
	a.server = transporthttp.NewServer(a.hub, sessions, cfg, applog.Component(logger, "http"))
	return a, nil
}

// Run starts the HTTP server and blocks until context cancellation or fatal error.
func (a *App) Run(ctx context.Context) error {
	serverErr := make(chan error, 1)

	recorderCtx, stopRecorder := context.WithCancel(context.Background())
	defer stopRecorder()
	if a.recorder != nil {
		go a.recorder.Run(recorderCtx)
	}

	hubCtx, stopHub := context.WithCancel(ctx)
	defer stopHub()
	hubDone := make(chan struct{})
	go func() {
		a.hub.Run(hubCtx)
		close(hubDone)
	}()

	go func() {
		a.log.Info().Str("addr", a.server.Addr).Msg("http server listening")
		if err := a.server.ListenAndServe(); err != nil && err != stdhttp.ErrServerClosed {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	select {
	case err := <-serverErr:
		stopHub()
		<-hubDone
		a.cleanup(stopRecorder)
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
		defer cancel()

		a.log.Info().Msg("shutting down http server")
		shutdownErr := a.server.Shutdown(shutdownCtx)
		<-hubDone
		a.cleanup(stopRecorder)
		if shutdownErr != nil {
			return shutdownErr
		}
		return <-serverErr
	}
}

// cleanup flushes the recorder and closes the database. The hub must have
// stopped so that its final pair records are already queued.
func (a *App) cleanup(stopRecorder context.CancelFunc) {
	if a.recorder != nil {
		stopRecorder()
		<-a.recorder.Done()
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.log.Warn().Err(err).Msg("failed to close store")
		} else {
			a.log.Info().Msg("store closed")
		}
	}
}
