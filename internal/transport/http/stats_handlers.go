package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/strangerchat-server/internal/core"
	"github.com/vovakirdan/strangerchat-server/internal/store"
)

// StatsHandlers serves lobby and ledger counters.
type StatsHandlers struct {
	hub      *core.Hub
	sessions store.SessionStore
	log      *zerolog.Logger
}

// NewStatsHandlers creates a new stats handlers instance.
func NewStatsHandlers(hub *core.Hub, sessions store.SessionStore, logger *zerolog.Logger) *StatsHandlers {
	return &StatsHandlers{
		hub:      hub,
		sessions: sessions,
		log:      logger,
	}
}

// ErrorResponse represents an error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatsResponse is the body of GET /api/stats.
type StatsResponse struct {
	Online   int                   `json:"online"`
	Waiting  int                   `json:"waiting"`
	Pairs    int                   `json:"pairs"`
	Sessions *SessionStatsResponse `json:"sessions,omitempty"`
}

// SessionStatsResponse summarizes the pair session ledger.
type SessionStatsResponse struct {
	Total              int64   `json:"total"`
	Active             int64   `json:"active"`
	Ended              int64   `json:"ended"`
	AvgDurationSeconds float64 `json:"avg_duration_seconds"`
}

// GetStats returns live counters and, when enabled, ledger totals.
// GET /api/stats
func (h *StatsHandlers) GetStats(c *gin.Context) {
	ctx := c.Request.Context()

	snap, err := h.hub.Snapshot(ctx)
	if err != nil {
		h.log.Warn().Err(err).Msg("hub snapshot")
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "chat hub unavailable"})
		return
	}

	resp := StatsResponse{
		Online:  snap.Online,
		Waiting: snap.Waiting,
		Pairs:   snap.Pairs,
	}

	if h.sessions != nil {
		stats, err := h.sessions.SessionStats(ctx)
		if err != nil {
			h.log.Error().Err(err).Msg("failed to load session stats")
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
			return
		}
		resp.Sessions = &SessionStatsResponse{
			Total:              stats.Total,
			Active:             stats.Active,
			Ended:              stats.Ended,
			AvgDurationSeconds: stats.AvgDuration.Seconds(),
		}
	}

	c.JSON(http.StatusOK, resp)
}
