package http

import (
	stdhttp "net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// LoggerMiddleware logs one line per request. Server errors log at error,
// client errors at warn, health probes at debug. A /ws request is logged
// when its connection ends, so its duration is the session length.
func LoggerMiddleware(logger *zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := c.Writer.Status()
		path := c.Request.URL.Path

		var event *zerolog.Event
		switch {
		case status >= stdhttp.StatusInternalServerError:
			event = logger.Error()
		case status >= stdhttp.StatusBadRequest:
			event = logger.Warn()
		case path == "/health":
			event = logger.Debug()
		default:
			event = logger.Info()
		}

		msg := "http request"
		if status == stdhttp.StatusSwitchingProtocols {
			msg = "ws session ended"
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", status).
			Str("remote", c.ClientIP()).
			Dur("duration", time.Since(start)).
			Msg(msg)
	}
}
