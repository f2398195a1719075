package http

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/folio/internal/logging"
	"github.com/mrlokans/folio/internal/metrics"
)

// RequestLogger logs one structured line per request and records the request
// metrics. The route template, not the raw path, is used as the metric label.
func RequestLogger() gin.HandlerFunc {
	log := logging.With("http")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		elapsed := time.Since(start)
		status := c.Writer.Status()
		route := c.FullPath()
		metrics.RecordAPIRequest(c.Request.Method, route, status, elapsed)

		event := log.Info()
		switch {
		case status >= 500:
			event = log.Error()
		case status >= 400:
			event = log.Warn()
		}
		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Str("route", route).
			Int("status", status).
			Dur("latency", elapsed).
			Str("client_ip", c.ClientIP()).
			Int("size", c.Writer.Size()).
			Msg("request")
	}
}
