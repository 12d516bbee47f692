package http

import (
	"net/http"
	"time"

	"github.com/avoronin/go-task-keeper/internal/logger"
)

// withLogging emits one access-log line per request with the method, URI,
// response status, body size and handling duration. The response writer is
// decorated with [responseWriter] so the status and size can be read back
// after the downstream handler returns.
func (h *Handler) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		lw := &responseWriter{ResponseWriter: w}
		next.ServeHTTP(lw, r)

		logger.FromRequest(r).Info().
			Str("method", r.Method).
			Str("uri", r.RequestURI).
			Int("status", lw.status).
			Int("size", lw.size).
			Dur("duration", time.Since(start)).
			Send()
	})
}
