package http

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// traceIDHeader names the header used to correlate a request between the
// browser client, the access log, and every structured log line emitted
// while the request is served.
const traceIDHeader = "X-Trace-ID"

// withTraceID attaches a per-request child logger tagged with a trace id.
// A client-supplied X-Trace-ID is honoured, otherwise a fresh UUID is
// generated. The id is echoed back on the response so callers can quote it
// when reporting problems.
func (h *Handler) withTraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get(traceIDHeader)
		if traceID == "" {
			traceID = uuid.NewString()
		}

		log := h.logger.GetChildLogger()
		log.UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Str("trace_id", traceID)
		})

		w.Header().Set(traceIDHeader, traceID)
		next.ServeHTTP(w, r.WithContext(log.WithContext(r.Context())))
	})
}
