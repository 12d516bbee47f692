package http

import (
	"context"
	"net/http"
)

// withTimeout bounds every request with the configured deadline.
//
// The deadline is carried by the request context only; handlers observe the
// expiry through their store calls and translate it to a 503 themselves, so
// no status is ever written from this middleware.
func (h *Handler) withTimeout(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
		defer cancel()

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
