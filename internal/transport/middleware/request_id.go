package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/triptribe/backend/pkg/ctxutil"
)

// RequestID attaches a request identifier to the context and echoes it in
// the response. An incoming X-Request-Id header is trusted if present.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-Id")
		if id == "" {
			id = uuid.New().String()
		}
		ctx := ctxutil.WithRequestID(r.Context(), id)
		w.Header().Set("X-Request-Id", id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
