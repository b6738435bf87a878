// Package middleware provides HTTP middleware for the Kyubii API.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// requestIDKey is the context key for the request ID.
type requestIDKey struct{}

const (
	// requestIDPrefix distinguishes IDs minted here from ones supplied by
	// the edge proxy.
	requestIDPrefix = "req_"

	// maxInboundRequestIDLen caps client-supplied IDs so log fields and
	// response headers stay bounded.
	maxInboundRequestIDLen = 64
)

// RequestID attaches a correlation ID to the request context and echoes it in
// the X-Request-Id response header. A well-formed inbound ID is kept, so the
// edge proxy and this service log the same value; anything oversized or blank
// is replaced.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get("X-Request-Id"))
		if id == "" || len(id) > maxInboundRequestIDLen {
			id = newRequestID()
		}

		w.Header().Set("X-Request-Id", id)

		ctx := context.WithValue(r.Context(), requestIDKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func newRequestID() string {
	return requestIDPrefix + uuid.New().String()[:22]
}

// GetRequestID retrieves the request ID from the context.
func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}
