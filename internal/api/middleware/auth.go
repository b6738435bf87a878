package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/kyubii/kyubii-api/internal/api/models"
	"github.com/kyubii/kyubii-api/internal/auth"
)

// operatorKey is the context key for the authenticated operator subject.
type operatorKey struct{}

// OpsAuth creates authentication middleware for the admin surface. It
// validates bearer tokens issued by the auth service.
func OpsAuth(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeUnauthorized(w, r, "missing authorization header")
				return
			}

			const bearerPrefix = "Bearer "
			if len(authHeader) < len(bearerPrefix) ||
				!strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
				writeUnauthorized(w, r, "invalid authorization header format")
				return
			}

			tokenString := authHeader[len(bearerPrefix):]
			if tokenString == "" {
				writeUnauthorized(w, r, "missing bearer token")
				return
			}

			claims, err := authService.ValidateOpsToken(tokenString)
			if err != nil {
				switch {
				case errors.Is(err, auth.ErrTokenExpired):
					writeUnauthorized(w, r, "token has expired")
				case errors.Is(err, auth.ErrWrongRole):
					writeUnauthorized(w, r, "token role not permitted")
				default:
					writeUnauthorized(w, r, "invalid token")
				}
				return
			}

			ctx := context.WithValue(r.Context(), operatorKey{}, claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// writeUnauthorized writes a 401 Unauthorized response. Implemented here to
// avoid an import cycle with the response package.
func writeUnauthorized(w http.ResponseWriter, r *http.Request, detail string) {
	traceID := GetRequestID(r.Context())
	problem := models.NewUnauthorized(traceID, detail)
	problem.Instance = r.URL.Path
	problem.Write(w)
}

// GetOperator retrieves the authenticated operator subject from the context.
// Returns an empty string if not authenticated.
func GetOperator(ctx context.Context) string {
	if subject, ok := ctx.Value(operatorKey{}).(string); ok {
		return subject
	}
	return ""
}
