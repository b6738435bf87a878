package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kyubii/kyubii-api/internal/auth"
)

func opsAuthHandler(t *testing.T) (http.Handler, *auth.Service) {
	t.Helper()
	svc := auth.NewService(auth.ServiceConfig{
		SigningKey: "middleware-test-key",
		Issuer:     "https://api.kyubii.test",
		Audience:   "kyubii-api",
	})
	handler := OpsAuth(svc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	return handler, svc
}

func TestOpsAuthAllowsValidToken(t *testing.T) {
	handler, svc := opsAuthHandler(t)

	token, _, err := svc.GenerateOpsToken("ops@kyubii")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodDelete, "/v1/admin/routes/cache", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestOpsAuthRejectsMissingHeader(t *testing.T) {
	handler, _ := opsAuthHandler(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/v1/admin/routes/cache", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
}

func TestOpsAuthRejectsMalformedHeader(t *testing.T) {
	handler, _ := opsAuthHandler(t)

	req := httptest.NewRequest(http.MethodDelete, "/v1/admin/routes/cache", nil)
	req.Header.Set("Authorization", "Basic abc123")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestOpsAuthRejectsInvalidToken(t *testing.T) {
	handler, _ := opsAuthHandler(t)

	req := httptest.NewRequest(http.MethodDelete, "/v1/admin/routes/cache", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
