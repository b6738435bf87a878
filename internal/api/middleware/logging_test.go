package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func logLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestLoggerRecordsRequestFields(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	handler := Logger(log)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))

	req := httptest.NewRequest(http.MethodGet, "/v1/spots", http.NoBody)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	entry := logLine(t, &buf)
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "GET", entry["method"])
	assert.Equal(t, "/v1/spots", entry["path"])
	assert.Equal(t, float64(http.StatusOK), entry["status"])
	assert.Equal(t, float64(11), entry["bytes"])
}

func TestLoggerLevelsByStatus(t *testing.T) {
	cases := []struct {
		status int
		level  string
	}{
		{http.StatusNotFound, "warn"},
		{http.StatusInternalServerError, "error"},
	}

	for _, tc := range cases {
		var buf bytes.Buffer
		handler := Logger(zerolog.New(&buf))(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(tc.status)
		}))

		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", http.NoBody))

		entry := logLine(t, &buf)
		assert.Equal(t, tc.level, entry["level"], "status %d", tc.status)
	}
}

func TestResponseWriterFirstHeaderWins(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := newResponseWriter(rec)

	rw.WriteHeader(http.StatusBadRequest)
	rw.WriteHeader(http.StatusOK)

	assert.Equal(t, http.StatusBadRequest, rw.statusCode)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
