package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/profile-api/internal/api/shared"
	"github.com/phrazzld/profile-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
)

func TestTraceMiddleware(t *testing.T) {
	base := slog.New(slog.NewTextHandler(io.Discard, nil))

	fallback := slog.New(slog.NewTextHandler(io.Discard, nil))

	var traceID string
	var hasLogger bool
	handler := TraceMiddleware(base)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID = shared.GetTraceID(r.Context())
		hasLogger = logger.FromContextOrDefault(r.Context(), fallback) != fallback
	}))

	t.Run("generates trace ID", func(t *testing.T) {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		assert.NotEmpty(t, traceID)
		assert.True(t, hasLogger)
	})

	t.Run("reuses request ID", func(t *testing.T) {
		chained := chimiddleware.RequestID(handler)
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set(chimiddleware.RequestIDHeader, "req-42")
		chained.ServeHTTP(httptest.NewRecorder(), r)
		assert.Equal(t, "req-42", traceID)
	})
}
