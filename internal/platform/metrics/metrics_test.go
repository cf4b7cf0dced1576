package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"pet-dispatch/internal/platform/apperr"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserve_CountsByOutcome(t *testing.T) {
	m := New("test")

	m.Observe("accept", nil)
	m.Observe("accept", apperr.New(apperr.ErrConflict, "already assigned"))
	m.Observe("accept", apperr.New(apperr.ErrConflict, "already assigned"))
	m.Observe("rate", errors.New("db down"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.LifecycleOps.WithLabelValues("accept", "ok")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.LifecycleOps.WithLabelValues("accept", "conflict")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.LifecycleOps.WithLabelValues("rate", "error")))
}

func TestObserve_NilSafe(t *testing.T) {
	var m *Metrics
	m.Observe("accept", nil)
}

func TestMiddleware_UsesRoutePattern(t *testing.T) {
	m := New("test")

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/requests/{requestID}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/requests/abc", nil))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("GET", "/requests/{requestID}", "418")))
}

func TestHandler_ExposesRegistry(t *testing.T) {
	m := New("test")
	m.Observe("milestone", nil)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "test_lifecycle_operations_total")
}
