package telemetry

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

func TestMiddleware_InjectsTelemetry(t *testing.T) {
	tel := NewTelemetry(NewConfigForService("project-service", "test", ""))

	var seen *Telemetry
	r := chi.NewRouter()
	r.Use(Middleware(tel))
	r.Get("/projects/{projectID}", func(w http.ResponseWriter, r *http.Request) {
		seen = FromContext(r.Context())
		assert.Equal(t, "/projects/{projectID}", routePattern(r))
		w.WriteHeader(http.StatusTeapot)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/projects/7", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Same(t, tel, seen)
	assert.Equal(t, "project-service", GetServiceName(WithTelemetry(httptest.NewRequest(http.MethodGet, "/", nil).Context(), tel)))
}

func TestStatusClass(t *testing.T) {
	tests := map[int]string{
		101: "1xx",
		201: "2xx",
		304: "3xx",
		404: "4xx",
		503: "5xx",
		0:   "unknown",
	}

	for code, expected := range tests {
		assert.Equal(t, expected, statusClass(code))
	}
}
