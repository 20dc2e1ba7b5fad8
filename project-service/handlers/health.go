package handlers

import (
	"net/http"

	"github.com/collabhub/platform/shared/resilience"
)

// BreakerStates reports the breaker of every remote dependency.
type BreakerStates interface {
	Snapshot() map[resilience.DependencyName]resilience.Snapshot
}

type HealthResponse struct {
	Status       string                                            `json:"status"`
	Dependencies map[resilience.DependencyName]resilience.Snapshot `json:"dependencies"`
}

// NewHealthHandler serves liveness together with breaker states. An open
// breaker does not make the service unhealthy.
func NewHealthHandler(breakers BreakerStates) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, HealthResponse{
			Status:       "ok",
			Dependencies: breakers.Snapshot(),
		})
	}
}
