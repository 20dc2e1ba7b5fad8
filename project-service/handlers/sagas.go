package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/collabhub/platform/shared/events"
	"github.com/collabhub/platform/shared/models"
	"github.com/go-chi/chi/v5"
)

const (
	defaultFailuresLimit = 50
	maxFailuresLimit     = 500
)

// SagaJournal reads saga runs back from the event store.
type SagaJournal interface {
	GetEvents(ctx context.Context, aggregateID string) ([]*events.Event, error)
	GetEventsByType(ctx context.Context, eventType string, offset, limit int) ([]*events.Event, error)
}

// SagaHandlers exposes the saga journal for operators.
type SagaHandlers struct {
	journal SagaJournal
}

func NewSagaHandlers(journal SagaJournal) *SagaHandlers {
	return &SagaHandlers{journal: journal}
}

// GetRun handles GET /sagas/{runID}
func (h *SagaHandlers) GetRun(w http.ResponseWriter, r *http.Request) {
	runID, err := models.NewID(chi.URLParam(r, "runID"))
	if err != nil {
		badRequest(w, "Invalid runID")
		return
	}

	entries, err := h.journal.GetEvents(r.Context(), runID.String())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if len(entries) == 0 {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "saga_run_not_found", Message: "saga run not found"})
		return
	}

	writeJSON(w, http.StatusOK, entries)
}

// ListCompensationFailures handles GET /sagas/failures. These runs need
// manual reconciliation.
func (h *SagaHandlers) ListCompensationFailures(w http.ResponseWriter, r *http.Request) {
	offset, limit := 0, defaultFailuresLimit
	if v := r.URL.Query().Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			badRequest(w, "Invalid offset")
			return
		}
		offset = n
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			badRequest(w, "Invalid limit")
			return
		}
		limit = min(n, maxFailuresLimit)
	}

	entries, err := h.journal.GetEventsByType(r.Context(), events.SagaCompensationFailedEvent, offset, limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if entries == nil {
		entries = []*events.Event{}
	}

	writeJSON(w, http.StatusOK, entries)
}

func (h *SagaHandlers) RegisterRoutes(r chi.Router) {
	r.Route("/sagas", func(r chi.Router) {
		r.Get("/failures", h.ListCompensationFailures)
		r.Get("/{runID}", h.GetRun)
	})
}
