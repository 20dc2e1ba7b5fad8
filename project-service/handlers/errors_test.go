package handlers

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/collabhub/platform/project-service/domain"
	"github.com/collabhub/platform/shared/resilience"
	"github.com/collabhub/platform/shared/saga"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{
			name: "aborted on open circuit",
			err: &saga.AbortedError{
				Saga:   "approve",
				Reason: saga.ReasonCircuitOpen,
				Err:    &resilience.CallError{Dependency: resilience.TeamService, CircuitOpen: true},
			},
			wantStatus: http.StatusServiceUnavailable,
			wantError:  "circuit_open",
		},
		{
			name:       "aborted on failed call",
			err:        &saga.AbortedError{Saga: "approve", Reason: saga.ReasonRemoteCallFailed},
			wantStatus: http.StatusServiceUnavailable,
			wantError:  "remote_call_failed",
		},
		{
			name:       "compensation failed",
			err:        &saga.CompensationFailedError{Saga: "approve", Err: errors.New("db down")},
			wantStatus: http.StatusInternalServerError,
			wantError:  "compensation_failed",
		},
		{
			name:       "project not found",
			err:        domain.ErrProjectNotFound,
			wantStatus: http.StatusNotFound,
			wantError:  "project_not_found",
		},
		{
			name:       "wrapped application not found",
			err:        errors.Wrap(domain.ErrApplicationNotFound, "lookup"),
			wantStatus: http.StatusNotFound,
			wantError:  "application_not_found",
		},
		{
			name:       "forbidden",
			err:        domain.ErrForbidden,
			wantStatus: http.StatusForbidden,
			wantError:  "forbidden",
		},
		{
			name:       "not pending inside a saga step",
			err:        errors.Wrap(domain.ErrApplicationNotPending, "step accept application failed"),
			wantStatus: http.StatusBadRequest,
			wantError:  "application_not_pending",
		},
		{
			name:       "invalid input",
			err:        errors.Wrap(domain.ErrInvalidInput, "title is required"),
			wantStatus: http.StatusBadRequest,
			wantError:  "invalid_input",
		},
		{
			name:       "anything else",
			err:        errors.New("connection reset"),
			wantStatus: http.StatusInternalServerError,
			wantError:  "internal_error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := statusFor(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantError, body.Error)
		})
	}
}
