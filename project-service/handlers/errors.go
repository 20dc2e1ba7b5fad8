package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/collabhub/platform/project-service/domain"
	"github.com/collabhub/platform/shared/logger"
	"github.com/collabhub/platform/shared/saga"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

const retryMessage = "A collaborating service is unavailable and no changes were kept. Please retry later."

// statusFor maps a use case error to its HTTP status and body.
func statusFor(err error) (int, ErrorResponse) {
	var (
		aborted      *saga.AbortedError
		precondition *domain.PreconditionError
	)

	switch {
	case errors.Is(err, saga.ErrCompensationFailed):
		return http.StatusInternalServerError, ErrorResponse{
			Error:   "compensation_failed",
			Message: "The operation failed and could not be fully undone.",
		}
	case errors.As(err, &aborted):
		return http.StatusServiceUnavailable, ErrorResponse{
			Error:   string(aborted.Reason),
			Message: retryMessage,
		}
	case errors.As(err, &precondition):
		status := http.StatusBadRequest
		switch precondition {
		case domain.ErrProjectNotFound, domain.ErrApplicationNotFound:
			status = http.StatusNotFound
		case domain.ErrForbidden:
			status = http.StatusForbidden
		}
		return status, ErrorResponse{Error: precondition.Code, Message: err.Error()}
	default:
		return http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Internal server error.",
		}
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, body := statusFor(err)
	if status >= http.StatusInternalServerError && status != http.StatusServiceUnavailable {
		logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}

	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("failed to encode response", zap.Error(err))
	}
}

func badRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: domain.ErrInvalidInput.Code, Message: message})
}
