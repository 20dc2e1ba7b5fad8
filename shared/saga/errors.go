package saga

import (
	"errors"
	"fmt"

	"github.com/collabhub/platform/shared/resilience"
)

var (
	// ErrAborted means a remote step failed and the local state was restored.
	// The caller may retry.
	ErrAborted = errors.New("saga aborted")

	// ErrCompensationFailed means local state could not be restored and needs
	// manual reconciliation.
	ErrCompensationFailed = errors.New("saga compensation failed")

	ErrInvalidDefinition = errors.New("invalid saga definition")
)

// Reason is the machine-readable cause of an abort.
type Reason string

const (
	ReasonCircuitOpen      Reason = Reason(resilience.OutcomeCircuitOpen)
	ReasonRemoteCallFailed Reason = Reason(resilience.OutcomeFailed)
)

// AbortedError is returned when a remote step failed and every completed
// step was compensated.
type AbortedError struct {
	Saga   string
	Step   string
	Reason Reason
	Err    error
}

func (e *AbortedError) Error() string {
	return fmt.Sprintf("saga %s aborted at step %s (%s): %v", e.Saga, e.Step, e.Reason, e.Err)
}

func (e *AbortedError) Is(target error) bool {
	return target == ErrAborted
}

func (e *AbortedError) Unwrap() error {
	return e.Err
}

// CompensationFailedError is returned when at least one compensation failed.
// Cause is the step failure that triggered compensation.
type CompensationFailedError struct {
	Saga  string
	Step  string
	Cause error
	Err   error
}

func (e *CompensationFailedError) Error() string {
	return fmt.Sprintf("saga %s compensation failed after step %s: %v (cause: %v)", e.Saga, e.Step, e.Err, e.Cause)
}

func (e *CompensationFailedError) Is(target error) bool {
	return target == ErrCompensationFailed
}

func (e *CompensationFailedError) Unwrap() error {
	return e.Err
}

func reasonOf(err error) Reason {
	return Reason(resilience.OutcomeOf(err))
}

// ReasonOf returns the abort reason carried by err, if any.
func ReasonOf(err error) (Reason, bool) {
	var aborted *AbortedError
	if errors.As(err, &aborted) {
		return aborted.Reason, true
	}
	return "", false
}
