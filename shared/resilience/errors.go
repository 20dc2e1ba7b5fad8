package resilience

import (
	"errors"
	"fmt"
)

var (
	// ErrCircuitOpen is returned without any I/O when a dependency's breaker
	// rejects the call.
	ErrCircuitOpen = errors.New("circuit open")

	// ErrRemoteCallFailed covers transport errors, timeouts and non-2xx
	// responses.
	ErrRemoteCallFailed = errors.New("remote call failed")

	// ErrUnknownDependency is returned by the Registry for unconfigured names.
	ErrUnknownDependency = errors.New("unknown dependency")
)

// CallError describes a failed call to a dependency. It matches either
// ErrCircuitOpen or ErrRemoteCallFailed with errors.Is.
type CallError struct {
	Dependency  DependencyName
	CircuitOpen bool
	StatusCode  int
	Detail      string
	Err         error
}

func (e *CallError) Error() string {
	switch {
	case e.CircuitOpen:
		return fmt.Sprintf("%s: circuit open", e.Dependency)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s: remote call failed with status %d: %s", e.Dependency, e.StatusCode, e.Detail)
	case e.Err != nil:
		return fmt.Sprintf("%s: remote call failed: %v", e.Dependency, e.Err)
	default:
		return fmt.Sprintf("%s: remote call failed: %s", e.Dependency, e.Detail)
	}
}

func (e *CallError) Is(target error) bool {
	if e.CircuitOpen {
		return target == ErrCircuitOpen
	}
	return target == ErrRemoteCallFailed
}

func (e *CallError) Unwrap() error {
	return e.Err
}

// Outcome classifies a call result for metrics and saga abort reasons.
type Outcome string

const (
	OutcomeSuccess     Outcome = "success"
	OutcomeCircuitOpen Outcome = "circuit_open"
	OutcomeFailed      Outcome = "remote_call_failed"
)

// OutcomeOf maps an error returned by Client.Call to its Outcome.
func OutcomeOf(err error) Outcome {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, ErrCircuitOpen):
		return OutcomeCircuitOpen
	default:
		return OutcomeFailed
	}
}
