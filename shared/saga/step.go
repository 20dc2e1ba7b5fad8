package saga

import "context"

// StepKind tells the orchestrator how to treat a failing step.
type StepKind string

const (
	// LocalStep writes to the service's own store and may be compensated.
	LocalStep StepKind = "local"
	// RemoteStep calls another service. Its effect is never undone.
	RemoteStep StepKind = "remote"
)

// Action performs a step and returns a result handed to its compensation.
type Action func(ctx context.Context) (interface{}, error)

// Compensation undoes a completed step given the step's result.
type Compensation func(ctx context.Context, result interface{}) error

// Step is a single unit of work in a saga.
type Step struct {
	Name       string
	Kind       StepKind
	Action     Action
	Compensate Compensation
}

// Local builds a local step. compensate may be nil.
func Local(name string, action Action, compensate Compensation) Step {
	return Step{
		Name:       name,
		Kind:       LocalStep,
		Action:     action,
		Compensate: compensate,
	}
}

// Remote builds a remote step.
func Remote(name string, action Action) Step {
	return Step{
		Name:   name,
		Kind:   RemoteStep,
		Action: action,
	}
}

// Definition is a named, ordered list of steps. AbortOnRemoteFailure decides
// whether a failing remote step compensates and aborts the run, or is logged
// and skipped.
type Definition struct {
	Name                 string
	Steps                []Step
	AbortOnRemoteFailure bool
}

type stepOutcome struct {
	step   Step
	result interface{}
}
