package application

import (
	"github.com/collabhub/platform/shared/resilience"
)

func teamServiceDown() error {
	return &resilience.CallError{
		Dependency: resilience.TeamService,
		StatusCode: 500,
		Detail:     "internal error",
	}
}

func teamCircuitOpen() error {
	return &resilience.CallError{
		Dependency:  resilience.TeamService,
		CircuitOpen: true,
	}
}
