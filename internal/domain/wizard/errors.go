package wizard

import "errors"

var (
	// ErrInvalidStep is returned when a step is outside [1, TotalSteps].
	ErrInvalidStep = errors.New("invalid onboarding step")

	// ErrStepNotReachable is returned when gating forbids access to a step.
	ErrStepNotReachable = errors.New("step not reachable")
)
