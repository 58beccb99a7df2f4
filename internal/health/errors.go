package health

import "errors"

var (
	// ErrDuplicateProbeName indicates a probe with the same name is already registered.
	ErrDuplicateProbeName = errors.New("health: duplicate probe name")

	// ErrProbeNotFound indicates no probe with that name is registered.
	ErrProbeNotFound = errors.New("health: probe not found")

	// ErrInvalidTimeout indicates a probe was registered without a positive timeout.
	ErrInvalidTimeout = errors.New("health: probe timeout must be > 0")

	// ErrEmptyProbeName indicates a probe was registered with an empty name.
	ErrEmptyProbeName = errors.New("health: probe name must not be empty")

	// ErrNilCheck indicates a probe was registered without a check function.
	ErrNilCheck = errors.New("health: probe check must not be nil")

	// ErrProbeTimeout indicates a check exceeded its own timeout.
	ErrProbeTimeout = errors.New("health: probe timed out")

	// ErrAggregateDeadline indicates the overall aggregation deadline elapsed
	// before the check finished.
	ErrAggregateDeadline = errors.New("health: aggregate deadline exceeded")

	// ErrCheckPanic indicates a check function panicked.
	ErrCheckPanic = errors.New("health: check panicked")
)
