package solver

import "errors"

var (
	// ErrInvalidStep indicates a zero or negative time step.
	ErrInvalidStep = errors.New("solver: step size must be positive")

	// ErrInvalidArgument indicates mismatched argument shapes, such as a
	// variable step sequence of the wrong length.
	ErrInvalidArgument = errors.New("solver: invalid argument")
)
