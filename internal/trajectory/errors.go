package trajectory

import "errors"

// Domain errors for trajectory construction and query.
var (
	// ErrOutOfRange indicates an integer index outside the valid range.
	ErrOutOfRange = errors.New("trajectory: index out of range")

	// ErrInvalidCapacity indicates a zero or negative buffer capacity.
	ErrInvalidCapacity = errors.New("trajectory: capacity must be positive")

	// ErrMismatchedSteps indicates a step array whose length does not
	// match the sample count.
	ErrMismatchedSteps = errors.New("trajectory: step count does not match sample count")

	// ErrBadEncoding indicates a flat array whose length is not a whole
	// number of samples.
	ErrBadEncoding = errors.New("trajectory: flat encoding length is not a whole number of samples")
)
