package dynamo

import "errors"

// Domain errors for simulation operations.
var (
	// ErrDimensionMismatch indicates a model's structural constraint on
	// the state/control dimensions is violated.
	ErrDimensionMismatch = errors.New("dynamo: dimension mismatch between model and vectors")

	// ErrInvalidTimestep indicates a non-positive integration timestep.
	ErrInvalidTimestep = errors.New("dynamo: timestep must be positive")

	// ErrInvalidState indicates a state vector with NaN or Inf components.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")
)
