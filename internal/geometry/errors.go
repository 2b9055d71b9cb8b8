package geometry

import "errors"

var (
	// ErrDegenerateShape indicates a primitive whose parameters do not
	// describe a valid shape (zero-length segment, non-positive ellipse
	// axis, polygon with fewer than three non-collinear vertices).
	ErrDegenerateShape = errors.New("geometry: degenerate shape")

	// ErrNoConvergence indicates a projection root-finder exhausted its
	// iteration and restart budget without a valid solution.
	ErrNoConvergence = errors.New("geometry: projection did not converge")
)
