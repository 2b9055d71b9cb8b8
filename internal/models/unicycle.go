package models

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/planarsim/internal/dynamo"
)

// Unicycle is the kinematic unicycle dx = v·cosθ, dy = v·sinθ, dθ = ω,
// with state [x, y, θ] and control [v, ω].
type Unicycle struct{}

func NewUnicycle() *Unicycle {
	return &Unicycle{}
}

func (un *Unicycle) Validate(n, m int) error {
	if n != 3 {
		return fmt.Errorf("models: unicycle state dim must be 3, got %d: %w", n, dynamo.ErrDimensionMismatch)
	}
	if m != 2 {
		return fmt.Errorf("models: unicycle control dim must be 2, got %d: %w", m, dynamo.ErrDimensionMismatch)
	}
	return nil
}

func (un *Unicycle) F(x dynamo.State) dynamo.State {
	return make(dynamo.State, 3)
}

func (un *Unicycle) G(x dynamo.State) *mat.Dense {
	theta := x[2]
	return mat.NewDense(3, 2, []float64{
		math.Cos(theta), 0,
		math.Sin(theta), 0,
		0, 1,
	})
}
