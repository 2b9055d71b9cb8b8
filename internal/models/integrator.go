package models

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/planarsim/internal/dynamo"
)

// Integrator is the n-order integrator dx = u. It is dimension-generic:
// the engine fixes n at construction and Validate enforces n == m.
type Integrator struct{}

func NewIntegrator() *Integrator {
	return &Integrator{}
}

func (in *Integrator) Validate(n, m int) error {
	if n != m {
		return fmt.Errorf("models: integrator needs control dim %d to match state dim %d: %w", m, n, dynamo.ErrDimensionMismatch)
	}
	return nil
}

func (in *Integrator) F(x dynamo.State) dynamo.State {
	return make(dynamo.State, len(x))
}

func (in *Integrator) G(x dynamo.State) *mat.Dense {
	n := len(x)
	g := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		g.Set(i, i, 1)
	}
	return g
}
