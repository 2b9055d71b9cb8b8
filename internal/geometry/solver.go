package geometry

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

const (
	solverMaxIter = 64
	solverTol     = 1e-10
	jacobianStep  = 1e-7
)

// system2 is a two-equation residual F(a, b) whose root the solver
// seeks.
type system2 func(a, b float64) (f1, f2 float64)

// solve2 runs a damped Newton iteration on fn from (a0, b0). The 2x2
// Newton system is assembled with a forward-difference Jacobian and
// solved through gonum; steps that increase the residual are halved
// before being rejected.
func solve2(fn system2, a0, b0 float64) (float64, float64, error) {
	a, b := a0, b0
	f1, f2 := fn(a, b)

	for iter := 0; iter < solverMaxIter; iter++ {
		res := math.Hypot(f1, f2)
		if res < solverTol {
			return a, b, nil
		}

		g1a, g2a := fn(a+jacobianStep, b)
		g1b, g2b := fn(a, b+jacobianStep)
		jac := mat.NewDense(2, 2, []float64{
			(g1a - f1) / jacobianStep, (g1b - f1) / jacobianStep,
			(g2a - f2) / jacobianStep, (g2b - f2) / jacobianStep,
		})

		var step mat.VecDense
		if err := step.SolveVec(jac, mat.NewVecDense(2, []float64{-f1, -f2})); err != nil {
			return a, b, fmt.Errorf("geometry: singular jacobian at (%v, %v): %w", a, b, ErrNoConvergence)
		}

		// Backtrack while the full step makes things worse.
		lambda := 1.0
		for {
			na := a + lambda*step.AtVec(0)
			nb := b + lambda*step.AtVec(1)
			n1, n2 := fn(na, nb)
			if math.Hypot(n1, n2) < res || lambda < 1.0/1024 {
				a, b = na, nb
				f1, f2 = n1, n2
				break
			}
			lambda /= 2
		}
	}

	if math.Hypot(f1, f2) < solverTol {
		return a, b, nil
	}
	return a, b, fmt.Errorf("geometry: %d newton iterations exhausted: %w", solverMaxIter, ErrNoConvergence)
}
