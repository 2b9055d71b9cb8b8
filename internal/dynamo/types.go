package dynamo

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

type Control []float64

func (c Control) Clone() Control {
	out := make(Control, len(c))
	copy(out, c)
	return out
}

// Affine is a control-affine dynamics law dx = f(x) + g(x)·u.
// Implementations are stateless; the state and control are always
// supplied by the caller.
type Affine interface {
	// F evaluates the drift term f(x).
	F(x State) State
	// G evaluates the control matrix g(x), with one row per state
	// dimension and one column per control dimension.
	G(x State) *mat.Dense
	// Validate reports whether the model can drive a system with n
	// state and m control dimensions.
	Validate(n, m int) error
}

// System is the generic ODE right-hand side consumed by integrators.
type System interface {
	Derive(x State, u Control, t float64) State
}

// Integrator advances a system by one fixed step.
type Integrator interface {
	Step(dyn System, x State, u Control, t, dt float64) State
}

// AdaptiveIntegrator additionally integrates a whole interval under an
// error tolerance, choosing its own substeps.
type AdaptiveIntegrator interface {
	Integrator
	Integrate(dyn System, x State, u Control, t0, t1, tol float64) (State, error)
}

// Derivative evaluates f(x) + g(x)·u for an affine model.
func Derivative(model Affine, x State, u Control) State {
	dx := model.F(x)
	g := model.G(x)
	if g == nil || len(u) == 0 {
		return dx
	}
	gu := mat.NewVecDense(len(dx), nil)
	gu.MulVec(g, mat.NewVecDense(len(u), u))
	for i := range dx {
		dx[i] += gu.AtVec(i)
	}
	return dx
}
