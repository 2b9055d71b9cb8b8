package integrators

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/planarsim/internal/dynamo"
)

type harmonicOscillator struct{}

func (h *harmonicOscillator) Derive(x dynamo.State, u dynamo.Control, t float64) dynamo.State {
	return dynamo.State{x[1], -x[0]}
}

type constantFlow dynamo.State

func (c constantFlow) Derive(x dynamo.State, u dynamo.Control, t float64) dynamo.State {
	return dynamo.State(c).Clone()
}

func TestRK45_Step(t *testing.T) {
	integ := NewRK45()
	dyn := &harmonicOscillator{}

	x := dynamo.State{1.0, 0.0}
	dt := 0.01
	for i := 0; i < 1000; i++ {
		x = integ.Step(dyn, x, nil, float64(i)*dt, dt)
	}

	if !x.IsValid() {
		t.Error("RK45 produced invalid state")
	}
}

func TestRK45_IntegrateMatchesAnalyticSolution(t *testing.T) {
	integ := NewRK45()
	dyn := &harmonicOscillator{}

	x, err := integ.Integrate(dyn, dynamo.State{1.0, 0.0}, nil, 0, math.Pi/2, 1e-9)
	if err != nil {
		t.Fatalf("Integrate returned error: %v", err)
	}

	// cos(pi/2) = 0, -sin(pi/2) = -1
	if math.Abs(x[0]) > 1e-6 {
		t.Errorf("expected x[0] ~ 0, got %e", x[0])
	}
	if math.Abs(x[1]+1) > 1e-6 {
		t.Errorf("expected x[1] ~ -1, got %e", x[1])
	}
}

func TestRK45_IntegrateConstantFlowIsExact(t *testing.T) {
	integ := NewRK45()
	flow := constantFlow{2.0, -3.0}

	x, err := integ.Integrate(flow, dynamo.State{1.0, 1.0}, nil, 0, 0.5, 1e-6)
	if err != nil {
		t.Fatalf("Integrate returned error: %v", err)
	}

	if math.Abs(x[0]-2.0) > 1e-12 {
		t.Errorf("expected x[0] == 2.0, got %v", x[0])
	}
	if math.Abs(x[1]+0.5) > 1e-12 {
		t.Errorf("expected x[1] == -0.5, got %v", x[1])
	}
}

func TestRK45_IntegrateRejectsEmptyInterval(t *testing.T) {
	integ := NewRK45()
	dyn := &harmonicOscillator{}

	_, err := integ.Integrate(dyn, dynamo.State{1.0, 0.0}, nil, 1.0, 1.0, 1e-6)
	if !errors.Is(err, dynamo.ErrInvalidTimestep) {
		t.Errorf("expected ErrInvalidTimestep, got %v", err)
	}
}

func TestRK4_StepAccuracy(t *testing.T) {
	integ := NewRK4()
	dyn := &harmonicOscillator{}

	x := dynamo.State{1.0, 0.0}
	dt := 0.001
	steps := int(math.Round(2 * math.Pi / dt))
	for i := 0; i < steps; i++ {
		x = integ.Step(dyn, x, nil, float64(i)*dt, dt)
	}

	// One full period returns to the initial state.
	if math.Abs(x[0]-1.0) > 1e-6 || math.Abs(x[1]) > 1e-6 {
		t.Errorf("expected (1, 0) after one period, got (%v, %v)", x[0], x[1])
	}
}

func TestEuler_StepDirection(t *testing.T) {
	integ := NewEuler()
	flow := constantFlow{1.0}

	x := integ.Step(flow, dynamo.State{0.0}, nil, 0, 0.1)
	if math.Abs(x[0]-0.1) > 1e-12 {
		t.Errorf("expected 0.1, got %v", x[0])
	}
}
