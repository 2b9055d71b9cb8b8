// Package sim owns the simulation engine: state and control vectors,
// per-dimension history logs, and the zero-order-hold stepping policy.
package sim

import (
	"fmt"

	"github.com/san-kum/planarsim/internal/dynamo"
	"github.com/san-kum/planarsim/internal/integrators"
)

const defaultTolerance = 1e-6

// heldFlow is the frozen right-hand side used within one Step call: the
// derivative is evaluated once at the pre-step state and control, then
// held constant across the integrator's internal substeps.
type heldFlow dynamo.State

func (h heldFlow) Derive(x dynamo.State, u dynamo.Control, t float64) dynamo.State {
	return dynamo.State(h).Clone()
}

// Engine advances a single dynamics model in time. It exclusively owns
// its state, control, and history logs; it is not safe for concurrent
// use by more than one caller.
type Engine struct {
	model dynamo.Affine
	integ dynamo.Integrator
	tol   float64

	state   dynamo.State
	control dynamo.Control
	dstate  dynamo.State
	t       float64

	stateLog   [][]float64
	controlLog [][]float64
}

// NewEngine fixes the state dimension n = len(x0) and control dimension
// m = len(u0), validating them against the model's structural
// constraints. No partial engine is produced on failure.
func NewEngine(model dynamo.Affine, x0 dynamo.State, u0 dynamo.Control) (*Engine, error) {
	if err := model.Validate(len(x0), len(u0)); err != nil {
		return nil, err
	}
	e := &Engine{
		model: model,
		integ: integrators.NewRK45(),
		tol:   defaultTolerance,
	}
	e.SetState(x0)
	e.SetControl(u0)
	return e, nil
}

// SetState replaces the state vector, re-deriving n if the size differs,
// and resets the cached derivative to zero.
func (e *Engine) SetState(x dynamo.State) {
	if len(x) != len(e.state) {
		e.stateLog = emptyLog(len(x))
	}
	e.state = x.Clone()
	e.dstate = make(dynamo.State, len(x))
}

// SetControl replaces the control vector, re-deriving m if the size
// differs, and resets the cached derivative to zero.
func (e *Engine) SetControl(u dynamo.Control) {
	if len(u) != len(e.control) {
		e.controlLog = emptyLog(len(u))
	}
	e.control = u.Clone()
	e.dstate = make(dynamo.State, len(e.state))
}

// SetIntegrator swaps the stepping scheme used inside Step. Adaptive
// integrators are given the whole dt interval; fixed-step integrators
// take it in one step. The zero-order hold makes every scheme exact
// here, so the choice only matters for trajectory experiments.
func (e *Engine) SetIntegrator(integ dynamo.Integrator) {
	if integ != nil {
		e.integ = integ
	}
}

// Step evaluates the model's derivative at the current state and
// control, advances the state by dt under a zero-order hold (the
// derivative stays frozen across the adaptive integrator's substeps),
// and appends the new state and held control to the history logs.
// State, control, and logs are untouched when an error is returned.
func (e *Engine) Step(dt float64) error {
	if dt <= 0 {
		return fmt.Errorf("sim: step dt=%v: %w", dt, dynamo.ErrInvalidTimestep)
	}

	e.dstate = dynamo.Derivative(e.model, e.state, e.control)

	var next dynamo.State
	if adaptive, ok := e.integ.(dynamo.AdaptiveIntegrator); ok {
		var err error
		next, err = adaptive.Integrate(heldFlow(e.dstate), e.state, e.control, e.t, e.t+dt, e.tol)
		if err != nil {
			return err
		}
	} else {
		next = e.integ.Step(heldFlow(e.dstate), e.state, e.control, e.t, dt)
	}
	if !next.IsValid() {
		return fmt.Errorf("sim: step at t=%v: %w", e.t, dynamo.ErrInvalidState)
	}

	e.state = next
	e.t += dt

	for i, v := range e.state {
		e.stateLog[i] = append(e.stateLog[i], v)
	}
	for i, v := range e.control {
		e.controlLog[i] = append(e.controlLog[i], v)
	}
	return nil
}

// State returns a snapshot of the current state vector.
func (e *Engine) State() dynamo.State { return e.state.Clone() }

// Control returns a snapshot of the current control vector.
func (e *Engine) Control() dynamo.Control { return e.control.Clone() }

// Time returns the accumulated simulation time.
func (e *Engine) Time() float64 { return e.t }

func (e *Engine) StateDim() int   { return len(e.state) }
func (e *Engine) ControlDim() int { return len(e.control) }

// StateLog returns a copy of the recorded history for state dimension i,
// in step order.
func (e *Engine) StateLog(i int) []float64 {
	out := make([]float64, len(e.stateLog[i]))
	copy(out, e.stateLog[i])
	return out
}

// ControlLog returns a copy of the recorded history for control
// dimension i, in step order.
func (e *Engine) ControlLog(i int) []float64 {
	out := make([]float64, len(e.controlLog[i]))
	copy(out, e.controlLog[i])
	return out
}

// Steps returns the number of recorded steps.
func (e *Engine) Steps() int {
	if len(e.stateLog) == 0 {
		return 0
	}
	return len(e.stateLog[0])
}

func emptyLog(dims int) [][]float64 {
	log := make([][]float64, dims)
	for i := range log {
		log[i] = make([]float64, 0, 256)
	}
	return log
}
