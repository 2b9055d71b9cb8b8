// Package dynamo provides the core primitives for simulating controlled
// dynamical systems.
//
// The package defines the vector types and interfaces shared by the rest
// of the module:
//
//   - [State], [Control]: ordered real vectors
//   - [Affine]: control-affine dynamics dx = f(x) + g(x)·u
//   - [System]: generic ODE right-hand side consumed by integrators
//
// # Thread Safety
//
// State and Control values are plain slices and are not safe for
// concurrent mutation. Affine models are stateless and may be shared.
package dynamo
