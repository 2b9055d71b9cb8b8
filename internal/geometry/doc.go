// Package geometry implements convex planar primitives with inside
// tests and closest-point projection.
//
//   - [Line]: a segment between two distinct endpoints
//   - [Ellipse]: a rotated ellipse with strictly positive semi-axes
//   - [ConvexPolygon]: an ordered vertex loop with a convex hull
//
// Projections onto curved boundaries are found by damped Newton
// iteration on the primitive's boundary equations, seeded randomly from
// the package source (see [Seed]). Query points are call arguments;
// primitives are immutable after construction and safe for concurrent
// read-only queries.
package geometry
