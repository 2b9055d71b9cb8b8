package geometry

import "fmt"

// ConvexPolygon is an ordered vertex loop. Its boundary is the list of
// consecutive edges in construction order, including the closing edge
// from the last vertex back to the first; the convex hull of the vertex
// set backs the containment test.
type ConvexPolygon struct {
	vertices []Vec2
	edges    []*Line
	hull     []Vec2
}

func NewConvexPolygon(vertices []Vec2) (*ConvexPolygon, error) {
	if len(vertices) < 3 {
		return nil, fmt.Errorf("geometry: polygon needs at least 3 vertices, got %d: %w", len(vertices), ErrDegenerateShape)
	}

	hull := convexHull(vertices)
	if len(hull) < 3 {
		return nil, fmt.Errorf("geometry: polygon vertices are collinear: %w", ErrDegenerateShape)
	}

	owned := make([]Vec2, len(vertices))
	copy(owned, vertices)

	edges := make([]*Line, 0, len(owned))
	for k := 0; k < len(owned); k++ {
		next := owned[(k+1)%len(owned)]
		edge, err := NewLine(owned[k], next)
		if err != nil {
			return nil, fmt.Errorf("geometry: polygon edge %d: %w", k, err)
		}
		edges = append(edges, edge)
	}

	return &ConvexPolygon{vertices: owned, edges: edges, hull: hull}, nil
}

// Vertices returns the vertex loop in construction order.
func (cp *ConvexPolygon) Vertices() []Vec2 {
	out := make([]Vec2, len(cp.vertices))
	copy(out, cp.vertices)
	return out
}

// Edges returns the boundary segments in construction order.
func (cp *ConvexPolygon) Edges() []*Line {
	out := make([]*Line, len(cp.edges))
	copy(out, cp.edges)
	return out
}

func (cp *ConvexPolygon) Contains(p Vec2) bool {
	return containsConvex(cp.hull, p)
}

// Closest returns (p, 0) for interior points; otherwise the minimum
// over every boundary edge's projection, ties broken by the lowest edge
// index in construction order.
func (cp *ConvexPolygon) Closest(p Vec2) (Vec2, float64, error) {
	if cp.Contains(p) {
		return p, 0, nil
	}

	var (
		best     Vec2
		bestDist float64
		found    bool
	)
	for _, edge := range cp.edges {
		pt, dist, err := edge.Closest(p)
		if err != nil {
			return Vec2{}, 0, err
		}
		if !found || dist < bestDist {
			best, bestDist = pt, dist
			found = true
		}
	}
	return best, bestDist, nil
}

func (cp *ConvexPolygon) Record() Record {
	return Record{
		Kind:     KindPolygon,
		Vertices: cp.Vertices(),
	}
}
