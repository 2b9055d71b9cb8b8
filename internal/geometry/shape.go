package geometry

// Shape is the common surface of all convex primitives.
type Shape interface {
	// Contains reports whether p lies inside (or on) the shape.
	Contains(p Vec2) bool
	// Closest returns the boundary point nearest to p and its distance.
	// When p is inside the shape it returns (p, 0) exactly.
	Closest(p Vec2) (Vec2, float64, error)
	// Record emits a descriptive record for external drawing surfaces.
	Record() Record
}

// Record is the rendering-agnostic description of a shape. Consumers
// pick the fields relevant to Kind; the core never depends on any
// drawing technology.
type Record struct {
	Kind     string
	Center   Vec2
	SemiAxes [2]float64
	Angle    float64
	Vertices []Vec2
}

const (
	KindLine    = "line"
	KindEllipse = "ellipse"
	KindPolygon = "polygon"
)
