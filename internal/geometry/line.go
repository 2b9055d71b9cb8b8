package geometry

import (
	"fmt"
	"math"
)

// onSegmentTol is the distance within which a point counts as lying on
// a segment.
const onSegmentTol = 1e-9

// Line is a segment between two distinct endpoints. The boundary is
// parametrized as p1·(1-γ) + p2·γ for γ ∈ [0, 1].
type Line struct {
	p1     Vec2
	p2     Vec2
	normal Vec2
}

func NewLine(p1, p2 Vec2) (*Line, error) {
	dir := p2.Sub(p1)
	if dir.Norm() == 0 {
		return nil, fmt.Errorf("geometry: zero-length segment at (%v, %v): %w", p1.X, p1.Y, ErrDegenerateShape)
	}
	angle := math.Atan2(dir.Y, dir.X)
	return &Line{
		p1:     p1,
		p2:     p2,
		normal: Vec2{-math.Sin(angle), math.Cos(angle)},
	}, nil
}

func (l *Line) P1() Vec2 { return l.p1 }
func (l *Line) P2() Vec2 { return l.p2 }

// Contains reports whether p lies on the segment itself.
func (l *Line) Contains(p Vec2) bool {
	dir := l.p2.Sub(l.p1)
	gamma := p.Sub(l.p1).Dot(dir) / dir.Dot(dir)
	if gamma < 0 || gamma > 1 {
		return false
	}
	on := l.p1.Add(dir.Scale(gamma))
	return p.Dist(on) <= onSegmentTol
}

// Closest projects p onto the segment. The offset l·normal and boundary
// parameter γ are found by the generic root-finder from a random start
// in [0,1)², then γ is clamped to the endpoints.
func (l *Line) Closest(p Vec2) (Vec2, float64, error) {
	if l.Contains(p) {
		return p, 0, nil
	}

	eqs := func(off, gamma float64) (float64, float64) {
		e1 := l.p1.X*(1-gamma) + l.p2.X*gamma + off*l.normal.X - p.X
		e2 := l.p1.Y*(1-gamma) + l.p2.Y*gamma + off*l.normal.Y - p.Y
		return e1, e2
	}

	off, gamma, err := solve2(eqs, randFloat(), randFloat())
	if err != nil {
		return Vec2{}, 0, err
	}

	dist := math.Abs(off)
	switch {
	case gamma > 1:
		gamma = 1
		dist = p.Dist(l.p2)
	case gamma < 0:
		gamma = 0
		dist = p.Dist(l.p1)
	}

	closest := l.p1.Scale(1 - gamma).Add(l.p2.Scale(gamma))
	return closest, dist, nil
}

func (l *Line) Record() Record {
	return Record{
		Kind:     KindLine,
		Vertices: []Vec2{l.p1, l.p2},
	}
}
