package geometry

import (
	"fmt"
	"math"
)

// maxRestarts bounds the random-restart loop around the boundary
// solver. Well-posed exterior queries converge within the first couple
// of seeds; the cap turns pathological inputs into ErrNoConvergence
// instead of spinning forever.
const maxRestarts = 16

// Ellipse is a rotated ellipse with center c, rotation angle, and
// strictly positive semi-axes a, b.
type Ellipse struct {
	center Vec2
	angle  float64
	a, b   float64
	// rotation R = [[cos, sin], [-sin, cos]]
	sin, cos float64
}

func NewEllipse(center Vec2, angle, a, b float64) (*Ellipse, error) {
	if a <= 0 || b <= 0 {
		return nil, fmt.Errorf("geometry: ellipse semi-axes (%v, %v) must be positive: %w", a, b, ErrDegenerateShape)
	}
	return &Ellipse{
		center: center,
		angle:  angle,
		a:      a,
		b:      b,
		sin:    math.Sin(angle),
		cos:    math.Cos(angle),
	}, nil
}

func (e *Ellipse) Center() Vec2 { return e.center }

func (e *Ellipse) Angle() float64 { return e.angle }

func (e *Ellipse) SemiAxes() (a, b float64) { return e.a, e.b }

// rotate maps a world-frame offset into the ellipse frame (R·v).
func (e *Ellipse) rotate(v Vec2) Vec2 {
	return Vec2{e.cos*v.X + e.sin*v.Y, -e.sin*v.X + e.cos*v.Y}
}

// unrotate maps an ellipse-frame vector back to the world frame (Rᵀ·v).
func (e *Ellipse) unrotate(v Vec2) Vec2 {
	return Vec2{e.cos*v.X - e.sin*v.Y, e.sin*v.X + e.cos*v.Y}
}

// Contains evaluates the quadratic form (R(p-c))ᵀ diag(1/a², 1/b²)
// (R(p-c)) < 1.
func (e *Ellipse) Contains(p Vec2) bool {
	v := e.rotate(p.Sub(e.center))
	return v.X*v.X/(e.a*e.a)+v.Y*v.Y/(e.b*e.b)-1 < 0
}

// Closest solves (a+l·b)cosγ = t_x, (b+l·a)sinγ = t_y for the boundary
// angle γ and scale l, where t = R(p-c). Solutions with l < 0 point at
// the far side of the boundary and are retried from a fresh random
// seed, up to maxRestarts.
func (e *Ellipse) Closest(p Vec2) (Vec2, float64, error) {
	if e.Contains(p) {
		return p, 0, nil
	}

	t := e.rotate(p.Sub(e.center))
	eqs := func(l, gamma float64) (float64, float64) {
		e1 := (e.a+l*e.b)*math.Cos(gamma) - t.X
		e2 := (e.b+l*e.a)*math.Sin(gamma) - t.Y
		return e1, e2
	}

	for restart := 0; restart < maxRestarts; restart++ {
		l, gamma, err := solve2(eqs, randFloat(), math.Pi*randFloat())
		if err != nil || l < 0 {
			continue
		}

		closest := e.unrotate(Vec2{e.a * math.Cos(gamma), e.b * math.Sin(gamma)}).Add(e.center)
		return closest, closest.Dist(p), nil
	}

	return Vec2{}, 0, fmt.Errorf("geometry: ellipse projection of (%v, %v) after %d restarts: %w", p.X, p.Y, maxRestarts, ErrNoConvergence)
}

func (e *Ellipse) Record() Record {
	return Record{
		Kind:     KindEllipse,
		Center:   e.center,
		SemiAxes: [2]float64{e.a, e.b},
		Angle:    e.angle,
	}
}
