package geometry

import "sort"

// convexHull computes the 2D convex hull of points with the monotone
// chain algorithm. The result is in counter-clockwise order without the
// closing point; collinear input collapses to fewer than three hull
// vertices.
func convexHull(points []Vec2) []Vec2 {
	pts := make([]Vec2, len(points))
	copy(pts, points)
	sort.Slice(pts, func(i, j int) bool {
		if pts[i].X != pts[j].X {
			return pts[i].X < pts[j].X
		}
		return pts[i].Y < pts[j].Y
	})

	n := len(pts)
	if n < 3 {
		return pts
	}

	hull := make([]Vec2, 0, 2*n)

	// Lower chain.
	for _, p := range pts {
		for len(hull) >= 2 && hull[len(hull)-1].Sub(hull[len(hull)-2]).Cross(p.Sub(hull[len(hull)-2])) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}

	// Upper chain.
	lower := len(hull) + 1
	for i := n - 2; i >= 0; i-- {
		p := pts[i]
		for len(hull) >= lower && hull[len(hull)-1].Sub(hull[len(hull)-2]).Cross(p.Sub(hull[len(hull)-2])) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}

	return hull[:len(hull)-1]
}

// containsConvex reports whether p lies inside or on a convex CCW loop.
func containsConvex(hull []Vec2, p Vec2) bool {
	if len(hull) < 3 {
		return false
	}
	for i := range hull {
		a := hull[i]
		b := hull[(i+1)%len(hull)]
		if b.Sub(a).Cross(p.Sub(a)) < -onSegmentTol {
			return false
		}
	}
	return true
}
