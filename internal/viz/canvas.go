// Package viz rasterizes shape records and trajectories onto a
// Braille-cell terminal canvas. It is a consumer of geometry records,
// never a dependency of the core.
package viz

import (
	"math"
	"strings"

	"github.com/san-kum/planarsim/internal/geometry"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

type Canvas struct {
	Width, Height int
	Grid          [][]rune

	// world-space window mapped onto the canvas
	minX, minY, maxX, maxY float64
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		minX:   0, minY: 0, maxX: 1, maxY: 1,
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800 // Empty braille char
		}
	}
	return c
}

// SetWindow fixes the world-space rectangle shown by the canvas.
func (c *Canvas) SetWindow(minX, minY, maxX, maxY float64) {
	if maxX <= minX {
		maxX = minX + 1
	}
	if maxY <= minY {
		maxY = minY + 1
	}
	c.minX, c.minY, c.maxX, c.maxY = minX, minY, maxX, maxY
}

// FitRecords widens the window to cover every record with a small
// margin.
func (c *Canvas) FitRecords(records []geometry.Record) {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)

	grow := func(p geometry.Vec2) {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}

	for _, rec := range records {
		switch rec.Kind {
		case geometry.KindEllipse:
			r := math.Max(rec.SemiAxes[0], rec.SemiAxes[1])
			grow(rec.Center.Add(geometry.Vec2{X: r, Y: r}))
			grow(rec.Center.Sub(geometry.Vec2{X: r, Y: r}))
		default:
			for _, v := range rec.Vertices {
				grow(v)
			}
		}
	}
	if math.IsInf(minX, 1) {
		return
	}

	marginX := 0.05 * (maxX - minX)
	marginY := 0.05 * (maxY - minY)
	c.SetWindow(minX-marginX, minY-marginY, maxX+marginX, maxY+marginY)
}

// project maps a world point to sub-pixel coordinates, flipping Y so
// world-up is screen-up.
func (c *Canvas) project(p geometry.Vec2) (int, int) {
	sx := (p.X - c.minX) / (c.maxX - c.minX) * float64(c.Width*2-1)
	sy := (1 - (p.Y-c.minY)/(c.maxY-c.minY)) * float64(c.Height*4-1)
	return int(math.Round(sx)), int(math.Round(sy))
}

// Set lights the sub-pixel at (x, y). The canvas resolution in
// sub-pixels is (Width*2) x (Height*4).
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	subX := x % 2
	subY := y % 4

	c.Grid[row][col] |= rune(pixelMap[subY][subX])
}

// Clear resets the canvas
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
		}
	}
}

// DrawLine draws a sub-pixel line using Bresenham's algorithm.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawSegment draws a world-space segment.
func (c *Canvas) DrawSegment(p1, p2 geometry.Vec2) {
	x0, y0 := c.project(p1)
	x1, y1 := c.project(p2)
	c.DrawLine(x0, y0, x1, y1)
}

// DrawPoint marks a single world-space point.
func (c *Canvas) DrawPoint(p geometry.Vec2) {
	x, y := c.project(p)
	c.Set(x, y)
}

// DrawRecord rasterizes a shape record.
func (c *Canvas) DrawRecord(rec geometry.Record) {
	switch rec.Kind {
	case geometry.KindLine:
		if len(rec.Vertices) == 2 {
			c.DrawSegment(rec.Vertices[0], rec.Vertices[1])
		}
	case geometry.KindPolygon:
		n := len(rec.Vertices)
		for i := 0; i < n; i++ {
			c.DrawSegment(rec.Vertices[i], rec.Vertices[(i+1)%n])
		}
	case geometry.KindEllipse:
		c.drawEllipse(rec)
	}
}

func (c *Canvas) drawEllipse(rec geometry.Record) {
	const segments = 64
	a, b := rec.SemiAxes[0], rec.SemiAxes[1]
	sin, cos := math.Sincos(rec.Angle)

	prev := geometry.Vec2{}
	for i := 0; i <= segments; i++ {
		gamma := 2 * math.Pi * float64(i) / segments
		// Rᵀ·(a cosγ, b sinγ) + center
		vx := a * math.Cos(gamma)
		vy := b * math.Sin(gamma)
		pt := geometry.Vec2{
			X: rec.Center.X + cos*vx - sin*vy,
			Y: rec.Center.Y + sin*vx + cos*vy,
		}
		if i > 0 {
			c.DrawSegment(prev, pt)
		}
		prev = pt
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
