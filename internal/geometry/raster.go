package geometry

import "math"

// Segment rasterizes the straight segment from p0 to p1 using Bresenham's
// algorithm. Both end points are included.
func Segment(p0, p1 Pixel) PixelSet {
	out := make(PixelSet)

	dx := abs(p1.X - p0.X)
	dy := -abs(p1.Y - p0.Y)
	sx, sy := 1, 1
	if p0.X > p1.X {
		sx = -1
	}
	if p0.Y > p1.Y {
		sy = -1
	}

	err := dx + dy
	x, y := p0.X, p0.Y
	for {
		out.Add(Pixel{X: x, Y: y})
		if x == p1.X && y == p1.Y {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
	return out
}

// EllipseOutline rasterizes the outline of the axis-aligned ellipse inscribed
// in the bounding box (x0, y0)-(x1, y1). The box is inclusive on both corners.
//
// The outline is sampled once per column and once per row so that steep and
// flat parts of the curve are both gap free. A box that is degenerate in one
// axis collapses to a straight segment.
func EllipseOutline(x0, y0, x1, y1 int) PixelSet {
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	if x0 == x1 || y0 == y1 {
		return Segment(Pixel{X: x0, Y: y0}, Pixel{X: x1, Y: y1})
	}

	cx := float64(x0+x1) / 2
	cy := float64(y0+y1) / 2
	a := float64(x1-x0) / 2
	b := float64(y1-y0) / 2

	out := make(PixelSet)
	for x := x0; x <= x1; x++ {
		d := b * unitArc((float64(x)-cx)/a)
		out.Add(Pixel{X: x, Y: int(math.Round(cy - d))})
		out.Add(Pixel{X: x, Y: int(math.Round(cy + d))})
	}
	for y := y0; y <= y1; y++ {
		d := a * unitArc((float64(y)-cy)/b)
		out.Add(Pixel{X: int(math.Round(cx - d)), Y: y})
		out.Add(Pixel{X: int(math.Round(cx + d)), Y: y})
	}
	return out
}

// Chevron rasterizes two diagonal strokes rising from the bottom corners of a
// width x height box and meeting at its top centre, the outline of an "A"
// without its crossbar.
func Chevron(width, height int) PixelSet {
	if width <= 0 || height <= 0 {
		return make(PixelSet)
	}
	apex := Pixel{X: width / 2, Y: 0}
	left := Segment(Pixel{X: 0, Y: height - 1}, apex)
	right := Segment(apex, Pixel{X: width - 1, Y: height - 1})
	return left.Union(right)
}

// unitArc returns sqrt(1 - t²), clamped to 0 outside [-1, 1].
func unitArc(t float64) float64 {
	v := 1 - t*t
	if v <= 0 {
		return 0
	}
	return math.Sqrt(v)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
