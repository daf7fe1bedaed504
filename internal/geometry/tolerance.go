package geometry

import "fmt"

type toleranceKind uint8

const (
	radiusKind toleranceKind = iota
	rectKind
)

// Tolerance describes the window around a template pixel inside which ink
// counts as covering it. Build one with Radius or Rect.
type Tolerance struct {
	kind toleranceKind
	rx   int
	ry   int
}

// Radius returns a diamond-shaped tolerance: all pixels with |dx|+|dy| <= r.
func Radius(r int) Tolerance {
	return Tolerance{kind: radiusKind, rx: r, ry: r}
}

// Rect returns a rectangular tolerance with half extents rx and ry.
func Rect(rx, ry int) Tolerance {
	return Tolerance{kind: rectKind, rx: rx, ry: ry}
}

// IsRadius reports whether t is the diamond variant.
func (t Tolerance) IsRadius() bool {
	return t.kind == radiusKind
}

// Extents returns the horizontal and vertical reach of the window. For the
// diamond variant both are the radius.
func (t Tolerance) Extents() (rx, ry int) {
	return t.rx, t.ry
}

func (t Tolerance) String() string {
	if t.kind == radiusKind {
		return fmt.Sprintf("radius(%d)", t.rx)
	}
	return fmt.Sprintf("rect(%d,%d)", t.rx, t.ry)
}

// contains reports whether the offset (dx, dy) lies inside the window.
func (t Tolerance) contains(dx, dy int) bool {
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	if t.kind == radiusKind {
		return dx+dy <= t.rx
	}
	return dx <= t.rx && dy <= t.ry
}

// Locality returns the tolerance window around center.
//
// Pixels with a negative coordinate are dropped. No upper bound is applied.
// A negative radius or extent yields an empty set.
func Locality(center Pixel, tol Tolerance) PixelSet {
	out := make(PixelSet)
	for dy := -tol.ry; dy <= tol.ry; dy++ {
		y := center.Y + dy
		if y < 0 {
			continue
		}
		for dx := -tol.rx; dx <= tol.rx; dx++ {
			x := center.X + dx
			if x < 0 || !tol.contains(dx, dy) {
				continue
			}
			out[Pixel{X: x, Y: y}] = struct{}{}
		}
	}
	return out
}

// Touches reports whether ink intersects Locality(center, tol).
//
// It walks the window without materializing it, which keeps feature
// evaluation allocation free.
func Touches(ink PixelSet, center Pixel, tol Tolerance) bool {
	for dy := -tol.ry; dy <= tol.ry; dy++ {
		y := center.Y + dy
		if y < 0 {
			continue
		}
		for dx := -tol.rx; dx <= tol.rx; dx++ {
			x := center.X + dx
			if x < 0 || !tol.contains(dx, dy) {
				continue
			}
			if ink.Has(Pixel{X: x, Y: y}) {
				return true
			}
		}
	}
	return false
}
