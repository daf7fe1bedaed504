package detection

import (
	"errors"
	"fmt"

	"github.com/konko2/letters-recognition/internal/geometry"
)

// ErrUnknownFeature is returned for a name that is not in the catalog.
var ErrUnknownFeature = errors.New("unknown feature")

// Feature names.
const (
	LeftVerticalLine     = "left_vertical_line"
	MiddleVerticalLine   = "middle_vertical_line"
	RightVerticalLine    = "right_vertical_line"
	UpperHorizontalLine  = "upper_horizontal_line"
	BottomHorizontalLine = "bottom_horizontal_line"
	FirstPartHorizontal  = "1_part_horizontal_line"
	SecondPartHorizontal = "2_part_horizontal_line"
	ThirdPartHorizontal  = "3_part_horizontal_line"
	ASloppingLines       = "A_slopping_lines"
	CCircle              = "C_circle"
	BCircles             = "B_circles"
	DBelly               = "D_belly"
	HookFromJ            = "hook_from_J"
)

// FeatureVector maps every catalog name to whether the instance has it.
type FeatureVector map[string]bool

// Present returns the names that are true, in catalog order.
func (v FeatureVector) Present() []string {
	var out []string
	for _, f := range catalog {
		if v[f.name] {
			out = append(out, f.name)
		}
	}
	return out
}

// template builds the verifying pixels and tolerance for a w x h instance.
type template func(w, h int) (geometry.PixelSet, geometry.Tolerance)

type feature struct {
	name  string
	build template
}

var catalog = []feature{
	{LeftVerticalLine, verticalLine(func(w int) int { return 0 })},
	{MiddleVerticalLine, verticalLine(func(w int) int { return w / 2 })},
	{RightVerticalLine, verticalLine(func(w int) int { return w - 1 })},
	{UpperHorizontalLine, edgeLine(func(h int) int { return 0 })},
	{BottomHorizontalLine, edgeLine(func(h int) int { return h - 1 })},
	{FirstPartHorizontal, middleLinePart(0, 1, 2, 5)},
	{SecondPartHorizontal, middleLinePart(2, 5, 3, 5)},
	{ThirdPartHorizontal, middleLinePart(3, 5, 1, 1)},
	{ASloppingLines, sloppingLines},
	{CCircle, openCircle},
	{BCircles, twoBellies},
	{DBelly, belly},
	{HookFromJ, hook},
}

var byName = func() map[string]template {
	m := make(map[string]template, len(catalog))
	for _, f := range catalog {
		if _, dup := m[f.name]; dup {
			panic("duplicate feature " + f.name)
		}
		m[f.name] = f.build
	}
	return m
}()

// Catalog returns the feature names in evaluation order.
func Catalog() []string {
	names := make([]string, len(catalog))
	for i, f := range catalog {
		names[i] = f.name
	}
	return names
}

// Template returns the verifying pixels and tolerance of a feature for an
// instance of the given size.
func Template(name string, size Size) (geometry.PixelSet, geometry.Tolerance, error) {
	build, ok := byName[name]
	if !ok {
		return nil, geometry.Tolerance{}, fmt.Errorf("%w: %q", ErrUnknownFeature, name)
	}
	verifying, tol := build(size.W, size.H)
	return verifying, tol, nil
}

// HasFeature evaluates one feature.
func HasFeature(inst Instance, name string) (bool, error) {
	verifying, tol, err := Template(name, inst.Size)
	if err != nil {
		return false, err
	}
	return Covers(inst.Pixels, verifying, tol), nil
}

// FindFeatures evaluates the whole catalog.
func FindFeatures(inst Instance) FeatureVector {
	v := make(FeatureVector, len(catalog))
	for _, f := range catalog {
		verifying, tol := f.build(inst.Size.W, inst.Size.H)
		v[f.name] = Covers(inst.Pixels, verifying, tol)
	}
	return v
}

// Covers reports whether ink touches the tolerance window of every verifying
// pixel. An empty template is covered vacuously.
func Covers(ink, verifying geometry.PixelSet, tol geometry.Tolerance) bool {
	for p := range verifying {
		if !geometry.Touches(ink, p, tol) {
			return false
		}
	}
	return true
}

func minSide(w, h int) int {
	if w < h {
		return w
	}
	return h
}

// verticalLine is a stroke at column x(w), skipping the top and bottom
// eighths of the box.
func verticalLine(x func(w int) int) template {
	return func(w, h int) (geometry.PixelSet, geometry.Tolerance) {
		out := make(geometry.PixelSet)
		col := x(w)
		for y := h/8 + 1; y < 7*h/8; y++ {
			out.Add(geometry.Pixel{X: col, Y: y})
		}
		return out, geometry.Rect(w/6, h/8)
	}
}

// edgeLine is a stroke along row y(h), skipping the left and right eighths.
func edgeLine(y func(h int) int) template {
	return func(w, h int) (geometry.PixelSet, geometry.Tolerance) {
		out := make(geometry.PixelSet)
		row := y(h)
		for x := w/8 + 1; x < 7*w/8; x++ {
			out.Add(geometry.Pixel{X: x, Y: row})
		}
		return out, geometry.Rect(w/8, h/6)
	}
}

// middleLinePart is the slice [w*fromNum/fromDen, w*toNum/toDen) of the
// middle row.
func middleLinePart(fromNum, fromDen, toNum, toDen int) template {
	return func(w, h int) (geometry.PixelSet, geometry.Tolerance) {
		out := make(geometry.PixelSet)
		for x := w * fromNum / fromDen; x < w*toNum/toDen; x++ {
			out.Add(geometry.Pixel{X: x, Y: h / 2})
		}
		return out, geometry.Rect(w/8, h/6)
	}
}

// sloppingLines is the chevron of an A, cut off above the feet.
func sloppingLines(w, h int) (geometry.PixelSet, geometry.Tolerance) {
	out := geometry.Chevron(w, h).Filter(func(p geometry.Pixel) bool {
		return 6*p.Y <= 5*h
	})
	return out, geometry.Radius(minSide(w, h) / 5)
}

// openCircle is a slightly wide ellipse clipped to the box, with the upper
// right arc removed where a C opens.
func openCircle(w, h int) (geometry.PixelSet, geometry.Tolerance) {
	out := geometry.EllipseOutline(0, 0, 20*w/19, h).Filter(func(p geometry.Pixel) bool {
		if p.X >= w {
			return false
		}
		return !(p.X > w/2 && h/12 <= p.Y && p.Y < h/2)
	})
	return out, geometry.Radius(7 * minSide(w, h) / 24)
}

// twoBellies is the right halves of two stacked ellipses, the upper one
// narrower, as in a B.
func twoBellies(w, h int) (geometry.PixelSet, geometry.Tolerance) {
	a := 3 * w / 4
	upper := geometry.EllipseOutline(0, 0, 2*a, h/2).
		Filter(func(p geometry.Pixel) bool { return p.X >= a }).
		Translate(-a, 0)
	lower := geometry.EllipseOutline(0, h/2, 2*w, h).
		Filter(func(p geometry.Pixel) bool { return p.X >= w }).
		Translate(-w, 0)
	out := upper.Union(lower).Filter(func(p geometry.Pixel) bool {
		return p.X >= w/10
	})
	return out, geometry.Radius(minSide(w, h) / 6)
}

// belly is the right half of an ellipse spanning the full height.
func belly(w, h int) (geometry.PixelSet, geometry.Tolerance) {
	out := geometry.EllipseOutline(0, 0, 2*w-1, h).
		Filter(func(p geometry.Pixel) bool { return p.X >= w }).
		Translate(-w, 0)
	return out, geometry.Radius(minSide(w, h) / 5)
}

// hook is the lower half of a small ellipse in the bottom left corner.
func hook(w, h int) (geometry.PixelSet, geometry.Tolerance) {
	top := 3 * h / 5
	out := geometry.EllipseOutline(0, top, 5*w/8, h).Filter(func(p geometry.Pixel) bool {
		return 2*p.Y >= top+h
	})
	return out, geometry.Radius(minSide(w, h) / 6)
}
