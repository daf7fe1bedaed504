package geometry

import "sort"

// Pixel represents a pixel coordinate in the current frame.
type Pixel struct {
	X int `json:"x"` // Horizontal position (0 = leftmost)
	Y int `json:"y"` // Vertical position (0 = topmost)
}

// Add returns the pixel translated by (dx, dy).
func (p Pixel) Add(dx, dy int) Pixel {
	return Pixel{X: p.X + dx, Y: p.Y + dy}
}

// PixelSet is an unordered collection of unique pixels.
//
// It represents ink regions, idealized template shapes and tolerance windows.
// Only membership and disjointness matter; iteration order is undefined. Use
// Points when a stable order is needed for output.
type PixelSet map[Pixel]struct{}

// NewPixelSet creates a set holding the given pixels.
func NewPixelSet(pixels ...Pixel) PixelSet {
	s := make(PixelSet, len(pixels))
	for _, p := range pixels {
		s[p] = struct{}{}
	}
	return s
}

// Add inserts p into the set.
func (s PixelSet) Add(p Pixel) {
	s[p] = struct{}{}
}

// Has reports whether p is in the set.
func (s PixelSet) Has(p Pixel) bool {
	_, ok := s[p]
	return ok
}

// Len returns the number of pixels in the set.
func (s PixelSet) Len() int {
	return len(s)
}

// Union returns a new set holding the pixels of s and o.
func (s PixelSet) Union(o PixelSet) PixelSet {
	out := make(PixelSet, len(s)+len(o))
	for p := range s {
		out[p] = struct{}{}
	}
	for p := range o {
		out[p] = struct{}{}
	}
	return out
}

// Filter returns a new set holding the pixels for which keep returns true.
func (s PixelSet) Filter(keep func(Pixel) bool) PixelSet {
	out := make(PixelSet)
	for p := range s {
		if keep(p) {
			out[p] = struct{}{}
		}
	}
	return out
}

// Translate returns a new set with every pixel moved by (dx, dy).
func (s PixelSet) Translate(dx, dy int) PixelSet {
	out := make(PixelSet, len(s))
	for p := range s {
		out[p.Add(dx, dy)] = struct{}{}
	}
	return out
}

// IsDisjoint reports whether s and o share no pixel.
func (s PixelSet) IsDisjoint(o PixelSet) bool {
	small, large := s, o
	if len(small) > len(large) {
		small, large = large, small
	}
	for p := range small {
		if large.Has(p) {
			return false
		}
	}
	return true
}

// Equal reports whether s and o hold exactly the same pixels.
func (s PixelSet) Equal(o PixelSet) bool {
	if len(s) != len(o) {
		return false
	}
	for p := range s {
		if !o.Has(p) {
			return false
		}
	}
	return true
}

// Bounds returns the inclusive minimum and maximum corners of the set.
// ok is false for an empty set.
func (s PixelSet) Bounds() (min, max Pixel, ok bool) {
	for p := range s {
		if !ok {
			min, max, ok = p, p, true
			continue
		}
		if p.X < min.X {
			min.X = p.X
		}
		if p.Y < min.Y {
			min.Y = p.Y
		}
		if p.X > max.X {
			max.X = p.X
		}
		if p.Y > max.Y {
			max.Y = p.Y
		}
	}
	return min, max, ok
}

// Points returns the pixels sorted by row, then column.
func (s PixelSet) Points() []Pixel {
	pts := make([]Pixel, 0, len(s))
	for p := range s {
		pts = append(pts, p)
	}
	sort.Slice(pts, func(i, j int) bool {
		if pts[i].Y != pts[j].Y {
			return pts[i].Y < pts[j].Y
		}
		return pts[i].X < pts[j].X
	})
	return pts
}
