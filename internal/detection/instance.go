package detection

import (
	"errors"
	"image"

	"github.com/konko2/letters-recognition/internal/geometry"
)

// ErrEmptyInstance is returned when an instance is built from no pixels.
var ErrEmptyInstance = errors.New("instance has no ink")

// Size is the extent of an instance bounding box. Both dimensions count the
// extremal pixels, so a single pixel has size 1x1.
type Size struct {
	W int `json:"width"`
	H int `json:"height"`
}

// Min returns the smaller dimension.
func (s Size) Min() int {
	if s.W < s.H {
		return s.W
	}
	return s.H
}

// Max returns the larger dimension.
func (s Size) Max() int {
	if s.W > s.H {
		return s.W
	}
	return s.H
}

// Instance is one connected region of ink, the unit of recognition.
//
// Instances are values and are never modified after construction. All
// pixels lie within [0, Size.W) x [0, Size.H) and the set is never empty.
type Instance struct {
	// Pixels is the ink in the instance frame.
	Pixels geometry.PixelSet

	// Start is the top-left corner of the bounding box in the source image.
	Start geometry.Pixel

	// Size is the bounding box size.
	Size Size
}

// NewInstance normalizes a set of ink pixels given in image coordinates.
func NewInstance(pixels geometry.PixelSet) (Instance, error) {
	min, max, ok := pixels.Bounds()
	if !ok {
		return Instance{}, ErrEmptyInstance
	}
	return Instance{
		Pixels: pixels.Translate(-min.X, -min.Y),
		Start:  min,
		Size:   Size{W: max.X - min.X + 1, H: max.Y - min.Y + 1},
	}, nil
}

// Absolute returns the instance ink in image coordinates.
func (i Instance) Absolute() geometry.PixelSet {
	return i.Pixels.Translate(i.Start.X, i.Start.Y)
}

// Bounds returns the bounding box in image coordinates, Max exclusive.
func (i Instance) Bounds() image.Rectangle {
	return image.Rect(i.Start.X, i.Start.Y, i.Start.X+i.Size.W, i.Start.Y+i.Size.H)
}
