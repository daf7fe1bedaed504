package imaging

import (
	"image"
	"image/color"

	"github.com/konko2/letters-recognition/internal/geometry"
)

// Bitmap is a two-level raster: every pixel is either ink (BLACK) or
// background (WHITE). Coordinates are 0-based regardless of the bounds of the
// image it was produced from.
type Bitmap struct {
	// Width is the bitmap width in pixels.
	Width int

	// Height is the bitmap height in pixels.
	Height int

	// Threshold is the luma cutoff used by Binarize. Zero for bitmaps built
	// by other means.
	Threshold uint8

	ink []bool
}

// NewBitmap creates an all-background bitmap.
func NewBitmap(width, height int) *Bitmap {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Bitmap{
		Width:  width,
		Height: height,
		ink:    make([]bool, width*height),
	}
}

// Ink reports whether (x, y) is ink. Coordinates outside the bitmap are
// background.
func (b *Bitmap) Ink(x, y int) bool {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return false
	}
	return b.ink[y*b.Width+x]
}

// Set marks (x, y) as ink or background. Coordinates outside the bitmap are
// ignored.
func (b *Bitmap) Set(x, y int, ink bool) {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return
	}
	b.ink[y*b.Width+x] = ink
}

// InkPixels returns every ink pixel of the bitmap.
func (b *Bitmap) InkPixels() geometry.PixelSet {
	out := make(geometry.PixelSet)
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			if b.ink[y*b.Width+x] {
				out.Add(geometry.Pixel{X: x, Y: y})
			}
		}
	}
	return out
}

// Image renders the bitmap as a grayscale image: ink black, background white.
func (b *Bitmap) Image() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, b.Width, b.Height))
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			v := uint8(255)
			if b.ink[y*b.Width+x] {
				v = 0
			}
			img.SetGray(x, y, color.Gray{Y: v})
		}
	}
	return img
}

// BitmapFromPixels builds a width x height bitmap whose ink is the given
// pixel set. Pixels outside the bitmap are ignored.
func BitmapFromPixels(width, height int, ink geometry.PixelSet) *Bitmap {
	b := NewBitmap(width, height)
	for p := range ink {
		b.Set(p.X, p.Y, true)
	}
	return b
}

// Binarize converts img to a bitmap.
//
// Each pixel's luma is computed, an Otsu threshold is chosen from the luma
// histogram, and pixels whose intensity is less than or equal to the
// threshold become ink. The chosen threshold is recorded on the bitmap.
func Binarize(img image.Image) *Bitmap {
	gray := LumaImage(img)
	threshold := FindThreshold(grayHistogram(gray))
	return ThresholdGray(gray, func(v uint8) bool { return v <= threshold }, threshold)
}

// ThresholdGray builds a bitmap from a grayscale image, marking ink wherever
// isInk returns true for the pixel intensity.
func ThresholdGray(gray *image.Gray, isInk func(uint8) bool, threshold uint8) *Bitmap {
	bounds := gray.Bounds()
	b := NewBitmap(bounds.Dx(), bounds.Dy())
	b.Threshold = threshold
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			if isInk(gray.GrayAt(x+bounds.Min.X, y+bounds.Min.Y).Y) {
				b.ink[y*b.Width+x] = true
			}
		}
	}
	return b
}

// ExpandInk grows the ink by one pixel in all eight directions.
//
// Every pixel that is ink or touches an ink pixel horizontally, vertically or
// diagonally becomes ink in the result. This closes hairline gaps left by
// thresholding before segmentation. The input is not modified.
func ExpandInk(b *Bitmap) *Bitmap {
	out := NewBitmap(b.Width, b.Height)
	out.Threshold = b.Threshold
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			if !b.ink[y*b.Width+x] {
				continue
			}
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					out.Set(x+dx, y+dy, true)
				}
			}
		}
	}
	return out
}
