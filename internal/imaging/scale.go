package imaging

import (
	"image/color"
	"math"

	"github.com/disintegration/imaging"

	"github.com/konko2/letters-recognition/internal/geometry"
)

// ScaleInk renders ink black on a white width x height canvas, resizes the
// canvas by ratio with a Lanczos filter and thresholds it again. A resized
// pixel is ink when its luma is below cutoff.
//
// Parameters:
//   - ink: pixels in the canvas frame; pixels outside the canvas are ignored
//   - width, height: the canvas size before scaling
//   - ratio: the scale factor applied to both sides
//   - cutoff: luma below which a resized pixel is ink
//
// Returns a bitmap of round(width*ratio) x round(height*ratio) pixels, never
// smaller than 1x1, with Threshold set to cutoff. The bitmap may hold no ink
// at all when thin strokes fade above the cutoff.
func ScaleInk(ink geometry.PixelSet, width, height int, ratio float64, cutoff uint8) *Bitmap {
	canvas := imaging.New(width, height, color.White)
	for p := range ink {
		if p.X < 0 || p.Y < 0 || p.X >= width || p.Y >= height {
			continue
		}
		canvas.Set(p.X, p.Y, color.Black)
	}

	w := scaledSide(width, ratio)
	h := scaledSide(height, ratio)
	resized := imaging.Resize(canvas, w, h, imaging.Lanczos)

	return ThresholdGray(LumaImage(resized), func(v uint8) bool { return v < cutoff }, cutoff)
}

func scaledSide(n int, ratio float64) int {
	s := int(math.Round(float64(n) * ratio))
	if s < 1 {
		return 1
	}
	return s
}
