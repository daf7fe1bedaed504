package imaging

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/konko2/letters-recognition/internal/geometry"
)

// Colors used by RenderFeatureArea.
var (
	AreaBackground color.Color = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	AreaLocality   color.Color = color.RGBA{A: 255}
	AreaVerifying  color.Color = color.RGBA{R: 255, A: 255}
	AreaInk        color.Color = color.RGBA{G: 191, A: 255}
)

// RenderFeatureArea draws a diagnostic view of one feature check on a
// width x height canvas in instance coordinates.
//
// Layers are painted in this order, later layers on top:
//   - the tolerance window of every verifying pixel (black)
//   - the verifying pixels themselves (red)
//   - the instance ink (green)
//
// Everything outside the canvas is clipped. The rendering is for manual
// inspection only; it has no influence on feature evaluation.
func RenderFeatureArea(width, height int, ink, verifying geometry.PixelSet, tol geometry.Tolerance) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(AreaBackground), image.Point{}, draw.Src)

	bounds := img.Bounds()
	paint := func(p geometry.Pixel, c color.Color) {
		if (image.Point{X: p.X, Y: p.Y}).In(bounds) {
			img.Set(p.X, p.Y, c)
		}
	}

	for v := range verifying {
		for p := range geometry.Locality(v, tol) {
			paint(p, AreaLocality)
		}
	}
	for p := range verifying {
		paint(p, AreaVerifying)
	}
	for p := range ink {
		paint(p, AreaInk)
	}
	return img
}
