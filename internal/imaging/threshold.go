package imaging

import (
	"image"
	"image/color"
	"math"

	"github.com/anthonynsimon/bild/histogram"
	"github.com/disintegration/imaging"
)

// Luma converts an 8-bit RGB triple to its intensity using ITU-R BT.601
// weights (0.299*R + 0.587*G + 0.114*B), rounded to the nearest integer.
func Luma(r, g, b uint8) uint8 {
	v := 0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)
	return uint8(math.Round(v))
}

// Flatten composites img over an opaque white page so that transparent
// pixels read as background rather than as black ink. The result has bounds
// starting at (0, 0).
func Flatten(img image.Image) *image.NRGBA {
	b := img.Bounds()
	page := imaging.New(b.Dx(), b.Dy(), color.White)
	return imaging.Overlay(page, img, image.Point{}, 1.0)
}

// LumaImage converts img to a grayscale image using Luma. Images that are not
// fully opaque are flattened onto white first. The result is re-based so that
// its bounds start at (0, 0).
func LumaImage(img image.Image) *image.Gray {
	if o, ok := img.(interface{ Opaque() bool }); !ok || !o.Opaque() {
		img = Flatten(img)
	}
	bounds := img.Bounds()
	gray := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			gray.SetGray(x-bounds.Min.X, y-bounds.Min.Y, color.Gray{Y: Luma(uint8(r>>8), uint8(g>>8), uint8(b>>8))})
		}
	}
	return gray
}

// Histogram counts how many pixels of img have each luma intensity.
func Histogram(img image.Image) [256]int {
	return grayHistogram(LumaImage(img))
}

func grayHistogram(gray *image.Gray) [256]int {
	var hist [256]int
	// A gray image has identical R, G and B channels.
	bins := histogram.NewRGBAHistogram(gray).R.Bins
	for i := 0; i < len(bins) && i < len(hist); i++ {
		hist[i] = bins[i]
	}
	return hist
}

// FindThreshold selects a binarization threshold with Otsu's method.
//
// Every split t between the minimum and maximum observed intensity divides
// the pixels into a dark class (intensity <= t) and a light class
// (intensity > t). The between-class variance
//
//	σ² = p₁·p₂·(μ₁−μ₂)²
//
// is computed from the class pixel counts p and mean intensities μ, and the
// split with the largest σ² wins. Ties keep the lowest split.
//
// The split at the maximum intensity would leave the light class empty and is
// never evaluated. When every pixel has the same intensity no split exists and
// that intensity is returned. An empty histogram yields 0.
func FindThreshold(hist [256]int) uint8 {
	lo, hi := -1, -1
	var total, totalSum float64
	for i, n := range hist {
		if n == 0 {
			continue
		}
		if lo < 0 {
			lo = i
		}
		hi = i
		total += float64(n)
		totalSum += float64(i) * float64(n)
	}
	if lo < 0 {
		return 0
	}

	best := lo
	bestVariance := -1.0
	var darkCount, darkSum float64
	for t := lo; t < hi; t++ {
		darkCount += float64(hist[t])
		darkSum += float64(t) * float64(hist[t])
		lightCount := total - darkCount
		if darkCount == 0 || lightCount == 0 {
			continue
		}

		darkMean := darkSum / darkCount
		lightMean := (totalSum - darkSum) / lightCount
		variance := darkCount * lightCount * (darkMean - lightMean) * (darkMean - lightMean)

		if variance > bestVariance {
			bestVariance = variance
			best = t
		}
	}
	return uint8(best)
}
