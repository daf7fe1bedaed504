package imaging

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"

	"github.com/golang/freetype/truetype"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Annotation marks one recognized glyph on the output image.
type Annotation struct {
	// Bounds is the glyph bounding box in source image coordinates
	// (Min inclusive, Max exclusive).
	Bounds image.Rectangle

	// Label is the text drawn next to the box, normally a single letter.
	Label string
}

// DefaultFace is the label font used when no TrueType font is configured.
var DefaultFace font.Face = basicfont.Face7x13

// LoadFontFace parses a TrueType font file and returns a face of the given
// point size at 72 DPI.
func LoadFontFace(path string, size float64) (font.Face, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read font: %w", err)
	}
	f, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	if size <= 0 {
		size = 16
	}
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

// LabelColor returns the annotation color for a label. Letters A through J
// each get their own hue; any other label is drawn in dark gray.
func LabelColor(label string) color.Color {
	if len(label) == 0 || label[0] < 'A' || label[0] > 'Z' {
		return colorful.Color{R: 0.25, G: 0.25, B: 0.25}
	}
	hue := float64(label[0]-'A') * 360 / 10
	for hue >= 360 {
		hue -= 360
	}
	return colorful.Hsv(hue, 0.85, 0.8).Clamped()
}

// Annotate returns a copy of img with a rectangle drawn around every
// annotation and its label written above the top-left corner (or inside the
// box when there is no room above). A nil face selects DefaultFace.
//
// The returned image has the same size as img and bounds starting at (0, 0).
func Annotate(img image.Image, annotations []Annotation, face font.Face) *image.RGBA {
	if face == nil {
		face = DefaultFace
	}

	src := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, src.Dx(), src.Dy()))
	draw.Draw(out, out.Bounds(), img, src.Min, draw.Src)

	for _, a := range annotations {
		c := LabelColor(a.Label)
		drawRectOutline(out, a.Bounds, c)
		if a.Label != "" {
			drawLabel(out, a.Bounds, a.Label, c, face)
		}
	}
	return out
}

// drawRectOutline draws the 1-pixel outline of r, one pixel outside the box so
// the glyph ink stays visible. Pixels outside the image are skipped.
func drawRectOutline(img *image.RGBA, r image.Rectangle, c color.Color) {
	outer := r.Inset(-1)
	for x := outer.Min.X; x < outer.Max.X; x++ {
		img.Set(x, outer.Min.Y, c)
		img.Set(x, outer.Max.Y-1, c)
	}
	for y := outer.Min.Y; y < outer.Max.Y; y++ {
		img.Set(outer.Min.X, y, c)
		img.Set(outer.Max.X-1, y, c)
	}
}

func drawLabel(img *image.RGBA, box image.Rectangle, label string, c color.Color, face font.Face) {
	metrics := face.Metrics()
	ascent := metrics.Ascent.Ceil()
	descent := metrics.Descent.Ceil()

	baseline := box.Min.Y - 2 - descent
	if baseline-ascent < 0 {
		baseline = box.Min.Y + ascent
	}

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.I(box.Min.X), Y: fixed.I(baseline)},
	}
	d.DrawString(label)
}
