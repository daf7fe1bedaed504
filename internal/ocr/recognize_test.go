package ocr

import (
	"context"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/konko2/letters-recognition/internal/detection"
)

// inset shrinks every rect by one pixel so that growing the binarized ink
// by one pixel restores the original strokes.
func inset(rects []rect) []rect {
	out := make([]rect, len(rects))
	for i, r := range rects {
		out[i] = rect{r.X0 + 1, r.Y0 + 1, r.X1 - 1, r.Y1 - 1}
	}
	return out
}

// page draws glyphs in black on a white w x h image. Each glyph is placed
// with its top-left corner at the matching offset.
func page(w, h int, glyphs [][]rect, offsets []image.Point) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.White)
		}
	}
	for i, g := range glyphs {
		for p := range draw(g, 1, offsets[i].X, offsets[i].Y) {
			img.Set(p.X, p.Y, color.Black)
		}
	}
	return img
}

func TestRecognize(t *testing.T) {
	speck := []rect{{1, 1, 4, 4}}
	img := page(200, 150,
		[][]rect{inset(glyphH), inset(glyphI), speck},
		[]image.Point{{20, 30}, {120, 30}, {5, 5}})

	report, err := Recognize(context.Background(), img, Options{Workers: 2})
	require.NoError(t, err)

	assert.Equal(t, uint8(0), report.Threshold)
	assert.Equal(t, 200, report.Width)
	assert.Equal(t, 150, report.Height)
	require.Len(t, report.Letters, 3)

	assert.Equal(t, None, report.Letters[0].Letter)
	assert.Equal(t, Bounds{X: 5, Y: 5, Width: 5, Height: 5}, report.Letters[0].Bounds)

	assert.Equal(t, "H", report.Letters[1].Letter)
	assert.Equal(t, Bounds{X: 20, Y: 30, Width: 60, Height: 80}, report.Letters[1].Bounds)

	assert.Equal(t, "I", report.Letters[2].Letter)
	assert.Equal(t, Bounds{X: 120, Y: 30, Width: 40, Height: 80}, report.Letters[2].Bounds)

	for i, l := range report.Letters {
		assert.Equal(t, i, l.Index)
		assert.Empty(t, l.Err)
	}

	assert.Equal(t, "HI", report.Text())
	anns := report.Annotations()
	require.Len(t, anns, 2)
	assert.Equal(t, image.Rect(20, 30, 80, 110), anns[0].Bounds)
	assert.Equal(t, "H", anns[0].Label)
}

func TestRecognize_TransparentBackground(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 200, 150))
	for p := range draw(inset(glyphH), 1, 20, 30) {
		img.SetNRGBA(p.X, p.Y, color.NRGBA{A: 255})
	}

	report, err := Recognize(context.Background(), img, Options{})
	require.NoError(t, err)
	require.Len(t, report.Letters, 1)
	assert.Equal(t, Bounds{X: 20, Y: 30, Width: 60, Height: 80}, report.Letters[0].Bounds)
	assert.Equal(t, "H", report.Text())
}

func TestRecognize_LeftBar(t *testing.T) {
	// The bar alone is too narrow for the guard rails.
	img := page(60, 80, [][]rect{inset([]rect{{0, 0, 6, 60}})}, []image.Point{{10, 10}})

	report, err := Recognize(context.Background(), img, Options{})
	require.NoError(t, err)
	require.Len(t, report.Letters, 1)
	assert.Equal(t, None, report.Letters[0].Letter)
	assert.Equal(t, "", report.Text())
}

func TestRecognize_Blank(t *testing.T) {
	img := page(30, 30, nil, nil)
	report, err := Recognize(context.Background(), img, Options{})
	require.NoError(t, err)
	assert.Equal(t, uint8(255), report.Threshold)
	// A uniform image is all ink, one instance covering everything.
	require.Len(t, report.Letters, 1)
	assert.Equal(t, Bounds{Width: 30, Height: 30}, report.Letters[0].Bounds)
}

func TestClassifyAll_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	instances := []detection.Instance{boxOf(20, 20), boxOf(30, 30)}
	_, err := ClassifyAll(ctx, instances, Options{Workers: 1})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClassifyAll_Empty(t *testing.T) {
	results, err := ClassifyAll(context.Background(), nil, Options{})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestClassifyAll_PanicIsolated(t *testing.T) {
	orig := classify
	t.Cleanup(func() { classify = orig })
	classify = func(inst detection.Instance) (Result, error) {
		if inst.Size.W == 13 {
			panic("broken template")
		}
		return orig(inst)
	}

	instances := []detection.Instance{
		glyphInstance(t, glyphH, 1),
		boxOf(13, 20),
		glyphInstance(t, glyphI, 1),
	}
	results, err := ClassifyAll(context.Background(), instances, Options{Workers: 3})
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "H", results[0].Letter)
	assert.Equal(t, None, results[1].Letter)
	assert.Equal(t, "broken template", results[1].Err)
	assert.Equal(t, "I", results[2].Letter)
}

func TestClassifyAll_RescaleFailureIsolated(t *testing.T) {
	instances := []detection.Instance{
		glyphInstance(t, glyphH, 1),
		boxOf(300, 300),
	}
	results, err := ClassifyAll(context.Background(), instances, Options{Workers: 2})
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "H", results[0].Letter)
	assert.Empty(t, results[0].Err)

	assert.Equal(t, None, results[1].Letter)
	assert.True(t, results[1].Rescaled)
	assert.Contains(t, results[1].Err, "failed to rescale 300x300 instance")
}
