package imaging

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLuma(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b uint8
		want    uint8
	}{
		{"black", 0, 0, 0, 0},
		{"white", 255, 255, 255, 255},
		{"red", 255, 0, 0, 76},
		{"green", 0, 255, 0, 150},
		{"blue", 0, 0, 255, 29},
		{"mid gray", 128, 128, 128, 128},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Luma(tt.r, tt.g, tt.b))
		})
	}
}

func TestLumaImage_NonZeroOrigin(t *testing.T) {
	img := image.NewRGBA(image.Rect(10, 10, 14, 13))
	for y := 10; y < 13; y++ {
		for x := 10; x < 14; x++ {
			img.Set(x, y, color.White)
		}
	}
	img.Set(11, 10, color.Black)

	gray := LumaImage(img)
	require.Equal(t, image.Rect(0, 0, 4, 3), gray.Bounds())
	assert.EqualValues(t, 255, gray.GrayAt(0, 0).Y)
	assert.EqualValues(t, 0, gray.GrayAt(1, 0).Y)
}

func TestLumaImage_Transparent(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 2))
	// Zero value: fully transparent black.
	img.SetNRGBA(1, 0, color.NRGBA{A: 255})
	img.SetNRGBA(2, 0, color.NRGBA{A: 128})

	gray := LumaImage(img)
	assert.EqualValues(t, 255, gray.GrayAt(0, 0).Y, "transparent pixel reads as paper")
	assert.EqualValues(t, 0, gray.GrayAt(1, 0).Y, "opaque black stays ink")
	assert.InDelta(t, 127, int(gray.GrayAt(2, 0).Y), 2, "half transparent black is mid gray")
	assert.EqualValues(t, 255, gray.GrayAt(3, 1).Y)
}

func TestFlatten(t *testing.T) {
	img := image.NewNRGBA(image.Rect(5, 5, 8, 7))
	img.SetNRGBA(5, 5, color.NRGBA{R: 200, G: 10, B: 10, A: 255})

	flat := Flatten(img)
	require.Equal(t, image.Rect(0, 0, 3, 2), flat.Bounds())
	assert.Equal(t, color.NRGBA{R: 200, G: 10, B: 10, A: 255}, flat.NRGBAAt(0, 0))
	assert.Equal(t, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, flat.NRGBAAt(2, 1))
}

func TestHistogram(t *testing.T) {
	img := solidImage(10, 10, color.White)
	for x := 0; x < 10; x++ {
		img.Set(x, 0, color.Black)
	}

	hist := Histogram(img)
	assert.Equal(t, 10, hist[0])
	assert.Equal(t, 90, hist[255])

	total := 0
	for _, n := range hist {
		total += n
	}
	assert.Equal(t, 100, total)
}

func TestFindThreshold(t *testing.T) {
	tests := []struct {
		name string
		hist map[int]int
		want uint8
	}{
		{"empty", map[int]int{}, 0},
		{"uniform", map[int]int{77: 500}, 77},
		{"two levels keeps lowest split", map[int]int{10: 100, 200: 100}, 10},
		{"black and white", map[int]int{0: 30, 255: 70}, 0},
		{"three clusters", map[int]int{20: 50, 30: 50, 220: 100}, 30},
		{"separates dark from light", map[int]int{40: 10, 50: 10, 60: 10, 180: 10, 190: 10, 200: 10}, 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var hist [256]int
			for v, n := range tt.hist {
				hist[v] = n
			}
			assert.Equal(t, tt.want, FindThreshold(hist))
		})
	}
}

func TestFindThreshold_Bounds(t *testing.T) {
	var hist [256]int
	for i := 50; i < 120; i++ {
		hist[i] = i % 7
	}
	got := FindThreshold(hist)
	assert.GreaterOrEqual(t, got, uint8(50))
	assert.Less(t, got, uint8(119))
}
