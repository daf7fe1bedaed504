package imaging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/konko2/letters-recognition/internal/geometry"
)

func TestScaleInk(t *testing.T) {
	ink := make(geometry.PixelSet)
	for y := 0; y < 200; y++ {
		for x := 0; x < 40; x++ {
			ink.Add(geometry.Pixel{X: x, Y: y})
		}
	}

	bm := ScaleInk(ink, 100, 200, 0.5, 130)
	require.Equal(t, 50, bm.Width)
	require.Equal(t, 100, bm.Height)
	assert.EqualValues(t, 130, bm.Threshold)
	assert.True(t, bm.Ink(5, 50), "bar interior stays ink")
	assert.False(t, bm.Ink(40, 50), "background stays background")
}

func TestScaleInk_MinimumSize(t *testing.T) {
	ink := geometry.NewPixelSet(geometry.Pixel{X: 0, Y: 0})
	bm := ScaleInk(ink, 10, 10, 0.01, 130)
	assert.Equal(t, 1, bm.Width)
	assert.Equal(t, 1, bm.Height)
}

func TestScaledSide(t *testing.T) {
	tests := []struct {
		n     int
		ratio float64
		want  int
	}{
		{240, 100.0 / 240, 100},
		{180, 100.0 / 240, 75},
		{101, 100.0 / 101, 100},
		{3, 0.1, 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, scaledSide(tt.n, tt.ratio), "scaledSide(%d, %.4f)", tt.n, tt.ratio)
	}
}
