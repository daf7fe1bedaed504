package imaging

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/konko2/letters-recognition/internal/geometry"
)

func TestRenderFeatureArea(t *testing.T) {
	verifying := geometry.NewPixelSet(geometry.Pixel{X: 5, Y: 5})
	ink := geometry.NewPixelSet(geometry.Pixel{X: 2, Y: 2}, geometry.Pixel{X: 5, Y: 6})

	img := RenderFeatureArea(10, 10, ink, verifying, geometry.Radius(1))
	require.Equal(t, image.Rect(0, 0, 10, 10), img.Bounds())

	tests := []struct {
		name string
		x, y int
		want color.Color
	}{
		{"verifying pixel", 5, 5, AreaVerifying},
		{"locality", 4, 5, AreaLocality},
		{"outside diamond", 4, 4, AreaBackground},
		{"ink on locality", 5, 6, AreaInk},
		{"ink elsewhere", 2, 2, AreaInk},
		{"background", 9, 9, AreaBackground},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, rgbaOf(tt.want), img.RGBAAt(tt.x, tt.y))
		})
	}
}

func TestRenderFeatureArea_Clipped(t *testing.T) {
	verifying := geometry.NewPixelSet(geometry.Pixel{X: 0, Y: 0}, geometry.Pixel{X: 20, Y: 20})
	img := RenderFeatureArea(4, 4, nil, verifying, geometry.Rect(3, 3))

	assert.Equal(t, rgbaOf(AreaVerifying), img.RGBAAt(0, 0))
	assert.Equal(t, rgbaOf(AreaLocality), img.RGBAAt(3, 3), "window edge")
}
