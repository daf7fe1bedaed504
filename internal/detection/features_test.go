package detection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/konko2/letters-recognition/internal/geometry"
)

func mustInstance(t *testing.T, ink geometry.PixelSet) Instance {
	t.Helper()
	inst, err := NewInstance(ink)
	require.NoError(t, err)
	return inst
}

// glyphH is a 60x80 H drawn with 8 pixel strokes.
func glyphH() geometry.PixelSet {
	return union(fillRect(0, 0, 8, 80), fillRect(52, 0, 60, 80), fillRect(0, 36, 60, 44))
}

// glyphE is a 40x80 E drawn with 8 pixel strokes.
func glyphE() geometry.PixelSet {
	return union(fillRect(0, 0, 8, 80), fillRect(0, 0, 40, 8), fillRect(0, 36, 36, 44), fillRect(0, 72, 40, 80))
}

// leftBar is a 40x60 box whose only ink is a 6 pixel wide bar on the left.
func leftBar() geometry.PixelSet {
	return union(fillRect(0, 0, 6, 60), geometry.NewPixelSet(geometry.Pixel{X: 39, Y: 59}))
}

func expectOnly(present ...string) FeatureVector {
	v := make(FeatureVector)
	for _, name := range Catalog() {
		v[name] = false
	}
	for _, name := range present {
		v[name] = true
	}
	return v
}

func TestCatalog(t *testing.T) {
	names := Catalog()
	require.Len(t, names, 13)
	assert.Equal(t, LeftVerticalLine, names[0])
	assert.Equal(t, HookFromJ, names[len(names)-1])

	seen := make(map[string]bool)
	for _, n := range names {
		assert.False(t, seen[n], "duplicate %s", n)
		seen[n] = true
	}

	names[0] = "changed"
	assert.Equal(t, LeftVerticalLine, Catalog()[0], "Catalog must return a copy")
}

func TestTemplate_Unknown(t *testing.T) {
	_, _, err := Template("Z_zigzag", Size{W: 10, H: 10})
	assert.ErrorIs(t, err, ErrUnknownFeature)

	_, err = HasFeature(Instance{Size: Size{W: 10, H: 10}}, "Z_zigzag")
	assert.ErrorIs(t, err, ErrUnknownFeature)
}

func TestTemplate_VerticalLine(t *testing.T) {
	verifying, tol, err := Template(LeftVerticalLine, Size{W: 40, H: 60})
	require.NoError(t, err)

	assert.Equal(t, "rect(6,7)", tol.String())
	assert.Equal(t, 44, verifying.Len())
	for p := range verifying {
		assert.Equal(t, 0, p.X)
		assert.True(t, p.Y > 7 && p.Y < 52, "y=%d outside the middle band", p.Y)
	}
}

func TestTemplate_MiddleLineParts(t *testing.T) {
	size := Size{W: 40, H: 60}
	var parts []geometry.PixelSet
	for _, name := range []string{FirstPartHorizontal, SecondPartHorizontal, ThirdPartHorizontal} {
		verifying, tol, err := Template(name, size)
		require.NoError(t, err)
		assert.Equal(t, "rect(5,10)", tol.String())
		parts = append(parts, verifying)
	}

	assert.Equal(t, 16, parts[0].Len())
	assert.Equal(t, 8, parts[1].Len())
	assert.Equal(t, 16, parts[2].Len())
	assert.True(t, parts[0].IsDisjoint(parts[1]))
	assert.True(t, parts[1].IsDisjoint(parts[2]))

	row := make(geometry.PixelSet)
	for x := 0; x < 40; x++ {
		row.Add(geometry.Pixel{X: x, Y: 30})
	}
	assert.True(t, union(parts...).Equal(row))
}

func TestTemplate_Tolerances(t *testing.T) {
	size := Size{W: 60, H: 80}
	tests := []struct {
		name string
		want string
	}{
		{UpperHorizontalLine, "rect(7,13)"},
		{ASloppingLines, "radius(12)"},
		{CCircle, "radius(17)"},
		{BCircles, "radius(10)"},
		{DBelly, "radius(12)"},
		{HookFromJ, "radius(10)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verifying, tol, err := Template(tt.name, size)
			require.NoError(t, err)
			assert.Equal(t, tt.want, tol.String())
			assert.NotZero(t, verifying.Len())
		})
	}
}

func TestTemplate_BellyShapes(t *testing.T) {
	size := Size{W: 40, H: 60}

	d, _, err := Template(DBelly, size)
	require.NoError(t, err)
	for p := range d {
		assert.True(t, p.X >= 0 && p.X < size.W, "D_belly x=%d", p.X)
	}

	b, _, err := Template(BCircles, size)
	require.NoError(t, err)
	for p := range b {
		assert.True(t, p.X >= size.W/10 && p.X <= size.W, "B_circles x=%d", p.X)
	}

	c, _, err := Template(CCircle, size)
	require.NoError(t, err)
	for p := range c {
		assert.Less(t, p.X, size.W)
		assert.False(t, p.X > size.W/2 && p.Y >= size.H/12 && p.Y < size.H/2, "C_circle keeps %v in its opening", p)
	}

	hook, _, err := Template(HookFromJ, size)
	require.NoError(t, err)
	for p := range hook {
		assert.GreaterOrEqual(t, 2*p.Y, 3*size.H/5+size.H)
	}
}

func TestFindFeatures_LeftBar(t *testing.T) {
	inst := mustInstance(t, fillRect(0, 0, 6, 60))
	require.Equal(t, Size{W: 6, H: 60}, inst.Size)

	// Place the same bar in a 40x60 box.
	inst = Instance{Pixels: fillRect(0, 0, 6, 60), Size: Size{W: 40, H: 60}}
	got := FindFeatures(inst)
	assert.Equal(t, expectOnly(LeftVerticalLine), got)
	assert.Equal(t, []string{LeftVerticalLine}, got.Present())
}

func TestFindFeatures_H(t *testing.T) {
	inst := mustInstance(t, glyphH())
	require.Equal(t, Size{W: 60, H: 80}, inst.Size)

	want := expectOnly(LeftVerticalLine, RightVerticalLine,
		FirstPartHorizontal, SecondPartHorizontal, ThirdPartHorizontal)
	assert.Equal(t, want, FindFeatures(inst))
}

func TestFindFeatures_MatchesHasFeature(t *testing.T) {
	inst := mustInstance(t, glyphE())
	v := FindFeatures(inst)
	require.Len(t, v, len(Catalog()))

	for _, name := range Catalog() {
		has, err := HasFeature(inst, name)
		require.NoError(t, err)
		assert.Equal(t, v[name], has, name)
	}
	assert.True(t, v[LeftVerticalLine])
	assert.True(t, v[UpperHorizontalLine])
	assert.True(t, v[BottomHorizontalLine])
	assert.False(t, v[MiddleVerticalLine])
}

func TestHasFeature_EmptyTemplateIsCovered(t *testing.T) {
	inst := mustInstance(t, geometry.NewPixelSet(geometry.Pixel{X: 0, Y: 0}))
	has, err := HasFeature(inst, LeftVerticalLine)
	require.NoError(t, err)
	assert.True(t, has)
}

func widen(tol geometry.Tolerance, by int) geometry.Tolerance {
	rx, ry := tol.Extents()
	if tol.IsRadius() {
		return geometry.Radius(rx + by)
	}
	return geometry.Rect(rx+by, ry+by)
}

func TestCovers_Monotonic(t *testing.T) {
	glyphs := map[string]geometry.PixelSet{
		"H":   glyphH(),
		"E":   glyphE(),
		"bar": leftBar(),
	}
	for glyph, ink := range glyphs {
		inst := mustInstance(t, ink)
		for _, name := range Catalog() {
			verifying, tol, err := Template(name, inst.Size)
			require.NoError(t, err)

			narrow := Covers(inst.Pixels, verifying, tol)
			for by := 1; by <= 8; by++ {
				wide := Covers(inst.Pixels, verifying, widen(tol, by))
				if narrow {
					assert.True(t, wide, "%s/%s turned false when widened by %d", glyph, name, by)
				}
				narrow = wide
			}
		}
	}
}
