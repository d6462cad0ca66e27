package geom

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRotateComposesRadians(t *testing.T) {
	m := Identity().Rotate(math.Pi / 2)
	assert.InDelta(t, math.Pi/2, m.Angle(), 1e-12)
	assert.True(t, m.Rotate(-math.Pi/2).ApproxEqual(Identity(), 1e-12))

	// The x unit vector turns to point down
	assert.InDelta(t, 0, m[0], 1e-12)
	assert.InDelta(t, 1, m[3], 1e-12)
}

func TestAngleOfZeroMatrix(t *testing.T) {
	assert.Equal(t, 0.0, Aff3{}.Angle())
	assert.True(t, math.IsNaN(NormalizeAngle(math.NaN())))
}

func TestNormalizeAngle(t *testing.T) {
	for _, tc := range []struct{ in, want float64 }{
		{0, 0},
		{-math.Pi / 2, 3 * math.Pi / 2},
		{5 * math.Pi, math.Pi},
		{-4 * math.Pi, 0},
	} {
		assert.InDelta(t, tc.want, NormalizeAngle(tc.in), 1e-9, "in=%f", tc.in)
	}
}

func TestScaleFactor(t *testing.T) {
	m := Identity().Scale(2, 2).Rotate(0.3)
	assert.InDelta(t, 2.0, m.ScaleFactor(), 1e-12)
	assert.InDelta(t, 0.3, m.Angle(), 1e-12)
}

func TestRectRotationsRoundTrip(t *testing.T) {
	r := Rect{0.1, 0.2, 0.5, 0.9}
	assert.InDelta(t, r.MinX, r.RotatedRight().RotatedLeft().MinX, 1e-12)
	assert.InDelta(t, r.MaxY, r.RotatedRight().RotatedLeft().MaxY, 1e-12)

	rr := r.RotatedRight()
	assert.InDelta(t, 0.1, rr.MinX, 1e-12)
	assert.InDelta(t, 0.8, rr.MaxX, 1e-12)
	assert.InDelta(t, r.Dy(), rr.Dx(), 1e-12)
	assert.True(t, rr.Valid())

	assertRectInDelta(t, r, r.FlippedHorizontal().FlippedHorizontal())
	assertRectInDelta(t, r, r.FlippedVertical().FlippedVertical())
}

func assertRectInDelta(t *testing.T, want, got Rect) {
	t.Helper()
	assert.InDelta(t, want.MinX, got.MinX, 1e-12)
	assert.InDelta(t, want.MinY, got.MinY, 1e-12)
	assert.InDelta(t, want.MaxX, got.MaxX, 1e-12)
	assert.InDelta(t, want.MaxY, got.MaxY, 1e-12)
}

func TestRectPixels(t *testing.T) {
	r := Rect{0.25, 0, 0.75, 0.5}
	assert.Equal(t, image.Rect(25, 0, 75, 20), r.Pixels(image.Rect(0, 0, 100, 40)))
	assert.False(t, Rect{0.5, 0, 0.2, 1}.Valid())
}

func TestOrientationFlippedWraps(t *testing.T) {
	assert.Equal(t, RightMirrored, Right.Flipped())
	assert.Equal(t, Right, Right.Flipped().Flipped())
	assert.Equal(t, Orientation(7), Orientation(3).Flipped())
	assert.Equal(t, Orientation(3), Orientation(11).Flipped().Flipped())
	assert.Equal(t, Up, Orientation(-4).Flipped())

	for o := Orientation(0); o < NumOrientations; o++ {
		assert.Equal(t, o, o.Flipped().Flipped())
		assert.NotEqual(t, o.Mirrored(), o.Flipped().Mirrored())
	}
}

func TestOrientationComposition(t *testing.T) {
	assert.Equal(t, Right, Up.RotatedRight())
	assert.Equal(t, Down, Up.RotatedRight().RotatedRight())
	assert.Equal(t, Up, Up.RotatedRight().RotatedRight().RotatedRight().RotatedRight())
	assert.Equal(t, Left, Up.RotatedLeft())
	assert.Equal(t, UpMirrored, Up.FlippedHorizontal())
	assert.Equal(t, DownMirrored, Up.FlippedVertical())
	assert.Equal(t, Down, Up.FlippedHorizontal().FlippedVertical())

	for o := Orientation(0); o < NumOrientations; o++ {
		assert.Equal(t, o, o.RotatedRight().RotatedLeft())
		assert.Equal(t, o, o.FlippedHorizontal().FlippedHorizontal())
	}
}

func TestOrientationEXIF(t *testing.T) {
	for o := Orientation(0); o < NumOrientations; o++ {
		back, err := OrientationFromEXIF(o.EXIF())
		require.NoError(t, err)
		assert.Equal(t, o, back)
	}
	assert.Equal(t, 6, Right.EXIF())

	_, err := OrientationFromEXIF(9)
	assert.Error(t, err)
}

func TestOrientationApply(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 3, 2))
	red := color.RGBA{255, 0, 0, 255}
	src.Set(0, 0, red)

	out := Right.Apply(src)
	assert.Equal(t, image.Rect(0, 0, 2, 3), out.Bounds())
	assert.Equal(t, color.RGBAModel.Convert(red), color.RGBAModel.Convert(out.At(1, 0)))

	out = UpMirrored.Apply(src)
	assert.Equal(t, image.Rect(0, 0, 3, 2), out.Bounds())
	assert.Equal(t, color.RGBAModel.Convert(red), color.RGBAModel.Convert(out.At(2, 0)))

	assert.Same(t, src, Up.Apply(src).(*image.RGBA))
}
