package stack

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abworrall/photostack/pkg/filter"
	"github.com/abworrall/photostack/pkg/geom"
)

func newSticker(o geom.Orientation) *filter.Sticker {
	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	for i := range img.Pix {
		img.Pix[i] = 0xFF
	}
	return &filter.Sticker{Name: "test", Image: img, Orientation: o}
}

// stackWithStickers has n stickers spread over the canvas, each with its
// own rotation and scale.
func stackWithStickers(n int) *FixedFilterStack {
	s := New()
	for i := 0; i < n; i++ {
		f := s.AddSticker(newSticker(geom.Orientation(i)))
		f.Center = geom.Pt(0.1+0.8*float64(i)/float64(max(n, 1)), 0.9-0.1*float64(i))
		f.Transform = geom.Identity().Rotate(0.3 * float64(i)).Scale(1+0.1*float64(i), 1+0.1*float64(i))
	}
	return s
}

func requirePlacementInDelta(t *testing.T, want, got *filter.Placement) {
	t.Helper()
	require.InDelta(t, want.Center.X, got.Center.X, 1e-9)
	require.InDelta(t, want.Center.Y, got.Center.Y, 1e-9)
	require.True(t, want.Transform.ApproxEqual(got.Transform, 1e-9), "%s vs %s", want.Transform, got.Transform)
}

func placements(stickers []*filter.StickerFilter) []filter.Placement {
	ret := []filter.Placement{}
	for _, f := range stickers {
		ret = append(ret, f.Placement)
	}
	return ret
}

func TestActiveFiltersOrder(t *testing.T) {
	for _, n := range []int{0, 1, 5} {
		s := stackWithStickers(n)
		active := s.ActiveFilters()
		require.Len(t, active, NumFixedFilters+n)

		ids := []string{}
		for _, f := range active[:NumFixedFilters] {
			ids = append(ids, f.Identifier())
		}
		assert.Equal(t, []string{
			filter.IDEnhancement,
			filter.IDOrientationCrop,
			filter.IDTiltShift,
			filter.IDEffect,
			filter.IDColorAdjustment,
			filter.IDText,
		}, ids)

		for i, o := range s.Overlays() {
			assert.Same(t, o, active[NumFixedFilters+i])
		}
	}
}

func TestActiveFiltersIncludesDisabled(t *testing.T) {
	s := New()
	assert.False(t, s.Enhancement.Enabled())
	assert.Same(t, s.Enhancement, s.ActiveFilters()[0])
}

func TestActiveFiltersSyncsCrop(t *testing.T) {
	s := stackWithStickers(3)
	crop := geom.Rect{MinX: 0.1, MinY: 0.25, MaxX: 0.6, MaxY: 0.9}
	s.OrientationCrop.CropRect = crop

	s.ActiveFilters()
	assert.Equal(t, crop, s.Text.CropRect)
	for _, o := range s.Overlays() {
		assert.Equal(t, crop, o.Geometry().CropRect)
	}
}

func TestAddOverlaySyncsCrop(t *testing.T) {
	s := New()
	crop := geom.Rect{MinX: 0, MinY: 0, MaxX: 0.5, MaxY: 0.5}
	require.NoError(t, s.SetCrop(crop))

	f := s.AddSticker(newSticker(geom.Up))
	assert.Equal(t, crop, f.CropRect)
	assert.Equal(t, filter.DefaultStickerSize, f.Size)

	assert.Error(t, s.SetCrop(geom.Rect{MinX: 0.5, MaxX: 0.2, MaxY: 1}))
	assert.Equal(t, crop, s.OrientationCrop.CropRect)
}

func TestRotateStickersExample(t *testing.T) {
	s := New()
	f := s.AddSticker(newSticker(geom.Up))
	f.Center = geom.Pt(0.2, 0.2)

	s.RotateStickersRight()
	assert.InDelta(t, 0.8, f.Center.X, 1e-9)
	assert.InDelta(t, 0.2, f.Center.Y, 1e-9)
	assert.True(t, geom.Identity().Rotate(math.Pi/2).ApproxEqual(f.Transform, 1e-12))
	assert.Equal(t, geom.Up, f.Sticker.Orientation, "rotation leaves the tag alone")
}

func TestRotateStickersInverse(t *testing.T) {
	s := stackWithStickers(4)
	orig := placements(s.Stickers())

	s.RotateStickersRight()
	s.RotateStickersLeft()
	for i, f := range s.Stickers() {
		requirePlacementInDelta(t, &orig[i], &f.Placement)
	}

	s.RotateStickersLeft()
	s.RotateStickersRight()
	for i, f := range s.Stickers() {
		requirePlacementInDelta(t, &orig[i], &f.Placement)
	}
}

func TestRotateStickersFullTurn(t *testing.T) {
	s := stackWithStickers(4)
	orig := placements(s.Stickers())

	for i := 0; i < 4; i++ {
		s.RotateStickersRight()
	}
	for i, f := range s.Stickers() {
		requirePlacementInDelta(t, &orig[i], &f.Placement)
	}
}

func TestRotateStickersLeavesText(t *testing.T) {
	s := stackWithStickers(1)
	s.Text.Center = geom.Pt(0.1, 0.1)

	s.RotateStickersRight()
	assert.Equal(t, geom.Pt(0.1, 0.1), s.Text.Center)
	assert.Equal(t, geom.Identity(), s.Text.Transform)

	s.RotateTextRight()
	assert.InDelta(t, 0.9, s.Text.Center.X, 1e-9)
	assert.InDelta(t, 0.1, s.Text.Center.Y, 1e-9)
}

func TestFlipStickersInvolution(t *testing.T) {
	s := stackWithStickers(8)
	orig := placements(s.Stickers())
	tags := []geom.Orientation{}
	for _, f := range s.Stickers() {
		tags = append(tags, f.Sticker.Orientation)
	}

	s.FlipStickersHorizontal()
	for i, f := range s.Stickers() {
		assert.Equal(t, (tags[i]+4)%8, f.Sticker.Orientation)
		assert.InDelta(t, 1-orig[i].Center.X, f.Center.X, 1e-9)
	}
	s.FlipStickersHorizontal()
	for i, f := range s.Stickers() {
		requirePlacementInDelta(t, &orig[i], &f.Placement)
		assert.Equal(t, tags[i], f.Sticker.Orientation)
	}

	s.FlipStickersVertical()
	s.FlipStickersVertical()
	for i, f := range s.Stickers() {
		requirePlacementInDelta(t, &orig[i], &f.Placement)
		assert.Equal(t, tags[i], f.Sticker.Orientation)
	}
}

func TestFlipStickerTagExample(t *testing.T) {
	s := New()
	f := s.AddSticker(newSticker(geom.Orientation(3)))

	s.FlipStickersHorizontal()
	assert.Equal(t, geom.Orientation(7), f.Sticker.Orientation)
	s.FlipStickersHorizontal()
	assert.Equal(t, geom.Orientation(3), f.Sticker.Orientation)
}

func TestFlipTextLeavesTags(t *testing.T) {
	s := stackWithStickers(2)
	s.Text.Center = geom.Pt(0.2, 0.3)

	s.FlipTextVertical()
	assert.InDelta(t, 0.2, s.Text.Center.X, 1e-9)
	assert.InDelta(t, 0.7, s.Text.Center.Y, 1e-9)
	for i, f := range s.Stickers() {
		assert.Equal(t, geom.Orientation(i), f.Sticker.Orientation)
	}
}

func TestTextOverlaysFollowText(t *testing.T) {
	s := New()
	txt := filter.NewTextFilter()
	txt.Center = geom.Pt(0.2, 0.2)
	s.AddOverlay(txt)

	s.RotateStickersRight()
	assert.Equal(t, geom.Pt(0.2, 0.2), txt.Center)

	s.RotateTextRight()
	assert.InDelta(t, 0.8, txt.Center.X, 1e-9)
	assert.Empty(t, s.Stickers())
}

func TestDuplicateIndependent(t *testing.T) {
	s := stackWithStickers(3)
	s.Text.SetText("hello")
	s.ColorAdjustment.Brightness = 0.2
	s.OrientationCrop.CropRect = geom.Rect{MinX: 0.1, MinY: 0.1, MaxX: 0.9, MaxY: 0.9}

	d := s.Duplicate()
	require.Equal(t, s.Len(), d.Len())
	for i, o := range d.Overlays() {
		assert.NotSame(t, s.Overlays()[i], o)
		assert.Equal(t, s.Overlays()[i].ID(), o.ID())
	}

	origCenter := s.Stickers()[0].Center
	d.Stickers()[0].Center = geom.Pt(0.5, 0.5)
	d.Text.SetText("bye")
	d.ColorAdjustment.Brightness = -0.5
	d.OrientationCrop.CropRect = geom.UnitRect()
	d.Effect.SetEnabled(false)
	d.RotateStickersRight()
	d.FlipStickersHorizontal()
	d.RemoveOverlay(d.Overlays()[2].ID())

	assert.Equal(t, origCenter, s.Stickers()[0].Center)
	assert.Equal(t, "hello", s.Text.Text())
	assert.Equal(t, 0.2, s.ColorAdjustment.Brightness)
	assert.Equal(t, geom.Rect{MinX: 0.1, MinY: 0.1, MaxX: 0.9, MaxY: 0.9}, s.OrientationCrop.CropRect)
	assert.True(t, s.Effect.Enabled())
	assert.Equal(t, 3, s.Len())
	for i, f := range s.Stickers() {
		assert.Equal(t, geom.Orientation(i), f.Sticker.Orientation)
	}

	// And the other way round
	s.Stickers()[1].Size = 0.9
	assert.Equal(t, filter.DefaultStickerSize, d.Stickers()[1].Size)
}

func TestDuplicateEmpty(t *testing.T) {
	d := New().Duplicate()
	assert.NotNil(t, d.Overlays())
	assert.Equal(t, 0, d.Len())
	assert.Len(t, d.ActiveFilters(), NumFixedFilters)
}

func TestRemoveOverlay(t *testing.T) {
	s := stackWithStickers(3)
	ids := []any{}
	for _, o := range s.Overlays() {
		ids = append(ids, o.ID())
	}

	assert.True(t, s.RemoveOverlay(s.Overlays()[1].ID()))
	assert.False(t, s.RemoveOverlay(uuid.New()))
	require.Equal(t, 2, s.Len())
	assert.Equal(t, ids[0], s.Overlays()[0].ID())
	assert.Equal(t, ids[2], s.Overlays()[1].ID())

	_, ok := s.Overlay(s.Overlays()[1].ID())
	assert.True(t, ok)
}

func TestWholeCanvasRotate(t *testing.T) {
	s := stackWithStickers(2)
	s.Text.Center = geom.Pt(0.3, 0.4)
	require.NoError(t, s.SetCrop(geom.Rect{MinX: 0, MinY: 0, MaxX: 0.5, MaxY: 1}))

	s.RotateRight()
	assert.Equal(t, geom.Right, s.OrientationCrop.Orientation)
	assert.InDelta(t, 0.0, s.OrientationCrop.CropRect.MinX, 1e-9)
	assert.InDelta(t, 1.0, s.OrientationCrop.CropRect.MaxX, 1e-9)
	assert.InDelta(t, 0.5, s.OrientationCrop.CropRect.MaxY, 1e-9)
	assert.InDelta(t, 0.6, s.Text.Center.X, 1e-9)
	assert.InDelta(t, 0.3, s.Text.Center.Y, 1e-9)
	for _, f := range s.Stickers() {
		assert.Equal(t, s.OrientationCrop.CropRect, f.CropRect)
	}

	s.RotateLeft()
	assert.Equal(t, geom.Up, s.OrientationCrop.Orientation)
	assert.InDelta(t, 0.3, s.Text.Center.X, 1e-9)
}

func TestWholeCanvasFlip(t *testing.T) {
	s := stackWithStickers(1)
	tag := s.Stickers()[0].Sticker.Orientation

	s.FlipHorizontal()
	assert.Equal(t, geom.UpMirrored, s.OrientationCrop.Orientation)
	assert.Equal(t, tag.Flipped(), s.Stickers()[0].Sticker.Orientation)

	s.FlipHorizontal()
	s.FlipVertical()
	assert.Equal(t, geom.DownMirrored, s.OrientationCrop.Orientation)
}

func solid(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestRenderDefaultsAreNoOps(t *testing.T) {
	img := solid(8, 8, color.Gray{100})
	out, err := New().Render(img)
	require.NoError(t, err)
	assert.Same(t, img, out)
}

func TestRenderHonoursEnabled(t *testing.T) {
	img := solid(8, 8, color.Gray{100})
	s := New()
	s.ColorAdjustment.Brightness = 1

	out, err := s.Render(img)
	require.NoError(t, err)
	r, _, _, _ := out.At(3, 3).RGBA()
	assert.Equal(t, uint32(0xFFFF), r)

	s.ColorAdjustment.SetEnabled(false)
	out, err = s.Render(img)
	require.NoError(t, err)
	assert.Same(t, img, out)
}

func TestRenderDrawsStickers(t *testing.T) {
	img := solid(20, 20, color.Black)
	s := New()
	s.AddSticker(newSticker(geom.Up))

	out, err := s.Render(img)
	require.NoError(t, err)
	r, _, _, _ := out.At(10, 10).RGBA()
	assert.Equal(t, uint32(0xFFFF), r)
	r, _, _, _ = out.At(1, 1).RGBA()
	assert.Equal(t, uint32(0), r)
}

func TestRenderWrapsErrors(t *testing.T) {
	s := New()
	s.Text.SetText("oops")
	s.Text.Color = "nope"

	_, err := s.Render(solid(8, 8, color.Black))
	require.Error(t, err)
	assert.Contains(t, err.Error(), filter.IDText)
}

func TestString(t *testing.T) {
	s := stackWithStickers(1)
	str := s.String()
	assert.Contains(t, str, filter.IDOrientationCrop)
	assert.Contains(t, str, filter.IDSticker)
}
