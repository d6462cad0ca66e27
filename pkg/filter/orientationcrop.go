package filter

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"

	"github.com/abworrall/photostack/pkg/geom"
)

// OrientationCropFilter turns, mirrors and crops the photo. CropRect is
// normalized against the oriented photo.
type OrientationCropFilter struct {
	toggle
	CropRect    geom.Rect
	Orientation geom.Orientation
}

func NewOrientationCropFilter() *OrientationCropFilter {
	return &OrientationCropFilter{
		toggle:   toggle{enabled: true},
		CropRect: geom.UnitRect(),
	}
}

func (f *OrientationCropFilter) Identifier() string { return IDOrientationCrop }

func (f *OrientationCropFilter) String() string {
	return fmt.Sprintf("OrientationCrop[%s, %s]", f.Orientation, f.CropRect)
}

func (f *OrientationCropFilter) Copy() *OrientationCropFilter {
	c := *f
	return &c
}

func (f *OrientationCropFilter) Clone() Filter { return f.Copy() }

func (f *OrientationCropFilter) RotateRight() {
	f.Orientation = f.Orientation.RotatedRight()
	f.CropRect = f.CropRect.RotatedRight()
}

func (f *OrientationCropFilter) RotateLeft() {
	f.Orientation = f.Orientation.RotatedLeft()
	f.CropRect = f.CropRect.RotatedLeft()
}

func (f *OrientationCropFilter) FlipHorizontal() {
	f.Orientation = f.Orientation.FlippedHorizontal()
	f.CropRect = f.CropRect.FlippedHorizontal()
}

func (f *OrientationCropFilter) FlipVertical() {
	f.Orientation = f.Orientation.FlippedVertical()
	f.CropRect = f.CropRect.FlippedVertical()
}

// Crops tells whether the crop rect cuts anything off.
func (f *OrientationCropFilter) Crops() bool {
	return f.CropRect.Valid() && f.CropRect != geom.UnitRect()
}

func (f *OrientationCropFilter) Apply(img image.Image) (image.Image, error) {
	out := f.Orientation.Apply(img)
	if !f.Crops() {
		return out, nil
	}

	r := f.CropRect.Pixels(out.Bounds())
	if r.Empty() {
		return nil, fmt.Errorf("crop %s leaves nothing of %s", f.CropRect, out.Bounds())
	}
	dst := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(dst, dst.Bounds(), out, r.Min, draw.Src)
	return dst, nil
}
