package filter

import (
	"fmt"
	"image"

	"github.com/abworrall/photostack/pkg/pixel"
)

// ColorAdjustmentFilter is the manual brightness, contrast and saturation
// control. Brightness is an offset in [-1,1]; the others are multipliers
// in [0,2], with 1 meaning no change.
type ColorAdjustmentFilter struct {
	toggle
	Brightness float64
	Contrast   float64
	Saturation float64
}

func NewColorAdjustmentFilter() *ColorAdjustmentFilter {
	return &ColorAdjustmentFilter{
		toggle:     toggle{enabled: true},
		Contrast:   1,
		Saturation: 1,
	}
}

func (f *ColorAdjustmentFilter) Identifier() string { return IDColorAdjustment }

func (f *ColorAdjustmentFilter) String() string {
	return fmt.Sprintf("ColorAdjustment[b=%.3f, c=%.3f, s=%.3f]", f.Brightness, f.Contrast, f.Saturation)
}

func (f *ColorAdjustmentFilter) Copy() *ColorAdjustmentFilter {
	c := *f
	return &c
}

func (f *ColorAdjustmentFilter) Clone() Filter { return f.Copy() }

func (f *ColorAdjustmentFilter) IsIdentity() bool {
	return f.Brightness == 0 && f.Contrast == 1 && f.Saturation == 1
}

// Matrix folds the three controls into v' = m*v + offset: saturation
// first, then contrast about mid gray, then the brightness shift.
func (f *ColorAdjustmentFilter) Matrix() (m pixel.Mat3, offset float64) {
	m = pixel.ScaleMat3(f.Contrast).Mult(pixel.SaturationMatrix(f.Saturation))
	offset = 0.5 - 0.5*f.Contrast + f.Brightness
	return m, offset
}

func (f *ColorAdjustmentFilter) Apply(img image.Image) (image.Image, error) {
	if f.IsIdentity() {
		return img, nil
	}

	m, offset := f.Matrix()
	b := img.Bounds()
	dst := image.NewRGBA64(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := pixel.FromColor(img.At(x, y))
			v := m.Apply(c.Vec())
			for i := range v {
				v[i] += offset
			}
			v.FloorAt(0)
			v.CeilingAt(1)
			dst.SetRGBA64(x, y, c.WithVec(v).Color())
		}
	}
	return dst, nil
}
