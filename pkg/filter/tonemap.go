package filter

import (
	"fmt"
	"image"
	"image/color"

	"github.com/mdouchement/hdr/hdrcolor"
	"github.com/mdouchement/hdr/tmo"

	"github.com/abworrall/photostack/pkg/geom"
	"github.com/abworrall/photostack/pkg/pixel"
)

// Operators available to the enhancement filter. "levels" is a plain
// histogram stretch; the others are hdr tone mapping operators.
var Operators = []string{"levels", "drago03", "linear", "reinhard05"}

// hdrView presents an ordinary image to the tone mappers. Implements
// the hdr.Image interface.
type hdrView struct {
	src *image.RGBA
}

func newHDRView(img image.Image) hdrView { return hdrView{src: geom.CopyImage(img)} }

func (v hdrView) ColorModel() color.Model       { return hdrcolor.RGBModel }
func (v hdrView) Bounds() image.Rectangle       { return v.src.Bounds() }
func (v hdrView) At(x, y int) color.Color       { return v.HDRAt(x, y) }
func (v hdrView) HDRAt(x, y int) hdrcolor.Color { return pixel.FromColor(v.src.At(x, y)).RGB }
func (v hdrView) Size() int                     { return v.Bounds().Dx() * v.Bounds().Dy() }

// The operator defaults overexpose ordinary photos badly; these settings
// keep highlights in range.
func newToneMapper(name string, img image.Image) (tmo.ToneMappingOperator, error) {
	view := newHDRView(img)

	switch name {
	case "drago03":
		op := tmo.NewDefaultDrago03(view)
		op.Bias = 0.9
		return op, nil

	case "linear":
		return tmo.NewLinear(view), nil

	case "reinhard05":
		op := tmo.NewDefaultReinhard05(view)
		op.Chromatic = 0.1
		op.Light = 0.2
		return op, nil
	}

	return nil, fmt.Errorf("tone mapper '%s' not recognized, wanted %v", name, Operators)
}

// toneMap runs the named operator, and puts back the source alpha (the
// operators only deal in color).
func toneMap(name string, img image.Image) (image.Image, error) {
	op, err := newToneMapper(name, img)
	if err != nil {
		return nil, err
	}
	mapped := op.Perform()

	b := img.Bounds()
	mb := mapped.Bounds()
	dst := image.NewRGBA64(b)
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			c := pixel.FromColor(mapped.At(mb.Min.X+x, mb.Min.Y+y))
			c.A = pixel.FromColor(img.At(b.Min.X+x, b.Min.Y+y)).A
			dst.SetRGBA64(b.Min.X+x, b.Min.Y+y, c.Color())
		}
	}
	return dst, nil
}
