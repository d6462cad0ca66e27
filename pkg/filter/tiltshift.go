package filter

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/abworrall/photostack/pkg/geom"
	"github.com/abworrall/photostack/pkg/pixel"
)

type TiltShiftMode int

const (
	TiltShiftOff TiltShiftMode = iota
	TiltShiftLinear
	TiltShiftRadial
)

var tiltShiftModeNames = []string{"off", "linear", "radial"}

func (m TiltShiftMode) String() string {
	if m < 0 || int(m) >= len(tiltShiftModeNames) {
		return fmt.Sprintf("TiltShiftMode(%d)", int(m))
	}
	return tiltShiftModeNames[m]
}

func ParseTiltShiftMode(s string) (TiltShiftMode, error) {
	for i, name := range tiltShiftModeNames {
		if strings.EqualFold(s, name) {
			return TiltShiftMode(i), nil
		}
	}
	if s == "" {
		return TiltShiftOff, nil
	}
	return TiltShiftOff, fmt.Errorf("tilt shift mode '%s' not recognized, wanted %v", s, tiltShiftModeNames)
}

const (
	DefaultFocusBand  = 0.1
	DefaultBlurRadius = 6.0
)

// TiltShiftFilter keeps a band (or disc) around Center sharp, and blurs
// the rest of the photo, fading in over another band's width.
type TiltShiftFilter struct {
	toggle
	Mode       TiltShiftMode
	Center     geom.Point // normalized
	Angle      float64    // radians; the direction of the sharp band in linear mode
	FocusBand  float64    // half-width of the sharp region, as a fraction of the longer side
	BlurRadius float64    // sigma, in pixels
}

func NewTiltShiftFilter() *TiltShiftFilter {
	return &TiltShiftFilter{
		toggle:     toggle{enabled: true},
		Center:     geom.Centre,
		FocusBand:  DefaultFocusBand,
		BlurRadius: DefaultBlurRadius,
	}
}

func (f *TiltShiftFilter) Identifier() string { return IDTiltShift }

func (f *TiltShiftFilter) String() string {
	return fmt.Sprintf("TiltShift[%s, %s, %.3f rad, band=%.3f, sigma=%.1f]",
		f.Mode, f.Center, f.Angle, f.FocusBand, f.BlurRadius)
}

func (f *TiltShiftFilter) Copy() *TiltShiftFilter {
	c := *f
	return &c
}

func (f *TiltShiftFilter) Clone() Filter { return f.Copy() }

// distance is how far (x,y) is from the sharp centre line or point, in
// pixels.
func (f *TiltShiftFilter) distance(x, y float64, b image.Rectangle) float64 {
	dx := x - (float64(b.Min.X) + f.Center.X*float64(b.Dx()))
	dy := y - (float64(b.Min.Y) + f.Center.Y*float64(b.Dy()))
	if f.Mode == TiltShiftRadial {
		return math.Hypot(dx, dy)
	}
	sin, cos := math.Sincos(f.Angle)
	return math.Abs(-sin*dx + cos*dy)
}

// Mask is the blur weight at (x,y): 0 is sharp, 1 is fully blurred.
func (f *TiltShiftFilter) Mask(x, y int, b image.Rectangle) float64 {
	band := f.FocusBand * float64(max(b.Dx(), b.Dy()))
	d := f.distance(float64(x)+0.5, float64(y)+0.5, b)
	return smoothstep(band, 2*band, d)
}

func smoothstep(e0, e1, x float64) float64 {
	if e1 <= e0 {
		if x < e0 {
			return 0
		}
		return 1
	}
	t := pixel.Clamp((x-e0)/(e1-e0), 0, 1)
	return t * t * (3 - 2*t)
}

func (f *TiltShiftFilter) Apply(img image.Image) (image.Image, error) {
	if f.Mode == TiltShiftOff || f.BlurRadius <= 0 {
		return img, nil
	}

	b := img.Bounds()
	blurred := pixel.NewPlanes(img).Blur(f.BlurRadius).Image()
	dst := image.NewRGBA64(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			w := f.Mask(x, y, b)
			sr, sg, sb, sa := img.At(x, y).RGBA()
			br, bg, bb, ba := blurred.At(x, y).RGBA()
			dst.SetRGBA64(x, y, color.RGBA64{
				R: mix(sr, br, w),
				G: mix(sg, bg, w),
				B: mix(sb, bb, w),
				A: mix(sa, ba, w),
			})
		}
	}
	return dst, nil
}

func mix(a, b uint32, w float64) uint16 {
	return uint16(float64(a)*(1-w) + float64(b)*w + 0.5)
}
