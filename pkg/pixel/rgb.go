package pixel

import (
	"fmt"
	"image/color"

	"github.com/mdouchement/hdr/hdrcolor"
)

// An RGBA is a straight (non-premultiplied) color with unit float
// channels. The color part is an hdrcolor.RGB, so it can also be fed to
// the hdr tone mappers.
type RGBA struct {
	hdrcolor.RGB // This field implements color.Color and hdrcolor.Color interfaces
	A            float64
}

// FromColor treats the input channels as [0, 0xFFFF] and un-premultiplies.
func FromColor(col color.Color) RGBA {
	r, g, b, a := col.RGBA()
	if a == 0 {
		return RGBA{}
	}
	alpha := float64(a)
	return RGBA{
		RGB: hdrcolor.RGB{
			R: float64(r) / alpha,
			G: float64(g) / alpha,
			B: float64(b) / alpha,
		},
		A: alpha / float64(0xFFFF),
	}
}

// Color premultiplies and clamps back into a 16 bit color.
func (c RGBA) Color() color.RGBA64 {
	a := Clamp(c.A, 0, 1)
	return color.RGBA64{
		R: uint16(Clamp(c.R, 0, 1)*a*0xFFFF + 0.5),
		G: uint16(Clamp(c.G, 0, 1)*a*0xFFFF + 0.5),
		B: uint16(Clamp(c.B, 0, 1)*a*0xFFFF + 0.5),
		A: uint16(a*0xFFFF + 0.5),
	}
}

func (c RGBA) Vec() Vec3 { return Vec3{c.R, c.G, c.B} }

func (c RGBA) WithVec(v Vec3) RGBA {
	c.R, c.G, c.B = v[0], v[1], v[2]
	return c
}

func (c RGBA) Luminance() float64 {
	return Luma[0]*c.R + Luma[1]*c.G + Luma[2]*c.B
}

func (c RGBA) String() string {
	return fmt.Sprintf("[%12.10f, %12.10f, %12.10f] a=%.4f", c.R, c.G, c.B, c.A)
}

func Clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
