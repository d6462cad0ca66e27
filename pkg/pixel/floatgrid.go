package pixel

import (
	"image"
	"image/color"
	"math"
)

// A FloatGrid is a grid of floats, with some operations. Filters that need
// to do real arithmetic on a channel (blurs, masks) unpack into these.
type FloatGrid struct {
	stride int
	values []float64
}

func NewFloatGrid(w, h int) FloatGrid {
	return FloatGrid{
		stride: w,
		values: make([]float64, w*h),
	}
}

func (g1 *FloatGrid) NewFromThis() FloatGrid  { return NewFloatGrid(g1.Dx(), g1.Dy()) }
func (fg *FloatGrid) Set(x, y int, v float64) { fg.values[fg.stride*y+x] = v }
func (fg *FloatGrid) Get(x, y int) float64    { return fg.values[fg.stride*y+x] }
func (fg *FloatGrid) Dx() int                 { return fg.stride }

func (fg *FloatGrid) Dy() int {
	if fg.stride == 0 {
		return 0
	}
	return len(fg.values) / fg.stride
}

func (g1 *FloatGrid) Copy() *FloatGrid {
	g2 := FloatGrid{stride: g1.stride, values: make([]float64, len(g1.values))}
	copy(g2.values, g1.values)
	return &g2
}

// GaussianBlur does one pass of a separable [1 2 1]/4 kernel. Each pass
// adds a variance of 0.5 pixels^2; edges are clamped.
func (g1 FloatGrid) GaussianBlur() FloatGrid {
	width := g1.Dx()
	height := g1.Dy()
	g2 := g1.NewFromThis()
	if width < 2 || height < 2 {
		copy(g2.values, g1.values)
		return g2
	}

	T := g1.NewFromThis()

	//--- X blur, build up in T
	for y := 0; y < height; y++ {
		for x := 1; x < width-1; x++ {
			t := 2.0 * g1.Get(x, y)
			t += g1.Get(x-1, y)
			t += g1.Get(x+1, y)
			T.Set(x, y, t/4.0)
		}
		T.Set(0, y, (3.0*g1.Get(0, y)+g1.Get(1, y))/4.0)
		T.Set(width-1, y, (3.0*g1.Get(width-1, y)+g1.Get(width-2, y))/4.0)
	}

	//--- Y blur, read from T and generate output
	for x := 0; x < width; x++ {
		for y := 1; y < height-1; y++ {
			t := 2.0 * T.Get(x, y)
			t += T.Get(x, y-1)
			t += T.Get(x, y+1)
			g2.Set(x, y, t/4.0)
		}
		g2.Set(x, 0, (3.0*T.Get(x, 0)+T.Get(x, 1))/4.0)
		g2.Set(x, height-1, (3.0*T.Get(x, height-1)+T.Get(x, height-2))/4.0)
	}

	return g2
}

// Blur approximates a gaussian of the given sigma (in pixels). Wide blurs
// are done on a downsampled grid and scaled back up.
func (g1 FloatGrid) Blur(sigma float64) FloatGrid {
	if sigma <= 0 {
		return *g1.Copy()
	}
	if sigma > 8 && g1.Dx() >= 4 && g1.Dy() >= 4 {
		small := g1.DownSample().Blur(sigma / 2)
		g2 := g1.NewFromThis()
		small.UpSampleInto(&g2)
		return g2.GaussianBlur()
	}

	passes := int(math.Ceil(2 * sigma * sigma))
	g2 := g1
	for i := 0; i < passes; i++ {
		g2 = g2.GaussianBlur()
	}
	return g2
}

// DownSample returns a grid that is 1/4 of the size, averaging the values from the
// original.
func (g1 *FloatGrid) DownSample() FloatGrid {
	width := g1.Dx() / 2
	height := g1.Dy() / 2
	g2 := NewFloatGrid(width, height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			p := g1.Get(2*x, 2*y)
			p += g1.Get(2*x+1, 2*y)
			p += g1.Get(2*x, 2*y+1)
			p += g1.Get(2*x+1, 2*y+1)
			g2.Set(x, y, p/4.0)
		}
	}

	return g2
}

// UpSampleInto populates a grid `B`, which is assumed be 2x as big,
// by simply copying each value from `A` four times into a 2x2 block
// of values in `B`
func (A *FloatGrid) UpSampleInto(B *FloatGrid) {
	awidth := A.Dx()
	aheight := A.Dy()
	width := B.Dx()
	height := B.Dy()

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			ax := x / 2
			ay := y / 2
			if ax >= awidth {
				ax = awidth - 1
			}
			if ay >= aheight {
				ay = aheight - 1
			}
			B.Set(x, y, A.Get(ax, ay))
		}
	}
}

// Planes holds an image unpacked into unit-float channels.
type Planes struct {
	R, G, B, A FloatGrid
	Origin     image.Point
}

func NewPlanes(img image.Image) Planes {
	b := img.Bounds()
	p := Planes{
		R:      NewFloatGrid(b.Dx(), b.Dy()),
		G:      NewFloatGrid(b.Dx(), b.Dy()),
		B:      NewFloatGrid(b.Dx(), b.Dy()),
		A:      NewFloatGrid(b.Dx(), b.Dy()),
		Origin: b.Min,
	}
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			r, g, bb, a := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			p.R.Set(x, y, float64(r)/0xFFFF)
			p.G.Set(x, y, float64(g)/0xFFFF)
			p.B.Set(x, y, float64(bb)/0xFFFF)
			p.A.Set(x, y, float64(a)/0xFFFF)
		}
	}
	return p
}

func (p Planes) Blur(sigma float64) Planes {
	return Planes{
		R:      p.R.Blur(sigma),
		G:      p.G.Blur(sigma),
		B:      p.B.Blur(sigma),
		A:      p.A.Blur(sigma),
		Origin: p.Origin,
	}
}

// Image packs the planes back into a 16 bit image. Channels are clamped
// to [0, alpha] so the result stays valid premultiplied color.
func (p Planes) Image() *image.RGBA64 {
	w, h := p.R.Dx(), p.R.Dy()
	img := image.NewRGBA64(image.Rectangle{Min: p.Origin, Max: p.Origin.Add(image.Pt(w, h))})
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			a := Clamp(p.A.Get(x, y), 0, 1)
			img.SetRGBA64(p.Origin.X+x, p.Origin.Y+y, color.RGBA64{
				R: uint16(Clamp(p.R.Get(x, y), 0, a)*0xFFFF + 0.5),
				G: uint16(Clamp(p.G.Get(x, y), 0, a)*0xFFFF + 0.5),
				B: uint16(Clamp(p.B.Get(x, y), 0, a)*0xFFFF + 0.5),
				A: uint16(a*0xFFFF + 0.5),
			})
		}
	}
	return img
}
