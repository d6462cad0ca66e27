// Package response holds the stylistic "response" presets. Each preset is a
// named, parameterless stage: a per-channel tone curve applied to the photo.
package response

import (
	"fmt"
	"image"
	"strings"

	"gonum.org/v1/gonum/interp"

	"github.com/abworrall/photostack/pkg/pixel"
)

type Type int

const (
	None Type = iota
	Eighties
	Settled
	Plate
)

// A Preset describes one response filter; the curves map input channel
// values in [0,1] to output values.
type Preset struct {
	Type         Type
	ResponseName string
	DisplayName  string
	Red          [][2]float64
	Green        [][2]float64
	Blue         [][2]float64
}

var presets = []Preset{
	{Type: None, ResponseName: "None", DisplayName: "None"},
	{
		Type: Eighties, ResponseName: "Eighties", DisplayName: "80s",
		Red:   [][2]float64{{0, 0.08}, {0.5, 0.58}, {1, 0.96}},
		Green: [][2]float64{{0, 0.05}, {0.5, 0.50}, {1, 0.92}},
		Blue:  [][2]float64{{0, 0.15}, {0.5, 0.45}, {1, 0.82}},
	},
	{
		Type: Settled, ResponseName: "Settled", DisplayName: "Settled",
		Red:   [][2]float64{{0, 0.10}, {0.5, 0.52}, {1, 0.88}},
		Green: [][2]float64{{0, 0.10}, {0.5, 0.50}, {1, 0.88}},
		Blue:  [][2]float64{{0, 0.12}, {0.5, 0.48}, {1, 0.85}},
	},
	{
		Type: Plate, ResponseName: "Plate", DisplayName: "Plate",
		Red:   [][2]float64{{0, 0}, {0.25, 0.18}, {0.75, 0.85}, {1, 1}},
		Green: [][2]float64{{0, 0}, {0.25, 0.18}, {0.75, 0.85}, {1, 1}},
		Blue:  [][2]float64{{0, 0.05}, {0.5, 0.55}, {1, 1}},
	},
}

// Presets lists the catalogue, in Type order.
func Presets() []Preset {
	return append([]Preset(nil), presets...)
}

func (t Type) Preset() Preset {
	if t < 0 || int(t) >= len(presets) {
		return presets[None]
	}
	return presets[t]
}

func (t Type) String() string { return t.Preset().ResponseName }

// ParseType finds a preset by response or display name, ignoring case.
func ParseType(name string) (Type, error) {
	if name == "" {
		return None, nil
	}
	for _, p := range presets {
		if strings.EqualFold(name, p.ResponseName) || strings.EqualFold(name, p.DisplayName) {
			return p.Type, nil
		}
	}
	return None, fmt.Errorf("no response filter named '%s'", name)
}

// A Curve is a fitted tone curve.
type Curve struct {
	pl interp.PiecewiseLinear
}

// NewCurve fits a curve through at least two points, with strictly
// increasing x.
func NewCurve(points [][2]float64) (*Curve, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("fit curve %v: need at least 2 points", points)
	}
	for i := 1; i < len(points); i++ {
		if points[i][0] <= points[i-1][0] {
			return nil, fmt.Errorf("fit curve %v: x values not strictly increasing", points)
		}
	}

	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i], ys[i] = p[0], p[1]
	}
	c := Curve{}
	if err := c.pl.Fit(xs, ys); err != nil {
		return nil, fmt.Errorf("fit curve %v: %v", points, err)
	}
	return &c, nil
}

func (c *Curve) At(v float64) float64 {
	return c.pl.Predict(pixel.Clamp(v, 0, 1))
}

// Apply runs the preset's curves over every pixel. The None preset
// returns src as is.
func (p Preset) Apply(src image.Image) (image.Image, error) {
	if p.Type == None {
		return src, nil
	}

	var curves [3]*Curve
	for i, pts := range [][][2]float64{p.Red, p.Green, p.Blue} {
		c, err := NewCurve(pts)
		if err != nil {
			return nil, fmt.Errorf("response %s: %v", p.ResponseName, err)
		}
		curves[i] = c
	}

	b := src.Bounds()
	dst := image.NewRGBA64(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := pixel.FromColor(src.At(x, y))
			c.R = curves[0].At(c.R)
			c.G = curves[1].At(c.G)
			c.B = curves[2].At(c.B)
			dst.SetRGBA64(x, y, c.Color())
		}
	}
	return dst, nil
}
