package filter

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/abworrall/photostack/pkg/geom"
)

// A Placement positions an overlay on the photo. Center is in normalized
// full-image space, Transform carries rotation and scale only, and CropRect
// is the crop in force when the overlay is rendered.
type Placement struct {
	Center    geom.Point
	Transform geom.Aff3
	CropRect  geom.Rect
}

func NewPlacement() Placement {
	return Placement{
		Center:    geom.Centre,
		Transform: geom.Identity(),
		CropRect:  geom.UnitRect(),
	}
}

func (p Placement) String() string {
	return fmt.Sprintf("Place[%s, %s, %s]", p.Center, p.Transform, p.CropRect)
}

// Geometry gives Placement the Overlay accessor through embedding.
func (p *Placement) Geometry() *Placement { return p }

// crop is the CropRect, or the whole image if it hasn't been set up.
func (p *Placement) crop() geom.Rect {
	if !p.CropRect.Valid() {
		return geom.UnitRect()
	}
	return p.CropRect
}

// Rotate turns the overlay about the canvas centre: the transform picks up
// the rotation, and the centre has its axes swapped and scaled by the
// factors.
func (p *Placement) Rotate(angle, xFactor, yFactor float64) {
	p.Transform = p.Transform.Rotate(angle)
	c := p.Center.Sub(geom.Centre)
	p.Center = geom.Point{X: xFactor * c.Y, Y: yFactor * c.X}.Add(geom.Centre)
}

func (p *Placement) RotateRight() { p.Rotate(math.Pi/2, -1, 1) }
func (p *Placement) RotateLeft()  { p.Rotate(-math.Pi/2, 1, -1) }

func (p *Placement) FlipHorizontal() {
	c := p.Center.Sub(geom.Centre)
	p.reflectRotation(math.Pi)
	c.X = -c.X
	p.Center = c.Add(geom.Centre)
}

func (p *Placement) FlipVertical() {
	c := p.Center.Sub(geom.Centre)
	p.reflectRotation(math.Pi / 2)
	c.Y = -c.Y
	p.Center = c.Add(geom.Centre)
}

// reflectRotation mirrors the rotational part of the transform across an
// axis, by rotating through twice the angle between the two.
func (p *Placement) reflectRotation(axisAngle float64) {
	angle := geom.NormalizeAngle(p.Transform.Angle())
	if math.IsNaN(angle) {
		angle = 0
	}
	delta := axisAngle - angle
	p.Transform = p.Transform.Rotate(delta * 2.0)
}

// An Overlay is a filter drawn on top of the photo at a Placement. The
// set of overlay kinds is closed: *StickerFilter and *TextFilter.
type Overlay interface {
	Filter
	ID() uuid.UUID
	Geometry() *Placement

	// CopyOverlay is Clone, keeping the overlay type.
	CopyOverlay() Overlay

	overlay()
}
