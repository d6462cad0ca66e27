package geom

import (
	"fmt"
	"image"
)

// A Point in normalized image space; (0,0) top left, (1,1) bottom right.
type Point struct {
	X, Y float64
}

func Pt(x, y float64) Point       { return Point{X: x, Y: y} }
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }
func (p Point) String() string    { return fmt.Sprintf("(%.4f,%.4f)", p.X, p.Y) }

// Centre of the normalized canvas; rotations and flips happen about it.
var Centre = Point{0.5, 0.5}

// A Rect is a normalized rectangle, all coords in [0,1].
type Rect struct {
	MinX float64 `yaml:"minx" validate:"gte=0"`
	MinY float64 `yaml:"miny" validate:"gte=0"`
	MaxX float64 `yaml:"maxx" validate:"gtfield=MinX,lte=1"`
	MaxY float64 `yaml:"maxy" validate:"gtfield=MinY,lte=1"`
}

// UnitRect is the whole image.
func UnitRect() Rect { return Rect{0, 0, 1, 1} }

func (r Rect) Dx() float64 { return r.MaxX - r.MinX }
func (r Rect) Dy() float64 { return r.MaxY - r.MinY }

func (r Rect) String() string {
	return fmt.Sprintf("Rect[(%.4f,%.4f)-(%.4f,%.4f)]", r.MinX, r.MinY, r.MaxX, r.MaxY)
}

// Valid is true if the rect is non-empty and lies inside the unit square.
func (r Rect) Valid() bool {
	return r.MinX >= 0 && r.MinY >= 0 && r.MaxX <= 1 && r.MaxY <= 1 && r.MinX < r.MaxX && r.MinY < r.MaxY
}

// Pixels maps the rect onto concrete image bounds.
func (r Rect) Pixels(b image.Rectangle) image.Rectangle {
	w, h := float64(b.Dx()), float64(b.Dy())
	px := image.Rect(
		b.Min.X+int(r.MinX*w+0.5), b.Min.Y+int(r.MinY*h+0.5),
		b.Min.X+int(r.MaxX*w+0.5), b.Min.Y+int(r.MaxY*h+0.5),
	)
	return px.Intersect(b)
}

// RotatedRight is the rect after a 90deg clockwise turn of the canvas,
// i.e. (x,y) -> (1-y, x).
func (r Rect) RotatedRight() Rect {
	return Rect{MinX: 1 - r.MaxY, MinY: r.MinX, MaxX: 1 - r.MinY, MaxY: r.MaxX}
}

// RotatedLeft undoes RotatedRight: (x,y) -> (y, 1-x).
func (r Rect) RotatedLeft() Rect {
	return Rect{MinX: r.MinY, MinY: 1 - r.MaxX, MaxX: r.MaxY, MaxY: 1 - r.MinX}
}

func (r Rect) FlippedHorizontal() Rect {
	return Rect{MinX: 1 - r.MaxX, MinY: r.MinY, MaxX: 1 - r.MinX, MaxY: r.MaxY}
}

func (r Rect) FlippedVertical() Rect {
	return Rect{MinX: r.MinX, MinY: 1 - r.MaxY, MaxX: r.MaxX, MaxY: 1 - r.MinY}
}

// ToCropped maps a point in full-image normalized space into the
// normalized space of the image cropped to r.
func (r Rect) ToCropped(p Point) Point {
	return Point{(p.X - r.MinX) / r.Dx(), (p.Y - r.MinY) / r.Dy()}
}
