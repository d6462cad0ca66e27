package geom

import (
	"fmt"
	"image"
	"image/draw"
)

// An Orientation says how a bitmap's stored pixels map onto its displayed
// orientation. The values follow UIKit's UIImageOrientation ordering, so
// that the mirrored variants sit exactly four steps after their
// unmirrored partners.
type Orientation int

const (
	Up Orientation = iota
	Down
	Left
	Right
	UpMirrored
	DownMirrored
	LeftMirrored
	RightMirrored

	NumOrientations = 8
)

var orientationNames = [NumOrientations]string{
	"up", "down", "left", "right", "up-mirrored", "down-mirrored", "left-mirrored", "right-mirrored",
}

// EXIF tag values (1..8), indexed by Orientation
var exifTags = [NumOrientations]int{1, 3, 8, 6, 2, 4, 5, 7}

// quarter is a signed permutation matrix [a b; c d], with
//   x' = a*x + b*y
//   y' = c*x + d*y
// in y-down display coordinates.
type quarter [4]int

var quarters = [NumOrientations]quarter{
	Up:            {1, 0, 0, 1},
	Down:          {-1, 0, 0, -1},
	Left:          {0, 1, -1, 0},
	Right:         {0, -1, 1, 0},
	UpMirrored:    {-1, 0, 0, 1},
	DownMirrored:  {1, 0, 0, -1},
	LeftMirrored:  {0, 1, 1, 0},
	RightMirrored: {0, -1, -1, 0},
}

var (
	turnRight = quarter{0, -1, 1, 0}
	turnLeft  = quarter{0, 1, -1, 0}
	mirrorH   = quarter{-1, 0, 0, 1}
	mirrorV   = quarter{1, 0, 0, -1}
)

func (p quarter) mult(q quarter) quarter {
	return quarter{
		p[0]*q[0] + p[1]*q[2], p[0]*q[1] + p[1]*q[3],
		p[2]*q[0] + p[3]*q[2], p[2]*q[1] + p[3]*q[3],
	}
}

// Normalize wraps any integer into a valid orientation.
func (o Orientation) Normalize() Orientation {
	return ((o % NumOrientations) + NumOrientations) % NumOrientations
}

func (o Orientation) String() string {
	return orientationNames[o.Normalize()]
}

func (o Orientation) Mirrored() bool {
	return o.Normalize() >= UpMirrored
}

// Flipped is the orientation tag a sticker takes after a horizontal or
// vertical flip of the canvas: (o+4) mod 8. This swaps each orientation
// with its mirrored partner; applied twice it is the identity.
func (o Orientation) Flipped() Orientation {
	return (o.Normalize() + 4) % NumOrientations
}

func (o Orientation) EXIF() int {
	return exifTags[o.Normalize()]
}

// OrientationFromEXIF maps an EXIF orientation tag (1..8) onto an Orientation.
func OrientationFromEXIF(tag int) (Orientation, error) {
	for i, t := range exifTags {
		if t == tag {
			return Orientation(i), nil
		}
	}
	return Up, fmt.Errorf("exif orientation %d out of range", tag)
}

func fromQuarter(q quarter) Orientation {
	for i, m := range quarters {
		if m == q {
			return Orientation(i)
		}
	}
	return Up // unreachable: quarters holds all eight signed permutations
}

func (o Orientation) then(q quarter) Orientation {
	return fromQuarter(q.mult(quarters[o.Normalize()]))
}

// These compose a display-space change onto the orientation.
func (o Orientation) RotatedRight() Orientation      { return o.then(turnRight) }
func (o Orientation) RotatedLeft() Orientation       { return o.then(turnLeft) }
func (o Orientation) FlippedHorizontal() Orientation { return o.then(mirrorH) }
func (o Orientation) FlippedVertical() Orientation   { return o.then(mirrorV) }

// SwapsAxes is true if the displayed image has width and height swapped.
func (o Orientation) SwapsAxes() bool {
	return quarters[o.Normalize()][0] == 0
}

// Apply returns the displayed image for stored pixels src.
func (o Orientation) Apply(src image.Image) image.Image {
	o = o.Normalize()
	b := src.Bounds()
	if o == Up {
		return src
	}

	q := quarters[o]
	w, h := b.Dx(), b.Dy()
	dw, dh := w, h
	if o.SwapsAxes() {
		dw, dh = h, w
	}

	offset := func(a, b int) int {
		off := 0
		if a < 0 {
			off += w - 1
		}
		if b < 0 {
			off += h - 1
		}
		return off
	}
	ox, oy := offset(q[0], q[1]), offset(q[2], q[3])

	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dx := q[0]*x + q[1]*y + ox
			dy := q[2]*x + q[3]*y + oy
			dst.Set(dx, dy, src.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	return dst
}

// CopyImage gives an RGBA copy of src, rebased at the origin.
func CopyImage(src image.Image) *image.RGBA {
	bounds := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(dst, dst.Bounds(), src, bounds.Min, draw.Src)
	return dst
}
