package geom

// Affine transforms for overlay placement. Overlays only ever carry the
// rotation+scale part; translation lives in the overlay's Center.

import (
	"fmt"
	"math"

	"golang.org/x/image/math/f64"
)

// Use a local type so we can hang methods off it
type Aff3 f64.Aff3

func (p Aff3) Mult(q Aff3) Aff3 {
	return Aff3{
		p[3*0+0]*q[3*0+0] + p[3*0+1]*q[3*1+0],
		p[3*0+0]*q[3*0+1] + p[3*0+1]*q[3*1+1],
		p[3*0+0]*q[3*0+2] + p[3*0+1]*q[3*1+2] + p[3*0+2],
		p[3*1+0]*q[3*0+0] + p[3*1+1]*q[3*1+0],
		p[3*1+0]*q[3*0+1] + p[3*1+1]*q[3*1+1],
		p[3*1+0]*q[3*0+2] + p[3*1+1]*q[3*1+2] + p[3*1+2],
	}
}

func Identity() Aff3 {
	return Aff3{1, 0, 0, 0, 1, 0}
}

func (m1 Aff3) Translate(tx, ty float64) Aff3 {
	return m1.Mult(Aff3{1, 0, tx, 0, 1, ty})
}

// Rotate composes a rotation (in radians) onto m1. The rotation happens
// first, then m1, i.e. it matches CGAffineTransformRotate.
func (m1 Aff3) Rotate(theta float64) Aff3 {
	cosTheta := math.Cos(theta)
	sinTheta := math.Sin(theta)
	return m1.Mult(Aff3{cosTheta, -1 * sinTheta, 0, sinTheta, cosTheta, 0})
}

func (m1 Aff3) Scale(sx, sy float64) Aff3 {
	return m1.Mult(Aff3{sx, 0, 0, 0, sy, 0})
}

// Angle is the rotational component of the transform. A zero (or NaN)
// matrix gives whatever math.Atan2 gives, which is 0 for all zeros.
func (m Aff3) Angle() float64 {
	return math.Atan2(m[3*1+0], m[3*0+0])
}

// ScaleFactor is the length of the transformed x unit vector.
func (m Aff3) ScaleFactor() float64 {
	return math.Hypot(m[3*0+0], m[3*1+0])
}

// ApproxEqual compares element-wise within eps.
func (m Aff3) ApproxEqual(o Aff3, eps float64) bool {
	for i := range m {
		if math.Abs(m[i]-o[i]) > eps {
			return false
		}
	}
	return true
}

func (m Aff3) String() string {
	return fmt.Sprintf("[%8.5f, %8.5f, %8.5f | %8.5f, %8.5f, %8.5f]", m[0], m[1], m[2], m[3], m[4], m[5])
}

// NormalizeAngle maps theta into [0, 2pi). NaN stays NaN.
func NormalizeAngle(theta float64) float64 {
	twoPi := 2 * math.Pi
	theta = math.Mod(theta, twoPi)
	if theta < 0 {
		theta += twoPi
	}
	if theta >= twoPi {
		theta -= twoPi
	}
	return theta
}
