package pixel

import (
	"golang.org/x/image/math/f64"
)

// Actual 3x3 matrixes, used for color transforms
type Vec3 f64.Vec3
type Mat3 f64.Mat3

// Rec. 709 luma weights
var Luma = Vec3{0.2126, 0.7152, 0.0722}

func IdentityMat3() Mat3 {
	return Mat3{1, 0, 0, 0, 1, 0, 0, 0, 1}
}

// ScaleMat3 multiplies every channel by s.
func ScaleMat3(s float64) Mat3 {
	m := IdentityMat3()
	m[3*0+0], m[3*1+1], m[3*2+2] = s, s, s
	return m
}

func (a Mat3) Mult(b Mat3) Mat3 {
	return Mat3{
		a[3*0+0]*b[3*0+0] + a[3*0+1]*b[3*1+0] + a[3*0+2]*b[3*2+0],
		a[3*0+0]*b[3*0+1] + a[3*0+1]*b[3*1+1] + a[3*0+2]*b[3*2+1],
		a[3*0+0]*b[3*0+2] + a[3*0+1]*b[3*1+2] + a[3*0+2]*b[3*2+2],

		a[3*1+0]*b[3*0+0] + a[3*1+1]*b[3*1+0] + a[3*1+2]*b[3*2+0],
		a[3*1+0]*b[3*0+1] + a[3*1+1]*b[3*1+1] + a[3*1+2]*b[3*2+1],
		a[3*1+0]*b[3*0+2] + a[3*1+1]*b[3*1+2] + a[3*1+2]*b[3*2+2],

		a[3*2+0]*b[3*0+0] + a[3*2+1]*b[3*1+0] + a[3*2+2]*b[3*2+0],
		a[3*2+0]*b[3*0+1] + a[3*2+1]*b[3*1+1] + a[3*2+2]*b[3*2+1],
		a[3*2+0]*b[3*0+2] + a[3*2+1]*b[3*1+2] + a[3*2+2]*b[3*2+2],
	}
}

func (m Mat3) Apply(v Vec3) Vec3 {
	return Vec3{
		(m[3*0+0]*v[0] + m[3*0+1]*v[1] + m[3*0+2]*v[2]),
		(m[3*1+0]*v[0] + m[3*1+1]*v[1] + m[3*1+2]*v[2]),
		(m[3*2+0]*v[0] + m[3*2+1]*v[1] + m[3*2+2]*v[2]),
	}
}

// SaturationMatrix mixes each channel with the luma of the pixel; s=0 is
// grayscale, s=1 the identity, s>1 oversaturates.
func SaturationMatrix(s float64) Mat3 {
	m := Mat3{}
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			m[3*row+col] = (1 - s) * Luma[col]
			if row == col {
				m[3*row+col] += s
			}
		}
	}
	return m
}

func (v *Vec3) FloorAt(min float64) {
	if v[0] < min {
		v[0] = min
	}
	if v[1] < min {
		v[1] = min
	}
	if v[2] < min {
		v[2] = min
	}
}

func (v *Vec3) CeilingAt(max float64) {
	if v[0] > max {
		v[0] = max
	}
	if v[1] > max {
		v[1] = max
	}
	if v[2] > max {
		v[2] = max
	}
}
