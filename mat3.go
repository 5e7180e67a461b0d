package stage

import "github.com/chewxy/math32"

// Mat3 is a 3x3 matrix for 2D affine transforms in homogeneous
// coordinates. Storage is column-major, matching GPU uniform layout:
//
//	| m[0]  m[3]  m[6] |
//	| m[1]  m[4]  m[7] |
//	| m[2]  m[5]  m[8] |
//
// Matrices multiply column vectors, so a model transform composed as
// T.Mul(R).Mul(S) scales first, rotates second and translates last.
type Mat3 [9]float32

// Identity3 returns the identity matrix.
func Identity3() Mat3 {
	return Mat3{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

// Translation returns a matrix translating by (x, y).
func Translation(x, y float32) Mat3 {
	return Mat3{
		1, 0, 0,
		0, 1, 0,
		x, y, 1,
	}
}

// Scaling returns a matrix scaling by (x, y).
func Scaling(x, y float32) Mat3 {
	return Mat3{
		x, 0, 0,
		0, y, 0,
		0, 0, 1,
	}
}

// RotationDeg returns a matrix rotating counter-clockwise by an angle in
// degrees. The angle is converted to radians only here, at the trig
// boundary.
func RotationDeg(deg float32) Mat3 {
	rad := Radians(deg)
	sin, cos := math32.Sincos(rad)
	return Mat3{
		cos, sin, 0,
		-sin, cos, 0,
		0, 0, 1,
	}
}

// Mul returns the matrix product m * n.
func (m Mat3) Mul(n Mat3) Mat3 {
	var r Mat3
	for c := 0; c < 3; c++ {
		for w := 0; w < 3; w++ {
			r[c*3+w] = m[w]*n[c*3] + m[3+w]*n[c*3+1] + m[6+w]*n[c*3+2]
		}
	}
	return r
}

// MulVec applies the transform to a point (w=1).
func (m Mat3) MulVec(v Vec2) Vec2 {
	return Vec2{
		X: m[0]*v.X + m[3]*v.Y + m[6],
		Y: m[1]*v.X + m[4]*v.Y + m[7],
	}
}

// MulDir applies the transform to a direction (w=0), ignoring translation.
func (m Mat3) MulDir(v Vec2) Vec2 {
	return Vec2{
		X: m[0]*v.X + m[3]*v.Y,
		Y: m[1]*v.X + m[4]*v.Y,
	}
}
