package stage

import (
	"testing"

	"github.com/chewxy/math32"
)

const matEps = 1e-5

func mat3Near(a, b Mat3, eps float32) bool {
	for i := range a {
		if math32.Abs(a[i]-b[i]) > eps {
			return false
		}
	}
	return true
}

func vecNear(a, b Vec2, eps float32) bool {
	return math32.Abs(a.X-b.X) <= eps && math32.Abs(a.Y-b.Y) <= eps
}

func TestMat3Constructors(t *testing.T) {
	tests := []struct {
		name string
		m    Mat3
		in   Vec2
		want Vec2
	}{
		{"identity", Identity3(), V2(3, -4), V2(3, -4)},
		{"translate", Translation(10, -20), V2(1, 2), V2(11, -18)},
		{"scale", Scaling(2, 3), V2(1, 1), V2(2, 3)},
		{"rotate 90 ccw", RotationDeg(90), V2(1, 0), V2(0, 1)},
		{"rotate -90", RotationDeg(-90), V2(1, 0), V2(0, -1)},
		{"rotate 180", RotationDeg(180), V2(1, 2), V2(-1, -2)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.m.MulVec(tt.in)
			if !vecNear(got, tt.want, matEps) {
				t.Errorf("MulVec(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestMat3MulComposesRightToLeft(t *testing.T) {
	// T * R * S applied to a point must equal applying S, then R, then T.
	trs := Translation(5, 6).Mul(RotationDeg(90)).Mul(Scaling(2, 2))

	p := V2(1, 0)
	scaled := Scaling(2, 2).MulVec(p)
	rotated := RotationDeg(90).MulVec(scaled)
	want := Translation(5, 6).MulVec(rotated)

	got := trs.MulVec(p)
	if !vecNear(got, want, matEps) {
		t.Errorf("composed transform = %v, want %v", got, want)
	}
	if !vecNear(got, V2(5, 8), matEps) {
		t.Errorf("composed transform = %v, want (5, 8)", got)
	}
}

func TestMat3MulIdentity(t *testing.T) {
	m := Translation(3, 4).Mul(RotationDeg(30)).Mul(Scaling(2, 5))
	if got := m.Mul(Identity3()); !mat3Near(got, m, matEps) {
		t.Errorf("m * I = %v, want %v", got, m)
	}
	if got := Identity3().Mul(m); !mat3Near(got, m, matEps) {
		t.Errorf("I * m = %v, want %v", got, m)
	}
}

func TestMat3MulDirIgnoresTranslation(t *testing.T) {
	m := Translation(100, 200).Mul(RotationDeg(90))
	got := m.MulDir(V2(1, 0))
	if !vecNear(got, V2(0, 1), matEps) {
		t.Errorf("MulDir = %v, want (0, 1)", got)
	}
}

func TestMat3Deterministic(t *testing.T) {
	// The same input tuple must produce bit-identical matrices.
	build := func() Mat3 {
		return Translation(12.5, -7.25).
			Mul(RotationDeg(33)).
			Mul(Scaling(3.5, 0.5))
	}
	a, b := build(), build()
	if a != b {
		t.Errorf("identical inputs produced different matrices:\n%v\n%v", a, b)
	}
}
