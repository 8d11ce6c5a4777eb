package math3d

import (
	"math"
	"testing"
)

func TestTranslateMulVec3(t *testing.T) {
	m := Translate(V3(10, 20, 30))
	got := m.MulVec3(V3(1, 2, 3))
	if !vecClose(got, V3(11, 22, 33), 1e-9) {
		t.Errorf("got %v, want (11, 22, 33)", got)
	}
}

func TestRotateYQuarterTurn(t *testing.T) {
	m := RotateY(math.Pi / 2)
	got := m.MulVec3(V3(5, 0, 0))
	if !vecClose(got, V3(0, 0, -5), 1e-9) {
		t.Errorf("got %v, want (0, 0, -5)", got)
	}
}

func TestMulOrder(t *testing.T) {
	// a.Mul(b) applies b first.
	a := Translate(V3(1, 0, 0))
	b := RotateZ(math.Pi / 2)

	got := a.Mul(b).MulVec3(V3(1, 0, 0))
	if !vecClose(got, V3(1, 1, 0), 1e-9) {
		t.Errorf("got %v, want (1, 1, 0)", got)
	}
}

func TestLookAtOriginOnAxis(t *testing.T) {
	view := LookAt(V3(0, 0, 5), Zero3(), V3(0, 1, 0))
	got := view.MulVec3(Zero3())
	if !vecClose(got, V3(0, 0, -5), 1e-9) {
		t.Errorf("view * origin = %v, want (0, 0, -5)", got)
	}
}

func TestPerspectiveDepthRange(t *testing.T) {
	proj := Perspective(math.Pi/2, 1, 1, 100)

	tests := []struct {
		name string
		z    float64
		want float64
	}{
		{"near plane", -1, -1},
		{"far plane", -100, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			clip := proj.MulVec4(V4(0, 0, tc.z, 1))
			ndc := clip.Z / clip.W
			if math.Abs(ndc-tc.want) > 1e-9 {
				t.Errorf("ndc z = %v, want %v", ndc, tc.want)
			}
		})
	}
}

func TestPerspectiveWIsNegatedZ(t *testing.T) {
	proj := Perspective(math.Pi/3, 16.0/9.0, 0.1, 100)
	clip := proj.MulVec4(V4(1, 2, -7, 1))
	if math.Abs(clip.W-7) > 1e-9 {
		t.Errorf("clip w = %v, want 7", clip.W)
	}
}

func TestBasisRoundTrip(t *testing.T) {
	m := FromBasis(V3(0, 1, 0), V3(-1, 0, 0), V3(0, 0, 1), V3(4, 5, 6))

	x, y, z := m.Basis()
	if !vecClose(x, V3(0, 1, 0), 1e-9) || !vecClose(y, V3(-1, 0, 0), 1e-9) || !vecClose(z, V3(0, 0, 1), 1e-9) {
		t.Errorf("basis = %v %v %v", x, y, z)
	}
	if !vecClose(m.Translation(), V3(4, 5, 6), 1e-9) {
		t.Errorf("translation = %v, want (4, 5, 6)", m.Translation())
	}
}
