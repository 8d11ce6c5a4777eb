package math3d

import (
	"math"
	"testing"
)

func vecClose(a, b Vec3, tol float64) bool {
	return math.Abs(a.X-b.X) < tol && math.Abs(a.Y-b.Y) < tol && math.Abs(a.Z-b.Z) < tol
}

func TestQuatIdentityRotate(t *testing.T) {
	v := V3(1, 2, 3)
	if got := QuatIdentity().Rotate(v); got != v {
		t.Errorf("identity rotate = %v, want %v", got, v)
	}
}

func TestQuatFromAxisAngle(t *testing.T) {
	tests := []struct {
		name  string
		axis  Vec3
		angle float64
		in    Vec3
		want  Vec3
	}{
		{"quarter turn around Z", V3(0, 0, 1), math.Pi / 2, V3(1, 0, 0), V3(0, 1, 0)},
		{"quarter turn around Y", V3(0, 1, 0), math.Pi / 2, V3(1, 0, 0), V3(0, 0, -1)},
		{"half turn around X", V3(1, 0, 0), math.Pi, V3(0, 1, 0), V3(0, -1, 0)},
		{"axis is unchanged", V3(0, 1, 0), 1.3, V3(0, 2, 0), V3(0, 2, 0)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := QuatFromAxisAngle(tc.axis, tc.angle).Rotate(tc.in)
			if !vecClose(got, tc.want, 1e-9) {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestQuatMulComposes(t *testing.T) {
	a := QuatFromAxisAngle(V3(0, 0, 1), math.Pi/2)
	b := QuatFromAxisAngle(V3(1, 0, 0), math.Pi/2)
	v := V3(0, 1, 0)

	got := a.Mul(b).Rotate(v)
	want := a.Rotate(b.Rotate(v))
	if !vecClose(got, want, 1e-9) {
		t.Errorf("composed rotate = %v, want %v", got, want)
	}
}

func TestQuatConjugateInverts(t *testing.T) {
	q := QuatFromAxisAngle(V3(1, 2, 3), 0.7)
	v := V3(4, -5, 6)

	got := q.Conjugate().Rotate(q.Rotate(v))
	if !vecClose(got, v, 1e-9) {
		t.Errorf("conjugate round trip = %v, want %v", got, v)
	}
}

func TestQuatMat4Matches(t *testing.T) {
	q := QuatFromAxisAngle(V3(1, -1, 2), 1.1)
	v := V3(3, 2, 1)

	fromQuat := q.Rotate(v)
	fromMat := q.Mat4().MulVec3(v)
	if !vecClose(fromQuat, fromMat, 1e-9) {
		t.Errorf("quat rotate = %v, matrix rotate = %v", fromQuat, fromMat)
	}
}

func TestQuatFromMat4RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		q    Quat
	}{
		{"identity", QuatIdentity()},
		{"around X", QuatFromAxisAngle(V3(1, 0, 0), 0.4)},
		{"around Y", QuatFromAxisAngle(V3(0, 1, 0), 2.5)},
		{"around Z", QuatFromAxisAngle(V3(0, 0, 1), -1.2)},
		{"half turn", QuatFromAxisAngle(V3(0, 1, 0), math.Pi)},
		{"near half turn diagonal", QuatFromAxisAngle(V3(1, 1, 1), 3.0)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := QuatFromMat4(tc.q.Mat4())
			if !got.ApproxEqual(tc.q, 1e-9) {
				t.Errorf("got %v, want %v", got, tc.q)
			}
		})
	}
}

func TestQuatFromMat4RotationMatrices(t *testing.T) {
	// Extraction from the axis rotation matrices must agree with the
	// axis-angle construction.
	tests := []struct {
		name string
		m    Mat4
		want Quat
	}{
		{"RotateX", RotateX(0.8), QuatFromAxisAngle(V3(1, 0, 0), 0.8)},
		{"RotateY", RotateY(-0.3), QuatFromAxisAngle(V3(0, 1, 0), -0.3)},
		{"RotateZ", RotateZ(2.1), QuatFromAxisAngle(V3(0, 0, 1), 2.1)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := QuatFromMat4(tc.m)
			if !got.ApproxEqual(tc.want, 1e-9) {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestQuatApproxEqualNegation(t *testing.T) {
	q := QuatFromAxisAngle(V3(0, 1, 0), 1.0)
	neg := Quat{W: -q.W, X: -q.X, Y: -q.Y, Z: -q.Z}

	if !q.ApproxEqual(neg, 1e-9) {
		t.Error("q and -q describe the same rotation")
	}
	if q.ApproxEqual(QuatFromAxisAngle(V3(0, 1, 0), 2.0), 1e-9) {
		t.Error("different rotations must not compare equal")
	}
}

func TestQuatNormalizeZero(t *testing.T) {
	if got := (Quat{}).Normalize(); got != QuatIdentity() {
		t.Errorf("zero normalize = %v, want identity", got)
	}
}
