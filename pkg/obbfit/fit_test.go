package obbfit

import (
	"math"
	"testing"

	"github.com/softrender/boxcam/pkg/math3d"
)

// boxCloud returns the 8 corners of an axis-aligned box, optionally rotated
// and translated.
func boxCloud(size math3d.Vec3, rot math3d.Quat, center math3d.Vec3) []math3d.Vec3 {
	hx, hy, hz := size.X/2, size.Y/2, size.Z/2
	local := []math3d.Vec3{
		{X: -hx, Y: -hy, Z: -hz},
		{X: hx, Y: -hy, Z: -hz},
		{X: -hx, Y: hy, Z: -hz},
		{X: hx, Y: hy, Z: -hz},
		{X: -hx, Y: -hy, Z: hz},
		{X: hx, Y: -hy, Z: hz},
		{X: -hx, Y: hy, Z: hz},
		{X: hx, Y: hy, Z: hz},
	}
	out := make([]math3d.Vec3, len(local))
	for i, p := range local {
		out[i] = rot.Rotate(p).Add(center)
	}
	return out
}

func sortedSize(v math3d.Vec3) [3]float64 {
	s := [3]float64{v.X, v.Y, v.Z}
	if s[0] < s[1] {
		s[0], s[1] = s[1], s[0]
	}
	if s[1] < s[2] {
		s[1], s[2] = s[2], s[1]
	}
	if s[0] < s[1] {
		s[0], s[1] = s[1], s[0]
	}
	return s
}

func TestFitEmpty(t *testing.T) {
	if _, ok := Fit(nil); ok {
		t.Error("empty cloud fit succeeded")
	}
}

func TestFitAxisAlignedBox(t *testing.T) {
	points := boxCloud(math3d.V3(4, 2, 1), math3d.QuatIdentity(), math3d.V3(1, -2, 3))

	box, ok := Fit(points)
	if !ok {
		t.Fatal("fit failed")
	}

	if box.Center.Sub(math3d.V3(1, -2, 3)).Len() > 1e-9 {
		t.Errorf("center = %v, want (1, -2, 3)", box.Center)
	}

	got := sortedSize(box.Size)
	want := [3]float64{4, 2, 1}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Errorf("sorted size = %v, want %v", got, want)
		}
	}
}

func TestFitRecoversRotatedBox(t *testing.T) {
	rot := math3d.QuatFromAxisAngle(math3d.V3(0, 0, 1).Normalize(), math.Pi/6)
	points := boxCloud(math3d.V3(6, 2, 1), rot, math3d.V3(0, 0, -5))

	box, ok := Fit(points)
	if !ok {
		t.Fatal("fit failed")
	}

	if box.Center.Sub(math3d.V3(0, 0, -5)).Len() > 1e-9 {
		t.Errorf("center = %v, want (0, 0, -5)", box.Center)
	}

	got := sortedSize(box.Size)
	want := [3]float64{6, 2, 1}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-6 {
			t.Errorf("sorted size = %v, want %v", got, want)
		}
	}

	// The fitted rotation must map local axes onto the box's true axes up to
	// sign: rotating the fitted box's corners reproduces the input cloud
	// extents.
	refit := boxCloud(box.Size, box.Rotation, box.Center)
	for _, p := range refit {
		found := false
		for _, q := range points {
			if p.Sub(q).Len() < 1e-6 {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("refit corner %v not in original cloud", p)
		}
	}
}

func TestFitRotationIsProper(t *testing.T) {
	rot := math3d.QuatFromAxisAngle(math3d.V3(1, 1, 0).Normalize(), 0.7)
	points := boxCloud(math3d.V3(5, 3, 1), rot, math3d.Zero3())

	box, ok := Fit(points)
	if !ok {
		t.Fatal("fit failed")
	}

	// A proper rotation keeps handedness: the rotated basis must satisfy
	// (x × y) · z = +1.
	x := box.Rotation.Rotate(math3d.V3(1, 0, 0))
	y := box.Rotation.Rotate(math3d.V3(0, 1, 0))
	z := box.Rotation.Rotate(math3d.V3(0, 0, 1))
	if det := x.Cross(y).Dot(z); math.Abs(det-1) > 1e-9 {
		t.Errorf("basis determinant = %v, want 1", det)
	}
}

func TestFitDegenerateCloud(t *testing.T) {
	// All points coincide: covariance is zero, eigenvectors arbitrary but
	// extents collapse to zero.
	points := []math3d.Vec3{
		{X: 2, Y: 2, Z: 2},
		{X: 2, Y: 2, Z: 2},
		{X: 2, Y: 2, Z: 2},
	}

	box, ok := Fit(points)
	if !ok {
		t.Fatal("fit failed on constant cloud")
	}
	if box.Size.Len() > 1e-12 {
		t.Errorf("size = %v, want zero", box.Size)
	}
	if box.Center.Sub(math3d.V3(2, 2, 2)).Len() > 1e-12 {
		t.Errorf("center = %v, want (2, 2, 2)", box.Center)
	}
}
