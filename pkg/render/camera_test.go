package render

import (
	"math"
	"testing"

	"github.com/softrender/boxcam/pkg/math3d"
)

func TestCameraViewMatrixTransformsTarget(t *testing.T) {
	cam := NewCamera()
	cam.SetPosition(math3d.V3(0, 0, 5))
	cam.LookAt(math3d.Zero3())

	// The origin should land on the -Z axis, 5 units ahead.
	p := cam.ViewMatrix().MulVec3(math3d.Zero3())
	if math.Abs(p.X) > 1e-9 || math.Abs(p.Y) > 1e-9 || math.Abs(p.Z+5) > 1e-9 {
		t.Errorf("view * origin = %v, want (0, 0, -5)", p)
	}
}

func TestCameraForward(t *testing.T) {
	cam := NewCamera()
	cam.SetPosition(math3d.V3(3, 0, 0))
	cam.LookAt(math3d.Zero3())

	fwd := cam.Forward()
	if math.Abs(fwd.X+1) > 1e-9 || math.Abs(fwd.Y) > 1e-9 || math.Abs(fwd.Z) > 1e-9 {
		t.Errorf("forward = %v, want (-1, 0, 0)", fwd)
	}
}

func TestCameraInView(t *testing.T) {
	cam := NewCamera()
	cam.SetPosition(math3d.V3(0, 0, 5))
	cam.LookAt(math3d.Zero3())

	if !cam.InView(math3d.V3(-1, -1, -1), math3d.V3(1, 1, 1)) {
		t.Error("unit box at origin should be in view")
	}
	if cam.InView(math3d.V3(-1, -1, 9), math3d.V3(1, 1, 11)) {
		t.Error("box behind the camera should not be in view")
	}
}

func TestCameraInViewTracksRotation(t *testing.T) {
	cam := NewCamera()
	cam.SetPosition(math3d.Zero3())
	cam.SetRotation(0, 0, 0)

	ahead := cam.InView(math3d.V3(-1, -1, -11), math3d.V3(1, 1, -9))
	if !ahead {
		t.Error("box straight ahead should be in view")
	}

	// Turn the camera 180 degrees; the same box falls behind it.
	cam.SetRotation(0, math.Pi, 0)
	if cam.InView(math3d.V3(-1, -1, -11), math3d.V3(1, 1, -9)) {
		t.Error("box should leave the view after a half turn")
	}
}
