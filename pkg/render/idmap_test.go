package render

import (
	"testing"

	"github.com/softrender/boxcam/pkg/boxes"
	"github.com/softrender/boxcam/pkg/math3d"
	"github.com/softrender/boxcam/pkg/scene"
)

func testCamera() *Camera {
	cam := NewCamera()
	cam.SetPosition(math3d.V3(0, 0, 5))
	cam.LookAt(math3d.Zero3())
	cam.SetClipPlanes(0.1, 100)
	return cam
}

func TestIDMapClear(t *testing.T) {
	m := NewIDMap(4, 4)
	m.Clear(7)

	for i, b := range m.Data {
		if b != 7 {
			t.Fatalf("byte %d = %d, want background 7", i, b)
		}
	}
}

func TestIDMapRendersObjectIdentifier(t *testing.T) {
	world := scene.NewScene()
	cube := scene.NewBoxObject("cube", 3, math3d.One3())
	world.Add(cube)

	m := NewIDMap(64, 64)
	m.Render(world, testCamera(), 0)

	// The center pixel must carry the cube's identifier and label.
	i := (32*64 + 32) * 3
	if got := boxes.DecodePixel(m.Data[i], m.Data[i+1]); got != cube.Identifier() {
		t.Errorf("center id = %d, want %d", got, cube.Identifier())
	}
	if m.Data[i+2] != 3 {
		t.Errorf("center label = %d, want 3", m.Data[i+2])
	}

	// A corner pixel stays background.
	if m.Data[2] != 0 {
		t.Errorf("corner label = %d, want background", m.Data[2])
	}
}

func TestIDMapDepthOrder(t *testing.T) {
	world := scene.NewScene()

	near := scene.NewBoxObject("near", 1, math3d.One3())
	near.Node.Position = math3d.V3(0, 0, 1)

	far := scene.NewBoxObject("far", 2, math3d.V3(3, 3, 1))
	far.Node.Position = math3d.V3(0, 0, -2)

	world.Add(near)
	world.Add(far)

	m := NewIDMap(64, 64)
	m.Render(world, testCamera(), 0)

	// Center: the near cube occludes the far slab.
	i := (32*64 + 32) * 3
	if got := boxes.DecodePixel(m.Data[i], m.Data[i+1]); got != near.Identifier() {
		t.Errorf("center id = %d, want near cube %d", got, near.Identifier())
	}

	// The far slab is larger, so some pixel off to the side carries it.
	s := boxes.Scanner{Width: 64, Height: 64, Background: 0}
	visible := s.Scan(m.Data)
	if _, ok := visible[far.Identifier()]; !ok {
		t.Error("far slab not visible anywhere")
	}
	if len(visible) != 2 {
		t.Errorf("visible set = %v, want both objects", visible)
	}
}

func TestIDMapFeedsExtractor(t *testing.T) {
	world := scene.NewScene()
	cube := scene.NewBoxObject("cube", 5, math3d.One3())
	world.Add(cube)

	cam := testCamera()
	m := NewIDMap(64, 64)
	m.Render(world, cam, 0)

	ex := boxes.New(64, 64, 0)
	cancel := ex.OnBoxes(func([]boxes.BoundingBox) {})
	defer cancel()

	out := ex.ProcessFrame(m.Data, world, cam)
	if len(out) != 1 {
		t.Fatalf("got %d boxes, want 1", len(out))
	}

	b := out[0]
	if b.Label != 5 {
		t.Errorf("label = %d, want 5", b.Label)
	}

	// The cube projects near the image center.
	if b.Center.X < 24 || b.Center.X > 40 || b.Center.Y < 24 || b.Center.Y > 40 {
		t.Errorf("center = %v, want near (32, 32)", b.Center)
	}
	if b.Size.X <= 0 || b.Size.Y <= 0 {
		t.Errorf("size = %v, want positive", b.Size)
	}
}
