package boxes

import (
	"image/color"
	"testing"

	"github.com/softrender/boxcam/pkg/math3d"
)

// recordCanvas stores every painted pixel, ignoring out-of-range writes the
// way a real framebuffer does.
type recordCanvas struct {
	width, height int
	pixels        map[[2]int]color.RGBA
}

func newRecordCanvas(width, height int) *recordCanvas {
	return &recordCanvas{width: width, height: height, pixels: make(map[[2]int]color.RGBA)}
}

func (c *recordCanvas) SetPixel(x, y int, col color.RGBA) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return
	}
	c.pixels[[2]int{x, y}] = col
}

func (c *recordCanvas) has(x, y int) bool {
	_, ok := c.pixels[[2]int{x, y}]
	return ok
}

func TestDrawLineInclusive(t *testing.T) {
	p := NewPainter(200, 200)

	tests := []struct {
		name           string
		x0, y0, x1, y1 int
		count          int
	}{
		{"full row", 0, 0, 199, 0, 200},
		{"single pixel", 5, 5, 5, 5, 1},
		{"vertical", 3, 0, 3, 9, 10},
		{"diagonal", 0, 0, 9, 9, 10},
		{"reversed", 199, 0, 0, 0, 200},
		{"shallow slope", 0, 0, 9, 3, 10},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cv := newRecordCanvas(200, 200)
			p.DrawLine(cv, tc.x0, tc.y0, tc.x1, tc.y1, color.RGBA{0, 255, 0, 255})

			if len(cv.pixels) != tc.count {
				t.Errorf("plotted %d pixels, want %d", len(cv.pixels), tc.count)
			}
			if !cv.has(tc.x0, tc.y0) || !cv.has(tc.x1, tc.y1) {
				t.Error("endpoints not plotted")
			}
		})
	}
}

func TestDrawBox2DOutline(t *testing.T) {
	p := NewPainter(200, 200)
	cv := newRecordCanvas(200, 200)

	box := BoundingBox{
		Type:        VisibleBox2D,
		Center:      math3d.V3(125, 125, 0),
		Size:        math3d.V3(50, 50, 0),
		Orientation: math3d.QuatIdentity(),
	}
	p.DrawBox(cv, box, math3d.Identity(), color.RGBA{0, 255, 0, 255})

	for _, corner := range [][2]int{{100, 100}, {150, 100}, {150, 150}, {100, 150}} {
		if !cv.has(corner[0], corner[1]) {
			t.Errorf("corner %v not plotted", corner)
		}
	}
	if cv.has(125, 125) {
		t.Error("interior pixel plotted")
	}

	// Perimeter of a 51x51 outline.
	if want := 4*51 - 4; len(cv.pixels) != want {
		t.Errorf("plotted %d pixels, want %d", len(cv.pixels), want)
	}
}

func TestDrawBox3D(t *testing.T) {
	p := NewPainter(200, 200)
	proj := math3d.Perspective(1.0, 1.0, 0.1, 100)

	t.Run("in front of camera", func(t *testing.T) {
		cv := newRecordCanvas(200, 200)
		box := BoundingBox{
			Type:        Box3D,
			Center:      math3d.V3(0, 0, -5),
			Size:        math3d.One3(),
			Orientation: math3d.QuatIdentity(),
		}
		p.DrawBox(cv, box, proj, color.RGBA{0, 255, 0, 255})

		if len(cv.pixels) == 0 {
			t.Error("no pixels plotted for a fully visible box")
		}
	})

	t.Run("corner behind camera", func(t *testing.T) {
		cv := newRecordCanvas(200, 200)
		box := BoundingBox{
			Type:        Box3D,
			Center:      math3d.V3(0, 0, -0.3),
			Size:        math3d.One3(),
			Orientation: math3d.QuatIdentity(),
		}
		p.DrawBox(cv, box, proj, color.RGBA{0, 255, 0, 255})

		if len(cv.pixels) != 0 {
			t.Errorf("plotted %d pixels, want none for a box crossing the camera plane", len(cv.pixels))
		}
	})

	t.Run("partially outside viewport", func(t *testing.T) {
		cv := newRecordCanvas(200, 200)
		// Off to the right: some edges clip, some survive.
		box := BoundingBox{
			Type:        Box3D,
			Center:      math3d.V3(2.5, 0, -3),
			Size:        math3d.One3(),
			Orientation: math3d.QuatIdentity(),
		}
		p.DrawBox(cv, box, proj, color.RGBA{0, 255, 0, 255})

		for xy := range cv.pixels {
			if xy[0] < 0 || xy[0] > 199 || xy[1] < 0 || xy[1] > 199 {
				t.Fatalf("pixel %v outside the image", xy)
			}
		}
	})
}
