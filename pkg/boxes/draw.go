package boxes

import (
	"image/color"

	"github.com/softrender/boxcam/pkg/math3d"
)

// Canvas is the pixel sink boxes are drawn onto. Implementations are
// expected to ignore out-of-range coordinates.
type Canvas interface {
	SetPixel(x, y int, c color.RGBA)
}

// Painter draws extracted boxes onto a canvas for visual inspection.
type Painter struct {
	Width  int
	Height int
}

// NewPainter creates a painter for a canvas of the given pixel dimensions.
func NewPainter(width, height int) Painter {
	return Painter{Width: width, Height: height}
}

// DrawLine draws the segment from (x0, y0) to (x1, y1) inclusive of both
// endpoints using Bresenham's algorithm.
func (p Painter) DrawLine(cv Canvas, x0, y0, x1, y1 int, c color.RGBA) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		cv.SetPixel(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawBox draws one box outline. 2D boxes draw directly in pixel space; 3D
// boxes are projected by proj, clipped to the view rectangle and drawn edge
// by edge. A 3D box with any corner behind the camera is skipped entirely.
func (p Painter) DrawBox(cv Canvas, box BoundingBox, proj math3d.Mat4, c color.RGBA) {
	if box.Type == Box3D {
		p.drawBox3D(cv, box, proj, c)
		return
	}
	p.drawBox2D(cv, box, c)
}

func (p Painter) drawBox2D(cv Canvas, box BoundingBox, c color.RGBA) {
	minX := int(box.Center.X - box.Size.X/2)
	minY := int(box.Center.Y - box.Size.Y/2)
	maxX := int(box.Center.X + box.Size.X/2)
	maxY := int(box.Center.Y + box.Size.Y/2)

	corners := [4][2]int{
		{minX, minY},
		{maxX, minY},
		{maxX, maxY},
		{minX, maxY},
	}
	for i := range corners {
		next := corners[(i+1)%4]
		p.DrawLine(cv, corners[i][0], corners[i][1], next[0], next[1], c)
	}
}

func (p Painter) drawBox3D(cv Canvas, box BoundingBox, proj math3d.Mat4, c color.RGBA) {
	corners := box.Corners()

	// Camera space looks down -Z; a corner with positive Z sits behind the
	// camera and the projection of its edges is unusable.
	var projected [8]math3d.Vec2
	for i, corner := range corners {
		if corner.Z > 0 {
			return
		}
		clip := proj.MulVec4(math3d.V4FromV3(corner, 1))
		projected[i] = math3d.V2(clip.X/clip.W, clip.Y/clip.W)
	}

	vp := NDCViewport()
	var lines []math3d.Vec2
	for _, edge := range boxEdges {
		lines = vp.appendClippedSegment(lines, projected[edge[0]], projected[edge[1]])
	}

	for i := 0; i < len(lines); i += 2 {
		x0, y0 := ndcToScreen(lines[i].X, lines[i].Y, p.Width, p.Height)
		x1, y1 := ndcToScreen(lines[i+1].X, lines[i+1].Y, p.Width, p.Height)
		p.DrawLine(cv, int(x0), int(y0), int(x1), int(y1), c)
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
