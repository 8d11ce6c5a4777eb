package render

import (
	"math"

	"github.com/softrender/boxcam/pkg/boxes"
	"github.com/softrender/boxcam/pkg/math3d"
	"github.com/softrender/boxcam/pkg/scene"
)

// IDMap is a software-rendered identifier buffer: a flat row-major frame, 3
// bytes per pixel, where each pixel carries (idLow, idHigh, label) instead of
// color. The result feeds directly into boxes.Scanner.
type IDMap struct {
	Width  int
	Height int
	Data   []byte // 3 bytes per pixel, row-major

	zbuffer []float64
}

// NewIDMap creates an identifier map of the given dimensions.
func NewIDMap(width, height int) *IDMap {
	return &IDMap{
		Width:   width,
		Height:  height,
		Data:    make([]byte, width*height*3),
		zbuffer: make([]float64, width*height),
	}
}

// Clear fills every channel with the background label and resets the depth
// buffer.
func (m *IDMap) Clear(background uint8) {
	for i := range m.Data {
		m.Data[i] = background
	}

	n := len(m.zbuffer)
	if n == 0 {
		return
	}
	m.zbuffer[0] = math.MaxFloat64
	for i := 1; i < n; i *= 2 {
		copy(m.zbuffer[i:], m.zbuffer[:i])
	}
}

// Render clears the map and draws every scene object with its encoded
// identifier color.
func (m *IDMap) Render(s *scene.Scene, cam *Camera, background uint8) {
	m.Clear(background)

	viewProj := cam.ViewProjectionMatrix()

	for _, obj := range s.Objects() {
		minW, maxW := obj.WorldBounds()
		if !cam.InView(minW, maxW) {
			continue
		}

		idLow, idHigh, label := boxes.EncodePixel(obj.Identifier(), obj.Label)
		pose := obj.Pose()

		for _, sub := range obj.Meshes {
			tris := sub.TriangleCount()
			for t := 0; t < tris; t++ {
				tri := sub.Triangle(t)
				m.fillTriangle(
					viewProj,
					pose.Apply(sub.Position(tri[0])),
					pose.Apply(sub.Position(tri[1])),
					pose.Apply(sub.Position(tri[2])),
					idLow, idHigh, label,
				)
			}
		}
	}
}

// fillTriangle rasterizes one world-space triangle with a depth test. Back
// faces are not culled: a pixel covered by any face of an object must carry
// its identifier.
func (m *IDMap) fillTriangle(viewProj math3d.Mat4, w0, w1, w2 math3d.Vec3, idLow, idHigh, label uint8) {
	var sx, sy, sz [3]float64
	allBehind := true

	for i, w := range [3]math3d.Vec3{w0, w1, w2} {
		clip := viewProj.MulVec4(math3d.V4FromV3(w, 1))
		if clip.W > 0 {
			allBehind = false
		}
		if clip.W != 0 {
			sx[i] = clip.X / clip.W
			sy[i] = clip.Y / clip.W
			sz[i] = clip.Z / clip.W
		}

		sx[i] = (sx[i] + 1) * 0.5 * float64(m.Width)
		sy[i] = (1 - sy[i]) * 0.5 * float64(m.Height) // Y flipped
	}

	if allBehind {
		return
	}

	minX := int(math.Max(0, math.Floor(min3(sx[0], sx[1], sx[2]))))
	maxX := int(math.Min(float64(m.Width-1), math.Ceil(max3(sx[0], sx[1], sx[2]))))
	minY := int(math.Max(0, math.Floor(min3(sy[0], sy[1], sy[2]))))
	maxY := int(math.Min(float64(m.Height-1), math.Ceil(max3(sy[0], sy[1], sy[2]))))

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			px, py := float64(x)+0.5, float64(y)+0.5

			bc := barycentric(sx[0], sy[0], sx[1], sy[1], sx[2], sy[2], px, py)
			if bc.X < 0 || bc.Y < 0 || bc.Z < 0 {
				continue
			}

			z := bc.X*sz[0] + bc.Y*sz[1] + bc.Z*sz[2]
			if z >= m.zbuffer[y*m.Width+x] {
				continue
			}
			m.zbuffer[y*m.Width+x] = z

			i := (y*m.Width + x) * 3
			m.Data[i] = idLow
			m.Data[i+1] = idHigh
			m.Data[i+2] = label
		}
	}
}

// barycentric calculates barycentric coordinates for point (px, py) in triangle.
func barycentric(x0, y0, x1, y1, x2, y2, px, py float64) math3d.Vec3 {
	v0x, v0y := x2-x0, y2-y0
	v1x, v1y := x1-x0, y1-y0
	v2x, v2y := px-x0, py-y0

	dot00 := v0x*v0x + v0y*v0y
	dot01 := v0x*v1x + v0y*v1y
	dot02 := v0x*v2x + v0y*v2y
	dot11 := v1x*v1x + v1y*v1y
	dot12 := v1x*v2x + v1y*v2y

	invDenom := 1.0 / (dot00*dot11 - dot01*dot01)
	u := (dot11*dot02 - dot01*dot12) * invDenom
	v := (dot00*dot12 - dot01*dot02) * invDenom

	return math3d.V3(1-u-v, v, u)
}

func min3(a, b, c float64) float64 {
	return math.Min(a, math.Min(b, c))
}

func max3(a, b, c float64) float64 {
	return math.Max(a, math.Max(b, c))
}
