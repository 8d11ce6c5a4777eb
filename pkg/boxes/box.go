// Package boxes extracts per-object 2D/3D bounding boxes from identifier
// frames for perception ground-truth pipelines. The pipeline scans a frame in
// which every pixel encodes an object identifier and a semantic label,
// filters objects by visibility, builds one box per object in the selected
// representation, and merges the boxes of multi-part entities.
package boxes

import "github.com/softrender/boxcam/pkg/math3d"

// BoxType selects which box-extraction algorithm runs for a frame.
type BoxType int

const (
	// VisibleBox2D is a 2D box fit to the object's visible pixels.
	VisibleBox2D BoxType = iota
	// FullBox2D is a 2D box fit to the object's full projected geometry,
	// including occluded parts.
	FullBox2D
	// Box3D is an oriented 3D box in camera space.
	Box3D
)

// String returns a human-readable name for the box type.
func (t BoxType) String() string {
	switch t {
	case VisibleBox2D:
		return "visible-2d"
	case FullBox2D:
		return "full-2d"
	case Box3D:
		return "3d"
	default:
		return "unknown"
	}
}

// BoundingBox is one extracted box. For the 2D types, Center and Size are in
// pixel coordinates with Z unused, and Orientation is identity. For Box3D,
// Center and Size are in camera space and Orientation is the object-to-camera
// rotation.
type BoundingBox struct {
	Type        BoxType
	Center      math3d.Vec3
	Size        math3d.Vec3
	Orientation math3d.Quat
	Label       uint32
}

// boxEdges lists the 12 edges of a box as corner index pairs:
// top face ring, bottom face ring, then the four pillars.
//
//	  1 -------- 0
//	 /|         /|
//	2 -------- 3 .
//	| |        | |
//	. 5 -------- 4
//	|/         |/
//	6 -------- 7
var boxEdges = [12][2]int{
	{0, 1}, {1, 2}, {2, 3}, {3, 0},
	{4, 5}, {5, 6}, {6, 7}, {7, 4},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

// Corners returns the box's 8 corner vertices in the box's own coordinate
// frame (camera space for Box3D): the +Z face first, then the -Z face, each
// counter-clockwise starting from (+x, +y).
func (b BoundingBox) Corners() [8]math3d.Vec3 {
	hx, hy, hz := b.Size.X/2, b.Size.Y/2, b.Size.Z/2

	local := [8]math3d.Vec3{
		{X: hx, Y: hy, Z: hz},
		{X: -hx, Y: hy, Z: hz},
		{X: -hx, Y: -hy, Z: hz},
		{X: hx, Y: -hy, Z: hz},
		{X: hx, Y: hy, Z: -hz},
		{X: -hx, Y: hy, Z: -hz},
		{X: -hx, Y: -hy, Z: -hz},
		{X: hx, Y: -hy, Z: -hz},
	}

	var corners [8]math3d.Vec3
	for i, v := range local {
		corners[i] = b.Orientation.Rotate(v).Add(b.Center)
	}
	return corners
}
