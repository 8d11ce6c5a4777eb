package scene

import "github.com/softrender/boxcam/pkg/math3d"

// NewBoxMesh creates an axis-aligned box sub-mesh centered at the origin
// with the given dimensions, built from 8 vertices and 12 triangles.
func NewBoxMesh(size math3d.Vec3) *SubMesh {
	hx, hy, hz := size.X/2, size.Y/2, size.Z/2

	positions := []math3d.Vec3{
		{X: -hx, Y: -hy, Z: -hz},
		{X: hx, Y: -hy, Z: -hz},
		{X: hx, Y: hy, Z: -hz},
		{X: -hx, Y: hy, Z: -hz},
		{X: -hx, Y: -hy, Z: hz},
		{X: hx, Y: -hy, Z: hz},
		{X: hx, Y: hy, Z: hz},
		{X: -hx, Y: hy, Z: hz},
	}

	indices := []int{
		0, 2, 1, 0, 3, 2, // back
		4, 5, 6, 4, 6, 7, // front
		0, 4, 7, 0, 7, 3, // left
		1, 6, 5, 1, 2, 6, // right
		3, 7, 6, 3, 6, 2, // top
		0, 1, 5, 0, 5, 4, // bottom
	}

	return NewSubMesh(positions, indices)
}

// NewBoxObject creates a standalone box object of the given size.
func NewBoxObject(name string, label uint8, size math3d.Vec3) *Object {
	return NewObject(name, label, NewBoxMesh(size))
}
