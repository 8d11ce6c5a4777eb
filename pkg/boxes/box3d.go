package boxes

import "github.com/softrender/boxcam/pkg/math3d"

// BuildBox3D computes the entity's oriented box in camera space. The center
// is the world bounds midpoint transformed by the view matrix, the size is
// the local extent under the entity's scale, and the orientation composes the
// world-to-camera rotation with the entity's own.
func BuildBox3D(ent Entity, view math3d.Mat4, label uint32) BoundingBox {
	minW, maxW := ent.WorldBounds()
	center := minW.Add(maxW).Scale(0.5)

	pose := ent.Pose()

	return BoundingBox{
		Type:        Box3D,
		Center:      view.MulVec3(center),
		Size:        ent.LocalSize().Mul(pose.Scale),
		Orientation: math3d.QuatFromMat4(view).Mul(pose.Orientation),
		Label:       label,
	}
}
