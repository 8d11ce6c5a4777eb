package boxes

import (
	"math"

	"github.com/softrender/boxcam/pkg/math3d"
)

// projectedBounds projects every vertex of the entity's sub-meshes through
// the view and projection matrices and returns the component-wise extrema
// after homogeneous division of X and Y. Z is kept undivided: vertices behind
// the camera do not individually invalidate the box.
func projectedBounds(ent Entity, viewProj math3d.Mat4) (minV, maxV math3d.Vec3) {
	minV = math3d.V3(math.Inf(1), math.Inf(1), math.Inf(1))
	maxV = math3d.V3(math.Inf(-1), math.Inf(-1), math.Inf(-1))

	pose := ent.Pose()
	for _, sub := range ent.SubMeshes() {
		n := sub.VertexCount()
		for i := 0; i < n; i++ {
			world := pose.Apply(sub.Position(i))
			clip := viewProj.MulVec4(math3d.V4FromV3(world, 1))

			v := math3d.V3(clip.X/clip.W, clip.Y/clip.W, clip.Z)

			minV = minV.Min(v)
			maxV = maxV.Max(v)
		}
	}

	return minV, maxV
}

// BuildFullBox2D computes the minimal screen-space 2D box covering the
// entity's entire projected geometry, occluded parts included. The second
// return is false when the projection lies fully outside the clip range on
// the X or Y axis and the entity produces no box this frame.
func BuildFullBox2D(ent Entity, view, proj math3d.Mat4, width, height int, label uint32) (BoundingBox, bool) {
	minV, maxV := projectedBounds(ent, proj.Mul(view))

	// Fully off-screen on one axis: discard.
	if (math.Abs(minV.X) > 1 && math.Abs(maxV.X) > 1) ||
		(math.Abs(minV.Y) > 1 && math.Abs(maxV.Y) > 1) {
		return BoundingBox{}, false
	}

	// Empty vertex set leaves the extrema at +-Inf.
	if minV.X > maxV.X {
		return BoundingBox{}, false
	}

	// The clip-space min Y lands at the screen's max Y because of the
	// vertical flip.
	x0, y1 := ndcToScreen(minV.X, minV.Y, width, height)
	x1, y0 := ndcToScreen(maxV.X, maxV.Y, width, height)

	w := x1 - x0
	h := y1 - y0

	return BoundingBox{
		Type:        FullBox2D,
		Center:      math3d.V3(x0+w/2, y0+h/2, 0),
		Size:        math3d.V3(w, h, 0),
		Orientation: math3d.QuatIdentity(),
		Label:       label,
	}, true
}
