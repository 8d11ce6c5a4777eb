package boxes

import (
	"sort"

	"github.com/softrender/boxcam/pkg/math3d"
	"github.com/softrender/boxcam/pkg/obbfit"
)

// sortedGroupKeys returns the grouping keys in reverse-sorted order so merged
// output is deterministic regardless of map iteration.
func sortedGroupKeys[T any](byParent map[string][]T) []string {
	keys := make([]string, 0, len(byParent))
	for k := range byParent {
		keys = append(keys, k)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))
	return keys
}

// MergeBoxes2D combines the per-part 2D boxes of multi-part entities into one
// axis-aligned union box per parent. Single-member groups pass through
// unchanged.
func MergeBoxes2D(byParent map[string][]BoundingBox) []BoundingBox {
	out := make([]BoundingBox, 0, len(byParent))
	for _, k := range sortedGroupKeys(byParent) {
		group := byParent[k]
		if len(group) == 1 {
			out = append(out, group[0])
			continue
		}
		out = append(out, mergeGroup2D(group))
	}
	return out
}

func mergeGroup2D(group []BoundingBox) BoundingBox {
	minV := group[0].Center.Sub(group[0].Size.Scale(0.5))
	maxV := group[0].Center.Add(group[0].Size.Scale(0.5))

	for _, b := range group[1:] {
		minV = minV.Min(b.Center.Sub(b.Size.Scale(0.5)))
		maxV = maxV.Max(b.Center.Add(b.Size.Scale(0.5)))
	}

	return BoundingBox{
		Type:        group[0].Type,
		Center:      minV.Add(maxV).Scale(0.5),
		Size:        maxV.Sub(minV),
		Orientation: math3d.QuatIdentity(),
		Label:       group[0].Label,
	}
}

// Part is one member of a multi-part entity on the 3D path, carrying the
// label resolved from the visibility set.
type Part struct {
	Entity Entity
	Label  uint32
}

// MergeBoxes3D produces one oriented camera-space box per parent. Parts of an
// entity rotate independently, so multi-member groups are merged by fitting
// principal axes over the combined camera-space vertex cloud of every member
// mesh rather than by reusing any single part's orientation. Single-member
// groups build their box directly.
func MergeBoxes3D(byParent map[string][]Part, view math3d.Mat4) []BoundingBox {
	out := make([]BoundingBox, 0, len(byParent))
	for _, k := range sortedGroupKeys(byParent) {
		group := byParent[k]
		if len(group) == 1 {
			out = append(out, BuildBox3D(group[0].Entity, view, group[0].Label))
			continue
		}
		out = append(out, mergeGroup3D(group, view))
	}
	return out
}

func mergeGroup3D(group []Part, view math3d.Mat4) BoundingBox {
	var points []math3d.Vec3
	for _, part := range group {
		pose := part.Entity.Pose()
		for _, sub := range part.Entity.SubMeshes() {
			n := sub.VertexCount()
			for i := 0; i < n; i++ {
				points = append(points, view.MulVec3(pose.Apply(sub.Position(i))))
			}
		}
	}

	if len(points) == 0 {
		return BuildBox3D(group[0].Entity, view, group[0].Label)
	}

	fit, ok := obbfit.Fit(points)
	if !ok {
		// Degenerate cloud: fall back to the axis-aligned extent.
		minV, maxV := points[0], points[0]
		for _, p := range points[1:] {
			minV = minV.Min(p)
			maxV = maxV.Max(p)
		}
		return BoundingBox{
			Type:        Box3D,
			Center:      minV.Add(maxV).Scale(0.5),
			Size:        maxV.Sub(minV),
			Orientation: math3d.QuatIdentity(),
			Label:       group[0].Label,
		}
	}

	return BoundingBox{
		Type:        Box3D,
		Center:      fit.Center,
		Size:        fit.Size,
		Orientation: fit.Rotation,
		Label:       group[0].Label,
	}
}
