package boxes

import "github.com/softrender/boxcam/pkg/math3d"

// buildVisibleBoxes converts per-object pixel boundaries into 2D boxes fit to
// the visible pixels. The boundary extrema are inclusive, so size spans
// max - min and the center is their midpoint.
func buildVisibleBoxes(visible map[uint32]uint32, bounds map[uint32]PixelBoundary) map[uint32]BoundingBox {
	out := make(map[uint32]BoundingBox, len(bounds))

	for id, b := range bounds {
		w := float64(b.MaxX - b.MinX)
		h := float64(b.MaxY - b.MinY)

		out[id] = BoundingBox{
			Type:        VisibleBox2D,
			Center:      math3d.V3(float64(b.MinX)+w/2, float64(b.MinY)+h/2, 0),
			Size:        math3d.V3(w, h, 0),
			Orientation: math3d.QuatIdentity(),
			Label:       visible[id],
		}
	}

	return out
}
