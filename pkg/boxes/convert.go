package boxes

import "math"

// ndcToScreen converts a clip-range coordinate pair to pixel coordinates.
// X maps [-1,1] to [0,width), Y is flipped (clip +Y is up, pixel +Y is down),
// and the result is clamped to the image bounds.
func ndcToScreen(x, y float64, width, height int) (float64, float64) {
	x = clamp(x, -1, 1)
	y = clamp(y, -1, 1)

	sx := (x + 1) / 2 * float64(width)
	sy := (1 - y) / 2 * float64(height)

	sx = clamp(math.Floor(sx), 0, float64(width-1))
	sy = clamp(math.Floor(sy), 0, float64(height-1))
	return sx, sy
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
