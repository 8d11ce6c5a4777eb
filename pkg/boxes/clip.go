package boxes

import (
	"github.com/rs/zerolog/log"

	"github.com/softrender/boxcam/pkg/math3d"
)

// Cohen-Sutherland outcode bits classifying a point against the viewport.
const (
	clipInside = 0 // 0000
	clipLeft   = 1 // 0001
	clipRight  = 2 // 0010
	clipBottom = 4 // 0100
	clipTop    = 8 // 1000
)

// Viewport is an axis-aligned clip rectangle.
type Viewport struct {
	XMin, YMin, XMax, YMax float64
}

// NDCViewport is the normalized-device-coordinate clip rectangle.
func NDCViewport() Viewport {
	return Viewport{XMin: -1, YMin: -1, XMax: 1, YMax: 1}
}

// outcode computes the point's 4-bit location relative to the viewport.
func (vp Viewport) outcode(x, y float64) int {
	code := clipInside

	if x < vp.XMin {
		code |= clipLeft
	} else if x > vp.XMax {
		code |= clipRight
	}

	if y < vp.YMin {
		code |= clipBottom
	} else if y > vp.YMax {
		code |= clipTop
	}

	return code
}

// ClipSegment clips the segment (p0, p1) against the viewport using the
// Cohen-Sutherland algorithm. If any part of the segment lies inside, the
// clipped endpoints are returned. A fully outside segment yields two NaN
// points; callers must check IsFinite before using the result.
func (vp Viewport) ClipSegment(p0, p1 math3d.Vec2) (math3d.Vec2, math3d.Vec2) {
	x0, y0 := p0.X, p0.Y
	x1, y1 := p1.X, p1.Y

	loc0 := vp.outcode(x0, y0)
	loc1 := vp.outcode(x1, y1)

	for {
		if loc0|loc1 == 0 {
			// Both endpoints inside: accept.
			return math3d.V2(x0, y0), math3d.V2(x1, y1)
		}
		if loc0&loc1 != 0 {
			// Both endpoints share an outside zone: the segment cannot
			// cross the viewport. Reject.
			return math3d.V2NaN(), math3d.V2NaN()
		}

		// At least one endpoint is outside; pick the one with the larger
		// outcode and clip it to the first crossed boundary.
		outer := loc0
		if loc1 > loc0 {
			outer = loc1
		}

		// Intersection formulas:
		//   slope = (y1 - y0) / (x1 - x0)
		//   x = x0 + (1/slope) * (ym - y0), ym = YMin or YMax
		//   y = y0 + slope * (xm - x0),     xm = XMin or XMax
		// The tested outcode bit guarantees the denominator is non-zero.
		var x, y float64
		switch {
		case outer&clipTop != 0:
			x = x0 + (x1-x0)*(vp.YMax-y0)/(y1-y0)
			y = vp.YMax
		case outer&clipBottom != 0:
			x = x0 + (x1-x0)*(vp.YMin-y0)/(y1-y0)
			y = vp.YMin
		case outer&clipRight != 0:
			y = y0 + (y1-y0)*(vp.XMax-x0)/(x1-x0)
			x = vp.XMax
		case outer&clipLeft != 0:
			y = y0 + (y1-y0)*(vp.XMin-x0)/(x1-x0)
			x = vp.XMin
		default:
			log.Error().Msg("clip: no endpoint outside the viewport despite nonzero outcode")
			return math3d.V2NaN(), math3d.V2NaN()
		}

		if outer == loc0 {
			x0, y0 = x, y
			loc0 = vp.outcode(x0, y0)
		} else {
			x1, y1 = x, y
			loc1 = vp.outcode(x1, y1)
		}
	}
}

// appendClippedSegment clips (p0, p1) and appends the surviving endpoint pair
// to lines. Rejected segments append nothing.
func (vp Viewport) appendClippedSegment(lines []math3d.Vec2, p0, p1 math3d.Vec2) []math3d.Vec2 {
	q0, q1 := vp.ClipSegment(p0, p1)
	if q0.IsFinite() && q1.IsFinite() {
		lines = append(lines, q0, q1)
	}
	return lines
}
