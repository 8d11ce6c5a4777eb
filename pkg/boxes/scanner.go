package boxes

// The identifier buffer is a flat row-major RGB frame, 3 bytes per pixel,
// where each pixel encodes (idLow, idHigh, label) in its three channels. The
// 16-bit split caps the identifier space at 65536 concurrently visible
// objects per frame; collisions beyond that are silent.

// pixelChannels is the byte stride of one identifier-buffer pixel.
const pixelChannels = 3

// MaxIdentifiers is the number of distinct object identifiers one frame's
// buffer can represent.
const MaxIdentifiers = 65536

// EncodePixel returns the identifier-buffer channel values for an object.
func EncodePixel(id uint32, label uint8) (idLow, idHigh, lbl uint8) {
	return uint8(id % 256), uint8(id / 256), label
}

// DecodePixel recovers the object identifier from the two id channels.
func DecodePixel(idLow, idHigh uint8) uint32 {
	return uint32(idHigh)*256 + uint32(idLow)
}

// PixelBoundary tracks the running pixel extrema of one object while
// scanning. Valid once at least one pixel has been recorded.
type PixelBoundary struct {
	MinX, MinY, MaxX, MaxY int
}

// Scanner decodes identifier buffers for a fixed image size and background
// label.
type Scanner struct {
	Width      int
	Height     int
	Background uint8
}

// Scan decodes the buffer and returns the visibility set: every
// non-background identifier mapped to its label. The first label seen for an
// identifier wins; labels are constant per object within a frame by
// construction.
func (s Scanner) Scan(buf []byte) map[uint32]uint32 {
	visible := make(map[uint32]uint32)

	for y := 0; y < s.Height; y++ {
		for x := 0; x < s.Width; x++ {
			i := (y*s.Width + x) * pixelChannels

			label := buf[i+2]
			if label == s.Background {
				continue
			}

			id := DecodePixel(buf[i], buf[i+1])
			if _, ok := visible[id]; !ok {
				visible[id] = uint32(label)
			}
		}
	}

	return visible
}

// ScanBoundaries decodes the buffer and returns both the visibility set and
// a pixel boundary per identifier covering every pixel the object touched.
func (s Scanner) ScanBoundaries(buf []byte) (map[uint32]uint32, map[uint32]PixelBoundary) {
	visible := make(map[uint32]uint32)
	bounds := make(map[uint32]PixelBoundary)

	for y := 0; y < s.Height; y++ {
		for x := 0; x < s.Width; x++ {
			i := (y*s.Width + x) * pixelChannels

			label := buf[i+2]
			if label == s.Background {
				continue
			}

			id := DecodePixel(buf[i], buf[i+1])

			b, ok := bounds[id]
			if !ok {
				visible[id] = uint32(label)
				b = PixelBoundary{MinX: x, MinY: y, MaxX: x, MaxY: y}
			} else {
				b.MinX = min(b.MinX, x)
				b.MinY = min(b.MinY, y)
				b.MaxX = max(b.MaxX, x)
				b.MaxY = max(b.MaxY, y)
			}
			bounds[id] = b
		}
	}

	return visible, bounds
}
