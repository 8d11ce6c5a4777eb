package scene

import (
	"encoding/binary"
	"math"

	"github.com/rs/zerolog/log"
	"github.com/x448/float16"

	"github.com/softrender/boxcam/pkg/math3d"
)

// VertexFormat identifies the position encoding of a vertex buffer.
type VertexFormat int

const (
	// FormatFloat3 packs each position as three little-endian float32s.
	FormatFloat3 VertexFormat = iota
	// FormatHalf4 packs each position as four little-endian half-precision
	// floats; the fourth component is padding and ignored.
	FormatHalf4
)

// vertex byte strides per format
const (
	strideFloat3 = 12
	strideHalf4  = 8
)

// VertexBuffer is a raw position buffer in one of the supported encodings.
// Mixed-precision meshes carry one buffer per sub-mesh, each with its own
// format.
type VertexBuffer struct {
	Format VertexFormat
	Data   []byte
}

// NewFloat3Buffer packs positions into a full-precision buffer.
func NewFloat3Buffer(positions []math3d.Vec3) VertexBuffer {
	data := make([]byte, 0, len(positions)*strideFloat3)
	for _, p := range positions {
		data = binary.LittleEndian.AppendUint32(data, math.Float32bits(float32(p.X)))
		data = binary.LittleEndian.AppendUint32(data, math.Float32bits(float32(p.Y)))
		data = binary.LittleEndian.AppendUint32(data, math.Float32bits(float32(p.Z)))
	}
	return VertexBuffer{Format: FormatFloat3, Data: data}
}

// NewHalf4Buffer packs positions into a half-precision buffer with a padding
// component per vertex.
func NewHalf4Buffer(positions []math3d.Vec3) VertexBuffer {
	data := make([]byte, 0, len(positions)*strideHalf4)
	for _, p := range positions {
		data = binary.LittleEndian.AppendUint16(data, float16.Fromfloat32(float32(p.X)).Bits())
		data = binary.LittleEndian.AppendUint16(data, float16.Fromfloat32(float32(p.Y)).Bits())
		data = binary.LittleEndian.AppendUint16(data, float16.Fromfloat32(float32(p.Z)).Bits())
		data = binary.LittleEndian.AppendUint16(data, float16.Fromfloat32(1).Bits())
	}
	return VertexBuffer{Format: FormatHalf4, Data: data}
}

// VertexCount returns the number of positions in the buffer.
func (b VertexBuffer) VertexCount() int {
	switch b.Format {
	case FormatFloat3:
		return len(b.Data) / strideFloat3
	case FormatHalf4:
		return len(b.Data) / strideHalf4
	default:
		return 0
	}
}

// Position decodes the position of vertex i. An unsupported format logs an
// error and yields the zero vector so the frame keeps processing.
func (b VertexBuffer) Position(i int) math3d.Vec3 {
	switch b.Format {
	case FormatFloat3:
		off := i * strideFloat3
		return math3d.V3(
			float64(math.Float32frombits(binary.LittleEndian.Uint32(b.Data[off:]))),
			float64(math.Float32frombits(binary.LittleEndian.Uint32(b.Data[off+4:]))),
			float64(math.Float32frombits(binary.LittleEndian.Uint32(b.Data[off+8:]))),
		)
	case FormatHalf4:
		off := i * strideHalf4
		return math3d.V3(
			float64(float16.Frombits(binary.LittleEndian.Uint16(b.Data[off:])).Float32()),
			float64(float16.Frombits(binary.LittleEndian.Uint16(b.Data[off+2:])).Float32()),
			float64(float16.Frombits(binary.LittleEndian.Uint16(b.Data[off+4:])).Float32()),
		)
	default:
		log.Error().Int("format", int(b.Format)).Msg("vertex buffer: unsupported position encoding")
		return math3d.Zero3()
	}
}

// SubMesh is one vertex buffer plus its triangle indices. An empty index
// list means sequential triangles.
type SubMesh struct {
	VertexBuffer
	Indices []int
}

// NewSubMesh creates a full-precision sub-mesh.
func NewSubMesh(positions []math3d.Vec3, indices []int) *SubMesh {
	return &SubMesh{
		VertexBuffer: NewFloat3Buffer(positions),
		Indices:      indices,
	}
}

// TriangleCount returns the number of triangles.
func (m *SubMesh) TriangleCount() int {
	if len(m.Indices) > 0 {
		return len(m.Indices) / 3
	}
	return m.VertexCount() / 3
}

// Triangle returns the vertex indices of triangle i.
func (m *SubMesh) Triangle(i int) [3]int {
	if len(m.Indices) > 0 {
		return [3]int{m.Indices[i*3], m.Indices[i*3+1], m.Indices[i*3+2]}
	}
	return [3]int{i * 3, i*3 + 1, i*3 + 2}
}
