package scene

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/qmuntal/gltf"

	"github.com/softrender/boxcam/pkg/math3d"
)

// LoadModel loads a glTF/GLB file into one object per mesh-bearing node. All
// objects share the model's base name as their group, so a multi-node model
// merges into a single box downstream. Node transforms are preserved through
// the glTF node hierarchy.
func LoadModel(path string, label uint8) ([]*Object, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	group := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	nodes := make([]*Node, len(doc.Nodes))
	for i, n := range doc.Nodes {
		nodes[i] = nodeFromGLTF(n)
	}
	for i, n := range doc.Nodes {
		for _, child := range n.Children {
			nodes[child].SetParent(nodes[i])
		}
	}

	var objects []*Object
	for i, n := range doc.Nodes {
		if n.Mesh == nil {
			continue
		}
		m := doc.Meshes[*n.Mesh]

		subs, err := loadPrimitives(doc, m)
		if err != nil {
			return nil, fmt.Errorf("process mesh %q: %w", m.Name, err)
		}
		if len(subs) == 0 {
			continue
		}

		name := n.Name
		if name == "" {
			name = fmt.Sprintf("%s-node-%d", group, i)
		}

		obj := NewObject(name, label, subs...)
		obj.Group = group
		obj.Node = nodes[i]
		objects = append(objects, obj)
	}

	if len(objects) == 0 {
		return nil, fmt.Errorf("model %q contains no triangle geometry", path)
	}
	return objects, nil
}

// nodeFromGLTF converts a glTF TRS transform. Zero-valued rotation and scale
// mean the document omitted them, so they fall back to identity.
func nodeFromGLTF(n *gltf.Node) *Node {
	node := NewNode()
	node.Position = math3d.V3(n.Translation[0], n.Translation[1], n.Translation[2])

	if r := n.Rotation; r != [4]float64{} {
		node.Orientation = math3d.Quat{W: r[3], X: r[0], Y: r[1], Z: r[2]}.Normalize()
	}
	if s := n.Scale; s != [3]float64{} {
		node.Scale = math3d.V3(s[0], s[1], s[2])
	}
	return node
}

// loadPrimitives extracts one sub-mesh per triangle primitive.
func loadPrimitives(doc *gltf.Document, m *gltf.Mesh) ([]*SubMesh, error) {
	var subs []*SubMesh
	for _, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
			continue
		}

		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}

		positions, err := readPositions(doc, posIdx)
		if err != nil {
			return nil, fmt.Errorf("read positions: %w", err)
		}

		var indices []int
		if prim.Indices != nil {
			indices, err = readIndices(doc, *prim.Indices)
			if err != nil {
				return nil, fmt.Errorf("read indices: %w", err)
			}
		}

		subs = append(subs, NewSubMesh(positions, indices))
	}
	return subs, nil
}

// readPositions reads a VEC3 float accessor.
func readPositions(doc *gltf.Document, accessorIdx int) ([]math3d.Vec3, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorVec3 || accessor.ComponentType != gltf.ComponentFloat {
		return nil, fmt.Errorf("expected float VEC3, got %v / %v", accessor.Type, accessor.ComponentType)
	}

	data, stride, err := accessorBytes(doc, accessor, strideFloat3)
	if err != nil {
		return nil, err
	}

	result := make([]math3d.Vec3, accessor.Count)
	for i := range result {
		off := i * stride
		result[i] = math3d.V3(
			float64(readFloat32(data[off:])),
			float64(readFloat32(data[off+4:])),
			float64(readFloat32(data[off+8:])),
		)
	}
	return result, nil
}

// readIndices reads a scalar index accessor of any supported width.
func readIndices(doc *gltf.Document, accessorIdx int) ([]int, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorScalar {
		return nil, fmt.Errorf("expected SCALAR, got %v", accessor.Type)
	}

	var width int
	switch accessor.ComponentType {
	case gltf.ComponentUbyte:
		width = 1
	case gltf.ComponentUshort:
		width = 2
	case gltf.ComponentUint:
		width = 4
	default:
		return nil, fmt.Errorf("unsupported index component type: %v", accessor.ComponentType)
	}

	data, stride, err := accessorBytes(doc, accessor, width)
	if err != nil {
		return nil, err
	}

	result := make([]int, accessor.Count)
	for i := range result {
		off := i * stride
		switch width {
		case 1:
			result[i] = int(data[off])
		case 2:
			result[i] = int(uint16(data[off]) | uint16(data[off+1])<<8)
		case 4:
			result[i] = int(uint32(data[off]) |
				uint32(data[off+1])<<8 |
				uint32(data[off+2])<<16 |
				uint32(data[off+3])<<24)
		}
	}
	return result, nil
}

// accessorBytes returns the accessor's backing bytes and element stride.
// Only embedded (GLB) buffers are supported.
func accessorBytes(doc *gltf.Document, accessor *gltf.Accessor, defaultStride int) ([]byte, int, error) {
	if accessor.BufferView == nil {
		return nil, 0, fmt.Errorf("accessor has no buffer view")
	}

	bufferView := doc.BufferViews[*accessor.BufferView]
	buffer := doc.Buffers[bufferView.Buffer]

	if buffer.URI != "" {
		return nil, 0, fmt.Errorf("external buffers not supported")
	}
	if buffer.Data == nil {
		return nil, 0, fmt.Errorf("buffer has no data")
	}

	stride := bufferView.ByteStride
	if stride == 0 {
		stride = defaultStride
	}

	start := bufferView.ByteOffset + accessor.ByteOffset
	return buffer.Data[start:], stride, nil
}

// readFloat32 reads a little-endian float32.
func readFloat32(b []byte) float32 {
	bits := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
	return math.Float32frombits(bits)
}
