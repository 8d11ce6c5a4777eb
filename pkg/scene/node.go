// Package scene provides the scene-graph collaborator for box extraction:
// objects with identifiers and semantic labels, transform nodes, vertex
// buffers and glTF loading.
package scene

import (
	"github.com/softrender/boxcam/pkg/boxes"
	"github.com/softrender/boxcam/pkg/math3d"
)

// Node is a transform in the scene graph. Transforms compose parent-first:
// a node's derived pose applies its parent's scale, rotation and translation
// on top of its own.
type Node struct {
	Position    math3d.Vec3
	Orientation math3d.Quat
	Scale       math3d.Vec3

	parent *Node
}

// NewNode creates an identity node.
func NewNode() *Node {
	return &Node{
		Orientation: math3d.QuatIdentity(),
		Scale:       math3d.One3(),
	}
}

// SetParent attaches the node under parent. A nil parent detaches it.
func (n *Node) SetParent(parent *Node) {
	n.parent = parent
}

// Derived returns the node's world pose, composed through the parent chain.
func (n *Node) Derived() boxes.Pose {
	local := boxes.Pose{
		Position:    n.Position,
		Orientation: n.Orientation,
		Scale:       n.Scale,
	}
	if n.parent == nil {
		return local
	}

	p := n.parent.Derived()
	return boxes.Pose{
		Position:    p.Apply(n.Position),
		Orientation: p.Orientation.Mul(n.Orientation),
		Scale:       p.Scale.Mul(n.Scale),
	}
}

// Object is one renderable instance: geometry under a transform node, tagged
// with a per-frame identifier and a semantic label. Objects sharing a Group
// name are parts of one logical entity and their boxes merge.
type Object struct {
	Name  string
	Group string // empty means standalone; Parent falls back to Name
	Label uint8

	Node      *Node
	Meshes    []*SubMesh
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3

	id uint32
}

// NewObject creates an object with an identity node and bounds computed from
// the given sub-meshes.
func NewObject(name string, label uint8, meshes ...*SubMesh) *Object {
	o := &Object{
		Name:   name,
		Label:  label,
		Node:   NewNode(),
		Meshes: meshes,
	}
	o.RecalculateBounds()
	return o
}

// RecalculateBounds recomputes the local axis-aligned bounds from the
// sub-mesh vertices.
func (o *Object) RecalculateBounds() {
	first := true
	for _, m := range o.Meshes {
		n := m.VertexCount()
		for i := 0; i < n; i++ {
			p := m.Position(i)
			if first {
				o.BoundsMin, o.BoundsMax = p, p
				first = false
				continue
			}
			o.BoundsMin = o.BoundsMin.Min(p)
			o.BoundsMax = o.BoundsMax.Max(p)
		}
	}
}

// Identifier returns the object's dense identifier, assigned by the scene.
func (o *Object) Identifier() uint32 {
	return o.id
}

// Parent returns the multi-part grouping name.
func (o *Object) Parent() string {
	if o.Group != "" {
		return o.Group
	}
	return o.Name
}

// Pose returns the derived world transform.
func (o *Object) Pose() boxes.Pose {
	return o.Node.Derived()
}

// LocalSize returns the local-space bounding box dimensions.
func (o *Object) LocalSize() math3d.Vec3 {
	return o.BoundsMax.Sub(o.BoundsMin)
}

// WorldBounds returns the axis-aligned extent covering the transformed local
// bounds.
func (o *Object) WorldBounds() (math3d.Vec3, math3d.Vec3) {
	pose := o.Pose()

	corners := [8]math3d.Vec3{
		{X: o.BoundsMin.X, Y: o.BoundsMin.Y, Z: o.BoundsMin.Z},
		{X: o.BoundsMax.X, Y: o.BoundsMin.Y, Z: o.BoundsMin.Z},
		{X: o.BoundsMin.X, Y: o.BoundsMax.Y, Z: o.BoundsMin.Z},
		{X: o.BoundsMax.X, Y: o.BoundsMax.Y, Z: o.BoundsMin.Z},
		{X: o.BoundsMin.X, Y: o.BoundsMin.Y, Z: o.BoundsMax.Z},
		{X: o.BoundsMax.X, Y: o.BoundsMin.Y, Z: o.BoundsMax.Z},
		{X: o.BoundsMin.X, Y: o.BoundsMax.Y, Z: o.BoundsMax.Z},
		{X: o.BoundsMax.X, Y: o.BoundsMax.Y, Z: o.BoundsMax.Z},
	}

	minW := pose.Apply(corners[0])
	maxW := minW
	for _, c := range corners[1:] {
		w := pose.Apply(c)
		minW = minW.Min(w)
		maxW = maxW.Max(w)
	}
	return minW, maxW
}

// SubMeshes returns the object's vertex streams.
func (o *Object) SubMeshes() []boxes.VertexStream {
	streams := make([]boxes.VertexStream, len(o.Meshes))
	for i, m := range o.Meshes {
		streams[i] = m
	}
	return streams
}

// Scene owns the objects of a frame and assigns their identifiers.
type Scene struct {
	objects []*Object
	nextID  uint32
}

// NewScene creates an empty scene. Identifiers start at 1.
func NewScene() *Scene {
	return &Scene{nextID: 1}
}

// Add inserts the object and assigns it the next dense identifier.
func (s *Scene) Add(obj *Object) {
	obj.id = s.nextID
	s.nextID++
	s.objects = append(s.objects, obj)
}

// Objects returns the scene's objects in insertion order.
func (s *Scene) Objects() []*Object {
	return s.objects
}

// Entities returns the objects as extraction entities.
func (s *Scene) Entities() []boxes.Entity {
	ents := make([]boxes.Entity, len(s.objects))
	for i, o := range s.objects {
		ents[i] = o
	}
	return ents
}
