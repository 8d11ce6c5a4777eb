package boxes

import "github.com/softrender/boxcam/pkg/math3d"

// Pose is a decomposed world transform: translate(Position) * rotate
// (Orientation) * scale(Scale), applied to local-space points in that order.
type Pose struct {
	Position    math3d.Vec3
	Orientation math3d.Quat
	Scale       math3d.Vec3
}

// Apply transforms a local-space point to world space.
func (p Pose) Apply(v math3d.Vec3) math3d.Vec3 {
	return p.Orientation.Rotate(v.Mul(p.Scale)).Add(p.Position)
}

// VertexStream is an ordered sequence of local-space vertex positions for one
// sub-mesh. Implementations decode whatever encoding the underlying buffer
// uses (full or half precision).
type VertexStream interface {
	// VertexCount returns the number of vertices in the stream.
	VertexCount() int
	// Position returns the local-space position of vertex i.
	Position(i int) math3d.Vec3
}

// Entity is one renderable object instance as seen by the extractor: a stable
// per-frame identifier, a parent entity name for multi-part grouping, a world
// transform, local bounds and the sub-mesh geometry.
type Entity interface {
	// Identifier returns the object's dense per-frame identifier.
	// The identifier buffer encodes it in 16 bits, so identifiers of
	// concurrently visible objects must stay below 65536.
	Identifier() uint32
	// Parent returns the parent entity name used for multi-part merging.
	// Standalone objects return their own name.
	Parent() string
	// Pose returns the derived world transform.
	Pose() Pose
	// LocalSize returns the object's local-space bounding box dimensions.
	LocalSize() math3d.Vec3
	// WorldBounds returns the world-space axis-aligned bounding extent.
	WorldBounds() (min, max math3d.Vec3)
	// SubMeshes returns the object's sub-mesh vertex streams.
	SubMeshes() []VertexStream
}

// SceneSource supplies the entities participating in a frame.
type SceneSource interface {
	Entities() []Entity
}

// CameraSource supplies the camera transforms and frustum test for a frame.
type CameraSource interface {
	// ViewMatrix returns the world-to-camera transform.
	ViewMatrix() math3d.Mat4
	// ProjectionMatrix returns the camera-to-clip transform.
	ProjectionMatrix() math3d.Mat4
	// InView reports whether a world-space axis-aligned extent intersects
	// the view frustum.
	InView(min, max math3d.Vec3) bool
}
