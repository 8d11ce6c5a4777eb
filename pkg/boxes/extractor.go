package boxes

import (
	"fmt"
	"sort"
	"sync"
)

// Extractor runs the per-frame box pipeline: scan the identifier buffer,
// build one box per visible object in the selected representation, merge
// multi-part entities and deliver the result to subscribers. A single
// Extractor must not process frames concurrently; all scratch state is
// frame-scoped.
type Extractor struct {
	scanner Scanner
	boxType BoxType

	mu      sync.Mutex
	subs    map[int]func([]BoundingBox)
	nextSub int

	boxes []BoundingBox
}

// New creates an extractor for identifier buffers of the given dimensions.
// background is the reserved label meaning "no object at this pixel".
func New(width, height int, background uint8) *Extractor {
	return &Extractor{
		scanner: Scanner{Width: width, Height: height, Background: background},
		boxType: VisibleBox2D,
		subs:    make(map[int]func([]BoundingBox)),
	}
}

// SetBoxType selects the representation used from the next frame on.
func (e *Extractor) SetBoxType(t BoxType) {
	e.boxType = t
}

// BoxType returns the currently selected representation.
func (e *Extractor) BoxType() BoxType {
	return e.boxType
}

// OnBoxes registers fn to receive each frame's boxes. The returned cancel
// function removes the subscription. With no subscriptions registered,
// ProcessFrame skips all computation.
func (e *Extractor) OnBoxes(fn func([]BoundingBox)) (cancel func()) {
	e.mu.Lock()
	id := e.nextSub
	e.nextSub++
	e.subs[id] = fn
	e.mu.Unlock()

	return func() {
		e.mu.Lock()
		delete(e.subs, id)
		e.mu.Unlock()
	}
}

// Boxes returns the boxes extracted from the most recent frame.
func (e *Extractor) Boxes() []BoundingBox {
	return e.boxes
}

// ProcessFrame extracts boxes from one identifier buffer. buf is the flat
// row-major RGB frame; scene and cam supply the frame's entities and camera
// transforms. The result is returned, retained for Boxes, and delivered to
// every subscriber in subscription order.
func (e *Extractor) ProcessFrame(buf []byte, scene SceneSource, cam CameraSource) []BoundingBox {
	e.boxes = nil

	e.mu.Lock()
	fns := make([]func([]BoundingBox), 0, len(e.subs))
	ids := make([]int, 0, len(e.subs))
	for id := range e.subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		fns = append(fns, e.subs[id])
	}
	e.mu.Unlock()

	if len(fns) == 0 {
		return nil
	}

	switch e.boxType {
	case VisibleBox2D:
		e.boxes = e.visibleBoxes(buf, scene)
	case FullBox2D:
		e.boxes = e.fullBoxes(buf, scene, cam)
	case Box3D:
		e.boxes = e.boxes3D(buf, scene, cam)
	}

	for _, fn := range fns {
		fn(e.boxes)
	}
	return e.boxes
}

// visibleBoxes builds 2D boxes from the pixels each object actually covers.
func (e *Extractor) visibleBoxes(buf []byte, scene SceneSource) []BoundingBox {
	visible, bounds := e.scanner.ScanBoundaries(buf)
	perObject := buildVisibleBoxes(visible, bounds)

	groups := make(map[string][]BoundingBox)
	claimed := make(map[uint32]bool, len(perObject))

	for _, ent := range scene.Entities() {
		id := ent.Identifier()
		box, ok := perObject[id]
		if !ok {
			continue
		}
		groups[ent.Parent()] = append(groups[ent.Parent()], box)
		claimed[id] = true
	}

	// Identifiers present in the buffer but unknown to the scene still
	// produce a box, each in its own group.
	orphans := make([]uint32, 0)
	for id := range perObject {
		if !claimed[id] {
			orphans = append(orphans, id)
		}
	}
	sort.Slice(orphans, func(i, j int) bool { return orphans[i] < orphans[j] })
	for _, id := range orphans {
		key := fmt.Sprintf("unknown-%d", id)
		groups[key] = append(groups[key], perObject[id])
	}

	return MergeBoxes2D(groups)
}

// fullBoxes builds 2D boxes from each object's full projected geometry.
func (e *Extractor) fullBoxes(buf []byte, scene SceneSource, cam CameraSource) []BoundingBox {
	visible := e.scanner.Scan(buf)
	view := cam.ViewMatrix()
	proj := cam.ProjectionMatrix()

	groups := make(map[string][]BoundingBox)
	for _, ent := range scene.Entities() {
		label, ok := visible[ent.Identifier()]
		if !ok {
			continue
		}
		if minW, maxW := ent.WorldBounds(); !cam.InView(minW, maxW) {
			continue
		}
		box, ok := BuildFullBox2D(ent, view, proj, e.scanner.Width, e.scanner.Height, label)
		if !ok {
			continue
		}
		groups[ent.Parent()] = append(groups[ent.Parent()], box)
	}

	return MergeBoxes2D(groups)
}

// boxes3D builds oriented camera-space boxes.
func (e *Extractor) boxes3D(buf []byte, scene SceneSource, cam CameraSource) []BoundingBox {
	visible := e.scanner.Scan(buf)
	view := cam.ViewMatrix()

	groups := make(map[string][]Part)
	for _, ent := range scene.Entities() {
		label, ok := visible[ent.Identifier()]
		if !ok {
			continue
		}
		if minW, maxW := ent.WorldBounds(); !cam.InView(minW, maxW) {
			continue
		}
		groups[ent.Parent()] = append(groups[ent.Parent()], Part{Entity: ent, Label: label})
	}

	return MergeBoxes3D(groups, view)
}
