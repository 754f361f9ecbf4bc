// Package scene holds the single mutable owner of a composition: the logical
// canvas, the layer stack and the selection.
//
// Every mutation goes through a Scene method and is announced to listeners
// registered with On, so views can re-render without polling. Scene is NOT
// safe for concurrent use; drive it from one event goroutine.
package scene

import (
	"github.com/gogpu/compose"
	"github.com/gogpu/compose/layer"
)

// EventType identifies a kind of scene mutation.
type EventType int

// Scene events.
const (
	// EventCanvasChanged fires when the canvas size or fill changes.
	EventCanvasChanged EventType = iota

	// EventLayersChanged fires when layers are added, removed or reordered.
	EventLayersChanged

	// EventLayerUpdated fires when one layer's transform or bitmap changes.
	EventLayerUpdated

	// EventSelectionChanged fires when the selected layer changes.
	EventSelectionChanged
)

// String returns the event name.
func (t EventType) String() string {
	switch t {
	case EventCanvasChanged:
		return "canvas-changed"
	case EventLayersChanged:
		return "layers-changed"
	case EventLayerUpdated:
		return "layer-updated"
	case EventSelectionChanged:
		return "selection-changed"
	default:
		return "unknown"
	}
}

// Event describes one mutation. ID is the affected layer, if any.
type Event struct {
	Type EventType
	ID   layer.ID
}

// Listener is called synchronously after a mutation.
type Listener func(Event)

// Scene aggregates the canvas, the layer stack and the selection.
type Scene struct {
	canvas     Canvas
	stack      *layer.Stack
	selected   layer.ID
	stampScale float64

	// version is incremented on each modification for cache invalidation
	version uint64

	listeners map[EventType][]Listener
}

// New creates an empty scene.
func New(opts ...Option) *Scene {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	st := layer.NewStack()
	st.SetBackgroundInFront(o.backgroundInFront)
	return &Scene{
		canvas:     o.canvas,
		stack:      st,
		stampScale: o.stampScale,
		listeners:  make(map[EventType][]Listener),
	}
}

// On registers a listener for the given event type.
func (s *Scene) On(t EventType, fn Listener) {
	s.listeners[t] = append(s.listeners[t], fn)
}

func (s *Scene) emit(t EventType, id layer.ID) {
	s.version++
	for _, fn := range s.listeners[t] {
		fn(Event{Type: t, ID: id})
	}
}

// Version returns a counter that changes on every mutation.
func (s *Scene) Version() uint64 {
	return s.version
}

// Canvas returns the logical canvas.
func (s *Scene) Canvas() Canvas {
	return s.canvas
}

// SetCanvas replaces the canvas. Invalid sizes are ignored. Layer transforms
// are kept as they are; only the coordinate space around them changes.
func (s *Scene) SetCanvas(c Canvas) {
	if !c.Valid() || c == s.canvas {
		return
	}
	s.canvas = c
	s.emit(EventCanvasChanged, "")
}

// SetPreset switches to a preset size, keeping the current fill.
func (s *Scene) SetPreset(p Preset) {
	c := p.Canvas()
	c.Fill = s.canvas.Fill
	s.SetCanvas(c)
}

// SetFill changes the flat fill color drawn behind every layer.
func (s *Scene) SetFill(fill compose.RGB) {
	if s.canvas.Fill == fill {
		return
	}
	s.canvas.Fill = fill
	s.emit(EventCanvasChanged, "")
}

// StampScale returns the scale new stamps are placed at.
func (s *Scene) StampScale() float64 {
	return s.stampScale
}

// Len returns the number of layers.
func (s *Scene) Len() int {
	return s.stack.Len()
}

// Layers returns the layers in render order (bottom first).
func (s *Scene) Layers() []layer.Layer {
	return s.stack.Layers()
}

// Layer returns the layer with the given id.
func (s *Scene) Layer(id layer.ID) (layer.Layer, bool) {
	return s.stack.Get(id)
}

// Index returns the stack position of id, or -1.
func (s *Scene) Index(id layer.ID) int {
	return s.stack.Index(id)
}

// BackgroundInFront reports whether the background is pinned to the top.
func (s *Scene) BackgroundInFront() bool {
	return s.stack.BackgroundInFront()
}

// AddStamp places bm at the canvas center with the configured default scale
// and no rotation. The new stamp becomes the selection.
func (s *Scene) AddStamp(bm layer.Bitmap, name string) layer.ID {
	c := s.canvas.Center()
	t := compose.Transform{
		X:      c.X,
		Y:      c.Y,
		ScaleX: s.stampScale,
		ScaleY: s.stampScale,
	}
	id := s.stack.AddStamp(bm, layer.SourceOf(bm), t, name)
	compose.Logger().Debug("scene: stamp added", "id", id, "name", name)
	s.emit(EventLayersChanged, id)
	s.setSelection(id)
	return id
}

// SetBackground replaces or creates the background layer, keeping its pin.
func (s *Scene) SetBackground(bm layer.Bitmap, name string) layer.ID {
	_, existed := s.stack.Background()
	id := s.stack.SetBackground(bm, layer.SourceOf(bm), name)
	if existed {
		s.emit(EventLayerUpdated, id)
	} else {
		s.emit(EventLayersChanged, id)
	}
	return id
}

// RemoveBackground deletes the background layer if there is one.
func (s *Scene) RemoveBackground() {
	if bg, ok := s.stack.Background(); ok {
		s.RemoveLayer(bg.ID)
	}
}

// SetBackgroundInFront pins the background to the top (true) or bottom.
func (s *Scene) SetBackgroundInFront(front bool) {
	if s.stack.BackgroundInFront() == front {
		return
	}
	s.stack.SetBackgroundInFront(front)
	s.emit(EventLayersChanged, "")
}

// RemoveLayer deletes a layer. If it was selected the selection becomes
// empty. Unknown ids are ignored.
func (s *Scene) RemoveLayer(id layer.ID) {
	if !s.stack.Remove(id) {
		return
	}
	s.emit(EventLayersChanged, id)
	if s.selected == id {
		s.setSelection("")
	}
}

// UpdateTransform merges p into the layer's transform. Unknown ids are
// ignored; callers only pass ids they just interacted with.
func (s *Scene) UpdateTransform(id layer.ID, p compose.Partial) {
	if p.Empty() {
		return
	}
	if !s.stack.UpdateTransform(id, p) {
		return
	}
	s.emit(EventLayerUpdated, id)
}

// SetBitmap rebinds the bitmap of a layer, for example after a reload.
func (s *Scene) SetBitmap(id layer.ID, bm layer.Bitmap) {
	if s.stack.SetBitmap(id, bm) {
		s.emit(EventLayerUpdated, id)
	}
}

// MoveLayer moves the layer at source to target in post-removal index
// space. Out-of-range indices are clamped.
func (s *Scene) MoveLayer(source, target int) {
	moved, _ := s.stack.At(s.clampIndex(source))
	if !s.stack.Move(source, target) {
		return
	}
	s.emit(EventLayersChanged, moved.ID)
}

func (s *Scene) clampIndex(i int) int {
	if i < 0 {
		return 0
	}
	if n := s.stack.Len(); i >= n {
		return n - 1
	}
	return i
}

// Select makes id the selection. Only stamps can be selected; selecting
// anything else clears the selection. It reports whether id is selected.
func (s *Scene) Select(id layer.ID) bool {
	l, ok := s.stack.Get(id)
	if !ok || l.Kind != layer.KindStamp {
		s.setSelection("")
		return false
	}
	s.setSelection(id)
	return true
}

// ClearSelection deselects the current layer.
func (s *Scene) ClearSelection() {
	s.setSelection("")
}

// Selected returns the selected layer id.
func (s *Scene) Selected() (layer.ID, bool) {
	return s.selected, s.selected != ""
}

func (s *Scene) setSelection(id layer.ID) {
	if s.selected == id {
		return
	}
	s.selected = id
	s.emit(EventSelectionChanged, id)
}
