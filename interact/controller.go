// Package interact turns pointer input on the stage into scene mutations.
//
// A Controller is a small state machine:
//
//	idle --down(stamp)--> selected --drag--> dragging --end(commit x,y)--> selected
//	selected --down(empty)--> idle
//	selected --handle--> transforming --end(commit pose)--> selected
//	selected --delete--> idle
//
// Pointer positions are stage (screen) coordinates; the controller divides
// them by the current viewport scale before touching the scene. During a
// gesture the moving pose lives only in the controller, exposed through
// Preview, and is committed to the scene once when the gesture ends.
package interact

import (
	"math"

	"github.com/gogpu/compose"
	"github.com/gogpu/compose/layer"
	"github.com/gogpu/compose/scene"
)

// State is the controller state.
type State int

// Controller states.
const (
	Idle State = iota
	Selected
	Dragging
	Transforming
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Selected:
		return "selected"
	case Dragging:
		return "dragging"
	case Transforming:
		return "transforming"
	default:
		return "unknown"
	}
}

// ScaleSource yields the current viewport scale. *viewport.Manager
// implements it.
type ScaleSource interface {
	Scale() float64
}

type fixedScale float64

func (s fixedScale) Scale() float64 { return float64(s) }

// gesture is the transient state of a drag or transform.
type gesture struct {
	id     layer.ID
	handle Handle
	w, h   float64

	start    compose.Point // logical pointer position at gesture start
	startT   compose.Transform
	startBox compose.Box

	box     compose.Box
	preview compose.Transform
}

// Controller drives selection, dragging and transformer gestures on a
// scene. It is NOT safe for concurrent use; call it from the goroutine
// that owns the scene.
type Controller struct {
	scene  *scene.Scene
	scale  ScaleSource
	layout Layout
	min    float64

	state State
	g     gesture
}

// New creates a controller for s. A nil scale source means scale 1.
func New(s *scene.Scene, scale ScaleSource, opts ...Option) *Controller {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if scale == nil {
		scale = fixedScale(1)
	}
	return &Controller{
		scene:  s,
		scale:  scale,
		layout: o.layout,
		min:    o.minSize,
	}
}

// State returns the current state. Outside a gesture it follows the scene
// selection, so selection changes made elsewhere are reflected.
func (c *Controller) State() State {
	switch c.state {
	case Dragging, Transforming:
		return c.state
	}
	if _, ok := c.scene.Selected(); ok {
		return Selected
	}
	return Idle
}

func (c *Controller) currentScale() float64 {
	s := c.scale.Scale()
	if s <= 0 || math.IsNaN(s) || math.IsInf(s, 0) {
		return 1
	}
	return s
}

// ToLogical converts a stage point to logical canvas coordinates.
func (c *Controller) ToLogical(p compose.Point) compose.Point {
	return p.Div(c.currentScale())
}

// HitTest returns the topmost renderable stamp under the stage point p.
// The background is not hit-testable.
func (c *Controller) HitTest(p compose.Point) (layer.ID, bool) {
	lp := c.ToLogical(p)
	layers := c.scene.Layers()
	for i := len(layers) - 1; i >= 0; i-- {
		l := layers[i]
		if l.Kind != layer.KindStamp || !l.Renderable() {
			continue
		}
		inv, ok := l.Matrix().Invert()
		if !ok {
			continue
		}
		q := inv.TransformPoint(lp)
		w, h := l.Size()
		if q.X >= 0 && q.X <= w && q.Y >= 0 && q.Y <= h {
			return l.ID, true
		}
	}
	return "", false
}

// HitHandle returns the transformer handle of the selected stamp under the
// stage point p, or HandleNone.
func (c *Controller) HitHandle(p compose.Point) Handle {
	b, ok := c.selectedBox()
	if !ok {
		return HandleNone
	}
	return c.layout.Hit(b, c.ToLogical(p), c.currentScale())
}

// selectedBox returns the box of the selection, following the preview
// while a gesture runs.
func (c *Controller) selectedBox() (compose.Box, bool) {
	if c.state == Dragging || c.state == Transforming {
		return compose.BoxOf(c.g.preview, c.g.w, c.g.h), true
	}
	id, ok := c.scene.Selected()
	if !ok {
		return compose.Box{}, false
	}
	l, ok := c.scene.Layer(id)
	if !ok {
		return compose.Box{}, false
	}
	return l.Box(), true
}

// PointerDown handles a click or tap at stage point p. The delete
// affordance of the selection is checked first and consumes the event; a
// stamp under p becomes the selection; anything else clears it. It returns
// the selected id, if any.
func (c *Controller) PointerDown(p compose.Point) (layer.ID, bool) {
	if c.state == Dragging || c.state == Transforming {
		return c.scene.Selected()
	}
	if c.HitHandle(p) == Delete {
		c.Delete()
		return "", false
	}
	id, ok := c.HitTest(p)
	if !ok {
		compose.Logger().Debug("interact: empty stage click")
		c.scene.ClearSelection()
		return "", false
	}
	compose.Logger().Debug("interact: hit", "id", id)
	c.scene.Select(id)
	return id, true
}

// DragStart begins moving the stamp under p, selecting it first. It
// reports whether a drag started.
func (c *Controller) DragStart(p compose.Point) bool {
	if c.state == Dragging || c.state == Transforming {
		return false
	}
	id, ok := c.HitTest(p)
	if !ok {
		return false
	}
	c.scene.Select(id)
	if !c.begin(id, HandleNone, p) {
		return false
	}
	c.state = Dragging
	return true
}

// DragMove moves the preview by the pointer delta since DragStart.
func (c *Controller) DragMove(p compose.Point) {
	if c.state != Dragging || !c.alive() {
		return
	}
	d := c.ToLogical(p).Sub(c.g.start)
	c.g.preview = c.g.startT
	c.g.preview.X += d.X
	c.g.preview.Y += d.Y
	c.g.box = compose.BoxOf(c.g.preview, c.g.w, c.g.h)
}

// DragEnd commits the final position. Intermediate positions are never
// written to the scene.
func (c *Controller) DragEnd(p compose.Point) {
	if c.state != Dragging {
		return
	}
	c.DragMove(p)
	if c.state != Dragging {
		return
	}
	id, t := c.g.id, c.g.preview
	c.reset()
	c.scene.UpdateTransform(id, compose.MoveTo(t.X, t.Y))
}

// TransformStart begins a transformer gesture on the selected stamp with
// handle h, which must be an anchor or the rotater.
func (c *Controller) TransformStart(h Handle, p compose.Point) bool {
	if c.state == Dragging || c.state == Transforming {
		return false
	}
	if !h.IsAnchor() && h != Rotater {
		return false
	}
	id, ok := c.scene.Selected()
	if !ok || !c.begin(id, h, p) {
		return false
	}
	c.state = Transforming
	return true
}

// TransformMove updates the preview for the pointer at p. Resize proposals
// smaller than the minimum box size are rejected and the previous box is
// kept.
func (c *Controller) TransformMove(p compose.Point) {
	if c.state != Transforming || !c.alive() {
		return
	}
	lp := c.ToLogical(p)
	var next compose.Box
	if c.g.handle == Rotater {
		next = rotate(c.g.box, lp)
	} else {
		var ok bool
		next, ok = resize(c.g.startBox, c.g.handle, lp)
		if !ok {
			return
		}
	}
	c.g.box = compose.BoundBox(c.g.box, next, c.min)
	c.g.preview = c.g.box.Apply(c.g.startT, c.g.w, c.g.h)
}

// TransformEnd commits position, scale and rotation in one update.
func (c *Controller) TransformEnd() {
	if c.state != Transforming {
		return
	}
	id, t := c.g.id, c.g.preview
	c.reset()
	c.scene.UpdateTransform(id, compose.Full(t))
}

// Cancel abandons a gesture without committing anything.
func (c *Controller) Cancel() {
	c.reset()
}

// Delete removes the selected stamp. It is the delete affordance's action
// and never runs the empty-stage deselect path.
func (c *Controller) Delete() bool {
	id, ok := c.scene.Selected()
	if !ok {
		return false
	}
	c.reset()
	compose.Logger().Debug("interact: delete", "id", id)
	c.scene.RemoveLayer(id)
	return true
}

// Preview returns the transient pose of the layer being manipulated.
func (c *Controller) Preview() (layer.ID, compose.Transform, bool) {
	if c.state != Dragging && c.state != Transforming {
		return "", compose.Transform{}, false
	}
	return c.g.id, c.g.preview, true
}

// Handle returns the handle of a running transform gesture.
func (c *Controller) Handle() Handle {
	if c.state != Transforming {
		return HandleNone
	}
	return c.g.handle
}

func (c *Controller) begin(id layer.ID, h Handle, p compose.Point) bool {
	l, ok := c.scene.Layer(id)
	if !ok {
		return false
	}
	w, hh := l.Size()
	box := l.Box()
	c.g = gesture{
		id:       id,
		handle:   h,
		w:        w,
		h:        hh,
		start:    c.ToLogical(p),
		startT:   l.Transform,
		startBox: box,
		box:      box,
		preview:  l.Transform,
	}
	return true
}

// alive cancels the gesture if its layer was removed meanwhile.
func (c *Controller) alive() bool {
	if _, ok := c.scene.Layer(c.g.id); ok {
		return true
	}
	c.reset()
	return false
}

func (c *Controller) reset() {
	c.state = Idle
	c.g = gesture{}
}

// rotate turns b so that the rotater, which sits above the top edge,
// points at p.
func rotate(b compose.Box, p compose.Point) compose.Box {
	d := p.Sub(b.Center)
	if d.X == 0 && d.Y == 0 {
		return b
	}
	deg := compose.Degrees(math.Atan2(d.Y, d.X)) + 90
	if deg > 180 {
		deg -= 360
	}
	b.Rotation = deg
	return b
}

// resize moves anchor h of b to p, keeping the opposite anchor fixed.
// Corner anchors keep the aspect ratio by projecting the pointer onto the
// box diagonal. The result may be degenerate or negative; callers filter
// it through BoundBox.
func resize(b compose.Box, h Handle, p compose.Point) (compose.Box, bool) {
	sx, sy := h.signs()
	hw, hh := b.Width/2, b.Height/2
	lp := b.Local(p)
	fixed := compose.Pt(-sx*hw, -sy*hh)

	w, ht := b.Width, b.Height
	if h.IsCorner() {
		diag := compose.Pt(sx*b.Width, sy*b.Height)
		n := diag.Dot(diag)
		if n == 0 {
			return b, false
		}
		k := lp.Sub(fixed).Dot(diag) / n
		w, ht = k*b.Width, k*b.Height
	} else {
		if sx != 0 {
			w = sx*lp.X + hw
		}
		if sy != 0 {
			ht = sy*lp.Y + hh
		}
	}

	center := compose.Pt(fixed.X+sx*w/2, fixed.Y+sy*ht/2)
	return compose.Box{
		Center:   b.FromLocal(center),
		Width:    w,
		Height:   ht,
		Rotation: b.Rotation,
	}, true
}
