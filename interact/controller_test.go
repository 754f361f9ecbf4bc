package interact

import (
	"image"
	"math"
	"testing"

	"github.com/gogpu/compose"
	"github.com/gogpu/compose/layer"
	"github.com/gogpu/compose/scene"
)

type testBitmap struct{ w, h int }

func (b testBitmap) Image() image.Image { return image.NewRGBA(image.Rect(0, 0, b.w, b.h)) }
func (b testBitmap) Size() (int, int)   { return b.w, b.h }

// pendingBitmap has a known size but is still decoding.
type pendingBitmap struct{}

func (pendingBitmap) Image() image.Image { return nil }
func (pendingBitmap) Size() (int, int)   { return 100, 100 }

func near(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

// setup returns a scene with one 100x100 stamp at (640, 360) with scale 0.5,
// i.e. a 50x50 box spanning (615,335)-(665,385).
func setup(t *testing.T, scale float64) (*scene.Scene, *Controller, layer.ID) {
	t.Helper()
	s := scene.New()
	id := s.AddStamp(testBitmap{100, 100}, "stamp")
	return s, New(s, fixedScale(scale)), id
}

func transformOf(t *testing.T, s *scene.Scene, id layer.ID) compose.Transform {
	t.Helper()
	l, ok := s.Layer(id)
	if !ok {
		t.Fatalf("layer %q missing", id)
	}
	return l.Transform
}

func TestPointerDownSelectsAndClears(t *testing.T) {
	s, c, id := setup(t, 1)
	s.ClearSelection()
	if c.State() != Idle {
		t.Fatalf("State() = %v, want idle", c.State())
	}

	if got, ok := c.PointerDown(compose.Pt(650, 370)); !ok || got != id {
		t.Fatalf("PointerDown on stamp = %q, %v", got, ok)
	}
	if c.State() != Selected {
		t.Errorf("State() = %v, want selected", c.State())
	}

	if _, ok := c.PointerDown(compose.Pt(10, 10)); ok {
		t.Error("PointerDown on empty stage reported a hit")
	}
	if _, ok := s.Selected(); ok || c.State() != Idle {
		t.Error("empty stage click should clear selection")
	}
}

func TestHitTestTopmostAndSkipsBackground(t *testing.T) {
	s := scene.New()
	s.SetBackground(testBitmap{1280, 720}, "bg")
	below := s.AddStamp(testBitmap{100, 100}, "below")
	above := s.AddStamp(testBitmap{100, 100}, "above")
	s.UpdateTransform(above, compose.MoveTo(660, 360))
	s.AddStamp(pendingBitmap{}, "pending")
	c := New(s, nil)

	tests := []struct {
		name string
		p    compose.Point
		want layer.ID
		ok   bool
	}{
		{"overlap picks top", compose.Pt(650, 360), above, true},
		{"only below", compose.Pt(620, 360), below, true},
		{"background is not hit", compose.Pt(100, 100), "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := c.HitTest(tt.p)
			if got != tt.want || ok != tt.ok {
				t.Errorf("HitTest(%v) = %q, %v; want %q, %v", tt.p, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestHitTestRotated(t *testing.T) {
	s, c, id := setup(t, 1)
	s.UpdateTransform(id, compose.Full(compose.Transform{X: 640, Y: 360, ScaleX: 0.5, ScaleY: 0.5, Rotation: 45}))

	// The unrotated corner region is outside the rotated diamond.
	if _, ok := c.HitTest(compose.Pt(663, 337)); ok {
		t.Error("point outside rotated stamp was hit")
	}
	// Along the rotated diagonal the stamp reaches ~35 units from center.
	if _, ok := c.HitTest(compose.Pt(672, 360)); !ok {
		t.Error("point inside rotated stamp was missed")
	}
}

func TestDragCommitsOnlyFinalPosition(t *testing.T) {
	s, c, id := setup(t, 0.5)
	updates := 0
	s.On(scene.EventLayerUpdated, func(scene.Event) { updates++ })

	// Stage (320, 180) is logical (640, 360) at scale 0.5.
	if !c.DragStart(compose.Pt(320, 180)) {
		t.Fatal("DragStart() = false")
	}
	if c.State() != Dragging {
		t.Fatalf("State() = %v, want dragging", c.State())
	}
	c.DragMove(compose.Pt(330, 185))
	c.DragMove(compose.Pt(350, 190))

	if _, pt, ok := c.Preview(); !ok || !near(pt.X, 700) || !near(pt.Y, 380) {
		t.Errorf("Preview() = %+v, want (700, 380)", pt)
	}
	if got := transformOf(t, s, id); got.X != 640 || got.Y != 360 {
		t.Errorf("transform changed during drag: %+v", got)
	}

	c.DragEnd(compose.Pt(370, 180))
	got := transformOf(t, s, id)
	if !near(got.X, 740) || !near(got.Y, 360) {
		t.Errorf("committed position = (%v, %v), want (740, 360)", got.X, got.Y)
	}
	if got.ScaleX != 0.5 || got.Rotation != 0 {
		t.Errorf("drag changed scale or rotation: %+v", got)
	}
	if updates != 1 {
		t.Errorf("updates = %d, want 1", updates)
	}
	if c.State() != Selected {
		t.Errorf("State() = %v, want selected", c.State())
	}
}

func TestResizeBelowMinimumIsRejected(t *testing.T) {
	s, c, id := setup(t, 1)
	before := transformOf(t, s, id)

	if !c.TransformStart(BottomRight, compose.Pt(665, 385)) {
		t.Fatal("TransformStart() = false")
	}
	// Shrinks the 50x50 box to 10x10 around the fixed top-left corner.
	c.TransformMove(compose.Pt(625, 345))
	c.TransformEnd()

	if got := transformOf(t, s, id); got != before {
		t.Errorf("transform = %+v, want unchanged %+v", got, before)
	}
}

func TestCornerResizeKeepsOppositeCorner(t *testing.T) {
	s, c, id := setup(t, 1)
	c.TransformStart(BottomRight, compose.Pt(665, 385))
	c.TransformMove(compose.Pt(715, 435))
	c.TransformEnd()

	got := transformOf(t, s, id)
	if !near(got.ScaleX, 1) || !near(got.ScaleY, 1) {
		t.Errorf("scale = (%v, %v), want (1, 1)", got.ScaleX, got.ScaleY)
	}
	l, _ := s.Layer(id)
	tl := l.Box().Corners()[0]
	if !near(tl.X, 615) || !near(tl.Y, 335) {
		t.Errorf("top-left corner moved to %v", tl)
	}
}

func TestCornerResizeKeepsAspectRatio(t *testing.T) {
	s := scene.New()
	id := s.AddStamp(testBitmap{200, 100}, "wide")
	c := New(s, nil)
	// Box is 100x50 centered at (640, 360).
	c.TransformStart(TopLeft, compose.Pt(590, 335))
	c.TransformMove(compose.Pt(540, 335))
	c.TransformEnd()

	l, _ := s.Layer(id)
	b := l.Box()
	if !near(b.Width/b.Height, 2) {
		t.Errorf("aspect = %v, want 2", b.Width/b.Height)
	}
	br := b.Corners()[2]
	if !near(br.X, 690) || !near(br.Y, 385) {
		t.Errorf("bottom-right corner moved to %v", br)
	}
}

func TestEdgeResizeOnRotatedBox(t *testing.T) {
	s, c, id := setup(t, 1)
	s.UpdateTransform(id, compose.Full(compose.Transform{X: 640, Y: 360, ScaleX: 0.5, ScaleY: 0.5, Rotation: 90}))

	// Rotated 90 degrees the local +x axis points down; middle-right sits
	// at (640, 385).
	if h := c.HitHandle(compose.Pt(640, 385)); h != MiddleRight {
		t.Fatalf("HitHandle = %v, want middle-right", h)
	}
	c.TransformStart(MiddleRight, compose.Pt(640, 385))
	c.TransformMove(compose.Pt(640, 435))
	c.TransformEnd()

	got := transformOf(t, s, id)
	if !near(got.ScaleX, 1) || !near(got.ScaleY, 0.5) {
		t.Errorf("scale = (%v, %v), want (1, 0.5)", got.ScaleX, got.ScaleY)
	}
	if !near(got.X, 640) || !near(got.Y, 385) {
		t.Errorf("center = (%v, %v), want (640, 385)", got.X, got.Y)
	}
}

func TestRotate(t *testing.T) {
	s, c, id := setup(t, 1)
	rot := c.layout.Position(compose.BoxOf(transformOf(t, s, id), 100, 100), Rotater, 1)
	if h := c.HitHandle(rot); h != Rotater {
		t.Fatalf("HitHandle(rotater) = %v", h)
	}
	c.TransformStart(Rotater, rot)
	c.TransformMove(compose.Pt(740, 360))
	c.TransformEnd()

	got := transformOf(t, s, id)
	if !near(got.Rotation, 90) {
		t.Errorf("Rotation = %v, want 90", got.Rotation)
	}
	if got.X != 640 || got.Y != 360 || got.ScaleX != 0.5 {
		t.Errorf("rotation moved or scaled the stamp: %+v", got)
	}
}

func TestCancelDoesNotCommit(t *testing.T) {
	s, c, id := setup(t, 1)
	before := transformOf(t, s, id)
	c.TransformStart(BottomRight, compose.Pt(665, 385))
	c.TransformMove(compose.Pt(700, 420))
	c.Cancel()
	c.TransformEnd()

	if got := transformOf(t, s, id); got != before {
		t.Errorf("transform = %+v after cancel, want %+v", got, before)
	}
	if c.State() != Selected {
		t.Errorf("State() = %v, want selected", c.State())
	}
}

func TestDeleteAffordanceSuppressesStageClick(t *testing.T) {
	s := scene.New()
	under := s.AddStamp(testBitmap{200, 200}, "under")
	s.UpdateTransform(under, compose.MoveTo(700, 300))
	top := s.AddStamp(testBitmap{100, 100}, "top")
	c := New(s, nil)

	del := c.layout.Position(compose.BoxOf(transformOf(t, s, top), 100, 100), Delete, 1)
	if _, ok := c.HitTest(del); !ok {
		t.Fatal("test layout: delete affordance should overlap the lower stamp")
	}

	if _, ok := c.PointerDown(del); ok {
		t.Error("PointerDown on delete affordance selected a layer")
	}
	if _, ok := s.Layer(top); ok {
		t.Error("selected stamp was not deleted")
	}
	if _, ok := s.Layer(under); !ok {
		t.Error("stamp beneath the affordance was deleted")
	}
	if _, ok := s.Selected(); ok {
		t.Error("selection should be empty after delete")
	}
}

func TestGestureOnRemovedLayerIsDropped(t *testing.T) {
	s, c, id := setup(t, 1)
	c.DragStart(compose.Pt(640, 360))
	s.RemoveLayer(id)
	c.DragMove(compose.Pt(700, 360))
	c.DragEnd(compose.Pt(700, 360))

	if _, _, ok := c.Preview(); ok {
		t.Error("Preview() still active for a removed layer")
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
}

func TestTransformStartRequiresSelection(t *testing.T) {
	s, c, _ := setup(t, 1)
	s.ClearSelection()
	if c.TransformStart(BottomRight, compose.Pt(665, 385)) {
		t.Error("TransformStart without selection should fail")
	}
	s.Select(s.Layers()[0].ID)
	if c.TransformStart(Delete, compose.Pt(0, 0)) {
		t.Error("TransformStart with the delete handle should fail")
	}
}
