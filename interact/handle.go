package interact

import "github.com/gogpu/compose"

// Handle identifies a control of the transformer drawn around the selected
// stamp.
type Handle int

// Transformer handles. The eight anchors resize, Rotater rotates and Delete
// is the delete affordance.
const (
	HandleNone Handle = iota
	TopLeft
	TopCenter
	TopRight
	MiddleRight
	BottomRight
	BottomCenter
	BottomLeft
	MiddleLeft
	Rotater
	Delete
)

// Anchors lists the eight resize anchors clockwise from top-left.
var Anchors = [...]Handle{TopLeft, TopCenter, TopRight, MiddleRight, BottomRight, BottomCenter, BottomLeft, MiddleLeft}

// String returns the handle name.
func (h Handle) String() string {
	switch h {
	case HandleNone:
		return "none"
	case TopLeft:
		return "top-left"
	case TopCenter:
		return "top-center"
	case TopRight:
		return "top-right"
	case MiddleRight:
		return "middle-right"
	case BottomRight:
		return "bottom-right"
	case BottomCenter:
		return "bottom-center"
	case BottomLeft:
		return "bottom-left"
	case MiddleLeft:
		return "middle-left"
	case Rotater:
		return "rotater"
	case Delete:
		return "delete"
	default:
		return "unknown"
	}
}

// IsAnchor reports whether h resizes.
func (h Handle) IsAnchor() bool {
	return h >= TopLeft && h <= MiddleLeft
}

// IsCorner reports whether h is a corner anchor. Corners keep aspect ratio.
func (h Handle) IsCorner() bool {
	switch h {
	case TopLeft, TopRight, BottomRight, BottomLeft:
		return true
	default:
		return false
	}
}

// signs returns the direction of the anchor from the box center along the
// box axes: -1, 0 or +1 per axis.
func (h Handle) signs() (sx, sy float64) {
	switch h {
	case TopLeft:
		return -1, -1
	case TopCenter:
		return 0, -1
	case TopRight:
		return 1, -1
	case MiddleRight:
		return 1, 0
	case BottomRight:
		return 1, 1
	case BottomCenter:
		return 0, 1
	case BottomLeft:
		return -1, 1
	case MiddleLeft:
		return -1, 0
	default:
		return 0, 0
	}
}

// Layout places transformer handles around a box. Offsets and radii are in
// screen pixels so the chrome keeps its size at any viewport scale.
type Layout struct {
	Radius        float64
	RotaterOffset float64
	DeleteOffset  float64
}

// DefaultLayout matches the editor's transformer.
var DefaultLayout = Layout{Radius: 8, RotaterOffset: 50, DeleteOffset: 20}

// Position returns the logical position of handle h on box b at viewport
// scale s.
func (l Layout) Position(b compose.Box, h Handle, s float64) compose.Point {
	if s <= 0 {
		s = 1
	}
	hw, hh := b.Width/2, b.Height/2
	switch h {
	case Rotater:
		return b.FromLocal(compose.Pt(0, -hh-l.RotaterOffset/s))
	case Delete:
		return b.FromLocal(compose.Pt(hw+l.DeleteOffset/s, -hh-l.DeleteOffset/s))
	}
	sx, sy := h.signs()
	return b.FromLocal(compose.Pt(sx*hw, sy*hh))
}

// Hit returns the handle of box b under logical point p at viewport scale s.
// The delete affordance wins over the rotater, which wins over anchors.
func (l Layout) Hit(b compose.Box, p compose.Point, s float64) Handle {
	if s <= 0 {
		s = 1
	}
	r := l.Radius / s
	for _, h := range [...]Handle{Delete, Rotater} {
		if l.Position(b, h, s).Distance(p) <= r {
			return h
		}
	}
	for _, h := range Anchors {
		if l.Position(b, h, s).Distance(p) <= r {
			return h
		}
	}
	return HandleNone
}
