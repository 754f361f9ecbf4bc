package compose

import "math"

// MinBoxSize is the smallest width or height, in logical units, that an
// interactive resize may produce.
const MinBoxSize = 20.0

// Box is the oriented bounding box a transformer handle manipulates.
// Center is in logical canvas coordinates; Width and Height are the
// on-canvas extents (intrinsic size times the absolute scale).
type Box struct {
	Center   Point
	Width    float64
	Height   float64
	Rotation float64 // degrees
}

// BoxOf returns the bounding box of a bitmap of intrinsic size w x h placed
// with transform t.
func BoxOf(t Transform, w, h float64) Box {
	return Box{
		Center:   t.Position(),
		Width:    w * math.Abs(t.ScaleX),
		Height:   h * math.Abs(t.ScaleY),
		Rotation: t.Rotation,
	}
}

// Apply converts b back into a transform for a bitmap of intrinsic size
// w x h. The signs of t's scale factors are preserved so that flipped layers
// stay flipped. If w or h is zero the corresponding scale is left unchanged.
func (b Box) Apply(t Transform, w, h float64) Transform {
	t.X, t.Y = b.Center.X, b.Center.Y
	t.Rotation = b.Rotation
	if w > 0 {
		t.ScaleX = math.Copysign(b.Width/w, signOr1(t.ScaleX))
	}
	if h > 0 {
		t.ScaleY = math.Copysign(b.Height/h, signOr1(t.ScaleY))
	}
	return t
}

// Axes returns the box's unit x and y axes on the canvas.
func (b Box) Axes() (ux, uy Point) {
	r := RotateDegrees(b.Rotation)
	return r.TransformVector(Pt(1, 0)), r.TransformVector(Pt(0, 1))
}

// Corners returns the four corners in the order top-left, top-right,
// bottom-right, bottom-left of the unrotated box.
func (b Box) Corners() [4]Point {
	ux, uy := b.Axes()
	hx := ux.Mul(b.Width / 2)
	hy := uy.Mul(b.Height / 2)
	c := b.Center
	return [4]Point{
		c.Sub(hx).Sub(hy),
		c.Add(hx).Sub(hy),
		c.Add(hx).Add(hy),
		c.Sub(hx).Add(hy),
	}
}

// Local maps a canvas point into the box frame, where the center is the
// origin and the axes follow the box rotation.
func (b Box) Local(p Point) Point {
	ux, uy := b.Axes()
	d := p.Sub(b.Center)
	return Point{X: d.Dot(ux), Y: d.Dot(uy)}
}

// FromLocal is the inverse of Local.
func (b Box) FromLocal(p Point) Point {
	ux, uy := b.Axes()
	return b.Center.Add(ux.Mul(p.X)).Add(uy.Mul(p.Y))
}

// Contains reports whether p lies inside the box.
func (b Box) Contains(p Point) bool {
	l := b.Local(p)
	return math.Abs(l.X) <= b.Width/2 && math.Abs(l.Y) <= b.Height/2
}

// Bounds returns the axis-aligned rectangle enclosing the box.
func (b Box) Bounds() Rect {
	cs := b.Corners()
	r := Rect{Min: cs[0], Max: cs[0]}
	for _, p := range cs[1:] {
		r.Min.X = math.Min(r.Min.X, p.X)
		r.Min.Y = math.Min(r.Min.Y, p.Y)
		r.Max.X = math.Max(r.Max.X, p.X)
		r.Max.Y = math.Max(r.Max.Y, p.Y)
	}
	return r
}

// BoundBox filters a proposed resize. A proposal narrower or shorter than
// min is rejected and the previous box is returned unchanged.
func BoundBox(prev, next Box, min float64) Box {
	if next.Width < min || next.Height < min {
		return prev
	}
	return next
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	Min, Max Point
}

// Width returns the rectangle width.
func (r Rect) Width() float64 { return r.Max.X - r.Min.X }

// Height returns the rectangle height.
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

func signOr1(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}
