package compose

// Transform is the pose of a layer in logical canvas coordinates.
//
// X and Y locate the layer's local origin. For stamps the origin is the
// geometric center of the bitmap, so rotation and scale pivot about the
// visual center. Rotation is in degrees, clockwise on screen.
type Transform struct {
	X, Y           float64
	ScaleX, ScaleY float64
	Rotation       float64
}

// IdentityTransform returns a transform at the origin with unit scale.
func IdentityTransform() Transform {
	return Transform{ScaleX: 1, ScaleY: 1}
}

// Position returns the layer origin.
func (t Transform) Position() Point {
	return Point{X: t.X, Y: t.Y}
}

// Matrix returns the local-to-canvas matrix for a bitmap of intrinsic size
// w x h: translate(x, y), rotate, scale, then shift the bitmap so that its
// center sits on the origin.
//
// The viewport scale is never part of this matrix; renderers multiply it on
// the left as a separate outermost transform.
func (t Transform) Matrix(w, h float64) Matrix {
	return Translate(t.X, t.Y).
		Multiply(RotateDegrees(t.Rotation)).
		Multiply(Scale(t.ScaleX, t.ScaleY)).
		Multiply(Translate(-w/2, -h/2))
}

// Partial is a sparse transform update. Nil fields are left untouched by Merge.
type Partial struct {
	X, Y           *float64
	ScaleX, ScaleY *float64
	Rotation       *float64
}

// Merge returns t with every non-nil field of p applied.
func (t Transform) Merge(p Partial) Transform {
	if p.X != nil {
		t.X = *p.X
	}
	if p.Y != nil {
		t.Y = *p.Y
	}
	if p.ScaleX != nil {
		t.ScaleX = *p.ScaleX
	}
	if p.ScaleY != nil {
		t.ScaleY = *p.ScaleY
	}
	if p.Rotation != nil {
		t.Rotation = *p.Rotation
	}
	return t
}

// Empty reports whether p carries no field.
func (p Partial) Empty() bool {
	return p.X == nil && p.Y == nil && p.ScaleX == nil && p.ScaleY == nil && p.Rotation == nil
}

// MoveTo returns a Partial that sets only the position.
func MoveTo(x, y float64) Partial {
	return Partial{X: &x, Y: &y}
}

// Full returns a Partial that sets every field of t.
func Full(t Transform) Partial {
	return Partial{
		X:        &t.X,
		Y:        &t.Y,
		ScaleX:   &t.ScaleX,
		ScaleY:   &t.ScaleY,
		Rotation: &t.Rotation,
	}
}
