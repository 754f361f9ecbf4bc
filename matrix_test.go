package compose

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func near(a, b float64) bool { return math.Abs(a-b) < epsilon }

func nearPt(a, b Point) bool { return near(a.X, b.X) && near(a.Y, b.Y) }

func TestMatrixTransformPoint(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix
		in   Point
		want Point
	}{
		{"identity", Identity(), Pt(3, 4), Pt(3, 4)},
		{"translate", Translate(10, -5), Pt(1, 1), Pt(11, -4)},
		{"scale", Scale(2, 3), Pt(1, 1), Pt(2, 3)},
		{"rotate 90deg clockwise", RotateDegrees(90), Pt(1, 0), Pt(0, 1)},
		{"rotate then translate", Translate(5, 5).Multiply(RotateDegrees(180)), Pt(1, 0), Pt(4, 5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.m.TransformPoint(tt.in)
			if !nearPt(got, tt.want) {
				t.Errorf("TransformPoint(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestMatrixInvert(t *testing.T) {
	m := Translate(40, 20).Multiply(RotateDegrees(33)).Multiply(Scale(0.5, 2))
	inv, ok := m.Invert()
	if !ok {
		t.Fatal("Invert() reported singular matrix")
	}
	p := Pt(12, -7)
	if got := inv.TransformPoint(m.TransformPoint(p)); !nearPt(got, p) {
		t.Errorf("inverse round trip = %v, want %v", got, p)
	}
}

func TestMatrixTransformVectorIgnoresTranslation(t *testing.T) {
	m := Translate(100, 50).Multiply(RotateDegrees(90)).Multiply(Scale(2, 2))
	if got := m.TransformVector(Pt(1, 0)); !nearPt(got, Pt(0, 2)) {
		t.Errorf("TransformVector((1,0)) = %v, want (0,2)", got)
	}
}

func TestBoxAxes(t *testing.T) {
	tests := []struct {
		rot    float64
		ux, uy Point
	}{
		{0, Pt(1, 0), Pt(0, 1)},
		{90, Pt(0, 1), Pt(-1, 0)},
		{180, Pt(-1, 0), Pt(0, -1)},
	}
	for _, tt := range tests {
		ux, uy := Box{Rotation: tt.rot}.Axes()
		if !nearPt(ux, tt.ux) || !nearPt(uy, tt.uy) {
			t.Errorf("Axes() at %v deg = %v, %v; want %v, %v", tt.rot, ux, uy, tt.ux, tt.uy)
		}
	}
}

func TestMatrixInvertSingular(t *testing.T) {
	_, ok := Scale(0, 1).Invert()
	if ok {
		t.Error("Invert() of zero-scale matrix should report false")
	}
}

func TestMatrixAff3(t *testing.T) {
	m := Matrix{A: 1, B: 2, C: 3, D: 4, E: 5, F: 6}
	a := m.Aff3()
	for i, want := range []float64{1, 2, 3, 4, 5, 6} {
		if a[i] != want {
			t.Errorf("Aff3()[%d] = %v, want %v", i, a[i], want)
		}
	}
}

func TestTransformMatrixPivotsAtCenter(t *testing.T) {
	const w, h = 100.0, 50.0
	tr := Transform{X: 200, Y: 150, ScaleX: 2, ScaleY: 2, Rotation: 90}
	m := tr.Matrix(w, h)

	// The bitmap center must land on the layer origin whatever the rotation.
	if got := m.TransformPoint(Pt(w/2, h/2)); !nearPt(got, Pt(200, 150)) {
		t.Errorf("center maps to %v, want (200,150)", got)
	}
	// Top-left corner: (-50,-25) scaled by 2 is (-100,-50), rotated 90deg
	// clockwise becomes (50,-100).
	if got := m.TransformPoint(Pt(0, 0)); !nearPt(got, Pt(250, 50)) {
		t.Errorf("top-left maps to %v, want (250,50)", got)
	}
}

func TestTransformMerge(t *testing.T) {
	base := Transform{X: 1, Y: 2, ScaleX: 1, ScaleY: 1, Rotation: 10}

	got := base.Merge(MoveTo(5, 6))
	want := Transform{X: 5, Y: 6, ScaleX: 1, ScaleY: 1, Rotation: 10}
	if got != want {
		t.Errorf("Merge(MoveTo) = %+v, want %+v", got, want)
	}

	full := Transform{X: 9, Y: 8, ScaleX: 0.5, ScaleY: 0.25, Rotation: -45}
	if got := base.Merge(Full(full)); got != full {
		t.Errorf("Merge(Full) = %+v, want %+v", got, full)
	}

	if got := base.Merge(Partial{}); got != base {
		t.Errorf("Merge(empty) = %+v, want unchanged %+v", got, base)
	}
	if !(Partial{}).Empty() {
		t.Error("zero Partial should be Empty")
	}
}
