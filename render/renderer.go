// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"

	"github.com/gogpu/compose"
	"github.com/gogpu/compose/interact"
	"github.com/gogpu/compose/layer"
	"github.com/gogpu/compose/scene"
)

// Quality selects the resampling kernel for bitmaps.
type Quality int

// Resampling qualities.
const (
	// High resamples with Catmull-Rom. Export uses it.
	High Quality = iota

	// Fast resamples bilinearly. Suited to the live stage.
	Fast
)

// String returns the quality name.
func (q Quality) String() string {
	switch q {
	case High:
		return "high"
	case Fast:
		return "fast"
	default:
		return "unknown"
	}
}

func (q Quality) interpolator() draw.Interpolator {
	if q == Fast {
		return draw.BiLinear
	}
	return draw.CatmullRom
}

// Overlay is the transient, non-persisted state drawn on top of the
// layers: the selection chrome and the pose of a layer being manipulated.
type Overlay struct {
	// Selected gets the transformer chrome. Empty means none.
	Selected layer.ID

	// PreviewID, if set, is drawn with Preview instead of its stored
	// transform.
	PreviewID layer.ID
	Preview   compose.Transform

	// Layout places the transformer handles. The zero value uses
	// interact.DefaultLayout.
	Layout interact.Layout
}

// OverlayFor captures the selection and gesture preview of a controller.
func OverlayFor(s *scene.Scene, c *interact.Controller) *Overlay {
	ov := &Overlay{}
	if id, ok := s.Selected(); ok {
		ov.Selected = id
	}
	if c != nil {
		if id, t, ok := c.Preview(); ok {
			ov.PreviewID, ov.Preview = id, t
		}
	}
	return ov
}

func (ov *Overlay) transform(l layer.Layer) compose.Transform {
	if ov != nil && ov.PreviewID != "" && ov.PreviewID == l.ID {
		return ov.Preview
	}
	return l.Transform
}

// Renderer draws scenes. The zero value renders at High quality with the
// default chrome style. Renderer holds no per-frame state and may be shared
// between goroutines as long as each call gets its own destination.
type Renderer struct {
	Quality Quality
	Chrome  ChromeStyle
}

// StageSize returns the pixel size of canvas c drawn at scale.
func StageSize(c scene.Canvas, scale float64) (w, h int) {
	return int(math.Round(float64(c.Width) * scale)), int(math.Round(float64(c.Height) * scale))
}

// Render allocates an image of the canvas size times scale and draws s
// into it.
func (r *Renderer) Render(s *scene.Scene, scale float64, ov *Overlay) *image.RGBA {
	w, h := StageSize(s.Canvas(), scale)
	return r.Frame(NewPixmapTarget(w, h), s, scale, ov)
}

// Frame redraws the live stage into t, resizing it to the stage size of s
// at scale first. The backing image is reused while the size is stable.
func (r *Renderer) Frame(t *PixmapTarget, s *scene.Scene, scale float64, ov *Overlay) *image.RGBA {
	w, h := StageSize(s.Canvas(), scale)
	if !t.Resize(w, h) {
		t.Clear(color.Transparent)
	}
	r.Draw(t.Image(), s, scale, ov)
	return t.Image()
}

// Draw paints s into dst at scale, with dst's top-left corner at canvas
// origin. ov may be nil.
func (r *Renderer) Draw(dst draw.Image, s *scene.Scene, scale float64, ov *Overlay) {
	if scale <= 0 || math.IsNaN(scale) || math.IsInf(scale, 0) {
		return
	}
	b := dst.Bounds()
	c := s.Canvas()
	w, h := StageSize(c, scale)
	stage := image.Rect(b.Min.X, b.Min.Y, b.Min.X+w, b.Min.Y+h).Intersect(b)
	if stage.Empty() {
		return
	}
	draw.Draw(dst, stage, image.NewUniform(c.Fill.Color()), image.Point{}, draw.Src)

	outer := compose.Translate(float64(b.Min.X), float64(b.Min.Y)).Multiply(compose.Scale(scale, scale))
	interp := r.Quality.interpolator()
	for _, l := range s.Layers() {
		img := l.Image()
		if img == nil {
			continue
		}
		switch l.Kind {
		case layer.KindBackground:
			interp.Scale(dst, stage, img, img.Bounds(), draw.Over, nil)
		case layer.KindStamp:
			drawStamp(dst, interp, outer, l, ov.transform(l), img)
		}
	}

	if ov != nil && ov.Selected != "" {
		if l, ok := s.Layer(ov.Selected); ok && l.Kind == layer.KindStamp {
			lw, lh := l.Size()
			r.drawChrome(dst, compose.BoxOf(ov.transform(l), lw, lh), scale, ov.Layout)
		}
	}
}

func drawStamp(dst draw.Image, interp draw.Interpolator, outer compose.Matrix, l layer.Layer, t compose.Transform, img image.Image) {
	sb := img.Bounds()
	w, h := float64(sb.Dx()), float64(sb.Dy())
	m := outer.
		Multiply(t.Matrix(w, h)).
		Multiply(compose.Translate(-float64(sb.Min.X), -float64(sb.Min.Y)))
	if _, ok := m.Invert(); !ok {
		compose.Logger().Debug("render: skipping degenerate stamp", "id", l.ID)
		return
	}
	interp.Transform(dst, m.Aff3(), img, sb, draw.Over, nil)
}
