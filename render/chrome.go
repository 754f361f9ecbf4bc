// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"image/color"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/compose"
	"github.com/gogpu/compose/interact"
)

// ChromeStyle colors the transformer drawn around the selection. Zero
// fields take their value from DefaultChrome.
type ChromeStyle struct {
	Stroke      color.Color
	AnchorFill  color.Color
	Delete      color.Color
	DeleteGlyph color.Color
	LineWidth   float64 // screen pixels
}

// DefaultChrome is the editor's transformer style.
var DefaultChrome = ChromeStyle{
	Stroke:      color.NRGBA{R: 0x00, G: 0xa1, B: 0xff, A: 0xff},
	AnchorFill:  color.White,
	Delete:      color.NRGBA{R: 0xe5, G: 0x3e, B: 0x3e, A: 0xff},
	DeleteGlyph: color.White,
	LineWidth:   1.5,
}

func (cs ChromeStyle) withDefaults() ChromeStyle {
	if cs.Stroke == nil {
		cs.Stroke = DefaultChrome.Stroke
	}
	if cs.AnchorFill == nil {
		cs.AnchorFill = DefaultChrome.AnchorFill
	}
	if cs.Delete == nil {
		cs.Delete = DefaultChrome.Delete
	}
	if cs.DeleteGlyph == nil {
		cs.DeleteGlyph = DefaultChrome.DeleteGlyph
	}
	if cs.LineWidth <= 0 {
		cs.LineWidth = DefaultChrome.LineWidth
	}
	return cs
}

// drawChrome strokes the transformer for box b: the outline, the rotater
// and its stem, the eight anchors and the delete affordance. Handle sizes
// are in screen pixels and do not scale with the stage.
func (r *Renderer) drawChrome(dst draw.Image, b compose.Box, scale float64, lay interact.Layout) {
	if lay == (interact.Layout{}) {
		lay = interact.DefaultLayout
	}
	st := r.Chrome.withDefaults()
	bounds := dst.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	scanner := rasterx.NewScannerGV(w, h, dst, bounds)

	stage := func(p compose.Point) fixed.Point26_6 {
		return rasterx.ToFixedP(p.X*scale, p.Y*scale)
	}
	at := func(hd interact.Handle) compose.Point {
		return lay.Position(b, hd, scale).Mul(scale)
	}

	stroke := rasterx.NewDasher(w, h, scanner)
	stroke.SetStroke(fixed.Int26_6(st.LineWidth*64), 0, rasterx.RoundCap, rasterx.RoundCap, rasterx.RoundGap, rasterx.ArcClip, nil, 0)
	stroke.SetColor(st.Stroke)

	cs := b.Corners()
	stroke.Start(stage(cs[0]))
	for _, p := range cs[1:] {
		stroke.Line(stage(p))
	}
	stroke.Stop(true)

	stroke.Start(stage(lay.Position(b, interact.TopCenter, scale)))
	stroke.Line(stage(lay.Position(b, interact.Rotater, scale)))
	stroke.Stop(false)
	stroke.Draw()
	stroke.Clear()

	fill := rasterx.NewFiller(w, h, scanner)
	fill.SetColor(st.AnchorFill)
	handles := append(interact.Anchors[:], interact.Rotater)
	for _, hd := range handles {
		p := at(hd)
		rasterx.AddCircle(p.X, p.Y, lay.Radius/2, fill)
	}
	fill.Draw()
	fill.Clear()

	stroke.SetColor(st.Stroke)
	for _, hd := range handles {
		p := at(hd)
		rasterx.AddCircle(p.X, p.Y, lay.Radius/2, stroke)
	}
	stroke.Draw()
	stroke.Clear()

	del := at(interact.Delete)
	fill.SetColor(st.Delete)
	rasterx.AddCircle(del.X, del.Y, lay.Radius, fill)
	fill.Draw()
	fill.Clear()

	arm := lay.Radius * 0.45
	stroke.SetColor(st.DeleteGlyph)
	stroke.Start(rasterx.ToFixedP(del.X-arm, del.Y-arm))
	stroke.Line(rasterx.ToFixedP(del.X+arm, del.Y+arm))
	stroke.Stop(false)
	stroke.Start(rasterx.ToFixedP(del.X+arm, del.Y-arm))
	stroke.Line(rasterx.ToFixedP(del.X-arm, del.Y+arm))
	stroke.Stop(false)
	stroke.Draw()
	stroke.Clear()
}
