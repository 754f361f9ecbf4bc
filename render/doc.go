// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package render draws a scene into a raster target.
//
// The same Renderer serves the live stage and export. The stage passes the
// viewport scale and an Overlay with the selection chrome; export passes the
// pixel ratio and no overlay. The scale is applied once, outermost, on top
// of each layer's own transform.
//
// # Layer order
//
// Layers are drawn bottom first in stack order. The canvas fill is painted
// before any layer. The background is stretched full-bleed over the target;
// stamps are resampled through their affine transform. A layer whose bitmap
// is still decoding is skipped.
//
// # Usage
//
//	target := render.NewPixmapTarget(0, 0)
//	r := render.Renderer{Quality: render.Fast}
//	frame := r.Frame(target, s, vp.Scale(), render.OverlayFor(s, ctrl))
//
// Export-quality output at a fixed pixel ratio:
//
//	img := r.Render(s, 2, nil)
package render
