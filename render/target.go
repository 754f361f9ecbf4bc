// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// PixmapTarget is a CPU-backed stage surface. It keeps its backing image
// across frames and reallocates only when the stage size changes.
//
// PixmapTarget is NOT safe for concurrent use.
type PixmapTarget struct {
	img *image.RGBA
}

// NewPixmapTarget creates a target of the given size.
func NewPixmapTarget(width, height int) *PixmapTarget {
	return &PixmapTarget{
		img: image.NewRGBA(image.Rect(0, 0, max(width, 0), max(height, 0))),
	}
}

// Width returns the target width in pixels.
func (t *PixmapTarget) Width() int {
	return t.img.Bounds().Dx()
}

// Height returns the target height in pixels.
func (t *PixmapTarget) Height() int {
	return t.img.Bounds().Dy()
}

// Image returns the backing image. It shares memory with the target.
func (t *PixmapTarget) Image() *image.RGBA {
	return t.img
}

// Clear fills the target with c.
func (t *PixmapTarget) Clear(c color.Color) {
	draw.Draw(t.img, t.img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

// Resize reallocates the backing image if the size changed. The contents
// are not preserved. It reports whether a new image was allocated.
func (t *PixmapTarget) Resize(width, height int) bool {
	if t.Width() == width && t.Height() == height {
		return false
	}
	t.img = image.NewRGBA(image.Rect(0, 0, max(width, 0), max(height, 0)))
	return true
}
