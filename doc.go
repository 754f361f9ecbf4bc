// Package compose is a layered canvas composition engine.
//
// # Overview
//
// A composition is a fixed-size logical canvas with a flat fill color, an
// optional background bitmap and any number of stamps: bitmaps that can be
// moved, scaled and rotated independently. The finished scene is exported as
// a bitmap at the canvas's logical resolution, optionally multiplied by a
// pixel ratio, regardless of how large it is currently shown on screen.
//
// # Quick Start
//
//	loader := asset.NewLoader()
//	sc := scene.New(scene.WithCanvas(scene.PresetSquare.Canvas()))
//
//	star := loader.Load(ctx, "stamps/star.png")
//	id := sc.AddStamp(star, "star")
//	sc.UpdateTransform(id, compose.MoveTo(300, 300))
//
//	vp := viewport.New(sc.Canvas().Width, sc.Canvas().Height)
//	defer vp.Close()
//	vp.Track(sc) // follow preset and canvas size changes
//
//	ex := export.Exporter{Scene: sc, Viewport: vp, PixelRatio: 2}
//	res, err := ex.Export(ctx)
//
// # Architecture
//
// The module is organized leaf-first:
//   - compose: geometry (Matrix, Point, Box, Transform), fill colors, logging
//   - layer: layer records and the z-ordered stack
//   - scene: the single mutable owner of canvas, stack and selection
//   - interact: pointer, drag and transformer-handle state machine
//   - reorder: drag-and-drop index arithmetic for the layer list
//   - viewport: debounced on-screen scale derivation
//   - render, export: rasterization of the scene and the export pipeline
//   - asset, catalog, qrstamp: collaborators that supply bitmaps
//
// # Coordinate System
//
// Logical canvas coordinates:
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//   - Rotations are in degrees, positive is clockwise on screen
//
// The viewport scale maps logical coordinates to screen pixels. It is applied
// once, outermost, and is never folded into a layer's own transform.
package compose

// Version is the current version of the module.
const Version = "0.1.0"
