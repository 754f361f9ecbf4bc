// Package export rasterizes a scene at a fixed resolution independent of
// the live viewport scale.
//
// Export clears the selection so no transformer chrome is baked in, forces
// the stage scale to the pixel ratio, waits for the stage to settle,
// renders every layer in stack order and encodes the result. The live
// scale is restored afterwards on every path, including failures.
package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/gogpu/compose"
	"github.com/gogpu/compose/internal/imageio"
	"github.com/gogpu/compose/render"
	"github.com/gogpu/compose/scene"
)

// ErrExport wraps every export failure.
var ErrExport = errors.New("export: failed")

// Format is the encoded output format.
type Format = imageio.Format

// Output formats.
const (
	PNG  = imageio.PNG
	JPEG = imageio.JPEG
)

// Defaults mirror the editor's save action.
const (
	DefaultPixelRatio = 2.0
	DefaultSettle     = 100 * time.Millisecond
)

// Viewport is the live stage scale an export temporarily overrides.
// *viewport.Manager implements it.
type Viewport interface {
	Force(scale float64) (restore func())
}

// Encoder turns the rendered image into bytes.
type Encoder func(img image.Image, f Format, quality int) ([]byte, error)

// Exporter renders a scene into an encoded image.
type Exporter struct {
	Scene *scene.Scene

	// Viewport, if set, is forced to PixelRatio for the duration of the
	// export so the live stage renders at export resolution meanwhile.
	Viewport Viewport

	// PixelRatio multiplies the logical canvas size. 0 means
	// DefaultPixelRatio.
	PixelRatio float64

	// Settle is waited after forcing the scale. Negative disables it; 0
	// means DefaultSettle.
	Settle time.Duration

	Format  Format
	Quality int // JPEG only

	// Renderer draws the layers. The zero value renders at high quality.
	Renderer render.Renderer

	// Encode overrides the encoder, mainly for tests.
	Encode Encoder
}

// Result is the encoded export.
type Result struct {
	Data   []byte
	Format Format
	Width  int
	Height int
}

// MIME returns the media type of the payload.
func (r *Result) MIME() string {
	return r.Format.MIME()
}

// Export runs the export sequence. It returns ErrExport, wrapped with the
// cause, if the context ends during the settle delay or if rendering or
// encoding fails; no partial output is returned.
func (e *Exporter) Export(ctx context.Context) (res *Result, err error) {
	if e.Scene == nil {
		return nil, fmt.Errorf("%w: nil scene", ErrExport)
	}
	ratio := e.PixelRatio
	if ratio == 0 {
		ratio = DefaultPixelRatio
	}
	if ratio < 0 {
		return nil, fmt.Errorf("%w: invalid pixel ratio %v", ErrExport, ratio)
	}
	format := e.Format
	if format == "" {
		format = PNG
	}

	e.Scene.ClearSelection()
	if e.Viewport != nil {
		restore := e.Viewport.Force(ratio)
		defer restore()
	}
	defer func() {
		if r := recover(); r != nil {
			res, err = nil, fmt.Errorf("%w: panic: %v", ErrExport, r)
		}
		if err != nil {
			compose.Logger().Warn("export: failed", "err", err)
		}
	}()

	if err := e.settle(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExport, err)
	}

	img := e.Renderer.Render(e.Scene, ratio, nil)
	b := img.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("%w: empty canvas", ErrExport)
	}

	encode := e.Encode
	if encode == nil {
		encode = defaultEncode
	}
	data, err := encode(img, format, e.Quality)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExport, err)
	}

	compose.Logger().Info("export: done", "format", string(format), "w", b.Dx(), "h", b.Dy(), "bytes", len(data))
	return &Result{Data: data, Format: format, Width: b.Dx(), Height: b.Dy()}, nil
}

func (e *Exporter) settle(ctx context.Context) error {
	d := e.Settle
	if d == 0 {
		d = DefaultSettle
	}
	if d < 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func defaultEncode(img image.Image, f Format, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := imageio.Encode(&buf, img, f, quality); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
