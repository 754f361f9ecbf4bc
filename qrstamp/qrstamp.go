// Package qrstamp renders QR codes as stamp bitmaps, so a shop or product
// URL can be placed on the canvas like any other stamp.
package qrstamp

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/kortschak/qr"

	"github.com/gogpu/compose/asset"
	"github.com/gogpu/compose/layer"
	"github.com/gogpu/compose/scene"
)

// RefPrefix marks asset references that are generated QR codes.
const RefPrefix = "qr:"

// ErrEmptyText is returned when there is nothing to encode.
var ErrEmptyText = errors.New("qrstamp: empty text")

// Level is the error correction level.
type Level = qr.Level

// Error correction levels.
const (
	L = qr.L
	M = qr.M
	Q = qr.Q
	H = qr.H
)

// Options controls the rendered code. The zero value is usable.
type Options struct {
	Level Level

	// Scale is the size of one module in pixels. 0 means 8.
	Scale int

	// Quiet is the margin in modules. 0 means 4, negative means none.
	Quiet int

	// Foreground and Background default to black on white.
	Foreground color.Color
	Background color.Color
}

func (o *Options) withDefaults() Options {
	var v Options
	if o != nil {
		v = *o
	}
	if v.Scale <= 0 {
		v.Scale = 8
	}
	switch {
	case v.Quiet == 0:
		v.Quiet = 4
	case v.Quiet < 0:
		v.Quiet = 0
	}
	if v.Foreground == nil {
		v.Foreground = color.Black
	}
	if v.Background == nil {
		v.Background = color.White
	}
	return v
}

// Encode renders text as a QR code image.
func Encode(text string, opts *Options) (*image.NRGBA, error) {
	if text == "" {
		return nil, ErrEmptyText
	}
	o := opts.withDefaults()
	code, err := qr.Encode(text, o.Level)
	if err != nil {
		return nil, fmt.Errorf("qrstamp: encode: %w", err)
	}

	side := (code.Size + 2*o.Quiet) * o.Scale
	img := image.NewNRGBA(image.Rect(0, 0, side, side))
	fg := color.NRGBAModel.Convert(o.Foreground).(color.NRGBA)
	bg := color.NRGBAModel.Convert(o.Background).(color.NRGBA)
	for y := 0; y < side; y++ {
		my := y/o.Scale - o.Quiet
		for x := 0; x < side; x++ {
			mx := x/o.Scale - o.Quiet
			c := bg
			if mx >= 0 && my >= 0 && mx < code.Size && my < code.Size && code.Black(mx, my) {
				c = fg
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img, nil
}

// Stamp renders text and wraps it as a ready bitmap whose reference
// re-creates it through Resolver.
func Stamp(text string, opts *Options) (*asset.Handle, error) {
	img, err := Encode(text, opts)
	if err != nil {
		return nil, err
	}
	return asset.FromImage(RefPrefix+text, img), nil
}

// Resolver regenerates "qr:" references with default options and passes
// every other reference to next. next may be nil.
func Resolver(next scene.Resolver) scene.Resolver {
	return scene.ResolverFunc(func(ctx context.Context, ref string) layer.Bitmap {
		if text, ok := strings.CutPrefix(ref, RefPrefix); ok {
			h, err := Stamp(text, nil)
			if err != nil {
				return nil
			}
			return h
		}
		if next == nil {
			return nil
		}
		return next.Resolve(ctx, ref)
	})
}
