package scene

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"

	"github.com/gogpu/compose"
	"github.com/gogpu/compose/layer"
)

// documentVersion is bumped on incompatible changes to the layout below.
const documentVersion = 1

// Document errors.
var (
	// ErrDocumentVersion is returned when decoding a document written by an
	// incompatible version.
	ErrDocumentVersion = errors.New("scene: unsupported document version")

	// ErrDocumentCanvas is returned when a document carries an invalid canvas.
	ErrDocumentCanvas = errors.New("scene: invalid document canvas")
)

// Resolver turns an asset reference stored in a document back into a
// bitmap. The bitmap may still be decoding when returned.
type Resolver interface {
	Resolve(ctx context.Context, ref string) layer.Bitmap
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(ctx context.Context, ref string) layer.Bitmap

// Resolve calls f.
func (f ResolverFunc) Resolve(ctx context.Context, ref string) layer.Bitmap {
	return f(ctx, ref)
}

type document struct {
	Version           int           `cbor:"1,keyasint"`
	Width             int           `cbor:"2,keyasint"`
	Height            int           `cbor:"3,keyasint"`
	Fill              [3]uint8      `cbor:"4,keyasint"`
	Preset            string        `cbor:"5,keyasint,omitempty"`
	BackgroundInFront bool          `cbor:"6,keyasint,omitempty"`
	StampScale        float64       `cbor:"7,keyasint,omitempty"`
	Layers            []layerRecord `cbor:"8,keyasint"`
}

type layerRecord struct {
	_        struct{} `cbor:",toarray"`
	ID       string
	Kind     uint8
	Source   string
	Label    string
	Name     string
	X, Y     float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64
}

// Encode writes a snapshot of s to w: the canvas, the background pin and
// every layer's identity, asset reference and transform. Pixels are not
// stored; bitmaps are referenced by their Source.
func Encode(w io.Writer, s *Scene) error {
	doc := document{
		Version:           documentVersion,
		Width:             s.canvas.Width,
		Height:            s.canvas.Height,
		Fill:              [3]uint8{s.canvas.Fill.R, s.canvas.Fill.G, s.canvas.Fill.B},
		Preset:            string(s.canvas.Preset),
		BackgroundInFront: s.stack.BackgroundInFront(),
		StampScale:        s.stampScale,
	}
	for _, l := range s.stack.Layers() {
		t := l.Transform
		doc.Layers = append(doc.Layers, layerRecord{
			ID:       string(l.ID),
			Kind:     uint8(l.Kind),
			Source:   l.Source,
			Label:    l.Label,
			Name:     l.Name,
			X:        t.X,
			Y:        t.Y,
			ScaleX:   t.ScaleX,
			ScaleY:   t.ScaleY,
			Rotation: t.Rotation,
		})
	}

	enc, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		return fmt.Errorf("scene: encoder: %w", err)
	}
	b, err := enc.Marshal(doc)
	if err != nil {
		return fmt.Errorf("scene: encode document: %w", err)
	}
	if _, err := w.Write(b); err != nil {
		return fmt.Errorf("scene: write document: %w", err)
	}
	return nil
}

// Decode reads a document written by Encode and rebuilds the scene. Each
// layer's bitmap is obtained from res by its Source; layers without a
// source, or decoded with a nil resolver, have no bitmap and are simply
// not rendered. The decoded scene has no selection.
func Decode(ctx context.Context, r io.Reader, res Resolver, opts ...Option) (*Scene, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("scene: read document: %w", err)
	}
	mode, err := cbor.DecOptions{}.DecMode()
	if err != nil {
		return nil, fmt.Errorf("scene: decoder: %w", err)
	}
	var doc document
	if err := mode.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("scene: decode document: %w", err)
	}
	if doc.Version != documentVersion {
		return nil, fmt.Errorf("%w: %d", ErrDocumentVersion, doc.Version)
	}
	canvas := Canvas{
		Width:  doc.Width,
		Height: doc.Height,
		Fill:   compose.RGB{R: doc.Fill[0], G: doc.Fill[1], B: doc.Fill[2]},
		Preset: Preset(doc.Preset),
	}
	if !canvas.Valid() {
		return nil, fmt.Errorf("%w: %dx%d", ErrDocumentCanvas, doc.Width, doc.Height)
	}

	opts = append([]Option{
		WithCanvas(canvas),
		WithStampScale(doc.StampScale),
		WithBackgroundInFront(doc.BackgroundInFront),
	}, opts...)
	s := New(opts...)

	for _, rec := range doc.Layers {
		kind := layer.Kind(rec.Kind)
		switch kind {
		case layer.KindBackground, layer.KindStamp:
		default:
			compose.Logger().Warn("scene: skipping layer of unknown kind", "id", rec.ID, "kind", rec.Kind)
			continue
		}
		var bm layer.Bitmap
		if res != nil && rec.Source != "" {
			bm = res.Resolve(ctx, rec.Source)
		}
		s.stack.Insert(layer.Layer{
			ID:     layer.ID(rec.ID),
			Kind:   kind,
			Bitmap: bm,
			Source: rec.Source,
			Transform: compose.Transform{
				X:        rec.X,
				Y:        rec.Y,
				ScaleX:   rec.ScaleX,
				ScaleY:   rec.ScaleY,
				Rotation: rec.Rotation,
			},
			Label: rec.Label,
			Name:  rec.Name,
		})
	}
	return s, nil
}
