// Package layer defines the layer records of a composition and the ordered
// stack that holds them.
//
// Index 0 of a Stack is the bottom of the composition and is rendered first.
// A stack holds at most one background layer, pinned either to the bottom or
// to the top; stamps are freely orderable within the remaining range.
package layer

import (
	"image"

	"github.com/google/uuid"

	"github.com/gogpu/compose"
)

// Kind discriminates the layer variants.
type Kind uint8

// Layer kinds.
const (
	// KindBackground is the single full-bleed background bitmap.
	KindBackground Kind = iota

	// KindStamp is a user-placed bitmap with its own position, scale and rotation.
	KindStamp
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindBackground:
		return "background"
	case KindStamp:
		return "stamp"
	default:
		return "unknown"
	}
}

// DefaultLabel returns the list label shown for layers of kind k.
func (k Kind) DefaultLabel() string {
	switch k {
	case KindBackground:
		return "Background"
	case KindStamp:
		return "Stamp"
	default:
		return ""
	}
}

// ID is an opaque layer identifier. IDs are unique within a stack and are
// never reused after deletion.
type ID string

// NewID returns a fresh identifier for a layer of kind k.
func NewID(k Kind) ID {
	prefix := "stamp-"
	if k == KindBackground {
		prefix = "bg-"
	}
	return ID(prefix + uuid.NewString())
}

// Bitmap is a non-owning reference to a decoded raster image.
//
// Image returns nil while the bitmap is not renderable yet (still decoding or
// failed to decode). Size reports the intrinsic pixel size, or 0, 0 when
// unknown.
type Bitmap interface {
	Image() image.Image
	Size() (w, h int)
}

// Layer is one positioned visual element of a composition.
type Layer struct {
	ID   ID
	Kind Kind

	// Bitmap is owned by the asset loader; the layer only references it.
	Bitmap Bitmap

	// Source is the asset reference the bitmap was loaded from. It is what a
	// saved document stores in place of pixels.
	Source string

	// Transform is ignored for backgrounds, which are always drawn full-bleed.
	Transform compose.Transform

	// Label and Name are display metadata only.
	Label string
	Name  string
}

// Image returns the decoded bitmap or nil if none is renderable yet.
func (l Layer) Image() image.Image {
	if l.Bitmap == nil {
		return nil
	}
	return l.Bitmap.Image()
}

// Renderable reports whether the layer has a decoded bitmap.
func (l Layer) Renderable() bool {
	return l.Image() != nil
}

// Size returns the intrinsic bitmap size in pixels.
func (l Layer) Size() (w, h float64) {
	if l.Bitmap == nil {
		return 0, 0
	}
	iw, ih := l.Bitmap.Size()
	return float64(iw), float64(ih)
}

// Box returns the layer's transformer bounding box in logical coordinates.
func (l Layer) Box() compose.Box {
	w, h := l.Size()
	return compose.BoxOf(l.Transform, w, h)
}

// Matrix returns the local-to-canvas matrix of a stamp.
func (l Layer) Matrix() compose.Matrix {
	w, h := l.Size()
	return l.Transform.Matrix(w, h)
}

// Referenced is implemented by bitmaps that know the asset reference they
// were loaded from.
type Referenced interface {
	Ref() string
}

// SourceOf returns the asset reference of bm, or "" if it has none.
func SourceOf(bm Bitmap) string {
	if r, ok := bm.(Referenced); ok {
		return r.Ref()
	}
	return ""
}
