package asset

import (
	"context"
	"image"
	"sync/atomic"
)

// State is the decode state of a Handle.
type State int

// Handle states.
const (
	Pending State = iota
	Ready
	Failed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

type result struct {
	img    image.Image
	format string
	err    error
}

// Handle is a bitmap that may still be decoding. It implements
// layer.Bitmap: Image returns nil until decoding succeeds, so pending and
// failed assets are simply not rendered.
//
// A Handle is safe for concurrent use. Its result is published once.
// Methods on a nil Handle behave like a failed one.
type Handle struct {
	ref  string
	done chan struct{}
	res  atomic.Pointer[result]
}

func newHandle(ref string) *Handle {
	return &Handle{ref: ref, done: make(chan struct{})}
}

// FromImage wraps an already decoded image, for generated stamps.
func FromImage(ref string, img image.Image) *Handle {
	h := newHandle(ref)
	h.publish(&result{img: img, format: "memory"})
	return h
}

func (h *Handle) publish(r *result) {
	h.res.Store(r)
	close(h.done)
}

func (h *Handle) result() *result {
	if h == nil {
		return nil
	}
	return h.res.Load()
}

// Ref returns the asset reference the handle was loaded from.
func (h *Handle) Ref() string {
	if h == nil {
		return ""
	}
	return h.ref
}

// Image returns the decoded image, or nil while pending or after failure.
func (h *Handle) Image() image.Image {
	if r := h.result(); r != nil {
		return r.img
	}
	return nil
}

// Size returns the intrinsic size, or 0, 0 until decoded.
func (h *Handle) Size() (int, int) {
	img := h.Image()
	if img == nil {
		return 0, 0
	}
	b := img.Bounds()
	return b.Dx(), b.Dy()
}

// Format returns the decoded format name.
func (h *Handle) Format() string {
	if r := h.result(); r != nil {
		return r.format
	}
	return ""
}

// State returns the decode state.
func (h *Handle) State() State {
	r := h.result()
	switch {
	case h == nil:
		return Failed
	case r == nil:
		return Pending
	case r.err != nil:
		return Failed
	default:
		return Ready
	}
}

// Err returns the decode error, or nil while pending or on success.
func (h *Handle) Err() error {
	if r := h.result(); r != nil {
		return r.err
	}
	if h == nil {
		return ErrNilHandle
	}
	return nil
}

// Done returns a channel closed once the result is published.
func (h *Handle) Done() <-chan struct{} {
	if h == nil {
		c := make(chan struct{})
		close(c)
		return c
	}
	return h.done
}

// Wait blocks until decoding finishes or ctx is done, and returns the
// decode error.
func (h *Handle) Wait(ctx context.Context) error {
	select {
	case <-h.Done():
		return h.Err()
	case <-ctx.Done():
		return ctx.Err()
	}
}
