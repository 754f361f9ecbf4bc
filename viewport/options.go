package viewport

import "time"

// DefaultDebounce is the resize coalescing window.
const DefaultDebounce = 100 * time.Millisecond

// Option configures a Manager.
type Option func(*options)

type options struct {
	debounce     time.Duration
	clampToOne   bool
	chromeHeight float64
}

func defaultOptions() options {
	return options{
		debounce:   DefaultDebounce,
		clampToOne: true,
	}
}

// WithDebounce sets the resize coalescing window.
func WithDebounce(d time.Duration) Option {
	return func(o *options) {
		if d >= 0 {
			o.debounce = d
		}
	}
}

// WithClampToOne controls whether the scale may exceed 1. Editors clamp so
// that a small canvas is never upscaled; previews may not.
func WithClampToOne(clamp bool) Option {
	return func(o *options) {
		o.clampToOne = clamp
	}
}

// WithChromeHeight reserves vertical space for fixed chrome such as a toolbar.
func WithChromeHeight(h float64) Option {
	return func(o *options) {
		if h >= 0 {
			o.chromeHeight = h
		}
	}
}
