package interact

import "github.com/gogpu/compose"

// Option configures a Controller.
type Option func(*options)

type options struct {
	layout  Layout
	minSize float64
}

func defaultOptions() options {
	return options{
		layout:  DefaultLayout,
		minSize: compose.MinBoxSize,
	}
}

// WithLayout sets the transformer handle geometry.
func WithLayout(l Layout) Option {
	return func(o *options) {
		o.layout = l
	}
}

// WithMinSize sets the smallest box width or height a resize may produce.
func WithMinSize(min float64) Option {
	return func(o *options) {
		if min > 0 {
			o.minSize = min
		}
	}
}
