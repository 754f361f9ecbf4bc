package scene

// Option configures a Scene during creation.
//
// Example:
//
//	sc := scene.New(
//	    scene.WithCanvas(scene.PresetSquare.Canvas()),
//	    scene.WithStampScale(0.5),
//	)
type Option func(*options)

type options struct {
	canvas            Canvas
	stampScale        float64
	backgroundInFront bool
}

// DefaultStampScale is the scale new stamps are placed at. Catalog assets
// are typically much larger than the canvas, so they start reduced.
const DefaultStampScale = 0.5

func defaultOptions() options {
	return options{
		canvas:     DefaultCanvas(),
		stampScale: DefaultStampScale,
	}
}

// WithCanvas sets the initial canvas. Invalid canvases are ignored.
func WithCanvas(c Canvas) Option {
	return func(o *options) {
		if c.Valid() {
			o.canvas = c
		}
	}
}

// WithStampScale sets the uniform scale newly added stamps start with.
// Non-positive values are ignored.
func WithStampScale(s float64) Option {
	return func(o *options) {
		if s > 0 {
			o.stampScale = s
		}
	}
}

// WithBackgroundInFront pins the background to the top of the stack.
func WithBackgroundInFront(front bool) Option {
	return func(o *options) {
		o.backgroundInFront = front
	}
}
