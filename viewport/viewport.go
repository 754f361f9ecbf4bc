// Package viewport derives the presentation scale that maps the logical
// canvas onto the space available on screen.
//
// The scale is applied once, outermost, by whoever renders the stage. It is
// never written into a layer transform, so exported pixel sizes do not
// depend on the window.
package viewport

import (
	"slices"
	"sync"

	"github.com/gogpu/compose"
	"github.com/gogpu/compose/scene"
)

// Manager owns the derived viewport scale.
//
// Resize events are debounced; canvas size and chrome changes recompute
// immediately. Listeners registered with OnChange run after every
// recomputation, on the goroutine that caused it (the debouncer's timer
// goroutine for resizes). Manager is safe for concurrent use.
type Manager struct {
	mu sync.Mutex

	canvasW, canvasH float64
	containerW       float64
	containerH       float64
	chromeW          float64
	chromeH          float64
	clampToOne       bool

	scale  float64
	forced []override
	nextID uint64

	listeners []func(scale float64)
	debounce  *Debouncer
}

// override is one active Force level.
type override struct {
	id    uint64
	scale float64
}

// New creates a manager for a logical canvas of canvasW x canvasH. Until a
// container size is known the scale is 1.
func New(canvasW, canvasH int, opts ...Option) *Manager {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	m := &Manager{
		canvasW:    float64(canvasW),
		canvasH:    float64(canvasH),
		chromeH:    o.chromeHeight,
		clampToOne: o.clampToOne,
		scale:      1,
	}
	m.debounce = NewDebouncer(o.debounce, m.recompute)
	return m
}

// Scale returns the current scale. While an override from Force is active
// the override is returned instead.
func (m *Manager) Scale() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if n := len(m.forced); n > 0 {
		return m.forced[n-1].scale
	}
	return m.scale
}

// LiveScale returns the derived scale, ignoring any override.
func (m *Manager) LiveScale() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.scale
}

// OnChange registers fn to run after every recomputation.
func (m *Manager) OnChange(fn func(scale float64)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, fn)
}

// Resize records a new container size and schedules a recomputation after
// the debounce window.
func (m *Manager) Resize(w, h float64) {
	m.mu.Lock()
	m.containerW, m.containerH = w, h
	m.mu.Unlock()
	m.debounce.Trigger()
}

// SetContainer records a container size and recomputes immediately, for the
// initial layout.
func (m *Manager) SetContainer(w, h float64) {
	m.mu.Lock()
	m.containerW, m.containerH = w, h
	m.mu.Unlock()
	m.recompute()
}

// SetCanvasSize changes the logical canvas size and recomputes immediately.
func (m *Manager) SetCanvasSize(w, h int) {
	m.mu.Lock()
	m.canvasW, m.canvasH = float64(w), float64(h)
	m.mu.Unlock()
	m.recompute()
}

// SetChrome sets the width taken by side chrome, such as an open panel, and
// recomputes immediately.
func (m *Manager) SetChrome(width float64) {
	m.mu.Lock()
	m.chromeW = width
	m.mu.Unlock()
	m.recompute()
}

// Force overrides the scale returned by Scale until the returned restore
// function is called. Overrides nest and the most recent active one wins.
// Each restore removes only its own override, in any order, and is
// idempotent.
func (m *Manager) Force(s float64) (restore func()) {
	m.mu.Lock()
	m.nextID++
	id := m.nextID
	m.forced = append(m.forced, override{id: id, scale: s})
	m.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			m.forced = slices.DeleteFunc(m.forced, func(o override) bool { return o.id == id })
		})
	}
}

// Track keeps the logical canvas size in step with s. The current canvas
// is applied at once and every later canvas change recomputes the scale.
func (m *Manager) Track(s *scene.Scene) {
	c := s.Canvas()
	m.SetCanvasSize(c.Width, c.Height)
	s.On(scene.EventCanvasChanged, func(scene.Event) {
		c := s.Canvas()
		m.SetCanvasSize(c.Width, c.Height)
	})
}

// Forced reports whether an override is active.
func (m *Manager) Forced() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.forced) > 0
}

// Close cancels a pending debounced recomputation. The manager keeps
// answering Scale but no longer reacts to Resize.
func (m *Manager) Close() {
	m.debounce.Stop()
}

func (m *Manager) recompute() {
	m.mu.Lock()
	if m.containerW <= 0 || m.containerH <= 0 {
		m.mu.Unlock()
		return
	}
	availW := m.containerW - m.chromeW
	availH := m.containerH - m.chromeH
	if availW <= 0 || availH <= 0 {
		// Chrome covers the container; keep the last usable scale.
		m.mu.Unlock()
		compose.Logger().Debug("viewport: no room for canvas", "availW", availW, "availH", availH)
		return
	}
	m.scale = compose.FitScale(availW, availH, m.canvasW, m.canvasH, m.clampToOne)
	s := m.scale
	listeners := append([]func(float64){}, m.listeners...)
	m.mu.Unlock()

	compose.Logger().Debug("viewport: scale recomputed", "scale", s, "availW", availW, "availH", availH)
	for _, fn := range listeners {
		fn(s)
	}
}
