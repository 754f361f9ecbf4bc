package viewport

import (
	"math"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gogpu/compose/scene"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestResizeDebounce(t *testing.T) {
	m := New(1280, 720, WithDebounce(100*time.Millisecond))
	t.Cleanup(m.Close)

	var calls atomic.Int32
	done := make(chan float64, 4)
	m.OnChange(func(s float64) {
		calls.Add(1)
		done <- s
	})

	for i := 0; i < 10; i++ {
		m.Resize(float64(600+i*10), 400)
		time.Sleep(5 * time.Millisecond)
	}

	select {
	case s := <-done:
		// Last event wins: 690x400 fits 1280x720 at 690/1280.
		if want := 690.0 / 1280.0; !approx(s, want) {
			t.Errorf("scale = %v, want %v", s, want)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("debounced recompute never fired")
	}

	time.Sleep(250 * time.Millisecond)
	if got := calls.Load(); got != 1 {
		t.Errorf("recomputations = %d, want 1", got)
	}
}

func TestCloseCancelsPendingResize(t *testing.T) {
	m := New(100, 100, WithDebounce(30*time.Millisecond))
	var calls atomic.Int32
	m.OnChange(func(float64) { calls.Add(1) })

	m.Resize(50, 50)
	m.Close()
	time.Sleep(100 * time.Millisecond)

	if calls.Load() != 0 {
		t.Error("recompute fired after Close")
	}
	if m.Scale() != 1 {
		t.Errorf("Scale() = %v, want 1", m.Scale())
	}
}

func TestImmediateRecompute(t *testing.T) {
	m := New(1280, 720, WithChromeHeight(80))
	t.Cleanup(m.Close)

	m.SetContainer(1280, 800)
	if got := m.Scale(); !approx(got, 1) {
		t.Errorf("Scale() = %v, want 1", got)
	}

	m.SetChrome(640)
	if got, want := m.Scale(), 640.0/1280.0; !approx(got, want) {
		t.Errorf("after chrome Scale() = %v, want %v", got, want)
	}

	m.SetCanvasSize(1080, 1920)
	if got, want := m.Scale(), 720.0/1920.0; !approx(got, want) {
		t.Errorf("after canvas change Scale() = %v, want %v", got, want)
	}
}

func TestClampToOne(t *testing.T) {
	tests := []struct {
		name  string
		clamp bool
		want  float64
	}{
		{"editor", true, 1},
		{"preview", false, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(100, 100, WithClampToOne(tt.clamp))
			t.Cleanup(m.Close)
			m.SetContainer(200, 300)
			if got := m.Scale(); !approx(got, tt.want) {
				t.Errorf("Scale() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestForceRestore(t *testing.T) {
	m := New(1000, 1000)
	t.Cleanup(m.Close)
	m.SetContainer(300, 300)

	restore := m.Force(2)
	if m.Scale() != 2 || !m.Forced() {
		t.Fatalf("Scale() = %v while forced, want 2", m.Scale())
	}
	if !approx(m.LiveScale(), 0.3) {
		t.Errorf("LiveScale() = %v, want 0.3", m.LiveScale())
	}

	inner := m.Force(1)
	if m.Scale() != 1 {
		t.Errorf("nested Scale() = %v, want 1", m.Scale())
	}
	inner()
	if m.Scale() != 2 {
		t.Errorf("after inner restore Scale() = %v, want 2", m.Scale())
	}

	restore()
	restore()
	if !approx(m.Scale(), 0.3) || m.Forced() {
		t.Errorf("after restore Scale() = %v, want 0.3", m.Scale())
	}
}

func TestDebouncerCancel(t *testing.T) {
	var calls atomic.Int32
	d := NewDebouncer(20*time.Millisecond, func() { calls.Add(1) })
	t.Cleanup(d.Stop)

	d.Trigger()
	if !d.Pending() {
		t.Error("Pending() = false after Trigger")
	}
	d.Cancel()
	time.Sleep(60 * time.Millisecond)
	if calls.Load() != 0 {
		t.Errorf("calls = %d after Cancel, want 0", calls.Load())
	}

	d.Trigger()
	time.Sleep(80 * time.Millisecond)
	if calls.Load() != 1 {
		t.Errorf("calls = %d after second Trigger, want 1", calls.Load())
	}
}

func TestForceRestoreOutOfOrder(t *testing.T) {
	m := New(1000, 1000)
	t.Cleanup(m.Close)
	m.SetContainer(500, 500)

	outer := m.Force(2)
	inner := m.Force(3)
	outer()
	if m.Scale() != 3 || !m.Forced() {
		t.Fatalf("after outer restore Scale() = %v, Forced() = %v; want 3, true", m.Scale(), m.Forced())
	}
	inner()
	if !approx(m.Scale(), 0.5) || m.Forced() {
		t.Errorf("after both restores Scale() = %v, Forced() = %v; want 0.5, false", m.Scale(), m.Forced())
	}
}

func TestTrackFollowsCanvas(t *testing.T) {
	s := scene.New()
	m := New(1, 1)
	t.Cleanup(m.Close)
	m.Track(s)
	m.SetContainer(640, 640)
	if !approx(m.Scale(), 0.5) {
		t.Fatalf("landscape Scale() = %v, want 0.5", m.Scale())
	}

	s.SetPreset(scene.PresetPortrait)
	if !approx(m.Scale(), 640.0/1920) {
		t.Errorf("portrait Scale() = %v, want %v", m.Scale(), 640.0/1920)
	}
	s.SetCanvas(scene.Canvas{Width: 320, Height: 320})
	if !approx(m.Scale(), 1) {
		t.Errorf("custom canvas Scale() = %v, want 1", m.Scale())
	}
}

func TestChromeWiderThanContainerKeepsScale(t *testing.T) {
	m := New(1280, 720)
	t.Cleanup(m.Close)
	m.SetContainer(640, 720)
	if !approx(m.Scale(), 0.5) {
		t.Fatalf("Scale() = %v, want 0.5", m.Scale())
	}
	var calls int
	m.OnChange(func(float64) { calls++ })
	m.SetChrome(800)
	if !approx(m.Scale(), 0.5) || calls != 0 {
		t.Errorf("Scale() = %v with %d changes, want 0.5 kept", m.Scale(), calls)
	}
	m.SetChrome(0)
	if calls != 1 {
		t.Errorf("changes = %d after panel closed, want 1", calls)
	}
}
