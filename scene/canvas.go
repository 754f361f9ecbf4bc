package scene

import (
	"errors"
	"fmt"

	"github.com/gogpu/compose"
)

// ErrUnknownPreset is returned by ParsePreset for names it does not know.
var ErrUnknownPreset = errors.New("scene: unknown canvas preset")

// Preset names a canvas size offered by the editor.
type Preset string

// Canvas presets.
const (
	PresetSquare    Preset = "square"    // 1200x1200, 1:1
	PresetPortrait  Preset = "portrait"  // 1080x1920, 9:16
	PresetLandscape Preset = "landscape" // 1280x720, 16:9
)

var presetSizes = map[Preset][2]int{
	PresetSquare:    {1200, 1200},
	PresetPortrait:  {1080, 1920},
	PresetLandscape: {1280, 720},
}

// Presets returns every preset in display order.
func Presets() []Preset {
	return []Preset{PresetSquare, PresetPortrait, PresetLandscape}
}

// ParsePreset looks a preset up by name.
func ParsePreset(name string) (Preset, error) {
	p := Preset(name)
	if _, ok := presetSizes[p]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	return p, nil
}

// Size returns the logical size of the preset.
func (p Preset) Size() (w, h int) {
	s := presetSizes[p]
	return s[0], s[1]
}

// AspectRatio returns the preset's aspect ratio as shown to the user.
func (p Preset) AspectRatio() string {
	switch p {
	case PresetSquare:
		return "1:1"
	case PresetPortrait:
		return "9:16"
	case PresetLandscape:
		return "16:9"
	default:
		return ""
	}
}

// Canvas returns a white canvas of the preset's size.
func (p Preset) Canvas() Canvas {
	w, h := p.Size()
	return Canvas{Width: w, Height: h, Fill: compose.White, Preset: p}
}

// Canvas is the fixed-resolution logical coordinate space a composition is
// defined in, independent of on-screen zoom.
type Canvas struct {
	Width  int
	Height int
	Fill   compose.RGB

	// Preset records which preset the size came from; empty for custom sizes.
	Preset Preset
}

// DefaultCanvas is the canvas a new scene starts with.
func DefaultCanvas() Canvas {
	return PresetLandscape.Canvas()
}

// Valid reports whether both dimensions are positive.
func (c Canvas) Valid() bool {
	return c.Width > 0 && c.Height > 0
}

// Center returns the logical center of the canvas.
func (c Canvas) Center() compose.Point {
	return compose.Pt(float64(c.Width)/2, float64(c.Height)/2)
}

// Size returns the canvas size as floats.
func (c Canvas) Size() (w, h float64) {
	return float64(c.Width), float64(c.Height)
}
