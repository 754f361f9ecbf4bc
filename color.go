package compose

import (
	"errors"
	"fmt"
	"image/color"
	"strings"
)

// ErrInvalidHex is returned by ParseHex for malformed color strings.
var ErrInvalidHex = errors.New("compose: invalid hex color")

// RGB is an opaque 8-bit color used for the flat canvas fill.
type RGB struct {
	R, G, B uint8
}

// Color converts RGB to the standard color.Color interface.
func (c RGB) Color() color.Color {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}

// RGBA returns the color as color.RGBA (opaque, so already premultiplied).
func (c RGB) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}

// Hex formats the color as #RRGGBB.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// String implements fmt.Stringer.
func (c RGB) String() string { return c.Hex() }

// ParseHex parses "#RGB" or "#RRGGBB" (the leading '#' is optional).
func ParseHex(s string) (RGB, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")

	var v [6]uint8
	switch len(hex) {
	case 3:
		for i := 0; i < 3; i++ {
			d, ok := hexDigit(hex[i])
			if !ok {
				return RGB{}, fmt.Errorf("%w: %q", ErrInvalidHex, s)
			}
			v[2*i], v[2*i+1] = d, d
		}
	case 6:
		for i := 0; i < 6; i++ {
			d, ok := hexDigit(hex[i])
			if !ok {
				return RGB{}, fmt.Errorf("%w: %q", ErrInvalidHex, s)
			}
			v[i] = d
		}
	default:
		return RGB{}, fmt.Errorf("%w: %q", ErrInvalidHex, s)
	}
	return RGB{
		R: v[0]<<4 | v[1],
		G: v[2]<<4 | v[3],
		B: v[4]<<4 | v[5],
	}, nil
}

// MustHex is like ParseHex but panics on malformed input.
// It is intended for package-level color tables.
func MustHex(s string) RGB {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

func hexDigit(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// Common fill colors.
var (
	White   = RGB{0xff, 0xff, 0xff}
	Black   = RGB{0x00, 0x00, 0x00}
	Red     = RGB{0xff, 0x00, 0x00}
	Green   = RGB{0x00, 0xff, 0x00}
	Blue    = RGB{0x00, 0x00, 0xff}
	Yellow  = RGB{0xff, 0xff, 0x00}
	Magenta = RGB{0xff, 0x00, 0xff}
	Cyan    = RGB{0x00, 0xff, 0xff}
	Gray    = RGB{0x80, 0x80, 0x80}
)

// Palette is the preset list offered by the fill color picker.
var Palette = []RGB{White, Black, Red, Green, Blue, Yellow, Magenta, Cyan, Gray}
