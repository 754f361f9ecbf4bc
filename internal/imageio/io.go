// Package imageio decodes and encodes the raster formats the editor reads
// and writes.
//
// Decoding auto-detects PNG, JPEG, GIF, WebP, BMP and TIFF. Encoding
// supports PNG and JPEG, the two export formats.
package imageio

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	// Registered decoders.
	_ "image/gif"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// I/O errors.
var (
	// ErrUnsupportedFormat is returned for an unknown encode format.
	ErrUnsupportedFormat = errors.New("imageio: unsupported format")

	// ErrEmptyData is returned when there is nothing to decode.
	ErrEmptyData = errors.New("imageio: empty data")
)

// Format is an encoded image format.
type Format string

// Export formats.
const (
	PNG  Format = "png"
	JPEG Format = "jpeg"
)

// ParseFormat maps a format name or file extension to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.TrimPrefix(strings.ToLower(s), ".") {
	case "png":
		return PNG, nil
	case "jpg", "jpeg":
		return JPEG, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// MIME returns the media type of f.
func (f Format) MIME() string {
	switch f {
	case JPEG:
		return "image/jpeg"
	default:
		return "image/png"
	}
}

// DefaultJPEGQuality is used when no quality is given.
const DefaultJPEGQuality = 92

// Load decodes the image file at path.
func Load(path string) (image.Image, string, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, "", fmt.Errorf("imageio: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Decode(f)
}

// DecodeBytes decodes an in-memory image.
func DecodeBytes(data []byte) (image.Image, string, error) {
	if len(data) == 0 {
		return nil, "", ErrEmptyData
	}
	return Decode(bytes.NewReader(data))
}

// Decode decodes an image, auto-detecting the format. It returns the
// registered format name alongside the image.
func Decode(r io.Reader) (image.Image, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("imageio: decode: %w", err)
	}
	return img, format, nil
}

// Encode writes img to w in format f. quality applies to JPEG only and is
// clamped to 1..100; 0 selects DefaultJPEGQuality.
func Encode(w io.Writer, img image.Image, f Format, quality int) error {
	switch f {
	case PNG, "":
		if err := png.Encode(w, img); err != nil {
			return fmt.Errorf("imageio: encode PNG: %w", err)
		}
		return nil
	case JPEG:
		if quality == 0 {
			quality = DefaultJPEGQuality
		}
		quality = min(max(quality, 1), 100)
		if err := jpeg.Encode(w, img, &jpeg.Options{Quality: quality}); err != nil {
			return fmt.Errorf("imageio: encode JPEG: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, string(f))
	}
}

// Save encodes img into a file, choosing the format from the extension.
func Save(path string, img image.Image, quality int) error {
	f, err := ParseFormat(filepath.Ext(path))
	if err != nil {
		return err
	}
	out, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("imageio: create file: %w", err)
	}
	if err := Encode(out, img, f, quality); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
