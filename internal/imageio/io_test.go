package imageio

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"path/filepath"
	"testing"
)

func testImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 3))
	img.Set(1, 1, color.NRGBA{R: 255, A: 255})
	return img
}

func TestEncodeDecode(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{PNG, "png"},
		{JPEG, "jpeg"},
	}
	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			var buf bytes.Buffer
			if err := Encode(&buf, testImage(), tt.format, 0); err != nil {
				t.Fatalf("Encode() error: %v", err)
			}
			img, name, err := DecodeBytes(buf.Bytes())
			if err != nil {
				t.Fatalf("DecodeBytes() error: %v", err)
			}
			if name != tt.want {
				t.Errorf("format = %q, want %q", name, tt.want)
			}
			if got := img.Bounds().Size(); got != image.Pt(4, 3) {
				t.Errorf("size = %v, want 4x3", got)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{".png", PNG, false},
		{"JPG", JPEG, false},
		{"jpeg", JPEG, false},
		{".gif", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, %v", tt.in, got, err)
		}
		if err != nil && !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("ParseFormat(%q) error = %v, want ErrUnsupportedFormat", tt.in, err)
		}
	}
}

func TestDecodeEmpty(t *testing.T) {
	if _, _, err := DecodeBytes(nil); !errors.Is(err, ErrEmptyData) {
		t.Errorf("DecodeBytes(nil) error = %v, want ErrEmptyData", err)
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")
	if err := Save(path, testImage(), 0); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	img, name, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if name != "png" || img.Bounds().Dx() != 4 {
		t.Errorf("Load() = %q %v", name, img.Bounds())
	}
}
