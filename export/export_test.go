package export

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gogpu/compose"
	"github.com/gogpu/compose/internal/imageio"
	"github.com/gogpu/compose/scene"
	"github.com/gogpu/compose/viewport"
)

type solidBitmap struct{ w, h int }

func (b solidBitmap) Image() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, b.w, b.h))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	img.Set(0, 0, color.RGBA{R: 0xff, A: 0xff})
	return img
}

func (b solidBitmap) Size() (int, int) { return b.w, b.h }

func fixture(t *testing.T) (*scene.Scene, *viewport.Manager) {
	t.Helper()
	s := scene.New(scene.WithCanvas(scene.Canvas{Width: 100, Height: 60, Fill: compose.Yellow}))
	id := s.AddStamp(solidBitmap{20, 20}, "stamp")
	s.UpdateTransform(id, compose.Full(compose.Transform{X: 30, Y: 30, ScaleX: 1, ScaleY: 1.5, Rotation: 30}))
	vp := viewport.New(100, 60)
	t.Cleanup(vp.Close)
	return s, vp
}

func TestExportIndependentOfViewportScale(t *testing.T) {
	s, vp := fixture(t)
	e := &Exporter{Scene: s, Viewport: vp, PixelRatio: 2, Settle: -1}

	var results []*Result
	for _, container := range []float64{30, 100} {
		vp.SetContainer(container, container)
		res, err := e.Export(context.Background())
		if err != nil {
			t.Fatalf("Export() error: %v", err)
		}
		results = append(results, res)
	}
	if got := vp.Scale(); got != 1 {
		t.Errorf("viewport scale after export = %v, want 1", got)
	}

	for i, res := range results {
		if res.Width != 200 || res.Height != 120 {
			t.Errorf("export %d: %dx%d, want 200x120", i, res.Width, res.Height)
		}
	}
	if !bytes.Equal(results[0].Data, results[1].Data) {
		t.Error("exports at viewport scales 0.3 and 1.0 differ")
	}

	img, format, err := imageio.DecodeBytes(results[0].Data)
	if err != nil || format != "png" {
		t.Fatalf("decode: %q, %v", format, err)
	}
	if img.Bounds().Dx() != 200 {
		t.Errorf("decoded width = %d", img.Bounds().Dx())
	}
}

func TestExportClearsSelectionAndForcesScale(t *testing.T) {
	s, vp := fixture(t)
	vp.SetContainer(30, 30)
	var during float64
	e := &Exporter{
		Scene:    s,
		Viewport: vp,
		Settle:   time.Millisecond,
		Encode: func(img image.Image, f Format, q int) ([]byte, error) {
			during = vp.Scale()
			return defaultEncode(img, f, q)
		},
	}
	if _, err := e.Export(context.Background()); err != nil {
		t.Fatalf("Export() error: %v", err)
	}
	if _, ok := s.Selected(); ok {
		t.Error("selection not cleared")
	}
	if during != DefaultPixelRatio {
		t.Errorf("scale during export = %v, want %v", during, DefaultPixelRatio)
	}
	if vp.Forced() || vp.Scale() != 0.3 {
		t.Errorf("scale after export = %v, want 0.3", vp.Scale())
	}
}

func TestViewportRestoredOnFailure(t *testing.T) {
	boom := errors.New("encoder exploded")
	tests := []struct {
		name   string
		encode Encoder
		cause  error
	}{
		{
			name:   "error",
			encode: func(image.Image, Format, int) ([]byte, error) { return nil, boom },
			cause:  boom,
		},
		{
			name:   "panic",
			encode: func(image.Image, Format, int) ([]byte, error) { panic("capture failed") },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, vp := fixture(t)
			vp.SetContainer(30, 30)
			e := &Exporter{Scene: s, Viewport: vp, Settle: -1, Encode: tt.encode}

			res, err := e.Export(context.Background())
			if res != nil {
				t.Error("partial result returned")
			}
			if !errors.Is(err, ErrExport) {
				t.Errorf("error = %v, want ErrExport", err)
			}
			if tt.cause != nil && !errors.Is(err, tt.cause) {
				t.Errorf("error = %v, want cause %v", err, tt.cause)
			}
			if vp.Forced() || vp.Scale() != 0.3 {
				t.Errorf("scale = %v after failure, want 0.3", vp.Scale())
			}
		})
	}
}

func TestExportCanceledDuringSettle(t *testing.T) {
	s, vp := fixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	e := &Exporter{Scene: s, Viewport: vp, Settle: time.Hour}
	_, err := e.Export(ctx)
	if !errors.Is(err, ErrExport) || !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want ErrExport wrapping context.Canceled", err)
	}
	if vp.Forced() {
		t.Error("viewport still forced after cancel")
	}
}

func TestExportJPEGAndSink(t *testing.T) {
	s, _ := fixture(t)
	path := filepath.Join(t.TempDir(), "out.jpg")
	e := &Exporter{Scene: s, PixelRatio: 1, Settle: -1, Format: JPEG, Quality: 80}

	res, err := e.Save(context.Background(), FileSink{Path: path})
	if err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if res.MIME() != "image/jpeg" || res.Width != 100 || res.Height != 60 {
		t.Errorf("result = %s %dx%d", res.MIME(), res.Width, res.Height)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, res.Data) {
		t.Error("file content differs from result")
	}
}

func TestSinkFailure(t *testing.T) {
	s, _ := fixture(t)
	e := &Exporter{Scene: s, Settle: -1}
	fail := SinkFunc(func(context.Context, *Result) error { return errors.New("upload refused") })
	if _, err := e.Save(context.Background(), fail); !errors.Is(err, ErrExport) {
		t.Errorf("Save() error = %v, want ErrExport", err)
	}
}

func TestExportRejectsBadInput(t *testing.T) {
	if _, err := (&Exporter{}).Export(context.Background()); !errors.Is(err, ErrExport) {
		t.Errorf("nil scene error = %v", err)
	}
	s, _ := fixture(t)
	if _, err := (&Exporter{Scene: s, PixelRatio: -1}).Export(context.Background()); !errors.Is(err, ErrExport) {
		t.Errorf("negative ratio error = %v", err)
	}
}
