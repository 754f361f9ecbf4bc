package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Sink receives an encoded export, for download or upload.
type Sink interface {
	Put(ctx context.Context, r *Result) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, r *Result) error

// Put calls f.
func (f SinkFunc) Put(ctx context.Context, r *Result) error {
	return f(ctx, r)
}

// FileSink writes the payload to Path, replacing it atomically.
type FileSink struct {
	Path string
}

// Put writes r to the file.
func (s FileSink) Put(_ context.Context, r *Result) error {
	dir := filepath.Dir(s.Path)
	tmp, err := os.CreateTemp(dir, ".export-*")
	if err != nil {
		return fmt.Errorf("export: create temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(r.Data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("export: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("export: close: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("export: chmod: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.Path); err != nil {
		return fmt.Errorf("export: rename: %w", err)
	}
	return nil
}

// Save exports and hands the result to sink.
func (e *Exporter) Save(ctx context.Context, sink Sink) (*Result, error) {
	res, err := e.Export(ctx)
	if err != nil {
		return nil, err
	}
	if err := sink.Put(ctx, res); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExport, err)
	}
	return res, nil
}
