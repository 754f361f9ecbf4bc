// Package asset loads stamp and background bitmaps asynchronously.
//
// Load returns a pending Handle at once and decodes on a goroutine.
// References are file paths, http(s) URLs or data URLs. Remote images can
// be routed through an image proxy for hosts that do not allow direct
// access. Handles are cached per reference.
package asset

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/gogpu/compose"
	"github.com/gogpu/compose/internal/cache"
	"github.com/gogpu/compose/internal/imageio"
	"github.com/gogpu/compose/layer"
)

// Loader errors.
var (
	// ErrNilHandle is reported by methods on a nil Handle.
	ErrNilHandle = errors.New("asset: nil handle")

	// ErrHTTPStatus is returned for a non-2xx response.
	ErrHTTPStatus = errors.New("asset: unexpected HTTP status")

	// ErrDataURL is returned for a malformed data URL.
	ErrDataURL = errors.New("asset: malformed data URL")

	// ErrTooLarge is returned when an asset exceeds the size limit.
	ErrTooLarge = errors.New("asset: asset too large")
)

// Loader fetches and decodes assets. It is safe for concurrent use.
type Loader struct {
	client   *http.Client
	proxy    string
	maxBytes int64
	handles  *cache.Cache[string, *Handle]
}

// NewLoader creates a loader.
func NewLoader(opts ...Option) *Loader {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Loader{
		client:   o.client,
		proxy:    o.proxy,
		maxBytes: o.maxBytes,
		handles:  cache.New[string, *Handle](o.cacheSize),
	}
}

// Load returns the handle for ref, starting a decode if none is cached.
// The decode runs until it finishes or ctx is done. A failed handle is
// dropped from the cache so a later Load retries.
func (l *Loader) Load(ctx context.Context, ref string) *Handle {
	h, cached := l.handles.GetOrCreate(ref, func() *Handle { return newHandle(ref) })
	if !cached {
		go l.decode(ctx, h)
	}
	return h
}

// Resolve implements scene.Resolver.
func (l *Loader) Resolve(ctx context.Context, ref string) layer.Bitmap {
	return l.Load(ctx, ref)
}

// Forget drops ref from the cache. Layers holding its handle keep it.
func (l *Loader) Forget(ref string) {
	l.handles.Delete(ref)
}

// Cached returns the number of cached handles.
func (l *Loader) Cached() int {
	return l.handles.Len()
}

func (l *Loader) decode(ctx context.Context, h *Handle) {
	img, format, err := l.fetchAndDecode(ctx, h.ref)
	if err != nil {
		compose.Logger().Warn("asset: decode failed", "ref", shorten(h.ref), "err", err)
		l.handles.DeleteIf(h.ref, func(c *Handle) bool { return c == h })
		h.publish(&result{err: err})
		return
	}
	b := img.Bounds()
	compose.Logger().Debug("asset: decoded", "ref", shorten(h.ref), "format", format, "w", b.Dx(), "h", b.Dy())
	h.publish(&result{img: img, format: format})
}

func (l *Loader) fetchAndDecode(ctx context.Context, ref string) (image.Image, string, error) {
	switch {
	case strings.HasPrefix(ref, "data:"):
		data, err := parseDataURL(ref)
		if err != nil {
			return nil, "", err
		}
		return imageio.DecodeBytes(data)
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		data, err := l.fetch(ctx, l.resolveURL(ref))
		if err != nil {
			return nil, "", err
		}
		return imageio.DecodeBytes(data)
	default:
		if err := ctx.Err(); err != nil {
			return nil, "", err
		}
		return imageio.Load(strings.TrimPrefix(ref, "file://"))
	}
}

// resolveURL routes remote refs through the proxy, if configured.
func (l *Loader) resolveURL(ref string) string {
	if l.proxy == "" {
		return ref
	}
	return l.proxy + url.QueryEscape(ref)
}

func (l *Loader) fetch(ctx context.Context, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("asset: request: %w", err)
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("asset: fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s", ErrHTTPStatus, resp.Status)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, l.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("asset: read body: %w", err)
	}
	if int64(len(data)) > l.maxBytes {
		return nil, ErrTooLarge
	}
	return data, nil
}

// parseDataURL decodes data:[<mediatype>][;base64],<payload>.
func parseDataURL(ref string) ([]byte, error) {
	meta, payload, ok := strings.Cut(strings.TrimPrefix(ref, "data:"), ",")
	if !ok {
		return nil, ErrDataURL
	}
	if strings.HasSuffix(meta, ";base64") {
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDataURL, err)
		}
		return data, nil
	}
	data, err := url.PathUnescape(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDataURL, err)
	}
	return []byte(data), nil
}

func shorten(ref string) string {
	const limit = 64
	if len(ref) <= limit {
		return ref
	}
	return ref[:limit] + "..."
}
