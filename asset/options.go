package asset

import (
	"net/http"
	"time"
)

// Option configures a Loader.
type Option func(*options)

type options struct {
	client    *http.Client
	proxy     string
	maxBytes  int64
	cacheSize int
}

// Loader defaults.
const (
	DefaultMaxBytes  = 32 << 20
	DefaultCacheSize = 256
	DefaultTimeout   = 30 * time.Second
)

func defaultOptions() options {
	return options{
		client:    &http.Client{Timeout: DefaultTimeout},
		maxBytes:  DefaultMaxBytes,
		cacheSize: DefaultCacheSize,
	}
}

// WithHTTPClient sets the client used for remote assets.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		if c != nil {
			o.client = c
		}
	}
}

// WithProxy routes remote assets through an image proxy. The escaped asset
// URL is appended to prefix, e.g. "https://example.com/api/proxy/image?url=".
func WithProxy(prefix string) Option {
	return func(o *options) {
		o.proxy = prefix
	}
}

// WithMaxBytes limits the size of a fetched asset.
func WithMaxBytes(n int64) Option {
	return func(o *options) {
		if n > 0 {
			o.maxBytes = n
		}
	}
}

// WithCacheSize sets the soft limit of the handle cache. 0 means unlimited.
func WithCacheSize(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.cacheSize = n
		}
	}
}
