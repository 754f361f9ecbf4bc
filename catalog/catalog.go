// Package catalog lists the images a user can place on the canvas: the
// built-in stamps and a remote product catalog.
//
// The editor only needs an image reference and a display name per item;
// sources page through their items with a limit and an offset.
package catalog

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
)

// DefaultLimit is the page size the editor requests.
const DefaultLimit = 30

// ErrSource wraps failures of a catalog source.
var ErrSource = errors.New("catalog: source failed")

// Item is one selectable image.
type Item struct {
	ID   string
	Name string
	Ref  string // asset reference for asset.Loader

	// ItemID and Price are set for products only.
	ItemID int
	Price  int
}

// Page is one slice of a source.
type Page struct {
	Items   []Item
	HasMore bool
}

// Source is a paginated list of items.
type Source interface {
	List(ctx context.Context, limit, offset int) (Page, error)
}

// Static is an in-memory source.
type Static []Item

// List returns items[offset:offset+limit].
func (s Static) List(_ context.Context, limit, offset int) (Page, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	offset = min(max(offset, 0), len(s))
	end := offset + min(limit, len(s)-offset)
	return Page{
		Items:   append([]Item(nil), s[offset:end]...),
		HasMore: end < len(s),
	}, nil
}

var builtinStamps = []struct{ id, file, name string }{
	{"star", "stamp-star.png", "Star"},
	{"smile", "stamp-smile.png", "Smile"},
	{"heart", "stamp-heart.png", "Heart"},
	{"share", "stamp-share.png", "Share"},
	{"low-price", "stamp-low-price.png", "Low price"},
	{"good", "stamp-good.png", "Good"},
}

// BuiltinStamps returns the bundled stamps with references under base,
// which may be a directory or a URL prefix.
func BuiltinStamps(base string) Static {
	out := make(Static, 0, len(builtinStamps))
	for _, b := range builtinStamps {
		out = append(out, Item{ID: b.id, Name: b.name, Ref: joinRef(base, b.file)})
	}
	return out
}

func joinRef(base, file string) string {
	switch {
	case base == "":
		return file
	case strings.HasSuffix(base, "/"):
		return base + file
	case strings.Contains(base, "://"):
		return base + "/" + file
	default:
		return filepath.Join(base, file)
	}
}

// Pager accumulates pages from a source, the way a "load more" list does.
// Pager is NOT safe for concurrent use.
type Pager struct {
	src    Source
	limit  int
	offset int
	items  []Item
	more   bool
}

// NewPager creates a pager. limit <= 0 means DefaultLimit.
func NewPager(src Source, limit int) *Pager {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Pager{src: src, limit: limit, more: true}
}

// Next fetches the next page and appends it. It is a no-op once the source
// is exhausted. On error the pager is unchanged and Next can be retried.
func (p *Pager) Next(ctx context.Context) error {
	if !p.more {
		return nil
	}
	page, err := p.src.List(ctx, p.limit, p.offset)
	if err != nil {
		return err
	}
	p.items = append(p.items, page.Items...)
	p.offset += p.limit
	p.more = page.HasMore
	return nil
}

// Items returns everything loaded so far.
func (p *Pager) Items() []Item {
	return p.items
}

// HasMore reports whether Next may return more items.
func (p *Pager) HasMore() bool {
	return p.more
}

// Reset discards loaded items and starts from offset 0.
func (p *Pager) Reset() {
	p.offset = 0
	p.items = nil
	p.more = true
}
