package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gogpu/compose"
)

// HTTPSource reads a product catalog served as JSON:
//
//	{"products": [{"id": 1, "title": "...", "pngSampleImageUrl": "...",
//	  "price": 1000, "item": {"id": 15}}]}
//
// The page has more items when it came back full.
type HTTPSource struct {
	// URL is the products endpoint. limit and offset are added as query
	// parameters.
	URL string

	// Token, if set, is sent as a bearer token.
	Token string

	Client *http.Client

	// MaxBytes caps the response body. 0 means DefaultMaxBytes.
	MaxBytes int64
}

// DefaultMaxBytes is the largest catalog page HTTPSource reads.
const DefaultMaxBytes = 8 << 20

type productsResponse struct {
	Products []product `json:"products"`
}

type product struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	ImageURL string `json:"pngSampleImageUrl"`
	Price    int    `json:"price"`
	Item     struct {
		ID int `json:"id"`
	} `json:"item"`
}

// List fetches one page.
func (s *HTTPSource) List(ctx context.Context, limit, offset int) (Page, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	u, err := url.Parse(s.URL)
	if err != nil {
		return Page{}, fmt.Errorf("%w: parse url: %w", ErrSource, err)
	}
	q := u.Query()
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(max(offset, 0)))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return Page{}, fmt.Errorf("%w: request: %w", ErrSource, err)
	}
	req.Header.Set("Accept", "application/json")
	if s.Token != "" {
		req.Header.Set("Authorization", "Bearer "+s.Token)
	}

	client := s.Client
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	resp, err := client.Do(req)
	if err != nil {
		return Page{}, fmt.Errorf("%w: %w", ErrSource, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return Page{}, fmt.Errorf("%w: %s", ErrSource, resp.Status)
	}
	limitBytes := s.MaxBytes
	if limitBytes <= 0 {
		limitBytes = DefaultMaxBytes
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, limitBytes+1))
	if err != nil {
		return Page{}, fmt.Errorf("%w: read body: %w", ErrSource, err)
	}
	if int64(len(data)) > limitBytes {
		return Page{}, fmt.Errorf("%w: response exceeds %d bytes", ErrSource, limitBytes)
	}
	var body productsResponse
	if err := json.Unmarshal(data, &body); err != nil {
		return Page{}, fmt.Errorf("%w: decode: %w", ErrSource, err)
	}

	items := make([]Item, 0, len(body.Products))
	for _, p := range body.Products {
		items = append(items, Item{
			ID:     strconv.Itoa(p.ID),
			Name:   p.Title,
			Ref:    p.ImageURL,
			ItemID: p.Item.ID,
			Price:  p.Price,
		})
	}
	compose.Logger().Debug("catalog: page fetched", "offset", offset, "items", len(items))
	return Page{Items: items, HasMore: len(items) == limit}, nil
}
