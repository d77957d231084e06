package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DefaultBaseURL points at the public demo catalog.
const DefaultBaseURL = "https://fakestoreapi.com"

const defaultTimeout = 8 * time.Second

// ErrNotFound is returned when the catalog has no product for an identifier.
// The client never fabricates a synthetic product for unknown IDs.
var ErrNotFound = errors.New("catalog: product not found")

// Client issues read-only calls against the remote catalog API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient constructs a catalog client. An empty baseURL falls back to the
// public catalog endpoint.
func NewClient(baseURL string) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		http: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

// Categories lists the category slugs known to the catalog.
func (c *Client) Categories(ctx context.Context) ([]string, error) {
	var list []string
	if err := c.getJSON(ctx, &list, "products", "categories"); err != nil {
		return nil, err
	}
	return list, nil
}

// Products fetches the catalog, scoped to one category unless the selection
// is CategoryAll (or empty).
func (c *Client) Products(ctx context.Context, category string) ([]Product, error) {
	category = strings.TrimSpace(category)
	var (
		list []Product
		err  error
	)
	if category == "" || category == CategoryAll {
		err = c.getJSON(ctx, &list, "products")
	} else {
		err = c.getJSON(ctx, &list, "products", "category", category)
	}
	if err != nil {
		return nil, err
	}
	return list, nil
}

// Product fetches a single product by identifier. Unknown identifiers yield
// ErrNotFound; the upstream demo API signals them with a 404 or an empty body.
func (c *Client) Product(ctx context.Context, id int) (Product, error) {
	var p Product
	if err := c.getJSON(ctx, &p, "products", strconv.Itoa(id)); err != nil {
		return Product{}, err
	}
	if p.ID == 0 {
		return Product{}, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return p, nil
}

func (c *Client) getJSON(ctx context.Context, out any, parts ...string) error {
	endpoint, err := url.JoinPath(c.baseURL, parts...)
	if err != nil {
		return fmt.Errorf("catalog: build url: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("catalog: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("catalog: %s: %w", strings.Join(parts, "/"), err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s", ErrNotFound, strings.Join(parts, "/"))
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("catalog: %s: status %d: %s", strings.Join(parts, "/"), resp.StatusCode, drainError(resp.Body))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("catalog: decode %s: %w", strings.Join(parts, "/"), err)
	}
	return nil
}

func drainError(r io.Reader) string {
	if r == nil {
		return ""
	}
	b, _ := io.ReadAll(io.LimitReader(r, 256))
	return strings.TrimSpace(string(b))
}
