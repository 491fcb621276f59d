// Package catalog is the storefront's REST client. Reads go through the
// response cache; admin writes invalidate it.
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"

	cache "github.com/krisalay/storefront-cache"
	"github.com/krisalay/storefront-cache/invalidate"
	"github.com/krisalay/storefront-cache/types"
)

const defaultTimeout = 10 * time.Second

// HTTPError captures an unexpected status code and the response body.
type HTTPError struct {
	StatusCode int
	Body       []byte
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("unexpected status code: %d, body: %s", e.StatusCode, string(e.Body))
}

// TTLs sets how long each kind of read stays cached.
type TTLs struct {
	Categories time.Duration
	Products   time.Duration
}

// DefaultTTLs: categories change rarely, inventory changes more often.
func DefaultTTLs() TTLs {
	return TTLs{Categories: 5 * time.Minute, Products: 3 * time.Minute}
}

// Options configures a Client.
type Options struct {
	BaseURL string

	// Token is sent as a bearer token on every request when set.
	Token string

	Timeout time.Duration
	TTLs    TTLs

	// HTTPClient is the base client; its transport is wrapped for auth.
	HTTPClient *http.Client
}

// Client talks to the storefront REST API.
type Client struct {
	baseURL     string
	http        *http.Client
	cache       *cache.Store
	invalidator *invalidate.Invalidator
	ttls        TTLs

	// after times the backoff between token checks.
	after func(time.Duration) <-chan time.Time
}

var _ types.Loader = (*Client)(nil)

// NewClient builds a Client. invalidator may be nil when nothing is cached.
func NewClient(opts Options, store *cache.Store, invalidator *invalidate.Invalidator) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if base == "" {
		return nil, fmt.Errorf("base url is required")
	}
	if store == nil {
		return nil, fmt.Errorf("cache store is required")
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ttls := opts.TTLs
	defaults := DefaultTTLs()
	if ttls.Categories <= 0 {
		ttls.Categories = defaults.Categories
	}
	if ttls.Products <= 0 {
		ttls.Products = defaults.Products
	}

	baseClient := opts.HTTPClient
	if baseClient == nil {
		baseClient = &http.Client{}
	}
	hc := &http.Client{Transport: baseClient.Transport}
	if opts.Token != "" {
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, baseClient)
		hc = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: opts.Token,
			TokenType:   "Bearer",
		}))
	}
	hc.Timeout = timeout

	return &Client{
		baseURL:     base,
		http:        hc,
		cache:       store,
		invalidator: invalidator,
		ttls:        ttls,
		after:       time.After,
	}, nil
}

// Load fetches a resource for the cache on a miss.
func (c *Client) Load(ctx context.Context, resource string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, resource, nil)
}

// do performs one request and returns the body of a 2xx response.
func (c *Client) do(ctx context.Context, method, resource string, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+resource, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &HTTPError{StatusCode: resp.StatusCode, Body: data}
	}
	return data, nil
}

// doJSON performs a request and decodes a non-empty response into out.
func (c *Client) doJSON(ctx context.Context, method, resource string, body, out any) error {
	data, err := c.do(ctx, method, resource, body)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s response: %w", resource, err)
	}
	return nil
}
