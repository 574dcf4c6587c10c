package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/vfpar/registro/internal/registry"
)

const (
	// DefaultURL is the companies endpoint of a local registro-fixture.
	DefaultURL       = "http://127.0.0.1:8787/companies"
	defaultUserAgent = "registro/dev"
	requestTimeout   = 10 * time.Second
)

// StatusError reports a non-2xx response from the data source.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("api %s returned status %d", e.URL, e.StatusCode)
}

// HTTPOptions tunes an HTTP source.
type HTTPOptions struct {
	Timeout   time.Duration
	UserAgent string
	Client    *http.Client
}

// HTTP reads the collection from a JSON endpoint returning an array of
// records.
type HTTP struct {
	endpoint  *url.URL
	http      *http.Client
	userAgent string
}

// NewHTTP builds an HTTP source for rawURL. A bare host:port is accepted and
// an empty value falls back to DefaultURL.
func NewHTTP(rawURL string, opts HTTPOptions) (*HTTP, error) {
	endpoint, err := parseEndpoint(rawURL)
	if err != nil {
		return nil, err
	}
	client := opts.Client
	if client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = requestTimeout
		}
		client = &http.Client{Timeout: timeout}
	}
	ua := strings.TrimSpace(opts.UserAgent)
	if ua == "" {
		ua = defaultUserAgent
	}
	return &HTTP{endpoint: endpoint, http: client, userAgent: ua}, nil
}

// URL returns the endpoint the source reads from.
func (c *HTTP) URL() string {
	return c.endpoint.String()
}

// Fetch retrieves the whole collection.
func (c *HTTP) Fetch(ctx context.Context) ([]registry.Company, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{URL: c.endpoint.Path, StatusCode: resp.StatusCode}
	}
	var companies []registry.Company
	if err := json.NewDecoder(resp.Body).Decode(&companies); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return companies, nil
}

// Close is a no-op; the underlying client owns no resources worth releasing.
func (c *HTTP) Close() error { return nil }

func parseEndpoint(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = DefaultURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse source url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse source url %q: missing host", raw)
	}
	u.Fragment = ""
	return u, nil
}
