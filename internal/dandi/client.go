// Package dandi provides a rate-limited HTTP client for the DANDI Archive
// REST API, plus the error taxonomy the rest of the server reports in.
package dandi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	// BaseURL is the public DANDI Archive API root.
	BaseURL = "https://api.dandiarchive.org/api"

	// DefaultTimeout bounds every archive call.
	DefaultTimeout = 30 * time.Second

	// RateLimit is the client-side request budget per second.
	RateLimit = 10.0
)

// Client is a rate-limited HTTP client for the DANDI Archive API.
type Client struct {
	httpClient *http.Client
	noRedirect *http.Client
	limiter    *rate.Limiter
	apiKey     string
	baseURL    string
	logger     *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithAPIKey sets the archive API key for authenticated requests.
func WithAPIKey(key string) ClientOption {
	return func(c *Client) {
		c.apiKey = key
	}
}

// WithBaseURL sets the archive API root.
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithRateLimit sets the client-side requests-per-second budget.
// A non-positive value disables rate limiting.
func WithRateLimit(rps float64) ClientOption {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// WithLogger sets the logger for request tracing.
func WithLogger(l *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = l
	}
}

// NewClient creates a DANDI Archive API client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(RateLimit), 1),
		baseURL:    BaseURL,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}

	// Asset downloads resolve to a redirect that must be captured, not
	// followed: the Location header is the result.
	nr := *c.httpClient
	nr.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}
	c.noRedirect = &nr

	return c
}

// Request describes one archive call.
type Request struct {
	Method string
	Path   string     // archive path, beginning with a slash
	Query  url.Values // optional query parameters
	Body   any        // JSON-marshaled when non-nil

	// Endpoint overrides the client's base URL for this call only.
	Endpoint string

	// NoRedirect stops redirect following so the Location header can be read.
	NoRedirect bool
}

// Response is a raw archive response.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// Do issues one archive call and returns the raw response. Any status is a
// valid outcome here; only transport problems produce an error.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, Errorf(CategoryUpstreamFailure, "rate limiter: %v", err)
		}
	}

	u, err := c.requestURL(req)
	if err != nil {
		return nil, err
	}

	var body io.Reader
	if req.Body != nil {
		payload, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request body: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, u, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "token "+c.apiKey)
	}

	start := time.Now()
	resp, err := c.pick(req).Do(httpReq)
	if err != nil {
		return nil, Errorf(CategoryUpstreamFailure, "archive request failed: %v", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, Errorf(CategoryUpstreamFailure, "reading archive response: %v", err)
	}

	c.logger.Debug("archive call",
		"method", req.Method,
		"url", u,
		"status", resp.StatusCode,
		"duration", time.Since(start))

	return &Response{
		Status: resp.StatusCode,
		Header: resp.Header,
		Body:   data,
	}, nil
}

// Call issues one archive call and returns the response body, mapping any
// non-success status to a categorized error.
func (c *Client) Call(ctx context.Context, req *Request) ([]byte, error) {
	resp, err := c.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	if resp.Status < 200 || resp.Status > 299 {
		return nil, ResponseError(resp.Status, resp.Body)
	}
	return resp.Body, nil
}

func (c *Client) requestURL(req *Request) (string, error) {
	base := c.baseURL
	if req.Endpoint != "" {
		base = strings.TrimRight(req.Endpoint, "/")
	}
	u, err := url.Parse(base + req.Path)
	if err != nil {
		return "", Errorf(CategoryInvalidArguments, "invalid endpoint %q: %v", base, err)
	}
	if len(req.Query) > 0 {
		u.RawQuery = req.Query.Encode()
	}
	return u.String(), nil
}

func (c *Client) pick(req *Request) *http.Client {
	if req.NoRedirect {
		return c.noRedirect
	}
	return c.httpClient
}
