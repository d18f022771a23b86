// ABOUTME: HTTP client for the Tally benefits-portal proxy API
// ABOUTME: Carries session cookies across calls and classifies every failure

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/net/publicsuffix"
	"golang.org/x/sync/singleflight"
)

const (
	// DefaultBaseURL is the hosted portal proxy
	DefaultBaseURL = "https://tally.heyitsmejosh.com"

	// DefaultRequestTimeout bounds ordinary API calls
	DefaultRequestTimeout = 30 * time.Second

	// DefaultRefreshTimeout bounds /api/check, which drives a headless browser on the server
	DefaultRefreshTimeout = 2 * time.Minute

	defaultUserAgent = "tally-cli"
	maxBodyBytes     = 10 << 20
)

// Client is the API client for the Tally portal proxy.
// The only state it keeps is the cookie jar holding the portal session.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	requestTimeout time.Duration
	refreshTimeout time.Duration
	userAgent      string
	logger         *slog.Logger
	checks         singleflight.Group
}

// Option configures a Client
type Option func(*Client)

// WithRequestTimeout sets the timeout for login, logout, latest and submit calls.
// Zero disables the client-side timeout.
func WithRequestTimeout(d time.Duration) Option {
	return func(c *Client) { c.requestTimeout = d }
}

// WithRefreshTimeout sets the timeout for the re-scrape trigger.
// Zero leaves it to the transport defaults.
func WithRefreshTimeout(d time.Duration) Option {
	return func(c *Client) { c.refreshTimeout = d }
}

// WithHTTPClient uses a copy of hc for requests. When hc has no cookie jar
// the copy gets its own, so hc itself is never modified.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			copied := *hc
			c.httpClient = &copied
		}
	}
}

// WithLogger sets the logger used for request tracing
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithUserAgent overrides the User-Agent header
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// New creates a new API client with the given base URL
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:        strings.TrimRight(baseURL, "/"),
		httpClient:     &http.Client{},
		requestTimeout: DefaultRequestTimeout,
		refreshTimeout: DefaultRefreshTimeout,
		userAgent:      defaultUserAgent,
		logger:         slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient.Jar == nil {
		// cookiejar.New always returns a nil error
		jar, _ := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
		c.httpClient.Jar = jar
	}
	return c
}

// BaseURL returns the portal origin this client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Login calls POST /api/login and reports the portal's success flag.
// Rejected credentials are (false, nil), not an error.
func (c *Client) Login(ctx context.Context, username, password string) (bool, error) {
	body, err := json.Marshal(loginRequest{Username: username, Password: password})
	if err != nil {
		return false, fmt.Errorf("failed to marshal credentials: %w", err)
	}

	data, err := c.do(ctx, http.MethodPost, "/api/login", body, c.requestTimeout)
	if err != nil {
		return false, err
	}
	return decodeSuccess(data)
}

// Logout calls POST /api/logout. Only the status code matters.
func (c *Client) Logout(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodPost, "/api/logout", nil, c.requestTimeout)
	return err
}

// FetchLatest calls GET /api/latest
func (c *Client) FetchLatest(ctx context.Context) (*Dashboard, error) {
	data, err := c.do(ctx, http.MethodGet, "/api/latest", nil, c.requestTimeout)
	if err != nil {
		return nil, err
	}

	var dash Dashboard
	if err := json.Unmarshal(data, &dash); err != nil {
		return nil, &DecodingError{Err: err}
	}
	return &dash, nil
}

// SubmitReport calls POST /api/submit-report and reports the success flag
func (c *Client) SubmitReport(ctx context.Context) (bool, error) {
	data, err := c.do(ctx, http.MethodPost, "/api/submit-report", nil, c.requestTimeout)
	if err != nil {
		return false, err
	}
	return decodeSuccess(data)
}

// RefreshData triggers a server-side re-scrape via GET /api/check and then
// fetches the updated snapshot. The check response body is ignored; a failed
// check aborts before the fetch. Concurrent callers share one check request,
// which runs detached from any single caller so one caller giving up does not
// fail the others.
func (c *Client) RefreshData(ctx context.Context) (*Dashboard, error) {
	if ctx.Err() != nil {
		return nil, contextError(ctx)
	}

	detached := context.WithoutCancel(ctx)
	ch := c.checks.DoChan("check", func() (interface{}, error) {
		_, err := c.do(detached, http.MethodGet, "/api/check", nil, c.refreshTimeout)
		return nil, err
	})

	select {
	case <-ctx.Done():
		return nil, contextError(ctx)
	case res := <-ch:
		if res.Shared {
			c.logger.Debug("re-scrape shared with concurrent caller")
		}
		if res.Err != nil {
			return nil, res.Err
		}
	}
	return c.FetchLatest(ctx)
}

// do performs a single request and returns the body of a 2xx response
func (c *Client) do(ctx context.Context, method, path string, body []byte, timeout time.Duration) ([]byte, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, &NetworkError{Err: fmt.Errorf("failed to create request: %w", err)}
	}

	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	if method == http.MethodPost {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("portal request failed",
			"method", method, "path", path, "request_id", requestID, "error", err)
		return nil, c.handleRequestError(ctx, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("portal request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
		"request_id", requestID,
	)

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &ServerError{Code: resp.StatusCode}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &NetworkError{Err: fmt.Errorf("failed to read response: %w", err)}
	}
	return data, nil
}

// handleRequestError converts transport failures into the error taxonomy
func (c *Client) handleRequestError(ctx context.Context, err error) error {
	// net/http exposes no type for a garbled status line or header block
	if strings.Contains(err.Error(), "malformed HTTP") {
		return ErrInvalidResponse
	}
	if ctx.Err() != nil {
		return contextError(ctx)
	}
	return &NetworkError{Err: fmt.Errorf("cannot connect to %s: %w", c.baseURL, err)}
}

// contextError describes why ctx ended
func contextError(ctx context.Context) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return &NetworkError{Err: fmt.Errorf("request timed out: %w", ctx.Err())}
	}
	return &NetworkError{Err: fmt.Errorf("request canceled: %w", ctx.Err())}
}

// decodeSuccess reads the "success" flag from a JSON body. A missing flag or
// a non-object body counts as false; unparseable JSON is a DecodingError.
func decodeSuccess(data []byte) (bool, error) {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return false, &DecodingError{Err: err}
	}
	obj, ok := raw.(map[string]interface{})
	if !ok {
		return false, nil
	}
	success, _ := obj["success"].(bool)
	return success, nil
}
