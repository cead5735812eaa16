// Package api is the typed REST surface of the cafe backend. Every endpoint
// wrapper decodes the backend's uniform response envelope, distinguishes
// backend-reported failures from transport failures, and attaches the
// session credential where the endpoint requires one.
package api

import (
	"bytes"
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

	"github.com/google/uuid"
)

// ErrBackendUnavailable wraps transport-level failures: the request never
// produced a decodable backend response.
var ErrBackendUnavailable = errors.New("cafe backend unavailable")

// APIError is a failure the backend itself reported, carrying the HTTP
// status and the backend's human-readable message.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend rejected request: status %d", e.StatusCode)
	}
	return fmt.Sprintf("backend rejected request: status %d: %s", e.StatusCode, e.Message)
}

// TokenSource yields the current session credential. An empty string means
// no valid session; authenticated endpoints then go out without an
// Authorization header and let the backend reject them.
type TokenSource interface {
	CurrentToken() string
}

// ObserveFunc is invoked once per completed request with the route label,
// the wall-clock duration, and the outcome. Used to feed metrics without
// the api package depending on a metrics implementation.
type ObserveFunc func(route string, d time.Duration, err error)

// Config collects the client's construction parameters.
type Config struct {
	// BaseURL is the backend origin, e.g. "https://cafe.example.com".
	// Required. A trailing slash is tolerated.
	BaseURL string

	// HTTPClient overrides the transport. Defaults to a client with a
	// 15 second timeout.
	HTTPClient *http.Client

	// Tokens supplies the session credential for authenticated endpoints.
	// May be nil for a client that only reads public listings.
	Tokens TokenSource

	// UserAgent overrides the User-Agent header. Optional.
	UserAgent string

	// Observe, when set, is called after every request.
	Observe ObserveFunc
}

// Client defines a public type used by cafeclient APIs.
//
// Client is an immutable handle; all methods are safe for concurrent use.
type Client struct {
	baseURL   string
	http      *http.Client
	tokens    TokenSource
	userAgent string
	observe   ObserveFunc
}

// NewClient validates cfg and builds a [Client].
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("api: BaseURL is required")
	}
	base, err := url.Parse(cfg.BaseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("api: invalid BaseURL %q", cfg.BaseURL)
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		http:      httpClient,
		tokens:    cfg.Tokens,
		userAgent: cfg.UserAgent,
		observe:   cfg.Observe,
	}, nil
}

// envelope is the backend's uniform response wrapper.
type envelope[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

// request carries one call's wire parameters through the shared send path.
type request struct {
	method string
	path   string
	query  url.Values
	body   any

	// route is the stable label handed to the Observe hook; it never
	// contains path parameters.
	route string

	// authed attaches the Authorization header when a token is available.
	authed bool

	// tokenOverride sends this token instead of consulting the TokenSource.
	// Used by the session-replay check, which validates a candidate token
	// before the session store trusts it.
	tokenOverride string
}

// call sends req and decodes the envelope's data field into out (which may
// be nil for endpoints whose data is irrelevant). Backend-reported failures
// come back as *APIError; everything below that wraps ErrBackendUnavailable.
func (c *Client) call(ctx context.Context, req request, out any) error {
	start := time.Now()
	err := c.send(ctx, req, out)
	if c.observe != nil {
		c.observe(req.route, time.Since(start), err)
	}
	return err
}

func (c *Client) send(ctx context.Context, req request, out any) error {
	u := c.baseURL + req.path
	if len(req.query) > 0 {
		u += "?" + req.query.Encode()
	}

	var body io.Reader
	if req.body != nil {
		raw, err := json.Marshal(req.body)
		if err != nil {
			return fmt.Errorf("api: encode request body: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, u, body)
	if err != nil {
		return fmt.Errorf("api: build request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-ID", uuid.NewString())
	if req.body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if c.userAgent != "" {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}
	if tok := c.requestToken(req); tok != "" {
		httpReq.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}

	var env envelope[json.RawMessage]
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &env); err != nil {
			if resp.StatusCode >= 400 {
				return &APIError{StatusCode: resp.StatusCode}
			}
			return fmt.Errorf("%w: undecodable response: %v", ErrBackendUnavailable, err)
		}
	}

	if resp.StatusCode >= 400 || (len(raw) > 0 && !env.Success) {
		status := resp.StatusCode
		if status < 400 {
			status = http.StatusBadRequest
		}
		return &APIError{StatusCode: status, Message: env.Message}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("%w: undecodable response data: %v", ErrBackendUnavailable, err)
		}
	}
	return nil
}

func (c *Client) requestToken(req request) string {
	if req.tokenOverride != "" {
		return req.tokenOverride
	}
	if !req.authed || c.tokens == nil {
		return ""
	}
	return c.tokens.CurrentToken()
}

func pageQuery(page, limit int) url.Values {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))
	return q
}
