// Package client talks to the starfield HTTP API. It implements the scene
// store's backend and the read-only exploration calls, guarding every request
// with a circuit breaker.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/papapumpkin/starfield/internal/galaxy"
	"github.com/papapumpkin/starfield/internal/session"
)

// ErrUnavailable is returned while the circuit breaker refuses requests.
var ErrUnavailable = errors.New("client: backend unavailable")

// APIError is a non-2xx response. Detail carries the server's message.
type APIError struct {
	Status int
	Detail string
}

// Error implements error.
func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("api: %d %s", e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("api: %d %s", e.Status, e.Detail)
}

// Unwrap maps the status to the matching domain sentinel, if any.
func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusNotFound:
		return galaxy.ErrNotFound
	case http.StatusConflict:
		return galaxy.ErrDuplicateLink
	case http.StatusForbidden:
		return galaxy.ErrReadOnly
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return galaxy.ErrInvalidIdea
	case http.StatusUnauthorized:
		return session.ErrInvalidToken
	}
	return nil
}

// Breaker configures the circuit breaker. Zero values take the defaults.
type Breaker struct {
	MaxRequests  uint32
	Interval     time.Duration
	Timeout      time.Duration
	FailureRatio float64
	MinRequests  uint32
}

// DefaultBreaker returns the breaker settings used when none are given.
func DefaultBreaker() Breaker {
	return Breaker{
		MaxRequests:  5,
		Interval:     30 * time.Second,
		Timeout:      60 * time.Second,
		FailureRatio: 0.8,
		MinRequests:  5,
	}
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithBreaker sets the circuit breaker configuration.
func WithBreaker(b Breaker) Option {
	return func(c *Client) { c.breaker = b }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.log = l }
}

// Client is an API client bound to one bearer token.
type Client struct {
	base    string
	token   string
	http    *http.Client
	breaker Breaker
	cb      *gobreaker.CircuitBreaker
	log     *zap.Logger
}

// New returns a client for the API at baseURL (scheme and host, optionally a
// path prefix; "/api" is appended).
func New(baseURL, token string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("client: parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("client: base url %q must be http or https", baseURL)
	}
	c := &Client{
		base:    strings.TrimRight(u.String(), "/") + "/api",
		token:   token,
		http:    &http.Client{Timeout: 10 * time.Second},
		breaker: DefaultBreaker(),
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.cb = gobreaker.NewCircuitBreaker(c.settings())
	return c, nil
}

func (c *Client) settings() gobreaker.Settings {
	b := c.breaker
	def := DefaultBreaker()
	if b.MinRequests == 0 {
		b.MinRequests = def.MinRequests
	}
	if b.FailureRatio <= 0 {
		b.FailureRatio = def.FailureRatio
	}
	return gobreaker.Settings{
		Name:        "starfield-api",
		MaxRequests: b.MaxRequests,
		Interval:    b.Interval,
		Timeout:     b.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < b.MinRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= b.FailureRatio
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.log.Warn("circuit breaker state changed",
				zap.String("breaker", name),
				zap.Stringer("from", from),
				zap.Stringer("to", to))
		},
		// Client errors are the caller's fault, not the backend's.
		IsSuccessful: func(err error) bool {
			var apiErr *APIError
			if errors.As(err, &apiErr) {
				return apiErr.Status < 500
			}
			return err == nil || errors.Is(err, context.Canceled)
		},
	}
}

// do sends one request through the breaker and decodes a JSON response into
// out when out is non-nil.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("client: encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return fmt.Errorf("client: build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	_, err = c.cb.Execute(func() (interface{}, error) {
		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		c.log.Debug("api request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.Duration("elapsed", time.Since(start)))

		if resp.StatusCode >= 400 {
			return nil, decodeError(resp)
		}
		if out == nil || resp.StatusCode == http.StatusNoContent {
			return nil, nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return nil, fmt.Errorf("decode response: %w", err)
		}
		return nil, nil
	})
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return fmt.Errorf("client: %s %s: %w", method, path, err)
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if json.Unmarshal(data, &payload) == nil && len(payload.Detail) > 0 {
		var s string
		if json.Unmarshal(payload.Detail, &s) == nil {
			apiErr.Detail = s
		} else {
			apiErr.Detail = string(payload.Detail)
		}
	} else {
		apiErr.Detail = strings.TrimSpace(string(data))
	}
	return apiErr
}

func escape(id string) string { return url.PathEscape(id) }
