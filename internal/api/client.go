// Package api is the HTTP client for the bookshop REST backend. Every
// endpoint answers with the {success, data, message} envelope.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const DefaultBaseURL = "http://localhost:8080/api"

type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	auth       Authorizer
	limiter    *rate.Limiter
	maxRetries int
	backoff    time.Duration
	metrics    *Metrics

	Books      *BookService
	Categories *CategoryService
	Customers  *CustomerService
	Orders     *OrderService
	Users      *UserService
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option { return func(c *Client) { c.httpClient = hc } }

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

func WithAuthorizer(a Authorizer) Option { return func(c *Client) { c.auth = a } }

func WithUserAgent(ua string) Option { return func(c *Client) { c.userAgent = ua } }

// WithRateLimit caps outgoing requests per second. Zero disables the limiter.
func WithRateLimit(rps int) Option {
	return func(c *Client) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Every(time.Second/time.Duration(rps)), 1)
		}
	}
}

// WithRetries retries idempotent GETs on 429, 5xx and transport errors.
func WithRetries(n int, backoff time.Duration) Option {
	return func(c *Client) {
		c.maxRetries = n
		if backoff > 0 {
			c.backoff = backoff
		}
	}
}

func WithMetrics(m *Metrics) Option { return func(c *Client) { c.metrics = m } }

func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  "schoolbooks-web/1.0",
		backoff:    time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.Books = &BookService{c: c}
	c.Categories = &CategoryService{c: c}
	c.Customers = &CustomerService{c: c}
	c.Orders = &OrderService{c: c}
	c.Users = &UserService{c: c}
	return c
}

func (c *Client) BaseURL() string { return c.baseURL }

type envelope struct {
	Success   bool            `json:"success"`
	Data      json.RawMessage `json:"data"`
	Message   string          `json:"message"`
	Timestamp string          `json:"timestamp,omitempty"`
}

// call performs one request and decodes the envelope's data into T.
func call[T any](ctx context.Context, c *Client, method, path string, query url.Values, body any) (T, error) {
	var out T
	err := c.do(ctx, method, path, query, body, &out)
	return out, err
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	var payload []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: encode %s %s: %w", method, path, err)
		}
		payload = b
	}

	attempts := 1
	if method == http.MethodGet {
		attempts += c.maxRetries
	}
	var lastErr error
	for i := 0; i < attempts; i++ {
		if i > 0 {
			// Backoff: base, 2*base, 4*base...
			wait := c.backoff * time.Duration(1<<uint(i-1))
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		retry, err := c.once(ctx, method, path, u, payload, out)
		if err == nil {
			return nil
		}
		lastErr = err
		if !retry {
			return err
		}
	}
	if attempts > 1 {
		return fmt.Errorf("api: after %d retries: %w", c.maxRetries, lastErr)
	}
	return lastErr
}

func (c *Client) once(ctx context.Context, method, path, u string, payload []byte, out any) (retry bool, err error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return false, err
		}
	}
	var rdr io.Reader
	if payload != nil {
		rdr = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, rdr)
	if err != nil {
		return false, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if c.auth != nil {
		if err := c.auth.Authorize(ctx, req); err != nil {
			return false, fmt.Errorf("api: authorize: %w", err)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.observe(method, path, 0, time.Since(start))
		return ctx.Err() == nil, fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	c.metrics.observe(method, path, resp.StatusCode, time.Since(start))

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return true, fmt.Errorf("api: read %s %s: %w", method, path, err)
	}

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		e := &Error{Status: resp.StatusCode, Method: method, Path: path}
		if decodeErr == nil {
			e.Message = env.Message
		}
		retry := resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500
		return retry, e
	}
	if resp.StatusCode == http.StatusNoContent || len(bytes.TrimSpace(raw)) == 0 {
		return false, nil
	}
	if decodeErr != nil {
		return false, fmt.Errorf("api: decode %s %s: %w", method, path, decodeErr)
	}
	if !env.Success {
		return false, &Error{Status: resp.StatusCode, Method: method, Path: path, Message: env.Message}
	}
	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return false, nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return false, fmt.Errorf("api: decode data %s %s: %w", method, path, err)
	}
	return false, nil
}

func idPath(prefix string, id int64) string { return fmt.Sprintf("%s/%d", prefix, id) }

func seg(s string) string { return url.PathEscape(s) }
