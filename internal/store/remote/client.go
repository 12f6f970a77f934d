// Package remote is the HTTP client for a hosted todo record store.
package remote

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

	"go.uber.org/zap"

	"github.com/idilsaglam/tada-cloud/internal/model"
	"github.com/idilsaglam/tada-cloud/internal/store"
)

// APIError is a non-2xx response from the record store.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("record store: HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("record store: HTTP %d: %s", e.StatusCode, e.Message)
}

// TokenFunc returns the bearer token to send; "" sends none.
type TokenFunc func() (string, error)

type Client struct {
	base  *url.URL
	http  *http.Client
	token TokenFunc
	log   *zap.Logger

	timeout    time.Duration
	hasTimeout bool
}

var _ store.Store = (*Client)(nil)

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the per-request timeout; zero disables it. It applies to
// a copy of the HTTP client, whatever the option order.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout, c.hasTimeout = d, true }
}

func WithToken(fn TokenFunc) Option {
	return func(c *Client) { c.token = fn }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New returns a client for the API rooted at baseURL, e.g.
// "https://todos.example.com/api".
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url %q: scheme must be http or https", baseURL)
	}
	c := &Client{
		base:  u,
		http:  &http.Client{},
		token: func() (string, error) { return "", nil },
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.hasTimeout {
		hc := *c.http
		hc.Timeout = c.timeout
		c.http = &hc
	}
	return c, nil
}

type listResponse struct {
	Items []model.Todo `json:"items"`
}

func (c *Client) List(ctx context.Context) ([]model.Todo, error) {
	var out listResponse
	if err := c.do(ctx, http.MethodGet, "todos", nil, &out); err != nil {
		return nil, err
	}
	if out.Items == nil {
		out.Items = []model.Todo{}
	}
	return out.Items, nil
}

func (c *Client) Create(ctx context.Context, in model.NewTodo) (model.Todo, error) {
	var td model.Todo
	if err := c.do(ctx, http.MethodPost, "todos", in, &td); err != nil {
		return model.Todo{}, err
	}
	return td, nil
}

func (c *Client) Update(ctx context.Context, in model.StatusUpdate) (model.Todo, error) {
	var td model.Todo
	body := map[string]model.Status{"status": in.Status}
	if err := c.do(ctx, http.MethodPatch, "todos/"+url.PathEscape(in.ID), body, &td); err != nil {
		return model.Todo{}, err
	}
	return td, nil
}

func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "todos/"+url.PathEscape(id), nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("json marshal: %w", err)
		}
		body = bytes.NewReader(b)
	}

	endpoint := c.base.JoinPath(path)
	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), body)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	tok, err := c.token()
	if err != nil {
		return fmt.Errorf("token: %w", err)
	}
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, endpoint.Path, err)
	}
	defer resp.Body.Close()
	c.log.Debug("record store call",
		zap.String("method", method),
		zap.String("path", endpoint.Path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("took", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", endpoint.Path, err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	var payload struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(b, &payload) == nil && payload.Error != "" {
		apiErr.Message = payload.Error
	} else {
		apiErr.Message = strings.TrimSpace(string(b))
	}
	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %w", store.ErrNotFound, apiErr)
	}
	return apiErr
}

// IsUnauthorized reports whether err is a 401 or 403 from the record store.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden
}
