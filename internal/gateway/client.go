// Package gateway talks to the remote chat collection over HTTP.
//
// The Client is stateless apart from its configuration: each call issues exactly one
// request, never retries and never caches. Failures are logged on the gateway category,
// handed to an optional FailureRecorder and returned as *NetworkError or *DecodeError.
package gateway

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

	"chatlist/internal/logging"
	"chatlist/internal/types"

	"golang.org/x/time/rate"
)

// Operation names used in errors, logs and metrics.
const (
	OpList   = "list"
	OpCreate = "create"
	OpDelete = "delete"
	OpUpdate = "update"
)

// maxErrorBody caps how much of a failed response body ends up in an error.
const maxErrorBody = 512

// Client issues CRUD requests against {baseURL}/users.
type Client struct {
	baseURL  string
	client   *http.Client
	limiter  *rate.Limiter
	metrics  *Metrics
	recorder FailureRecorder
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.client = hc
		}
	}
}

// WithTimeout sets a per-request timeout. Zero keeps requests unbounded.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d <= 0 {
			return
		}
		hc := *c.client
		hc.Timeout = d
		c.client = &hc
	}
}

// WithRateLimit paces requests through a token bucket. Callers wait for a token;
// nothing is dropped. rps <= 0 disables pacing.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithMetrics records request counts and latencies on m.
func WithMetrics(m *Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// WithRecorder hands every failure to r before it is returned.
func WithRecorder(r FailureRecorder) Option {
	return func(c *Client) { c.recorder = r }
}

// NewClient creates a gateway for the collection rooted at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the collection root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// =============================================================================
// OPERATIONS
// =============================================================================

// List fetches the whole collection.
func (c *Client) List(ctx context.Context) ([]types.Chat, error) {
	var chats []types.Chat
	if err := c.do(ctx, OpList, "", http.MethodGet, c.usersURL(""), nil, &chats); err != nil {
		return nil, err
	}
	if chats == nil {
		chats = []types.Chat{}
	}
	logging.GatewayDebug("list returned %d chats", len(chats))
	return chats, nil
}

// Create asks the server to create a chat called name and returns the server's record.
func (c *Client) Create(ctx context.Context, name string) (types.Chat, error) {
	var chat types.Chat
	body := nameBody{Name: name}
	if err := c.do(ctx, OpCreate, name, http.MethodPost, c.usersURL(""), body, &chat); err != nil {
		return types.Chat{}, err
	}
	logging.Gateway("created chat id=%s name=%q", chat.ID, chat.Name)
	return chat, nil
}

// Delete removes the chat with the given id. The response body is ignored.
func (c *Client) Delete(ctx context.Context, id string) (bool, error) {
	if err := c.do(ctx, OpDelete, id, http.MethodDelete, c.usersURL(id), nil, nil); err != nil {
		return false, err
	}
	logging.Gateway("deleted chat id=%s", id)
	return true, nil
}

// Update renames the chat with the given id and returns the server's record.
func (c *Client) Update(ctx context.Context, id, newName string) (types.Chat, error) {
	var chat types.Chat
	body := nameBody{Name: newName}
	if err := c.do(ctx, OpUpdate, id, http.MethodPut, c.usersURL(id), body, &chat); err != nil {
		return types.Chat{}, err
	}
	logging.Gateway("renamed chat id=%s name=%q", id, chat.Name)
	return chat, nil
}

// =============================================================================
// TRANSPORT
// =============================================================================

type nameBody struct {
	Name string `json:"name"`
}

func (c *Client) usersURL(id string) string {
	if id == "" {
		return c.baseURL + "/users"
	}
	return c.baseURL + "/users/" + url.PathEscape(id)
}

func (c *Client) do(ctx context.Context, op, target, method, endpoint string, in, out interface{}) error {
	start := time.Now()
	err := c.roundTrip(ctx, op, method, endpoint, in, out)
	elapsed := time.Since(start)
	c.metrics.observe(op, elapsed, err)
	if err != nil {
		c.fail(ctx, op, target, err)
		return err
	}
	logging.GatewayDebug("%s %s ok in %v", method, endpoint, elapsed)
	return nil
}

func (c *Client) roundTrip(ctx context.Context, op, method, endpoint string, in, out interface{}) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return &NetworkError{Op: op, Err: err}
		}
	}

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return &NetworkError{Op: op, Err: fmt.Errorf("failed to marshal request: %w", err)}
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return &NetworkError{Op: op, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		ne := &NetworkError{Op: op, Status: resp.StatusCode}
		if msg := strings.TrimSpace(string(bodyBytes)); msg != "" {
			ne.Err = fmt.Errorf("%s", msg)
		}
		return ne
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &DecodeError{Op: op, Err: err}
	}
	return nil
}

func (c *Client) fail(ctx context.Context, op, target string, err error) {
	logging.GatewayError("%s failed (target=%q): %v", op, target, err)
	if c.recorder == nil {
		return
	}
	f := Failure{
		Op:      op,
		Target:  target,
		Status:  StatusOf(err),
		Message: err.Error(),
		At:      time.Now().UTC(),
	}
	if rerr := c.recorder.RecordFailure(context.WithoutCancel(ctx), f); rerr != nil {
		logging.Get(logging.CategoryGateway).Warn("failed to record %s failure: %v", op, rerr)
	}
}
