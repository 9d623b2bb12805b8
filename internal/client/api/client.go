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
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/washstore/internal/logging"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultRefreshPath = "/auth/token/refresh/"
	RequestIDHeader    = "X-Request-Id"
)

// TokenStore is the durable home of the session credentials.
// An empty string means the token is absent.
type TokenStore interface {
	AccessToken(ctx context.Context) (string, error)
	RefreshToken(ctx context.Context) (string, error)
	SetAccessToken(ctx context.Context, token string) error
	SetRefreshToken(ctx context.Context, token string) error
	SetTokens(ctx context.Context, access, refresh string) error
	ClearTokens(ctx context.Context) error
}

// State is the session state derived from the stored tokens.
type State string

const (
	StateUnauthenticated State = "unauthenticated"
	StateAuthenticated   State = "authenticated"
	StateRefreshing      State = "refreshing"
)

type Client struct {
	baseURL          string
	httpClient       *http.Client
	store            TokenStore
	log              logging.Logger
	timeout          time.Duration
	refreshPath      string
	onSessionExpired func(ctx context.Context)

	refreshGroup singleflight.Group
	refreshing   atomic.Int32
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithLogger(l logging.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithTimeout sets the default per-attempt timeout. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

func WithRefreshPath(path string) Option {
	return func(c *Client) { c.refreshPath = path }
}

// WithSessionExpiredHandler registers the callback fired after a terminal
// auth failure, once the tokens have been cleared.
func WithSessionExpiredHandler(fn func(ctx context.Context)) Option {
	return func(c *Client) { c.onSessionExpired = fn }
}

// New constructs a Client for baseURL (e.g. "https://api.example.org/api")
// that keeps its tokens in store.
func New(baseURL string, store TokenStore, opts ...Option) *Client {
	c := &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		httpClient:  &http.Client{},
		store:       store,
		log:         logging.Nop(),
		refreshPath: DefaultRefreshPath,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) SetAccessToken(ctx context.Context, token string) error {
	return c.store.SetAccessToken(ctx, token)
}

func (c *Client) SetRefreshToken(ctx context.Context, token string) error {
	return c.store.SetRefreshToken(ctx, token)
}

// SetTokens stores both tokens, typically after login or registration.
func (c *Client) SetTokens(ctx context.Context, access, refresh string) error {
	return c.store.SetTokens(ctx, access, refresh)
}

// ClearTokens removes both tokens (logout).
func (c *Client) ClearTokens(ctx context.Context) error {
	return c.store.ClearTokens(ctx)
}

// AccessToken returns the stored access token, "" when absent.
func (c *Client) AccessToken(ctx context.Context) (string, error) {
	return c.store.AccessToken(ctx)
}

// State reports the session state. Absence of either token means
// StateUnauthenticated.
func (c *Client) State(ctx context.Context) State {
	if c.refreshing.Load() > 0 {
		return StateRefreshing
	}
	access, err := c.store.AccessToken(ctx)
	if err != nil || access == "" {
		return StateUnauthenticated
	}
	refresh, err := c.store.RefreshToken(ctx)
	if err != nil || refresh == "" {
		return StateUnauthenticated
	}
	return StateAuthenticated
}

type response struct {
	status int
	body   []byte
}

func (r *response) successful() bool {
	return r.status >= 200 && r.status < 300
}

// execute runs the request pipeline. It makes at most two attempts: the
// original one and, after a 401, one retry with a fresh access token.
func (c *Client) execute(ctx context.Context, req *request) ([]byte, *ErrorInfo) {
	for {
		token, err := c.store.AccessToken(ctx)
		if err != nil {
			return nil, &ErrorInfo{Message: fmt.Sprintf("session storage unavailable: %v", err)}
		}

		resp, err := c.send(ctx, req, token)
		if err != nil {
			return nil, transportError(err)
		}
		if resp.successful() {
			return resp.body, nil
		}
		if resp.status != http.StatusUnauthorized {
			return nil, httpError(resp)
		}

		if req.retried {
			c.log.Warn(ctx, "request rejected after token refresh", "method", req.method, "path", req.path)
			c.expireSession(ctx)
			return nil, httpError(resp)
		}
		req.retried = true

		if err := c.reauthenticate(ctx, token); err != nil {
			if ctx.Err() != nil {
				return nil, transportError(ctx.Err())
			}
			c.log.Warn(ctx, "session cannot be renewed", "path", req.path, "error", err)
			c.expireSession(ctx)
			return nil, httpError(resp)
		}
	}
}

// reauthenticate makes a fresh access token available in the store.
// stale is the token the rejected request was sent with; if the store
// already holds a different one, another caller has refreshed meanwhile.
// A caller whose ctx ends stops waiting; the refresh itself carries on,
// bounded by the client timeout.
func (c *Client) reauthenticate(ctx context.Context, stale string) error {
	refreshToken, err := c.store.RefreshToken(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRefreshFailed, err)
	}
	if refreshToken == "" {
		return ErrNoRefreshToken
	}

	flightCtx := context.WithoutCancel(ctx)
	ch := c.refreshGroup.DoChan(refreshToken, func() (any, error) {
		current, err := c.store.AccessToken(flightCtx)
		if err == nil && current != "" && current != stale {
			return nil, nil
		}
		return nil, c.refresh(flightCtx, refreshToken)
	})

	select {
	case <-ctx.Done():
		return ctx.Err()
	case res := <-ch:
		return res.Err
	}
}

type refreshRequest struct {
	Refresh string `json:"refresh"`
}

type refreshResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh,omitempty"`
}

func (c *Client) refresh(ctx context.Context, refreshToken string) error {
	c.refreshing.Add(1)
	defer c.refreshing.Add(-1)

	req := newRequest(http.MethodPost, c.refreshPath, refreshRequest{Refresh: refreshToken}, nil)
	resp, err := c.send(ctx, req, "")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRefreshFailed, err)
	}
	if !resp.successful() {
		return fmt.Errorf("%w: status %d", ErrRefreshFailed, resp.status)
	}

	var tokens refreshResponse
	if err := json.Unmarshal(resp.body, &tokens); err != nil {
		return fmt.Errorf("%w: %v", ErrRefreshFailed, err)
	}
	if tokens.Access == "" {
		return fmt.Errorf("%w: empty access token", ErrRefreshFailed)
	}

	// Rotated refresh tokens are kept when the backend sends one.
	if tokens.Refresh != "" {
		err = c.store.SetTokens(ctx, tokens.Access, tokens.Refresh)
	} else {
		err = c.store.SetAccessToken(ctx, tokens.Access)
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRefreshFailed, err)
	}

	c.log.Info(ctx, "access token refreshed", "rotated", tokens.Refresh != "")
	return nil
}

// expireSession performs the terminal auth failure side effects.
func (c *Client) expireSession(ctx context.Context) {
	if err := c.store.ClearTokens(ctx); err != nil {
		c.log.Error(ctx, "failed to clear tokens", "error", err)
	}
	if c.onSessionExpired != nil {
		c.onSessionExpired(ctx)
	}
}

func (c *Client) send(ctx context.Context, req *request, token string) (*response, error) {
	timeout := c.timeout
	if req.timeout > 0 {
		timeout = req.timeout
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	var body io.Reader
	if req.body != nil {
		b, err := json.Marshal(req.body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(b)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, c.url(req.path, req.query), body)
	if err != nil {
		return nil, err
	}
	for k, vs := range req.header {
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}
	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if httpReq.Header.Get(RequestIDHeader) == "" {
		httpReq.Header.Set(RequestIDHeader, uuid.NewString())
	}
	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	started := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	c.log.Debug(ctx, "api request",
		"method", req.method,
		"path", req.path,
		"status", resp.StatusCode,
		"request_id", httpReq.Header.Get(RequestIDHeader),
		"elapsed", time.Since(started),
	)

	return &response{status: resp.StatusCode, body: b}, nil
}

func (c *Client) url(path string, query url.Values) string {
	u := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		sep := "?"
		if strings.Contains(u, "?") {
			sep = "&"
		}
		u += sep + query.Encode()
	}
	return u
}
