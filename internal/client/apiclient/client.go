package apiclient

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
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/dmitrijs2005/moodjournal/internal/logging"
)

const (
	DefaultTimeout  = 15 * time.Second
	RequestIDHeader = "X-Request-ID"

	maxErrorBody = 64 << 10
)

// TokenStore is the read-and-clear view of the token slot the client needs.
type TokenStore interface {
	Get(ctx context.Context) (string, bool)
	Clear(ctx context.Context)
}

// UnauthorizedHandler is notified, synchronously, every time a response
// carries 401. Implementations must tolerate repeated and concurrent calls.
type UnauthorizedHandler interface {
	HandleUnauthorized(ctx context.Context)
}

type Config struct {
	BaseURL string
	Timeout time.Duration
	// HTTPClient overrides the transport; Timeout is ignored when set.
	HTTPClient *http.Client
}

type Client struct {
	base   *url.URL
	http   *http.Client
	tokens TokenStore
	log    logging.Logger

	mu             sync.RWMutex
	onUnauthorized UnauthorizedHandler
}

func New(cfg Config, tokens TokenStore, log logging.Logger) (*Client, error) {
	base, err := url.Parse(strings.TrimSpace(cfg.BaseURL))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", cfg.BaseURL)
	}
	if tokens == nil {
		return nil, errors.New("token store is required")
	}

	hc := cfg.HTTPClient
	if hc == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		hc = &http.Client{Timeout: timeout}
	}

	return &Client{base: base, http: hc, tokens: tokens, log: log}, nil
}

// OnUnauthorized registers the handler run on every 401.
func (c *Client) OnUnauthorized(h UnauthorizedHandler) {
	c.mu.Lock()
	c.onUnauthorized = h
	c.mu.Unlock()
}

func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.Do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodDelete, path, nil, nil, out)
}

// Do sends one request to base URL + path. body, when non-nil, is sent as
// JSON; a 2xx response is decoded into out when out is non-nil.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var payload io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s body: %w", method, path, err)
		}
		payload = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.resolve(path, query), payload)
	if err != nil {
		return fmt.Errorf("create %s %s request: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	reqID := c.authorize(ctx, req)
	log := c.log.With("request_id", reqID, "method", method, "path", path)

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn(ctx, "request failed", "error", err)
		return fmt.Errorf("%w: %s %s: %w", ErrUnavailable, method, path, err)
	}
	defer resp.Body.Close()

	log.Debug(ctx, "response", "status", resp.StatusCode, "elapsed", time.Since(started))

	if err := c.inspect(ctx, log, req, resp); err != nil {
		return err
	}
	return decode(resp, out)
}

// authorize is the request interceptor. It returns the request id it set.
func (c *Client) authorize(ctx context.Context, req *http.Request) string {
	reqID := uuid.NewString()
	req.Header.Set(RequestIDHeader, reqID)

	if token, ok := c.tokens.Get(ctx); ok {
		(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}).SetAuthHeader(req)
	}
	return reqID
}

// inspect is the response interceptor. A 401 forces logout before the error
// is handed back to the caller.
func (c *Client) inspect(ctx context.Context, log logging.Logger, req *http.Request, resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	apiErr := &APIError{
		Method:     req.Method,
		Path:       strings.TrimPrefix(req.URL.Path, strings.TrimRight(c.base.Path, "/")),
		StatusCode: resp.StatusCode,
		Detail:     parseDetail(raw),
	}

	if resp.StatusCode == http.StatusUnauthorized {
		log.Warn(ctx, "authorization rejected, forcing logout", "detail", apiErr.Detail)
		c.forceLogout(ctx)
	}
	return apiErr
}

func (c *Client) forceLogout(ctx context.Context) {
	// Teardown must finish even if the caller's context is already done.
	ctx = context.WithoutCancel(ctx)

	c.tokens.Clear(ctx)

	c.mu.RLock()
	h := c.onUnauthorized
	c.mu.RUnlock()
	if h != nil {
		h.HandleUnauthorized(ctx)
	}
}

func (c *Client) resolve(path string, query url.Values) string {
	u := *c.base
	u.Path = strings.TrimRight(u.Path, "/") + "/" + strings.TrimLeft(path, "/")
	u.RawPath = ""
	u.RawQuery = ""
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

func decode(resp *http.Response, out any) error {
	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// Ping probes GET <origin>/health, which lives outside the API prefix and
// needs no token.
func (c *Client) Ping(ctx context.Context) error {
	u := url.URL{Scheme: c.base.Scheme, Host: c.base.Host, Path: "/health"}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("create ping request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	var health struct {
		Status string `json:"status"`
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: health status %d", ErrUnavailable, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil || health.Status != "ok" {
		return fmt.Errorf("%w: unhealthy response", ErrUnavailable)
	}
	return nil
}
