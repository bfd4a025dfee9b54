package washly

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/go-querystring/query"
	"github.com/google/uuid"

	"github.com/washly/washly-go/cache"
	"github.com/washly/washly-go/notify"
	"github.com/washly/washly-go/pkg/config"
	"github.com/washly/washly-go/pkg/logger"
	"github.com/washly/washly-go/pkg/signals"
	"github.com/washly/washly-go/store"
)

// Client is the single choke point for all Washly API traffic. It injects
// the stored bearer token into every request, turns non-2xx responses into
// *APIError, and on an expired session clears stored credentials and raises
// exactly one login-required signal.
type Client struct {
	baseURL    string
	httpClient *http.Client
	store      store.Store
	cache      *cache.Cache
	bus        signals.Bus
	mailer     notify.Mailer
	staleness  config.CacheConfig

	// set once per expired session so a burst of concurrent 401s raises a
	// single login-required signal; reset when a new session is saved
	loginSignalled atomic.Bool

	Auth          *AuthService
	Bookings      *BookingService
	Services      *CatalogService
	Business      *BusinessService
	Notifications *NotificationService
	Profile       *ProfileService
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithStore sets the key-value store holding tokens and drafts.
func WithStore(s store.Store) Option {
	return func(c *Client) { c.store = s }
}

// WithCacheBackend sets the query cache backend.
func WithCacheBackend(b cache.Backend) Option {
	return func(c *Client) { c.cache = cache.New(b) }
}

// WithBus sets the signal bus used for auth and booking signals.
func WithBus(b signals.Bus) Option {
	return func(c *Client) { c.bus = b }
}

// WithMailer sets the booking-confirmation side channel.
func WithMailer(m notify.Mailer) Option {
	return func(c *Client) { c.mailer = m }
}

// New creates a client from cfg. Collaborators default to in-memory
// implementations; override them with options.
func New(cfg *config.Config, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(cfg.API.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.API.RequestTimeout,
		},
		store:     store.NewMemoryStore(),
		cache:     cache.New(cache.NewMemoryBackend()),
		bus:       signals.NewInProcessBus(),
		staleness: cfg.Cache,
	}
	for _, o := range opts {
		o(c)
	}
	if c.mailer == nil {
		if cfg.Email.DevMode {
			c.mailer = notify.NewDevMailer()
		} else {
			c.mailer = notify.NewMailerSend(cfg.Email.MailerSendKey, cfg.Email.FromName, cfg.Email.FromEmail)
		}
	}

	c.Auth = &AuthService{c: c}
	c.Bookings = &BookingService{c: c}
	c.Services = &CatalogService{c: c}
	c.Business = &BusinessService{c: c, autosaveInterval: cfg.API.AutosaveInterval}
	c.Notifications = &NotificationService{c: c, pollInterval: cfg.API.PollInterval}
	c.Profile = &ProfileService{c: c}
	return c
}

// Bus exposes the signal bus so application state can subscribe.
func (c *Client) Bus() signals.Bus {
	return c.bus
}

// Store exposes the backing key-value store.
func (c *Client) Store() store.Store {
	return c.store
}

// do executes a request and decodes the JSON response into result. Non-2xx
// responses come back as *APIError.
func (c *Client) do(ctx context.Context, method, path string, body interface{}, result interface{}, headers map[string]string) error {
	raw, err := c.doRaw(ctx, method, path, body, headers)
	if err != nil {
		return err
	}
	if result != nil && len(raw) > 0 {
		if err := decodeObject(raw, result); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func (c *Client) doRaw(ctx context.Context, method, path string, body interface{}, headers map[string]string) ([]byte, error) {
	url := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-ID", uuid.NewString())
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	if token := c.accessToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	logger.DebugContext(ctx, "API request", "method", method, "url", url)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized && !isAuthPath(path) {
		c.expireSession(ctx)
	}
	if resp.StatusCode >= 400 {
		return nil, parseAPIError(resp.StatusCode, respBody)
	}
	return respBody, nil
}

func (c *Client) get(ctx context.Context, path string, result interface{}) error {
	return c.do(ctx, http.MethodGet, path, nil, result, nil)
}

func (c *Client) getRaw(ctx context.Context, path string) ([]byte, error) {
	return c.doRaw(ctx, http.MethodGet, path, nil, nil)
}

func (c *Client) post(ctx context.Context, path string, body, result interface{}) error {
	return c.do(ctx, http.MethodPost, path, body, result, nil)
}

func (c *Client) put(ctx context.Context, path string, body, result interface{}) error {
	return c.do(ctx, http.MethodPut, path, body, result, nil)
}

func (c *Client) patch(ctx context.Context, path string, body, result interface{}) error {
	return c.do(ctx, http.MethodPatch, path, body, result, nil)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// queryPath appends filter as a query string. Only set fields are encoded;
// a nil or zero filter leaves the path untouched.
func queryPath(path string, filter interface{}) string {
	if filter == nil {
		return path
	}
	values, err := query.Values(filter)
	if err != nil {
		logger.Warn("Failed to encode filter", "error", err)
		return path
	}
	encoded := values.Encode()
	if encoded == "" {
		return path
	}
	return path + "?" + encoded
}

// isAuthPath reports whether path is a credential-exchange endpoint. A 401
// from these is a failed sign-in or refresh, not an expired session, so it
// never clears storage or raises the signal. /auth/profile is deliberately
// not exempt: a 401 there means the stored token is dead.
func isAuthPath(path string) bool {
	switch {
	case strings.HasPrefix(path, "/auth/signin"),
		strings.HasPrefix(path, "/auth/signup"),
		strings.HasPrefix(path, "/auth/register/"),
		strings.HasPrefix(path, "/auth/refresh"),
		strings.HasPrefix(path, "/auth/logout"):
		return true
	}
	return false
}

// expireSession clears stored credentials and raises the login-required
// signal at most once until a new session is saved.
func (c *Client) expireSession(ctx context.Context) {
	c.clearSession()
	if c.loginSignalled.CompareAndSwap(false, true) {
		logger.InfoContext(ctx, "Session expired, login required")
		if err := c.bus.Publish(ctx, signals.LoginRequired, signals.LoginRequiredEvent{
			Reason: signals.ReasonSessionExpired,
		}); err != nil {
			logger.ErrorContext(ctx, "Failed to publish login required signal", "error", err)
		}
	}
}

// invalidate drops cache entries by prefix, logging rather than failing:
// a cold cache only costs a refetch.
func (c *Client) invalidate(ctx context.Context, prefixes ...string) {
	if err := c.cache.Invalidate(ctx, prefixes...); err != nil {
		logger.WarnContext(ctx, "Cache invalidation failed", "error", err, "prefixes", prefixes)
	}
}

// cachedList loads a cached list or fetches and caches it. Fetch failures
// and shape mismatches both degrade to an empty list; list views must not
// crash on a single bad read.
func cachedList[T any](ctx context.Context, c *Client, key, path string, ttl time.Duration) []T {
	var items []T
	if ok, err := c.cache.GetJSON(ctx, key, &items); err == nil && ok {
		return items
	}

	raw, err := c.getRaw(ctx, path)
	if err != nil {
		logger.ErrorContext(ctx, "List fetch failed, defaulting to empty", "path", path, "error", err)
		return []T{}
	}
	items = decodeList[T](raw)

	if err := c.cache.SetJSON(ctx, key, items, ttl); err != nil {
		logger.WarnContext(ctx, "Failed to cache list", "key", key, "error", err)
	}
	return items
}
