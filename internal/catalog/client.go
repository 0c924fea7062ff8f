package catalog

import (
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

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Config controls the upstream endpoint and cache behaviour.
type Config struct {
	BaseURL     string        `mapstructure:"base_url"`
	AllowedHost string        `mapstructure:"allowed_host"`
	Timeout     time.Duration `mapstructure:"timeout"`
	CacheTTL    time.Duration `mapstructure:"cache_ttl"`
	Redis       RedisConfig   `mapstructure:"redis"`

	// WarmSchedule is a cron expression; empty disables warming.
	WarmSchedule string `mapstructure:"warm_schedule"`
}

// DefaultConfig points at the public fake store API.
func DefaultConfig() Config {
	return Config{
		BaseURL:     "https://fakestoreapi.com",
		AllowedHost: "fakestoreapi.com",
		Timeout:     10 * time.Second,
		CacheTTL:    5 * time.Minute,
	}
}

// MaxLimit is the largest page LimitedProducts accepts.
const MaxLimit = 20

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the client logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithClock overrides time.Now for cache freshness checks.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// WithCache replaces the in-process cache, e.g. with a RedisCache.
func WithCache(cache Cache) Option {
	return func(c *Client) { c.cache = cache }
}

// Client reads the product catalog. It is safe for concurrent use; all
// instances are independent, including their caches.
type Client struct {
	cfg        Config
	httpClient *http.Client
	cache      Cache
	group      singleflight.Group
	logger     *zap.Logger
	now        func() time.Time
}

// NewClient creates a client. Zero fields in cfg take DefaultConfig values.
func NewClient(cfg Config, opts ...Option) *Client {
	def := DefaultConfig()
	if cfg.BaseURL == "" {
		cfg.BaseURL = def.BaseURL
	}
	if cfg.AllowedHost == "" {
		cfg.AllowedHost = def.AllowedHost
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = def.CacheTTL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	c := &Client{
		cfg:        cfg,
		httpClient: &http.Client{},
		logger:     zap.NewNop(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.cache == nil {
		c.cache = newMemoryCache(cfg.CacheTTL, func() time.Time { return c.now() })
	}
	return c
}

// Products returns the full catalog.
func (c *Client) Products(ctx context.Context) ([]Product, error) {
	return fetchJSON[[]Product](ctx, c, "/products")
}

// LimitedProducts returns the first limit products; limit must be in [1, MaxLimit].
func (c *Client) LimitedProducts(ctx context.Context, limit int) ([]Product, error) {
	if limit < 1 || limit > MaxLimit {
		return nil, invalidArgument("invalid limit %d: must be between 1 and %d", limit, MaxLimit)
	}
	return fetchJSON[[]Product](ctx, c, "/products?limit="+strconv.Itoa(limit))
}

// Product returns a single product; id must be positive.
func (c *Client) Product(ctx context.Context, id int) (Product, error) {
	if id <= 0 {
		return Product{}, invalidArgument("invalid product id %d", id)
	}
	return fetchJSON[Product](ctx, c, "/products/"+strconv.Itoa(id))
}

// ProductsByCategory returns the products in category. The name is trimmed
// and path-escaped before use.
func (c *Client) ProductsByCategory(ctx context.Context, category string) ([]Product, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, invalidArgument("invalid category: must not be empty")
	}
	return fetchJSON[[]Product](ctx, c, "/products/category/"+url.PathEscape(category))
}

// Categories returns the category names.
func (c *Client) Categories(ctx context.Context) ([]string, error) {
	return fetchJSON[[]string](ctx, c, "/products/categories")
}

// ClearCache drops every cached response.
func (c *Client) ClearCache(ctx context.Context) error {
	if err := c.cache.Clear(ctx); err != nil {
		return fmt.Errorf("clear catalog cache: %w", err)
	}
	c.logger.Debug("catalog cache cleared")
	return nil
}

// warmPaths are the responses the storefront home view needs first.
var warmPaths = []string{"/products", "/products/categories"}

// Warm refetches the home view responses and stores them regardless of
// their current freshness. It stops at the first failure.
func (c *Client) Warm(ctx context.Context) error {
	for _, path := range warmPaths {
		target, err := c.resolve(path)
		if err != nil {
			return err
		}
		raw, err := c.get(ctx, target)
		if err != nil {
			upstreamErrors.WithLabelValues(Code(err)).Inc()
			return err
		}
		if !json.Valid(raw) {
			return &Error{Code: ErrCodeTransport, Message: "decode " + path}
		}
		c.cache.Set(ctx, path, raw)
	}
	c.logger.Debug("catalog cache warmed", zap.Int("paths", len(warmPaths)))
	return nil
}

// fetchJSON resolves path against the base URL, serves it from the cache
// when fresh and otherwise fetches and decodes it. Concurrent misses for the
// same path share one upstream request.
func fetchJSON[T any](ctx context.Context, c *Client, path string) (T, error) {
	var zero T

	target, err := c.resolve(path)
	if err != nil {
		upstreamErrors.WithLabelValues(ErrCodeInvalidDestination).Inc()
		return zero, err
	}

	if raw, ok := c.cache.Get(ctx, path); ok {
		var out T
		if err := json.Unmarshal(raw, &out); err == nil {
			cacheHits.Inc()
			return out, nil
		}
	}
	cacheMisses.Inc()

	// The shared fetch outlives any single caller; get still bounds it with
	// the client timeout.
	ch := c.group.DoChan(path, func() (any, error) {
		return c.get(context.WithoutCancel(ctx), target)
	})
	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		err := abandoned(ctx.Err())
		upstreamErrors.WithLabelValues(Code(err)).Inc()
		return zero, err
	}
	if res.Err != nil {
		upstreamErrors.WithLabelValues(Code(res.Err)).Inc()
		return zero, res.Err
	}
	raw := res.Val.([]byte)

	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		upstreamErrors.WithLabelValues(ErrCodeTransport).Inc()
		return zero, &Error{Code: ErrCodeTransport, Message: "decode " + path, Err: err}
	}
	c.cache.Set(ctx, path, raw)
	return out, nil
}

// abandoned maps a caller's own context error onto the catalog codes.
func abandoned(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &Error{Code: ErrCodeTimeout, Message: "request timeout", Err: err}
	}
	return &Error{Code: ErrCodeTransport, Message: "request abandoned", Err: err}
}

// resolve builds the absolute URL and checks it against the allow-list.
func (c *Client) resolve(path string) (string, error) {
	full := c.cfg.BaseURL + path
	u, err := url.Parse(full)
	if err != nil || u.Scheme != "https" || u.Hostname() != c.cfg.AllowedHost {
		return "", &Error{
			Code:    ErrCodeInvalidDestination,
			Message: fmt.Sprintf("invalid destination %q", full),
			Err:     err,
		}
	}
	return full, nil
}

func (c *Client) get(ctx context.Context, target string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, http.NoBody)
	if err != nil {
		return nil, &Error{Code: ErrCodeTransport, Message: "build request", Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	upstreamDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			c.logger.Warn("catalog request timed out",
				zap.String("url", target), zap.Duration("timeout", c.cfg.Timeout))
			return nil, &Error{Code: ErrCodeTimeout, Message: "request timeout", Err: err}
		}
		c.logger.Warn("catalog request failed", zap.String("url", target), zap.Error(err))
		return nil, &Error{Code: ErrCodeTransport, Message: "request failed", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &Error{
			Code:    ErrCodeHTTP,
			Message: fmt.Sprintf("upstream status %d", resp.StatusCode),
			Status:  resp.StatusCode,
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, &Error{Code: ErrCodeTimeout, Message: "request timeout", Err: err}
		}
		return nil, &Error{Code: ErrCodeTransport, Message: "read response", Err: err}
	}
	return body, nil
}
