package catalog

import (
	"context"
	"net/http"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// mapCache records Set calls so tests can observe what a client stores.
type mapCache struct {
	mu   sync.Mutex
	data map[string][]byte
	sets int
}

func (m *mapCache) Get(_ context.Context, key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.data[key]
	return d, ok
}

func (m *mapCache) Set(_ context.Context, key string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		m.data = make(map[string][]byte)
	}
	m.data[key] = data
	m.sets++
}

func (m *mapCache) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = nil
	return nil
}

func TestWithCache_ServesFromCustomCache(t *testing.T) {
	cache := &mapCache{}
	cache.Set(context.Background(), "/products/categories", []byte(`["books"]`))
	c, rec := newFakeClient(t, http.StatusOK, `["electronics"]`, WithCache(cache))

	cats, err := c.Categories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"books"}, cats)
	assert.Zero(t, rec.count())

	_, err = c.Products(context.Background())
	require.Error(t, err, "categories body does not decode as products")
	assert.Equal(t, 1, rec.count())
}

func TestWarm_RefreshesFreshEntries(t *testing.T) {
	c, rec := newFakeClient(t, http.StatusOK, productsJSON)
	ctx := context.Background()

	_, err := c.Products(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, rec.count())

	require.NoError(t, c.Warm(ctx))
	assert.Equal(t, 1+len(warmPaths), rec.count(), "warm always goes upstream")

	_, err = c.Products(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1+len(warmPaths), rec.count())
}

func TestWarm_StopsOnUpstreamError(t *testing.T) {
	c, rec := newFakeClient(t, http.StatusServiceUnavailable, `{}`)

	err := c.Warm(context.Background())
	require.Error(t, err)
	assert.True(t, IsHTTPError(err))
	assert.Equal(t, 1, rec.count())
	assert.Zero(t, c.cache.(*memoryCache).len())
}

func TestWarm_RejectsInvalidJSON(t *testing.T) {
	c, _ := newFakeClient(t, http.StatusOK, `{not json`)

	err := c.Warm(context.Background())
	assert.True(t, IsTransportError(err))
	assert.Zero(t, c.cache.(*memoryCache).len())
}

func TestNewWarmer_InvalidSchedule(t *testing.T) {
	c, _ := newFakeClient(t, http.StatusOK, "[]")

	_, err := NewWarmer(c, "every now and then", zaptest.NewLogger(t))
	assert.Error(t, err)
}

func TestWarmer_RunsOnSchedule(t *testing.T) {
	c, rec := newFakeClient(t, http.StatusOK, "[]")

	w, err := NewWarmer(c, "@every 1s", zaptest.NewLogger(t))
	require.NoError(t, err)
	w.Start()
	defer w.Stop()

	assert.Eventually(t, func() bool {
		return rec.count() >= len(warmPaths)
	}, 3*time.Second, 50*time.Millisecond)
}

// Set SF_TEST_REDIS_ADDR to run against a live server.
func setupRedisCache(t *testing.T, ttl time.Duration) *RedisCache {
	t.Helper()
	addr := os.Getenv("SF_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("SF_TEST_REDIS_ADDR not set")
	}
	rc, err := NewRedisCache(context.Background(), RedisConfig{Addr: addr}, ttl, zaptest.NewLogger(t))
	if err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	t.Cleanup(func() { _ = rc.Close() })
	return rc
}

func TestRedisCache_RoundTrip(t *testing.T) {
	rc := setupRedisCache(t, time.Minute)
	ctx := context.Background()
	require.NoError(t, rc.Clear(ctx))

	_, ok := rc.Get(ctx, "/products")
	assert.False(t, ok)

	rc.Set(ctx, "/products", []byte(`[]`))
	got, ok := rc.Get(ctx, "/products")
	require.True(t, ok)
	assert.Equal(t, `[]`, string(got))

	require.NoError(t, rc.Clear(ctx))
	_, ok = rc.Get(ctx, "/products")
	assert.False(t, ok)
}

func TestRedisCache_Expires(t *testing.T) {
	rc := setupRedisCache(t, time.Second)
	ctx := context.Background()

	rc.Set(ctx, "/products/categories", []byte(`["a"]`))
	assert.Eventually(t, func() bool {
		_, ok := rc.Get(ctx, "/products/categories")
		return !ok
	}, 3*time.Second, 100*time.Millisecond)
}

func TestNewRedisCache_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := NewRedisCache(ctx, RedisConfig{Addr: "127.0.0.1:1"}, time.Minute, nil)
	assert.Error(t, err)
}
