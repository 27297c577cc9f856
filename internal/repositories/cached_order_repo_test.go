package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/RehanAthallahAzhar/tokohobby-shippings/internal/entities"
	apperrors "github.com/RehanAthallahAzhar/tokohobby-shippings/internal/pkg/errors"
	"github.com/RehanAthallahAzhar/tokohobby-shippings/internal/pkg/redis"
	"github.com/RehanAthallahAzhar/tokohobby-shippings/internal/repositories/mocks"
)

var errCacheMiss = errors.New("miss")

type memoryCache struct {
	mu      sync.Mutex
	entries map[string]string
	ttls    map[string]time.Duration
	gens    map[string]int64
	getErr  error
	deleted []string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{
		entries: map[string]string{},
		ttls:    map[string]time.Duration{},
		gens:    map[string]int64{},
	}
}

func (c *memoryCache) Get(ctx context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return "", c.getErr
	}
	val, ok := c.entries[key]
	if !ok {
		return "", errCacheMiss
	}
	return val, nil
}

func (c *memoryCache) Generation(ctx context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gens[key], nil
}

func (c *memoryCache) SetIfGeneration(ctx context.Context, key string, generation int64, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gens[key] != generation {
		return redis.ErrStaleGeneration
	}
	c.entries[key] = string(value)
	c.ttls[key] = ttl
	return nil
}

func (c *memoryCache) Invalidate(ctx context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range keys {
		c.gens[key]++
		delete(c.entries, key)
		c.deleted = append(c.deleted, key)
	}
	return nil
}

func (c *memoryCache) entry(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	val, ok := c.entries[key]
	return val, ok
}

// slowReadRepo holds its first GetShipping after reading the row until
// release is closed, leaving room for a write to land mid-read.
type slowReadRepo struct {
	OrderRepository

	mu      sync.Mutex
	company string
	reads   int
	started chan struct{}
	release chan struct{}
}

func (r *slowReadRepo) GetShipping(ctx context.Context, id string) (*entities.Shipping, error) {
	r.mu.Lock()
	shipping := &entities.Shipping{ID: id, CompanyName: r.company}
	r.reads++
	first := r.reads == 1
	r.mu.Unlock()

	if first {
		close(r.started)
		<-r.release
	}
	return shipping, nil
}

func (r *slowReadRepo) UpdateShipping(ctx context.Context, shipping *entities.Shipping) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.company = shipping.CompanyName
	return nil
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestCachedGetPostalCarriersReadsThrough(t *testing.T) {
	next := new(mocks.OrderRepository)
	cache := newMemoryCache()
	repo := NewCachedOrderRepository(next, cache, time.Minute, time.Hour, quietLogger())

	carriers := []entities.PostalCarrier{{ID: 1, Name: "DHL"}, {ID: 2, Name: "FedEx"}}
	next.On("GetPostalCarriers", mock.Anything).Return(carriers, nil).Once()

	first, err := repo.GetPostalCarriers(context.Background())
	require.NoError(t, err)
	second, err := repo.GetPostalCarriers(context.Background())
	require.NoError(t, err)

	assert.Equal(t, carriers, first)
	assert.Equal(t, carriers, second)
	assert.Equal(t, time.Hour, cache.ttls[postalCarriersCacheKey])
	next.AssertExpectations(t)
}

func TestCachedGetShippingServesFromCache(t *testing.T) {
	next := new(mocks.OrderRepository)
	cache := newMemoryCache()
	repo := NewCachedOrderRepository(next, cache, time.Minute, time.Hour, quietLogger())

	body, err := json.Marshal(&entities.Shipping{ID: "ship-1", CompanyName: "Cached Co"})
	require.NoError(t, err)
	cache.entries[shippingCacheKey("ship-1")] = string(body)

	shipping, err := repo.GetShipping(context.Background(), "ship-1")

	require.NoError(t, err)
	assert.Equal(t, "Cached Co", shipping.CompanyName)
	next.AssertNotCalled(t, "GetShipping", mock.Anything, mock.Anything)
}

func TestCachedGetShippingDoesNotCacheNotFound(t *testing.T) {
	next := new(mocks.OrderRepository)
	cache := newMemoryCache()
	repo := NewCachedOrderRepository(next, cache, time.Minute, time.Hour, quietLogger())

	next.On("GetShipping", mock.Anything, "missing").Return(nil, apperrors.ErrNotFound).Twice()

	_, err := repo.GetShipping(context.Background(), "missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	_, err = repo.GetShipping(context.Background(), "missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	assert.NotContains(t, cache.entries, shippingCacheKey("missing"))
	next.AssertExpectations(t)
}

func TestCachedReadFallsBackWhenCacheFails(t *testing.T) {
	next := new(mocks.OrderRepository)
	cache := newMemoryCache()
	cache.getErr = errors.New("connection refused")
	repo := NewCachedOrderRepository(next, cache, time.Minute, time.Hour, quietLogger())

	next.On("GetProductCount", mock.Anything).Return(12, nil).Once()

	count, err := repo.GetProductCount(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 12, count)
	next.AssertExpectations(t)
}

func TestCachedReadIgnoresCorruptEntry(t *testing.T) {
	next := new(mocks.OrderRepository)
	cache := newMemoryCache()
	cache.entries[productsCacheKey] = "{not json"
	repo := NewCachedOrderRepository(next, cache, time.Minute, time.Hour, quietLogger())

	products := []entities.Product{{ID: "p-1", Name: "Gundam RX-78"}}
	next.On("GetProducts", mock.Anything).Return(products, nil).Once()

	got, err := repo.GetProducts(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "Gundam RX-78", got[0].Name)
	next.AssertExpectations(t)
}

func TestCachedUpdateShippingInvalidates(t *testing.T) {
	next := new(mocks.OrderRepository)
	cache := newMemoryCache()
	cache.entries[shippingsCacheKey] = "[]"
	cache.entries[shippingCacheKey("ship-1")] = "{}"
	repo := NewCachedOrderRepository(next, cache, time.Minute, time.Hour, quietLogger())

	shipping := &entities.Shipping{ID: "ship-1"}
	next.On("UpdateShipping", mock.Anything, shipping).Return(nil).Once()

	require.NoError(t, repo.UpdateShipping(context.Background(), shipping))

	assert.NotContains(t, cache.entries, shippingsCacheKey)
	assert.NotContains(t, cache.entries, shippingCacheKey("ship-1"))
}

func TestCachedAddShippingKeepsCacheOnFailure(t *testing.T) {
	next := new(mocks.OrderRepository)
	cache := newMemoryCache()
	cache.entries[shippingsCacheKey] = "[]"
	repo := NewCachedOrderRepository(next, cache, time.Minute, time.Hour, quietLogger())

	shipping := &entities.Shipping{}
	next.On("AddShipping", mock.Anything, shipping).Return(errors.New("constraint violation")).Once()

	err := repo.AddShipping(context.Background(), shipping)

	assert.Error(t, err)
	assert.Contains(t, cache.entries, shippingsCacheKey)
	assert.Empty(t, cache.deleted)
}

func TestCachedGetShippingDoesNotStoreReadOverlappingUpdate(t *testing.T) {
	next := &slowReadRepo{
		company: "old",
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	cache := newMemoryCache()
	repo := NewCachedOrderRepository(next, cache, time.Minute, time.Hour, quietLogger())

	type result struct {
		shipping *entities.Shipping
		err      error
	}
	done := make(chan result, 1)
	go func() {
		shipping, err := repo.GetShipping(context.Background(), "ship-1")
		done <- result{shipping, err}
	}()

	<-next.started
	require.NoError(t, repo.UpdateShipping(context.Background(), &entities.Shipping{ID: "ship-1", CompanyName: "new"}))
	close(next.release)

	slow := <-done
	require.NoError(t, slow.err)
	assert.Equal(t, "old", slow.shipping.CompanyName)
	_, cached := cache.entry(shippingCacheKey("ship-1"))
	assert.False(t, cached)

	fresh, err := repo.GetShipping(context.Background(), "ship-1")

	require.NoError(t, err)
	assert.Equal(t, "new", fresh.CompanyName)
	body, ok := cache.entry(shippingCacheKey("ship-1"))
	require.True(t, ok)
	assert.Contains(t, body, `"new"`)
}
