package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/RehanAthallahAzhar/tokohobby-shippings/internal/entities"
	"github.com/RehanAthallahAzhar/tokohobby-shippings/internal/metrics"
	"github.com/RehanAthallahAzhar/tokohobby-shippings/internal/pkg/redis"
)

const (
	shippingsCacheKey      = "shippings:all"
	shippingCacheKeyPrefix = "shipping:"
	productsCacheKey       = "products:all"
	productCountCacheKey   = "products:count"
	postalCarriersCacheKey = "postal_carriers:all"

	invalidateTimeout = 5 * time.Second
)

// Cache is the subset of the Redis client the repository relies on.
// Every key carries a generation that Invalidate bumps; SetIfGeneration
// refuses to store a value loaded under an older generation.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Generation(ctx context.Context, key string) (int64, error)
	SetIfGeneration(ctx context.Context, key string, generation int64, value []byte, ttl time.Duration) error
	Invalidate(ctx context.Context, keys ...string) error
}

type cachedOrderRepository struct {
	next      OrderRepository
	cache     Cache
	ttl       time.Duration
	lookupTTL time.Duration
	log       *logrus.Logger
}

// NewCachedOrderRepository puts a read-through cache in front of next.
// Lookup data (products, postal carriers) is kept for lookupTTL, shippings
// for ttl. Writes evict the affected shipping keys.
func NewCachedOrderRepository(next OrderRepository, cache Cache, ttl, lookupTTL time.Duration, log *logrus.Logger) OrderRepository {
	return &cachedOrderRepository{
		next:      next,
		cache:     cache,
		ttl:       ttl,
		lookupTTL: lookupTTL,
		log:       log,
	}
}

func shippingCacheKey(id string) string {
	return shippingCacheKeyPrefix + id
}

func (r *cachedOrderRepository) GetShippings(ctx context.Context) ([]entities.Shipping, error) {
	return readThrough(ctx, r, shippingsCacheKey, r.ttl, r.next.GetShippings)
}

func (r *cachedOrderRepository) GetShipping(ctx context.Context, id string) (*entities.Shipping, error) {
	return readThrough(ctx, r, shippingCacheKey(id), r.ttl, func(ctx context.Context) (*entities.Shipping, error) {
		return r.next.GetShipping(ctx, id)
	})
}

func (r *cachedOrderRepository) GetProductCount(ctx context.Context) (int, error) {
	return readThrough(ctx, r, productCountCacheKey, r.ttl, r.next.GetProductCount)
}

func (r *cachedOrderRepository) GetProducts(ctx context.Context) ([]entities.Product, error) {
	return readThrough(ctx, r, productsCacheKey, r.ttl, r.next.GetProducts)
}

func (r *cachedOrderRepository) GetPostalCarriers(ctx context.Context) ([]entities.PostalCarrier, error) {
	return readThrough(ctx, r, postalCarriersCacheKey, r.lookupTTL, r.next.GetPostalCarriers)
}

func (r *cachedOrderRepository) AddShipping(ctx context.Context, shipping *entities.Shipping) error {
	if err := r.next.AddShipping(ctx, shipping); err != nil {
		return err
	}

	r.invalidate(shippingsCacheKey)
	return nil
}

func (r *cachedOrderRepository) UpdateShipping(ctx context.Context, shipping *entities.Shipping) error {
	if err := r.next.UpdateShipping(ctx, shipping); err != nil {
		return err
	}

	r.invalidate(shippingsCacheKey, shippingCacheKey(shipping.ID))
	return nil
}

// invalidate runs before the write returns so the redirect that follows a
// save never reads a stale entry. It is detached from the request context so
// an aborted request still evicts.
func (r *cachedOrderRepository) invalidate(keys ...string) {
	ctx, cancel := context.WithTimeout(context.Background(), invalidateTimeout)
	defer cancel()

	if err := r.cache.Invalidate(ctx, keys...); err != nil {
		r.log.WithField("keys", keys).Warnf("Failed to invalidate shipping caches: %v", err)
	}
}

func readThrough[T any](ctx context.Context, r *cachedOrderRepository, key string, ttl time.Duration, load func(context.Context) (T, error)) (T, error) {
	if val, err := r.cache.Get(ctx, key); err == nil {
		var cached T
		if json.Unmarshal([]byte(val), &cached) == nil {
			metrics.RecordCacheLookup(true)
			return cached, nil
		}
		r.log.WithField("key", key).Warn("Discarding unreadable cache entry")
	}
	metrics.RecordCacheLookup(false)

	// Captured before loading: a write that lands while load runs bumps the
	// generation and the result below is not stored.
	generation, genErr := r.cache.Generation(ctx, key)

	result, err := load(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	if genErr != nil {
		r.log.WithField("key", key).Warnf("Failed to read cache generation: %v", genErr)
		return result, nil
	}

	body, err := json.Marshal(result)
	if err != nil {
		r.log.WithField("key", key).Warnf("Failed to encode cache entry: %v", err)
		return result, nil
	}

	err = r.cache.SetIfGeneration(ctx, key, generation, body, ttl)
	switch {
	case errors.Is(err, redis.ErrStaleGeneration):
		r.log.WithField("key", key).Debug("Skipping cache store, entry was invalidated during load")
	case err != nil:
		r.log.WithField("key", key).Warnf("Failed to store result in cache: %v", err)
	}

	return result, nil
}
