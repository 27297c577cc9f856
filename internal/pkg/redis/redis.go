package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"github.com/RehanAthallahAzhar/tokohobby-shippings/internal/configs"
)

var (
	// ErrCacheMiss is returned by Get when the key does not exist.
	ErrCacheMiss = errors.New("cache miss")
	// ErrStaleGeneration means the key was invalidated after its value was read.
	ErrStaleGeneration = errors.New("cache generation changed")
)

// generationTTL outlives any entry TTL. An expired counter reads as zero,
// which still mismatches every generation captured before it expired.
const generationTTL = 24 * time.Hour

func generationKey(key string) string {
	return "gen:" + key
}

type RedisClient struct {
	Client *redis.Client
	log    *logrus.Logger
}

func NewRedisClient(cfg *configs.RedisConfig, log *logrus.Logger) (*RedisClient, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.WithError(err).Warn("Redis is unreachable, continuing without a warm connection")
	}

	return &RedisClient{Client: rdb, log: log}, nil
}

func (rc *RedisClient) Get(ctx context.Context, key string) (string, error) {
	val, err := rc.Client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrCacheMiss
	}
	return val, err
}

// Generation returns the invalidation counter of key, zero if it was never
// invalidated.
func (rc *RedisClient) Generation(ctx context.Context, key string) (int64, error) {
	gen, err := rc.Client.Get(ctx, generationKey(key)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// SetIfGeneration stores value only while the generation of key is still
// generation. A concurrent Invalidate makes it return ErrStaleGeneration
// without writing.
func (rc *RedisClient) SetIfGeneration(ctx context.Context, key string, generation int64, value []byte, ttl time.Duration) error {
	genKey := generationKey(key)

	err := rc.Client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, genKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != generation {
			return ErrStaleGeneration
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, value, ttl)
			return nil
		})
		return err
	}, genKey)

	if errors.Is(err, redis.TxFailedErr) {
		return ErrStaleGeneration
	}
	return err
}

// Invalidate bumps the generation of every key and deletes them in one
// transaction.
func (rc *RedisClient) Invalidate(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	_, err := rc.Client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, key := range keys {
			pipe.Incr(ctx, generationKey(key))
			pipe.Expire(ctx, generationKey(key), generationTTL)
		}
		pipe.Del(ctx, keys...)
		return nil
	})
	return err
}

func (rc *RedisClient) Ping(ctx context.Context) error {
	return rc.Client.Ping(ctx).Err()
}

func (rc *RedisClient) Close() {
	if rc.Client != nil {
		if err := rc.Client.Close(); err != nil {
			rc.log.Warnf("Failed to close Redis connection: %v", err)
		}
	}
}

// PushCapped prepends value to the list at key and keeps only the newest max
// entries.
func (rc *RedisClient) PushCapped(ctx context.Context, key string, value []byte, max int64) error {
	_, err := rc.Client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LPush(ctx, key, value)
		pipe.LTrim(ctx, key, 0, max-1)
		return nil
	})
	return err
}
