package cache

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// RedisCache is an implementation of the Cache interface using Redis.
type RedisCache struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisCacheConfig contains options for creating a new RedisCache.
type NewRedisCacheConfig struct {
	Address  string
	Password string
	DB       int
}

// NewRedisCache connects to Redis and verifies the connection with PING.
func NewRedisCache(ctx context.Context, cfg NewRedisCacheConfig, logger *zap.Logger) (*RedisCache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}

	logger.Info("Connected to Redis", zap.String("address", cfg.Address))
	return &RedisCache{client: rdb, logger: logger}, nil
}

// Get retrieves a value from Redis. A missing key yields "" and no error.
func (r *RedisCache) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	} else if err != nil {
		r.logger.Error("Redis GET failed", zap.String("key", key), zap.Error(err))
		return "", err
	}
	return val, nil
}

// Set stores a value in Redis.
func (r *RedisCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	if err := r.client.Set(ctx, key, value, expiration).Err(); err != nil {
		r.logger.Error("Redis SET failed", zap.String("key", key), zap.Error(err))
		return err
	}
	return nil
}

// Delete removes a value from Redis.
func (r *RedisCache) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		r.logger.Error("Redis DEL failed", zap.String("key", key), zap.Error(err))
		return err
	}
	return nil
}

// Incr runs INCR and sets the expiration when the key was just created.
func (r *RedisCache) Incr(ctx context.Context, key string, expiration time.Duration) (int64, error) {
	n, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		r.logger.Error("Redis INCR failed", zap.String("key", key), zap.Error(err))
		return 0, err
	}
	if n == 1 && expiration > 0 {
		if err := r.client.Expire(ctx, key, expiration).Err(); err != nil {
			r.logger.Warn("Redis EXPIRE failed", zap.String("key", key), zap.Error(err))
		}
	}
	return n, nil
}

func (r *RedisCache) Close() error {
	return r.client.Close()
}
