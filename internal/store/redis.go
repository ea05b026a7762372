package store

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis wraps redis client.
type Redis struct {
	Client *redis.Client
}

// NewRedis connects to redis with short timeouts.
func NewRedis(addr string) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  1 * time.Second,
		WriteTimeout: 1 * time.Second,
	})
	return &Redis{Client: client}
}

// Healthy verifies redis connectivity.
func (r *Redis) Healthy(ctx context.Context) bool {
	if r == nil || r.Client == nil {
		return false
	}
	return r.Client.Ping(ctx).Err() == nil
}

// Close closes the client.
func (r *Redis) Close() error {
	if r == nil || r.Client == nil {
		return nil
	}
	return r.Client.Close()
}

// RedisKV stores values as plain redis strings under a key prefix.
type RedisKV struct {
	*Redis
	prefix string
}

// NewRedisKV builds a KV on an existing connection.
func NewRedisKV(r *Redis, prefix string) *RedisKV {
	if prefix == "" {
		prefix = "ojt:"
	}
	return &RedisKV{Redis: r, prefix: prefix}
}

// Get returns the stored value for key.
func (k *RedisKV) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := k.Client.Get(ctx, k.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	return v, err
}

// Set stores value with no expiry.
func (k *RedisKV) Set(ctx context.Context, key string, value []byte) error {
	return k.Client.Set(ctx, k.prefix+key, value, 0).Err()
}

// Delete removes key.
func (k *RedisKV) Delete(ctx context.Context, key string) error {
	return k.Client.Del(ctx, k.prefix+key).Err()
}
