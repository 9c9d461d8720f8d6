package storage

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// keyPrefix namespaces every key so the store can share a Redis instance.
const keyPrefix = "prooffolio:"

// RedisKV stores keys as plain Redis strings under a namespace prefix.
type RedisKV struct {
	client *redis.Client
}

// NewRedisKV connects to Redis at addr (either host:port or a redis:// URL)
// and verifies the connection with a ping.
func NewRedisKV(addr string) (*RedisKV, error) {
	var opts *redis.Options
	if strings.Contains(addr, "://") {
		parsed, err := redis.ParseURL(addr)
		if err != nil {
			return nil, err
		}
		opts = parsed
	} else {
		opts = &redis.Options{Addr: addr}
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return &RedisKV{client: client}, nil
}

// Get returns the value stored under key.
func (r *RedisKV) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := r.client.Get(ctx, keyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

// Set stores value under key with no expiry.
func (r *RedisKV) Set(ctx context.Context, key, value string) error {
	return r.client.Set(ctx, keyPrefix+key, value, 0).Err()
}

// Delete removes key.
func (r *RedisKV) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, keyPrefix+key).Err()
}

// Close releases the underlying client.
func (r *RedisKV) Close() error {
	return r.client.Close()
}
