package cart

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	redisKeyPrefix  = "swiftcart:cart:"
	redisCartTTL    = 30 * 24 * time.Hour
	redisPingWindow = 3 * time.Second
)

// RedisBackend stores each cart as one JSON value under swiftcart:cart:<key>.
type RedisBackend struct {
	client *redis.Client
}

// NewRedisBackend connects to addr and verifies the connection with a ping.
func NewRedisBackend(addr string) (*RedisBackend, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	ctx, cancel := context.WithTimeout(context.Background(), redisPingWindow)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return &RedisBackend{client: client}, nil
}

func (r *RedisBackend) Load(ctx context.Context, key string) ([]Item, error) {
	raw, err := r.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return decodeItems(raw), nil
}

func (r *RedisBackend) Save(ctx context.Context, key string, items []Item) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, redisKeyPrefix+key, raw, redisCartTTL).Err()
}

// Close releases the underlying connection pool.
func (r *RedisBackend) Close() error {
	return r.client.Close()
}
