package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisSet — NotifiedSet в Redis. Нужен, если ботов несколько
// или важно пережить рестарт без повторных напоминаний.
type RedisSet struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisClient создаёт клиента с короткими таймаутами.
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  3 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})
}

// NewRedisSet создаёт множество поверх client. Ключи хранятся как prefix+key.
func NewRedisSet(client *redis.Client, prefix string, ttl time.Duration) *RedisSet {
	return &RedisSet{client: client, prefix: prefix, ttl: ttl}
}

// MarkIfNew делает SET key 1 NX EX ttl.
func (s *RedisSet) MarkIfNew(ctx context.Context, key string) (bool, error) {
	ok, err := s.client.SetNX(ctx, s.prefix+key, 1, s.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis setnx %s: %w", key, err)
	}
	return ok, nil
}

// Ping проверяет доступность Redis.
func (s *RedisSet) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
