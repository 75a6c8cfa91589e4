package redis

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
)

// Store implements store.Store on top of a single Redis instance.
// The set and list commands it relies on (SADD, SREM, SMEMBERS,
// LPUSH, LRANGE) are each atomic on the Redis side, which is the
// only atomicity the coordinator assumes.
type Store struct {
	client *goredis.Client
}

// New connects to Redis and verifies the connection with a ping.
func New(ctx context.Context, addr, password string, db int) (*Store, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis at %s: %w", addr, err)
	}

	return &Store{client: client}, nil
}

func (s *Store) SetAdd(ctx context.Context, key, member string) error {
	return s.client.SAdd(ctx, key, member).Err()
}

func (s *Store) SetRemove(ctx context.Context, key, member string) error {
	return s.client.SRem(ctx, key, member).Err()
}

func (s *Store) SetMembers(ctx context.Context, key string) ([]string, error) {
	return s.client.SMembers(ctx, key).Result()
}

func (s *Store) ListPrepend(ctx context.Context, key, value string) error {
	return s.client.LPush(ctx, key, value).Err()
}

func (s *Store) ListRange(ctx context.Context, key string, start, stop int64) ([]string, error) {
	return s.client.LRange(ctx, key, start, stop).Result()
}

// Close closes the underlying Redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
