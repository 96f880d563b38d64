package session

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// RedisBackend keeps session state in Redis so it survives dashboard and
// server restarts.
type RedisBackend struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisClient connects to addr, which is either host:port or a redis:// URL
func NewRedisClient(addr string, db int) (*redis.Client, error) {
	if addr == "" {
		return nil, errors.New("redis address is empty")
	}
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		opt, err := redis.ParseURL(addr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse redis url: %w", err)
		}
		log.Info().Str("addr", opt.Addr).Int("db", opt.DB).Msg("connecting to redis")
		return redis.NewClient(opt), nil
	}
	log.Info().Str("addr", addr).Int("db", db).Msg("connecting to redis")
	return redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	}), nil
}

// NewRedisBackend wraps a client; ttl <= 0 means keys never expire
func NewRedisBackend(client *redis.Client, ttl time.Duration) *RedisBackend {
	return &RedisBackend{
		client: client,
		ttl:    ttl,
	}
}

// Ping checks the connection
func (b *RedisBackend) Ping(ctx context.Context) error {
	return b.client.Ping(ctx).Err()
}

func (b *RedisBackend) Get(ctx context.Context, key string) (string, error) {
	val, err := b.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrMissing
	}
	if err != nil {
		return "", fmt.Errorf("failed to get %s: %w", key, err)
	}
	return val, nil
}

func (b *RedisBackend) Set(ctx context.Context, key, value string) error {
	if err := b.client.Set(ctx, key, value, b.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

func (b *RedisBackend) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := b.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete session keys: %w", err)
	}
	return nil
}

func (b *RedisBackend) SAdd(ctx context.Context, key string, members ...string) error {
	args := make([]interface{}, len(members))
	for i, m := range members {
		args[i] = m
	}

	pipe := b.client.TxPipeline()
	pipe.SAdd(ctx, key, args...)
	if b.ttl > 0 {
		pipe.Expire(ctx, key, b.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to add to %s: %w", key, err)
	}
	return nil
}

func (b *RedisBackend) SRem(ctx context.Context, key string, members ...string) error {
	args := make([]interface{}, len(members))
	for i, m := range members {
		args[i] = m
	}
	if err := b.client.SRem(ctx, key, args...).Err(); err != nil {
		return fmt.Errorf("failed to remove from %s: %w", key, err)
	}
	return nil
}

func (b *RedisBackend) SIsMember(ctx context.Context, key, member string) (bool, error) {
	ok, err := b.client.SIsMember(ctx, key, member).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check %s: %w", key, err)
	}
	return ok, nil
}

func (b *RedisBackend) SMembers(ctx context.Context, key string) ([]string, error) {
	members, err := b.client.SMembers(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", key, err)
	}
	sort.Strings(members)
	return members, nil
}
