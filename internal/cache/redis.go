package cache

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis — общий для всех инстансов кэш агрегатов: строка на ключ, TTL через SET EX.
type Redis struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedis создаёт клиент Redis из URL (например, redis://:pass@host:6379/0).
// Если prefix пустой — используется "discussions:rollup:".
func NewRedis(ctx context.Context, redisURL, prefix string, ttl time.Duration) (*Redis, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(opt)

	// Fail-fast на старте.
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}

	return newRedis(rdb, prefix, ttl), nil
}

func newRedis(rdb *redis.Client, prefix string, ttl time.Duration) *Redis {
	if prefix == "" {
		prefix = "discussions:rollup:"
	}

	return &Redis{rdb: rdb, prefix: prefix, ttl: ttlOrDefault(ttl)}
}

func (c *Redis) key(rootID int64) string {
	return c.prefix + strconv.FormatInt(rootID, 10)
}

func (c *Redis) Get(ctx context.Context, rootID int64) (int, bool, error) {
	v, err := c.rdb.Get(ctx, c.key(rootID)).Int()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}

	return v, true, nil
}

func (c *Redis) Set(ctx context.Context, rootID int64, total int) error {
	return c.rdb.Set(ctx, c.key(rootID), total, c.ttl).Err()
}

func (c *Redis) Delete(ctx context.Context, rootID int64) error {
	return c.rdb.Del(ctx, c.key(rootID)).Err()
}

// Ping — проверка готовности для /healthz.
func (c *Redis) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

func (c *Redis) Close() error { return c.rdb.Close() }

var _ RollupCache = (*Redis)(nil)
