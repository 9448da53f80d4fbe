// Package cache — кэш агрегатов голосов по веткам (LikeRollup).
//
// Агрегат всегда можно пересчитать из снимка, поэтому кэш только ускоряет чтение:
// запись живёт не дольше TTL, а инстанс, применивший изменение, удаляет ключ сразу.
// Другие инстансы видят устаревшее значение не дольше TTL.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/pribylovaa/go-news-discussions/internal/config"
)

// RollupCache — минимальный контракт кэша агрегатов, ключ — id комментария верхнего уровня.
type RollupCache interface {
	// Get возвращает агрегат и признак его наличия в кэше.
	Get(ctx context.Context, rootID int64) (int, bool, error)
	// Set сохраняет агрегат с TTL кэша.
	Set(ctx context.Context, rootID int64, total int) error
	// Delete инвалидирует агрегат.
	Delete(ctx context.Context, rootID int64) error
	// Close освобождает ресурсы.
	Close() error
}

// New выбирает реализацию по cfg.Cache.Driver.
func New(ctx context.Context, cfg config.CacheConfig) (RollupCache, error) {
	switch cfg.Driver {
	case config.CacheRedis:
		return NewRedis(ctx, cfg.RedisURL, "", cfg.RollupTTL)
	case config.CacheMemory, "":
		return NewMemory(cfg.Size, cfg.RollupTTL)
	default:
		return nil, fmt.Errorf("cache: unknown driver %q", cfg.Driver)
	}
}

func ttlOrDefault(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return 30 * time.Second
	}

	return ttl
}
