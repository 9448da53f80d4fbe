// config реализует конфигурацию discussion-service: загрузка из YAML/ENV с предсказуемым приоритетом.
package config

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config — корневая конфигурация сервиса.
// Приоритет источников:
//  1. явный путь, переданный в MustLoad/Load;
//  2. переменная окружения CONFIG_PATH;
//  3. файл ./local.yaml из рабочей директории;
//  4. переменные окружения.
type Config struct {
	Env       string          `yaml:"env" env:"ENV" env-default:"local"`
	HTTP      HTTPConfig      `yaml:"http"`
	DB        DBConfig        `yaml:"db"`
	Accounts  AccountsConfig  `yaml:"accounts"`
	Cache     CacheConfig     `yaml:"cache"`
	Thread    ThreadConfig    `yaml:"thread"`
	Permalink PermalinkConfig `yaml:"permalink"`
	Auth      AuthConfig      `yaml:"auth"`
	Timeouts  TimeoutConfig   `yaml:"timeouts"`
}

// HTTPConfig — REST API и служебные ручки (/livez, /healthz, /metrics).
type HTTPConfig struct {
	Host string `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"HTTP_PORT" env-default:"8085"`
}

// Addr возвращает адрес в формате host:port.
func (h HTTPConfig) Addr() string {
	return net.JoinHostPort(h.Host, h.Port)
}

// DBConfig — MongoDB с комментариями и материалами (нужен replica set для транзакций).
type DBConfig struct {
	URL      string `yaml:"url" env:"DATABASE_URL" env-required:"true"`
	Database string `yaml:"database" env:"DATABASE_NAME" env-default:"discussions"`
}

// AccountsConfig — PostgreSQL со справочником учётных записей (только чтение).
type AccountsConfig struct {
	URL string `yaml:"url" env:"ACCOUNTS_DATABASE_URL" env-required:"true"`
}

// Драйверы кэша агрегатов.
const (
	CacheRedis  = "redis"
	CacheMemory = "memory"
)

// CacheConfig — кэш сумм голосов по веткам.
// RollupTTL — верхняя граница устаревания агрегата между инстансами.
type CacheConfig struct {
	Driver    string        `yaml:"driver" env:"CACHE_DRIVER" env-default:"memory"`
	RedisURL  string        `yaml:"redis_url" env:"REDIS_URL"`
	RollupTTL time.Duration `yaml:"rollup_ttl" env:"ROLLUP_TTL" env-default:"30s"`
	Size      int           `yaml:"size" env:"CACHE_SIZE" env-default:"10000"`
}

// ThreadConfig — параметры движка обсуждений.
type ThreadConfig struct {
	MaxDepthGeneral int `yaml:"max_depth_general" env:"MAX_DEPTH_GENERAL" env-default:"3"`
	MaxDepthForum   int `yaml:"max_depth_forum" env:"MAX_DEPTH_FORUM" env-default:"2"`
	ReplyWindow     int `yaml:"reply_window" env:"REPLY_WINDOW" env-default:"3"`
	// TieBreak — порядок ответов с равным числом голосов: chronological | newest.
	TieBreak string `yaml:"tie_break" env:"TIE_BREAK" env-default:"chronological"`
	// Значения для материалов без собственных настроек.
	CommentsPerPage int    `yaml:"comments_per_page" env:"COMMENTS_PER_PAGE" env-default:"50"`
	TopLevelOrder   string `yaml:"top_level_order" env:"TOP_LEVEL_ORDER" env-default:"asc"`
	TopThreadsLimit int    `yaml:"top_threads_limit" env:"TOP_THREADS_LIMIT" env-default:"10"`
}

// PermalinkConfig — сегменты канонических ссылок на комментарии.
type PermalinkConfig struct {
	CommentsSegment string `yaml:"comments_segment" env:"PERMALINK_COMMENTS_SEGMENT" env-default:"comments"`
	PageSegment     string `yaml:"page_segment" env:"PERMALINK_PAGE_SEGMENT" env-default:"page"`
}

// AuthConfig — проверка access-токенов, выпущенных auth-service (HS256).
type AuthConfig struct {
	JWTSecret string        `yaml:"jwt_secret" env:"AUTH_JWT_SECRET" env-required:"true"`
	Issuer    string        `yaml:"issuer" env:"AUTH_ISSUER" env-default:"auth-service"`
	Audience  string        `yaml:"audience" env:"AUTH_AUDIENCE" env-default:"news-aggregator"`
	Leeway    time.Duration `yaml:"leeway" env:"AUTH_LEEWAY" env-default:"30s"`
}

// TimeoutConfig — сервисные таймауты (общий дедлайн обработки запроса).
type TimeoutConfig struct {
	Service time.Duration `yaml:"service" env:"SERVICE_TIMEOUT" env-default:"5s"`
}

// MustLoad — обёртка над Load с panic при ошибке.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}

	return cfg
}

// Load загружает конфигурацию по приоритету:
// 1) явный путь; 2) CONFIG_PATH; 3) ./local.yaml; 4) ENV.
// После чтения файла ENV-переменные накладываются поверх значений из YAML.
func Load(path string) (*Config, error) {
	var cfg Config

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}

	if path == "" {
		if _, err := os.Stat("local.yaml"); err == nil {
			path = "local.yaml"
		}
	}

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file %q stat failed: %w", path, err)
		}

		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config %q: %w", path, err)
		}
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		if path == "" {
			return nil, fmt.Errorf("config not found: provide --config, CONFIG_PATH, local.yaml or env vars: %w", err)
		}

		return nil, fmt.Errorf("failed to overlay env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// validate — базовая валидация значений.
func (c *Config) validate() error {
	if c.DB.URL == "" {
		return fmt.Errorf("db.url is required")
	}

	if c.Accounts.URL == "" {
		return fmt.Errorf("accounts.url is required")
	}

	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwt_secret is required")
	}

	switch c.Cache.Driver {
	case CacheMemory:
		if c.Cache.Size <= 0 {
			return fmt.Errorf("cache.size must be > 0")
		}
	case CacheRedis:
		if c.Cache.RedisURL == "" {
			return fmt.Errorf("cache.redis_url is required for redis driver")
		}
	default:
		return fmt.Errorf("cache.driver must be %q or %q", CacheRedis, CacheMemory)
	}

	if c.Cache.RollupTTL <= 0 || c.Cache.RollupTTL > 10*time.Minute {
		return fmt.Errorf("cache.rollup_ttl must be in (0, 10m]")
	}

	if c.Thread.MaxDepthGeneral < 1 || c.Thread.MaxDepthGeneral > 32 {
		return fmt.Errorf("thread.max_depth_general must be in [1, 32]")
	}

	if c.Thread.MaxDepthForum < 1 || c.Thread.MaxDepthForum > 32 {
		return fmt.Errorf("thread.max_depth_forum must be in [1, 32]")
	}

	if c.Thread.ReplyWindow < 1 {
		return fmt.Errorf("thread.reply_window must be > 0")
	}

	if c.Thread.TieBreak != "chronological" && c.Thread.TieBreak != "newest" {
		return fmt.Errorf("thread.tie_break must be chronological or newest")
	}

	if c.Thread.CommentsPerPage < 1 || c.Thread.CommentsPerPage > 500 {
		return fmt.Errorf("thread.comments_per_page must be in [1, 500]")
	}

	if c.Thread.TopLevelOrder != "asc" && c.Thread.TopLevelOrder != "desc" {
		return fmt.Errorf("thread.top_level_order must be asc or desc")
	}

	if c.Thread.TopThreadsLimit < 1 {
		return fmt.Errorf("thread.top_threads_limit must be > 0")
	}

	if c.Permalink.CommentsSegment == "" || c.Permalink.PageSegment == "" {
		return fmt.Errorf("permalink segments must not be empty")
	}

	if c.Timeouts.Service <= 0 {
		return fmt.Errorf("timeouts.service must be > 0")
	}

	return nil
}
