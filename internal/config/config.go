// File: internal/config/config.go
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config 服務執行期設定，全部由環境變數讀取
type Config struct {
	Addr  string `envconfig:"APP_ADDR" default:":3000"`
	Debug bool   `envconfig:"APP_DEBUG" default:"false"`

	DatabaseURL   string `envconfig:"DATABASE_URL" required:"true"`
	RunMigrations bool   `envconfig:"RUN_MIGRATIONS" default:"true"`

	// REDIS_ADDR 為空時停用使用者快取
	RedisAddr     string        `envconfig:"REDIS_ADDR"`
	RedisPassword string        `envconfig:"REDIS_PASSWORD"`
	RedisDB       int           `envconfig:"REDIS_DB" default:"0"`
	UserCacheTTL  time.Duration `envconfig:"USER_CACHE_TTL" default:"5m"`

	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

// Load 讀取並檢查環境變數
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("config: 環境變數 DATABASE_URL 未設定")
	}
	if cfg.RedisDB < 0 {
		return nil, fmt.Errorf("config: 無效的 REDIS_DB: %d", cfg.RedisDB)
	}
	if cfg.ShutdownTimeout <= 0 {
		return nil, fmt.Errorf("config: SHUTDOWN_TIMEOUT 必須大於 0")
	}
	return &cfg, nil
}

// CacheEnabled 是否啟用 Redis 使用者快取
func (c *Config) CacheEnabled() bool {
	return c != nil && c.RedisAddr != ""
}
