// Package config содержит конфигурацию сервиса профилей разработчиков.
package config

import (
	"context"
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
	"go.uber.org/zap"

	"devprofile/pkg/logger"
)

// Константы ошибок и сообщений для конфигурации.
const (
	LogLoadingConfig    = "Loading profile service configuration"
	LogConfigLoaded     = "Configuration loaded successfully"
	ErrFailedLoadConfig = "Failed to load configuration"
)

// Config представляет полную конфигурацию приложения.
type Config struct {
	Storage    StorageConfig    `yaml:"storage"`
	Postgres   PostgresConfig   `yaml:"postgres"`
	Mongo      MongoConfig      `yaml:"mongo"`
	Migrations MigrationsConfig `yaml:"migrations"`
	Redis      RedisConfig      `yaml:"redis"`
	HTTP       HTTPConfig       `yaml:"http"`
	JWT        JWTConfig        `yaml:"jwt"`
	Google     GoogleConfig     `yaml:"google"`
	Media      MediaConfig      `yaml:"media"`
	S3         S3Config         `yaml:"s3"`
	Renderer   RendererConfig   `yaml:"renderer"`
	Logging    LoggingConfig    `yaml:"logging"`
	Shutdown   ShutdownConfig   `yaml:"shutdown"`
}

// Load загружает конфигурацию из переменных окружения.
func Load(ctx context.Context) (*Config, error) {
	log := logger.Log(ctx)

	log.Info(ctx, LogLoadingConfig)

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Error(ctx, ErrFailedLoadConfig, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrFailedLoadConfig, err)
	}

	log.Info(ctx, LogConfigLoaded,
		zap.String("storage_driver", cfg.Storage.Driver),
		zap.String("media_driver", cfg.Media.Driver),
		zap.String("http_address", cfg.HTTP.GetAddress()),
		zap.Bool("redis_enabled", cfg.Redis.Enabled),
		zap.String("renderer_url", cfg.Renderer.URL),
		zap.String("log_level", cfg.Logging.Level),
		zap.String("log_mode", cfg.Logging.Mode),
		zap.Int("shutdown_timeout_seconds", cfg.Shutdown.Timeout))

	return &cfg, nil
}
