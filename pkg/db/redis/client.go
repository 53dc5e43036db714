// Package redis создает подключение к Redis.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"devprofile/pkg/logger"
)

// Значения по умолчанию.
const (
	DefaultPoolSize = 10
	DefaultTimeout  = 3 * time.Second
)

// Config содержит настройки подключения к Redis.
type Config struct {
	Addr            string
	Password        string
	DB              int
	PoolSize        int
	MinIdle         int
	DialTimeout     time.Duration
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ConnMaxIdleTime time.Duration
	ConnMaxLifetime time.Duration
}

func (c Config) options() *redis.Options {
	poolSize := c.PoolSize
	if poolSize <= 0 {
		poolSize = DefaultPoolSize
	}
	return &redis.Options{
		Addr:            c.Addr,
		Password:        c.Password,
		DB:              c.DB,
		PoolSize:        poolSize,
		MinIdleConns:    c.MinIdle,
		DialTimeout:     orDefault(c.DialTimeout),
		ReadTimeout:     orDefault(c.ReadTimeout),
		WriteTimeout:    orDefault(c.WriteTimeout),
		ConnMaxIdleTime: c.ConnMaxIdleTime,
		ConnMaxLifetime: c.ConnMaxLifetime,
	}
}

func orDefault(d time.Duration) time.Duration {
	if d <= 0 {
		return DefaultTimeout
	}
	return d
}

// NewClient создает клиент и проверяет соединение командой PING.
func NewClient(ctx context.Context, cfg Config) (*redis.Client, error) {
	log := logger.Log(ctx).With(zap.String("component", "redis"), zap.String("addr", cfg.Addr))

	client := redis.NewClient(cfg.options())
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		log.Error(ctx, "failed to connect to redis", zap.Error(err))
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	log.Info(ctx, "connected to redis")
	return client, nil
}
