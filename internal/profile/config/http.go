package config

import (
	"fmt"
	"time"
)

// HTTPConfig представляет конфигурацию HTTP сервера.
type HTTPConfig struct {
	Host         string        `yaml:"host" env:"PROFILE_HTTP_HOST" env-default:"0.0.0.0"`
	Port         int           `yaml:"port" env:"PROFILE_HTTP_PORT" env-default:"8080"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"PROFILE_HTTP_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"PROFILE_HTTP_WRITE_TIMEOUT" env-default:"30s"`
	// BaseURL - внешний адрес сервиса для абсолютных ссылок на медиа. Пустой - из запроса.
	BaseURL string `yaml:"base_url" env:"PROFILE_HTTP_BASE_URL" env-default:""`
}

// GetAddress возвращает адрес HTTP сервера.
func (c *HTTPConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
