package config

import (
	"fmt"
	"time"
)

// Драйверы хранилища профилей.
const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
)

// StorageConfig выбирает хранилище профилей.
type StorageConfig struct {
	Driver string `yaml:"driver" env:"PROFILE_STORAGE_DRIVER" env-default:"postgres"`
}

// UseMongo сообщает, что профили хранятся в MongoDB. Пользователи и токены всегда в Postgres.
func (s *StorageConfig) UseMongo() bool {
	return s.Driver == DriverMongo
}

// PostgresConfig содержит настройки подключения к базе данных.
type PostgresConfig struct {
	Host            string        `yaml:"host" env:"PROFILE_POSTGRES_HOST" env-default:"localhost"`
	Port            int           `yaml:"port" env:"PROFILE_POSTGRES_PORT" env-default:"5432"`
	User            string        `yaml:"user" env:"PROFILE_POSTGRES_USER" env-default:"postgres"`
	Password        string        `yaml:"password" env:"PROFILE_POSTGRES_PASSWORD" env-default:"postgres"`
	Database        string        `yaml:"database" env:"PROFILE_POSTGRES_DB" env-default:"devprofile"`
	MinConn         int           `yaml:"min_conn" env:"PROFILE_POSTGRES_MIN_CONN" env-default:"1"`
	MaxConn         int           `yaml:"max_conn" env:"PROFILE_POSTGRES_MAX_CONN" env-default:"10"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime" env:"PROFILE_POSTGRES_MAX_CONN_LIFETIME" env-default:"1h"`
}

// GetDSN возвращает строку подключения к PostgreSQL.
func (p *PostgresConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		p.Host, p.Port, p.User, p.Password, p.Database)
}

// GetConnectionURL возвращает URL-строку подключения для миграций.
func (p *PostgresConfig) GetConnectionURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		p.User, p.Password, p.Host, p.Port, p.Database)
}

// MongoConfig - подключение к MongoDB.
type MongoConfig struct {
	URI            string        `yaml:"uri" env:"PROFILE_MONGO_URI" env-default:"mongodb://localhost:27017"`
	Database       string        `yaml:"database" env:"PROFILE_MONGO_DB" env-default:"devprofile"`
	Collection     string        `yaml:"collection" env:"PROFILE_MONGO_COLLECTION" env-default:"profiles"`
	ConnectTimeout time.Duration `yaml:"connect_timeout" env:"PROFILE_MONGO_CONNECT_TIMEOUT" env-default:"10s"`
}

// MigrationsConfig - каталог SQL-миграций.
type MigrationsConfig struct {
	Path    string `yaml:"path" env:"PROFILE_MIGRATIONS_PATH" env-default:"file://migrations/profile"`
	Enabled bool   `yaml:"enabled" env:"PROFILE_MIGRATIONS_ENABLED" env-default:"true"`
}

// RedisConfig представляет конфигурацию для Redis.
type RedisConfig struct {
	Enabled         bool          `yaml:"enabled" env:"PROFILE_REDIS_ENABLED" env-default:"false"`
	Host            string        `yaml:"host" env:"PROFILE_REDIS_HOST" env-default:"localhost"`
	Port            int           `yaml:"port" env:"PROFILE_REDIS_PORT" env-default:"6379"`
	Password        string        `yaml:"password" env:"PROFILE_REDIS_PASSWORD" env-default:""`
	DB              int           `yaml:"db" env:"PROFILE_REDIS_DB" env-default:"0"`
	ConnectTimeout  time.Duration `yaml:"connect_timeout" env:"PROFILE_REDIS_CONNECT_TIMEOUT" env-default:"5s"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"PROFILE_REDIS_READ_TIMEOUT" env-default:"3s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"PROFILE_REDIS_WRITE_TIMEOUT" env-default:"3s"`
	PoolSize        int           `yaml:"pool_size" env:"PROFILE_REDIS_POOL_SIZE" env-default:"10"`
	MinIdle         int           `yaml:"min_idle" env:"PROFILE_REDIS_MIN_IDLE" env-default:"2"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env:"PROFILE_REDIS_IDLE_TIMEOUT" env-default:"5m"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime" env:"PROFILE_REDIS_MAX_CONN_LIFETIME" env-default:"1h"`
	CatalogTTL      time.Duration `yaml:"catalog_ttl" env:"PROFILE_REDIS_CATALOG_TTL" env-default:"1m"`
}

// GetAddress возвращает адрес Redis.
func (c *RedisConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
