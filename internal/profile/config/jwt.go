package config

import "time"

// JWTConfig содержит настройки для JWT токенов.
type JWTConfig struct {
	SecretKey       string `yaml:"secret_key" env:"PROFILE_JWT_SECRET_KEY" env-default:"super-secret-key-change-me-in-production"`
	Issuer          string `yaml:"issuer" env:"PROFILE_JWT_ISSUER" env-default:"devprofile"`
	AccessTokenTTL  string `yaml:"access_token_ttl" env:"PROFILE_JWT_ACCESS_TOKEN_TTL" env-default:"15m"`
	RefreshTokenTTL string `yaml:"refresh_token_ttl" env:"PROFILE_JWT_REFRESH_TOKEN_TTL" env-default:"720h"`
}

// GetAccessTokenTTL возвращает продолжительность времени жизни access токена.
func (c *JWTConfig) GetAccessTokenTTL() time.Duration {
	duration, err := time.ParseDuration(c.AccessTokenTTL)
	if err != nil || duration <= 0 {
		return 15 * time.Minute
	}
	return duration
}

// GetRefreshTokenTTL возвращает продолжительность времени жизни refresh токена.
func (c *JWTConfig) GetRefreshTokenTTL() time.Duration {
	duration, err := time.ParseDuration(c.RefreshTokenTTL)
	if err != nil || duration <= 0 {
		return 30 * 24 * time.Hour
	}
	return duration
}

// GoogleConfig - параметры проверки ID-токенов Google.
type GoogleConfig struct {
	ClientID     string        `yaml:"client_id" env:"PROFILE_GOOGLE_CLIENT_ID" env-default:""`
	DiscoveryURL string        `yaml:"discovery_url" env:"PROFILE_GOOGLE_DISCOVERY_URL" env-default:"https://accounts.google.com/.well-known/openid-configuration"`
	JWKSTTL      time.Duration `yaml:"jwks_ttl" env:"PROFILE_GOOGLE_JWKS_TTL" env-default:"1h"`
	Timeout      time.Duration `yaml:"timeout" env:"PROFILE_GOOGLE_TIMEOUT" env-default:"5s"`
}
