package services

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"devprofile/internal/profile/domain/services"
	svc "devprofile/internal/profile/ports/services"
	"devprofile/pkg/logger"
)

// GoogleDiscoveryURL - адрес OIDC discovery Google.
const GoogleDiscoveryURL = "https://accounts.google.com/.well-known/openid-configuration"

var googleIssuers = []string{"accounts.google.com", "https://accounts.google.com"}

const defaultJWKSTTL = 6 * time.Hour

// GoogleVerifierConfig - настройки проверки Google ID-токенов.
type GoogleVerifierConfig struct {
	ClientID     string
	DiscoveryURL string
	Issuers      []string
	JWKSTTL      time.Duration
	HTTPClient   *http.Client
}

type googleClaims struct {
	Email         string       `json:"email"`
	EmailVerified flexibleBool `json:"email_verified"`
	Name          string       `json:"name"`
	Picture       string       `json:"picture"`
	jwt.RegisteredClaims
}

// flexibleBool принимает и true, и "true": Google отдает email_verified в обоих видах.
type flexibleBool bool

func (b *flexibleBool) UnmarshalJSON(data []byte) error {
	switch strings.Trim(strings.ToLower(string(data)), `"`) {
	case "true", "1":
		*b = true
	default:
		*b = false
	}
	return nil
}

type discoveryDocument struct {
	Issuer  string `json:"issuer"`
	JWKSURI string `json:"jwks_uri"`
}

type jwk struct {
	Kty string `json:"kty"`
	Kid string `json:"kid"`
	N   string `json:"n"`
	E   string `json:"e"`
}

// GoogleVerifier проверяет ID-токены Google по ключам из JWKS.
type GoogleVerifier struct {
	config GoogleVerifierConfig
	clock  svc.Clock

	mu        sync.RWMutex
	jwksURL   string
	keys      map[string]*rsa.PublicKey
	fetchedAt time.Time
}

// NewGoogleVerifier создает верификатор. Адрес discovery и издатели по умолчанию указывают на Google.
func NewGoogleVerifier(config GoogleVerifierConfig, clock svc.Clock) *GoogleVerifier {
	if config.DiscoveryURL == "" {
		config.DiscoveryURL = GoogleDiscoveryURL
	}
	if len(config.Issuers) == 0 {
		config.Issuers = googleIssuers
	}
	if config.JWKSTTL <= 0 {
		config.JWKSTTL = defaultJWKSTTL
	}
	if config.HTTPClient == nil {
		config.HTTPClient = &http.Client{Timeout: 10 * time.Second}
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return &GoogleVerifier{config: config, clock: clock, keys: map[string]*rsa.PublicKey{}}
}

// Verify проверяет подпись RS256, издателя, аудиторию и срок действия токена.
func (v *GoogleVerifier) Verify(ctx context.Context, idToken string) (*services.GoogleIdentity, error) {
	log := logger.Log(ctx).With(zap.String("method", "VerifyGoogleToken"))

	if strings.TrimSpace(idToken) == "" {
		return nil, fmt.Errorf("%w: empty token", services.ErrInvalidGoogleToken)
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithAudience(v.config.ClientID),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(v.clock.Now),
	)

	claims := &googleClaims{}
	_, err := parser.ParseWithClaims(idToken, claims, func(t *jwt.Token) (interface{}, error) {
		kid, _ := t.Header["kid"].(string)
		if kid == "" {
			return nil, errors.New("missing kid")
		}
		return v.key(ctx, kid)
	})
	if err != nil {
		log.Debug(ctx, "google token rejected", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", services.ErrInvalidGoogleToken, err)
	}

	if !slices.Contains(v.config.Issuers, claims.Issuer) {
		log.Debug(ctx, "google token issuer mismatch", zap.String("issuer", claims.Issuer))
		return nil, fmt.Errorf("%w: issuer mismatch %q", services.ErrInvalidGoogleToken, claims.Issuer)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing sub", services.ErrInvalidGoogleToken)
	}

	return &services.GoogleIdentity{
		Subject:       claims.Subject,
		Email:         claims.Email,
		EmailVerified: bool(claims.EmailVerified),
		Name:          claims.Name,
		Picture:       claims.Picture,
	}, nil
}

// key возвращает открытый ключ по kid. Неизвестный kid или устаревший кеш приводят к перечитыванию JWKS.
func (v *GoogleVerifier) key(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	v.mu.RLock()
	key := v.keys[kid]
	stale := v.clock.Now().Sub(v.fetchedAt) > v.config.JWKSTTL
	v.mu.RUnlock()

	if key != nil && !stale {
		return key, nil
	}

	if err := v.refresh(ctx); err != nil {
		if key != nil {
			logger.Log(ctx).Warn(ctx, "jwks refresh failed, using cached key", zap.Error(err))
			return key, nil
		}
		return nil, err
	}

	v.mu.RLock()
	defer v.mu.RUnlock()
	if key = v.keys[kid]; key == nil {
		return nil, fmt.Errorf("kid not found in jwks: %s", kid)
	}
	return key, nil
}

func (v *GoogleVerifier) refresh(ctx context.Context) error {
	v.mu.RLock()
	jwksURL := v.jwksURL
	v.mu.RUnlock()

	if jwksURL == "" {
		var doc discoveryDocument
		if err := v.getJSON(ctx, v.config.DiscoveryURL, &doc); err != nil {
			return fmt.Errorf("oidc discovery: %w", err)
		}
		if doc.JWKSURI == "" {
			return errors.New("oidc discovery: missing jwks_uri")
		}
		jwksURL = doc.JWKSURI
	}

	var set struct {
		Keys []jwk `json:"keys"`
	}
	if err := v.getJSON(ctx, jwksURL, &set); err != nil {
		return fmt.Errorf("jwks fetch: %w", err)
	}

	keys := make(map[string]*rsa.PublicKey, len(set.Keys))
	for _, k := range set.Keys {
		if k.Kty != "RSA" || k.Kid == "" {
			continue
		}
		pub, err := rsaPublicKey(k.N, k.E)
		if err != nil {
			continue
		}
		keys[k.Kid] = pub
	}
	if len(keys) == 0 {
		return errors.New("jwks contained no usable keys")
	}

	v.mu.Lock()
	v.jwksURL = jwksURL
	v.keys = keys
	v.fetchedAt = v.clock.Now()
	v.mu.Unlock()
	return nil
}

func (v *GoogleVerifier) getJSON(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	res, err := v.config.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %s", res.Status)
	}
	return json.NewDecoder(res.Body).Decode(out)
}

func rsaPublicKey(nB64, eB64 string) (*rsa.PublicKey, error) {
	nb, err := base64.RawURLEncoding.DecodeString(nB64)
	if err != nil {
		return nil, err
	}
	eb, err := base64.RawURLEncoding.DecodeString(eB64)
	if err != nil {
		return nil, err
	}

	e := 0
	for _, b := range eb {
		e = e<<8 + int(b)
	}
	if e == 0 {
		return nil, errors.New("invalid exponent")
	}
	return &rsa.PublicKey{N: new(big.Int).SetBytes(nb), E: e}, nil
}
