package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"devprofile/internal/profile/adapters/document"
	"devprofile/internal/profile/domain/entities"
	"devprofile/internal/profile/ports/repositories"
	"devprofile/internal/profile/ports/services"
	"devprofile/pkg/logger"
)

const (
	generationKey = "catalog:generation"
	keyPrefix     = "catalog"
)

type cachedPage struct {
	Items      []document.ProfileDocument `json:"items"`
	TotalCount int                        `json:"totalCount"`
}

// CachedCatalog кеширует чтения каталога. Любая запись увеличивает поколение,
// и ключи прежнего поколения больше не читаются, а истекают по TTL.
// Ошибки кеша логируются, запрос обслуживает репозиторий.
type CachedCatalog struct {
	repositories.ProfileRepository
	cache services.Cache
	ttl   time.Duration
}

var _ repositories.ProfileRepository = (*CachedCatalog)(nil)

// NewCachedCatalog оборачивает репозиторий профилей.
func NewCachedCatalog(repo repositories.ProfileRepository, cache services.Cache, ttl time.Duration) *CachedCatalog {
	return &CachedCatalog{ProfileRepository: repo, cache: cache, ttl: ttl}
}

func (c *CachedCatalog) GetAll(ctx context.Context) ([]*entities.DeveloperProfile, error) {
	key, ok := c.key(ctx, "all")
	if ok {
		if page, hit := c.load(ctx, key); hit {
			return page.Items, nil
		}
	}

	profiles, err := c.ProfileRepository.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if ok {
		c.store(ctx, key, repositories.CatalogPage{Items: profiles, TotalCount: len(profiles)})
	}
	return profiles, nil
}

func (c *CachedCatalog) SearchCatalog(ctx context.Context, search repositories.CatalogSearch) (repositories.CatalogPage, error) {
	raw, err := json.Marshal(search)
	if err != nil {
		return c.ProfileRepository.SearchCatalog(ctx, search)
	}
	sum := sha256.Sum256(raw)

	key, ok := c.key(ctx, "search:"+hex.EncodeToString(sum[:]))
	if ok {
		if page, hit := c.load(ctx, key); hit {
			return page, nil
		}
	}

	page, err := c.ProfileRepository.SearchCatalog(ctx, search)
	if err != nil {
		return repositories.CatalogPage{}, err
	}
	if ok {
		c.store(ctx, key, page)
	}
	return page, nil
}

func (c *CachedCatalog) Create(ctx context.Context, profile *entities.DeveloperProfile) (*entities.DeveloperProfile, error) {
	created, err := c.ProfileRepository.Create(ctx, profile)
	if err == nil && created != nil {
		c.invalidate(ctx)
	}
	return created, err
}

func (c *CachedCatalog) Update(ctx context.Context, profile *entities.DeveloperProfile) (*entities.DeveloperProfile, error) {
	updated, err := c.ProfileRepository.Update(ctx, profile)
	if err == nil && updated != nil {
		c.invalidate(ctx)
	}
	return updated, err
}

func (c *CachedCatalog) Delete(ctx context.Context, id entities.DeveloperID) (bool, error) {
	deleted, err := c.ProfileRepository.Delete(ctx, id)
	if err == nil && deleted {
		c.invalidate(ctx)
	}
	return deleted, err
}

// key возвращает ключ текущего поколения. false означает, что кеш недоступен.
func (c *CachedCatalog) key(ctx context.Context, suffix string) (string, bool) {
	gen, err := c.cache.Get(ctx, generationKey)
	if err != nil {
		return "", false
	}
	if gen == "" {
		gen = "0"
	}
	return fmt.Sprintf("%s:%s:%s", keyPrefix, gen, suffix), true
}

func (c *CachedCatalog) load(ctx context.Context, key string) (repositories.CatalogPage, bool) {
	raw, err := c.cache.Get(ctx, key)
	if err != nil || raw == "" {
		return repositories.CatalogPage{}, false
	}

	var cached cachedPage
	if err := json.Unmarshal([]byte(raw), &cached); err != nil {
		logger.Log(ctx).Warn(ctx, "corrupt catalog cache entry", zap.String("key", key), zap.Error(err))
		return repositories.CatalogPage{}, false
	}

	items := make([]*entities.DeveloperProfile, 0, len(cached.Items))
	for _, doc := range cached.Items {
		profile, err := document.FromDocument(doc)
		if err != nil {
			logger.Log(ctx).Warn(ctx, "corrupt catalog cache entry", zap.String("key", key), zap.Error(err))
			return repositories.CatalogPage{}, false
		}
		items = append(items, profile)
	}

	logger.Log(ctx).Debug(ctx, "catalog cache hit", zap.String("key", key))
	return repositories.CatalogPage{Items: items, TotalCount: cached.TotalCount}, true
}

func (c *CachedCatalog) store(ctx context.Context, key string, page repositories.CatalogPage) {
	cached := cachedPage{
		Items:      make([]document.ProfileDocument, 0, len(page.Items)),
		TotalCount: page.TotalCount,
	}
	for _, p := range page.Items {
		cached.Items = append(cached.Items, document.ToDocument(p))
	}

	raw, err := json.Marshal(cached)
	if err != nil {
		logger.Log(ctx).Warn(ctx, "failed to encode catalog cache entry", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.cache.Set(ctx, key, string(raw), c.ttl); err != nil {
		logger.Log(ctx).Warn(ctx, "failed to store catalog cache entry", zap.String("key", key), zap.Error(err))
	}
}

func (c *CachedCatalog) invalidate(ctx context.Context) {
	if _, err := c.cache.Incr(ctx, generationKey); err != nil {
		logger.Log(ctx).Warn(ctx, "failed to invalidate catalog cache", zap.Error(err))
	}
}
