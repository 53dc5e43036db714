package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"devprofile/internal/profile/adapters/cache"
	mongorepo "devprofile/internal/profile/adapters/mongo"
	pgrepo "devprofile/internal/profile/adapters/postgres"
	"devprofile/internal/profile/adapters/renderer"
	adaptersvc "devprofile/internal/profile/adapters/services"
	"devprofile/internal/profile/adapters/storage"
	"devprofile/internal/profile/app"
	"devprofile/internal/profile/config"
	"devprofile/internal/profile/domain/services"
	"devprofile/internal/profile/ports/api"
	"devprofile/internal/profile/ports/repositories"
	svc "devprofile/internal/profile/ports/services"
	"devprofile/internal/profile/resilience"
	mongodb "devprofile/pkg/db/mongo"
	"devprofile/pkg/db/postgres"
	redisdb "devprofile/pkg/db/redis"
	"devprofile/pkg/logger"
	"devprofile/pkg/shutdown"
)

const (
	LogInitDatabase  = "initializing database"
	LogInitStorage   = "initializing media storage"
	LogInitCache     = "initializing catalog cache"
	LogInitServices  = "initializing services"
	LogTokensCleaned = "expired refresh tokens cleaned up"

	ErrConnectPostgres  = "failed to connect to postgres"
	ErrApplyMigrations  = "failed to apply migrations"
	ErrConnectMongo     = "failed to connect to mongo"
	ErrEnsureIndexes    = "failed to ensure mongo indexes"
	ErrConnectRedis     = "failed to connect to redis"
	ErrCreateS3Client   = "failed to create s3 client"
	ErrCreateTemplate   = "failed to parse resume template"
	ErrCleanupTokens    = "failed to clean up expired refresh tokens"
	tokenCleanupPeriod  = time.Hour
	rendererServiceName = "gotenberg"
)

type infrastructure struct {
	auth       api.AuthUseCase
	dispatcher *app.Dispatcher
	closers    []shutdown.Hook
}

// buildInfrastructure подключает хранилища и собирает сценарии приложения.
// При ошибке уже открытые соединения закрываются.
func buildInfrastructure(ctx context.Context, cfg *config.Config) (infra *infrastructure, err error) {
	log := logger.Log(ctx)
	infra = &infrastructure{}
	defer func() {
		if err != nil {
			_ = shutdown.Run(context.WithoutCancel(ctx), 5*time.Second, infra.closers...)
			infra = nil
		}
	}()

	log.Info(ctx, LogInitDatabase, zap.String("driver", cfg.Storage.Driver))
	db, err := postgres.New(ctx, cfg.Postgres.GetDSN(), postgres.PoolOptions{
		MinConns:        int32(cfg.Postgres.MinConn), //nolint:gosec
		MaxConns:        int32(cfg.Postgres.MaxConn), //nolint:gosec
		MaxConnLifetime: cfg.Postgres.MaxConnLifetime,
	})
	if err != nil {
		return infra, fmt.Errorf("%s: %w", ErrConnectPostgres, err)
	}
	infra.closers = append(infra.closers, db.Close)

	if cfg.Migrations.Enabled {
		if err := postgres.MigrateDSN(ctx, cfg.Postgres.GetConnectionURL(), cfg.Migrations.Path); err != nil {
			return infra, fmt.Errorf("%s: %w", ErrApplyMigrations, err)
		}
	}

	repoFactory := pgrepo.NewRepositoryFactory(db.Pool())
	profileRepo := repoFactory.ProfileRepository()

	if cfg.Storage.UseMongo() {
		client, err := mongodb.New(ctx, cfg.Mongo.URI, cfg.Mongo.Database, cfg.Mongo.ConnectTimeout)
		if err != nil {
			return infra, fmt.Errorf("%s: %w", ErrConnectMongo, err)
		}
		infra.closers = append(infra.closers, client.Close)

		mongoRepo := mongorepo.NewProfileRepository(client.Collection(cfg.Mongo.Collection))
		if err := mongoRepo.EnsureIndexes(ctx); err != nil {
			return infra, fmt.Errorf("%s: %w", ErrEnsureIndexes, err)
		}
		profileRepo = mongoRepo
	}

	if cfg.Redis.Enabled {
		log.Info(ctx, LogInitCache, zap.String("address", cfg.Redis.GetAddress()))
		client, err := redisdb.NewClient(ctx, redisdb.Config{
			Addr:            cfg.Redis.GetAddress(),
			Password:        cfg.Redis.Password,
			DB:              cfg.Redis.DB,
			PoolSize:        cfg.Redis.PoolSize,
			MinIdle:         cfg.Redis.MinIdle,
			DialTimeout:     cfg.Redis.ConnectTimeout,
			ReadTimeout:     cfg.Redis.ReadTimeout,
			WriteTimeout:    cfg.Redis.WriteTimeout,
			ConnMaxIdleTime: cfg.Redis.IdleTimeout,
			ConnMaxLifetime: cfg.Redis.MaxConnLifetime,
		})
		if err != nil {
			return infra, fmt.Errorf("%s: %w", ErrConnectRedis, err)
		}
		infra.closers = append(infra.closers, func(context.Context) error { return client.Close() })

		redisCache := cache.NewRedisCache(client, cfg.Redis.CatalogTTL)
		profileRepo = cache.NewCachedCatalog(profileRepo, redisCache, cfg.Redis.CatalogTTL)
	}

	log.Info(ctx, LogInitStorage, zap.String("driver", cfg.Media.Driver))
	media, objects, err := buildStorage(ctx, cfg)
	if err != nil {
		return infra, err
	}

	log.Info(ctx, LogInitServices)
	serviceFactory := adaptersvc.NewServiceFactory(
		services.JWTConfig{
			SecretKey:       []byte(cfg.JWT.SecretKey),
			Issuer:          cfg.JWT.Issuer,
			AccessTokenTTL:  cfg.JWT.GetAccessTokenTTL(),
			RefreshTokenTTL: cfg.JWT.GetRefreshTokenTTL(),
		},
		adaptersvc.GoogleVerifierConfig{
			ClientID:     cfg.Google.ClientID,
			DiscoveryURL: cfg.Google.DiscoveryURL,
			JWKSTTL:      cfg.Google.JWKSTTL,
			HTTPClient:   &http.Client{Timeout: cfg.Google.Timeout},
		},
		nil,
	)
	clock := serviceFactory.Clock()

	template, err := renderer.NewHTMLTemplate()
	if err != nil {
		return infra, fmt.Errorf("%s: %w", ErrCreateTemplate, err)
	}
	pdf := renderer.NewGotenbergRenderer(cfg.Renderer.URL, cfg.Renderer.Timeout,
		resilience.NewDefaultServiceResilience(rendererServiceName))

	validator := app.NewValidator()
	infra.dispatcher = app.NewProfileDispatcher(app.Handlers{
		Profiles:       app.NewProfileHandlers(profileRepo, clock, validator),
		Projects:       app.NewProjectHandlers(profileRepo, clock, validator),
		WorkExperience: app.NewWorkExperienceHandlers(profileRepo, clock, validator),
		Media:          app.NewMediaHandlers(profileRepo, clock, validator, media, cfg.Media.PublicPath, cfg.Media.MaxSize),
		Queries:        app.NewQueryHandlers(profileRepo, validator),
		Resume:         app.NewResumeUseCase(profileRepo, template, pdf, objects, validator, cfg.Renderer.ResumePrefix),
	})

	tokenRepo := repoFactory.TokenRepository()
	infra.auth = app.NewAuthUseCase(
		repoFactory.UserRepository(),
		tokenRepo,
		serviceFactory.TokenService(),
		serviceFactory.GoogleVerifier(),
		clock,
	)

	stopCleanup := startTokenCleanup(ctx, tokenRepo, tokenCleanupPeriod)
	infra.closers = append(infra.closers, func(context.Context) error {
		stopCleanup()
		return nil
	})

	return infra, nil
}

// buildStorage выбирает хранилище медиа и кеша резюме.
func buildStorage(ctx context.Context, cfg *config.Config) (svc.MediaStorage, svc.ObjectStorage, error) {
	if !cfg.Media.UseS3() {
		return storage.NewLocalMediaStorage(cfg.Media.RootDir, cfg.Media.MaxSize),
			storage.NewLocalObjectStorage(cfg.Renderer.CacheDir), nil
	}

	client, err := storage.NewS3Client(ctx, storage.S3Config{
		Region:          cfg.S3.Region,
		Bucket:          cfg.S3.Bucket,
		Endpoint:        cfg.S3.Endpoint,
		AccessKeyID:     cfg.S3.AccessKeyID,
		SecretAccessKey: cfg.S3.SecretAccessKey,
		UsePathStyle:    cfg.S3.UsePathStyle,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", ErrCreateS3Client, err)
	}
	return storage.NewS3MediaStorage(client, cfg.S3.Bucket, cfg.Media.MaxSize),
		storage.NewS3ObjectStorage(client, cfg.S3.Bucket, ""), nil
}

// startTokenCleanup периодически удаляет просроченные refresh-токены.
func startTokenCleanup(ctx context.Context, repo repositories.TokenRepository, period time.Duration) context.CancelFunc {
	ctx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	log := logger.Log(ctx)

	go func() {
		ticker := time.NewTicker(period)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := repo.CleanupExpiredTokens(ctx); err != nil {
					log.Error(ctx, ErrCleanupTokens, zap.Error(err))
					continue
				}
				log.Debug(ctx, LogTokensCleaned)
			}
		}
	}()

	return cancel
}
