package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"

	"devprofile/pkg/logger"
)

// Константы для сообщений об ошибках миграций.
const (
	ErrCreateMigrationInstance = "failed to create migration instance"
	ErrApplyMigrations         = "failed to apply migrations"
	ErrDirtyMigration          = "database schema is dirty"
)

// SourceURL превращает путь к каталогу миграций в URL источника golang-migrate.
// Значения со схемой возвращаются без изменений.
func SourceURL(migrationsPath string) string {
	if strings.Contains(migrationsPath, "://") {
		return migrationsPath
	}
	return "file://" + migrationsPath
}

// MigrateDSN применяет миграции из migrationsPath (например, migrations/profile) и
// сообщает итоговую версию схемы.
func MigrateDSN(ctx context.Context, dsn string, migrationsPath string) error {
	source := SourceURL(migrationsPath)
	log := logger.Log(ctx).With(zap.String("component", "migrate"), zap.String("source", source))

	m, err := migrate.New(source, dsn)
	if err != nil {
		log.Error(ctx, ErrCreateMigrationInstance, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrCreateMigrationInstance, err)
	}
	defer func() {
		if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
			log.Warn(ctx, "failed to close migration instance", zap.NamedError("source", srcErr), zap.NamedError("database", dbErr))
		}
	}()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Error(ctx, ErrApplyMigrations, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrApplyMigrations, err)
	}

	version, dirty, err := m.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		log.Info(ctx, LogMigrationsApplied, zap.String("version", "none"))
	case err != nil:
		log.Warn(ctx, "failed to read schema version", zap.Error(err))
	case dirty:
		log.Error(ctx, ErrDirtyMigration, zap.Uint("version", version))
		return fmt.Errorf("%s: version %d", ErrDirtyMigration, version)
	default:
		log.Info(ctx, LogMigrationsApplied, zap.Uint("version", version))
	}
	return nil
}
