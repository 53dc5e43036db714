package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"devprofile/internal/profile/domain/entities"
	"devprofile/internal/profile/ports/repositories"
	"devprofile/pkg/logger"
)

const userColumns = "id, google_subject, email, display_name, picture_url, role, created_at, updated_at"

// UserRepository реализует интерфейс repositories.UserRepository для работы с Postgres.
type UserRepository struct {
	pool PgxPoolInterface
}

// NewUserRepository создает новый экземпляр репозитория пользователей.
func NewUserRepository(pool PgxPoolInterface) repositories.UserRepository {
	return &UserRepository{pool: pool}
}

// FindByID находит пользователя по ID.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "FindByID"))

	if id == "" {
		return nil, entities.ErrEmptyUserID
	}

	query := `
        SELECT ` + userColumns + `
        FROM users
        WHERE id = $1
    `

	user, err := scanUser(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "user not found", zap.String("id", id))
			return nil, entities.ErrUserNotFound
		}
		log.Error(ctx, "error finding user by id", zap.Error(err))
		return nil, fmt.Errorf("error querying user by id: %w", err)
	}

	return user, nil
}

// FindByGoogleSubject находит пользователя по идентификатору Google-аккаунта.
func (r *UserRepository) FindByGoogleSubject(ctx context.Context, subject string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "FindByGoogleSubject"))

	query := `
        SELECT ` + userColumns + `
        FROM users
        WHERE google_subject = $1
    `

	user, err := scanUser(r.pool.QueryRow(ctx, query, subject))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "user not found by google subject")
			return nil, entities.ErrUserNotFound
		}
		log.Error(ctx, "error finding user by google subject", zap.Error(err))
		return nil, fmt.Errorf("error querying user by google subject: %w", err)
	}

	return user, nil
}

// Create создает нового пользователя.
func (r *UserRepository) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "Create"))

	query := `
        INSERT INTO users (id, google_subject, email, display_name, picture_url, role, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING ` + userColumns

	created, err := scanUser(r.pool.QueryRow(ctx, query,
		user.ID,
		user.GoogleSubject,
		user.Email,
		user.DisplayName,
		user.PictureURL,
		user.Role,
		user.CreatedAt,
		user.UpdatedAt,
	))
	if err != nil {
		log.Error(ctx, "error creating user", zap.Error(err))
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	log.Info(ctx, "user created", zap.String("userID", created.ID))
	return created, nil
}

func scanUser(row pgx.Row) (*entities.User, error) {
	var user entities.User
	err := row.Scan(
		&user.ID,
		&user.GoogleSubject,
		&user.Email,
		&user.DisplayName,
		&user.PictureURL,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
