package repositories

import (
	"context"

	"devprofile/internal/profile/domain/entities"
)

// UserRepository хранит учетные записи.
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) (*entities.User, error)
	FindByID(ctx context.Context, id string) (*entities.User, error)
	FindByGoogleSubject(ctx context.Context, subject string) (*entities.User, error)
}
