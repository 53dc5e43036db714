package postgres

import (
	"devprofile/internal/profile/ports/repositories"
)

// RepositoryFactory создает все репозитории сервиса поверх одного пула.
type RepositoryFactory struct {
	profileRepo repositories.ProfileRepository
	userRepo    repositories.UserRepository
	tokenRepo   repositories.TokenRepository
}

// NewRepositoryFactory создает новую фабрику репозиториев.
func NewRepositoryFactory(pool PgxPoolInterface) *RepositoryFactory {
	return &RepositoryFactory{
		profileRepo: NewProfileRepository(pool),
		userRepo:    NewUserRepository(pool),
		tokenRepo:   NewTokenRepository(pool),
	}
}

func (f *RepositoryFactory) ProfileRepository() repositories.ProfileRepository {
	return f.profileRepo
}

// UserRepository возвращает репозиторий пользователей.
func (f *RepositoryFactory) UserRepository() repositories.UserRepository {
	return f.userRepo
}

// TokenRepository возвращает репозиторий токенов.
func (f *RepositoryFactory) TokenRepository() repositories.TokenRepository {
	return f.tokenRepo
}
