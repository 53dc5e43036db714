package app_test

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"

	"devprofile/internal/profile/domain/entities"
	"devprofile/internal/profile/domain/services"
	"devprofile/internal/profile/ports/repositories"
)

// sameProfile заставляет mock вернуть переданный ему агрегат.
const sameProfile = "same-profile"

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

type mockProfileRepository struct {
	mock.Mock
}

func (m *mockProfileRepository) profileResult(args mock.Arguments, in *entities.DeveloperProfile) (*entities.DeveloperProfile, error) {
	switch v := args.Get(0).(type) {
	case string:
		if v == sameProfile {
			return in, args.Error(1)
		}
	case *entities.DeveloperProfile:
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProfileRepository) GetByID(ctx context.Context, id entities.DeveloperID) (*entities.DeveloperProfile, error) {
	args := m.Called(ctx, id)
	return m.profileResult(args, nil)
}

func (m *mockProfileRepository) GetAll(ctx context.Context) ([]*entities.DeveloperProfile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.DeveloperProfile), args.Error(1)
}

func (m *mockProfileRepository) SearchCatalog(ctx context.Context, search repositories.CatalogSearch) (repositories.CatalogPage, error) {
	args := m.Called(ctx, search)
	return args.Get(0).(repositories.CatalogPage), args.Error(1)
}

func (m *mockProfileRepository) Create(ctx context.Context, profile *entities.DeveloperProfile) (*entities.DeveloperProfile, error) {
	args := m.Called(ctx, profile)
	return m.profileResult(args, profile)
}

func (m *mockProfileRepository) Update(ctx context.Context, profile *entities.DeveloperProfile) (*entities.DeveloperProfile, error) {
	args := m.Called(ctx, profile)
	return m.profileResult(args, profile)
}

func (m *mockProfileRepository) Delete(ctx context.Context, id entities.DeveloperID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type mockMediaStorage struct {
	mock.Mock
}

func (m *mockMediaStorage) SaveAvatar(ctx context.Context, userID string, content io.Reader, contentType string) (string, error) {
	args := m.Called(ctx, userID, content, contentType)
	return args.String(0), args.Error(1)
}

func (m *mockMediaStorage) SaveProjectImage(ctx context.Context, userID, projectID string, content io.Reader, contentType string) (string, error) {
	args := m.Called(ctx, userID, projectID, content, contentType)
	return args.String(0), args.Error(1)
}

func (m *mockMediaStorage) Delete(ctx context.Context, relativePath string) error {
	args := m.Called(ctx, relativePath)
	return args.Error(0)
}

type mockObjectStorage struct {
	mock.Mock
}

func (m *mockObjectStorage) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *mockObjectStorage) Put(ctx context.Context, key string, data []byte, contentType string) error {
	args := m.Called(ctx, key, data, contentType)
	return args.Error(0)
}

type mockRenderer struct {
	mock.Mock
}

func (m *mockRenderer) RenderPDF(ctx context.Context, html []byte) ([]byte, error) {
	args := m.Called(ctx, html)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

type mockTemplate struct {
	mock.Mock
}

func (m *mockTemplate) Render(profile *entities.DeveloperProfile) ([]byte, error) {
	args := m.Called(profile)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *mockUserRepository) FindByID(ctx context.Context, id string) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *mockUserRepository) FindByGoogleSubject(ctx context.Context, subject string) (*entities.User, error) {
	args := m.Called(ctx, subject)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

type mockTokenRepository struct {
	mock.Mock
}

func (m *mockTokenRepository) StoreRefreshToken(ctx context.Context, token *services.RefreshToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *mockTokenRepository) FindByToken(ctx context.Context, token string) (*services.RefreshToken, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.RefreshToken), args.Error(1)
}

func (m *mockTokenRepository) RevokeToken(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *mockTokenRepository) RevokeAllUserTokens(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *mockTokenRepository) CleanupExpiredTokens(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type mockTokenService struct {
	mock.Mock
}

func (m *mockTokenService) GenerateAccessToken(ctx context.Context, userID, role string) (string, time.Time, error) {
	args := m.Called(ctx, userID, role)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *mockTokenService) GenerateRefreshToken(ctx context.Context, userID string) (string, time.Time, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *mockTokenService) ValidateAccessToken(ctx context.Context, token string) (*services.JWTClaims, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.JWTClaims), args.Error(1)
}

type mockGoogleVerifier struct {
	mock.Mock
}

func (m *mockGoogleVerifier) Verify(ctx context.Context, idToken string) (*services.GoogleIdentity, error) {
	args := m.Called(ctx, idToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.GoogleIdentity), args.Error(1)
}
