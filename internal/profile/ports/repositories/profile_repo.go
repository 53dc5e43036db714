// Package repositories определяет порты хранилищ.
package repositories

import (
	"context"
	"errors"
	"math"

	"devprofile/internal/profile/domain/entities"
	"devprofile/internal/profile/domain/values"
)

// ErrProfileExists возвращается Create, если профиль с таким id уже сохранен.
var ErrProfileExists = errors.New("profile already exists")

// SortField - поле сортировки каталога.
type SortField string

const (
	SortByUpdatedAt SortField = "updatedAt"
	SortByName      SortField = "name"
	SortByID        SortField = "id"
)

// SortOrder - направление сортировки.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Sort - типизированное описание сортировки.
type Sort struct {
	Field SortField
	Order SortOrder
}

// Page - номер страницы с единицы и ее размер.
type Page struct {
	Number int
	Size   int
}

// Offset возвращает число пропускаемых записей. При переполнении возвращается math.MaxInt.
func (p Page) Offset() int {
	if p.Number < 1 || p.Size <= 0 {
		return 0
	}
	if p.Number-1 > math.MaxInt/p.Size {
		return math.MaxInt
	}
	return (p.Number - 1) * p.Size
}

// CatalogSearch - запрос к каталогу профилей.
type CatalogSearch struct {
	Search       string
	Skills       []string
	OpenToWork   *bool
	Verification *values.VerificationStatus
	Sort         Sort
	Page         Page
}

// CatalogPage - страница результатов и общее число совпадений.
type CatalogPage struct {
	Items      []*entities.DeveloperProfile
	TotalCount int
}

// ProfileRepository хранит агрегаты DeveloperProfile.
type ProfileRepository interface {
	GetByID(ctx context.Context, id entities.DeveloperID) (*entities.DeveloperProfile, error)
	GetAll(ctx context.Context) ([]*entities.DeveloperProfile, error)
	SearchCatalog(ctx context.Context, search CatalogSearch) (CatalogPage, error)
	Create(ctx context.Context, profile *entities.DeveloperProfile) (*entities.DeveloperProfile, error)
	// Update возвращает nil без ошибки, если профиль не найден.
	Update(ctx context.Context, profile *entities.DeveloperProfile) (*entities.DeveloperProfile, error)
	Delete(ctx context.Context, id entities.DeveloperID) (bool, error)
}
