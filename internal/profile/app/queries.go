package app

import (
	"context"
	"math"
	"strings"

	"go.uber.org/zap"

	"devprofile/internal/profile/domain/entities"
	"devprofile/internal/profile/domain/values"
	"devprofile/internal/profile/ports/repositories"
	"devprofile/pkg/logger"
)

const (
	methodGetProfile    = "GetProfile"
	methodCatalog       = "Catalog"
	methodSearchCatalog = "SearchCatalog"
)

// Параметры постраничного каталога.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

const (
	errCtxListProfiles  = "failed to list profiles"
	errCtxSearchCatalog = "failed to search catalog"
)

// QueryHandlers отвечает на запросы чтения.
type QueryHandlers struct {
	repo      repositories.ProfileRepository
	validator *Validator
}

func NewQueryHandlers(repo repositories.ProfileRepository, validator *Validator) *QueryHandlers {
	return &QueryHandlers{repo: repo, validator: validator}
}

func (h *QueryHandlers) GetProfile(ctx context.Context, q GetProfileQuery) (Result[ProfileDTO], error) {
	log := logger.Log(ctx).With(zap.String("method", methodGetProfile), zap.String("profileID", q.ID))

	if vErr := h.validator.Validate(q); vErr != nil {
		return Fail[ProfileDTO](vErr), nil
	}

	profile, err := h.repo.GetByID(ctx, entities.DeveloperID(q.ID))
	if err != nil {
		log.Error(ctx, errCtxLoadProfile, zap.Error(err))
		return Result[ProfileDTO]{}, wrapErr(errCtxLoadProfile, err)
	}
	if profile == nil {
		return Fail[ProfileDTO](NotFound(CodeProfileNotFound, msgProfileNotFound)), nil
	}
	return Ok(ToProfileDTO(profile)), nil
}

// Catalog фильтрует все профили в памяти. Все перечисленные навыки должны присутствовать.
func (h *QueryHandlers) Catalog(ctx context.Context, q CatalogQuery) (Result[[]ProfileCardDTO], error) {
	log := logger.Log(ctx).With(zap.String("method", methodCatalog))

	profiles, err := h.repo.GetAll(ctx)
	if err != nil {
		log.Error(ctx, errCtxListProfiles, zap.Error(err))
		return Result[[]ProfileCardDTO]{}, wrapErr(errCtxListProfiles, err)
	}

	filter := newCatalogFilter(q.Search, q.Skills, q.OpenToWork, q.Verification)
	cards := make([]ProfileCardDTO, 0, len(profiles))
	for _, p := range profiles {
		if filter.match(p) {
			cards = append(cards, ToProfileCardDTO(p))
		}
	}

	log.Debug(ctx, "catalog filtered", zap.Int("total", len(profiles)), zap.Int("matched", len(cards)))
	return Ok(cards), nil
}

// SearchCatalog выполняет постраничный поиск в хранилище.
func (h *QueryHandlers) SearchCatalog(ctx context.Context, q CatalogSearchQuery) (Result[PagedResult[ProfileCardDTO]], error) {
	log := logger.Log(ctx).With(zap.String("method", methodSearchCatalog))

	search, bErr := buildCatalogSearch(q)
	if bErr != nil {
		return Fail[PagedResult[ProfileCardDTO]](bErr), nil
	}

	page, err := h.repo.SearchCatalog(ctx, search)
	if err != nil {
		log.Error(ctx, errCtxSearchCatalog, zap.Error(err))
		return Result[PagedResult[ProfileCardDTO]]{}, wrapErr(errCtxSearchCatalog, err)
	}

	cards := make([]ProfileCardDTO, 0, len(page.Items))
	for _, p := range page.Items {
		cards = append(cards, ToProfileCardDTO(p))
	}

	return Ok(PagedResult[ProfileCardDTO]{
		Items:      cards,
		TotalCount: page.TotalCount,
		Page:       search.Page.Number,
		PageSize:   search.Page.Size,
		TotalPages: TotalPages(page.TotalCount, search.Page.Size),
	}), nil
}

// TotalPages - число страниц с округлением вверх.
func TotalPages(total, size int) int {
	if size <= 0 || total <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

func buildCatalogSearch(q CatalogSearchQuery) (repositories.CatalogSearch, *Error) {
	search := repositories.CatalogSearch{
		Search:     strings.TrimSpace(q.Search),
		Skills:     normalizeSkills(q.Skills),
		OpenToWork: q.OpenToWork,
		Sort:       repositories.Sort{Field: repositories.SortByUpdatedAt, Order: repositories.SortDesc},
		Page:       repositories.Page{Number: q.Page, Size: q.PageSize},
	}

	if v := strings.TrimSpace(q.Verification); v != "" {
		status := values.ParseVerificationStatus(v)
		search.Verification = &status
	}

	switch repositories.SortField(q.SortField) {
	case "":
	case repositories.SortByUpdatedAt, repositories.SortByName, repositories.SortByID:
		search.Sort.Field = repositories.SortField(q.SortField)
	default:
		return search, ValidationFailed(FieldViolation{Field: "sort", Message: "must be one of updatedAt, name, id"})
	}

	switch repositories.SortOrder(strings.ToLower(q.SortOrder)) {
	case "":
	case repositories.SortAsc:
		search.Sort.Order = repositories.SortAsc
	case repositories.SortDesc:
		search.Sort.Order = repositories.SortDesc
	default:
		return search, ValidationFailed(FieldViolation{Field: "order", Message: "must be asc or desc"})
	}

	if search.Page.Number < 1 {
		search.Page.Number = 1
	}
	if search.Page.Size <= 0 {
		search.Page.Size = DefaultPageSize
	}
	if search.Page.Size > MaxPageSize {
		search.Page.Size = MaxPageSize
	}
	if search.Page.Number > math.MaxInt/search.Page.Size {
		return search, ValidationFailed(FieldViolation{Field: "page", Message: "is out of range"})
	}
	return search, nil
}

func normalizeSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			out = append(out, s)
		}
	}
	return out
}

type catalogFilter struct {
	search       string
	skills       []string
	openToWork   *bool
	verification *values.VerificationStatus
}

func newCatalogFilter(search string, skills []string, openToWork *bool, verification string) catalogFilter {
	f := catalogFilter{
		search:     strings.ToLower(strings.TrimSpace(search)),
		skills:     normalizeSkills(skills),
		openToWork: openToWork,
	}
	if v := strings.TrimSpace(verification); v != "" {
		status := values.ParseVerificationStatus(v)
		f.verification = &status
	}
	return f
}

func (f catalogFilter) match(p *entities.DeveloperProfile) bool {
	if f.search != "" {
		haystack := []string{strings.ToLower(p.Name().FirstName()), strings.ToLower(p.Name().LastName())}
		if role := p.Role(); role != nil {
			haystack = append(haystack, strings.ToLower(role.String()))
		}
		found := false
		for _, h := range haystack {
			if strings.Contains(h, f.search) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if len(f.skills) > 0 {
		have := make(map[string]struct{}, len(p.Skills()))
		for _, s := range p.Skills() {
			have[strings.ToLower(s.String())] = struct{}{}
		}
		for _, want := range f.skills {
			if _, ok := have[want]; !ok {
				return false
			}
		}
	}

	if f.openToWork != nil && p.OpenToWork().IsOpen() != *f.openToWork {
		return false
	}
	if f.verification != nil && p.Verification() != *f.verification {
		return false
	}
	return true
}
