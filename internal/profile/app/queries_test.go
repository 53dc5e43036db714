package app_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"devprofile/internal/profile/app"
	"devprofile/internal/profile/domain/entities"
	"devprofile/internal/profile/domain/values"
	"devprofile/internal/profile/ports/repositories"
)

func catalogProfile(t *testing.T, id, first, role string, open bool, skills ...string) *entities.DeveloperProfile {
	t.Helper()
	name, err := values.NewPersonName(first, "Dev")
	require.NoError(t, err)
	email, err := values.NewEmailAddress(id + "@example.com")
	require.NoError(t, err)
	contact, err := values.NewContactInfo(nil, email, nil, nil)
	require.NoError(t, err)
	title, err := values.TryRoleTitle(role)
	require.NoError(t, err)

	p := entities.CreateDeveloperProfile(entities.DeveloperID(id), entities.ProfileDetails{
		Name:       name,
		Role:       title,
		Contact:    contact,
		OpenToWork: values.NewOpenToWorkStatus(open),
	}, createdAt)
	tags, err := values.NewSkillTags(skills)
	require.NoError(t, err)
	require.NoError(t, p.ReplaceSkills(tags, createdAt))
	return p
}

func TestCatalogFilter(t *testing.T) {
	profiles := []*entities.DeveloperProfile{
		catalogProfile(t, "p1", "Alice", "Backend Engineer", true, "Go", "Postgres"),
		catalogProfile(t, "p2", "Bob", "Frontend Engineer", false, "TypeScript", "go"),
		catalogProfile(t, "p3", "Carol", "Data Scientist", true, "Python"),
	}

	open := true
	tests := []struct {
		name  string
		query app.CatalogQuery
		want  []string
	}{
		{name: "no filters", query: app.CatalogQuery{}, want: []string{"p1", "p2", "p3"}},
		{name: "all skills required", query: app.CatalogQuery{Skills: []string{"GO", "postgres"}}, want: []string{"p1"}},
		{name: "single skill any case", query: app.CatalogQuery{Skills: []string{"Go"}}, want: []string{"p1", "p2"}},
		{name: "search in role", query: app.CatalogQuery{Search: "engineer"}, want: []string{"p1", "p2"}},
		{name: "search in name", query: app.CatalogQuery{Search: "caR"}, want: []string{"p3"}},
		{name: "open to work", query: app.CatalogQuery{OpenToWork: &open}, want: []string{"p1", "p3"}},
		{name: "verification", query: app.CatalogQuery{Verification: "verified"}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testContext(t)
			repo := new(mockProfileRepository)
			repo.On("GetAll", mock.Anything).Return(profiles, nil).Once()

			res, err := app.NewQueryHandlers(repo, app.NewValidator()).Catalog(ctx, tt.query)

			require.NoError(t, err)
			require.True(t, res.IsSuccess())
			ids := make([]string, 0, len(res.Value()))
			for _, card := range res.Value() {
				ids = append(ids, card.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestSearchCatalog(t *testing.T) {
	t.Run("defaults and paging math", func(t *testing.T) {
		ctx := testContext(t)
		repo := new(mockProfileRepository)
		expected := repositories.CatalogSearch{
			Skills: []string{"go"},
			Sort:   repositories.Sort{Field: repositories.SortByUpdatedAt, Order: repositories.SortDesc},
			Page:   repositories.Page{Number: 1, Size: app.DefaultPageSize},
		}
		repo.On("SearchCatalog", mock.Anything, expected).Return(repositories.CatalogPage{
			Items:      []*entities.DeveloperProfile{catalogProfile(t, "p1", "Alice", "", true, "Go")},
			TotalCount: 41,
		}, nil).Once()

		res, err := app.NewQueryHandlers(repo, app.NewValidator()).SearchCatalog(ctx, app.CatalogSearchQuery{Skills: []string{" Go "}})

		require.NoError(t, err)
		require.True(t, res.IsSuccess())
		assert.Equal(t, 41, res.Value().TotalCount)
		assert.Equal(t, 3, res.Value().TotalPages)
		assert.Equal(t, 1, res.Value().Page)
		assert.Equal(t, 20, res.Value().PageSize)
		assert.Len(t, res.Value().Items, 1)
		repo.AssertExpectations(t)
	})

	t.Run("page size is capped", func(t *testing.T) {
		ctx := testContext(t)
		repo := new(mockProfileRepository)
		repo.On("SearchCatalog", mock.Anything, mock.MatchedBy(func(s repositories.CatalogSearch) bool {
			return s.Page.Size == app.MaxPageSize && s.Page.Number == 3 &&
				s.Sort.Field == repositories.SortByName && s.Sort.Order == repositories.SortAsc
		})).Return(repositories.CatalogPage{}, nil).Once()

		res, err := app.NewQueryHandlers(repo, app.NewValidator()).SearchCatalog(ctx, app.CatalogSearchQuery{
			Page: 3, PageSize: 500, SortField: "name", SortOrder: "ASC",
		})

		require.NoError(t, err)
		require.True(t, res.IsSuccess())
		assert.Equal(t, 0, res.Value().TotalPages)
		assert.NotNil(t, res.Value().Items)
	})

	t.Run("page beyond addressable offset", func(t *testing.T) {
		ctx := testContext(t)
		repo := new(mockProfileRepository)

		res, err := app.NewQueryHandlers(repo, app.NewValidator()).SearchCatalog(ctx, app.CatalogSearchQuery{
			Page: math.MaxInt, PageSize: app.MaxPageSize,
		})

		require.NoError(t, err)
		require.False(t, res.IsSuccess())
		assert.Equal(t, app.KindValidation, res.Err().Kind)
		require.Len(t, res.Err().Details, 1)
		assert.Equal(t, "page", res.Err().Details[0].Field)
		repo.AssertNotCalled(t, "SearchCatalog", mock.Anything, mock.Anything)
	})

	t.Run("largest valid page keeps a non negative offset", func(t *testing.T) {
		ctx := testContext(t)
		repo := new(mockProfileRepository)
		lastPage := math.MaxInt / app.MaxPageSize
		repo.On("SearchCatalog", mock.Anything, mock.MatchedBy(func(s repositories.CatalogSearch) bool {
			return s.Page.Number == lastPage && s.Page.Offset() >= 0
		})).Return(repositories.CatalogPage{}, nil).Once()

		res, err := app.NewQueryHandlers(repo, app.NewValidator()).SearchCatalog(ctx, app.CatalogSearchQuery{
			Page: lastPage, PageSize: app.MaxPageSize,
		})

		require.NoError(t, err)
		require.True(t, res.IsSuccess(), "%v", res.Err())
		repo.AssertExpectations(t)
	})

	t.Run("unknown sort field", func(t *testing.T) {
		ctx := testContext(t)
		repo := new(mockProfileRepository)

		res, err := app.NewQueryHandlers(repo, app.NewValidator()).SearchCatalog(ctx, app.CatalogSearchQuery{SortField: "salary"})

		require.NoError(t, err)
		require.False(t, res.IsSuccess())
		assert.Equal(t, app.KindValidation, res.Err().Kind)
		repo.AssertNotCalled(t, "SearchCatalog", mock.Anything, mock.Anything)
	})
}

func TestPageOffset(t *testing.T) {
	assert.Equal(t, 0, repositories.Page{Number: 0, Size: 20}.Offset())
	assert.Equal(t, 40, repositories.Page{Number: 3, Size: 20}.Offset())
	assert.Equal(t, math.MaxInt, repositories.Page{Number: math.MaxInt, Size: 100}.Offset())
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, app.TotalPages(0, 20))
	assert.Equal(t, 1, app.TotalPages(20, 20))
	assert.Equal(t, 3, app.TotalPages(41, 20))
	assert.Equal(t, 0, app.TotalPages(5, 0))
}

func TestGetProfile(t *testing.T) {
	ctx := testContext(t)
	repo := new(mockProfileRepository)
	repo.On("GetByID", mock.Anything, entities.DeveloperID("user-1")).Return(existingProfile(t, "user-1"), nil).Once()
	repo.On("GetByID", mock.Anything, entities.DeveloperID("ghost")).Return(nil, nil).Once()
	handlers := app.NewQueryHandlers(repo, app.NewValidator())

	res, err := handlers.GetProfile(ctx, app.GetProfileQuery{ID: "user-1"})
	require.NoError(t, err)
	require.True(t, res.IsSuccess())
	assert.Equal(t, "ada@example.com", res.Value().Email)

	res, err = handlers.GetProfile(ctx, app.GetProfileQuery{ID: "ghost"})
	require.NoError(t, err)
	assert.Equal(t, app.KindNotFound, res.Err().Kind)
}
