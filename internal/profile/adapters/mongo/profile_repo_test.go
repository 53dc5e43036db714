package mongo_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"devprofile/internal/profile/adapters/document"
	profilemongo "devprofile/internal/profile/adapters/mongo"
	"devprofile/internal/profile/domain/entities"
	"devprofile/internal/profile/domain/values"
	"devprofile/internal/profile/ports/repositories"
	"devprofile/pkg/logger"
)

const namespace = "devprofile.profiles"

var created = time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC)

func testContext(t *testing.T) context.Context {
	t.Helper()
	log, err := logger.NewLogger(logger.Development, "error")
	require.NoError(t, err)
	return logger.NewContext(context.Background(), log)
}

func newProfile(t *testing.T, id, first string, skills ...string) *entities.DeveloperProfile {
	t.Helper()
	name, err := values.NewPersonName(first, "Lovelace")
	require.NoError(t, err)
	email, err := values.NewEmailAddress(id + "@example.com")
	require.NoError(t, err)
	contact, err := values.NewContactInfo(nil, email, nil, nil)
	require.NoError(t, err)

	p := entities.CreateDeveloperProfile(entities.DeveloperID(id), entities.ProfileDetails{Name: name, Contact: contact}, created)
	tags, err := values.NewSkillTags(skills)
	require.NoError(t, err)
	require.NoError(t, p.ReplaceSkills(tags, created))
	return p
}

func bsonDoc(t *testing.T, p *entities.DeveloperProfile) bson.D {
	t.Helper()
	raw, err := bson.Marshal(document.ToDocument(p))
	require.NoError(t, err)
	var doc bson.D
	require.NoError(t, bson.Unmarshal(raw, &doc))
	return doc
}

func TestProfileRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("get by id", func(mt *mtest.T) {
		stored := newProfile(t, "user-1", "Ada", "Go")
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace, mtest.FirstBatch, bsonDoc(t, stored)))

		profile, err := profilemongo.NewProfileRepository(mt.Coll).GetByID(testContext(t), "user-1")

		require.NoError(t, err)
		require.NotNil(t, profile)
		assert.Equal(t, stored.Snapshot(), profile.Snapshot())
	})

	mt.Run("get by id missing", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace, mtest.FirstBatch))

		profile, err := profilemongo.NewProfileRepository(mt.Coll).GetByID(testContext(t), "ghost")

		require.NoError(t, err)
		assert.Nil(t, profile)
	})

	mt.Run("get all", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace, mtest.FirstBatch,
			bsonDoc(t, newProfile(t, "p1", "Ada")),
			bsonDoc(t, newProfile(t, "p2", "Grace")),
		))

		profiles, err := profilemongo.NewProfileRepository(mt.Coll).GetAll(testContext(t))

		require.NoError(t, err)
		require.Len(t, profiles, 2)
		assert.Equal(t, entities.DeveloperID("p2"), profiles[1].ID())
	})

	mt.Run("create", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		p := newProfile(t, "user-1", "Ada")
		saved, err := profilemongo.NewProfileRepository(mt.Coll).Create(testContext(t), p)

		require.NoError(t, err)
		assert.Same(t, p, saved)
	})

	mt.Run("create duplicate", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "duplicate key error",
		}))

		_, err := profilemongo.NewProfileRepository(mt.Coll).Create(testContext(t), newProfile(t, "user-1", "Ada"))

		assert.ErrorIs(t, err, repositories.ErrProfileExists)
	})

	mt.Run("update", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}))

		p := newProfile(t, "user-1", "Ada")
		saved, err := profilemongo.NewProfileRepository(mt.Coll).Update(testContext(t), p)

		require.NoError(t, err)
		assert.Same(t, p, saved)
	})

	mt.Run("update missing", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}))

		saved, err := profilemongo.NewProfileRepository(mt.Coll).Update(testContext(t), newProfile(t, "ghost", "Ada"))

		require.NoError(t, err)
		assert.Nil(t, saved)
	})

	mt.Run("delete", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}),
		)
		repo := profilemongo.NewProfileRepository(mt.Coll)

		deleted, err := repo.Delete(testContext(t), "user-1")
		require.NoError(t, err)
		assert.True(t, deleted)

		deleted, err = repo.Delete(testContext(t), "ghost")
		require.NoError(t, err)
		assert.False(t, deleted)
	})

	mt.Run("search catalog", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, namespace, mtest.FirstBatch, bson.D{{Key: "n", Value: int32(41)}}),
			mtest.CreateCursorResponse(0, namespace, mtest.FirstBatch, bsonDoc(t, newProfile(t, "p1", "Ada", "Go"))),
		)

		page, err := profilemongo.NewProfileRepository(mt.Coll).SearchCatalog(testContext(t), repositories.CatalogSearch{
			Skills: []string{"go"},
			Sort:   repositories.Sort{Field: repositories.SortByUpdatedAt, Order: repositories.SortDesc},
			Page:   repositories.Page{Number: 3, Size: 20},
		})

		require.NoError(t, err)
		assert.Equal(t, 41, page.TotalCount)
		require.Len(t, page.Items, 1)
		assert.Equal(t, []string{"Go"}, values.SkillStrings(page.Items[0].Skills()))
	})
}

func TestCatalogFilter(t *testing.T) {
	open := false
	premium := values.Premium

	filter := profilemongo.CatalogFilter(repositories.CatalogSearch{
		Search:       "a.b",
		Skills:       []string{"go", "sql"},
		OpenToWork:   &open,
		Verification: &premium,
	})

	re := primitive.Regex{Pattern: `a\.b`, Options: "i"}
	assert.Equal(t, bson.A{
		bson.M{"firstName": re},
		bson.M{"lastName": re},
		bson.M{"role": re},
	}, filter["$or"])
	assert.Equal(t, bson.M{"$all": []string{"go", "sql"}}, filter["skills_lower"])
	assert.Equal(t, false, filter["openToWork"])
	assert.Equal(t, "Premium", filter["verification"])

	assert.Empty(t, profilemongo.CatalogFilter(repositories.CatalogSearch{Search: "   "}))
}

func TestCatalogSort(t *testing.T) {
	tests := []struct {
		name string
		sort repositories.Sort
		want bson.D
	}{
		{
			name: "name ascending",
			sort: repositories.Sort{Field: repositories.SortByName, Order: repositories.SortAsc},
			want: bson.D{{Key: "lastName", Value: 1}, {Key: "firstName", Value: 1}, {Key: "_id", Value: 1}},
		},
		{
			name: "updated descending",
			sort: repositories.Sort{Field: repositories.SortByUpdatedAt, Order: repositories.SortDesc},
			want: bson.D{{Key: "updatedAt", Value: -1}, {Key: "_id", Value: 1}},
		},
		{
			name: "id descending has no tiebreak",
			sort: repositories.Sort{Field: repositories.SortByID, Order: repositories.SortDesc},
			want: bson.D{{Key: "_id", Value: -1}},
		},
		{
			name: "unknown field falls back to updatedAt",
			sort: repositories.Sort{Field: "salary"},
			want: bson.D{{Key: "updatedAt", Value: -1}, {Key: "_id", Value: 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, profilemongo.CatalogSort(tt.sort))
		})
	}
}
