// Package mongo реализует хранилище профилей поверх коллекции MongoDB.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"devprofile/internal/profile/adapters/document"
	"devprofile/internal/profile/domain/entities"
	"devprofile/internal/profile/ports/repositories"
	"devprofile/pkg/logger"
)

// sortKeys - допустимые поля сортировки каталога.
var sortKeys = map[repositories.SortField][]string{
	repositories.SortByUpdatedAt: {"updatedAt"},
	repositories.SortByName:      {"lastName", "firstName"},
	repositories.SortByID:        {"_id"},
}

var _ repositories.ProfileRepository = (*ProfileRepository)(nil)

// ProfileRepository хранит ProfileDocument, по одному документу на профиль.
type ProfileRepository struct {
	coll *mongo.Collection
}

// NewProfileRepository создает репозиторий профилей над коллекцией.
func NewProfileRepository(coll *mongo.Collection) *ProfileRepository {
	return &ProfileRepository{coll: coll}
}

// EnsureIndexes создает индексы для фильтров и сортировок каталога.
func (r *ProfileRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "skills_lower", Value: 1}}},
		{Keys: bson.D{{Key: "updatedAt", Value: -1}, {Key: "_id", Value: 1}}},
		{Keys: bson.D{{Key: "lastName", Value: 1}, {Key: "firstName", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("error creating profile indexes: %w", err)
	}
	return nil
}

func (r *ProfileRepository) GetByID(ctx context.Context, id entities.DeveloperID) (*entities.DeveloperProfile, error) {
	log := logger.Log(ctx).With(zap.String("repository", "profile"), zap.String("method", "GetByID"))

	var doc document.ProfileDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			log.Debug(ctx, "profile not found", zap.String("id", id.String()))
			return nil, nil
		}
		log.Error(ctx, "error finding profile by id", zap.Error(err))
		return nil, fmt.Errorf("error querying profile by id: %w", err)
	}

	return document.FromDocument(doc)
}

func (r *ProfileRepository) GetAll(ctx context.Context) ([]*entities.DeveloperProfile, error) {
	log := logger.Log(ctx).With(zap.String("repository", "profile"), zap.String("method", "GetAll"))

	opts := options.Find().SetSort(bson.D{{Key: "updatedAt", Value: -1}, {Key: "_id", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		log.Error(ctx, "error querying profiles", zap.Error(err))
		return nil, fmt.Errorf("error querying profiles: %w", err)
	}

	profiles, err := collect(ctx, cursor)
	if err != nil {
		log.Error(ctx, "error reading profiles", zap.Error(err))
		return nil, err
	}
	return profiles, nil
}

// SearchCatalog считает совпадения и читает одну страницу с тем же фильтром.
func (r *ProfileRepository) SearchCatalog(ctx context.Context, search repositories.CatalogSearch) (repositories.CatalogPage, error) {
	log := logger.Log(ctx).With(zap.String("repository", "profile"), zap.String("method", "SearchCatalog"))

	filter := CatalogFilter(search)

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		log.Error(ctx, "error counting catalog", zap.Error(err))
		return repositories.CatalogPage{}, fmt.Errorf("error counting catalog: %w", err)
	}

	opts := options.Find().
		SetSort(CatalogSort(search.Sort)).
		SetSkip(int64(search.Page.Offset())).
		SetLimit(int64(search.Page.Size))

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		log.Error(ctx, "error querying catalog", zap.Error(err))
		return repositories.CatalogPage{}, fmt.Errorf("error querying catalog: %w", err)
	}

	items, err := collect(ctx, cursor)
	if err != nil {
		log.Error(ctx, "error reading catalog", zap.Error(err))
		return repositories.CatalogPage{}, err
	}

	log.Debug(ctx, "catalog searched", zap.Int64("total", total), zap.Int("returned", len(items)))
	return repositories.CatalogPage{Items: items, TotalCount: int(total)}, nil
}

func (r *ProfileRepository) Create(ctx context.Context, profile *entities.DeveloperProfile) (*entities.DeveloperProfile, error) {
	log := logger.Log(ctx).With(zap.String("repository", "profile"), zap.String("method", "Create"))

	if _, err := r.coll.InsertOne(ctx, document.ToDocument(profile)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			log.Debug(ctx, "profile already exists", zap.String("id", profile.ID().String()))
			return nil, repositories.ErrProfileExists
		}
		log.Error(ctx, "error creating profile", zap.Error(err))
		return nil, fmt.Errorf("error creating profile: %w", err)
	}
	return profile, nil
}

func (r *ProfileRepository) Update(ctx context.Context, profile *entities.DeveloperProfile) (*entities.DeveloperProfile, error) {
	log := logger.Log(ctx).With(zap.String("repository", "profile"), zap.String("method", "Update"))

	doc := document.ToDocument(profile)
	result, err := r.coll.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc)
	if err != nil {
		log.Error(ctx, "error updating profile", zap.Error(err))
		return nil, fmt.Errorf("error updating profile: %w", err)
	}
	if result.MatchedCount == 0 {
		log.Debug(ctx, "profile not found for update", zap.String("id", doc.ID))
		return nil, nil
	}
	return profile, nil
}

func (r *ProfileRepository) Delete(ctx context.Context, id entities.DeveloperID) (bool, error) {
	log := logger.Log(ctx).With(zap.String("repository", "profile"), zap.String("method", "Delete"))

	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		log.Error(ctx, "error deleting profile", zap.Error(err))
		return false, fmt.Errorf("error deleting profile: %w", err)
	}
	return result.DeletedCount > 0, nil
}

// CatalogFilter строит фильтр каталога. Текст поиска экранируется и сравнивается без учета регистра.
func CatalogFilter(search repositories.CatalogSearch) bson.M {
	filter := bson.M{}

	if s := strings.TrimSpace(search.Search); s != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(s), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"firstName": re},
			bson.M{"lastName": re},
			bson.M{"role": re},
		}
	}
	if len(search.Skills) > 0 {
		filter["skills_lower"] = bson.M{"$all": search.Skills}
	}
	if search.OpenToWork != nil {
		filter["openToWork"] = *search.OpenToWork
	}
	if search.Verification != nil {
		filter["verification"] = search.Verification.String()
	}
	return filter
}

// CatalogSort возвращает порядок сортировки с _id в качестве последнего ключа.
func CatalogSort(sort repositories.Sort) bson.D {
	keys, ok := sortKeys[sort.Field]
	if !ok {
		keys = sortKeys[repositories.SortByUpdatedAt]
	}
	direction := -1
	if sort.Order == repositories.SortAsc {
		direction = 1
	}

	order := make(bson.D, 0, len(keys)+1)
	for _, k := range keys {
		order = append(order, bson.E{Key: k, Value: direction})
	}
	if sort.Field != repositories.SortByID {
		order = append(order, bson.E{Key: "_id", Value: 1})
	}
	return order
}

func collect(ctx context.Context, cursor *mongo.Cursor) ([]*entities.DeveloperProfile, error) {
	var docs []document.ProfileDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("error decoding profile documents: %w", err)
	}

	profiles := make([]*entities.DeveloperProfile, 0, len(docs))
	for _, doc := range docs {
		profile, err := document.FromDocument(doc)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}
	return profiles, nil
}
