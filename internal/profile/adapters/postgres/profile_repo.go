package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"devprofile/internal/profile/adapters/document"
	"devprofile/internal/profile/domain/entities"
	"devprofile/internal/profile/ports/repositories"
	"devprofile/pkg/logger"
)

const (
	selectDocumentByID = `
        SELECT document
        FROM developer_profiles
        WHERE id = $1
    `
	selectAllDocuments = `
        SELECT document
        FROM developer_profiles
        ORDER BY updated_at DESC, id ASC
    `
	insertProfile = `
        INSERT INTO developer_profiles
            (id, first_name, last_name, role, skills_lower, open_to_work, verification, document, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        ON CONFLICT (id) DO NOTHING
    `
	updateProfile = `
        UPDATE developer_profiles
        SET first_name = $2, last_name = $3, role = $4, skills_lower = $5,
            open_to_work = $6, verification = $7, document = $8, updated_at = $9
        WHERE id = $1
    `
	deleteProfile = `
        DELETE FROM developer_profiles
        WHERE id = $1
    `
)

// orderColumns - допустимые выражения ORDER BY. Значения из запроса в SQL не попадают.
var orderColumns = map[repositories.SortField][]string{
	repositories.SortByUpdatedAt: {"updated_at"},
	repositories.SortByName:      {"last_name", "first_name"},
	repositories.SortByID:        {"id"},
}

// ProfileRepository хранит профиль как jsonb-документ с индексируемыми колонками для каталога.
type ProfileRepository struct {
	pool PgxPoolInterface
}

// NewProfileRepository создает новый экземпляр репозитория профилей.
func NewProfileRepository(pool PgxPoolInterface) repositories.ProfileRepository {
	return &ProfileRepository{pool: pool}
}

func (r *ProfileRepository) GetByID(ctx context.Context, id entities.DeveloperID) (*entities.DeveloperProfile, error) {
	log := logger.Log(ctx).With(zap.String("repository", "profile"), zap.String("method", "GetByID"))

	var raw []byte
	if err := r.pool.QueryRow(ctx, selectDocumentByID, id.String()).Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "profile not found", zap.String("id", id.String()))
			return nil, nil
		}
		log.Error(ctx, "error finding profile by id", zap.Error(err))
		return nil, fmt.Errorf("error querying profile by id: %w", err)
	}

	return decode(raw)
}

func (r *ProfileRepository) GetAll(ctx context.Context) ([]*entities.DeveloperProfile, error) {
	log := logger.Log(ctx).With(zap.String("repository", "profile"), zap.String("method", "GetAll"))

	rows, err := r.pool.Query(ctx, selectAllDocuments)
	if err != nil {
		log.Error(ctx, "error querying profiles", zap.Error(err))
		return nil, fmt.Errorf("error querying profiles: %w", err)
	}
	defer rows.Close()

	profiles, err := collect(rows)
	if err != nil {
		log.Error(ctx, "error reading profile rows", zap.Error(err))
		return nil, err
	}
	return profiles, nil
}

// SearchCatalog выполняет запрос страницы и запрос общего количества с одинаковыми условиями.
func (r *ProfileRepository) SearchCatalog(ctx context.Context, search repositories.CatalogSearch) (repositories.CatalogPage, error) {
	log := logger.Log(ctx).With(zap.String("repository", "profile"), zap.String("method", "SearchCatalog"))

	where, args := catalogWhere(search)

	var total int
	countQuery := "SELECT COUNT(*) FROM developer_profiles" + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		log.Error(ctx, "error counting catalog", zap.Error(err))
		return repositories.CatalogPage{}, fmt.Errorf("error counting catalog: %w", err)
	}

	pageArgs := append(append([]interface{}{}, args...), search.Page.Size, search.Page.Offset())
	pageQuery := fmt.Sprintf("SELECT document FROM developer_profiles%s ORDER BY %s LIMIT $%d OFFSET $%d",
		where, orderBy(search.Sort), len(args)+1, len(args)+2)

	rows, err := r.pool.Query(ctx, pageQuery, pageArgs...)
	if err != nil {
		log.Error(ctx, "error querying catalog", zap.Error(err))
		return repositories.CatalogPage{}, fmt.Errorf("error querying catalog: %w", err)
	}
	defer rows.Close()

	items, err := collect(rows)
	if err != nil {
		log.Error(ctx, "error reading catalog rows", zap.Error(err))
		return repositories.CatalogPage{}, err
	}

	log.Debug(ctx, "catalog searched", zap.Int("total", total), zap.Int("returned", len(items)))
	return repositories.CatalogPage{Items: items, TotalCount: total}, nil
}

func (r *ProfileRepository) Create(ctx context.Context, profile *entities.DeveloperProfile) (*entities.DeveloperProfile, error) {
	log := logger.Log(ctx).With(zap.String("repository", "profile"), zap.String("method", "Create"))

	doc := document.ToDocument(profile)
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("error encoding profile document: %w", err)
	}

	result, err := r.pool.Exec(ctx, insertProfile,
		doc.ID, doc.FirstName, doc.LastName, doc.Role, doc.SkillsLower,
		doc.OpenToWork, doc.Verification, raw, doc.CreatedAt, doc.UpdatedAt,
	)
	if err != nil {
		log.Error(ctx, "error creating profile", zap.Error(err))
		return nil, fmt.Errorf("error creating profile: %w", err)
	}
	if result.RowsAffected() == 0 {
		log.Debug(ctx, "profile already exists", zap.String("id", doc.ID))
		return nil, repositories.ErrProfileExists
	}

	return profile, nil
}

func (r *ProfileRepository) Update(ctx context.Context, profile *entities.DeveloperProfile) (*entities.DeveloperProfile, error) {
	log := logger.Log(ctx).With(zap.String("repository", "profile"), zap.String("method", "Update"))

	doc := document.ToDocument(profile)
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("error encoding profile document: %w", err)
	}

	result, err := r.pool.Exec(ctx, updateProfile,
		doc.ID, doc.FirstName, doc.LastName, doc.Role, doc.SkillsLower,
		doc.OpenToWork, doc.Verification, raw, doc.UpdatedAt,
	)
	if err != nil {
		log.Error(ctx, "error updating profile", zap.Error(err))
		return nil, fmt.Errorf("error updating profile: %w", err)
	}
	if result.RowsAffected() == 0 {
		log.Debug(ctx, "profile not found for update", zap.String("id", doc.ID))
		return nil, nil
	}

	return profile, nil
}

func (r *ProfileRepository) Delete(ctx context.Context, id entities.DeveloperID) (bool, error) {
	log := logger.Log(ctx).With(zap.String("repository", "profile"), zap.String("method", "Delete"))

	result, err := r.pool.Exec(ctx, deleteProfile, id.String())
	if err != nil {
		log.Error(ctx, "error deleting profile", zap.Error(err))
		return false, fmt.Errorf("error deleting profile: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

func decode(raw []byte) (*entities.DeveloperProfile, error) {
	var doc document.ProfileDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("error decoding profile document: %w", err)
	}
	doc.SkillsLower = document.LowerSkills(doc.Skills)
	return document.FromDocument(doc)
}

func collect(rows pgx.Rows) ([]*entities.DeveloperProfile, error) {
	profiles := make([]*entities.DeveloperProfile, 0)
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("error scanning profile row: %w", err)
		}
		profile, err := decode(raw)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating profile rows: %w", err)
	}
	return profiles, nil
}

// catalogWhere строит WHERE с позиционными параметрами.
func catalogWhere(search repositories.CatalogSearch) (string, []interface{}) {
	var (
		conds []string
		args  []interface{}
	)
	next := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if s := strings.TrimSpace(search.Search); s != "" {
		p := next("%" + escapeLike(s) + "%")
		conds = append(conds, fmt.Sprintf("(first_name ILIKE %[1]s OR last_name ILIKE %[1]s OR role ILIKE %[1]s)", p))
	}
	if len(search.Skills) > 0 {
		conds = append(conds, "skills_lower @> "+next(search.Skills))
	}
	if search.OpenToWork != nil {
		conds = append(conds, "open_to_work = "+next(*search.OpenToWork))
	}
	if search.Verification != nil {
		conds = append(conds, "verification = "+next(search.Verification.String()))
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func orderBy(sort repositories.Sort) string {
	columns, ok := orderColumns[sort.Field]
	if !ok {
		columns = orderColumns[repositories.SortByUpdatedAt]
	}
	direction := "DESC"
	if sort.Order == repositories.SortAsc {
		direction = "ASC"
	}

	parts := make([]string, 0, len(columns)+1)
	for _, c := range columns {
		parts = append(parts, c+" "+direction)
	}
	if sort.Field != repositories.SortByID {
		parts = append(parts, "id ASC")
	}
	return strings.Join(parts, ", ")
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
