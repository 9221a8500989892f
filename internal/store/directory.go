package store

import (
	"bienvenue/internal/utils"
	"bienvenue/pkg/types"
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	cityTableName   = "bienvenue.cities"
	schoolTableName = "bienvenue.schools"
)

var (
	cityColumns   = utils.StructTagValues(types.City{})
	schoolColumns = utils.StructTagValues(types.School{})
)

// DirectoryRepository serves the read-only city/school directory. Rows come
// from the seed command, never from users.
type DirectoryRepository struct {
	pool *pgxpool.Pool
}

func NewDirectoryRepository(pool *pgxpool.Pool) *DirectoryRepository {
	return &DirectoryRepository{pool: pool}
}

func (r *DirectoryRepository) Cities(ctx context.Context) ([]*types.City, error) {
	query, args, err := psql().
		Select(cityColumns...).
		From(cityTableName).
		OrderBy("display_order ASC", "name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate cities query: %w", err)
	}

	var cities = make([]*types.City, 0)
	err = pgxscan.Select(ctx, r.pool, &cities, query, args...)
	if err != nil {
		return nil, utils.ErrorWrapOrNil(err, "failed to fetch cities")
	}

	return cities, nil
}

func (r *DirectoryRepository) CityBySlug(ctx context.Context, slug string) (*types.City, error) {
	query, args, err := psql().
		Select(cityColumns...).
		From(cityTableName).
		Where(sq.Eq{"slug": slug}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate city query: %w", err)
	}

	var city = new(types.City)
	err = pgxscan.Get(ctx, r.pool, city, query, args...)
	if err != nil && !pgxscan.NotFound(err) {
		return nil, err
	}

	if err != nil {
		return nil, types.ErrCityNotFound
	}

	return city, nil
}

func (r *DirectoryRepository) CityByID(ctx context.Context, id string) (*types.City, error) {
	query, args, err := psql().
		Select(cityColumns...).
		From(cityTableName).
		Where(sq.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate city query: %w", err)
	}

	var city = new(types.City)
	err = pgxscan.Get(ctx, r.pool, city, query, args...)
	if err != nil && !pgxscan.NotFound(err) {
		return nil, err
	}

	if err != nil {
		return nil, types.ErrCityNotFound
	}

	return city, nil
}

func (r *DirectoryRepository) SchoolsByCity(ctx context.Context, cityID string) ([]*types.School, error) {
	query, args, err := psql().
		Select(schoolColumns...).
		From(schoolTableName).
		Where(sq.Eq{"city_id": cityID}).
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate schools query: %w", err)
	}

	var schools = make([]*types.School, 0)
	err = pgxscan.Select(ctx, r.pool, &schools, query, args...)
	if err != nil {
		return nil, utils.ErrorWrapOrNil(err, "failed to fetch schools")
	}

	return schools, nil
}

func (r *DirectoryRepository) SchoolBySlug(ctx context.Context, slug string) (*types.School, error) {
	query, args, err := psql().
		Select(schoolColumns...).
		From(schoolTableName).
		Where(sq.Eq{"slug": slug}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate school query: %w", err)
	}

	var school = new(types.School)
	err = pgxscan.Get(ctx, r.pool, school, query, args...)
	if err != nil && !pgxscan.NotFound(err) {
		return nil, err
	}

	if err != nil {
		return nil, types.ErrSchoolNotFound
	}

	return school, nil
}

// UpsertCity and UpsertSchool back the seed command. The seed slices are the
// source of truth, so rows are written with fixed IDs.
func (r *DirectoryRepository) UpsertCity(ctx context.Context, city *types.City) error {
	query := `
		INSERT INTO bienvenue.cities (id, slug, name, region, description, insights, display_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id)
		DO UPDATE SET
			slug = EXCLUDED.slug,
			name = EXCLUDED.name,
			region = EXCLUDED.region,
			description = EXCLUDED.description,
			insights = EXCLUDED.insights,
			display_order = EXCLUDED.display_order`

	_, err := r.pool.Exec(ctx, query,
		city.ID, city.Slug, city.Name, city.Region, city.Description, city.Insights, city.DisplayOrder)
	return utils.ErrorWrapOrNil(err, "failed to upsert city")
}

func (r *DirectoryRepository) UpsertSchool(ctx context.Context, school *types.School) error {
	query := `
		INSERT INTO bienvenue.schools (id, city_id, slug, name, subjects, description, website)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id)
		DO UPDATE SET
			city_id = EXCLUDED.city_id,
			slug = EXCLUDED.slug,
			name = EXCLUDED.name,
			subjects = EXCLUDED.subjects,
			description = EXCLUDED.description,
			website = EXCLUDED.website`

	_, err := r.pool.Exec(ctx, query,
		school.ID, school.CityID, school.Slug, school.Name, school.Subjects, school.Description, school.Website)
	return utils.ErrorWrapOrNil(err, "failed to upsert school")
}
