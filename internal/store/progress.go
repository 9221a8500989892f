package store

import (
	"bienvenue/internal/utils"
	"bienvenue/pkg/types"
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

const progressTableName = "bienvenue.user_progress"

var progressColumns = utils.StructTagValues(types.UserProgress{})

type ProgressRepository struct {
	pool *pgxpool.Pool
}

func NewProgressRepository(pool *pgxpool.Pool) *ProgressRepository {
	return &ProgressRepository{pool: pool}
}

func (r *ProgressRepository) Progress(ctx context.Context, ownerID string) (*types.UserProgress, error) {
	query, args, err := psql().
		Select(progressColumns...).
		From(progressTableName).
		Where(sq.Eq{"owner_id": ownerID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate progress query: %w", err)
	}

	var progress = new(types.UserProgress)
	err = pgxscan.Get(ctx, r.pool, progress, query, args...)
	if err != nil && !pgxscan.NotFound(err) {
		return nil, err
	}

	if err != nil {
		return nil, types.ErrProgressNotFound
	}

	return progress, nil
}

// SaveProgress upserts the owner's progression row.
func (r *ProgressRepository) SaveProgress(ctx context.Context, progress *types.UserProgress) error {

	progress.UpdatedAt = time.Now()

	query := `
		INSERT INTO bienvenue.user_progress (owner_id, keys, unlocked_modules, completed_modules, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (owner_id)
		DO UPDATE SET
			keys = EXCLUDED.keys,
			unlocked_modules = EXCLUDED.unlocked_modules,
			completed_modules = EXCLUDED.completed_modules,
			updated_at = EXCLUDED.updated_at`

	_, err := r.pool.Exec(ctx, query,
		progress.OwnerID,
		progress.Keys,
		progress.UnlockedModules,
		progress.CompletedModules,
		progress.UpdatedAt,
	)
	return utils.ErrorWrapOrNil(err, "failed to save progress")
}
