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

const importantDocumentTableName = "bienvenue.important_documents"

var importantDocumentColumns = utils.StructTagValues(types.ImportantDocument{})

type ImportantDocumentRepository struct {
	pool *pgxpool.Pool
}

func NewImportantDocumentRepository(pool *pgxpool.Pool) *ImportantDocumentRepository {
	return &ImportantDocumentRepository{pool: pool}
}

func (r *ImportantDocumentRepository) ImportantDocuments(ctx context.Context, ownerID string) ([]*types.ImportantDocument, error) {
	query, args, err := psql().
		Select(importantDocumentColumns...).
		From(importantDocumentTableName).
		Where(sq.Eq{"owner_id": ownerID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate important documents query: %w", err)
	}

	var docs = make([]*types.ImportantDocument, 0)
	err = pgxscan.Select(ctx, r.pool, &docs, query, args...)
	if err != nil {
		return nil, utils.ErrorWrapOrNil(err, "failed to fetch important documents")
	}

	return docs, nil
}

func (r *ImportantDocumentRepository) CreateImportantDocument(ctx context.Context, doc *types.ImportantDocument) error {

	doc.CreatedAt = time.Now()

	query, args, err := psql().
		Insert(importantDocumentTableName).
		SetMap(utils.StructToMap(doc)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert important document query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to create important document")
}

func (r *ImportantDocumentRepository) DeleteImportantDocument(ctx context.Context, ownerID, id string) error {
	query, args, err := psql().
		Delete(importantDocumentTableName).
		Where(sq.Eq{"id": id, "owner_id": ownerID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate delete important document query for document %s: %w", id, err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to delete important document")
}
