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

const documentTableName = "bienvenue.user_documents"

var documentColumns = utils.StructTagValues(types.Document{})

type DocumentRepository struct {
	pool *pgxpool.Pool
}

func NewDocumentRepository(pool *pgxpool.Pool) *DocumentRepository {
	return &DocumentRepository{pool: pool}
}

// Documents returns the owner's tracked documents, most recent first.
func (r *DocumentRepository) Documents(ctx context.Context, ownerID string) ([]*types.Document, error) {
	query, args, err := psql().
		Select(documentColumns...).
		From(documentTableName).
		Where(sq.Eq{"owner_id": ownerID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate documents query: %w", err)
	}

	var docs = make([]*types.Document, 0)
	err = pgxscan.Select(ctx, r.pool, &docs, query, args...)
	if err != nil {
		return nil, utils.ErrorWrapOrNil(err, "failed to fetch documents")
	}

	return docs, nil
}

func (r *DocumentRepository) DocumentByID(ctx context.Context, ownerID, id string) (*types.Document, error) {
	query, args, err := psql().
		Select(documentColumns...).
		From(documentTableName).
		Where(sq.Eq{"id": id, "owner_id": ownerID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate document query: %w", err)
	}

	var doc = new(types.Document)
	err = pgxscan.Get(ctx, r.pool, doc, query, args...)
	if err != nil && !pgxscan.NotFound(err) {
		return nil, err
	}

	if err != nil {
		return nil, types.ErrDocumentNotFound
	}

	return doc, nil
}

func (r *DocumentRepository) CreateDocument(ctx context.Context, doc *types.Document) error {

	now := time.Now()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	query, args, err := psql().
		Insert(documentTableName).
		SetMap(utils.StructToMap(doc)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert document query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to create document")
}

// UpdateDocument persists the full document row, scoped by both document ID
// and owner ID.
func (r *DocumentRepository) UpdateDocument(ctx context.Context, doc *types.Document) error {

	doc.UpdatedAt = time.Now()

	query, args, err := psql().
		Update(documentTableName).
		SetMap(utils.StructToMap(doc)).
		Where(sq.Eq{"id": doc.ID, "owner_id": doc.OwnerID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate update document query for document %s: %w", doc.ID, err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to update document")
}

// DeleteDocument removes a document row. Deleting an id that is already
// gone is not an error.
func (r *DocumentRepository) DeleteDocument(ctx context.Context, ownerID, id string) error {
	query, args, err := psql().
		Delete(documentTableName).
		Where(sq.Eq{"id": id, "owner_id": ownerID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate delete document query for document %s: %w", id, err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to delete document")
}
