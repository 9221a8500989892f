package store

import (
	"context"

	"bienvenue/pkg/types"

	sq "github.com/Masterminds/squirrel"
)

func psql() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
}

// ProgressStore persists the per-owner progression row.
type ProgressStore interface {
	Progress(ctx context.Context, ownerID string) (*types.UserProgress, error)
	SaveProgress(ctx context.Context, progress *types.UserProgress) error
}

// DocumentStore persists tracked documents, scoped by owner.
type DocumentStore interface {
	Documents(ctx context.Context, ownerID string) ([]*types.Document, error)
	DocumentByID(ctx context.Context, ownerID, id string) (*types.Document, error)
	CreateDocument(ctx context.Context, doc *types.Document) error
	UpdateDocument(ctx context.Context, doc *types.Document) error
	DeleteDocument(ctx context.Context, ownerID, id string) error
}

// ImportantDocumentStore persists the safekeeping documents.
type ImportantDocumentStore interface {
	ImportantDocuments(ctx context.Context, ownerID string) ([]*types.ImportantDocument, error)
	CreateImportantDocument(ctx context.Context, doc *types.ImportantDocument) error
	DeleteImportantDocument(ctx context.Context, ownerID, id string) error
}

// ChatStore persists the Q&A assistant transcript.
type ChatStore interface {
	Messages(ctx context.Context, ownerID string) ([]*types.ChatMessage, error)
	CreateMessage(ctx context.Context, msg *types.ChatMessage) error
}

// Backend bundles the per-session stores. The progression engine and the
// document tracker never know whether they are talking to postgres (signed
// in) or redis (guest); the backend is picked once when the session is
// resolved.
type Backend struct {
	Progress           ProgressStore
	Documents          DocumentStore
	ImportantDocuments ImportantDocumentStore
	Chat               ChatStore
}

func nullable(v string) any {
	if v == "" {
		return nil
	}
	return v
}
