package store

import (
	"context"
	"fmt"

	"bienvenue/pkg/types"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

type FormsRepository struct {
	pool *pgxpool.Pool
}

func NewFormsRepository(pool *pgxpool.Pool) *FormsRepository {
	return &FormsRepository{pool: pool}
}

func (r *FormsRepository) CreateContactMessage(ctx context.Context, name, email, subject, body string) error {
	id, err := gonanoid.New(21)
	if err != nil {
		return fmt.Errorf("generate id: %w", err)
	}

	query, args, err := psql().
		Insert("bienvenue.contact_messages").
		Columns("id", "name", "email", "subject", "body").
		Values(id, name, nullable(email), subject, body).
		ToSql()
	if err != nil {
		return fmt.Errorf("build contact insert: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("insert contact message: %w", err)
	}

	return nil
}

func (r *FormsRepository) UpsertNewsletterSignup(ctx context.Context, email, city string) error {
	query := `
		INSERT INTO bienvenue.newsletter_signups (email, city)
		VALUES ($1, $2)
		ON CONFLICT (email)
		DO UPDATE SET city = EXCLUDED.city, updated_at = now()`

	_, err := r.pool.Exec(ctx, query, email, nullable(city))
	if err != nil {
		return fmt.Errorf("upsert newsletter signup: %w", err)
	}

	return nil
}

func (r *FormsRepository) LatestContactMessages(ctx context.Context, limit uint64) ([]*types.ContactMessage, error) {
	query, args, err := psql().
		Select("id", "name", "email", "subject", "body", "created_at").
		From("bienvenue.contact_messages").
		OrderBy("created_at DESC").
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build latest contact query: %w", err)
	}

	out := make([]*types.ContactMessage, 0)
	if err := pgxscan.Select(ctx, r.pool, &out, query, args...); err != nil {
		return nil, fmt.Errorf("select latest contact messages: %w", err)
	}

	return out, nil
}
