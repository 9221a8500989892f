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

const chatTableName = "bienvenue.chat_messages"

var chatColumns = utils.StructTagValues(types.ChatMessage{})

type ChatRepository struct {
	pool *pgxpool.Pool
}

func NewChatRepository(pool *pgxpool.Pool) *ChatRepository {
	return &ChatRepository{pool: pool}
}

// Messages returns the owner's transcript, oldest first.
func (r *ChatRepository) Messages(ctx context.Context, ownerID string) ([]*types.ChatMessage, error) {
	query, args, err := psql().
		Select(chatColumns...).
		From(chatTableName).
		Where(sq.Eq{"owner_id": ownerID}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate chat messages query: %w", err)
	}

	var msgs = make([]*types.ChatMessage, 0)
	err = pgxscan.Select(ctx, r.pool, &msgs, query, args...)
	if err != nil {
		return nil, utils.ErrorWrapOrNil(err, "failed to fetch chat messages")
	}

	return msgs, nil
}

func (r *ChatRepository) CreateMessage(ctx context.Context, msg *types.ChatMessage) error {

	msg.CreatedAt = time.Now()

	query, args, err := psql().
		Insert(chatTableName).
		SetMap(utils.StructToMap(msg)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert chat message query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to create chat message")
}
