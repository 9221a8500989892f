package types

import "time"

type ChatMessageKind string

const (
	ChatMessageUser ChatMessageKind = "user"
	ChatMessageBot  ChatMessageKind = "bot"
)

// ChatMessage is one turn of the Q&A assistant transcript.
type ChatMessage struct {
	ID        string          `db:"id" json:"id"`
	OwnerID   string          `db:"owner_id" json:"ownerId"`
	Kind      ChatMessageKind `db:"kind" json:"kind"`
	Message   string          `db:"message" json:"message"`
	CreatedAt time.Time       `db:"created_at" json:"createdAt"`
}
