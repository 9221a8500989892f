package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"

	"bienvenue/pkg/types"

	"github.com/redis/go-redis/v9"
)

// GuestStore backs unauthenticated sessions with redis instead of postgres.
// Each collection is one JSON blob keyed by the guest cookie id, refreshed
// with the session TTL on every write. The rest of the app talks to it
// through the same store interfaces as the postgres repositories.
type GuestStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewGuestStore(client *redis.Client, ttl time.Duration) *GuestStore {
	return &GuestStore{client: client, ttl: ttl}
}

func guestKey(ownerID, collection string) string {
	return fmt.Sprintf("guest:%s:%s", ownerID, collection)
}

func (s *GuestStore) load(ctx context.Context, key string, out any) (bool, error) {
	raw, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read guest key %s: %w", key, err)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return false, fmt.Errorf("decode guest key %s: %w", key, err)
	}
	return true, nil
}

func (s *GuestStore) save(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode guest key %s: %w", key, err)
	}

	if err := s.client.Set(ctx, key, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("write guest key %s: %w", key, err)
	}
	return nil
}

// ---- ProgressStore ----

func (s *GuestStore) Progress(ctx context.Context, ownerID string) (*types.UserProgress, error) {
	var progress types.UserProgress
	found, err := s.load(ctx, guestKey(ownerID, "progress"), &progress)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, types.ErrProgressNotFound
	}
	return &progress, nil
}

func (s *GuestStore) SaveProgress(ctx context.Context, progress *types.UserProgress) error {
	progress.UpdatedAt = time.Now()
	return s.save(ctx, guestKey(progress.OwnerID, "progress"), progress)
}

// ---- DocumentStore ----

func (s *GuestStore) Documents(ctx context.Context, ownerID string) ([]*types.Document, error) {
	var docs = make([]*types.Document, 0)
	if _, err := s.load(ctx, guestKey(ownerID, "documents"), &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func (s *GuestStore) DocumentByID(ctx context.Context, ownerID, id string) (*types.Document, error) {
	docs, err := s.Documents(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	for _, doc := range docs {
		if doc.ID == id {
			return doc, nil
		}
	}
	return nil, types.ErrDocumentNotFound
}

// CreateDocument prepends, newest first.
func (s *GuestStore) CreateDocument(ctx context.Context, doc *types.Document) error {
	docs, err := s.Documents(ctx, doc.OwnerID)
	if err != nil {
		return err
	}

	now := time.Now()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	docs = append([]*types.Document{doc}, docs...)
	return s.save(ctx, guestKey(doc.OwnerID, "documents"), docs)
}

func (s *GuestStore) UpdateDocument(ctx context.Context, doc *types.Document) error {
	docs, err := s.Documents(ctx, doc.OwnerID)
	if err != nil {
		return err
	}

	for i, existing := range docs {
		if existing.ID == doc.ID {
			doc.UpdatedAt = time.Now()
			docs[i] = doc
			return s.save(ctx, guestKey(doc.OwnerID, "documents"), docs)
		}
	}
	return types.ErrDocumentNotFound
}

func (s *GuestStore) DeleteDocument(ctx context.Context, ownerID, id string) error {
	docs, err := s.Documents(ctx, ownerID)
	if err != nil {
		return err
	}

	docs = slices.DeleteFunc(docs, func(d *types.Document) bool { return d.ID == id })
	return s.save(ctx, guestKey(ownerID, "documents"), docs)
}

// ---- ImportantDocumentStore ----

func (s *GuestStore) ImportantDocuments(ctx context.Context, ownerID string) ([]*types.ImportantDocument, error) {
	var docs = make([]*types.ImportantDocument, 0)
	if _, err := s.load(ctx, guestKey(ownerID, "important"), &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func (s *GuestStore) CreateImportantDocument(ctx context.Context, doc *types.ImportantDocument) error {
	docs, err := s.ImportantDocuments(ctx, doc.OwnerID)
	if err != nil {
		return err
	}

	doc.CreatedAt = time.Now()
	docs = append([]*types.ImportantDocument{doc}, docs...)
	return s.save(ctx, guestKey(doc.OwnerID, "important"), docs)
}

func (s *GuestStore) DeleteImportantDocument(ctx context.Context, ownerID, id string) error {
	docs, err := s.ImportantDocuments(ctx, ownerID)
	if err != nil {
		return err
	}

	docs = slices.DeleteFunc(docs, func(d *types.ImportantDocument) bool { return d.ID == id })
	return s.save(ctx, guestKey(ownerID, "important"), docs)
}

// ---- ChatStore ----

func (s *GuestStore) Messages(ctx context.Context, ownerID string) ([]*types.ChatMessage, error) {
	var msgs = make([]*types.ChatMessage, 0)
	if _, err := s.load(ctx, guestKey(ownerID, "chat"), &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

// CreateMessage appends, transcript order.
func (s *GuestStore) CreateMessage(ctx context.Context, msg *types.ChatMessage) error {
	msgs, err := s.Messages(ctx, msg.OwnerID)
	if err != nil {
		return err
	}

	msg.CreatedAt = time.Now()
	msgs = append(msgs, msg)
	return s.save(ctx, guestKey(msg.OwnerID, "chat"), msgs)
}

func (s *GuestStore) Backend() *Backend {
	return &Backend{
		Progress:           s,
		Documents:          s,
		ImportantDocuments: s,
		Chat:               s,
	}
}
