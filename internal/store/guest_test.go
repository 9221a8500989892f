package store

import (
	"context"
	"testing"
	"time"

	"bienvenue/pkg/types"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGuestStore(t *testing.T) (*GuestStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewGuestStore(client, time.Hour), mr
}

func TestGuestProgressRoundTrip(t *testing.T) {
	store, _ := newTestGuestStore(t)
	ctx := context.Background()

	_, err := store.Progress(ctx, "guest-1")
	assert.ErrorIs(t, err, types.ErrProgressNotFound)

	saved := &types.UserProgress{
		OwnerID:         "guest-1",
		Keys:            5,
		UnlockedModules: []string{"school", "post-arrival"},
	}
	require.NoError(t, store.SaveProgress(ctx, saved))

	loaded, err := store.Progress(ctx, "guest-1")
	require.NoError(t, err)
	assert.Equal(t, 5, loaded.Keys)
	assert.Equal(t, []string{"school", "post-arrival"}, loaded.UnlockedModules)
	assert.False(t, loaded.UpdatedAt.IsZero())
}

func TestGuestProgressIsolatedByOwner(t *testing.T) {
	store, _ := newTestGuestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveProgress(ctx, &types.UserProgress{OwnerID: "guest-1", Keys: 3}))

	_, err := store.Progress(ctx, "guest-2")
	assert.ErrorIs(t, err, types.ErrProgressNotFound)
}

func TestGuestDocumentsNewestFirst(t *testing.T) {
	store, _ := newTestGuestStore(t)
	ctx := context.Background()

	require.NoError(t, store.CreateDocument(ctx, &types.Document{ID: "d1", OwnerID: "guest-1", Name: "Visa"}))
	require.NoError(t, store.CreateDocument(ctx, &types.Document{ID: "d2", OwnerID: "guest-1", Name: "Permit"}))

	docs, err := store.Documents(ctx, "guest-1")
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "d2", docs[0].ID)
	assert.Equal(t, "d1", docs[1].ID)
}

func TestGuestDocumentUpdate(t *testing.T) {
	store, _ := newTestGuestStore(t)
	ctx := context.Background()

	require.NoError(t, store.CreateDocument(ctx, &types.Document{ID: "d1", OwnerID: "guest-1", Name: "Visa"}))

	doc, err := store.DocumentByID(ctx, "guest-1", "d1")
	require.NoError(t, err)

	doc.Status = types.DocumentStatusExpired
	require.NoError(t, store.UpdateDocument(ctx, doc))

	updated, err := store.DocumentByID(ctx, "guest-1", "d1")
	require.NoError(t, err)
	assert.Equal(t, types.DocumentStatusExpired, updated.Status)

	err = store.UpdateDocument(ctx, &types.Document{ID: "ghost", OwnerID: "guest-1"})
	assert.ErrorIs(t, err, types.ErrDocumentNotFound)
}

func TestGuestDocumentDeleteIdempotent(t *testing.T) {
	store, _ := newTestGuestStore(t)
	ctx := context.Background()

	require.NoError(t, store.CreateDocument(ctx, &types.Document{ID: "d1", OwnerID: "guest-1"}))

	require.NoError(t, store.DeleteDocument(ctx, "guest-1", "d1"))
	require.NoError(t, store.DeleteDocument(ctx, "guest-1", "d1"))

	docs, err := store.Documents(ctx, "guest-1")
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestGuestImportantDocuments(t *testing.T) {
	store, _ := newTestGuestStore(t)
	ctx := context.Background()

	require.NoError(t, store.CreateImportantDocument(ctx, &types.ImportantDocument{ID: "i1", OwnerID: "guest-1", Name: "Passport"}))
	require.NoError(t, store.CreateImportantDocument(ctx, &types.ImportantDocument{ID: "i2", OwnerID: "guest-1", Name: "Birth Certificate"}))

	docs, err := store.ImportantDocuments(ctx, "guest-1")
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "i2", docs[0].ID)

	require.NoError(t, store.DeleteImportantDocument(ctx, "guest-1", "i2"))
	require.NoError(t, store.DeleteImportantDocument(ctx, "guest-1", "i2"))

	docs, err = store.ImportantDocuments(ctx, "guest-1")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "i1", docs[0].ID)
}

func TestGuestChatTranscriptOrder(t *testing.T) {
	store, _ := newTestGuestStore(t)
	ctx := context.Background()

	require.NoError(t, store.CreateMessage(ctx, &types.ChatMessage{ID: "m1", OwnerID: "guest-1", Kind: types.ChatMessageUser, Message: "How do I apply for CAF?"}))
	require.NoError(t, store.CreateMessage(ctx, &types.ChatMessage{ID: "m2", OwnerID: "guest-1", Kind: types.ChatMessageBot, Message: "Apply online at caf.fr"}))

	msgs, err := store.Messages(ctx, "guest-1")
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, types.ChatMessageUser, msgs[0].Kind)
	assert.Equal(t, types.ChatMessageBot, msgs[1].Kind)
}

func TestGuestKeysExpire(t *testing.T) {
	store, mr := newTestGuestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveProgress(ctx, &types.UserProgress{OwnerID: "guest-1", Keys: 7}))

	mr.FastForward(2 * time.Hour)

	_, err := store.Progress(ctx, "guest-1")
	assert.ErrorIs(t, err, types.ErrProgressNotFound)
}

func TestGuestBackendWiresAllStores(t *testing.T) {
	store, _ := newTestGuestStore(t)

	backend := store.Backend()
	assert.NotNil(t, backend.Progress)
	assert.NotNil(t, backend.Documents)
	assert.NotNil(t, backend.ImportantDocuments)
	assert.NotNil(t, backend.Chat)
}
