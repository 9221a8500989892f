package progression

import (
	"context"
	"errors"
	"testing"

	"bienvenue/internal/catalog"
	"bienvenue/internal/notify"
	"bienvenue/internal/utils"
	"bienvenue/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryProgressStore struct {
	rows    map[string]*types.UserProgress
	saveErr error
	saveCnt int
}

func newMemoryProgressStore() *memoryProgressStore {
	return &memoryProgressStore{rows: map[string]*types.UserProgress{}}
}

func (s *memoryProgressStore) Progress(_ context.Context, ownerID string) (*types.UserProgress, error) {
	row, ok := s.rows[ownerID]
	if !ok {
		return nil, types.ErrProgressNotFound
	}
	clone := *row
	return &clone, nil
}

func (s *memoryProgressStore) SaveProgress(_ context.Context, progress *types.UserProgress) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saveCnt++
	clone := *progress
	s.rows[progress.OwnerID] = &clone
	return nil
}

type captureNotifier struct {
	toasts []notify.Toast
}

func (n *captureNotifier) Notify(_ context.Context, toast notify.Toast) {
	n.toasts = append(n.toasts, toast)
}

func newTestEngine() (*Engine, *memoryProgressStore, *captureNotifier) {
	st := newMemoryProgressStore()
	notifier := &captureNotifier{}
	return NewEngine(st, notifier, utils.NewKeyMutex()), st, notifier
}

func TestProgressForFirstVisit(t *testing.T) {
	engine, _, _ := newTestEngine()

	progress, err := engine.ProgressFor(context.Background(), "owner-1")
	require.NoError(t, err)

	assert.Equal(t, 7, progress.Keys)
	assert.True(t, progress.Unlocked("school"))
	assert.True(t, progress.Unlocked("pre-arrival-1"))
	assert.True(t, progress.Unlocked("pre-arrival-2"))
	assert.Empty(t, progress.CompletedModules)
}

func TestProgressForSeedNotPersisted(t *testing.T) {
	engine, st, _ := newTestEngine()

	_, err := engine.ProgressFor(context.Background(), "owner-1")
	require.NoError(t, err)
	assert.Zero(t, st.saveCnt)
}

func TestAttemptUnlockSpendsKeys(t *testing.T) {
	engine, _, notifier := newTestEngine()
	ctx := context.Background()

	progress, err := engine.AttemptUnlock(ctx, "owner-1", "post-arrival")
	require.NoError(t, err)

	assert.Equal(t, 5, progress.Keys)
	assert.True(t, progress.Unlocked("post-arrival"))

	require.Len(t, notifier.toasts, 1)
	assert.Equal(t, "Module Unlocked!", notifier.toasts[0].Title)
	assert.Contains(t, notifier.toasts[0].Description, "Post-Arrival Checklist")
	assert.Contains(t, notifier.toasts[0].Description, "2 key(s) spent")
}

func TestAttemptUnlockExactBalance(t *testing.T) {
	engine, st, _ := newTestEngine()
	ctx := context.Background()

	st.rows["owner-1"] = &types.UserProgress{OwnerID: "owner-1", Keys: 3}

	progress, err := engine.AttemptUnlock(ctx, "owner-1", "integration")
	require.NoError(t, err)

	assert.Equal(t, 0, progress.Keys)
	assert.True(t, progress.Unlocked("integration"))
}

func TestAttemptUnlockInsufficientKeys(t *testing.T) {
	engine, st, notifier := newTestEngine()
	ctx := context.Background()

	st.rows["owner-1"] = &types.UserProgress{OwnerID: "owner-1", Keys: 1}

	progress, err := engine.AttemptUnlock(ctx, "owner-1", "integration")

	var insufficient *InsufficientKeysError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 1, insufficient.Balance)
	assert.Equal(t, "integration", insufficient.Module.ID)

	// Balance and unlocked set untouched.
	assert.Equal(t, 1, progress.Keys)
	assert.False(t, progress.Unlocked("integration"))
	assert.Zero(t, st.saveCnt)

	require.Len(t, notifier.toasts, 1)
	assert.Equal(t, "Not enough keys", notifier.toasts[0].Title)
	assert.Equal(t, "You need 3 key(s) to unlock this module", notifier.toasts[0].Description)
	assert.Equal(t, notify.SeverityDestructive, notifier.toasts[0].Severity)
}

func TestAttemptUnlockAlreadyUnlocked(t *testing.T) {
	engine, st, notifier := newTestEngine()
	ctx := context.Background()

	_, err := engine.AttemptUnlock(ctx, "owner-1", "post-arrival")
	require.NoError(t, err)
	saved := st.saveCnt
	notifier.toasts = nil

	progress, err := engine.AttemptUnlock(ctx, "owner-1", "post-arrival")
	require.NoError(t, err)

	assert.Equal(t, 5, progress.Keys)
	assert.Equal(t, saved, st.saveCnt)
	assert.Empty(t, notifier.toasts)
}

func TestAttemptUnlockFreeModule(t *testing.T) {
	engine, st, notifier := newTestEngine()
	ctx := context.Background()

	st.rows["owner-1"] = &types.UserProgress{OwnerID: "owner-1", Keys: 0}

	progress, err := engine.AttemptUnlock(ctx, "owner-1", "school")
	require.NoError(t, err)

	assert.Equal(t, 0, progress.Keys)
	assert.Zero(t, st.saveCnt)
	assert.Empty(t, notifier.toasts)
}

func TestAttemptUnlockUnknownModule(t *testing.T) {
	engine, _, _ := newTestEngine()

	_, err := engine.AttemptUnlock(context.Background(), "owner-1", "nope")
	assert.ErrorIs(t, err, types.ErrModuleNotFound)
}

func TestAttemptUnlockSaveFailureLeavesState(t *testing.T) {
	engine, st, notifier := newTestEngine()
	ctx := context.Background()

	st.saveErr = errors.New("boom")

	progress, err := engine.AttemptUnlock(ctx, "owner-1", "post-arrival")
	require.Error(t, err)

	// The returned progress is the pre-attempt state.
	assert.Equal(t, 7, progress.Keys)
	assert.False(t, progress.Unlocked("post-arrival"))

	require.Len(t, notifier.toasts, 1)
	assert.Equal(t, notify.SeverityDestructive, notifier.toasts[0].Severity)
}

func TestCompleteModuleEarnsOneKey(t *testing.T) {
	engine, _, notifier := newTestEngine()
	ctx := context.Background()

	progress, err := engine.CompleteModule(ctx, "owner-1", "school")
	require.NoError(t, err)

	assert.Equal(t, 8, progress.Keys)
	assert.True(t, progress.Completed("school"))

	require.Len(t, notifier.toasts, 1)
	assert.Equal(t, "Module Completed!", notifier.toasts[0].Title)
	assert.Contains(t, notifier.toasts[0].Description, "you earned 1 key")
}

func TestCompleteModuleIdempotent(t *testing.T) {
	engine, _, notifier := newTestEngine()
	ctx := context.Background()

	_, err := engine.CompleteModule(ctx, "owner-1", "school")
	require.NoError(t, err)
	notifier.toasts = nil

	progress, err := engine.CompleteModule(ctx, "owner-1", "school")
	require.NoError(t, err)

	assert.Equal(t, 8, progress.Keys)
	assert.Len(t, progress.CompletedModules, 1)
	assert.Empty(t, notifier.toasts)
}

func TestCompleteModuleWithoutUnlockDefault(t *testing.T) {
	engine, _, _ := newTestEngine()
	ctx := context.Background()

	// post-arrival was never unlocked, the reward is paid anyway.
	progress, err := engine.CompleteModule(ctx, "owner-1", "post-arrival")
	require.NoError(t, err)

	assert.Equal(t, 8, progress.Keys)
	assert.True(t, progress.Completed("post-arrival"))
	assert.False(t, progress.Unlocked("post-arrival"))
}

func TestCompleteModuleRequireUnlock(t *testing.T) {
	engine, _, notifier := newTestEngine()
	engine.RequireUnlock = true
	ctx := context.Background()

	progress, err := engine.CompleteModule(ctx, "owner-1", "post-arrival")
	assert.ErrorIs(t, err, ErrModuleLocked)
	assert.Equal(t, 7, progress.Keys)
	assert.False(t, progress.Completed("post-arrival"))

	require.Len(t, notifier.toasts, 1)
	assert.Equal(t, "Module locked", notifier.toasts[0].Title)

	// Free modules never need an unlock.
	notifier.toasts = nil
	progress, err = engine.CompleteModule(ctx, "owner-1", "school")
	require.NoError(t, err)
	assert.True(t, progress.Completed("school"))
}

func TestUnlockEverythingThroughCompletions(t *testing.T) {
	engine, _, _ := newTestEngine()
	ctx := context.Background()

	// Complete the three free modules: 7 + 3 = 10 keys.
	for _, id := range []string{"school", "pre-arrival-1", "pre-arrival-2"} {
		_, err := engine.CompleteModule(ctx, "owner-1", id)
		require.NoError(t, err)
	}

	// Unlock and complete every gated module in turn; each completion
	// pays a key back, so 10 keys cover the 7-key total cost.
	for _, id := range []string{"post-arrival", "integration", "finance", "suggestions"} {
		_, err := engine.AttemptUnlock(ctx, "owner-1", id)
		require.NoError(t, err)
		_, err = engine.CompleteModule(ctx, "owner-1", id)
		require.NoError(t, err)
	}

	progress, err := engine.ProgressFor(ctx, "owner-1")
	require.NoError(t, err)

	assert.Len(t, progress.CompletedModules, len(catalog.Modules()))
	assert.Equal(t, 7, progress.Keys)
	assert.GreaterOrEqual(t, progress.Keys, 0)
}
