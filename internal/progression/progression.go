package progression

import (
	"context"
	"errors"
	"fmt"

	"bienvenue/internal/catalog"
	"bienvenue/internal/notify"
	"bienvenue/internal/store"
	"bienvenue/internal/utils"
	"bienvenue/pkg/types"
)

// ErrModuleLocked is only returned when the engine runs with RequireUnlock
// enabled. The default behavior pays the completion reward regardless.
var ErrModuleLocked = errors.New("module has not been unlocked")

// InsufficientKeysError rejects an unlock attempt the owner cannot afford.
type InsufficientKeysError struct {
	Module  types.Module
	Balance int
}

func (e *InsufficientKeysError) Error() string {
	return fmt.Sprintf("need %d key(s) to unlock %s, have %d", e.Module.KeysRequired, e.Module.ID, e.Balance)
}

// Engine gates catalog modules behind the key economy: unlocks spend keys,
// completions earn exactly one key. All mutations for one owner are
// serialized through a keyed mutex since unlock and complete are both
// read-modify-write against the same progress row.
type Engine struct {
	store    store.ProgressStore
	notifier notify.Notifier
	locks    *utils.KeyMutex

	// RequireUnlock makes CompleteModule check the unlocked set first. Off
	// by default: the original app grants the reward unconditionally.
	RequireUnlock bool
}

func NewEngine(st store.ProgressStore, notifier notify.Notifier, locks *utils.KeyMutex) *Engine {
	return &Engine{store: st, notifier: notifier, locks: locks}
}

// ProgressFor loads the owner's progress, falling back to the catalog seed
// state for a first visit. The seed is not persisted until the first
// mutation.
func (e *Engine) ProgressFor(ctx context.Context, ownerID string) (*types.UserProgress, error) {
	progress, err := e.store.Progress(ctx, ownerID)
	if errors.Is(err, types.ErrProgressNotFound) {
		return catalog.DefaultProgress(ownerID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load progress: %w", err)
	}
	return progress, nil
}

// AttemptUnlock spends keys to open a gated module.
//
// Already-unlocked modules and free modules are silent no-ops: the first is
// idempotence, the second a guard against callers that should never route a
// free module through an explicit unlock. A short balance produces a
// rejection toast naming the price and leaves the row untouched. Otherwise
// the spend and the unlock land atomically under the owner lock, and the
// success toast names the module and the cost paid.
func (e *Engine) AttemptUnlock(ctx context.Context, ownerID, moduleID string) (*types.UserProgress, error) {
	module, ok := catalog.ByID(moduleID)
	if !ok {
		return nil, types.ErrModuleNotFound
	}

	e.locks.Lock(ownerID)
	defer e.locks.Unlock(ownerID)

	progress, err := e.ProgressFor(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	if progress.Unlocked(moduleID) {
		return progress, nil
	}

	if module.Free() {
		return progress, nil
	}

	if progress.Keys < module.KeysRequired {
		e.notifier.Notify(ctx, notify.Toast{
			Title:       "Not enough keys",
			Description: fmt.Sprintf("You need %d key(s) to unlock this module", module.KeysRequired),
			Severity:    notify.SeverityDestructive,
		})
		return progress, &InsufficientKeysError{Module: module, Balance: progress.Keys}
	}

	updated := *progress
	updated.Keys -= module.KeysRequired
	updated.UnlockedModules = append(append([]string{}, progress.UnlockedModules...), moduleID)

	if err := e.store.SaveProgress(ctx, &updated); err != nil {
		e.notifier.Notify(ctx, notify.Toast{
			Title:       "Something went wrong",
			Description: "Your progress could not be saved. Please try again.",
			Severity:    notify.SeverityDestructive,
		})
		return progress, fmt.Errorf("save progress: %w", err)
	}

	e.notifier.Notify(ctx, notify.Toast{
		Title:       "Module Unlocked!",
		Description: fmt.Sprintf("%s is now available (%d key(s) spent)", module.Title, module.KeysRequired),
	})

	return &updated, nil
}

// CompleteModule records a completion and pays the fixed one-key reward.
// Completing twice is a no-op.
func (e *Engine) CompleteModule(ctx context.Context, ownerID, moduleID string) (*types.UserProgress, error) {
	module, ok := catalog.ByID(moduleID)
	if !ok {
		return nil, types.ErrModuleNotFound
	}

	e.locks.Lock(ownerID)
	defer e.locks.Unlock(ownerID)

	progress, err := e.ProgressFor(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	if progress.Completed(moduleID) {
		return progress, nil
	}

	if e.RequireUnlock && !progress.Unlocked(moduleID) && !module.Free() {
		e.notifier.Notify(ctx, notify.Toast{
			Title:       "Module locked",
			Description: fmt.Sprintf("Unlock %s before completing it", module.Title),
			Severity:    notify.SeverityDestructive,
		})
		return progress, ErrModuleLocked
	}

	updated := *progress
	updated.Keys++
	updated.CompletedModules = append(append([]string{}, progress.CompletedModules...), moduleID)

	if err := e.store.SaveProgress(ctx, &updated); err != nil {
		e.notifier.Notify(ctx, notify.Toast{
			Title:       "Something went wrong",
			Description: "Your progress could not be saved. Please try again.",
			Severity:    notify.SeverityDestructive,
		})
		return progress, fmt.Errorf("save progress: %w", err)
	}

	e.notifier.Notify(ctx, notify.Toast{
		Title:       "Module Completed!",
		Description: fmt.Sprintf("%s finished, you earned 1 key", module.Title),
	})

	return &updated, nil
}
