package types

import (
	"slices"
	"time"
)

// Module is one entry of the static checklist catalog. The catalog is fixed
// at build time and never user-editable.
type Module struct {
	ID          string
	Title       string
	Description string
	Icon        string

	// KeysRequired is the unlock cost. Zero means the module is free and
	// never goes through an explicit unlock.
	KeysRequired int
}

func (m Module) Free() bool {
	return m.KeysRequired == 0
}

// UserProgress is the per-user progression row: spendable key balance plus
// the unlocked and completed module id sets. Keys only go down through a
// successful unlock spend and only go up through a module completion.
type UserProgress struct {
	OwnerID          string    `db:"owner_id" json:"ownerId"`
	Keys             int       `db:"keys" json:"keys"`
	UnlockedModules  []string  `db:"unlocked_modules" json:"unlockedModules"`   // jsonb array
	CompletedModules []string  `db:"completed_modules" json:"completedModules"` // jsonb array
	UpdatedAt        time.Time `db:"updated_at" json:"updatedAt"`
}

func (p *UserProgress) Unlocked(moduleID string) bool {
	return slices.Contains(p.UnlockedModules, moduleID)
}

func (p *UserProgress) Completed(moduleID string) bool {
	return slices.Contains(p.CompletedModules, moduleID)
}
