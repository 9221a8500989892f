package catalog

import "bienvenue/pkg/types"

// modules is the source of truth for the checklist catalog. Order is the
// display order on the checklist page.
var modules = []types.Module{
	{
		ID:          "school",
		Title:       "School & Local Insights",
		Description: "Explore French schools and get local insights for each city",
		Icon:        "🏫",
	},
	{
		ID:          "pre-arrival-1",
		Title:       "Pre-Arrival Checklist (Part 1)",
		Description: "Campus France, VFS, and essential preparations",
		Icon:        "✈️",
	},
	{
		ID:          "pre-arrival-2",
		Title:       "Packing Assistant",
		Description: "Food, clothes, and cultural preparation",
		Icon:        "🎒",
	},
	{
		ID:           "post-arrival",
		Title:        "Post-Arrival Checklist",
		Description:  "Bank account, SSN, insurance, CAF, and more",
		Icon:         "🏠",
		KeysRequired: 2,
	},
	{
		ID:           "integration",
		Title:        "French Integration",
		Description:  "Cultural adaptation and social integration",
		Icon:         "🤝",
		KeysRequired: 3,
	},
	{
		ID:           "finance",
		Title:        "Tracking your Finances",
		Description:  "Important paperwork and renewal processes",
		Icon:         "📄",
		KeysRequired: 1,
	},
	{
		ID:           "suggestions",
		Title:        "Suggestions for You",
		Description:  "Explore new features and ideas to enhance your journey",
		Icon:         "💡",
		KeysRequired: 1,
	},
}

// Modules returns the catalog in display order. Callers must not mutate the
// returned slice.
func Modules() []types.Module {
	return modules
}

func ByID(id string) (types.Module, bool) {
	for _, m := range modules {
		if m.ID == id {
			return m, true
		}
	}
	return types.Module{}, false
}

// DefaultProgress is the seed state for a brand new session: a starter key
// balance and the free modules already open.
func DefaultProgress(ownerID string) *types.UserProgress {
	return &types.UserProgress{
		OwnerID:          ownerID,
		Keys:             7,
		UnlockedModules:  []string{"school", "pre-arrival-1", "pre-arrival-2"},
		CompletedModules: []string{},
	}
}
