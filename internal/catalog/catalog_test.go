package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModules(t *testing.T) {
	modules := Modules()
	require.Len(t, modules, 7)

	// Free starter modules first, gated ones behind keys.
	assert.True(t, modules[0].Free())

	totalCost := 0
	for _, m := range modules {
		if !m.Free() {
			totalCost += m.KeysRequired
		}
	}
	assert.Equal(t, 7, totalCost)
}

func TestByID(t *testing.T) {
	module, ok := ByID("post-arrival")
	require.True(t, ok)
	assert.Equal(t, "Post-Arrival Checklist", module.Title)
	assert.Equal(t, 2, module.KeysRequired)

	_, ok = ByID("unknown")
	assert.False(t, ok)
}

func TestDefaultProgress(t *testing.T) {
	progress := DefaultProgress("owner-1")

	assert.Equal(t, "owner-1", progress.OwnerID)
	assert.Equal(t, 7, progress.Keys)
	assert.ElementsMatch(t, []string{"school", "pre-arrival-1", "pre-arrival-2"}, progress.UnlockedModules)
	assert.Empty(t, progress.CompletedModules)

	// The starting balance covers every gated module exactly once.
	totalCost := 0
	for _, m := range Modules() {
		totalCost += m.KeysRequired
	}
	assert.Equal(t, totalCost, progress.Keys)
}

func TestDefaultProgressOnlyUnlocksFreeModules(t *testing.T) {
	progress := DefaultProgress("owner-1")

	for _, id := range progress.UnlockedModules {
		module, ok := ByID(id)
		require.True(t, ok)
		assert.True(t, module.Free())
	}
}
