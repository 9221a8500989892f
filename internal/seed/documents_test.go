package seed

import (
	"testing"
	"time"

	"bienvenue/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStarterDocuments(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

	docs := StarterDocuments("guest-1", now)
	require.Len(t, docs, 4)

	byName := map[string]*types.Document{}
	for _, doc := range docs {
		assert.Equal(t, "guest-1", doc.OwnerID)
		assert.NotEmpty(t, doc.ID)
		assert.True(t, doc.NotificationEnabled)
		assert.NotEmpty(t, doc.RenewalProcess)
		byName[doc.Name] = doc
	}

	// Six months out is comfortably valid; 45 days out is expiring.
	assert.Equal(t, types.DocumentStatusValid, byName["Student Visa"].Status)
	assert.Equal(t, types.DocumentStatusExpiring, byName["Residence Permit"].Status)
	assert.Equal(t, types.DocumentStatusValid, byName["Housing Guarantee"].Status)
	assert.Equal(t, types.DocumentStatusValid, byName["Housing Insurance"].Status)
}

func TestStarterDocumentsUniqueIDs(t *testing.T) {
	docs := StarterDocuments("guest-1", time.Now())

	seen := map[string]bool{}
	for _, doc := range docs {
		assert.False(t, seen[doc.ID])
		seen[doc.ID] = true
	}
}
