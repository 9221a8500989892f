package documents

import (
	"testing"
	"time"

	"bienvenue/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(value string) time.Time {
	t, err := time.ParseInLocation(isoDate, value, time.UTC)
	if err != nil {
		panic(err)
	}
	return t
}

func TestStatusFor(t *testing.T) {
	now := date("2025-06-15")

	tests := []struct {
		name   string
		expiry time.Time
		want   types.DocumentStatus
	}{
		{"far future", date("2026-06-15"), types.DocumentStatusValid},
		{"exactly two 30-day months out", now.AddDate(0, 0, 60), types.DocumentStatusValid},
		{"just under two months", now.AddDate(0, 0, 59), types.DocumentStatusExpiring},
		{"one month out", now.AddDate(0, 0, 30), types.DocumentStatusExpiring},
		{"tomorrow", now.AddDate(0, 0, 1), types.DocumentStatusExpiring},
		{"same instant", now, types.DocumentStatusExpiring},
		{"yesterday", now.AddDate(0, 0, -1), types.DocumentStatusExpired},
		{"long expired", date("2024-01-01"), types.DocumentStatusExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFor(tt.expiry, now))
		})
	}
}

func TestStatusForExpiryDayWithMiddayClock(t *testing.T) {
	// The expiry date parses to midnight, so by midday on that same day
	// the document already counts as expired.
	now := date("2025-06-15").Add(12 * time.Hour)

	assert.Equal(t, types.DocumentStatusExpired, StatusFor(date("2025-06-15"), now))
}

func TestStatusFromISO(t *testing.T) {
	now := date("2025-06-15")

	status, err := statusFromISO("2026-01-01", now)
	require.NoError(t, err)
	assert.Equal(t, types.DocumentStatusValid, status)

	_, err = statusFromISO("not-a-date", now)
	assert.Error(t, err)
}

func TestValidISODate(t *testing.T) {
	assert.True(t, validISODate("2025-06-15"))
	assert.False(t, validISODate(""))
	assert.False(t, validISODate("15/06/2025"))
	assert.False(t, validISODate("2025-13-40"))
}
