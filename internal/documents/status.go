package documents

import (
	"time"

	"bienvenue/pkg/types"
)

const isoDate = "2006-01-02"

// StatusFor derives the lifecycle category of a document from its expiry
// date. Months are approximated as 30 days, matching the original product,
// not calendar months. The result is frozen into the row at write time;
// it is not re-derived on display.
func StatusFor(expiry, now time.Time) types.DocumentStatus {
	monthsUntilExpiry := expiry.Sub(now).Hours() / 24 / 30

	switch {
	case monthsUntilExpiry < 0:
		return types.DocumentStatusExpired
	case monthsUntilExpiry < 2:
		return types.DocumentStatusExpiring
	default:
		return types.DocumentStatusValid
	}
}

// statusFromISO parses an ISO date (midnight UTC) and derives the status
// against now.
func statusFromISO(expiryDate string, now time.Time) (types.DocumentStatus, error) {
	expiry, err := time.ParseInLocation(isoDate, expiryDate, time.UTC)
	if err != nil {
		return "", err
	}
	return StatusFor(expiry, now), nil
}

func validISODate(v string) bool {
	_, err := time.ParseInLocation(isoDate, v, time.UTC)
	return err == nil
}
