package seed

import (
	"time"

	"bienvenue/internal/documents"
	"bienvenue/internal/utils"
	"bienvenue/pkg/types"
)

// StarterDocuments is the sample collection a guest session begins with.
// Statuses are derived against now so the cards show all three lifecycle
// categories realistically.
func StarterDocuments(ownerID string, now time.Time) []*types.Document {
	const isoDate = "2006-01-02"

	mkDoc := func(name, docType string, submitted, expiry time.Time, renewal []string, notes string) *types.Document {
		return &types.Document{
			ID:                  utils.NanoID(),
			OwnerID:             ownerID,
			Name:                name,
			Type:                docType,
			SubmissionDate:      submitted.Format(isoDate),
			ExpiryDate:          expiry.Format(isoDate),
			Status:              documents.StatusFor(expiry, now),
			RenewalProcess:      renewal,
			NotificationEnabled: true,
			Notes:               notes,
		}
	}

	return []*types.Document{
		mkDoc("Student Visa", "Immigration",
			now.AddDate(0, -6, 0), now.AddDate(0, 6, 0),
			[]string{
				"Start renewal process 2 months before expiry",
				"Book appointment at prefecture",
				"Prepare required documents (passport, proof of enrollment, etc.)",
				"Pay renewal fees",
				"Submit application at prefecture",
			},
			"Remember to bring original documents and copies"),
		mkDoc("Residence Permit", "Immigration",
			now.AddDate(0, -10, 0), now.AddDate(0, 1, 15),
			[]string{
				"Begin renewal 2 months before expiry",
				"Gather required documents",
				"Schedule prefecture appointment",
				"Submit renewal application",
			},
			"Keep proof of previous permits"),
		mkDoc("Housing Guarantee", "Housing",
			now.AddDate(0, -4, 0), now.AddDate(0, 8, 0),
			[]string{
				"Contact the guarantee service one month before expiry",
				"Provide updated tenancy agreement",
				"Submit renewal forms online",
				"Receive and store new guarantee document",
			},
			"Vital for renting apartments; check with landlord for specific requirements."),
		mkDoc("Housing Insurance", "Insurance",
			now.AddDate(0, -4, 0), now.AddDate(0, 8, 2),
			[]string{
				"Renew automatically with insurance provider unless cancelled",
				"Update payment details if needed",
				"Download new insurance certificate",
			},
			"Keep receipts and certificates for your landlord and personal records."),
	}
}
