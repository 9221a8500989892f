package types

import "time"

type DocumentStatus string

const (
	DocumentStatusValid    DocumentStatus = "valid"
	DocumentStatusExpiring DocumentStatus = "expiring"
	DocumentStatusExpired  DocumentStatus = "expired"
)

// Document is one tracked piece of paperwork with submission/expiry dates
// and a derived status. Status is recomputed on create and on date edits,
// never set directly.
type Document struct {
	ID                  string         `db:"id" json:"id"`
	OwnerID             string         `db:"owner_id" json:"ownerId"`
	Name                string         `db:"name" json:"name"`
	Type                string         `db:"type" json:"type"`
	SubmissionDate      string         `db:"submission_date" json:"submissionDate"` // ISO date
	ExpiryDate          string         `db:"expiry_date" json:"expiryDate"`         // ISO date
	Status              DocumentStatus `db:"status" json:"status"`
	RenewalProcess      []string       `db:"renewal_process" json:"renewalProcess"` // jsonb array
	NotificationEnabled bool           `db:"notification_enabled" json:"notificationEnabled"`
	Notes               string         `db:"notes" json:"notes"`
	FileName            string         `db:"file_name" json:"fileName"`
	StorageKey          string         `db:"storage_key" json:"storageKey"`
	FileURL             string         `db:"file_url" json:"fileUrl"`
	FileIsImage         bool           `db:"file_is_image" json:"fileIsImage"`
	CreatedAt           time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt           time.Time      `db:"updated_at" json:"updatedAt"`
}

func (d *Document) HasFile() bool {
	return d.StorageKey != "" || d.FileURL != ""
}

// ImportantDocument is the simplified safekeeping variant: a named file plus
// an optional description, no expiry tracking.
type ImportantDocument struct {
	ID          string    `db:"id" json:"id"`
	OwnerID     string    `db:"owner_id" json:"ownerId"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	FileName    string    `db:"file_name" json:"fileName"`
	StorageKey  string    `db:"storage_key" json:"storageKey"`
	FileURL     string    `db:"file_url" json:"fileUrl"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

// DocumentSuggestion is a prefill template offered on the documents page.
type DocumentSuggestion struct {
	Name string
	Type string
}
