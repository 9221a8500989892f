package documents

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"bienvenue/internal/notify"
	"bienvenue/internal/store"
	"bienvenue/internal/utils"
	"bienvenue/pkg/types"
)

// ObjectStorage holds uploaded document scans. Implemented by the S3
// client wrapper; faked in tests.
type ObjectStorage interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) error
	Delete(ctx context.Context, key string) error
	PublicURL(key string) string
}

// allowedMimeTypes is the upload allowlist for document scans.
var allowedMimeTypes = map[string]bool{
	"application/pdf": true,
	"image/jpeg":      true,
	"image/png":       true,
}

// ValidationError lists the required fields missing from a submission.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Missing, ", "))
}

// DisallowedFileTypeError rejects an upload outside the MIME allowlist.
type DisallowedFileTypeError struct {
	MimeType string
}

func (e *DisallowedFileTypeError) Error() string {
	return fmt.Sprintf("file type %s is not allowed", e.MimeType)
}

// FileUpload is an incoming scan attachment.
type FileUpload struct {
	Name        string
	ContentType string
	Body        io.Reader
}

// AddDocumentInput carries the raw add-document form fields. RenewalProcess
// is the multi-line textarea value, split into steps on save.
type AddDocumentInput struct {
	Name           string `form:"name"`
	Type           string `form:"type"`
	SubmissionDate string `form:"submission_date"`
	ExpiryDate     string `form:"expiry_date"`
	RenewalProcess string `form:"renewal_process"`
	Notes          string `form:"notes"`
}

// Tracker owns the document collection lifecycle: CRUD, expiry-status
// classification at write time, and scan attachments.
type Tracker struct {
	docs      store.DocumentStore
	important store.ImportantDocumentStore
	objects   ObjectStorage
	notifier  notify.Notifier
	locks     *utils.KeyMutex

	// Now is the clock used for status derivation; overridable in tests.
	Now func() time.Time
}

func NewTracker(
	docs store.DocumentStore,
	important store.ImportantDocumentStore,
	objects ObjectStorage,
	notifier notify.Notifier,
	locks *utils.KeyMutex,
) *Tracker {
	return &Tracker{
		docs:      docs,
		important: important,
		objects:   objects,
		notifier:  notifier,
		locks:     locks,
		Now:       time.Now,
	}
}

func (t *Tracker) Documents(ctx context.Context, ownerID string) ([]*types.Document, error) {
	return t.docs.Documents(ctx, ownerID)
}

func (t *Tracker) ImportantDocuments(ctx context.Context, ownerID string) ([]*types.ImportantDocument, error) {
	return t.important.ImportantDocuments(ctx, ownerID)
}

// AddDocument validates the submission, derives the initial status, and
// stores the new document at the front of the collection.
func (t *Tracker) AddDocument(ctx context.Context, ownerID string, input AddDocumentInput) (*types.Document, error) {
	var missing []string
	if strings.TrimSpace(input.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(input.Type) == "" {
		missing = append(missing, "type")
	}
	if !validISODate(input.SubmissionDate) {
		missing = append(missing, "submission date")
	}
	if !validISODate(input.ExpiryDate) {
		missing = append(missing, "expiry date")
	}

	if len(missing) > 0 {
		t.notifier.Notify(ctx, notify.Toast{
			Title:       "Please fill in all required fields",
			Description: fmt.Sprintf("Missing: %s", strings.Join(missing, ", ")),
			Severity:    notify.SeverityDestructive,
		})
		return nil, &ValidationError{Missing: missing}
	}

	status, err := statusFromISO(input.ExpiryDate, t.Now())
	if err != nil {
		return nil, fmt.Errorf("derive status: %w", err)
	}

	doc := &types.Document{
		ID:                  utils.NanoID(),
		OwnerID:             ownerID,
		Name:                strings.TrimSpace(input.Name),
		Type:                strings.TrimSpace(input.Type),
		SubmissionDate:      input.SubmissionDate,
		ExpiryDate:          input.ExpiryDate,
		Status:              status,
		RenewalProcess:      SplitRenewalSteps(input.RenewalProcess),
		NotificationEnabled: true,
		Notes:               strings.TrimSpace(input.Notes),
	}

	if err := t.docs.CreateDocument(ctx, doc); err != nil {
		t.notifier.Notify(ctx, notify.Toast{
			Title:    "Failed to add document",
			Severity: notify.SeverityDestructive,
		})
		return nil, fmt.Errorf("create document: %w", err)
	}

	t.notifier.Notify(ctx, notify.Toast{Title: "Document added successfully"})
	return doc, nil
}

// DeleteDocument removes a document. An absent id is a no-op.
func (t *Tracker) DeleteDocument(ctx context.Context, ownerID, id string) error {
	if err := t.docs.DeleteDocument(ctx, ownerID, id); err != nil {
		t.notifier.Notify(ctx, notify.Toast{
			Title:    "Failed to delete document",
			Severity: notify.SeverityDestructive,
		})
		return fmt.Errorf("delete document: %w", err)
	}

	t.notifier.Notify(ctx, notify.Toast{Title: "Document deleted successfully"})
	return nil
}

// ToggleNotification flips the reminder flag. An absent id is a no-op.
func (t *Tracker) ToggleNotification(ctx context.Context, ownerID, id string) error {
	doc, err := t.docs.DocumentByID(ctx, ownerID, id)
	if errors.Is(err, types.ErrDocumentNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load document: %w", err)
	}

	doc.NotificationEnabled = !doc.NotificationEnabled

	if err := t.docs.UpdateDocument(ctx, doc); err != nil {
		t.notifier.Notify(ctx, notify.Toast{
			Title:    "Failed to update notification",
			Severity: notify.SeverityDestructive,
		})
		return fmt.Errorf("update document: %w", err)
	}

	title := "Notifications disabled"
	if doc.NotificationEnabled {
		title = "Notifications enabled"
	}
	t.notifier.Notify(ctx, notify.Toast{Title: title})
	return nil
}

// EditDates replaces both dates and re-derives the status. Both dates are
// required. The load-derive-write sequence runs under the owner lock.
func (t *Tracker) EditDates(ctx context.Context, ownerID, id, submissionDate, expiryDate string) (*types.Document, error) {
	if !validISODate(submissionDate) || !validISODate(expiryDate) {
		t.notifier.Notify(ctx, notify.Toast{
			Title:    "Both dates are required",
			Severity: notify.SeverityDestructive,
		})
		return nil, &ValidationError{Missing: []string{"submission date", "expiry date"}}
	}

	t.locks.Lock(ownerID)
	defer t.locks.Unlock(ownerID)

	doc, err := t.docs.DocumentByID(ctx, ownerID, id)
	if err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}

	status, err := statusFromISO(expiryDate, t.Now())
	if err != nil {
		return nil, fmt.Errorf("derive status: %w", err)
	}

	doc.SubmissionDate = submissionDate
	doc.ExpiryDate = expiryDate
	doc.Status = status

	if err := t.docs.UpdateDocument(ctx, doc); err != nil {
		t.notifier.Notify(ctx, notify.Toast{
			Title:    "Failed to update dates",
			Severity: notify.SeverityDestructive,
		})
		return nil, fmt.Errorf("update document: %w", err)
	}

	t.notifier.Notify(ctx, notify.Toast{Title: "Dates updated"})
	return doc, nil
}

// AttachFile validates the MIME type against the allowlist, uploads the
// scan, and stores the reference on the document. A rejected upload leaves
// any previous attachment in place.
func (t *Tracker) AttachFile(ctx context.Context, ownerID, id string, upload FileUpload) (*types.Document, error) {
	if !allowedMimeTypes[upload.ContentType] {
		t.notifier.Notify(ctx, notify.Toast{
			Title:    "Only PDF, JPG, or PNG files are allowed.",
			Severity: notify.SeverityDestructive,
		})
		return nil, &DisallowedFileTypeError{MimeType: upload.ContentType}
	}

	doc, err := t.docs.DocumentByID(ctx, ownerID, id)
	if err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}

	key := path.Join("documents", ownerID, id, upload.Name)
	if err := t.objects.Upload(ctx, key, upload.Body, upload.ContentType); err != nil {
		t.notifier.Notify(ctx, notify.Toast{
			Title:    "Failed to upload file",
			Severity: notify.SeverityDestructive,
		})
		return nil, fmt.Errorf("upload file: %w", err)
	}

	doc.FileName = upload.Name
	doc.StorageKey = key
	doc.FileURL = t.objects.PublicURL(key)
	doc.FileIsImage = strings.HasPrefix(upload.ContentType, "image/")

	if err := t.docs.UpdateDocument(ctx, doc); err != nil {
		t.notifier.Notify(ctx, notify.Toast{
			Title:    "Failed to save file reference",
			Severity: notify.SeverityDestructive,
		})
		return nil, fmt.Errorf("update document: %w", err)
	}

	t.notifier.Notify(ctx, notify.Toast{Title: "File uploaded successfully"})
	return doc, nil
}

// RemoveFile clears the attachment reference. The stored object is removed
// best-effort; the reference is cleared regardless.
func (t *Tracker) RemoveFile(ctx context.Context, ownerID, id string) error {
	doc, err := t.docs.DocumentByID(ctx, ownerID, id)
	if errors.Is(err, types.ErrDocumentNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load document: %w", err)
	}

	if !doc.HasFile() {
		return nil
	}

	if doc.StorageKey != "" {
		_ = t.objects.Delete(ctx, doc.StorageKey)
	}

	doc.FileName = ""
	doc.StorageKey = ""
	doc.FileURL = ""
	doc.FileIsImage = false

	if err := t.docs.UpdateDocument(ctx, doc); err != nil {
		return fmt.Errorf("update document: %w", err)
	}
	return nil
}

// AddImportantDocument stores a safekeeping document. Name and a file are
// required; the description is optional.
func (t *Tracker) AddImportantDocument(ctx context.Context, ownerID, name, description string, upload *FileUpload) (*types.ImportantDocument, error) {
	var missing []string
	if strings.TrimSpace(name) == "" {
		missing = append(missing, "name")
	}
	if upload == nil {
		missing = append(missing, "file")
	}

	if len(missing) > 0 {
		t.notifier.Notify(ctx, notify.Toast{
			Title:    "Please provide at least a name and a file for the document.",
			Severity: notify.SeverityDestructive,
		})
		return nil, &ValidationError{Missing: missing}
	}

	if !allowedMimeTypes[upload.ContentType] {
		t.notifier.Notify(ctx, notify.Toast{
			Title:    "Only PDF, JPG, or PNG files are allowed.",
			Severity: notify.SeverityDestructive,
		})
		return nil, &DisallowedFileTypeError{MimeType: upload.ContentType}
	}

	doc := &types.ImportantDocument{
		ID:          utils.NanoID(),
		OwnerID:     ownerID,
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
		FileName:    upload.Name,
	}

	key := path.Join("important", ownerID, doc.ID, upload.Name)
	if err := t.objects.Upload(ctx, key, upload.Body, upload.ContentType); err != nil {
		t.notifier.Notify(ctx, notify.Toast{
			Title:    "Failed to upload file",
			Severity: notify.SeverityDestructive,
		})
		return nil, fmt.Errorf("upload file: %w", err)
	}

	doc.StorageKey = key
	doc.FileURL = t.objects.PublicURL(key)

	if err := t.important.CreateImportantDocument(ctx, doc); err != nil {
		t.notifier.Notify(ctx, notify.Toast{
			Title:    "Failed to add document",
			Severity: notify.SeverityDestructive,
		})
		return nil, fmt.Errorf("create important document: %w", err)
	}

	t.notifier.Notify(ctx, notify.Toast{Title: "Important document uploaded!"})
	return doc, nil
}

// DeleteImportantDocument removes a safekeeping document. Absent ids are
// no-ops.
func (t *Tracker) DeleteImportantDocument(ctx context.Context, ownerID, id string) error {
	if err := t.important.DeleteImportantDocument(ctx, ownerID, id); err != nil {
		t.notifier.Notify(ctx, notify.Toast{
			Title:    "Failed to delete document",
			Severity: notify.SeverityDestructive,
		})
		return fmt.Errorf("delete important document: %w", err)
	}

	t.notifier.Notify(ctx, notify.Toast{Title: "Important document deleted!"})
	return nil
}

// SplitRenewalSteps turns the renewal-process textarea into ordered,
// non-empty steps.
func SplitRenewalSteps(raw string) []string {
	lines := strings.Split(raw, "\n")

	steps := make([]string, 0, len(lines))
	for _, line := range lines {
		if step := strings.TrimSpace(line); step != "" {
			steps = append(steps, step)
		}
	}
	return steps
}

// Suggestions are the prefill templates offered above the add-document
// form.
func Suggestions() []types.DocumentSuggestion {
	return []types.DocumentSuggestion{
		{Name: "Residence Permit", Type: "Immigration"},
		{Name: "Student Visa", Type: "Immigration"},
		{Name: "Health Insurance", Type: "Insurance"},
		{Name: "Housing Guarantee", Type: "Housing"},
		{Name: "CAF Attestation", Type: "Housing/CAF"},
		{Name: "Birth Certificate", Type: "Identity"},
		{Name: "Bank Proof (RIB)", Type: "Finance"},
		{Name: "Enrollment Certificate", Type: "Education"},
		{Name: "OFII Certificate", Type: "Immigration"},
		{Name: "Social Security Number (SSN)", Type: "Social Security"},
	}
}
