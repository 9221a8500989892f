package documents

import (
	"context"
	"io"
	"slices"
	"strings"
	"testing"
	"time"

	"bienvenue/internal/notify"
	"bienvenue/internal/utils"
	"bienvenue/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryDocumentStore struct {
	docs []*types.Document
}

func (s *memoryDocumentStore) Documents(_ context.Context, ownerID string) ([]*types.Document, error) {
	out := make([]*types.Document, 0)
	for _, doc := range s.docs {
		if doc.OwnerID == ownerID {
			out = append(out, doc)
		}
	}
	return out, nil
}

func (s *memoryDocumentStore) DocumentByID(_ context.Context, ownerID, id string) (*types.Document, error) {
	for _, doc := range s.docs {
		if doc.OwnerID == ownerID && doc.ID == id {
			clone := *doc
			return &clone, nil
		}
	}
	return nil, types.ErrDocumentNotFound
}

func (s *memoryDocumentStore) CreateDocument(_ context.Context, doc *types.Document) error {
	s.docs = append([]*types.Document{doc}, s.docs...)
	return nil
}

func (s *memoryDocumentStore) UpdateDocument(_ context.Context, doc *types.Document) error {
	for i, existing := range s.docs {
		if existing.OwnerID == doc.OwnerID && existing.ID == doc.ID {
			s.docs[i] = doc
			return nil
		}
	}
	return types.ErrDocumentNotFound
}

func (s *memoryDocumentStore) DeleteDocument(_ context.Context, ownerID, id string) error {
	s.docs = slices.DeleteFunc(s.docs, func(d *types.Document) bool {
		return d.OwnerID == ownerID && d.ID == id
	})
	return nil
}

type memoryImportantStore struct {
	docs []*types.ImportantDocument
}

func (s *memoryImportantStore) ImportantDocuments(_ context.Context, ownerID string) ([]*types.ImportantDocument, error) {
	out := make([]*types.ImportantDocument, 0)
	for _, doc := range s.docs {
		if doc.OwnerID == ownerID {
			out = append(out, doc)
		}
	}
	return out, nil
}

func (s *memoryImportantStore) CreateImportantDocument(_ context.Context, doc *types.ImportantDocument) error {
	s.docs = append([]*types.ImportantDocument{doc}, s.docs...)
	return nil
}

func (s *memoryImportantStore) DeleteImportantDocument(_ context.Context, ownerID, id string) error {
	s.docs = slices.DeleteFunc(s.docs, func(d *types.ImportantDocument) bool {
		return d.OwnerID == ownerID && d.ID == id
	})
	return nil
}

type fakeObjectStorage struct {
	uploaded map[string]string // key -> content type
	deleted  []string
}

func newFakeObjectStorage() *fakeObjectStorage {
	return &fakeObjectStorage{uploaded: map[string]string{}}
}

func (s *fakeObjectStorage) Upload(_ context.Context, key string, body io.Reader, contentType string) error {
	_, _ = io.Copy(io.Discard, body)
	s.uploaded[key] = contentType
	return nil
}

func (s *fakeObjectStorage) Delete(_ context.Context, key string) error {
	s.deleted = append(s.deleted, key)
	return nil
}

func (s *fakeObjectStorage) PublicURL(key string) string {
	return "https://files.example.com/" + key
}

type captureNotifier struct {
	toasts []notify.Toast
}

func (n *captureNotifier) Notify(_ context.Context, toast notify.Toast) {
	n.toasts = append(n.toasts, toast)
}

func newTestTracker() (*Tracker, *memoryDocumentStore, *memoryImportantStore, *fakeObjectStorage, *captureNotifier) {
	docs := &memoryDocumentStore{}
	important := &memoryImportantStore{}
	objects := newFakeObjectStorage()
	notifier := &captureNotifier{}

	tracker := NewTracker(docs, important, objects, notifier, utils.NewKeyMutex())
	tracker.Now = func() time.Time { return date("2025-06-15") }

	return tracker, docs, important, objects, notifier
}

func validInput() AddDocumentInput {
	return AddDocumentInput{
		Name:           "Student Visa",
		Type:           "Visa",
		SubmissionDate: "2025-01-10",
		ExpiryDate:     "2026-01-10",
		RenewalProcess: "Book a prefecture appointment\n\nGather payslips\nPay the tax stamp",
		Notes:          "VLS-TS",
	}
}

func TestAddDocument(t *testing.T) {
	tracker, _, _, _, notifier := newTestTracker()
	ctx := context.Background()

	doc, err := tracker.AddDocument(ctx, "owner-1", validInput())
	require.NoError(t, err)

	assert.NotEmpty(t, doc.ID)
	assert.Equal(t, "owner-1", doc.OwnerID)
	assert.Equal(t, types.DocumentStatusValid, doc.Status)
	assert.True(t, doc.NotificationEnabled)
	assert.Equal(t, []string{"Book a prefecture appointment", "Gather payslips", "Pay the tax stamp"}, doc.RenewalProcess)

	require.Len(t, notifier.toasts, 1)
	assert.Equal(t, "Document added successfully", notifier.toasts[0].Title)
}

func TestAddDocumentNewestFirst(t *testing.T) {
	tracker, _, _, _, _ := newTestTracker()
	ctx := context.Background()

	first := validInput()
	_, err := tracker.AddDocument(ctx, "owner-1", first)
	require.NoError(t, err)

	second := validInput()
	second.Name = "Residence Permit"
	_, err = tracker.AddDocument(ctx, "owner-1", second)
	require.NoError(t, err)

	docs, err := tracker.Documents(ctx, "owner-1")
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "Residence Permit", docs[0].Name)
	assert.Equal(t, "Student Visa", docs[1].Name)
}

func TestAddDocumentMissingFields(t *testing.T) {
	tracker, docs, _, _, notifier := newTestTracker()
	ctx := context.Background()

	input := validInput()
	input.Name = "  "
	input.ExpiryDate = ""

	_, err := tracker.AddDocument(ctx, "owner-1", input)

	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, []string{"name", "expiry date"}, validation.Missing)
	assert.Empty(t, docs.docs)

	require.Len(t, notifier.toasts, 1)
	assert.Equal(t, "Please fill in all required fields", notifier.toasts[0].Title)
	assert.Equal(t, notify.SeverityDestructive, notifier.toasts[0].Severity)
}

func TestAddDocumentExpiringStatus(t *testing.T) {
	tracker, _, _, _, _ := newTestTracker()
	ctx := context.Background()

	input := validInput()
	input.ExpiryDate = "2025-07-15" // 30 days out

	doc, err := tracker.AddDocument(ctx, "owner-1", input)
	require.NoError(t, err)
	assert.Equal(t, types.DocumentStatusExpiring, doc.Status)
}

func TestDeleteDocumentIdempotent(t *testing.T) {
	tracker, _, _, _, _ := newTestTracker()
	ctx := context.Background()

	doc, err := tracker.AddDocument(ctx, "owner-1", validInput())
	require.NoError(t, err)

	require.NoError(t, tracker.DeleteDocument(ctx, "owner-1", doc.ID))
	require.NoError(t, tracker.DeleteDocument(ctx, "owner-1", doc.ID))
	require.NoError(t, tracker.DeleteDocument(ctx, "owner-1", "never-existed"))

	docs, err := tracker.Documents(ctx, "owner-1")
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestToggleNotification(t *testing.T) {
	tracker, _, _, _, notifier := newTestTracker()
	ctx := context.Background()

	doc, err := tracker.AddDocument(ctx, "owner-1", validInput())
	require.NoError(t, err)
	notifier.toasts = nil

	require.NoError(t, tracker.ToggleNotification(ctx, "owner-1", doc.ID))

	updated, err := tracker.docs.DocumentByID(ctx, "owner-1", doc.ID)
	require.NoError(t, err)
	assert.False(t, updated.NotificationEnabled)

	require.Len(t, notifier.toasts, 1)
	assert.Equal(t, "Notifications disabled", notifier.toasts[0].Title)

	notifier.toasts = nil
	require.NoError(t, tracker.ToggleNotification(ctx, "owner-1", doc.ID))

	updated, err = tracker.docs.DocumentByID(ctx, "owner-1", doc.ID)
	require.NoError(t, err)
	assert.True(t, updated.NotificationEnabled)
	assert.Equal(t, "Notifications enabled", notifier.toasts[0].Title)
}

func TestToggleNotificationAbsentID(t *testing.T) {
	tracker, _, _, _, notifier := newTestTracker()

	require.NoError(t, tracker.ToggleNotification(context.Background(), "owner-1", "nope"))
	assert.Empty(t, notifier.toasts)
}

func TestEditDates(t *testing.T) {
	tracker, _, _, _, notifier := newTestTracker()
	ctx := context.Background()

	doc, err := tracker.AddDocument(ctx, "owner-1", validInput())
	require.NoError(t, err)
	assert.Equal(t, types.DocumentStatusValid, doc.Status)
	notifier.toasts = nil

	updated, err := tracker.EditDates(ctx, "owner-1", doc.ID, "2025-01-10", "2025-06-01")
	require.NoError(t, err)

	assert.Equal(t, "2025-06-01", updated.ExpiryDate)
	assert.Equal(t, types.DocumentStatusExpired, updated.Status)

	require.Len(t, notifier.toasts, 1)
	assert.Equal(t, "Dates updated", notifier.toasts[0].Title)
}

func TestEditDatesBothRequired(t *testing.T) {
	tracker, _, _, _, notifier := newTestTracker()
	ctx := context.Background()

	doc, err := tracker.AddDocument(ctx, "owner-1", validInput())
	require.NoError(t, err)
	notifier.toasts = nil

	_, err = tracker.EditDates(ctx, "owner-1", doc.ID, "", "2025-06-01")

	var validation *ValidationError
	require.ErrorAs(t, err, &validation)

	// Document untouched.
	current, err := tracker.docs.DocumentByID(ctx, "owner-1", doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "2026-01-10", current.ExpiryDate)
	assert.Equal(t, types.DocumentStatusValid, current.Status)

	require.Len(t, notifier.toasts, 1)
	assert.Equal(t, "Both dates are required", notifier.toasts[0].Title)
}

func TestAttachFile(t *testing.T) {
	tracker, _, _, objects, notifier := newTestTracker()
	ctx := context.Background()

	doc, err := tracker.AddDocument(ctx, "owner-1", validInput())
	require.NoError(t, err)
	notifier.toasts = nil

	updated, err := tracker.AttachFile(ctx, "owner-1", doc.ID, FileUpload{
		Name:        "visa.pdf",
		ContentType: "application/pdf",
		Body:        strings.NewReader("%PDF-1.4"),
	})
	require.NoError(t, err)

	assert.Equal(t, "visa.pdf", updated.FileName)
	assert.Equal(t, "documents/owner-1/"+doc.ID+"/visa.pdf", updated.StorageKey)
	assert.Equal(t, "https://files.example.com/"+updated.StorageKey, updated.FileURL)
	assert.False(t, updated.FileIsImage)
	assert.Contains(t, objects.uploaded, updated.StorageKey)

	require.Len(t, notifier.toasts, 1)
	assert.Equal(t, "File uploaded successfully", notifier.toasts[0].Title)
}

func TestAttachFileImageFlag(t *testing.T) {
	tracker, _, _, _, _ := newTestTracker()
	ctx := context.Background()

	doc, err := tracker.AddDocument(ctx, "owner-1", validInput())
	require.NoError(t, err)

	updated, err := tracker.AttachFile(ctx, "owner-1", doc.ID, FileUpload{
		Name:        "scan.png",
		ContentType: "image/png",
		Body:        strings.NewReader("png-bytes"),
	})
	require.NoError(t, err)
	assert.True(t, updated.FileIsImage)
}

func TestAttachFileDisallowedType(t *testing.T) {
	tracker, _, _, objects, notifier := newTestTracker()
	ctx := context.Background()

	doc, err := tracker.AddDocument(ctx, "owner-1", validInput())
	require.NoError(t, err)
	notifier.toasts = nil

	_, err = tracker.AttachFile(ctx, "owner-1", doc.ID, FileUpload{
		Name:        "malware.exe",
		ContentType: "application/octet-stream",
		Body:        strings.NewReader("nope"),
	})

	var disallowed *DisallowedFileTypeError
	require.ErrorAs(t, err, &disallowed)
	assert.Equal(t, "application/octet-stream", disallowed.MimeType)
	assert.Empty(t, objects.uploaded)

	require.Len(t, notifier.toasts, 1)
	assert.Equal(t, "Only PDF, JPG, or PNG files are allowed.", notifier.toasts[0].Title)
	assert.Equal(t, notify.SeverityDestructive, notifier.toasts[0].Severity)
}

func TestRemoveFile(t *testing.T) {
	tracker, _, _, objects, _ := newTestTracker()
	ctx := context.Background()

	doc, err := tracker.AddDocument(ctx, "owner-1", validInput())
	require.NoError(t, err)

	_, err = tracker.AttachFile(ctx, "owner-1", doc.ID, FileUpload{
		Name:        "visa.pdf",
		ContentType: "application/pdf",
		Body:        strings.NewReader("%PDF-1.4"),
	})
	require.NoError(t, err)

	require.NoError(t, tracker.RemoveFile(ctx, "owner-1", doc.ID))

	updated, err := tracker.docs.DocumentByID(ctx, "owner-1", doc.ID)
	require.NoError(t, err)
	assert.False(t, updated.HasFile())
	assert.Len(t, objects.deleted, 1)

	// Removing again, and removing from an absent id, are no-ops.
	require.NoError(t, tracker.RemoveFile(ctx, "owner-1", doc.ID))
	require.NoError(t, tracker.RemoveFile(ctx, "owner-1", "nope"))
	assert.Len(t, objects.deleted, 1)
}

func TestAddImportantDocument(t *testing.T) {
	tracker, _, important, objects, notifier := newTestTracker()
	ctx := context.Background()

	doc, err := tracker.AddImportantDocument(ctx, "owner-1", "Birth Certificate", "Translated copy", &FileUpload{
		Name:        "birth-certificate.pdf",
		ContentType: "application/pdf",
		Body:        strings.NewReader("%PDF-1.4"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Birth Certificate", doc.Name)
	assert.Equal(t, "important/owner-1/"+doc.ID+"/birth-certificate.pdf", doc.StorageKey)
	assert.Contains(t, objects.uploaded, doc.StorageKey)
	assert.Len(t, important.docs, 1)

	require.Len(t, notifier.toasts, 1)
	assert.Equal(t, "Important document uploaded!", notifier.toasts[0].Title)
}

func TestAddImportantDocumentRequiresNameAndFile(t *testing.T) {
	tracker, _, important, _, notifier := newTestTracker()
	ctx := context.Background()

	_, err := tracker.AddImportantDocument(ctx, "owner-1", "", "", nil)

	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, []string{"name", "file"}, validation.Missing)
	assert.Empty(t, important.docs)

	require.Len(t, notifier.toasts, 1)
	assert.Equal(t, "Please provide at least a name and a file for the document.", notifier.toasts[0].Title)
}

func TestAddImportantDocumentReportsOnlyAbsentFields(t *testing.T) {
	tracker, _, important, _, _ := newTestTracker()
	ctx := context.Background()

	_, err := tracker.AddImportantDocument(ctx, "owner-1", "Passport", "", nil)

	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, []string{"file"}, validation.Missing)

	_, err = tracker.AddImportantDocument(ctx, "owner-1", "  ", "", &FileUpload{
		Name:        "passport.pdf",
		ContentType: "application/pdf",
		Body:        strings.NewReader("%PDF-1.4"),
	})

	require.ErrorAs(t, err, &validation)
	assert.Equal(t, []string{"name"}, validation.Missing)
	assert.Empty(t, important.docs)
}

func TestDeleteImportantDocumentIdempotent(t *testing.T) {
	tracker, _, important, _, _ := newTestTracker()
	ctx := context.Background()

	doc, err := tracker.AddImportantDocument(ctx, "owner-1", "Passport", "", &FileUpload{
		Name:        "passport.jpg",
		ContentType: "image/jpeg",
		Body:        strings.NewReader("jpeg-bytes"),
	})
	require.NoError(t, err)

	require.NoError(t, tracker.DeleteImportantDocument(ctx, "owner-1", doc.ID))
	require.NoError(t, tracker.DeleteImportantDocument(ctx, "owner-1", doc.ID))
	assert.Empty(t, important.docs)
}

func TestSplitRenewalSteps(t *testing.T) {
	steps := SplitRenewalSteps("  Step one \n\n\nStep two\n   \nStep three\n")
	assert.Equal(t, []string{"Step one", "Step two", "Step three"}, steps)

	assert.Empty(t, SplitRenewalSteps(""))
	assert.Empty(t, SplitRenewalSteps("   \n \n"))
}
