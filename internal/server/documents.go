package server

import (
	"errors"
	"net/http"

	"bienvenue/internal/documents"
	"bienvenue/pkg/types"
)

// maxUploadBytes caps document scan uploads at 10MB.
const maxUploadBytes = 10 << 20

func (s *Service) handleDocuments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sess, err := s.sessionFromContext(ctx)
	if err != nil {
		s.logger.WithError(err).Error("session not found in context")
		s.internalServerError(w)
		return
	}

	tracker := s.trackerFor(w, sess)

	docs, err := tracker.Documents(ctx, sess.OwnerID)
	if err != nil {
		s.logger.WithError(err).Error("failed to load documents")
		s.internalServerError(w)
		return
	}

	important, err := tracker.ImportantDocuments(ctx, sess.OwnerID)
	if err != nil {
		s.logger.WithError(err).Error("failed to load important documents")
		s.internalServerError(w)
		return
	}

	data := &types.DocumentsPageData{
		BasePageData: types.BasePageData{Title: "My Documents"},
		Documents:    docs,
		Important:    important,
		Suggestions:  documents.Suggestions(),
	}

	if err := s.renderTemplate(w, r, "page.documents", data); err != nil {
		s.logger.WithError(err).Error("failed to render documents page")
		s.internalServerError(w)
		return
	}
}

func (s *Service) handleDocumentAdd(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sess, err := s.sessionFromContext(ctx)
	if err != nil {
		s.logger.WithError(err).Error("session not found in context")
		s.internalServerError(w)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form payload", http.StatusBadRequest)
		return
	}

	var input documents.AddDocumentInput
	if err := decoder.Decode(&input, r.PostForm); err != nil {
		http.Error(w, "invalid form payload", http.StatusBadRequest)
		return
	}

	_, err = s.trackerFor(w, sess).AddDocument(ctx, sess.OwnerID, input)
	if err != nil {
		var validation *documents.ValidationError
		if !errors.As(err, &validation) {
			s.logger.WithError(err).Error("failed to add document")
			s.internalServerError(w)
			return
		}
		// Validation toast already queued; fall through to the redirect.
	}

	http.Redirect(w, r, "/documents", http.StatusSeeOther)
}

func (s *Service) handleDocumentDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sess, err := s.sessionFromContext(ctx)
	if err != nil {
		s.logger.WithError(err).Error("session not found in context")
		s.internalServerError(w)
		return
	}

	if err := s.trackerFor(w, sess).DeleteDocument(ctx, sess.OwnerID, r.PathValue("id")); err != nil {
		s.logger.WithError(err).Error("failed to delete document")
		s.internalServerError(w)
		return
	}

	http.Redirect(w, r, "/documents", http.StatusSeeOther)
}

func (s *Service) handleDocumentToggleNotification(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sess, err := s.sessionFromContext(ctx)
	if err != nil {
		s.logger.WithError(err).Error("session not found in context")
		s.internalServerError(w)
		return
	}

	if err := s.trackerFor(w, sess).ToggleNotification(ctx, sess.OwnerID, r.PathValue("id")); err != nil {
		s.logger.WithError(err).Error("failed to toggle notification")
		s.internalServerError(w)
		return
	}

	http.Redirect(w, r, "/documents", http.StatusSeeOther)
}

func (s *Service) handleDocumentEditDates(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sess, err := s.sessionFromContext(ctx)
	if err != nil {
		s.logger.WithError(err).Error("session not found in context")
		s.internalServerError(w)
		return
	}

	submissionDate := r.FormValue("submission_date")
	expiryDate := r.FormValue("expiry_date")

	_, err = s.trackerFor(w, sess).EditDates(ctx, sess.OwnerID, r.PathValue("id"), submissionDate, expiryDate)
	if err != nil {
		var validation *documents.ValidationError
		switch {
		case errors.As(err, &validation):
			// Toast already queued.
		case errors.Is(err, types.ErrDocumentNotFound):
			http.NotFound(w, r)
			return
		default:
			s.logger.WithError(err).Error("failed to edit document dates")
			s.internalServerError(w)
			return
		}
	}

	http.Redirect(w, r, "/documents", http.StatusSeeOther)
}

func (s *Service) handleDocumentAttachFile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sess, err := s.sessionFromContext(ctx)
	if err != nil {
		s.logger.WithError(err).Error("session not found in context")
		s.internalServerError(w)
		return
	}

	upload, err := s.fileFromRequest(r, "file")
	if err != nil {
		http.Error(w, "file is required", http.StatusBadRequest)
		return
	}
	defer upload.close()

	_, err = s.trackerFor(w, sess).AttachFile(ctx, sess.OwnerID, r.PathValue("id"), upload.FileUpload)
	if err != nil {
		var disallowed *documents.DisallowedFileTypeError
		switch {
		case errors.As(err, &disallowed):
			// Toast already queued.
		case errors.Is(err, types.ErrDocumentNotFound):
			http.NotFound(w, r)
			return
		default:
			s.logger.WithError(err).Error("failed to attach file")
			s.internalServerError(w)
			return
		}
	}

	http.Redirect(w, r, "/documents", http.StatusSeeOther)
}

func (s *Service) handleDocumentRemoveFile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sess, err := s.sessionFromContext(ctx)
	if err != nil {
		s.logger.WithError(err).Error("session not found in context")
		s.internalServerError(w)
		return
	}

	if err := s.trackerFor(w, sess).RemoveFile(ctx, sess.OwnerID, r.PathValue("id")); err != nil {
		s.logger.WithError(err).Error("failed to remove file")
		s.internalServerError(w)
		return
	}

	http.Redirect(w, r, "/documents", http.StatusSeeOther)
}

func (s *Service) handleImportantDocumentAdd(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sess, err := s.sessionFromContext(ctx)
	if err != nil {
		s.logger.WithError(err).Error("session not found in context")
		s.internalServerError(w)
		return
	}

	name := r.FormValue("name")
	description := r.FormValue("description")

	var filePtr *documents.FileUpload
	upload, err := s.fileFromRequest(r, "file")
	if err == nil {
		defer upload.close()
		filePtr = &upload.FileUpload
	}

	_, err = s.trackerFor(w, sess).AddImportantDocument(ctx, sess.OwnerID, name, description, filePtr)
	if err != nil {
		var validation *documents.ValidationError
		var disallowed *documents.DisallowedFileTypeError
		if !errors.As(err, &validation) && !errors.As(err, &disallowed) {
			s.logger.WithError(err).Error("failed to add important document")
			s.internalServerError(w)
			return
		}
		// Toast already queued.
	}

	http.Redirect(w, r, "/documents", http.StatusSeeOther)
}

func (s *Service) handleImportantDocumentDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sess, err := s.sessionFromContext(ctx)
	if err != nil {
		s.logger.WithError(err).Error("session not found in context")
		s.internalServerError(w)
		return
	}

	if err := s.trackerFor(w, sess).DeleteImportantDocument(ctx, sess.OwnerID, r.PathValue("id")); err != nil {
		s.logger.WithError(err).Error("failed to delete important document")
		s.internalServerError(w)
		return
	}

	http.Redirect(w, r, "/documents", http.StatusSeeOther)
}

// requestFile wraps a multipart upload so handlers can close it after the
// tracker is done reading.
type requestFile struct {
	documents.FileUpload
	close func() error
}

func (s *Service) fileFromRequest(r *http.Request, field string) (*requestFile, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return nil, err
	}

	file, header, err := r.FormFile(field)
	if err != nil {
		return nil, err
	}

	contentType := header.Header.Get("Content-Type")

	return &requestFile{
		FileUpload: documents.FileUpload{
			Name:        header.Filename,
			ContentType: contentType,
			Body:        file,
		},
		close: file.Close,
	}, nil
}
