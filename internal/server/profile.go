package server

import (
	"net/http"

	"bienvenue/internal/catalog"
	"bienvenue/pkg/types"
)

func (s *Service) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sess, err := s.sessionFromContext(ctx)
	if err != nil {
		s.logger.WithError(err).Error("session not found in context")
		s.internalServerError(w)
		return
	}

	progress, err := s.engineFor(w, sess).ProgressFor(ctx, sess.OwnerID)
	if err != nil {
		s.logger.WithError(err).Error("failed to load progress for profile")
		s.internalServerError(w)
		return
	}

	data := &types.ProfilePageData{
		BasePageData: types.BasePageData{Title: "My Profile"},
		UserID:       sess.OwnerID,
		UserEmail:    sess.Email,
		Progress:     progress,
		Completed:    len(progress.CompletedModules),
		Total:        len(catalog.Modules()),
	}

	if err := s.renderTemplate(w, r, "page.profile", data); err != nil {
		s.logger.WithError(err).Error("failed to render profile page")
		s.internalServerError(w)
		return
	}
}
