package server

import (
	"errors"
	"net/http"

	"bienvenue/internal/catalog"
	"bienvenue/internal/chatbot"
	"bienvenue/internal/progression"
	"bienvenue/pkg/types"
)

func (s *Service) handleChecklist(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sess, err := s.sessionFromContext(ctx)
	if err != nil {
		s.logger.WithError(err).Error("session not found in context")
		s.internalServerError(w)
		return
	}

	progress, err := s.engineFor(w, sess).ProgressFor(ctx, sess.OwnerID)
	if err != nil {
		s.logger.WithError(err).Error("failed to load progress")
		s.internalServerError(w)
		return
	}

	modules := catalog.Modules()
	completed := len(progress.CompletedModules)

	data := &types.ChecklistPageData{
		BasePageData: types.BasePageData{Title: "Relocation Checklist"},
		Modules:      modules,
		Progress:     progress,
		Completed:    completed,
		Total:        len(modules),
	}
	if data.Total > 0 {
		data.PercentDone = completed * 100 / data.Total
	}

	if err := s.renderTemplate(w, r, "page.checklist", data); err != nil {
		s.logger.WithError(err).Error("failed to render checklist page")
		s.internalServerError(w)
		return
	}
}

func (s *Service) handleModuleDetail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	moduleID := r.PathValue("moduleID")

	module, ok := catalog.ByID(moduleID)
	if !ok {
		http.NotFound(w, r)
		return
	}

	sess, err := s.sessionFromContext(ctx)
	if err != nil {
		s.logger.WithError(err).Error("session not found in context")
		s.internalServerError(w)
		return
	}

	progress, err := s.engineFor(w, sess).ProgressFor(ctx, sess.OwnerID)
	if err != nil {
		s.logger.WithError(err).Error("failed to load progress")
		s.internalServerError(w)
		return
	}

	// Gated modules stay closed until unlocked.
	if !module.Free() && !progress.Unlocked(moduleID) {
		http.Redirect(w, r, "/checklist", http.StatusSeeOther)
		return
	}

	data := &types.ModuleDetailPageData{
		BasePageData: types.BasePageData{Title: module.Title},
		Module:       module,
		Progress:     progress,
		ContextHint:  chatbot.ContextHint(module.Title),
	}

	if err := s.renderTemplate(w, r, "page.module", data); err != nil {
		s.logger.WithError(err).Error("failed to render module page")
		s.internalServerError(w)
		return
	}
}

func (s *Service) handleModuleUnlock(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	moduleID := r.PathValue("moduleID")

	sess, err := s.sessionFromContext(ctx)
	if err != nil {
		s.logger.WithError(err).Error("session not found in context")
		s.internalServerError(w)
		return
	}

	_, err = s.engineFor(w, sess).AttemptUnlock(ctx, sess.OwnerID, moduleID)
	if err != nil {
		var insufficient *progression.InsufficientKeysError
		switch {
		case errors.Is(err, types.ErrModuleNotFound):
			http.NotFound(w, r)
			return
		case errors.As(err, &insufficient):
			// Rejection toast already queued; fall through to the redirect.
		default:
			s.logger.WithError(err).WithField("module_id", moduleID).Error("failed to unlock module")
			s.internalServerError(w)
			return
		}
	}

	http.Redirect(w, r, "/checklist", http.StatusSeeOther)
}

func (s *Service) handleModuleComplete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	moduleID := r.PathValue("moduleID")

	sess, err := s.sessionFromContext(ctx)
	if err != nil {
		s.logger.WithError(err).Error("session not found in context")
		s.internalServerError(w)
		return
	}

	_, err = s.engineFor(w, sess).CompleteModule(ctx, sess.OwnerID, moduleID)
	if err != nil {
		switch {
		case errors.Is(err, types.ErrModuleNotFound):
			http.NotFound(w, r)
			return
		case errors.Is(err, progression.ErrModuleLocked):
			// Toast already queued.
		default:
			s.logger.WithError(err).WithField("module_id", moduleID).Error("failed to complete module")
			s.internalServerError(w)
			return
		}
	}

	http.Redirect(w, r, "/checklist", http.StatusSeeOther)
}
