package server

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"bienvenue/internal/catalog"
	"bienvenue/internal/chatbot"
	"bienvenue/pkg/types"
)

func (s *Service) handleHome(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	cities, err := s.directory.Cities(ctx)
	if err != nil {
		s.logger.WithError(err).Error("failed to load cities for home page")
		cities = nil
	}

	data := &types.HomePageData{
		BasePageData:      types.BasePageData{Title: "Bienvenue"},
		Cities:            cities,
		TrendingQuestions: chatbot.TrendingQuestions(),
	}

	if err := s.renderTemplate(w, r, "page.home", data); err != nil {
		s.logger.WithError(err).Error("failed to render home page")
		s.internalServerError(w)
		return
	}
}

// handleHub is the landing page after sign-in: the module grid plus the
// current key balance.
func (s *Service) handleHub(w http.ResponseWriter, r *http.Request) {
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

	data := &types.HubPageData{
		BasePageData: types.BasePageData{Title: "Your Hub"},
		Modules:      catalog.Modules(),
		Progress:     progress,
	}

	if err := s.renderTemplate(w, r, "page.hub", data); err != nil {
		s.logger.WithError(err).Error("failed to render hub page")
		s.internalServerError(w)
		return
	}
}

func (s *Service) handleNews(w http.ResponseWriter, r *http.Request) {
	s.renderStatic(w, r, "page.news", "News & Updates")
}

func (s *Service) handleAffiliation(w http.ResponseWriter, r *http.Request) {
	s.renderStatic(w, r, "page.affiliation", "Affiliated Services")
}

func (s *Service) handleTranslate(w http.ResponseWriter, r *http.Request) {
	s.renderStatic(w, r, "page.translate", "Translation Help")
}

func (s *Service) renderStatic(w http.ResponseWriter, r *http.Request, templateName, title string) {
	data := &types.StaticPageData{
		BasePageData: types.BasePageData{Title: title},
	}

	if err := s.renderTemplate(w, r, templateName, data); err != nil {
		s.logger.WithError(err).WithField("template", templateName).Error("failed to render page")
		s.internalServerError(w)
		return
	}
}

func (s *Service) handleGetContact(w http.ResponseWriter, r *http.Request) {
	data := &types.ContactPageData{
		BasePageData: types.BasePageData{Title: "Contact Us"},
		Notice:       strings.TrimSpace(r.URL.Query().Get("notice")),
		Error:        strings.TrimSpace(r.URL.Query().Get("error")),
	}

	if err := s.renderTemplate(w, r, "page.contact", data); err != nil {
		s.logger.WithError(err).Error("failed to render contact page")
		s.internalServerError(w)
		return
	}
}

func (s *Service) handleContactSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.redirectContactWithError(w, r, "invalid form payload")
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	email := strings.TrimSpace(r.FormValue("email"))
	subject := strings.TrimSpace(r.FormValue("subject"))
	body := strings.TrimSpace(r.FormValue("message"))

	if !required(name) || !required(body) {
		s.redirectContactWithError(w, r, "name and message are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := s.forms.CreateContactMessage(ctx, name, email, subject, body); err != nil {
		s.logger.WithError(err).Error("failed to submit contact message")
		s.redirectContactWithError(w, r, "unable to submit message")
		return
	}

	s.redirectContactWithNotice(w, r, "Message sent. We will get back to you soon.")
}

func (s *Service) handleNewsletterSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.redirectContactWithError(w, r, "invalid form payload")
		return
	}

	email := strings.TrimSpace(r.FormValue("email"))
	city := strings.TrimSpace(r.FormValue("city"))

	if !required(email) {
		s.redirectContactWithError(w, r, "email is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := s.forms.UpsertNewsletterSignup(ctx, email, city); err != nil {
		s.logger.WithError(err).Error("failed to submit newsletter signup")
		s.redirectContactWithError(w, r, "unable to submit signup")
		return
	}

	s.redirectContactWithNotice(w, r, "Signup received")
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Service) redirectContactWithNotice(w http.ResponseWriter, r *http.Request, notice string) {
	v := url.Values{}
	v.Set("notice", notice)
	http.Redirect(w, r, "/contact?"+v.Encode(), http.StatusSeeOther)
}

func (s *Service) redirectContactWithError(w http.ResponseWriter, r *http.Request, msg string) {
	v := url.Values{}
	v.Set("error", msg)
	http.Redirect(w, r, "/contact?"+v.Encode(), http.StatusSeeOther)
}

func required(v string) bool {
	return strings.TrimSpace(v) != ""
}

func (s *Service) internalServerError(w http.ResponseWriter) {
	http.Error(w, "internal server error", http.StatusInternalServerError)
}
