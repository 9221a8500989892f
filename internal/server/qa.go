package server

import (
	"net/http"
	"strings"

	"bienvenue/internal/chatbot"
	"bienvenue/internal/utils"
	"bienvenue/pkg/types"
)

func (s *Service) handleQA(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sess, err := s.sessionFromContext(ctx)
	if err != nil {
		s.logger.WithError(err).Error("session not found in context")
		s.internalServerError(w)
		return
	}

	messages, err := s.backendFor(sess).Chat.Messages(ctx, sess.OwnerID)
	if err != nil {
		s.logger.WithError(err).Error("failed to load chat transcript")
		s.internalServerError(w)
		return
	}

	data := &types.QAPageData{
		BasePageData:      types.BasePageData{Title: "Q&A Assistant"},
		Messages:          messages,
		TrendingQuestions: chatbot.TrendingQuestions(),
	}

	if err := s.renderTemplate(w, r, "page.qa", data); err != nil {
		s.logger.WithError(err).Error("failed to render qa page")
		s.internalServerError(w)
		return
	}
}

// handleQAMessage records the question, generates the canned answer, and
// records that too. Both turns land in the transcript before the redirect.
func (s *Service) handleQAMessage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sess, err := s.sessionFromContext(ctx)
	if err != nil {
		s.logger.WithError(err).Error("session not found in context")
		s.internalServerError(w)
		return
	}

	question := strings.TrimSpace(r.FormValue("message"))
	if question == "" {
		http.Redirect(w, r, "/qa", http.StatusSeeOther)
		return
	}

	chat := s.backendFor(sess).Chat

	err = chat.CreateMessage(ctx, &types.ChatMessage{
		ID:      utils.NanoID(),
		OwnerID: sess.OwnerID,
		Kind:    types.ChatMessageUser,
		Message: question,
	})
	if err != nil {
		s.logger.WithError(err).Error("failed to save chat question")
		s.internalServerError(w)
		return
	}

	err = chat.CreateMessage(ctx, &types.ChatMessage{
		ID:      utils.NanoID(),
		OwnerID: sess.OwnerID,
		Kind:    types.ChatMessageBot,
		Message: chatbot.Respond(question),
	})
	if err != nil {
		s.logger.WithError(err).Error("failed to save chat answer")
		s.internalServerError(w)
		return
	}

	http.Redirect(w, r, "/qa", http.StatusSeeOther)
}
