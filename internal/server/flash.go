package server

import (
	"context"
	"net/http"

	"bienvenue/internal"
	"bienvenue/internal/notify"
	"bienvenue/pkg/types"
)

// flashWriter collects the toasts emitted while handling a request and
// stashes them in a cookie so they survive the post/redirect/get hop.
type flashWriter struct {
	s      *Service
	w      http.ResponseWriter
	toasts []notify.Toast
}

func (s *Service) flashNotifier(w http.ResponseWriter) notify.Notifier {
	return &flashWriter{s: s, w: w}
}

func (f *flashWriter) Notify(_ context.Context, toast notify.Toast) {
	f.toasts = append(f.toasts, toast)

	encoded, err := f.s.cookie.Encode(internal.COOKIE_FLASH_NAME, f.toasts)
	if err != nil {
		f.s.logger.WithError(err).Error("failed to encode flash toasts")
		return
	}

	http.SetCookie(f.w, &http.Cookie{
		Name:     internal.COOKIE_FLASH_NAME,
		Value:    encoded,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
		MaxAge:   60,
	})
}

// popFlashes reads and clears the flash cookie. Toasts render exactly once.
func (s *Service) popFlashes(w http.ResponseWriter, r *http.Request) []types.ToastData {
	cookie, err := r.Cookie(internal.COOKIE_FLASH_NAME)
	if err != nil {
		return nil
	}

	var toasts []notify.Toast
	if err := s.cookie.Decode(internal.COOKIE_FLASH_NAME, cookie.Value, &toasts); err != nil {
		s.logger.WithError(err).Debug("failed to decode flash toasts")
		toasts = nil
	}

	http.SetCookie(w, &http.Cookie{
		Name:     internal.COOKIE_FLASH_NAME,
		Value:    "",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
		MaxAge:   -1,
	})

	out := make([]types.ToastData, 0, len(toasts))
	for _, t := range toasts {
		out = append(out, types.ToastData{
			Title:       t.Title,
			Description: t.Description,
			Severity:    string(t.Severity),
		})
	}

	return out
}
