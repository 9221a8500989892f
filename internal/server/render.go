package server

import (
	"net/http"

	"bienvenue/pkg/types"
)

func (s *Service) renderTemplate(w http.ResponseWriter, r *http.Request, templateName string, data any) error {
	sess, err := s.sessionFromContext(r.Context())
	if err != nil {
		sess = &Session{}
	}

	if setter, ok := data.(types.NavbarDataSetter); ok {
		setter.SetNavbarData(types.NavbarData{
			IsAuthenticated: sess.Authenticated,
			IsGuest:         !sess.Authenticated,
			UserID:          sess.OwnerID,
			UserEmail:       sess.Email,
		})
	}

	if setter, ok := data.(types.ToastSetter); ok {
		setter.SetToasts(s.popFlashes(w, r))
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	return s.templates.ExecuteTemplate(w, templateName, data)
}
