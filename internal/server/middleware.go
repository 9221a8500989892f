package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"bienvenue/internal"
	"bienvenue/internal/seed"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/lestrrat-go/jwx/v3/jwt"
	"github.com/sirupsen/logrus"
)

// Context key types to avoid collisions
type contextKey string

const contextKeySession contextKey = "session"

var errNoSession = errors.New("no session in context")

// Session identifies who owns the request's data. Guests get a random
// device-scoped owner id backed by redis; signed-in users carry their
// Cognito subject and are backed by postgres.
type Session struct {
	OwnerID       string
	Email         string
	Authenticated bool
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (s *Service) LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(rw, r)

		s.logger.WithFields(logrus.Fields{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      rw.statusCode,
			"duration_ms": time.Since(started).Milliseconds(),
		}).Info("http request")
	})
}

// ResolveSession attaches a Session to every request. A valid access token
// wins; otherwise the guest cookie is used, minting a fresh guest identity
// (with starter documents) when none exists yet.
func (s *Service) ResolveSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if sess, ok := s.sessionFromToken(r); ok {
			next.ServeHTTP(w, r.WithContext(withSession(r.Context(), sess)))
			return
		}

		sess, err := s.guestSession(w, r)
		if err != nil {
			s.logger.WithError(err).Error("failed to resolve guest session")
			s.internalServerError(w)
			return
		}

		next.ServeHTTP(w, r.WithContext(withSession(r.Context(), sess)))
	})
}

func (s *Service) sessionFromToken(r *http.Request) (*Session, bool) {
	cookie, err := r.Cookie(internal.COOKIE_ACCESS_TOKEN_NAME)
	if err != nil {
		return nil, false
	}

	var accessToken string
	err = s.cookie.Decode(internal.COOKIE_ACCESS_TOKEN_NAME, cookie.Value, &accessToken)
	if err != nil {
		s.logger.WithError(err).Debug("failed to decrypt access token")
		return nil, false
	}

	set, err := s.jwksCache.Lookup(r.Context(), s.jwksURL)
	if err != nil {
		s.logger.WithError(err).Error("failed to fetch JWKS")
		return nil, false
	}

	token, err := jwt.Parse(
		[]byte(accessToken),
		jwt.WithKeySet(set),
		jwt.WithValidate(true),
	)
	if err != nil {
		s.logger.WithError(err).Debug("failed to parse JWT")
		return nil, false
	}

	userID, ok := token.Subject()
	if !ok || userID == "" {
		s.logger.Error("no user ID in JWT subject claim")
		return nil, false
	}

	var email string
	if err := token.Get("email", &email); err != nil {
		s.logger.WithError(err).Warn("no email claim in JWT")
	}

	return &Session{OwnerID: userID, Email: email, Authenticated: true}, true
}

func (s *Service) guestSession(w http.ResponseWriter, r *http.Request) (*Session, error) {
	cookie, err := r.Cookie(internal.COOKIE_GUEST_NAME)
	if err == nil {
		var guestID string
		if decodeErr := s.cookie.Decode(internal.COOKIE_GUEST_NAME, cookie.Value, &guestID); decodeErr == nil && guestID != "" {
			return &Session{OwnerID: guestID, Authenticated: false}, nil
		}
	}

	guestID, err := gonanoid.New(21)
	if err != nil {
		return nil, err
	}

	encoded, err := s.cookie.Encode(internal.COOKIE_GUEST_NAME, guestID)
	if err != nil {
		return nil, err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     internal.COOKIE_GUEST_NAME,
		Value:    encoded,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
		MaxAge:   int(time.Duration(s.config.GuestSessionTTLHours) * time.Hour / time.Second),
	})

	// New guests start with a few common documents already tracked so the
	// documents page is not empty on first visit. Created back to front
	// because the store prepends.
	starters := seed.StarterDocuments(guestID, time.Now())
	for i := len(starters) - 1; i >= 0; i-- {
		if err := s.guestStore.CreateDocument(r.Context(), starters[i]); err != nil {
			return nil, err
		}
	}

	s.logger.WithField("guest_id", guestID).Debug("minted guest session")

	return &Session{OwnerID: guestID, Authenticated: false}, nil
}

// RequireAuth rejects guest sessions, bouncing them to login with a
// post-login redirect back to the requested page.
func (s *Service) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := s.sessionFromContext(r.Context())
		if err != nil || !sess.Authenticated {
			s.setRedirectCookie(w, r.URL.Path, time.Minute*5)
			http.Redirect(w, r, "/login", http.StatusTemporaryRedirect)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Service) StripTrailingSlash(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path

		// Only strip if path is not root and has trailing slash
		if path != "/" && strings.HasSuffix(path, "/") {
			newPath := strings.TrimSuffix(path, "/")
			newURL := *r.URL
			newURL.Path = newPath

			// Preserve query string
			http.Redirect(w, r, newURL.String(), http.StatusMovedPermanently)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func withSession(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, contextKeySession, sess)
}

func (s *Service) sessionFromContext(ctx context.Context) (*Session, error) {
	sess, ok := ctx.Value(contextKeySession).(*Session)
	if !ok || sess == nil {
		return nil, errNoSession
	}
	return sess, nil
}
