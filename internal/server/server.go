package server

import (
	"context"
	"embed"
	"encoding/base64"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"bienvenue/internal/documents"
	"bienvenue/internal/notify"
	"bienvenue/internal/progression"
	"bienvenue/internal/store"
	"bienvenue/internal/utils"
	"bienvenue/pkg/types"

	"github.com/alexedwards/flow"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/go-playground/form/v4"
	"github.com/gorilla/securecookie"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/sirupsen/logrus"
)

//go:embed templates static
var uiFS embed.FS
var decoder = form.NewDecoder()

type Service struct {
	logger    *logrus.Logger
	config    *types.Config
	templates *template.Template

	cognitoClient *cognitoidentityprovider.Client
	cookie        *securecookie.SecureCookie

	// userBackend serves signed-in sessions out of postgres; guestStore
	// serves everyone else out of redis.
	userBackend *store.Backend
	guestStore  *store.GuestStore
	directory   *store.DirectoryRepository
	forms       *store.FormsRepository
	objects     documents.ObjectStorage
	locks       *utils.KeyMutex

	jwksCache *jwk.Cache
	jwksURL   string

	server *http.Server
}

func New(
	config *types.Config,
	logger *logrus.Logger,
	cognitoClient *cognitoidentityprovider.Client,
	objects documents.ObjectStorage,
	userBackend *store.Backend,
	guestStore *store.GuestStore,
	directory *store.DirectoryRepository,
	forms *store.FormsRepository,
	jwkCache *jwk.Cache,
	jwksURL string,
) (*Service, error) {
	mux := flow.New()

	hashKey, _ := base64.StdEncoding.DecodeString(config.CookieHashKey)
	blockKey, _ := base64.StdEncoding.DecodeString(config.CookieBlockKey)

	s := &Service{
		logger:        logger,
		config:        config,
		cognitoClient: cognitoClient,
		cookie:        securecookie.New(hashKey, blockKey),

		userBackend: userBackend,
		guestStore:  guestStore,
		directory:   directory,
		forms:       forms,
		objects:     objects,
		locks:       utils.NewKeyMutex(),

		jwksCache: jwkCache,
		jwksURL:   jwksURL,
		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", config.ServerPort),
			Handler:           mux,
			ReadTimeout:       time.Duration(config.ReadTimeoutSec) * time.Second,
			ReadHeaderTimeout: time.Duration(config.ReadTimeoutSec) * time.Second,
			WriteTimeout:      time.Duration(config.WriteTimeoutSec) * time.Second,
			MaxHeaderBytes:    1 << 20,
		},
	}

	templates, err := loadTemplates()
	if err != nil {
		return nil, err
	}
	s.templates = templates

	s.buildRouter(mux)

	return s, nil
}

func (s *Service) Start() error {
	return s.server.ListenAndServe()
}

func (s *Service) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Service) buildRouter(r *flow.Mux) {
	r.Use(s.StripTrailingSlash)
	r.Use(s.LoggingMiddleware)

	r.HandleFunc("/healthz", s.handleHealth, http.MethodGet)

	r.HandleFunc("/register", s.handleGetRegister, http.MethodGet)
	r.HandleFunc("/register", s.handlePostRegister, http.MethodPost)
	r.HandleFunc("/register/confirm", s.handleGetRegisterConfirm, http.MethodGet)
	r.HandleFunc("/register/confirm", s.handlePostRegisterConfirm, http.MethodPost)
	r.HandleFunc("/login", s.handleGetLogin, http.MethodGet)
	r.HandleFunc("/login", s.handlePostLogin, http.MethodPost)
	r.HandleFunc("/logout", s.handlePostLogout, http.MethodPost)

	r.Group(func(r *flow.Mux) {
		r.Use(s.ResolveSession)

		r.HandleFunc("/", s.handleHome, http.MethodGet)
		r.HandleFunc("/hub", s.handleHub, http.MethodGet)
		r.HandleFunc("/news", s.handleNews, http.MethodGet)
		r.HandleFunc("/affiliation", s.handleAffiliation, http.MethodGet)
		r.HandleFunc("/translate", s.handleTranslate, http.MethodGet)

		r.HandleFunc("/contact", s.handleGetContact, http.MethodGet)
		r.HandleFunc("/forms/contact", s.handleContactSubmit, http.MethodPost)
		r.HandleFunc("/forms/newsletter", s.handleNewsletterSubmit, http.MethodPost)

		r.HandleFunc("/checklist", s.handleChecklist, http.MethodGet)
		r.HandleFunc("/checklist/:moduleID", s.handleModuleDetail, http.MethodGet)
		r.HandleFunc("/checklist/:moduleID/unlock", s.handleModuleUnlock, http.MethodPost)
		r.HandleFunc("/checklist/:moduleID/complete", s.handleModuleComplete, http.MethodPost)

		r.HandleFunc("/documents", s.handleDocuments, http.MethodGet)
		r.HandleFunc("/documents", s.handleDocumentAdd, http.MethodPost)
		r.HandleFunc("/documents/important", s.handleImportantDocumentAdd, http.MethodPost)
		r.HandleFunc("/documents/important/:id/delete", s.handleImportantDocumentDelete, http.MethodPost)
		r.HandleFunc("/documents/:id/delete", s.handleDocumentDelete, http.MethodPost)
		r.HandleFunc("/documents/:id/notifications", s.handleDocumentToggleNotification, http.MethodPost)
		r.HandleFunc("/documents/:id/dates", s.handleDocumentEditDates, http.MethodPost)
		r.HandleFunc("/documents/:id/file", s.handleDocumentAttachFile, http.MethodPost)
		r.HandleFunc("/documents/:id/file/delete", s.handleDocumentRemoveFile, http.MethodPost)

		r.HandleFunc("/qa", s.handleQA, http.MethodGet)
		r.HandleFunc("/qa", s.handleQAMessage, http.MethodPost)

		r.HandleFunc("/cities", s.handleCities, http.MethodGet)
		r.HandleFunc("/cities/:slug", s.handleCityDetail, http.MethodGet)
		r.HandleFunc("/schools/:slug", s.handleSchoolDetail, http.MethodGet)
	})

	r.Group(func(r *flow.Mux) {
		r.Use(s.ResolveSession)
		r.Use(s.RequireAuth)

		r.HandleFunc("/profile", s.handleGetProfile, http.MethodGet)
	})

	staticRoot, err := fs.Sub(uiFS, "static")
	if err != nil {
		s.logger.WithError(err).Fatal("failed to mount static assets")
	}
	r.Handle("/static/...", http.StripPrefix("/static/", http.FileServer(http.FS(staticRoot))), http.MethodGet)
}

// backendFor picks the session's store backend: postgres for signed-in
// users, redis for guests.
func (s *Service) backendFor(sess *Session) *store.Backend {
	if sess.Authenticated {
		return s.userBackend
	}
	return s.guestStore.Backend()
}

// notifierFor surfaces toasts in the flash cookie and mirrors them to the
// server log.
func (s *Service) notifierFor(w http.ResponseWriter) notify.Notifier {
	return notify.Multi{
		s.flashNotifier(w),
		&notify.LogNotifier{Logger: s.logger},
	}
}

// engineFor builds a request-scoped progression engine whose toasts land in
// the flash cookie.
func (s *Service) engineFor(w http.ResponseWriter, sess *Session) *progression.Engine {
	engine := progression.NewEngine(s.backendFor(sess).Progress, s.notifierFor(w), s.locks)
	engine.RequireUnlock = s.config.ProgressionRequireUnlock
	return engine
}

func (s *Service) trackerFor(w http.ResponseWriter, sess *Session) *documents.Tracker {
	backend := s.backendFor(sess)
	return documents.NewTracker(backend.Documents, backend.ImportantDocuments, s.objects, s.notifierFor(w), s.locks)
}

func loadTemplates() (*template.Template, error) {
	funcMap := template.FuncMap{
		"lower": strings.ToLower,
		"percent": func(part, total int) int {
			if total == 0 {
				return 0
			}
			return part * 100 / total
		},
		"join": func(parts []string, sep string) string {
			return strings.Join(parts, sep)
		},
	}

	t := template.New("").Funcs(funcMap)
	err := fs.WalkDir(uiFS, "templates", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".html") {
			return nil
		}

		data, err := fs.ReadFile(uiFS, path)
		if err != nil {
			return fmt.Errorf("read template %s: %w", path, err)
		}

		if _, err := t.Parse(string(data)); err != nil {
			return fmt.Errorf("parse template %s: %w", path, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return t, nil
}
