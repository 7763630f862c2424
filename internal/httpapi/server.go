package httpapi

import (
	"context"
	"fmt"
	"html/template"
	"net/http"

	"deskbook/internal/auth"
	"deskbook/internal/config"
	"deskbook/internal/logging"
	"deskbook/internal/services"
	"deskbook/internal/store"

	"golang.org/x/crypto/bcrypt"
)

// Deps are the collaborators a Server is built from. Registry and Logger
// default to an in-memory registry and a discarding logger.
type Deps struct {
	Store      store.Store
	Registry   auth.Registry
	Logger     logging.Logger
	BcryptCost int
}

type Server struct {
	cfg      config.Config
	log      logging.Logger
	creds    *auth.Credentials
	sessions *auth.Manager
	users    *services.Users
	entries  *services.Entries
	limiter  *loginLimiter
	pages    map[string]*template.Template
	banner   template.HTML
	mux      *http.ServeMux
}

func NewServer(cfg config.Config, deps Deps) (*Server, error) {
	if deps.Store == nil {
		return nil, fmt.Errorf("httpapi: store is required")
	}
	if deps.Registry == nil {
		deps.Registry = auth.NewMemoryRegistry()
	}
	if deps.Logger == nil {
		deps.Logger = logging.Nop()
	}
	if deps.BcryptCost == 0 {
		deps.BcryptCost = bcrypt.DefaultCost
	}

	secret := auth.DecodeSecret(cfg.SessionSecret)
	if len(secret) == 0 {
		// Sessions will not survive a restart.
		var err error
		if secret, err = auth.NewRandomSecret(32); err != nil {
			return nil, fmt.Errorf("generate session secret: %w", err)
		}
		deps.Logger.Warn(context.Background(), "no session secret configured, using a random one")
	}

	pages, err := parsePages()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	creds := auth.NewCredentials(deps.Store, deps.BcryptCost)
	s := &Server{
		cfg:      cfg,
		log:      deps.Logger,
		creds:    creds,
		sessions: auth.NewManager(creds, deps.Registry, secret, cfg.SessionTTL()),
		users:    services.NewUsers(creds),
		entries:  services.NewEntries(deps.Store),
		limiter:  newLoginLimiter(cfg.LoginAttemptsPerMinute, cfg.LoginBurst),
		pages:    pages,
		banner:   renderMarkdown(cfg.Banner),
		mux:      http.NewServeMux(),
	}
	s.registerRoutes()
	return s, nil
}

// Seed creates the configured administrator unless that username exists.
func (s *Server) Seed(ctx context.Context) error {
	created, err := s.creds.EnsureAdmin(ctx, s.cfg.AdminUsername, s.cfg.AdminPassword)
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	if created {
		s.log.Warn(ctx, "default administrator created, change its password", "username", s.cfg.AdminUsername)
	}
	return nil
}

func (s *Server) Handler() http.Handler {
	var h http.Handler = s.mux
	h = s.sessionMiddleware(h)
	h = s.recoverMiddleware(h)
	h = s.loggingMiddleware(h)
	h = requestIDMiddleware(h)
	return h
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /{$}", s.handleIndex)
	s.registerUI()

	s.mux.HandleFunc("GET /entrar", s.handleLoginPage)
	s.mux.HandleFunc("POST /entrar", s.handleLogin)
	s.mux.HandleFunc("GET /sair", s.requireAuth(s.handleLogout))

	s.mux.HandleFunc("GET /admin", s.requireAdmin(s.handleAdminHome))
	s.mux.HandleFunc("GET /admin/usuarios", s.requireAdmin(s.handleUsersList))
	s.mux.HandleFunc("POST /admin/usuarios/adicionar", s.requireAdmin(s.handleUserAdd))
	// Role checks happen in the service so non-admins get a JSON 403.
	s.mux.HandleFunc("POST /admin/usuarios/{id}/excluir", s.requireAuth(s.handleUserDelete))

	s.mux.HandleFunc("GET /usuario", s.requireAuth(s.handleUserHome))

	s.mux.HandleFunc("GET /anydesk", s.requireAuth(s.handleEntriesList))
	s.mux.HandleFunc("GET /anydesk/adicionar", s.requireAuth(s.handleEntryNewForm))
	s.mux.HandleFunc("POST /anydesk/adicionar", s.requireAuth(s.handleEntryAdd))
	s.mux.HandleFunc("GET /anydesk/{id}/editar", s.requireAuth(s.handleEntryEditForm))
	s.mux.HandleFunc("POST /anydesk/{id}/editar", s.requireAuth(s.handleEntryUpdate))
	s.mux.HandleFunc("POST /anydesk/{id}/excluir", s.requireAuth(s.handleEntryDelete))
}
