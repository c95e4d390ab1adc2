package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"gitea.com/go-chi/session"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	log "github.com/sirupsen/logrus"

	"github.com/blogem/crm-web/authenticator"
	"github.com/blogem/crm-web/config"
	"github.com/blogem/crm-web/controllers"
	"github.com/blogem/crm-web/crmapi"
	"github.com/blogem/crm-web/database"
	crmmiddleware "github.com/blogem/crm-web/middleware"
	"github.com/blogem/crm-web/repositories"
	"github.com/blogem/crm-web/services"
)

func main() {
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp: true,
	})
	log.SetOutput(os.Stdout)

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("Failed to load configuration")
	}
	log.SetLevel(cfg.Server.Level())

	// Initialize database
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize database")
	}
	defer db.Close()

	api, err := crmapi.NewClient(cfg.CRMAPI.BaseURL,
		crmapi.WithTimeout(cfg.CRMAPI.Timeout),
		crmapi.WithAuthCookie(cfg.CRMAPI.AuthCookie),
	)
	if err != nil {
		log.WithError(err).Fatal("Failed to create CRM API client")
	}

	// Initialize repositories
	repos := repositories.NewRepositories(api, db)

	// Initialize services
	srvs := services.NewServices(repos, services.Options{
		AuditPageLimit: cfg.Timeline.AuditPageLimit,
		PollingEnabled: cfg.Timeline.PollingEnabled,
		PollInterval:   cfg.Timeline.PollInterval,
	})

	provider := newProvider(cfg.OIDC)

	// Initialize controllers
	ctrl := controllers.NewControllers(srvs, provider, cfg.OIDC.RoleClaim)

	r, err := setupRouter(cfg, ctrl, repos)
	if err != nil {
		log.WithError(err).Fatal("Failed to set up router")
	}

	log.WithFields(log.Fields{
		"port":     cfg.Server.Port,
		"crm_api":  cfg.CRMAPI.BaseURL,
		"database": cfg.Database.Path,
		"polling":  cfg.Timeline.PollingEnabled,
	}).Info("CRM web starting")

	if err := http.ListenAndServe(":"+cfg.Server.Port, r); err != nil {
		log.WithError(err).Fatal("Server stopped")
	}
}

// newProvider connects to the identity provider. Without OIDC settings the
// app still serves public pages and login answers 503.
func newProvider(cfg config.OIDC) authenticator.Provider {
	if cfg.Domain == "" {
		log.Warn("OIDC_DOMAIN not set, login is disabled")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	provider, err := authenticator.NewOpenIDProvider(ctx, authenticator.OpenIDConfig{
		Domain:       cfg.Domain,
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		CallbackURL:  cfg.CallbackURL,
	})
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize OpenID provider")
	}
	return provider
}

// setupRouter configures all routes
func setupRouter(cfg *config.Config, ctrl *controllers.Controllers, repos *repositories.Repositories) (*chi.Mux, error) {
	r := chi.NewRouter()

	// Middleware
	r.Use(crmmiddleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second)) // 60 second timeout for OAuth callbacks
	r.Use(middleware.Compress(5))

	sessionHandler, err := session.Sessioner(session.Options{
		Provider:    "memory",
		CookieName:  cfg.Session.CookieName,
		Secure:      cfg.Server.UseHTTPS,
		Gclifetime:  cfg.Session.Lifetime,
		Maxlifetime: cfg.Session.Lifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize session: %w", err)
	}
	r.Use(sessionHandler)

	// PUBLIC ROUTES (no authentication required)
	r.Group(func(r chi.Router) {
		r.Use(crmmiddleware.LoadUser)
		r.Use(crmmiddleware.RequestJournal(repos.RequestLog))

		r.Get("/", ctrl.Dashboard.Index)
		r.Get("/login", ctrl.Auth.Login)
		r.Get("/callback", ctrl.Auth.Callback)
		r.Get("/logout", ctrl.Auth.Logout)
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status": "healthy", "service": "crm-web"}`)
	})

	// PROTECTED ROUTES (authentication required)
	r.Group(func(r chi.Router) {
		r.Use(crmmiddleware.RequireAuth)
		r.Use(crmmiddleware.RequestJournal(repos.RequestLog))

		r.Get("/activity", ctrl.Activity.Index)

		r.Route("/entities", func(r chi.Router) {
			r.Get("/open", ctrl.Timeline.Open)
			r.Get("/{entityType}/{entityID}/timeline", ctrl.Timeline.Show)
			r.Post("/{entityType}/{entityID}/comments", ctrl.Timeline.AddComment)
		})

		r.Get("/api/entities/{entityType}/{entityID}/timeline", ctrl.Timeline.JSON)
	})

	return r, nil
}
