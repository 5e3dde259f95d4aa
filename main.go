package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"gitea.com/go-chi/session"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/blogem/boardhook/authenticator"
	"github.com/blogem/boardhook/config"
	"github.com/blogem/boardhook/controllers"
	"github.com/blogem/boardhook/database"
	"github.com/blogem/boardhook/kvstore"
	appmiddleware "github.com/blogem/boardhook/middleware"
	"github.com/blogem/boardhook/repositories"
	"github.com/blogem/boardhook/services"
	"github.com/blogem/boardhook/trello"
)

// webhookPaths both receive Trello deliveries; the short one is what older registrations point at
var webhookPaths = []string{"/webhooks/trello", "/api/webhooks/trello"}

func main() {
	cfg := config.Load()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Audit log database
	var db *sql.DB
	var err error
	if cfg.AuditDBPath != "" {
		db, err = database.InitializeDatabase(cfg.AuditDBPath)
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		defer db.Close()
	}

	// Keyed store for users, registrations, routing and event logs
	kv, err := openStore(ctx, cfg, db)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	if kv == nil {
		log.Printf("⚠️  STORE_URL not set, events will only be logged")
	} else {
		defer kv.Close()
	}

	// Initialize repositories
	repos := repositories.NewRepositories(kv, db)

	// Initialize services
	api := trello.NewClient(cfg.TrelloBaseURL, nil)
	issuer := authenticator.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	srvs := services.NewServices(repos, api, issuer, services.Options{
		MultiTenant:  cfg.MultiTenant(),
		TrelloAPIKey: cfg.TrelloAPIKey,
		TrelloToken:  cfg.TrelloToken,
		AppURL:       cfg.AppURL,
	})

	// Single sign-on is optional
	var provider authenticator.Provider
	if cfg.OIDCEnabled() && cfg.MultiTenant() {
		provider, err = authenticator.NewOpenIDProvider(ctx, authenticator.OpenIDConfig{
			Domain:       cfg.OIDCDomain,
			ClientID:     cfg.OIDCClientID,
			ClientSecret: cfg.OIDCClientSecret,
			CallbackURL:  cfg.OIDCCallbackURL,
		})
		if err != nil {
			log.Fatalf("Failed to initialize OpenID provider: %v", err)
		}
	}

	// Initialize controllers
	ctrl := controllers.NewControllers(srvs, provider, cfg.MaxUploadBytes)

	// Set up router
	r, err := setupRouter(cfg, ctrl, srvs, repos)
	if err != nil {
		log.Fatalf("Failed to setup router: %v", err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	fmt.Printf("🚀 Boardhook starting on port %s\n", cfg.Port)
	fmt.Printf("📂 Visit: http://localhost:%s\n", cfg.Port)
	fmt.Printf("🔐 Auth mode: %s\n", cfg.AuthMode)
	if cfg.StoreURL != "" {
		fmt.Printf("🗃️  Store: %s\n", kvstore.Redact(cfg.StoreURL))
	}
	if db != nil {
		fmt.Printf("📝 Audit log: %s\n", cfg.AuditDBPath)
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Printf("Shutting down")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown: %v", err)
	}
}

// openStore opens STORE_URL. A sqlite store on the audit database file reuses
// its handle: two pools on one file would fight over the write lock.
func openStore(ctx context.Context, cfg config.Config, db *sql.DB) (kvstore.Store, error) {
	if path, ok := kvstore.SQLitePath(cfg.StoreURL); ok && db != nil && samePath(path, cfg.AuditDBPath) {
		return kvstore.NewSQLiteStore(db), nil
	}
	return kvstore.Open(ctx, cfg.StoreURL)
}

func samePath(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return a == b
	}
	return absA == absB
}

// setupRouter configures all routes
func setupRouter(cfg config.Config, ctrl *controllers.Controllers, srvs *services.Services, repos *repositories.Repositories) (*chi.Mux, error) {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodHead, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))
	r.Use(appmiddleware.BodyLimit(cfg.MaxUploadBytes))

	// PUBLIC ROUTES (no authentication required)
	r.Get("/health", ctrl.Health.Show)
	for _, path := range webhookPaths {
		r.HandleFunc(path, ctrl.Webhooks.Receive)
	}
	r.Get("/api/auth/config", ctrl.Auth.Config)

	if cfg.MultiTenant() {
		r.Group(func(r chi.Router) {
			r.Use(appmiddleware.AuditLogger(repos.Audit))
			r.Post("/api/auth/register", ctrl.Auth.Register)
			r.Post("/api/auth/login", ctrl.Auth.Login)
		})

		// Session middleware only carries the single sign-on state
		sessionHandler, err := session.Sessioner(session.Options{
			Provider:       "memory",
			ProviderConfig: "",
			CookieName:     "boardhook_session",
			Secure:         cfg.UseHTTPS,
			Gclifetime:     3600,
			Maxlifetime:    600,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize session: %w", err)
		}
		r.Group(func(r chi.Router) {
			r.Use(sessionHandler)
			r.Get("/auth/oidc/login", ctrl.Auth.OIDCLogin)
			r.Get("/auth/oidc/callback", ctrl.Auth.OIDCCallback)
		})
	}

	// PROTECTED ROUTES (an account, or the shared account in single-tenant mode)
	r.Group(func(r chi.Router) {
		if cfg.MultiTenant() {
			r.Use(appmiddleware.RequireAuth(srvs.Auth))
		} else {
			r.Use(appmiddleware.SingleTenant(cfg.TrelloToken))
		}
		r.Use(appmiddleware.AuditLogger(repos.Audit))

		r.Get("/api/auth/me", ctrl.Auth.Me)
		if cfg.MultiTenant() {
			r.Post("/api/auth/connect-trello", ctrl.Auth.ConnectTrello)
			r.Post("/api/auth/avatar", ctrl.Auth.Avatar)
		}

		r.Get("/api/dashboard", ctrl.Dashboard.Index)

		r.Route("/api/boards", func(r chi.Router) {
			r.Get("/", ctrl.Boards.Index)
			r.Get("/{id}", ctrl.Boards.Show)
		})

		r.Route("/api/cards/{id}", func(r chi.Router) {
			r.Get("/", ctrl.Cards.Show)
			r.Put("/move", ctrl.Cards.Move)
			r.Post("/comments", ctrl.Cards.Comment)
			r.Post("/attachments", ctrl.Cards.Attach)
		})

		// flat routes: /api/webhooks/trello is the public receiver above
		r.Post("/api/webhooks/register", ctrl.Webhooks.Register)
		r.Get("/api/webhooks/list", ctrl.Webhooks.List)
		r.Get("/api/webhooks/events", ctrl.Webhooks.Events)
		r.Delete("/api/webhooks/{id}", ctrl.Webhooks.Unregister)
	})

	return r, nil
}
