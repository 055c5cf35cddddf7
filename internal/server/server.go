// Package server is the composition root: it opens storage, builds the
// services and handlers, and mounts them on a chi router.
//
// Routes:
//
//	POST /api/register            create an account
//	POST /api/login               start a session (cookie + token)
//	POST /api/logout              clear the session cookie
//	GET  /api/metrics             anonymous calculator
//	GET  /api/catalog/foods       food catalog
//	GET  /api/catalog/exercises   exercise catalog
//
// Behind auth.RequireAuth:
//
//	GET  /api/me
//	GET  /api/profile, PUT /api/profile
//	GET  /api/plan
//	GET  /api/progress, POST /api/progress
//	POST /api/catalog/reload
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sakif/health-planner/internal/auth"
	"github.com/sakif/health-planner/internal/catalog"
	"github.com/sakif/health-planner/internal/config"
	"github.com/sakif/health-planner/internal/handler"
	"github.com/sakif/health-planner/internal/middleware"
	"github.com/sakif/health-planner/internal/recommend"
	sqliteRepo "github.com/sakif/health-planner/internal/repository/sqlite"
	"github.com/sakif/health-planner/internal/service"
)

// Server owns the router and the database connection.
type Server struct {
	router *chi.Mux
	config config.Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New opens the database at cfg.DBPath and wires every dependency. The
// caller must eventually call Close, or Start, which closes on return.
func New(cfg config.Config, logger *slog.Logger) (*Server, error) {
	tokens, err := auth.NewTokenService(cfg.JWTSecret)
	if err != nil {
		return nil, fmt.Errorf("creating token service: %w", err)
	}
	hasher, err := auth.NewHasher(cfg.PasswordScheme)
	if err != nil {
		return nil, fmt.Errorf("creating password hasher: %w", err)
	}

	if dir := filepath.Dir(cfg.DBPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}
	s.setupRoutes(tokens, hasher)
	return s, nil
}

func (s *Server) setupRoutes(tokens *auth.TokenService, hasher auth.Hasher) {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(middleware.Logger(s.logger))
	s.router.Use(chimiddleware.Recoverer)

	store := catalog.New(s.config.FoodsPath, s.config.ExercisesPath, s.logger)
	engine := recommend.NewSeeded(store, recommend.SeedOrClock(s.config.RandomSeed))

	accounts := service.NewAccountService(s.db.Users(), s.db.Profiles(), hasher, s.logger)
	sessions := service.NewAuthService(accounts, tokens, s.logger)
	progress := service.NewProgressService(s.db.Progress(), s.logger)
	planner := service.NewPlannerService(accounts, engine)

	authHandler := handler.NewAuthHandler(accounts, sessions, tokens.TTL(), s.logger)
	profileHandler := handler.NewProfileHandler(accounts, s.logger)
	progressHandler := handler.NewProgressHandler(progress, s.logger)
	planHandler := handler.NewPlanHandler(planner, s.logger)
	catalogHandler := handler.NewCatalogHandler(store, s.logger)

	s.router.Route("/api", func(r chi.Router) {
		r.Post("/register", authHandler.HandleRegister)
		r.Post("/login", authHandler.HandleLogin)
		r.Post("/logout", authHandler.HandleLogout)
		r.Get("/metrics", planHandler.HandleMetrics)
		r.Get("/catalog/foods", catalogHandler.HandleFoods)
		r.Get("/catalog/exercises", catalogHandler.HandleExercises)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(tokens))
			r.Get("/me", authHandler.HandleMe)
			r.Get("/profile", profileHandler.HandleGet)
			r.Put("/profile", profileHandler.HandlePut)
			r.Get("/plan", planHandler.HandlePlan)
			r.Get("/progress", progressHandler.HandleList)
			r.Post("/progress", progressHandler.HandleAppend)
			r.Post("/catalog/reload", catalogHandler.HandleReload)
		})
	})
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Close releases the database.
func (s *Server) Close() error {
	return s.db.Close()
}

// Start serves until SIGINT or SIGTERM, then drains in-flight requests for
// up to 30 seconds and closes the database.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         s.config.Addr(),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("database", s.config.DBPath),
			slog.String("password_scheme", s.config.PasswordScheme),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}
	return nil
}
