package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/cvforge/cvforge-go/internal/config"
	"github.com/cvforge/cvforge-go/internal/handler"
	"github.com/cvforge/cvforge-go/internal/identity"
	"github.com/cvforge/cvforge-go/internal/middleware"
	"github.com/cvforge/cvforge-go/internal/repository"
	"github.com/cvforge/cvforge-go/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	db, err := repository.NewDB(cfg.DatabaseDSN)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	userRepo := repository.NewUserRepository(db)
	cvRepo := repository.NewCVRepository(db)

	verifier := identity.NewGoogleVerifier(cfg.GoogleClientID)

	authService := service.NewAuthService(userRepo, verifier, cfg.JWTSecret, config.JWTExpiry)
	authHandler := handler.NewAuthHandler(authService)

	cvService := service.NewCVService(cvRepo)
	cvHandler := handler.NewCVHandler(cvService)

	r := chi.NewRouter()
	r.Use(middleware.Logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Post("/register", authHandler.HandleRegister)
	r.Post("/login", authHandler.HandleLogin)
	r.Post("/federated-login", authHandler.HandleGoogleLogin)

	// Public sharing path, deliberately outside the auth group.
	r.Get("/cvs/public/{id}", cvHandler.HandlePublic)

	r.Group(func(r chi.Router) {
		r.Use(middleware.JWTAuth(cfg.JWTSecret, userRepo))

		r.Post("/cvs", cvHandler.HandleCreate)
		r.Get("/cvs", cvHandler.HandleList)
		r.Get("/cvs/{id}", cvHandler.HandleGet)
		r.Put("/cvs/{id}", cvHandler.HandleUpdate)
		r.Delete("/cvs/{id}", cvHandler.HandleDelete)
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
