package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"

	"github.com/lotoboard/server/internal/auth"
	"github.com/lotoboard/server/internal/config"
	"github.com/lotoboard/server/internal/db"
	httphandler "github.com/lotoboard/server/internal/http"
	"github.com/lotoboard/server/internal/http/handlers"
	"github.com/lotoboard/server/internal/repo"
	"github.com/lotoboard/server/internal/tracker"
)

func main() {
	_ = godotenv.Load(".env")

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	ctx := context.Background()

	logger.Info("connecting to database", zap.String("dsn", db.RedactDSN(cfg.DatabaseURL)))
	database, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to open database", zap.Error(err))
	}
	defer database.Close()

	if err := runMigrations(database, logger); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	userRepo := repo.NewUserRepo(database)

	jwtService := auth.NewJWTService(cfg.JWTSecret, auth.SessionTTL)
	authService := auth.NewService(jwtService, userRepo, logger)

	if err := bootstrapAdmin(ctx, authService, cfg, logger); err != nil {
		logger.Fatal("failed to bootstrap admin account", zap.Error(err))
	}

	store, err := tracker.NewFileStore(cfg.DataDir)
	if err != nil {
		logger.Fatal("failed to open state store", zap.Error(err))
	}
	trackerService, err := tracker.NewService(store, logger)
	if err != nil {
		logger.Fatal("failed to load tracker state", zap.Error(err))
	}

	cookies := auth.NewCookieWriter(cfg.CookieSecure)
	authHandler := handlers.NewAuthHandler(authService, cookies, logger)
	adminHandler := handlers.NewAdminHandler(authService, logger)
	trackerHandler := handlers.NewTrackerHandler(trackerService)

	router := httphandler.NewRouter(authHandler, adminHandler, trackerHandler, jwtService, logger)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		logger.Info("server starting", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed to start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exited")
}

// bootstrapAdmin seeds the first admin account on an empty user table. When no
// ADMIN_PASSWORD is configured a random one is generated and logged once.
func bootstrapAdmin(ctx context.Context, authService *auth.Service, cfg *config.Config, logger *zap.Logger) error {
	password := cfg.AdminPassword
	generated := false
	if password == "" {
		password = uuid.NewString()
		generated = true
	}

	created, err := authService.EnsureAdmin(ctx, cfg.AdminUsername, password)
	if err != nil {
		return err
	}
	if created && generated {
		logger.Info("generated initial admin password; change it after first login",
			zap.String("username", cfg.AdminUsername),
			zap.String("password", password))
	}
	return nil
}

// runMigrations runs database migrations using goose
func runMigrations(database *sql.DB, logger *zap.Logger) error {
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	migrationDir := "internal/db/migrations"
	if info, err := os.Stat(migrationDir); err != nil || !info.IsDir() {
		return fmt.Errorf("migrations directory not found (run from the repository root)")
	}

	absDir, _ := filepath.Abs(migrationDir)
	logger.Info("running migrations", zap.String("dir", absDir))

	if err := goose.Up(database, migrationDir); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
