package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	sqliteadapter "github.com/ewallace/notekeep/internal/adapter/driven/sqlite"
	httphandler "github.com/ewallace/notekeep/internal/adapter/driving/http"
	"github.com/ewallace/notekeep/internal/application"
	"github.com/ewallace/notekeep/internal/config"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load configuration.
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	slog.Info("config loaded",
		"listen_addr", cfg.ListenAddr,
		"db_path", cfg.DBPath,
		"jwt_algorithm", cfg.JWTAlgorithm,
		"token_ttl", cfg.TokenTTL,
	)
	if cfg.UsesDefaultSecret() {
		slog.Warn("NOTEKEEP_JWT_SECRET is not set; running with the insecure default signing secret")
	}

	// 2. Setup signal-based context (SIGINT, SIGTERM).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Open database (dual reader/writer with WAL mode).
	db, err := sqliteadapter.NewDB(cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()
	slog.Info("database opened", "path", cfg.DBPath)

	// 4. Run migrations on the writer connection. A failed migration is fatal.
	if err := sqliteadapter.RunMigrations(db.Writer); err != nil {
		return err
	}
	slog.Info("migrations complete")

	// 5. Wire adapters and services.
	userStore := sqliteadapter.NewUserRepo(db)
	noteStore := sqliteadapter.NewNoteRepo(db)

	authSvc, err := application.NewAuthService(userStore, cfg.JWTSecret, cfg.JWTAlgorithm, cfg.TokenTTL, slog.Default())
	if err != nil {
		return err
	}
	noteSvc := application.NewNoteService(noteStore)

	// 6. Create the HTTP handler and route table.
	handler := httphandler.NewHandler(authSvc, noteSvc, slog.Default())
	mux := httphandler.NewServeMux(handler, cfg.AllowedOrigins, slog.Default())

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.Info("http server starting", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server error", "error", err)
		}
	}()

	// 7. Wait for shutdown signal.
	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("http server shutdown error", "error", err)
	}

	slog.Info("shutdown complete")
	return nil
}
