package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"scrib/pkg/auth"
	"scrib/pkg/config"
	"scrib/pkg/handlers"
	"scrib/pkg/repository"
	"scrib/pkg/services"
	"scrib/pkg/storage"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

// run serves until interrupted. Deferred cleanup runs before main exits.
func run() error {
	configPath := flag.String("config", config.GetConfigFilePath(), "path to the config file")
	memory := flag.Bool("memory", false, "keep data in memory only")
	flag.Parse()

	cfg, err := config.LoadFrom(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if *memory {
		cfg.Backend = config.BackendMemory
	}

	// Log configuration paths for user information
	log.Printf("Configuration loaded:")
	log.Printf("  Backend: %s", cfg.Backend)
	log.Printf("  Data directory: %s", cfg.DataDir)
	log.Printf("  Trash retention: %d days", cfg.TrashRetentionDays)
	log.Printf("  Config file: %s", cfg.Path())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gw, closeStore, err := storage.Open(ctx, cfg.Backend, cfg.DataDir, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer closeStore()

	repo := repository.New(gw, repository.WithRetention(cfg.TrashRetention()))
	authManager := auth.NewManager()

	api := handlers.NewAPIHandlers(
		services.NewNoteService(repo),
		services.NewReminderService(repo),
		gw,
		cfg,
	)
	authHandlers := handlers.NewAuthHandlers(services.NewAuthService(authManager))

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handlers.NewRouter(api, authHandlers, authManager),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go cleanupSessions(ctx, authManager)

	return serve(ctx, server)
}

// serve runs server until ctx is done, then shuts it down. A listen error
// is returned instead of exiting so the caller's cleanup still runs.
func serve(ctx context.Context, server *http.Server) error {
	serveErr := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}
	log.Println("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
	return nil
}

// cleanupSessions drops expired sessions every five minutes
func cleanupSessions(ctx context.Context, authManager *auth.Manager) {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if n := authManager.CleanupExpiredSessions(); n > 0 {
				log.Printf("Removed %d expired sessions, %d active", n, authManager.SessionCount())
			}
		case <-ctx.Done():
			return
		}
	}
}
