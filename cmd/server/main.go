package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/erazemk/najdeno/internal/api"
	"github.com/erazemk/najdeno/internal/config"
	"github.com/erazemk/najdeno/internal/db"
	"github.com/erazemk/najdeno/internal/web"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cfg := config.Load()

	log.Info().
		Str("db", cfg.DBPath).
		Str("addr", cfg.Addr).
		Str("env", cfg.Env).
		Msg("Starting najdeno")

	// Probe the store once at startup. If it is unreachable every route
	// serves the degraded offline page instead of failing per-request.
	database, offline := openDatabase(cfg.DBPath)
	if database != nil {
		defer database.Close()
	}

	apiRouter := api.NewRouter(database, cfg, offline)
	webRouter, err := web.NewRouter(database, cfg, offline)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to set up web router")
	}

	// API routes take priority, web routes handle the rest.
	mux := http.NewServeMux()
	mux.Handle("/api/", apiRouter)
	mux.Handle("/", webRouter)

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      api.LoggingMiddleware(mux),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited gracefully")
}

// openDatabase opens the store, applies the schema, and probes availability.
// On any failure it reports offline mode instead of exiting, so the server
// can still answer with the offline page.
func openDatabase(path string) (*sql.DB, bool) {
	database, err := db.Open(path)
	if err != nil {
		log.Error().Err(err).Msg("Store unreachable, serving offline")
		return nil, true
	}

	if err := db.Ping(database); err != nil {
		log.Error().Err(err).Msg("Store unreachable, serving offline")
		database.Close()
		return nil, true
	}

	if err := db.EnsureSchema(database); err != nil {
		log.Error().Err(err).Msg("Schema setup failed, serving offline")
		database.Close()
		return nil, true
	}

	log.Info().Msg("Connected to store")
	return database, false
}
