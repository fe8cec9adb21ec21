// Copyright (c) 2026 Fieldpress. All rights reserved.
// Author: m.billard.dev@gmail.com

// Command api is the entry point for the Fieldpress HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Open the article and book stores (plain directories).
//  4. Build the HAWK verifier from the operator credential.
//  5. Register Prometheus instruments.
//  6. Wire HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mbillard/fieldpress/internal/admin"
	"github.com/mbillard/fieldpress/internal/api"
	"github.com/mbillard/fieldpress/internal/core/article"
	"github.com/mbillard/fieldpress/internal/core/book"
	"github.com/mbillard/fieldpress/internal/platform/config"
	"github.com/mbillard/fieldpress/internal/platform/constants"
	"github.com/mbillard/fieldpress/internal/platform/hawk"
	"github.com/mbillard/fieldpress/internal/platform/metrics"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", "fieldpress"))
	slog.SetDefault(log)

	log.Info("[Fieldpress] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", "fieldpress"))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("article_dir", cfg.ArticleDir),
		slog.String("book_dir", cfg.BookDir),
	)

	if cfg.UsesDefaultCredentials() {
		if cfg.IsProduction() {
			log.Error("default HAWK credentials in production; set HAWK_KEY")
			os.Exit(1)
		}
		log.Warn("running with default HAWK credentials; uploads are not secure")
	}

	// Root context for the rate-limiter cleanup goroutine; cancelled on exit.
	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	// ── 3. Stores ─────────────────────────────────────────────────────────
	articleRepository, err := article.NewFSRepository(cfg.ArticleDir)
	must(log, err, "open article store")

	bookRepository, err := book.NewFSRepository(cfg.BookDir)
	must(log, err, "open book store")

	// ── 4. HAWK Verifier ──────────────────────────────────────────────────
	credentialStore := hawk.NewStaticStore(cfg.HawkID, cfg.HawkKey)
	verifier := hawk.NewVerifier(credentialStore, constants.HawkClockSkew)

	// ── 5. Metrics ────────────────────────────────────────────────────────
	instruments := metrics.New(prometheus.DefaultRegisterer)

	// ── 6. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckArticleStore: func() error {
			_, statErr := os.Stat(articleRepository.Dir())
			return statErr
		},
		CheckBookStore: func() error {
			_, statErr := os.Stat(bookRepository.Dir())
			return statErr
		},
	}, log)

	// ── 7. Domain Wiring ──────────────────────────────────────────────────
	articleService := article.NewService(articleRepository, instruments, log)
	articleHandler := article.NewHandler(articleService)

	bookService := book.NewService(bookRepository, log)
	bookHandler := book.NewHandler(bookService)

	adminService := admin.NewService(articleRepository, instruments, log)
	adminHandler := admin.NewHandler(adminService)

	// ── 8. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Article:   articleHandler,
		Book:      bookHandler,
		Admin:     adminHandler,
	}

	server := api.NewServer(rootCtx, cfg, log, verifier, instruments, handlers)

	// ── 9. Graceful Shutdown ──────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
