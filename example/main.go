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

	"github.com/pandamasta/menuguide/backend"
	"github.com/pandamasta/menuguide/db"
	"github.com/pandamasta/menuguide/handlers"
	"github.com/pandamasta/menuguide/internal/i18n"
	"github.com/pandamasta/menuguide/localize"
	"github.com/pandamasta/menuguide/menuguide"
	"github.com/pandamasta/menuguide/menuguide/middleware"
	"github.com/pandamasta/menuguide/models"
)

// multipart framing on top of the photo itself
const uploadOverhead = 1 << 20

func main() {
	// Load config (.env, then environment)
	cfg, err := menuguide.LoadDefaultConfig()
	if err != nil {
		slog.Error("Invalid configuration", "err", err)
		os.Exit(1)
	}

	// Set up slog with text handler
	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
		db.EnableDebugLogs()
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})))
	slog.Debug("Loaded config", "config", cfg)

	// 1 Init DB and bootstrap admin
	conn, err := db.Open(cfg.DatabasePath)
	if err != nil {
		slog.Error("Database unavailable", "err", err)
		os.Exit(1)
	}
	defer conn.Close()
	if cfg.Admin.Email != "" && cfg.Admin.Password != "" {
		if err := models.EnsureAdmin(context.Background(), conn, cfg.Admin.Email, cfg.Admin.Password); err != nil {
			slog.Error("Admin bootstrap failed", "err", err)
			os.Exit(1)
		}
	}

	// 2 Label catalogs
	catalog, err := i18n.NewEmbedded(cfg.DefaultLanguage().String())
	if err != nil {
		slog.Error("Failed to load catalogs", "err", err)
		os.Exit(1)
	}
	if cfg.I18n.LocalesPath != "" {
		if err := catalog.LoadLocales(cfg.I18n.LocalesPath); err != nil {
			slog.Error("Failed to load catalogs", "path", cfg.I18n.LocalesPath, "err", err)
			os.Exit(1)
		}
	}
	for _, l := range localize.Supported() {
		if !catalog.Has(l.String()) {
			slog.Warn("[LANG] No catalog, labels fall back", "lang", l, "fallback", cfg.DefaultLanguage())
		}
	}
	slog.Info("[LANG] Catalogs loaded", "languages", catalog.Languages())
	if cfg.Debug {
		catalog.EnableDebug()
	}

	// 3 Setup Routes
	api := backend.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout, nil)
	mux := handlers.Routes(handlers.App{
		Config:  cfg,
		DB:      conn,
		I18n:    catalog,
		API:     api,
		Limiter: middleware.NewRateLimiter(cfg.RateLimit.Limit, cfg.RateLimit.Window),
	})

	// 4 Wrap with Middleware: Lang + Session + CSRF + body limit + Logger
	var handler http.Handler = mux
	handler = middleware.LangMiddleware(cfg, conn, handler)
	handler = middleware.SessionMiddleware(cfg, conn, handler)
	handler = middleware.CSRFMiddleware(cfg, handler)
	handler = middleware.MaxBody(cfg.Upload.MaxBytes+uploadOverhead, handler)
	handler = middleware.Logger(handler)

	// 5 Start Server
	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		slog.Info("Starting HTTP server", "addr", cfg.Server.Addr, "backend", cfg.Backend.BaseURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server exited with error", "error", err)
			os.Exit(1)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Shutdown failed", "error", err)
	}
	slog.Info("Server stopped")
}
