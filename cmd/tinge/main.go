// Command tinge serves the website/image theme extraction engine over HTTP.
// The engine itself persists nothing and exposes no listener; this binary is
// the request-handling collaborator that validates transport concerns,
// throttles, caches and audits around it.
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
	"golang.org/x/crypto/bcrypt"

	"github.com/hazyhaar/tinge/audit"
	"github.com/hazyhaar/tinge/extractor"
	"github.com/hazyhaar/tinge/imagetheme"
	"github.com/hazyhaar/tinge/shield"
	"github.com/hazyhaar/tinge/sitetheme"
)

func main() {
	// .env is optional; real environments set variables directly.
	_ = godotenv.Load()

	cfg, err := LoadConfig(env("CONFIG", ""))
	if err != nil {
		slog.Error("config", "error", err)
		os.Exit(1)
	}
	if p := env("PORT", ""); p != "" {
		cfg.Port = p
	}
	if p := env("AUDIT_DB", ""); p != "" {
		cfg.AuditDB = p
	}
	if lvl := env("LOG_LEVEL", ""); lvl != "" {
		cfg.Logging.Level = lvl
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(cfg.Logging.Level),
	}))
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	auditDB, err := audit.Open(cfg.AuditDB)
	if err != nil {
		slog.Error("audit db", "error", err)
		os.Exit(1)
	}
	defer auditDB.Close()

	auditor := audit.NewLogger(auditDB, 256)
	defer auditor.Close()

	svc := extractor.New(extractor.Config{
		Site: sitetheme.Config{
			NavTimeout:       cfg.Engine.NavTimeout,
			ViewportWidth:    cfg.Engine.ViewportWidth,
			ViewportHeight:   cfg.Engine.ViewportHeight,
			SaturationCutoff: cfg.Engine.SaturationCutoff,
		},
		Image: imagetheme.Config{
			MaxBytes:         cfg.Engine.MaxImageBytes,
			SaturationCutoff: cfg.Engine.SaturationCutoff,
		},
		Logger: logger,
	})

	h, err := newHandler(svc, cfg.Limits.CacheSize, auditor, cfg.Limits.RequestTimeout, logger)
	if err != nil {
		slog.Error("handler", "error", err)
		os.Exit(1)
	}

	limiter := shield.NewRateLimiter(cfg.Limits.RateMax, cfg.Limits.RateWindow)
	limiter.StartGC(ctx.Done(), 5*time.Minute)

	r := chi.NewRouter()
	r.Use(shield.SecurityHeaders(shield.DefaultHeaders()))
	r.Use(shield.MaxBody(cfg.Limits.MaxBodyBytes))
	r.Get("/healthz", h.healthz)
	r.Group(func(r chi.Router) {
		r.Use(limiter.Middleware)
		if hash := env("AUTH_PASSWORD_HASH", ""); hash != "" {
			r.Use(basicAuth(hash))
		}
		r.Post("/api/extract", h.extract)
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Limits.RequestTimeout + 10*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown", "error", err)
	}
	slog.Info("server stopped")
}

// basicAuth guards the extraction endpoint with a single bcrypt-hashed
// password when AUTH_PASSWORD_HASH is set.
func basicAuth(hash string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, password, ok := r.BasicAuth()
			if !ok || bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
				w.Header().Set("WWW-Authenticate", `Basic realm="tinge"`)
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func logLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
