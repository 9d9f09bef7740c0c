package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/p-n-ai/taleem/internal/api"
	"github.com/p-n-ai/taleem/internal/concept"
	"github.com/p-n-ai/taleem/internal/live"
	"github.com/p-n-ai/taleem/internal/platform/config"
	"github.com/p-n-ai/taleem/internal/platform/logging"
	"github.com/p-n-ai/taleem/internal/platform/storage"
	"github.com/p-n-ai/taleem/internal/preference"
)

const sweepInterval = time.Minute

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(logging.New(cfg.Log, os.Stdout))

	// Graceful shutdown on SIGTERM/SIGINT.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	store, err := storage.Open(ctx, cfg)
	if err != nil {
		slog.Error("failed to open storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	prefs := preference.NewRegistry(concept.Language(cfg.Session.DefaultLanguage), cfg.Session.IdleTimeoutDuration())
	go prefs.Run(ctx, sweepInterval)

	mux := newMux(deps{
		concepts:    store.Repository(cfg),
		prefs:       prefs,
		defaultLang: concept.Language(cfg.Session.DefaultLanguage),
		checks:      store.Checks(),
		origins:     cfg.Server.AllowedOrigins,
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      api.Logging(mux),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", srv.Addr, "store", cfg.Store.Driver)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}

type deps struct {
	concepts    api.Concepts
	prefs       *preference.Registry
	defaultLang concept.Language
	checks      []storage.Check
	origins     []string
}

// newMux creates the HTTP router with the API, the live channel and health checks.
func newMux(d deps) *http.ServeMux {
	h := api.New(d.concepts, d.prefs, d.defaultLang)

	mux := http.NewServeMux()
	h.Register(mux)
	mux.Handle("GET /ws", live.NewHandler(d.concepts, d.prefs, h.SessionID, d.origins...))
	mux.HandleFunc("GET /healthz", handleHealthz)
	mux.HandleFunc("GET /readyz", readyzHandler(d.checks))
	return mux
}

func handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func readyzHandler(checks []storage.Check) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		failed := make(map[string]string)
		for _, c := range checks {
			ctx, cancel := context.WithTimeout(r.Context(), storage.CheckTimeout)
			err := c.Check(ctx)
			cancel()
			if err != nil {
				slog.Warn("readiness check failed", "check", c.Name, "error", err)
				failed[c.Name] = err.Error()
			}
		}

		w.Header().Set("Content-Type", "application/json")
		if len(failed) > 0 {
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]any{"status": "unavailable", "failed": failed})
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ready"}`))
	}
}
