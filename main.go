package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to YAML config (optional)")
	flag.Parse()

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		slog.Error("load config", "err", err)
		os.Exit(1)
	}
	InitLogger(cfg.LogLevel)

	// 1) DB
	db, err := OpenDB(cfg.Database.Path)
	if err != nil {
		slog.Error("open db", "path", cfg.Database.Path, "err", err)
		os.Exit(1)
	}
	if err := AutoMigrate(db); err != nil {
		slog.Error("migrate", "err", err)
		os.Exit(1)
	}

	// 2) Seed (if empty)
	if isEmpty, _ := IsQuizTableEmpty(db); isEmpty && cfg.Database.SeedFile != "" {
		path := cfg.Database.SeedFile
		if _, err := os.Stat(path); err == nil {
			if err := SeedFromJSON(db, path); err != nil {
				slog.Error("seed", "path", path, "err", err)
				os.Exit(1)
			}
			slog.Info("seeded quizzes", "path", path)
		} else {
			slog.Info("no seed file; running with empty DB", "path", path)
		}
	}

	// 3) Shared state
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := NewApp(cfg, NewStore(db))
	if err := app.List.Load(ctx, app.Store); err != nil {
		slog.Warn("starting with empty quiz list", "err", err)
	}
	app.Settings.Load(ctx)

	go app.Sessions.RunExpiry(ctx, cfg.Server.SessionIdleTimeout, time.Minute)

	// 4) Server
	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           NewRouter(app),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		slog.Info("listening", "addr", server.Addr, "secure_cookies", cfg.Server.SecureCookies, "autosave", cfg.Autosave.Enabled)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown", "err", err)
	}
	app.Sessions.Shutdown()
}
