// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Command linkstash runs the bookmark API server. It connects to PostgreSQL
// and Valkey, applies migrations, wires the service layer with its
// collaborators (link preview, AI summarizer, SMTP mailer) and serves the
// HTTP API until interrupted.
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

	"linkstash/internal/ai"
	"linkstash/internal/cache"
	"linkstash/internal/config"
	"linkstash/internal/database"
	"linkstash/internal/handlers"
	"linkstash/internal/mailer"
	"linkstash/internal/preview"
	"linkstash/internal/router"
	"linkstash/internal/service"
	"linkstash/internal/store"
	"linkstash/internal/token"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logLevel := slog.LevelInfo
	if cfg.IsDev() {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))

	db, err := database.Connect(cfg.DSN())
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		return err
	}
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			return err
		}
	}

	valkey, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		return err
	}
	defer valkey.Close()

	tokens := token.NewStore(valkey)
	results := cache.NewResults(valkey, cache.DefaultResultTTL)

	var previews service.PreviewFetcher
	if cfg.PreviewURL != "" {
		previews = preview.NewClient(cfg.PreviewURL)
	}

	var gen service.Generator
	if cfg.AIProvider != "" {
		registry := ai.NewRegistry(cfg.AIProvider, map[string]ai.ProviderConfig{
			cfg.AIProvider: {APIKey: cfg.AIAPIKey, Model: cfg.AIModel},
		})
		if registry.HasActive() {
			gen = registry
			slog.Info("ai provider active", "provider", registry.ActiveName())
		} else {
			slog.Warn("ai provider configured but missing api key", "provider", cfg.AIProvider)
		}
	}

	var mail service.Mailer
	if m := mailer.New(mailer.Config{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
	}); m.IsConfigured() {
		mail = m
	}

	st := store.New(db)
	svc := service.New(st, previews, gen, mail, results)

	handler := router.New(router.Deps{
		Auth:       handlers.NewAuth(st, tokens),
		Contents:   handlers.NewContents(svc),
		Categories: handlers.NewCategories(svc),
		Tokens:     tokens,
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", cfg.Addr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		slog.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return err
	}

	slog.Info("server stopped")
	return nil
}
