// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router wires the HTTP routes to their handlers and middleware.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"linkstash/internal/handlers"
	"linkstash/internal/middleware"
	"linkstash/internal/token"
)

// Deps holds everything the router needs to build the handler tree.
type Deps struct {
	Auth       *handlers.Auth
	Contents   *handlers.Contents
	Categories *handlers.Categories
	Tokens     *token.Store
}

// New builds the chi router with the full middleware chain and all routes.
func New(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.SecureHeaders)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Login is rate-limited to slow down credential guessing.
	loginLimiter := middleware.NewRateLimiter(10, time.Minute)
	r.With(loginLimiter.Middleware).Post("/auth/login", deps.Auth.Login)
	r.Post("/auth/logout", deps.Auth.Logout)

	// Everything below requires a valid bearer token.
	r.Group(func(r chi.Router) {
		r.Use(middleware.LoadIdentity(deps.Tokens))
		r.Use(middleware.RequireUser)

		r.Route("/contents", func(r chi.Router) {
			r.Get("/", deps.Contents.List)
			r.Post("/", deps.Contents.Add)
			r.Patch("/", deps.Contents.Update)
			r.Post("/multiple", deps.Contents.AddMultiple)
			r.Get("/favorite", deps.Contents.ListFavorites)
			r.Get("/reminder-count", deps.Contents.ReminderCount)
			r.Post("/reminders/send", deps.Contents.SendReminders)
			r.Patch("/{id}/favorite", deps.Contents.ToggleFavorite)
			r.Get("/{id}/summarize", deps.Contents.Summarize)
			r.Delete("/{id}", deps.Contents.Delete)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", deps.Categories.List)
			r.Post("/", deps.Categories.Add)
			r.Patch("/", deps.Categories.Update)
			r.Get("/frequent", deps.Categories.Frequent)
			r.Get("/auto-categorize", deps.Categories.AutoCategorize)
			r.Delete("/{id}", deps.Categories.Delete)
		})
	})

	return r
}
