// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package service implements the bookmark domain operations. Every mutating
// operation is one unit of work: it verifies the owning user, resolves and
// mutates categories and contents through the transactional handle, and
// commits or rolls back as a group. Collaborators (link preview, summarizer,
// mailer) are consumed through narrow interfaces.
package service

import (
	"context"
	"time"

	"linkstash/internal/apperr"
	"linkstash/internal/cache"
	"linkstash/internal/models"
	"linkstash/internal/preview"
	"linkstash/internal/store"
)

// PreviewFetcher resolves link metadata (title, description, cover image).
type PreviewFetcher interface {
	Fetch(ctx context.Context, link string) (*preview.Metadata, error)
}

// Generator produces text from a prompt. Satisfied by the ai provider registry.
type Generator interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Mailer delivers reminder mail. Satisfied by the SMTP mailer.
type Mailer interface {
	Send(to []string, subject, body string) error
	IsConfigured() bool
}

// Service orchestrates all bookmark operations over the store.
// preview, gen, mailer and results may be nil; the dependent operations then
// degrade (fallback titles, summarize unavailable, mail skipped, no caching).
type Service struct {
	store   *store.Store
	preview PreviewFetcher
	gen     Generator
	mailer  Mailer
	results *cache.Results
}

// New creates the service with its collaborators.
func New(st *store.Store, pf PreviewFetcher, gen Generator, mailer Mailer, results *cache.Results) *Service {
	return &Service{store: st, preview: pf, gen: gen, mailer: mailer, results: results}
}

// AddContentRequest carries the fields accepted by AddContent.
type AddContentRequest struct {
	Link         string
	Title        *string
	Comment      *string
	Deadline     *time.Time
	Favorite     bool
	CategoryName *string
}

// UpdateContentRequest carries the merge-update fields for UpdateContent.
// Nil fields keep the stored value; CategoryName pointing at "" detaches
// the content from its category.
type UpdateContentRequest struct {
	ID           int64
	Link         *string
	Title        *string
	Description  *string
	Comment      *string
	Deadline     *time.Time
	Favorite     *bool
	CategoryName *string
}

// requireUser loads the owning user at the start of a unit of work.
func requireUser(ctx context.Context, tx *store.Tx, id int64) (*models.User, error) {
	u, err := tx.UserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperr.NotFound("user not found")
	}
	return u, nil
}

// invalidate busts the owner's cached read results after a committed mutation.
func (s *Service) invalidate(ctx context.Context, ownerID int64) {
	if s.results != nil {
		s.results.InvalidateOwner(ctx, ownerID)
	}
}
