// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"linkstash/internal/apperr"
	"linkstash/internal/models"
)

// reminderWindow is how far ahead the reminder mail looks for deadlines.
const reminderWindow = 24 * time.Hour

// frequentCategoryLimit caps GET /categories/frequent results.
const frequentCategoryLimit = 5

// ListContents returns the user's contents, optionally filtered by category
// id (0 filters to uncategorized). Read-only: runs outside a transaction.
func (s *Service) ListContents(ctx context.Context, ownerID int64, categoryID *int64) ([]models.Content, error) {
	return s.store.ListContents(ctx, ownerID, categoryID)
}

// ListFavorites returns the user's favorite contents.
func (s *Service) ListFavorites(ctx context.Context, ownerID int64) ([]models.Content, error) {
	return s.store.ListFavorites(ctx, ownerID)
}

// ListCategories returns the user's category tree with content counts.
func (s *Service) ListCategories(ctx context.Context, ownerID int64) ([]models.Category, error) {
	return s.store.CategoryTree(ctx, ownerID)
}

// ReminderCount counts contents with an upcoming deadline. The result is
// served from the Valkey cache when fresh.
func (s *Service) ReminderCount(ctx context.Context, ownerID int64) (int, error) {
	if s.results != nil {
		var cached int
		if ok, _ := s.results.Get(ctx, ownerID, "reminder-count", &cached); ok {
			return cached, nil
		}
	}

	count, err := s.store.ReminderCount(ctx, ownerID, time.Now())
	if err != nil {
		return 0, err
	}

	if s.results != nil {
		s.results.Set(ctx, ownerID, "reminder-count", count)
	}
	return count, nil
}

// FrequentCategories returns the user's most populated categories, cached.
func (s *Service) FrequentCategories(ctx context.Context, ownerID int64) ([]models.Category, error) {
	if s.results != nil {
		var cached []models.Category
		if ok, _ := s.results.Get(ctx, ownerID, "frequent-categories", &cached); ok {
			return cached, nil
		}
	}

	cats, err := s.store.FrequentCategories(ctx, ownerID, frequentCategoryLimit)
	if err != nil {
		return nil, err
	}

	if s.results != nil {
		s.results.Set(ctx, ownerID, "frequent-categories", cats)
	}
	return cats, nil
}

// Summarize produces a short summary of a saved content via the summarizer
// collaborator.
func (s *Service) Summarize(ctx context.Context, ownerID, contentID int64) (string, error) {
	c, err := s.store.ContentByID(ctx, ownerID, contentID)
	if err != nil {
		return "", err
	}
	if c == nil {
		return "", apperr.NotFound("content not found")
	}
	if s.gen == nil {
		return "", apperr.Internal("summarizer is not configured")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Title: %s\nLink: %s\n", c.Title, c.Link)
	if c.Description != nil {
		fmt.Fprintf(&b, "Description: %s\n", *c.Description)
	}
	if c.Comment != nil {
		fmt.Fprintf(&b, "User note: %s\n", *c.Comment)
	}

	summary, err := s.gen.Generate(ctx,
		"You summarize saved bookmarks. Reply with two or three plain sentences, no preamble.",
		b.String(),
	)
	if err != nil {
		return "", fmt.Errorf("summarize content: %w", err)
	}
	return strings.TrimSpace(summary), nil
}

// AutoCategorize suggests one of the user's existing category names for a
// link via the summarizer collaborator. Returns "" when the user has no
// categories yet.
func (s *Service) AutoCategorize(ctx context.Context, ownerID int64, link string) (string, error) {
	if link == "" {
		return "", apperr.BadRequest("link must not be empty")
	}
	if s.gen == nil {
		return "", apperr.Internal("summarizer is not configured")
	}

	cats, err := s.store.ListCategories(ctx, ownerID)
	if err != nil {
		return "", err
	}
	if len(cats) == 0 {
		return "", nil
	}

	names := make([]string, len(cats))
	for i, c := range cats {
		names[i] = c.Name
	}

	suggestion, err := s.gen.Generate(ctx,
		"You file bookmarks into categories. Reply with exactly one category name from the provided list, nothing else.",
		fmt.Sprintf("Categories: %s\nLink: %s", strings.Join(names, ", "), link),
	)
	if err != nil {
		return "", fmt.Errorf("auto-categorize: %w", err)
	}

	// The model must pick from the list; anything else is discarded.
	suggestion = strings.TrimSpace(suggestion)
	for _, name := range names {
		if strings.EqualFold(name, suggestion) {
			return name, nil
		}
	}
	return "", nil
}

// SendReminders mails the user a digest of contents whose deadline falls in
// the next 24 hours. No-op when the mailer is unconfigured or nothing is due.
func (s *Service) SendReminders(ctx context.Context, ownerID int64) (int, error) {
	u, err := s.store.UserByID(ctx, ownerID)
	if err != nil {
		return 0, err
	}
	if u == nil {
		return 0, apperr.NotFound("user not found")
	}
	if s.mailer == nil || !s.mailer.IsConfigured() {
		return 0, nil
	}

	due, err := s.store.UpcomingReminders(ctx, ownerID, time.Now(), reminderWindow)
	if err != nil {
		return 0, err
	}
	if len(due) == 0 {
		return 0, nil
	}

	var b strings.Builder
	b.WriteString("These saved links have deadlines in the next 24 hours:\n\n")
	for _, c := range due {
		fmt.Fprintf(&b, "- %s (%s) due %s\n", c.Title, c.Link, c.Deadline.Format(time.RFC1123))
	}

	if err := s.mailer.Send([]string{u.Email}, "Bookmark reminders", b.String()); err != nil {
		return 0, fmt.Errorf("send reminders: %w", err)
	}
	return len(due), nil
}
