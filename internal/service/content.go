// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package service

import (
	"context"
	"log/slog"

	"linkstash/internal/apperr"
	"linkstash/internal/models"
	"linkstash/internal/store"
)

// AddContent saves a link for the user. A missing title is resolved through
// the link-preview collaborator (falling back to the link itself), and a
// named category is resolved or created inside the same transaction. The
// (link, category) pair must be unique within the user's content set.
func (s *Service) AddContent(ctx context.Context, ownerID int64, req AddContentRequest) (*models.Content, error) {
	if req.Link == "" {
		return nil, apperr.BadRequest("link must not be empty")
	}

	// Collaborator call happens before the unit of work opens so the
	// transaction never waits on the network.
	title, description, cover := s.resolvePreview(ctx, req.Link, req.Title)

	var result *models.Content
	err := s.store.RunInTx(ctx, func(tx *store.Tx) error {
		if _, err := requireUser(ctx, tx, ownerID); err != nil {
			return err
		}

		var categoryID *int64
		if req.CategoryName != nil && *req.CategoryName != "" {
			cat, _, err := s.getOrCreateCategory(ctx, tx, ownerID, *req.CategoryName, nil)
			if err != nil {
				return err
			}
			categoryID = &cat.ID
		}

		dup, err := tx.ContentByLinkCategory(ctx, ownerID, req.Link, categoryID)
		if err != nil {
			return err
		}
		if dup != nil {
			return apperr.Conflict("content with this link already exists in this category")
		}

		created, err := tx.CreateContent(ctx, &models.Content{
			OwnerID:     ownerID,
			Link:        req.Link,
			Title:       title,
			Description: description,
			CoverImage:  cover,
			Comment:     req.Comment,
			Deadline:    req.Deadline,
			Favorite:    req.Favorite,
			CategoryID:  categoryID,
		})
		if err != nil {
			return err
		}
		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, ownerID)
	return result, nil
}

// AddMultipleContents saves a batch of links without category association in
// a single transaction, all or nothing: the first link already saved
// uncategorized aborts the whole batch with Conflict. Preview fetches are
// best-effort per item and never abort the batch.
func (s *Service) AddMultipleContents(ctx context.Context, ownerID int64, links []string) ([]models.Content, error) {
	if len(links) == 0 {
		return nil, apperr.BadRequest("links must not be empty")
	}
	for _, link := range links {
		if link == "" {
			return nil, apperr.BadRequest("link must not be empty")
		}
	}

	titles := make([]string, len(links))
	for i, link := range links {
		titles[i], _, _ = s.resolvePreview(ctx, link, nil)
	}

	var result []models.Content
	err := s.store.RunInTx(ctx, func(tx *store.Tx) error {
		if _, err := requireUser(ctx, tx, ownerID); err != nil {
			return err
		}

		result = result[:0]
		for i, link := range links {
			dup, err := tx.ContentByLinkCategory(ctx, ownerID, link, nil)
			if err != nil {
				return err
			}
			if dup != nil {
				return apperr.Conflict("content with link %q already exists", link)
			}

			created, err := tx.CreateContent(ctx, &models.Content{
				OwnerID: ownerID,
				Link:    link,
				Title:   titles[i],
			})
			if err != nil {
				return err
			}
			result = append(result, *created)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, ownerID)
	return result, nil
}

// UpdateContent merges field updates into an existing content row. Moving a
// content to a category where the user already holds the same link is a
// Conflict. A CategoryName of "" detaches the content from its category.
func (s *Service) UpdateContent(ctx context.Context, ownerID int64, req UpdateContentRequest) (*models.Content, error) {
	var result *models.Content

	err := s.store.RunInTx(ctx, func(tx *store.Tx) error {
		if _, err := requireUser(ctx, tx, ownerID); err != nil {
			return err
		}

		c, err := tx.ContentByID(ctx, ownerID, req.ID)
		if err != nil {
			return err
		}
		if c == nil {
			return apperr.NotFound("content not found")
		}

		if req.Link != nil {
			if *req.Link == "" {
				return apperr.BadRequest("link must not be empty")
			}
			c.Link = *req.Link
		}
		if req.Title != nil {
			c.Title = *req.Title
		}
		if req.Description != nil {
			c.Description = req.Description
		}
		if req.Comment != nil {
			c.Comment = req.Comment
		}
		if req.Deadline != nil {
			c.Deadline = req.Deadline
		}
		if req.Favorite != nil {
			c.Favorite = *req.Favorite
		}

		if req.CategoryName != nil {
			if *req.CategoryName == "" {
				c.CategoryID = nil
			} else {
				cat, _, err := s.getOrCreateCategory(ctx, tx, ownerID, *req.CategoryName, nil)
				if err != nil {
					return err
				}
				c.CategoryID = &cat.ID
			}
		}

		taken, err := tx.OtherContentWithLink(ctx, ownerID, c.Link, c.CategoryID, c.ID)
		if err != nil {
			return err
		}
		if taken {
			return apperr.Conflict("content with this link already exists in this category")
		}

		updated, err := tx.UpdateContent(ctx, c)
		if err != nil {
			return err
		}
		if updated == nil {
			return apperr.NotFound("content not found")
		}
		result = updated
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, ownerID)
	return result, nil
}

// ToggleFavorite flips the favorite flag on a content row.
func (s *Service) ToggleFavorite(ctx context.Context, ownerID, contentID int64) (*models.Content, error) {
	var result *models.Content

	err := s.store.RunInTx(ctx, func(tx *store.Tx) error {
		if _, err := requireUser(ctx, tx, ownerID); err != nil {
			return err
		}

		c, err := tx.ToggleFavorite(ctx, ownerID, contentID)
		if err != nil {
			return err
		}
		if c == nil {
			return apperr.NotFound("content not found")
		}
		result = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// DeleteContent removes a content row. The owning category is left in place
// even when this was its last content.
func (s *Service) DeleteContent(ctx context.Context, ownerID, contentID int64) error {
	err := s.store.RunInTx(ctx, func(tx *store.Tx) error {
		if _, err := requireUser(ctx, tx, ownerID); err != nil {
			return err
		}

		deleted, err := tx.DeleteContent(ctx, ownerID, contentID)
		if err != nil {
			return err
		}
		if !deleted {
			return apperr.NotFound("content not found")
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.invalidate(ctx, ownerID)
	return nil
}

// resolvePreview resolves title, description and cover image for a link.
// The supplied title wins; otherwise the preview collaborator is consulted
// best-effort, and the link itself is the title of last resort.
func (s *Service) resolvePreview(ctx context.Context, link string, title *string) (string, *string, *string) {
	if title != nil && *title != "" {
		return *title, nil, nil
	}
	if s.preview == nil {
		return link, nil, nil
	}

	meta, err := s.preview.Fetch(ctx, link)
	if err != nil || meta == nil {
		if err != nil {
			slog.Warn("link preview fetch failed", "link", link, "error", err)
		}
		return link, nil, nil
	}

	resolved := meta.Title
	if resolved == "" {
		resolved = link
	}
	var description, cover *string
	if meta.Description != "" {
		description = &meta.Description
	}
	if meta.Image != "" {
		cover = &meta.Image
	}
	return resolved, description, cover
}
