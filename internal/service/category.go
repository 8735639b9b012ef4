// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package service

import (
	"context"

	"linkstash/internal/apperr"
	"linkstash/internal/models"
	"linkstash/internal/slug"
	"linkstash/internal/store"
)

// getOrCreateCategory returns the user's existing category matching
// (slug(name), parentID), creating it when absent. Idempotent: two calls
// with the same arguments return the same row and write at most once.
// Runs entirely inside the caller's transaction; all steps before the
// insert are read-only against the transaction snapshot.
func (s *Service) getOrCreateCategory(ctx context.Context, tx *store.Tx, ownerID int64, name string, parentID *int64) (*models.Category, bool, error) {
	sl := slug.Generate(name)
	if sl == "" {
		return nil, false, apperr.BadRequest("category name must not be empty")
	}

	if parentID != nil {
		if err := s.checkDepth(ctx, tx, ownerID, *parentID); err != nil {
			return nil, false, err
		}
	}

	existing, err := tx.CategoryBySlugParent(ctx, ownerID, sl, parentID)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	created, isNew, err := tx.CreateCategory(ctx, &models.Category{
		OwnerID:  ownerID,
		Name:     name,
		Slug:     sl,
		ParentID: parentID,
	})
	if err != nil {
		return nil, false, err
	}
	return created, isNew, nil
}

// checkDepth validates that attaching a child under parentID keeps the tree
// within three levels: the parent's parent must itself be a root. It also
// rejects a parent that does not belong to the user.
func (s *Service) checkDepth(ctx context.Context, tx *store.Tx, ownerID, parentID int64) error {
	parent, err := tx.CategoryByID(ctx, ownerID, parentID)
	if err != nil {
		return err
	}
	if parent == nil {
		return apperr.NotFound("parent category not found")
	}
	if parent.ParentID == nil {
		return nil
	}

	grand, err := tx.CategoryByID(ctx, ownerID, *parent.ParentID)
	if err != nil {
		return err
	}
	if grand != nil && grand.ParentID != nil {
		return apperr.Conflict("category depth must not exceed %d", models.MaxCategoryDepth)
	}
	return nil
}

// AddCategory explicitly creates a category for the user. Unlike implicit
// creation during content add, this path rejects duplicates and enforces
// the top-level category cap.
func (s *Service) AddCategory(ctx context.Context, ownerID int64, name string, parentID *int64) (*models.Category, error) {
	var result *models.Category

	err := s.store.RunInTx(ctx, func(tx *store.Tx) error {
		if _, err := requireUser(ctx, tx, ownerID); err != nil {
			return err
		}

		sl := slug.Generate(name)
		if sl == "" {
			return apperr.BadRequest("category name must not be empty")
		}

		existing, err := tx.CategoryBySlugParent(ctx, ownerID, sl, parentID)
		if err != nil {
			return err
		}
		if existing != nil {
			return apperr.Conflict("category %q already exists", name)
		}

		if parentID == nil {
			count, err := tx.CountTopLevel(ctx, ownerID)
			if err != nil {
				return err
			}
			if count >= models.MaxTopLevelCategories {
				return apperr.Conflict("cannot hold more than %d top-level categories", models.MaxTopLevelCategories)
			}
		}

		cat, isNew, err := s.getOrCreateCategory(ctx, tx, ownerID, name, parentID)
		if err != nil {
			return err
		}
		if !isNew {
			// A concurrent request created it between our check and the
			// insert; for the explicit add path that is still a duplicate.
			return apperr.Conflict("category %q already exists", name)
		}
		result = cat
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, ownerID)
	return result, nil
}

// UpdateCategory renames a category: it resolves or creates a category with
// the new name, repoints every content referencing the old one, then removes
// the old row from the user's set.
func (s *Service) UpdateCategory(ctx context.Context, ownerID int64, originalName, name string) (*models.Category, error) {
	var result *models.Category

	err := s.store.RunInTx(ctx, func(tx *store.Tx) error {
		if _, err := requireUser(ctx, tx, ownerID); err != nil {
			return err
		}

		old, err := tx.CategoryBySlug(ctx, ownerID, slug.Generate(originalName))
		if err != nil {
			return err
		}
		if old == nil {
			return apperr.NotFound("category %q not found", originalName)
		}

		targetSlug := slug.Generate(name)
		if targetSlug == "" {
			return apperr.BadRequest("category name must not be empty")
		}
		existing, err := tx.CategoryBySlug(ctx, ownerID, targetSlug)
		if err != nil {
			return err
		}
		if existing != nil {
			return apperr.Conflict("category %q already exists", name)
		}

		replacement, _, err := s.getOrCreateCategory(ctx, tx, ownerID, name, nil)
		if err != nil {
			return err
		}

		if _, err := tx.RepointContents(ctx, ownerID, old.ID, replacement.ID); err != nil {
			return err
		}
		if _, err := tx.DeleteCategory(ctx, ownerID, old.ID); err != nil {
			return err
		}

		result = replacement
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, ownerID)
	return result, nil
}

// DeleteCategory removes a category from the user's set. Content referencing
// it is deleted when cascade is set, otherwise detached (category nulled).
func (s *Service) DeleteCategory(ctx context.Context, ownerID, categoryID int64, cascade bool) error {
	err := s.store.RunInTx(ctx, func(tx *store.Tx) error {
		if _, err := requireUser(ctx, tx, ownerID); err != nil {
			return err
		}

		cat, err := tx.CategoryByID(ctx, ownerID, categoryID)
		if err != nil {
			return err
		}
		if cat == nil {
			return apperr.NotFound("category not found")
		}

		if cascade {
			if _, err := tx.DeleteContentsByCategory(ctx, ownerID, categoryID); err != nil {
				return err
			}
		} else {
			if _, err := tx.DetachContentsByCategory(ctx, ownerID, categoryID); err != nil {
				return err
			}
		}

		_, err = tx.DeleteCategory(ctx, ownerID, categoryID)
		return err
	})
	if err != nil {
		return err
	}

	s.invalidate(ctx, ownerID)
	return nil
}
