// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"linkstash/internal/models"
)

const categoryColumns = `id, owner_id, name, slug, parent_id, created_at, updated_at`

// scanCategory scans a row into a Category struct.
func scanCategory(scanner interface{ Scan(...any) error }) (*models.Category, error) {
	var c models.Category
	err := scanner.Scan(&c.ID, &c.OwnerID, &c.Name, &c.Slug, &c.ParentID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func categoryByID(ctx context.Context, q dbtx, ownerID, id int64) (*models.Category, error) {
	row := q.QueryRowContext(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE id = $1 AND owner_id = $2`, id, ownerID)
	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category by id: %w", err)
	}
	return c, nil
}

func categoryBySlugParent(ctx context.Context, q dbtx, ownerID int64, slug string, parentID *int64) (*models.Category, error) {
	// IS NOT DISTINCT FROM makes a nil parent match NULL, mirroring the
	// sibling-uniqueness constraint.
	row := q.QueryRowContext(ctx, `
		SELECT `+categoryColumns+` FROM categories
		WHERE owner_id = $1 AND slug = $2 AND parent_id IS NOT DISTINCT FROM $3
	`, ownerID, slug, parentID)
	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category by slug and parent: %w", err)
	}
	return c, nil
}

// CategoryByID retrieves a user's category by id within the transaction.
// Returns nil if not found.
func (t *Tx) CategoryByID(ctx context.Context, ownerID, id int64) (*models.Category, error) {
	return categoryByID(ctx, t.q, ownerID, id)
}

// CategoryByID retrieves a user's category by id. Returns nil if not found.
func (s *Store) CategoryByID(ctx context.Context, ownerID, id int64) (*models.Category, error) {
	return categoryByID(ctx, s.db, ownerID, id)
}

// CategoryBySlugParent retrieves the category matching (slug, parent) in the
// user's set, treating nil parent as NULL. Returns nil if not found.
func (t *Tx) CategoryBySlugParent(ctx context.Context, ownerID int64, slug string, parentID *int64) (*models.Category, error) {
	return categoryBySlugParent(ctx, t.q, ownerID, slug, parentID)
}

// CategoryBySlug retrieves a user's category by slug alone, preferring
// top-level matches. Used by rename, which addresses categories by name.
// Returns nil if not found.
func (t *Tx) CategoryBySlug(ctx context.Context, ownerID int64, slug string) (*models.Category, error) {
	row := t.q.QueryRowContext(ctx, `
		SELECT `+categoryColumns+` FROM categories
		WHERE owner_id = $1 AND slug = $2
		ORDER BY (parent_id IS NOT NULL), id
		LIMIT 1
	`, ownerID, slug)
	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category by slug: %w", err)
	}
	return c, nil
}

// CountTopLevel returns how many root categories the user holds.
func (t *Tx) CountTopLevel(ctx context.Context, ownerID int64) (int, error) {
	var count int
	err := t.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM categories WHERE owner_id = $1 AND parent_id IS NULL`, ownerID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count top-level categories: %w", err)
	}
	return count, nil
}

// CreateCategory inserts a category, relying on the sibling-uniqueness
// constraint to resolve concurrent get-or-create races: when another
// transaction already created the same (slug, parent), the insert is a
// no-op and the winner's row is fetched and returned instead. The second
// return value reports whether a new row was actually created.
func (t *Tx) CreateCategory(ctx context.Context, c *models.Category) (*models.Category, bool, error) {
	row := t.q.QueryRowContext(ctx, `
		INSERT INTO categories (owner_id, name, slug, parent_id)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT ON CONSTRAINT categories_owner_slug_parent_key DO NOTHING
		RETURNING `+categoryColumns,
		c.OwnerID, c.Name, c.Slug, c.ParentID,
	)
	created, err := scanCategory(row)
	if err == nil {
		return created, true, nil
	}
	if err != sql.ErrNoRows {
		return nil, false, fmt.Errorf("create category: %w", err)
	}

	// Lost the race (or the row predates us): return the existing sibling.
	existing, err := categoryBySlugParent(ctx, t.q, c.OwnerID, c.Slug, c.ParentID)
	if err != nil {
		return nil, false, err
	}
	if existing == nil {
		return nil, false, fmt.Errorf("create category: conflict but no existing row for slug %q", c.Slug)
	}
	return existing, false, nil
}

// DeleteCategory removes a user's category row. Child categories are
// re-parented to the root by the ON DELETE SET NULL constraint. Returns
// false if the row did not exist.
func (t *Tx) DeleteCategory(ctx context.Context, ownerID, id int64) (bool, error) {
	res, err := t.q.ExecContext(ctx,
		`DELETE FROM categories WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return false, fmt.Errorf("delete category: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete category rows affected: %w", err)
	}
	return n > 0, nil
}

// ListCategories returns all of a user's categories ordered by name, with
// content counts.
func (s *Store) ListCategories(ctx context.Context, ownerID int64) ([]models.Category, error) {
	return listCategories(ctx, s.db, ownerID)
}

// ListCategories returns the user's categories within the transaction.
func (t *Tx) ListCategories(ctx context.Context, ownerID int64) ([]models.Category, error) {
	return listCategories(ctx, t.q, ownerID)
}

func listCategories(ctx context.Context, q dbtx, ownerID int64) ([]models.Category, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT c.id, c.owner_id, c.name, c.slug, c.parent_id, c.created_at, c.updated_at,
		       COUNT(ct.id) AS content_count
		FROM categories c
		LEFT JOIN contents ct ON ct.category_id = c.id
		WHERE c.owner_id = $1
		GROUP BY c.id
		ORDER BY c.name, c.id
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var items []models.Category
	for rows.Next() {
		var c models.Category
		err := rows.Scan(
			&c.ID, &c.OwnerID, &c.Name, &c.Slug, &c.ParentID,
			&c.CreatedAt, &c.UpdatedAt, &c.ContentCount,
		)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

// CategoryTree returns a user's categories as a nested tree structure.
func (s *Store) CategoryTree(ctx context.Context, ownerID int64) ([]models.Category, error) {
	flat, err := s.ListCategories(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return buildTree(flat, nil, 0), nil
}

// buildTree recursively builds a tree from a flat list.
func buildTree(flat []models.Category, parentID *int64, depth int) []models.Category {
	var result []models.Category
	for _, c := range flat {
		if ptrEqual(c.ParentID, parentID) {
			c.Depth = depth
			c.Children = buildTree(flat, &c.ID, depth+1)
			result = append(result, c)
		}
	}
	return result
}

// ptrEqual compares two *int64 for equality (both nil or same value).
func ptrEqual(a, b *int64) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return *a == *b
}

// FrequentCategories returns the user's categories holding the most content,
// most populated first.
func (s *Store) FrequentCategories(ctx context.Context, ownerID int64, limit int) ([]models.Category, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT c.id, c.owner_id, c.name, c.slug, c.parent_id, c.created_at, c.updated_at,
		       COUNT(ct.id) AS content_count
		FROM categories c
		LEFT JOIN contents ct ON ct.category_id = c.id
		WHERE c.owner_id = $1
		GROUP BY c.id
		ORDER BY content_count DESC, c.name
		LIMIT $2
	`, ownerID, limit)
	if err != nil {
		return nil, fmt.Errorf("frequent categories: %w", err)
	}
	defer rows.Close()

	var items []models.Category
	for rows.Next() {
		var c models.Category
		err := rows.Scan(
			&c.ID, &c.OwnerID, &c.Name, &c.Slug, &c.ParentID,
			&c.CreatedAt, &c.UpdatedAt, &c.ContentCount,
		)
		if err != nil {
			return nil, fmt.Errorf("scan frequent category: %w", err)
		}
		items = append(items, c)
	}
	return items, rows.Err()
}
