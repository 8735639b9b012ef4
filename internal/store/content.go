// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"linkstash/internal/models"
)

const contentColumns = `id, owner_id, link, title, description, cover_image, comment,
	deadline, favorite, category_id, created_at, updated_at`

// scanContent scans a row into a Content struct.
func scanContent(scanner interface{ Scan(...any) error }) (*models.Content, error) {
	var c models.Content
	err := scanner.Scan(
		&c.ID, &c.OwnerID, &c.Link, &c.Title, &c.Description, &c.CoverImage,
		&c.Comment, &c.Deadline, &c.Favorite, &c.CategoryID, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func contentByID(ctx context.Context, q dbtx, ownerID, id int64) (*models.Content, error) {
	row := q.QueryRowContext(ctx,
		`SELECT `+contentColumns+` FROM contents WHERE id = $1 AND owner_id = $2`, id, ownerID)
	c, err := scanContent(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find content by id: %w", err)
	}
	return c, nil
}

// ContentByID retrieves a user's content by id within the transaction.
// Returns nil if not found.
func (t *Tx) ContentByID(ctx context.Context, ownerID, id int64) (*models.Content, error) {
	return contentByID(ctx, t.q, ownerID, id)
}

// ContentByID retrieves a user's content by id. Returns nil if not found.
func (s *Store) ContentByID(ctx context.Context, ownerID, id int64) (*models.Content, error) {
	return contentByID(ctx, s.db, ownerID, id)
}

// ContentByLinkCategory retrieves the content matching (link, category) in
// the user's set, treating nil category as NULL. Returns nil if not found.
func (t *Tx) ContentByLinkCategory(ctx context.Context, ownerID int64, link string, categoryID *int64) (*models.Content, error) {
	row := t.q.QueryRowContext(ctx, `
		SELECT `+contentColumns+` FROM contents
		WHERE owner_id = $1 AND link = $2 AND category_id IS NOT DISTINCT FROM $3
	`, ownerID, link, categoryID)
	c, err := scanContent(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find content by link and category: %w", err)
	}
	return c, nil
}

// OtherContentWithLink reports whether a different content row of the user
// holds the same (link, category) pair. Used by update to detect moves that
// would collide.
func (t *Tx) OtherContentWithLink(ctx context.Context, ownerID int64, link string, categoryID *int64, excludeID int64) (bool, error) {
	var exists bool
	err := t.q.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM contents
			WHERE owner_id = $1 AND link = $2
			  AND category_id IS NOT DISTINCT FROM $3 AND id <> $4
		)
	`, ownerID, link, categoryID, excludeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check duplicate link: %w", err)
	}
	return exists, nil
}

// CreateContent inserts a new content row and returns it. A duplicate
// (link, category) pair trips the unique constraint, which the transaction
// boundary surfaces as Conflict.
func (t *Tx) CreateContent(ctx context.Context, c *models.Content) (*models.Content, error) {
	row := t.q.QueryRowContext(ctx, `
		INSERT INTO contents (owner_id, link, title, description, cover_image,
		                      comment, deadline, favorite, category_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+contentColumns,
		c.OwnerID, c.Link, c.Title, c.Description, c.CoverImage,
		c.Comment, c.Deadline, c.Favorite, c.CategoryID,
	)
	result, err := scanContent(row)
	if err != nil {
		return nil, fmt.Errorf("create content: %w", err)
	}
	return result, nil
}

// UpdateContent persists the merged field state of an existing content row.
func (t *Tx) UpdateContent(ctx context.Context, c *models.Content) (*models.Content, error) {
	row := t.q.QueryRowContext(ctx, `
		UPDATE contents SET
			link = $1, title = $2, description = $3, cover_image = $4,
			comment = $5, deadline = $6, favorite = $7, category_id = $8,
			updated_at = NOW()
		WHERE id = $9 AND owner_id = $10
		RETURNING `+contentColumns,
		c.Link, c.Title, c.Description, c.CoverImage,
		c.Comment, c.Deadline, c.Favorite, c.CategoryID,
		c.ID, c.OwnerID,
	)
	result, err := scanContent(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update content: %w", err)
	}
	return result, nil
}

// ToggleFavorite flips the favorite flag and returns the updated row.
// Returns nil if the content does not exist for this user.
func (t *Tx) ToggleFavorite(ctx context.Context, ownerID, id int64) (*models.Content, error) {
	row := t.q.QueryRowContext(ctx, `
		UPDATE contents SET favorite = NOT favorite, updated_at = NOW()
		WHERE id = $1 AND owner_id = $2
		RETURNING `+contentColumns,
		id, ownerID,
	)
	c, err := scanContent(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("toggle favorite: %w", err)
	}
	return c, nil
}

// DeleteContent removes a user's content row. Returns false if it did not exist.
func (t *Tx) DeleteContent(ctx context.Context, ownerID, id int64) (bool, error) {
	res, err := t.q.ExecContext(ctx,
		`DELETE FROM contents WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return false, fmt.Errorf("delete content: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete content rows affected: %w", err)
	}
	return n > 0, nil
}

// DeleteContentsByCategory removes every content row of the user referencing
// the category. Used by cascading category delete.
func (t *Tx) DeleteContentsByCategory(ctx context.Context, ownerID, categoryID int64) (int64, error) {
	res, err := t.q.ExecContext(ctx,
		`DELETE FROM contents WHERE owner_id = $1 AND category_id = $2`, ownerID, categoryID)
	if err != nil {
		return 0, fmt.Errorf("delete contents by category: %w", err)
	}
	return res.RowsAffected()
}

// DetachContentsByCategory nulls the category reference on every content row
// of the user referencing the category. A detached row colliding with an
// existing uncategorized copy of the same link trips the unique constraint.
func (t *Tx) DetachContentsByCategory(ctx context.Context, ownerID, categoryID int64) (int64, error) {
	res, err := t.q.ExecContext(ctx, `
		UPDATE contents SET category_id = NULL, updated_at = NOW()
		WHERE owner_id = $1 AND category_id = $2
	`, ownerID, categoryID)
	if err != nil {
		return 0, fmt.Errorf("detach contents by category: %w", err)
	}
	return res.RowsAffected()
}

// RepointContents moves every content row of the user from one category to
// another. Used by category rename.
func (t *Tx) RepointContents(ctx context.Context, ownerID, fromCategoryID, toCategoryID int64) (int64, error) {
	res, err := t.q.ExecContext(ctx, `
		UPDATE contents SET category_id = $3, updated_at = NOW()
		WHERE owner_id = $1 AND category_id = $2
	`, ownerID, fromCategoryID, toCategoryID)
	if err != nil {
		return 0, fmt.Errorf("repoint contents: %w", err)
	}
	return res.RowsAffected()
}

// ListContents returns a user's contents newest first. A non-nil categoryID
// filters to one category; categoryID pointing at 0 filters to uncategorized.
func (s *Store) ListContents(ctx context.Context, ownerID int64, categoryID *int64) ([]models.Content, error) {
	var (
		rows *sql.Rows
		err  error
	)
	switch {
	case categoryID == nil:
		rows, err = s.db.QueryContext(ctx, `
			SELECT `+contentColumns+` FROM contents
			WHERE owner_id = $1 ORDER BY created_at DESC, id DESC
		`, ownerID)
	case *categoryID == 0:
		rows, err = s.db.QueryContext(ctx, `
			SELECT `+contentColumns+` FROM contents
			WHERE owner_id = $1 AND category_id IS NULL
			ORDER BY created_at DESC, id DESC
		`, ownerID)
	default:
		rows, err = s.db.QueryContext(ctx, `
			SELECT `+contentColumns+` FROM contents
			WHERE owner_id = $1 AND category_id = $2
			ORDER BY created_at DESC, id DESC
		`, ownerID, *categoryID)
	}
	if err != nil {
		return nil, fmt.Errorf("list contents: %w", err)
	}
	defer rows.Close()
	return collectContents(rows)
}

// ListFavorites returns the user's favorite contents newest first.
func (s *Store) ListFavorites(ctx context.Context, ownerID int64) ([]models.Content, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+contentColumns+` FROM contents
		WHERE owner_id = $1 AND favorite
		ORDER BY created_at DESC, id DESC
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	defer rows.Close()
	return collectContents(rows)
}

// ReminderCount counts the user's contents with a deadline at or after now.
func (s *Store) ReminderCount(ctx context.Context, ownerID int64, now time.Time) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM contents
		WHERE owner_id = $1 AND deadline IS NOT NULL AND deadline >= $2
	`, ownerID, now).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("reminder count: %w", err)
	}
	return count, nil
}

// UpcomingReminders returns the user's contents whose deadline falls inside
// [now, now+window], soonest first. Used by the reminder mailer.
func (s *Store) UpcomingReminders(ctx context.Context, ownerID int64, now time.Time, window time.Duration) ([]models.Content, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+contentColumns+` FROM contents
		WHERE owner_id = $1 AND deadline BETWEEN $2 AND $3
		ORDER BY deadline, id
	`, ownerID, now, now.Add(window))
	if err != nil {
		return nil, fmt.Errorf("upcoming reminders: %w", err)
	}
	defer rows.Close()
	return collectContents(rows)
}

func collectContents(rows *sql.Rows) ([]models.Content, error) {
	var items []models.Content
	for rows.Next() {
		c, err := scanContent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan content: %w", err)
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}
