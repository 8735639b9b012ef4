// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "time"

// Content represents a saved link. The (link, category_id) pair is unique
// within a user's content set: the same URL may be saved once per distinct
// category, including "no category".
type Content struct {
	ID          int64      `json:"id"`
	OwnerID     int64      `json:"-"`
	Link        string     `json:"link"`
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	CoverImage  *string    `json:"cover_image,omitempty"`
	Comment     *string    `json:"comment,omitempty"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	Favorite    bool       `json:"favorite"`
	CategoryID  *int64     `json:"category_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// HasDeadline reports whether a reminder deadline is set.
func (c *Content) HasDeadline() bool {
	return c.Deadline != nil
}
