// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "time"

// MaxCategoryDepth bounds the category hierarchy: root → child → grandchild.
const MaxCategoryDepth = 3

// MaxTopLevelCategories caps how many root categories a user may hold.
const MaxTopLevelCategories = 10

// Category represents one node of a user's bookmark category tree.
// The (slug, parent_id) pair is unique within a user's category set:
// the same name may recur under different parents, but not as siblings.
type Category struct {
	ID        int64     `json:"id"`
	OwnerID   int64     `json:"-"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	ParentID  *int64    `json:"parent_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Virtual fields populated by store methods.
	Children     []Category `json:"children,omitempty"`
	Depth        int        `json:"depth"`
	ContentCount int        `json:"content_count"`
}

// IsTopLevel reports whether the category has no parent.
func (c *Category) IsTopLevel() bool {
	return c.ParentID == nil
}
