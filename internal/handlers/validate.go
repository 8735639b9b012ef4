package handlers

import (
	"strings"
	"unicode/utf8"

	"linkstash/internal/apperr"
)

// Validation limits for content and category fields.
const (
	maxLinkLen         = 2_048
	maxTitleLen        = 300
	maxCommentLen      = 1_000
	maxCategoryNameLen = 100
	maxBatchLinks      = 50
)

// validateLink checks a bookmark URL.
func validateLink(link string) error {
	link = strings.TrimSpace(link)
	if link == "" {
		return apperr.BadRequest("link is required")
	}
	if utf8.RuneCountInString(link) > maxLinkLen {
		return apperr.BadRequest("link is too long (max %d characters)", maxLinkLen)
	}
	if !strings.HasPrefix(link, "http://") && !strings.HasPrefix(link, "https://") {
		return apperr.BadRequest("link must start with http:// or https://")
	}
	return nil
}

// validateTitle checks an optional title field.
func validateTitle(title *string) error {
	if title != nil && utf8.RuneCountInString(*title) > maxTitleLen {
		return apperr.BadRequest("title is too long (max %d characters)", maxTitleLen)
	}
	return nil
}

// validateComment checks an optional comment field.
func validateComment(comment *string) error {
	if comment != nil && utf8.RuneCountInString(*comment) > maxCommentLen {
		return apperr.BadRequest("comment is too long (max %d characters)", maxCommentLen)
	}
	return nil
}

// validateCategoryName checks a category display name.
func validateCategoryName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return apperr.BadRequest("category name is required")
	}
	if utf8.RuneCountInString(name) > maxCategoryNameLen {
		return apperr.BadRequest("category name is too long (max %d characters)", maxCategoryNameLen)
	}
	return nil
}
