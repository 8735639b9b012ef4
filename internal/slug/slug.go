// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug provides stable slug generation from category display names.
// Slugs are the dedup/lookup key for a user's categories, so the same name
// must always produce the same slug, and non-Latin names must survive intact.
package slug

import (
	"fmt"
	"hash/fnv"
	"regexp"
	"strings"
)

var (
	// disallowed matches anything that isn't a letter or digit in any
	// script, whitespace, or a hyphen. Category names are commonly
	// non-Latin, so Unicode letters pass through unchanged.
	disallowed = regexp.MustCompile(`[^\p{L}\p{N}\s-]`)
	// whitespace collapses any whitespace run into a single separator.
	whitespace = regexp.MustCompile(`\s+`)
	// multipleHyphens collapses consecutive hyphens into one.
	multipleHyphens = regexp.MustCompile(`-{2,}`)
)

// Generate creates a normalized slug from the given display name.
// Example: "Flash  Sale! 2026" → "flash-sale-2026", "쇼핑" → "쇼핑".
// Purely symbolic names that normalize to nothing fall back to a stable
// hash of the raw input so distinct names keep distinct slugs.
func Generate(name string) string {
	result := strings.ToLower(strings.TrimSpace(name))
	result = disallowed.ReplaceAllString(result, "")
	result = whitespace.ReplaceAllString(result, "-")
	result = multipleHyphens.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")

	if result == "" && strings.TrimSpace(name) != "" {
		return hashFallback(name)
	}
	return result
}

// hashFallback derives a short stable identifier from the raw name.
func hashFallback(name string) string {
	h := fnv.New32a()
	h.Write([]byte(name))
	return fmt.Sprintf("x%08x", h.Sum32())
}
