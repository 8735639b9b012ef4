package service

import (
	"context"
	"errors"
	"testing"

	"linkstash/internal/apperr"
	"linkstash/internal/preview"
)

func TestAddContentTitleFallback(t *testing.T) {
	svc, db := testService(t)
	u := testUser(t, db, "svc-content-title@test.local")
	ctx := context.Background()

	// No preview collaborator: the link itself becomes the title.
	c, err := svc.AddContent(ctx, u.ID, AddContentRequest{Link: "https://fallback.test"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if c.Title != "https://fallback.test" {
		t.Fatalf("expected link as fallback title, got %q", c.Title)
	}

	// With a preview collaborator the fetched metadata wins.
	svc.preview = &preview.Static{Meta: preview.Metadata{
		Title:       "Fetched Title",
		Description: "about the page",
		Image:       "https://img.test/cover.png",
	}}
	c, err = svc.AddContent(ctx, u.ID, AddContentRequest{Link: "https://fetched.test"})
	if err != nil {
		t.Fatalf("add with preview: %v", err)
	}
	if c.Title != "Fetched Title" || c.Description == nil || c.CoverImage == nil {
		t.Fatalf("expected preview metadata on content, got %+v", c)
	}

	// A failing preview degrades to the link, never to an error.
	svc.preview = &preview.Static{Err: errors.New("boom")}
	c, err = svc.AddContent(ctx, u.ID, AddContentRequest{Link: "https://degraded.test"})
	if err != nil {
		t.Fatalf("add with failing preview: %v", err)
	}
	if c.Title != "https://degraded.test" {
		t.Fatalf("expected link title after preview failure, got %q", c.Title)
	}

	// An explicit title always wins and skips the collaborator.
	c, err = svc.AddContent(ctx, u.ID, AddContentRequest{
		Link: "https://explicit.test", Title: str("My Title"),
	})
	if err != nil {
		t.Fatalf("add with explicit title: %v", err)
	}
	if c.Title != "My Title" {
		t.Fatalf("expected explicit title, got %q", c.Title)
	}
}

func TestAddContentDuplicate(t *testing.T) {
	svc, db := testService(t)
	u := testUser(t, db, "svc-content-dup@test.local")
	ctx := context.Background()

	req := AddContentRequest{Link: "https://dup.svc.test", CategoryName: str("Pile")}
	if _, err := svc.AddContent(ctx, u.ID, req); err != nil {
		t.Fatalf("first add: %v", err)
	}
	if _, err := svc.AddContent(ctx, u.ID, req); !apperr.IsConflict(err) {
		t.Fatalf("expected Conflict for duplicate link in category, got %v", err)
	}

	// The same link without a category is a different slot.
	if _, err := svc.AddContent(ctx, u.ID, AddContentRequest{Link: "https://dup.svc.test"}); err != nil {
		t.Fatalf("uncategorized copy should be allowed: %v", err)
	}
}

func TestAddMultipleContentsAllOrNothing(t *testing.T) {
	svc, db := testService(t)
	u := testUser(t, db, "svc-content-batch@test.local")
	ctx := context.Background()

	if _, err := svc.AddContent(ctx, u.ID, AddContentRequest{Link: "https://taken.batch.test"}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	_, err := svc.AddMultipleContents(ctx, u.ID, []string{
		"https://new1.batch.test",
		"https://taken.batch.test",
		"https://new2.batch.test",
	})
	if !apperr.IsConflict(err) {
		t.Fatalf("expected Conflict aborting the batch, got %v", err)
	}

	// Nothing from the failed batch may survive.
	all, err := svc.ListContents(ctx, u.ID, nil)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("failed batch must roll back completely, found %d contents", len(all))
	}

	created, err := svc.AddMultipleContents(ctx, u.ID, []string{
		"https://new1.batch.test",
		"https://new2.batch.test",
	})
	if err != nil {
		t.Fatalf("clean batch: %v", err)
	}
	if len(created) != 2 {
		t.Fatalf("expected 2 created, got %d", len(created))
	}
	for _, c := range created {
		if c.CategoryID != nil {
			t.Fatalf("batch contents must be uncategorized, got %+v", c)
		}
	}
}

func TestUpdateContentMergeAndMove(t *testing.T) {
	svc, db := testService(t)
	u := testUser(t, db, "svc-content-update@test.local")
	ctx := context.Background()

	c, err := svc.AddContent(ctx, u.ID, AddContentRequest{
		Link: "https://update.test", Title: str("before"), CategoryName: str("Inbox"),
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	// Partial update keeps untouched fields.
	updated, err := svc.UpdateContent(ctx, u.ID, UpdateContentRequest{
		ID: c.ID, Title: str("after"), Favorite: ptr(true),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != "after" || !updated.Favorite {
		t.Fatalf("merge result wrong: %+v", updated)
	}
	if updated.Link != c.Link || updated.CategoryID == nil {
		t.Fatalf("untouched fields must survive: %+v", updated)
	}

	// Moving to a named category resolves or creates it.
	updated, err = svc.UpdateContent(ctx, u.ID, UpdateContentRequest{
		ID: c.ID, CategoryName: str("Archive"),
	})
	if err != nil {
		t.Fatalf("move: %v", err)
	}
	if updated.CategoryID == nil || *updated.CategoryID == *c.CategoryID {
		t.Fatalf("expected a different category after move, got %v", updated.CategoryID)
	}

	// Empty category name detaches.
	updated, err = svc.UpdateContent(ctx, u.ID, UpdateContentRequest{
		ID: c.ID, CategoryName: str(""),
	})
	if err != nil {
		t.Fatalf("detach: %v", err)
	}
	if updated.CategoryID != nil {
		t.Fatalf("expected detached content, got category %d", *updated.CategoryID)
	}

	if _, err := svc.UpdateContent(ctx, u.ID, UpdateContentRequest{ID: 99999999, Title: str("x")}); !apperr.IsNotFound(err) {
		t.Fatalf("expected NotFound for unknown id, got %v", err)
	}
}

func TestUpdateContentMoveCollision(t *testing.T) {
	svc, db := testService(t)
	u := testUser(t, db, "svc-content-collide@test.local")
	ctx := context.Background()

	if _, err := svc.AddContent(ctx, u.ID, AddContentRequest{
		Link: "https://collide.test", CategoryName: str("Target"),
	}); err != nil {
		t.Fatalf("seed target: %v", err)
	}
	loose, err := svc.AddContent(ctx, u.ID, AddContentRequest{Link: "https://collide.test"})
	if err != nil {
		t.Fatalf("seed loose: %v", err)
	}

	// Moving the uncategorized copy into Target collides with the existing one.
	_, err = svc.UpdateContent(ctx, u.ID, UpdateContentRequest{
		ID: loose.ID, CategoryName: str("Target"),
	})
	if !apperr.IsConflict(err) {
		t.Fatalf("expected Conflict on colliding move, got %v", err)
	}
}

func TestToggleFavoriteAndDelete(t *testing.T) {
	svc, db := testService(t)
	u := testUser(t, db, "svc-content-toggle@test.local")
	ctx := context.Background()

	c, err := svc.AddContent(ctx, u.ID, AddContentRequest{
		Link: "https://toggle.test", CategoryName: str("Keep Me"),
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	toggled, err := svc.ToggleFavorite(ctx, u.ID, c.ID)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !toggled.Favorite {
		t.Fatal("expected favorite set")
	}
	if _, err := svc.ToggleFavorite(ctx, u.ID, 99999999); !apperr.IsNotFound(err) {
		t.Fatalf("expected NotFound, got %v", err)
	}

	if err := svc.DeleteContent(ctx, u.ID, c.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.DeleteContent(ctx, u.ID, c.ID); !apperr.IsNotFound(err) {
		t.Fatalf("expected NotFound deleting twice, got %v", err)
	}

	// Deleting the last content does not prune its category.
	cats, err := svc.ListCategories(ctx, u.ID)
	if err != nil {
		t.Fatalf("list categories: %v", err)
	}
	if len(cats) != 1 || cats[0].Name != "Keep Me" {
		t.Fatalf("category must survive losing its last content, got %+v", cats)
	}
}

func TestOperationsRequireExistingUser(t *testing.T) {
	svc, _ := testService(t)
	ctx := context.Background()

	if _, err := svc.AddContent(ctx, 99999999, AddContentRequest{Link: "https://ghost.test"}); !apperr.IsNotFound(err) {
		t.Fatalf("expected NotFound for unknown owner, got %v", err)
	}
	if _, err := svc.AddCategory(ctx, 99999999, "Ghost", nil); !apperr.IsNotFound(err) {
		t.Fatalf("expected NotFound for unknown owner, got %v", err)
	}
}
