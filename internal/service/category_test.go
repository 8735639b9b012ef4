package service

import (
	"context"
	"testing"

	"linkstash/internal/apperr"
	"linkstash/internal/models"
)

func TestAddCategoryRejectsDuplicate(t *testing.T) {
	svc, db := testService(t)
	u := testUser(t, db, "svc-cat-dup@test.local")
	ctx := context.Background()

	if _, err := svc.AddCategory(ctx, u.ID, "Reading", nil); err != nil {
		t.Fatalf("first add: %v", err)
	}

	// Same name, and a name that slugs to the same value, both collide.
	if _, err := svc.AddCategory(ctx, u.ID, "Reading", nil); !apperr.IsConflict(err) {
		t.Fatalf("expected Conflict for duplicate name, got %v", err)
	}
	if _, err := svc.AddCategory(ctx, u.ID, "  READING  ", nil); !apperr.IsConflict(err) {
		t.Fatalf("expected Conflict for slug-equivalent name, got %v", err)
	}
}

func TestAddCategoryTopLevelCap(t *testing.T) {
	svc, db := testService(t)
	u := testUser(t, db, "svc-cat-cap@test.local")
	ctx := context.Background()

	seedRoots(t, svc, u.ID, models.MaxTopLevelCategories)

	if _, err := svc.AddCategory(ctx, u.ID, "One Too Many", nil); !apperr.IsConflict(err) {
		t.Fatalf("expected Conflict at the top-level cap, got %v", err)
	}

	// Children are not capped.
	first, err := svc.ListCategories(ctx, u.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if _, err := svc.AddCategory(ctx, u.ID, "Nested Is Fine", &first[0].ID); err != nil {
		t.Fatalf("child add under the cap should succeed: %v", err)
	}

	// Implicit creation during content add is also exempt from the cap.
	c, err := svc.AddContent(ctx, u.ID, AddContentRequest{
		Link:         "https://cap.test",
		CategoryName: str("Implicit Root"),
	})
	if err != nil {
		t.Fatalf("implicit category past the cap should succeed: %v", err)
	}
	if c.CategoryID == nil {
		t.Fatal("content should be attached to the implicit category")
	}
}

func TestAddCategoryDepthLimit(t *testing.T) {
	svc, db := testService(t)
	u := testUser(t, db, "svc-cat-depth@test.local")
	ctx := context.Background()

	root, err := svc.AddCategory(ctx, u.ID, "Level One", nil)
	if err != nil {
		t.Fatalf("root: %v", err)
	}
	child, err := svc.AddCategory(ctx, u.ID, "Level Two", &root.ID)
	if err != nil {
		t.Fatalf("child: %v", err)
	}
	grand, err := svc.AddCategory(ctx, u.ID, "Level Three", &child.ID)
	if err != nil {
		t.Fatalf("grandchild at depth 3 should be allowed: %v", err)
	}

	if _, err := svc.AddCategory(ctx, u.ID, "Level Four", &grand.ID); !apperr.IsConflict(err) {
		t.Fatalf("expected Conflict beyond depth %d, got %v", models.MaxCategoryDepth, err)
	}

	if _, err := svc.AddCategory(ctx, u.ID, "Orphan", ptr(int64(99999999))); !apperr.IsNotFound(err) {
		t.Fatalf("expected NotFound for unknown parent, got %v", err)
	}
}

func TestUpdateCategoryRenameRepointsContents(t *testing.T) {
	svc, db := testService(t)
	u := testUser(t, db, "svc-cat-rename@test.local")
	ctx := context.Background()

	old, err := svc.AddCategory(ctx, u.ID, "Artciles", nil)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	c, err := svc.AddContent(ctx, u.ID, AddContentRequest{
		Link:         "https://rename.test",
		Title:        str("kept"),
		CategoryName: str("Artciles"),
	})
	if err != nil {
		t.Fatalf("add content: %v", err)
	}

	renamed, err := svc.UpdateCategory(ctx, u.ID, "Artciles", "Articles")
	if err != nil {
		t.Fatalf("rename: %v", err)
	}
	if renamed.Slug != "articles" {
		t.Fatalf("expected slug articles, got %q", renamed.Slug)
	}
	if renamed.ID == old.ID {
		t.Fatal("rename should produce a replacement row")
	}

	// Content now points at the replacement; the old row is gone.
	got, err := svc.store.ContentByID(ctx, u.ID, c.ID)
	if err != nil {
		t.Fatalf("fetch content: %v", err)
	}
	if got.CategoryID == nil || *got.CategoryID != renamed.ID {
		t.Fatalf("content should point at the renamed category, got %v", got.CategoryID)
	}
	if stale, _ := svc.store.CategoryByID(ctx, u.ID, old.ID); stale != nil {
		t.Fatal("old category row should be removed")
	}
}

func TestUpdateCategoryConflictsAndMisses(t *testing.T) {
	svc, db := testService(t)
	u := testUser(t, db, "svc-cat-rename-err@test.local")
	ctx := context.Background()

	if _, err := svc.AddCategory(ctx, u.ID, "Alpha", nil); err != nil {
		t.Fatalf("add alpha: %v", err)
	}
	if _, err := svc.AddCategory(ctx, u.ID, "Beta", nil); err != nil {
		t.Fatalf("add beta: %v", err)
	}

	if _, err := svc.UpdateCategory(ctx, u.ID, "Missing", "Whatever"); !apperr.IsNotFound(err) {
		t.Fatalf("expected NotFound for unknown original, got %v", err)
	}
	if _, err := svc.UpdateCategory(ctx, u.ID, "Alpha", "Beta"); !apperr.IsConflict(err) {
		t.Fatalf("expected Conflict renaming onto an existing name, got %v", err)
	}
}

func TestDeleteCategoryCascadeAndDetach(t *testing.T) {
	svc, db := testService(t)
	u := testUser(t, db, "svc-cat-delete@test.local")
	ctx := context.Background()

	addWithContent := func(name, link string) *models.Category {
		t.Helper()
		c, err := svc.AddContent(ctx, u.ID, AddContentRequest{
			Link: link, Title: str(link), CategoryName: str(name),
		})
		if err != nil {
			t.Fatalf("add content %s: %v", link, err)
		}
		cat, err := svc.store.CategoryByID(ctx, u.ID, *c.CategoryID)
		if err != nil || cat == nil {
			t.Fatalf("fetch category %s: %v", name, err)
		}
		return cat
	}

	cascade := addWithContent("Cascade Me", "https://cascade.test")
	detach := addWithContent("Detach Me", "https://detach.test")

	if err := svc.DeleteCategory(ctx, u.ID, cascade.ID, true); err != nil {
		t.Fatalf("cascade delete: %v", err)
	}
	if err := svc.DeleteCategory(ctx, u.ID, detach.ID, false); err != nil {
		t.Fatalf("detach delete: %v", err)
	}

	all, err := svc.ListContents(ctx, u.ID, nil)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected 1 surviving content, got %d", len(all))
	}
	if all[0].Link != "https://detach.test" || all[0].CategoryID != nil {
		t.Fatalf("survivor should be the detached content without a category, got %+v", all[0])
	}

	if err := svc.DeleteCategory(ctx, u.ID, cascade.ID, false); !apperr.IsNotFound(err) {
		t.Fatalf("expected NotFound deleting twice, got %v", err)
	}
}

func TestImplicitCategoryResolverIdempotence(t *testing.T) {
	svc, db := testService(t)
	u := testUser(t, db, "svc-cat-resolve@test.local")
	ctx := context.Background()

	first, err := svc.AddContent(ctx, u.ID, AddContentRequest{
		Link: "https://one.resolve.test", CategoryName: str("Shared Name"),
	})
	if err != nil {
		t.Fatalf("first add: %v", err)
	}
	second, err := svc.AddContent(ctx, u.ID, AddContentRequest{
		Link: "https://two.resolve.test", CategoryName: str("shared NAME"),
	})
	if err != nil {
		t.Fatalf("second add: %v", err)
	}

	if *first.CategoryID != *second.CategoryID {
		t.Fatalf("slug-equivalent names must resolve to one category: %d vs %d",
			*first.CategoryID, *second.CategoryID)
	}
}

func ptr[T any](v T) *T { return &v }
