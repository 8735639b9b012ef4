// service_test.go provides a shared test database helper for the service
// integration tests. Tests are skipped if PostgreSQL is not available.
package service

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"linkstash/internal/database"
	"linkstash/internal/models"
	"linkstash/internal/store"
)

func testDSN() string {
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "linkstash")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "linkstash")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testService opens the test database, migrates it and returns a service
// over it with no collaborators wired (previews fall back to the link,
// summarize and mail are unavailable, nothing is cached).
func testService(t *testing.T) (*Service, *sql.DB) {
	t.Helper()

	db, err := sql.Open("pgx", testDSN())
	if err != nil {
		t.Skipf("skipping integration test: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return New(store.New(db), nil, nil, nil, nil), db
}

// testUser creates a user for the test and removes it (cascading to all
// owned rows) on cleanup.
func testUser(t *testing.T, db *sql.DB, email string) *models.User {
	t.Helper()

	db.Exec("DELETE FROM users WHERE email = $1", email)

	u, err := store.New(db).CreateUser(context.Background(), email, "test-password", "Test User")
	if err != nil {
		t.Fatalf("create test user: %v", err)
	}
	t.Cleanup(func() {
		db.Exec("DELETE FROM users WHERE email = $1", email)
	})
	return u
}

func str(s string) *string { return &s }

// seedRoots fills the user's top-level category set up to n.
func seedRoots(t *testing.T, svc *Service, ownerID int64, n int) {
	t.Helper()
	ctx := context.Background()
	for i := 0; i < n; i++ {
		if _, err := svc.AddCategory(ctx, ownerID, fmt.Sprintf("Root %d", i), nil); err != nil {
			t.Fatalf("seed root %d: %v", i, err)
		}
	}
}
