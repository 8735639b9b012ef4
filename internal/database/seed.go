package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// Seed populates the database with initial development data: a default
// user with a couple of categories and saved links. No-op if any user
// already exists.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("demo"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	var userID int64
	err = db.QueryRow(`
		INSERT INTO users (email, password_hash, display_name)
		VALUES ($1, $2, $3)
		RETURNING id
	`, "demo@linkstash.local", string(hash), "Demo").Scan(&userID)
	if err != nil {
		return fmt.Errorf("seed insert user: %w", err)
	}

	var readingID int64
	err = db.QueryRow(`
		INSERT INTO categories (owner_id, name, slug)
		VALUES ($1, 'Reading', 'reading')
		RETURNING id
	`, userID).Scan(&readingID)
	if err != nil {
		return fmt.Errorf("seed insert category: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO contents (owner_id, link, title, category_id)
		VALUES ($1, 'https://go.dev/blog/', 'The Go Blog', $2),
		       ($1, 'https://go.dev/doc/effective_go', 'Effective Go', $2)
	`, userID, readingID)
	if err != nil {
		return fmt.Errorf("seed insert contents: %w", err)
	}

	slog.Info("database seeded with demo user",
		"email", "demo@linkstash.local",
		"password", "demo",
	)

	return nil
}
