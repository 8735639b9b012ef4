// Package models defines the data structures that map to database tables
// and provides the core types used throughout the application.
package models

import "time"

// User owns a set of categories and contents. Email is unique.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never serialize the hash
	DisplayName  string    `json:"display_name"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
