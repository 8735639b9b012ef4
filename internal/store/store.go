// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store provides database access for all linkstash entities and the
// unit-of-work protocol wrapping every mutating operation. Reads for list
// endpoints run directly on the pool; mutations go through RunInTx so that
// one request observes one consistent snapshot and commits atomically.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"linkstash/internal/apperr"
)

// dbtx is satisfied by both *sql.DB and *sql.Tx, letting query helpers serve
// the pool-backed read paths and the transactional write paths alike.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store wraps the connection pool and opens units of work.
type Store struct {
	db *sql.DB
}

// New returns a Store over the given connection pool.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// DB exposes the underlying pool (health checks, tests).
func (s *Store) DB() *sql.DB {
	return s.db
}

// Ping verifies database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Tx is the transactional handle threaded through every core mutation.
// All reads and writes through a Tx observe the same snapshot.
type Tx struct {
	q *sql.Tx
}

// RunInTx opens a fresh transaction, runs fn against it, commits on nil and
// rolls back on error or panic. Errors are converted to the typed taxonomy:
// unique-constraint violations become Conflict, typed errors pass through
// unchanged, anything else is surfaced as-is for the handler layer to map
// to Internal.
func (s *Store) RunInTx(ctx context.Context, fn func(tx *Tx) error) error {
	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			sqlTx.Rollback()
			panic(p)
		}
	}()

	if err := fn(&Tx{q: sqlTx}); err != nil {
		sqlTx.Rollback()
		return convertErr(err)
	}

	if err := sqlTx.Commit(); err != nil {
		return convertErr(fmt.Errorf("commit tx: %w", err))
	}
	return nil
}

// convertErr maps store-level failures onto the typed taxonomy. Typed errors
// keep their kind; unique violations become constraint-specific conflicts.
func convertErr(err error) error {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		switch pgErr.ConstraintName {
		case "categories_owner_slug_parent_key":
			return apperr.Conflict("category already exists")
		case "contents_owner_link_category_key":
			return apperr.Conflict("content with this link already exists in this category")
		case "users_email_key":
			return apperr.Conflict("email already registered")
		}
		return apperr.Conflict("duplicate value")
	}

	return err
}

// IsUniqueViolation reports whether err is a Postgres unique-constraint
// violation, optionally matching a specific constraint name.
func IsUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}
