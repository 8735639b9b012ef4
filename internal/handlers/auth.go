// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"linkstash/internal/apperr"
	"linkstash/internal/store"
	"linkstash/internal/token"
)

// Auth handles login and logout.
type Auth struct {
	store  *store.Store
	tokens *token.Store
}

// NewAuth creates the auth handler group.
func NewAuth(st *store.Store, tokens *token.Store) *Auth {
	return &Auth{store: st, tokens: tokens}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token       string `json:"token"`
	UserID      int64  `json:"user_id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
}

// Login verifies credentials and issues a bearer token.
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || req.Password == "" {
		writeError(w, r, apperr.BadRequest("email and password are required"))
		return
	}

	u, err := h.store.UserByEmail(r.Context(), req.Email)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if u == nil {
		// Burn a comparison anyway so unknown emails cost the same.
		bcrypt.CompareHashAndPassword([]byte("$2a$10$000000000000000000000u"), []byte(req.Password))
		writeError(w, r, apperr.Unauthorized("invalid email or password"))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		writeError(w, r, apperr.Unauthorized("invalid email or password"))
		return
	}

	tok, err := h.tokens.Create(r.Context(), &token.Data{
		UserID:      u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		Token:       tok,
		UserID:      u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
	})
}

// Logout destroys the caller's bearer token. Unknown tokens are a no-op so
// the endpoint is idempotent.
func (h *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	auth := r.Header.Get("Authorization")
	var tok string
	if len(auth) > 7 && strings.EqualFold(auth[:7], "bearer ") {
		tok = auth[7:]
	}

	if err := h.tokens.Destroy(r.Context(), tok); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
