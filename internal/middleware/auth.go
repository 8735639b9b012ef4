// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"net/http"
	"strings"

	"linkstash/internal/token"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey string

const (
	// IdentityKey is the context key for the authenticated token data.
	IdentityKey contextKey = "identity"
)

// LoadIdentity resolves the Authorization bearer token against the token
// store and places the token data in the request context. It does NOT
// enforce authentication — it just loads the identity if one exists.
func LoadIdentity(tokens *token.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			data, err := tokens.Get(r.Context(), bearerToken(r))
			if err != nil {
				// Log-free pass-through — treat as unauthenticated.
				next.ServeHTTP(w, r)
				return
			}

			if data != nil {
				ctx := context.WithValue(r.Context(), IdentityKey, data)
				r = r.WithContext(ctx)
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireUser rejects unauthenticated requests with 401. Must be applied
// after LoadIdentity in the middleware chain.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if IdentityFromCtx(r.Context()) == nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":{"code":"UNAUTHORIZED","message":"missing or invalid token"}}`))
			return
		}

		next.ServeHTTP(w, r)
	})
}

// IdentityFromCtx extracts the token data from the request context.
// Returns nil if no identity is loaded (request is not authenticated).
func IdentityFromCtx(ctx context.Context) *token.Data {
	data, _ := ctx.Value(IdentityKey).(*token.Data)
	return data
}

// bearerToken extracts the token from the Authorization header.
func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return h[7:]
	}
	return ""
}
