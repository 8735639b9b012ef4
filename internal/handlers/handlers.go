// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers for the linkstash API.
// Handlers are grouped by concern (contents, categories, auth) and receive
// their dependencies through the handler struct. They decode explicit
// request records, call the service layer, and serialize typed results or
// errors; all transactional behaviour lives below them.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"linkstash/internal/apperr"
	"linkstash/internal/middleware"
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeJSON serializes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			slog.Error("encode response failed", "error", err)
		}
	}
}

// writeError maps err onto the typed taxonomy and serializes it. Errors
// outside the taxonomy are logged and surfaced as a generic Internal.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		writeJSON(w, appErr.Status, errorBody{Error: errorDetail{Code: appErr.Code, Message: appErr.Message}})
		return
	}

	slog.Error("request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"request_id", middleware.RequestIDFromCtx(r.Context()),
		"error", err,
	)
	writeJSON(w, http.StatusInternalServerError, errorBody{
		Error: errorDetail{Code: "INTERNAL", Message: "internal server error"},
	})
}

// decodeJSON decodes the request body into v, rejecting unknown fields.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return apperr.BadRequest("invalid request body: %v", err)
	}
	return nil
}

// ownerID returns the authenticated user's id. RequireUser guarantees an
// identity is present on every route that reaches here.
func ownerID(r *http.Request) int64 {
	identity := middleware.IdentityFromCtx(r.Context())
	if identity == nil {
		return 0
	}
	return identity.UserID
}
