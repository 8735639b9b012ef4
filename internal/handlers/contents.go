// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"linkstash/internal/apperr"
	"linkstash/internal/service"
)

// Contents handles the /contents routes.
type Contents struct {
	svc *service.Service
}

// NewContents creates the contents handler group.
func NewContents(svc *service.Service) *Contents {
	return &Contents{svc: svc}
}

type addContentRequest struct {
	Link         string     `json:"link"`
	Title        *string    `json:"title"`
	Comment      *string    `json:"comment"`
	Deadline     *time.Time `json:"deadline"`
	Favorite     bool       `json:"favorite"`
	CategoryName *string    `json:"category_name"`
}

// Add saves a single link, resolving or creating the named category in the
// same transaction.
func (h *Contents) Add(w http.ResponseWriter, r *http.Request) {
	var req addContentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if err := validateLink(req.Link); err != nil {
		writeError(w, r, err)
		return
	}
	if err := validateTitle(req.Title); err != nil {
		writeError(w, r, err)
		return
	}
	if err := validateComment(req.Comment); err != nil {
		writeError(w, r, err)
		return
	}
	if req.CategoryName != nil && *req.CategoryName != "" {
		if err := validateCategoryName(*req.CategoryName); err != nil {
			writeError(w, r, err)
			return
		}
	}

	created, err := h.svc.AddContent(r.Context(), ownerID(r), service.AddContentRequest{
		Link:         req.Link,
		Title:        req.Title,
		Comment:      req.Comment,
		Deadline:     req.Deadline,
		Favorite:     req.Favorite,
		CategoryName: req.CategoryName,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

type addMultipleRequest struct {
	Links []string `json:"links"`
}

// AddMultiple saves a batch of uncategorized links, all or nothing.
func (h *Contents) AddMultiple(w http.ResponseWriter, r *http.Request) {
	var req addMultipleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if len(req.Links) == 0 {
		writeError(w, r, apperr.BadRequest("links must not be empty"))
		return
	}
	if len(req.Links) > maxBatchLinks {
		writeError(w, r, apperr.BadRequest("too many links (max %d per batch)", maxBatchLinks))
		return
	}
	for _, link := range req.Links {
		if err := validateLink(link); err != nil {
			writeError(w, r, err)
			return
		}
	}

	created, err := h.svc.AddMultipleContents(r.Context(), ownerID(r), req.Links)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

type updateContentRequest struct {
	ID           int64      `json:"id"`
	Link         *string    `json:"link"`
	Title        *string    `json:"title"`
	Description  *string    `json:"description"`
	Comment      *string    `json:"comment"`
	Deadline     *time.Time `json:"deadline"`
	Favorite     *bool      `json:"favorite"`
	CategoryName *string    `json:"category_name"`
}

// Update merges field updates into an existing content.
func (h *Contents) Update(w http.ResponseWriter, r *http.Request) {
	var req updateContentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if req.ID <= 0 {
		writeError(w, r, apperr.BadRequest("id is required"))
		return
	}
	if req.Link != nil {
		if err := validateLink(*req.Link); err != nil {
			writeError(w, r, err)
			return
		}
	}
	if err := validateTitle(req.Title); err != nil {
		writeError(w, r, err)
		return
	}
	if err := validateComment(req.Comment); err != nil {
		writeError(w, r, err)
		return
	}
	if req.CategoryName != nil && *req.CategoryName != "" {
		if err := validateCategoryName(*req.CategoryName); err != nil {
			writeError(w, r, err)
			return
		}
	}

	updated, err := h.svc.UpdateContent(r.Context(), ownerID(r), service.UpdateContentRequest{
		ID:           req.ID,
		Link:         req.Link,
		Title:        req.Title,
		Description:  req.Description,
		Comment:      req.Comment,
		Deadline:     req.Deadline,
		Favorite:     req.Favorite,
		CategoryName: req.CategoryName,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// ToggleFavorite flips the favorite flag on a content.
func (h *Contents) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	updated, err := h.svc.ToggleFavorite(r.Context(), ownerID(r), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Delete removes a content.
func (h *Contents) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.svc.DeleteContent(r.Context(), ownerID(r), id); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

// List returns the user's contents, optionally filtered by ?category=.
// "category=0" filters to uncategorized contents.
func (h *Contents) List(w http.ResponseWriter, r *http.Request) {
	var categoryID *int64
	if raw := r.URL.Query().Get("category"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id < 0 {
			writeError(w, r, apperr.BadRequest("invalid category filter %q", raw))
			return
		}
		categoryID = &id
	}

	contents, err := h.svc.ListContents(r.Context(), ownerID(r), categoryID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, contents)
}

// ListFavorites returns the user's favorite contents.
func (h *Contents) ListFavorites(w http.ResponseWriter, r *http.Request) {
	contents, err := h.svc.ListFavorites(r.Context(), ownerID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, contents)
}

// ReminderCount returns the number of contents with an upcoming deadline.
func (h *Contents) ReminderCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.svc.ReminderCount(r.Context(), ownerID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"count": count})
}

// Summarize produces a short AI summary of a saved content.
func (h *Contents) Summarize(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	summary, err := h.svc.Summarize(r.Context(), ownerID(r), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"summary": summary})
}

// SendReminders mails the user a digest of contents due in the next day.
func (h *Contents) SendReminders(w http.ResponseWriter, r *http.Request) {
	sent, err := h.svc.SendReminders(r.Context(), ownerID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"sent": sent})
}

// pathID parses a positive int64 URL parameter.
func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.BadRequest("invalid %s", name)
	}
	return id, nil
}
