// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"linkstash/internal/apperr"
	"linkstash/internal/service"
)

// Categories handles the /categories routes.
type Categories struct {
	svc *service.Service
}

// NewCategories creates the categories handler group.
func NewCategories(svc *service.Service) *Categories {
	return &Categories{svc: svc}
}

type addCategoryRequest struct {
	Name     string `json:"name"`
	ParentID *int64 `json:"parent_id"`
}

// Add explicitly creates a category. Duplicates and top-level overflow are
// rejected with Conflict.
func (h *Categories) Add(w http.ResponseWriter, r *http.Request) {
	var req addCategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if err := validateCategoryName(req.Name); err != nil {
		writeError(w, r, err)
		return
	}
	if req.ParentID != nil && *req.ParentID <= 0 {
		writeError(w, r, apperr.BadRequest("invalid parent_id"))
		return
	}

	created, err := h.svc.AddCategory(r.Context(), ownerID(r), req.Name, req.ParentID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

type updateCategoryRequest struct {
	OriginalName string `json:"original_name"`
	Name         string `json:"name"`
}

// Update renames a category, repointing its contents at the replacement.
func (h *Categories) Update(w http.ResponseWriter, r *http.Request) {
	var req updateCategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if err := validateCategoryName(req.OriginalName); err != nil {
		writeError(w, r, apperr.BadRequest("original category name is required"))
		return
	}
	if err := validateCategoryName(req.Name); err != nil {
		writeError(w, r, err)
		return
	}

	updated, err := h.svc.UpdateCategory(r.Context(), ownerID(r), req.OriginalName, req.Name)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Delete removes a category. With ?deleteContentFlag=true its contents are
// deleted too, otherwise they are detached and kept.
func (h *Categories) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	cascade := r.URL.Query().Get("deleteContentFlag") == "true"

	if err := h.svc.DeleteCategory(r.Context(), ownerID(r), id, cascade); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

// List returns the user's category tree with per-category content counts.
func (h *Categories) List(w http.ResponseWriter, r *http.Request) {
	cats, err := h.svc.ListCategories(r.Context(), ownerID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cats)
}

// Frequent returns the user's most populated categories.
func (h *Categories) Frequent(w http.ResponseWriter, r *http.Request) {
	cats, err := h.svc.FrequentCategories(r.Context(), ownerID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cats)
}

// AutoCategorize suggests one of the user's category names for ?link=.
func (h *Categories) AutoCategorize(w http.ResponseWriter, r *http.Request) {
	link := r.URL.Query().Get("link")
	if err := validateLink(link); err != nil {
		writeError(w, r, err)
		return
	}

	suggestion, err := h.svc.AutoCategorize(r.Context(), ownerID(r), link)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"category": suggestion})
}
