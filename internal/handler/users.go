// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/olegiv/sitetrack/internal/model"
	"github.com/olegiv/sitetrack/internal/store"
	"github.com/olegiv/sitetrack/internal/util"
)

// UserRequest is the request body for creating or updating a user.
type UserRequest struct {
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Phone       string  `json:"phone"`
	PositionIDs []int64 `json:"position_ids"`
}

// ListUsers handles GET /api/v1/users. The optional position query filter
// returns only users holding that position, used by the sales-rep picker.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	var users []model.User
	var err error

	if position := strings.TrimSpace(r.URL.Query().Get("position")); position != "" {
		users, err = h.queries.ListUsersByPosition(r.Context(), position)
	} else {
		users, err = h.queries.ListUsers(r.Context())
	}
	if err != nil {
		slog.Error("failed to list users", "error", err)
		WriteInternalError(w, "Failed to list users")
		return
	}
	WriteJSON(w, http.StatusOK, users)
}

// GetUser handles GET /api/v1/users/{id}.
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	user, err := h.queries.GetUser(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "User not found")
		} else {
			slog.Error("failed to get user", "id", id, "error", err)
			WriteInternalError(w, "Failed to retrieve user")
		}
		return
	}
	WriteJSON(w, http.StatusOK, user)
}

// CreateUser handles POST /api/v1/users.
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req UserRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		WriteBadRequest(w, "User name is required")
		return
	}

	user, err := h.queries.CreateUser(r.Context(), h.db, store.CreateUserParams{
		Name:        req.Name,
		Email:       util.NullStringFromValue(req.Email),
		Phone:       util.NullStringFromValue(req.Phone),
		PositionIDs: req.PositionIDs,
	})
	if err != nil {
		slog.Error("failed to create user", "error", err)
		WriteInternalError(w, "Failed to create user")
		return
	}
	WriteJSON(w, http.StatusCreated, user)
}

// UpdateUser handles PUT /api/v1/users/{id}.
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	var req UserRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		WriteBadRequest(w, "User name is required")
		return
	}

	user, err := h.queries.UpdateUser(r.Context(), h.db, id, store.UpdateUserParams{
		Name:        req.Name,
		Email:       util.NullStringFromValue(req.Email),
		Phone:       util.NullStringFromValue(req.Phone),
		PositionIDs: req.PositionIDs,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "User not found")
		} else {
			slog.Error("failed to update user", "id", id, "error", err)
			WriteInternalError(w, "Failed to update user")
		}
		return
	}
	WriteJSON(w, http.StatusOK, user)
}

// DeleteUser handles DELETE /api/v1/users/{id}.
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	if err := h.queries.DeleteUser(r.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "User not found")
		} else {
			slog.Error("failed to delete user", "id", id, "error", err)
			WriteInternalError(w, "Failed to delete user")
		}
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
