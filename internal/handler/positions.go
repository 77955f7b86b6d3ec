// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"
)

// PositionRequest is the request body for creating or updating a position.
type PositionRequest struct {
	Name string `json:"name"`
}

// ListPositions handles GET /api/v1/positions.
func (h *Handler) ListPositions(w http.ResponseWriter, r *http.Request) {
	positions, err := h.queries.ListPositions(r.Context())
	if err != nil {
		slog.Error("failed to list positions", "error", err)
		WriteInternalError(w, "Failed to list positions")
		return
	}
	WriteJSON(w, http.StatusOK, positions)
}

// CreatePosition handles POST /api/v1/positions.
func (h *Handler) CreatePosition(w http.ResponseWriter, r *http.Request) {
	var req PositionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		WriteBadRequest(w, "Position name is required")
		return
	}

	position, err := h.queries.CreatePosition(r.Context(), req.Name)
	if err != nil {
		slog.Error("failed to create position", "error", err)
		WriteInternalError(w, "Failed to create position")
		return
	}
	WriteJSON(w, http.StatusCreated, position)
}

// UpdatePosition handles PUT /api/v1/positions/{id}.
func (h *Handler) UpdatePosition(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	var req PositionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		WriteBadRequest(w, "Position name is required")
		return
	}

	position, err := h.queries.UpdatePosition(r.Context(), id, req.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Position not found")
		} else {
			slog.Error("failed to update position", "id", id, "error", err)
			WriteInternalError(w, "Failed to update position")
		}
		return
	}
	WriteJSON(w, http.StatusOK, position)
}

// DeletePosition handles DELETE /api/v1/positions/{id}. Join rows are
// removed by the cascade on the join table.
func (h *Handler) DeletePosition(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	if err := h.queries.DeletePosition(r.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Position not found")
		} else {
			slog.Error("failed to delete position", "id", id, "error", err)
			WriteInternalError(w, "Failed to delete position")
		}
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
