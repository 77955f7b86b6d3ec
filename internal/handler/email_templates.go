// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/olegiv/sitetrack/internal/store"
	"github.com/olegiv/sitetrack/internal/util"
)

// EmailTemplateRequest is the request body for creating or updating a
// reusable message template.
type EmailTemplateRequest struct {
	Name        string   `json:"name"`
	ToAddresses []string `json:"to_addresses"`
	FromAddress string   `json:"from_address"`
	Subject     string   `json:"subject"`
	Body        string   `json:"body"`
}

func (req *EmailTemplateRequest) toParams() store.EmailTemplateParams {
	return store.EmailTemplateParams{
		Name:        req.Name,
		ToAddresses: req.ToAddresses,
		FromAddress: util.NullStringFromValue(req.FromAddress),
		Subject:     util.NullStringFromValue(req.Subject),
		Body:        util.NullStringFromValue(req.Body),
	}
}

// ListEmailTemplates handles GET /api/v1/email-templates.
func (h *Handler) ListEmailTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := h.queries.ListEmailTemplates(r.Context())
	if err != nil {
		slog.Error("failed to list email templates", "error", err)
		WriteInternalError(w, "Failed to list email templates")
		return
	}
	WriteJSON(w, http.StatusOK, templates)
}

// GetEmailTemplate handles GET /api/v1/email-templates/{id}.
func (h *Handler) GetEmailTemplate(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	template, err := h.queries.GetEmailTemplate(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Email template not found")
		} else {
			slog.Error("failed to get email template", "id", id, "error", err)
			WriteInternalError(w, "Failed to retrieve email template")
		}
		return
	}
	WriteJSON(w, http.StatusOK, template)
}

// CreateEmailTemplate handles POST /api/v1/email-templates.
func (h *Handler) CreateEmailTemplate(w http.ResponseWriter, r *http.Request) {
	var req EmailTemplateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		WriteBadRequest(w, "Template name is required")
		return
	}

	template, err := h.queries.CreateEmailTemplate(r.Context(), req.toParams())
	if err != nil {
		slog.Error("failed to create email template", "error", err)
		WriteInternalError(w, "Failed to create email template")
		return
	}
	WriteJSON(w, http.StatusCreated, template)
}

// UpdateEmailTemplate handles PUT /api/v1/email-templates/{id}.
func (h *Handler) UpdateEmailTemplate(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	var req EmailTemplateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		WriteBadRequest(w, "Template name is required")
		return
	}

	template, err := h.queries.UpdateEmailTemplate(r.Context(), id, req.toParams())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Email template not found")
		} else {
			slog.Error("failed to update email template", "id", id, "error", err)
			WriteInternalError(w, "Failed to update email template")
		}
		return
	}
	WriteJSON(w, http.StatusOK, template)
}

// DeleteEmailTemplate handles DELETE /api/v1/email-templates/{id}.
func (h *Handler) DeleteEmailTemplate(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	if err := h.queries.DeleteEmailTemplate(r.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Email template not found")
		} else {
			slog.Error("failed to delete email template", "id", id, "error", err)
			WriteInternalError(w, "Failed to delete email template")
		}
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
