// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"

	"github.com/olegiv/sitetrack/internal/store"
	"github.com/olegiv/sitetrack/internal/util"
)

// SettingsRequest is the request body for updating the settings singleton.
type SettingsRequest struct {
	RootDirectory     string `json:"root_directory"`
	AutoCreateFolders bool   `json:"auto_create_folders"`
	SMTPHost          string `json:"smtp_host"`
	SMTPPort          int64  `json:"smtp_port"`
	SMTPUser          string `json:"smtp_user"`
	SMTPPass          string `json:"smtp_pass"`
	AdminPassword     string `json:"admin_password"`
	SettingsPassword  string `json:"settings_password"`
}

// GetSettings handles GET /api/v1/settings. A missing row reads as the
// zero settings, never as an error.
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.queries.GetSettings(r.Context())
	if err != nil {
		slog.Error("failed to get settings", "error", err)
		WriteInternalError(w, "Failed to retrieve settings")
		return
	}
	WriteJSON(w, http.StatusOK, settings)
}

// UpdateSettings handles PUT /api/v1/settings.
func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req SettingsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	settings, err := h.queries.UpsertSettings(r.Context(), store.UpsertSettingsParams{
		RootDirectory:     util.NullStringFromValue(req.RootDirectory),
		AutoCreateFolders: req.AutoCreateFolders,
		SMTPHost:          util.NullStringFromValue(req.SMTPHost),
		SMTPPort:          req.SMTPPort,
		SMTPUser:          util.NullStringFromValue(req.SMTPUser),
		SMTPPass:          util.NullStringFromValue(req.SMTPPass),
		AdminPassword:     util.NullStringFromValue(req.AdminPassword),
		SettingsPassword:  util.NullStringFromValue(req.SettingsPassword),
	})
	if err != nil {
		slog.Error("failed to update settings", "error", err)
		WriteInternalError(w, "Failed to update settings")
		return
	}
	WriteJSON(w, http.StatusOK, settings)
}
