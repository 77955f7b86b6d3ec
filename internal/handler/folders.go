// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/olegiv/sitetrack/internal/monitoring"
	"github.com/olegiv/sitetrack/internal/service"
)

// CreateFolderRequest is the request body for provisioning a project folder.
// Year and state locate the template directory under the root.
type CreateFolderRequest struct {
	Path          string `json:"path"`
	RootDirectory string `json:"rootDirectory"`
	Year          string `json:"year"`
	State         string `json:"state"`
}

// CreateFolder handles POST /api/v1/folders. Creation is idempotent: an
// existing populated directory is reported back, not failed.
func (h *Handler) CreateFolder(w http.ResponseWriter, r *http.Request) {
	var req CreateFolderRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if strings.TrimSpace(req.Path) == "" {
		WriteBadRequest(w, "Folder path is required")
		return
	}

	var tmpl *service.TemplateRef
	if req.RootDirectory != "" && req.Year != "" {
		tmpl = &service.TemplateRef{
			Root:  req.RootDirectory,
			Year:  req.Year,
			State: req.State,
		}
	}

	result, err := h.folders.Ensure(req.Path, tmpl)
	if err != nil {
		slog.Error("folder provisioning failed", "path", req.Path, "error", err)
		monitoring.FoldersProvisioned.WithLabelValues("error").Inc()
		WriteInternalError(w, err.Error())
		return
	}
	monitoring.FoldersProvisioned.WithLabelValues("ok").Inc()
	WriteJSON(w, http.StatusOK, result)
}
