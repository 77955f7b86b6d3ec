// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/olegiv/sitetrack/internal/monitoring"
	"github.com/olegiv/sitetrack/internal/service"
	"github.com/olegiv/sitetrack/internal/store"
	"github.com/olegiv/sitetrack/internal/util"
)

// CreateProjectRequest is the request body for creating a project.
type CreateProjectRequest struct {
	Name           string `json:"name"`
	Suburb         string `json:"suburb"`
	Street         string `json:"street"`
	State          string `json:"state"`
	Stream         string `json:"stream"`
	Classification string `json:"classification"`
	ClientName     string `json:"client_name"`
	ClientEmail    string `json:"client_email"`
	ClientPhone    string `json:"client_phone"`
	Notes          string `json:"notes"`
}

// ListProjects handles GET /api/v1/projects with optional q, state, stream,
// status and year query filters.
func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	params := store.ListProjectsParams{
		Query:  strings.TrimSpace(r.URL.Query().Get("q")),
		State:  r.URL.Query().Get("state"),
		Stream: r.URL.Query().Get("stream"),
		Status: r.URL.Query().Get("status"),
	}
	if yearStr := r.URL.Query().Get("year"); yearStr != "" {
		year, err := strconv.ParseInt(yearStr, 10, 64)
		if err != nil {
			WriteBadRequest(w, "Invalid year filter")
			return
		}
		params.Year = year
	}

	projects, err := h.queries.ListProjects(r.Context(), params)
	if err != nil {
		slog.Error("failed to list projects", "error", err)
		WriteInternalError(w, "Failed to list projects")
		return
	}
	WriteJSON(w, http.StatusOK, projects)
}

// GetProject handles GET /api/v1/projects/{id}.
func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	project, err := h.queries.GetProject(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Project not found")
		} else {
			slog.Error("failed to get project", "id", id, "error", err)
			WriteInternalError(w, "Failed to retrieve project")
		}
		return
	}
	WriteJSON(w, http.StatusOK, project)
}

// CreateProject handles POST /api/v1/projects.
func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req CreateProjectRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		WriteBadRequest(w, "Project name is required")
		return
	}

	project, err := h.queries.CreateProject(r.Context(), store.CreateProjectParams{
		Name:           req.Name,
		Suburb:         util.NullStringFromValue(req.Suburb),
		Street:         util.NullStringFromValue(req.Street),
		State:          util.NullStringFromValue(req.State),
		Stream:         util.NullStringFromValue(req.Stream),
		Classification: util.NullStringFromValue(req.Classification),
		ClientName:     util.NullStringFromValue(req.ClientName),
		ClientEmail:    util.NullStringFromValue(req.ClientEmail),
		ClientPhone:    util.NullStringFromValue(req.ClientPhone),
		Notes:          util.NullStringFromValue(req.Notes),
	})
	if err != nil {
		slog.Error("failed to create project", "error", err)
		WriteInternalError(w, "Failed to create project")
		return
	}

	h.autoProvisionFolder(r, project.ID)

	WriteJSON(w, http.StatusCreated, project)
}

// autoProvisionFolder creates the project directory on the shared drive when
// the settings row enables it. Failure is logged, never surfaced: folder
// provisioning must not fail a project create.
func (h *Handler) autoProvisionFolder(r *http.Request, projectID int64) {
	ctx := r.Context()

	settings, err := h.queries.GetSettings(ctx)
	if err != nil || !settings.AutoCreateFolders {
		return
	}
	root := strings.TrimSpace(settings.RootDirectory.String)
	if root == "" {
		root = h.cfg.FolderRoot
	}
	if root == "" {
		return
	}

	project, err := h.queries.GetProject(ctx, projectID)
	if err != nil {
		return
	}

	path := service.ProjectFolderPath(root, project.Year, project.State.String,
		project.Suburb.String, project.Street.String)
	if _, err := h.folders.Ensure(path, &service.TemplateRef{
		Root:  root,
		Year:  strconv.FormatInt(project.Year, 10),
		State: project.State.String,
	}); err != nil {
		slog.Error("auto folder provisioning failed", "project_id", projectID, "path", path, "error", err)
		monitoring.FoldersProvisioned.WithLabelValues("error").Inc()
		return
	}
	monitoring.FoldersProvisioned.WithLabelValues("ok").Inc()
}

// UpdateProject handles PUT /api/v1/projects/{id}. The request body is a
// sparse patch: absent keys leave columns untouched, null or empty values
// clear them, anything else is trimmed and stored.
func (h *Handler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	var patch store.UpdateProjectParams
	if !decodeJSON(w, r, &patch) {
		return
	}

	project, err := h.queries.UpdateProject(r.Context(), id, patch)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Project not found")
		} else {
			slog.Error("failed to update project", "id", id, "error", err)
			WriteInternalError(w, "Failed to update project")
		}
		return
	}
	WriteJSON(w, http.StatusOK, project)
}

// DeleteProject handles DELETE /api/v1/projects/{id}.
func (h *Handler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	if err := h.queries.DeleteProject(r.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Project not found")
		} else {
			slog.Error("failed to delete project", "id", id, "error", err)
			WriteInternalError(w, "Failed to delete project")
		}
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// AppendProjectLogRequest is the request body for appending a log line.
type AppendProjectLogRequest struct {
	Line string `json:"line"`
}

// AppendProjectLog handles POST /api/v1/projects/{id}/log.
func (h *Handler) AppendProjectLog(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	var req AppendProjectLogRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.Line = strings.TrimSpace(req.Line)
	if req.Line == "" {
		WriteBadRequest(w, "Log line is required")
		return
	}

	if err := h.queries.AppendProjectLog(r.Context(), id, req.Line); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Project not found")
		} else {
			slog.Error("failed to append project log", "id", id, "error", err)
			WriteInternalError(w, "Failed to append project log")
		}
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// SiteVisitEntry is one element of the bulk site-visit scheduling request.
type SiteVisitEntry struct {
	ProjectID int64  `json:"projectId"`
	Date      string `json:"date"`
	Period    string `json:"period"`
}

// BulkSiteVisitResult reports how many entries were applied.
type BulkSiteVisitResult struct {
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
}

// BulkScheduleSiteVisits handles POST /api/v1/projects/site-visits. Each
// entry is applied as an independent update; entries without a project id
// or naming a missing project are counted as skipped, not failed.
func (h *Handler) BulkScheduleSiteVisits(w http.ResponseWriter, r *http.Request) {
	var entries []SiteVisitEntry
	if !decodeJSON(w, r, &entries) {
		return
	}

	var result BulkSiteVisitResult
	for _, e := range entries {
		if e.ProjectID <= 0 {
			result.Skipped++
			continue
		}
		err := h.queries.ScheduleSiteVisit(r.Context(), e.ProjectID, strings.TrimSpace(e.Date), strings.TrimSpace(e.Period))
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				result.Skipped++
				continue
			}
			slog.Error("failed to schedule site visit", "project_id", e.ProjectID, "error", err)
			WriteInternalError(w, "Failed to schedule site visits")
			return
		}
		result.Updated++
	}
	WriteJSON(w, http.StatusOK, result)
}
