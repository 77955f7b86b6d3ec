// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/olegiv/sitetrack/internal/util"
)

// maxUploadSize caps PDF uploads at 25 MB.
const maxUploadSize = 25 << 20

// UploadProposalPDF handles POST /api/v1/projects/{id}/proposal.
func (h *Handler) UploadProposalPDF(w http.ResponseWriter, r *http.Request) {
	h.uploadProjectPDF(w, r, "proposal", h.queries.SetProposalPDFPath)
}

// UploadWindowOrderPDF handles POST /api/v1/projects/{id}/window-order.
func (h *Handler) UploadWindowOrderPDF(w http.ResponseWriter, r *http.Request) {
	h.uploadProjectPDF(w, r, "window-order", h.queries.SetWindowOrderPDFPath)
}

// uploadProjectPDF validates and stores a single PDF from a multipart form,
// then records its path on the project row. Validation happens before any
// byte is written to disk.
func (h *Handler) uploadProjectPDF(w http.ResponseWriter, r *http.Request, kind string,
	setPath func(ctx context.Context, id int64, path string) error) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	// Reject before touching the filesystem when the project is missing.
	if _, err := h.queries.GetProject(r.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Project not found")
		} else {
			slog.Error("failed to load project for upload", "id", id, "error", err)
			WriteInternalError(w, "Failed to retrieve project")
		}
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		WriteBadRequest(w, "Invalid multipart form or file too large")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		WriteBadRequest(w, "Missing file field")
		return
	}
	defer file.Close()

	if !isPDF(header) {
		WriteBadRequest(w, "Only PDF files are accepted")
		return
	}

	safeName, err := util.SanitizeFilename(header.Filename)
	if err != nil {
		WriteBadRequest(w, "Invalid filename")
		return
	}

	if err := os.MkdirAll(h.cfg.UploadsDir, 0o755); err != nil {
		slog.Error("failed to create uploads directory", "dir", h.cfg.UploadsDir, "error", err)
		WriteInternalError(w, "Failed to store file")
		return
	}

	storedName := uuid.New().String() + "-" + safeName
	destPath := filepath.Join(h.cfg.UploadsDir, storedName)
	if err := util.ValidatePathWithinBase(h.cfg.UploadsDir, destPath); err != nil {
		WriteBadRequest(w, "Invalid filename")
		return
	}

	dst, err := os.Create(destPath)
	if err != nil {
		slog.Error("failed to create upload file", "path", destPath, "error", err)
		WriteInternalError(w, "Failed to store file")
		return
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		os.Remove(destPath)
		slog.Error("failed to write upload file", "path", destPath, "error", err)
		WriteInternalError(w, "Failed to store file")
		return
	}

	if err := setPath(r.Context(), id, destPath); err != nil {
		os.Remove(destPath)
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Project not found")
		} else {
			slog.Error("failed to record upload path", "id", id, "kind", kind, "error", err)
			WriteInternalError(w, "Failed to store file")
		}
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{"path": destPath, "filename": storedName})
}

// isPDF accepts a file by declared content type or .pdf extension.
func isPDF(header *multipart.FileHeader) bool {
	ct := header.Header.Get("Content-Type")
	if strings.EqualFold(ct, "application/pdf") {
		return true
	}
	return strings.EqualFold(filepath.Ext(header.Filename), ".pdf")
}

// ServeProposalPDF handles GET /api/v1/projects/{id}/proposal.
func (h *Handler) ServeProposalPDF(w http.ResponseWriter, r *http.Request) {
	h.serveProjectPDF(w, r, func(p pdfPaths) string { return p.proposal })
}

// ServeWindowOrderPDF handles GET /api/v1/projects/{id}/window-order.
func (h *Handler) ServeWindowOrderPDF(w http.ResponseWriter, r *http.Request) {
	h.serveProjectPDF(w, r, func(p pdfPaths) string { return p.windowOrder })
}

type pdfPaths struct {
	proposal    string
	windowOrder string
}

// serveProjectPDF streams a stored PDF back by project id. Missing record
// path and missing file on disk are both 404s.
func (h *Handler) serveProjectPDF(w http.ResponseWriter, r *http.Request, pick func(pdfPaths) string) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	project, err := h.queries.GetProject(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Project not found")
		} else {
			slog.Error("failed to load project for download", "id", id, "error", err)
			WriteInternalError(w, "Failed to retrieve project")
		}
		return
	}

	path := pick(pdfPaths{
		proposal:    project.ProposalPDFPath.String,
		windowOrder: project.WindowOrderPDFPath.String,
	})
	if path == "" {
		WriteNotFound(w, "No file on record for this project")
		return
	}
	if _, err := os.Stat(path); err != nil {
		WriteNotFound(w, "File not found on disk")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "inline; filename=\""+filepath.Base(path)+"\"")
	http.ServeFile(w, r, path)
}
