// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler provides the JSON API handlers.
package handler

import (
	"database/sql"
	"time"

	"github.com/olegiv/sitetrack/internal/config"
	"github.com/olegiv/sitetrack/internal/service"
	"github.com/olegiv/sitetrack/internal/store"
)

// Handler holds the dependencies shared by all API handlers.
type Handler struct {
	db        *sql.DB
	queries   *store.Queries
	cfg       *config.Config
	folders   *service.FolderService
	mailer    *service.Mailer
	startTime time.Time
}

// New creates a Handler wired to the given database and configuration.
func New(db *sql.DB, cfg *config.Config) *Handler {
	queries := store.New(db)
	return &Handler{
		db:      db,
		queries: queries,
		cfg:     cfg,
		folders: service.NewFolderService(),
		mailer: service.NewMailer(queries, service.SMTPDefaults{
			Host: cfg.SMTPHost,
			Port: cfg.SMTPPort,
			User: cfg.SMTPUser,
			Pass: cfg.SMTPPass,
			From: cfg.SMTPFrom,
		}),
		startTime: time.Now(),
	}
}
