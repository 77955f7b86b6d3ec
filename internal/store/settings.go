// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/olegiv/sitetrack/internal/model"
)

// GetSettings returns the settings singleton. If no row has been saved yet
// it returns a zero-value row with the fixed id, not an error.
func (q *Queries) GetSettings(ctx context.Context) (model.Settings, error) {
	var s model.Settings
	row := q.db.QueryRowContext(ctx, `
		SELECT id, root_directory, auto_create_folders, smtp_host, smtp_port,
			smtp_user, smtp_pass, admin_password, settings_password, updated_at
		FROM settings WHERE id = ?`, model.SettingsID)
	err := row.Scan(&s.ID, &s.RootDirectory, &s.AutoCreateFolders, &s.SMTPHost, &s.SMTPPort,
		&s.SMTPUser, &s.SMTPPass, &s.AdminPassword, &s.SettingsPassword, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Settings{ID: model.SettingsID, SMTPPort: 587}, nil
	}
	if err != nil {
		return model.Settings{}, fmt.Errorf("reading settings: %w", err)
	}
	return s, nil
}

// UpsertSettingsParams holds the writable settings fields.
type UpsertSettingsParams struct {
	RootDirectory     sql.NullString
	AutoCreateFolders bool
	SMTPHost          sql.NullString
	SMTPPort          int64
	SMTPUser          sql.NullString
	SMTPPass          sql.NullString
	AdminPassword     sql.NullString
	SettingsPassword  sql.NullString
}

// UpsertSettings writes the settings singleton. The statement always targets
// the fixed id, so a second write updates rather than duplicates.
func (q *Queries) UpsertSettings(ctx context.Context, p UpsertSettingsParams) (model.Settings, error) {
	if p.SMTPPort == 0 {
		p.SMTPPort = 587
	}

	_, err := q.db.ExecContext(ctx, `
		INSERT INTO settings (id, root_directory, auto_create_folders, smtp_host, smtp_port,
			smtp_user, smtp_pass, admin_password, settings_password, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			root_directory = excluded.root_directory,
			auto_create_folders = excluded.auto_create_folders,
			smtp_host = excluded.smtp_host,
			smtp_port = excluded.smtp_port,
			smtp_user = excluded.smtp_user,
			smtp_pass = excluded.smtp_pass,
			admin_password = excluded.admin_password,
			settings_password = excluded.settings_password,
			updated_at = excluded.updated_at`,
		model.SettingsID, p.RootDirectory, p.AutoCreateFolders, p.SMTPHost, p.SMTPPort,
		p.SMTPUser, p.SMTPPass, p.AdminPassword, p.SettingsPassword, time.Now())
	if err != nil {
		return model.Settings{}, fmt.Errorf("saving settings: %w", err)
	}

	return q.GetSettings(ctx)
}
