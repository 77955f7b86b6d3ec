// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"time"

	"github.com/olegiv/sitetrack/internal/util"
)

// SettingsID is the fixed primary key of the settings singleton. Exactly one
// row ever exists; upserts target this id only.
const SettingsID = 1

// Settings is application-wide configuration stored in the database:
// the shared folder root, SMTP credentials and the two shared passwords the
// UI checks client-side before showing gated screens.
type Settings struct {
	ID                int64           `json:"id"`
	RootDirectory     util.NullString `json:"root_directory"`
	AutoCreateFolders bool            `json:"auto_create_folders"`
	SMTPHost          util.NullString `json:"smtp_host"`
	SMTPPort          int64           `json:"smtp_port"`
	SMTPUser          util.NullString `json:"smtp_user"`
	SMTPPass          util.NullString `json:"smtp_pass"`
	AdminPassword     util.NullString `json:"admin_password"`
	SettingsPassword  util.NullString `json:"settings_password"`
	UpdatedAt         time.Time       `json:"updated_at"`
}
