// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"time"

	"github.com/olegiv/sitetrack/internal/util"
)

// EmailTemplate is a reusable message shape, independent of any project.
// ToAddresses is stored as serialized text in the database and materialized
// to a slice on read.
type EmailTemplate struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	ToAddresses []string        `json:"to_addresses"`
	FromAddress util.NullString `json:"from_address"`
	Subject     util.NullString `json:"subject"`
	Body        util.NullString `json:"body"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
