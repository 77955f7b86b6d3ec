// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"time"

	"github.com/olegiv/sitetrack/internal/util"
)

// User is a staff member. Positions are attached via a join table and
// materialized on read.
type User struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Email     util.NullString `json:"email"`
	Phone     util.NullString `json:"phone"`
	Positions []Position      `json:"positions"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Position is a named tag such as "Sales Team", used to filter which staff
// show up in pickers elsewhere in the UI.
type Position struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
