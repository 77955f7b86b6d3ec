// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// defaultPositions are the position tags a fresh install starts with.
var defaultPositions = []string{
	"Sales Team",
	"Drafting",
	"Site Supervisor",
	"Admin",
}

// Seed creates initial data in the database. It is idempotent: positions
// that already exist are left alone.
func Seed(ctx context.Context, db *sql.DB, doSeed bool) error {
	if !doSeed {
		return nil
	}

	queries := New(db)
	existing, err := queries.ListPositions(ctx)
	if err != nil {
		return fmt.Errorf("checking positions: %w", err)
	}

	have := make(map[string]bool, len(existing))
	for _, p := range existing {
		have[p.Name] = true
	}

	for _, name := range defaultPositions {
		if have[name] {
			continue
		}
		if _, err := queries.CreatePosition(ctx, name); err != nil {
			return fmt.Errorf("seeding position %q: %w", name, err)
		}
		slog.Info("seeded position", "name", name)
	}

	return nil
}
