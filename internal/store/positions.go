// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/olegiv/sitetrack/internal/model"
)

// CreatePosition inserts a named position tag.
func (q *Queries) CreatePosition(ctx context.Context, name string) (model.Position, error) {
	now := time.Now()
	res, err := q.db.ExecContext(ctx,
		"INSERT INTO positions (name, created_at) VALUES (?, ?)", name, now)
	if err != nil {
		return model.Position{}, fmt.Errorf("creating position: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Position{}, err
	}
	return model.Position{ID: id, Name: name, CreatedAt: now}, nil
}

// GetPosition returns one position by id, or sql.ErrNoRows.
func (q *Queries) GetPosition(ctx context.Context, id int64) (model.Position, error) {
	var p model.Position
	row := q.db.QueryRowContext(ctx, "SELECT id, name, created_at FROM positions WHERE id = ?", id)
	err := row.Scan(&p.ID, &p.Name, &p.CreatedAt)
	return p, err
}

// ListPositions returns all positions ordered by name.
func (q *Queries) ListPositions(ctx context.Context) ([]model.Position, error) {
	rows, err := q.db.QueryContext(ctx, "SELECT id, name, created_at FROM positions ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("listing positions: %w", err)
	}
	defer rows.Close()

	var positions []model.Position
	for rows.Next() {
		var p model.Position
		if err := rows.Scan(&p.ID, &p.Name, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning position: %w", err)
		}
		positions = append(positions, p)
	}
	return positions, rows.Err()
}

// UpdatePosition renames a position. Returns sql.ErrNoRows if nothing matched.
func (q *Queries) UpdatePosition(ctx context.Context, id int64, name string) (model.Position, error) {
	res, err := q.db.ExecContext(ctx, "UPDATE positions SET name = ? WHERE id = ?", name, id)
	if err != nil {
		return model.Position{}, fmt.Errorf("updating position %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return model.Position{}, err
	}
	if affected == 0 {
		return model.Position{}, sql.ErrNoRows
	}
	return q.GetPosition(ctx, id)
}

// DeletePosition removes a position; join rows cascade. Returns
// sql.ErrNoRows if nothing matched.
func (q *Queries) DeletePosition(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx, "DELETE FROM positions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting position %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
