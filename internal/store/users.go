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

// CreateUserParams holds the writable user fields plus position assignments.
type CreateUserParams struct {
	Name        string
	Email       sql.NullString
	Phone       sql.NullString
	PositionIDs []int64
}

// CreateUser inserts a user and its position assignments in one transaction:
// either the user row and every join row commit together, or nothing does.
// Requires the Queries to be backed by a *sql.DB, not a transaction.
func (q *Queries) CreateUser(ctx context.Context, db *sql.DB, p CreateUserParams) (model.User, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return model.User{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	qtx := q.WithTx(tx)
	now := time.Now()

	res, err := tx.ExecContext(ctx,
		"INSERT INTO users (name, email, phone, created_at, updated_at) VALUES (?, ?, ?, ?, ?)",
		p.Name, p.Email, p.Phone, now, now)
	if err != nil {
		return model.User{}, fmt.Errorf("creating user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.User{}, fmt.Errorf("reading user id: %w", err)
	}

	if err := qtx.replacePositions(ctx, id, p.PositionIDs); err != nil {
		return model.User{}, err
	}

	if err := tx.Commit(); err != nil {
		return model.User{}, fmt.Errorf("committing user: %w", err)
	}

	return q.GetUser(ctx, id)
}

// UpdateUserParams holds the writable user fields for a full update.
type UpdateUserParams struct {
	Name        string
	Email       sql.NullString
	Phone       sql.NullString
	PositionIDs []int64
}

// UpdateUser rewrites a user row and replaces its position assignments in
// one transaction. Returns sql.ErrNoRows if the id matches nothing.
func (q *Queries) UpdateUser(ctx context.Context, db *sql.DB, id int64, p UpdateUserParams) (model.User, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return model.User{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	qtx := q.WithTx(tx)

	res, err := tx.ExecContext(ctx,
		"UPDATE users SET name = ?, email = ?, phone = ?, updated_at = ? WHERE id = ?",
		p.Name, p.Email, p.Phone, time.Now(), id)
	if err != nil {
		return model.User{}, fmt.Errorf("updating user %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return model.User{}, err
	}
	if affected == 0 {
		return model.User{}, sql.ErrNoRows
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM user_positions WHERE user_id = ?", id); err != nil {
		return model.User{}, fmt.Errorf("clearing positions: %w", err)
	}
	if err := qtx.replacePositions(ctx, id, p.PositionIDs); err != nil {
		return model.User{}, err
	}

	if err := tx.Commit(); err != nil {
		return model.User{}, fmt.Errorf("committing user update: %w", err)
	}

	return q.GetUser(ctx, id)
}

func (q *Queries) replacePositions(ctx context.Context, userID int64, positionIDs []int64) error {
	for _, pid := range positionIDs {
		if _, err := q.db.ExecContext(ctx,
			"INSERT INTO user_positions (user_id, position_id) VALUES (?, ?)", userID, pid); err != nil {
			return fmt.Errorf("assigning position %d: %w", pid, err)
		}
	}
	return nil
}

// GetUser returns one user with positions materialized, or sql.ErrNoRows.
func (q *Queries) GetUser(ctx context.Context, id int64) (model.User, error) {
	var u model.User
	row := q.db.QueryRowContext(ctx,
		"SELECT id, name, email, phone, created_at, updated_at FROM users WHERE id = ?", id)
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return model.User{}, err
	}

	positions, err := q.userPositions(ctx, id)
	if err != nil {
		return model.User{}, err
	}
	u.Positions = positions
	return u, nil
}

// ListUsers returns all users with their positions, ordered by name.
func (q *Queries) ListUsers(ctx context.Context) ([]model.User, error) {
	rows, err := q.db.QueryContext(ctx,
		"SELECT id, name, email, phone, created_at, updated_at FROM users ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range users {
		positions, err := q.userPositions(ctx, users[i].ID)
		if err != nil {
			return nil, err
		}
		users[i].Positions = positions
	}
	return users, nil
}

// ListUsersByPosition returns users holding the named position, e.g. the
// sales team shown in the new-project wizard's salesperson picker.
func (q *Queries) ListUsersByPosition(ctx context.Context, positionName string) ([]model.User, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT u.id, u.name, u.email, u.phone, u.created_at, u.updated_at
		FROM users u
		JOIN user_positions up ON up.user_id = u.id
		JOIN positions p ON p.id = up.position_id
		WHERE p.name = ?
		ORDER BY u.name`, positionName)
	if err != nil {
		return nil, fmt.Errorf("listing users by position: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// DeleteUser removes a user; join rows cascade. Returns sql.ErrNoRows if
// nothing matched.
func (q *Queries) DeleteUser(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting user %d: %w", id, err)
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

func (q *Queries) userPositions(ctx context.Context, userID int64) ([]model.Position, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT p.id, p.name, p.created_at
		FROM positions p
		JOIN user_positions up ON up.position_id = p.id
		WHERE up.user_id = ?
		ORDER BY p.name`, userID)
	if err != nil {
		return nil, fmt.Errorf("loading positions for user %d: %w", userID, err)
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
