// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/olegiv/sitetrack/internal/model"
)

// EmailTemplateParams holds the writable template fields.
type EmailTemplateParams struct {
	Name        string
	ToAddresses []string
	FromAddress sql.NullString
	Subject     sql.NullString
	Body        sql.NullString
}

// encodeAddresses serializes the recipient list for storage.
func encodeAddresses(addrs []string) string {
	if addrs == nil {
		addrs = []string{}
	}
	b, _ := json.Marshal(addrs)
	return string(b)
}

// decodeAddresses materializes the stored recipient text into a slice.
// Older rows stored a plain comma-separated list, so fall back to splitting
// when the value is not a JSON array.
func decodeAddresses(raw string) []string {
	var addrs []string
	if err := json.Unmarshal([]byte(raw), &addrs); err == nil {
		return addrs
	}

	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			addrs = append(addrs, part)
		}
	}
	if addrs == nil {
		addrs = []string{}
	}
	return addrs
}

// CreateEmailTemplate inserts a reusable message template.
func (q *Queries) CreateEmailTemplate(ctx context.Context, p EmailTemplateParams) (model.EmailTemplate, error) {
	now := time.Now()
	res, err := q.db.ExecContext(ctx, `
		INSERT INTO email_templates (name, to_addresses, from_address, subject, body, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.Name, encodeAddresses(p.ToAddresses), p.FromAddress, p.Subject, p.Body, now, now)
	if err != nil {
		return model.EmailTemplate{}, fmt.Errorf("creating email template: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.EmailTemplate{}, err
	}
	return q.GetEmailTemplate(ctx, id)
}

// GetEmailTemplate returns one template by id, or sql.ErrNoRows.
func (q *Queries) GetEmailTemplate(ctx context.Context, id int64) (model.EmailTemplate, error) {
	var t model.EmailTemplate
	var raw string
	row := q.db.QueryRowContext(ctx, `
		SELECT id, name, to_addresses, from_address, subject, body, created_at, updated_at
		FROM email_templates WHERE id = ?`, id)
	if err := row.Scan(&t.ID, &t.Name, &raw, &t.FromAddress, &t.Subject, &t.Body, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return model.EmailTemplate{}, err
	}
	t.ToAddresses = decodeAddresses(raw)
	return t, nil
}

// ListEmailTemplates returns all templates ordered by name.
func (q *Queries) ListEmailTemplates(ctx context.Context) ([]model.EmailTemplate, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT id, name, to_addresses, from_address, subject, body, created_at, updated_at
		FROM email_templates ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing email templates: %w", err)
	}
	defer rows.Close()

	var templates []model.EmailTemplate
	for rows.Next() {
		var t model.EmailTemplate
		var raw string
		if err := rows.Scan(&t.ID, &t.Name, &raw, &t.FromAddress, &t.Subject, &t.Body, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning email template: %w", err)
		}
		t.ToAddresses = decodeAddresses(raw)
		templates = append(templates, t)
	}
	return templates, rows.Err()
}

// UpdateEmailTemplate rewrites a template. Returns sql.ErrNoRows if nothing matched.
func (q *Queries) UpdateEmailTemplate(ctx context.Context, id int64, p EmailTemplateParams) (model.EmailTemplate, error) {
	res, err := q.db.ExecContext(ctx, `
		UPDATE email_templates
		SET name = ?, to_addresses = ?, from_address = ?, subject = ?, body = ?, updated_at = ?
		WHERE id = ?`,
		p.Name, encodeAddresses(p.ToAddresses), p.FromAddress, p.Subject, p.Body, time.Now(), id)
	if err != nil {
		return model.EmailTemplate{}, fmt.Errorf("updating email template %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return model.EmailTemplate{}, err
	}
	if affected == 0 {
		return model.EmailTemplate{}, sql.ErrNoRows
	}
	return q.GetEmailTemplate(ctx, id)
}

// DeleteEmailTemplate removes a template. Returns sql.ErrNoRows if nothing matched.
func (q *Queries) DeleteEmailTemplate(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx, "DELETE FROM email_templates WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting email template %d: %w", id, err)
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
