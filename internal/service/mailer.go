// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/wneessen/go-mail"

	"github.com/olegiv/sitetrack/internal/store"
)

// ErrSMTPNotConfigured is returned when neither the stored settings nor the
// process environment carry usable SMTP credentials.
var ErrSMTPNotConfigured = errors.New(
	"SMTP credentials are not configured: set them in Settings or via ST_SMTP_USER and ST_SMTP_PASS")

// SMTPDefaults are the process-level fallback values used when the stored
// settings leave SMTP fields empty.
type SMTPDefaults struct {
	Host string
	Port int
	User string
	Pass string
	From string
}

// Mailer sends one-off HTML notifications over SMTP. Credentials are
// resolved per send so settings changes take effect without a restart.
type Mailer struct {
	queries  *store.Queries
	defaults SMTPDefaults
	sanitize *bluemonday.Policy
}

func NewMailer(queries *store.Queries, defaults SMTPDefaults) *Mailer {
	return &Mailer{
		queries:  queries,
		defaults: defaults,
		sanitize: bluemonday.UGCPolicy(),
	}
}

// SendRequest describes a single outbound message. Body is treated as plain
// text with line breaks and is wrapped into a minimal HTML shell.
type SendRequest struct {
	To      []string
	From    string
	Subject string
	Body    string
}

// Send dispatches a single message. Credential resolution order is stored
// settings first, then the process defaults; when user or password is still
// missing the send is aborted before any network call. Transport failures
// are surfaced verbatim and never retried.
func (m *Mailer) Send(ctx context.Context, req SendRequest) error {
	if len(req.To) == 0 {
		return fmt.Errorf("no recipients given")
	}

	host, port, user, pass := m.resolveCredentials(ctx)
	if user == "" || pass == "" {
		return ErrSMTPNotConfigured
	}
	if host == "" {
		host = m.defaults.Host
	}
	if port == 0 {
		port = 587
	}

	from := strings.TrimSpace(req.From)
	if from == "" {
		from = m.defaults.From
	}
	if from == "" {
		from = user
	}

	msg := mail.NewMsg()
	if err := msg.From(from); err != nil {
		return fmt.Errorf("invalid sender %q: %w", from, err)
	}
	if err := msg.To(req.To...); err != nil {
		return fmt.Errorf("invalid recipients: %w", err)
	}
	msg.Subject(req.Subject)
	msg.SetBodyString(mail.TypeTextHTML, m.HTMLBody(req.Body))

	client, err := mail.NewClient(host,
		mail.WithPort(port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(user),
		mail.WithPassword(pass),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("sending mail: %w", err)
	}
	return nil
}

// resolveCredentials merges the stored settings row over the process
// defaults. A store read failure falls back to the defaults rather than
// failing the send outright.
func (m *Mailer) resolveCredentials(ctx context.Context) (host string, port int, user, pass string) {
	host = m.defaults.Host
	port = m.defaults.Port
	user = m.defaults.User
	pass = m.defaults.Pass

	if m.queries == nil {
		return host, port, user, pass
	}
	settings, err := m.queries.GetSettings(ctx)
	if err != nil {
		return host, port, user, pass
	}

	if v := strings.TrimSpace(settings.SMTPHost.String); v != "" {
		host = v
	}
	if settings.SMTPPort > 0 {
		port = int(settings.SMTPPort)
	}
	if v := strings.TrimSpace(settings.SMTPUser.String); v != "" {
		user = v
	}
	if v := settings.SMTPPass.String; v != "" {
		pass = v
	}
	return host, port, user, pass
}

// HTMLBody converts a plain-text body into a sanitized HTML document with
// line breaks preserved.
func (m *Mailer) HTMLBody(body string) string {
	safe := m.sanitize.Sanitize(body)
	safe = strings.ReplaceAll(safe, "\r\n", "\n")
	safe = strings.ReplaceAll(safe, "\n", "<br>\n")
	return "<html><body><div style=\"font-family:Arial,sans-serif;font-size:14px\">" +
		safe + "</div></body></html>"
}
