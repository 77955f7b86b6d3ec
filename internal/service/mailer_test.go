package service

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/olegiv/sitetrack/internal/store"
)

func testQueries(t *testing.T) *store.Queries {
	t.Helper()
	db, err := store.NewDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := store.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return store.New(db)
}

func TestSendWithoutCredentialsFails(t *testing.T) {
	// Empty settings row and empty defaults: aborts before any network call.
	m := NewMailer(testQueries(t), SMTPDefaults{Host: "smtp.example.com", Port: 587})

	err := m.Send(context.Background(), SendRequest{
		To:      []string{"site@example.com"},
		Subject: "Contract sent",
		Body:    "hello",
	})
	if !errors.Is(err, ErrSMTPNotConfigured) {
		t.Fatalf("err = %v, want ErrSMTPNotConfigured", err)
	}
}

func TestSendWithoutRecipientsFails(t *testing.T) {
	m := NewMailer(nil, SMTPDefaults{User: "u", Pass: "p"})
	if err := m.Send(context.Background(), SendRequest{Subject: "x"}); err == nil {
		t.Fatal("expected error for empty recipient list")
	}
}

func TestResolveCredentialsSettingsOverrideDefaults(t *testing.T) {
	q := testQueries(t)
	_, err := q.UpsertSettings(context.Background(), store.UpsertSettingsParams{
		SMTPHost: sql.NullString{String: "mail.internal", Valid: true},
		SMTPPort: 2525,
		SMTPUser: sql.NullString{String: "stored-user", Valid: true},
		SMTPPass: sql.NullString{String: "stored-pass", Valid: true},
	})
	if err != nil {
		t.Fatalf("upsert settings: %v", err)
	}

	m := NewMailer(q, SMTPDefaults{Host: "fallback", Port: 587, User: "env-user", Pass: "env-pass"})
	host, port, user, pass := m.resolveCredentials(context.Background())
	if host != "mail.internal" || port != 2525 || user != "stored-user" || pass != "stored-pass" {
		t.Errorf("resolved %q %d %q %q, want stored settings", host, port, user, pass)
	}
}

func TestResolveCredentialsFallsBackToDefaults(t *testing.T) {
	m := NewMailer(testQueries(t), SMTPDefaults{Host: "fallback", Port: 465, User: "env-user", Pass: "env-pass"})
	host, port, user, pass := m.resolveCredentials(context.Background())
	if host != "fallback" || port != 465 || user != "env-user" || pass != "env-pass" {
		t.Errorf("resolved %q %d %q %q, want process defaults", host, port, user, pass)
	}
}

func TestHTMLBody(t *testing.T) {
	m := NewMailer(nil, SMTPDefaults{})

	got := m.HTMLBody("line one\nline two")
	if !strings.Contains(got, "line one<br>\nline two") {
		t.Errorf("line breaks not converted: %q", got)
	}
	if !strings.HasPrefix(got, "<html><body>") || !strings.HasSuffix(got, "</body></html>") {
		t.Errorf("missing HTML shell: %q", got)
	}

	got = m.HTMLBody(`hi <script>alert(1)</script> there`)
	if strings.Contains(got, "<script>") {
		t.Errorf("script tag survived sanitization: %q", got)
	}
}
