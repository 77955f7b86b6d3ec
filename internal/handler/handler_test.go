package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/sitetrack/internal/config"
	"github.com/olegiv/sitetrack/internal/store"
)

// testHandler builds a Handler over a migrated temp database and returns it
// with a mounted API router.
func testHandler(t *testing.T) (*Handler, http.Handler) {
	t.Helper()

	db, err := store.NewDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := store.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	h := New(db, &config.Config{
		UploadsDir: t.TempDir(),
		SMTPPort:   587,
	})
	r := chi.NewRouter()
	r.Mount("/api/v1", h.Routes())
	r.Get("/healthz", h.Health)
	return h, r
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return v
}

func createProject(t *testing.T, router http.Handler, name string) map[string]any {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/api/v1/projects", map[string]string{
		"name":   name,
		"suburb": "Brunswick",
		"street": "12 Hope St",
		"state":  "VIC",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create project status = %d: %s", rec.Code, rec.Body.String())
	}
	return decodeBody[map[string]any](t, rec)
}

func TestProjectLifecycle(t *testing.T) {
	_, router := testHandler(t)

	created := createProject(t, router, "Hope St Build")
	if created["status"] != "Design Phase" {
		t.Errorf("initial status = %v, want Design Phase", created["status"])
	}
	if created["contract_status"] != "Not Sent" {
		t.Errorf("contract_status = %v, want Not Sent", created["contract_status"])
	}

	// Partial patch: one field set, one cleared, the rest untouched.
	rec := doJSON(t, router, http.MethodPut, "/api/v1/projects/1", map[string]any{
		"contract_status": "Sent",
		"suburb":          nil,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d: %s", rec.Code, rec.Body.String())
	}
	updated := decodeBody[map[string]any](t, rec)
	if updated["contract_status"] != "Sent" {
		t.Errorf("contract_status = %v after patch", updated["contract_status"])
	}
	if updated["suburb"] != nil {
		t.Errorf("suburb = %v, want cleared", updated["suburb"])
	}
	if updated["street"] != "12 Hope St" {
		t.Errorf("street = %v, want untouched", updated["street"])
	}

	rec = doJSON(t, router, http.MethodGet, "/api/v1/projects/1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodDelete, "/api/v1/projects/1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete status = %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, "/api/v1/projects/1", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", rec.Code)
	}
	body := decodeBody[map[string]string](t, rec)
	if body["error"] == "" {
		t.Errorf("error body = %v, want {\"error\": ...}", body)
	}
}

func TestProjectValidation(t *testing.T) {
	_, router := testHandler(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/projects", map[string]string{"name": "  "})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("blank name status = %d, want 400", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, "/api/v1/projects/abc", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("non-numeric id status = %d, want 400", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPut, "/api/v1/projects/999", map[string]any{"name": "x"})
	if rec.Code != http.StatusNotFound {
		t.Errorf("update missing project status = %d, want 404", rec.Code)
	}
}

func TestListProjectsFilters(t *testing.T) {
	_, router := testHandler(t)

	createProject(t, router, "Hope St Build")
	rec := doJSON(t, router, http.MethodPost, "/api/v1/projects", map[string]string{
		"name": "Elm St Build", "state": "NSW",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("second create status = %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, "/api/v1/projects?state=VIC", nil)
	projects := decodeBody[[]map[string]any](t, rec)
	if len(projects) != 1 || projects[0]["name"] != "Hope St Build" {
		t.Errorf("state filter returned %v", projects)
	}

	rec = doJSON(t, router, http.MethodGet, "/api/v1/projects?q=elm", nil)
	projects = decodeBody[[]map[string]any](t, rec)
	if len(projects) != 1 || projects[0]["name"] != "Elm St Build" {
		t.Errorf("search filter returned %v", projects)
	}

	rec = doJSON(t, router, http.MethodGet, "/api/v1/projects?year=bogus", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad year filter status = %d, want 400", rec.Code)
	}
}

func TestBulkScheduleSiteVisits(t *testing.T) {
	_, router := testHandler(t)

	createProject(t, router, "First")
	createProject(t, router, "Second")

	rec := doJSON(t, router, http.MethodPost, "/api/v1/projects/site-visits", []map[string]any{
		{"projectId": 1, "date": "12/09/2026", "period": "AM"},
		{"projectId": 2, "date": "12/09/2026", "period": "PM"},
		{"projectId": 0, "date": "13/09/2026", "period": "AM"},
		{"projectId": 999, "date": "13/09/2026", "period": "AM"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("bulk schedule status = %d: %s", rec.Code, rec.Body.String())
	}

	result := decodeBody[BulkSiteVisitResult](t, rec)
	if result.Updated != 2 || result.Skipped != 2 {
		t.Errorf("result = %+v, want 2 updated and 2 skipped", result)
	}

	rec = doJSON(t, router, http.MethodGet, "/api/v1/projects/1", nil)
	project := decodeBody[map[string]any](t, rec)
	if project["site_visit_date"] != "12/09/2026" || project["site_visit_time"] != "AM" {
		t.Errorf("site visit not applied: date=%v time=%v", project["site_visit_date"], project["site_visit_time"])
	}
}

func TestAppendProjectLogEndpoint(t *testing.T) {
	_, router := testHandler(t)
	createProject(t, router, "Logged")

	rec := doJSON(t, router, http.MethodPost, "/api/v1/projects/1/log", map[string]string{"line": "Client called"})
	if rec.Code != http.StatusOK {
		t.Fatalf("append log status = %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodPost, "/api/v1/projects/1/log", map[string]string{"line": "  "})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("blank log line status = %d, want 400", rec.Code)
	}
}

func TestUserAndPositionEndpoints(t *testing.T) {
	_, router := testHandler(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/positions", map[string]string{"name": "Estimator"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create position status = %d", rec.Code)
	}
	position := decodeBody[map[string]any](t, rec)
	posID := int64(position["id"].(float64))

	rec = doJSON(t, router, http.MethodPost, "/api/v1/users", map[string]any{
		"name":         "Dana",
		"email":        "dana@example.com",
		"position_ids": []int64{posID},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create user status = %d: %s", rec.Code, rec.Body.String())
	}
	user := decodeBody[map[string]any](t, rec)
	positions := user["positions"].([]any)
	if len(positions) != 1 {
		t.Fatalf("positions = %v, want one", positions)
	}

	rec = doJSON(t, router, http.MethodGet, "/api/v1/users?position=Estimator", nil)
	users := decodeBody[[]map[string]any](t, rec)
	if len(users) != 1 || users[0]["name"] != "Dana" {
		t.Errorf("position filter returned %v", users)
	}

	rec = doJSON(t, router, http.MethodDelete, "/api/v1/users/999", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("delete missing user status = %d, want 404", rec.Code)
	}
}

func TestEmailTemplateEndpoints(t *testing.T) {
	_, router := testHandler(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/email-templates", map[string]any{
		"name":         "Contract Sent",
		"to_addresses": []string{"a@example.com", "b@example.com"},
		"subject":      "Your contract is on its way",
		"body":         "Hi,\nthe contract has been sent.",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create template status = %d: %s", rec.Code, rec.Body.String())
	}
	created := decodeBody[map[string]any](t, rec)
	if addrs := created["to_addresses"].([]any); len(addrs) != 2 {
		t.Errorf("to_addresses = %v, want two entries", addrs)
	}

	rec = doJSON(t, router, http.MethodGet, "/api/v1/email-templates/999", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("get missing template status = %d, want 404", rec.Code)
	}
}

func TestSettingsEndpoints(t *testing.T) {
	_, router := testHandler(t)

	// Empty table reads as the zero settings row.
	rec := doJSON(t, router, http.MethodGet, "/api/v1/settings", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get settings status = %d", rec.Code)
	}
	settings := decodeBody[map[string]any](t, rec)
	if settings["smtp_port"] != float64(587) {
		t.Errorf("default smtp_port = %v, want 587", settings["smtp_port"])
	}

	rec = doJSON(t, router, http.MethodPut, "/api/v1/settings", map[string]any{
		"root_directory":      `Z:\jobs`,
		"auto_create_folders": true,
		"smtp_host":           "mail.internal",
		"smtp_port":           2525,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("update settings status = %d: %s", rec.Code, rec.Body.String())
	}
	settings = decodeBody[map[string]any](t, rec)
	if settings["root_directory"] != `Z:\jobs` || settings["auto_create_folders"] != true {
		t.Errorf("settings after update = %v", settings)
	}
}

func TestHealthEndpoint(t *testing.T) {
	_, router := testHandler(t)

	rec := doJSON(t, router, http.MethodGet, "/healthz", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("health status = %d", rec.Code)
	}
	status := decodeBody[HealthStatus](t, rec)
	if status.Status != "ok" || status.Database != "ok" {
		t.Errorf("health = %+v", status)
	}
}

func TestSendEmailWithoutCredentials(t *testing.T) {
	_, router := testHandler(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/email/send", map[string]any{
		"to":       "site@example.com",
		"subject":  "Contract",
		"htmlBody": "hello",
	})
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("send status = %d, want 503", rec.Code)
	}
	body := decodeBody[map[string]string](t, rec)
	if body["error"] == "" {
		t.Errorf("error body = %v", body)
	}
}

func TestSendEmailRecipientShapes(t *testing.T) {
	_, router := testHandler(t)

	// Array form decodes too; still fails on credentials, not on shape.
	rec := doJSON(t, router, http.MethodPost, "/api/v1/email/send", map[string]any{
		"to":       []string{"a@example.com", "b@example.com"},
		"subject":  "Contract",
		"htmlBody": "hello",
	})
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("array recipients status = %d, want 503", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPost, "/api/v1/email/send", map[string]any{
		"to": []string{}, "subject": "x",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("empty recipients status = %d, want 400", rec.Code)
	}
}

func TestCreateFolderEndpoint(t *testing.T) {
	_, router := testHandler(t)
	root := t.TempDir()

	path := filepath.Join(root, "2026", "VIC", "BRUNSWICK - 12 Hope St")
	rec := doJSON(t, router, http.MethodPost, "/api/v1/folders", map[string]string{
		"path":          path,
		"rootDirectory": root,
		"year":          "2026",
		"state":         "VIC",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("create folder status = %d: %s", rec.Code, rec.Body.String())
	}
	result := decodeBody[map[string]any](t, rec)
	if result["created"] != true {
		t.Errorf("result = %v, want created", result)
	}

	rec = doJSON(t, router, http.MethodPost, "/api/v1/folders", map[string]string{"path": ""})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("empty path status = %d, want 400", rec.Code)
	}
}
