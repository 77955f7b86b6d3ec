package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSPAHandler(t *testing.T) {
	spa, err := SPAHandler()
	if err != nil {
		t.Fatalf("SPAHandler: %v", err)
	}

	// Static asset is served directly.
	rec := httptest.NewRecorder()
	spa.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/app.js", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("static asset status = %d", rec.Code)
	}

	// Client-side routes fall back to the index page.
	for _, path := range []string{"/", "/projects/12", "/settings"} {
		rec := httptest.NewRecorder()
		spa.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Errorf("%s status = %d, want 200", path, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "<title>SiteTrack</title>") {
			t.Errorf("%s did not serve the index page", path)
		}
	}
}
