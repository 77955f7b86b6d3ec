package service

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNormalizePathFor(t *testing.T) {
	tests := []struct {
		name string
		in   string
		sep  byte
		want string
	}{
		{name: "drive prefix missing separator", in: `Z:foo`, sep: '\\', want: `Z:\foo`},
		{name: "drive prefix with separator", in: `Z:\foo`, sep: '\\', want: `Z:\foo`},
		{name: "bare drive", in: `Z:`, sep: '\\', want: `Z:\`},
		{name: "forward slashes on backslash host", in: `Z:/jobs/2026`, sep: '\\', want: `Z:\jobs\2026`},
		{name: "unc prefix preserved", in: `\\server\share\jobs`, sep: '\\', want: `\\server\share\jobs`},
		{name: "backslashes on slash host", in: `\mnt\jobs`, sep: '/', want: `/mnt/jobs`},
		{name: "doubled separators collapsed", in: `/mnt//jobs///2026`, sep: '/', want: `/mnt/jobs/2026`},
		{name: "whitespace trimmed", in: "  /mnt/jobs ", sep: '/', want: `/mnt/jobs`},
		{name: "empty", in: "", sep: '/', want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizePathFor(tt.in, tt.sep); got != tt.want {
				t.Errorf("normalizePathFor(%q, %q) = %q, want %q", tt.in, tt.sep, got, tt.want)
			}
		})
	}
}

func TestEnsureCreatesAndSeeds(t *testing.T) {
	root := t.TempDir()

	// Template: <root>/2026/VIC/1-Folder Structure with a file and a subdir.
	tpl := filepath.Join(root, "2026", "VIC", TemplateFolderName)
	if err := os.MkdirAll(filepath.Join(tpl, "Drawings"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(tpl, "checklist.txt"), []byte("check"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(tpl, "Drawings", "cover.txt"), []byte("cover"), 0o644); err != nil {
		t.Fatal(err)
	}

	target := filepath.Join(root, "2026", "VIC", "BRUNSWICK - 12 Hope St")
	svc := NewFolderService()

	res, err := svc.Ensure(target, &TemplateRef{Root: root, Year: "2026", State: "VIC"})
	if err != nil {
		t.Fatalf("Ensure: %v", err)
	}
	if !res.Created || !res.Seeded {
		t.Errorf("result = %+v, want created and seeded", res)
	}

	for _, rel := range []string{"checklist.txt", filepath.Join("Drawings", "cover.txt")} {
		if _, err := os.Stat(filepath.Join(target, rel)); err != nil {
			t.Errorf("missing copied file %s: %v", rel, err)
		}
	}
}

func TestEnsureIdempotent(t *testing.T) {
	root := t.TempDir()

	tpl := filepath.Join(root, "2026", "VIC", TemplateFolderName)
	if err := os.MkdirAll(tpl, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(tpl, "checklist.txt"), []byte("check"), 0o644); err != nil {
		t.Fatal(err)
	}

	target := filepath.Join(root, "2026", "VIC", "CARLTON - 3 Elm St")
	svc := NewFolderService()
	ref := &TemplateRef{Root: root, Year: "2026", State: "VIC"}

	first, err := svc.Ensure(target, ref)
	if err != nil {
		t.Fatalf("first Ensure: %v", err)
	}
	if !first.Created {
		t.Errorf("first result = %+v, want created", first)
	}

	// Drop a marker so a duplicate copy would be detectable.
	if err := os.WriteFile(filepath.Join(target, "site-notes.txt"), []byte("notes"), 0o644); err != nil {
		t.Fatal(err)
	}

	second, err := svc.Ensure(target, ref)
	if err != nil {
		t.Fatalf("second Ensure: %v", err)
	}
	if second.Created || second.Seeded {
		t.Errorf("second result = %+v, want untouched", second)
	}
	if second.Message != "folder already exists" {
		t.Errorf("Message = %q", second.Message)
	}

	entries, err := os.ReadDir(target)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 { // checklist.txt + site-notes.txt
		t.Errorf("entries = %d, want 2 (no duplicate copy)", len(entries))
	}
}

func TestEnsureExistingEmptyDirSkipsSeeding(t *testing.T) {
	root := t.TempDir()

	tpl := filepath.Join(root, "2026", "VIC", TemplateFolderName)
	if err := os.MkdirAll(tpl, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(tpl, "checklist.txt"), []byte("check"), 0o644); err != nil {
		t.Fatal(err)
	}

	// Pre-existing but empty: created again is fine, but no seeding.
	target := filepath.Join(root, "2026", "VIC", "EMPTY - 1 Nil St")
	if err := os.MkdirAll(target, 0o755); err != nil {
		t.Fatal(err)
	}

	res, err := NewFolderService().Ensure(target, &TemplateRef{Root: root, Year: "2026", State: "VIC"})
	if err != nil {
		t.Fatalf("Ensure: %v", err)
	}
	if res.Created || res.Seeded {
		t.Errorf("result = %+v, want pre-existing and unseeded", res)
	}
}

func TestEnsureFallbackTemplateWithoutState(t *testing.T) {
	root := t.TempDir()

	// Only the older layout exists: <root>/<year>/1-Folder Structure.
	tpl := filepath.Join(root, "2026", TemplateFolderName)
	if err := os.MkdirAll(tpl, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(tpl, "legacy.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	target := filepath.Join(root, "2026", "VIC", "LEGACY - 9 Old Rd")
	res, err := NewFolderService().Ensure(target, &TemplateRef{Root: root, Year: "2026", State: "VIC"})
	if err != nil {
		t.Fatalf("Ensure: %v", err)
	}
	if !res.Seeded {
		t.Errorf("result = %+v, want seeded from fallback template", res)
	}
	if _, err := os.Stat(filepath.Join(target, "legacy.txt")); err != nil {
		t.Errorf("missing fallback-copied file: %v", err)
	}
}

func TestEnsureMissingTemplateIsNotAnError(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(root, "2026", "VIC", "BARE - 2 New St")

	res, err := NewFolderService().Ensure(target, &TemplateRef{Root: root, Year: "2026", State: "VIC"})
	if err != nil {
		t.Fatalf("Ensure: %v", err)
	}
	if !res.Created || res.Seeded {
		t.Errorf("result = %+v, want created without seeding", res)
	}
}

func TestEnsureEmptyPath(t *testing.T) {
	if _, err := NewFolderService().Ensure("   ", nil); err == nil {
		t.Error("expected error for empty path")
	}
}

func TestProjectFolderName(t *testing.T) {
	tests := []struct {
		name   string
		suburb string
		street string
		want   string
	}{
		{name: "plain", suburb: "Brunswick", street: "12 Hope St", want: "BRUNSWICK - 12 Hope St"},
		{name: "transliterated", suburb: "Köln", street: "5 Straße", want: "KOLN - 5 Strasse"},
		{name: "suburb only", suburb: "Carlton", street: "", want: "CARLTON"},
		{name: "street only", suburb: "", street: "4 Low Ln", want: "4 Low Ln"},
		{name: "both empty", suburb: "", street: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ProjectFolderName(tt.suburb, tt.street); got != tt.want {
				t.Errorf("ProjectFolderName(%q, %q) = %q, want %q", tt.suburb, tt.street, got, tt.want)
			}
		})
	}
}

func TestProjectFolderPath(t *testing.T) {
	got := ProjectFolderPath("/mnt/jobs", 2026, "VIC", "Brunswick", "12 Hope St")
	want := filepath.Join("/mnt/jobs", "2026", "VIC", "BRUNSWICK - 12 Hope St")
	if got != want {
		t.Errorf("ProjectFolderPath = %q, want %q", got, want)
	}
}
