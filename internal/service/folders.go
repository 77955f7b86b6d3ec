// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service holds the side-effecting operations route handlers call
// into: project folder provisioning and email notifications.
package service

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TemplateFolderName is the directory copied into each freshly created
// project folder, looked up under <root>/<year>/<state>/.
const TemplateFolderName = "1-Folder Structure"

// TemplateRef locates a folder template on the shared filesystem.
type TemplateRef struct {
	Root  string
	Year  string
	State string
}

// EnsureResult reports what Ensure did.
type EnsureResult struct {
	Path    string `json:"path"`
	Created bool   `json:"created"`
	Seeded  bool   `json:"seeded"`
	Message string `json:"message"`
}

// FolderService provisions project directories on the shared filesystem.
type FolderService struct{}

// NewFolderService creates a FolderService.
func NewFolderService() *FolderService {
	return &FolderService{}
}

// Ensure makes sure the target directory exists. It is idempotent and
// non-destructive: an existing populated directory is reported as already
// present and left untouched. Template seeding happens only when the
// directory did not exist before this call; a missing template is not an
// error. The existence check and the create are not atomic against a
// concurrent creator, so "already exists" is an acceptable race outcome.
func (s *FolderService) Ensure(path string, tmpl *TemplateRef) (EnsureResult, error) {
	path = NormalizePath(path)
	if path == "" {
		return EnsureResult{}, fmt.Errorf("folder path is empty")
	}

	existedBefore := false
	if info, err := os.Stat(path); err == nil {
		if !info.IsDir() {
			return EnsureResult{}, fmt.Errorf("%s exists and is not a directory", path)
		}
		existedBefore = true

		entries, err := os.ReadDir(path)
		if err != nil {
			return EnsureResult{}, fmt.Errorf("reading %s: %w", path, err)
		}
		if len(entries) > 0 {
			return EnsureResult{Path: path, Message: "folder already exists"}, nil
		}
	}

	if err := os.MkdirAll(path, 0o755); err != nil {
		return EnsureResult{}, fmt.Errorf("creating %s: %w", path, err)
	}

	// Re-verify after creation: a racing process or a symlink can leave
	// something that is not a usable directory here.
	info, err := os.Stat(path)
	if err != nil {
		return EnsureResult{}, fmt.Errorf("verifying %s: %w", path, err)
	}
	if !info.IsDir() {
		return EnsureResult{}, fmt.Errorf("%s was created but is not a directory", path)
	}

	result := EnsureResult{Path: path, Created: !existedBefore, Message: "folder created"}
	if existedBefore {
		result.Message = "folder already exists"
	}

	if result.Created && tmpl != nil {
		seeded, err := s.seedFromTemplate(path, tmpl)
		if err != nil {
			return EnsureResult{}, err
		}
		result.Seeded = seeded
	}

	return result, nil
}

// seedFromTemplate copies the template directory contents into target.
// The lookup first tries the layout with the state segment, then falls back
// to the older layout without it.
func (s *FolderService) seedFromTemplate(target string, tmpl *TemplateRef) (bool, error) {
	candidates := []string{
		filepath.Join(NormalizePath(tmpl.Root), tmpl.Year, tmpl.State, TemplateFolderName),
		filepath.Join(NormalizePath(tmpl.Root), tmpl.Year, TemplateFolderName),
	}

	for _, src := range candidates {
		info, err := os.Stat(src)
		if err != nil || !info.IsDir() {
			continue
		}
		if err := copyDir(src, target); err != nil {
			return false, fmt.Errorf("copying template %s: %w", src, err)
		}
		return true, nil
	}

	return false, nil
}

// copyDir recursively copies the contents of src into dst.
func copyDir(src, dst string) error {
	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		if entry.IsDir() {
			if err := os.MkdirAll(dstPath, 0o755); err != nil {
				return err
			}
			if err := copyDir(srcPath, dstPath); err != nil {
				return err
			}
			continue
		}

		if err := copyFile(srcPath, dstPath); err != nil {
			return err
		}
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

// NormalizePath converts a stored path to the host filesystem's separator
// conventions.
func NormalizePath(p string) string {
	return normalizePathFor(p, os.PathSeparator)
}

// normalizePathFor is the separator-parameterized form of NormalizePath so
// both conventions are testable on any host. On backslash hosts it also
// repairs a missing separator after a drive prefix: "Z:foo" -> "Z:\foo".
func normalizePathFor(p string, sep byte) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return ""
	}

	other := byte('/')
	if sep == '/' {
		other = '\\'
	}
	p = strings.ReplaceAll(p, string(other), string(sep))

	if sep == '\\' && len(p) >= 2 && p[1] == ':' {
		if len(p) == 2 || p[2] != sep {
			p = p[:2] + string(sep) + p[2:]
		}
	}

	// Collapse doubled separators, keeping a UNC-style leading pair.
	doubled := string(sep) + string(sep)
	prefix := ""
	if sep == '\\' && strings.HasPrefix(p, doubled) {
		prefix = doubled
		p = strings.TrimPrefix(p, doubled)
	}
	for strings.Contains(p, doubled) {
		p = strings.ReplaceAll(p, doubled, string(sep))
	}
	return prefix + p
}

var upperCaser = cases.Upper(language.English)

// ProjectFolderName derives the per-project directory name from the site
// address: "<SUBURB - street>". Non-ASCII characters are transliterated so
// the name is safe on the shared filesystem.
func ProjectFolderName(suburb, street string) string {
	suburb = unidecode.Unidecode(strings.TrimSpace(suburb))
	street = unidecode.Unidecode(strings.TrimSpace(street))

	switch {
	case suburb == "" && street == "":
		return ""
	case suburb == "":
		return street
	case street == "":
		return upperCaser.String(suburb)
	}
	return upperCaser.String(suburb) + " - " + street
}

// ProjectFolderPath derives the full per-project directory path:
// <root>/<year>/<state>/<SUBURB - street>.
func ProjectFolderPath(root string, year int64, state, suburb, street string) string {
	return filepath.Join(NormalizePath(root), strconv.FormatInt(year, 10), state, ProjectFolderName(suburb, street))
}
