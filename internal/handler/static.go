// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"io/fs"
	"net/http"
	"strings"

	"github.com/olegiv/sitetrack/web"
)

// SPAHandler serves the embedded UI. /static/* paths come straight from the
// embedded filesystem; every other non-API path falls back to index.html so
// client-side routing works on reload. API paths never reach this handler.
func SPAHandler() (http.HandlerFunc, error) {
	staticFS, err := fs.Sub(web.Static, "static")
	if err != nil {
		return nil, err
	}
	fileServer := http.FileServer(http.FS(staticFS))
	index, err := fs.ReadFile(staticFS, "index.html")
	if err != nil {
		return nil, err
	}

	return func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/static/") {
			http.StripPrefix("/static/", fileServer).ServeHTTP(w, r)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(index)
	}, nil
}
