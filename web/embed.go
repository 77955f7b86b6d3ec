// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package web embeds the single-page UI served alongside the API.
package web

import "embed"

//go:embed all:static
var Static embed.FS
