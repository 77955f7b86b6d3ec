// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"os"
	"testing"
)

func setEnv(t *testing.T, key, value string) {
	t.Helper()
	if err := os.Setenv(key, value); err != nil {
		t.Fatalf("failed to set %s: %v", key, err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	os.Clearenv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.DBPath != "./data/sitetrack.db" {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, "./data/sitetrack.db")
	}
	if cfg.ServerHost != "localhost" {
		t.Errorf("ServerHost = %q, want %q", cfg.ServerHost, "localhost")
	}
	if cfg.ServerPort != 8080 {
		t.Errorf("ServerPort = %d, want %d", cfg.ServerPort, 8080)
	}
	if cfg.Env != "development" {
		t.Errorf("Env = %q, want %q", cfg.Env, "development")
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
	if cfg.SMTPPort != 587 {
		t.Errorf("SMTPPort = %d, want %d", cfg.SMTPPort, 587)
	}
	if !cfg.DoSeed {
		t.Error("DoSeed = false, want true by default")
	}
}

func TestLoad_CustomValues(t *testing.T) {
	os.Clearenv()
	setEnv(t, "ST_DB_PATH", "/custom/path.db")
	setEnv(t, "ST_SERVER_HOST", "0.0.0.0")
	setEnv(t, "ST_SERVER_PORT", "3000")
	setEnv(t, "ST_ENV", "production")
	setEnv(t, "ST_LOG_LEVEL", "debug")
	setEnv(t, "ST_FOLDER_ROOT", `Z:\jobs`)
	setEnv(t, "ST_SMTP_USER", "notify@example.com")
	setEnv(t, "ST_RATE_LIMIT_RPS", "5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.DBPath != "/custom/path.db" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if cfg.ServerHost != "0.0.0.0" {
		t.Errorf("ServerHost = %q", cfg.ServerHost)
	}
	if cfg.ServerPort != 3000 {
		t.Errorf("ServerPort = %d", cfg.ServerPort)
	}
	if cfg.IsDevelopment() {
		t.Error("IsDevelopment() = true for production env")
	}
	if cfg.FolderRoot != `Z:\jobs` {
		t.Errorf("FolderRoot = %q", cfg.FolderRoot)
	}
	if cfg.SMTPUser != "notify@example.com" {
		t.Errorf("SMTPUser = %q", cfg.SMTPUser)
	}
	if cfg.RateLimitRPS != 5 {
		t.Errorf("RateLimitRPS = %v", cfg.RateLimitRPS)
	}
}

func TestLoad_InvalidPort(t *testing.T) {
	os.Clearenv()
	setEnv(t, "ST_SERVER_PORT", "70000")

	if _, err := Load(); err == nil {
		t.Fatal("Load() succeeded with out-of-range port")
	}
}

func TestServerAddr(t *testing.T) {
	cfg := Config{ServerHost: "localhost", ServerPort: 8080}
	if got := cfg.ServerAddr(); got != "localhost:8080" {
		t.Errorf("ServerAddr() = %q, want %q", got, "localhost:8080")
	}
}
