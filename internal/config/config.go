// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath     string `env:"ST_DB_PATH" envDefault:"./data/sitetrack.db"`
	ServerHost string `env:"ST_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"ST_SERVER_PORT" envDefault:"8080"`
	Env        string `env:"ST_ENV" envDefault:"development"`
	LogLevel   string `env:"ST_LOG_LEVEL" envDefault:"info"`
	UploadsDir string `env:"ST_UPLOADS_DIR" envDefault:"./uploads"`

	// Fallback shared-drive root when the settings row leaves it empty.
	FolderRoot string `env:"ST_FOLDER_ROOT"`

	// SMTP defaults; the settings row overrides these per field.
	SMTPHost string `env:"ST_SMTP_HOST"`
	SMTPPort int    `env:"ST_SMTP_PORT" envDefault:"587"`
	SMTPUser string `env:"ST_SMTP_USER"`
	SMTPPass string `env:"ST_SMTP_PASS"`
	SMTPFrom string `env:"ST_SMTP_FROM"`

	// Per-IP API rate limiting
	RateLimitRPS   float64 `env:"ST_RATE_LIMIT_RPS" envDefault:"20"`
	RateLimitBurst int     `env:"ST_RATE_LIMIT_BURST" envDefault:"40"`

	// Seeding configuration
	DoSeed bool `env:"ST_DO_SEED" envDefault:"true"` // Create default positions on startup
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.ServerPort <= 0 || cfg.ServerPort > 65535 {
		return nil, fmt.Errorf("ST_SERVER_PORT must be between 1 and 65535, got %d", cfg.ServerPort)
	}
	if cfg.RateLimitRPS <= 0 {
		return nil, fmt.Errorf("ST_RATE_LIMIT_RPS must be positive, got %v", cfg.RateLimitRPS)
	}
	return cfg, nil
}
