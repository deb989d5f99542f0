/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/friendsincode/grimnir_tv/internal/clock"
)

// Config covers process level configuration. Values come from an optional
// TOML file (GRIMNIRTV_CONFIG or --config) overridden by GRIMNIRTV_*
// environment variables.
type Config struct {
	Environment string `toml:"environment"`
	HTTPBind    string `toml:"http_bind"`
	HTTPPort    int    `toml:"http_port"`

	// ContentRoot is the content store: one subdirectory per asset, each
	// holding a stream manifest plus its segments.
	ContentRoot string `toml:"content_root"`
	// ChannelsDir holds the channel schedule documents (*.json).
	ChannelsDir string `toml:"channels_dir"`

	// DefaultTimezone seeds newly created channel documents.
	DefaultTimezone string `toml:"default_timezone"`

	// Broadcast-day window. The on-air day opens at BroadcastStartHour and
	// runs past midnight to BroadcastCutoffHour the next morning.
	BroadcastStartHour  int `toml:"broadcast_start_hour"`
	BroadcastCutoffHour int `toml:"broadcast_cutoff_hour"`

	// Delivery auth. Password may be given as a bcrypt hash (preferred) or
	// plaintext; AuthToken enables ?auth=<token> links for TV devices.
	AuthUsername     string `toml:"auth_username"`
	AuthPassword     string `toml:"auth_password"`
	AuthPasswordHash string `toml:"auth_password_hash"`
	AuthToken        string `toml:"auth_token"`

	// JWTSigningKey signs session cookies. Left empty, a per-process random
	// key is used and sessions do not survive restarts.
	JWTSigningKey string `toml:"jwt_signing_key"`

	MetricsEnabled bool `toml:"metrics_enabled"`
}

// Load reads the optional config file named by GRIMNIRTV_CONFIG, applies
// environment overrides and defaults, and validates the result.
func Load() (*Config, error) {
	return LoadWithFile(os.Getenv("GRIMNIRTV_CONFIG"))
}

// LoadWithFile is Load with an explicit config file path; an empty path
// skips the file layer.
func LoadWithFile(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Environment:         "development",
		HTTPBind:            "127.0.0.1",
		HTTPPort:            8099,
		ContentRoot:         "./movies_hls",
		ChannelsDir:         "./channels",
		DefaultTimezone:     "America/Sao_Paulo",
		BroadcastStartHour:  clock.DefaultStartHour,
		BroadcastCutoffHour: clock.DefaultCutoffHour,
		AuthUsername:        "vtv",
		MetricsEnabled:      true,
	}
}

func applyEnv(cfg *Config) {
	cfg.Environment = getEnv("GRIMNIRTV_ENV", cfg.Environment)
	cfg.HTTPBind = getEnv("GRIMNIRTV_HTTP_BIND", cfg.HTTPBind)
	cfg.HTTPPort = getEnvInt("GRIMNIRTV_HTTP_PORT", cfg.HTTPPort)
	cfg.ContentRoot = getEnv("GRIMNIRTV_CONTENT_ROOT", cfg.ContentRoot)
	cfg.ChannelsDir = getEnv("GRIMNIRTV_CHANNELS_DIR", cfg.ChannelsDir)
	cfg.DefaultTimezone = getEnv("GRIMNIRTV_TIMEZONE", cfg.DefaultTimezone)
	cfg.BroadcastStartHour = getEnvInt("GRIMNIRTV_BROADCAST_START_HOUR", cfg.BroadcastStartHour)
	cfg.BroadcastCutoffHour = getEnvInt("GRIMNIRTV_BROADCAST_CUTOFF_HOUR", cfg.BroadcastCutoffHour)
	cfg.AuthUsername = getEnv("GRIMNIRTV_AUTH_USERNAME", cfg.AuthUsername)
	cfg.AuthPassword = getEnv("GRIMNIRTV_AUTH_PASSWORD", cfg.AuthPassword)
	cfg.AuthPasswordHash = getEnv("GRIMNIRTV_AUTH_PASSWORD_HASH", cfg.AuthPasswordHash)
	cfg.AuthToken = getEnv("GRIMNIRTV_AUTH_TOKEN", cfg.AuthToken)
	cfg.JWTSigningKey = getEnv("GRIMNIRTV_JWT_SIGNING_KEY", cfg.JWTSigningKey)
	cfg.MetricsEnabled = getEnvBool("GRIMNIRTV_METRICS_ENABLED", cfg.MetricsEnabled)
}

// Validate checks ranges and cross-field constraints.
func (c *Config) Validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("http port %d out of range", c.HTTPPort)
	}
	if err := c.BroadcastDay().Validate(); err != nil {
		return err
	}
	if c.DefaultTimezone == "" {
		return errors.New("default timezone must not be empty")
	}
	if _, err := time.LoadLocation(c.DefaultTimezone); err != nil {
		return fmt.Errorf("unknown timezone %q: %w", c.DefaultTimezone, err)
	}
	if strings.EqualFold(c.Environment, "production") {
		if c.AuthPassword == "" && c.AuthPasswordHash == "" && c.AuthToken == "" {
			return errors.New("production delivery requires GRIMNIRTV_AUTH_PASSWORD, GRIMNIRTV_AUTH_PASSWORD_HASH or GRIMNIRTV_AUTH_TOKEN")
		}
	}
	return nil
}

// BroadcastDay returns the configured broadcast-day window.
func (c *Config) BroadcastDay() clock.Day {
	return clock.Day{StartHour: c.BroadcastStartHour, CutoffHour: c.BroadcastCutoffHour}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if val := os.Getenv(key); val != "" {
		val = strings.ToLower(strings.TrimSpace(val))
		switch val {
		case "true", "1", "yes":
			return true
		case "false", "0", "no":
			return false
		}
	}
	return def
}
