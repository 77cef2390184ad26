// Package config defines the spec-workflow application configuration.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the top-level spec-workflow configuration.
type Config struct {
	Dashboard DashboardConfig `json:"dashboard" yaml:"dashboard"`
	Auth      AuthConfig      `json:"auth" yaml:"auth"`
	DataDir   string          `json:"data_dir" yaml:"data_dir"`
	LogLevel  string          `json:"log_level" yaml:"log_level"`
}

// DashboardConfig controls the dashboard daemon.
type DashboardConfig struct {
	Addr          string `json:"addr" yaml:"addr"`                     // listen address, e.g., ":3000"
	Project       string `json:"project" yaml:"project"`               // project root to watch
	DiscoveryRoot string `json:"discovery_root" yaml:"discovery_root"` // directory scanned for other projects
	Open          bool   `json:"open" yaml:"open"`                     // open the browser on startup
}

// AuthConfig controls dashboard authentication. The dashboard is a localhost
// tool; auth stays disabled until both Username and PasswordHash are set.
type AuthConfig struct {
	JWTSecret    string `json:"jwt_secret" yaml:"jwt_secret"`
	Username     string `json:"username" yaml:"username"`
	PasswordHash string `json:"password_hash" yaml:"password_hash"` // bcrypt hash
}

// Enabled reports whether dashboard authentication is configured.
func (a AuthConfig) Enabled() bool {
	return a.Username != "" && a.PasswordHash != ""
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Dashboard: DashboardConfig{
			Addr: ":3000",
		},
		DataDir:  "./data",
		LogLevel: "info",
	}
}

// Load reads a YAML config file over the defaults, then applies .env and
// SPEC_WORKFLOW_* environment overrides. An empty path skips the file and
// still applies the environment.
func Load(path string) (*Config, error) {
	_ = godotenv.Load() // a missing .env is fine

	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	applyEnv(cfg)
	return cfg, nil
}

// applyEnv overlays SPEC_WORKFLOW_* variables onto cfg. Environment wins
// over the file, the file over the defaults.
func applyEnv(cfg *Config) {
	if v := os.Getenv("SPEC_WORKFLOW_ADDR"); v != "" {
		cfg.Dashboard.Addr = v
	}
	if v := os.Getenv("SPEC_WORKFLOW_PROJECT"); v != "" {
		cfg.Dashboard.Project = v
	}
	if v := os.Getenv("SPEC_WORKFLOW_DISCOVERY_ROOT"); v != "" {
		cfg.Dashboard.DiscoveryRoot = v
	}
	if v := os.Getenv("SPEC_WORKFLOW_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("SPEC_WORKFLOW_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("SPEC_WORKFLOW_JWT_SECRET"); v != "" {
		cfg.Auth.JWTSecret = v
	}
}
