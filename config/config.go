// Package config loads the bridge's environment-variable configuration
// (spec §3 "Configuration", §6), following the teacher's struct-of-structs
// + envOr-helpers pattern (config/config.go in the teacher repo).
package config

import (
	"os"
	"path/filepath"
	"strconv"
)

// Config holds all process configuration.
type Config struct {
	Chrome BrowserTarget
	Edge   BrowserTarget
	Tool   ToolConfig
	Log    LogConfig
}

// BrowserTarget describes how to discover/launch/attach to one
// Chromium-family browser (Chrome or Edge).
type BrowserTarget struct {
	// Name identifies the browser for logging ("chrome" or "edge").
	Name string

	// Host is the remote-debugging host. Default 127.0.0.1.
	Host string

	// Port is the remote-debugging port. Default 9222 (Chrome), 9223 (Edge).
	Port int

	// WSEndpoint, if set, short-circuits discovery (spec §4.4 step 1).
	WSEndpoint string

	// ExecutablePath overrides the platform probe list, if set.
	ExecutablePath string

	// UserDataDir is the dedicated, vendor-scoped profile directory.
	UserDataDir string
}

// ToolConfig controls fetch_webpage's fallback behavior.
type ToolConfig struct {
	// DefaultFetchURL substitutes for a missing `url` argument to
	// fetch_webpage. Empty means no fallback is configured.
	DefaultFetchURL string
}

// LogConfig controls structured logging (ambient, not named by spec.md,
// carried from the teacher's config.LogConfig).
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "json"
}

// Load reads configuration from environment variables with sane defaults.
func Load() *Config {
	vendorBase := vendorScopedBase()

	return &Config{
		Chrome: BrowserTarget{
			Name:           "chrome",
			Host:           envOr("CHROME_REMOTE_DEBUG_HOST", "127.0.0.1"),
			Port:           envIntOr("CHROME_REMOTE_DEBUG_PORT", 9222),
			WSEndpoint:     os.Getenv("CHROME_WS_ENDPOINT"),
			ExecutablePath: os.Getenv("CHROME_PATH"),
			UserDataDir:    envOr("CHROME_USER_DATA_DIR", filepath.Join(vendorBase, "chrome-profile")),
		},
		Edge: BrowserTarget{
			Name:           "edge",
			Host:           envOr("EDGE_REMOTE_DEBUG_HOST", "127.0.0.1"),
			Port:           envIntOr("EDGE_REMOTE_DEBUG_PORT", 9223),
			WSEndpoint:     os.Getenv("EDGE_WS_ENDPOINT"),
			ExecutablePath: os.Getenv("EDGE_PATH"),
			UserDataDir:    envOr("EDGE_USER_DATA_DIR", filepath.Join(vendorBase, "edge-profile")),
		},
		Tool: ToolConfig{
			DefaultFetchURL: firstNonEmpty(
				os.Getenv("DEFAULT_FETCH_URL"),
				os.Getenv("MCP_DEFAULT_FETCH_URL"),
			),
		},
		Log: LogConfig{
			Level:  envOr("BRIDGE_LOG_LEVEL", "info"),
			Format: envOr("BRIDGE_LOG_FORMAT", "json"),
		},
	}
}

// vendorScopedBase returns the OS-conventional per-user data directory,
// scoped under a vendor directory so different apps' Chrome profiles
// never collide (spec §3/§6 "vendor-scoped path").
func vendorScopedBase() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "browserbridge")
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}
