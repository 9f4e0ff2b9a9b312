package config

import (
	"os"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"CHROME_REMOTE_DEBUG_HOST", "CHROME_REMOTE_DEBUG_PORT", "CHROME_WS_ENDPOINT",
		"CHROME_PATH", "CHROME_USER_DATA_DIR",
		"EDGE_REMOTE_DEBUG_HOST", "EDGE_REMOTE_DEBUG_PORT", "EDGE_WS_ENDPOINT",
		"EDGE_PATH", "EDGE_USER_DATA_DIR",
		"DEFAULT_FETCH_URL", "MCP_DEFAULT_FETCH_URL",
		"BRIDGE_LOG_LEVEL", "BRIDGE_LOG_FORMAT",
	} {
		os.Unsetenv(key)
	}

	cfg := Load()

	if cfg.Chrome.Host != "127.0.0.1" {
		t.Errorf("Chrome.Host = %q, want 127.0.0.1", cfg.Chrome.Host)
	}
	if cfg.Chrome.Port != 9222 {
		t.Errorf("Chrome.Port = %d, want 9222", cfg.Chrome.Port)
	}
	if cfg.Edge.Port != 9223 {
		t.Errorf("Edge.Port = %d, want 9223", cfg.Edge.Port)
	}
	if cfg.Tool.DefaultFetchURL != "" {
		t.Errorf("DefaultFetchURL = %q, want empty", cfg.Tool.DefaultFetchURL)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "json" {
		t.Errorf("Log = %+v, want info/json defaults", cfg.Log)
	}
}

func TestLoadHonorsEnvOverrides(t *testing.T) {
	os.Setenv("CHROME_REMOTE_DEBUG_PORT", "9999")
	os.Setenv("DEFAULT_FETCH_URL", "https://example.com/")
	defer os.Unsetenv("CHROME_REMOTE_DEBUG_PORT")
	defer os.Unsetenv("DEFAULT_FETCH_URL")

	cfg := Load()
	if cfg.Chrome.Port != 9999 {
		t.Errorf("Chrome.Port = %d, want 9999", cfg.Chrome.Port)
	}
	if cfg.Tool.DefaultFetchURL != "https://example.com/" {
		t.Errorf("DefaultFetchURL = %q, want https://example.com/", cfg.Tool.DefaultFetchURL)
	}
}

func TestMCPDefaultFetchURLIsFallback(t *testing.T) {
	os.Unsetenv("DEFAULT_FETCH_URL")
	os.Setenv("MCP_DEFAULT_FETCH_URL", "https://fallback.example.com/")
	defer os.Unsetenv("MCP_DEFAULT_FETCH_URL")

	cfg := Load()
	if cfg.Tool.DefaultFetchURL != "https://fallback.example.com/" {
		t.Errorf("DefaultFetchURL = %q, want fallback value", cfg.Tool.DefaultFetchURL)
	}
}
