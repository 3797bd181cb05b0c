package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.API.BaseURL != "https://www.tabnews.com.br/api/v1" {
		t.Errorf("API.BaseURL = %s", cfg.API.BaseURL)
	}
	if cfg.API.HTTPTimeout != 30*time.Second {
		t.Errorf("API.HTTPTimeout = %v, want 30s", cfg.API.HTTPTimeout)
	}
	if cfg.API.PerPage != 10 {
		t.Errorf("API.PerPage = %d, want 10", cfg.API.PerPage)
	}
	if cfg.API.Strategy != "relevant" {
		t.Errorf("API.Strategy = %s, want relevant", cfg.API.Strategy)
	}

	if cfg.Feed.Source != "api" {
		t.Errorf("Feed.Source = %s, want api", cfg.Feed.Source)
	}

	if cfg.Database.Path == "" {
		t.Error("Database.Path should not be empty")
	}

	if cfg.Keys.Modifier != "ctrl" {
		t.Errorf("Keys.Modifier = %s, want ctrl", cfg.Keys.Modifier)
	}
	if cfg.Keys.Bindings.Quit != "q" || cfg.Keys.Bindings.Comments != "c" {
		t.Errorf("unexpected default bindings: %+v", cfg.Keys.Bindings)
	}
}

func TestLoadWithoutConfigFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	if err == nil {
		// viper errors on an explicitly named missing file; both behaviors
		// are acceptable as long as defaults survive when no error is raised
		if cfg.API.PerPage != 10 {
			t.Errorf("API.PerPage = %d, want 10", cfg.API.PerPage)
		}
	}
}

func TestLoadReadsConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	content := `
[api]
per_page = 25
strategy = "new"

[feed]
source = "rss"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.API.PerPage != 25 {
		t.Errorf("API.PerPage = %d, want 25", cfg.API.PerPage)
	}
	if cfg.API.Strategy != "new" {
		t.Errorf("API.Strategy = %s, want new", cfg.API.Strategy)
	}
	if cfg.Feed.Source != "rss" {
		t.Errorf("Feed.Source = %s, want rss", cfg.Feed.Source)
	}
	// Untouched keys keep defaults
	if cfg.API.BaseURL != "https://www.tabnews.com.br/api/v1" {
		t.Errorf("API.BaseURL = %s", cfg.API.BaseURL)
	}
}

func TestTokenFromEnvironment(t *testing.T) {
	t.Setenv("TABNEWS_TOKEN", "env-token")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Auth.Token != "env-token" {
		t.Errorf("Auth.Token = %q, want env-token", cfg.Auth.Token)
	}
}

func TestTNTokenTakesPrecedence(t *testing.T) {
	t.Setenv("TN_TOKEN", "primary")
	t.Setenv("TABNEWS_TOKEN", "fallback")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Auth.Token != "primary" {
		t.Errorf("Auth.Token = %q, want primary", cfg.Auth.Token)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	original := defaultConfig()
	original.API.PerPage = 15

	if err := Save(original, path); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if loaded.API.PerPage != 15 {
		t.Errorf("API.PerPage = %d, want 15", loaded.API.PerPage)
	}
}

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()

	if got := expandPath("~/foo.db"); got != filepath.Join(home, "foo.db") {
		t.Errorf("expandPath(~/foo.db) = %s", got)
	}
	if got := expandPath(""); got != "" {
		t.Errorf("expandPath(\"\") = %s", got)
	}
	if got := expandPath("/abs/path"); got != "/abs/path" {
		t.Errorf("expandPath(/abs/path) = %s", got)
	}
}
