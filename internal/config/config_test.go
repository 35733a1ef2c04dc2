package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ziadkadry99/arcdocs/internal/search"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Manifest != "app.arc" {
		t.Errorf("expected default manifest %q, got %q", "app.arc", cfg.Manifest)
	}
	if cfg.SiteDir != "_site" {
		t.Errorf("expected default site_dir %q, got %q", "_site", cfg.SiteDir)
	}
	if cfg.Watcher.PollInterval != 2*time.Second {
		t.Errorf("expected poll interval 2s, got %v", cfg.Watcher.PollInterval)
	}
	if cfg.Watcher.ReconnectDelay != 5*time.Second {
		t.Errorf("expected reconnect delay 5s, got %v", cfg.Watcher.ReconnectDelay)
	}
	if cfg.Search.Threshold != 0.3 {
		t.Errorf("expected search threshold 0.3, got %g", cfg.Search.Threshold)
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.arcdocs.yml")

	original := DefaultConfig()
	original.Manifest = "infra/app.arc"
	original.DocsDir = "handbook"
	original.Port = 8080
	original.Redirects = map[string]string{"/old": "/new"}
	original.Watcher.PollInterval = 750 * time.Millisecond
	original.Search.Keys = []string{search.KeyName, search.KeyAttributes}

	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Manifest != original.Manifest {
		t.Errorf("manifest: got %q, want %q", loaded.Manifest, original.Manifest)
	}
	if loaded.DocsDir != original.DocsDir {
		t.Errorf("docs_dir: got %q, want %q", loaded.DocsDir, original.DocsDir)
	}
	if loaded.Port != original.Port {
		t.Errorf("port: got %d, want %d", loaded.Port, original.Port)
	}
	if loaded.Redirects["/old"] != "/new" {
		t.Errorf("redirects: got %v", loaded.Redirects)
	}
	if loaded.Watcher.PollInterval != original.Watcher.PollInterval {
		t.Errorf("poll_interval: got %v, want %v", loaded.Watcher.PollInterval, original.Watcher.PollInterval)
	}
	if strings.Join(loaded.Search.Keys, ",") != "name,attributes" {
		t.Errorf("search keys: got %v", loaded.Search.Keys)
	}
}

func TestLoadHumanDurations(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "arcdocs.yml")
	data := "manifest: app.arc\nwatcher:\n  poll_interval: 3s\n  reconnect_delay: 1m\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Watcher.PollInterval != 3*time.Second {
		t.Errorf("poll_interval: got %v", cfg.Watcher.PollInterval)
	}
	if cfg.Watcher.ReconnectDelay != time.Minute {
		t.Errorf("reconnect_delay: got %v", cfg.Watcher.ReconnectDelay)
	}
	if cfg.Port != 3333 {
		t.Errorf("unset keys should keep defaults, got port %d", cfg.Port)
	}
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nonexistent.yml")

	// Loading a missing file should return defaults, not an error.
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load should not fail for missing file: %v", err)
	}
	if cfg.Manifest != "app.arc" {
		t.Errorf("expected default manifest, got %q", cfg.Manifest)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yml")

	cfg := DefaultConfig()
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	t.Setenv("ARCDOCS_PORT", "4444")
	t.Setenv("ARCDOCS_WATCHER__SERVER_URL", "http://arc.internal:9000")

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Port != 4444 {
		t.Errorf("env override failed: got port %d, want 4444", loaded.Port)
	}
	if loaded.Watcher.ServerURL != "http://arc.internal:9000" {
		t.Errorf("nested env override failed: got %q", loaded.Watcher.ServerURL)
	}
}

func TestValidateValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig should be valid, got: %v", err)
	}
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty manifest", func(c *Config) { c.Manifest = "" }},
		{"port too large", func(c *Config) { c.Port = 70000 }},
		{"zero poll interval", func(c *Config) { c.Watcher.PollInterval = 0 }},
		{"negative reconnect delay", func(c *Config) { c.Watcher.ReconnectDelay = -time.Second }},
		{"threshold above one", func(c *Config) { c.Search.Threshold = 1.5 }},
		{"min match zero", func(c *Config) { c.Search.MinMatchCharLength = 0 }},
		{"no search keys", func(c *Config) { c.Search.Keys = nil }},
		{"unknown search key", func(c *Config) { c.Search.Keys = []string{"color"} }},
		{"negative toast", func(c *Config) { c.ToastDuration = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestResolveManifest(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "arc.json"), []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := DefaultConfig()
	cfg.ProjectRoot = dir
	cfg.Manifest = filepath.Join(dir, "missing.arc")

	got, err := cfg.ResolveManifest()
	if err != nil {
		t.Fatalf("ResolveManifest: %v", err)
	}
	if got != filepath.Join(dir, "arc.json") {
		t.Errorf("got %q, want arc.json under project root", got)
	}

	cfg.Manifest = got
	if again, _ := cfg.ResolveManifest(); again != got {
		t.Errorf("existing manifest should win, got %q", again)
	}

	empty := DefaultConfig()
	empty.ProjectRoot = t.TempDir()
	empty.Manifest = filepath.Join(empty.ProjectRoot, "nope.arc")
	if _, err := empty.ResolveManifest(); err == nil {
		t.Error("expected error when no manifest exists")
	}
}

func TestSplitPatterns(t *testing.T) {
	got := splitPatterns(" a/**, ,b.md ,")
	if strings.Join(got, "|") != "a/**|b.md" {
		t.Errorf("got %q", got)
	}
}

func TestDetectManifest(t *testing.T) {
	dir := t.TempDir()
	if got := detectManifest(dir); got != "" {
		t.Errorf("expected no manifest, got %q", got)
	}
	if err := os.WriteFile(filepath.Join(dir, ".arc"), nil, 0644); err != nil {
		t.Fatal(err)
	}
	if got := detectManifest(dir); got != ".arc" {
		t.Errorf("got %q, want .arc", got)
	}
}
