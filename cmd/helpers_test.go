package cmd

import (
	"path/filepath"
	"testing"

	"github.com/ziadkadry99/arcdocs/internal/config"
	"github.com/ziadkadry99/arcdocs/internal/manifest"
	"github.com/ziadkadry99/arcdocs/internal/walker"
)

const exampleDir = "../testdata/example"

func exampleConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load(filepath.Join(exampleDir, ".arcdocs.yml"))
	if err != nil {
		t.Fatalf("loading example config: %v", err)
	}
	cfg.ProjectRoot = exampleDir
	cfg.Manifest = filepath.Join(exampleDir, cfg.Manifest)
	cfg.DocsDir = filepath.Join(exampleDir, cfg.DocsDir)
	return cfg
}

func TestLoadManifest(t *testing.T) {
	cfg := exampleConfig(t)
	m, path, err := loadManifest(cfg, "")
	if err != nil {
		t.Fatalf("loadManifest: %v", err)
	}
	if filepath.Base(path) != "app.arc" {
		t.Errorf("path = %q, want app.arc", path)
	}
	if m.App != "bookshelf" {
		t.Errorf("app = %q, want bookshelf", m.App)
	}
	if got := summarize(m); got != "5 routes, 3 lambdas, 2 tables" {
		t.Errorf("summary = %q", got)
	}
}

func TestLoadManifestOverride(t *testing.T) {
	cfg := exampleConfig(t)
	cfg.ProjectRoot = t.TempDir()
	if _, _, err := loadManifest(cfg, filepath.Join(cfg.ProjectRoot, "nope.arc")); err == nil {
		t.Error("expected error for a missing override")
	}
}

func TestDiscoverDocs(t *testing.T) {
	cfg := exampleConfig(t)
	files, err := discoverDocs(cfg)
	if err != nil {
		t.Fatalf("discoverDocs: %v", err)
	}
	got := walker.RelPaths(files)
	want := []string{"guide/routes.md", "index.md"}
	if len(got) != len(want) {
		t.Fatalf("pages = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("pages[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	cfg.DocsDir = filepath.Join(t.TempDir(), "missing")
	files, err = discoverDocs(cfg)
	if err != nil || len(files) != 0 {
		t.Errorf("missing docs dir: files=%v err=%v", files, err)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	if got := summarize(&manifest.Manifest{}); got != "0 routes, 0 lambdas, 0 tables" {
		t.Errorf("summary = %q", got)
	}
}
