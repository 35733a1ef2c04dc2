package walker

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

// writeTree creates files (relative path -> content) under a temp root.
func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func docsTree(t *testing.T) string {
	return writeTree(t, map[string]string{
		"index.md":                   "# Home",
		"guides/quickstart.md":       "# Quickstart",
		"guides/deploy/aws.md":       "# AWS",
		"reference/arc/http.md":      "# @http",
		"reference/arc/notes.txt":    "not a page",
		"drafts/wip.md":              "# WIP",
		"node_modules/pkg/README.md": "# vendored",
		".cache/page.md":             "# hidden",
		".gitignore":                 "drafts/\n# comment\n*.tmp.md\n",
		"scratch.tmp.md":             "# temp",
	})
}

func TestWalk_DefaultsToMarkdown(t *testing.T) {
	files, err := Walk(Config{RootDir: docsTree(t)})
	if err != nil {
		t.Fatalf("Walk() error: %v", err)
	}

	want := []string{
		"guides/deploy/aws.md",
		"guides/quickstart.md",
		"index.md",
		"reference/arc/http.md",
	}
	if got := RelPaths(files); !reflect.DeepEqual(got, want) {
		t.Fatalf("Walk() = %v, want %v", got, want)
	}
}

func TestWalk_FileFields(t *testing.T) {
	root := docsTree(t)
	files, err := Walk(Config{RootDir: root, Include: []string{"index.md"}})
	if err != nil {
		t.Fatalf("Walk() error: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("expected 1 file, got %d", len(files))
	}
	f := files[0]
	if f.Size != int64(len("# Home")) {
		t.Errorf("Size = %d", f.Size)
	}
	if f.ModTime.IsZero() {
		t.Error("ModTime not set")
	}
	if !filepath.IsAbs(f.Path) {
		t.Errorf("Path %q should be absolute", f.Path)
	}
}

func TestWalk_IncludeExclude(t *testing.T) {
	root := docsTree(t)

	files, err := Walk(Config{
		RootDir: root,
		Include: []string{"guides/**/*.md"},
		Exclude: []string{"**/deploy/**"},
	})
	if err != nil {
		t.Fatalf("Walk() error: %v", err)
	}
	if got, want := RelPaths(files), []string{"guides/quickstart.md"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Walk() = %v, want %v", got, want)
	}
}

func TestWalk_MissingRoot(t *testing.T) {
	if _, err := Walk(Config{RootDir: filepath.Join(t.TempDir(), "nope")}); err == nil {
		t.Fatal("expected error for missing root")
	}
}

func TestMatchesInclude_Empty(t *testing.T) {
	if !MatchesInclude("a/b.md", nil) {
		t.Error("default include should accept markdown")
	}
	if MatchesInclude("a/b.txt", nil) {
		t.Error("default include should reject non-markdown")
	}
}

func TestMatchesExclude(t *testing.T) {
	cases := []struct {
		path     string
		patterns []string
		want     bool
	}{
		{"a/b.md", nil, false},
		{"drafts/x.md", []string{"drafts/**"}, true},
		{"deep/README.md", []string{"README.md"}, true},
		{"deep/guide.md", []string{"README.md"}, false},
	}
	for _, tc := range cases {
		if got := MatchesExclude(tc.path, tc.patterns); got != tc.want {
			t.Errorf("MatchesExclude(%q, %v) = %v, want %v", tc.path, tc.patterns, got, tc.want)
		}
	}
}

func TestMatchesGitignore(t *testing.T) {
	patterns := []string{"drafts/", "*.tmp.md", "/build/out"}
	cases := []struct {
		path string
		want bool
	}{
		{"drafts/a.md", true},
		{"drafts", false},
		{"notes.tmp.md", true},
		{"build/out/page.md", true},
		{"guides/a.md", false},
	}
	for _, tc := range cases {
		if got := matchesGitignore(tc.path, patterns); got != tc.want {
			t.Errorf("matchesGitignore(%q) = %v, want %v", tc.path, got, tc.want)
		}
	}
}
