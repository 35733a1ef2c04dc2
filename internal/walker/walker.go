// Package walker discovers documentation pages on disk.
package walker

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
)

// File is one page discovered during traversal.
type File struct {
	Path    string    // Absolute path on disk.
	RelPath string    // Slash-separated path relative to the root.
	Size    int64     // File size in bytes.
	ModTime time.Time // Last modification time.
}

// Config controls the behaviour of the Walk function.
type Config struct {
	RootDir string   // Root directory to walk.
	Include []string // Glob patterns; only matching files are returned.
	Exclude []string // Glob patterns; matching files are skipped.
}

// Walk traverses the tree rooted at cfg.RootDir and returns every page that
// passes filtering, sorted by relative path. Hidden and default-excluded
// directories are skipped and the root .gitignore is honoured.
func Walk(cfg Config) ([]File, error) {
	root, err := filepath.Abs(cfg.RootDir)
	if err != nil {
		return nil, fmt.Errorf("walker: resolve root: %w", err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("walker: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("walker: %s is not a directory", root)
	}

	ignore := loadGitignore(filepath.Join(root, ".gitignore"))

	var files []File
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return nil
		}
		name := d.Name()

		if d.IsDir() {
			if path != root && (shouldExcludeDir(name) || strings.HasPrefix(name, ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		if matchesGitignore(relPath, ignore) {
			return nil
		}
		if !MatchesInclude(relPath, cfg.Include) || MatchesExclude(relPath, cfg.Exclude) {
			return nil
		}

		fi, err := d.Info()
		if err != nil {
			return nil
		}
		files = append(files, File{
			Path:    path,
			RelPath: filepath.ToSlash(relPath),
			Size:    fi.Size(),
			ModTime: fi.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walker: traversal: %w", err)
	}

	sort.Slice(files, func(i, j int) bool { return files[i].RelPath < files[j].RelPath })
	return files, nil
}

// RelPaths returns the relative paths of files.
func RelPaths(files []File) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.RelPath
	}
	return out
}

// loadGitignore reads a .gitignore file and returns its non-empty,
// non-comment lines as patterns.
func loadGitignore(path string) []string {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	var patterns []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, line)
	}
	return patterns
}

// matchesGitignore reports whether relPath is ignored. Patterns without a
// slash match any path component; others match from the root.
func matchesGitignore(relPath string, patterns []string) bool {
	normalized := filepath.ToSlash(relPath)
	parts := strings.Split(normalized, "/")

	for _, pattern := range patterns {
		dirOnly := strings.HasSuffix(pattern, "/")
		pattern = strings.TrimPrefix(strings.TrimSuffix(pattern, "/"), "/")

		if !strings.Contains(pattern, "/") {
			for i, part := range parts {
				if dirOnly && i == len(parts)-1 {
					break
				}
				if matched, _ := filepath.Match(pattern, part); matched {
					return true
				}
			}
			continue
		}
		if matched, _ := doublestar.Match(pattern, normalized); matched {
			return true
		}
		if strings.HasPrefix(normalized, pattern+"/") {
			return true
		}
	}
	return false
}
