package site

import (
	"bufio"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// maxSearchContent caps the text stored per page in the search index.
const maxSearchContent = 2000

// SearchEntry is one page in the client-side search index.
type SearchEntry struct {
	Path    string `json:"path"`
	Title   string `json:"title"`
	Summary string `json:"summary"`
	Content string `json:"content"`
}

// BuildSearchIndex reads the given markdown pages under docsDir.
func BuildSearchIndex(docsDir string, relPaths []string) ([]SearchEntry, error) {
	entries := make([]SearchEntry, 0, len(relPaths))
	for _, rel := range relPaths {
		entry, err := parseMarkdownForSearch(filepath.Join(docsDir, filepath.FromSlash(rel)), rel)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// parseMarkdownForSearch extracts the title, the first paragraph line as a
// summary, and the flattened text of a markdown file.
func parseMarkdownForSearch(filePath, relPath string) (SearchEntry, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return SearchEntry{}, err
	}
	defer f.Close()

	entry := SearchEntry{Path: mdPathToHTML(relPath)}
	var text []string
	inFence := false

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "```") {
			inFence = !inFence
			continue
		}
		if line == "" {
			continue
		}
		if entry.Title == "" && strings.HasPrefix(line, "# ") {
			entry.Title = strings.TrimPrefix(line, "# ")
			continue
		}
		if entry.Title != "" && entry.Summary == "" && !inFence && !strings.HasPrefix(line, "#") {
			entry.Summary = line
		}
		text = append(text, strings.TrimLeft(line, "# "))
	}
	if err := scanner.Err(); err != nil {
		return SearchEntry{}, err
	}

	entry.Content = strings.Join(text, " ")
	if len(entry.Content) > maxSearchContent {
		entry.Content = entry.Content[:maxSearchContent]
	}
	if entry.Title == "" {
		entry.Title = relPath
	}
	return entry, nil
}

// WriteSearchIndex writes the search index as JSON to the given path.
func WriteSearchIndex(entries []SearchEntry, outputPath string) error {
	f, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	if err := writeEntries(f, entries); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeEntries(w io.Writer, entries []SearchEntry) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}
