package site

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ziadkadry99/arcdocs/internal/progress"
)

// Generator exports Docs as a static HTML site.
type Generator struct {
	Docs      *Docs
	OutputDir string
	Reporter  progress.Reporter
}

// NewGenerator creates a Generator. A nil reporter discards progress.
func NewGenerator(docs *Docs, outputDir string, reporter progress.Reporter) *Generator {
	if reporter == nil {
		reporter = progress.Nop{}
	}
	return &Generator{Docs: docs, OutputDir: outputDir, Reporter: reporter}
}

// Generate writes every page, the static assets, the search index and one
// stub page per redirect. It returns the number of pages written.
func (g *Generator) Generate() (int, error) {
	pages := g.Docs.Pages()
	if len(pages) == 0 {
		return 0, fmt.Errorf("no markdown files found in %s", g.Docs.Dir)
	}

	if err := os.MkdirAll(g.OutputDir, 0o755); err != nil {
		return 0, err
	}
	if err := os.WriteFile(filepath.Join(g.OutputDir, "style.css"), []byte(cssContent), 0o644); err != nil {
		return 0, err
	}
	if err := os.WriteFile(filepath.Join(g.OutputDir, "script.js"), []byte(jsContent), 0o644); err != nil {
		return 0, err
	}

	entries, err := BuildSearchIndex(g.Docs.Dir, pages)
	if err != nil {
		return 0, fmt.Errorf("building search index: %w", err)
	}
	if err := WriteSearchIndex(entries, filepath.Join(g.OutputDir, "search-index.json")); err != nil {
		return 0, fmt.Errorf("writing search index: %w", err)
	}

	g.Reporter.Start(len(pages))
	for i, relPath := range pages {
		if err := g.renderPage(relPath); err != nil {
			return 0, fmt.Errorf("rendering %s: %w", relPath, err)
		}
		g.Reporter.Update(i+1, relPath)
	}
	g.Reporter.Finish()

	if err := g.writeRedirects(); err != nil {
		return 0, err
	}
	return len(pages), nil
}

func (g *Generator) renderPage(relPath string) error {
	outPath := filepath.Join(g.OutputDir, filepath.FromSlash(mdPathToHTML(relPath)))
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return err
	}
	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	if err := g.Docs.Render(f, relPath, basePathFor(relPath)); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

var redirectTemplate = template.Must(template.New("redirect").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta http-equiv="refresh" content="0; url={{.}}">
  <link rel="canonical" href="{{.}}">
  <title>Redirecting…</title>
</head>
<body><a href="{{.}}">Redirecting…</a></body>
</html>
`))

// writeRedirects writes a meta-refresh page at each redirect source. Sources
// that collide with a real page are skipped.
func (g *Generator) writeRedirects() error {
	froms := make([]string, 0, len(g.Docs.Redirects()))
	for from := range g.Docs.Redirects() {
		froms = append(froms, from)
	}
	sort.Strings(froms)

	for _, from := range froms {
		to, ok := g.Docs.Redirects().Lookup(from)
		if !ok || from == "/" {
			continue
		}
		rel := strings.TrimPrefix(from, "/") + ".html"
		if _, isPage := g.Docs.Resolve(from); isPage {
			continue
		}

		target := strings.TrimPrefix(to, "/")
		if target == "" {
			target = "index"
		}
		href := basePathFor(rel) + target + ".html"

		outPath := filepath.Join(g.OutputDir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
			return err
		}
		f, err := os.Create(outPath)
		if err != nil {
			return err
		}
		if err := redirectTemplate.Execute(f, href); err != nil {
			f.Close()
			return fmt.Errorf("writing redirect %s: %w", from, err)
		}
		if err := f.Close(); err != nil {
			return err
		}
	}
	return nil
}
