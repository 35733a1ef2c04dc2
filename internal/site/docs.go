// Package site renders the markdown documentation: served live under /docs
// or exported as a static site.
package site

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"log"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/arcdocs/internal/walker"
)

// pageData holds the data passed to the HTML template for each page.
type pageData struct {
	Title       string
	ProjectName string
	Content     template.HTML
	TreeHTML    template.HTML
	BasePath    string
}

// Docs is a set of markdown pages with their navigation and redirects.
type Docs struct {
	Dir         string
	ProjectName string

	pages     []string
	known     map[string]bool
	nav       *FileTree
	cache     *PageCache
	redirects Redirects
	tmpl      *template.Template
}

// NewDocs indexes the pages found by walker under dir.
func NewDocs(dir, projectName string, files []walker.File, redirects map[string]string) (*Docs, error) {
	tmpl, err := template.New("page").Parse(pageTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing page template: %w", err)
	}

	pages := walker.RelPaths(files)
	titles := make(map[string]string, len(pages))
	known := make(map[string]bool, len(pages))
	for _, p := range pages {
		known[p] = true
		if data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(p))); err == nil {
			titles[p] = extractTitle(string(data), p)
		}
	}

	return &Docs{
		Dir:         dir,
		ProjectName: projectName,
		pages:       pages,
		known:       known,
		nav:         BuildTree(pages, titles),
		cache:       NewPageCache(dir),
		redirects:   NewRedirects(redirects),
		tmpl:        tmpl,
	}, nil
}

// Pages returns the markdown paths of every page.
func (d *Docs) Pages() []string { return d.pages }

// Nav returns the navigation tree.
func (d *Docs) Nav() *FileTree { return d.nav }

// Cache returns the page cache.
func (d *Docs) Cache() *PageCache { return d.cache }

// Redirects returns the normalized redirect table.
func (d *Docs) Redirects() Redirects { return d.redirects }

// Resolve maps a URL path below /docs to a markdown page. "guides/setup",
// "guides/setup.html" and "guides/setup.md" all resolve to
// "guides/setup.md"; a directory resolves to its index.md.
func (d *Docs) Resolve(urlPath string) (string, bool) {
	p := strings.TrimPrefix(path.Clean("/"+urlPath), "/")
	p = strings.TrimSuffix(p, ".html")
	p = strings.TrimSuffix(p, ".md")

	candidates := []string{p + ".md", path.Join(p, "index.md")}
	if p == "" {
		candidates = []string{"index.md"}
	}
	for _, c := range candidates {
		if d.known[c] {
			return c, true
		}
	}
	return "", false
}

// Render writes the full HTML page for relPath.
func (d *Docs) Render(w io.Writer, relPath, basePath string) error {
	page, err := d.cache.Get(relPath)
	if err != nil {
		return err
	}
	return d.tmpl.Execute(w, pageData{
		Title:       page.Title,
		ProjectName: d.ProjectName,
		Content:     template.HTML(page.Content),
		TreeHTML:    template.HTML(d.nav.ToHTML(relPath, basePath)),
		BasePath:    basePath,
	})
}

// RegisterRoutes mounts the docs routes onto the given router.
func (d *Docs) RegisterRoutes(r chi.Router) {
	r.Get("/docs", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/docs/", http.StatusMovedPermanently)
	})
	r.Get("/docs/style.css", d.asset("text/css; charset=utf-8", cssContent))
	r.Get("/docs/script.js", d.asset("application/javascript", jsContent))
	r.Get("/docs/search-index.json", d.handleSearchIndex)
	r.Get("/docs/*", d.handlePage)
}

func (d *Docs) asset(contentType, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentType)
		io.WriteString(w, body)
	}
}

func (d *Docs) handleSearchIndex(w http.ResponseWriter, r *http.Request) {
	entries, err := BuildSearchIndex(d.Dir, d.pages)
	if err != nil {
		log.Printf("site: building search index: %v", err)
		http.Error(w, "search index unavailable", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	writeEntries(w, entries)
}

func (d *Docs) handlePage(w http.ResponseWriter, r *http.Request) {
	p := chi.URLParam(r, "*")
	if target, ok := d.redirects.Lookup(p); ok {
		http.Redirect(w, r, "/docs"+target, http.StatusMovedPermanently)
		return
	}

	relPath, ok := d.Resolve(p)
	if !ok {
		http.NotFound(w, r)
		return
	}

	var buf bytes.Buffer
	if err := d.Render(&buf, relPath, "/docs/"); err != nil {
		log.Printf("site: rendering %s: %v", relPath, err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}
