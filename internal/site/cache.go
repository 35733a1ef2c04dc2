package site

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/yuin/goldmark"
)

// PageCache renders pages on demand and keeps the result until the source
// file changes on disk.
type PageCache struct {
	dir string
	md  goldmark.Markdown

	mu      sync.Mutex
	entries map[string]cacheEntry
	hits    int
	misses  int
}

type cacheEntry struct {
	modTime time.Time
	size    int64
	page    *Page
}

// NewPageCache creates an empty cache over the docs directory dir.
func NewPageCache(dir string) *PageCache {
	return &PageCache{dir: dir, md: newMarkdown(), entries: make(map[string]cacheEntry)}
}

// Get returns the rendered page for relPath, rendering it again when the
// file's size or modification time changed since it was cached.
func (c *PageCache) Get(relPath string) (*Page, error) {
	src := filepath.Join(c.dir, filepath.FromSlash(relPath))
	info, err := os.Stat(src)
	if err != nil {
		c.Invalidate(relPath)
		return nil, fmt.Errorf("page %s: %w", relPath, err)
	}

	c.mu.Lock()
	if e, ok := c.entries[relPath]; ok && e.modTime.Equal(info.ModTime()) && e.size == info.Size() {
		c.hits++
		c.mu.Unlock()
		return e.page, nil
	}
	c.misses++
	c.mu.Unlock()

	data, err := os.ReadFile(src)
	if err != nil {
		return nil, fmt.Errorf("page %s: %w", relPath, err)
	}
	page, err := renderMarkdown(c.md, relPath, data)
	if err != nil {
		return nil, fmt.Errorf("page %s: %w", relPath, err)
	}

	c.mu.Lock()
	c.entries[relPath] = cacheEntry{modTime: info.ModTime(), size: info.Size(), page: page}
	c.mu.Unlock()
	return page, nil
}

// Invalidate drops relPath from the cache.
func (c *PageCache) Invalidate(relPath string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, relPath)
}

// Clear drops every cached page.
func (c *PageCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry)
}

// Stats returns the number of cache hits and misses so far.
func (c *PageCache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
