package linker

import "sync"

// ArcFileLinker memoizes GetLinkPath for the lifetime of a session. The
// cache is never evicted; it is bounded by the number of distinct nodes
// looked up.
type ArcFileLinker struct {
	mu    sync.Mutex
	cache map[string]cached
}

type cached struct {
	path string
	ok   bool
}

// NewArcFileLinker creates an empty caching linker.
func NewArcFileLinker() *ArcFileLinker {
	return &ArcFileLinker{cache: make(map[string]cached)}
}

// GetLinkPath returns the cached path for the node, computing it on first use.
func (a *ArcFileLinker) GetLinkPath(nodeType, nodeName string) (string, bool) {
	key := nodeType + ":" + nodeName

	a.mu.Lock()
	defer a.mu.Unlock()
	if c, ok := a.cache[key]; ok {
		return c.path, c.ok
	}
	path, ok := GetLinkPath(nodeType, nodeName)
	a.cache[key] = cached{path: path, ok: ok}
	return path, ok
}

// Len returns the number of cached lookups.
func (a *ArcFileLinker) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.cache)
}
