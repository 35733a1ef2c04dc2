// Package viewer serves the Arc Viewer: the tree page, its JSON API and the
// change-notification WebSocket.
package viewer

import (
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/arcdocs/internal/linker"
	"github.com/ziadkadry99/arcdocs/internal/manifest"
	"github.com/ziadkadry99/arcdocs/internal/search"
	"github.com/ziadkadry99/arcdocs/internal/watcher"
)

// Viewer serves one manifest Source.
type Viewer struct {
	source      *Source
	hub         *Hub
	projectRoot string
	linker      *linker.ArcFileLinker

	mu    sync.RWMutex
	index *search.Index
	opts  search.Options
}

// New creates a Viewer over src. File existence checks are answered
// relative to projectRoot.
func New(src *Source, projectRoot string, opts search.Options) *Viewer {
	v := &Viewer{
		source:      src,
		hub:         NewHub(),
		projectRoot: projectRoot,
		linker:      linker.NewArcFileLinker(),
		opts:        opts,
	}
	v.reindex(src.Current())
	src.Subscribe(v.onChange)
	return v
}

// Hub returns the notification hub.
func (v *Viewer) Hub() *Hub { return v.hub }

// RegisterPageRoutes mounts every route except the WebSocket. The socket
// is served by Hub().ServeWS, which callers mount outside any request
// timeout.
func (v *Viewer) RegisterPageRoutes(r chi.Router) {
	r.Get("/", v.ServeIndex)
	r.Get("/api/arc", v.handleArc)
	r.Get("/api/tree", v.handleTree)
	r.Get("/api/search", v.handleSearch)
	r.Get("/api/node/{id}", v.handleNode)
	r.Get("/api/file-exists", v.handleFileExists)
}

func (v *Viewer) reindex(m *manifest.Manifest) {
	idx := search.NewIndex(v.opts)
	idx.Init(m)
	v.mu.Lock()
	v.index = idx
	v.mu.Unlock()
}

func (v *Viewer) searchIndex() *search.Index {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.index
}

func (v *Viewer) onChange(m *manifest.Manifest) {
	v.reindex(m)
	v.hub.Broadcast(watcher.Message{Type: watcher.MessageArcChanged, ArcData: m})
}
