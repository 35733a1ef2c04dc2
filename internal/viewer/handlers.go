package viewer

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/arcdocs/internal/linker"
	"github.com/ziadkadry99/arcdocs/internal/manifest"
	"github.com/ziadkadry99/arcdocs/internal/tree"
)

// nodeResponse is the JSON response for the node endpoint.
type nodeResponse struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Entity   *tree.Entity `json:"entity"`
	LinkPath string       `json:"linkPath,omitempty"`
	LinkHTML string       `json:"linkHtml,omitempty"`
}

func (v *Viewer) handleArc(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	w.Write(v.source.Snapshot())
}

// handleTree renders the tree fragment. Categories are switched off with
// routes=0, lambdas=false and so on; q filters the labels.
func (v *Viewer) handleTree(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	toggles := tree.DefaultToggles()
	for _, c := range manifest.Categories {
		if raw := q.Get(string(c)); raw != "" {
			on, err := strconv.ParseBool(raw)
			if err != nil {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid toggle " + string(c) + ": " + raw})
				return
			}
			toggles.Set(c, on)
		}
	}

	rd := tree.NewRenderer(tree.Options{})
	rd.Init(v.source.Current())
	rd.SetToggles(toggles)
	rd.Filter(q.Get("q"))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(rd.Render()))
}

func (v *Viewer) handleSearch(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, v.searchIndex().GroupedResults(r.URL.Query().Get("q")))
}

func (v *Viewer) handleNode(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	e := tree.Resolve(v.source.Current(), id)
	if e == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "node not found: " + id})
		return
	}

	resp := nodeResponse{ID: id, Name: entityName(e), Entity: e}
	if path, ok := v.linker.GetLinkPath(string(e.Type), resp.Name); ok {
		resp.LinkPath = path
		resp.LinkHTML = linker.NewLink(string(e.Type), resp.Name, nil).HTML()
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleFileExists answers 200 when path names a file under the project
// root and 404 otherwise. Paths escaping the root are rejected.
func (v *Viewer) handleFileExists(w http.ResponseWriter, r *http.Request) {
	p := r.URL.Query().Get("path")
	clean := filepath.Clean(filepath.FromSlash(p))
	if p == "" || filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid path: " + p})
		return
	}

	info, err := os.Stat(filepath.Join(v.projectRoot, clean))
	if err != nil || info.IsDir() {
		writeJSON(w, http.StatusNotFound, map[string]bool{"exists": false})
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"exists": true})
}

func entityName(e *tree.Entity) string {
	switch d := e.Data.(type) {
	case manifest.Route:
		return tree.CopyText(d)
	case manifest.Lambda:
		return d.Name
	case manifest.Table:
		return d.Name
	}
	return ""
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
