package tree

import (
	"strings"
	"sync"
	"time"

	"github.com/ziadkadry99/arcdocs/internal/clock"
	"github.com/ziadkadry99/arcdocs/internal/manifest"
)

// Copy control labels.
const (
	CopyLabel   = "Copy"
	CopiedLabel = "✓ Copied!"
	FailedLabel = "✗ Failed"

	copyFeedback = 2 * time.Second
)

// Copier puts text on the clipboard. *clipboard.Helper implements it.
type Copier interface {
	Copy(text string) bool
}

// Options configures a Renderer.
type Options struct {
	Clipboard   Copier
	Clock       clock.Clock
	OnNodeClick func(nodeID string, m *manifest.Manifest)
	OnSearch    func(query string)
}

type viewNode struct {
	node      *Node
	parent    *viewNode
	collapsed bool
	hidden    bool
}

// Renderer holds the view state of one tree: the manifest it shows, the
// category toggles, which nodes are collapsed or filtered out, and the
// state of each copy control.
type Renderer struct {
	mu        sync.Mutex
	opts      Options
	manifest  *manifest.Manifest
	toggles   Toggles
	nodes     []*Node
	view      map[string]*viewNode
	order     []*viewNode
	query     string
	noMatches bool
	copyState map[string]copyState
}

type copyState struct {
	label string
	gen   int
}

// NewRenderer creates a Renderer with every category enabled.
func NewRenderer(opts Options) *Renderer {
	if opts.Clock == nil {
		opts.Clock = clock.Real()
	}
	return &Renderer{
		opts:      opts,
		toggles:   DefaultToggles(),
		view:      make(map[string]*viewNode),
		copyState: make(map[string]copyState),
	}
}

// Init stores m and rebuilds the view. It may be called again with a new
// manifest, for example after a live update.
func (r *Renderer) Init(m *manifest.Manifest) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.manifest = m
	r.rebuild()
}

// rebuild replaces the whole view model. Collapse, filter and copy state
// are reset because node ids may now refer to different entries.
// Callers must hold r.mu.
func (r *Renderer) rebuild() {
	nodes := BuildTree(r.manifest, r.toggles)
	view := make(map[string]*viewNode)
	var order []*viewNode
	var walk func(n *Node, parent *viewNode)
	walk = func(n *Node, parent *viewNode) {
		vn := &viewNode{node: n, parent: parent}
		view[n.ID] = vn
		order = append(order, vn)
		for _, c := range n.Children {
			walk(c, vn)
		}
	}
	for _, n := range nodes {
		walk(n, nil)
	}

	r.nodes = nodes
	r.view = view
	r.order = order
	r.query = ""
	r.noMatches = false
	r.copyState = make(map[string]copyState)
}

// Manifest returns the manifest currently shown.
func (r *Renderer) Manifest() *manifest.Manifest {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.manifest
}

// Nodes returns the current group nodes.
func (r *Renderer) Nodes() []*Node {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.nodes
}

// Toggles returns the current toggle state.
func (r *Renderer) Toggles() Toggles {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.toggles
}

// SetToggle switches a category and rebuilds the whole view.
func (r *Renderer) SetToggle(c manifest.Category, on bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.toggles.Set(c, on)
	r.rebuild()
}

// SetToggles replaces the toggle state and rebuilds the whole view.
func (r *Renderer) SetToggles(t Toggles) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.toggles = t
	r.rebuild()
}

// Click reports a click on a node to the OnNodeClick callback.
func (r *Renderer) Click(nodeID string) {
	r.mu.Lock()
	_, ok := r.view[nodeID]
	m := r.manifest
	cb := r.opts.OnNodeClick
	r.mu.Unlock()

	if ok && cb != nil {
		cb(nodeID, m)
	}
}

// ToggleExpand flips the collapsed state of a node with children. It
// never reaches OnNodeClick.
func (r *Renderer) ToggleExpand(nodeID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if vn, ok := r.view[nodeID]; ok && len(vn.node.Children) > 0 {
		vn.collapsed = !vn.collapsed
	}
}

// Collapsed reports whether the node is collapsed.
func (r *Renderer) Collapsed(nodeID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	vn, ok := r.view[nodeID]
	return ok && vn.collapsed
}

// Visible reports whether the node exists and is not hidden by the filter.
func (r *Renderer) Visible(nodeID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	vn, ok := r.view[nodeID]
	return ok && !vn.hidden
}

// GetNode resolves a node id against the current manifest.
func (r *Renderer) GetNode(nodeID string) *Entity {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Resolve(r.manifest, nodeID)
}

// CopyText returns the literal a route node's copy control carries.
func CopyText(route manifest.Route) string {
	return route.Method + " " + route.Path
}

// Copy copies a route node's "{METHOD} {path}" literal. The control shows
// CopiedLabel or FailedLabel for two seconds, then reverts. It reports
// whether the copy succeeded; non-route nodes report false.
func (r *Renderer) Copy(nodeID string) bool {
	r.mu.Lock()
	e := Resolve(r.manifest, nodeID)
	_, inView := r.view[nodeID]
	clip := r.opts.Clipboard
	r.mu.Unlock()

	if e == nil || e.Type != TypeRoute || !inView || clip == nil {
		return false
	}
	ok := clip.Copy(CopyText(e.Data.(manifest.Route)))

	label := CopiedLabel
	if !ok {
		label = FailedLabel
	}
	r.mu.Lock()
	gen := r.copyState[nodeID].gen + 1
	r.copyState[nodeID] = copyState{label: label, gen: gen}
	copies := r.copyState
	r.mu.Unlock()

	r.opts.Clock.AfterFunc(copyFeedback, func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		// A rebuild or a later click owns the label now.
		if cs, ok := copies[nodeID]; ok && cs.gen == gen {
			delete(copies, nodeID)
		}
	})
	return ok
}

// CopyLabel returns the current label of a node's copy control.
func (r *Renderer) CopyLabel(nodeID string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cs, ok := r.copyState[nodeID]; ok {
		return cs.label
	}
	return CopyLabel
}

// Filter hides nodes whose label does not contain query, case-insensitively.
// Groups stay visible while any child matches. Ancestors of matching nodes
// are expanded; the filter never collapses anything. An empty query shows
// every node again.
func (r *Renderer) Filter(query string) {
	r.mu.Lock()
	r.applyFilter(query)
	cb := r.opts.OnSearch
	r.mu.Unlock()

	if cb != nil {
		cb(query)
	}
}

// applyFilter implements Filter. Callers must hold r.mu.
func (r *Renderer) applyFilter(query string) {
	q := strings.ToLower(strings.TrimSpace(query))
	r.query = query
	if q == "" {
		r.query = ""
		for _, vn := range r.order {
			vn.hidden = false
		}
		r.noMatches = false
		return
	}

	for _, vn := range r.order {
		vn.hidden = true
	}
	matches := 0
	for _, vn := range r.order {
		if !strings.Contains(strings.ToLower(vn.node.Name), q) {
			continue
		}
		matches++
		vn.hidden = false
		for p := vn.parent; p != nil; p = p.parent {
			p.hidden = false
			p.collapsed = false
		}
	}
	r.noMatches = matches == 0
}

// Query returns the active filter query.
func (r *Renderer) Query() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.query
}

// NoMatches returns the query when the active filter matched nothing.
func (r *Renderer) NoMatches() (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.query, r.noMatches
}
