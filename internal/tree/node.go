// Package tree turns a manifest into a grouped, filterable, collapsible
// tree. The tree is a plain view model; HTML and terminal renderers read
// it without knowing how it was built.
package tree

import (
	"strconv"
	"strings"

	"github.com/ziadkadry99/arcdocs/internal/manifest"
)

// NodeType identifies the entity behind a leaf node. Groups have no type.
type NodeType string

const (
	TypeRoute  NodeType = "route"
	TypeLambda NodeType = "lambda"
	TypeTable  NodeType = "table"
)

// Node is one element of the tree.
type Node struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Type     NodeType `json:"type,omitempty"`
	Children []*Node  `json:"children,omitempty"`
}

// IsGroup reports whether n is a category group.
func (n *Node) IsGroup() bool { return n.Type == "" }

// Toggles selects which categories are included in the tree.
type Toggles struct {
	Routes  bool `json:"routes"`
	Lambdas bool `json:"lambdas"`
	Tables  bool `json:"tables"`
}

// DefaultToggles enables every category.
func DefaultToggles() Toggles {
	return Toggles{Routes: true, Lambdas: true, Tables: true}
}

// Enabled reports whether category c is switched on.
func (t Toggles) Enabled(c manifest.Category) bool {
	switch c {
	case manifest.CategoryRoutes:
		return t.Routes
	case manifest.CategoryLambdas:
		return t.Lambdas
	case manifest.CategoryTables:
		return t.Tables
	}
	return false
}

// Set switches category c. Unknown categories are ignored.
func (t *Toggles) Set(c manifest.Category, on bool) {
	switch c {
	case manifest.CategoryRoutes:
		t.Routes = on
	case manifest.CategoryLambdas:
		t.Lambdas = on
	case manifest.CategoryTables:
		t.Tables = on
	}
}

var groupLabels = map[manifest.Category]string{
	manifest.CategoryRoutes:  "Routes",
	manifest.CategoryLambdas: "Lambdas",
	manifest.CategoryTables:  "Tables",
}

var idPrefixes = map[NodeType]manifest.Category{
	TypeRoute:  manifest.CategoryRoutes,
	TypeLambda: manifest.CategoryLambdas,
	TypeTable:  manifest.CategoryTables,
}

// GroupID returns the id of the group node for category c.
func GroupID(c manifest.Category) string { return string(c) + "-group" }

// ItemID returns the id of the i-th entry of type t.
func ItemID(t NodeType, i int) string { return string(t) + "-" + strconv.Itoa(i) }

// BuildTree derives the group nodes for m. A group is present only if its
// toggle is on and its list is non-empty. Item ids carry the entry's index
// in its list, so reordering the manifest reassigns ids.
func BuildTree(m *manifest.Manifest, t Toggles) []*Node {
	var groups []*Node
	for _, c := range manifest.Categories {
		if !t.Enabled(c) || m.Len(c) == 0 {
			continue
		}
		g := &Node{ID: GroupID(c), Name: groupLabels[c]}
		switch c {
		case manifest.CategoryRoutes:
			for i, r := range m.Routes {
				g.Children = append(g.Children, &Node{ID: ItemID(TypeRoute, i), Name: r.Method + " " + r.Path, Type: TypeRoute})
			}
		case manifest.CategoryLambdas:
			for i, l := range m.Lambdas {
				g.Children = append(g.Children, &Node{ID: ItemID(TypeLambda, i), Name: l.Name, Type: TypeLambda})
			}
		case manifest.CategoryTables:
			for i, tb := range m.Tables {
				g.Children = append(g.Children, &Node{ID: ItemID(TypeTable, i), Name: tb.Name, Type: TypeTable})
			}
		}
		groups = append(groups, g)
	}
	return groups
}

// Entity is the manifest entry a node id resolves to. Data holds a
// manifest.Route, manifest.Lambda or manifest.Table.
type Entity struct {
	Type  NodeType `json:"type"`
	Index int      `json:"index"`
	Data  any      `json:"data"`
}

// ParseID splits an item id into its type and index. Only ids of the form
// "{type}-{digits}" with a known type are accepted.
func ParseID(id string) (NodeType, int, bool) {
	prefix, suffix, found := strings.Cut(id, "-")
	if !found || suffix == "" {
		return "", 0, false
	}
	t := NodeType(prefix)
	if _, ok := idPrefixes[t]; !ok {
		return "", 0, false
	}
	for _, r := range suffix {
		if r < '0' || r > '9' {
			return "", 0, false
		}
	}
	n, err := strconv.Atoi(suffix)
	if err != nil {
		return "", 0, false
	}
	return t, n, true
}

// Resolve maps an item id back to its entry in m. It returns nil for
// malformed ids, unknown prefixes and out-of-range indices.
func Resolve(m *manifest.Manifest, id string) *Entity {
	t, i, ok := ParseID(id)
	if !ok || m == nil || i >= m.Len(idPrefixes[t]) {
		return nil
	}
	e := &Entity{Type: t, Index: i}
	switch t {
	case TypeRoute:
		e.Data = m.Routes[i]
	case TypeLambda:
		e.Data = m.Lambdas[i]
	case TypeTable:
		e.Data = m.Tables[i]
	}
	return e
}
