package tree

import (
	"fmt"
	"html"
	"strings"

	"github.com/ziadkadry99/arcdocs/internal/manifest"
)

var icons = map[NodeType]string{
	TypeRoute:  "🌐",
	TypeLambda: "λ",
	TypeTable:  "🗄",
}

const defaultIcon = "📁"

func iconFor(t NodeType) string {
	if icon, ok := icons[t]; ok {
		return icon
	}
	return defaultIcon
}

// Render returns the full markup: the category checkboxes, the filter box
// and the nested node list.
func (r *Renderer) Render() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var b strings.Builder
	b.WriteString(`<div class="arc-tree-header">` + "\n")
	for _, c := range manifest.Categories {
		checked := ""
		if r.toggles.Enabled(c) {
			checked = " checked"
		}
		fmt.Fprintf(&b, `  <label class="tree-toggle-option"><input type="checkbox" data-toggle="%s"%s> %s</label>`+"\n",
			c, checked, groupLabels[c])
	}
	fmt.Fprintf(&b, `  <input type="search" class="tree-search" placeholder="Filter…" value="%s" autocomplete="off">`+"\n",
		html.EscapeString(r.query))
	b.WriteString("</div>\n")

	b.WriteString(`<div class="arc-tree">` + "\n")
	r.renderList(&b, r.nodes, "tree")
	if r.noMatches {
		fmt.Fprintf(&b, `<div class="no-matches">No matches for "%s"</div>`+"\n", html.EscapeString(r.query))
	}
	b.WriteString("</div>\n")
	return b.String()
}

// renderList writes nodes as a <ul>. Callers must hold r.mu.
func (r *Renderer) renderList(b *strings.Builder, nodes []*Node, class string) {
	fmt.Fprintf(b, "<ul class=\"%s\">\n", class)
	for _, n := range nodes {
		vn := r.view[n.ID]

		classes := "tree-node"
		if n.IsGroup() {
			classes += " tree-group"
		} else {
			classes += " tree-leaf tree-" + string(n.Type)
		}
		if vn.collapsed {
			classes += " collapsed"
		}
		style := ""
		if vn.hidden {
			style = ` style="display: none"`
		}

		fmt.Fprintf(b, `<li class="%s" data-id="%s"%s>`, classes, html.EscapeString(n.ID), style)
		b.WriteString(`<div class="tree-item">`)
		if len(n.Children) > 0 {
			b.WriteString(`<span class="tree-expand">▼</span>`)
		}
		fmt.Fprintf(b, `<span class="tree-icon">%s</span>`, iconFor(n.Type))
		fmt.Fprintf(b, `<span class="tree-label">%s</span>`, html.EscapeString(n.Name))
		if n.Type == TypeRoute {
			if e := Resolve(r.manifest, n.ID); e != nil {
				label := CopyLabel
				if cs, ok := r.copyState[n.ID]; ok {
					label = cs.label
				}
				fmt.Fprintf(b, `<button class="copy-btn" data-copy="%s">%s</button>`,
					html.EscapeString(CopyText(e.Data.(manifest.Route))), html.EscapeString(label))
			}
		}
		b.WriteString("</div>")
		if len(n.Children) > 0 {
			b.WriteString("\n")
			r.renderList(b, n.Children, "tree-children")
		}
		b.WriteString("</li>\n")
	}
	b.WriteString("</ul>\n")
}

// RenderText returns the visible tree as indented plain text. Collapsed
// groups show their label only.
func (r *Renderer) RenderText() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var b strings.Builder
	for _, n := range r.nodes {
		vn := r.view[n.ID]
		if vn.hidden {
			continue
		}
		marker := "▼"
		if vn.collapsed {
			marker = "▶"
		}
		fmt.Fprintf(&b, "%s %s %s (%d)\n", marker, iconFor(n.Type), n.Name, len(n.Children))
		if vn.collapsed {
			continue
		}
		var visible []*Node
		for _, c := range n.Children {
			if !r.view[c.ID].hidden {
				visible = append(visible, c)
			}
		}
		for i, c := range visible {
			branch := "├── "
			if i == len(visible)-1 {
				branch = "└── "
			}
			fmt.Fprintf(&b, "  %s%s %s  [%s]\n", branch, iconFor(c.Type), c.Name, c.ID)
		}
	}
	if r.noMatches {
		fmt.Fprintf(&b, "No matches for %q\n", r.query)
	}
	return b.String()
}
