package site

import (
	"fmt"
	"html"
	"path"
	"sort"
	"strings"
)

// FileTree is a node of the sidebar navigation.
type FileTree struct {
	Name     string
	Title    string // Display name: the page's first heading, or the formatted directory name.
	Path     string // Files: markdown path. Directories: directory path such as "guides/deploy".
	IsDir    bool
	Children []*FileTree
}

// BuildTree constructs a FileTree from slash-separated markdown paths.
// titles optionally maps a path to its display title.
func BuildTree(paths []string, titles map[string]string) *FileTree {
	root := &FileTree{Name: "docs", IsDir: true}

	for _, p := range paths {
		parts := strings.Split(p, "/")
		current := root
		for i, part := range parts {
			isLast := i == len(parts)-1
			var next *FileTree
			for _, child := range current.Children {
				if child.Name == part && child.IsDir == !isLast {
					next = child
					break
				}
			}
			if next == nil {
				next = &FileTree{Name: part, IsDir: !isLast}
				if isLast {
					next.Path = p
					next.Title = titles[p]
				} else {
					next.Path = strings.Join(parts[:i+1], "/")
					next.Title = formatDirName(part)
				}
				current.Children = append(current.Children, next)
			}
			current = next
		}
	}

	sortTree(root)
	return root
}

// sortTree orders children directories first, then files, alphabetically.
func sortTree(node *FileTree) {
	sort.Slice(node.Children, func(i, j int) bool {
		if node.Children[i].IsDir != node.Children[j].IsDir {
			return node.Children[i].IsDir
		}
		return node.Children[i].Name < node.Children[j].Name
	})
	for _, child := range node.Children {
		if child.IsDir {
			sortTree(child)
		}
	}
}

// ToHTML renders the tree as nested lists for the sidebar. basePath is the
// prefix that leads back to the docs root, such as "../" or "/docs/".
func (t *FileTree) ToHTML(activePath, basePath string) string {
	ancestors := activeAncestors(activePath)

	var b strings.Builder
	homeActive := ""
	if activePath == "index.md" {
		homeActive = ` class="active"`
	}
	fmt.Fprintf(&b, `<ul><li class="file home-link"><a href="%sindex.html"%s>Home</a></li></ul>`+"\n", basePath, homeActive)

	renderChildren(&b, t, activePath, basePath, ancestors)
	return b.String()
}

// activeAncestors returns the directory paths containing activePath.
// For "guides/deploy/aws.md" it returns {"guides", "guides/deploy"}.
func activeAncestors(activePath string) map[string]bool {
	ancestors := make(map[string]bool)
	parts := strings.Split(activePath, "/")
	for i := 1; i < len(parts); i++ {
		ancestors[strings.Join(parts[:i], "/")] = true
	}
	return ancestors
}

func renderChildren(b *strings.Builder, node *FileTree, activePath, basePath string, ancestors map[string]bool) {
	if len(node.Children) == 0 {
		return
	}
	b.WriteString("<ul>\n")
	for _, child := range node.Children {
		if child.IsDir {
			expanded := ""
			if ancestors[child.Path] {
				expanded = " expanded"
			}
			fmt.Fprintf(b, `<li class="dir%s"><span class="dir-toggle">%s</span>`+"\n", expanded, html.EscapeString(child.Title))
			renderChildren(b, child, activePath, basePath, ancestors)
			b.WriteString("</li>\n")
			continue
		}
		if child.Path == "index.md" {
			continue
		}
		label := child.Title
		if label == "" {
			label = strings.TrimSuffix(child.Name, ".md")
		}
		active := ""
		if child.Path == activePath {
			active = ` class="active"`
		}
		fmt.Fprintf(b, `<li class="file"><a href="%s%s"%s>%s</a></li>`+"\n",
			basePath, mdPathToHTML(child.Path), active, html.EscapeString(label))
	}
	b.WriteString("</ul>\n")
}

// mdPathToHTML converts a markdown path to its HTML equivalent.
func mdPathToHTML(p string) string {
	if strings.HasSuffix(p, ".md") {
		return strings.TrimSuffix(p, ".md") + ".html"
	}
	return p
}

// basePathFor returns the relative prefix from an exported page back to
// the site root.
func basePathFor(relPath string) string {
	return strings.Repeat("../", strings.Count(path.Clean(relPath), "/"))
}

// formatDirName title-cases a directory slug: "getting-started" becomes
// "Getting Started".
func formatDirName(name string) string {
	words := strings.FieldsFunc(name, func(c rune) bool {
		return c == '-' || c == '_'
	})
	for i, w := range words {
		if len(w) > 0 {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
