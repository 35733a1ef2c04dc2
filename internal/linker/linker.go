// Package linker maps viewer nodes to the conventional location of their
// source files.
package linker

import (
	"fmt"
	"html"
	"log"
	"strings"
)

// Node types understood by GetLinkPath.
const (
	TypeRoute  = "route"
	TypeLambda = "lambda"
	TypeTable  = "table"
)

// GetLinkPath returns the source path for a node. Routes are named
// "METHOD /a/b" (or a bare "/a/b", which defaults to GET) and map to
// src/http/{method}-{a-b}/index.mjs. It reports false for unknown types.
func GetLinkPath(nodeType, nodeName string) (string, bool) {
	switch nodeType {
	case TypeRoute:
		method, path := "get", nodeName
		if fields := strings.Fields(nodeName); len(fields) >= 2 {
			method, path = fields[0], fields[1]
		} else if len(fields) == 1 {
			path = fields[0]
		}
		var segments []string
		for _, seg := range strings.Split(path, "/") {
			if seg != "" {
				segments = append(segments, seg)
			}
		}
		name := strings.ToLower(method + "-" + strings.Join(segments, "-"))
		return "src/http/" + name + "/index.mjs", true
	case TypeLambda:
		return "src/lambdas/" + nodeName, true
	case TypeTable:
		return "src/tables/" + nodeName + ".ts", true
	default:
		return "", false
	}
}

// Link is a clickable reference to a node's source file.
type Link struct {
	Type    string
	Name    string
	Path    string
	onClick func(path string)
}

// NewLink builds a Link for the node. When onClick is nil, activating the
// link only logs the path. It returns nil for unknown node types.
func NewLink(nodeType, nodeName string, onClick func(path string)) *Link {
	path, ok := GetLinkPath(nodeType, nodeName)
	if !ok {
		return nil
	}
	if onClick == nil {
		onClick = func(path string) {
			log.Printf("linker: open %s", path)
		}
	}
	return &Link{Type: nodeType, Name: nodeName, Path: path, onClick: onClick}
}

// Activate invokes the link's callback with its path.
func (l *Link) Activate() {
	l.onClick(l.Path)
}

// HTML renders the link as an anchor carrying the path in data-path.
func (l *Link) HTML() string {
	p := html.EscapeString(l.Path)
	return fmt.Sprintf(`<a href="#" class="file-link" data-path="%s" title="Open %s">📄 %s</a>`, p, p, p)
}
