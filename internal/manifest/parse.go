package manifest

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnknownFormat is returned by Load for files that are neither JSON nor
// the .arc text format.
var ErrUnknownFormat = errors.New("manifest: unknown format")

// ParseError reports a malformed line in a .arc manifest.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("manifest: line %d: %s", e.Line, e.Msg)
}

var httpMethods = map[string]bool{
	"get": true, "post": true, "put": true, "patch": true,
	"delete": true, "head": true, "options": true, "any": true,
}

// lambdaSections are the pragmas whose entries become background functions.
var lambdaSections = map[string]bool{
	"events":         true,
	"queues":         true,
	"scheduled":      true,
	"tables-streams": true,
}

// Load reads a manifest file. Files ending in .json are decoded as JSON;
// app.arc, .arc and files without an extension use the .arc text format.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return DecodeJSON(data)
	case ".arc", "":
		return Parse(bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, ext)
	}
}

// DecodeJSON decodes the JSON form of a manifest.
func DecodeJSON(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decoding manifest json: %w", err)
	}
	m.normalize()
	return &m, nil
}

// Parse reads the .arc text format: "@section" pragmas followed by one
// entry per line, "#" comments, and indented attribute lines under tables.
func Parse(r io.Reader) (*Manifest, error) {
	m := &Manifest{}
	scanner := bufio.NewScanner(r)
	section := ""
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		raw := scanner.Text()
		if i := strings.Index(raw, "#"); i >= 0 {
			raw = raw[:i]
		}
		if strings.TrimSpace(raw) == "" {
			continue
		}
		indented := raw[0] == ' ' || raw[0] == '\t'
		line := strings.TrimSpace(raw)

		if strings.HasPrefix(line, "@") {
			section = strings.ToLower(strings.TrimPrefix(line, "@"))
			continue
		}

		fields := strings.Fields(line)
		switch {
		case section == "app":
			if m.App == "" {
				m.App = fields[0]
			}
		case section == "http":
			route, err := parseRoute(fields)
			if err != nil {
				return nil, &ParseError{Line: lineNo, Msg: err.Error()}
			}
			m.Routes = append(m.Routes, route)
			m.Functions = append(m.Functions, Function{
				Name:   route.FunctionName,
				Folder: "src/http/" + route.FunctionName,
			})
		case lambdaSections[section]:
			if indented {
				continue
			}
			m.Lambdas = append(m.Lambdas, Lambda{Name: fields[0]})
			m.Functions = append(m.Functions, Function{
				Name:   fields[0],
				Folder: "src/" + section + "/" + fields[0],
			})
		case section == "tables":
			if indented {
				if len(m.Tables) == 0 {
					return nil, &ParseError{Line: lineNo, Msg: "attribute outside of a table"}
				}
				t := &m.Tables[len(m.Tables)-1]
				t.Attributes = append(t.Attributes, strings.Join(fields, " "))
				continue
			}
			m.Tables = append(m.Tables, Table{Name: fields[0]})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}

	m.normalize()
	return m, nil
}

func parseRoute(fields []string) (Route, error) {
	method, path := "get", ""
	switch len(fields) {
	case 1:
		path = fields[0]
	case 2:
		method, path = strings.ToLower(fields[0]), fields[1]
	default:
		return Route{}, fmt.Errorf("expected \"method /path\", got %q", strings.Join(fields, " "))
	}
	if !httpMethods[method] {
		return Route{}, fmt.Errorf("unknown http method %q", method)
	}
	if !strings.HasPrefix(path, "/") {
		return Route{}, fmt.Errorf("route path %q must start with /", path)
	}
	return Route{
		Method:       strings.ToUpper(method),
		Path:         path,
		FunctionName: FunctionName(method, path),
	}, nil
}

// FunctionName derives the conventional handler name for a route:
// the lower-cased method and path segments joined with "-". Path
// parameters (":id") are written as "000id"; the root path is "index".
func FunctionName(method, path string) string {
	var parts []string
	for _, seg := range strings.Split(path, "/") {
		if seg == "" {
			continue
		}
		seg = strings.ReplaceAll(seg, ":", "000")
		seg = strings.ReplaceAll(seg, "*", "catchall")
		parts = append(parts, strings.ToLower(seg))
	}
	if len(parts) == 0 {
		parts = []string{"index"}
	}
	return strings.ToLower(method) + "-" + strings.Join(parts, "-")
}
