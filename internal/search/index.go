// Package search builds a flat, searchable list of manifest entries and
// answers fuzzy or substring queries over it.
package search

import (
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/sahilm/fuzzy"

	"github.com/ziadkadry99/arcdocs/internal/manifest"
)

// Item types.
const (
	TypeRoute  = "route"
	TypeLambda = "lambda"
	TypeTable  = "table"
)

// Item is one searchable manifest entry.
type Item struct {
	Type         string   `json:"type"`
	Name         string   `json:"name"`
	SearchText   string   `json:"searchText"`
	Method       string   `json:"method,omitempty"`
	Path         string   `json:"path,omitempty"`
	FunctionName string   `json:"functionName,omitempty"`
	Attributes   []string `json:"attributes,omitempty"`
}

// Grouped partitions results by item type, preserving relative order.
type Grouped struct {
	Routes  []Item `json:"routes"`
	Lambdas []Item `json:"lambdas"`
	Tables  []Item `json:"tables"`
}

// items adapts the item list to fuzzy.Source.
type items []Item

func (s items) String(i int) string { return s[i].SearchText }
func (s items) Len() int            { return len(s) }

// Index answers queries over the entries of one manifest.
type Index struct {
	mu    sync.Mutex
	opts  Options
	items items
	fuzzy bool
	last  []Item
}

// NewIndex creates an empty index with the given options.
func NewIndex(opts Options) *Index {
	if len(opts.Keys) == 0 {
		opts.Keys = DefaultOptions().Keys
	}
	return &Index{opts: opts}
}

// Init flattens m into search items, replacing any previous contents.
func (x *Index) Init(m *manifest.Manifest) {
	list := Flatten(m, x.opts.Keys)

	x.mu.Lock()
	defer x.mu.Unlock()
	x.items = list
	x.fuzzy = x.opts.Fuzzy
	x.last = nil
}

// Flatten converts a manifest into items whose SearchText is built from
// the given keys.
func Flatten(m *manifest.Manifest, keys []string) []Item {
	if m == nil {
		return nil
	}
	var list []Item
	for _, r := range m.Routes {
		it := Item{
			Type:         TypeRoute,
			Name:         r.Method + " " + r.Path,
			Method:       r.Method,
			Path:         r.Path,
			FunctionName: r.FunctionName,
		}
		it.SearchText = searchText(it, keys)
		list = append(list, it)
	}
	for _, l := range m.Lambdas {
		it := Item{Type: TypeLambda, Name: l.Name}
		it.SearchText = searchText(it, keys)
		list = append(list, it)
	}
	for _, t := range m.Tables {
		it := Item{Type: TypeTable, Name: t.Name, Attributes: t.Attributes}
		it.SearchText = searchText(it, keys)
		list = append(list, it)
	}
	return list
}

// searchText joins the values of keys present on it. Values already
// contained in the text are skipped, so a route reads "GET /api/users"
// rather than repeating its method and path.
func searchText(it Item, keys []string) string {
	var text string
	add := func(v string) {
		if v == "" || strings.Contains(text, v) {
			return
		}
		if text != "" {
			text += " "
		}
		text += v
	}
	for _, k := range keys {
		switch k {
		case KeyName:
			add(it.Name)
		case KeyPath:
			add(it.Path)
		case KeyMethod:
			add(it.Method)
		case KeyFunctionName:
			add(it.FunctionName)
		case KeyAttributes:
			for _, a := range it.Attributes {
				add(a)
			}
		}
	}
	if text == "" {
		text = it.Name
	}
	return text
}

// Search returns the items matching query. A blank query returns nothing
// and clears the cached results.
func (x *Index) Search(query string) []Item {
	x.mu.Lock()
	defer x.mu.Unlock()

	query = strings.TrimSpace(query)
	if query == "" {
		x.last = nil
		return nil
	}

	var results []Item
	if x.fuzzy {
		results = x.fuzzySearch(query)
	} else {
		results = x.linearSearch(query)
	}
	x.last = results
	return results
}

// LastResults returns the result set of the most recent Search.
func (x *Index) LastResults() []Item {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.last
}

// GroupedResults runs Search and partitions the results by type.
func (x *Index) GroupedResults(query string) Grouped {
	g := Grouped{Routes: []Item{}, Lambdas: []Item{}, Tables: []Item{}}
	for _, it := range x.Search(query) {
		switch it.Type {
		case TypeRoute:
			g.Routes = append(g.Routes, it)
		case TypeLambda:
			g.Lambdas = append(g.Lambdas, it)
		case TypeTable:
			g.Tables = append(g.Tables, it)
		}
	}
	return g
}

func (x *Index) linearSearch(query string) []Item {
	q := strings.ToLower(query)
	var out []Item
	for _, it := range x.items {
		if strings.Contains(strings.ToLower(it.SearchText), q) {
			out = append(out, it)
		}
	}
	return out
}

func (x *Index) fuzzySearch(query string) []Item {
	qlen := utf8.RuneCountInString(query)
	if qlen < x.opts.MinMatchCharLength {
		return nil
	}

	q := strings.ToLower(query)
	var out []Item
	for _, match := range fuzzy.FindFrom(query, x.items) {
		if !x.accept(match, q, qlen) {
			continue
		}
		out = append(out, x.items[match.Index])
	}
	return out
}

// accept applies the threshold to a fuzzy match. Items containing the
// lower-cased query q as a substring are always kept, so fuzzy results are
// a superset of substring results. For other matches the miss ratio is the
// share of characters inside the matched span that are not part of the
// query; it must not exceed the threshold. When location matters the
// relative start of the match is held to the same bound.
func (x *Index) accept(m fuzzy.Match, q string, qlen int) bool {
	if len(m.MatchedIndexes) == 0 {
		return false
	}
	if strings.Contains(strings.ToLower(m.Str), q) {
		return true
	}
	first := m.MatchedIndexes[0]
	last := m.MatchedIndexes[len(m.MatchedIndexes)-1]
	span := utf8.RuneCountInString(m.Str[first:]) - utf8.RuneCountInString(m.Str[last:]) + 1
	miss := 1 - float64(qlen)/float64(span)
	if miss > x.opts.Threshold {
		return false
	}
	if !x.opts.IgnoreLocation {
		total := utf8.RuneCountInString(m.Str)
		if total > 0 && float64(utf8.RuneCountInString(m.Str[:first]))/float64(total) > x.opts.Threshold {
			return false
		}
	}
	return true
}
