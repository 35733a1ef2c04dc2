package search

import (
	"testing"

	"github.com/ziadkadry99/arcdocs/internal/manifest"
)

func sampleManifest() *manifest.Manifest {
	return &manifest.Manifest{
		Routes: []manifest.Route{
			{Method: "GET", Path: "/api/users", FunctionName: "get-api-users"},
			{Method: "POST", Path: "/api/orders", FunctionName: "post-api-orders"},
			{Method: "GET", Path: "/", FunctionName: "get-index"},
		},
		Lambdas: []manifest.Lambda{{Name: "notifier"}, {Name: "api-sync"}},
		Tables:  []manifest.Table{{Name: "users", Attributes: []string{"userID *String"}}},
	}
}

func TestFlattenSearchText(t *testing.T) {
	items := Flatten(sampleManifest(), DefaultOptions().Keys)
	if len(items) != 6 {
		t.Fatalf("items = %d, want 6", len(items))
	}
	if items[0].SearchText != "GET /api/users" {
		t.Errorf("route search text = %q", items[0].SearchText)
	}
	if items[3].Type != TypeLambda || items[3].SearchText != "notifier" {
		t.Errorf("lambda item = %+v", items[3])
	}

	withAttrs := Flatten(sampleManifest(), []string{KeyName, KeyAttributes})
	if got := withAttrs[5].SearchText; got != "users userID *String" {
		t.Errorf("table search text = %q", got)
	}
}

func TestLinearFallback(t *testing.T) {
	opts := DefaultOptions()
	opts.Fuzzy = false
	x := NewIndex(opts)
	x.items = items{{SearchText: "GET /api/users"}, {SearchText: "notifier"}}

	got := x.Search("api")
	if len(got) != 1 || got[0].SearchText != "GET /api/users" {
		t.Fatalf("Search(api) = %+v", got)
	}
	if len(x.LastResults()) != 1 {
		t.Error("last results not cached")
	}
}

func TestLinearCaseInsensitiveOrder(t *testing.T) {
	opts := DefaultOptions()
	opts.Fuzzy = false
	x := NewIndex(opts)
	x.Init(sampleManifest())

	got := x.Search("API")
	want := []string{"GET /api/users", "POST /api/orders", "api-sync"}
	if len(got) != len(want) {
		t.Fatalf("got %d results, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].SearchText != want[i] {
			t.Errorf("result[%d] = %q, want %q", i, got[i].SearchText, want[i])
		}
	}
}

func TestBlankQueryClearsLastResults(t *testing.T) {
	x := NewIndex(DefaultOptions())
	x.Init(sampleManifest())

	if len(x.Search("users")) == 0 {
		t.Fatal("expected results for users")
	}
	if got := x.Search("   "); len(got) != 0 {
		t.Errorf("blank query returned %d results", len(got))
	}
	if x.LastResults() != nil {
		t.Error("blank query should clear last results")
	}
}

func TestFuzzyFindsContiguousMatches(t *testing.T) {
	x := NewIndex(DefaultOptions())
	x.Init(sampleManifest())

	got := x.Search("notif")
	if len(got) != 1 || got[0].Name != "notifier" {
		t.Fatalf("Search(notif) = %+v", got)
	}

	// Widely scattered characters exceed the default threshold.
	if got := x.Search("gasr"); len(got) != 0 {
		t.Errorf("Search(gasr) = %+v, want none", got)
	}
}

func TestFuzzyThresholdZeroIsExact(t *testing.T) {
	opts := DefaultOptions()
	opts.Threshold = 0
	x := NewIndex(opts)
	x.Init(sampleManifest())

	if got := x.Search("usrs"); len(got) != 0 {
		t.Errorf("threshold 0 should reject gaps, got %+v", got)
	}
	if got := x.Search("users"); len(got) != 2 {
		t.Errorf("Search(users) = %d results, want 2", len(got))
	}
}

func TestFuzzyLocation(t *testing.T) {
	opts := DefaultOptions()
	opts.IgnoreLocation = false
	x := NewIndex(opts)
	x.Init(sampleManifest())

	// "snc" is scattered and starts halfway into "api-sync".
	if got := x.Search("snc"); len(got) != 0 {
		t.Errorf("late scattered match should be rejected, got %+v", got)
	}
	// A contiguous occurrence is kept wherever it starts.
	if got := x.Search("sync"); len(got) != 1 {
		t.Errorf("Search(sync) = %d results, want 1", len(got))
	}
	if got := x.Search("POST"); len(got) != 1 {
		t.Errorf("Search(POST) = %d results, want 1", len(got))
	}
}

func TestFuzzyIgnoresLocationByDefault(t *testing.T) {
	x := NewIndex(DefaultOptions())
	x.Init(sampleManifest())

	got := x.Search("sync")
	if len(got) != 1 || got[0].Name != "api-sync" {
		t.Errorf("Search(sync) = %+v", got)
	}
}

func TestMinMatchCharLength(t *testing.T) {
	opts := DefaultOptions()
	opts.MinMatchCharLength = 3
	x := NewIndex(opts)
	x.Init(sampleManifest())

	if got := x.Search("us"); len(got) != 0 {
		t.Errorf("short query returned %d results", len(got))
	}
}

func TestGroupedResults(t *testing.T) {
	opts := DefaultOptions()
	opts.Fuzzy = false
	x := NewIndex(opts)
	x.Init(sampleManifest())

	g := x.GroupedResults("users")
	if len(g.Routes) != 1 || len(g.Lambdas) != 0 || len(g.Tables) != 1 {
		t.Errorf("grouped = %+v", g)
	}

	g = x.GroupedResults("")
	if g.Routes == nil || len(g.Routes) != 0 {
		t.Errorf("empty query should give empty, non-nil groups: %+v", g)
	}
}

func TestFuzzyKeepsSubstringMatches(t *testing.T) {
	m := sampleManifest()
	m.Routes = append(m.Routes, manifest.Route{Method: "GET", Path: "/api/template", FunctionName: "get-api-template"})

	fuzzyIdx := NewIndex(DefaultOptions())
	fuzzyIdx.Init(m)
	linearOpts := DefaultOptions()
	linearOpts.Fuzzy = false
	linearIdx := NewIndex(linearOpts)
	linearIdx.Init(m)

	// "ate" first lines up across "api" and "template", which alone would
	// exceed the threshold.
	for _, q := range []string{"ate", "plate", "ders", "ync", "ID", "/", "users", "GET"} {
		got := make(map[string]bool)
		for _, it := range fuzzyIdx.Search(q) {
			got[it.Type+":"+it.Name] = true
		}
		for _, it := range linearIdx.Search(q) {
			if !got[it.Type+":"+it.Name] {
				t.Errorf("Search(%q): fuzzy results miss %s %q", q, it.Type, it.Name)
			}
		}
	}
}
