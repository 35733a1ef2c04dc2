package config

import (
	"time"

	"github.com/ziadkadry99/arcdocs/internal/search"
)

// ManifestCandidates are the manifest file names probed, in order, when
// no manifest is configured.
var ManifestCandidates = []string{"app.arc", ".arc", "arc.json", "app.json"}

// DefaultDocsExclude are glob patterns excluded from the docs by default.
var DefaultDocsExclude = []string{
	"**/README.md",
	"**/CHANGELOG.md",
	"**/_*.md",
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Manifest:    "app.arc",
		ProjectRoot: ".",
		ProjectName: "Arc",
		DocsDir:     "docs",
		DocsInclude: []string{"**/*.md"},
		DocsExclude: DefaultDocsExclude,
		SiteDir:     "_site",
		Port:        3333,
		Watcher: WatcherConfig{
			ServerURL:      "http://localhost:3333",
			PollInterval:   2 * time.Second,
			ReconnectDelay: 5 * time.Second,
		},
		Search:        search.DefaultOptions(),
		ToastDuration: 2 * time.Second,
	}
}
