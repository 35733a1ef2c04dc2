package config

import (
	"time"

	"github.com/ziadkadry99/arcdocs/internal/search"
)

// Config is the top-level arcdocs configuration, corresponding to .arcdocs.yml.
type Config struct {
	Manifest        string            `yaml:"manifest" koanf:"manifest"`
	ProjectRoot     string            `yaml:"project_root" koanf:"project_root"`
	ProjectName     string            `yaml:"project_name" koanf:"project_name"`
	DocsDir         string            `yaml:"docs_dir" koanf:"docs_dir"`
	DocsInclude     []string          `yaml:"docs_include" koanf:"docs_include"`
	DocsExclude     []string          `yaml:"docs_exclude" koanf:"docs_exclude"`
	SiteDir         string            `yaml:"site_dir" koanf:"site_dir"`
	Redirects       map[string]string `yaml:"redirects" koanf:"redirects"`
	Port            int               `yaml:"port" koanf:"port"`
	AllowAllOrigins bool              `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	Watcher         WatcherConfig     `yaml:"watcher" koanf:"watcher"`
	Search          search.Options    `yaml:"search" koanf:"search"`
	ToastDuration   time.Duration     `yaml:"toast_duration" koanf:"toast_duration"`
}

// WatcherConfig holds the live watcher settings used by `arcdocs watch`.
type WatcherConfig struct {
	ServerURL      string        `yaml:"server_url" koanf:"server_url"`
	PollInterval   time.Duration `yaml:"poll_interval" koanf:"poll_interval"`
	ReconnectDelay time.Duration `yaml:"reconnect_delay" koanf:"reconnect_delay"`
}
