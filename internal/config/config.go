// Package config loads and saves the .arcdocs.yml configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/ziadkadry99/arcdocs/internal/search"
)

// DefaultPath is the configuration file read when --config is not given.
const DefaultPath = ".arcdocs.yml"

// EnvPrefix prefixes environment overrides. A double underscore selects a
// nested key: ARCDOCS_WATCHER__SERVER_URL sets watcher.server_url.
const EnvPrefix = "ARCDOCS_"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (ARCDOCS_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.ReplaceAll(key, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

var validSearchKeys = map[string]bool{
	search.KeyName:         true,
	search.KeyPath:         true,
	search.KeyMethod:       true,
	search.KeyFunctionName: true,
	search.KeyAttributes:   true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.Manifest == "" {
		return fmt.Errorf("manifest is required")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.Watcher.PollInterval <= 0 {
		return fmt.Errorf("watcher.poll_interval must be positive")
	}
	if c.Watcher.ReconnectDelay <= 0 {
		return fmt.Errorf("watcher.reconnect_delay must be positive")
	}
	if c.Search.Threshold < 0 || c.Search.Threshold > 1 {
		return fmt.Errorf("search.threshold must be between 0 and 1, got %g", c.Search.Threshold)
	}
	if c.Search.MinMatchCharLength < 1 {
		return fmt.Errorf("search.min_match_char_length must be at least 1")
	}
	if len(c.Search.Keys) == 0 {
		return fmt.Errorf("search.keys must not be empty")
	}
	for _, k := range c.Search.Keys {
		if !validSearchKeys[k] {
			return fmt.Errorf("invalid search key %q: must be one of name, path, method, functionName, attributes", k)
		}
	}
	if c.ToastDuration < 0 {
		return fmt.Errorf("toast_duration must be non-negative")
	}
	return nil
}

// ResolveManifest returns the configured manifest path when it exists,
// otherwise the first of ManifestCandidates found under the project root.
func (c *Config) ResolveManifest() (string, error) {
	if _, err := os.Stat(c.Manifest); err == nil {
		return c.Manifest, nil
	}
	for _, name := range ManifestCandidates {
		p := filepath.Join(c.ProjectRoot, name)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("no manifest found: tried %s and %s", c.Manifest, strings.Join(ManifestCandidates, ", "))
}
