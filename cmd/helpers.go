package cmd

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/ziadkadry99/arcdocs/internal/config"
	"github.com/ziadkadry99/arcdocs/internal/manifest"
	"github.com/ziadkadry99/arcdocs/internal/walker"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `arcdocs init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// loadManifest resolves and parses the configured manifest. A --manifest
// flag value takes precedence over the config.
func loadManifest(cfg *config.Config, override string) (*manifest.Manifest, string, error) {
	if override != "" {
		cfg.Manifest = override
	}
	path, err := cfg.ResolveManifest()
	if err != nil {
		return nil, "", err
	}
	m, err := manifest.Load(path)
	if err != nil {
		return nil, "", fmt.Errorf("loading manifest: %w", err)
	}
	return m, path, nil
}

// discoverDocs lists the markdown pages under the configured docs dir.
// A missing docs dir yields no pages and no error.
func discoverDocs(cfg *config.Config) ([]walker.File, error) {
	if _, err := os.Stat(cfg.DocsDir); os.IsNotExist(err) {
		return nil, nil
	}
	files, err := walker.Walk(walker.Config{
		RootDir: cfg.DocsDir,
		Include: cfg.DocsInclude,
		Exclude: cfg.DocsExclude,
	})
	if err != nil {
		return nil, fmt.Errorf("scanning docs: %w", err)
	}
	return files, nil
}

// componentLogger returns the logger handed to long-running components.
// Without --verbose their chatter is discarded.
func componentLogger() *log.Logger {
	if verbose {
		return log.Default()
	}
	return log.New(io.Discard, "", 0)
}
