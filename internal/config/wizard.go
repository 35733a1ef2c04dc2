package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// detectManifest returns the first manifest candidate present in dir.
func detectManifest(dir string) string {
	for _, name := range ManifestCandidates {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return name
		}
	}
	return ""
}

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to arcdocs! Let's configure your project.")
	fmt.Println()

	cfg := DefaultConfig()

	manifestDefault := cfg.Manifest
	if found := detectManifest("."); found != "" {
		fmt.Printf("Detected manifest: %s\n\n", found)
		manifestDefault = found
	}

	manifestPrompt := promptui.Prompt{
		Label:   "Path to the architecture manifest",
		Default: manifestDefault,
	}
	manifest, err := manifestPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("manifest path: %w", err)
	}

	name, _ := filepath.Abs(".")
	namePrompt := promptui.Prompt{
		Label:   "Project name",
		Default: filepath.Base(name),
	}
	projectName, err := namePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("project name: %w", err)
	}

	docsPrompt := promptui.Prompt{
		Label:   "Documentation directory",
		Default: cfg.DocsDir,
	}
	docsDir, err := docsPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("docs dir: %w", err)
	}

	excludePrompt := promptui.Prompt{
		Label:   "Extra exclude patterns (comma-separated, leave blank for defaults)",
		Default: "",
	}
	excludeStr, err := excludePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("exclude patterns: %w", err)
	}

	portPrompt := promptui.Prompt{
		Label:   "Viewer port",
		Default: strconv.Itoa(cfg.Port),
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n < 0 || n > 65535 {
				return fmt.Errorf("port must be a number between 0 and 65535")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	port, _ := strconv.Atoi(portStr)

	cfg.Manifest = manifest
	cfg.ProjectName = projectName
	cfg.DocsDir = docsDir
	cfg.DocsExclude = append(append([]string(nil), DefaultDocsExclude...), splitPatterns(excludeStr)...)
	cfg.Port = port
	cfg.Watcher.ServerURL = fmt.Sprintf("http://localhost:%d", port)

	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

// splitPatterns splits a comma-separated list and drops empty entries.
func splitPatterns(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if token := strings.TrimSpace(part); token != "" {
			result = append(result, token)
		}
	}
	return result
}
