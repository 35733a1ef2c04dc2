package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/arcdocs/internal/progress"
	"github.com/ziadkadry99/arcdocs/internal/site"
)

var siteCmd = &cobra.Command{
	Use:   "site",
	Short: "Generate a static documentation website",
	Long:  `Renders the markdown docs to a self-contained static HTML site with navigation, search and redirect pages.`,
	RunE:  runSite,
}

func init() {
	siteCmd.Flags().String("output", "", "override output directory (defaults to site_dir)")
	rootCmd.AddCommand(siteCmd)
}

func runSite(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	files, err := discoverDocs(cfg)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no markdown files found in %s", cfg.DocsDir)
	}

	outputDir, _ := cmd.Flags().GetString("output")
	if outputDir == "" {
		outputDir = cfg.SiteDir
	}

	docs, err := site.NewDocs(cfg.DocsDir, cfg.ProjectName, files, cfg.Redirects)
	if err != nil {
		return fmt.Errorf("loading docs: %w", err)
	}
	generator := site.NewGenerator(docs, outputDir, progress.NewReporter("Generating site"))
	pageCount, err := generator.Generate()
	if err != nil {
		return fmt.Errorf("generating site: %w", err)
	}

	fmt.Printf("Static site generated: %s (%d pages)\n", outputDir, pageCount)
	return nil
}
