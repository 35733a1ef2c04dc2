package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/arcdocs/internal/search"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the manifest's routes, lambdas and tables",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearch,
}

func init() {
	searchCmd.Flags().String("manifest", "", "manifest path (overrides config)")
	searchCmd.Flags().Bool("json", false, "print grouped results as JSON")
	searchCmd.Flags().Bool("exact", false, "use substring matching instead of the fuzzy engine")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	override, _ := cmd.Flags().GetString("manifest")
	m, _, err := loadManifest(cfg, override)
	if err != nil {
		return err
	}

	opts := cfg.Search
	if exact, _ := cmd.Flags().GetBool("exact"); exact {
		opts.Fuzzy = false
	}
	idx := search.NewIndex(opts)
	idx.Init(m)

	query := strings.Join(args, " ")
	grouped := idx.GroupedResults(query)

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(grouped)
	}

	total := len(grouped.Routes) + len(grouped.Lambdas) + len(grouped.Tables)
	if total == 0 {
		fmt.Printf("No results for %q\n", query)
		return nil
	}
	printGroup("Routes", grouped.Routes)
	printGroup("Lambdas", grouped.Lambdas)
	printGroup("Tables", grouped.Tables)
	return nil
}

func printGroup(title string, items []search.Item) {
	if len(items) == 0 {
		return
	}
	fmt.Printf("%s (%d)\n", title, len(items))
	for _, it := range items {
		fmt.Printf("  %s\n", it.Name)
	}
}
