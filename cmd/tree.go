package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/arcdocs/internal/clipboard"
	"github.com/ziadkadry99/arcdocs/internal/config"
	"github.com/ziadkadry99/arcdocs/internal/manifest"
	"github.com/ziadkadry99/arcdocs/internal/tree"
)

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Print the architecture tree of the manifest",
	Long: `Prints the routes, lambdas and tables of the manifest as an indented tree.
Node ids are shown in brackets; pass one to --copy to put a route on the
clipboard.`,
	RunE: runTree,
}

func init() {
	treeCmd.Flags().String("manifest", "", "manifest path (overrides config)")
	treeCmd.Flags().Bool("routes", true, "include HTTP routes")
	treeCmd.Flags().Bool("lambdas", true, "include lambdas")
	treeCmd.Flags().Bool("tables", true, "include tables")
	treeCmd.Flags().StringP("filter", "f", "", "only show nodes whose name contains this text")
	treeCmd.Flags().String("copy", "", "copy the route with this node id to the clipboard")
	treeCmd.Flags().Bool("arn", false, "with --copy, copy the route ARN instead of METHOD path")
	treeCmd.Flags().String("region", "", "region for --arn")
	rootCmd.AddCommand(treeCmd)
}

func runTree(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	override, _ := cmd.Flags().GetString("manifest")
	m, _, err := loadManifest(cfg, override)
	if err != nil {
		return err
	}

	var toggles tree.Toggles
	toggles.Routes, _ = cmd.Flags().GetBool("routes")
	toggles.Lambdas, _ = cmd.Flags().GetBool("lambdas")
	toggles.Tables, _ = cmd.Flags().GetBool("tables")
	filter, _ := cmd.Flags().GetString("filter")

	helper := clipboard.New(clipboardOptions(cfg))
	r := tree.NewRenderer(tree.Options{Clipboard: helper})
	r.Init(m)
	r.SetToggles(toggles)
	r.Filter(filter)

	if q, none := r.NoMatches(); none {
		fmt.Printf("No matches for %q\n", q)
	} else {
		fmt.Print(r.RenderText())
	}

	copyID, _ := cmd.Flags().GetString("copy")
	if copyID == "" {
		return nil
	}
	arn, _ := cmd.Flags().GetBool("arn")
	region, _ := cmd.Flags().GetString("region")
	return copyNode(r, helper, copyID, arn, region)
}

func copyNode(r *tree.Renderer, helper *clipboard.Helper, id string, arn bool, region string) error {
	e := r.GetNode(id)
	if e == nil || e.Type != tree.TypeRoute {
		return fmt.Errorf("%s is not a route node", id)
	}

	var ok bool
	if arn {
		route := e.Data.(manifest.Route)
		ok = helper.CopyArn(route.Method, route.Path, region)
	} else {
		ok = r.Copy(id)
	}

	toasts := helper.Document().Find("div")
	if len(toasts) > 0 {
		fmt.Println(toasts[len(toasts)-1].Text)
	}
	if !ok {
		return fmt.Errorf("copying %s failed", id)
	}
	return nil
}

// clipboardOptions returns the system clipboard setup with the configured
// toast duration.
func clipboardOptions(cfg *config.Config) clipboard.Options {
	opts := clipboard.DefaultOptions()
	opts.Duration = cfg.ToastDuration
	opts.Logger = componentLogger()
	return opts
}
