package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/arcdocs/internal/linker"
)

var linkCmd = &cobra.Command{
	Use:   "link <route|lambda|table> <name>",
	Short: "Print the source file path of a node",
	Long: `Prints the conventional source location of a node. Route names are
"METHOD /path" (quote them) or a bare path, which defaults to GET.

With --check the path is verified against a running arcdocs server.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runLink,
}

func init() {
	linkCmd.Flags().Bool("check", false, "ask the server whether the file exists")
	linkCmd.Flags().String("server", "", "server URL for --check (defaults to watcher.server_url)")
	rootCmd.AddCommand(linkCmd)
}

func runLink(cmd *cobra.Command, args []string) error {
	nodeType, name := args[0], strings.Join(args[1:], " ")
	path, ok := linker.GetLinkPath(nodeType, name)
	if !ok {
		return fmt.Errorf("unknown node type %q: must be route, lambda or table", nodeType)
	}

	check, _ := cmd.Flags().GetBool("check")
	if !check {
		fmt.Println(path)
		return nil
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	server, _ := cmd.Flags().GetString("server")
	if server == "" {
		server = cfg.Watcher.ServerURL
	}

	if linker.NewProber(server).CheckFileExists(cmd.Context(), path) {
		fmt.Println(filepath.Join(cfg.ProjectRoot, path))
		return nil
	}
	return fmt.Errorf("%s does not exist on %s", path, server)
}
