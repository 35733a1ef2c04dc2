package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "arcdocs",
	Short: "Documentation server and architecture viewer for Arc applications",
	Long: `arcdocs serves the documentation of an Arc application together with a
live viewer of its architecture manifest. The viewer shows the app's HTTP
routes, lambdas and tables as a searchable tree that updates whenever the
manifest changes.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".arcdocs.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
