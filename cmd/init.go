package cmd

import (
	"github.com/spf13/cobra"
	"github.com/ziadkadry99/arcdocs/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize arcdocs configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure arcdocs for your project and writes a .arcdocs.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
