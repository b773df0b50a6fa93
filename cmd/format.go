package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"wireroute/scene"
)

var formatCmd = &cobra.Command{
	Use:   "fmt <scene_file>",
	Short: "Print a scene in canonical form",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := scene.ParseFile(args[0])
		if err != nil {
			return fmt.Errorf("error parsing scene: %w", err)
		}
		return scene.Format(cmd.OutOrStdout(), d)
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cfg.Write(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(formatCmd)
	rootCmd.AddCommand(configCmd)
}
