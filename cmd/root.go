// Package cmd implements the wireroute command line.
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"wireroute/config"
)

var (
	// Global flags
	configPath string
	logLevel   string

	cfg    config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "wireroute",
	Short: "wireroute - schematic wire routing and editing",
	Long: `wireroute moves components in a schematic scene and reroutes the wires
attached to them.

Examples:
  wireroute route board.wr --move U1 --dx 30    # Print the reroute for a move
  wireroute edit board.wr                       # Interactive editor
  wireroute validate --strict board.wr          # Check a scene`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "TOML configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error")
}

// setup loads the configuration and builds the logger before any subcommand runs.
func setup(cmd *cobra.Command, _ []string) error {
	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if logLevel != "" {
		loaded.Log.Level = logLevel
	}
	var out io.Writer = cmd.ErrOrStderr()
	if cmd == editCmd {
		out = io.Discard
	}
	l, err := config.NewLogger(out, loaded.Log.Level)
	if err != nil {
		return err
	}
	cfg, logger = loaded, l
	return nil
}
