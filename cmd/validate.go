package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"wireroute/scene"
	"wireroute/validation"
)

var validateStrict bool

var validateCmd = &cobra.Command{
	Use:   "validate <scene_file>",
	Short: "Check a scene for malformed wires and components",
	Long: `Check that every wire is axis-parallel, on the grid and not degenerate, and
that no components overlap.

With --strict dangling wire ends and unjoined crossings are reported as well.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().BoolVar(&validateStrict, "strict", false, "also report dangling ends and crossings")
}

func runValidate(cmd *cobra.Command, args []string) error {
	d, err := scene.ParseFile(args[0])
	if err != nil {
		return fmt.Errorf("error parsing scene: %w", err)
	}
	v := validation.NewValidator()
	v.SetPitch(cfg.Routing.GridPitch)
	v.SetStrictMode(validateStrict)

	errs := v.Validate(d)
	out := cmd.OutOrStdout()
	for _, e := range errs {
		fmt.Fprintln(out, e.String())
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s: %d problems", args[0], len(errs))
	}
	fmt.Fprintf(out, "%s: ok\n", args[0])
	return nil
}
