package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"wireroute/canvas"
	"wireroute/scene"
)

var renderColor bool

var renderCmd = &cobra.Command{
	Use:   "render <scene_file>",
	Short: "Draw a scene as box-drawing text",
	Args:  cobra.ExactArgs(1),
	RunE:  runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().BoolVar(&renderColor, "color", false, "colour the output with ANSI codes")
}

func runRender(cmd *cobra.Command, args []string) error {
	d, err := scene.ParseFile(args[0])
	if err != nil {
		return fmt.Errorf("error parsing scene: %w", err)
	}
	printCanvas(cmd, canvas.Render(d, canvas.Overlay{}))
	return nil
}

func printCanvas(cmd *cobra.Command, c *canvas.MatrixCanvas) {
	if renderColor {
		fmt.Fprint(cmd.OutOrStdout(), c.ColoredString())
		return
	}
	fmt.Fprint(cmd.OutOrStdout(), c.String())
}
