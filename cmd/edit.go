package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"wireroute/diagram"
	"wireroute/editor"
	"wireroute/routing"
	"wireroute/scene"
	"wireroute/terminal"
)

var editCmd = &cobra.Command{
	Use:   "edit [scene_file]",
	Short: "Edit a scene interactively",
	Long: `Open the interactive editor.

Keys:
  Tab / Shift-Tab   select the next / previous component
  Enter or m        start moving the selection
  Arrows            drag while moving
  Enter             drop
  Esc               cancel the move
  u / r             undo / redo
  s                 save
  q                 quit`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEdit,
}

func init() {
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	d := diagram.New()
	path := ""
	if len(args) == 1 {
		path = args[0]
		loaded, err := scene.ParseFile(path)
		switch {
		case err == nil:
			d = loaded
		case !errors.Is(err, fs.ErrNotExist):
			return fmt.Errorf("error parsing scene: %w", err)
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialise screen: %w", err)
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	s := editor.NewSession(ctx, d, editor.SessionOptions{
		Costs:    cfg.PathCost(),
		Capacity: cfg.History.Capacity,
		Logger:   logger,
		Metrics:  routing.NewMetrics(nil),
	})
	defer s.Close()

	return terminal.NewView(screen, s, path, logger).Run(ctx)
}
