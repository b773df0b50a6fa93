package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"wireroute/canvas"
	"wireroute/diagram"
	"wireroute/editor"
	"wireroute/routing"
	"wireroute/scene"
)

var (
	routeMove    []string
	routeDx      int
	routeDy      int
	routeTimeout time.Duration
	routeApply   bool
	routeMetrics bool
	routeDraw    bool
)

var routeCmd = &cobra.Command{
	Use:   "route <scene_file>",
	Short: "Compute the reroute for a component move",
	Long: `Move the given components by (dx, dy) and print the wires the move removes
and adds, the connections that could not be routed and the total cost.

With --apply the rerouted scene is printed instead, and with --draw it is drawn
with the added wires and unrouted ends marked.`,
	Args: cobra.ExactArgs(1),
	RunE: runRoute,
}

func init() {
	rootCmd.AddCommand(routeCmd)
	routeCmd.Flags().StringSliceVarP(&routeMove, "move", "m", nil, "component IDs to move")
	routeCmd.Flags().IntVar(&routeDx, "dx", 0, "horizontal displacement")
	routeCmd.Flags().IntVar(&routeDy, "dy", 0, "vertical displacement")
	routeCmd.Flags().DurationVar(&routeTimeout, "timeout", 10*time.Second, "give up after this long")
	routeCmd.Flags().BoolVar(&routeApply, "apply", false, "print the scene after the move")
	routeCmd.Flags().BoolVar(&routeMetrics, "metrics", false, "print worker metrics")
	routeCmd.Flags().BoolVar(&routeDraw, "draw", false, "draw the scene after the move")
	_ = routeCmd.MarkFlagRequired("move")
}

func runRoute(cmd *cobra.Command, args []string) error {
	d, err := scene.ParseFile(args[0])
	if err != nil {
		return fmt.Errorf("error parsing scene: %w", err)
	}
	g, err := routing.NewMoveGesture(d.Snapshot(), cfg.PathCost(), routeMove...)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), routeTimeout)
	defer cancel()

	reg := prometheus.NewRegistry()
	w := routing.NewWorker(logger, routing.NewMetrics(reg))
	w.Start(ctx)
	defer w.Stop()

	w.Submit(routing.Request{Target: g, Dx: routeDx, Dy: routeDy}, true)
	if err := w.WaitIdle(ctx); err != nil {
		return fmt.Errorf("route %v by (%d,%d): %w", routeMove, routeDx, routeDy, err)
	}
	res, ok := g.FindResult(routeDx, routeDy)
	if !ok {
		return errors.New("no route was computed")
	}

	out := cmd.OutOrStdout()
	switch {
	case routeApply || routeDraw:
		if err := applyMove(d, g, res); err != nil {
			return err
		}
		if routeDraw {
			printCanvas(cmd, canvas.Render(d, canvas.Overlay{
				Added:       res.WiresToAdd(),
				Unconnected: res.UnconnectedLocations(),
			}))
		} else if err := scene.Format(out, d); err != nil {
			return err
		}
	default:
		res.Print(out)
	}
	if routeMetrics {
		return printMetrics(out, reg)
	}
	return nil
}

// applyMove commits res to d the same way the editor does on drop.
func applyMove(d *diagram.Diagram, g *routing.MoveGesture, res *routing.Result) error {
	log := editor.NewActionLog(d, cfg.History.Capacity, logger)
	return log.DoAction(editor.NewUnion("Move",
		editor.NewTranslateComponents(g.Moved(), routeDx, routeDy),
		&editor.Replace{Map: res.Replacements()},
	))
}

func printMetrics(out io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			switch {
			case m.GetCounter() != nil:
				fmt.Fprintf(out, "%s %g\n", mf.GetName(), m.GetCounter().GetValue())
			case m.GetHistogram() != nil:
				fmt.Fprintf(out, "%s_count %d\n", mf.GetName(), m.GetHistogram().GetSampleCount())
			}
		}
	}
	return nil
}
