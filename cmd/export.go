package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"wireroute/export"
	"wireroute/scene"
)

var (
	exportFormat string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export <scene_file>",
	Short: "Convert a scene to another format",
	Long:  `Convert a scene to scene, ascii or json. Output goes to stdout unless -o is given.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "ascii", "output format: scene, ascii or json")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file")
}

func runExport(cmd *cobra.Command, args []string) error {
	format, err := export.ParseFormat(exportFormat)
	if err != nil {
		return err
	}
	exporter, err := export.NewExporter(format)
	if err != nil {
		return err
	}
	d, err := scene.ParseFile(args[0])
	if err != nil {
		return fmt.Errorf("error parsing scene: %w", err)
	}
	out, err := exporter.Export(d)
	if err != nil {
		return fmt.Errorf("export %s: %w", exporter.GetFormatName(), err)
	}
	if exportOutput == "" {
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	}
	if err := os.WriteFile(exportOutput, []byte(out), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", exportOutput, err)
	}
	logger.Info("Exported scene", "format", string(format), "output", exportOutput)
	return nil
}
