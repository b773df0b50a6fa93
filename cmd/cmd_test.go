package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/pflag"
)

const testScene = `component U1 at (20,0) size (20,20)
  pin (0,10) west
wire (0,10) (20,10)
`

func writeScene(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scene.wr")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// execute runs the root command with args after clearing flag state left by earlier runs.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	reset := func(f *pflag.Flag) { f.Changed = false }
	rootCmd.PersistentFlags().VisitAll(reset)
	for _, c := range rootCmd.Commands() {
		c.Flags().VisitAll(reset)
	}
	configPath, logLevel = "", "error"
	routeMove, routeDx, routeDy = nil, 0, 0
	routeTimeout, routeApply, routeMetrics, routeDraw = 10*time.Second, false, false, false
	validateStrict, renderColor = false, false
	exportFormat, exportOutput = "ascii", ""

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestRoute(t *testing.T) {
	path := writeScene(t, testScene)
	out, err := execute(t, "route", path, "--move", "U1", "--dx", "30")
	if err != nil {
		t.Fatalf("route: %v", err)
	}
	if !strings.Contains(out, "repl") || !strings.Contains(out, "cost 45") {
		t.Errorf("Unexpected route output:\n%s", out)
	}
}

func TestRoute_Apply(t *testing.T) {
	path := writeScene(t, testScene)
	out, err := execute(t, "route", path, "--move", "U1", "--dx", "30", "--apply", "--metrics")
	if err != nil {
		t.Fatalf("route --apply: %v", err)
	}
	for _, want := range []string{
		"component U1 at (50,0) size (20,20)",
		"wire (0,10) (50,10)",
		"wireroute_routing_results_delivered_total 1",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Output missing %q:\n%s", want, out)
		}
	}
}

func TestRoute_Errors(t *testing.T) {
	path := writeScene(t, testScene)
	tests := []struct {
		name string
		args []string
	}{
		{"unknown component", []string{"route", path, "--move", "U9", "--dx", "10"}},
		{"missing move", []string{"route", path, "--dx", "10"}},
		{"missing file", []string{"route", filepath.Join(t.TempDir(), "none.wr"), "--move", "U1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := execute(t, tt.args...); err == nil {
				t.Error("Expected an error")
			}
		})
	}
}

func TestValidate(t *testing.T) {
	path := writeScene(t, testScene)
	out, err := execute(t, "validate", path)
	if err != nil || !strings.Contains(out, "ok") {
		t.Errorf("validate: %v\n%s", err, out)
	}
	// the free end at (0,10) dangles
	out, err = execute(t, "validate", "--strict", path)
	if err == nil {
		t.Errorf("Expected strict validation to fail:\n%s", out)
	}
}

func TestFormatAndConfig(t *testing.T) {
	path := writeScene(t, "wire (0,10)   (20,10)\ncomponent U1 at (20,0) size (20,20)\n  pin (0,10) west\n")
	out, err := execute(t, "fmt", path)
	if err != nil {
		t.Fatalf("fmt: %v", err)
	}
	if out != testScene {
		t.Errorf("fmt output:\n%s\nwant:\n%s", out, testScene)
	}

	cfgPath := filepath.Join(t.TempDir(), "wireroute.toml")
	if err := os.WriteFile(cfgPath, []byte("[routing]\nturn_penalty = 70\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out, err = execute(t, "--config", cfgPath, "config")
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	if !strings.Contains(out, "turn_penalty = 70") {
		t.Errorf("Effective config missing override:\n%s", out)
	}
}

func TestRender(t *testing.T) {
	path := writeScene(t, testScene)
	out, err := execute(t, "render", path)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := "\n   ┌─┐\n ──oU│\n   └─┘\n\n"
	if out != want {
		t.Errorf("render output %q, want %q", out, want)
	}

	out, err = execute(t, "route", path, "--move", "U1", "--dx", "20", "--draw")
	if err != nil {
		t.Fatalf("route --draw: %v", err)
	}
	if !strings.Contains(out, " ────oU│") {
		t.Errorf("Expected stretched wire in drawing:\n%s", out)
	}
}

func TestExport(t *testing.T) {
	path := writeScene(t, testScene)
	out, err := execute(t, "export", path, "-f", "json")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.Contains(out, `"id": "U1"`) {
		t.Errorf("Unexpected JSON:\n%s", out)
	}

	target := filepath.Join(t.TempDir(), "out.wr")
	if _, err := execute(t, "export", path, "-f", "scene", "-o", target); err != nil {
		t.Fatalf("export -o: %v", err)
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != testScene {
		t.Errorf("Exported scene %q, want %q", data, testScene)
	}

	if _, err := execute(t, "export", path, "-f", "mermaid"); err == nil {
		t.Error("Expected error for unknown format")
	}
}
