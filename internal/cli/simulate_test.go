package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/matzehuels/packforce/pkg/graph"
)

const testChart = `title: fruit
kind: packedbubble
width: 300
height: 300
series:
  - name: fruit
    points:
      - {id: apple, value: 3}
      - {id: pear, value: 5}
      - {id: plum, value: 1}
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestSimulateFlagsOptions(t *testing.T) {
	dir := t.TempDir()
	params := writeFile(t, dir, "params.toml", "friction = 0.2\nmax_iterations = 50\n")

	tests := []struct {
		name    string
		args    []string
		check   func(t *testing.T, f *simulateFlags, cmd *cobra.Command)
		wantErr bool
	}{
		{
			name: "Unset",
			args: nil,
			check: func(t *testing.T, f *simulateFlags, cmd *cobra.Command) {
				opts, _ := f.options(cmd)
				if opts.Params.MaxIterations != nil || opts.Params.Seed != nil {
					t.Errorf("unset flags leaked into params: %+v", opts.Params)
				}
			},
		},
		{
			name: "Overrides",
			args: []string{"-k", "networkgraph", "--width", "640", "--seed", "7", "--fallback"},
			check: func(t *testing.T, f *simulateFlags, cmd *cobra.Command) {
				opts, _ := f.options(cmd)
				if opts.Kind != "networkgraph" || opts.Width != 640 || !opts.Fallback {
					t.Errorf("options = %+v", opts)
				}
				if opts.Params.Seed == nil || *opts.Params.Seed != 7 {
					t.Errorf("seed = %v, want 7", opts.Params.Seed)
				}
			},
		},
		{
			name: "ParamsFileThenFlag",
			args: []string{"--params", params, "--max-iterations", "10"},
			check: func(t *testing.T, f *simulateFlags, cmd *cobra.Command) {
				opts, err := f.options(cmd)
				if err != nil {
					t.Fatal(err)
				}
				if *opts.Params.Friction != 0.2 || *opts.Params.MaxIterations != 10 {
					t.Errorf("params = friction %v, max %v", *opts.Params.Friction, *opts.Params.MaxIterations)
				}
			},
		},
		{
			name:    "MissingParamsFile",
			args:    []string{"--params", filepath.Join(dir, "nope.toml")},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f simulateFlags
			cmd := &cobra.Command{Use: "test"}
			f.addChartFlags(cmd, "networkgraph, packedbubble")
			if err := cmd.ParseFlags(tt.args); err != nil {
				t.Fatalf("ParseFlags: %v", err)
			}
			if tt.wantErr {
				if _, err := f.options(cmd); err == nil {
					t.Error("expected error")
				}
				return
			}
			tt.check(t, &f, cmd)
		})
	}
}

func TestSimulateCommand(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	dir := t.TempDir()
	input := writeFile(t, dir, "fruit.yaml", testChart)
	metrics := filepath.Join(dir, "packforce.prom")

	root := New(&bytes.Buffer{}, LogInfo).RootCommand()
	root.SetArgs([]string{"simulate", input, "--seed", "3", "--metrics", metrics})
	if err := root.Execute(); err != nil {
		t.Fatalf("simulate: %v", err)
	}

	l, err := graph.ReadLayoutFile(filepath.Join(dir, "fruit.layout.json"))
	if err != nil {
		t.Fatalf("read layout: %v", err)
	}
	if l.Kind != graph.KindPacked || len(l.Nodes) != 3 {
		t.Errorf("layout = kind %q with %d nodes", l.Kind, len(l.Nodes))
	}

	data, err := os.ReadFile(metrics)
	if err != nil {
		t.Fatalf("read metrics: %v", err)
	}
	if !strings.Contains(string(data), "packforce_simulations_total") {
		t.Error("metrics textfile missing simulation counter")
	}
}

func TestSimulateCommandUnknownKind(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "fruit.yaml", testChart)
	out := filepath.Join(dir, "out.json")

	root := New(&bytes.Buffer{}, LogInfo).RootCommand()
	root.SetArgs([]string{"simulate", input, "--no-cache", "-k", "treemap", "-o", out})
	if err := root.Execute(); err == nil {
		t.Fatal("expected error for unknown kind")
	}

	root = New(&bytes.Buffer{}, LogInfo).RootCommand()
	root.SetArgs([]string{"simulate", input, "--no-cache", "-k", "treemap", "--fallback", "-o", out})
	if err := root.Execute(); err != nil {
		t.Fatalf("simulate with fallback: %v", err)
	}
	l, err := graph.ReadLayoutFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if l.Kind != graph.KindNetwork {
		t.Errorf("Kind = %q, want %q", l.Kind, graph.KindNetwork)
	}
}
