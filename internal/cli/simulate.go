package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/matzehuels/packforce/pkg/core/layout"
	"github.com/matzehuels/packforce/pkg/graph"
	"github.com/matzehuels/packforce/pkg/observability"
	"github.com/matzehuels/packforce/pkg/pipeline"
)

// watchDebounce coalesces the burst of events editors emit on save.
const watchDebounce = 100 * time.Millisecond

// simulateFlags holds the flags shared by simulate and watch.
type simulateFlags struct {
	output        string
	kind          string
	width         float64
	height        float64
	maxIterations int
	seed          uint64
	paramsFile    string
	fallback      bool
	noCache       bool
	refresh       bool
	metricsFile   string
	watch         bool
}

// addChartFlags registers the flags that shape the simulated chart.
func (f *simulateFlags) addChartFlags(cmd *cobra.Command, kinds string) {
	cmd.Flags().StringVarP(&f.kind, "kind", "k", "", "layout kind: "+kinds+" (default: from chart)")
	cmd.Flags().Float64Var(&f.width, "width", 0, "box width (default: from chart, else 800)")
	cmd.Flags().Float64Var(&f.height, "height", 0, "box height (default: from chart, else 600)")
	cmd.Flags().IntVar(&f.maxIterations, "max-iterations", 0, "iteration cap")
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "seed for random initial placement")
	cmd.Flags().StringVar(&f.paramsFile, "params", "", "TOML file with simulation parameters")
	cmd.Flags().BoolVar(&f.fallback, "fallback", false, "use the network layout for unknown kinds instead of failing")
}

// options translates the flags into pipeline options. Only flags the user
// set override the chart.
func (f *simulateFlags) options(cmd *cobra.Command) (pipeline.Options, error) {
	opts := pipeline.Options{
		Kind:     f.kind,
		Width:    f.width,
		Height:   f.height,
		Fallback: f.fallback,
		Refresh:  f.refresh,
	}

	var params graph.Simulation
	if f.paramsFile != "" {
		fromFile, err := graph.ReadSimulationFile(f.paramsFile)
		if err != nil {
			return opts, err
		}
		params = *fromFile
	}
	if cmd.Flags().Changed("max-iterations") {
		params.MaxIterations = &f.maxIterations
	}
	if cmd.Flags().Changed("seed") {
		params.Seed = &f.seed
	}
	opts.Params = &params
	return opts, nil
}

// simulateCommand creates the simulate command.
func (c *CLI) simulateCommand() *cobra.Command {
	var flags simulateFlags

	cmd := &cobra.Command{
		Use:   "simulate [chart]",
		Short: "Run a force simulation and write the settled layout",
		Long: `Run a force simulation over a chart and write the settled layout.

The chart may be JSON, YAML or DOT (.dot/.gv). Charts with edges default to the
network layout, charts without edges to packed bubbles. The output is a
<chart>.layout.json file with one position per node.

Results are cached locally; an unchanged chart with unchanged parameters is
not simulated again. With --watch the chart is re-simulated on every save.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options(cmd)
			if err != nil {
				return err
			}
			return c.runSimulate(cmd.Context(), args[0], opts, flags)
		},
	}

	flags.addChartFlags(cmd, c.kindNames())
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (default: <chart>.layout.json)")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&flags.refresh, "refresh", false, "ignore cached layouts but store the new result")
	cmd.Flags().StringVar(&flags.metricsFile, "metrics", "", "write Prometheus metrics to this textfile")
	cmd.Flags().BoolVarP(&flags.watch, "watch", "w", false, "re-simulate when the chart changes")

	return cmd
}

// runSimulate runs the chart once, then keeps re-running it on change when
// watching.
func (c *CLI) runSimulate(ctx context.Context, input string, opts pipeline.Options, flags simulateFlags) error {
	runner, err := c.newRunner(flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	var metrics *observability.Metrics
	if flags.metricsFile != "" {
		metrics = observability.NewMetrics()
		observability.SetPipelineHooks(metrics)
		observability.SetCacheHooks(metrics)
		defer observability.Reset()
	}

	output := outputPath(input, flags.output)
	once := func() error {
		if err := c.simulateOnce(ctx, runner, input, output, opts); err != nil {
			return err
		}
		if metrics != nil {
			if err := metrics.WriteTextfile(flags.metricsFile); err != nil {
				return fmt.Errorf("write metrics %s: %w", flags.metricsFile, err)
			}
		}
		return nil
	}

	if err := once(); err != nil {
		if !flags.watch {
			return err
		}
		printError("%v", err)
	}
	if !flags.watch {
		return nil
	}
	return c.watchFile(ctx, input, func() {
		prog := newProgress(c.Logger)
		if err := once(); err != nil {
			printError("%v", err)
			return
		}
		prog.done("Re-simulated " + filepath.Base(input))
	})
}

// simulateOnce parses, simulates and writes a single layout.
func (c *CLI) simulateOnce(ctx context.Context, runner *pipeline.Runner, input, output string, opts pipeline.Options) error {
	chart, err := runner.Parse(ctx, input)
	if err != nil {
		return fmt.Errorf("load chart %s: %w", input, err)
	}

	spinner := newSpinnerWithContext(ctx, "Simulating...")
	spinner.Start()
	opts.OnStep = func(res layout.StepResult) {
		if res.Iteration%25 == 0 {
			spinner.SetMessage(fmt.Sprintf("Simulating... iteration %d", res.Iteration))
		}
	}

	result, err := runner.Simulate(ctx, chart, opts)
	if err != nil {
		spinner.StopWithError("Simulation failed")
		return fmt.Errorf("simulate: %w", err)
	}
	spinner.Stop()

	if err := graph.WriteLayoutFile(result.Layout, output); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}

	if result.Stats.Stable {
		printSuccess("Layout settled")
	} else {
		printWarning("Layout stopped at the iteration cap")
	}
	printFile(output)
	printStats(result.Stats.NodeCount, result.Stats.EdgeCount, result.CacheHit)
	printKeyValue("kind", result.Layout.Kind)
	printKeyValue("iterations", fmt.Sprintf("%d", result.Stats.Iterations))
	if !result.CacheHit {
		printKeyValue("time", result.Stats.SimulateTime.Round(time.Millisecond).String())
	}
	printNewline()
	printNextStep("Step it interactively", appName+" watch "+input)
	return nil
}

// watchFile calls onChange after every write to path until ctx is done.
// The parent directory is watched so editors that replace the file on save
// are still seen.
func (c *CLI) watchFile(ctx context.Context, path string, onChange func()) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create file watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}
	printInfo("Watching %s (ctrl+c to stop)", path)

	debounce := time.NewTimer(watchDebounce)
	if !debounce.Stop() {
		<-debounce.C
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				c.Logger.Debug("chart changed", "path", event.Name, "op", event.Op.String())
				debounce.Reset(watchDebounce)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			c.Logger.Warn("watcher error", "error", err)
		case <-debounce.C:
			onChange()
		}
	}
}
