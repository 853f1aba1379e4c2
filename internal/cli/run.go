package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/planrep/pkg/observability"
	"github.com/matzehuels/planrep/pkg/pipeline"
)

// scriptFlags are the run flags that override fields of a route script.
type scriptFlags struct {
	graph     string
	component int
	embedded  bool
	noCheck   bool
}

// apply copies the flags the user set onto s.
func (f *scriptFlags) apply(cmd *cobra.Command, s *pipeline.Script) {
	if cmd.Flags().Changed("component") {
		s.Component = f.component
	}
	if cmd.Flags().Changed("embedded") {
		s.Embedded = f.embedded
	}
	if f.noCheck {
		check := false
		s.Check = &check
	}
}

// outputFlags are shared by the commands that write rendered artifacts.
type outputFlags struct {
	formats  string
	output   string
	detailed bool
	colored  bool
	noCache  bool
	refresh  bool
}

func (f *outputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&f.formats, "format", "f", "", "output format(s): svg (default), png, dot, json (comma-separated)")
	cmd.Flags().BoolVar(&f.detailed, "detailed", false, "label nodes with copy and split details")
	cmd.Flags().BoolVar(&f.colored, "colored", false, "color each edge path")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "re-render even if cached")
}

func (f *outputFlags) options() (pipeline.Options, error) {
	opts := pipeline.Options{
		Formats:  parseFormats(f.formats),
		Detailed: f.detailed,
		Colored:  f.colored,
		Refresh:  f.refresh,
	}
	if err := pipeline.ValidateFormats(opts.Formats); err != nil {
		return opts, err
	}
	return opts, nil
}

// runCommand creates the run command for replaying route scripts.
func (c *CLI) runCommand() *cobra.Command {
	var (
		sf  scriptFlags
		out outputFlags
	)

	cmd := &cobra.Command{
		Use:   "run [script.toml]",
		Short: "Apply a route script to the expansion of a graph",
		Long: `Apply a route script to the expansion of a graph.

The script names the graph, the component to expand and a list of steps
that remove, reinsert and split edge paths. Every step is checked for
consistency unless --no-check is given. The final expansion is rendered
to the requested formats.

Example script:

  graph = "square.json"
  embedded = true

  [[step]]
  op = "remove"
  edge = "b->d"

  [[step]]
  op = "insert"
  edge = "b->d"
  crossings = [{ edge = "a->c" }]`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: fileArgs("toml"),
		RunE: func(cmd *cobra.Command, args []string) error {
			script, err := pipeline.LoadScript(args[0])
			if err != nil {
				return err
			}
			sf.apply(cmd, script)
			if err := script.Validate(); err != nil {
				return err
			}
			opts, err := out.options()
			if err != nil {
				return err
			}
			opts.GraphPath = sf.graph
			opts.Script = script
			return c.execute(cmd.Context(), args[0], opts, &out)
		},
	}

	cmd.Flags().StringVarP(&sf.graph, "graph", "g", "", "graph file (overrides the script)")
	cmd.Flags().IntVar(&sf.component, "component", 0, "component to expand (overrides the script)")
	cmd.Flags().BoolVar(&sf.embedded, "embedded", false, "route insertions through faces (overrides the script)")
	cmd.Flags().BoolVar(&sf.noCheck, "no-check", false, "skip the consistency check after each step")
	out.register(cmd)

	return cmd
}

// execute runs the pipeline and writes its artifacts next to input.
func (c *CLI) execute(ctx context.Context, input string, opts pipeline.Options, out *outputFlags) error {
	runner, err := c.newRunner(out.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = loggerFromContext(ctx)
	prog := newProgress(opts.Logger)

	spinner := newSpinner(ctx, "Expanding graph...")
	counter := &observability.CacheCounter{}
	observability.SetPipelineHooks(spinnerHooks{spinner: spinner, steps: len(opts.Script.Steps)})
	observability.SetCacheHooks(counter)
	defer observability.Reset()
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Run failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}
	prog.done(fmt.Sprintf("Ran %d steps", result.Stats.Steps))
	opts.Logger.Debug("artifact cache", "hits", counter.Hits(), "misses", counter.Misses(), "bytes", counter.Written())

	paths, err := writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    out.output,
	})
	if err != nil {
		return err
	}

	printSuccess("Expansion complete")
	for _, p := range paths {
		printFile(p)
	}
	printStats(result.Stats, result.CacheInfo.RenderHit)
	return nil
}
