package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/planrep/pkg/pipeline"
)

// renderCommand creates the render command for drawing an unedited expansion.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		component int
		out       outputFlags
	)

	cmd := &cobra.Command{
		Use:   "render [graph.json]",
		Short: "Render the expansion of a graph component",
		Long: `Render the expansion of a graph component.

The render command expands one connected component of the graph without
editing it and renders the copy graph. Use 'run' to apply a route script
first.

Results are cached locally for faster subsequent runs.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: fileArgs("json"),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := out.options()
			if err != nil {
				return err
			}
			opts.GraphPath = args[0]
			opts.Script = &pipeline.Script{Component: component}
			return c.execute(cmd.Context(), args[0], opts, &out)
		},
	}

	cmd.Flags().IntVar(&component, "component", 0, "component to expand")
	out.register(cmd)

	return cmd
}
