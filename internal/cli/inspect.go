package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/planrep/pkg/embedding"
	"github.com/matzehuels/planrep/pkg/expansion"
	pio "github.com/matzehuels/planrep/pkg/io"
)

// componentInfo summarizes the expansion of one component.
type componentInfo struct {
	Nodes  int
	Edges  int
	Faces  int
	Planar bool
}

// graphInfo summarizes an original graph.
type graphInfo struct {
	Nodes      int
	Edges      int
	Splittable []string
	Components []componentInfo
}

// inspectCommand creates the inspect command for summarizing a graph.
func (c *CLI) inspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [graph.json]",
		Short: "Summarize a graph and the rotation of each component",
		Long: `Summarize a graph and the rotation of each component.

For every connected component the initial expansion is built and the faces
of its rotation are traced. A component whose rotation is planar can be
edited with embedded = true.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: fileArgs("json"),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := pio.ImportJSON(args[0])
			if err != nil {
				return err
			}
			info := inspectGraph(cmd.Context(), d)
			printInspect(args[0], info)
			return nil
		},
	}
}

func inspectGraph(ctx context.Context, d *pio.Document) graphInfo {
	logger := loggerFromContext(ctx)
	x := expansion.New(d.Graph, expansion.Options{Splittable: d.Splittable, Logger: logger})

	info := graphInfo{
		Nodes: d.Graph.NodeCount(),
		Edges: d.Graph.EdgeCount(),
	}
	for _, v := range d.Graph.Nodes() {
		if x.IsSplittableOrig(v) {
			info.Splittable = append(info.Splittable, d.NodeIDs[v])
		}
	}
	for i := 0; i < x.ComponentCount(); i++ {
		x.InitComponent(i)
		em := embedding.New(x.Graph())
		ci := componentInfo{
			Nodes:  x.Graph().NodeCount(),
			Edges:  x.Graph().EdgeCount(),
			Faces:  em.FaceCount(),
			Planar: em.IsPlanar(),
		}
		logger.Debug("component", "index", i, "nodes", ci.Nodes, "faces", ci.Faces, "planar", ci.Planar)
		info.Components = append(info.Components, ci)
	}
	return info
}

func printInspect(path string, info graphInfo) {
	fmt.Println(StyleTitle.Render(path))
	printKeyValue("nodes", fmt.Sprint(info.Nodes))
	printKeyValue("edges", fmt.Sprint(info.Edges))
	splittable := "none"
	if len(info.Splittable) > 0 {
		splittable = strings.Join(info.Splittable, ", ")
	}
	printKeyValue("splittable", splittable)
	printKeyValue("components", fmt.Sprint(len(info.Components)))
	for i, ci := range info.Components {
		rotation := StyleWarning.Render("not planar")
		if ci.Planar {
			rotation = StyleSuccess.Render("planar")
		}
		printDetail("%d: %d nodes · %d edges · %d faces · %s", i, ci.Nodes, ci.Edges, ci.Faces, rotation)
	}
}
