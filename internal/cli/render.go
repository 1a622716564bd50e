package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	lio "github.com/laminagraph/lamina/pkg/io"
	"github.com/laminagraph/lamina/pkg/pipeline"
)

// renderCommand creates the render command for converting a laid out
// document into other output formats.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output     string
		formatsStr string
	)

	cmd := &cobra.Command{
		Use:   "render [layout.json]",
		Short: "Render a laid out graph to DOT, SVG, or PNG",
		Long: `Render a laid out graph to DOT, SVG, or PNG.

The render command takes a layout document (produced by 'lamina layout')
and converts it to the requested formats without recomputing the layout.
Node positions and edge routes from the document are carried into the DOT
output as Graphviz attributes.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formats := parseFormats(formatsStr)
			if len(formats) == 0 {
				formats = []string{pipeline.FormatDOT}
			}
			return c.runRender(cmd.Context(), args[0], output, formats)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): dot (default), json, svg, png (comma-separated)")

	return cmd
}

// runRender loads the layout document and writes the requested formats.
func (c *CLI) runRender(ctx context.Context, input, output string, formats []string) error {
	g, err := lio.ImportJSON(input)
	if err != nil {
		return err
	}

	c.Logger.Debug("loaded layout", "nodes", g.NodeCount(), "edges", g.EdgeCount())

	prog := newProgress(c.Logger)
	artifacts, err := pipeline.Render(ctx, g, pipeline.Options{Formats: formats, Logger: c.Logger})
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %d format(s)", len(artifacts)))

	paths, err := writeArtifacts(input, output, artifacts, formats)
	if err != nil {
		return err
	}

	printSuccess("Render complete")
	for _, p := range paths {
		printFile(p)
	}

	return nil
}
