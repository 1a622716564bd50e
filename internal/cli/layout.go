package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/laminagraph/lamina/pkg/pipeline"
)

// layoutCommand creates the layout command for computing graph layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output     string
		formatsStr string
		rankdir    string
		ranker     string
		acyclicer  string
		nodeSep    float64
		rankSep    float64
		edgeSep    float64
		marginX    float64
		marginY    float64
		keepOrder  bool
		noCache    bool
		refresh    bool
	)

	cmd := &cobra.Command{
		Use:   "layout [graph.json]",
		Short: "Compute a layered layout for a directed graph",
		Long: `Compute a layered layout for a directed graph.

The layout command reads a graph document, assigns every node to a layer,
orders nodes within each layer to reduce edge crossings, and computes node
coordinates and edge routes. Results are written next to the input file
(or to --output) in the requested formats.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.Config.Options()
			if rankdir != "" {
				opts.RankDir = rankdir
			}
			if ranker != "" {
				opts.Ranker = ranker
			}
			if acyclicer != "" {
				opts.Acyclicer = acyclicer
			}
			fl := cmd.Flags()
			if fl.Changed("nodesep") {
				opts.NodeSep = &nodeSep
			}
			if fl.Changed("ranksep") {
				opts.RankSep = &rankSep
			}
			if fl.Changed("edgesep") {
				opts.EdgeSep = &edgeSep
			}
			if fl.Changed("marginx") {
				opts.MarginX = &marginX
			}
			if fl.Changed("marginy") {
				opts.MarginY = &marginY
			}
			if formats := parseFormats(formatsStr); len(formats) > 0 {
				opts.Formats = formats
			}
			opts.KeepOrder = keepOrder
			opts.Refresh = refresh
			return c.runLayout(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): json (default), dot, svg, png (comma-separated)")
	cmd.Flags().StringVar(&rankdir, "rankdir", "", "layout direction: tb (default), bt, lr, rl")
	cmd.Flags().StringVar(&ranker, "ranker", "", "ranking algorithm: network-simplex (default), tight-tree, longest-path, none")
	cmd.Flags().StringVar(&acyclicer, "acyclicer", "", "cycle-breaking strategy: dfs (default), greedy")
	cmd.Flags().Float64Var(&nodeSep, "nodesep", 50, "horizontal separation between nodes in a layer")
	cmd.Flags().Float64Var(&rankSep, "ranksep", 50, "vertical separation between layers")
	cmd.Flags().Float64Var(&edgeSep, "edgesep", 20, "horizontal separation between edge routes")
	cmd.Flags().Float64Var(&marginX, "marginx", 0, "horizontal margin around the drawing")
	cmd.Flags().Float64Var(&marginY, "marginy", 0, "vertical margin around the drawing")
	cmd.Flags().BoolVar(&keepOrder, "keep-order", false, "keep the initial node order within each layer")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even if a cached layout exists")

	return cmd
}

// runLayout executes the pipeline and writes output files.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	data, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("read graph %s: %w", input, err)
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	opts.SetRenderDefaults()

	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()

	result, err := runner.Execute(ctx, data, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	paths, err := writeArtifacts(input, output, result.Artifacts, opts.Formats)
	if err != nil {
		return err
	}

	printSuccess("Layout complete")
	for _, p := range paths {
		printFile(p)
	}
	printStats(result.Stats.NodeCount, result.Stats.EdgeCount, result.CacheInfo.LayoutHit)

	return nil
}

// writeArtifacts writes each rendered artifact next to the input file. With
// a single format, --output names the file directly; with several, it is the
// base path the format extensions are appended to.
func writeArtifacts(input, output string, artifacts map[string][]byte, formats []string) ([]string, error) {
	base := output
	if base == "" {
		base = strings.TrimSuffix(input, filepath.Ext(input))
	}

	paths := make([]string, 0, len(formats))
	for _, format := range formats {
		path := base + artifactExt(format)
		if output != "" && len(formats) == 1 {
			path = output
		}
		if err := os.WriteFile(path, artifacts[format], 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// artifactExt returns the file extension for a format. The JSON artifact
// gets a .layout.json suffix so it does not clobber the input document.
func artifactExt(format string) string {
	if format == pipeline.FormatJSON {
		return ".layout.json"
	}
	return "." + format
}
