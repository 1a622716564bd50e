package cli

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/laminagraph/lamina/pkg/cache"
	lio "github.com/laminagraph/lamina/pkg/io"
)

// infoCommand creates the info command for inspecting a graph document.
func (c *CLI) infoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info [graph.json]",
		Short: "Validate a graph document and print its properties",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInfo(args[0])
		},
	}
}

func (c *CLI) runInfo(input string) error {
	data, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("read graph %s: %w", input, err)
	}
	g, err := lio.ReadJSON(bytes.NewReader(data))
	if err != nil {
		return err
	}

	lbl := g.Label()
	printKeyValue("nodes", fmt.Sprintf("%d", g.NodeCount()))
	printKeyValue("edges", fmt.Sprintf("%d", g.EdgeCount()))
	printKeyValue("multigraph", fmt.Sprintf("%t", g.IsMultigraph()))
	printKeyValue("compound", fmt.Sprintf("%t", g.IsCompound()))
	printKeyValue("rankdir", string(lbl.RankDir))
	printKeyValue("ranker", lbl.Ranker)
	printKeyValue("hash", cache.Hash(data))
	return nil
}
