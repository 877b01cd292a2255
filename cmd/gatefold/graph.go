package main

import (
	"fmt"

	"github.com/aretw0/gatefold/internal/presentation/graph"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph [file]",
	Short: "Export the lowered strands as a Mermaid diagram",
	Long:  `Lowers a model and outputs a Mermaid diagram with one node per strand and one edge per bound strand pair.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, _, err := lowerInput(cmd, args)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(m))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	addInputFlags(graphCmd)
}
