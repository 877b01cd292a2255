package main

import (
	"encoding/json"
	"fmt"

	"github.com/aretw0/gatefold/internal/compiler"
	"github.com/aretw0/gatefold/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var lowerCmd = &cobra.Command{
	Use:   "lower [file]",
	Short: "Lower a model to plain strands",
	Long: `Reads a model from a file (or stdin when the file is "-" or omitted) and prints
every complex as the list of strands it is made of.

Output formats:
- text (default): source notation, one complex per line
- json: the lowered model
- markdown: a rendered summary for the terminal`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")

		m, title, err := lowerInput(cmd, args)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		switch format {
		case "text":
			fmt.Fprint(out, compiler.Format(m))
		case "json":
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(m)
		case "markdown":
			rendered, err := tui.RenderModel(tui.NewRenderer(), title, m)
			if err != nil {
				return err
			}
			fmt.Fprint(out, rendered)
		default:
			return fmt.Errorf("unknown format %q (want text, json or markdown)", format)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(lowerCmd)
	addInputFlags(lowerCmd)
	lowerCmd.Flags().StringP("format", "f", "text", "Output format: text, json or markdown")
}
