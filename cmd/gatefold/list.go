package main

import (
	"fmt"

	"github.com/aretw0/gatefold/internal/cli"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the models in the library",
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, closeEngine, err := cli.CreateEngine(cli.EngineOptions{Config: cfg, Logger: logger})
		if err != nil {
			return err
		}
		defer closeEngine()

		ids, err := eng.List(cmd.Context())
		if err != nil {
			return err
		}
		for _, id := range ids {
			fmt.Fprintln(cmd.OutOrStdout(), id)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
