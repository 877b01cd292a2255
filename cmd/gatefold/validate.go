package main

import (
	"fmt"

	"github.com/aretw0/gatefold/internal/cli"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [dir]",
	Short: "Check every model in the library",
	Long:  `Parses and lowers every model in the library and reports syntax errors, circular structures and broken bindings.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		libCfg := cfg
		if len(args) > 0 {
			libCfg.Library.Dir = args[0]
		}
		libCfg.Store.Backend = "none"

		eng, closeEngine, err := cli.CreateEngine(cli.EngineOptions{Config: libCfg, Logger: logger})
		if err != nil {
			return err
		}
		defer closeEngine()

		if err := eng.Validate(cmd.Context()); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Library is valid! ✅")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
