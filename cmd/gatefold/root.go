package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/gatefold/internal/cli"
	"github.com/aretw0/gatefold/internal/config"
	"github.com/spf13/cobra"
)

var (
	cfg    = config.Default()
	logger = slog.Default()
)

var rootCmd = &cobra.Command{
	Use:   "gatefold",
	Short: "gatefold lowers strand displacement gates to plain strands",
	Long: `gatefold reads DNA strand displacement models written in a compact gate
notation and lowers every gate into the individual strands it is made of,
pairing hybridized domains with explicit bindings.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		loaded, err := config.Load(path)
		if err != nil {
			return err
		}

		if cmd.Flags().Changed("dir") {
			loaded.Library.Dir, _ = cmd.Flags().GetString("dir")
		}
		if cmd.Flags().Changed("log-level") {
			loaded.Log.Level, _ = cmd.Flags().GetString("log-level")
		}
		if cmd.Flags().Changed("log-format") {
			loaded.Log.Format, _ = cmd.Flags().GetString("log-format")
		}
		if cmd.Flags().Changed("store") {
			loaded.Store.Backend, _ = cmd.Flags().GetString("store")
		}
		if err := loaded.Validate(); err != nil {
			return err
		}

		quiet, _ := cmd.Flags().GetBool("quiet")
		l, err := cli.CreateLogger(loaded.Log, quiet)
		if err != nil {
			return err
		}

		cfg = loaded
		logger = l
		slog.SetDefault(logger)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", config.DefaultFile, "Configuration file (YAML or JSON)")
	rootCmd.PersistentFlags().String("dir", ".", "Directory containing the model library")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("log-format", "text", "Log format: text or json")
	rootCmd.PersistentFlags().String("store", "memory", "Lowered model cache: none, memory, file or redis")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Only log warnings and errors")
}
