package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/gatefold/internal/cli"
	"github.com/aretw0/gatefold/pkg/domain"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// addInputFlags registers the flags shared by commands that lower one model.
func addInputFlags(cmd *cobra.Command) {
	cmd.Flags().String("id", "", "Lower a model from the library instead of a file")
	cmd.Flags().Bool("validate", false, "Check binding integrity of the lowered model")
}

// lowerInput lowers the model named by --id, the file given as argument, or stdin.
// It returns the model and a title for display.
func lowerInput(cmd *cobra.Command, args []string) (*domain.Model, string, error) {
	id, _ := cmd.Flags().GetString("id")
	validate, _ := cmd.Flags().GetBool("validate")
	if id != "" && len(args) > 0 {
		return nil, "", errors.New("--id cannot be combined with a file argument")
	}

	eng, closeEngine, err := cli.CreateEngine(cli.EngineOptions{
		Config:    cfg,
		Logger:    logger,
		Validate:  validate,
		NoLibrary: id == "",
	})
	if err != nil {
		return nil, "", err
	}
	defer closeEngine()

	if id != "" {
		m, err := eng.LowerByID(cmd.Context(), id)
		return m, id, err
	}

	src, name, err := readSource(cmd.InOrStdin(), args)
	if err != nil {
		return nil, "", err
	}
	m, err := eng.Lower(cmd.Context(), src)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", name, err)
	}
	return m, name, nil
}

func readSource(stdin io.Reader, args []string) ([]byte, string, error) {
	if len(args) == 0 || args[0] == "-" {
		if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			cli.PrintSystemMessage(os.Stderr, "Reading model from stdin (end with Ctrl-D)")
		}
		src, err := io.ReadAll(stdin)
		return src, "stdin", err
	}
	src, err := os.ReadFile(args[0])
	if err != nil {
		return nil, "", err
	}
	return src, strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0])), nil
}
