package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"linguist/internal/trace"
	"linguist/internal/tui"
)

var editCmd = &cobra.Command{
	Use:   "edit <file>",
	Short: "Edit a file in the terminal with live spell checking",
	Long: `Open a file in a small terminal editor. Misspelled words are underlined;
ctrl+o on a word shows suggestions, ctrl+t toggles checking, ctrl+s saves and
ctrl+q quits. A missing file is created on save.`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func runEdit(cmd *cobra.Command, args []string) error {
	path := args[0]
	if !isTerminal(os.Stdout) {
		return fmt.Errorf("edit needs a terminal")
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	cleanup, err := setupTracing(cmd, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	text := ""
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		text = string(data)
	case errors.Is(err, fs.ErrNotExist):
	default:
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	o, err := buildOracle(cmd.Context(), cmd, cfg, nil)
	if err != nil {
		return err
	}
	return tui.Run(tui.Options{
		Path:    path,
		Text:    text,
		Oracle:  o,
		Enabled: cfg.Spelling.Enabled,
		Modes:   modePolicy(cfg),
		Divider: cfg.Spelling.Divider,
		Tracer:  trace.FromContext(cmd.Context()),
	})
}
