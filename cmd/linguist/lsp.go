package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"linguist/internal/lsp"
	"linguist/internal/trace"
	"linguist/internal/version"
)

var lspCmd = &cobra.Command{
	Use:   "lsp",
	Short: "Run the spelling language server over stdio",
	Args:  cobra.NoArgs,
	RunE:  runLSP,
}

func runLSP(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	cleanup, err := setupTracing(cmd, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	o, err := buildOracle(cmd.Context(), cmd, cfg, nil)
	if err != nil {
		return err
	}
	server := lsp.NewServer(os.Stdin, os.Stdout, lsp.ServerOptions{
		Debounce:       cfg.LSP.Debounce.Duration,
		MaxDiagnostics: cfg.LSP.MaxDiagnostics,
		Oracle:         o,
		Enabled:        cfg.Spelling.Enabled,
		Locale:         cfg.Spelling.Locale,
		Modes:          modePolicy(cfg),
		Divider:        cfg.Spelling.Divider,
		Tracer:         trace.FromContext(cmd.Context()),
		Version:        version.Version,
	})
	if err := server.Run(cmd.Context()); err != nil {
		if errors.Is(err, lsp.ErrExit) {
			return nil
		}
		if errors.Is(err, lsp.ErrExitWithoutShutdown) {
			return fmt.Errorf("lsp exit without shutdown")
		}
		return err
	}
	return nil
}
