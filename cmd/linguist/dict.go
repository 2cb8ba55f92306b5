package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"linguist/internal/oracle"
)

var dictCmd = &cobra.Command{
	Use:   "dict",
	Short: "Inspect and compile word lists",
}

var dictListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the available locales",
	Args:  cobra.NoArgs,
	RunE:  runDictList,
}

var dictCompileCmd = &cobra.Command{
	Use:   "compile",
	Short: "Compile the configured word lists into the dictionary cache",
	Args:  cobra.NoArgs,
	RunE:  runDictCompile,
}

func init() {
	dictCompileCmd.Flags().Bool("drop", false, "drop every cached dictionary first")
	dictCmd.AddCommand(dictListCmd)
	dictCmd.AddCommand(dictCompileCmd)
}

func runDictList(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	builtin := oracle.Builtin()
	fmt.Fprintf(out, "%-10s %7d words  %s\n", builtin.Locale, builtin.Len(), color.New(color.Faint).Sprint("built-in"))
	if cfg.Dictionaries.Dir == "" {
		return nil
	}
	paths, err := oracle.ListDir(cfg.Dictionaries.Dir)
	if err != nil {
		return err
	}
	cache := openCache(cmd, cfg)
	for _, path := range paths {
		d, _, err := oracle.LoadFile(path, cache)
		if d == nil {
			fmt.Fprintf(out, "%-10s %s\n", oracle.LocaleOf(path), color.RedString(err.Error()))
			continue
		}
		fmt.Fprintf(out, "%-10s %7d words  %s\n", d.Locale, d.Len(), path)
	}
	return nil
}

func runDictCompile(cmd *cobra.Command, _ []string) error {
	drop, err := cmd.Flags().GetBool("drop")
	if err != nil {
		return fmt.Errorf("failed to get drop flag: %w", err)
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Dictionaries.Dir == "" {
		return errors.New("no [dictionaries].dir configured")
	}
	if !cfg.Dictionaries.Cache {
		return errors.New("the dictionary cache is disabled ([dictionaries].cache = false)")
	}
	cache, err := oracle.OpenCache(appName)
	if err != nil {
		return err
	}
	if drop {
		if err := cache.DropAll(); err != nil {
			return fmt.Errorf("failed to drop cache: %w", err)
		}
	}
	paths, err := oracle.ListDir(cfg.Dictionaries.Dir)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	var errs []error
	for _, path := range paths {
		d, hit, err := oracle.LoadFile(path, cache)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", path, err))
		}
		if d == nil {
			continue
		}
		state := color.GreenString("compiled")
		if hit {
			state = color.New(color.Faint).Sprint("cached")
		}
		if !quiet(cmd) {
			fmt.Fprintf(out, "%-10s %7d words  %s\n", d.Locale, d.Len(), state)
		}
	}
	if !quiet(cmd) {
		fmt.Fprintf(out, "cache: %s\n", cache.Dir())
	}
	return errors.Join(errs...)
}
