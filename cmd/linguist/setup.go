package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"linguist/internal/config"
	"linguist/internal/observ"
	"linguist/internal/oracle"
	"linguist/internal/spelling"
)

const appName = "linguist"

// loadConfig reads --config when given, otherwise the nearest linguist.toml
// above the working directory. --locale overrides the file.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	flags := cmd.Root().PersistentFlags()
	path, err := flags.GetString("config")
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to get config flag: %w", err)
	}
	var cfg config.Config
	if path != "" {
		cfg, err = config.Load(path)
	} else {
		cfg, err = config.Discover(".")
	}
	if err != nil {
		return config.Config{}, err
	}
	if flags.Changed("locale") {
		locale, err := flags.GetString("locale")
		if err != nil {
			return config.Config{}, fmt.Errorf("failed to get locale flag: %w", err)
		}
		cfg.Spelling.Locale = locale
	}
	return cfg, nil
}

// openCache returns the dictionary cache, or nil when caching is off or the
// cache directory is unusable.
func openCache(cmd *cobra.Command, cfg config.Config) *oracle.Cache {
	if !cfg.Dictionaries.Cache {
		return nil
	}
	cache, err := oracle.OpenCache(appName)
	if err != nil {
		if !quiet(cmd) {
			fmt.Fprintf(os.Stderr, "warning: dictionary cache disabled: %v\n", err)
		}
		return nil
	}
	return cache
}

// buildOracle loads the built-in word list and every list in the configured
// dictionary directory, then selects the configured locale.
func buildOracle(ctx context.Context, cmd *cobra.Command, cfg config.Config, timer *observ.Timer) (*oracle.Oracle, error) {
	dicts := []*oracle.Dictionary{oracle.Builtin()}
	if cfg.Dictionaries.Dir != "" {
		done := timer.Track("load dictionaries")
		loaded, err := oracle.LoadDir(ctx, cfg.Dictionaries.Dir, openCache(cmd, cfg), 0)
		done(fmt.Sprintf("%d word lists", len(loaded)))
		if err != nil {
			return nil, fmt.Errorf("failed to load dictionaries: %w", err)
		}
		dicts = append(dicts, loaded...)
	}
	locale := cfg.Spelling.Locale
	if locale == "" {
		locale = oracle.BuiltinLocale
	}
	o := oracle.New(oracle.Options{Locale: locale, MaxSuggestions: cfg.Spelling.MaxSuggestions}, dicts...)
	if err := o.SetLocale(locale); err != nil {
		return nil, err
	}
	return o, nil
}

func modePolicy(cfg config.Config) spelling.ModePolicy {
	return spelling.OnlyModes(cfg.Spelling.Modes...)
}
