// Package config loads linguist.toml, the per-project settings shared by the
// CLI, the terminal editor and the language server.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// FileName is the name searched for by Find.
const FileName = "linguist.toml"

// ErrNotFound reports that no linguist.toml exists at the requested path.
var ErrNotFound = errors.New("config not found")

// Config is the decoded linguist.toml.
type Config struct {
	// Path is the file the config came from; empty for defaults.
	Path string `toml:"-"`

	Spelling     Spelling     `toml:"spelling"`
	Dictionaries Dictionaries `toml:"dictionaries"`
	LSP          LSP          `toml:"lsp"`
	Trace        Trace        `toml:"trace"`
}

// Spelling configures the spell-check engine.
type Spelling struct {
	Enabled bool   `toml:"enabled"`
	Locale  string `toml:"locale"`
	// Modes restricts the overlay to the listed document modes. Empty means
	// every mode.
	Modes          []string `toml:"modes"`
	MaxSuggestions int      `toml:"max_suggestions"`
	// Divider puts a separator above the spelling entries of the menu.
	Divider bool `toml:"divider"`
}

// Dictionaries locates the word lists.
type Dictionaries struct {
	// Dir holds <locale>.txt word lists; relative paths are resolved
	// against the config file. Empty means the built-in list only.
	Dir string `toml:"dir"`
	// Cache keeps compiled word lists under the user cache directory.
	Cache bool `toml:"cache"`
}

// LSP configures the language server host.
type LSP struct {
	Debounce       Duration `toml:"debounce"`
	MaxDiagnostics int      `toml:"max_diagnostics"`
}

// Trace mirrors the --trace flags.
type Trace struct {
	Level  string `toml:"level"`
	Mode   string `toml:"mode"`
	Output string `toml:"output"`
}

// Duration decodes TOML strings such as "150ms".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the settings used when no linguist.toml exists.
func Default() Config {
	return Config{
		Spelling: Spelling{
			Enabled:        true,
			MaxSuggestions: 5,
		},
		Dictionaries: Dictionaries{Cache: true},
		LSP: LSP{
			Debounce:       Duration{150 * time.Millisecond},
			MaxDiagnostics: 500,
		},
		Trace: Trace{Level: "off", Mode: "stream"},
	}
}

// Find walks up from startDir to locate linguist.toml.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load reads path over the defaults. Keys absent from the file keep their
// default values.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("%s: %w", path, ErrNotFound)
		}
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if meta.IsDefined("spelling", "max_suggestions") && cfg.Spelling.MaxSuggestions <= 0 {
		return Config{}, fmt.Errorf("%s: [spelling].max_suggestions must be positive", path)
	}
	if meta.IsDefined("lsp", "debounce") && cfg.LSP.Debounce.Duration < 0 {
		return Config{}, fmt.Errorf("%s: [lsp].debounce must not be negative", path)
	}
	if meta.IsDefined("dictionaries", "dir") {
		dir := strings.TrimSpace(cfg.Dictionaries.Dir)
		if dir != "" && !filepath.IsAbs(dir) {
			dir = filepath.Join(filepath.Dir(path), filepath.FromSlash(dir))
		}
		cfg.Dictionaries.Dir = dir
	}
	cfg.Path = path
	return cfg, nil
}

// Discover finds linguist.toml above startDir and loads it, falling back to
// the defaults when there is none.
func Discover(startDir string) (Config, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}
