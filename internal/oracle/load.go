package oracle

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
)

// WordListExt is the extension of word list files; the base name is the
// locale.
const WordListExt = ".txt"

// BuiltinLocale is the locale of the embedded word list.
const BuiltinLocale = "en_US"

//go:embed words/en_US.txt
var builtinFS embed.FS

// Builtin returns the embedded English word list.
func Builtin() *Dictionary {
	src, err := builtinFS.ReadFile("words/" + BuiltinLocale + WordListExt)
	if err != nil {
		panic(fmt.Sprintf("oracle: embedded word list: %v", err))
	}
	d, err := ParseWordList(BuiltinLocale, bytes.NewReader(src))
	if err != nil {
		panic(fmt.Sprintf("oracle: embedded word list: %v", err))
	}
	return d
}

// LocaleOf returns the locale named by a word list path.
func LocaleOf(path string) string {
	return strings.TrimSuffix(filepath.Base(path), WordListExt)
}

// LoadFile reads one word list, going through cache when it is not nil. The
// second result reports a cache hit.
func LoadFile(path string, cache *Cache) (*Dictionary, bool, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, false, err
	}
	locale := LocaleOf(path)
	key := KeyFor(locale, src)
	if d, ok, err := cache.Get(key); err == nil && ok {
		return d, true, nil
	}
	d, err := ParseWordList(locale, bytes.NewReader(src))
	if err != nil {
		return nil, false, err
	}
	if err := cache.Put(key, d); err != nil {
		return d, false, fmt.Errorf("cache %s: %w", path, err)
	}
	return d, false, nil
}

// ListDir returns the word list paths in dir, sorted.
func ListDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != WordListExt {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

// LoadDir loads every word list in dir in parallel. jobs <= 0 uses
// GOMAXPROCS. Dictionaries come back sorted by locale.
func LoadDir(ctx context.Context, dir string, cache *Cache, jobs int) ([]*Dictionary, error) {
	paths, err := ListDir(dir)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, nil
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// indices are unique per goroutine, no mutex needed
	dicts := make([]*Dictionary, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			d, _, err := LoadFile(path, cache)
			if d == nil {
				return fmt.Errorf("load %s: %w", path, err)
			}
			dicts[i] = d
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	sort.Slice(dicts, func(i, j int) bool { return dicts[i].Locale < dicts[j].Locale })
	return dicts, nil
}
