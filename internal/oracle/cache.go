package oracle

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"fortio.org/safecast"
	"github.com/vmihailenco/msgpack/v5"
)

// Current schema version - increment when cachePayload format changes
const cacheSchemaVersion uint16 = 1

// Key identifies a compiled word list by its source bytes and locale.
type Key [sha256.Size]byte

// KeyFor hashes a word list source.
func KeyFor(locale string, src []byte) Key {
	h := sha256.New()
	h.Write([]byte(locale))
	h.Write([]byte{0})
	h.Write(src)
	var k Key
	copy(k[:], h.Sum(nil))
	return k
}

// Cache stores compiled dictionaries on disk so large word lists are parsed
// once. Thread-safe for concurrent access.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

type cachePayload struct {
	Schema uint16
	Locale string
	Words  []string
	Freqs  []uint32
	Count  uint32
}

// OpenCache initializes a cache under $XDG_CACHE_HOME/<app>/dicts.
func OpenCache(app string) (*Cache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return NewCache(filepath.Join(base, app, "dicts"))
}

// NewCache initializes a cache rooted at dir.
func NewCache(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir}, nil
}

// Dir returns the cache directory.
func (c *Cache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func (c *Cache) pathFor(key Key) string {
	return filepath.Join(c.dir, hex.EncodeToString(key[:])+".mp")
}

// Put serializes d under key. The file is replaced atomically.
func (c *Cache) Put(key Key, d *Dictionary) (err error) {
	if c == nil || d == nil {
		return nil
	}
	entries := d.Entries()
	count, err := safecast.Conv[uint32](len(entries))
	if err != nil {
		return fmt.Errorf("cache %s: %w", d.Locale, err)
	}
	payload := cachePayload{
		Schema: cacheSchemaVersion,
		Locale: d.Locale,
		Words:  make([]string, len(entries)),
		Freqs:  make([]uint32, len(entries)),
		Count:  count,
	}
	for i, e := range entries {
		payload.Words[i] = e.Word
		payload.Freqs[i] = e.Freq
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if rmErr := os.Remove(f.Name()); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) && err == nil {
			err = rmErr
		}
	}()

	if err := msgpack.NewEncoder(f).Encode(&payload); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get loads the dictionary stored under key. Entries written with another
// schema read as misses.
func (c *Cache) Get(key Key) (*Dictionary, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer func() { _ = f.Close() }()

	var payload cachePayload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return nil, false, err
	}
	if payload.Schema != cacheSchemaVersion {
		return nil, false, nil
	}
	n, err := safecast.Conv[int](payload.Count)
	if err != nil || n != len(payload.Words) || n != len(payload.Freqs) {
		return nil, false, fmt.Errorf("cache %s: corrupt payload", payload.Locale)
	}
	entries := make([]Entry, n)
	for i := range entries {
		entries[i] = Entry{Word: payload.Words[i], Freq: payload.Freqs[i]}
	}
	return NewDictionary(payload.Locale, entries), true, nil
}

// DropAll invalidates the cache.
func (c *Cache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		return err
	}
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}
