package oracle

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestCacheRoundTrip(t *testing.T) {
	c, err := NewCache(filepath.Join(t.TempDir(), "dicts"))
	if err != nil {
		t.Fatal(err)
	}
	d := testDict(t)
	key := KeyFor(d.Locale, []byte("src"))
	if _, ok, err := c.Get(key); err != nil || ok {
		t.Fatalf("Get on empty cache = %v, %v", ok, err)
	}
	if err := c.Put(key, d); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, ok, err := c.Get(key)
	if err != nil || !ok {
		t.Fatalf("Get = %v, %v", ok, err)
	}
	if got.Locale != d.Locale || got.Len() != d.Len() || !got.Contains("Paris") {
		t.Fatalf("round trip lost data: %s %d", got.Locale, got.Len())
	}
	if err := c.DropAll(); err != nil {
		t.Fatalf("DropAll: %v", err)
	}
	if _, ok, _ := c.Get(key); ok {
		t.Fatalf("entry survived DropAll")
	}
}

func TestKeyForDependsOnLocale(t *testing.T) {
	if KeyFor("en_US", []byte("a")) == KeyFor("en_GB", []byte("a")) {
		t.Fatalf("keys collide across locales")
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"en_US.txt": "color\t10\n",
		"en_GB.txt": "colour\t10\n",
		"notes.md":  "ignored",
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	cache, err := NewCache(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatal(err)
	}
	dicts, err := LoadDir(context.Background(), dir, cache, 2)
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if len(dicts) != 2 || dicts[0].Locale != "en_GB" || dicts[1].Locale != "en_US" {
		t.Fatalf("dicts = %v", dicts)
	}
	if _, hit, err := LoadFile(filepath.Join(dir, "en_US.txt"), cache); err != nil || !hit {
		t.Fatalf("second load: hit=%v err=%v", hit, err)
	}
}

func TestLoadDirReportsBadList(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "xx.txt"), []byte("w\tnope\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadDir(context.Background(), dir, nil, 0); err == nil {
		t.Fatalf("bad list loaded")
	}
}
