package oracle

import (
	"errors"
	"strings"
	"sync"
	"testing"
)

func testDict(t *testing.T) *Dictionary {
	t.Helper()
	src := "# test list\nthe\t100\nten\t40\ntea\t20\nhello\nworld\t5\nParis\t3\ncafé\n\nword\t30\n"
	d, err := ParseWordList("en_US", strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParseWordList: %v", err)
	}
	return d
}

func TestParseWordList(t *testing.T) {
	d := testDict(t)
	if d.Len() != 8 {
		t.Fatalf("Len = %d, want 8", d.Len())
	}
	if !d.Contains("HELLO") || !d.Contains("paris") {
		t.Fatalf("case-insensitive lookup failed")
	}
	if _, err := ParseWordList("x", strings.NewReader("word\tmany\n")); err == nil {
		t.Fatalf("bad frequency accepted")
	}
	if _, err := ParseWordList("x", strings.NewReader("word\t99999999999\n")); err == nil {
		t.Fatalf("overflowing frequency accepted")
	}
}

func TestIsCorrect(t *testing.T) {
	o := New(Options{Locale: "en_US"}, testDict(t))
	tests := []struct {
		word string
		want bool
	}{
		{"the", true},
		{"The", true},
		{"THE", true},
		{"teh", false},
		{"2024", true},
		{"3rd", true},
		{"café", true},
		{"", true},
	}
	for _, tt := range tests {
		if got := o.IsCorrect(tt.word); got != tt.want {
			t.Fatalf("IsCorrect(%q) = %v, want %v", tt.word, got, tt.want)
		}
	}
}

func TestSuggestRanksByFrequency(t *testing.T) {
	o := New(Options{Locale: "en_US"}, testDict(t))
	got := strings.Join(o.Suggest("teh"), ",")
	if got != "the,ten,tea" {
		t.Fatalf("Suggest(teh) = %s", got)
	}
}

func TestSuggestMatchesCase(t *testing.T) {
	o := New(Options{Locale: "en_US"}, testDict(t))
	if got := o.Suggest("Teh"); len(got) == 0 || got[0] != "The" {
		t.Fatalf("Suggest(Teh) = %v", got)
	}
	if got := o.Suggest("TEH"); len(got) == 0 || got[0] != "THE" {
		t.Fatalf("Suggest(TEH) = %v", got)
	}
	if got := o.Suggest("pariss"); len(got) == 0 || got[0] != "Paris" {
		t.Fatalf("Suggest(pariss) = %v", got)
	}
}

func TestSuggestSecondEdit(t *testing.T) {
	o := New(Options{Locale: "en_US"}, testDict(t))
	got := strings.Join(o.Suggest("wrodl"), ",")
	if got != "word,world" {
		t.Fatalf("Suggest(wrodl) = %s", got)
	}
	if got := o.Suggest("zzzzzzzzzzzzzzzz"); len(got) != 0 {
		t.Fatalf("Suggest(long nonsense) = %v", got)
	}
}

func TestSuggestLimit(t *testing.T) {
	o := New(Options{Locale: "en_US", MaxSuggestions: 1}, testDict(t))
	if got := o.Suggest("teh"); len(got) != 1 {
		t.Fatalf("Suggest(teh) = %v", got)
	}
}

func TestIgnoreWordIsCaseInsensitive(t *testing.T) {
	o := New(Options{Locale: "en_US"}, testDict(t))
	o.IgnoreWord("Linguist")
	if !o.IsCorrect("linguist") || !o.IsCorrect("LINGUIST") {
		t.Fatalf("ignored word still flagged")
	}
}

func TestLocaleResolution(t *testing.T) {
	us := testDict(t)
	de, err := ParseWordList("de_DE", strings.NewReader("hallo\n"))
	if err != nil {
		t.Fatal(err)
	}
	o := New(Options{}, us, de)
	if !o.IsCorrect("xyzzy") {
		t.Fatalf("no locale chosen but word flagged")
	}
	if err := o.SetLocale("en_GB"); err != nil {
		t.Fatalf("SetLocale(en_GB): %v", err)
	}
	if o.IsCorrect("hallo") {
		t.Fatalf("en fallback accepted German word")
	}
	if err := o.SetLocale("fr_FR"); !errors.Is(err, ErrUnknownLocale) {
		t.Fatalf("SetLocale(fr_FR) = %v", err)
	}
	if o.Locale() != "en_GB" {
		t.Fatalf("failed SetLocale changed locale to %q", o.Locale())
	}
	o.SetLocaleName("de-DE")
	if !o.IsCorrect("Hallo") {
		t.Fatalf("de-DE did not select de_DE")
	}
	if got := strings.Join(o.Locales(), ","); got != "de_DE,en_US" {
		t.Fatalf("Locales = %s", got)
	}
}

func TestSingleDictionaryIsDefault(t *testing.T) {
	o := New(Options{}, testDict(t))
	if o.IsCorrect("teh") {
		t.Fatalf("sole dictionary not used")
	}
}

func TestBuiltin(t *testing.T) {
	d := Builtin()
	if d.Locale != BuiltinLocale || d.Len() < 100 {
		t.Fatalf("builtin: %s with %d words", d.Locale, d.Len())
	}
	o := New(Options{}, d)
	got := o.Suggest("teh")
	if len(got) < 2 || got[0] != "the" {
		t.Fatalf("Suggest(teh) = %v", got)
	}
}

func TestConcurrentUse(t *testing.T) {
	o := New(Options{Locale: "en_US"}, testDict(t))
	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				o.IsCorrect("teh")
				o.Suggest("wrod")
				if i%2 == 0 {
					o.IgnoreWord("foo")
					o.SetModeName("markdown")
				}
			}
		}()
	}
	wg.Wait()
	if o.Mode() != "markdown" {
		t.Fatalf("Mode = %q", o.Mode())
	}
}
