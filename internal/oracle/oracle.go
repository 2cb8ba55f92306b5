package oracle

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// ErrUnknownLocale reports a locale no loaded dictionary serves.
var ErrUnknownLocale = errors.New("unknown locale")

// DefaultMaxSuggestions caps Suggest when Options leave it unset.
const DefaultMaxSuggestions = 5

// Options configures an Oracle.
type Options struct {
	// Locale selects the initial dictionary.
	Locale         string
	MaxSuggestions int
}

// Oracle answers spelling questions from word lists. It is safe for
// concurrent use.
type Oracle struct {
	mu      sync.RWMutex
	dicts   map[string]*Dictionary
	locale  string
	active  *Dictionary
	mode    string
	ignored map[string]struct{}
	max     int
}

// New creates an oracle over dicts.
func New(opts Options, dicts ...*Dictionary) *Oracle {
	o := &Oracle{
		dicts:   make(map[string]*Dictionary, len(dicts)),
		ignored: make(map[string]struct{}),
		max:     opts.MaxSuggestions,
	}
	if o.max <= 0 {
		o.max = DefaultMaxSuggestions
	}
	for _, d := range dicts {
		if d != nil {
			o.dicts[d.Locale] = d
		}
	}
	o.locale = opts.Locale
	o.active = o.resolve(opts.Locale)
	return o
}

// Add registers d, replacing a dictionary of the same locale.
func (o *Oracle) Add(d *Dictionary) {
	if d == nil {
		return
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	o.dicts[d.Locale] = d
	o.active = o.resolve(o.locale)
}

// resolve finds the dictionary for name: an exact match, then any
// dictionary of the same language. An empty name picks the only dictionary
// when there is exactly one.
func (o *Oracle) resolve(name string) *Dictionary {
	if name == "" {
		if len(o.dicts) == 1 {
			for _, d := range o.dicts {
				return d
			}
		}
		return nil
	}
	if d, ok := o.dicts[name]; ok {
		return d
	}
	lang := baseLanguage(name)
	var best *Dictionary
	for loc, d := range o.dicts {
		if baseLanguage(loc) != lang {
			continue
		}
		if best == nil || loc < best.Locale {
			best = d
		}
	}
	return best
}

func baseLanguage(locale string) string {
	lang, _, _ := strings.Cut(strings.ReplaceAll(locale, "-", "_"), "_")
	return strings.ToLower(lang)
}

// SetLocale switches dictionaries and fails when no dictionary serves name.
func (o *Oracle) SetLocale(name string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	d := o.resolve(name)
	if d == nil {
		return fmt.Errorf("%w: %q", ErrUnknownLocale, name)
	}
	o.locale = name
	o.active = d
	return nil
}

// SetLocaleName switches dictionaries. Without a matching dictionary every
// word is accepted until a known locale is set.
func (o *Oracle) SetLocaleName(name string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.locale = name
	o.active = o.resolve(name)
}

// Locale returns the requested locale name.
func (o *Oracle) Locale() string {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.locale
}

// Locales lists the loaded dictionaries.
func (o *Oracle) Locales() []string {
	o.mu.RLock()
	defer o.mu.RUnlock()
	out := make([]string, 0, len(o.dicts))
	for loc := range o.dicts {
		out = append(out, loc)
	}
	sort.Strings(out)
	return out
}

// SetModeName records the document mode being checked.
func (o *Oracle) SetModeName(name string) {
	o.mu.Lock()
	o.mode = name
	o.mu.Unlock()
}

// Mode returns the last recorded document mode.
func (o *Oracle) Mode() string {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.mode
}

// IgnoreWord accepts word, in any case, for the rest of the session.
func (o *Oracle) IgnoreWord(word string) {
	key := fold(word)
	if key == "" {
		return
	}
	o.mu.Lock()
	o.ignored[key] = struct{}{}
	o.mu.Unlock()
}

// IsCorrect reports whether word is spelled correctly. Words holding a digit
// and words ignored this session are always correct, as is everything when
// no dictionary is active.
func (o *Oracle) IsCorrect(word string) bool {
	key := fold(word)
	if key == "" || hasDigit(key) {
		return true
	}
	o.mu.RLock()
	defer o.mu.RUnlock()
	if _, ok := o.ignored[key]; ok {
		return true
	}
	if o.active == nil {
		return true
	}
	_, ok := o.active.lookup(key)
	return ok
}

// Suggest returns replacement candidates for word, most frequent first, in
// the capitalization of word.
func (o *Oracle) Suggest(word string) []string {
	key := fold(word)
	if key == "" {
		return nil
	}
	o.mu.RLock()
	d, limit := o.active, o.max
	o.mu.RUnlock()
	if d == nil {
		return nil
	}
	tag := tagFor(d.Locale)
	orig := normalize(word)
	var out []string
	seen := make(map[string]struct{})
	for _, e := range d.candidates(key) {
		s := matchCase(tag, orig, e.Word)
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
		if len(out) == limit {
			break
		}
	}
	return out
}
