// Package oracle is the word-list spelling oracle behind every linguist
// host: dictionaries keyed by locale, a session ignore list and edit-distance
// suggestions.
package oracle

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"fortio.org/safecast"
)

// Entry is one dictionary word.
type Entry struct {
	Word string
	Freq uint32
}

// Dictionary is the word list of one locale. Lookups use the folded form;
// the stored spelling is what suggestions return.
type Dictionary struct {
	Locale string

	words    map[string]Entry
	alphabet []rune
}

// NewDictionary builds a dictionary from entries. Later duplicates keep the
// higher frequency.
func NewDictionary(locale string, entries []Entry) *Dictionary {
	d := &Dictionary{Locale: locale, words: make(map[string]Entry, len(entries))}
	seen := make(map[rune]struct{})
	for _, e := range entries {
		key := fold(e.Word)
		if key == "" {
			continue
		}
		if prev, ok := d.words[key]; ok && prev.Freq >= e.Freq {
			continue
		}
		d.words[key] = Entry{Word: normalize(e.Word), Freq: e.Freq}
		for _, r := range key {
			seen[r] = struct{}{}
		}
	}
	d.alphabet = make([]rune, 0, len(seen))
	for r := range seen {
		d.alphabet = append(d.alphabet, r)
	}
	sort.Slice(d.alphabet, func(i, j int) bool { return d.alphabet[i] < d.alphabet[j] })
	return d
}

// ParseWordList reads a word list: one word per line, optionally followed by
// a tab and a frequency. Blank lines and lines starting with '#' are skipped.
func ParseWordList(locale string, r io.Reader) (*Dictionary, error) {
	var entries []Entry
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		word, freqText, hasFreq := strings.Cut(line, "\t")
		word = strings.TrimSpace(word)
		e := Entry{Word: word, Freq: 1}
		if hasFreq {
			n, err := strconv.ParseInt(strings.TrimSpace(freqText), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("%s:%d: bad frequency: %w", locale, lineNo, err)
			}
			f, err := safecast.Conv[uint32](n)
			if err != nil {
				return nil, fmt.Errorf("%s:%d: frequency out of range: %w", locale, lineNo, err)
			}
			e.Freq = f
		}
		entries = append(entries, e)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", locale, err)
	}
	return NewDictionary(locale, entries), nil
}

// Len returns the number of distinct words.
func (d *Dictionary) Len() int {
	if d == nil {
		return 0
	}
	return len(d.words)
}

// Contains reports whether word is in the dictionary, ignoring case.
func (d *Dictionary) Contains(word string) bool {
	if d == nil {
		return false
	}
	_, ok := d.words[fold(word)]
	return ok
}

// Entries returns every word sorted by spelling.
func (d *Dictionary) Entries() []Entry {
	if d == nil {
		return nil
	}
	out := make([]Entry, 0, len(d.words))
	for _, e := range d.words {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Word < out[j].Word })
	return out
}

func (d *Dictionary) lookup(key string) (Entry, bool) {
	e, ok := d.words[key]
	return e, ok
}
