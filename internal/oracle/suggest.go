package oracle

import "sort"

// maxSecondEditLen bounds the words that get distance-two candidates; the
// candidate set grows with the square of the length.
const maxSecondEditLen = 10

// edits1 returns every string one deletion, transposition, replacement or
// insertion away from word, using the runes of alphabet.
func edits1(word []rune, alphabet []rune) []string {
	n := len(word)
	out := make([]string, 0, 2*n+(2*n+1)*len(alphabet))
	buf := make([]rune, 0, n+1)
	for i := range n {
		buf = append(append(buf[:0], word[:i]...), word[i+1:]...)
		out = append(out, string(buf))
	}
	for i := 0; i+1 < n; i++ {
		if word[i] == word[i+1] {
			continue
		}
		buf = append(buf[:0], word...)
		buf[i], buf[i+1] = buf[i+1], buf[i]
		out = append(out, string(buf))
	}
	for i := range n {
		for _, r := range alphabet {
			if r == word[i] {
				continue
			}
			buf = append(buf[:0], word...)
			buf[i] = r
			out = append(out, string(buf))
		}
	}
	for i := 0; i <= n; i++ {
		for _, r := range alphabet {
			buf = append(append(append(buf[:0], word[:i]...), r), word[i:]...)
			out = append(out, string(buf))
		}
	}
	return out
}

// candidates returns the dictionary entries closest to key: distance one
// when any exist, distance two otherwise.
func (d *Dictionary) candidates(key string) []Entry {
	found := make(map[string]Entry)
	collect := func(edits []string) {
		for _, e := range edits {
			if e == key {
				continue
			}
			if entry, ok := d.lookup(e); ok {
				found[e] = entry
			}
		}
	}
	word := []rune(key)
	first := edits1(word, d.alphabet)
	collect(first)
	if len(found) == 0 && len(word) <= maxSecondEditLen {
		seen := make(map[string]struct{}, len(first))
		for _, e := range first {
			if _, dup := seen[e]; dup {
				continue
			}
			seen[e] = struct{}{}
			collect(edits1([]rune(e), d.alphabet))
		}
	}
	out := make([]Entry, 0, len(found))
	for _, e := range found {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Freq != out[j].Freq {
			return out[i].Freq > out[j].Freq
		}
		return out[i].Word < out[j].Word
	})
	return out
}
