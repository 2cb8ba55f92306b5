package textpos

import "unicode"

// IsWordRune reports whether r can be part of a word.
func IsWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r)
}

// ContainsWordSeparator reports whether s holds any rune that splits words:
// whitespace, punctuation, hyphens, underscores and apostrophes all count.
// Compound tokens such as "spell-check" or "snake_case" are therefore
// treated as several words.
func ContainsWordSeparator(s string) bool {
	for _, r := range s {
		if !IsWordRune(r) {
			return true
		}
	}
	return false
}

type runeClass uint8

const (
	classWord runeClass = iota
	classSpace
	classPunct
)

func classOf(r rune) runeClass {
	switch {
	case IsWordRune(r):
		return classWord
	case unicode.IsSpace(r):
		return classSpace
	default:
		return classPunct
	}
}

// WordAt returns the rune offsets [start, end) of the word under a caret at
// ch in line. A caret directly after a word selects that word, so every caret
// position from the first rune of "hello" up to the one after its last rune
// yields the same bounds. When no word touches the caret, the run of
// whitespace or punctuation at ch is returned instead.
func WordAt(line []rune, ch int) (int, int) {
	if ch < 0 {
		ch = 0
	}
	if ch > len(line) {
		ch = len(line)
	}
	if len(line) == 0 {
		return ch, ch
	}
	anchor := ch
	switch {
	case ch < len(line) && IsWordRune(line[ch]):
	case ch > 0 && IsWordRune(line[ch-1]):
		anchor = ch - 1
	case ch == len(line):
		anchor = ch - 1
	}
	class := classOf(line[anchor])
	start, end := anchor, anchor+1
	for start > 0 && classOf(line[start-1]) == class {
		start--
	}
	for end < len(line) && classOf(line[end]) == class {
		end++
	}
	return start, end
}
