package oracle

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// normalize brings word into NFC so composed and decomposed input compare
// equal.
func normalize(word string) string {
	return norm.NFC.String(strings.TrimSpace(word))
}

// fold is the lookup key of word. Casers are stateful, so each call gets its
// own.
func fold(word string) string {
	return cases.Fold().String(normalize(word))
}

func hasDigit(word string) bool {
	for _, r := range word {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

type casing uint8

const (
	caseLower casing = iota
	caseTitle
	caseUpper
)

func casingOf(word string) casing {
	first, size := utf8.DecodeRuneInString(word)
	if !unicode.IsUpper(first) {
		return caseLower
	}
	rest := word[size:]
	if rest != "" && strings.IndexFunc(rest, unicode.IsLower) < 0 && strings.IndexFunc(rest, unicode.IsLetter) >= 0 {
		return caseUpper
	}
	return caseTitle
}

// matchCase applies the capitalization of orig to suggestion. Suggestions
// that carry their own capitals, such as proper nouns, are left alone.
func matchCase(tag language.Tag, orig, suggestion string) string {
	if strings.IndexFunc(suggestion, unicode.IsUpper) >= 0 {
		return suggestion
	}
	switch casingOf(orig) {
	case caseUpper:
		return cases.Upper(tag).String(suggestion)
	case caseTitle:
		return cases.Title(tag, cases.NoLower).String(suggestion)
	}
	return suggestion
}

// tagFor maps a dictionary locale such as "en_US" to a language tag.
func tagFor(locale string) language.Tag {
	tag, err := language.Parse(strings.ReplaceAll(locale, "_", "-"))
	if err != nil {
		return language.Und
	}
	return tag
}
