package trace

import (
	"fmt"
	"strings"
)

// Level controls how much is traced.
type Level uint8

const (
	LevelOff Level = iota
	LevelError
	LevelPhase
	LevelDetail
	LevelDebug
)

var levelNames = [...]string{"off", "error", "phase", "detail", "debug"}

// ceiling is the finest scope each level lets through.
var ceiling = [...]Scope{
	LevelPhase:  ScopeController,
	LevelDetail: ScopeMenu,
	LevelDebug:  ScopeDocument,
}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

// ParseLevel reads a level name; the empty string is off.
func ParseLevel(s string) (Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return LevelOff, nil
	}
	for i, name := range levelNames {
		if name == s {
			return Level(i), nil
		}
	}
	return LevelOff, fmt.Errorf("invalid trace level: %q (expected: %s)", s, strings.Join(levelNames[:], "|"))
}

// Allows reports whether an event of kind and scope passes l.
func (l Level) Allows(kind Kind, scope Scope) bool {
	switch {
	case l == LevelOff || int(l) >= len(levelNames):
		return false
	case kind == KindFailure:
		return true
	case l == LevelError:
		return false
	}
	return scope <= ceiling[l]
}
