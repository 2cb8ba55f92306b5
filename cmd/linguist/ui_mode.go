package main

import (
	"fmt"
	"os"
	"strings"
)

// progressMode selects whether `check` draws the live progress view.
type progressMode string

const (
	progressAuto progressMode = "auto"
	progressOn   progressMode = "on"
	progressOff  progressMode = "off"
)

func parseProgressMode(value string) (progressMode, error) {
	switch mode := progressMode(strings.ToLower(strings.TrimSpace(value))); mode {
	case "":
		return progressAuto, nil
	case progressAuto, progressOn, progressOff:
		return mode, nil
	default:
		return "", fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
	}
}

// wantProgress reports whether a run over files inputs should draw progress.
// The view renders on stderr, so auto mode looks at stderr only.
func wantProgress(mode progressMode, files int) bool {
	if files < 2 {
		return false
	}
	switch mode {
	case progressOn:
		return true
	case progressOff:
		return false
	default:
		return isTerminal(os.Stderr)
	}
}
