package check

import (
	"time"

	"linguist/internal/textpos"
)

// Status captures the progress state of one file.
type Status string

const (
	// StatusQueued indicates the file is waiting for a worker.
	StatusQueued Status = "queued"
	// StatusChecking indicates a worker is reading or checking the file.
	StatusChecking Status = "checking"
	// StatusDone indicates the file was checked.
	StatusDone Status = "done"
	// StatusError indicates the file could not be read.
	StatusError Status = "error"
)

// Event reports progress for one file.
type Event struct {
	File     string
	Status   Status
	Err      error
	Findings int
	Elapsed  time.Duration
}

// ProgressSink consumes progress events. Files calls OnEvent from several
// goroutines.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

// Oracle is the part of the spelling oracle the checker needs. It must be
// safe for concurrent use.
type Oracle interface {
	IsCorrect(word string) bool
	Suggest(word string) []string
}

// Finding is one misspelled word.
type Finding struct {
	Range       textpos.Range `json:"range"`
	Word        string        `json:"word"`
	Suggestions []string      `json:"suggestions,omitempty"`
}

// Result holds the findings of one file. Err is set when the file could not
// be read.
type Result struct {
	Path     string    `json:"path"`
	Findings []Finding `json:"findings"`
	Err      error     `json:"-"`
}
