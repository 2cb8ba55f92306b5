// Package observ times the phases of a command run.
package observ

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Timer collects named phases in the order they start. The zero value is
// unusable; a nil *Timer ignores everything.
type Timer struct {
	mu     sync.Mutex
	clock  func() time.Time
	phases []PhaseReport
}

// PhaseReport is one finished or running phase.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Note       string  `json:"note,omitempty"`
}

// Report is a snapshot of a Timer.
type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

func NewTimer() *Timer { return &Timer{clock: time.Now} }

// Track starts the phase name and returns the func that ends it with an
// optional note. Ending twice keeps the first measurement.
func (t *Timer) Track(name string) func(note string) {
	if t == nil {
		return func(string) {}
	}
	t.mu.Lock()
	idx := len(t.phases)
	t.phases = append(t.phases, PhaseReport{Name: name})
	start := t.clock()
	t.mu.Unlock()

	var once sync.Once
	return func(note string) {
		once.Do(func() {
			t.mu.Lock()
			defer t.mu.Unlock()
			t.phases[idx].DurationMS = millis(t.clock().Sub(start))
			t.phases[idx].Note = note
		})
	}
}

// Report returns the phases and their sum.
func (t *Timer) Report() Report {
	if t == nil {
		return Report{}
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	r := Report{Phases: append([]PhaseReport(nil), t.phases...)}
	for _, p := range r.Phases {
		r.TotalMS += p.DurationMS
	}
	return r
}

// Summary renders the report as an aligned table.
func (t *Timer) Summary() string {
	r := t.Report()
	var b strings.Builder
	b.WriteString("timings:\n")
	for _, p := range r.Phases {
		fmt.Fprintf(&b, "  %-20s %9.2f ms", p.Name, p.DurationMS)
		if p.Note != "" {
			fmt.Fprintf(&b, "  (%s)", p.Note)
		}
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "  %-20s %9.2f ms\n", "total", r.TotalMS)
	return b.String()
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
