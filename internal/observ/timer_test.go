package observ

import (
	"strings"
	"testing"
	"time"
)

func TestTimerReport(t *testing.T) {
	now := time.Unix(0, 0)
	tm := NewTimer()
	tm.clock = func() time.Time { return now }

	load := tm.Track("load dictionaries")
	now = now.Add(3 * time.Millisecond)
	load("2 locales")
	load("again")

	check := tm.Track("check")
	now = now.Add(500 * time.Microsecond)
	check("")

	r := tm.Report()
	if len(r.Phases) != 2 {
		t.Fatalf("expected 2 phases, got %d", len(r.Phases))
	}
	if r.Phases[0].Note != "2 locales" || r.Phases[0].DurationMS != 3 {
		t.Fatalf("unexpected first phase %+v", r.Phases[0])
	}
	if r.TotalMS != 3.5 {
		t.Fatalf("total = %v", r.TotalMS)
	}
	summary := tm.Summary()
	for _, want := range []string{"load dictionaries", "(2 locales)", "total", "3.50 ms"} {
		if !strings.Contains(summary, want) {
			t.Fatalf("summary missing %q:\n%s", want, summary)
		}
	}
}

func TestNilTimer(t *testing.T) {
	var tm *Timer
	tm.Track("x")("")
	if r := tm.Report(); len(r.Phases) != 0 {
		t.Fatalf("nil timer reported phases")
	}
	if !strings.Contains(tm.Summary(), "total") {
		t.Fatalf("nil summary lacks total")
	}
}
