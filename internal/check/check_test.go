package check

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"linguist/internal/oracle"
)

func testOracle(t *testing.T) *oracle.Oracle {
	t.Helper()
	d, err := oracle.ParseWordList("en_US", strings.NewReader("the\t100\nten\t40\ntea\t20\nhello\nworld\t5\n"))
	if err != nil {
		t.Fatalf("ParseWordList: %v", err)
	}
	return oracle.New(oracle.Options{Locale: "en_US"}, d)
}

type recordSink struct {
	mu     sync.Mutex
	events []Event
}

func (s *recordSink) OnEvent(ev Event) {
	s.mu.Lock()
	s.events = append(s.events, ev)
	s.mu.Unlock()
}

func (s *recordSink) count(status Status) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, ev := range s.events {
		if ev.Status == status {
			n++
		}
	}
	return n
}

func TestText(t *testing.T) {
	findings := Text("hello teh world\nwrold", testOracle(t))
	if len(findings) != 2 {
		t.Fatalf("expected 2 findings, got %+v", findings)
	}
	first := findings[0]
	if first.Word != "teh" || first.Range.Start.Char != 6 || first.Range.End.Char != 9 {
		t.Fatalf("unexpected first finding %+v", first)
	}
	if strings.Join(first.Suggestions, ",") != "the,ten,tea" {
		t.Fatalf("unexpected suggestions %v", first.Suggestions)
	}
	if findings[1].Word != "wrold" || findings[1].Range.Start.Line != 1 {
		t.Fatalf("unexpected second finding %+v", findings[1])
	}
}

func TestFilesKeepsOrderAndReportsProgress(t *testing.T) {
	files := map[string]string{
		"a.txt": "teh",
		"b.txt": "hello world",
		"c.txt": "teh teh",
	}
	sink := &recordSink{}
	req := Request{
		Files:    []string{"a.txt", "b.txt", "c.txt", "missing.txt"},
		Oracle:   testOracle(t),
		Jobs:     2,
		Progress: sink,
		ReadFile: func(path string) ([]byte, error) {
			text, ok := files[path]
			if !ok {
				return nil, os.ErrNotExist
			}
			return []byte(text), nil
		},
	}
	results, err := Files(context.Background(), req)
	if err != nil {
		t.Fatalf("Files: %v", err)
	}
	want := []int{1, 0, 2, 0}
	for i, r := range results {
		if r.Path != req.Files[i] {
			t.Fatalf("result %d is %q, want %q", i, r.Path, req.Files[i])
		}
		if len(r.Findings) != want[i] {
			t.Fatalf("%s: %d findings, want %d", r.Path, len(r.Findings), want[i])
		}
	}
	if !errors.Is(results[3].Err, os.ErrNotExist) {
		t.Fatalf("expected read error for missing file, got %v", results[3].Err)
	}
	if Count(results) != 3 {
		t.Fatalf("Count = %d, want 3", Count(results))
	}
	if sink.count(StatusQueued) != 4 || sink.count(StatusChecking) != 4 {
		t.Fatalf("unexpected progress %+v", sink.events)
	}
	if sink.count(StatusDone) != 3 || sink.count(StatusError) != 1 {
		t.Fatalf("unexpected outcome events %+v", sink.events)
	}
}

func TestFilesCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Files(ctx, Request{
		Files:    []string{"a.txt"},
		Oracle:   testOracle(t),
		ReadFile: func(string) ([]byte, error) { return []byte("teh"), nil },
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestFilesNeedsOracle(t *testing.T) {
	if _, err := Files(context.Background(), Request{Files: []string{"a"}}); err == nil {
		t.Fatalf("expected error without oracle")
	}
}

func TestChannelSink(t *testing.T) {
	ch := make(chan Event, 1)
	ChannelSink{Ch: ch}.OnEvent(Event{File: "x", Status: StatusDone})
	if ev := <-ch; ev.File != "x" {
		t.Fatalf("unexpected event %+v", ev)
	}
	ChannelSink{}.OnEvent(Event{})
}

func TestCollect(t *testing.T) {
	dir := t.TempDir()
	write := func(rel string) {
		path := filepath.Join(dir, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	write("b.md")
	write("a.txt")
	write("sub/c.TXT")
	write("skip.go")
	write(".git/d.txt")

	files, err := Collect([]string{dir, filepath.Join(dir, "skip.go"), filepath.Join(dir, "a.txt")}, nil)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	var rel []string
	for _, f := range files {
		r, _ := filepath.Rel(dir, f)
		rel = append(rel, filepath.ToSlash(r))
	}
	if got := strings.Join(rel, ","); got != "a.txt,b.md,skip.go,sub/c.TXT" {
		t.Fatalf("Collect = %q", got)
	}
	if _, err := Collect([]string{filepath.Join(dir, "nope")}, nil); err == nil {
		t.Fatalf("missing path accepted")
	}
}
