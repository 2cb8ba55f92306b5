package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLevelAllows(t *testing.T) {
	tests := []struct {
		level Level
		kind  Kind
		scope Scope
		want  bool
	}{
		{LevelOff, KindFailure, ScopeServer, false},
		{LevelError, KindFailure, ScopeDocument, true},
		{LevelError, KindPoint, ScopeServer, false},
		{LevelPhase, KindPoint, ScopeController, true},
		{LevelPhase, KindPoint, ScopeMenu, false},
		{LevelDetail, KindSpanBegin, ScopeMenu, true},
		{LevelDetail, KindPoint, ScopeDocument, false},
		{LevelDebug, KindPoint, ScopeDocument, true},
		{Level(9), KindFailure, ScopeServer, false},
	}
	for _, tt := range tests {
		if got := tt.level.Allows(tt.kind, tt.scope); got != tt.want {
			t.Fatalf("%s.Allows(%s, %s) = %v, want %v", tt.level, tt.kind, tt.scope, got, tt.want)
		}
	}
}

func TestParseLevel(t *testing.T) {
	for i, s := range []string{"off", "error", "phase", "detail", " DEBUG "} {
		got, err := ParseLevel(s)
		if err != nil {
			t.Fatalf("ParseLevel(%q): %v", s, err)
		}
		if got != Level(i) {
			t.Fatalf("ParseLevel(%q) = %s", s, got)
		}
	}
	if lv, err := ParseLevel(""); err != nil || lv != LevelOff {
		t.Fatalf("empty level = %s, %v", lv, err)
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestStreamNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDetail, FormatNDJSON)

	span := Begin(tr, ScopeMenu, "context-menu", 0)
	span.WithExtra("items", "4").End("built")
	Point(tr, ScopeDocument, "publish", "filtered out")
	Failure(tr, ScopeMenu, "remove-item", errors.New("unknown handle"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 events, got %d: %q", len(lines), buf.String())
	}
	var end struct {
		Kind   string            `json:"kind"`
		SpanID uint64            `json:"span_id"`
		Extra  map[string]string `json:"extra"`
	}
	if err := json.Unmarshal([]byte(lines[1]), &end); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if end.Kind != "end" || end.SpanID != span.ID() || end.Extra["items"] != "4" {
		t.Fatalf("unexpected end event: %+v", end)
	}
	var last struct {
		Kind   string `json:"kind"`
		Scope  string `json:"scope"`
		Detail string `json:"detail"`
		Seq    uint64 `json:"seq"`
	}
	if err := json.Unmarshal([]byte(lines[2]), &last); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if last.Kind != "failure" || last.Scope != "menu" || last.Detail != "unknown handle" || last.Seq == 0 {
		t.Fatalf("unexpected failure event: %+v", last)
	}
}

func TestDisabledSpanIsInert(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatText)
	span := Begin(tr, ScopeMenu, "context-menu", 0)
	if span.ID() != 0 {
		t.Fatalf("filtered span has id %d", span.ID())
	}
	if d := span.WithExtra("k", "v").End("x"); d != 0 || buf.Len() != 0 {
		t.Fatalf("filtered span wrote %q", buf.String())
	}
	var nilSpan *Span
	if nilSpan.End("") != 0 || nilSpan.ID() != 0 {
		t.Fatal("nil span not inert")
	}
}

func TestTextEncoding(t *testing.T) {
	ev := Event{
		Time:     time.Date(2024, 1, 2, 15, 4, 5, 0, time.UTC),
		Kind:     KindSpanEnd,
		Scope:    ScopeMenu,
		ParentID: 1,
		Name:     "context-menu",
		Detail:   "built",
		Elapsed:  3 * time.Millisecond,
		Extra:    map[string]string{"word": "teh", "items": "4"},
	}
	want := "15:04:05.000 [menu]   ← context-menu (built) 3ms {items=4, word=teh}\n"
	if got := string(ev.Encode(FormatText)); got != want {
		t.Fatalf("text = %q, want %q", got, want)
	}
}

func TestRingWraps(t *testing.T) {
	ring := NewRingTracer(2, LevelDebug)
	for _, name := range []string{"a", "b", "c"} {
		Point(ring, ScopeServer, name, "")
	}
	events := ring.Snapshot()
	if len(events) != 2 || events[0].Name != "b" || events[1].Name != "c" {
		t.Fatalf("unexpected snapshot: %+v", events)
	}
	var buf bytes.Buffer
	if err := Dump(ring, &buf); err != nil {
		t.Fatalf("dump: %v", err)
	}
	if !strings.Contains(buf.String(), "[server] • c") {
		t.Fatalf("unexpected dump: %q", buf.String())
	}
	if err := Dump(Nop, &buf); err != nil {
		t.Fatalf("dump nop: %v", err)
	}
}

func TestContextPropagation(t *testing.T) {
	if FromContext(context.Background()) != Nop {
		t.Fatal("expected Nop from empty context")
	}
	ring := NewRingTracer(4, LevelDebug)
	ctx := WithTracer(context.Background(), ring)
	if FromContext(ctx) != Tracer(ring) {
		t.Fatal("expected attached tracer")
	}
	if FromContext(WithTracer(ctx, nil)) != Nop {
		t.Fatal("nil tracer not replaced by Nop")
	}
}

func TestNew(t *testing.T) {
	tr, err := New(Config{Level: LevelOff, Mode: ModeBoth})
	if err != nil || tr.Enabled() {
		t.Fatalf("off tracer = %v, %v", tr, err)
	}

	path := filepath.Join(t.TempDir(), "trace.ndjson")
	tr, err = New(Config{Level: LevelPhase, Mode: ModeBoth, OutputPath: path})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	Point(tr, ScopeServer, "start", "")
	if err := tr.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if _, ok := tr.(*fanout); !ok {
		t.Fatalf("both mode built %T", tr)
	}

	if _, err := New(Config{Level: LevelPhase, Mode: StorageMode(7)}); err == nil {
		t.Fatal("unknown mode accepted")
	}
	if _, err := ParseMode("disk"); err == nil {
		t.Fatal("ParseMode accepted disk")
	}
}
