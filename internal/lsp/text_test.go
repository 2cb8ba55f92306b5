package lsp

import (
	"testing"

	"linguist/internal/textbuf"
	"linguist/internal/textpos"
)

func TestPositionsCountUTF16Units(t *testing.T) {
	buf := textbuf.New("😀 teh\nab")

	got := toBufferPos(buf, position{Line: 0, Character: 3})
	if got != (textpos.Pos{Line: 0, Char: 2}) {
		t.Fatalf("toBufferPos = %v, want 0:2", got)
	}
	// a position inside a surrogate pair snaps back to the rune start
	if got := toBufferPos(buf, position{Line: 0, Character: 1}); got.Char != 0 {
		t.Fatalf("mid-surrogate position = %v", got)
	}
	if got := toClientPos(buf, textpos.Pos{Line: 0, Char: 2}); got.Character != 3 {
		t.Fatalf("toClientPos = %+v, want character 3", got)
	}
	if got := toBufferPos(buf, position{Line: 9, Character: 0}); got != (textpos.Pos{Line: 1, Char: 2}) {
		t.Fatalf("past-end position = %v, want 1:2", got)
	}
	if got := toBufferPos(buf, position{Line: 1, Character: 40}); got.Char != 2 {
		t.Fatalf("past-eol position = %v", got)
	}
}

func TestDiagnosticRangeAfterAstralRune(t *testing.T) {
	var s Server
	s.oracle = testOracle(t)
	s.maxDiagnostics = 10
	doc := &document{buf: textbuf.New("😀 teh")}
	list := s.diagnosticsFor(doc)
	if len(list) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", len(list))
	}
	if r := list[0].Range; r.Start.Character != 3 || r.End.Character != 6 {
		t.Fatalf("unexpected range %+v", r)
	}
}

func TestDiagnosticsCapped(t *testing.T) {
	var s Server
	s.oracle = testOracle(t)
	s.maxDiagnostics = 2
	doc := &document{buf: textbuf.New("aaa bbb ccc ddd")}
	if got := len(s.diagnosticsFor(doc)); got != 2 {
		t.Fatalf("expected 2 diagnostics, got %d", got)
	}
}

func TestApplyChanges(t *testing.T) {
	buf := textbuf.New("hello teh world")
	applyChanges(buf, []textDocumentContentChangeEvent{
		{Range: &lspRange{Start: position{Line: 0, Character: 6}, End: position{Line: 0, Character: 9}}, Text: "the"},
		{Range: &lspRange{Start: position{Line: 0, Character: 15}, End: position{Line: 0, Character: 15}}, Text: "\nbye"},
	})
	if got := buf.Text(); got != "hello the world\nbye" {
		t.Fatalf("unexpected text %q", got)
	}
	applyChanges(buf, []textDocumentContentChangeEvent{{Text: "fresh"}})
	if got := buf.Text(); got != "fresh" {
		t.Fatalf("full sync left %q", got)
	}
}

func TestModeFor(t *testing.T) {
	tests := []struct {
		uri, lang, want string
	}{
		{"file:///a/notes.txt", "", "plaintext"},
		{"file:///a/README.md", "", "markdown"},
		{"file:///a/main.go", "", "go"},
		{"file:///a/main.go", "golang", "golang"},
		{"untitled:Untitled-1", "", "plaintext"},
	}
	for _, tt := range tests {
		if got := modeFor(tt.uri, tt.lang); got != tt.want {
			t.Fatalf("modeFor(%q, %q) = %q, want %q", tt.uri, tt.lang, got, tt.want)
		}
	}
}
