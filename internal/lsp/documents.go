package lsp

import (
	"sort"

	"linguist/internal/spelling"
	"linguist/internal/textbuf"
	"linguist/internal/textpos"
)

type document struct {
	uri     string
	mode    string
	version int
	buf     *textbuf.Buffer

	overlay bool
	styled  bool
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// workspace exposes the active document to the controller. The controller
// only runs with Server.mu held.
type workspace struct {
	s *Server
}

func (w workspace) ActiveEditor() spelling.Editor {
	uri := w.s.focus
	if uri == "" {
		uri = w.s.lastTouched
	}
	doc := w.s.docs[uri]
	if doc == nil {
		return nil
	}
	return &docEditor{s: w.s, doc: doc}
}

// docEditor drives one open document on behalf of the controller.
type docEditor struct {
	s   *Server
	doc *document
}

func (e *docEditor) DocumentID() string { return e.doc.uri }
func (e *docEditor) ModeName() string   { return e.doc.mode }

// Selections is the range of the code-action request being answered.
// Outside a request the client's selection is unknown.
func (e *docEditor) Selections() []textpos.Range {
	sel := e.s.selection
	if sel == nil || sel.uri != e.doc.uri {
		return nil
	}
	return []textpos.Range{toBufferRange(e.doc.buf, sel.rng)}
}

func (e *docEditor) Text(r textpos.Range) string        { return e.doc.buf.Slice(r) }
func (e *docEditor) WordAt(p textpos.Pos) textpos.Range { return e.doc.buf.WordAt(p) }

// ReplaceRange asks the client to apply the edit. The buffer changes when the
// client echoes it back through didChange.
func (e *docEditor) ReplaceRange(r textpos.Range, text string) {
	version := e.doc.version
	params := applyWorkspaceEditParams{
		Label: "Replace with " + text,
		Edit: workspaceEdit{DocumentChanges: []textDocumentEdit{{
			TextDocument: optionalVersionedTextDocumentIdentifier{URI: e.doc.uri, Version: &version},
			Edits:        []textEdit{{Range: toClientRange(e.doc.buf, r), NewText: text}},
		}}},
	}
	if _, err := e.s.conn.request("workspace/applyEdit", params); err != nil {
		e.s.logf("failed to request edit: %v", err)
	}
}

func (e *docEditor) MarkIgnored(r textpos.Range) { e.doc.buf.Mark(r) }

func (e *docEditor) HasOverlay() bool { return e.doc.overlay }
func (e *docEditor) AddOverlay()      { e.doc.overlay = true }

func (e *docEditor) RemoveOverlay() {
	e.doc.overlay = false
	e.s.publishLocked(e.doc)
}

func (e *docEditor) SetStyleSelectedText(on bool) { e.doc.styled = on }
func (e *docEditor) Refresh()                     { e.s.publishLocked(e.doc) }
