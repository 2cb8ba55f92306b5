package lsp

import (
	"fmt"
	"sync/atomic"
	"time"

	"linguist/internal/textpos"
)

// scheduleDiagnostics republishes dirty documents once edits settle.
func (s *Server) scheduleDiagnostics() {
	s.mu.Lock()
	seq := atomic.AddUint64(&s.diagSeq, 1)
	if s.debounceTimer != nil {
		s.debounceTimer.Stop()
	}
	s.debounceTimer = time.AfterFunc(s.debounce, func() {
		if atomic.LoadUint64(&s.diagSeq) != seq {
			return
		}
		s.flushDirty()
	})
	s.mu.Unlock()
}

func (s *Server) stopTimer() {
	s.mu.Lock()
	if s.debounceTimer != nil {
		s.debounceTimer.Stop()
		s.debounceTimer = nil
	}
	s.mu.Unlock()
}

// flushDirty publishes every document changed since the last flush.
func (s *Server) flushDirty() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, uri := range sortedKeys(s.dirty) {
		delete(s.dirty, uri)
		if doc := s.docs[uri]; doc != nil {
			s.publishLocked(doc)
		}
	}
}

// publishLocked sends the current diagnostics of doc. A document without an
// overlay is cleared once and then left alone.
func (s *Server) publishLocked(doc *document) {
	if !doc.overlay {
		if _, ok := s.published[doc.uri]; !ok {
			return
		}
		delete(s.published, doc.uri)
		if err := s.sendPublish(doc.uri, nil, nil); err != nil {
			s.logf("failed to clear diagnostics: %v", err)
		}
		return
	}
	version := doc.version
	list := s.diagnosticsFor(doc)
	s.published[doc.uri] = struct{}{}
	if err := s.sendPublish(doc.uri, &version, list); err != nil {
		s.logf("failed to publish diagnostics: %v", err)
	}
}

func (s *Server) diagnosticsFor(doc *document) []lspDiagnostic {
	list := make([]lspDiagnostic, 0)
	if s.oracle == nil {
		return list
	}
	doc.buf.Words(func(r textpos.Range, word string) {
		if len(list) >= s.maxDiagnostics || doc.buf.Marked(r) || s.oracle.IsCorrect(word) {
			return
		}
		list = append(list, lspDiagnostic{
			Range:    toClientRange(doc.buf, r),
			Severity: severityInformation,
			Code:     diagnosticCode,
			Source:   diagnosticSource,
			Message:  fmt.Sprintf("%q is misspelled", word),
		})
	})
	return list
}

func (s *Server) sendPublish(uri string, version *int, list []lspDiagnostic) error {
	if list == nil {
		list = []lspDiagnostic{}
	}
	return s.conn.notify("textDocument/publishDiagnostics", publishDiagnosticsParams{
		URI:         uri,
		Version:     version,
		Diagnostics: list,
	})
}

func (s *Server) clearPublishedDiagnostics() {
	s.mu.Lock()
	uris := sortedKeys(s.published)
	s.published = make(map[string]struct{})
	s.mu.Unlock()
	for _, uri := range uris {
		if err := s.sendPublish(uri, nil, nil); err != nil {
			s.logf("failed to clear diagnostics: %v", err)
		}
	}
}
