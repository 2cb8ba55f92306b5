package lsp

import (
	"encoding/json"
	"fmt"
)

// handleCodeAction opens the context menu on the requested range and
// returns its entries. A repeated request for the same range of an unchanged
// document returns the live entries so ids handed out earlier stay valid.
func (s *Server) handleCodeAction(msg *rpcMessage) error {
	var params codeActionParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return s.conn.replyError(msg.ID, codeInvalidParams, "invalid params")
	}
	uri := canonicalURI(params.TextDocument.URI)

	s.mu.Lock()
	doc := s.docs[uri]
	if doc == nil {
		s.mu.Unlock()
		return s.conn.reply(msg.ID, []codeAction{})
	}
	s.touchLocked(uri)
	key := menuKey{uri: uri, rng: params.Range, version: doc.version}
	if s.liveMenu == nil || *s.liveMenu != key {
		s.selection = &selectionRequest{uri: uri, rng: params.Range}
		s.menu.open()
		s.selection = nil
		s.liveMenu = &key
	}
	actions := s.menu.codeActions()
	s.mu.Unlock()

	return s.conn.reply(msg.ID, actions)
}

func (s *Server) handleExecuteCommand(msg *rpcMessage) error {
	var params executeCommandParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return s.conn.replyError(msg.ID, codeInvalidParams, "invalid params")
	}
	switch params.Command {
	case RunCommand:
		id, err := commandArg(params.Arguments)
		if err != nil {
			return s.conn.replyError(msg.ID, codeInvalidParams, err.Error())
		}
		s.mu.Lock()
		ok := s.menu.run(id)
		if ok {
			s.liveMenu = nil
			s.republishOthersLocked()
		}
		s.mu.Unlock()
		if !ok {
			return s.conn.replyError(msg.ID, codeInvalidParams, "unknown or stale command")
		}
		return s.conn.reply(msg.ID, nil)
	case ToggleCommand:
		s.mu.Lock()
		s.liveMenu = nil
		s.ctrl.SetEnabled(!s.ctrl.Enabled())
		s.reconcileAllLocked()
		enabled := s.ctrl.Enabled()
		s.mu.Unlock()
		return s.conn.reply(msg.ID, enabled)
	default:
		return s.conn.replyError(msg.ID, codeInvalidParams, fmt.Sprintf("unknown command %q", params.Command))
	}
}

func commandArg(args []json.RawMessage) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("expected one argument, got %d", len(args))
	}
	var id string
	if err := json.Unmarshal(args[0], &id); err != nil {
		return "", fmt.Errorf("argument must be a command id: %w", err)
	}
	return id, nil
}

// republishOthersLocked refreshes overlays outside the active document, which
// an ignored word may have changed.
func (s *Server) republishOthersLocked() {
	for _, uri := range sortedKeys(s.docs) {
		if uri == s.lastTouched {
			continue
		}
		if doc := s.docs[uri]; doc.overlay {
			s.publishLocked(doc)
		}
	}
}
