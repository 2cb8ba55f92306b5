package lsp

import (
	"encoding/json"

	"linguist/internal/trace"
)

func (s *Server) handleDidChangeConfiguration(msg *rpcMessage) error {
	if len(msg.Params) == 0 {
		return nil
	}
	var params didChangeConfigurationParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return nil
	}
	s.applySettings(params.Settings)
	return nil
}

// applySettings reads the "linguist" section of client settings. A locale
// change rebuilds every overlay.
func (s *Server) applySettings(raw json.RawMessage) {
	if len(raw) == 0 {
		return
	}
	var settings lspSettings
	if err := json.Unmarshal(raw, &settings); err != nil {
		s.logf("ignoring malformed settings: %v", err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.liveMenu = nil
	if settings.Linguist.Locale != nil {
		s.ctrl.SetLocale(*settings.Linguist.Locale)
		for uri := range s.docs {
			s.ctrl.RequestRefresh(uri)
		}
	}
	if settings.Linguist.Enabled != nil {
		s.ctrl.SetEnabled(*settings.Linguist.Enabled)
	}
	trace.Point(s.tracer, trace.ScopeServer, "settings", string(raw))
	s.reconcileAllLocked()
}
