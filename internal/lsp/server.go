// Package lsp hosts the spelling engine behind a stdio language server.
//
// The overlay of a document is its published diagnostics, the context menu
// is the code-action list of a range, and menu actions run through
// workspace/executeCommand. The most recently touched document is the
// active one.
package lsp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"linguist/internal/spelling"
	"linguist/internal/textbuf"
	"linguist/internal/trace"
)

var (
	// ErrExit signals a graceful shutdown after receiving "exit".
	ErrExit = errors.New("lsp exit")
	// ErrExitWithoutShutdown signals an "exit" without a preceding "shutdown".
	ErrExitWithoutShutdown = errors.New("lsp exit without shutdown")
)

const (
	// RunCommand executes a context-menu entry; its argument is the entry's
	// command id.
	RunCommand = "linguist.run"
	// ToggleCommand flips spell checking on or off.
	ToggleCommand = "linguist.toggle"

	diagnosticSource = "linguist"
	diagnosticCode   = "misspelled"
)

// ServerOptions configures LSP server behavior.
type ServerOptions struct {
	Debounce       time.Duration
	MaxDiagnostics int

	Oracle  spelling.Oracle
	Enabled bool
	Locale  string
	Modes   spelling.ModePolicy
	Divider bool

	Tracer  trace.Tracer
	Version string
}

// Server handles stdio JSON-RPC for the linguist LSP.
type Server struct {
	conn *conn

	mu          sync.Mutex
	docs        map[string]*document
	lastTouched string
	// focus overrides lastTouched while every document is reconciled.
	focus     string
	selection *selectionRequest
	// liveMenu identifies the request the current menu entries were built
	// for; nil once they may be stale.
	liveMenu  *menuKey
	published map[string]struct{}
	dirty     map[string]struct{}

	ctrl   *spelling.Controller
	menu   *menuHost
	oracle spelling.Oracle
	tracer trace.Tracer

	shutdownRequested bool
	debounce          time.Duration
	debounceTimer     *time.Timer
	diagSeq           uint64
	maxDiagnostics    int
	version           string
}

type selectionRequest struct {
	uri string
	rng lspRange
}

type menuKey struct {
	uri     string
	rng     lspRange
	version int
}

// NewServer constructs a new LSP server.
func NewServer(in io.Reader, out io.Writer, opts ServerOptions) *Server {
	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = 150 * time.Millisecond
	}
	maxDiagnostics := opts.MaxDiagnostics
	if maxDiagnostics <= 0 {
		maxDiagnostics = 500
	}
	s := &Server{
		conn:           newConn(in, out),
		docs:           make(map[string]*document),
		published:      make(map[string]struct{}),
		dirty:          make(map[string]struct{}),
		menu:           newMenuHost(),
		oracle:         opts.Oracle,
		tracer:         trace.OrNop(opts.Tracer),
		debounce:       debounce,
		maxDiagnostics: maxDiagnostics,
		version:        opts.Version,
	}
	s.ctrl = spelling.New(spelling.Options{
		Oracle:    opts.Oracle,
		Workspace: workspace{s},
		ModeValid: opts.Modes,
		Divider:   opts.Divider,
		Tracer:    s.tracer,
	})
	if err := s.ctrl.Attach(s.menu); err != nil {
		// a fresh menu host never refuses the placeholder
		panic(err)
	}
	if opts.Locale != "" {
		s.ctrl.SetLocale(opts.Locale)
	}
	s.ctrl.SetEnabled(opts.Enabled)
	return s
}

// Run serves LSP requests until exit or end of input.
func (s *Server) Run(ctx context.Context) error {
	defer s.stopTimer()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		msg, err := s.conn.read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			var perr *parseError
			if errors.As(err, &perr) {
				s.logf("%v", err)
				continue
			}
			return err
		}
		if msg.Method == "" {
			if len(msg.ID) > 0 {
				s.handleResponse(msg)
			}
			continue
		}
		if err := s.handleMessage(msg); err != nil {
			return err
		}
	}
}

func (s *Server) handleMessage(msg *rpcMessage) error {
	span := trace.Begin(s.tracer, trace.ScopeServer, msg.Method, 0)
	defer span.End("")

	switch msg.Method {
	case "initialize":
		return s.handleInitialize(msg)
	case "initialized":
		return nil
	case "shutdown":
		return s.handleShutdown(msg)
	case "exit":
		s.mu.Lock()
		requested := s.shutdownRequested
		s.mu.Unlock()
		if requested {
			return ErrExit
		}
		return ErrExitWithoutShutdown
	case "workspace/didChangeConfiguration":
		return s.handleDidChangeConfiguration(msg)
	case "workspace/executeCommand":
		return s.handleExecuteCommand(msg)
	case "textDocument/didOpen":
		return s.handleDidOpen(msg)
	case "textDocument/didChange":
		return s.handleDidChange(msg)
	case "textDocument/didClose":
		return s.handleDidClose(msg)
	case "textDocument/codeAction":
		return s.handleCodeAction(msg)
	default:
		if len(msg.ID) > 0 {
			return s.conn.replyError(msg.ID, codeMethodNotFound, "method not found")
		}
		return nil
	}
}

func (s *Server) handleInitialize(msg *rpcMessage) error {
	var params initializeParams
	if len(msg.Params) > 0 {
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			return s.conn.replyError(msg.ID, codeInvalidParams, "invalid params")
		}
	}
	if len(params.InitializationOptions) > 0 {
		s.applySettings(params.InitializationOptions)
	}
	result := initializeResult{
		Capabilities: serverCapabilities{
			TextDocumentSync: textDocumentSyncOptions{
				OpenClose: true,
				Change:    2,
			},
			CodeActionProvider: &codeActionOptions{
				CodeActionKinds: []string{"quickfix"},
			},
			ExecuteCommandProvider: &executeCommandOptions{
				Commands: []string{RunCommand, ToggleCommand},
			},
		},
		ServerInfo: serverInfo{Name: "linguist", Version: s.version},
	}
	return s.conn.reply(msg.ID, result)
}

func (s *Server) handleShutdown(msg *rpcMessage) error {
	s.mu.Lock()
	s.shutdownRequested = true
	s.ctrl.Cleanup()
	s.liveMenu = nil
	s.mu.Unlock()
	s.stopTimer()
	s.clearPublishedDiagnostics()
	return s.conn.reply(msg.ID, nil)
}

func (s *Server) handleDidOpen(msg *rpcMessage) error {
	var params didOpenTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return fmt.Errorf("didOpen: %w", err)
	}
	uri := canonicalURI(params.TextDocument.URI)
	if uri == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[uri] = &document{
		uri:     uri,
		mode:    modeFor(uri, params.TextDocument.LanguageID),
		version: params.TextDocument.Version,
		buf:     textbuf.New(params.TextDocument.Text),
	}
	trace.Point(s.tracer, trace.ScopeDocument, "open", uri)
	s.lastTouched = uri
	s.ctrl.UpdateInterface()
	return nil
}

func (s *Server) handleDidChange(msg *rpcMessage) error {
	var params didChangeTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return fmt.Errorf("didChange: %w", err)
	}
	uri := canonicalURI(params.TextDocument.URI)
	s.mu.Lock()
	doc := s.docs[uri]
	if doc == nil {
		s.mu.Unlock()
		return nil
	}
	applyChanges(doc.buf, params.ContentChanges)
	doc.version = params.TextDocument.Version
	if s.liveMenu != nil && s.liveMenu.uri == uri {
		s.liveMenu = nil
	}
	trace.Point(s.tracer, trace.ScopeDocument, "change", uri)
	s.touchLocked(uri)
	schedule := doc.overlay
	if schedule {
		s.dirty[uri] = struct{}{}
	}
	s.mu.Unlock()
	if schedule {
		s.scheduleDiagnostics()
	}
	return nil
}

func (s *Server) handleDidClose(msg *rpcMessage) error {
	var params didCloseTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return fmt.Errorf("didClose: %w", err)
	}
	uri := canonicalURI(params.TextDocument.URI)
	s.mu.Lock()
	delete(s.docs, uri)
	delete(s.dirty, uri)
	if s.liveMenu != nil && s.liveMenu.uri == uri {
		s.liveMenu = nil
	}
	if s.lastTouched == uri {
		s.lastTouched = ""
	}
	_, hadDiagnostics := s.published[uri]
	delete(s.published, uri)
	s.mu.Unlock()
	trace.Point(s.tracer, trace.ScopeDocument, "close", uri)
	if hadDiagnostics {
		if err := s.sendPublish(uri, nil, nil); err != nil {
			s.logf("failed to clear diagnostics: %v", err)
		}
	}
	return nil
}

// touchLocked makes uri the active document and reconciles it when the
// active document changed.
func (s *Server) touchLocked(uri string) {
	if s.lastTouched == uri {
		return
	}
	s.lastTouched = uri
	s.ctrl.UpdateInterface()
}

// reconcileAllLocked runs reconciliation for every open document, not only
// the active one.
func (s *Server) reconcileAllLocked() {
	for _, uri := range sortedKeys(s.docs) {
		s.focus = uri
		s.ctrl.UpdateInterface()
	}
	s.focus = ""
}

func (s *Server) handleResponse(msg *rpcMessage) {
	method, ok := s.conn.complete(msg.ID)
	if !ok {
		s.logf("response to unknown request %s", string(msg.ID))
		return
	}
	if msg.Error != nil {
		s.logf("%s failed: %s", method, msg.Error.Message)
		return
	}
	if method == "workspace/applyEdit" {
		var result applyWorkspaceEditResult
		if err := json.Unmarshal(msg.Result, &result); err == nil && !result.Applied {
			s.logf("edit rejected: %s", result.FailureReason)
		}
	}
}

func (s *Server) logf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "lsp: "+format+"\n", args...)
}
