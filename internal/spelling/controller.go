// Package spelling decides when the spell-check overlay is shown on the
// active document and builds the spelling section of the editor context
// menu.
//
// All state lives in one Controller. Hosts deliver their events serially
// (document switched, settings changed, menu about to open, menu item
// activated) and the Controller drives them back through the Workspace,
// Editor and Menu interfaces. The Controller is not safe for concurrent use;
// hosts must call it from their event loop.
package spelling

import (
	"fmt"
	"strconv"

	"linguist/internal/trace"
)

const (
	// NoSuggestionsCommand is the static command behind the disabled
	// placeholder shown when the oracle has nothing to offer.
	NoSuggestionsCommand = "linguist.noSuggestions"
	// NoSuggestionsLabel is the placeholder label.
	NoSuggestionsLabel = "No spelling suggestions"

	// IgnoreAllLabel and IgnoreOnceLabel label the ignore actions.
	IgnoreAllLabel  = "Ignore All"
	IgnoreOnceLabel = "Ignore Once"

	commandPrefix = "linguist.command."
)

// Options configures a Controller.
type Options struct {
	Oracle    Oracle
	Workspace Workspace
	// Busy is optional.
	Busy Busy
	// ModeValid decides which document modes get the overlay.
	// Nil means AllModes.
	ModeValid ModePolicy
	// Divider separates the spelling entries from the host's own entries.
	Divider bool
	Tracer  trace.Tracer
}

// Controller owns the spell-check state of the process: the enabled flag,
// pending forced refreshes, the active selection range and the dynamic
// context-menu registry.
type Controller struct {
	oracle    Oracle
	workspace Workspace
	busy      Busy
	modeValid ModePolicy
	divider   bool
	tracer    trace.Tracer

	menu Menu

	enabled bool
	refresh map[string]bool

	active    ActiveRange
	hasActive bool

	suggestions []string
	items       []menuItem
	lastID      uint64
}

// New creates a Controller with spell checking disabled.
func New(opts Options) *Controller {
	modeValid := opts.ModeValid
	if modeValid == nil {
		modeValid = AllModes
	}
	return &Controller{
		oracle:    opts.Oracle,
		workspace: opts.Workspace,
		busy:      opts.Busy,
		modeValid: modeValid,
		divider:   opts.Divider,
		tracer:    trace.OrNop(opts.Tracer),
		refresh:   make(map[string]bool),
	}
}

// Attach connects the controller to the context menu host: the placeholder
// command is registered once and the before-open event is subscribed.
func (c *Controller) Attach(menu Menu) error {
	if menu == nil {
		return fmt.Errorf("attach: nil menu")
	}
	if c.menu != nil {
		return fmt.Errorf("attach: menu already attached")
	}
	if err := menu.RegisterAction(NoSuggestionsLabel, NoSuggestionsCommand, nil); err != nil {
		return fmt.Errorf("attach: register %s: %w", NoSuggestionsCommand, err)
	}
	c.menu = menu
	menu.OnBeforeOpen(c.OpenContextMenu)
	return nil
}

// nextCommandID allocates an id that is never handed out twice in the
// lifetime of the process.
func (c *Controller) nextCommandID() string {
	c.lastID++
	return commandPrefix + strconv.FormatUint(c.lastID, 10)
}

func (c *Controller) activeEditor() Editor {
	if c.workspace == nil {
		return nil
	}
	return c.workspace.ActiveEditor()
}
