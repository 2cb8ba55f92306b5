package spelling

import "linguist/internal/textpos"

// Oracle answers spelling questions. Implementations own the dictionaries
// and the session ignore list.
type Oracle interface {
	IsCorrect(word string) bool
	Suggest(word string) []string
	// IgnoreWord accepts word for every later IsCorrect call in this session.
	IgnoreWord(word string)
	SetLocaleName(name string)
	SetModeName(name string)
}

// Workspace gives access to the editor that currently has focus.
type Workspace interface {
	// ActiveEditor returns nil when no document is open.
	ActiveEditor() Editor
}

// Editor is a document together with the view that displays it.
type Editor interface {
	DocumentID() string
	ModeName() string

	Selections() []textpos.Range
	Text(r textpos.Range) string
	WordAt(p textpos.Pos) textpos.Range
	ReplaceRange(r textpos.Range, text string)
	// MarkIgnored exempts r from spelling decorations without involving
	// the oracle.
	MarkIgnored(r textpos.Range)

	HasOverlay() bool
	AddOverlay()
	RemoveOverlay()
	SetStyleSelectedText(on bool)
	Refresh()
}

// Handle identifies an entry the menu host created.
type Handle uint64

// Menu is the host context menu.
type Menu interface {
	AddItem(commandID string) (Handle, error)
	AddDivider() (Handle, error)
	RemoveItem(h Handle) error
	RemoveDivider(h Handle) error
	// RegisterAction binds a label and callback to commandID. A nil run
	// registers a disabled entry.
	RegisterAction(label, commandID string, run func()) error
	UnregisterAction(commandID string) error
	Close()
	// OnBeforeOpen subscribes fn to the event fired right before the menu
	// is shown.
	OnBeforeOpen(fn func())
}

// Busy is an optional progress indicator.
type Busy interface {
	ShowBusy()
	HideBusy()
}
