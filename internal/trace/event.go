package trace

import (
	"encoding/json"
	"slices"
	"time"
)

// Kind is the type of an event.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint
	// KindFailure is a failure the emitter tolerated and moved past.
	KindFailure
)

var kindNames = [...]string{"unknown", "begin", "end", "point", "failure"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return kindNames[0]
}

func (k Kind) marker() string {
	switch k {
	case KindSpanBegin:
		return "→"
	case KindSpanEnd:
		return "←"
	case KindFailure:
		return "!"
	default:
		return "•"
	}
}

// Scope orders events from coarse to fine.
type Scope uint8

const (
	// ScopeServer covers host lifecycle (lsp, tui, check).
	ScopeServer Scope = iota + 1
	// ScopeController covers overlay reconciliation.
	ScopeController
	// ScopeMenu covers context-menu construction and teardown.
	ScopeMenu
	// ScopeDocument covers per-document work such as edits and publishes.
	ScopeDocument
)

var scopeNames = [...]string{"unknown", "server", "controller", "menu", "document"}

func (s Scope) String() string {
	if int(s) < len(scopeNames) {
		return scopeNames[s]
	}
	return scopeNames[0]
}

// Event is one trace record.
type Event struct {
	Time     time.Time
	Seq      uint64
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64
	Name     string
	Detail   string
	Elapsed  time.Duration // span end events only
	Extra    map[string]string
}

// Format is the encoding of a written event.
type Format uint8

const (
	FormatAuto Format = iota
	FormatText
	FormatNDJSON
)

// Encode renders ev as one line in the given format.
func (ev *Event) Encode(format Format) []byte {
	if format == FormatNDJSON {
		return ev.appendJSON(nil)
	}
	return ev.appendText(nil)
}

type jsonEvent struct {
	Time     string            `json:"time"`
	Seq      uint64            `json:"seq"`
	Kind     string            `json:"kind"`
	Scope    string            `json:"scope"`
	SpanID   uint64            `json:"span_id,omitempty"`
	ParentID uint64            `json:"parent_id,omitempty"`
	Name     string            `json:"name"`
	Detail   string            `json:"detail,omitempty"`
	Micros   int64             `json:"elapsed_us,omitempty"`
	Extra    map[string]string `json:"extra,omitempty"`
}

func (ev *Event) appendJSON(b []byte) []byte {
	data, err := json.Marshal(jsonEvent{
		Time:     ev.Time.Format(time.RFC3339Nano),
		Seq:      ev.Seq,
		Kind:     ev.Kind.String(),
		Scope:    ev.Scope.String(),
		SpanID:   ev.SpanID,
		ParentID: ev.ParentID,
		Name:     ev.Name,
		Detail:   ev.Detail,
		Micros:   ev.Elapsed.Microseconds(),
		Extra:    ev.Extra,
	})
	if err != nil {
		return b
	}
	b = append(b, data...)
	return append(b, '\n')
}

// appendText renders "15:04:05.000 [menu] ← context-menu (built) 120µs {items=4}".
func (ev *Event) appendText(b []byte) []byte {
	b = ev.Time.AppendFormat(b, "15:04:05.000")
	b = append(b, " ["...)
	b = append(b, ev.Scope.String()...)
	b = append(b, "] "...)
	if ev.ParentID > 0 {
		b = append(b, "  "...)
	}
	b = append(b, ev.Kind.marker()...)
	b = append(b, ' ')
	b = append(b, ev.Name...)
	if ev.Detail != "" {
		b = append(b, " ("...)
		b = append(b, ev.Detail...)
		b = append(b, ')')
	}
	if ev.Kind == KindSpanEnd && ev.Elapsed > 0 {
		b = append(b, ' ')
		b = append(b, ev.Elapsed.String()...)
	}
	if len(ev.Extra) > 0 {
		keys := make([]string, 0, len(ev.Extra))
		for k := range ev.Extra {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		b = append(b, " {"...)
		for i, k := range keys {
			if i > 0 {
				b = append(b, ", "...)
			}
			b = append(b, k...)
			b = append(b, '=')
			b = append(b, ev.Extra[k]...)
		}
		b = append(b, '}')
	}
	return append(b, '\n')
}
