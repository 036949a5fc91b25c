package mode

import (
	"github.com/dshills/vimcore/internal/engine/buffer"
	"github.com/dshills/vimcore/internal/input/key"
	"github.com/dshills/vimcore/internal/input/vim"
)

// Prefix is a key that defers interpretation to the key after it.
type Prefix uint8

const (
	PrefixNone Prefix = iota
	PrefixG
	PrefixZ
	PrefixMarkSet
	PrefixMarkLine
	PrefixMarkExact
	PrefixRegister
	PrefixMacroPlay
	PrefixMacroRecord
	// PrefixFind waits for the target of f, F, t or T; PendingKey says which.
	PrefixFind
	// PrefixObject waits for a text object after i or a; PendingKey says which.
	PrefixObject
	PrefixReplaceChar
	PrefixWindow
	PrefixInsertRegister
	PrefixTerminal
)

var prefixNames = [...]string{
	PrefixNone:           "none",
	PrefixG:              "g",
	PrefixZ:              "z",
	PrefixMarkSet:        "mark",
	PrefixMarkLine:       "markLine",
	PrefixMarkExact:      "markExact",
	PrefixRegister:       "register",
	PrefixMacroPlay:      "macroPlay",
	PrefixMacroRecord:    "macroRecord",
	PrefixFind:           "find",
	PrefixObject:         "object",
	PrefixReplaceChar:    "replaceChar",
	PrefixWindow:         "window",
	PrefixInsertRegister: "insertRegister",
	PrefixTerminal:       "terminal",
}

// String returns the prefix name.
func (p Prefix) String() string {
	if int(p) < len(prefixNames) {
		return prefixNames[p]
	}
	return "unknown"
}

// Selection is a visual selection: the anchor, the cursor end and the kind.
type Selection struct {
	Anchor buffer.Position
	Cursor buffer.Position
	Kind   VisualKind
}

// Range returns the ordered range the selection covers. Line selections are
// linewise and block selections span the rectangle between the two ends.
func (s Selection) Range() buffer.Range {
	switch s.Kind {
	case VisualLine:
		return buffer.Lines(s.Anchor.Line, s.Cursor.Line)
	case VisualBlock:
		return buffer.Range{
			Start: buffer.Position{Line: min(s.Anchor.Line, s.Cursor.Line), Col: min(s.Anchor.Col, s.Cursor.Col)},
			End:   buffer.Position{Line: max(s.Anchor.Line, s.Cursor.Line), Col: max(s.Anchor.Col, s.Cursor.Col)},
			Block: true,
		}
	}
	return buffer.NewRange(s.Anchor, s.Cursor)
}

// State is the modal state of one window.
type State struct {
	Mode     Mode
	Previous Mode

	// Count accumulates digits typed before a command.
	Count vim.Count

	// Pending is the prefix waiting for its next key.
	Pending    Prefix
	PendingKey rune

	// Register is the register selected with "x for the next command.
	Register rune

	// Operator context, set when entering OperatorPending.
	OpCount    int
	OpRegister rune

	// ResumeInsert is set when OperatorPending or Visual was entered from
	// InsertNormal; finishing the command returns to Insert.
	ResumeInsert bool

	Anchor    buffer.Position
	HasAnchor bool

	LastVisual    Selection
	HasLastVisual bool

	CommandLine CommandLine

	// Recording is kept in step with the macro recorder by the dispatcher;
	// "q" stops recording instead of waiting for a register while it is set.
	Recording bool

	keys []key.Event
}

// NewState returns a state in Normal mode.
func NewState() *State {
	return &State{
		Mode:        Normal,
		Previous:    Normal,
		CommandLine: NewCommandLine(),
	}
}

// Transition switches to m. cursor is the cursor position at the moment of
// the switch, used for the visual anchor. It returns false and changes
// nothing when the edge is not allowed.
func (s *State) Transition(m Mode, cursor buffer.Position) bool {
	from := s.Mode
	if !CanTransition(from, m) {
		return false
	}

	if from.IsVisual() && !m.IsVisual() {
		if s.HasAnchor {
			s.LastVisual = Selection{Anchor: s.Anchor, Cursor: cursor, Kind: from.Visual}
			s.HasLastVisual = true
		}
		s.HasAnchor = false
	}
	if m.IsVisual() && !from.IsVisual() {
		s.Anchor = cursor
		s.HasAnchor = true
	}
	if m.Kind == KindCommand {
		s.CommandLine.Reset(m.Command)
	}

	switch {
	case m.Kind == KindOperatorPending, m.IsVisual():
		if from.Kind == KindInsertNormal {
			s.ResumeInsert = true
		} else if from.Kind != KindOperatorPending && !from.IsVisual() {
			s.ResumeInsert = false
		}
	default:
		s.ResumeInsert = false
	}
	if from.Kind == KindOperatorPending && m.Kind != KindOperatorPending {
		s.OpCount = 0
		s.OpRegister = 0
	}

	s.Previous = from
	s.Mode = m
	s.ClearPending()
	return true
}

// Selection returns the active visual selection ending at cursor.
func (s *State) Selection(cursor buffer.Position) (Selection, bool) {
	if !s.Mode.IsVisual() || !s.HasAnchor {
		return Selection{}, false
	}
	return Selection{Anchor: s.Anchor, Cursor: cursor, Kind: s.Mode.Visual}, true
}

// SetPending records a prefix and the key that opened it.
func (s *State) SetPending(p Prefix, ev key.Event) {
	s.Pending = p
	s.PendingKey = ev.Rune
	s.keys = append(s.keys, ev)
}

// PushKey remembers a consumed key, such as a count digit, for display.
func (s *State) PushKey(ev key.Event) {
	s.keys = append(s.keys, ev)
}

// ClearPending drops the pending prefix, the count and the remembered keys.
// The selected register survives so that "ad3w keeps "a.
func (s *State) ClearPending() {
	s.Pending = PrefixNone
	s.PendingKey = 0
	s.Count.Reset()
	s.keys = s.keys[:0]
}

// Cancel is ClearPending plus forgetting the selected register. Escape and
// unhandled keys cancel.
func (s *State) Cancel() {
	s.ClearPending()
	s.Register = 0
}

// PendingKeys returns the keys typed toward an unfinished command in Vim
// notation, for the status line.
func (s *State) PendingKeys() string {
	var prefix string
	if s.Mode.Kind == KindOperatorPending {
		prefix = s.Mode.Operator.Keys()
	}
	return prefix + key.Format(s.keys)
}
