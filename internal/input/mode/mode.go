package mode

import (
	"fmt"

	"github.com/dshills/vimcore/internal/input/vim"
)

// Kind identifies a mode family.
type Kind uint8

const (
	KindNormal Kind = iota
	KindInsert
	KindVisual
	KindCommand
	KindReplace
	KindOperatorPending
	KindInsertNormal
	KindTerminalInsert

	kindCount
)

var kindNames = [...]string{
	KindNormal:          "normal",
	KindInsert:          "insert",
	KindVisual:          "visual",
	KindCommand:         "command",
	KindReplace:         "replace",
	KindOperatorPending: "operator-pending",
	KindInsertNormal:    "insert-normal",
	KindTerminalInsert:  "terminal",
}

// String returns the kind name.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Kinds returns every mode kind.
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount)
	for k := KindNormal; k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}

// VisualKind selects the granularity of a visual selection.
type VisualKind uint8

const (
	VisualChar VisualKind = iota
	VisualLine
	VisualBlock
)

// String returns a human-readable selection kind.
func (v VisualKind) String() string {
	switch v {
	case VisualChar:
		return "char"
	case VisualLine:
		return "line"
	case VisualBlock:
		return "block"
	default:
		return "unknown"
	}
}

// CommandKind selects what the command line is collecting.
type CommandKind uint8

const (
	CommandEx CommandKind = iota
	CommandSearchForward
	CommandSearchBackward
)

// Prompt returns the character shown before the command line.
func (c CommandKind) Prompt() rune {
	switch c {
	case CommandSearchForward:
		return '/'
	case CommandSearchBackward:
		return '?'
	default:
		return ':'
	}
}

// Mode is the active editing mode. Visual is meaningful only for
// KindVisual, Command only for KindCommand and Operator only for
// KindOperatorPending.
type Mode struct {
	Kind     Kind
	Visual   VisualKind
	Command  CommandKind
	Operator vim.Operator
}

// Modes without variant data.
var (
	Normal         = Mode{Kind: KindNormal}
	Insert         = Mode{Kind: KindInsert}
	Replace        = Mode{Kind: KindReplace}
	InsertNormal   = Mode{Kind: KindInsertNormal}
	TerminalInsert = Mode{Kind: KindTerminalInsert}
)

// Visual returns the visual mode of kind v.
func Visual(v VisualKind) Mode {
	return Mode{Kind: KindVisual, Visual: v}
}

// Command returns the command-line mode of kind c.
func Command(c CommandKind) Mode {
	return Mode{Kind: KindCommand, Command: c}
}

// OperatorPending returns the mode waiting for the range of op.
func OperatorPending(op vim.Operator) Mode {
	return Mode{Kind: KindOperatorPending, Operator: op}
}

// String returns a stable identifier such as "visual-line" or
// "operator-pending(delete)".
func (m Mode) String() string {
	switch m.Kind {
	case KindVisual:
		return fmt.Sprintf("visual-%s", m.Visual)
	case KindCommand:
		return fmt.Sprintf("command(%c)", m.Command.Prompt())
	case KindOperatorPending:
		return fmt.Sprintf("operator-pending(%s)", m.Operator)
	}
	return m.Kind.String()
}

// DisplayName returns the mode name for the status line.
func (m Mode) DisplayName() string {
	switch m.Kind {
	case KindInsert:
		return "-- INSERT --"
	case KindReplace:
		return "-- REPLACE --"
	case KindInsertNormal:
		return "-- (insert) --"
	case KindTerminalInsert:
		return "-- TERMINAL --"
	case KindVisual:
		switch m.Visual {
		case VisualLine:
			return "-- VISUAL LINE --"
		case VisualBlock:
			return "-- VISUAL BLOCK --"
		}
		return "-- VISUAL --"
	}
	return ""
}

// IsVisual reports whether m is one of the visual modes.
func (m Mode) IsVisual() bool {
	return m.Kind == KindVisual
}

// IsInsertLike reports whether typed characters go into the buffer.
func (m Mode) IsInsertLike() bool {
	return m.Kind == KindInsert || m.Kind == KindReplace
}

// AllowsPastEnd reports whether the cursor may rest one grapheme past the
// end of a line.
func (m Mode) AllowsPastEnd() bool {
	return m.IsInsertLike() || m.Kind == KindTerminalInsert
}

// CursorStyle returns the cursor shape for m.
func (m Mode) CursorStyle() CursorStyle {
	switch m.Kind {
	case KindInsert, KindCommand, KindTerminalInsert:
		return CursorBar
	case KindReplace, KindOperatorPending:
		return CursorUnderline
	}
	return CursorBlock
}

// CursorStyle defines the visual appearance of the cursor.
type CursorStyle uint8

const (
	// CursorBlock is a full-cell block cursor (normal mode).
	CursorBlock CursorStyle = iota

	// CursorBar is a thin vertical bar cursor (insert mode).
	CursorBar

	// CursorUnderline is an underline cursor.
	CursorUnderline
)

// String returns a human-readable cursor style name.
func (c CursorStyle) String() string {
	switch c {
	case CursorBlock:
		return "block"
	case CursorBar:
		return "bar"
	case CursorUnderline:
		return "underline"
	default:
		return "unknown"
	}
}

// CanTransition reports whether the editor may move from one mode to the
// other.
func CanTransition(from, to Mode) bool {
	if to.Kind == KindNormal || from.Kind == to.Kind {
		return true
	}
	switch from.Kind {
	case KindNormal:
		return to.Kind != KindInsertNormal
	case KindInsert:
		return to.Kind == KindInsertNormal || to.Kind == KindReplace
	case KindReplace:
		return to.Kind == KindInsert
	case KindInsertNormal:
		switch to.Kind {
		case KindInsert, KindOperatorPending, KindVisual, KindCommand:
			return true
		}
	case KindVisual:
		return to.Kind == KindInsert || to.Kind == KindCommand
	case KindOperatorPending:
		return to.Kind == KindInsert
	}
	return false
}
