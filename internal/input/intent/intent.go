package intent

import (
	"fmt"
	"strings"

	"github.com/dshills/vimcore/internal/engine/motion"
	"github.com/dshills/vimcore/internal/engine/textobject"
	"github.com/dshills/vimcore/internal/input/key"
	"github.com/dshills/vimcore/internal/input/mode"
	"github.com/dshills/vimcore/internal/input/vim"
)

// Kind identifies an intent.
type Kind uint8

const (
	None Kind = iota

	// Motion moves the cursor (Motion, Count). In Visual mode it extends
	// the selection.
	Motion
	// SelectObject extends a visual selection over a text object (Object).
	SelectObject

	// EnterInsert starts an insert session at InsertAt; Count repeats the
	// typed text when the session ends.
	EnterInsert
	EnterVisual  // Visual
	EnterCommand // Command
	EnterReplace
	// EnterOperatorPending waits for the range of Operator. Count and
	// Register are kept for the completing intent.
	EnterOperatorPending
	EnterInsertNormal
	EnterTerminal
	// Escape returns to Normal mode, ending or cancelling whatever was in
	// progress.
	Escape
	ReselectVisual
	VisualSwapEnds

	// Operator applies Operator over Motion, Object, or Count whole lines
	// when Linewise is set.
	Operator
	// VisualOperator applies Operator over the visual selection. Linewise
	// forces whole lines (as "X", "D", "Y" do in Visual mode).
	VisualOperator

	InsertText // Text
	InsertNewline
	InsertBackspace
	InsertDelete
	InsertDeleteWord
	InsertDeleteLine
	InsertRegister // Register
	ReplaceText    // Text, overwriting in Replace mode
	ReplaceBackspace

	ReplaceChar // Char, Count
	Join        // Count
	JoinRaw     // Count, without inserting spaces
	ToggleCaseChar
	Increment
	Decrement
	// Put pastes Register Count times, Before selecting P over p. In Visual
	// mode it replaces the selection.
	Put

	Undo
	Redo
	Repeat // Count overrides the repeated change's count.

	JumpBack
	JumpForward
	ChangeBack
	ChangeForward
	SetMark  // Char
	GotoMark // Char; Linewise jumps to the first non-blank of the line.

	SearchForward  // Text
	SearchBackward // Text
	SearchNext
	SearchPrev
	SearchWord // Before searches backward (#)
	RepeatFind // Before reverses direction (,)

	Scroll // Scroll, Count

	MacroStart // Register
	MacroStop
	MacroPlay // Register; '@' replays the last macro and ':' the last Ex command.

	CmdInsert // Text
	CmdKey    // Key, a command-line editing key
	ExCommand // Text

	Window        // Key, the key after Ctrl-W
	TerminalInput // Key
	TerminalExit

	kindCount
)

var kindNames = [...]string{
	None:                 "None",
	Motion:               "Motion",
	SelectObject:         "SelectObject",
	EnterInsert:          "EnterInsert",
	EnterVisual:          "EnterVisual",
	EnterCommand:         "EnterCommand",
	EnterReplace:         "EnterReplace",
	EnterOperatorPending: "EnterOperatorPending",
	EnterInsertNormal:    "EnterInsertNormal",
	EnterTerminal:        "EnterTerminal",
	Escape:               "Escape",
	ReselectVisual:       "ReselectVisual",
	VisualSwapEnds:       "VisualSwapEnds",
	Operator:             "Operator",
	VisualOperator:       "VisualOperator",
	InsertText:           "InsertText",
	InsertNewline:        "InsertNewline",
	InsertBackspace:      "InsertBackspace",
	InsertDelete:         "InsertDelete",
	InsertDeleteWord:     "InsertDeleteWord",
	InsertDeleteLine:     "InsertDeleteLine",
	InsertRegister:       "InsertRegister",
	ReplaceText:          "ReplaceText",
	ReplaceBackspace:     "ReplaceBackspace",
	ReplaceChar:          "ReplaceChar",
	Join:                 "Join",
	JoinRaw:              "JoinRaw",
	ToggleCaseChar:       "ToggleCaseChar",
	Increment:            "Increment",
	Decrement:            "Decrement",
	Put:                  "Put",
	Undo:                 "Undo",
	Redo:                 "Redo",
	Repeat:               "Repeat",
	JumpBack:             "JumpBack",
	JumpForward:          "JumpForward",
	ChangeBack:           "ChangeBack",
	ChangeForward:        "ChangeForward",
	SetMark:              "SetMark",
	GotoMark:             "GotoMark",
	SearchForward:        "SearchForward",
	SearchBackward:       "SearchBackward",
	SearchNext:           "SearchNext",
	SearchPrev:           "SearchPrev",
	SearchWord:           "SearchWord",
	RepeatFind:           "RepeatFind",
	Scroll:               "Scroll",
	MacroStart:           "MacroStart",
	MacroStop:            "MacroStop",
	MacroPlay:            "MacroPlay",
	CmdInsert:            "CmdInsert",
	CmdKey:               "CmdKey",
	ExCommand:            "ExCommand",
	Window:               "Window",
	TerminalInput:        "TerminalInput",
	TerminalExit:         "TerminalExit",
}

// String returns the kind name.
func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Kinds returns every kind except None.
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount-1)
	for k := Motion; k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}

// InsertAt says where an insert session starts.
type InsertAt uint8

const (
	InsertBefore     InsertAt = iota // i
	InsertAfter                      // a
	InsertLineStart                  // I
	InsertLineEnd                    // A
	InsertColumnZero                 // gI
	InsertOpenBelow                  // o
	InsertOpenAbove                  // O
	InsertLastPos                    // gi
)

// ScrollKind selects a scroll command.
type ScrollKind uint8

const (
	ScrollHalfDown   ScrollKind = iota // Ctrl-D
	ScrollHalfUp                       // Ctrl-U
	ScrollPageDown                     // Ctrl-F
	ScrollPageUp                       // Ctrl-B
	ScrollLineDown                     // Ctrl-E
	ScrollLineUp                       // Ctrl-Y
	ScrollCursorCenter                 // zz
	ScrollCursorTop                    // zt
	ScrollCursorBottom                 // zb
)

// Intent is one resolved editor command.
type Intent struct {
	Kind     Kind
	Count    int
	Register rune

	Motion   motion.Motion
	Object   textobject.Object
	Operator vim.Operator

	Visual   mode.VisualKind
	Command  mode.CommandKind
	InsertAt InsertAt
	Scroll   ScrollKind

	Char rune
	Text string
	Key  key.Event

	Before   bool
	Linewise bool
}

// N returns the effective count, never less than 1.
func (i Intent) N() int {
	return max(i.Count, 1)
}

// IsRepeatable reports whether "." can repeat the intent on its own. Insert
// sessions are repeated as a whole by the dispatcher.
func (i Intent) IsRepeatable() bool {
	switch i.Kind {
	case Operator, VisualOperator:
		return i.Operator != vim.OpYank && i.Operator != vim.OpNone
	case ReplaceChar, Join, JoinRaw, ToggleCaseChar, Increment, Decrement, Put:
		return true
	}
	return false
}

// StartsSession reports whether the intent opens an insert or replace
// session whose typed text belongs to the same change.
func (i Intent) StartsSession() bool {
	switch i.Kind {
	case EnterInsert, EnterReplace:
		return true
	case Operator, VisualOperator:
		return i.Operator == vim.OpChange
	}
	return false
}

// IsJump reports whether the intent records the cursor in the jump list.
func (i Intent) IsJump() bool {
	switch i.Kind {
	case Motion:
		return i.Motion.Kind.IsJump()
	case GotoMark, SearchForward, SearchBackward, SearchNext, SearchPrev, SearchWord:
		return true
	}
	return false
}

// IsModeChange reports whether the intent exists to switch modes.
func (i Intent) IsModeChange() bool {
	switch i.Kind {
	case EnterInsert, EnterVisual, EnterCommand, EnterReplace, EnterOperatorPending,
		EnterInsertNormal, EnterTerminal, Escape, ReselectVisual, TerminalExit:
		return true
	}
	return false
}

// IsMacroToggle reports whether the intent starts or stops recording.
// Toggles are never recorded themselves.
func (i Intent) IsMacroToggle() bool {
	return i.Kind == MacroStart || i.Kind == MacroStop
}

// String returns a compact description for logs and tests.
func (i Intent) String() string {
	var sb strings.Builder
	sb.WriteString(i.Kind.String())
	if i.Count > 0 {
		fmt.Fprintf(&sb, " count=%d", i.Count)
	}
	if i.Register != 0 {
		fmt.Fprintf(&sb, " reg=%q", i.Register)
	}
	if i.Operator != vim.OpNone {
		fmt.Fprintf(&sb, " op=%s", i.Operator)
	}
	if i.Motion.Kind != motion.None {
		fmt.Fprintf(&sb, " motion=%s", i.Motion.Kind)
		if i.Motion.Char != 0 {
			fmt.Fprintf(&sb, "(%q)", i.Motion.Char)
		}
	}
	if i.Object.Kind != textobject.None {
		fmt.Fprintf(&sb, " object=%s/%s", i.Object.Scope, i.Object.Kind)
	}
	if i.Char != 0 {
		fmt.Fprintf(&sb, " char=%q", i.Char)
	}
	if i.Text != "" {
		fmt.Fprintf(&sb, " text=%q", i.Text)
	}
	if i.Key != (key.Event{}) {
		fmt.Fprintf(&sb, " key=%s", i.Key)
	}
	if i.Linewise {
		sb.WriteString(" linewise")
	}
	if i.Before {
		sb.WriteString(" before")
	}
	return sb.String()
}

// Move returns a Motion intent.
func Move(k motion.Kind, count int) Intent {
	return Intent{Kind: Motion, Motion: motion.Motion{Kind: k}, Count: count}
}

// Apply returns an Operator intent over a motion.
func Apply(op vim.Operator, m motion.Motion, count int) Intent {
	return Intent{Kind: Operator, Operator: op, Motion: m, Count: count}
}

// ApplyObject returns an Operator intent over a text object.
func ApplyObject(op vim.Operator, obj textobject.Object) Intent {
	return Intent{Kind: Operator, Operator: op, Object: obj}
}

// ApplyLines returns an Operator intent over count whole lines.
func ApplyLines(op vim.Operator, count int) Intent {
	return Intent{Kind: Operator, Operator: op, Count: count, Linewise: true}
}
