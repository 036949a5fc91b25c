package dispatcher

import (
	"strings"

	"github.com/dshills/vimcore/internal/input/intent"
	"github.com/dshills/vimcore/internal/input/key"
	"github.com/dshills/vimcore/internal/input/mode"
)

// cmdKey applies a command-line editing key. Backspace on an empty line
// leaves Command mode.
func (d *Dispatcher) cmdKey(st *EditorState, it intent.Intent) Result {
	if st.Mode.Mode.Kind != mode.KindCommand {
		return NoOp()
	}
	cl := &st.Mode.CommandLine
	ev := it.Key
	switch {
	case ev.IsBackspace():
		if cl.Text() == "" {
			d.leaveCommand(st)
			return Success()
		}
		cl.Backspace()
	case ev.Key == key.KeyDelete:
		cl.DeleteForward()
	case ev.IsCtrl('w'):
		cl.DeleteWord()
	case ev.IsCtrl('u'):
		cl.DeleteToStart()
	case ev.Key == key.KeyLeft:
		cl.MoveCursor(-1)
	case ev.Key == key.KeyRight:
		cl.MoveCursor(1)
	case ev.Key == key.KeyHome, ev.IsCtrl('b'):
		cl.Home()
	case ev.Key == key.KeyEnd, ev.IsCtrl('e'):
		cl.End()
	case ev.Key == key.KeyUp, ev.IsCtrl('p'):
		if !cl.Older() {
			return NoOp()
		}
	case ev.Key == key.KeyDown, ev.IsCtrl('n'):
		if !cl.Newer() {
			return NoOp()
		}
	default:
		return NoOp()
	}
	return Success()
}

// exCommand runs a ":" command line through the ExHandler. Typed lines
// are added to the command-line history; every executed line becomes the
// ": register and what "@:" repeats.
func (d *Dispatcher) exCommand(st *EditorState, text string) Result {
	resume := false
	if st.Mode.Mode.Kind == mode.KindCommand {
		if text != "" {
			st.Mode.CommandLine.AddHistory(text)
		}
		resume = st.Mode.Previous.Kind == mode.KindInsertNormal
		d.transition(st, mode.Normal)
	}
	if resume {
		defer d.resumeInsert(st)
	}

	text = strings.TrimLeft(strings.TrimSpace(text), ":")
	if text == "" {
		return NoOp()
	}
	st.lastEx = text
	st.Registers.SetLastCommand(text)
	if d.ex == nil {
		return Error(ErrNotEditorCommand)
	}

	st.Message = ""
	if err := d.ex.Execute(&ExContext{d: d, st: st}, text); err != nil {
		return Error(err)
	}
	return SuccessWithMessage(st.Message)
}
