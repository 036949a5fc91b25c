package dispatcher

import (
	"github.com/dshills/vimcore/internal/engine/buffer"
	"github.com/dshills/vimcore/internal/input/intent"
	"github.com/dshills/vimcore/internal/input/mode"
)

func (d *Dispatcher) enterInsert(st *EditorState, it intent.Intent) Result {
	cur := st.Cursor.Pos
	sel, visual := st.Selection()
	if !d.transition(st, mode.Insert) {
		return Error(ErrInvalidTransition)
	}
	if visual {
		// I and A on a selection insert at its start or just past its end.
		r := sel.Range()
		switch it.InsertAt {
		case intent.InsertLineEnd, intent.InsertAfter:
			cur = r.End
			if r.Linewise {
				cur.Col = st.Buffer.LineLen(cur.Line)
			} else {
				cur.Col++
			}
		default:
			cur = r.Start
			if r.Linewise {
				cur = st.firstNonBlank(cur.Line)
			}
		}
		it.InsertAt = intent.InsertBefore
	}
	d.beginSession(st, it)

	switch it.InsertAt {
	case intent.InsertAfter:
		if st.Buffer.LineLen(cur.Line) > 0 {
			cur.Col++
		}
	case intent.InsertLineStart:
		cur = st.firstNonBlank(cur.Line)
	case intent.InsertLineEnd:
		cur.Col = st.Buffer.LineLen(cur.Line)
	case intent.InsertColumnZero:
		cur.Col = 0
	case intent.InsertOpenBelow:
		end := buffer.Position{Line: cur.Line, Col: st.Buffer.LineLen(cur.Line)}
		cur = st.insert(end, "\n")
	case intent.InsertOpenAbove:
		st.insert(buffer.Position{Line: cur.Line}, "\n")
		cur = buffer.Position{Line: cur.Line}
	case intent.InsertLastPos:
		if st.hasLastInsert {
			cur = st.lastInsert
		}
	}
	st.moveTo(cur)
	return Success()
}

func (d *Dispatcher) enterReplace(st *EditorState, it intent.Intent) Result {
	if !d.transition(st, mode.Replace) {
		return Error(ErrInvalidTransition)
	}
	if st.session == nil {
		d.beginSession(st, it)
	}
	return Success()
}

func (d *Dispatcher) enterVisual(st *EditorState, it intent.Intent) Result {
	if !d.transition(st, mode.Visual(it.Visual)) {
		return Error(ErrInvalidTransition)
	}
	return Success()
}

func (d *Dispatcher) enterCommand(st *EditorState, it intent.Intent) Result {
	visual := st.Mode.Mode.IsVisual()
	if !d.transition(st, mode.Command(it.Command)) {
		return Error(ErrInvalidTransition)
	}
	if visual && it.Command == mode.CommandEx {
		st.Mode.CommandLine.Insert("'<,'>")
	}
	return Success()
}

// enterInsertNormal ends the insert session and runs the next command in
// Normal mode.
func (d *Dispatcher) enterInsertNormal(st *EditorState) Result {
	if st.Mode.Mode.Kind != mode.KindInsert {
		return NoOp()
	}
	d.endSession(st)
	if !d.transition(st, mode.InsertNormal) {
		return Error(ErrInvalidTransition)
	}
	return Success()
}

func (d *Dispatcher) escape(st *EditorState) Result {
	switch st.Mode.Mode.Kind {
	case mode.KindInsert, mode.KindReplace:
		d.endSession(st)
		d.transition(st, mode.Normal)
		if st.Cursor.Pos.Col > 0 {
			st.Cursor.Pos.Col--
		}
		st.Cursor.HasWantCol = false
	case mode.KindVisual, mode.KindOperatorPending:
		d.finish(st)
	case mode.KindCommand:
		d.leaveCommand(st)
	case mode.KindInsertNormal:
		d.resumeInsert(st)
	case mode.KindTerminalInsert:
		d.transition(st, mode.Normal)
	default:
		return NoOp()
	}
	return Success()
}

// leaveCommand closes the command line, returning to Insert when it was
// opened with Ctrl-O.
func (d *Dispatcher) leaveCommand(st *EditorState) {
	resume := st.Mode.Previous.Kind == mode.KindInsertNormal
	d.transition(st, mode.Normal)
	if resume {
		d.resumeInsert(st)
	}
}

// reselectVisual restores the last visual selection (gv).
func (d *Dispatcher) reselectVisual(st *EditorState) Result {
	if !st.Mode.HasLastVisual {
		return NoOp()
	}
	last := st.Mode.LastVisual
	if st.Mode.Mode.IsVisual() {
		d.transition(st, mode.Normal)
	}
	if !d.transition(st, mode.Visual(last.Kind)) {
		return Error(ErrInvalidTransition)
	}
	st.Mode.Anchor = buffer.Clamp(st.Buffer, last.Anchor, false)
	st.moveTo(last.Cursor)
	return Success()
}

func (d *Dispatcher) swapVisualEnds(st *EditorState) Result {
	if !st.Mode.HasAnchor {
		return NoOp()
	}
	anchor := st.Mode.Anchor
	st.Mode.Anchor = st.Cursor.Pos
	st.moveTo(anchor)
	return Success()
}
