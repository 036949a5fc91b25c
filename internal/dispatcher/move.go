package dispatcher

import (
	"github.com/dshills/vimcore/internal/engine/buffer"
	"github.com/dshills/vimcore/internal/engine/motion"
	"github.com/dshills/vimcore/internal/engine/textobject"
	"github.com/dshills/vimcore/internal/input/intent"
	"github.com/dshills/vimcore/internal/input/vim"
)

// move resolves a cursor motion. In Visual mode it extends the selection;
// in Insert mode it also splits the insert session.
func (d *Dispatcher) move(st *EditorState, it intent.Intent) Result {
	if it.Motion.Kind.NeedsChar() && !it.Motion.Repeat {
		st.lastFind = it.Motion
		st.hasLastFind = true
	}
	cur, ok := motion.Resolve(st.motionContext(st.Mode.Mode.AllowsPastEnd()), st.Cursor, it.Motion, it.Count)
	if !ok {
		return NoOp()
	}
	moved := cur.Pos != st.Cursor.Pos
	st.Cursor = cur
	if moved && st.session != nil && st.Mode.Mode.IsInsertLike() {
		d.restartSession(st)
	}
	return Success()
}

// repeatFind repeats the last f, F, t or T (";" and ",").
func (d *Dispatcher) repeatFind(st *EditorState, it intent.Intent) Result {
	if !st.hasLastFind {
		return NoOp()
	}
	m := vim.RepeatFind(st.lastFind, it.Before)
	return d.move(st, intent.Intent{Kind: intent.Motion, Motion: m, Count: it.Count})
}

// selectObject extends the visual selection over a text object.
func (d *Dispatcher) selectObject(st *EditorState, it intent.Intent) Result {
	if !st.Mode.Mode.IsVisual() {
		return NoOp()
	}
	r, ok := textobject.Resolve(st.Buffer, st.Cursor.Pos, it.Object)
	if !ok || r.IsEmpty() {
		return NoOp()
	}
	if r.Linewise {
		r.End.Col = max(st.Buffer.LineLen(r.End.Line)-1, 0)
	}
	if st.Mode.Anchor == st.Cursor.Pos || r.Start.Before(st.Mode.Anchor) {
		st.Mode.Anchor = r.Start
	}
	st.moveTo(r.End)
	return Success()
}

func (d *Dispatcher) setMark(st *EditorState, c rune) Result {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		st.marks[c] = st.Cursor.Pos
	case c == '`', c == '\'':
		st.marks['`'] = st.Cursor.Pos
		st.Jumps.Push(st.entry(st.Cursor.Pos))
	default:
		return Error(ErrInvalidMark)
	}
	return Success()
}

// gotoMark jumps to a mark; Linewise lands on the first non-blank of the
// mark's line.
func (d *Dispatcher) gotoMark(st *EditorState, it intent.Intent) Result {
	p, ok := st.Mark(it.Char)
	if !ok {
		return Error(ErrMarkNotSet)
	}
	p = buffer.Clamp(st.Buffer, p, false)
	if it.Linewise {
		p = st.firstNonBlank(p.Line)
	}
	st.moveTo(p)
	return Success()
}

// scroll moves the viewport, keeping the cursor inside it.
func (d *Dispatcher) scroll(st *EditorState, it intent.Intent) Result {
	h := max(st.View.Height, 1)
	last := st.Buffer.LineCount() - 1
	line := st.Cursor.Pos.Line
	top := st.View.Top

	switch it.Scroll {
	case intent.ScrollHalfDown, intent.ScrollHalfUp:
		n := max(h/2, 1)
		if it.Count > 0 {
			n = it.Count
		}
		if it.Scroll == intent.ScrollHalfUp {
			n = -n
		}
		if (n > 0 && line == last) || (n < 0 && line == 0) {
			return NoOp()
		}
		top += n
		line += n
	case intent.ScrollPageDown:
		top += it.N() * max(h-2, 1)
		line = max(line, min(top, last))
	case intent.ScrollPageUp:
		top -= it.N() * max(h-2, 1)
		line = min(line, max(top, 0)+h-1)
	case intent.ScrollLineDown:
		top += it.N()
		line = max(line, min(top, last))
	case intent.ScrollLineUp:
		top -= it.N()
		line = min(line, max(top, 0)+h-1)
	case intent.ScrollCursorTop, intent.ScrollCursorCenter, intent.ScrollCursorBottom:
		if it.Count > 0 {
			line = it.Count - 1
		}
		line = max(0, min(line, last))
		switch it.Scroll {
		case intent.ScrollCursorTop:
			top = line
		case intent.ScrollCursorCenter:
			top = line - h/2
		default:
			top = line - h + 1
		}
	}

	top = max(0, min(top, last))
	line = max(0, min(line, last))
	st.View.Top = top
	if line == st.Cursor.Pos.Line {
		return Success()
	}
	switch it.Scroll {
	case intent.ScrollHalfDown, intent.ScrollHalfUp, intent.ScrollPageDown, intent.ScrollPageUp:
		st.moveTo(st.firstNonBlank(line))
	default:
		st.Cursor.Pos = buffer.Clamp(st.Buffer, buffer.Position{Line: line, Col: st.Cursor.Pos.Col}, false)
	}
	return Success()
}
