package dispatcher

import (
	"strings"

	"github.com/dshills/vimcore/internal/engine/buffer"
	"github.com/dshills/vimcore/internal/engine/grapheme"
	"github.com/dshills/vimcore/internal/engine/motion"
	"github.com/dshills/vimcore/internal/input/intent"
	"github.com/dshills/vimcore/internal/input/mode"
	"github.com/dshills/vimcore/internal/input/register"
)

// session is one stay in Insert or Replace mode. Its intents replay the
// whole change for ".", and its text feeds the ". register and the count
// repetition on Escape.
type session struct {
	intents []intent.Intent
	text    []string
	count   int
	at      intent.InsertAt

	// repeatable is false for sessions "." cannot replay, such as a change
	// over a multi-line visual selection.
	repeatable bool

	// replaced holds the cells Replace mode overwrote, "" for cells it
	// appended, so backspace can restore them.
	replaced []string
}

func (s *session) typed() string {
	return strings.Join(s.text, "")
}

// isSessionKind reports whether k belongs to the text of an insert session.
func isSessionKind(k intent.Kind) bool {
	switch k {
	case intent.InsertText, intent.InsertNewline, intent.InsertBackspace,
		intent.InsertDelete, intent.InsertDeleteWord, intent.InsertDeleteLine,
		intent.InsertRegister, intent.ReplaceText, intent.ReplaceBackspace:
		return true
	}
	return false
}

// beginSession opens an insert session started by head and an undo group
// covering it.
func (d *Dispatcher) beginSession(st *EditorState, head ...intent.Intent) {
	s := &session{intents: head, count: 1, repeatable: len(head) > 0}
	if len(head) > 0 && (head[0].Kind == intent.EnterInsert || head[0].Kind == intent.EnterReplace) {
		s.count = head[0].N()
		s.at = head[0].InsertAt
	}
	st.session = s
	if !st.History.IsGrouping() {
		st.History.BeginGroup(st.Cursor.Pos)
	}
}

// endSession applies the count repetition, closes the undo group and
// remembers the session for "." and the ". register.
func (d *Dispatcher) endSession(st *EditorState) {
	s := st.session
	if s == nil {
		if st.History.IsGrouping() {
			st.History.EndGroup(st.Cursor.Pos)
		}
		return
	}
	st.session = nil

	text := s.typed()
	if s.count > 1 && text != "" && st.Mode.Mode.Kind == mode.KindInsert {
		for range s.count - 1 {
			switch s.at {
			case intent.InsertOpenBelow, intent.InsertOpenAbove:
				end := buffer.Position{Line: st.Cursor.Pos.Line, Col: st.Buffer.LineLen(st.Cursor.Pos.Line)}
				st.Cursor = motion.At(st.insert(end, "\n"+text))
			default:
				st.Cursor = motion.At(st.insert(st.Cursor.Pos, text))
			}
		}
	}
	st.History.EndGroup(st.Cursor.Pos)

	st.Registers.SetLastInserted(text)
	st.marks['^'] = st.Cursor.Pos
	st.lastInsert = st.Cursor.Pos
	st.hasLastInsert = true

	if st.repeating == 0 && s.repeatable {
		st.lastChange = append(s.intents, intent.Intent{Kind: intent.Escape})
	}
}

// restartSession splits the session at a cursor movement inside Insert
// mode: what was typed so far becomes its own undo step and "." repeats
// only what follows.
func (d *Dispatcher) restartSession(st *EditorState) {
	m := st.Mode.Mode.Kind
	head := intent.Intent{Kind: intent.EnterInsert, InsertAt: intent.InsertBefore}
	if m == mode.KindReplace {
		head.Kind = intent.EnterReplace
	}
	s := st.session
	st.session = nil
	st.History.EndGroup(st.Cursor.Pos)
	if s != nil && st.repeating == 0 {
		st.Registers.SetLastInserted(s.typed())
	}
	d.beginSession(st, head)
}

func (d *Dispatcher) addText(st *EditorState, text string) {
	if st.session != nil {
		st.session.text = append(st.session.text, text)
	}
}

// dropText forgets the last typed grapheme after a backspace.
func (d *Dispatcher) dropText(st *EditorState) {
	s := st.session
	if s == nil || len(s.text) == 0 {
		return
	}
	last := s.text[len(s.text)-1]
	n := grapheme.Count(last)
	if n <= 1 {
		s.text = s.text[:len(s.text)-1]
		return
	}
	s.text[len(s.text)-1] = grapheme.Slice(last, 0, n-1)
}

func (d *Dispatcher) insertText(st *EditorState, text string) Result {
	if !st.Mode.Mode.IsInsertLike() || text == "" {
		return NoOp()
	}
	if text == "\t" && st.Options.ExpandTab {
		text = d.tabSpaces(st, st.Cursor.Pos)
	}
	st.Cursor = motion.At(st.insert(st.Cursor.Pos, text))
	d.addText(st, text)
	return Success()
}

// tabSpaces returns the spaces reaching the next tab stop from p.
func (d *Dispatcher) tabSpaces(st *EditorState, p buffer.Position) string {
	ts := st.Options.TabStop
	col := grapheme.Column(st.Buffer.Line(p.Line), p.Col, ts)
	return strings.Repeat(" ", ts-col%ts)
}

func (d *Dispatcher) insertNewline(st *EditorState, _ intent.Intent) Result {
	if !st.Mode.Mode.IsInsertLike() {
		return NoOp()
	}
	st.Cursor = motion.At(st.insert(st.Cursor.Pos, "\n"))
	d.addText(st, "\n")
	if st.session != nil {
		st.session.replaced = nil
	}
	return Success()
}

func (d *Dispatcher) insertBackspace(st *EditorState, _ intent.Intent) Result {
	if !st.Mode.Mode.IsInsertLike() {
		return NoOp()
	}
	prev, ok := buffer.Prev(st.Buffer, st.Cursor.Pos)
	if !ok {
		return NoOp()
	}
	st.delete(buffer.Range{Start: prev, End: prev})
	st.Cursor = motion.At(prev)
	d.dropText(st)
	return Success()
}

func (d *Dispatcher) insertDelete(st *EditorState, _ intent.Intent) Result {
	if !st.Mode.Mode.IsInsertLike() {
		return NoOp()
	}
	p := st.Cursor.Pos
	if buffer.IsBreak(st.Buffer, p) && p.Line == st.Buffer.LineCount()-1 {
		return NoOp()
	}
	st.delete(buffer.Range{Start: p, End: p})
	return Success()
}

// insertDeleteWord deletes the word before the cursor (Ctrl-W). At the
// start of a line it joins with the previous line.
func (d *Dispatcher) insertDeleteWord(st *EditorState, it intent.Intent) Result {
	p := st.Cursor.Pos
	if p.Col == 0 {
		return d.insertBackspace(st, it)
	}
	if !st.Mode.Mode.IsInsertLike() {
		return NoOp()
	}
	c, _ := motion.Resolve(st.motionContext(true), st.Cursor, motion.Motion{Kind: motion.WordBackward}, 1)
	start := c.Pos
	if start.Line < p.Line {
		start = buffer.Position{Line: p.Line}
	}
	return d.insertDeleteBack(st, start)
}

// insertDeleteLine deletes what was typed on the line before the cursor
// (Ctrl-U), stopping at the indent.
func (d *Dispatcher) insertDeleteLine(st *EditorState, _ intent.Intent) Result {
	if !st.Mode.Mode.IsInsertLike() {
		return NoOp()
	}
	p := st.Cursor.Pos
	start := st.firstNonBlank(p.Line)
	if start.Col >= p.Col {
		start.Col = 0
	}
	return d.insertDeleteBack(st, start)
}

func (d *Dispatcher) insertDeleteBack(st *EditorState, start buffer.Position) Result {
	p := st.Cursor.Pos
	if !start.Before(p) {
		return NoOp()
	}
	st.delete(buffer.Range{Start: start, End: buffer.Position{Line: p.Line, Col: p.Col - 1}})
	st.Cursor = motion.At(start)
	for range p.Col - start.Col {
		d.dropText(st)
	}
	return Success()
}

// insertRegister inserts a register's content as if typed (Ctrl-R).
func (d *Dispatcher) insertRegister(st *EditorState, it intent.Intent) Result {
	if !st.Mode.Mode.IsInsertLike() {
		return NoOp()
	}
	reg, err := d.readRegister(st, it.Register)
	if err != nil {
		return Error(err)
	}
	if reg.IsEmpty() {
		return NoOp()
	}
	st.Cursor = motion.At(st.insert(st.Cursor.Pos, reg.Content))
	d.addText(st, reg.Content)
	return Success()
}

// readRegister returns a register's content, evaluating the expression
// register.
func (d *Dispatcher) readRegister(st *EditorState, name rune) (register.Register, error) {
	if name == 0 {
		name = register.Unnamed
	}
	reg := st.Registers.Get(name)
	if name != register.Expression {
		return reg, nil
	}
	if d.eval == nil {
		return register.Register{}, ErrNoEvaluator
	}
	v, err := d.eval.Eval(reg.Content)
	if err != nil {
		return register.Register{}, err
	}
	return register.Register{Content: v}, nil
}

// replaceText overwrites the cells under the cursor, appending past the
// end of the line.
func (d *Dispatcher) replaceText(st *EditorState, it intent.Intent) Result {
	if st.Mode.Mode.Kind != mode.KindReplace {
		return d.insertText(st, it.Text)
	}
	for _, cell := range grapheme.Split(it.Text) {
		p := st.Cursor.Pos
		old := ""
		if !buffer.IsBreak(st.Buffer, p) {
			old = buffer.CellAt(st.Buffer, p)
		}
		st.replace(p, old, cell)
		st.Cursor = motion.At(buffer.Position{Line: p.Line, Col: p.Col + 1})
		if st.session != nil {
			st.session.replaced = append(st.session.replaced, old)
		}
		d.addText(st, cell)
	}
	return Success()
}

// replaceBackspace moves left, restoring the cell Replace mode overwrote.
func (d *Dispatcher) replaceBackspace(st *EditorState, _ intent.Intent) Result {
	p := st.Cursor.Pos
	if p.Col == 0 {
		return NoOp()
	}
	prev := buffer.Position{Line: p.Line, Col: p.Col - 1}
	st.Cursor = motion.At(prev)
	s := st.session
	if s == nil || len(s.replaced) == 0 {
		return Success()
	}
	old := s.replaced[len(s.replaced)-1]
	s.replaced = s.replaced[:len(s.replaced)-1]
	st.replace(prev, buffer.CellAt(st.Buffer, prev), old)
	d.dropText(st)
	return Success()
}
