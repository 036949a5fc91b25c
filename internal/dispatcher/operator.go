package dispatcher

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dshills/vimcore/internal/engine/buffer"
	"github.com/dshills/vimcore/internal/engine/grapheme"
	"github.com/dshills/vimcore/internal/engine/motion"
	"github.com/dshills/vimcore/internal/engine/textobject"
	"github.com/dshills/vimcore/internal/input/intent"
	"github.com/dshills/vimcore/internal/input/mode"
	"github.com/dshills/vimcore/internal/input/register"
	"github.com/dshills/vimcore/internal/input/vim"
)

var (
	upper = cases.Upper(language.Und)
	lower = cases.Lower(language.Und)
)

// opTarget is a resolved operator application.
type opTarget struct {
	op     vim.Operator
	r      buffer.Range
	reg    rune
	levels int
	// head starts the insert session of a change; nil makes the change
	// unrepeatable.
	head []intent.Intent
}

// operator applies an operator over a motion, a text object or whole lines.
func (d *Dispatcher) operator(st *EditorState, it intent.Intent) Result {
	r, ok := d.operatorRange(st, it)
	if !ok {
		if st.Mode.Mode.Kind == mode.KindOperatorPending {
			d.finish(st)
		}
		return NoOp()
	}
	if r.IsEmpty() && it.Operator != vim.OpChange {
		if st.Mode.Mode.Kind == mode.KindOperatorPending {
			d.finish(st)
		}
		return NoOp()
	}
	if it.Operator.ForcesLinewise() && !r.Linewise {
		r = buffer.Lines(r.Start.Line, r.End.Line)
	}
	return d.apply(st, opTarget{op: it.Operator, r: r, reg: it.Register, levels: 1, head: []intent.Intent{it}})
}

// visualOperator applies an operator over the visual selection.
func (d *Dispatcher) visualOperator(st *EditorState, it intent.Intent) Result {
	sel, ok := st.Selection()
	if !ok {
		return NoOp()
	}
	r := sel.Range()
	if it.Linewise || it.Operator.ForcesLinewise() {
		r = buffer.Lines(r.Start.Line, r.End.Line)
	}
	t := opTarget{op: it.Operator, r: r, reg: it.Register, levels: it.N()}
	if form, ok := visualForm(st, it); ok {
		t.head = []intent.Intent{form}
	}
	return d.apply(st, t)
}

// visualForm converts a command on the visual selection into the
// equivalent Normal-mode intent, which is what "." repeats. Selections
// spanning several lines charwise, and blocks, have no equivalent.
func visualForm(st *EditorState, it intent.Intent) (intent.Intent, bool) {
	sel, ok := st.Selection()
	if !ok {
		return it, false
	}
	r := sel.Range()
	lines := r.LineSpan()
	switch it.Kind {
	case intent.Join, intent.JoinRaw:
		return intent.Intent{Kind: it.Kind, Count: max(lines, 2)}, true
	case intent.VisualOperator:
		if r.Linewise || it.Linewise || it.Operator.ForcesLinewise() {
			lw := intent.ApplyLines(it.Operator, lines)
			lw.Register = it.Register
			return lw, true
		}
		if r.Block || !r.IsSingleLine() {
			return it, false
		}
		ap := intent.Apply(it.Operator, motion.Motion{Kind: motion.Right}, r.End.Col-r.Start.Col+1)
		ap.Register = it.Register
		return ap, true
	case intent.ReplaceChar:
		if r.Linewise || r.Block || !r.IsSingleLine() {
			return it, false
		}
		return intent.Intent{Kind: intent.ReplaceChar, Char: it.Char, Count: r.End.Col - r.Start.Col + 1}, true
	}
	return it, false
}

// operatorRange resolves the text an Operator intent covers. End is
// inclusive, as in buffer.Range.
func (d *Dispatcher) operatorRange(st *EditorState, it intent.Intent) (buffer.Range, bool) {
	cur := st.Cursor.Pos
	last := st.Buffer.LineCount() - 1

	if it.Linewise {
		if it.N() > 1 && cur.Line == last {
			return buffer.Range{}, false
		}
		return buffer.Lines(cur.Line, min(cur.Line+it.N()-1, last)), true
	}
	if it.Object.Kind != textobject.None {
		r, ok := textobject.Resolve(st.Buffer, cur, it.Object)
		if !ok {
			return buffer.Range{}, false
		}
		return r, true
	}

	m := it.Motion
	count := it.Count
	if it.Operator == vim.OpChange && changeWordAsEnd(st.Buffer, cur, m.Kind) {
		// cw on a word changes to its end, not up to the next word.
		big := m.Kind == motion.BigWordForward
		m.Kind = wordEndFor(m.Kind)
		if atWordEnd(st.Buffer, cur, big) {
			count = max(count, 1) - 1
			if count == 0 {
				return buffer.Range{Start: cur, End: cur}, true
			}
		}
	}

	inclusive := m.Kind.Inclusive()
	to, ok := motion.Resolve(st.motionContext(!inclusive), st.Cursor, m, count)
	if !ok {
		return buffer.Range{}, false
	}
	end := to.Pos
	if m.Kind.Linewise() {
		if m.Kind.IsVertical() && end.Line == cur.Line {
			// dj on the last line and dk on the first fail.
			return buffer.Range{}, false
		}
		return buffer.Lines(cur.Line, end.Line), true
	}

	start := cur
	if end.Before(start) {
		start, end = end, start
		if !inclusive {
			// The cursor cell itself is excluded from a backward motion.
			return exclusive(st.Buffer, start, end)
		}
	}
	if inclusive {
		if st.Buffer.LineLen(end.Line) == 0 {
			return emptyAt(start), true
		}
		return buffer.Range{Start: start, End: end}, true
	}

	if end.Line > start.Line && (m.Kind == motion.WordForward || m.Kind == motion.BigWordForward) {
		// A word motion that crossed lines stops at the end of the last
		// word's line.
		if end.Col <= grapheme.FirstNonBlank(st.Buffer.Line(end.Line)) {
			end = buffer.Position{Line: end.Line - 1, Col: st.Buffer.LineLen(end.Line - 1)}
		}
	}
	if end.Col == 0 && end.Line > start.Line {
		if start.Col <= grapheme.FirstNonBlank(st.Buffer.Line(start.Line)) {
			return buffer.Lines(start.Line, end.Line-1), true
		}
		end = buffer.Position{Line: end.Line - 1, Col: st.Buffer.LineLen(end.Line - 1)}
	}
	return exclusive(st.Buffer, start, end)
}

// exclusive converts an exclusive end into an inclusive range.
func exclusive(text buffer.Reader, start, end buffer.Position) (buffer.Range, bool) {
	if !start.Before(end) {
		return emptyAt(start), true
	}
	prev, _ := buffer.Prev(text, end)
	return buffer.Range{Start: start, End: prev}, true
}

// emptyAt is the empty range at p, where a change inserts.
func emptyAt(p buffer.Position) buffer.Range {
	return buffer.Range{Start: p, End: buffer.Position{Line: p.Line, Col: p.Col - 1}}
}

func changeWordAsEnd(text buffer.Reader, p buffer.Position, k motion.Kind) bool {
	if k != motion.WordForward && k != motion.BigWordForward {
		return false
	}
	return !buffer.IsBreak(text, p) && grapheme.ClassOf(buffer.CellAt(text, p)) != grapheme.Whitespace
}

func wordEndFor(k motion.Kind) motion.Kind {
	if k == motion.BigWordForward {
		return motion.BigWordEnd
	}
	return motion.WordEnd
}

// atWordEnd reports whether p is the last grapheme of its word.
func atWordEnd(text buffer.Reader, p buffer.Position, big bool) bool {
	class := grapheme.ClassOf
	if big {
		class = grapheme.BigClassOf
	}
	next := buffer.Position{Line: p.Line, Col: p.Col + 1}
	if buffer.IsBreak(text, next) {
		return true
	}
	return class(buffer.CellAt(text, next)) != class(buffer.CellAt(text, p))
}

// apply runs an operator over a resolved range and leaves the mode the
// operator ends in.
func (d *Dispatcher) apply(st *EditorState, t opTarget) Result {
	if t.op == vim.OpChange {
		return d.change(st, t)
	}
	d.finish(st)

	r := t.r
	switch t.op {
	case vim.OpDelete:
		if err := d.storeDelete(st, t.reg, r); err != nil {
			return Error(err)
		}
		st.group(func() { d.deleteRange(st, r) })
		if r.Linewise {
			st.moveTo(st.firstNonBlank(min(r.Start.Line, st.Buffer.LineCount()-1)))
		} else {
			st.moveTo(r.Start)
		}
	case vim.OpYank:
		reg := yankRegister(st, r)
		if err := st.Registers.Yank(t.reg, reg); err != nil {
			return Error(err)
		}
		if r.Linewise {
			if r.Start.Line != st.Cursor.Pos.Line {
				st.moveTo(buffer.Position{Line: r.Start.Line, Col: st.Cursor.Pos.Col})
			}
		} else {
			st.moveTo(r.Start)
		}
		if n := r.LineSpan(); n > 2 {
			return SuccessWithMessage(plural(n, "line") + " yanked")
		}
	case vim.OpIndent, vim.OpUnindent:
		st.group(func() {
			for line := r.Start.Line; line <= r.End.Line; line++ {
				d.shiftLine(st, line, t.levels, t.op == vim.OpIndent)
			}
		})
		st.moveTo(st.firstNonBlank(r.Start.Line))
	case vim.OpLowercase, vim.OpUppercase, vim.OpToggleCase:
		st.group(func() {
			for _, seg := range segments(st.Buffer, r) {
				old := st.Buffer.Slice(seg)
				if r.Linewise {
					old = strings.TrimSuffix(old, "\n")
				}
				if nw := convertCase(t.op, old); nw != old {
					st.replace(seg.Start, old, nw)
				}
			}
		})
		if r.Linewise {
			st.moveTo(buffer.Position{Line: r.Start.Line, Col: st.Cursor.Pos.Col})
		} else {
			st.moveTo(r.Start)
		}
	case vim.OpFormat:
		end := d.format(st, r.Start.Line, r.End.Line)
		st.moveTo(st.firstNonBlank(end))
	default:
		return Errorf("unsupported operator %s", t.op)
	}
	return Success()
}

// change deletes the range and starts an insert session in its place.
// Linewise changes keep one empty line.
func (d *Dispatcher) change(st *EditorState, t opTarget) Result {
	r := t.r
	if !d.transition(st, mode.Insert) {
		return Error(ErrInvalidTransition)
	}
	if r.IsEmpty() {
		d.beginSession(st, t.head...)
		st.moveTo(r.Start)
		return Success()
	}
	if err := d.storeDelete(st, t.reg, r); err != nil {
		d.transition(st, mode.Normal)
		return Error(err)
	}
	d.beginSession(st, t.head...)

	switch {
	case r.Linewise:
		old := joinLines(st.Buffer, r.Start.Line, r.End.Line)
		at := buffer.Position{Line: r.Start.Line}
		st.replace(at, old, "")
		st.moveTo(at)
	case r.Block:
		d.deleteRange(st, r)
		st.moveTo(r.Start)
	default:
		st.delete(r)
		st.moveTo(r.Start)
	}
	return Success()
}

// storeDelete writes deleted text to the registers.
func (d *Dispatcher) storeDelete(st *EditorState, name rune, r buffer.Range) error {
	reg := yankRegister(st, r)
	small := !r.Linewise && !r.Block && r.IsSingleLine()
	return st.Registers.Delete(name, reg, small)
}

func yankRegister(st *EditorState, r buffer.Range) register.Register {
	switch {
	case r.Linewise:
		return register.Register{Content: st.Buffer.Slice(r), Kind: register.Linewise}
	case r.Block:
		segs := segments(st.Buffer, r)
		lines := make([]string, 0, r.LineSpan())
		i := 0
		for line := r.Start.Line; line <= r.End.Line; line++ {
			if i < len(segs) && segs[i].Start.Line == line {
				lines = append(lines, st.Buffer.Slice(segs[i]))
				i++
				continue
			}
			lines = append(lines, "")
		}
		return register.Register{Content: strings.Join(lines, "\n"), Kind: register.Blockwise}
	}
	return register.Register{Content: st.Buffer.Slice(r), Kind: register.Charwise}
}

// deleteRange removes r, splitting block ranges per line.
func (d *Dispatcher) deleteRange(st *EditorState, r buffer.Range) {
	if !r.Block {
		st.delete(r)
		return
	}
	segs := segments(st.Buffer, r)
	for i := len(segs) - 1; i >= 0; i-- {
		st.delete(segs[i])
	}
}

// segments splits r into the charwise pieces an in-line transformation
// works on: one per line for blocks, the whole range otherwise.
func segments(text buffer.Reader, r buffer.Range) []buffer.Range {
	if !r.Block {
		return []buffer.Range{r}
	}
	var out []buffer.Range
	for line := r.Start.Line; line <= r.End.Line; line++ {
		n := text.LineLen(line)
		if r.Start.Col >= n {
			continue
		}
		out = append(out, buffer.Range{
			Start: buffer.Position{Line: line, Col: r.Start.Col},
			End:   buffer.Position{Line: line, Col: min(r.End.Col, n-1)},
		})
	}
	return out
}

func convertCase(op vim.Operator, s string) string {
	switch op {
	case vim.OpUppercase:
		return upper.String(s)
	case vim.OpLowercase:
		return lower.String(s)
	}
	return toggleCase(s)
}

func toggleCase(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case unicode.IsUpper(r):
			return unicode.ToLower(r)
		case unicode.IsLower(r):
			return unicode.ToUpper(r)
		}
		return r
	}, s)
}

// shiftLine changes the indent of line by levels shift widths. Empty lines
// are not indented.
func (d *Dispatcher) shiftLine(st *EditorState, line, levels int, right bool) {
	text := st.Buffer.Line(line)
	if right && text == "" {
		return
	}
	ts := st.Options.TabStop
	sw := st.Options.ShiftWidth
	if sw <= 0 {
		sw = ts
	}
	ws := grapheme.Leading(text)
	width := grapheme.Column(text, grapheme.Count(ws), ts)
	if right {
		width += sw * levels
	} else {
		width = max(0, width-sw*levels)
	}
	indent := indentString(width, ts, st.Options.ExpandTab)
	if indent != ws {
		st.replace(buffer.Position{Line: line}, ws, indent)
	}
}

func indentString(width, ts int, expand bool) string {
	if expand || ts <= 0 {
		return strings.Repeat(" ", width)
	}
	return strings.Repeat("\t", width/ts) + strings.Repeat(" ", width%ts)
}

// format rewraps lines from..to to the text width, paragraph by paragraph,
// and returns the last line of the result.
func (d *Dispatcher) format(st *EditorState, from, to int) int {
	width := st.Options.TextWidth
	if width <= 0 {
		width = DefaultOptions().TextWidth
	}
	ts := st.Options.TabStop

	var out, para []string
	flush := func() {
		if len(para) == 0 {
			return
		}
		out = append(out, wrap(para, width, ts)...)
		para = nil
	}
	for line := from; line <= to; line++ {
		text := st.Buffer.Line(line)
		if grapheme.IsBlank(text) {
			flush()
			out = append(out, text)
			continue
		}
		para = append(para, text)
	}
	flush()

	old := joinLines(st.Buffer, from, to)
	if nw := strings.Join(out, "\n"); nw != old {
		st.replace(buffer.Position{Line: from}, old, nw)
	}
	return from + len(out) - 1
}

// wrap fills the words of a paragraph into lines no wider than width,
// keeping the first line's indent on every line.
func wrap(lines []string, width, ts int) []string {
	indent := grapheme.Leading(lines[0])
	words := strings.Fields(strings.Join(lines, " "))
	var (
		out []string
		sb  strings.Builder
	)
	sb.WriteString(indent)
	empty := true
	for _, w := range words {
		if !empty {
			candidate := sb.String() + " " + w
			if grapheme.Column(candidate, grapheme.Count(candidate), ts) > width {
				out = append(out, sb.String())
				sb.Reset()
				sb.WriteString(indent)
				empty = true
			}
		}
		if !empty {
			sb.WriteByte(' ')
		}
		sb.WriteString(w)
		empty = false
	}
	return append(out, sb.String())
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return strconv.Itoa(n) + " " + word + "s"
}
