package dispatcher

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/dshills/vimcore/internal/engine/buffer"
	"github.com/dshills/vimcore/internal/engine/grapheme"
	"github.com/dshills/vimcore/internal/input/intent"
	"github.com/dshills/vimcore/internal/input/register"
)

// replaceChar replaces Count graphemes with Char (r). A line break
// replaces them with a single break. In Visual mode every selected
// grapheme is replaced.
func (d *Dispatcher) replaceChar(st *EditorState, it intent.Intent) Result {
	if it.Char == 0 {
		return NoOp()
	}
	c := string(it.Char)
	if sel, ok := st.Selection(); ok {
		r := sel.Range()
		d.finish(st)
		st.group(func() {
			// Bottom up: replacing with a line break shifts the lines below.
			for line := r.End.Line; line >= r.Start.Line; line-- {
				from, to := 0, st.Buffer.LineLen(line)-1
				switch {
				case r.Block:
					from, to = r.Start.Col, min(r.End.Col, to)
				case r.Linewise:
				default:
					if line == r.Start.Line {
						from = r.Start.Col
					}
					if line == r.End.Line {
						to = min(r.End.Col, to)
					}
				}
				if from > to {
					continue
				}
				at := buffer.Position{Line: line, Col: from}
				old := grapheme.Slice(st.Buffer.Line(line), from, to+1)
				if c == "\n" {
					st.replace(at, old, "\n")
					continue
				}
				st.replace(at, old, strings.Repeat(c, to-from+1))
			}
		})
		st.moveTo(r.Start)
		return Success()
	}

	p := st.Cursor.Pos
	n := it.N()
	if p.Col+n > st.Buffer.LineLen(p.Line) {
		return NoOp()
	}
	old := grapheme.Slice(st.Buffer.Line(p.Line), p.Col, p.Col+n)
	if c == "\n" {
		st.replace(p, old, "\n")
		st.moveTo(buffer.Position{Line: p.Line + 1})
		return Success()
	}
	st.replace(p, old, strings.Repeat(c, n))
	st.moveTo(buffer.Position{Line: p.Line, Col: p.Col + n - 1})
	return Success()
}

// join joins Count lines (at least two) starting at the cursor line. Join
// removes the next line's indent and separates the parts with one space;
// JoinRaw concatenates them unchanged.
func (d *Dispatcher) join(st *EditorState, it intent.Intent) Result {
	from := st.Cursor.Pos.Line
	n := max(it.N(), 2)
	if sel, ok := st.Selection(); ok {
		r := sel.Range()
		from, n = r.Start.Line, max(r.LineSpan(), 2)
		d.finish(st)
	}
	last := st.Buffer.LineCount() - 1
	if from >= last {
		return NoOp()
	}
	to := min(from+n-1, last)

	joined := st.Buffer.Line(from)
	col := 0
	for line := from + 1; line <= to; line++ {
		next := st.Buffer.Line(line)
		if it.Kind == intent.JoinRaw {
			col = grapheme.Count(joined)
			joined += next
			continue
		}
		next = strings.TrimLeft(next, " \t")
		col = grapheme.Count(joined)
		switch {
		case next == "":
		case joined == "", strings.HasSuffix(joined, " "), strings.HasSuffix(joined, "\t"):
		case strings.HasPrefix(next, ")"):
		default:
			joined += " "
		}
		joined += next
	}
	st.replace(buffer.Position{Line: from}, joinLines(st.Buffer, from, to), joined)
	st.moveTo(buffer.Position{Line: from, Col: col})
	return Success()
}

// toggleCaseChar switches the case of Count graphemes and moves past them
// (~).
func (d *Dispatcher) toggleCaseChar(st *EditorState, it intent.Intent) Result {
	p := st.Cursor.Pos
	n := st.Buffer.LineLen(p.Line)
	if n == 0 {
		return NoOp()
	}
	end := min(p.Col+it.N(), n)
	old := grapheme.Slice(st.Buffer.Line(p.Line), p.Col, end)
	if nw := toggleCase(old); nw != old {
		st.replace(p, old, nw)
	}
	st.moveTo(buffer.Position{Line: p.Line, Col: end})
	return Success()
}

var numberPattern = regexp.MustCompile(`0[xX][0-9a-fA-F]+|-?[0-9]+`)

// increment adds delta to the number at or after the cursor (Ctrl-A,
// Ctrl-X). Decimal and 0x-prefixed hexadecimal numbers are recognized.
func (d *Dispatcher) increment(st *EditorState, delta int) Result {
	p := st.Cursor.Pos
	line := st.Buffer.Line(p.Line)
	cursor := grapheme.ByteOffset(line, p.Col)

	for _, m := range numberPattern.FindAllStringIndex(line, -1) {
		if m[1] <= cursor {
			continue
		}
		old := line[m[0]:m[1]]
		nw, ok := addToNumber(old, delta)
		if !ok {
			return NoOp()
		}
		at := buffer.Position{Line: p.Line, Col: grapheme.Index(line, m[0])}
		st.replace(at, old, nw)
		st.moveTo(buffer.Position{Line: p.Line, Col: at.Col + grapheme.Count(nw) - 1})
		return Success()
	}
	return NoOp()
}

func addToNumber(s string, delta int) (string, bool) {
	if len(s) > 2 && (s[1] == 'x' || s[1] == 'X') {
		digits := s[2:]
		v, err := strconv.ParseUint(digits, 16, 64)
		if err != nil {
			return "", false
		}
		v += uint64(delta)
		out := fmt.Sprintf("%0*x", len(digits), v)
		if strings.ToLower(digits) != digits {
			out = strings.ToUpper(out)
		}
		return s[:2] + out, true
	}

	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return "", false
	}
	switch {
	case delta > 0 && v > math.MaxInt64-int64(delta):
		v = math.MaxInt64
	case delta < 0 && v < math.MinInt64-int64(delta):
		v = math.MinInt64
	default:
		v += int64(delta)
	}
	digits := strings.TrimPrefix(s, "-")
	if len(digits) > 1 && digits[0] == '0' {
		// Leading zeros keep the width.
		if v < 0 {
			return fmt.Sprintf("-%0*d", len(digits), -v), true
		}
		return fmt.Sprintf("%0*d", len(digits), v), true
	}
	return strconv.FormatInt(v, 10), true
}

// put pastes a register Count times (p, P). In Visual mode the selection
// is replaced and its text goes to the unnamed register.
func (d *Dispatcher) put(st *EditorState, it intent.Intent) Result {
	name := it.Register
	if name == 0 {
		name = register.Unnamed
	}
	reg, err := d.readRegister(st, name)
	if err != nil {
		return Error(err)
	}
	if reg.IsEmpty() {
		return Errorf("E353: Nothing in register %c", name)
	}
	n := it.N()

	if sel, ok := st.Selection(); ok {
		r := sel.Range()
		deleted := yankRegister(st, r)
		d.finish(st)
		st.group(func() {
			d.deleteRange(st, r)
			if r.Linewise {
				d.putLines(st, reg, n, min(r.Start.Line, st.Buffer.LineCount()), r.Start.Line > st.Buffer.LineCount()-1)
				return
			}
			st.moveTo(r.Start)
			if reg.Kind == register.Linewise {
				text := strings.TrimSuffix(strings.Repeat(reg.Content, n), "\n")
				st.insert(r.Start, "\n"+text+"\n")
				st.moveTo(st.firstNonBlank(r.Start.Line + 1))
				return
			}
			d.putChars(st, reg, n, r.Start)
		})
		if err := st.Registers.Delete(0, deleted, false); err != nil {
			return Error(err)
		}
		return Success()
	}

	p := st.Cursor.Pos
	st.group(func() {
		switch reg.Kind {
		case register.Linewise:
			if it.Before {
				d.putLines(st, reg, n, p.Line, false)
			} else {
				d.putLines(st, reg, n, p.Line+1, p.Line == st.Buffer.LineCount()-1)
			}
		case register.Blockwise:
			col := p.Col
			if !it.Before && st.Buffer.LineLen(p.Line) > 0 {
				col++
			}
			d.putBlock(st, reg, n, buffer.Position{Line: p.Line, Col: col})
		default:
			at := p
			if !it.Before && st.Buffer.LineLen(p.Line) > 0 {
				at.Col++
			}
			d.putChars(st, reg, n, at)
		}
	})
	return Success()
}

// putLines inserts linewise content above line. atEnd appends below the
// last line instead.
func (d *Dispatcher) putLines(st *EditorState, reg register.Register, n, line int, atEnd bool) {
	text := strings.Repeat(reg.Content, n)
	if reg.Kind != register.Linewise {
		text = strings.Repeat(reg.Content+"\n", n)
	}
	if atEnd {
		last := st.Buffer.LineCount() - 1
		st.insert(buffer.Position{Line: last, Col: st.Buffer.LineLen(last)}, "\n"+strings.TrimSuffix(text, "\n"))
		st.moveTo(st.firstNonBlank(last + 1))
		return
	}
	st.insert(buffer.Position{Line: line}, text)
	st.moveTo(st.firstNonBlank(line))
}

// putChars inserts charwise content at p, leaving the cursor on the last
// pasted grapheme, or at the start for multi-line text.
func (d *Dispatcher) putChars(st *EditorState, reg register.Register, n int, p buffer.Position) {
	text := strings.Repeat(reg.Content, n)
	end := st.insert(p, text)
	if strings.Contains(text, "\n") {
		st.moveTo(p)
		return
	}
	st.moveTo(buffer.Position{Line: end.Line, Col: max(end.Col-1, 0)})
}

// putBlock inserts each line of a block at the same column on successive
// lines, padding short lines and adding lines past the end.
func (d *Dispatcher) putBlock(st *EditorState, reg register.Register, n int, p buffer.Position) {
	ts := st.Options.TabStop
	col := grapheme.Column(st.Buffer.Line(p.Line), p.Col, ts)
	for i, piece := range reg.Lines() {
		line := p.Line + i
		if line >= st.Buffer.LineCount() {
			last := st.Buffer.LineCount() - 1
			st.insert(buffer.Position{Line: last, Col: st.Buffer.LineLen(last)}, "\n")
		}
		text := st.Buffer.Line(line)
		width := grapheme.Column(text, grapheme.Count(text), ts)
		at := buffer.Position{Line: line, Col: grapheme.AtColumn(text, col, ts)}
		pad := ""
		if width < col {
			pad = strings.Repeat(" ", col-width)
		}
		st.insert(at, pad+strings.Repeat(piece, n))
	}
	st.moveTo(p)
}

func (d *Dispatcher) undo(st *EditorState, n int) Result {
	for i := range n {
		e, ok := st.History.Undo()
		if !ok {
			if i == 0 {
				return NoOpWithMessage("Already at oldest change")
			}
			break
		}
		st.moveTo(e.Undo(st.Buffer))
		st.modified = true
	}
	return Success()
}

func (d *Dispatcher) redo(st *EditorState, n int) Result {
	for i := range n {
		e, ok := st.History.Redo()
		if !ok {
			if i == 0 {
				return NoOpWithMessage("Already at newest change")
			}
			break
		}
		st.moveTo(e.Redo(st.Buffer))
		st.modified = true
	}
	return Success()
}
