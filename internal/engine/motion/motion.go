package motion

import (
	"github.com/dshills/vimcore/internal/engine/buffer"
	"github.com/dshills/vimcore/internal/engine/grapheme"
)

// Motion is a resolved motion request. Char carries the target of find and
// till motions. Repeat marks a till motion replayed by ";" or ",", which
// skips a match directly next to the cursor.
type Motion struct {
	Kind   Kind
	Char   rune
	Repeat bool
}

// Cursor is a position plus the display column vertical motions aim for.
type Cursor struct {
	Pos        buffer.Position
	WantCol    int
	HasWantCol bool
}

// At returns a cursor at p with no desired column.
func At(p buffer.Position) Cursor {
	return Cursor{Pos: p}
}

// Viewport is the visible window used by screen-relative motions.
type Viewport struct {
	Top    int
	Height int
}

// Context carries everything a motion reads besides the cursor.
type Context struct {
	Text buffer.Reader
	View Viewport
	// PastEnd lets the cursor rest one grapheme past the end of a line, as
	// in Insert mode and at the end of an operator range.
	PastEnd bool
	TabStop int
}

func (c Context) tabStop() int {
	if c.TabStop <= 0 {
		return 8
	}
	return c.TabStop
}

// Resolve applies m count times starting from cur. Count 0 behaves as 1.
// The result is always clamped into the text. The bool is false only when a
// motion with a target (find-char, bracket match) found nothing, in which
// case cur is returned unchanged.
func Resolve(ctx Context, cur Cursor, m Motion, count int) (Cursor, bool) {
	if count < 1 {
		count = 1
	}
	if ctx.Text == nil || ctx.Text.LineCount() == 0 {
		return Cursor{}, true
	}
	cur.Pos = buffer.Clamp(ctx.Text, cur.Pos, true)

	var (
		pos buffer.Position
		ok  = true
	)
	switch m.Kind {
	case Up, Down:
		return vertical(ctx, cur, m.Kind, count), true

	case FindCharForward, FindCharBackward, TillCharForward, TillCharBackward:
		pos, ok = findChar(ctx.Text, cur.Pos, m, count)
	case MatchBracket:
		pos, ok = matchBracket(ctx.Text, cur.Pos)

	case LineStart:
		pos = buffer.Position{Line: cur.Pos.Line}
	case LineEnd:
		line := min(cur.Pos.Line+count-1, ctx.Text.LineCount()-1)
		pos = buffer.Position{Line: line, Col: lastCol(ctx, line)}
	case FirstNonBlank:
		pos = firstNonBlank(ctx.Text, cur.Pos.Line)
	case LastNonBlank:
		line := min(cur.Pos.Line+count-1, ctx.Text.LineCount()-1)
		pos = buffer.Position{Line: line, Col: grapheme.LastNonBlank(ctx.Text.Line(line))}
	case Column:
		line := ctx.Text.Line(cur.Pos.Line)
		pos = buffer.Position{Line: cur.Pos.Line, Col: grapheme.AtColumn(line, count-1, ctx.tabStop())}
	case NextLineStart:
		pos = firstNonBlank(ctx.Text, cur.Pos.Line+count)
	case PrevLineStart:
		pos = firstNonBlank(ctx.Text, cur.Pos.Line-count)

	case GotoLine:
		pos = firstNonBlank(ctx.Text, count-1)
	case GotoFirstLine:
		pos = firstNonBlank(ctx.Text, 0)
	case GotoLastLine:
		pos = firstNonBlank(ctx.Text, ctx.Text.LineCount()-1)
	case GotoPercent:
		n := ctx.Text.LineCount()
		pos = firstNonBlank(ctx.Text, (min(count, 100)*n+99)/100-1)

	case ScreenTop, ScreenMiddle, ScreenBottom:
		pos = firstNonBlank(ctx.Text, screenLine(ctx, m.Kind, count))

	default:
		step := stepper(m.Kind)
		if step == nil {
			return cur, true
		}
		pos = cur.Pos
		for range count {
			next := step(ctx, pos)
			if next == pos {
				break
			}
			pos = next
		}
	}
	if !ok {
		return cur, false
	}
	return Cursor{Pos: buffer.Clamp(ctx.Text, pos, ctx.PastEnd)}, true
}

type stepFunc func(Context, buffer.Position) buffer.Position

func stepper(k Kind) stepFunc {
	switch k {
	case Left:
		return func(_ Context, p buffer.Position) buffer.Position {
			if p.Col > 0 {
				p.Col--
			}
			return p
		}
	case Right:
		return func(ctx Context, p buffer.Position) buffer.Position {
			if p.Col < lastCol(ctx, p.Line) {
				p.Col++
			}
			return p
		}
	case WordForward:
		return func(ctx Context, p buffer.Position) buffer.Position {
			return wordForward(ctx, p, grapheme.ClassOf)
		}
	case BigWordForward:
		return func(ctx Context, p buffer.Position) buffer.Position {
			return wordForward(ctx, p, grapheme.BigClassOf)
		}
	case WordBackward:
		return func(ctx Context, p buffer.Position) buffer.Position {
			return wordBackward(ctx.Text, p, grapheme.ClassOf)
		}
	case BigWordBackward:
		return func(ctx Context, p buffer.Position) buffer.Position {
			return wordBackward(ctx.Text, p, grapheme.BigClassOf)
		}
	case WordEnd:
		return func(ctx Context, p buffer.Position) buffer.Position {
			return wordEnd(ctx.Text, p, grapheme.ClassOf)
		}
	case BigWordEnd:
		return func(ctx Context, p buffer.Position) buffer.Position {
			return wordEnd(ctx.Text, p, grapheme.BigClassOf)
		}
	case WordEndBackward:
		return func(ctx Context, p buffer.Position) buffer.Position {
			return wordEndBackward(ctx.Text, p, grapheme.ClassOf)
		}
	case BigWordEndBackward:
		return func(ctx Context, p buffer.Position) buffer.Position {
			return wordEndBackward(ctx.Text, p, grapheme.BigClassOf)
		}
	case ParagraphForward:
		return func(ctx Context, p buffer.Position) buffer.Position {
			return paragraphForward(ctx.Text, p)
		}
	case ParagraphBackward:
		return func(ctx Context, p buffer.Position) buffer.Position {
			return paragraphBackward(ctx.Text, p)
		}
	}
	return nil
}

// lastCol is the rightmost column the cursor may occupy on line.
func lastCol(ctx Context, line int) int {
	n := ctx.Text.LineLen(line)
	if ctx.PastEnd || n == 0 {
		return n
	}
	return n - 1
}

func firstNonBlank(text buffer.Reader, line int) buffer.Position {
	line = max(0, min(line, text.LineCount()-1))
	return buffer.Position{Line: line, Col: grapheme.FirstNonBlank(text.Line(line))}
}

func vertical(ctx Context, cur Cursor, k Kind, count int) Cursor {
	want := cur.WantCol
	if !cur.HasWantCol {
		want = grapheme.Column(ctx.Text.Line(cur.Pos.Line), cur.Pos.Col, ctx.tabStop())
	}
	line := cur.Pos.Line
	if k == Up {
		line = max(0, line-count)
	} else {
		line = min(ctx.Text.LineCount()-1, line+count)
	}
	col := grapheme.AtColumn(ctx.Text.Line(line), want, ctx.tabStop())
	pos := buffer.Clamp(ctx.Text, buffer.Position{Line: line, Col: col}, ctx.PastEnd)
	return Cursor{Pos: pos, WantCol: want, HasWantCol: true}
}

func screenLine(ctx Context, k Kind, count int) int {
	n := ctx.Text.LineCount()
	top := max(0, min(ctx.View.Top, n-1))
	height := ctx.View.Height
	if height <= 0 {
		height = n
	}
	bottom := min(top+height, n) - 1
	switch k {
	case ScreenTop:
		return min(top+count-1, bottom)
	case ScreenBottom:
		return max(bottom-(count-1), top)
	default:
		return top + (bottom-top)/2
	}
}

func paragraphForward(text buffer.Reader, p buffer.Position) buffer.Position {
	last := text.LineCount() - 1
	line := p.Line
	for line < last && !buffer.IsBlankLine(text, line) {
		line++
	}
	for line < last && buffer.IsBlankLine(text, line) {
		line++
	}
	return buffer.Position{Line: line}
}

func paragraphBackward(text buffer.Reader, p buffer.Position) buffer.Position {
	line := p.Line
	for line > 0 && !buffer.IsBlankLine(text, line) {
		line--
	}
	for line > 0 && buffer.IsBlankLine(text, line) {
		line--
	}
	return buffer.Position{Line: line}
}
