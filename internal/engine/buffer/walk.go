package buffer

import "github.com/dshills/vimcore/internal/engine/grapheme"

// Walking treats the text as a stream of cells: every grapheme of a line
// followed by one line-break cell at Col == LineLen. Empty lines consist of
// their break cell only.

// Next returns the cell after p, or false at the end of the text.
func Next(r Reader, p Position) (Position, bool) {
	if p.Col < r.LineLen(p.Line) {
		return Position{Line: p.Line, Col: p.Col + 1}, true
	}
	if p.Line+1 < r.LineCount() {
		return Position{Line: p.Line + 1}, true
	}
	return p, false
}

// Prev returns the cell before p, or false at the start of the text.
func Prev(r Reader, p Position) (Position, bool) {
	if p.Col > 0 {
		return Position{Line: p.Line, Col: p.Col - 1}, true
	}
	if p.Line > 0 {
		return Position{Line: p.Line - 1, Col: r.LineLen(p.Line - 1)}, true
	}
	return p, false
}

// IsBreak reports whether p is a line-break cell.
func IsBreak(r Reader, p Position) bool {
	return p.Col >= r.LineLen(p.Line)
}

// IsEmptyLine reports whether line n has no graphemes.
func IsEmptyLine(r Reader, n int) bool {
	return r.Line(n) == ""
}

// IsBlankLine reports whether line n has only whitespace.
func IsBlankLine(r Reader, n int) bool {
	return grapheme.IsBlank(r.Line(n))
}

// CellAt returns the cluster at p, or "\n" for a line-break cell.
func CellAt(r Reader, p Position) string {
	if IsBreak(r, p) {
		return "\n"
	}
	return grapheme.At(r.Line(p.Line), p.Col)
}
