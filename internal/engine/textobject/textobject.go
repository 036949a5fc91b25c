// Package textobject resolves structural selections (words, quotes,
// brackets, paragraphs) around a cursor into buffer ranges.
//
// A failed match returns false and must leave the caller's state untouched.
// Sentence resolves to the whole line and Tag never matches; callers treat
// both as unsupported rather than as errors.
package textobject

import (
	"github.com/dshills/vimcore/internal/engine/buffer"
	"github.com/dshills/vimcore/internal/engine/grapheme"
)

// Kind identifies a text object.
type Kind uint8

const (
	None Kind = iota
	Word
	BigWord
	DoubleQuote
	SingleQuote
	BackQuote
	Paren
	Bracket
	Brace
	Angle
	Paragraph
	Sentence
	Argument
	Tag

	kindCount
)

var kindNames = [...]string{
	None:        "none",
	Word:        "word",
	BigWord:     "bigWord",
	DoubleQuote: "doubleQuote",
	SingleQuote: "singleQuote",
	BackQuote:   "backQuote",
	Paren:       "paren",
	Bracket:     "bracket",
	Brace:       "brace",
	Angle:       "angle",
	Paragraph:   "paragraph",
	Sentence:    "sentence",
	Argument:    "argument",
	Tag:         "tag",
}

// String returns the text object name.
func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "unknown"
}

// Kinds returns every defined kind except None.
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount-1)
	for k := Word; k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}

// Scope selects between the contents of an object and the object with its
// delimiters or surrounding whitespace.
type Scope uint8

const (
	Inner Scope = iota
	Around
)

// String returns "inner" or "around".
func (s Scope) String() string {
	if s == Around {
		return "around"
	}
	return "inner"
}

// Object is a text object request.
type Object struct {
	Kind  Kind
	Scope Scope
}

// Resolve returns the range obj covers at cur.
func Resolve(text buffer.Reader, cur buffer.Position, obj Object) (buffer.Range, bool) {
	if text == nil || text.LineCount() == 0 {
		return buffer.Range{}, false
	}
	cur = buffer.Clamp(text, cur, false)
	around := obj.Scope == Around

	switch obj.Kind {
	case Word:
		return word(text, cur, around, grapheme.ClassOf)
	case BigWord:
		return word(text, cur, around, grapheme.BigClassOf)
	case DoubleQuote:
		return quote(text, cur, `"`, around)
	case SingleQuote:
		return quote(text, cur, `'`, around)
	case BackQuote:
		return quote(text, cur, "`", around)
	case Paren:
		return bracket(text, cur, "(", ")", around)
	case Bracket:
		return bracket(text, cur, "[", "]", around)
	case Brace:
		return bracket(text, cur, "{", "}", around)
	case Angle:
		return bracket(text, cur, "<", ">", around)
	case Argument:
		return argument(text, cur, around)
	case Paragraph:
		return paragraph(text, cur, around)
	case Sentence:
		n := text.LineLen(cur.Line)
		return buffer.Range{
			Start: buffer.Position{Line: cur.Line},
			End:   buffer.Position{Line: cur.Line, Col: n - 1},
		}, true
	case Tag:
		return buffer.Range{}, false
	}
	return buffer.Range{}, false
}

func word(text buffer.Reader, cur buffer.Position, around bool, class func(string) grapheme.Class) (buffer.Range, bool) {
	cells := grapheme.Split(text.Line(cur.Line))
	if len(cells) == 0 {
		return buffer.Range{}, false
	}
	classAt := func(i int) grapheme.Class { return class(cells[i]) }
	run := func(from int, cls grapheme.Class) (int, int) {
		s, e := from, from
		for s > 0 && classAt(s-1) == cls {
			s--
		}
		for e+1 < len(cells) && classAt(e+1) == cls {
			e++
		}
		return s, e
	}

	cls := classAt(cur.Col)
	start, end := run(cur.Col, cls)
	if around {
		if cls == grapheme.Whitespace {
			if end+1 < len(cells) {
				_, end = run(end+1, classAt(end+1))
			}
		} else if end+1 < len(cells) && classAt(end+1) == grapheme.Whitespace {
			_, end = run(end+1, grapheme.Whitespace)
		} else if start > 0 && classAt(start-1) == grapheme.Whitespace {
			start, _ = run(start-1, grapheme.Whitespace)
		}
	}
	return buffer.Range{
		Start: buffer.Position{Line: cur.Line, Col: start},
		End:   buffer.Position{Line: cur.Line, Col: end},
	}, true
}

func quote(text buffer.Reader, cur buffer.Position, q string, around bool) (buffer.Range, bool) {
	cells := grapheme.Split(text.Line(cur.Line))
	var marks []int
	for i, c := range cells {
		if c == q && (i == 0 || cells[i-1] != `\`) {
			marks = append(marks, i)
		}
	}
	for i := 0; i+1 < len(marks); i += 2 {
		open, close := marks[i], marks[i+1]
		if cur.Col < open || cur.Col > close {
			continue
		}
		if !around {
			open++
			close--
		}
		return buffer.Range{
			Start: buffer.Position{Line: cur.Line, Col: open},
			End:   buffer.Position{Line: cur.Line, Col: close},
		}, true
	}
	return buffer.Range{}, false
}

// enclosing finds the innermost open/close pair around cur, scanning across
// lines with depth tracking.
func enclosing(text buffer.Reader, cur buffer.Position, open, close string) (buffer.Position, buffer.Position, bool) {
	start := cur
	if buffer.CellAt(text, cur) != open {
		depth := 0
		found := false
		for p, ok := buffer.Prev(text, cur); ok; p, ok = buffer.Prev(text, p) {
			c := buffer.CellAt(text, p)
			if c == close {
				depth++
			} else if c == open {
				if depth == 0 {
					start, found = p, true
					break
				}
				depth--
			}
		}
		if !found {
			return cur, cur, false
		}
	}
	depth := 0
	for p, ok := buffer.Next(text, start); ok; p, ok = buffer.Next(text, p) {
		c := buffer.CellAt(text, p)
		if c == open {
			depth++
		} else if c == close {
			if depth == 0 {
				return start, p, true
			}
			depth--
		}
	}
	return cur, cur, false
}

func bracket(text buffer.Reader, cur buffer.Position, open, close string, around bool) (buffer.Range, bool) {
	start, end, ok := enclosing(text, cur, open, close)
	if !ok {
		return buffer.Range{}, false
	}
	return pairRange(text, start, end, around), true
}

func pairRange(text buffer.Reader, start, end buffer.Position, around bool) buffer.Range {
	if around {
		return buffer.Range{Start: start, End: end}
	}
	inStart, _ := buffer.Next(text, start)
	inEnd, _ := buffer.Prev(text, end)
	if buffer.IsBreak(text, inStart) && inStart.Line < end.Line {
		// An opening bracket at the end of a line leaves its break outside.
		inStart = buffer.Position{Line: inStart.Line + 1}
	}
	return buffer.Range{Start: inStart, End: inEnd}
}

// argument selects the nearest enclosing pair of (), [] or {}.
func argument(text buffer.Reader, cur buffer.Position, around bool) (buffer.Range, bool) {
	var (
		best     buffer.Range
		bestOpen buffer.Position
		found    bool
	)
	for _, pair := range [][2]string{{"(", ")"}, {"[", "]"}, {"{", "}"}} {
		start, end, ok := enclosing(text, cur, pair[0], pair[1])
		if !ok {
			continue
		}
		if !found || start.After(bestOpen) {
			best = pairRange(text, start, end, around)
			bestOpen = start
			found = true
		}
	}
	return best, found
}

func paragraph(text buffer.Reader, cur buffer.Position, around bool) (buffer.Range, bool) {
	last := text.LineCount() - 1
	blank := buffer.IsBlankLine(text, cur.Line)
	run := func(from int, blank bool) (int, int) {
		s, e := from, from
		for s > 0 && buffer.IsBlankLine(text, s-1) == blank {
			s--
		}
		for e < last && buffer.IsBlankLine(text, e+1) == blank {
			e++
		}
		return s, e
	}

	start, end := run(cur.Line, blank)
	if around {
		if end < last {
			_, end = run(end+1, !blank)
		} else if start > 0 {
			start, _ = run(start-1, !blank)
		}
	}
	return buffer.Lines(start, end), true
}
