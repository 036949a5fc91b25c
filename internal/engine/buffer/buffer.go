package buffer

import (
	"iter"
	"strings"

	"github.com/dshills/vimcore/internal/engine/grapheme"
)

// Reader is the read side of the text-storage contract.
type Reader interface {
	// LineCount returns the number of lines. It is always at least 1.
	LineCount() int
	// Line returns the content of line n without its line break.
	Line(n int) string
	// LineLen returns the number of grapheme clusters on line n.
	LineLen(n int) int
	// Graphemes iterates the clusters of line n.
	Graphemes(n int) iter.Seq2[int, string]
}

// Text is the full text-storage contract used by the dispatcher.
type Text interface {
	Reader
	ID() ID
	Name() string
	// Insert inserts text at pos and returns the applied edit together with
	// the position just after the inserted text.
	Insert(pos Position, text string) (Edit, Position)
	// Delete removes the text covered by r and returns the applied edit.
	// Block ranges are not accepted; callers split them per line.
	Delete(r Range) Edit
	// Apply performs e and returns the position just after its new text.
	Apply(e Edit) Position
	// Slice returns the text covered by r. Linewise ranges end with a line
	// break.
	Slice(r Range) string
	// PosToCharIdx converts a position to a grapheme index into the whole
	// text, counting each line break as one.
	PosToCharIdx(p Position) int
	// CharIdxToPos is the inverse of PosToCharIdx.
	CharIdxToPos(idx int) Position
	Revision() RevisionID
	String() string
	Snapshot() *Snapshot
}

// Option is a functional option for configuring a Buffer.
type Option func(*Buffer)

// WithName sets the buffer's display name, usually its file path.
func WithName(name string) Option {
	return func(b *Buffer) {
		b.name = name
	}
}

// WithID sets the buffer's ID instead of generating one.
func WithID(id ID) Option {
	return func(b *Buffer) {
		b.id = id
	}
}

// Buffer is an in-memory Text holding one string per line.
type Buffer struct {
	id       ID
	name     string
	lines    []string
	revision RevisionID
}

var _ Text = (*Buffer)(nil)

// New creates an empty buffer with a single empty line.
func New(opts ...Option) *Buffer {
	b := &Buffer{
		id:       NewID(),
		lines:    []string{""},
		revision: NewRevisionID(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// NewFromString creates a buffer with initial content. CRLF and CR line
// endings are normalized to LF.
func NewFromString(s string, opts ...Option) *Buffer {
	b := New(opts...)
	b.lines = strings.Split(normalizeLineEndings(s), "\n")
	return b
}

func normalizeLineEndings(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// ID returns the buffer's ID.
func (b *Buffer) ID() ID {
	return b.id
}

// Name returns the buffer's display name.
func (b *Buffer) Name() string {
	return b.name
}

// SetName changes the display name.
func (b *Buffer) SetName(name string) {
	b.name = name
}

// Revision returns the current revision ID.
func (b *Buffer) Revision() RevisionID {
	return b.revision
}

// LineCount returns the number of lines.
func (b *Buffer) LineCount() int {
	return len(b.lines)
}

// Line returns line n, or "" when n is out of range.
func (b *Buffer) Line(n int) string {
	if n < 0 || n >= len(b.lines) {
		return ""
	}
	return b.lines[n]
}

// LineLen returns the grapheme count of line n.
func (b *Buffer) LineLen(n int) int {
	return grapheme.Count(b.Line(n))
}

// Graphemes iterates the clusters of line n.
func (b *Buffer) Graphemes(n int) iter.Seq2[int, string] {
	return grapheme.All(b.Line(n))
}

// String returns the full content joined with LF.
func (b *Buffer) String() string {
	return strings.Join(b.lines, "\n")
}

// IsEmpty returns true if the buffer holds a single empty line.
func (b *Buffer) IsEmpty() bool {
	return len(b.lines) == 1 && b.lines[0] == ""
}

// Insert inserts text at pos.
func (b *Buffer) Insert(pos Position, text string) (Edit, Position) {
	pos = Clamp(b, pos, true)
	e := Edit{At: pos, New: normalizeLineEndings(text)}
	return e, b.Apply(e)
}

// Delete removes the text covered by r.
func (b *Buffer) Delete(r Range) Edit {
	start, end, ok := b.span(r)
	if !ok {
		return Edit{At: Clamp(b, r.Start, true)}
	}
	e := Edit{At: start, Old: b.between(start, end)}
	b.replace(start, end, "")
	return e
}

// Apply performs e. The text at e.At is replaced for as long as e.Old
// spans, whether or not it matches.
func (b *Buffer) Apply(e Edit) Position {
	start := Clamp(b, e.At, true)
	end := b.clampExclusive(EndOf(start, e.Old))
	b.replace(start, end, e.New)
	return EndOf(start, e.New)
}

// Slice returns the text covered by r.
func (b *Buffer) Slice(r Range) string {
	if r.IsEmpty() {
		return ""
	}
	if r.Linewise {
		from := max(r.Start.Line, 0)
		to := min(r.End.Line, len(b.lines)-1)
		if from > to {
			return ""
		}
		return strings.Join(b.lines[from:to+1], "\n") + "\n"
	}
	start, end, ok := b.span(r)
	if !ok {
		return ""
	}
	return b.between(start, end)
}

// PosToCharIdx converts a position to a grapheme index into the whole text.
func (b *Buffer) PosToCharIdx(p Position) int {
	p = Clamp(b, p, true)
	idx := 0
	for i := 0; i < p.Line; i++ {
		idx += b.LineLen(i) + 1
	}
	return idx + p.Col
}

// CharIdxToPos converts a grapheme index into a position. Indexes past the
// end map to the end of the last line.
func (b *Buffer) CharIdxToPos(idx int) Position {
	if idx < 0 {
		idx = 0
	}
	for i := range b.lines {
		n := b.LineLen(i)
		if idx <= n {
			return Position{Line: i, Col: idx}
		}
		idx -= n + 1
	}
	last := len(b.lines) - 1
	return Position{Line: last, Col: b.LineLen(last)}
}

// Snapshot returns a read-only copy of the current content.
func (b *Buffer) Snapshot() *Snapshot {
	lines := make([]string, len(b.lines))
	copy(lines, b.lines)
	return &Snapshot{id: b.id, lines: lines, revision: b.revision}
}

// span converts a linewise or charwise range into an exclusive
// [start, end) pair of positions.
func (b *Buffer) span(r Range) (Position, Position, bool) {
	if r.IsEmpty() {
		return Position{}, Position{}, false
	}
	last := len(b.lines) - 1
	if r.Linewise {
		from := max(r.Start.Line, 0)
		to := min(r.End.Line, last)
		if from > to {
			return Position{}, Position{}, false
		}
		if to < last {
			return Position{Line: from}, Position{Line: to + 1}, true
		}
		if from > 0 {
			// Removing the tail of the buffer takes the preceding break.
			return Position{Line: from - 1, Col: b.LineLen(from - 1)},
				Position{Line: to, Col: b.LineLen(to)}, true
		}
		return Position{}, Position{Line: last, Col: b.LineLen(last)}, true
	}
	start := Clamp(b, r.Start, true)
	end := Clamp(b, r.End, true)
	if end.Col < b.LineLen(end.Line) {
		end.Col++
	} else if end.Line < last {
		end = Position{Line: end.Line + 1}
	}
	if !start.Before(end) {
		return Position{}, Position{}, false
	}
	return start, end, true
}

func (b *Buffer) clampExclusive(p Position) Position {
	last := len(b.lines) - 1
	if p.Line > last {
		return Position{Line: last, Col: b.LineLen(last)}
	}
	return Clamp(b, p, true)
}

// between returns the text in [start, end).
func (b *Buffer) between(start, end Position) string {
	if start.Line == end.Line {
		return grapheme.Slice(b.lines[start.Line], start.Col, end.Col)
	}
	var sb strings.Builder
	first := b.lines[start.Line]
	sb.WriteString(first[grapheme.ByteOffset(first, start.Col):])
	for i := start.Line + 1; i < end.Line; i++ {
		sb.WriteByte('\n')
		sb.WriteString(b.lines[i])
	}
	sb.WriteByte('\n')
	lastLine := b.lines[end.Line]
	sb.WriteString(lastLine[:grapheme.ByteOffset(lastLine, end.Col)])
	return sb.String()
}

// replace swaps [start, end) for text.
func (b *Buffer) replace(start, end Position, text string) {
	first := b.lines[start.Line]
	lastLine := b.lines[end.Line]
	prefix := first[:grapheme.ByteOffset(first, start.Col)]
	suffix := lastLine[grapheme.ByteOffset(lastLine, end.Col):]
	repl := strings.Split(prefix+text+suffix, "\n")

	lines := make([]string, 0, len(b.lines)-(end.Line-start.Line+1)+len(repl))
	lines = append(lines, b.lines[:start.Line]...)
	lines = append(lines, repl...)
	lines = append(lines, b.lines[end.Line+1:]...)
	b.lines = lines
	b.revision = NewRevisionID()
}
