package buffer

import "fmt"

// Range is a span between two positions. End is inclusive; a Range whose End
// comes before its Start is empty.
//
// Linewise ranges cover whole lines regardless of their columns. Block ranges
// cover the rectangle spanned by the two corners' display columns and are
// handled line by line by the caller.
type Range struct {
	Start    Position
	End      Position
	Linewise bool
	Block    bool
}

// NewRange creates a charwise range with its endpoints ordered.
func NewRange(a, b Position) Range {
	if b.Before(a) {
		a, b = b, a
	}
	return Range{Start: a, End: b}
}

// Lines creates a linewise range covering lines a through b.
func Lines(a, b int) Range {
	if b < a {
		a, b = b, a
	}
	return Range{
		Start:    Position{Line: a},
		End:      Position{Line: b},
		Linewise: true,
	}
}

// String returns a human-readable representation of the range.
func (r Range) String() string {
	kind := ""
	switch {
	case r.Block:
		kind = " block"
	case r.Linewise:
		kind = " lines"
	}
	return fmt.Sprintf("[%s..%s%s]", r.Start, r.End, kind)
}

// IsEmpty returns true if End comes before Start.
func (r Range) IsEmpty() bool {
	if r.Linewise {
		return r.End.Line < r.Start.Line
	}
	return r.End.Before(r.Start)
}

// Contains returns true if p lies inside the range.
func (r Range) Contains(p Position) bool {
	if r.Linewise {
		return p.Line >= r.Start.Line && p.Line <= r.End.Line
	}
	return p.Compare(r.Start) >= 0 && p.Compare(r.End) <= 0
}

// IsSingleLine returns true if the range spans only one line.
func (r Range) IsSingleLine() bool {
	return r.Start.Line == r.End.Line
}

// LineSpan returns the number of lines touched by the range.
func (r Range) LineSpan() int {
	if r.End.Line < r.Start.Line {
		return 0
	}
	return r.End.Line - r.Start.Line + 1
}
