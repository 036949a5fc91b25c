package buffer

import (
	"fmt"
	"strings"

	"github.com/dshills/vimcore/internal/engine/grapheme"
)

// Edit replaces Old with New at At. Applying an edit and then its inverse
// leaves the text unchanged.
type Edit struct {
	At  Position
	Old string
	New string
}

// String returns a human-readable representation of the edit.
func (e Edit) String() string {
	switch {
	case e.Old == "":
		return fmt.Sprintf("Insert%s %q", e.At, e.New)
	case e.New == "":
		return fmt.Sprintf("Delete%s %q", e.At, e.Old)
	default:
		return fmt.Sprintf("Replace%s %q with %q", e.At, e.Old, e.New)
	}
}

// Invert returns the edit that undoes e.
func (e Edit) Invert() Edit {
	return Edit{At: e.At, Old: e.New, New: e.Old}
}

// IsNoOp returns true if this edit does nothing.
func (e Edit) IsNoOp() bool {
	return e.Old == e.New
}

// OldEnd returns the exclusive end of the text e replaces.
func (e Edit) OldEnd() Position {
	return EndOf(e.At, e.Old)
}

// NewEnd returns the exclusive end of the text e inserts.
func (e Edit) NewEnd() Position {
	return EndOf(e.At, e.New)
}

// EndOf returns the position just after text when it starts at p.
func EndOf(p Position, text string) Position {
	nl := strings.Count(text, "\n")
	if nl == 0 {
		return Position{Line: p.Line, Col: p.Col + grapheme.Count(text)}
	}
	last := text[strings.LastIndexByte(text, '\n')+1:]
	return Position{Line: p.Line + nl, Col: grapheme.Count(last)}
}
