package buffer

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// ID identifies a buffer across jump lists, marks and snapshots.
type ID = uuid.UUID

// NewID returns a fresh random buffer ID.
func NewID() ID {
	return uuid.New()
}

// Position is a line and grapheme-cluster column. Both are 0-indexed.
type Position struct {
	Line int
	Col  int
}

// String returns a human-readable representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("(%d:%d)", p.Line, p.Col)
}

// Compare returns -1 if p < other, 0 if p == other, 1 if p > other.
func (p Position) Compare(other Position) int {
	if p.Line < other.Line {
		return -1
	}
	if p.Line > other.Line {
		return 1
	}
	if p.Col < other.Col {
		return -1
	}
	if p.Col > other.Col {
		return 1
	}
	return 0
}

// Before returns true if p comes before other.
func (p Position) Before(other Position) bool {
	return p.Compare(other) < 0
}

// After returns true if p comes after other.
func (p Position) After(other Position) bool {
	return p.Compare(other) > 0
}

// MinPos returns the earlier of two positions.
func MinPos(a, b Position) Position {
	if b.Before(a) {
		return b
	}
	return a
}

// MaxPos returns the later of two positions.
func MaxPos(a, b Position) Position {
	if b.After(a) {
		return b
	}
	return a
}

// Clamp limits p to the text's bounds. When pastEnd is false the column is
// additionally kept on the last grapheme of the line.
func Clamp(r Reader, p Position, pastEnd bool) Position {
	n := r.LineCount()
	if n <= 0 {
		return Position{}
	}
	if p.Line < 0 {
		p.Line = 0
	}
	if p.Line >= n {
		p.Line = n - 1
	}
	limit := r.LineLen(p.Line)
	if !pastEnd && limit > 0 {
		limit--
	}
	if p.Col > limit {
		p.Col = limit
	}
	if p.Col < 0 {
		p.Col = 0
	}
	return p
}

// RevisionID identifies a buffer revision. Each applied edit creates a new
// revision.
type RevisionID uint64

var revisionCounter uint64

// NewRevisionID generates a new unique revision ID.
func NewRevisionID() RevisionID {
	return RevisionID(atomic.AddUint64(&revisionCounter, 1))
}
