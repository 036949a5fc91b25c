package buffer

import (
	"iter"
	"strings"

	"github.com/dshills/vimcore/internal/engine/grapheme"
)

// Snapshot provides a read-only view of a buffer at a specific point in time.
// It is safe for concurrent access and will not change even if the original
// buffer is modified.
type Snapshot struct {
	id       ID
	lines    []string
	revision RevisionID
}

var _ Reader = (*Snapshot)(nil)

// ID returns the ID of the buffer the snapshot was taken from.
func (s *Snapshot) ID() ID {
	return s.id
}

// Revision returns the revision the snapshot captured.
func (s *Snapshot) Revision() RevisionID {
	return s.revision
}

// LineCount returns the number of lines.
func (s *Snapshot) LineCount() int {
	return len(s.lines)
}

// Line returns line n, or "" when n is out of range.
func (s *Snapshot) Line(n int) string {
	if n < 0 || n >= len(s.lines) {
		return ""
	}
	return s.lines[n]
}

// LineLen returns the grapheme count of line n.
func (s *Snapshot) LineLen(n int) int {
	return grapheme.Count(s.Line(n))
}

// Graphemes iterates the clusters of line n.
func (s *Snapshot) Graphemes(n int) iter.Seq2[int, string] {
	return grapheme.All(s.Line(n))
}

// Window returns a copy of up to height lines starting at top.
func (s *Snapshot) Window(top, height int) []string {
	top = max(top, 0)
	end := min(top+max(height, 0), len(s.lines))
	if top >= end {
		return nil
	}
	out := make([]string, end-top)
	copy(out, s.lines[top:end])
	return out
}

// String returns the full content joined with LF.
func (s *Snapshot) String() string {
	return strings.Join(s.lines, "\n")
}
