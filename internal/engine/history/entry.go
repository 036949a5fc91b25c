package history

import "github.com/dshills/vimcore/internal/engine/buffer"

// Entry is one undo step.
type Entry struct {
	Forward      []buffer.Edit
	Reverse      []buffer.Edit
	CursorBefore buffer.Position
	CursorAfter  buffer.Position
}

// NewEntry builds an entry from edits in the order they were applied.
// No-op edits are dropped.
func NewEntry(edits []buffer.Edit, before, after buffer.Position) Entry {
	fwd := make([]buffer.Edit, 0, len(edits))
	for _, e := range edits {
		if !e.IsNoOp() {
			fwd = append(fwd, e)
		}
	}
	rev := make([]buffer.Edit, len(fwd))
	for i, e := range fwd {
		rev[len(fwd)-1-i] = e.Invert()
	}
	return Entry{Forward: fwd, Reverse: rev, CursorBefore: before, CursorAfter: after}
}

// IsEmpty returns true if the entry changes nothing.
func (e Entry) IsEmpty() bool {
	return len(e.Forward) == 0
}

// Undo applies the reverse edits to t and returns the cursor to restore.
func (e Entry) Undo(t buffer.Text) buffer.Position {
	for _, ed := range e.Reverse {
		t.Apply(ed)
	}
	return e.CursorBefore
}

// Redo applies the forward edits to t and returns the cursor to restore.
func (e Entry) Redo(t buffer.Text) buffer.Position {
	for _, ed := range e.Forward {
		t.Apply(ed)
	}
	return e.CursorAfter
}
