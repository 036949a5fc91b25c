package history

import "github.com/dshills/vimcore/internal/engine/buffer"

// DefaultMaxEntries bounds the undo list when no limit is configured.
const DefaultMaxEntries = 1000

// History is a linear undo list. entries[:pos] can be undone, newest
// last; entries[pos:] are undone changes that can be redone, oldest
// undone last.
type History struct {
	entries []Entry
	pos     int
	limit   int

	// Open group, see BeginGroup.
	grouping    bool
	groupBefore buffer.Position
	groupEdits  []buffer.Edit
}

// NewHistory creates a history keeping at most maxEntries undo steps; a
// non-positive limit means DefaultMaxEntries.
func NewHistory(maxEntries int) *History {
	h := &History{}
	h.SetMaxEntries(maxEntries)
	return h
}

// Push records e as the newest undo step and forgets everything undone
// after it. Empty entries are dropped. While a group is open e joins the
// group instead.
func (h *History) Push(e Entry) {
	if e.IsEmpty() {
		return
	}
	if h.grouping {
		h.groupEdits = append(h.groupEdits, e.Forward...)
		return
	}
	h.entries = append(h.entries[:h.pos], e)
	h.pos++
	h.trim()
}

// Undo steps back one entry, returning it for the caller to apply.
func (h *History) Undo() (Entry, bool) {
	if h.pos == 0 {
		return Entry{}, false
	}
	h.pos--
	return h.entries[h.pos], true
}

// Redo steps forward over the most recently undone entry.
func (h *History) Redo() (Entry, bool) {
	if h.pos == len(h.entries) {
		return Entry{}, false
	}
	h.pos++
	return h.entries[h.pos-1], true
}

func (h *History) CanUndo() bool { return h.pos > 0 }
func (h *History) CanRedo() bool { return h.pos < len(h.entries) }
func (h *History) UndoCount() int { return h.pos }
func (h *History) RedoCount() int { return len(h.entries) - h.pos }

// Clear forgets every entry and any open group.
func (h *History) Clear() {
	h.entries = nil
	h.pos = 0
	h.CancelGroup()
}

// SetMaxEntries changes the limit ("undolevels"), dropping the oldest
// steps beyond it.
func (h *History) SetMaxEntries(n int) {
	if n <= 0 {
		n = DefaultMaxEntries
	}
	h.limit = n
	h.trim()
}

func (h *History) MaxEntries() int { return h.limit }

func (h *History) trim() {
	if excess := h.pos - h.limit; excess > 0 {
		h.entries = h.entries[excess:]
		h.pos -= excess
	}
}
