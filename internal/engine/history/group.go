package history

import "github.com/dshills/vimcore/internal/engine/buffer"

// BeginGroup starts collecting edits into a single undo step. before is the
// cursor the step restores on undo. Nested calls are ignored.
func (h *History) BeginGroup(before buffer.Position) {
	if h.grouping {
		return
	}
	h.grouping = true
	h.groupBefore = before
	h.groupEdits = nil
}

// Record adds an applied edit to the open group, or pushes it as its own
// entry when no group is open.
func (h *History) Record(e buffer.Edit, before, after buffer.Position) {
	if e.IsNoOp() {
		return
	}
	if h.grouping {
		h.groupEdits = append(h.groupEdits, e)
		return
	}
	h.Push(NewEntry([]buffer.Edit{e}, before, after))
}

// EndGroup closes the group and pushes its edits as one entry. A group with
// no edits pushes nothing.
func (h *History) EndGroup(after buffer.Position) {
	if !h.grouping {
		return
	}
	h.grouping = false
	edits := h.groupEdits
	h.groupEdits = nil
	h.Push(NewEntry(edits, h.groupBefore, after))
}

// CancelGroup discards the open group without adding to history.
// Edits already applied still affect the buffer.
func (h *History) CancelGroup() {
	h.grouping = false
	h.groupEdits = nil
}

// IsGrouping returns true if a group is open.
func (h *History) IsGrouping() bool {
	return h.grouping
}

// GroupLen returns the number of edits in the open group.
func (h *History) GroupLen() int {
	return len(h.groupEdits)
}
