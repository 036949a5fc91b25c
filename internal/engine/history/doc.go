// Package history provides linear undo/redo for the editing core.
//
// Each undo step is an Entry: the buffer edits it applied, their inverses,
// and the cursor before and after. Undo replays the inverse edits last to
// first and restores CursorBefore; Redo replays the forward edits and
// restores CursorAfter. Pushing a new entry clears the redo stack.
//
// # Grouping
//
// Several edits can form one undo step:
//
//	h.BeginGroup(cursor)
//	h.Record(edit1)
//	h.Record(edit2)
//	h.EndGroup(cursorAfter)
//
// An insert session (everything typed between entering Insert mode and
// Escape) is recorded this way, as is a dot-repeat.
package history
