package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/dshills/vimcore/internal/engine/buffer"
)

func pos(line, col int) buffer.Position {
	return buffer.Position{Line: line, Col: col}
}

func TestEmptyHistory(t *testing.T) {
	h := NewHistory(0)

	if h.MaxEntries() != DefaultMaxEntries {
		t.Errorf("expected default max entries, got %d", h.MaxEntries())
	}
	if _, ok := h.Undo(); ok {
		t.Error("undo on empty history should fail")
	}
	if _, ok := h.Redo(); ok {
		t.Error("redo on empty history should fail")
	}
}

func TestUndoRedoRestoresText(t *testing.T) {
	buf := buffer.NewFromString("hello world")
	h := NewHistory(100)

	e := buf.Delete(buffer.NewRange(pos(0, 0), pos(0, 5)))
	h.Record(e, pos(0, 0), pos(0, 0))
	require.Equal(t, "world", buf.String())

	entry, ok := h.Undo()
	require.True(t, ok)
	cur := entry.Undo(buf)
	assert.Equal(t, "hello world", buf.String())
	assert.Equal(t, pos(0, 0), cur)
	assert.True(t, h.CanRedo())

	entry, ok = h.Redo()
	require.True(t, ok)
	entry.Redo(buf)
	assert.Equal(t, "world", buf.String())
	assert.Equal(t, 1, h.UndoCount())
	assert.Equal(t, 0, h.RedoCount())
}

func TestPushClearsRedo(t *testing.T) {
	buf := buffer.New()
	h := NewHistory(100)

	e1, _ := buf.Insert(pos(0, 0), "a")
	h.Record(e1, pos(0, 0), pos(0, 1))
	h.Undo()
	require.True(t, h.CanRedo())

	e2, _ := buf.Insert(pos(0, 0), "b")
	h.Record(e2, pos(0, 0), pos(0, 1))
	assert.False(t, h.CanRedo())
}

func TestNoOpEditsAreSkipped(t *testing.T) {
	h := NewHistory(100)
	h.Record(buffer.Edit{At: pos(0, 0)}, pos(0, 0), pos(0, 0))
	h.Push(NewEntry(nil, pos(0, 0), pos(0, 0)))

	assert.Equal(t, 0, h.UndoCount())
}

func TestGroup(t *testing.T) {
	buf := buffer.New()
	h := NewHistory(100)

	h.BeginGroup(pos(0, 0))
	h.BeginGroup(pos(5, 5))
	for i, s := range []string{"a", "b", "c"} {
		e, _ := buf.Insert(pos(0, i), s)
		h.Record(e, pos(0, i), pos(0, i+1))
	}
	assert.True(t, h.IsGrouping())
	assert.Equal(t, 3, h.GroupLen())
	h.EndGroup(pos(0, 3))

	require.Equal(t, 1, h.UndoCount())
	entry, _ := h.Undo()
	cur := entry.Undo(buf)
	assert.Equal(t, "", buf.String())
	assert.Equal(t, pos(0, 0), cur)
}

func TestEmptyGroupPushesNothing(t *testing.T) {
	h := NewHistory(100)
	h.BeginGroup(pos(0, 0))
	h.EndGroup(pos(0, 0))

	assert.Equal(t, 0, h.UndoCount())
	assert.False(t, h.IsGrouping())
}

func TestCancelGroup(t *testing.T) {
	h := NewHistory(100)
	h.BeginGroup(pos(0, 0))
	h.Record(buffer.Edit{New: "x"}, pos(0, 0), pos(0, 1))
	h.CancelGroup()

	assert.Equal(t, 0, h.UndoCount())
}

func TestMaxEntries(t *testing.T) {
	buf := buffer.New()
	h := NewHistory(3)
	for i := range 5 {
		e, _ := buf.Insert(pos(0, i), "x")
		h.Record(e, pos(0, i), pos(0, i+1))
	}
	assert.Equal(t, 3, h.UndoCount())

	h.SetMaxEntries(2)
	assert.Equal(t, 2, h.UndoCount())
}

func TestUndoRedoCycles(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		buf := buffer.NewFromString("alpha\nbeta\ngamma")
		h := NewHistory(100)
		states := []string{buf.String()}

		edits := rapid.IntRange(1, 20).Draw(t, "edits")
		for range edits {
			line := rapid.IntRange(0, buf.LineCount()-1).Draw(t, "line")
			col := rapid.IntRange(0, buf.LineLen(line)).Draw(t, "col")
			before := pos(line, col)
			var e buffer.Edit
			if rapid.Bool().Draw(t, "insert") {
				e, _ = buf.Insert(before, rapid.StringMatching(`[a-z\n]{1,4}`).Draw(t, "text"))
			} else {
				e = buf.Delete(buffer.NewRange(before, buffer.Clamp(buf, pos(line, col+2), true)))
			}
			if e.IsNoOp() {
				continue
			}
			h.Record(e, before, before)
			states = append(states, buf.String())
		}

		for range 100 {
			if entry, ok := h.Undo(); ok {
				cur := entry.Undo(buf)
				require.Less(t, cur.Line, buf.LineCount())
			}
			require.Equal(t, states[h.UndoCount()], buf.String())
			if rapid.Bool().Draw(t, "redo") {
				if entry, ok := h.Redo(); ok {
					entry.Redo(buf)
				}
				require.Equal(t, states[h.UndoCount()], buf.String())
			}
		}
	})
}
