package jumplist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/vimcore/internal/engine/buffer"
)

var bufA = buffer.NewID()

func at(line int) Entry {
	return Entry{Buffer: bufA, Pos: buffer.Position{Line: line}}
}

func TestJumpListBackSnapshotsLive(t *testing.T) {
	l := NewJumpList(0)
	l.Push(at(1))
	l.Push(at(5))

	got, ok := l.Back(at(9), 1)
	require.True(t, ok)
	assert.Equal(t, at(5), got)
	assert.Equal(t, 3, l.Len(), "live position stored")

	got, ok = l.Back(at(5), 1)
	require.True(t, ok)
	assert.Equal(t, at(1), got)

	_, ok = l.Back(at(1), 1)
	assert.False(t, ok)

	got, ok = l.Forward(2)
	require.True(t, ok)
	assert.Equal(t, at(9), got)

	_, ok = l.Forward(1)
	assert.False(t, ok)
}

func TestJumpListBackFromLastEntry(t *testing.T) {
	l := NewJumpList(0)
	l.Push(at(1))
	l.Push(at(5))

	got, ok := l.Back(at(5), 1)
	require.True(t, ok)
	assert.Equal(t, at(1), got)
	assert.Equal(t, 2, l.Len(), "live equal to newest is not duplicated")
}

func TestJumpListPushTruncatesForward(t *testing.T) {
	l := NewJumpList(0)
	for _, n := range []int{1, 2, 3} {
		l.Push(at(n))
	}
	l.Back(at(4), 2)
	l.Push(at(7))

	assert.Equal(t, []Entry{at(1), at(2), at(7)}, l.Entries())
	assert.Equal(t, 3, l.Index())
}

func TestPushDedupesConsecutive(t *testing.T) {
	l := NewChangeList(0)
	l.Push(at(1))
	l.Push(at(1))
	l.Push(at(2))
	l.Push(at(1))

	assert.Equal(t, 3, l.Len())
}

func TestBounded(t *testing.T) {
	l := NewJumpList(100)
	for i := range 150 {
		l.Push(at(i))
	}
	entries := l.Entries()
	require.Len(t, entries, 100)
	assert.Equal(t, at(50), entries[0])
	assert.Equal(t, at(149), entries[99])

	l.Resize(10)
	assert.Equal(t, 10, l.Len())
	assert.Equal(t, 10, l.Index())
}

func TestChangeListNavigation(t *testing.T) {
	l := NewChangeList(0)
	l.Push(at(1))
	l.Push(at(2))
	l.Push(at(3))

	got, ok := l.Back(at(0), 1)
	require.True(t, ok)
	assert.Equal(t, at(3), got)
	assert.Equal(t, 3, l.Len(), "change list does not store the live position")

	got, _ = l.Back(at(0), 5)
	assert.Equal(t, at(1), got)

	got, ok = l.Forward(1)
	require.True(t, ok)
	assert.Equal(t, at(2), got)
}

func TestRemove(t *testing.T) {
	other := buffer.NewID()
	l := NewJumpList(0)
	l.Push(at(1))
	l.Push(Entry{Buffer: other})
	l.Push(at(2))

	l.Remove(other)

	assert.Equal(t, []Entry{at(1), at(2)}, l.Entries())
	assert.Equal(t, 2, l.Index())
}

func TestEmptyList(t *testing.T) {
	l := NewJumpList(0)
	_, ok := l.Back(at(0), 1)
	assert.False(t, ok)
	_, ok = l.Forward(1)
	assert.False(t, ok)
}
