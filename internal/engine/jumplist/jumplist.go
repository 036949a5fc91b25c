// Package jumplist keeps bounded position histories: the jump list walked by
// Ctrl-O and Ctrl-I, and the change list walked by g; and g,.
package jumplist

import "github.com/dshills/vimcore/internal/engine/buffer"

// DefaultSize is the number of entries kept when no size is configured.
const DefaultSize = 100

// Entry is a remembered position in a buffer.
type Entry struct {
	Buffer buffer.ID
	Pos    buffer.Position
}

// List is a bounded history with a navigation index. The index equals
// Len() while the user is at the live position.
type List struct {
	entries []Entry
	idx     int
	max     int
	jump    bool
}

// NewJumpList returns a list that truncates forward history on push and
// remembers the live position on the first Back.
func NewJumpList(size int) *List {
	return newList(size, true)
}

// NewChangeList returns a plain bounded FIFO.
func NewChangeList(size int) *List {
	return newList(size, false)
}

func newList(size int, jump bool) *List {
	if size <= 0 {
		size = DefaultSize
	}
	return &List{max: size, jump: jump}
}

// Push records e and resets navigation to the live position. An entry equal
// to the newest one is dropped.
func (l *List) Push(e Entry) {
	if l.jump && l.idx < len(l.entries) {
		l.entries = l.entries[:l.idx+1]
	}
	if n := len(l.entries); n == 0 || l.entries[n-1] != e {
		l.append(e)
	}
	l.idx = len(l.entries)
}

func (l *List) append(e Entry) {
	l.entries = append(l.entries, e)
	if len(l.entries) > l.max {
		l.entries = l.entries[len(l.entries)-l.max:]
	}
}

// Back moves count entries toward older positions. live is the cursor the
// jump starts from; a jump list stores it before leaving the live position
// so Forward can return to it.
func (l *List) Back(live Entry, count int) (Entry, bool) {
	count = max(count, 1)
	if len(l.entries) == 0 || l.idx == 0 {
		return Entry{}, false
	}
	if l.jump && l.idx >= len(l.entries) {
		if l.entries[len(l.entries)-1] != live {
			l.append(live)
		}
		l.idx = len(l.entries) - 1
	}
	target := max(l.idx-count, 0)
	if target == l.idx {
		return Entry{}, false
	}
	l.idx = target
	return l.entries[target], true
}

// Forward moves count entries toward newer positions.
func (l *List) Forward(count int) (Entry, bool) {
	count = max(count, 1)
	if l.idx >= len(l.entries)-1 {
		return Entry{}, false
	}
	l.idx = min(l.idx+count, len(l.entries)-1)
	return l.entries[l.idx], true
}

// Remove drops every entry for buffer id.
func (l *List) Remove(id buffer.ID) {
	kept := l.entries[:0]
	for i, e := range l.entries {
		if e.Buffer == id {
			if i < l.idx {
				l.idx--
			}
			continue
		}
		kept = append(kept, e)
	}
	l.entries = kept
	l.idx = min(l.idx, len(l.entries))
}

// Len returns the number of stored entries.
func (l *List) Len() int {
	return len(l.entries)
}

// Index returns the navigation index.
func (l *List) Index() int {
	return l.idx
}

// Entries returns a copy of the stored entries, oldest first.
func (l *List) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Resize changes the capacity, dropping the oldest entries if needed.
func (l *List) Resize(size int) {
	if size <= 0 {
		size = DefaultSize
	}
	l.max = size
	if len(l.entries) > size {
		drop := len(l.entries) - size
		l.entries = l.entries[drop:]
		l.idx = max(l.idx-drop, 0)
	}
}
