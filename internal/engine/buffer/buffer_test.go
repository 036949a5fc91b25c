package buffer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestNew(t *testing.T) {
	b := New()

	if !b.IsEmpty() {
		t.Error("new buffer should be empty")
	}
	if b.LineCount() != 1 {
		t.Errorf("expected 1 line, got %d", b.LineCount())
	}
	if b.ID() == (ID{}) {
		t.Error("expected a generated ID")
	}
}

func TestNewFromStringNormalizesLineEndings(t *testing.T) {
	b := NewFromString("line1\r\nline2\rline3", WithName("x.txt"))

	require.Equal(t, 3, b.LineCount())
	assert.Equal(t, "line1", b.Line(0))
	assert.Equal(t, "line2", b.Line(1))
	assert.Equal(t, "line3", b.Line(2))
	assert.Equal(t, "x.txt", b.Name())
	assert.Equal(t, "", b.Line(5))
}

func TestInsert(t *testing.T) {
	tests := []struct {
		name    string
		initial string
		at      Position
		text    string
		want    string
		wantEnd Position
	}{
		{"middle", "hello world", Position{0, 5}, ",", "hello, world", Position{0, 6}},
		{"line end", "abc", Position{0, 3}, "d", "abcd", Position{0, 4}},
		{"split line", "hello world", Position{0, 5}, "\nX", "hello\nX world", Position{1, 1}},
		{"clamped", "ab", Position{9, 9}, "!", "ab!", Position{0, 3}},
		{"emoji", "a😀b", Position{0, 2}, "é", "a😀éb", Position{0, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewFromString(tt.initial)
			e, end := b.Insert(tt.at, tt.text)
			assert.Equal(t, tt.want, b.String())
			assert.Equal(t, tt.wantEnd, end)

			b.Apply(e.Invert())
			assert.Equal(t, tt.initial, b.String())
		})
	}
}

func TestDelete(t *testing.T) {
	tests := []struct {
		name    string
		initial string
		r       Range
		want    string
		wantOld string
		wantAt  Position
	}{
		{"charwise", "hello world", NewRange(Position{0, 0}, Position{0, 4}), " world", "hello", Position{0, 0}},
		{"through break", "ab\ncd", NewRange(Position{0, 1}, Position{0, 2}), "acd", "b\n", Position{0, 1}},
		{"multi line", "abc\ndef\nghi", NewRange(Position{0, 1}, Position{2, 0}), "ahi", "bc\ndef\ng", Position{0, 1}},
		{"grapheme", "a😀b", NewRange(Position{0, 1}, Position{0, 1}), "ab", "😀", Position{0, 1}},
		{"middle line", "a\nb\nc", Lines(1, 1), "a\nc", "b\n", Position{1, 0}},
		{"last line", "a\nb\nc", Lines(2, 2), "a\nb", "\nc", Position{1, 1}},
		{"all lines", "a\nb\nc", Lines(0, 2), "", "a\nb\nc", Position{0, 0}},
		{"break at buffer end", "ab", NewRange(Position{0, 1}, Position{0, 2}), "a", "b", Position{0, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewFromString(tt.initial)
			e := b.Delete(tt.r)
			assert.Equal(t, tt.want, b.String())
			assert.Equal(t, tt.wantOld, e.Old)
			assert.Equal(t, tt.wantAt, e.At)

			b.Apply(e.Invert())
			assert.Equal(t, tt.initial, b.String())
		})
	}
}

func TestDeleteEmptyRange(t *testing.T) {
	b := NewFromString("hello")
	rev := b.Revision()

	e := b.Delete(Range{Start: Position{0, 3}, End: Position{0, 2}})

	assert.True(t, e.IsNoOp())
	assert.Equal(t, "hello", b.String())
	assert.Equal(t, rev, b.Revision())
}

func TestSlice(t *testing.T) {
	b := NewFromString("one\ntwo\nthree")

	assert.Equal(t, "two\nthree\n", b.Slice(Lines(1, 5)))
	assert.Equal(t, "ne\ntw", b.Slice(NewRange(Position{0, 1}, Position{1, 1})))
	assert.Equal(t, "", b.Slice(Range{Start: Position{1, 0}, End: Position{0, 0}}))
}

func TestCharIdx(t *testing.T) {
	b := NewFromString("ab\n\ncd😀")

	assert.Equal(t, 0, b.PosToCharIdx(Position{0, 0}))
	assert.Equal(t, 2, b.PosToCharIdx(Position{0, 2}))
	assert.Equal(t, 3, b.PosToCharIdx(Position{1, 0}))
	assert.Equal(t, 6, b.PosToCharIdx(Position{2, 2}))

	assert.Equal(t, Position{2, 3}, b.CharIdxToPos(100))
	assert.Equal(t, Position{0, 0}, b.CharIdxToPos(-4))
}

func TestCharIdxRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		lines := rapid.SliceOfN(rapid.StringMatching(`[a-z 😀é]{0,8}`), 1, 6).Draw(t, "lines")
		b := NewFromString(strings.Join(lines, "\n"))
		line := rapid.IntRange(0, b.LineCount()-1).Draw(t, "line")
		col := rapid.IntRange(0, b.LineLen(line)).Draw(t, "col")
		p := Position{Line: line, Col: col}

		require.Equal(t, p, b.CharIdxToPos(b.PosToCharIdx(p)))
	})
}

func TestEditInvertRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		initial := strings.Join(rapid.SliceOfN(rapid.StringMatching(`[a-c ]{0,6}`), 1, 5).Draw(t, "lines"), "\n")
		b := NewFromString(initial)
		a := Clamp(b, Position{
			Line: rapid.IntRange(0, 4).Draw(t, "l1"),
			Col:  rapid.IntRange(0, 6).Draw(t, "c1"),
		}, true)
		z := Clamp(b, Position{
			Line: rapid.IntRange(0, 4).Draw(t, "l2"),
			Col:  rapid.IntRange(0, 6).Draw(t, "c2"),
		}, true)
		r := NewRange(a, z)
		r.Linewise = rapid.Bool().Draw(t, "linewise")

		e := b.Delete(r)
		b.Apply(e.Invert())
		require.Equal(t, initial, b.String())
	})
}

func TestSnapshotIsImmutable(t *testing.T) {
	b := NewFromString("hello\nworld")
	snap := b.Snapshot()

	b.Insert(Position{0, 0}, "X")
	b.Delete(Lines(1, 1))

	assert.Equal(t, "hello\nworld", snap.String())
	assert.Equal(t, []string{"world"}, snap.Window(1, 10))
	assert.Nil(t, snap.Window(5, 1))
	assert.NotEqual(t, snap.Revision(), b.Revision())
	assert.Equal(t, "Xhello", b.String())
}

func TestClamp(t *testing.T) {
	b := NewFromString("abc\n")

	assert.Equal(t, Position{0, 2}, Clamp(b, Position{0, 10}, false))
	assert.Equal(t, Position{0, 3}, Clamp(b, Position{0, 10}, true))
	assert.Equal(t, Position{1, 0}, Clamp(b, Position{7, 3}, false))
	assert.Equal(t, Position{0, 0}, Clamp(b, Position{-1, -1}, false))
}

func TestEndOf(t *testing.T) {
	assert.Equal(t, Position{2, 5}, EndOf(Position{2, 3}, "ab"))
	assert.Equal(t, Position{4, 1}, EndOf(Position{2, 3}, "x\n\ny"))
	assert.Equal(t, Position{3, 0}, EndOf(Position{2, 3}, "x\n"))
}
