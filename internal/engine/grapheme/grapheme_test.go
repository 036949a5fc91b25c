package grapheme

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestCount(t *testing.T) {
	tests := []struct {
		name string
		s    string
		want int
	}{
		{"empty", "", 0},
		{"ascii", "hello", 5},
		{"emoji", "h😀llo", 5},
		{"combining", "éx", 2},
		{"family", "👨‍👩‍👧‍👦", 1},
		{"cjk", "日本語", 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Count(tt.s))
		})
	}
}

func TestByteOffsetAndIndex(t *testing.T) {
	s := "a😀b"
	assert.Equal(t, 0, ByteOffset(s, 0))
	assert.Equal(t, 1, ByteOffset(s, 1))
	assert.Equal(t, 5, ByteOffset(s, 2))
	assert.Equal(t, len(s), ByteOffset(s, 3))
	assert.Equal(t, len(s), ByteOffset(s, 99))

	assert.Equal(t, 1, Index(s, 1))
	assert.Equal(t, 1, Index(s, 3), "offset inside a cluster maps to that cluster")
	assert.Equal(t, 2, Index(s, 5))
	assert.Equal(t, 3, Index(s, len(s)))
}

func TestSlice(t *testing.T) {
	s := "héllo wörld"
	assert.Equal(t, "héllo", Slice(s, 0, 5))
	assert.Equal(t, "wörld", Slice(s, 6, 11))
	assert.Equal(t, "", Slice(s, 4, 2))
	assert.Equal(t, "", Slice(s, 20, 30))
	assert.Equal(t, "d", Slice(s, 10, 50))
}

func TestColumns(t *testing.T) {
	s := "a日b\tc"
	assert.Equal(t, 0, Column(s, 0, 8))
	assert.Equal(t, 1, Column(s, 1, 8))
	assert.Equal(t, 3, Column(s, 2, 8))
	assert.Equal(t, 4, Column(s, 3, 8))
	assert.Equal(t, 8, Column(s, 4, 8), "tab expands to the next stop")

	assert.Equal(t, 1, AtColumn(s, 1, 8))
	assert.Equal(t, 1, AtColumn(s, 2, 8), "second cell of a wide cluster")
	assert.Equal(t, 3, AtColumn(s, 6, 8))
	assert.Equal(t, 5, AtColumn(s, 40, 8))
}

func TestClassOf(t *testing.T) {
	tests := []struct {
		cluster string
		want    Class
	}{
		{" ", Whitespace},
		{"\t", Whitespace},
		{"a", Word},
		{"_", Word},
		{"9", Word},
		{"é", Word},
		{"日", Word},
		{".", Punct},
		{"(", Punct},
		{"😀", Punct},
	}
	for _, tt := range tests {
		t.Run(tt.cluster, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassOf(tt.cluster))
		})
	}
	assert.Equal(t, Word, BigClassOf("."))
}

func TestBlankHelpers(t *testing.T) {
	assert.True(t, IsBlank("  \t"))
	assert.False(t, IsBlank(" x "))
	assert.Equal(t, 2, FirstNonBlank("  foo"))
	assert.Equal(t, 0, FirstNonBlank("   "))
	assert.Equal(t, 4, LastNonBlank("  foo  "))
	assert.Equal(t, "\t ", Leading("\t foo"))
}

func TestSplitRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := rapid.StringMatching(`[a-zé日😀 \t.]{0,20}`).Draw(t, "s")
		parts := Split(s)
		require.Len(t, parts, Count(s))
		joined := ""
		for i, p := range parts {
			require.Equal(t, p, At(s, i))
			joined += p
		}
		require.Equal(t, s, joined)
		for i := 0; i <= len(parts); i++ {
			require.Equal(t, i, Index(s, ByteOffset(s, i)))
		}
	})
}
