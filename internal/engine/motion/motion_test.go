package motion

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/dshills/vimcore/internal/engine/buffer"
)

func pos(line, col int) buffer.Position {
	return buffer.Position{Line: line, Col: col}
}

func ctxFor(text string) Context {
	return Context{Text: buffer.NewFromString(text), TabStop: 8}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		from  buffer.Position
		m     Motion
		count int
		want  buffer.Position
	}{
		{"word forward", "hello world", pos(0, 0), Motion{Kind: WordForward}, 1, pos(0, 6)},
		{"word forward punct", "foo.bar baz", pos(0, 0), Motion{Kind: WordForward}, 1, pos(0, 3)},
		{"big word forward", "foo.bar baz", pos(0, 0), Motion{Kind: BigWordForward}, 1, pos(0, 8)},
		{"word forward next line", "foo\n  bar", pos(0, 1), Motion{Kind: WordForward}, 1, pos(1, 2)},
		{"word forward stops at empty line", "foo\n\nbar", pos(0, 0), Motion{Kind: WordForward}, 1, pos(1, 0)},
		{"word forward count", "a b c d", pos(0, 0), Motion{Kind: WordForward}, 3, pos(0, 6)},
		{"word forward at end", "hello", pos(0, 2), Motion{Kind: WordForward}, 1, pos(0, 4)},
		{"word backward", "hello world", pos(0, 8), Motion{Kind: WordBackward}, 1, pos(0, 6)},
		{"word backward prev word", "hello world", pos(0, 6), Motion{Kind: WordBackward}, 1, pos(0, 0)},
		{"word backward across line", "foo\nbar", pos(1, 0), Motion{Kind: WordBackward}, 1, pos(0, 0)},
		{"word end", "hello world", pos(0, 0), Motion{Kind: WordEnd}, 1, pos(0, 4)},
		{"word end next", "hello world", pos(0, 4), Motion{Kind: WordEnd}, 1, pos(0, 10)},
		{"word end backward", "hello world", pos(0, 8), Motion{Kind: WordEndBackward}, 1, pos(0, 4)},
		{"emoji word", "a😀😀 b", pos(0, 0), Motion{Kind: WordForward}, 1, pos(0, 1)},
		{"left clamps", "abc", pos(0, 1), Motion{Kind: Left}, 5, pos(0, 0)},
		{"right clamps", "abc", pos(0, 1), Motion{Kind: Right}, 5, pos(0, 2)},
		{"right stays on line", "ab\ncd", pos(0, 1), Motion{Kind: Right}, 1, pos(0, 1)},
		{"line start", "  abc", pos(0, 3), Motion{Kind: LineStart}, 1, pos(0, 0)},
		{"line end", "abc", pos(0, 0), Motion{Kind: LineEnd}, 1, pos(0, 2)},
		{"line end count", "abc\nde\nf", pos(0, 0), Motion{Kind: LineEnd}, 2, pos(1, 1)},
		{"first non blank", "   abc", pos(0, 5), Motion{Kind: FirstNonBlank}, 1, pos(0, 3)},
		{"first non blank blank line", "   ", pos(0, 2), Motion{Kind: FirstNonBlank}, 1, pos(0, 0)},
		{"last non blank", "abc  ", pos(0, 0), Motion{Kind: LastNonBlank}, 1, pos(0, 2)},
		{"column", "a\tb", pos(0, 0), Motion{Kind: Column}, 9, pos(0, 2)},
		{"next line start", "a\n  b", pos(0, 0), Motion{Kind: NextLineStart}, 1, pos(1, 2)},
		{"prev line start", " a\nb", pos(1, 0), Motion{Kind: PrevLineStart}, 1, pos(0, 1)},
		{"goto line", "a\nb\n  c", pos(0, 0), Motion{Kind: GotoLine}, 3, pos(2, 2)},
		{"goto line clamps", "a\nb", pos(0, 0), Motion{Kind: GotoLine}, 99, pos(1, 0)},
		{"goto first line", "  a\nb", pos(1, 0), Motion{Kind: GotoFirstLine}, 1, pos(0, 2)},
		{"goto last line", "a\nb\nc", pos(0, 0), Motion{Kind: GotoLastLine}, 1, pos(2, 0)},
		{"goto percent", "1\n2\n3\n4\n5\n6\n7\n8\n9\n10", pos(0, 0), Motion{Kind: GotoPercent}, 50, pos(4, 0)},
		{"paragraph forward", "a\nb\n\nc\nd", pos(0, 0), Motion{Kind: ParagraphForward}, 1, pos(3, 0)},
		{"paragraph forward at end", "a\nb", pos(0, 0), Motion{Kind: ParagraphForward}, 1, pos(1, 0)},
		{"paragraph backward", "a\nb\n\nc\nd", pos(4, 0), Motion{Kind: ParagraphBackward}, 1, pos(1, 0)},
		{"find char", "abcabc", pos(0, 0), Motion{Kind: FindCharForward, Char: 'c'}, 1, pos(0, 2)},
		{"find char count", "abcabc", pos(0, 0), Motion{Kind: FindCharForward, Char: 'c'}, 2, pos(0, 5)},
		{"find char backward", "abcabc", pos(0, 5), Motion{Kind: FindCharBackward, Char: 'a'}, 1, pos(0, 3)},
		{"till char", "abcabc", pos(0, 0), Motion{Kind: TillCharForward, Char: 'c'}, 1, pos(0, 1)},
		{"till char repeat", "abxcx", pos(0, 1), Motion{Kind: TillCharForward, Char: 'x', Repeat: true}, 1, pos(0, 3)},
		{"till char backward", "abcabc", pos(0, 5), Motion{Kind: TillCharBackward, Char: 'a'}, 1, pos(0, 4)},
		{"match bracket", "if (a(b)) {", pos(0, 0), Motion{Kind: MatchBracket}, 1, pos(0, 8)},
		{"match bracket backward", "(a\nb)", pos(1, 1), Motion{Kind: MatchBracket}, 1, pos(0, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Resolve(ctxFor(tt.text), At(tt.from), tt.m, tt.count)
			require.True(t, ok)
			assert.Equal(t, tt.want, got.Pos)
		})
	}
}

func TestResolveNotFound(t *testing.T) {
	tests := []struct {
		name string
		text string
		m    Motion
	}{
		{"find missing", "abc", Motion{Kind: FindCharForward, Char: 'z'}},
		{"find behind cursor", "abc", Motion{Kind: FindCharBackward, Char: 'c'}},
		{"no bracket", "abc", Motion{Kind: MatchBracket}},
		{"unbalanced", "(abc", Motion{Kind: MatchBracket}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from := At(pos(0, 1))
			got, ok := Resolve(ctxFor(tt.text), from, tt.m, 1)
			assert.False(t, ok)
			assert.Equal(t, from, got)
		})
	}
}

func TestVerticalKeepsDesiredColumn(t *testing.T) {
	ctx := ctxFor("abcdef\nab\nabcdef")
	cur := At(pos(0, 4))

	cur, _ = Resolve(ctx, cur, Motion{Kind: Down}, 1)
	assert.Equal(t, pos(1, 1), cur.Pos)
	assert.True(t, cur.HasWantCol)

	cur, _ = Resolve(ctx, cur, Motion{Kind: Down}, 1)
	assert.Equal(t, pos(2, 4), cur.Pos)

	cur, _ = Resolve(ctx, cur, Motion{Kind: Left}, 1)
	assert.False(t, cur.HasWantCol)
	cur, _ = Resolve(ctx, cur, Motion{Kind: Up}, 2)
	assert.Equal(t, pos(0, 3), cur.Pos)
}

func TestVerticalUsesDisplayColumns(t *testing.T) {
	ctx := ctxFor("日本語\nabcdef")
	cur, _ := Resolve(ctx, At(pos(0, 2)), Motion{Kind: Down}, 1)
	assert.Equal(t, pos(1, 4), cur.Pos)

	cur, _ = Resolve(ctx, At(pos(1, 3)), Motion{Kind: Up}, 1)
	assert.Equal(t, pos(0, 1), cur.Pos, "column 3 falls inside the second wide cluster")
}

func TestScreenMotions(t *testing.T) {
	text := strings.Repeat("x\n", 30) + "x"
	ctx := Context{Text: buffer.NewFromString(text), View: Viewport{Top: 10, Height: 11}}

	tests := []struct {
		kind  Kind
		count int
		want  int
	}{
		{ScreenTop, 1, 10},
		{ScreenTop, 3, 12},
		{ScreenMiddle, 1, 15},
		{ScreenBottom, 1, 20},
		{ScreenBottom, 2, 19},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			got, _ := Resolve(ctx, At(pos(0, 0)), Motion{Kind: tt.kind}, tt.count)
			assert.Equal(t, tt.want, got.Pos.Line)
		})
	}
}

func TestPastEnd(t *testing.T) {
	ctx := ctxFor("hello")
	ctx.PastEnd = true

	got, _ := Resolve(ctx, At(pos(0, 2)), Motion{Kind: WordForward}, 1)
	assert.Equal(t, pos(0, 5), got.Pos)

	got, _ = Resolve(ctx, At(pos(0, 4)), Motion{Kind: Right}, 1)
	assert.Equal(t, pos(0, 5), got.Pos)
}

func TestRepeatedMotionOnEmptyBuffer(t *testing.T) {
	ctx := Context{Text: buffer.New()}
	cur := At(pos(0, 0))
	for i := 0; i < 1000; i++ {
		k := Kinds()[i%len(Kinds())]
		cur, _ = Resolve(ctx, cur, Motion{Kind: k, Char: 'x'}, 1)
	}
	assert.Equal(t, pos(0, 0), cur.Pos)
}

func TestKindMetadata(t *testing.T) {
	for _, k := range Kinds() {
		assert.NotEqual(t, "unknown", k.String(), "kind %d has no name", k)
	}
	assert.True(t, WordEnd.Inclusive())
	assert.False(t, WordForward.Inclusive())
	assert.True(t, Down.Linewise())
	assert.True(t, GotoLastLine.IsJump())
	assert.False(t, Left.IsJump())
	assert.Equal(t, TillCharBackward, TillCharForward.Reverse())
}

func genText() *rapid.Generator[string] {
	return rapid.Custom(func(t *rapid.T) string {
		lines := rapid.SliceOfN(rapid.StringMatching(`[a-z .(){}😀\t]{0,10}`), 1, 8).Draw(t, "lines")
		return strings.Join(lines, "\n")
	})
}

func TestMotionProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		b := buffer.NewFromString(genText().Draw(t, "text"))
		ctx := Context{Text: b, View: Viewport{Top: 0, Height: 5}, TabStop: 4}
		line := rapid.IntRange(0, b.LineCount()-1).Draw(t, "line")
		col := rapid.IntRange(0, max(b.LineLen(line)-1, 0)).Draw(t, "col")
		cur := At(pos(line, col))
		k := rapid.SampledFrom(Kinds()).Draw(t, "kind")
		m := Motion{Kind: k, Char: rapid.SampledFrom([]rune("a.(x")).Draw(t, "char")}

		zero, _ := Resolve(ctx, cur, m, 0)
		one, _ := Resolve(ctx, cur, m, 1)
		require.Equal(t, one, zero, "count 0 behaves as count 1")

		count := rapid.IntRange(1, 20).Draw(t, "count")
		got, _ := Resolve(ctx, cur, m, count)
		require.GreaterOrEqual(t, got.Pos.Line, 0)
		require.Less(t, got.Pos.Line, b.LineCount())
		require.GreaterOrEqual(t, got.Pos.Col, 0)
		require.LessOrEqual(t, got.Pos.Col, max(b.LineLen(got.Pos.Line)-1, 0))
	})
}

func TestLeftAndUpConverge(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		b := buffer.NewFromString(genText().Draw(t, "text"))
		ctx := Context{Text: b}
		line := rapid.IntRange(0, b.LineCount()-1).Draw(t, "line")
		cur := At(pos(line, rapid.IntRange(0, 12).Draw(t, "col")))

		left, _ := Resolve(ctx, cur, Motion{Kind: Left}, 20)
		require.Equal(t, 0, left.Pos.Col)
		require.Equal(t, line, left.Pos.Line)
		again, _ := Resolve(ctx, left, Motion{Kind: Left}, 1)
		require.Equal(t, left.Pos, again.Pos)

		up, _ := Resolve(ctx, cur, Motion{Kind: Up}, b.LineCount())
		require.Equal(t, 0, up.Pos.Line)
		again, _ = Resolve(ctx, up, Motion{Kind: Up}, 1)
		require.Equal(t, up.Pos, again.Pos)
	})
}
