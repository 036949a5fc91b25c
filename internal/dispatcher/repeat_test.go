package dispatcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/dshills/vimcore/internal/engine/buffer"
	"github.com/dshills/vimcore/internal/input/intent"
	"github.com/dshills/vimcore/internal/input/register"
)

func TestRepeat(t *testing.T) {
	tests := []struct {
		name string
		text string
		keys string
		want string
	}{
		{"x", "hello", "x..", "lo"},
		{"counted x", "abcdefgh", "3x.", "gh"},
		{"count replaces count", "abcdefgh", "x3.", "efgh"},
		{"dw", "a b c d", "dw.", "c d"},
		{"insert session", "a\nb", "ihi<Esc>j.", "hia\nhib"},
		{"change word", "one two three", "cwX<Esc>w.", "X X three"},
		{"append", "a\nb", "A!<Esc>j.", "a!\nb!"},
		{"open line", "a", "ox<Esc>.", "a\nx\nx"},
		{"dd", "a\nb\nc\nd", "dd.", "c\nd"},
		{"visual delete", "abcdef", "vld.", "ef"},
		{"visual line delete", "a\nb\nc\nd", "Vjd.", ""},
		{"replace char", "abcd", "rxl.", "xxcd"},
		{"increment", "1", "<C-a>..", "4"},
		{"join", "a\nb\nc", "J.", "a b c"},
		{"yank is not repeated", "abc", "xyl.", "c"},
		{"undo then repeat", "abc", "xu.", "bc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, tt.text)
			h.keys(tt.keys)
			assert.Equal(t, tt.want, h.text())
		})
	}
}

func TestRepeatInsertCount(t *testing.T) {
	h := newHarness(t, "")
	h.keys("2ia<Esc>")
	require.Equal(t, "aa", h.text())

	h.keys(".")
	assert.Equal(t, "aaaa", h.text())

	h.keys("3.")
	assert.Equal(t, "aaaaaaa", h.text())
}

func TestRepeatIsOneUndoStep(t *testing.T) {
	h := newHarness(t, "abc")
	h.keys("ifoo<Esc>")
	h.keys(".")
	require.Equal(t, "fofoooabc", h.text())

	h.keys("u")
	assert.Equal(t, "fooabc", h.text())
}

func TestInsertMotionSplitsUndo(t *testing.T) {
	h := newHarness(t, "")
	h.keys("iab<Left>X<Esc>")
	require.Equal(t, "aXb", h.text())

	h.keys("u")
	assert.Equal(t, "ab", h.text())
	h.keys("u")
	assert.Equal(t, "", h.text())
}

func TestLastInsertedRegister(t *testing.T) {
	h := newHarness(t, "")
	h.keys("ihello<Esc>")
	assert.Equal(t, "hello", h.reg('.'))

	h.keys("o<C-r>.<Esc>")
	assert.Equal(t, "hello\nhello", h.text())
}

func TestMacroRecordAndPlay(t *testing.T) {
	h := newHarness(t, "a\nb\nc")
	h.keys("qqA!<Esc>jq")
	require.Equal(t, "a!\nb\nc", h.text())
	assert.False(t, h.st.Mode.Recording)

	h.keys("@q")
	assert.Equal(t, "a!\nb!\nc", h.text())

	h.keys("@@")
	assert.Equal(t, "a!\nb!\nc!", h.text())
}

func TestMacroCount(t *testing.T) {
	h := newHarness(t, "1\n1\n1\n1")
	h.keys("qa<C-a>jq")
	h.keys("3@a")
	assert.Equal(t, "2\n2\n2\n2", h.text())
}

func TestMacroMatchesDirectInput(t *testing.T) {
	const text = "one two\nthree four"
	const body = "cwX<Esc>wdwjI> <Esc>"

	direct := newHarness(t, text)
	direct.keys(body)

	played := newHarness(t, text)
	played.keys("qm" + body + "q")
	played.keys("u")
	played.keys("u")
	played.keys("u")
	played.keys("gg0@m")

	assert.Equal(t, direct.text(), played.text())
}

func TestMacroRecordingMessage(t *testing.T) {
	h := newHarness(t, "a")
	res := h.keys("qz")
	assert.Equal(t, "recording @z", res.Message)
	assert.Equal(t, 'z', h.st.Snapshot().Recording)

	h.keys("q")
	assert.Equal(t, rune(0), h.st.Snapshot().Recording)
}

func TestMacroRecursionIsBounded(t *testing.T) {
	h := newHarness(t, "a")
	opts := DefaultOptions()
	opts.MaxMacroDepth = 5
	h.st.SetOptions(opts)

	// A macro that calls itself.
	h.keys("qr")
	h.st.Macros.Record(intent.Intent{Kind: intent.MacroPlay, Register: 'r'})
	h.keys("q")
	res := h.keys("@r")
	require.True(t, res.IsError())
	assert.ErrorIs(t, res.Error, ErrMacroDepth)
}

func TestRepeatLastExCommand(t *testing.T) {
	var runs []string
	h := newHarness(t, "a", WithExHandler(ExHandlerFunc(func(_ *ExContext, cmd string) error {
		runs = append(runs, cmd)
		return nil
	})))

	res := h.keys("@:")
	assert.ErrorIs(t, res.Error, ErrNoPreviousCommand)

	h.keys(":echo<CR>")
	h.keys("2@:")
	assert.Equal(t, []string{"echo", "echo", "echo"}, runs)
	assert.Equal(t, "echo", h.reg(register.LastCommand))
}

// actions are key sequences that each return to Normal mode.
var actions = []string{
	"x", "dd", "ihi<Esc>", "p", "P", "J", "u", "<C-r>", ".", "dw",
	"o<Esc>", "oab<Esc>", "j", "k", "l", "w", "b", "$", "0", "~",
	"yy", "cwz<Esc>", "<C-a>", "vld", "Vd", "rq", ">>", "gUU",
}

func TestDeterministic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		text := rapid.StringMatching(`[a-z0-9 ]{0,8}(\n[a-z0-9 ]{0,8}){0,4}`).Draw(t, "text")
		keys := rapid.SliceOfN(rapid.SampledFrom(actions), 1, 30).Draw(t, "keys")

		a := newHarness(t, text)
		b := newHarness(t, text)
		for _, k := range keys {
			ra := a.keys(k)
			rb := b.keys(k)
			require.Equal(t, ra.Status, rb.Status)
		}
		require.Equal(t, a.text(), b.text())
		require.Equal(t, a.cursor(), b.cursor())
		require.Equal(t, a.reg(register.Unnamed), b.reg(register.Unnamed))
	})
}

func TestUndoRestoresOriginal(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		text := rapid.StringMatching(`[a-z0-9 ]{0,8}(\n[a-z0-9 ]{0,8}){0,4}`).Draw(t, "text")
		keys := rapid.SliceOfN(rapid.SampledFrom(actions), 1, 30).Draw(t, "keys")

		h := newHarness(t, text)
		for _, k := range keys {
			h.keys(k)
			require.Less(t, h.cursor().Line, h.st.Buffer.LineCount())
		}
		h.dispatch(intent.Intent{Kind: intent.Undo, Count: 1000})
		require.Equal(t, text, h.text())
	})
}

func TestUndoRevertsOnlyLastDelete(t *testing.T) {
	h := newHarness(t, "hello world")
	h.keys("4ld$")
	require.Equal(t, "hell", h.text())
	h.keys("0d$")
	require.Equal(t, "", h.text())

	h.keys("u")
	assert.Equal(t, "hell", h.text())
}

func TestUndoRedoCycles(t *testing.T) {
	h := newHarness(t, "alpha\nbeta\ngamma")
	h.keys("xjddifoo<Esc>")
	final := h.text()

	for range 100 {
		h.dispatch(intent.Intent{Kind: intent.Undo, Count: 3})
		require.Equal(t, "alpha\nbeta\ngamma", h.text())
		h.dispatch(intent.Intent{Kind: intent.Redo, Count: 3})
		require.Equal(t, final, h.text())
	}
	assert.Less(t, h.cursor().Line, h.st.Buffer.LineCount())
}

func TestChangeList(t *testing.T) {
	h := newHarness(t, "a\nb\nc")
	h.keys("xGx")
	require.Equal(t, buffer.Position{Line: 2}, h.cursor())

	h.keys("g;")
	assert.Equal(t, buffer.Position{Line: 2}, h.cursor())
	h.keys("g;")
	assert.Equal(t, buffer.Position{Line: 0}, h.cursor())

	res := h.keys("g;")
	require.True(t, res.IsError())
	assert.Contains(t, res.Error.Error(), "E662")
}
