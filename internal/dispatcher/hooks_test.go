package dispatcher

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/vimcore/internal/input/intent"
	"github.com/dshills/vimcore/internal/input/key"
	"github.com/dshills/vimcore/internal/input/mode"
)

func TestCountLimitHook(t *testing.T) {
	h := newHarness(t, "abcdefgh", WithPreHook(NewCountLimitHook(3)))
	h.keys("10x")
	assert.Equal(t, "defgh", h.text())
}

func TestReadOnlyHook(t *testing.T) {
	ro := &ReadOnlyHook{Enabled: true}
	h := newHarness(t, "abc", WithPreHook(ro))

	res := h.keys("x")
	assert.Equal(t, StatusNoOp, res.Status)
	assert.Equal(t, "abc", h.text())
	assert.Contains(t, h.st.Message, "E21")

	h.keys("ifoo")
	assert.Equal(t, mode.KindNormal, h.st.Mode.Mode.Kind, "insert is refused")

	h.keys("l")
	assert.Equal(t, 1, h.cursor().Col, "motions still work")

	ro.Enabled = false
	h.keys("x")
	assert.Equal(t, "ac", h.text())
}

func TestPostHookSeesResult(t *testing.T) {
	var seen []intent.Kind
	h := newHarness(t, "abc")
	h.d.AddPostHook(PostDispatchFunc(func(_ *EditorState, it intent.Intent, res *Result) {
		seen = append(seen, it.Kind)
		if it.Kind == intent.Undo {
			*res = res.WithMessage("undone")
		}
	}))

	h.keys("x")
	res := h.keys("u")
	assert.Equal(t, []intent.Kind{intent.Operator, intent.Undo}, seen)
	assert.Equal(t, "undone", res.Message)
}

func TestPreHookRewritesIntent(t *testing.T) {
	h := newHarness(t, "abc", WithPreHook(PreDispatchFunc(func(_ *EditorState, it *intent.Intent) bool {
		if it.Kind == intent.ToggleCaseChar {
			it.Count = 3
		}
		return true
	})))
	h.keys("~")
	assert.Equal(t, "ABC", h.text())
}

func TestMetrics(t *testing.T) {
	m := NewMetrics()
	h := newHarness(t, "abc", WithMetrics(m))
	require.Same(t, m, h.d.Metrics())

	h.keys("xx")
	h.keys("\"xp")

	op := m.IntentStats("Operator")
	require.NotNil(t, op)
	assert.Equal(t, uint64(2), op.DispatchCount)
	assert.Equal(t, uint64(0), op.ErrorCount)

	put := m.IntentStats("Put")
	require.NotNil(t, put)
	assert.Equal(t, 1.0, put.ErrorRate())

	snap := m.Snapshot()
	assert.Equal(t, uint64(3), snap.TotalDispatches)
	assert.Equal(t, uint64(1), snap.TotalErrors)
	assert.Equal(t, 2, snap.KindCount)

	top := m.TopIntents(1)
	require.Len(t, top, 1)
	assert.Equal(t, "Operator", top[0].Name)

	assert.Equal(t, uint64(3), m.ModeCount(mode.KindNormal))
	assert.Nil(t, m.IntentStats("NoSuchKind"))

	h.keys("x.")
	op = m.Stats(intent.Operator)
	assert.Equal(t, uint64(4), op.DispatchCount)
	assert.Equal(t, uint64(1), op.ReplayCount)

	m.Reset()
	assert.Nil(t, m.IntentStats("Operator"))
	assert.Zero(t, m.Snapshot().TotalDispatches)
}

type panicTerminal struct{}

func (panicTerminal) Input(key.Event) error {
	panic("terminal closed")
}

type recordingTerminal struct {
	keys []key.Event
}

func (r *recordingTerminal) Input(ev key.Event) error {
	r.keys = append(r.keys, ev)
	return nil
}

func TestPanicRecovery(t *testing.T) {
	m := NewMetrics()
	h := newHarness(t, "abc", WithTerminal(panicTerminal{}), WithMetrics(m))

	res := h.dispatch(intent.Intent{Kind: intent.TerminalInput, Key: key.Char('a')})
	require.True(t, res.IsError())
	assert.Contains(t, res.Error.Error(), "terminal closed")
	assert.Equal(t, uint64(1), m.Snapshot().TotalPanics)

	// The state is still usable.
	h.keys("x")
	assert.Equal(t, "bc", h.text())
}

func TestTerminalMode(t *testing.T) {
	term := &recordingTerminal{}
	h := newHarness(t, "abc", WithTerminal(term))

	require.True(t, h.dispatch(intent.Intent{Kind: intent.EnterTerminal}).IsOK())
	h.keys("ls<CR>")
	require.Len(t, term.keys, 3)
	assert.Equal(t, key.Char('l'), term.keys[0])

	h.keys("<C-\\><C-n>")
	assert.Equal(t, mode.KindNormal, h.st.Mode.Mode.Kind)
	assert.Equal(t, "abc", h.text())
}

func TestExCommand(t *testing.T) {
	var got []string
	h := newHarness(t, "abc", WithExHandler(ExHandlerFunc(func(ctx *ExContext, cmd string) error {
		got = append(got, cmd)
		if cmd == "fail" {
			return errors.New("E999: failed")
		}
		ctx.SetMessage("ran %s", cmd)
		return nil
	})))

	res := h.keys(":echo<CR>")
	require.True(t, res.IsOK())
	assert.Equal(t, "ran echo", h.st.Message)
	assert.Equal(t, mode.KindNormal, h.st.Mode.Mode.Kind)

	res = h.keys(":fail<CR>")
	require.True(t, res.IsError())
	assert.Equal(t, "E999: failed", h.st.Message)

	assert.Equal(t, []string{"echo", "fail"}, got)
	assert.Equal(t, "fail", h.st.LastExCommand())
}

func TestExCommandWithoutHandler(t *testing.T) {
	h := newHarness(t, "abc")
	res := h.keys(":w<CR>")
	assert.ErrorIs(t, res.Error, ErrNotEditorCommand)
}

func TestExCommandFromVisual(t *testing.T) {
	var got string
	h := newHarness(t, "a\nb", WithExHandler(ExHandlerFunc(func(_ *ExContext, cmd string) error {
		got = cmd
		return nil
	})))
	h.keys("Vj:d<CR>")
	assert.Equal(t, "'<,'>d", got)
}

func TestExCommandThroughContext(t *testing.T) {
	h := newHarness(t, "a\nb\nc", WithExHandler(ExHandlerFunc(func(ctx *ExContext, cmd string) error {
		st := ctx.State()
		st.ReplaceLines(0, 1, nil)
		return nil
	})))
	h.keys(":delete<CR>")
	assert.Equal(t, "c", h.text())

	h.keys("u")
	assert.Equal(t, "a\nb\nc", h.text())
}

func TestCommandLineEditing(t *testing.T) {
	h := newHarness(t, "abc")
	h.keys(":abd<BS>c")
	assert.Equal(t, "abc", h.st.Mode.CommandLine.Text())

	h.keys("<C-u>")
	assert.Equal(t, "", h.st.Mode.CommandLine.Text())

	h.keys("<BS>")
	assert.Equal(t, mode.KindNormal, h.st.Mode.Mode.Kind, "backspace on an empty line leaves")

	h.keys(":x<Esc>")
	assert.Equal(t, mode.KindNormal, h.st.Mode.Mode.Kind)
}

func TestCommandLineHistory(t *testing.T) {
	h := newHarness(t, "abc", WithExHandler(ExHandlerFunc(func(*ExContext, string) error { return nil })))
	h.keys(":one<CR>:two<CR>:")
	h.keys("<Up>")
	assert.Equal(t, "two", h.st.Mode.CommandLine.Text())
	h.keys("<Up>")
	assert.Equal(t, "one", h.st.Mode.CommandLine.Text())
	h.keys("<Down>")
	assert.Equal(t, "two", h.st.Mode.CommandLine.Text())
}

type staticEval string

func (s staticEval) Eval(string) (string, error) {
	return string(s), nil
}

func TestExpressionRegister(t *testing.T) {
	h := newHarness(t, "")
	h.keys("i")
	res := h.dispatch(intent.Intent{Kind: intent.InsertRegister, Register: '='})
	assert.ErrorIs(t, res.Error, ErrNoEvaluator)

	h = newHarness(t, "", WithEvaluator(staticEval("42")))
	h.keys("i")
	h.dispatch(intent.Intent{Kind: intent.InsertRegister, Register: '='})
	h.keys("<Esc>")
	assert.Equal(t, "42", h.text())
}

type windowRecorder struct {
	got []string
}

func (w *windowRecorder) Window(ev key.Event, count int) error {
	w.got = append(w.got, ev.String())
	return nil
}

func TestWindowCommands(t *testing.T) {
	h := newHarness(t, "abc")
	res := h.keys("<C-w>v")
	assert.Equal(t, StatusNoOp, res.Status)

	w := &windowRecorder{}
	h = newHarness(t, "abc", WithWindowHandler(w))
	res = h.keys("<C-w>v")
	require.True(t, res.IsOK())
	assert.Len(t, w.got, 1)
}
