package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/vimcore/internal/config"
	"github.com/dshills/vimcore/internal/dispatcher"
	"github.com/dshills/vimcore/internal/input/intent"
	"github.com/dshills/vimcore/internal/input/mode"
	"github.com/dshills/vimcore/internal/input/register"
)

func newEditor(t *testing.T, text string) *Editor {
	t.Helper()
	e, err := New(Options{Text: &text})
	require.NoError(t, err)
	t.Cleanup(e.Close)
	return e
}

func feed(t *testing.T, e *Editor, keys string) dispatcher.Result {
	t.Helper()
	res, err := e.Feed(keys)
	require.NoError(t, err)
	return res
}

func TestFeed(t *testing.T) {
	e := newEditor(t, "hello world")
	feed(t, e, "dwihey <Esc>")
	assert.Equal(t, "hey world", e.Text())
	assert.Equal(t, mode.KindNormal, e.Snapshot().Mode.Kind)

	// An unknown key name is typed literally.
	e = newEditor(t, "x")
	feed(t, e, "i<Bogus<Esc>")
	assert.Equal(t, "<Bogusx", e.Text())

	_, err := e.Feed("\xff")
	assert.Error(t, err)
}

func TestFeedPending(t *testing.T) {
	e := newEditor(t, "abc")
	feed(t, e, "2g")
	assert.Equal(t, "2g", e.Snapshot().Pending)
	feed(t, e, "<Esc>")
	assert.Empty(t, e.Snapshot().Pending)
}

func TestOpenFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(path, []byte("one\ntwo\n"), 0o644))

	e, err := New(Options{Path: path})
	require.NoError(t, err)
	defer e.Close()
	assert.Equal(t, "one\ntwo", e.Text())
	assert.Equal(t, `"a.txt" 2L, 8B`, e.Snapshot().Message)
	assert.Equal(t, path, e.State().Registers.Get('%').Content)

	e2, err := New(Options{Path: filepath.Join(dir, "new.txt")})
	require.NoError(t, err)
	defer e2.Close()
	assert.Equal(t, "", e2.Text())
	assert.Equal(t, `"new.txt" [New]`, e2.Snapshot().Message)
}

func TestInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Editor.TabStop = 0
	_, err := New(Options{Config: cfg})
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestWriteAndQuit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")

	e, err := New(Options{Path: path})
	require.NoError(t, err)
	defer e.Close()

	feed(t, e, "ihello<Esc>")
	res := feed(t, e, ":q<CR>")
	assert.ErrorIs(t, res.Error, ErrUnsavedChanges)
	assert.False(t, e.Done())

	res = feed(t, e, ":w<CR>")
	require.True(t, res.IsOK(), res.Message)
	assert.Equal(t, `"out.txt" 1L, 6B written`, res.Message)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(data))
	assert.False(t, e.State().Modified())

	feed(t, e, ":q<CR>")
	assert.True(t, e.Done())

	// Keys after quitting are ignored.
	feed(t, e, "x")
	assert.Equal(t, "hello", e.Text())
}

func TestWriteQuitVariants(t *testing.T) {
	dir := t.TempDir()

	e := newEditor(t, "abc")
	res := feed(t, e, ":w<CR>")
	assert.ErrorIs(t, res.Error, ErrNoFileName)

	path := filepath.Join(dir, "named.txt")
	feed(t, e, ":w "+path+"<CR>")
	assert.Equal(t, path, e.Path())
	feed(t, e, "x:x<CR>")
	assert.True(t, e.Done())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "bc\n", string(data))

	e = newEditor(t, "abc")
	feed(t, e, "x:q!<CR>")
	assert.True(t, e.Done())

	e = newEditor(t, "abc")
	feed(t, e, ":wq "+filepath.Join(dir, "wq.txt")+"<CR>")
	assert.True(t, e.Done())
}

func TestReadOnly(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ro.txt")
	require.NoError(t, os.WriteFile(path, []byte("abc\n"), 0o644))

	e, err := New(Options{Path: path, ReadOnly: true})
	require.NoError(t, err)
	defer e.Close()

	feed(t, e, "x")
	assert.Equal(t, "abc", e.Text())

	res := feed(t, e, ":d<CR>")
	assert.ErrorIs(t, res.Error, ErrNotModifiable)

	res = feed(t, e, ":w<CR>")
	assert.ErrorIs(t, res.Error, ErrReadOnly)

	e.SetReadOnly(false)
	feed(t, e, "x")
	assert.Equal(t, "bc", e.Text())
}

func TestEditReload(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.txt")
	require.NoError(t, os.WriteFile(a, []byte("alpha\n"), 0o644))
	require.NoError(t, os.WriteFile(b, []byte("beta\n"), 0o644))

	e, err := New(Options{Path: a})
	require.NoError(t, err)
	defer e.Close()

	feed(t, e, "\"ayyx")
	res := feed(t, e, ":e "+b+"<CR>")
	assert.ErrorIs(t, res.Error, ErrUnsavedChanges)

	feed(t, e, ":e!<CR>")
	assert.Equal(t, "alpha", e.Text())
	assert.False(t, e.State().Modified())

	feed(t, e, ":e "+b+"<CR>")
	assert.Equal(t, "beta", e.Text())
	assert.Equal(t, b, e.Path())
	assert.Equal(t, a, e.State().Registers.Get('#').Content)
	assert.Equal(t, "alpha\n", e.State().Registers.Get('a').Content, "registers carry over")

	feed(t, e, "\"ap")
	assert.Equal(t, "beta\nalpha", e.Text())
}

func TestReload(t *testing.T) {
	e := newEditor(t, "abc")

	cfg := config.Default()
	cfg.Editor.ShiftWidth = 2
	cfg.Editor.ExpandTab = true
	e.Reload(config.Reload{Path: "/x/config.toml", Config: cfg})
	assert.Equal(t, `"config.toml" config reloaded`, e.Snapshot().Message)
	assert.Equal(t, 2, e.State().Options.ShiftWidth)

	feed(t, e, ">>")
	assert.Equal(t, "  abc", e.Text())

	e.Reload(config.Reload{Path: "/x/config.toml", Err: config.ErrInvalidConfig})
	assert.Contains(t, e.Snapshot().Message, "invalid config")
	assert.Same(t, cfg, e.Config())
}

func TestResize(t *testing.T) {
	e := newEditor(t, "a\nb\nc\nd\ne")
	e.Resize(2)
	feed(t, e, "G")
	snap := e.Snapshot()
	assert.Equal(t, 3, snap.Top)
	assert.Equal(t, []string{"d", "e"}, snap.Lines)
}

func TestMetricsOption(t *testing.T) {
	text := "abc"
	e, err := New(Options{Text: &text, Metrics: true})
	require.NoError(t, err)
	defer e.Close()
	feed(t, e, "x")
	require.NotNil(t, e.Metrics())
	assert.Equal(t, uint64(1), e.Metrics().Snapshot().TotalDispatches)

	assert.Nil(t, newEditor(t, "").Metrics())
}

func TestExpressionRegister(t *testing.T) {
	e := newEditor(t, "")
	require.NoError(t, e.State().Registers.Set('=', register.Register{Content: "6 * 7"}))
	feed(t, e, "i")
	e.Dispatch(intent.Intent{Kind: intent.InsertRegister, Register: '='})
	feed(t, e, "<Esc>")
	assert.Equal(t, "42", e.Text())
}
