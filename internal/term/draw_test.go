package term

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/vimcore/internal/app"
	"github.com/dshills/vimcore/internal/dispatcher"
)

func newScreen(t *testing.T, width, height int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, s.Init())
	s.SetSize(width, height)
	t.Cleanup(s.Fini)
	return s
}

func newEditor(t *testing.T, text string, height int) *app.Editor {
	t.Helper()
	e, err := app.New(app.Options{Text: &text})
	require.NoError(t, err)
	t.Cleanup(e.Close)
	e.Resize(TextHeight(height))
	return e
}

func row(s tcell.Screen, y int) string {
	width, _ := s.Size()
	var sb strings.Builder
	for x := range width {
		mainc, _, _, _ := s.GetContent(x, y) //nolint:staticcheck // GetContent is the correct API
		if mainc == 0 {
			mainc = ' '
		}
		sb.WriteRune(mainc)
	}
	return strings.TrimRight(sb.String(), " ")
}

func render(s tcell.Screen, snap dispatcher.Snapshot, opts DrawOptions) {
	Draw(s, snap, opts)
	s.Show()
}

func feed(t *testing.T, e *app.Editor, keys string) {
	t.Helper()
	_, err := e.Feed(keys)
	require.NoError(t, err)
}

func TestDrawText(t *testing.T) {
	s := newScreen(t, 20, 5)
	e := newEditor(t, "hello\n\tx", 5)

	render(s, e.Snapshot(), DrawOptions{TabStop: 4, ShowMode: true})
	assert.Equal(t, "hello", row(s, 0))
	assert.Equal(t, "    x", row(s, 1))
	assert.Equal(t, "~", row(s, 2))
	assert.Equal(t, "~", row(s, 3))
	assert.Equal(t, "", row(s, 4))

	x, y, _ := s.GetCursor()
	assert.Equal(t, 0, x)
	assert.Equal(t, 0, y)
}

func TestDrawLineNumbers(t *testing.T) {
	s := newScreen(t, 20, 5)
	e := newEditor(t, "hello\nworld", 5)
	feed(t, e, "jl")

	render(s, e.Snapshot(), DrawOptions{TabStop: 8, LineNumbers: true})
	assert.Equal(t, "  1 hello", row(s, 0))
	assert.Equal(t, "  2 world", row(s, 1))

	x, y, _ := s.GetCursor()
	assert.Equal(t, 5, x)
	assert.Equal(t, 1, y)
}

func TestDrawModes(t *testing.T) {
	s := newScreen(t, 30, 4)
	e := newEditor(t, "hello", 4)
	opts := DrawOptions{TabStop: 8, ShowMode: true}

	feed(t, e, "A")
	render(s, e.Snapshot(), opts)
	assert.Equal(t, "-- INSERT --", row(s, 3))
	x, _, _ := s.GetCursor()
	assert.Equal(t, 5, x, "insert cursor after the last character")

	feed(t, e, "<Esc>:wq")
	render(s, e.Snapshot(), opts)
	assert.Equal(t, ":wq", row(s, 3))
	x, y, _ := s.GetCursor()
	assert.Equal(t, 3, x)
	assert.Equal(t, 3, y)

	feed(t, e, "<Esc>")
	render(s, e.Snapshot(), DrawOptions{TabStop: 8})
	assert.Equal(t, "", row(s, 3))
}

func TestDrawPendingAndRecording(t *testing.T) {
	s := newScreen(t, 40, 4)
	e := newEditor(t, "hello", 4)
	opts := DrawOptions{TabStop: 8, ShowMode: true}

	feed(t, e, "qa")
	render(s, e.Snapshot(), opts)
	assert.Contains(t, row(s, 3), "recording @a")

	feed(t, e, "2g")
	render(s, e.Snapshot(), opts)
	assert.True(t, strings.HasSuffix(row(s, 3), "2g"), row(s, 3))
}

func TestDrawErrorMessage(t *testing.T) {
	s := newScreen(t, 60, 4)
	e := newEditor(t, "hello", 4)
	feed(t, e, ":bogus<CR>")

	render(s, e.Snapshot(), DrawOptions{TabStop: 8})
	assert.True(t, strings.HasPrefix(row(s, 3), "E492"), row(s, 3))

	_, _, style, _ := s.GetContent(0, 3) //nolint:staticcheck // GetContent is the correct API
	_, bg, _ := style.Decompose()
	assert.Equal(t, tcell.ColorRed, bg)
}

func TestDrawMultiLineMessage(t *testing.T) {
	s := newScreen(t, 40, 6)
	e := newEditor(t, "abc", 6)
	feed(t, e, "yy:reg 0<CR>")

	render(s, e.Snapshot(), DrawOptions{TabStop: 8})
	assert.Equal(t, "Type Name Content", row(s, 4))
	assert.Equal(t, `l  "0   abc^J`, row(s, 5))
	assert.Equal(t, "abc", row(s, 0))
}

func TestDrawSelection(t *testing.T) {
	s := newScreen(t, 20, 4)
	e := newEditor(t, "hello", 4)
	feed(t, e, "vl")

	render(s, e.Snapshot(), DrawOptions{TabStop: 8})
	reversed := func(x int) bool {
		_, _, style, _ := s.GetContent(x, 0) //nolint:staticcheck // GetContent is the correct API
		_, _, attrs := style.Decompose()
		return attrs&tcell.AttrReverse != 0
	}
	assert.True(t, reversed(0))
	assert.True(t, reversed(1))
	assert.False(t, reversed(2))
}

func TestIsErrorMessage(t *testing.T) {
	tests := map[string]bool{
		"E37: No write since last change": true,
		"E4:":                             true,
		"Error":                           false,
		"E:":                              false,
		"E12":                             false,
		"":                                false,
	}
	for msg, want := range tests {
		assert.Equal(t, want, isErrorMessage(msg), msg)
	}
}
