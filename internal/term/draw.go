package term

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/vimcore/internal/dispatcher"
	"github.com/dshills/vimcore/internal/engine/buffer"
	"github.com/dshills/vimcore/internal/engine/grapheme"
	"github.com/dshills/vimcore/internal/input/mode"
)

// DrawOptions controls how a snapshot is laid out.
type DrawOptions struct {
	TabStop     int
	LineNumbers bool
	ShowMode    bool
}

var (
	styleText      = tcell.StyleDefault
	styleSelection = tcell.StyleDefault.Reverse(true)
	styleGutter    = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleFiller    = tcell.StyleDefault.Foreground(tcell.ColorBlue).Bold(true)
	styleMode      = tcell.StyleDefault.Bold(true)
	styleError     = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorRed)
	styleRecording = tcell.StyleDefault.Bold(true)
)

// TextHeight is the number of buffer lines a screen of the given height
// shows; the last row is the status line.
func TextHeight(screenHeight int) int {
	return max(screenHeight-1, 1)
}

// Draw renders snap to the screen: the visible lines with an optional
// line-number gutter, "~" past the end of the buffer, and a status line
// with the mode, message or command line. It places the cursor but does
// not call Show.
func Draw(s tcell.Screen, snap dispatcher.Snapshot, opts DrawOptions) {
	width, height := s.Size()
	s.Clear()
	if width <= 0 || height <= 0 {
		return
	}

	gutter := 0
	if opts.LineNumbers {
		gutter = gutterWidth(snap.LineCount)
	}

	rows := TextHeight(height)
	for y := range rows {
		line := snap.Top + y
		if y >= len(snap.Lines) {
			if height > 1 {
				s.SetContent(0, y, '~', nil, styleFiller)
			}
			continue
		}
		if gutter > 0 {
			putString(s, 0, y, fmt.Sprintf("%*d ", gutter-1, line+1), styleGutter, gutter)
		}
		drawLine(s, gutter, y, width, line, snap.Lines[y], snap, opts.TabStop)
	}

	msgLines := drawStatus(s, width, height, snap, opts)
	placeCursor(s, width, height, gutter, msgLines, snap, opts.TabStop)
}

func gutterWidth(lineCount int) int {
	return max(len(fmt.Sprint(lineCount)), 3) + 1
}

// drawLine draws one buffer line from column x0, expanding tabs and
// highlighting the selection.
func drawLine(s tcell.Screen, x0, y, width, line int, text string, snap dispatcher.Snapshot, tabStop int) {
	col := 0
	for idx, cluster := range grapheme.All(text) {
		w := grapheme.Width(cluster, col, tabStop)
		style := styleText
		if snap.HasSelection && selected(snap.Selection, buffer.Position{Line: line, Col: idx}) {
			style = styleSelection
		}
		x := x0 + col
		if x >= width {
			return
		}
		runes := []rune(cluster)
		switch {
		case cluster == "\t":
			for i := range w {
				s.SetContent(x+i, y, ' ', nil, style)
			}
		case runes[0] < 0x20:
			s.SetContent(x, y, '^', nil, style)
			if x+1 < width {
				s.SetContent(x+1, y, runes[0]+'@', nil, style)
			}
			w = 2
		default:
			s.SetContent(x, y, runes[0], runes[1:], style)
		}
		col += w
	}

	// An empty selected line shows one highlighted cell.
	if snap.HasSelection && col == 0 && selected(snap.Selection, buffer.Position{Line: line}) && x0 < width {
		s.SetContent(x0, y, ' ', nil, styleSelection)
	}
}

func selected(r buffer.Range, p buffer.Position) bool {
	if r.Block {
		lo, hi := min(r.Start.Col, r.End.Col), max(r.Start.Col, r.End.Col)
		return p.Line >= r.Start.Line && p.Line <= r.End.Line && p.Col >= lo && p.Col <= hi
	}
	return r.Contains(p)
}

// drawStatus draws the last row and returns how many rows a multi-line
// message took.
func drawStatus(s tcell.Screen, width, height int, snap dispatcher.Snapshot, opts DrawOptions) int {
	y := height - 1
	if snap.InCommand {
		putString(s, 0, y, string(snap.CommandPrompt)+snap.CommandText, styleText, width)
		return 1
	}

	if snap.Message != "" {
		lines := strings.Split(snap.Message, "\n")
		if len(lines) > height {
			lines = lines[len(lines)-height:]
		}
		style := styleText
		if isErrorMessage(snap.Message) {
			style = styleError
		}
		top := height - len(lines)
		for i, l := range lines {
			for x := range width {
				s.SetContent(x, top+i, ' ', nil, styleText)
			}
			putString(s, 0, top+i, l, style, width)
		}
		if len(lines) > 1 {
			return len(lines)
		}
	} else if opts.ShowMode {
		name := snap.ModeName
		if snap.Recording != 0 {
			name = strings.TrimSpace(name + "recording @" + string(snap.Recording))
		}
		putString(s, 0, y, name, styleMode, width)
	}

	if snap.Pending != "" && width > 20 {
		putString(s, width-12, y, snap.Pending, styleText, 10)
	}
	if snap.Recording != 0 && snap.Message != "" && width > 40 {
		putString(s, width-28, y, "recording @"+string(snap.Recording), styleRecording, 14)
	}
	return 1
}

// isErrorMessage reports whether msg starts with a Vim error number such
// as "E37:".
func isErrorMessage(msg string) bool {
	if len(msg) < 3 || msg[0] != 'E' {
		return false
	}
	i := 1
	for i < len(msg) && msg[i] >= '0' && msg[i] <= '9' {
		i++
	}
	return i > 1 && i < len(msg) && msg[i] == ':'
}

func placeCursor(s tcell.Screen, width, height, gutter, msgLines int, snap dispatcher.Snapshot, tabStop int) {
	if msgLines > 1 {
		s.HideCursor()
		return
	}
	if snap.InCommand {
		prefix := string(snap.CommandPrompt) + string([]rune(snap.CommandText)[:min(snap.CommandCursor, len([]rune(snap.CommandText)))])
		s.ShowCursor(min(grapheme.Column(prefix, grapheme.Count(prefix), tabStop), width-1), height-1)
		setCursorStyle(s, mode.CursorBar)
		return
	}

	y := snap.Cursor.Line - snap.Top
	if y < 0 || y >= len(snap.Lines) {
		s.HideCursor()
		return
	}
	x := gutter + grapheme.Column(snap.Lines[y], snap.Cursor.Col, tabStop)
	s.ShowCursor(min(x, width-1), y)
	setCursorStyle(s, snap.CursorStyle)
}

func setCursorStyle(s tcell.Screen, style mode.CursorStyle) {
	switch style {
	case mode.CursorBar:
		s.SetCursorStyle(tcell.CursorStyleSteadyBar)
	case mode.CursorUnderline:
		s.SetCursorStyle(tcell.CursorStyleSteadyUnderline)
	default:
		s.SetCursorStyle(tcell.CursorStyleSteadyBlock)
	}
}

// putString draws str from x, clipped to limit cells.
func putString(s tcell.Screen, x, y int, str string, style tcell.Style, limit int) {
	col := 0
	for _, cluster := range grapheme.All(str) {
		w := grapheme.Width(cluster, col, 8)
		if col+w > limit {
			return
		}
		runes := []rune(cluster)
		s.SetContent(x+col, y, runes[0], runes[1:], style)
		col += w
	}
}
