package mode

import (
	"slices"
	"strings"
	"unicode"
)

// DefaultHistorySize bounds each command-line history.
const DefaultHistorySize = 100

// CommandLine is the text being typed in Command mode. Ex commands and
// search patterns keep separate histories.
type CommandLine struct {
	kind   CommandKind
	buffer []rune
	cursor int

	// historyIndex is the entry being shown, or -1 for the typed text.
	historyIndex int
	savedBuffer  []rune

	exHistory     []string
	searchHistory []string
	historySize   int
}

// NewCommandLine creates an empty command line.
func NewCommandLine() CommandLine {
	return CommandLine{historyIndex: -1, historySize: DefaultHistorySize}
}

// Reset clears the text, cursor, history position and saved text and
// starts collecting input of the given kind. Histories are kept.
func (c *CommandLine) Reset(kind CommandKind) {
	c.kind = kind
	c.buffer = c.buffer[:0]
	c.cursor = 0
	c.historyIndex = -1
	c.savedBuffer = nil
}

// Kind returns what the command line is collecting.
func (c *CommandLine) Kind() CommandKind { return c.kind }

// Text returns the current command-line content.
func (c *CommandLine) Text() string { return string(c.buffer) }

// Cursor returns the cursor offset in runes.
func (c *CommandLine) Cursor() int { return c.cursor }

// Insert inserts s at the cursor.
func (c *CommandLine) Insert(s string) {
	rs := []rune(s)
	c.buffer = slices.Insert(c.buffer, c.cursor, rs...)
	c.cursor += len(rs)
}

// Backspace deletes the rune before the cursor. It returns false when the
// line was already empty, which abandons the command line.
func (c *CommandLine) Backspace() bool {
	if len(c.buffer) == 0 {
		return false
	}
	if c.cursor > 0 {
		c.buffer = slices.Delete(c.buffer, c.cursor-1, c.cursor)
		c.cursor--
	}
	return true
}

// DeleteForward deletes the rune under the cursor.
func (c *CommandLine) DeleteForward() {
	if c.cursor < len(c.buffer) {
		c.buffer = slices.Delete(c.buffer, c.cursor, c.cursor+1)
	}
}

// DeleteWord deletes the word before the cursor (Ctrl-W).
func (c *CommandLine) DeleteWord() {
	i := c.cursor
	for i > 0 && unicode.IsSpace(c.buffer[i-1]) {
		i--
	}
	if i > 0 && isWordRune(c.buffer[i-1]) {
		for i > 0 && isWordRune(c.buffer[i-1]) {
			i--
		}
	} else if i > 0 {
		i--
	}
	c.buffer = slices.Delete(c.buffer, i, c.cursor)
	c.cursor = i
}

// DeleteToStart deletes everything before the cursor (Ctrl-U).
func (c *CommandLine) DeleteToStart() {
	c.buffer = slices.Delete(c.buffer, 0, c.cursor)
	c.cursor = 0
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// MoveCursor moves the cursor by delta runes, clamped to the text.
func (c *CommandLine) MoveCursor(delta int) {
	c.cursor = max(0, min(len(c.buffer), c.cursor+delta))
}

// Home moves the cursor to the start.
func (c *CommandLine) Home() { c.cursor = 0 }

// End moves the cursor past the last rune.
func (c *CommandLine) End() { c.cursor = len(c.buffer) }

func (c *CommandLine) history() *[]string {
	if c.kind == CommandEx {
		return &c.exHistory
	}
	return &c.searchHistory
}

// History returns the history for the current kind, oldest first.
func (c *CommandLine) History() []string {
	return slices.Clone(*c.history())
}

// AddHistory records an executed line. A repeated entry moves to the end.
func (c *CommandLine) AddHistory(line string) {
	if line == "" {
		return
	}
	h := c.history()
	*h = slices.DeleteFunc(*h, func(s string) bool { return s == line })
	*h = append(*h, line)
	if over := len(*h) - c.historySize; over > 0 {
		*h = slices.Delete(*h, 0, over)
	}
}

// Older replaces the text with the previous history entry that starts with
// the text typed before browsing began. It returns false at the oldest match.
func (c *CommandLine) Older() bool {
	h := *c.history()
	if c.historyIndex == -1 {
		c.savedBuffer = slices.Clone(c.buffer)
	}
	prefix := string(c.savedBuffer)
	start := c.historyIndex
	if start == -1 {
		start = len(h)
	}
	for i := start - 1; i >= 0; i-- {
		if strings.HasPrefix(h[i], prefix) {
			c.show(i, h[i])
			return true
		}
	}
	return false
}

// Newer moves toward the typed text again; past the newest match it
// restores what was typed.
func (c *CommandLine) Newer() bool {
	if c.historyIndex == -1 {
		return false
	}
	h := *c.history()
	prefix := string(c.savedBuffer)
	for i := c.historyIndex + 1; i < len(h); i++ {
		if strings.HasPrefix(h[i], prefix) {
			c.show(i, h[i])
			return true
		}
	}
	c.buffer = slices.Clone(c.savedBuffer)
	c.cursor = len(c.buffer)
	c.historyIndex = -1
	c.savedBuffer = nil
	return true
}

func (c *CommandLine) show(idx int, s string) {
	c.historyIndex = idx
	c.buffer = []rune(s)
	c.cursor = len(c.buffer)
}
