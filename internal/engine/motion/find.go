package motion

import (
	"unicode/utf8"

	"github.com/dshills/vimcore/internal/engine/buffer"
	"github.com/dshills/vimcore/internal/engine/grapheme"
)

// findChar locates the count-th occurrence of m.Char on the cursor line.
func findChar(text buffer.Reader, p buffer.Position, m Motion, count int) (buffer.Position, bool) {
	cells := grapheme.Split(text.Line(p.Line))
	target := string(m.Char)
	forward := m.Kind == FindCharForward || m.Kind == TillCharForward
	till := m.Kind == TillCharForward || m.Kind == TillCharBackward

	col := p.Col
	if till && m.Repeat {
		// Step over the match the previous till stopped in front of.
		if forward {
			col++
		} else {
			col--
		}
	}
	found := -1
	for range count {
		i := col
		for {
			if forward {
				i++
			} else {
				i--
			}
			if i < 0 || i >= len(cells) {
				return p, false
			}
			if matchesChar(cells[i], target) {
				break
			}
		}
		col = i
		found = i
	}
	if till {
		if forward {
			found--
		} else {
			found++
		}
	}
	return buffer.Position{Line: p.Line, Col: found}, true
}

// matchesChar compares a cluster against a typed character, ignoring any
// combining marks after the base rune.
func matchesChar(cluster, target string) bool {
	if cluster == target {
		return true
	}
	r, _ := utf8.DecodeRuneInString(cluster)
	return cluster != "" && string(r) == target
}

var bracketPairs = map[string]struct {
	match   string
	forward bool
}{
	"(": {")", true},
	")": {"(", false},
	"[": {"]", true},
	"]": {"[", false},
	"{": {"}", true},
	"}": {"{", false},
}

// matchBracket finds the first bracket at or after the cursor on its line
// and jumps to its partner, which may be on another line.
func matchBracket(text buffer.Reader, p buffer.Position) (buffer.Position, bool) {
	cells := grapheme.Split(text.Line(p.Line))
	start := -1
	for i := p.Col; i < len(cells); i++ {
		if _, ok := bracketPairs[cells[i]]; ok {
			start = i
			break
		}
	}
	if start < 0 {
		return p, false
	}
	open := cells[start]
	pair := bracketPairs[open]
	pos := buffer.Position{Line: p.Line, Col: start}
	depth := 1
	for {
		var ok bool
		if pair.forward {
			pos, ok = buffer.Next(text, pos)
		} else {
			pos, ok = buffer.Prev(text, pos)
		}
		if !ok {
			return p, false
		}
		switch buffer.CellAt(text, pos) {
		case open:
			depth++
		case pair.match:
			depth--
			if depth == 0 {
				return pos, true
			}
		}
	}
}
