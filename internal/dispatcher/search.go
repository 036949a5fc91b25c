package dispatcher

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dshills/vimcore/internal/engine/buffer"
	"github.com/dshills/vimcore/internal/engine/grapheme"
	"github.com/dshills/vimcore/internal/input/intent"
	"github.com/dshills/vimcore/internal/input/mode"
)

// RegexpSearcher is the default Searcher. Patterns use Go regexp syntax
// with Vim's \< and \> word boundaries; a pattern that does not compile is
// searched for literally. Matches never span lines.
type RegexpSearcher struct {
	// IgnoreCase makes every search case-insensitive.
	IgnoreCase bool
}

var vimBoundary = strings.NewReplacer(`\<`, `\b`, `\>`, `\b`)

// Compile translates pattern into a regexp.
func (s RegexpSearcher) Compile(pattern string) *regexp.Regexp {
	expr := vimBoundary.Replace(pattern)
	if s.IgnoreCase || strings.HasPrefix(expr, `\c`) {
		expr = "(?i)" + strings.TrimPrefix(expr, `\c`)
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		re = regexp.MustCompile(regexp.QuoteMeta(pattern))
	}
	return re
}

// Find implements Searcher.
func (s RegexpSearcher) Find(text buffer.Reader, from buffer.Position, pattern string, forward, wrap bool) (buffer.Position, bool, error) {
	if pattern == "" {
		return from, false, ErrNoPreviousPattern
	}
	re := s.Compile(pattern)
	n := text.LineCount()
	matches := func(line int) []int {
		s := text.Line(line)
		var cols []int
		for _, m := range re.FindAllStringIndex(s, -1) {
			cols = append(cols, grapheme.Index(s, m[0]))
		}
		return cols
	}

	for i := 0; i <= n; i++ {
		var line int
		if forward {
			line = from.Line + i
		} else {
			line = from.Line - i
		}
		if line < 0 || line >= n {
			if !wrap {
				break
			}
			line = (line%n + n) % n
		}
		cols := matches(line)
		if forward {
			for _, c := range cols {
				if i > 0 || c > from.Col {
					if i == n && c > from.Col {
						break
					}
					return buffer.Position{Line: line, Col: c}, true, nil
				}
			}
		} else {
			for j := len(cols) - 1; j >= 0; j-- {
				c := cols[j]
				if i > 0 || c < from.Col {
					if i == n && c < from.Col {
						break
					}
					return buffer.Position{Line: line, Col: c}, true, nil
				}
			}
		}
	}
	return from, false, nil
}

func (d *Dispatcher) search(st *EditorState, it intent.Intent, forward bool) Result {
	pattern := it.Text
	if st.Mode.Mode.Kind == mode.KindCommand {
		if pattern != "" {
			st.Mode.CommandLine.AddHistory(pattern)
		}
		d.leaveCommand(st)
	}
	if pattern == "" {
		if !st.search.set {
			return Error(ErrNoPreviousPattern)
		}
		pattern = st.search.pattern
	}
	st.search = searchState{pattern: pattern, forward: forward, set: true}
	st.Registers.SetLastSearch(pattern)
	return d.searchFrom(st, st.Cursor.Pos, pattern, forward, it.N())
}

func (d *Dispatcher) searchNext(st *EditorState, it intent.Intent, reverse bool) Result {
	if !st.search.set {
		return Error(ErrNoPreviousPattern)
	}
	forward := st.search.forward
	if reverse {
		forward = !forward
	}
	return d.searchFrom(st, st.Cursor.Pos, st.search.pattern, forward, it.N())
}

// searchWord searches for the keyword under or after the cursor.
func (d *Dispatcher) searchWord(st *EditorState, it intent.Intent) Result {
	line := st.Buffer.Line(st.Cursor.Pos.Line)
	cells := grapheme.Split(line)
	i := st.Cursor.Pos.Col
	for i < len(cells) && grapheme.ClassOf(cells[i]) != grapheme.Word {
		i++
	}
	if i >= len(cells) {
		return Errorf("E348: No string under cursor")
	}
	start, end := i, i
	for start > 0 && grapheme.ClassOf(cells[start-1]) == grapheme.Word {
		start--
	}
	for end+1 < len(cells) && grapheme.ClassOf(cells[end+1]) == grapheme.Word {
		end++
	}
	word := strings.Join(cells[start:end+1], "")
	pattern := `\<` + regexp.QuoteMeta(word) + `\>`
	forward := !it.Before
	st.search = searchState{pattern: pattern, forward: forward, set: true}
	st.Registers.SetLastSearch(pattern)
	// Start from the word's beginning so that # skips the word itself.
	from := buffer.Position{Line: st.Cursor.Pos.Line, Col: start}
	return d.searchFrom(st, from, pattern, forward, it.N())
}

func (d *Dispatcher) searchFrom(st *EditorState, from buffer.Position, pattern string, forward bool, count int) Result {
	pos := from
	for range count {
		next, ok, err := d.searcher.Find(st.Buffer, pos, pattern, forward, st.Options.WrapScan)
		if err != nil {
			return Error(err)
		}
		if !ok {
			return Error(fmt.Errorf("%w: %s", ErrPatternNotFound, pattern))
		}
		pos = next
	}
	wrapped := (forward && pos.Compare(from) <= 0) || (!forward && pos.Compare(from) >= 0)
	st.moveTo(pos)
	if wrapped {
		if forward {
			return SuccessWithMessage("search hit BOTTOM, continuing at TOP")
		}
		return SuccessWithMessage("search hit TOP, continuing at BOTTOM")
	}
	return SuccessWithMessage(searchPrompt(forward) + pattern)
}

func searchPrompt(forward bool) string {
	if forward {
		return "/"
	}
	return "?"
}
