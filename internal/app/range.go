package app

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dshills/vimcore/internal/dispatcher"
)

// lineRange is an inclusive range of zero-based lines.
type lineRange struct {
	from, to int
}

func (r lineRange) count() int {
	return r.to - r.from + 1
}

func (r lineRange) String() string {
	return fmt.Sprintf("%d,%d", r.from+1, r.to+1)
}

// parseRange parses the line range at the start of an Ex command line:
// "%", or one or two addresses separated by "," or ";". With ";" the
// second address is relative to the first. Without a range the current
// line is returned and hasRange is false.
func parseRange(st *dispatcher.EditorState, s string) (r lineRange, rest string, hasRange bool, err error) {
	s = strings.TrimLeft(s, " \t:")
	cur := st.Cursor.Pos.Line
	last := st.Buffer.LineCount() - 1

	if strings.HasPrefix(s, "%") {
		return lineRange{0, last}, s[1:], true, nil
	}

	a, rest, ok, err := parseAddress(st, s, cur)
	if err != nil {
		return r, s, false, err
	}
	if !ok && !strings.HasPrefix(rest, ",") && !strings.HasPrefix(rest, ";") {
		return lineRange{cur, cur}, s, false, nil
	}
	if !ok {
		a = cur
	}
	r = lineRange{a, a}

	rest = strings.TrimLeft(rest, " \t")
	if rest != "" && (rest[0] == ',' || rest[0] == ';') {
		base := cur
		if rest[0] == ';' {
			base = a
		}
		b, after, ok, err := parseAddress(st, rest[1:], base)
		if err != nil {
			return r, s, false, err
		}
		if !ok {
			b = base
		}
		r.to, rest = b, after
	}

	if r.from > r.to {
		r.from, r.to = r.to, r.from
	}
	r.from = max(r.from, 0)
	r.to = max(r.to, 0)
	if r.to > last {
		return r, s, false, ErrInvalidRange
	}
	return r, rest, true, nil
}

// parseAddress parses one line address with trailing +N/-N offsets. cur
// is the line "." refers to.
func parseAddress(st *dispatcher.EditorState, s string, cur int) (line int, rest string, ok bool, err error) {
	s = strings.TrimLeft(s, " \t")
	line = cur

	switch {
	case s == "":
		return cur, s, false, nil
	case s[0] == '.':
		s, ok = s[1:], true
	case s[0] == '$':
		line, s, ok = st.Buffer.LineCount()-1, s[1:], true
	case s[0] >= '0' && s[0] <= '9':
		n, after := leadingNumber(s)
		line, s, ok = n-1, after, true
	case s[0] == '\'':
		if len(s) < 2 {
			return cur, s, false, ErrInvalidAddress
		}
		p, set := st.Mark(rune(s[1]))
		if !set {
			return cur, s, false, dispatcher.ErrMarkNotSet
		}
		line, s, ok = p.Line, s[2:], true
	}

	for s != "" && (s[0] == '+' || s[0] == '-') {
		sign := 1
		if s[0] == '-' {
			sign = -1
		}
		n, after := leadingNumber(s[1:])
		if after == s[1:] {
			n = 1
		}
		line += sign * n
		s, ok = after, true
	}
	if line < -1 {
		return cur, s, false, ErrInvalidRange
	}
	return line, s, ok, nil
}

// leadingNumber parses the decimal digits at the start of s.
func leadingNumber(s string) (int, string) {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 {
		return 0, s
	}
	n, err := strconv.Atoi(s[:i])
	if err != nil {
		return 0, s
	}
	return n, s[i:]
}
