package app

import (
	"fmt"
	"strings"

	"github.com/dshills/vimcore/internal/dispatcher"
	"github.com/dshills/vimcore/internal/engine/buffer"
	"github.com/dshills/vimcore/internal/engine/motion"
	"github.com/dshills/vimcore/internal/input/intent"
)

// substitution is a parsed ":s/pattern/replacement/flags".
type substitution struct {
	pattern     string
	replacement string
	global      bool
	ignoreCase  bool
	quiet       bool
}

// parseSubstitute splits the argument of :s. The first character is the
// delimiter; a delimiter escaped with a backslash is literal.
func parseSubstitute(arg string) (substitution, error) {
	var sub substitution
	if arg == "" {
		return sub, ErrArgumentRequired
	}
	delim := arg[0]
	if isWordByte(delim) || delim == ' ' || delim == '\\' || delim == '"' || delim == '|' {
		return sub, fmt.Errorf("%w: %s", ErrTrailing, arg)
	}

	var parts []string
	var cur strings.Builder
	for i := 1; i < len(arg); i++ {
		ch := arg[i]
		if ch == '\\' && i+1 < len(arg) && arg[i+1] == delim {
			cur.WriteByte(delim)
			i++
			continue
		}
		if ch == delim && len(parts) < 2 {
			parts = append(parts, cur.String())
			cur.Reset()
			continue
		}
		cur.WriteByte(ch)
	}
	parts = append(parts, cur.String())

	sub.pattern = parts[0]
	if len(parts) > 1 {
		sub.replacement = parts[1]
	}
	if len(parts) > 2 {
		for _, f := range parts[2] {
			switch f {
			case 'g':
				sub.global = true
			case 'i':
				sub.ignoreCase = true
			case 'I':
				sub.ignoreCase = false
			case 'e':
				sub.quiet = true
			case ' ':
			default:
				return sub, fmt.Errorf("%w: %s", ErrTrailing, parts[2])
			}
		}
	}
	return sub, nil
}

func isWordByte(b byte) bool {
	return b == '_' || (b >= '0' && b <= '9') || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// expandTemplate converts a Vim replacement to a regexp template: "&" and
// "\0" are the whole match, "\1" to "\9" are groups and "\&" is a literal
// ampersand.
func expandTemplate(rep string) string {
	var sb strings.Builder
	for i := 0; i < len(rep); i++ {
		ch := rep[i]
		switch {
		case ch == '\\' && i+1 < len(rep):
			i++
			next := rep[i]
			switch {
			case next >= '0' && next <= '9':
				sb.WriteString("${")
				sb.WriteByte(next)
				sb.WriteByte('}')
			case next == 't':
				sb.WriteByte('\t')
			default:
				if next == '$' {
					sb.WriteByte('$')
				}
				sb.WriteByte(next)
			}
		case ch == '&':
			sb.WriteString("${0}")
		case ch == '$':
			sb.WriteString("$$")
		default:
			sb.WriteByte(ch)
		}
	}
	return sb.String()
}

// exSubstitute replaces matches of a pattern on every line of the range
// as one undo step. An empty pattern reuses the last search pattern and an
// empty argument repeats the last substitution.
func (e *Editor) exSubstitute(ctx *dispatcher.ExContext, c exCall) error {
	st := ctx.State()

	var sub substitution
	if c.arg == "" {
		if e.lastSub == nil {
			return dispatcher.ErrNoPreviousPattern
		}
		sub = *e.lastSub
	} else {
		var err error
		if sub, err = parseSubstitute(c.arg); err != nil {
			return err
		}
	}
	if sub.pattern == "" {
		last, _, ok := st.LastSearch()
		if !ok {
			return dispatcher.ErrNoPreviousPattern
		}
		sub.pattern = last
	}
	e.lastSub = &sub
	st.Registers.SetLastSearch(sub.pattern)

	re := dispatcher.RegexpSearcher{IgnoreCase: sub.ignoreCase}.Compile(sub.pattern)
	tmpl := expandTemplate(sub.replacement)

	lines := make([]string, 0, c.rng.count())
	total, changed, lastLine := 0, 0, -1
	for i := c.rng.from; i <= c.rng.to; i++ {
		line := st.Buffer.Line(i)
		var n int
		if sub.global {
			n = len(re.FindAllStringIndex(line, -1))
			if n > 0 {
				line = re.ReplaceAllString(line, tmpl)
			}
		} else if loc := re.FindStringSubmatchIndex(line); loc != nil {
			n = 1
			dst := re.ExpandString(nil, tmpl, line, loc)
			line = line[:loc[0]] + string(dst) + line[loc[1]:]
		}
		if n > 0 {
			total += n
			changed++
			lastLine = i
		}
		lines = append(lines, line)
	}

	if total == 0 {
		if sub.quiet {
			return nil
		}
		return fmt.Errorf("%w: %s", dispatcher.ErrPatternNotFound, sub.pattern)
	}

	st.ReplaceLines(c.rng.from, c.rng.to, lines)
	st.Cursor = motion.At(buffer.Position{Line: lastLine})
	ctx.Dispatch(intent.Move(motion.FirstNonBlank, 1))
	if changed > 2 {
		ctx.SetMessage("%d substitutions on %d lines", total, changed)
	}
	return nil
}
