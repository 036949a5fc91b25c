package motion

import (
	"github.com/dshills/vimcore/internal/engine/buffer"
	"github.com/dshills/vimcore/internal/engine/grapheme"
)

type classifier func(string) grapheme.Class

func classAt(text buffer.Reader, p buffer.Position, class classifier) grapheme.Class {
	if buffer.IsBreak(text, p) {
		return grapheme.Whitespace
	}
	return class(grapheme.At(text.Line(p.Line), p.Col))
}

func isEmptyAt(text buffer.Reader, p buffer.Position) bool {
	return p.Col == 0 && buffer.IsEmptyLine(text, p.Line)
}

// wordForward moves to the start of the next word. Empty lines count as
// words. At the end of the text it stops on the final line break cell,
// which the caller clamps.
func wordForward(ctx Context, p buffer.Position, class classifier) buffer.Position {
	text := ctx.Text
	start := p
	cls := classAt(text, p, class)
	if cls != grapheme.Whitespace {
		for {
			next, ok := buffer.Next(text, p)
			if !ok {
				return p
			}
			p = next
			if buffer.IsBreak(text, p) || classAt(text, p, class) != cls {
				break
			}
		}
	}
	for classAt(text, p, class) == grapheme.Whitespace {
		if p != start && isEmptyAt(text, p) {
			return p
		}
		next, ok := buffer.Next(text, p)
		if !ok {
			return p
		}
		p = next
	}
	return p
}

// wordBackward moves to the start of the current or previous word.
func wordBackward(text buffer.Reader, p buffer.Position, class classifier) buffer.Position {
	prev, ok := buffer.Prev(text, p)
	if !ok {
		return p
	}
	p = prev
	for classAt(text, p, class) == grapheme.Whitespace {
		if isEmptyAt(text, p) {
			return p
		}
		prev, ok := buffer.Prev(text, p)
		if !ok {
			return p
		}
		p = prev
	}
	cls := classAt(text, p, class)
	for {
		prev, ok := buffer.Prev(text, p)
		if !ok || buffer.IsBreak(text, prev) || classAt(text, prev, class) != cls {
			return p
		}
		p = prev
	}
}

// wordEnd moves to the last grapheme of the current or next word.
func wordEnd(text buffer.Reader, p buffer.Position, class classifier) buffer.Position {
	next, ok := buffer.Next(text, p)
	if !ok {
		return p
	}
	p = next
	for classAt(text, p, class) == grapheme.Whitespace {
		next, ok := buffer.Next(text, p)
		if !ok {
			return p
		}
		p = next
	}
	cls := classAt(text, p, class)
	for {
		next, ok := buffer.Next(text, p)
		if !ok || buffer.IsBreak(text, next) || classAt(text, next, class) != cls {
			return p
		}
		p = next
	}
}

// wordEndBackward moves to the last grapheme of the previous word.
func wordEndBackward(text buffer.Reader, p buffer.Position, class classifier) buffer.Position {
	cls := classAt(text, p, class)
	for {
		prev, ok := buffer.Prev(text, p)
		if !ok {
			return p
		}
		p = prev
		if buffer.IsBreak(text, p) || classAt(text, p, class) != cls {
			break
		}
	}
	for classAt(text, p, class) == grapheme.Whitespace {
		if isEmptyAt(text, p) {
			return p
		}
		prev, ok := buffer.Prev(text, p)
		if !ok {
			return p
		}
		p = prev
	}
	return p
}
