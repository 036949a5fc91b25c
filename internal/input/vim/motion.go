package vim

import (
	"github.com/dshills/vimcore/internal/engine/motion"
	"github.com/dshills/vimcore/internal/input/key"
)

// motions maps unprefixed motion keys.
var motions = map[rune]motion.Kind{
	'h': motion.Left,
	'l': motion.Right,
	' ': motion.Right,
	'k': motion.Up,
	'j': motion.Down,
	'0': motion.LineStart,
	'^': motion.FirstNonBlank,
	'$': motion.LineEnd,
	'|': motion.Column,
	'+': motion.NextLineStart,
	'-': motion.PrevLineStart,
	'_': motion.FirstNonBlank,
	'w': motion.WordForward,
	'b': motion.WordBackward,
	'e': motion.WordEnd,
	'W': motion.BigWordForward,
	'B': motion.BigWordBackward,
	'E': motion.BigWordEnd,
	'G': motion.GotoLastLine,
	'}': motion.ParagraphForward,
	'{': motion.ParagraphBackward,
	'H': motion.ScreenTop,
	'M': motion.ScreenMiddle,
	'L': motion.ScreenBottom,
	'%': motion.MatchBracket,
	'f': motion.FindCharForward,
	'F': motion.FindCharBackward,
	't': motion.TillCharForward,
	'T': motion.TillCharBackward,
}

// gMotions maps motions that follow "g".
var gMotions = map[rune]motion.Kind{
	'g': motion.GotoFirstLine,
	'j': motion.Down,
	'k': motion.Up,
	'e': motion.WordEndBackward,
	'E': motion.BigWordEndBackward,
	'0': motion.LineStart,
	'^': motion.FirstNonBlank,
	'$': motion.LineEnd,
	'_': motion.LastNonBlank,
}

// specialMotions maps non-character keys.
var specialMotions = map[key.Key]motion.Kind{
	key.KeyLeft:      motion.Left,
	key.KeyRight:     motion.Right,
	key.KeyUp:        motion.Up,
	key.KeyDown:      motion.Down,
	key.KeyHome:      motion.LineStart,
	key.KeyEnd:       motion.LineEnd,
	key.KeyEnter:     motion.NextLineStart,
	key.KeyBackspace: motion.Left,
}

// MotionForKey returns the motion an unprefixed key moves by. Find and till
// motions are returned too; callers check Kind.NeedsChar and wait for the
// target character.
func MotionForKey(ev key.Event) (motion.Kind, bool) {
	if ev.Key == key.KeyRune {
		if ev.Modifiers != key.ModNone {
			switch {
			case ev.IsCtrl('h'):
				return motion.Left, true
			case ev.IsCtrl('n'), ev.IsCtrl('j'):
				return motion.Down, true
			case ev.IsCtrl('p'):
				return motion.Up, true
			}
			return motion.None, false
		}
		k, ok := motions[ev.Rune]
		return k, ok
	}
	if ev.Modifiers != key.ModNone {
		return motion.None, false
	}
	k, ok := specialMotions[ev.Key]
	return k, ok
}

// GMotionForKey returns the motion for "g" followed by r.
func GMotionForKey(r rune) (motion.Kind, bool) {
	k, ok := gMotions[r]
	return k, ok
}

// CountedMotion applies count-dependent meaning: "5G" and "5gg" go to line
// 5 and "50%" jumps to the middle of the buffer. hasCount reports whether
// the user typed a count.
func CountedMotion(k motion.Kind, hasCount bool) motion.Kind {
	if !hasCount {
		return k
	}
	switch k {
	case motion.GotoFirstLine, motion.GotoLastLine:
		return motion.GotoLine
	case motion.MatchBracket:
		return motion.GotoPercent
	}
	return k
}

// RepeatFind returns the motion ";" (reverse false) or "," (reverse true)
// performs after the find motion last.
func RepeatFind(last motion.Motion, reverse bool) motion.Motion {
	m := last
	if reverse {
		m.Kind = last.Kind.Reverse()
	}
	m.Repeat = true
	return m
}
