package input

import (
	"github.com/dshills/vimcore/internal/engine/motion"
	"github.com/dshills/vimcore/internal/input/intent"
	"github.com/dshills/vimcore/internal/input/key"
	"github.com/dshills/vimcore/internal/input/mode"
	"github.com/dshills/vimcore/internal/input/vim"
)

// normalPrefixes are keys that wait for one more key in Normal mode.
var normalPrefixes = map[rune]mode.Prefix{
	'g':  mode.PrefixG,
	'z':  mode.PrefixZ,
	'm':  mode.PrefixMarkSet,
	'\'': mode.PrefixMarkLine,
	'`':  mode.PrefixMarkExact,
	'"':  mode.PrefixRegister,
	'@':  mode.PrefixMacroPlay,
	'q':  mode.PrefixMacroRecord,
	'r':  mode.PrefixReplaceChar,
}

var insertKeys = map[rune]intent.InsertAt{
	'i': intent.InsertBefore,
	'a': intent.InsertAfter,
	'I': intent.InsertLineStart,
	'A': intent.InsertLineEnd,
	'o': intent.InsertOpenBelow,
	'O': intent.InsertOpenAbove,
}

var ctrlScrolls = map[rune]intent.ScrollKind{
	'd': intent.ScrollHalfDown,
	'u': intent.ScrollHalfUp,
	'f': intent.ScrollPageDown,
	'b': intent.ScrollPageUp,
	'e': intent.ScrollLineDown,
	'y': intent.ScrollLineUp,
}

var specialScrolls = map[key.Key]intent.ScrollKind{
	key.KeyPageDown: intent.ScrollPageDown,
	key.KeyPageUp:   intent.ScrollPageUp,
}

// shortcuts are single keys that stand for an operator over a motion.
var shortcuts = map[rune]func(count int) intent.Intent{
	'x': func(n int) intent.Intent { return intent.Apply(vim.OpDelete, motion.Motion{Kind: motion.Right}, n) },
	'X': func(n int) intent.Intent { return intent.Apply(vim.OpDelete, motion.Motion{Kind: motion.Left}, n) },
	'D': func(n int) intent.Intent { return intent.Apply(vim.OpDelete, motion.Motion{Kind: motion.LineEnd}, n) },
	'C': func(n int) intent.Intent { return intent.Apply(vim.OpChange, motion.Motion{Kind: motion.LineEnd}, n) },
	's': func(n int) intent.Intent { return intent.Apply(vim.OpChange, motion.Motion{Kind: motion.Right}, n) },
	'S': func(n int) intent.Intent { return intent.ApplyLines(vim.OpChange, n) },
	'Y': func(n int) intent.Intent { return intent.ApplyLines(vim.OpYank, n) },
}

// simple maps keys whose intent only needs the count.
var simple = map[rune]intent.Kind{
	'u': intent.Undo,
	'.': intent.Repeat,
	'J': intent.Join,
	'~': intent.ToggleCaseChar,
	'n': intent.SearchNext,
	'N': intent.SearchPrev,
}

func (r *Resolver) normal(st *mode.State, ev key.Event) Result {
	if res, ok := r.count(st, ev); ok {
		return res
	}
	n := st.Count.Raw()

	if res, ok := r.motion(st, ev); ok {
		return res
	}

	if ev.Key == key.KeyRune && ev.Modifiers == key.ModCtrl {
		return r.normalCtrl(st, ev, n)
	}
	switch ev.Key {
	case key.KeyDelete:
		return r.complete(st, shortcuts['x'](n))
	case key.KeyInsert:
		return r.complete(st, intent.Intent{Kind: intent.EnterInsert, InsertAt: intent.InsertBefore, Count: n})
	case key.KeyTab:
		return r.complete(st, intent.Intent{Kind: intent.JumpForward, Count: n})
	}
	if sk, ok := specialScrolls[ev.Key]; ok && ev.Modifiers == key.ModNone {
		return r.complete(st, intent.Intent{Kind: intent.Scroll, Scroll: sk, Count: n})
	}
	if !ev.IsChar() {
		return r.unhandled(st, ev)
	}

	c := ev.Rune
	if op, ok := vim.OperatorForKey(c); ok {
		return r.complete(st, intent.Intent{Kind: intent.EnterOperatorPending, Operator: op, Count: n})
	}
	if c == 'q' && st.Recording {
		return r.complete(st, intent.Intent{Kind: intent.MacroStop})
	}
	if p, ok := normalPrefixes[c]; ok {
		return r.pending(st, p, ev)
	}
	if at, ok := insertKeys[c]; ok {
		return r.complete(st, intent.Intent{Kind: intent.EnterInsert, InsertAt: at, Count: n})
	}
	if f, ok := shortcuts[c]; ok {
		return r.complete(st, f(n))
	}
	if k, ok := simple[c]; ok {
		return r.complete(st, intent.Intent{Kind: k, Count: n})
	}

	switch c {
	case 'v':
		return r.complete(st, intent.Intent{Kind: intent.EnterVisual, Visual: mode.VisualChar})
	case 'V':
		return r.complete(st, intent.Intent{Kind: intent.EnterVisual, Visual: mode.VisualLine})
	case ':':
		return r.complete(st, intent.Intent{Kind: intent.EnterCommand, Command: mode.CommandEx})
	case '/':
		return r.complete(st, intent.Intent{Kind: intent.EnterCommand, Command: mode.CommandSearchForward})
	case '?':
		return r.complete(st, intent.Intent{Kind: intent.EnterCommand, Command: mode.CommandSearchBackward})
	case 'R':
		return r.complete(st, intent.Intent{Kind: intent.EnterReplace, Count: n})
	case 'p', 'P':
		return r.complete(st, intent.Intent{Kind: intent.Put, Count: n, Before: c == 'P'})
	case '*', '#':
		return r.complete(st, intent.Intent{Kind: intent.SearchWord, Count: n, Before: c == '#'})
	case ';', ',':
		return r.complete(st, intent.Intent{Kind: intent.RepeatFind, Count: n, Before: c == ','})
	}
	return r.unhandled(st, ev)
}

func (r *Resolver) normalCtrl(st *mode.State, ev key.Event, n int) Result {
	if sk, ok := ctrlScrolls[ev.Rune]; ok {
		return r.complete(st, intent.Intent{Kind: intent.Scroll, Scroll: sk, Count: n})
	}
	switch ev.Rune {
	case 'r':
		return r.complete(st, intent.Intent{Kind: intent.Redo, Count: n})
	case 'o':
		return r.complete(st, intent.Intent{Kind: intent.JumpBack, Count: n})
	case 'i':
		return r.complete(st, intent.Intent{Kind: intent.JumpForward, Count: n})
	case 'a':
		return r.complete(st, intent.Intent{Kind: intent.Increment, Count: n})
	case 'x':
		return r.complete(st, intent.Intent{Kind: intent.Decrement, Count: n})
	case 'v':
		return r.complete(st, intent.Intent{Kind: intent.EnterVisual, Visual: mode.VisualBlock})
	case 'w':
		return r.pending(st, mode.PrefixWindow, ev)
	}
	return r.unhandled(st, ev)
}

// motion handles motion keys shared by Normal and Visual mode. Find and
// till motions open the find prefix.
func (r *Resolver) motion(st *mode.State, ev key.Event) (Result, bool) {
	k, ok := vim.MotionForKey(ev)
	if !ok {
		return Result{}, false
	}
	if k.NeedsChar() {
		return r.pending(st, mode.PrefixFind, ev), true
	}
	k = vim.CountedMotion(k, st.Count.IsSet())
	return r.complete(st, intent.Move(k, st.Count.Raw())), true
}

func (r *Resolver) visual(st *mode.State, ev key.Event) Result {
	if res, ok := r.count(st, ev); ok {
		return res
	}
	n := st.Count.Raw()

	if res, ok := r.motion(st, ev); ok {
		return res
	}
	if ev.IsCtrl('v') {
		return r.switchVisual(st, mode.VisualBlock)
	}
	if ev.Key == key.KeyDelete {
		return r.complete(st, intent.Intent{Kind: intent.VisualOperator, Operator: vim.OpDelete})
	}
	if !ev.IsChar() {
		return r.unhandled(st, ev)
	}

	c := ev.Rune
	switch c {
	case 'i', 'a':
		return r.pending(st, mode.PrefixObject, ev)
	case 'g':
		return r.pending(st, mode.PrefixG, ev)
	case '"':
		return r.pending(st, mode.PrefixRegister, ev)
	case 'r':
		return r.pending(st, mode.PrefixReplaceChar, ev)
	case 'v':
		return r.switchVisual(st, mode.VisualChar)
	case 'V':
		return r.switchVisual(st, mode.VisualLine)
	case 'o', 'O':
		return r.complete(st, intent.Intent{Kind: intent.VisualSwapEnds})
	case 'J':
		return r.complete(st, intent.Intent{Kind: intent.Join, Count: n})
	case 'p', 'P':
		return r.complete(st, intent.Intent{Kind: intent.Put, Count: n, Before: c == 'P'})
	case ':':
		return r.complete(st, intent.Intent{Kind: intent.EnterCommand, Command: mode.CommandEx})
	case 'n':
		return r.complete(st, intent.Intent{Kind: intent.SearchNext, Count: n})
	case 'N':
		return r.complete(st, intent.Intent{Kind: intent.SearchPrev, Count: n})
	}
	if op, ok := vim.VisualOperatorForKey(c); ok {
		it := intent.Intent{Kind: intent.VisualOperator, Operator: op}
		switch c {
		case 'X', 'D', 'Y', 'S', 'C', 'R':
			it.Linewise = true
		}
		return r.complete(st, it)
	}
	return r.unhandled(st, ev)
}

// switchVisual leaves Visual mode when v is pressed in the same kind and
// switches kind otherwise.
func (r *Resolver) switchVisual(st *mode.State, v mode.VisualKind) Result {
	if st.Mode.Visual == v {
		return r.complete(st, intent.Intent{Kind: intent.Escape})
	}
	return r.complete(st, intent.Intent{Kind: intent.EnterVisual, Visual: v})
}
