package input

import (
	"github.com/dshills/vimcore/internal/engine/motion"
	"github.com/dshills/vimcore/internal/engine/textobject"
	"github.com/dshills/vimcore/internal/input/intent"
	"github.com/dshills/vimcore/internal/input/key"
	"github.com/dshills/vimcore/internal/input/macro"
	"github.com/dshills/vimcore/internal/input/mode"
	"github.com/dshills/vimcore/internal/input/register"
	"github.com/dshills/vimcore/internal/input/vim"
)

// operatorPending completes the operator in st.Mode with a motion, a text
// object, or the doubled operator key for whole lines.
func (r *Resolver) operatorPending(st *mode.State, ev key.Event) Result {
	if res, ok := r.count(st, ev); ok {
		return res
	}
	op := st.Mode.Operator

	if ev.IsChar() {
		switch c := ev.Rune; {
		case op.IsDoubled(c), op == vim.OpFormat && c == '=':
			return r.completeOperator(st, intent.ApplyLines(op, operatorCount(st)))
		case c == 'i' || c == 'a':
			return r.pending(st, mode.PrefixObject, ev)
		case c == 'g':
			return r.pending(st, mode.PrefixG, ev)
		}
	}

	k, ok := vim.MotionForKey(ev)
	if !ok {
		return r.unhandled(st, ev)
	}
	if k.NeedsChar() {
		return r.pending(st, mode.PrefixFind, ev)
	}
	return r.applyMotion(st, k)
}

func (r *Resolver) applyMotion(st *mode.State, k motion.Kind) Result {
	n := operatorCount(st)
	k = vim.CountedMotion(k, n > 0)
	return r.completeOperator(st, intent.Apply(st.Mode.Operator, motion.Motion{Kind: k}, n))
}

// completeOperator attaches the register typed before the operator.
func (r *Resolver) completeOperator(st *mode.State, it intent.Intent) Result {
	if it.Register == 0 {
		it.Register = st.OpRegister
	}
	return r.complete(st, it)
}

// dispatchPrefix interprets the key after a pending prefix.
func (r *Resolver) dispatchPrefix(st *mode.State, ev key.Event) Result {
	n := st.Count.Raw()
	c, isChar := charOf(ev)

	switch st.Pending {
	case mode.PrefixG:
		return r.gPrefix(st, ev)

	case mode.PrefixZ:
		if sk, ok := zScroll(ev); ok {
			return r.complete(st, intent.Intent{Kind: intent.Scroll, Scroll: sk, Count: n})
		}

	case mode.PrefixMarkSet:
		if ev.IsChar() && isMarkName(c) {
			return r.complete(st, intent.Intent{Kind: intent.SetMark, Char: c})
		}

	case mode.PrefixMarkLine, mode.PrefixMarkExact:
		if ev.IsChar() && isMarkName(c) {
			return r.complete(st, intent.Intent{
				Kind:     intent.GotoMark,
				Char:     c,
				Linewise: st.Pending == mode.PrefixMarkLine,
			})
		}

	case mode.PrefixRegister:
		if ev.IsChar() && register.IsValid(c) {
			// The count survives: "2"ayy" yanks two lines.
			st.Register = c
			st.Pending = mode.PrefixNone
			st.PendingKey = 0
			st.PushKey(ev)
			return Result{Status: Pending, Pending: st.PendingKeys()}
		}

	case mode.PrefixMacroPlay:
		if ev.IsChar() && (macro.IsValidRegister(c) || c == '@' || c == ':') {
			return r.complete(st, intent.Intent{Kind: intent.MacroPlay, Register: c, Count: n})
		}

	case mode.PrefixMacroRecord:
		if ev.IsChar() && macro.IsValidRegister(c) {
			return r.complete(st, intent.Intent{Kind: intent.MacroStart, Register: c})
		}

	case mode.PrefixFind:
		if isChar {
			return r.find(st, c)
		}

	case mode.PrefixObject:
		if ev.IsChar() {
			if obj, ok := objectFor(st.PendingKey, c); ok {
				if st.Mode.Kind == mode.KindOperatorPending {
					return r.completeOperator(st, intent.ApplyObject(st.Mode.Operator, obj))
				}
				return r.complete(st, intent.Intent{Kind: intent.SelectObject, Object: obj})
			}
		}

	case mode.PrefixReplaceChar:
		if isChar || ev.IsEnter() {
			if ev.IsEnter() {
				c = '\n'
			}
			return r.complete(st, intent.Intent{Kind: intent.ReplaceChar, Char: c, Count: n})
		}

	case mode.PrefixWindow:
		return r.complete(st, intent.Intent{Kind: intent.Window, Key: ev, Count: n})

	case mode.PrefixInsertRegister:
		if ev.IsChar() && register.IsValid(c) {
			return r.complete(st, intent.Intent{Kind: intent.InsertRegister, Register: c})
		}

	case mode.PrefixTerminal:
		st.Cancel()
		if ev.IsCtrl('n') {
			return Result{Status: Complete, Intent: intent.Intent{Kind: intent.TerminalExit}}
		}
		return Result{Status: Complete, Intent: intent.Intent{Kind: intent.TerminalInput, Key: ev}}
	}
	return r.unhandled(st, ev)
}

func (r *Resolver) gPrefix(st *mode.State, ev key.Event) Result {
	if !ev.IsChar() {
		return r.unhandled(st, ev)
	}
	c := ev.Rune
	n := st.Count.Raw()

	switch st.Mode.Kind {
	case mode.KindOperatorPending:
		op := st.Mode.Operator
		if keys := op.Keys(); len(keys) == 2 && keys[0] == 'g' && op.IsDoubled(c) {
			return r.completeOperator(st, intent.ApplyLines(op, operatorCount(st)))
		}
		if k, ok := vim.GMotionForKey(c); ok {
			return r.applyMotion(st, k)
		}
		return r.unhandled(st, ev)

	case mode.KindVisual:
		if op, ok := vim.GOperatorForKey(c); ok {
			return r.complete(st, intent.Intent{Kind: intent.VisualOperator, Operator: op})
		}
		switch c {
		case 'v':
			return r.complete(st, intent.Intent{Kind: intent.ReselectVisual})
		case 'J':
			return r.complete(st, intent.Intent{Kind: intent.JoinRaw, Count: n})
		}
	default:
		if op, ok := vim.GOperatorForKey(c); ok {
			return r.complete(st, intent.Intent{Kind: intent.EnterOperatorPending, Operator: op, Count: n})
		}
		switch c {
		case 'v':
			return r.complete(st, intent.Intent{Kind: intent.ReselectVisual})
		case 'i':
			return r.complete(st, intent.Intent{Kind: intent.EnterInsert, InsertAt: intent.InsertLastPos, Count: n})
		case 'I':
			return r.complete(st, intent.Intent{Kind: intent.EnterInsert, InsertAt: intent.InsertColumnZero, Count: n})
		case 'J':
			return r.complete(st, intent.Intent{Kind: intent.JoinRaw, Count: n})
		case ';':
			return r.complete(st, intent.Intent{Kind: intent.ChangeBack, Count: n})
		case ',':
			return r.complete(st, intent.Intent{Kind: intent.ChangeForward, Count: n})
		}
	}

	if k, ok := vim.GMotionForKey(c); ok {
		k = vim.CountedMotion(k, st.Count.IsSet())
		return r.complete(st, intent.Move(k, n))
	}
	return r.unhandled(st, ev)
}

func (r *Resolver) find(st *mode.State, c rune) Result {
	k, _ := vim.MotionForKey(key.Char(st.PendingKey))
	m := motion.Motion{Kind: k, Char: c}
	if st.Mode.Kind == mode.KindOperatorPending {
		return r.completeOperator(st, intent.Apply(st.Mode.Operator, m, operatorCount(st)))
	}
	it := intent.Move(k, st.Count.Raw())
	it.Motion = m
	return r.complete(st, it)
}

func zScroll(ev key.Event) (intent.ScrollKind, bool) {
	if ev.IsEnter() {
		return intent.ScrollCursorTop, true
	}
	if !ev.IsChar() {
		return 0, false
	}
	switch ev.Rune {
	case 'z', '.':
		return intent.ScrollCursorCenter, true
	case 't':
		return intent.ScrollCursorTop, true
	case 'b', '-':
		return intent.ScrollCursorBottom, true
	}
	return 0, false
}

func objectFor(scopeKey, c rune) (textobject.Object, bool) {
	scope, ok := vim.ScopeForKey(scopeKey)
	if !ok {
		return textobject.Object{}, false
	}
	kind, ok := vim.TextObjectForKey(c)
	if !ok {
		return textobject.Object{}, false
	}
	return textobject.Object{Kind: kind, Scope: scope}, true
}

// charOf returns the character a find or replace targets. Tab counts as a
// character.
func charOf(ev key.Event) (rune, bool) {
	if ev.IsTab() {
		return '\t', true
	}
	if ev.IsChar() {
		return ev.Rune, true
	}
	return 0, false
}

// isMarkName reports whether c names a mark: a letter, a digit, or one of
// the automatic marks.
func isMarkName(c rune) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	}
	switch c {
	case '\'', '`', '[', ']', '<', '>', '.', '^', '"':
		return true
	}
	return false
}
