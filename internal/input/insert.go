package input

import (
	"github.com/dshills/vimcore/internal/input/intent"
	"github.com/dshills/vimcore/internal/input/key"
	"github.com/dshills/vimcore/internal/input/mode"
	"github.com/dshills/vimcore/internal/input/vim"
)

// insertMotion maps the keys that move the cursor without leaving Insert or
// Replace mode.
func insertMotion(ev key.Event) (intent.Intent, bool) {
	if ev.Key == key.KeyRune || ev.Key == key.KeyEnter || ev.Key == key.KeyBackspace {
		return intent.Intent{}, false
	}
	k, ok := vim.MotionForKey(ev)
	if !ok {
		return intent.Intent{}, false
	}
	return intent.Move(k, 0), true
}

func (r *Resolver) insert(st *mode.State, ev key.Event) Result {
	switch {
	case ev.IsChar():
		return r.complete(st, intent.Intent{Kind: intent.InsertText, Text: string(ev.Rune)})
	case ev.IsEnter(), ev.IsCtrl('j'), ev.IsCtrl('m'):
		return r.complete(st, intent.Intent{Kind: intent.InsertNewline})
	case ev.IsTab(), ev.IsCtrl('i'):
		return r.complete(st, intent.Intent{Kind: intent.InsertText, Text: "\t"})
	case ev.IsBackspace():
		return r.complete(st, intent.Intent{Kind: intent.InsertBackspace})
	case ev.Key == key.KeyDelete:
		return r.complete(st, intent.Intent{Kind: intent.InsertDelete})
	case ev.IsCtrl('w'):
		return r.complete(st, intent.Intent{Kind: intent.InsertDeleteWord})
	case ev.IsCtrl('u'):
		return r.complete(st, intent.Intent{Kind: intent.InsertDeleteLine})
	case ev.IsCtrl('r'):
		return r.pending(st, mode.PrefixInsertRegister, ev)
	case ev.IsCtrl('o'):
		return r.complete(st, intent.Intent{Kind: intent.EnterInsertNormal})
	case ev.Key == key.KeyInsert:
		return r.complete(st, intent.Intent{Kind: intent.EnterReplace})
	}
	if it, ok := insertMotion(ev); ok {
		return r.complete(st, it)
	}
	return r.unhandled(st, ev)
}

func (r *Resolver) replace(st *mode.State, ev key.Event) Result {
	switch {
	case ev.IsChar():
		return r.complete(st, intent.Intent{Kind: intent.ReplaceText, Text: string(ev.Rune)})
	case ev.IsTab():
		return r.complete(st, intent.Intent{Kind: intent.ReplaceText, Text: "\t"})
	case ev.IsEnter():
		return r.complete(st, intent.Intent{Kind: intent.InsertNewline})
	case ev.IsBackspace():
		return r.complete(st, intent.Intent{Kind: intent.ReplaceBackspace})
	case ev.Key == key.KeyInsert:
		return r.complete(st, intent.Intent{Kind: intent.EnterInsert, InsertAt: intent.InsertBefore})
	}
	if it, ok := insertMotion(ev); ok {
		return r.complete(st, it)
	}
	return r.unhandled(st, ev)
}

// isCmdKey reports whether ev is a command-line editing key, handed to the
// dispatcher as a CmdKey intent.
func isCmdKey(ev key.Event) bool {
	switch ev.Key {
	case key.KeyBackspace, key.KeyDelete, key.KeyLeft, key.KeyRight,
		key.KeyUp, key.KeyDown, key.KeyHome, key.KeyEnd:
		return ev.Modifiers == key.ModNone
	case key.KeyRune:
		for _, c := range "hwubenp" {
			if ev.IsCtrl(c) {
				return true
			}
		}
	}
	return false
}

func (r *Resolver) command(st *mode.State, ev key.Event) Result {
	switch {
	case ev.IsChar():
		return r.complete(st, intent.Intent{Kind: intent.CmdInsert, Text: string(ev.Rune)})
	case ev.IsTab():
		return r.complete(st, intent.Intent{Kind: intent.CmdInsert, Text: "\t"})
	case ev.IsEnter(), ev.IsCtrl('m'), ev.IsCtrl('j'):
		text := st.CommandLine.Text()
		switch st.Mode.Command {
		case mode.CommandSearchForward:
			return r.complete(st, intent.Intent{Kind: intent.SearchForward, Text: text})
		case mode.CommandSearchBackward:
			return r.complete(st, intent.Intent{Kind: intent.SearchBackward, Text: text})
		}
		return r.complete(st, intent.Intent{Kind: intent.ExCommand, Text: text})
	case ev.IsCtrl('r'):
		return r.pending(st, mode.PrefixInsertRegister, ev)
	case isCmdKey(ev):
		return r.complete(st, intent.Intent{Kind: intent.CmdKey, Key: ev})
	}
	return r.unhandled(st, ev)
}

func (r *Resolver) terminal(st *mode.State, ev key.Event) Result {
	if ev.IsCtrl('\\') {
		return r.pending(st, mode.PrefixTerminal, ev)
	}
	return r.complete(st, intent.Intent{Kind: intent.TerminalInput, Key: ev})
}
