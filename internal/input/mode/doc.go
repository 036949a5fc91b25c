// Package mode provides the modal editing state of a window.
//
// A Mode is a small comparable value: a Kind plus the variant data some
// kinds carry (the visual kind, the command-line kind, the pending
// operator). State owns the current and previous mode together with the
// per-keystroke bookkeeping the resolver needs between keys: the count
// accumulator, the pending prefix, the selected register, the visual
// anchor and the command-line buffer.
//
// # Transitions
//
//	Normal ◀──▶ Insert ──▶ InsertNormal ──▶ Insert
//	   ▲  ◀──▶ Visual(char|line|block)
//	   │  ◀──▶ Command(ex|search)
//	   │  ◀──▶ Replace ◀──▶ Insert
//	   │  ◀──▶ OperatorPending(op)
//	   └──── any mode
//
// Transition rejects edges not in this graph and reports false. Every
// accepted transition clears the pending prefix and the count. Leaving a
// visual mode archives the selection for "gv"; entering Command mode resets
// the command line.
//
// State is not safe for concurrent use. It is owned by the single goroutine
// that resolves keys and dispatches intents.
package mode
