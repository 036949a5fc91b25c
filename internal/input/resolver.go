package input

import (
	"github.com/dshills/vimcore/internal/input/intent"
	"github.com/dshills/vimcore/internal/input/key"
	"github.com/dshills/vimcore/internal/input/mode"
	"github.com/dshills/vimcore/internal/input/vim"
	"github.com/dshills/vimcore/internal/logging"
)

// Status is the outcome of resolving one key.
type Status uint8

const (
	// Pending means the key was consumed and more input is needed.
	Pending Status = iota
	// Complete means Result.Intent is ready to dispatch.
	Complete
	// Unhandled means the key has no meaning here; pending input was dropped.
	Unhandled
)

// String returns a string representation of the status.
func (s Status) String() string {
	switch s {
	case Pending:
		return "pending"
	case Complete:
		return "complete"
	case Unhandled:
		return "unhandled"
	default:
		return "unknown"
	}
}

// Result is what Resolve produced for one key.
type Result struct {
	Status Status
	// Intent is set for Complete results. An Unhandled key in
	// OperatorPending mode carries an Escape intent that cancels the
	// operator.
	Intent intent.Intent
	// Pending shows the keys typed toward an unfinished command.
	Pending string
}

// Resolver maps key events to intents according to the current mode.
type Resolver struct {
	log *logging.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger for unhandled keys.
func WithLogger(l *logging.Logger) Option {
	return func(r *Resolver) {
		r.log = l
	}
}

// NewResolver creates a resolver.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{}
	for _, opt := range opts {
		opt(r)
	}
	r.log = logging.OrNop(r.log).WithComponent("resolver")
	return r
}

// Resolve interprets ev in the mode recorded in st, updating st's count,
// pending prefix and register bookkeeping.
func (r *Resolver) Resolve(st *mode.State, ev key.Event) Result {
	if ev.IsEscape() || (ev.IsCtrl('c') && st.Mode.Kind != mode.KindTerminalInsert) {
		return r.escape(st, ev)
	}
	if st.Pending != mode.PrefixNone {
		return r.dispatchPrefix(st, ev)
	}

	switch st.Mode.Kind {
	case mode.KindNormal, mode.KindInsertNormal:
		return r.normal(st, ev)
	case mode.KindVisual:
		return r.visual(st, ev)
	case mode.KindOperatorPending:
		return r.operatorPending(st, ev)
	case mode.KindInsert:
		return r.insert(st, ev)
	case mode.KindReplace:
		return r.replace(st, ev)
	case mode.KindCommand:
		return r.command(st, ev)
	case mode.KindTerminalInsert:
		return r.terminal(st, ev)
	}
	return r.unhandled(st, ev)
}

func (r *Resolver) escape(st *mode.State, ev key.Event) Result {
	hadPending := st.Pending != mode.PrefixNone
	st.Cancel()
	switch st.Mode.Kind {
	case mode.KindTerminalInsert:
		return Result{Status: Complete, Intent: intent.Intent{Kind: intent.TerminalInput, Key: ev}}
	case mode.KindInsert, mode.KindReplace, mode.KindCommand:
		if hadPending {
			// Escape after Ctrl-R only abandons the register prompt.
			return Result{Status: Unhandled}
		}
	}
	return Result{Status: Complete, Intent: intent.Intent{Kind: intent.Escape}}
}

// complete finishes a command: the selected register is attached and all
// pending input is cleared.
func (r *Resolver) complete(st *mode.State, it intent.Intent) Result {
	if it.Register == 0 {
		it.Register = st.Register
	}
	st.Cancel()
	return Result{Status: Complete, Intent: it}
}

func (r *Resolver) pending(st *mode.State, p mode.Prefix, ev key.Event) Result {
	st.SetPending(p, ev)
	return Result{Status: Pending, Pending: st.PendingKeys()}
}

func (r *Resolver) unhandled(st *mode.State, ev key.Event) Result {
	r.log.Debug("unhandled key %s in %s (pending %q)", ev, st.Mode, st.PendingKeys())
	st.Cancel()
	res := Result{Status: Unhandled}
	if st.Mode.Kind == mode.KindOperatorPending {
		res.Intent = intent.Intent{Kind: intent.Escape}
	}
	return res
}

// count accumulates a digit. It reports false for keys that are not count
// digits, including a leading '0'.
func (r *Resolver) count(st *mode.State, ev key.Event) (Result, bool) {
	if !ev.IsDigit() || !st.Count.Push(ev.Rune) {
		return Result{}, false
	}
	st.PushKey(ev)
	return Result{Status: Pending, Pending: st.PendingKeys()}, true
}

// operatorCount is the count for an operator's range: the count typed
// before the operator times the one typed after it, 0 if neither was.
func operatorCount(st *mode.State) int {
	if st.OpCount == 0 && !st.Count.IsSet() {
		return 0
	}
	return vim.Multiply(st.OpCount, st.Count.Raw())
}
