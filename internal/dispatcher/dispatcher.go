package dispatcher

import (
	"runtime"
	"time"

	"github.com/dshills/vimcore/internal/engine/buffer"
	"github.com/dshills/vimcore/internal/input/intent"
	"github.com/dshills/vimcore/internal/input/mode"
	"github.com/dshills/vimcore/internal/logging"
)

// Dispatcher applies intents to an EditorState. It holds only its
// collaborators; all editing state lives in the EditorState passed to
// Dispatch, so one dispatcher can serve several windows.
type Dispatcher struct {
	log *logging.Logger

	ex       ExHandler
	searcher Searcher
	eval     Evaluator
	terminal Terminal
	windows  WindowHandler

	metrics   *Metrics
	preHooks  []PreDispatchHook
	postHooks []PostDispatchHook
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(d *Dispatcher) {
		d.log = l
	}
}

// WithExHandler sets the handler for ":" command lines.
func WithExHandler(h ExHandler) Option {
	return func(d *Dispatcher) {
		d.ex = h
	}
}

// WithSearcher replaces the default RegexpSearcher.
func WithSearcher(s Searcher) Option {
	return func(d *Dispatcher) {
		d.searcher = s
	}
}

// WithEvaluator sets the expression-register evaluator.
func WithEvaluator(e Evaluator) Option {
	return func(d *Dispatcher) {
		d.eval = e
	}
}

// WithTerminal sets the receiver of TerminalInsert keys.
func WithTerminal(t Terminal) Option {
	return func(d *Dispatcher) {
		d.terminal = t
	}
}

// WithWindowHandler sets the receiver of Ctrl-W commands.
func WithWindowHandler(w WindowHandler) Option {
	return func(d *Dispatcher) {
		d.windows = w
	}
}

// WithMetrics enables dispatch statistics.
func WithMetrics(m *Metrics) Option {
	return func(d *Dispatcher) {
		d.metrics = m
	}
}

// New creates a dispatcher.
func New(opts ...Option) *Dispatcher {
	d := &Dispatcher{}
	for _, opt := range opts {
		opt(d)
	}
	d.log = logging.OrNop(d.log).WithComponent("dispatcher")
	if d.searcher == nil {
		d.searcher = RegexpSearcher{}
	}
	return d
}

// Metrics returns the metrics collector, or nil when disabled.
func (d *Dispatcher) Metrics() *Metrics {
	return d.metrics
}

// SetExHandler replaces the Ex command handler.
func (d *Dispatcher) SetExHandler(h ExHandler) {
	d.ex = h
}

// Dispatch applies it to st and returns the outcome. The status-line
// message of st is replaced by the result's message.
func (d *Dispatcher) Dispatch(st *EditorState, it intent.Intent) Result {
	startTime := time.Now()

	for _, h := range d.preHooks {
		if !h.PreDispatch(st, &it) {
			return NoOpWithMessage(st.Message)
		}
	}

	from := st.Mode.Mode
	pre := st.Cursor.Pos
	replayed := st.player.IsPlaying() || st.repeating > 0

	if st.Macros.IsRecording() && !it.IsMacroToggle() && !st.player.IsPlaying() && st.repeating == 0 && st.exDepth == 0 {
		st.Macros.Record(it)
	}
	if it.IsRepeatable() {
		if st.repeating == 0 {
			if seq := d.repeatForm(st, it); seq != nil {
				st.lastChange = seq
			}
		}
		st.Changes.Push(st.entry(pre))
	}
	if it.IsJump() {
		st.Jumps.Push(st.entry(pre))
	}

	if st.session != nil && isSessionKind(it.Kind) && st.Mode.Mode.IsInsertLike() {
		st.session.intents = append(st.session.intents, it)
	}

	res := d.executeWithRecovery(st, it)
	if it.IsJump() && !res.IsError() {
		st.marks['`'] = pre
	}

	if from.Kind == mode.KindInsertNormal && !it.IsModeChange() && st.Mode.Mode.Kind == mode.KindInsertNormal {
		d.resumeInsert(st)
	}
	st.settle()
	st.Message = res.Message

	if res.IsError() {
		d.log.Debug("%s: %v", it, res.Error)
	} else {
		d.log.Debug("%s -> %s", it, res.Status)
	}
	if d.metrics != nil {
		d.metrics.record(it.Kind, from.Kind, replayed, time.Since(startTime), res.Status)
	}
	for _, h := range d.postHooks {
		h.PostDispatch(st, it, &res)
	}
	return res
}

// execute runs one intent. Every Kind has a case.
func (d *Dispatcher) execute(st *EditorState, it intent.Intent) Result {
	switch it.Kind {
	case intent.None:
		return NoOp()

	case intent.Motion:
		return d.move(st, it)
	case intent.SelectObject:
		return d.selectObject(st, it)

	case intent.EnterInsert:
		return d.enterInsert(st, it)
	case intent.EnterVisual:
		return d.enterVisual(st, it)
	case intent.EnterCommand:
		return d.enterCommand(st, it)
	case intent.EnterReplace:
		return d.enterReplace(st, it)
	case intent.EnterOperatorPending:
		if !d.transition(st, mode.OperatorPending(it.Operator)) {
			return Error(ErrInvalidTransition)
		}
		st.Mode.OpCount = it.Count
		st.Mode.OpRegister = it.Register
		return Success()
	case intent.EnterInsertNormal:
		return d.enterInsertNormal(st)
	case intent.EnterTerminal:
		if !d.transition(st, mode.TerminalInsert) {
			return Error(ErrInvalidTransition)
		}
		return Success()
	case intent.Escape:
		return d.escape(st)
	case intent.ReselectVisual:
		return d.reselectVisual(st)
	case intent.VisualSwapEnds:
		return d.swapVisualEnds(st)

	case intent.Operator:
		return d.operator(st, it)
	case intent.VisualOperator:
		return d.visualOperator(st, it)

	case intent.InsertText:
		return d.insertText(st, it.Text)
	case intent.InsertNewline:
		return d.insertNewline(st, it)
	case intent.InsertBackspace:
		return d.insertBackspace(st, it)
	case intent.InsertDelete:
		return d.insertDelete(st, it)
	case intent.InsertDeleteWord:
		return d.insertDeleteWord(st, it)
	case intent.InsertDeleteLine:
		return d.insertDeleteLine(st, it)
	case intent.InsertRegister:
		return d.insertRegister(st, it)
	case intent.ReplaceText:
		return d.replaceText(st, it)
	case intent.ReplaceBackspace:
		return d.replaceBackspace(st, it)

	case intent.ReplaceChar:
		return d.replaceChar(st, it)
	case intent.Join, intent.JoinRaw:
		return d.join(st, it)
	case intent.ToggleCaseChar:
		return d.toggleCaseChar(st, it)
	case intent.Increment:
		return d.increment(st, it.N())
	case intent.Decrement:
		return d.increment(st, -it.N())
	case intent.Put:
		return d.put(st, it)

	case intent.Undo:
		return d.undo(st, it.N())
	case intent.Redo:
		return d.redo(st, it.N())
	case intent.Repeat:
		return d.repeat(st, it)

	case intent.JumpBack:
		e, ok := st.Jumps.Back(st.entry(st.Cursor.Pos), it.N())
		return d.jumpTo(st, e.Buffer, e.Pos, ok)
	case intent.JumpForward:
		e, ok := st.Jumps.Forward(it.N())
		return d.jumpTo(st, e.Buffer, e.Pos, ok)
	case intent.ChangeBack:
		e, ok := st.Changes.Back(st.entry(st.Cursor.Pos), it.N())
		if !ok {
			return Errorf("E662: At start of changelist")
		}
		return d.jumpTo(st, e.Buffer, e.Pos, ok)
	case intent.ChangeForward:
		e, ok := st.Changes.Forward(it.N())
		if !ok {
			return Errorf("E663: At end of changelist")
		}
		return d.jumpTo(st, e.Buffer, e.Pos, ok)
	case intent.SetMark:
		return d.setMark(st, it.Char)
	case intent.GotoMark:
		return d.gotoMark(st, it)

	case intent.SearchForward:
		return d.search(st, it, true)
	case intent.SearchBackward:
		return d.search(st, it, false)
	case intent.SearchNext:
		return d.searchNext(st, it, false)
	case intent.SearchPrev:
		return d.searchNext(st, it, true)
	case intent.SearchWord:
		return d.searchWord(st, it)
	case intent.RepeatFind:
		return d.repeatFind(st, it)

	case intent.Scroll:
		return d.scroll(st, it)

	case intent.MacroStart:
		return d.macroStart(st, it)
	case intent.MacroStop:
		return d.macroStop(st)
	case intent.MacroPlay:
		return d.macroPlay(st, it)

	case intent.CmdInsert:
		st.Mode.CommandLine.Insert(it.Text)
		return Success()
	case intent.CmdKey:
		return d.cmdKey(st, it)
	case intent.ExCommand:
		return d.exCommand(st, it.Text)

	case intent.Window:
		if d.windows == nil {
			return NoOpWithMessage("window commands are not available")
		}
		if err := d.windows.Window(it.Key, it.Count); err != nil {
			return Error(err)
		}
		return Success()
	case intent.TerminalInput:
		if d.terminal == nil {
			return NoOp()
		}
		if err := d.terminal.Input(it.Key); err != nil {
			return Error(err)
		}
		return Success()
	case intent.TerminalExit:
		d.transition(st, mode.Normal)
		return Success()
	}
	return Errorf("unknown intent %s", it.Kind)
}

// executeWithRecovery turns a panic in an intent handler into an error
// result so one bad command cannot take down the host.
func (d *Dispatcher) executeWithRecovery(st *EditorState, it intent.Intent) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			stack := make([]byte, 4096)
			n := runtime.Stack(stack, false)
			d.log.Error("panic in %s: %v\n%s", it.Kind, r, stack[:n])
			res = Errorf("internal error in %s: %v", it.Kind, r)
			if d.metrics != nil {
				d.metrics.recordPanic()
			}
		}
	}()
	return d.execute(st, it)
}

// transition switches modes, logging refused edges.
func (d *Dispatcher) transition(st *EditorState, m mode.Mode) bool {
	if !st.Mode.Transition(m, st.Cursor.Pos) {
		d.log.Warn("refused transition %s -> %s", st.Mode.Mode, m)
		return false
	}
	return true
}

// finish leaves OperatorPending or Visual mode after a command completed
// there: back to Insert if the command was started with Ctrl-O, else to
// Normal.
func (d *Dispatcher) finish(st *EditorState) {
	if st.Mode.ResumeInsert {
		d.transition(st, mode.Insert)
		d.beginSession(st, intent.Intent{Kind: intent.EnterInsert})
		return
	}
	d.transition(st, mode.Normal)
}

// resumeInsert returns from InsertNormal after its one command.
func (d *Dispatcher) resumeInsert(st *EditorState) {
	if d.transition(st, mode.Insert) {
		d.beginSession(st, intent.Intent{Kind: intent.EnterInsert})
	}
}

func (d *Dispatcher) jumpTo(st *EditorState, id buffer.ID, p buffer.Position, ok bool) Result {
	if !ok {
		return NoOp()
	}
	if id != st.Buffer.ID() {
		return NoOpWithMessage("jump target is in another buffer")
	}
	st.moveTo(p)
	return Success()
}
