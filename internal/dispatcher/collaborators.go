package dispatcher

import (
	"github.com/dshills/vimcore/internal/engine/buffer"
	"github.com/dshills/vimcore/internal/input/intent"
	"github.com/dshills/vimcore/internal/input/key"
)

// ExHandler executes a command line typed after ":". The grammar of Ex
// commands belongs to the handler; the dispatcher only hands over the text.
type ExHandler interface {
	Execute(ctx *ExContext, cmd string) error
}

// ExHandlerFunc adapts a function to ExHandler.
type ExHandlerFunc func(ctx *ExContext, cmd string) error

// Execute implements ExHandler.
func (f ExHandlerFunc) Execute(ctx *ExContext, cmd string) error {
	return f(ctx, cmd)
}

// Searcher finds pattern in text starting after from. forward selects the
// direction and wrap allows continuing from the other end of the buffer.
type Searcher interface {
	Find(text buffer.Reader, from buffer.Position, pattern string, forward, wrap bool) (buffer.Position, bool, error)
}

// Evaluator computes the value of the expression register.
type Evaluator interface {
	Eval(expr string) (string, error)
}

// Terminal receives keys typed in TerminalInsert mode.
type Terminal interface {
	Input(ev key.Event) error
}

// WindowHandler carries out Ctrl-W window commands.
type WindowHandler interface {
	Window(ev key.Event, count int) error
}

// ExContext is what an ExHandler may touch while a command runs.
type ExContext struct {
	d  *Dispatcher
	st *EditorState
}

// State returns the editor state the command runs against.
func (c *ExContext) State() *EditorState {
	return c.st
}

// Dispatch runs an intent through the full pipeline. Intents dispatched
// by a command are not recorded into a macro; the command line is.
func (c *ExContext) Dispatch(it intent.Intent) Result {
	c.st.exDepth++
	defer func() { c.st.exDepth-- }()
	return c.d.Dispatch(c.st, it)
}

// Eval evaluates an expression with the dispatcher's evaluator.
func (c *ExContext) Eval(expr string) (string, error) {
	if c.d.eval == nil {
		return "", ErrNoEvaluator
	}
	return c.d.eval.Eval(expr)
}

// Search finds pattern from the cursor with the dispatcher's searcher.
func (c *ExContext) Search(pattern string, forward bool) (buffer.Position, bool, error) {
	return c.d.searcher.Find(c.st.Buffer, c.st.Cursor.Pos, pattern, forward, c.st.Options.WrapScan)
}

// SetMessage sets the status-line message.
func (c *ExContext) SetMessage(format string, args ...any) {
	c.st.SetMessage(format, args...)
}
