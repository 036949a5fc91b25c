// Package app hosts the editing core: it owns one EditorState, feeds keys
// through the resolver into the dispatcher, executes Ex command lines,
// reads and writes files and applies configuration reloads.
//
// An Editor is not safe for concurrent use. Hosts such as the terminal UI
// drive it from a single goroutine and hand Snapshots to anything else.
package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/dshills/vimcore/internal/config"
	"github.com/dshills/vimcore/internal/dispatcher"
	"github.com/dshills/vimcore/internal/engine/buffer"
	"github.com/dshills/vimcore/internal/expr"
	"github.com/dshills/vimcore/internal/input"
	"github.com/dshills/vimcore/internal/input/intent"
	"github.com/dshills/vimcore/internal/input/key"
	"github.com/dshills/vimcore/internal/input/register"
	"github.com/dshills/vimcore/internal/logging"
)

// Options configures an Editor.
type Options struct {
	// Path is the file to edit. A missing file starts an empty buffer that
	// ":w" creates. Empty means a scratch buffer.
	Path string

	// Text, when set, is the initial content instead of the file's.
	Text *string

	// Config defaults to config.Default().
	Config *config.Config

	Logger *logging.Logger

	// ReadOnly refuses changes to the buffer and writes without "!".
	ReadOnly bool

	Clipboard register.ClipboardProvider
	Terminal  dispatcher.Terminal
	Windows   dispatcher.WindowHandler

	// Metrics enables dispatch statistics.
	Metrics bool
}

// Editor is one editing session.
type Editor struct {
	cfg      *config.Config
	log      *logging.Logger
	state    *dispatcher.EditorState
	resolver *input.Resolver
	disp     *dispatcher.Dispatcher
	eval     *expr.Evaluator
	readOnly *dispatcher.ReadOnlyHook
	commands []exCommand
	terminal bool

	path    string
	done    bool
	lastSub *substitution
}

// New creates an editor and loads opts.Path.
func New(opts Options) (*Editor, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := &Editor{
		cfg:      cfg,
		log:      logging.OrNop(opts.Logger),
		readOnly: &dispatcher.ReadOnlyHook{Enabled: opts.ReadOnly},
	}
	e.commands = builtinCommands()

	text, existed, err := initialText(opts)
	if err != nil {
		return nil, err
	}
	e.path = opts.Path
	e.state = e.newState(text)

	e.eval = expr.New(expr.WithLogger(e.log))
	e.defineFunctions()

	dopts := []dispatcher.Option{
		dispatcher.WithLogger(e.log),
		dispatcher.WithExHandler(e),
		dispatcher.WithEvaluator(e.eval),
		dispatcher.WithPreHook(e.readOnly),
	}
	if opts.Terminal != nil {
		dopts = append(dopts, dispatcher.WithTerminal(opts.Terminal))
		e.terminal = true
	}
	if opts.Windows != nil {
		dopts = append(dopts, dispatcher.WithWindowHandler(opts.Windows))
	}
	if opts.Metrics {
		dopts = append(dopts, dispatcher.WithMetrics(dispatcher.NewMetrics()))
	}
	e.disp = dispatcher.New(dopts...)
	e.resolver = input.NewResolver(input.WithLogger(e.log))

	if opts.Clipboard != nil {
		e.state.Registers.SetClipboard(opts.Clipboard)
	}
	if opts.Path != "" && opts.Text == nil {
		e.state.Message = fileInfo(opts.Path, e.state.Buffer, !existed)
	}
	e.log.WithField("path", opts.Path).Info("editor started with %d lines", e.state.Buffer.LineCount())
	return e, nil
}

func initialText(opts Options) (string, bool, error) {
	if opts.Text != nil {
		return *opts.Text, true, nil
	}
	if opts.Path == "" {
		return "", false, nil
	}
	data, err := os.ReadFile(opts.Path)
	if errors.Is(err, os.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, &FileError{Op: "read", Path: opts.Path, Err: err}
	}
	return string(data), true, nil
}

func (e *Editor) newState(text string) *dispatcher.EditorState {
	var bopts []buffer.Option
	if e.path != "" {
		bopts = append(bopts, buffer.WithName(filepath.Base(e.path)))
	}
	st := dispatcher.NewEditorState(buffer.NewFromString(trimFinalNewline(text), bopts...), e.cfg.Editor.Options())
	st.Registers.SetFileNames(e.path, "")
	return st
}

// defineFunctions exposes buffer queries to expressions as editor.<name>.
func (e *Editor) defineFunctions() {
	fns := map[string]expr.Func{
		"line": func(args []string) (string, error) {
			n, err := e.lineArg(args)
			if err != nil {
				return "", err
			}
			return e.state.Buffer.Line(n), nil
		},
		"lnum": func([]string) (string, error) {
			return itoa(e.state.Cursor.Pos.Line + 1), nil
		},
		"col": func([]string) (string, error) {
			return itoa(e.state.Cursor.Pos.Col + 1), nil
		},
		"linecount": func([]string) (string, error) {
			return itoa(e.state.Buffer.LineCount()), nil
		},
		"register": func(args []string) (string, error) {
			if len(args) == 0 || args[0] == "" {
				return e.state.Registers.Get(register.Unnamed).Content, nil
			}
			return e.state.Registers.Get([]rune(args[0])[0]).Content, nil
		},
		"filename": func([]string) (string, error) {
			return e.path, nil
		},
	}
	for name, fn := range fns {
		_ = e.eval.Define(name, fn)
	}
}

// lineArg reads a 1-based line number argument. No argument or "."
// means the cursor line.
func (e *Editor) lineArg(args []string) (int, error) {
	if len(args) == 0 || args[0] == "" || args[0] == "." {
		return e.state.Cursor.Pos.Line, nil
	}
	if args[0] == "$" {
		return e.state.Buffer.LineCount() - 1, nil
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 || n > e.state.Buffer.LineCount() {
		return 0, fmt.Errorf("%w: %s", ErrInvalidRange, args[0])
	}
	return n - 1, nil
}

// HandleKey resolves one key and dispatches the intent it completes.
// Pending keys and unhandled keys return a no-op result.
func (e *Editor) HandleKey(ev key.Event) dispatcher.Result {
	res := e.resolver.Resolve(e.state.Mode, ev)
	if res.Status == input.Pending || res.Intent.Kind == intent.None {
		return dispatcher.NoOp()
	}
	return e.disp.Dispatch(e.state, res.Intent)
}

// Feed handles keys written in Vim notation, e.g. "dwi<Tab><Esc>". It
// stops early once the editor is done and returns the result of the last
// dispatched intent.
func (e *Editor) Feed(keys string) (dispatcher.Result, error) {
	events, err := key.ParseKeys(keys)
	if err != nil {
		return dispatcher.Result{}, err
	}
	return e.FeedEvents(events), nil
}

// FeedEvents is Feed for parsed keys.
func (e *Editor) FeedEvents(events []key.Event) dispatcher.Result {
	last := dispatcher.NoOp()
	for _, ev := range events {
		if e.done {
			break
		}
		if res := e.HandleKey(ev); res.Status != dispatcher.StatusNoOp || res.Message != "" {
			last = res
		}
	}
	return last
}

// Dispatch runs an intent directly.
func (e *Editor) Dispatch(it intent.Intent) dispatcher.Result {
	return e.disp.Dispatch(e.state, it)
}

// Snapshot returns a copy of the visible state.
func (e *Editor) Snapshot() dispatcher.Snapshot {
	return e.state.Snapshot()
}

// State returns the live editor state.
func (e *Editor) State() *dispatcher.EditorState {
	return e.state
}

// Text returns the buffer content.
func (e *Editor) Text() string {
	return e.state.Buffer.String()
}

// Path returns the file being edited.
func (e *Editor) Path() string {
	return e.path
}

// Config returns the configuration in effect.
func (e *Editor) Config() *config.Config {
	return e.cfg
}

// Metrics returns dispatch statistics, or nil when disabled.
func (e *Editor) Metrics() *dispatcher.Metrics {
	return e.disp.Metrics()
}

// Done reports whether a quit command ran.
func (e *Editor) Done() bool {
	return e.done
}

// Resize records the number of text lines the host can show.
func (e *Editor) Resize(height int) {
	e.state.SetViewport(height)
}

// SetReadOnly toggles refusal of buffer changes.
func (e *Editor) SetReadOnly(ro bool) {
	e.readOnly.Enabled = ro
}

// ApplyConfig makes cfg the configuration in effect.
func (e *Editor) ApplyConfig(cfg *config.Config) {
	e.cfg = cfg
	e.state.SetOptions(cfg.Editor.Options())
	e.log.SetLevel(cfg.Log.LogLevel())
}

// Reload applies a configuration reload. A failed reload keeps the
// current configuration and reports the error on the status line.
func (e *Editor) Reload(r config.Reload) {
	if r.Err != nil {
		e.state.SetMessage("config: %v", r.Err)
		return
	}
	e.ApplyConfig(r.Config)
	e.state.SetMessage("%q config reloaded", filepath.Base(r.Path))
}

// Close releases the expression evaluator.
func (e *Editor) Close() {
	e.eval.Close()
}
