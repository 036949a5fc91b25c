package expr

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/vimcore/internal/logging"
)

// DefaultTimeout bounds a single Eval or Exec call.
const DefaultTimeout = 2 * time.Second

// Func is a host function callable from Lua as editor.<name>(...). Its
// arguments arrive as strings.
type Func func(args []string) (string, error)

// Evaluator runs expressions and chunks in a sandboxed Lua state.
type Evaluator struct {
	mu      sync.Mutex
	L       *lua.LState
	editor  *lua.LTable
	out     strings.Builder
	timeout time.Duration
	log     *logging.Logger
	closed  bool
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithTimeout sets the per-call deadline. Zero or negative disables it.
func WithTimeout(d time.Duration) Option {
	return func(e *Evaluator) {
		e.timeout = d
	}
}

// WithLogger sets the logger used for evaluation failures.
func WithLogger(l *logging.Logger) Option {
	return func(e *Evaluator) {
		e.log = l
	}
}

// New creates an evaluator with a fresh sandboxed state.
func New(opts ...Option) *Evaluator {
	e := &Evaluator{
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.log = logging.OrNop(e.log).WithComponent("expr")

	e.L = lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(e.L)
	e.sandbox()
	return e
}

func openSafeLibraries(L *lua.LState) {
	for _, lib := range []struct {
		name string
		open lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		L.Push(L.NewFunction(lib.open))
		L.Push(lua.LString(lib.name))
		L.Call(1, 0)
	}
}

// sandbox removes code loading and redirects print into e.out.
func (e *Evaluator) sandbox() {
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require", "module", "collectgarbage"} {
		e.L.SetGlobal(name, lua.LNil)
	}

	e.L.SetGlobal("print", e.L.NewFunction(func(L *lua.LState) int {
		top := L.GetTop()
		for i := 1; i <= top; i++ {
			if i > 1 {
				e.out.WriteByte('\t')
			}
			e.out.WriteString(L.ToStringMeta(L.Get(i)).String())
		}
		e.out.WriteByte('\n')
		return 0
	}))

	e.editor = e.L.NewTable()
	e.L.SetGlobal("editor", e.editor)
}

// Define exposes fn to scripts as editor.<name>. A returned error is
// raised as a Lua error.
func (e *Evaluator) Define(name string, fn Func) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrClosed
	}

	e.L.SetField(e.editor, name, e.L.NewFunction(func(L *lua.LState) int {
		top := L.GetTop()
		args := make([]string, 0, top)
		for i := 1; i <= top; i++ {
			args = append(args, L.ToStringMeta(L.Get(i)).String())
		}
		out, err := fn(args)
		if err != nil {
			L.RaiseError("%s", err.Error())
			return 0
		}
		L.Push(lua.LString(out))
		return 1
	}))
	return nil
}

// SetVar sets a global string variable visible to scripts.
func (e *Evaluator) SetVar(name, value string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrClosed
	}
	e.L.SetGlobal(name, lua.LString(value))
	return nil
}

// Eval evaluates a single expression and returns its text form.
func (e *Evaluator) Eval(src string) (string, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return "", ErrEmpty
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	vals, err := e.run(src, "return "+src)
	if err != nil {
		return "", err
	}
	if len(vals) == 0 {
		return "", nil
	}
	return toText(vals[0])
}

// Exec runs a chunk of statements and returns what it printed, without the
// trailing newline.
func (e *Evaluator) Exec(src string) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.out.Reset()
	_, err := e.run(src, src)
	out := strings.TrimSuffix(e.out.String(), "\n")
	e.out.Reset()
	return out, err
}

// run compiles and calls chunk, returning its results. The caller holds
// e.mu.
func (e *Evaluator) run(src, chunk string) (vals []lua.LValue, err error) {
	if e.closed {
		return nil, ErrClosed
	}

	fn, err := e.L.LoadString(chunk)
	if err != nil {
		return nil, &Error{Source: src, Err: err}
	}

	ctx := context.Background()
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}
	e.L.SetContext(ctx)
	defer e.L.RemoveContext()

	defer func() {
		if r := recover(); r != nil {
			err = &Error{Source: src, Err: fmt.Errorf("lua panic: %v", r)}
			e.log.Error("lua panic in %q: %v", src, r)
		}
	}()

	base := e.L.GetTop()
	e.L.Push(fn)
	if err := e.L.PCall(0, lua.MultRet, nil); err != nil {
		e.L.SetTop(base)
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			e.log.Warn("lua %q timed out after %s", src, e.timeout)
			return nil, ErrTimeout
		}
		e.log.Debug("lua %q: %v", src, err)
		return nil, &Error{Source: src, Err: err}
	}

	n := e.L.GetTop() - base
	vals = make([]lua.LValue, n)
	for i := range n {
		vals[i] = e.L.Get(base + 1 + i)
	}
	e.L.SetTop(base)
	return vals, nil
}

// Close releases the Lua state. Later calls return ErrClosed.
func (e *Evaluator) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.closed = true
	e.L.Close()
}

func toText(v lua.LValue) (string, error) {
	switch v := v.(type) {
	case lua.LString:
		return string(v), nil
	case lua.LNumber:
		return formatNumber(float64(v)), nil
	case lua.LBool:
		return strconv.FormatBool(bool(v)), nil
	}
	if v == lua.LNil {
		return "", nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedValue, v.Type().String())
}

func formatNumber(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1<<53 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
