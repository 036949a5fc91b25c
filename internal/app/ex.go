package app

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"github.com/dshills/vimcore/internal/dispatcher"
	"github.com/dshills/vimcore/internal/engine/buffer"
	"github.com/dshills/vimcore/internal/engine/motion"
	"github.com/dshills/vimcore/internal/input/intent"
	"github.com/dshills/vimcore/internal/input/key"
	"github.com/dshills/vimcore/internal/input/mode"
	"github.com/dshills/vimcore/internal/input/register"
	"github.com/dshills/vimcore/internal/input/vim"
)

// exCall is a parsed command line.
type exCall struct {
	rng      lineRange
	hasRange bool
	bang     bool
	arg      string
}

// exCommand is one built-in Ex command. A command matches any
// abbreviation of name at least min characters long.
type exCommand struct {
	name    string
	min     int
	ranged  bool
	bang    bool
	changes bool
	run     func(e *Editor, ctx *dispatcher.ExContext, c exCall) error
}

func builtinCommands() []exCommand {
	return []exCommand{
		{name: "delete", min: 1, ranged: true, changes: true, run: (*Editor).exDelete},
		{name: "yank", min: 1, ranged: true, run: (*Editor).exYank},
		{name: "substitute", min: 1, ranged: true, changes: true, run: (*Editor).exSubstitute},
		{name: "join", min: 1, ranged: true, changes: true, bang: true, run: (*Editor).exJoin},
		{name: ">", min: 1, ranged: true, changes: true, run: shiftCommand(vim.OpIndent)},
		{name: "<", min: 1, ranged: true, changes: true, run: shiftCommand(vim.OpUnindent)},
		{name: "normal", min: 4, ranged: true, bang: true, run: (*Editor).exNormal},
		{name: "undo", min: 1, run: (*Editor).exUndo},
		{name: "redo", min: 3, run: (*Editor).exRedo},
		{name: "set", min: 2, run: (*Editor).exSet},
		{name: "registers", min: 3, run: (*Editor).exRegisters},
		{name: "display", min: 2, run: (*Editor).exRegisters},
		{name: "marks", min: 4, run: (*Editor).exMarks},
		{name: "lua", min: 3, run: (*Editor).exLua},
		{name: "terminal", min: 3, run: (*Editor).exTerminal},
		{name: "=", min: 1, ranged: true, run: (*Editor).exEquals},
		{name: "write", min: 1, bang: true, run: (*Editor).exWrite},
		{name: "wq", min: 2, bang: true, run: (*Editor).exWriteQuit},
		{name: "xit", min: 1, bang: true, run: (*Editor).exXit},
		{name: "quit", min: 1, bang: true, run: (*Editor).exQuit},
		{name: "qall", min: 2, bang: true, run: (*Editor).exQuit},
		{name: "edit", min: 1, bang: true, run: (*Editor).exEdit},
		{name: "nohlsearch", min: 3, run: func(*Editor, *dispatcher.ExContext, exCall) error { return nil }},
	}
}

func (e *Editor) lookup(name string) (exCommand, bool) {
	for _, c := range e.commands {
		if len(name) >= c.min && strings.HasPrefix(c.name, name) {
			return c, true
		}
	}
	return exCommand{}, false
}

// Execute implements dispatcher.ExHandler.
func (e *Editor) Execute(ctx *dispatcher.ExContext, line string) error {
	st := ctx.State()
	rng, rest, hasRange, err := parseRange(st, line)
	if err != nil {
		return err
	}

	name, rest := splitCommandName(rest)
	if name == "" {
		if strings.TrimSpace(rest) != "" {
			return fmt.Errorf("%w: %s", dispatcher.ErrNotEditorCommand, line)
		}
		if !hasRange {
			return nil
		}
		// A bare address jumps to its last line.
		return resultErr(ctx.Dispatch(intent.Move(motion.GotoLine, rng.to+1)))
	}

	cmd, ok := e.lookup(name)
	if !ok {
		return fmt.Errorf("%w: %s", dispatcher.ErrNotEditorCommand, line)
	}

	c := exCall{rng: rng, hasRange: hasRange}
	if strings.HasPrefix(rest, "!") {
		if !cmd.bang {
			return ErrNoBang
		}
		c.bang = true
		rest = rest[1:]
	}
	c.arg = strings.TrimSpace(rest)

	if hasRange && !cmd.ranged {
		return ErrNoRange
	}
	if cmd.changes && e.readOnly.Enabled {
		return ErrNotModifiable
	}

	e.log.Debug("ex %s range %s arg %q", cmd.name, rng, c.arg)
	return cmd.run(e, ctx, c)
}

// splitCommandName splits the command name from its arguments. Names are
// letters, or a single symbol such as "=", ">" or "<".
func splitCommandName(s string) (string, string) {
	s = strings.TrimLeft(s, " \t:")
	i := 0
	for i < len(s) && unicode.IsLetter(rune(s[i])) {
		i++
	}
	if i == 0 && s != "" && strings.ContainsRune("=<>&", rune(s[0])) {
		i = 1
	}
	return s[:i], s[i:]
}

func (e *Editor) exDelete(ctx *dispatcher.ExContext, c exCall) error {
	st := ctx.State()
	reg, err := registerArg(c.arg)
	if err != nil {
		return err
	}
	text := linesOf(st.Buffer, c.rng)
	if err := st.Registers.Delete(reg, register.Register{Content: text, Kind: register.Linewise}, false); err != nil {
		return err
	}
	st.ReplaceLines(c.rng.from, c.rng.to, nil)
	if n := c.rng.count(); n > 2 {
		ctx.SetMessage("%d fewer lines", n)
	}
	return nil
}

func (e *Editor) exYank(ctx *dispatcher.ExContext, c exCall) error {
	st := ctx.State()
	reg, err := registerArg(c.arg)
	if err != nil {
		return err
	}
	text := linesOf(st.Buffer, c.rng)
	if err := st.Registers.Yank(reg, register.Register{Content: text, Kind: register.Linewise}); err != nil {
		return err
	}
	if n := c.rng.count(); n > 2 {
		ctx.SetMessage("%d lines yanked", n)
	}
	return nil
}

func (e *Editor) exJoin(ctx *dispatcher.ExContext, c exCall) error {
	st := ctx.State()
	count := c.rng.count()
	if !c.hasRange || count < 2 {
		count = 2
	}
	st.Cursor = motion.At(buffer.Position{Line: c.rng.from})
	kind := intent.Join
	if c.bang {
		kind = intent.JoinRaw
	}
	return resultErr(ctx.Dispatch(intent.Intent{Kind: kind, Count: count}))
}

func shiftCommand(op vim.Operator) func(*Editor, *dispatcher.ExContext, exCall) error {
	return func(_ *Editor, ctx *dispatcher.ExContext, c exCall) error {
		st := ctx.State()
		st.Cursor = motion.At(buffer.Position{Line: c.rng.from})
		return resultErr(ctx.Dispatch(intent.ApplyLines(op, c.rng.count())))
	}
}

// exNormal runs keys in Normal mode on every line of the range. An
// unfinished command at the end of the keys is abandoned.
func (e *Editor) exNormal(ctx *dispatcher.ExContext, c exCall) error {
	if c.arg == "" {
		return ErrArgumentRequired
	}
	events, err := key.ParseKeys(c.arg)
	if err != nil {
		return err
	}
	st := ctx.State()

	run := func() {
		for _, ev := range events {
			res := e.resolver.Resolve(st.Mode, ev)
			if res.Intent.Kind != intent.None {
				ctx.Dispatch(res.Intent)
			}
		}
		if st.Mode.Mode.Kind != mode.KindNormal || st.Mode.Pending != mode.PrefixNone {
			ctx.Dispatch(intent.Intent{Kind: intent.Escape})
		}
	}

	if !c.hasRange {
		run()
		return nil
	}
	for line := c.rng.from; line <= c.rng.to && line < st.Buffer.LineCount(); line++ {
		st.Cursor = motion.At(buffer.Position{Line: line})
		run()
	}
	return nil
}

func (e *Editor) exUndo(ctx *dispatcher.ExContext, _ exCall) error {
	return resultErr(ctx.Dispatch(intent.Intent{Kind: intent.Undo}))
}

// exTerminal hands the keyboard to the attached terminal until Ctrl-\ Ctrl-N.
func (e *Editor) exTerminal(ctx *dispatcher.ExContext, _ exCall) error {
	if !e.terminal {
		return ErrNoTerminal
	}
	return resultErr(ctx.Dispatch(intent.Intent{Kind: intent.EnterTerminal}))
}

func (e *Editor) exRedo(ctx *dispatcher.ExContext, _ exCall) error {
	return resultErr(ctx.Dispatch(intent.Intent{Kind: intent.Redo}))
}

func (e *Editor) exSet(ctx *dispatcher.ExContext, c exCall) error {
	msg, err := e.cfg.Editor.Set(c.arg)
	ctx.State().SetOptions(e.cfg.Editor.Options())
	if err != nil {
		return err
	}
	if msg = strings.TrimSpace(msg); msg != "" {
		ctx.SetMessage("%s", msg)
	}
	return nil
}

func (e *Editor) exRegisters(ctx *dispatcher.ExContext, c exCall) error {
	var lines []string
	for _, entry := range ctx.State().Registers.List() {
		if c.arg != "" && !strings.ContainsRune(c.arg, entry.Name) {
			continue
		}
		lines = append(lines, fmt.Sprintf("%c  \"%c   %s", kindLetter(entry.Register.Kind), entry.Name, printable(entry.Register.Content)))
	}
	if len(lines) == 0 {
		return nil
	}
	ctx.SetMessage("%s", strings.Join(append([]string{"Type Name Content"}, lines...), "\n"))
	return nil
}

func (e *Editor) exMarks(ctx *dispatcher.ExContext, _ exCall) error {
	st := ctx.State()
	marks := st.Marks()
	lines := []string{"mark line  col text"}
	for _, name := range sortedMarks(marks) {
		p := marks[name]
		text := ""
		if p.Line < st.Buffer.LineCount() {
			text = st.Buffer.Line(p.Line)
		}
		lines = append(lines, fmt.Sprintf(" %c %6d %4d %s", name, p.Line+1, p.Col, text))
	}
	ctx.SetMessage("%s", strings.Join(lines, "\n"))
	return nil
}

func (e *Editor) exLua(ctx *dispatcher.ExContext, c exCall) error {
	if c.arg == "" {
		return ErrArgumentRequired
	}
	out, err := e.eval.Exec(c.arg)
	if err != nil {
		return err
	}
	if out != "" {
		ctx.SetMessage("%s", out)
	}
	return nil
}

// exEquals prints the last line number of the range (":=" and ":.="), or
// the value of an expression given as argument.
func (e *Editor) exEquals(ctx *dispatcher.ExContext, c exCall) error {
	if c.arg != "" {
		v, err := ctx.Eval(c.arg)
		if err != nil {
			return err
		}
		ctx.SetMessage("%s", v)
		return nil
	}
	line := ctx.State().Buffer.LineCount()
	if c.hasRange {
		line = c.rng.to + 1
	}
	ctx.SetMessage("%d", line)
	return nil
}

func (e *Editor) exWrite(ctx *dispatcher.ExContext, c exCall) error {
	if err := e.write(c.arg, c.bang); err != nil {
		return err
	}
	ctx.SetMessage("%s", ctx.State().Message)
	return nil
}

func (e *Editor) exWriteQuit(ctx *dispatcher.ExContext, c exCall) error {
	if err := e.write(c.arg, c.bang); err != nil {
		return err
	}
	e.done = true
	return nil
}

func (e *Editor) exXit(ctx *dispatcher.ExContext, c exCall) error {
	if ctx.State().Modified() || c.arg != "" {
		if err := e.write(c.arg, c.bang); err != nil {
			return err
		}
	}
	e.done = true
	return nil
}

func (e *Editor) exQuit(ctx *dispatcher.ExContext, c exCall) error {
	if ctx.State().Modified() && !c.bang {
		return ErrUnsavedChanges
	}
	e.done = true
	return nil
}

func (e *Editor) exEdit(ctx *dispatcher.ExContext, c exCall) error {
	if c.arg == "" || c.arg == e.path {
		if ctx.State().Modified() && !c.bang {
			return ErrUnsavedChanges
		}
		if err := e.reload(); err != nil {
			return err
		}
		return nil
	}
	if err := e.edit(c.arg, c.bang); err != nil {
		return err
	}
	ctx.SetMessage("%s", e.state.Message)
	return nil
}

// registerArg parses the optional register of :delete and :yank.
func registerArg(arg string) (rune, error) {
	if arg == "" {
		return register.Unnamed, nil
	}
	r := []rune(arg)
	if len(r) != 1 {
		return 0, fmt.Errorf("%w: %s", ErrTrailing, arg)
	}
	if !register.IsValid(r[0]) || register.IsReadOnly(r[0]) {
		return 0, fmt.Errorf("%w: %s", register.ErrInvalidName, arg)
	}
	return r[0], nil
}

func linesOf(r buffer.Reader, rng lineRange) string {
	var sb strings.Builder
	for i := rng.from; i <= rng.to; i++ {
		sb.WriteString(r.Line(i))
		sb.WriteByte('\n')
	}
	return sb.String()
}

func resultErr(res dispatcher.Result) error {
	if res.IsError() {
		return res.Error
	}
	return nil
}

func kindLetter(k register.Kind) byte {
	switch k {
	case register.Linewise:
		return 'l'
	case register.Blockwise:
		return 'b'
	}
	return 'c'
}

// printable shows control characters as ^X and newlines as ^J.
func printable(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if r < 0x20 {
			sb.WriteByte('^')
			sb.WriteRune(r + '@')
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func sortedMarks(marks map[rune]buffer.Position) []rune {
	names := make([]rune, 0, len(marks))
	for name := range marks {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
