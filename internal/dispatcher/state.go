package dispatcher

import (
	"fmt"
	"strings"

	"github.com/dshills/vimcore/internal/engine/buffer"
	"github.com/dshills/vimcore/internal/engine/history"
	"github.com/dshills/vimcore/internal/engine/jumplist"
	"github.com/dshills/vimcore/internal/engine/motion"
	"github.com/dshills/vimcore/internal/input/intent"
	"github.com/dshills/vimcore/internal/input/macro"
	"github.com/dshills/vimcore/internal/input/mode"
	"github.com/dshills/vimcore/internal/input/register"
)

// DefaultViewHeight is the viewport height until the host reports one.
const DefaultViewHeight = 24

// EditorState is everything the dispatcher mutates for one window: the
// buffer, cursor, modal state, registers and histories. It is owned by a
// single goroutine; Snapshot hands a copy to others.
type EditorState struct {
	Buffer    buffer.Text
	Cursor    motion.Cursor
	Mode      *mode.State
	View      motion.Viewport
	Registers *register.Store
	History   *history.History
	Jumps     *jumplist.List
	Changes   *jumplist.List
	Macros    *macro.Recorder
	Options   Options

	// Message is the status-line message left by the last intent.
	Message string

	player *macro.Player
	marks  map[rune]buffer.Position

	session    *session
	lastChange []intent.Intent
	repeating  int
	exDepth    int

	lastFind    motion.Motion
	hasLastFind bool
	search      searchState
	lastEx      string

	lastInsert    buffer.Position
	hasLastInsert bool
	modified      bool
}

// searchState remembers the last search for n and N.
type searchState struct {
	pattern string
	forward bool
	set     bool
}

// NewEditorState creates state for text in Normal mode with the cursor at
// the start of the buffer.
func NewEditorState(text buffer.Text, opts Options) *EditorState {
	opts = opts.normalized()
	rec := macro.NewRecorder()
	return &EditorState{
		Buffer:    text,
		Mode:      mode.NewState(),
		View:      motion.Viewport{Height: DefaultViewHeight},
		Registers: register.NewStore(),
		History:   history.NewHistory(opts.UndoLevels),
		Jumps:     jumplist.NewJumpList(opts.JumpListSize),
		Changes:   jumplist.NewChangeList(opts.ChangeListSize),
		Macros:    rec,
		Options:   opts,
		player:    macro.NewPlayer(rec, opts.MaxMacroDepth),
		marks:     make(map[rune]buffer.Position),
	}
}

// SetOptions applies new options to the live state, resizing the bounded
// histories.
func (st *EditorState) SetOptions(opts Options) {
	opts = opts.normalized()
	st.Options = opts
	st.History.SetMaxEntries(opts.UndoLevels)
	st.Jumps.Resize(opts.JumpListSize)
	st.Changes.Resize(opts.ChangeListSize)
	st.player.SetMaxDepth(opts.MaxMacroDepth)
}

// SetViewport records the visible window height reported by the host.
func (st *EditorState) SetViewport(height int) {
	st.View.Height = max(height, 1)
	st.scrollToCursor()
}

// SetMessage replaces the status-line message.
func (st *EditorState) SetMessage(format string, args ...any) {
	st.Message = fmt.Sprintf(format, args...)
}

// Modified reports whether the buffer changed since MarkSaved.
func (st *EditorState) Modified() bool {
	return st.modified
}

// MarkSaved clears the modified flag.
func (st *EditorState) MarkSaved() {
	st.modified = false
}

// Mark returns the position of mark c.
func (st *EditorState) Mark(c rune) (buffer.Position, bool) {
	switch c {
	case '`', '\'':
		p, ok := st.marks['`']
		return p, ok
	case '<', '>':
		if !st.Mode.HasLastVisual {
			return buffer.Position{}, false
		}
		r := st.Mode.LastVisual.Range()
		if c == '<' {
			return r.Start, true
		}
		return r.End, true
	}
	p, ok := st.marks[c]
	return p, ok
}

// Marks returns a copy of the set marks.
func (st *EditorState) Marks() map[rune]buffer.Position {
	out := make(map[rune]buffer.Position, len(st.marks))
	for k, v := range st.marks {
		out[k] = v
	}
	return out
}

// LastChange returns the intents "." would replay.
func (st *EditorState) LastChange() []intent.Intent {
	out := make([]intent.Intent, len(st.lastChange))
	copy(out, st.lastChange)
	return out
}

// LastSearch returns the last search pattern and direction.
func (st *EditorState) LastSearch() (string, bool, bool) {
	return st.search.pattern, st.search.forward, st.search.set
}

// LastExCommand returns the last executed Ex command line.
func (st *EditorState) LastExCommand() string {
	return st.lastEx
}

// Selection returns the active visual selection.
func (st *EditorState) Selection() (mode.Selection, bool) {
	return st.Mode.Selection(st.Cursor.Pos)
}

// ReplaceLines swaps lines from..to for lines as one undo step. An empty
// lines slice deletes the range.
func (st *EditorState) ReplaceLines(from, to int, lines []string) {
	last := st.Buffer.LineCount() - 1
	from = max(from, 0)
	to = min(to, last)
	if from > to {
		return
	}
	before := st.Cursor.Pos
	if len(lines) == 0 {
		e := st.Buffer.Delete(buffer.Lines(from, to))
		st.record(e, before, e.At)
		st.Cursor = motion.At(st.firstNonBlank(min(from, st.Buffer.LineCount()-1)))
		return
	}
	old := joinLines(st.Buffer, from, to)
	e := buffer.Edit{At: buffer.Position{Line: from}, Old: old, New: strings.Join(lines, "\n")}
	st.Buffer.Apply(e)
	st.record(e, before, before)
}

func joinLines(r buffer.Reader, from, to int) string {
	var sb strings.Builder
	for i := from; i <= to; i++ {
		if i > from {
			sb.WriteByte('\n')
		}
		sb.WriteString(r.Line(i))
	}
	return sb.String()
}

// record adds an applied edit to the undo history.
func (st *EditorState) record(e buffer.Edit, before, after buffer.Position) {
	if e.IsNoOp() {
		return
	}
	st.History.Record(e, before, after)
	st.modified = true
	st.marks['.'] = e.At
}

// group runs fn with its edits merged into one undo step, unless a group
// (an insert session) is already open.
func (st *EditorState) group(fn func()) {
	if st.History.IsGrouping() {
		fn()
		return
	}
	st.History.BeginGroup(st.Cursor.Pos)
	fn()
	st.History.EndGroup(st.Cursor.Pos)
}

func (st *EditorState) insert(pos buffer.Position, text string) buffer.Position {
	before := st.Cursor.Pos
	e, end := st.Buffer.Insert(pos, text)
	st.record(e, before, end)
	return end
}

func (st *EditorState) delete(r buffer.Range) buffer.Edit {
	before := st.Cursor.Pos
	e := st.Buffer.Delete(r)
	st.record(e, before, e.At)
	return e
}

func (st *EditorState) replace(at buffer.Position, old, text string) {
	e := buffer.Edit{At: at, Old: old, New: text}
	st.Buffer.Apply(e)
	st.record(e, st.Cursor.Pos, e.NewEnd())
}

func (st *EditorState) entry(p buffer.Position) jumplist.Entry {
	return jumplist.Entry{Buffer: st.Buffer.ID(), Pos: p}
}

func (st *EditorState) motionContext(pastEnd bool) motion.Context {
	return motion.Context{
		Text:    st.Buffer,
		View:    st.View,
		PastEnd: pastEnd,
		TabStop: st.Options.TabStop,
	}
}

func (st *EditorState) firstNonBlank(line int) buffer.Position {
	c, _ := motion.Resolve(st.motionContext(false), motion.At(buffer.Position{Line: line}), motion.Motion{Kind: motion.FirstNonBlank}, 1)
	return c.Pos
}

// moveTo places the cursor, dropping the desired column.
func (st *EditorState) moveTo(p buffer.Position) {
	st.Cursor = motion.At(buffer.Clamp(st.Buffer, p, st.Mode.Mode.AllowsPastEnd()))
}

// settle clamps the cursor for the current mode and scrolls it into view.
func (st *EditorState) settle() {
	pastEnd := st.Mode.Mode.AllowsPastEnd()
	st.Cursor.Pos = buffer.Clamp(st.Buffer, st.Cursor.Pos, pastEnd)
	if st.Mode.HasAnchor {
		st.Mode.Anchor = buffer.Clamp(st.Buffer, st.Mode.Anchor, pastEnd)
	}
	st.scrollToCursor()
}

func (st *EditorState) scrollToCursor() {
	h := max(st.View.Height, 1)
	off := min(st.Options.ScrollOff, (h-1)/2)
	line := st.Cursor.Pos.Line
	if line-off < st.View.Top {
		st.View.Top = line - off
	}
	if line+off >= st.View.Top+h {
		st.View.Top = line + off - h + 1
	}
	st.View.Top = max(0, min(st.View.Top, st.Buffer.LineCount()-1))
}
