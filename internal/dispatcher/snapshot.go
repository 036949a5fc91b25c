package dispatcher

import (
	"github.com/dshills/vimcore/internal/engine/buffer"
	"github.com/dshills/vimcore/internal/input/mode"
)

// Snapshot is a copy of what a renderer needs. It shares nothing with the
// live state, so it may be read on another goroutine while the core keeps
// running.
type Snapshot struct {
	Name      string
	Buffer    buffer.ID
	Revision  buffer.RevisionID
	LineCount int
	Modified  bool

	// Lines holds the visible lines starting at Top.
	Lines []string
	Top   int

	Cursor      buffer.Position
	Mode        mode.Mode
	ModeName    string
	CursorStyle mode.CursorStyle

	Selection    buffer.Range
	HasSelection bool

	// Pending shows an unfinished command such as "2d".
	Pending string

	InCommand     bool
	CommandPrompt rune
	CommandText   string
	CommandCursor int

	Message   string
	Recording rune
}

// Snapshot copies the visible state.
func (st *EditorState) Snapshot() Snapshot {
	text := st.Buffer.Snapshot()
	snap := Snapshot{
		Name:        st.Buffer.Name(),
		Buffer:      text.ID(),
		Revision:    text.Revision(),
		LineCount:   text.LineCount(),
		Modified:    st.modified,
		Lines:       text.Window(st.View.Top, st.View.Height),
		Top:         st.View.Top,
		Cursor:      st.Cursor.Pos,
		Mode:        st.Mode.Mode,
		ModeName:    st.Mode.Mode.DisplayName(),
		CursorStyle: st.Mode.Mode.CursorStyle(),
		Pending:     st.Mode.PendingKeys(),
		Message:     st.Message,
		Recording:   st.Macros.Register(),
	}
	if sel, ok := st.Selection(); ok {
		snap.Selection = sel.Range()
		snap.HasSelection = true
	}
	if st.Mode.Mode.Kind == mode.KindCommand {
		snap.InCommand = true
		snap.CommandPrompt = st.Mode.Mode.Command.Prompt()
		snap.CommandText = st.Mode.CommandLine.Text()
		snap.CommandCursor = st.Mode.CommandLine.Cursor()
	}
	return snap
}
