package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dshills/vimcore/internal/engine/buffer"
)

// trimFinalNewline drops the newline ending the last line of a file; the
// buffer models lines, and write adds it back.
func trimFinalNewline(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.TrimSuffix(s, "\n")
}

func fileContent(r buffer.Reader) string {
	if r.LineCount() == 1 && r.Line(0) == "" {
		return ""
	}
	var sb strings.Builder
	for i := range r.LineCount() {
		sb.WriteString(r.Line(i))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// fileInfo is the message shown after reading or writing a file, such as
// "main.go" 12L, 230B.
func fileInfo(path string, r buffer.Reader, isNew bool) string {
	name := fmt.Sprintf("%q", filepath.Base(path))
	if isNew {
		return name + " [New]"
	}
	return fmt.Sprintf("%s %dL, %dB", name, r.LineCount(), len(fileContent(r)))
}

// write saves the buffer to path, or to the edited file when path is
// empty.
func (e *Editor) write(path string, force bool) error {
	if path == "" {
		path = e.path
	}
	if path == "" {
		return ErrNoFileName
	}
	if e.readOnly.Enabled && !force {
		return ErrReadOnly
	}

	if err := os.WriteFile(path, []byte(fileContent(e.state.Buffer)), 0o644); err != nil {
		return &FileError{Op: "write", Path: path, Err: err}
	}
	if e.path == "" {
		e.path = path
		e.state.Registers.SetFileNames(path, "")
	}
	if path == e.path {
		e.state.MarkSaved()
	}
	e.state.SetMessage("%s written", fileInfo(path, e.state.Buffer, false))
	e.log.Info("wrote %s (%d lines)", path, e.state.Buffer.LineCount())
	return nil
}

// reload replaces the buffer with the file's content as one undo step.
func (e *Editor) reload() error {
	if e.path == "" {
		return ErrNoFileName
	}
	data, err := os.ReadFile(e.path)
	if err != nil {
		return &FileError{Op: "read", Path: e.path, Err: err}
	}
	lines := strings.Split(trimFinalNewline(string(data)), "\n")
	e.state.ReplaceLines(0, e.state.Buffer.LineCount()-1, lines)
	e.state.MarkSaved()
	e.state.SetMessage("%s", fileInfo(e.path, e.state.Buffer, false))
	return nil
}

// edit switches to another file. Registers carry over; the previous file
// becomes the alternate file.
func (e *Editor) edit(path string, force bool) error {
	if e.state.Modified() && !force {
		return ErrUnsavedChanges
	}
	data, err := os.ReadFile(path)
	isNew := errors.Is(err, os.ErrNotExist)
	if err != nil && !isNew {
		return &FileError{Op: "read", Path: path, Err: err}
	}

	prev := e.state
	alternate := e.path
	e.path = path
	e.state = e.newState(string(data))
	e.state.Registers = prev.Registers
	e.state.Registers.SetFileNames(path, alternate)
	e.state.View.Height = prev.View.Height
	e.state.SetMessage("%s", fileInfo(path, e.state.Buffer, isNew))
	e.log.Info("opened %s", path)
	return nil
}
