package app

import (
	"errors"
	"fmt"
)

// Editor errors. Messages carry Vim's error numbers because they are shown
// on the status line as-is.
var (
	// ErrUnsavedChanges indicates a quit or edit that would lose changes.
	ErrUnsavedChanges = errors.New("E37: No write since last change (add ! to override)")

	// ErrNoFileName indicates a write of a buffer without a file name.
	ErrNoFileName = errors.New("E32: No file name")

	// ErrReadOnly indicates a change or write of a read-only buffer.
	ErrReadOnly = errors.New("E45: 'readonly' option is set (add ! to override)")

	// ErrNotModifiable indicates a change to a read-only buffer.
	ErrNotModifiable = errors.New("E21: Cannot make changes, 'modifiable' is off")

	// ErrInvalidRange indicates a line range outside the buffer.
	ErrInvalidRange = errors.New("E16: Invalid range")

	// ErrInvalidAddress indicates a malformed line address.
	ErrInvalidAddress = errors.New("E14: Invalid address")

	// ErrTrailing indicates extra characters after a command.
	ErrTrailing = errors.New("E488: Trailing characters")

	// ErrNoRange indicates a range given to a command that takes none.
	ErrNoRange = errors.New("E481: No range allowed")

	// ErrNoBang indicates a "!" given to a command that takes none.
	ErrNoBang = errors.New("E477: No ! allowed")

	// ErrNoTerminal indicates ":terminal" without an attached terminal.
	ErrNoTerminal = errors.New("no terminal attached")

	// ErrArgumentRequired indicates a command missing its argument.
	ErrArgumentRequired = errors.New("E471: Argument required")
)

// FileError records a failed file operation.
type FileError struct {
	Op   string // "read" or "write"
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Op, e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}
