package config

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	// ErrInvalidConfig is matched by every ValidationError.
	ErrInvalidConfig = errors.New("invalid config")
	ErrUnknownFormat = errors.New("unknown config format")

	// ErrUnknownOption is returned by ":set" for an option name it does
	// not know.
	ErrUnknownOption = errors.New("E518: Unknown option")
	ErrWatcherClosed = errors.New("config watcher closed")
)

// ParseError locates a decoding failure in a configuration file. Line and
// Column are 1-based and zero when the decoder did not report them.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
	Err     error
}

// Error formats the error as "path:line:col: message", leaving out the
// parts that are unknown.
func (e *ParseError) Error() string {
	loc := e.Path
	if e.Line > 0 {
		loc += ":" + strconv.Itoa(e.Line)
		if e.Column > 0 {
			loc += ":" + strconv.Itoa(e.Column)
		}
	}
	return loc + ": " + e.Message
}

func (e *ParseError) Unwrap() error { return e.Err }

// ValidationError rejects the value of one field, named by its dotted key
// such as "editor.tab_stop".
type ValidationError struct {
	Field   string
	Message string
	Value   any
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s = %v: %s", e.Field, e.Value, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidConfig
}
