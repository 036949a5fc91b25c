package expr

import "errors"

var (
	// ErrClosed indicates use of an evaluator after Close.
	ErrClosed = errors.New("expr: evaluator closed")

	// ErrTimeout indicates an expression ran past its deadline.
	ErrTimeout = errors.New("expr: evaluation timed out")

	// ErrUnsupportedValue indicates a result with no text form.
	ErrUnsupportedValue = errors.New("expr: value has no text form")

	// ErrEmpty indicates an empty expression.
	ErrEmpty = errors.New("E15: Invalid expression")
)

// Error wraps a Lua compile or runtime failure with the source it came
// from.
type Error struct {
	Source string
	Err    error
}

func (e *Error) Error() string {
	return "E15: Invalid expression: \"" + e.Source + "\": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}
