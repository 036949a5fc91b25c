package dispatcher

import "fmt"

// ResultStatus classifies a dispatch.
type ResultStatus uint8

const (
	StatusOK ResultStatus = iota
	// StatusNoOp is a dispatch that changed nothing: a motion that hit
	// the buffer edge, "u" with nothing to undo, a "." before any change.
	// Vim beeps for most of these; they never abort a macro.
	StatusNoOp
	// StatusError aborts macro playback and "." replay.
	StatusError
)

var statusNames = [...]string{
	StatusOK:    "ok",
	StatusNoOp:  "no-op",
	StatusError: "error",
}

func (s ResultStatus) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return fmt.Sprintf("status(%d)", s)
}

// Result is the outcome of one dispatch. Message replaces the status-line
// message; for errors it is the error text, starting with the Vim error
// number when there is one.
type Result struct {
	Status  ResultStatus
	Error   error
	Message string
}

func (r Result) IsOK() bool { return r.Status == StatusOK }
func (r Result) IsError() bool { return r.Status == StatusError }

// WithMessage returns r showing msg.
func (r Result) WithMessage(msg string) Result {
	r.Message = msg
	return r
}

func Success() Result { return Result{Status: StatusOK} }
func SuccessWithMessage(msg string) Result { return Result{Status: StatusOK, Message: msg} }
func NoOp() Result { return Result{Status: StatusNoOp} }
func NoOpWithMessage(msg string) Result { return Result{Status: StatusNoOp, Message: msg} }
func Errorf(format string, args ...any) Result { return Error(fmt.Errorf(format, args...)) }

// Error fails with err, showing its text.
func Error(err error) Result {
	return Result{Status: StatusError, Error: err, Message: err.Error()}
}
