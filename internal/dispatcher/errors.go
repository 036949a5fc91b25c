package dispatcher

import (
	"errors"

	"github.com/dshills/vimcore/internal/input/macro"
)

// Dispatcher errors. Their text is what the status line shows.
var (
	// ErrNotEditorCommand indicates an Ex command nobody handles.
	ErrNotEditorCommand = errors.New("E492: Not an editor command")

	// ErrPatternNotFound indicates a search without a match.
	ErrPatternNotFound = errors.New("E486: Pattern not found")

	// ErrNoPreviousPattern indicates n, N or an empty search with no
	// earlier pattern.
	ErrNoPreviousPattern = errors.New("E35: No previous regular expression")

	// ErrMarkNotSet indicates a jump to an unset mark.
	ErrMarkNotSet = errors.New("E20: Mark not set")

	// ErrInvalidMark indicates a mark name that cannot be set.
	ErrInvalidMark = errors.New("E191: Argument must be a letter or forward/backward quote")

	// ErrNoPreviousCommand indicates @: before any Ex command ran.
	ErrNoPreviousCommand = errors.New("E30: No previous command line")

	// ErrNoEvaluator indicates use of the expression register without an
	// evaluator.
	ErrNoEvaluator = errors.New("E15: Invalid expression")

	// ErrMacroDepth indicates macros nested deeper than MaxMacroDepth.
	ErrMacroDepth = macro.ErrDepth

	// ErrInvalidTransition indicates a mode change the state machine refused.
	ErrInvalidTransition = errors.New("dispatcher: invalid mode transition")
)
