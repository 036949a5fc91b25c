package dispatcher

import (
	"github.com/dshills/vimcore/internal/input/intent"
)

// PreDispatchHook is called before an intent is dispatched.
// Returning false cancels the dispatch.
type PreDispatchHook interface {
	// PreDispatch may modify the intent. Returns false to cancel it.
	PreDispatch(st *EditorState, it *intent.Intent) bool
}

// PostDispatchHook is called after an intent is dispatched.
type PostDispatchHook interface {
	// PostDispatch may inspect or modify the result.
	PostDispatch(st *EditorState, it intent.Intent, res *Result)
}

// PreDispatchFunc is a function adapter for PreDispatchHook.
type PreDispatchFunc func(st *EditorState, it *intent.Intent) bool

// PreDispatch implements PreDispatchHook.
func (f PreDispatchFunc) PreDispatch(st *EditorState, it *intent.Intent) bool {
	return f(st, it)
}

// PostDispatchFunc is a function adapter for PostDispatchHook.
type PostDispatchFunc func(st *EditorState, it intent.Intent, res *Result)

// PostDispatch implements PostDispatchHook.
func (f PostDispatchFunc) PostDispatch(st *EditorState, it intent.Intent, res *Result) {
	f(st, it, res)
}

// WithPreHook adds a pre-dispatch hook. Hooks run in the order added.
func WithPreHook(h PreDispatchHook) Option {
	return func(d *Dispatcher) {
		d.preHooks = append(d.preHooks, h)
	}
}

// WithPostHook adds a post-dispatch hook. Hooks run in the order added.
func WithPostHook(h PostDispatchHook) Option {
	return func(d *Dispatcher) {
		d.postHooks = append(d.postHooks, h)
	}
}

// AddPreHook adds a pre-dispatch hook to a running dispatcher.
func (d *Dispatcher) AddPreHook(h PreDispatchHook) {
	d.preHooks = append(d.preHooks, h)
}

// AddPostHook adds a post-dispatch hook to a running dispatcher.
func (d *Dispatcher) AddPostHook(h PostDispatchHook) {
	d.postHooks = append(d.postHooks, h)
}

// CountLimitHook caps the count of every intent.
type CountLimitHook struct {
	MaxCount int
}

// NewCountLimitHook creates a new count limit hook.
func NewCountLimitHook(maxCount int) *CountLimitHook {
	return &CountLimitHook{MaxCount: maxCount}
}

// PreDispatch limits the count.
func (h *CountLimitHook) PreDispatch(_ *EditorState, it *intent.Intent) bool {
	if h.MaxCount > 0 && it.Count > h.MaxCount {
		it.Count = h.MaxCount
	}
	return true
}

// ReadOnlyHook refuses intents that would change the buffer while Enabled
// is set.
type ReadOnlyHook struct {
	Enabled bool
}

// PreDispatch cancels buffer-changing intents.
func (h *ReadOnlyHook) PreDispatch(st *EditorState, it *intent.Intent) bool {
	if !h.Enabled {
		return true
	}
	if it.IsRepeatable() || it.StartsSession() || it.Kind == intent.Undo || it.Kind == intent.Redo {
		st.SetMessage("E21: Cannot make changes, 'modifiable' is off")
		return false
	}
	return true
}
